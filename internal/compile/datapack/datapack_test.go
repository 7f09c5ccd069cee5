package datapack

import (
	"testing"

	"github.com/jmc-lang/jmc/internal/compile/diag"
	"github.com/jmc-lang/jmc/internal/compile/header"
	"github.com/jmc-lang/jmc/internal/compile/packversion"
	"github.com/jmc-lang/jmc/internal/compile/token"
)

func TestDefineFunctionRejectsDuplicate(t *testing.T) {
	d := New("demo", packversion.New(0))
	site := CallSite{Token: token.New(token.Keyword, 1, 1, "foo", 0, 0), Path: "a.jmc"}

	if ok := d.DefineFunction("demo:foo", &McFunction{Commands: []string{"say hi"}}, site); !ok {
		t.Fatal("expected first definition to succeed")
	}
	if ok := d.DefineFunction("demo:foo", &McFunction{Commands: []string{"say bye"}}, site); ok {
		t.Fatal("expected duplicate definition to be rejected")
	}
}

func TestMcFunctionExtend(t *testing.T) {
	fn := &McFunction{Commands: []string{"say hi"}}
	fn.Extend([]string{"say bye"})
	if len(fn.Commands) != 2 {
		t.Fatalf("expected 2 commands, got %d", len(fn.Commands))
	}
}

func TestPreMcFunctionParse(t *testing.T) {
	hdr := header.New()
	pre := &PreMcFunction{
		FuncContent: "say hi;",
		FilePath:    "a.jmc",
		FullText:    "function foo() {\nsay hi;\n}",
		Line:        2,
		Col:         1,
		FuncPath:    "demo:foo",
		ParseBody: func(statements []token.Statement, prefix string, isLoad bool) ([]string, *diag.Error) {
			if len(statements) != 1 {
				t.Fatalf("expected 1 statement, got %d", len(statements))
			}
			return []string{"say hi"}, nil
		},
	}

	fn, path, err := pre.Parse(hdr)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path != "demo:foo" {
		t.Errorf("unexpected func path: %q", path)
	}
	if len(fn.Commands) != 1 || fn.Commands[0] != "say hi" {
		t.Errorf("unexpected commands: %+v", fn.Commands)
	}
}
