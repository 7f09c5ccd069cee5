package lexer

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/jmc-lang/jmc/internal/cli/config"
	"github.com/jmc-lang/jmc/internal/compile/diag"
	"github.com/jmc-lang/jmc/internal/compile/session"
)

func newTestSession() *session.Session {
	return session.New(config.Configuration{
		Namespace:   "demo",
		LoadName:    "__load__",
		PrivateName: "__private__",
	})
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

func TestParseFileDefinesFunction(t *testing.T) {
	dir := t.TempDir()
	main := writeFile(t, dir, "main.jmc", "function foo() {\nsay hi;\n}\n")

	sess := newTestSession()
	lx := New(sess, nil)
	if err := lx.Compile(main); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	fn, ok := sess.Datapack.Functions["demo:foo"]
	if !ok {
		t.Fatal("expected demo:foo to be defined")
	}
	if len(fn.Commands) != 1 || fn.Commands[0] != "say hi" {
		t.Errorf("unexpected commands: %+v", fn.Commands)
	}
}

func TestVanillaFunctionHeuristicIsNotRegistered(t *testing.T) {
	dir := t.TempDir()
	main := writeFile(t, dir, "main.jmc", `function "demo:foo";`+"\n")

	sess := newTestSession()
	lx := New(sess, nil)
	if err := lx.Compile(main); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok := sess.Datapack.Functions["demo:foo"]; ok {
		t.Fatal("expected the vanilla-shaped statement not to be registered as a function")
	}
	if len(sess.Datapack.Loads) != 1 {
		t.Fatalf("expected 1 load command, got %d: %+v", len(sess.Datapack.Loads), sess.Datapack.Loads)
	}
}

func TestDuplicateFunctionDefinitionIsRejected(t *testing.T) {
	dir := t.TempDir()
	main := writeFile(t, dir, "main.jmc", "function foo() {\nsay hi;\n}\nfunction foo() {\nsay bye;\n}\n")

	sess := newTestSession()
	lx := New(sess, nil)
	err := lx.Compile(main)
	if err == nil {
		t.Fatal("expected a duplicate-definition error")
	}
	if err.Kind != diag.JMCSyntaxException {
		t.Errorf("expected JMCSyntaxException, got %v", err.Kind)
	}
}

func TestImportResolvesRelativeFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "lib.jmc", "function bar() {\nsay lib;\n}\n")
	main := writeFile(t, dir, "main.jmc", `import "lib";`+"\n")

	sess := newTestSession()
	lx := New(sess, nil)
	if err := lx.Compile(main); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok := sess.Datapack.Functions["demo:bar"]; !ok {
		t.Fatal("expected demo:bar to be defined via import")
	}
}

func TestImportIsDedupedAgainstDoubleVisit(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "lib.jmc", "function bar() {\nsay lib;\n}\n")
	main := writeFile(t, dir, "main.jmc", `import "lib";`+"\n"+`import "lib";`+"\n")

	sess := newTestSession()
	lx := New(sess, nil)
	if err := lx.Compile(main); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := sess.Datapack.Functions["demo:bar"]; !ok {
		t.Fatal("expected demo:bar to be defined")
	}
}

func TestResourceDeclarationRegistersJSON(t *testing.T) {
	dir := t.TempDir()
	main := writeFile(t, dir, "main.jmc", `new recipe(foo) { "type": "minecraft:crafting_shapeless" }`+"\n")

	sess := newTestSession()
	lx := New(sess, nil)
	if err := lx.Compile(main); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	body, ok := sess.Datapack.JSONs["demo/recipes/foo.json"]
	if !ok {
		t.Fatal("expected demo/recipes/foo.json to be registered")
	}
	m, ok := body.(map[string]interface{})
	if !ok || m["type"] != "minecraft:crafting_shapeless" {
		t.Errorf("unexpected resource body: %+v", body)
	}
}

func TestClassPrefixesNestedFunctionPath(t *testing.T) {
	dir := t.TempDir()
	main := writeFile(t, dir, "main.jmc", "class Util {\nfunction helper() {\nsay helping;\n}\n}\n")

	sess := newTestSession()
	lx := New(sess, nil)
	if err := lx.Compile(main); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok := sess.Datapack.Functions["demo:util/helper"]; !ok {
		t.Fatal("expected demo:util/helper to be defined")
	}
}

func TestDecoratedNoSaveFunctionIsNotRegistered(t *testing.T) {
	dir := t.TempDir()
	main := writeFile(t, dir, "main.jmc", "@test function hidden() {\nsay shh;\n}\n")

	sess := newTestSession()
	lx := New(sess, nil)
	if err := lx.Compile(main); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok := sess.Datapack.Functions["demo:hidden"]; ok {
		t.Fatal("expected the no-save decorated function to be withheld from the datapack")
	}
}

func TestPrivateNamespaceFunctionWarningIsLoggedBeforeReturning(t *testing.T) {
	dir := t.TempDir()
	main := writeFile(t, dir, "main.jmc", "function __private__.helper() {\nsay hi;\n}\n")

	core, logs := observer.New(zap.DebugLevel)
	sess := newTestSession().WithLogger(zap.New(core))
	lx := New(sess, nil)
	err := lx.Compile(main)
	if err == nil {
		t.Fatal("expected a JMCSyntaxWarning-turned-error for the private namespace prefix")
	}
	if err.Kind != diag.JMCSyntaxWarning {
		t.Errorf("expected JMCSyntaxWarning, got %v", err.Kind)
	}

	entries := logs.FilterMessage("function lies under private namespace prefix").All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 warning log entry, got %d: %+v", len(entries), entries)
	}
}

func TestReservedLoadNameIsRejected(t *testing.T) {
	dir := t.TempDir()
	main := writeFile(t, dir, "main.jmc", "function __load__() {\nsay hi;\n}\n")

	sess := newTestSession()
	lx := New(sess, nil)
	err := lx.Compile(main)
	if err == nil {
		t.Fatal("expected an error for redefining the reserved load function name")
	}
}
