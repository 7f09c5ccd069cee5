package tokenizer

import (
	"strings"

	"github.com/jmc-lang/jmc/internal/compile/diag"
	"github.com/jmc-lang/jmc/internal/compile/header"
	"github.com/jmc-lang/jmc/internal/compile/sourcefragment"
	"github.com/jmc-lang/jmc/internal/compile/token"
)

// Arg is one slot of a parsed argument list: Name is empty for a
// positional argument, otherwise the keyword argument's name.
type Arg struct {
	Name  string
	Value []token.Token
}

// ParseArgumentList tokenizes text (the contents of a RoundParen, with
// its brackets already stripped) as a comma-separated argument list: top-
// level commas split slots (commas inside nested parens or strings do
// not, since the underlying tokenizer already treats those as atomic
// spans), each slot is either positional or `name = expr` / `name =+
// expr` / `name =- expr` (or `name : expr` when isNBT swaps the key
// separator), and a bare `()=>{ body }` slot becomes a single Func
// token. It is exported so the lexer driver can reuse the same grammar
// for decorator argument lists, which go through the same paren-span
// shape as macro arguments.
func ParseArgumentList(fragment *sourcefragment.Fragment, hdr *header.Header, text string, baseLine, baseCol int, isNBT bool) ([]Arg, *diag.Error) {
	nested := sourcefragment.NewNested(fragment.Path, text, fragment.ContextText(), baseLine, baseCol)
	tz := New(nested, hdr, false, false)
	tz.line = baseLine
	tz.col = baseCol - 1

	statements, err := tz.Run()
	if err != nil {
		return nil, err
	}
	var flat token.Statement
	for _, s := range statements {
		flat = append(flat, s...)
	}
	if len(flat) == 0 {
		return nil, nil
	}

	var slots []token.Statement
	var current token.Statement
	for _, tok := range flat {
		if tok.Kind == token.Comma {
			slots = append(slots, current)
			current = nil
			continue
		}
		current = append(current, tok)
	}
	slots = append(slots, current)

	if len(slots[len(slots)-1]) == 0 && len(slots) > 1 {
		return nil, diag.NewJMCSyntaxException("Unexpected trailing comma in argument list", nil, tz, diag.RenderOptions{IsEntireLine: true}, "")
	}

	var args []Arg
	seenKeyword := false
	seenNames := map[string]bool{}
	keySep := "="
	if isNBT {
		keySep = ":"
	}

	for _, slot := range slots {
		if len(slot) == 0 {
			continue
		}
		if isFuncLiteral(slot) {
			args = append(args, Arg{Value: []token.Token{
				token.New(token.Func, slot[0].Line, slot[0].Col, slot[2].String[1:len(slot[2].String)-1], 0, 0),
			}})
			continue
		}

		if len(slot) >= 2 && slot[0].Kind == token.Keyword && slot[1].Kind == token.Operator {
			sep := slot[1].String
			switch {
			case sep == keySep:
				name := slot[0].String
				if seenNames[name] {
					return nil, diag.NewJMCSyntaxException("Duplicate keyword argument: "+name, &slot[0], tz, diag.RenderOptions{IsDisplayColLength: true}, "")
				}
				seenNames[name] = true
				seenKeyword = true
				args = append(args, Arg{Name: name, Value: slot[2:]})
				continue
			case sep == keySep+"+" || sep == keySep+"-":
				name := slot[0].String
				if seenNames[name] {
					return nil, diag.NewJMCSyntaxException("Duplicate keyword argument: "+name, &slot[0], tz, diag.RenderOptions{IsDisplayColLength: true}, "")
				}
				seenNames[name] = true
				seenKeyword = true
				sign := strings.TrimPrefix(sep, keySep)
				synthetic := token.New(token.Operator, slot[1].Line, slot[1].Col+len(keySep), sign, 0, 0)
				value := append([]token.Token{synthetic}, slot[2:]...)
				args = append(args, Arg{Name: name, Value: value})
				continue
			}
		}

		if seenKeyword {
			return nil, diag.NewJMCSyntaxException("Positional argument cannot follow a keyword argument", &slot[0], tz, diag.RenderOptions{IsDisplayColLength: true}, "")
		}
		args = append(args, Arg{Value: slot})
	}

	return args, nil
}

// isFuncLiteral reports whether slot is exactly `() => { body }`: a
// RoundParen (empty), an Operator "=>", and a CurlyParen.
func isFuncLiteral(slot token.Statement) bool {
	return len(slot) == 3 &&
		slot[0].Kind == token.RoundParen && slot[0].String == "()" &&
		slot[1].Kind == token.Operator && slot[1].String == "=>" &&
		slot[2].Kind == token.CurlyParen
}
