package funccontent

import (
	"testing"

	"github.com/jmc-lang/jmc/internal/compile/token"
)

func TestDefaultParserJoinsTokens(t *testing.T) {
	stmt := token.Statement{
		token.New(token.Keyword, 1, 1, "say", 0, 0),
		token.New(token.String, 1, 5, "hi", 0, '"'),
	}
	commands, err := DefaultParser{}.Parse([]token.Statement{stmt}, "", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(commands) != 1 {
		t.Fatalf("expected 1 command, got %d", len(commands))
	}
	if commands[0] != `say "hi"` {
		t.Errorf("unexpected command: %q", commands[0])
	}
}
