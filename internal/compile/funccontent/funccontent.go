// Package funccontent documents and stubs the external collaborator that
// lowers a function body's tokenized statements into the flat list of
// Minecraft commands actually written to a .mcfunction file. The core
// spec treats this lowering (JMC's keyword commands, control-flow
// compilation, command-builder expansion) as out of scope; this package
// only defines the interface boundary the Lexer Driver calls through,
// plus a minimal default implementation sufficient to drive the
// tokenizer/lexer pipeline end-to-end for manual testing.
package funccontent

import (
	"strings"

	"github.com/jmc-lang/jmc/internal/compile/diag"
	"github.com/jmc-lang/jmc/internal/compile/token"
)

// Parser lowers a function body's statements into Minecraft commands.
// prefix is the enclosing class scope's path prefix (empty outside a
// class); isLoad marks a statement list from the implicit load function
// body, where some JMC keyword commands behave differently (e.g. a bare
// scoreboard initialization only needs to run once).
type Parser interface {
	Parse(statements []token.Statement, prefix string, isLoad bool) ([]string, *diag.Error)
}

// DefaultParser renders each statement as a single command by joining
// its tokens' literal text with spaces. It performs none of the real
// FuncContent lowering (JMC keyword commands, control-flow compilation,
// command-builder expansion all require a full semantic pass over the
// target Minecraft version's command grammar) — it exists only so the
// Lexer Driver has something to call while that collaborator is out of
// scope, and is swappable for a real implementation via the Parser
// interface.
type DefaultParser struct{}

// Parse implements Parser by literally re-joining each statement's
// tokens, which is correct only for statements that are already valid
// vanilla commands.
func (DefaultParser) Parse(statements []token.Statement, prefix string, isLoad bool) ([]string, *diag.Error) {
	commands := make([]string, 0, len(statements))
	for _, stmt := range statements {
		parts := make([]string, 0, len(stmt))
		for _, tok := range stmt {
			parts = append(parts, tok.OriginalString())
		}
		commands = append(commands, strings.Join(parts, " "))
	}
	return commands, nil
}
