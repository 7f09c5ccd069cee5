// Package lexer implements the Lexer Driver: it consumes the statement
// groups a Tokenizer produces for one source file and recognizes the
// top-level forms (function definitions, resource declarations, class
// scopes, imports, decorated functions), dispatching nested function
// bodies to a FuncContent collaborator and recursing into imported
// files. It is the single entry point a CLI front end drives.
package lexer

import (
	"os"

	"go.uber.org/zap"

	"github.com/jmc-lang/jmc/internal/compile/diag"
	"github.com/jmc-lang/jmc/internal/compile/funccontent"
	"github.com/jmc-lang/jmc/internal/compile/session"
	"github.com/jmc-lang/jmc/internal/compile/sourcefragment"
	"github.com/jmc-lang/jmc/internal/compile/token"
	"github.com/jmc-lang/jmc/internal/compile/tokenizer"
)

// Lexer is the driver described above. It is cheap to construct and
// carries no per-file state of its own — every recursive ParseFile call
// and every nested class scope gets its own parseState, so a Lexer value
// can be reused to parse as many files as a compilation needs.
type Lexer struct {
	sess    *session.Session
	content funccontent.Parser
}

// New builds a Lexer over sess, using content to lower function bodies
// into commands. Passing nil for content defaults to
// funccontent.DefaultParser{}, which is enough to drive the pipeline
// end-to-end for manual testing but performs none of the real keyword-
// command/control-flow lowering.
func New(sess *session.Session, content funccontent.Parser) *Lexer {
	if content == nil {
		content = funccontent.DefaultParser{}
	}
	return &Lexer{sess: sess, content: content}
}

// Compile parses entryPath as the compilation's main file.
func (l *Lexer) Compile(entryPath string) *diag.Error {
	return l.ParseFile(entryPath, true)
}

// ParseFile reads path, tokenizes it at the top level
// (expectSemicolon=true, allowSemicolon=false), and drives form
// dispatch over the resulting statements. Already-imported paths are
// skipped silently. isLoad distinguishes the main entry file from a
// recursively imported one; it is stored on the parse state and passed
// on to class scopes, but changes neither dispatch nor logging.
func (l *Lexer) ParseFile(path string, isLoad bool) *diag.Error {
	abs, absErr := absPath(path)
	if absErr != nil {
		return diag.NewJMCFileNotFound(path)
	}
	if l.sess.Header.MarkVisited(abs) {
		l.sess.Logger.Debug("skipping already-imported file", zap.String("path", path))
		return nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return diag.NewJMCFileNotFound(path)
	}
	l.sess.Logger.Debug("opening source file", zap.String("path", path))

	frag := sourcefragment.New(path, string(raw))
	tz := tokenizer.New(frag, l.sess.Header, true, false).WithLogger(l.sess.Logger)
	statements, terr := tz.Run()
	if terr != nil {
		return terr
	}

	state := newParseState(l, frag, path, "", isLoad, statements)
	return state.run()
}

// parseState drives form dispatch over one tokenized scope: a whole
// file, or a class body re-tokenized with its own prefix. Its cursor
// helpers follow the usual recursive-descent parser's
// peek/previous/advance/isAtEnd idiom, adapted to walk statements
// instead of a flat token slice.
type parseState struct {
	lex    *Lexer
	frag   *sourcefragment.Fragment
	path   string
	prefix string
	isLoad bool

	statements []token.Statement
	current    int

	pendingLoad []token.Statement
}

func newParseState(lex *Lexer, frag *sourcefragment.Fragment, path, prefix string, isLoad bool, statements []token.Statement) *parseState {
	return &parseState{lex: lex, frag: frag, path: path, prefix: prefix, isLoad: isLoad, statements: statements}
}

func (p *parseState) isAtEnd() bool { return p.current >= len(p.statements) }

func (p *parseState) peek() token.Statement { return p.statements[p.current] }

func (p *parseState) previous() token.Statement { return p.statements[p.current-1] }

func (p *parseState) advance() token.Statement {
	s := p.statements[p.current]
	p.current++
	return s
}

// run walks every statement in the scope, dispatching structural forms
// and accumulating everything else into the pending load body. A
// structural form's dispatch is bracketed by load-body flushes on both
// sides, so load statements interleaved between structural forms are
// emitted in original source order; a run of plain
// statements between two structural forms is flushed as a single chunk.
func (p *parseState) run() *diag.Error {
	for !p.isAtEnd() {
		stmt := p.advance()
		first := stmt.First()

		structural := true
		var err *diag.Error

		switch {
		case isKeyword(first, "function") && !isVanillaFunctionShape(stmt):
			if err = p.flushLoad(); err == nil {
				err = p.parseFunctionDefinition(stmt, true)
			}
		case isKeyword(first, "new"):
			if err = p.flushLoad(); err == nil {
				err = p.parseResourceDeclaration(stmt)
			}
		case isKeyword(first, "class"):
			if err = p.flushLoad(); err == nil {
				err = p.parseClass(stmt)
			}
		case isKeyword(first, "import"):
			if err = p.flushLoad(); err == nil {
				err = p.parseImport(stmt)
			}
		case first.Kind == token.Keyword && isDecorator(first.String):
			if err = p.flushLoad(); err == nil {
				err = p.parseDecoratedFunction(stmt)
			}
		default:
			structural = false
			p.pendingLoad = append(p.pendingLoad, stmt)
		}

		if err != nil {
			return err
		}
		if structural {
			if err := p.flushLoad(); err != nil {
				return err
			}
		}
	}
	return p.flushLoad()
}

// flushLoad lowers any accumulated load-body statements through the
// content parser and appends the resulting commands to the datapack's
// load sequence, in encounter order.
func (p *parseState) flushLoad() *diag.Error {
	if len(p.pendingLoad) == 0 {
		return nil
	}
	commands, err := p.lex.content.Parse(p.pendingLoad, p.prefix, true)
	if err != nil {
		return err
	}
	p.lex.sess.Datapack.Loads = append(p.lex.sess.Datapack.Loads, commands...)
	p.pendingLoad = nil
	return nil
}

func isKeyword(tok token.Token, s string) bool {
	return tok.Kind == token.Keyword && tok.String == s
}
