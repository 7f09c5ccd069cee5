// Package tokenizer implements the character-driven state machine that
// turns raw JMC source text into statement-grouped tokens: the single
// largest component of the compile front end.
package tokenizer

import (
	"strings"
	"unicode"

	"go.uber.org/zap"

	"github.com/jmc-lang/jmc/internal/compile/diag"
	"github.com/jmc-lang/jmc/internal/compile/header"
	"github.com/jmc-lang/jmc/internal/compile/sourcefragment"
	"github.com/jmc-lang/jmc/internal/compile/token"
)

// position is a 1-based (line, col) pair.
type position struct {
	line, col int
}

// pendingMacroCall tracks a positive-arity macro factory awaiting its
// argument list: the next token in the stream must be a RoundParen.
type pendingMacroCall struct {
	name    string
	factory header.MacroFactory
	arity   int
	pos     position
}

// Tokenizer is the single-pass, non-restartable, single-threaded scanner
// described by the core spec. Build one with New and call Run.
type Tokenizer struct {
	fragment *sourcefragment.Fragment
	header   *header.Header

	runes []rune
	idx   int

	line, col int

	st       state
	tokenStr strings.Builder
	tokenPos position

	statement  token.Statement
	statements []token.Statement

	quote     rune
	isEscaped bool

	leftParen, rightParen rune
	parenKind             parenKind
	parenCount            int
	parenPos              position
	isStringInParen       bool
	isCommentInParen      bool

	allowSemicolon bool

	pending *pendingMacroCall

	expectSemicolon bool

	logger *zap.Logger
}

// New builds a Tokenizer over fragment. expectSemicolon is true for
// top-level statement parsing and false inside argument lists;
// allowSemicolon relaxes the one-shot semicolon rule used to disambiguate
// Minecraft array prefixes ([I;, [B;, [L;).
func New(fragment *sourcefragment.Fragment, hdr *header.Header, expectSemicolon, allowSemicolon bool) *Tokenizer {
	return &Tokenizer{
		fragment:        fragment,
		header:          hdr,
		runes:           []rune(fragment.Raw),
		line:            fragment.BaseLine,
		col:             fragment.BaseCol - 1,
		expectSemicolon: expectSemicolon,
		allowSemicolon:  allowSemicolon,
		logger:          zap.NewNop(),
	}
}

// WithLogger attaches a logger for Debug-level macro-expansion tracing,
// returning t for chaining. Callers that don't attach one get a no-op
// logger from New.
func (t *Tokenizer) WithLogger(logger *zap.Logger) *Tokenizer {
	t.logger = logger
	return t
}

// Locator interface, for diag.Error anchoring when no token is available.
func (t *Tokenizer) Line() int            { return t.line }
func (t *Tokenizer) Col() int             { return t.col }
func (t *Tokenizer) FilePath() string     { return t.fragment.Path }
func (t *Tokenizer) ContextText() string  { return t.fragment.ContextText() }

// Run scans the whole fragment and returns its statements.
func (t *Tokenizer) Run() ([]token.Statement, *diag.Error) {
	if err := t.scan(); err != nil {
		return nil, err
	}

	switch t.st {
	case stateString:
		return nil, diag.NewJMCSyntaxException(
			"String literal contains an unescaped linebreak", nil, t,
			diag.RenderOptions{IsLengthIncludeCol: true, IsEntireLine: true},
			"If you intended to use multiple lines, try a multiline string with backticks",
		)
	case stateParen:
		tok := token.New(token.Keyword, t.parenPos.line, t.parenPos.col, string(t.leftParen), 0, 0)
		return nil, diag.NewJMCSyntaxException(
			"Bracket was never closed", &tok, t,
			diag.RenderOptions{IsDisplayColLength: true},
			"This can be the result of an unclosed string as well",
		)
	}

	if t.expectSemicolon && (len(t.statement) > 0 || t.tokenStr.Len() > 0) {
		if t.tokenStr.Len() > 0 {
			if err := t.flushToken(); err != nil {
				return nil, err
			}
		}
		if t.pending != nil {
			return nil, t.abandonPendingMacroCall()
		}
		last := t.statement[len(t.statement)-1]
		return nil, diag.NewJMCSyntaxException(
			"Expected semicolon(;)", &last, t,
			diag.RenderOptions{IsLengthIncludeCol: true, IsDisplayColLength: true},
			"",
		)
	}

	if !t.expectSemicolon {
		if t.tokenStr.Len() > 0 {
			if err := t.flushToken(); err != nil {
				return nil, err
			}
		}
		if t.pending != nil {
			return nil, t.abandonPendingMacroCall()
		}
		if len(t.statement) > 0 {
			t.pushStatement()
		}
	}

	return t.statements, nil
}

func (t *Tokenizer) scan() *diag.Error {
	skip := 0
	for t.idx = 0; t.idx < len(t.runes); t.idx++ {
		if skip > 0 {
			skip--
			continue
		}
		ch := t.runes[t.idx]
		t.col++

		if ch == ';' && t.st == stateIdle && !t.expectSemicolon {
			if t.allowSemicolon {
				t.allowSemicolon = false
			} else {
				return diag.NewJMCSyntaxException("Unexpected semicolon(;)", nil, t, diag.RenderOptions{IsDisplayColLength: true}, "")
			}
		}

		if ch == '\n' {
			if err := t.handleNewline(); err != nil {
				return err
			}
			continue
		}

		if ch == '/' && t.peek(1) == '/' && t.st != stateParen && t.st != stateString {
			skip = 1
			if t.tokenStr.Len() > 0 {
				if err := t.flushToken(); err != nil {
					return err
				}
			}
			t.st = stateComment
			continue
		}

		var err *diag.Error
		switch t.st {
		case stateKeyword, stateOperator:
			err = t.scanKeywordOrOperator(ch)
		case stateParen:
			err = t.scanParen(ch)
		case stateString:
			err = t.scanString(ch)
		case stateComment:
			t.scanComment(ch)
		default:
			err = t.scanIdle(ch)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// peek returns the rune offset characters ahead of the current index, or
// the zero rune past end of input.
func (t *Tokenizer) peek(offset int) rune {
	i := t.idx + offset
	if i < 0 || i >= len(t.runes) {
		return 0
	}
	return t.runes[i]
}

func (t *Tokenizer) handleNewline() *diag.Error {
	switch t.st {
	case stateString:
		if t.quote == '`' {
			t.tokenStr.WriteRune('\n')
		} else {
			return diag.NewJMCSyntaxException("String literal contains unescaped line break", nil, t, diag.RenderOptions{IsEntireLine: true}, "")
		}
	case stateComment:
		t.st = stateIdle
	case stateKeyword, stateOperator:
		if err := t.flushToken(); err != nil {
			return err
		}
	case stateParen:
		t.tokenStr.WriteRune('\n')
	}
	t.line++
	t.col = 0
	return nil
}

func (t *Tokenizer) scanComment(ch rune) {
	// Comments run to end of line; handleNewline exits the state.
}

func (t *Tokenizer) scanIdle(ch rune) *diag.Error {
	if t.pending != nil && ch != ' ' && ch != '\t' && ch != '\r' && ch != '(' &&
		!(ch == '#' && len(t.statement) == 0 && t.tokenStr.Len() == 0) {
		return t.abandonPendingMacroCall()
	}
	switch {
	case ch == ' ' || ch == '\t' || ch == '\r':
		return nil
	case ch == ';':
		if len(t.statement) > 0 {
			t.pushStatement()
		}
		return nil
	case ch == ',':
		t.emitSynthetic(token.Comma, ",")
		return nil
	case ch == '#' && len(t.statement) == 0 && t.tokenStr.Len() == 0:
		t.st = stateComment
		return nil
	case ch == '\'' || ch == '"' || ch == '`':
		t.quote = ch
		t.tokenPos = position{t.line, t.col}
		t.tokenStr.Reset()
		t.st = stateString
		return nil
	case ch == '(' || ch == '[' || ch == '{':
		return t.openParen(ch)
	default:
		t.tokenPos = position{t.line, t.col}
		t.tokenStr.Reset()
		t.tokenStr.WriteRune(ch)
		if isOperatorChar(ch) {
			t.st = stateOperator
		} else {
			t.st = stateKeyword
		}
		return nil
	}
}

func (t *Tokenizer) openParen(ch rune) *diag.Error {
	close, kind := matchingBracket(ch)
	t.leftParen = ch
	t.rightParen = close
	t.parenKind = kind
	t.parenCount = 1
	t.parenPos = position{t.line, t.col}
	t.tokenStr.Reset()
	t.tokenStr.WriteRune(ch)
	t.isStringInParen = false
	t.isCommentInParen = false
	t.st = stateParen

	if ch == '[' {
		if (t.peek(1) == 'I' || t.peek(1) == 'B' || t.peek(1) == 'L') && t.peek(2) == ';' {
			t.tokenStr.WriteRune(t.peek(1))
			t.tokenStr.WriteRune(';')
			t.idx += 2
			t.col += 2
			t.allowSemicolon = true
		}
	}
	return nil
}

func (t *Tokenizer) scanKeywordOrOperator(ch rune) *diag.Error {
	if t.st == stateOperator && isOperatorChar(ch) {
		t.tokenStr.WriteRune(ch)
		return nil
	}
	if t.st == stateKeyword && !isSeparator(ch) && !isOperatorChar(ch) {
		t.tokenStr.WriteRune(ch)
		return nil
	}
	if err := t.flushToken(); err != nil {
		return err
	}
	return t.scanIdle(ch)
}

func (t *Tokenizer) scanString(ch rune) *diag.Error {
	if t.isEscaped {
		t.isEscaped = false
		switch ch {
		case 'n':
			t.tokenStr.WriteRune('\n')
		case 'r':
			t.tokenStr.WriteRune('\r')
		case 't':
			t.tokenStr.WriteRune('\t')
		case '\\':
			t.tokenStr.WriteRune('\\')
		case '0':
			t.tokenStr.WriteRune(0)
		case '\'', '"':
			t.tokenStr.WriteRune(ch)
		default:
			t.tokenStr.WriteRune('\\')
			t.tokenStr.WriteRune(ch)
		}
		return nil
	}
	if ch == '\\' {
		if t.idx+1 >= len(t.runes) {
			return diag.NewJMCSyntaxException("String literal contains unescaped line break", nil, t, diag.RenderOptions{IsEntireLine: true}, "")
		}
		t.isEscaped = true
		return nil
	}
	if ch != t.quote {
		t.tokenStr.WriteRune(ch)
		return nil
	}
	if t.quote == '`' {
		if err := t.validateMultilineString(); err != nil {
			return err
		}
		s := t.tokenStr.String()
		t.tokenStr.Reset()
		t.tokenStr.WriteString(s[strings.IndexByte(s, '\n')+1 : strings.LastIndexByte(s, '\n')])
	}
	return t.flushToken()
}

// validateMultilineString enforces that a backtick string's content spans
// at least two newlines and that the text sharing a line with either
// backtick is whitespace-only.
func (t *Tokenizer) validateMultilineString() *diag.Error {
	s := t.tokenStr.String()
	first := strings.IndexByte(s, '\n')
	last := strings.LastIndexByte(s, '\n')
	if first < 0 {
		return diag.NewJMCSyntaxException("Expected a newline after the opening backtick(`) for a multiline string", nil, t, diag.RenderOptions{}, "")
	}
	if first == last {
		return diag.NewJMCSyntaxException("Expected a newline before the closing backtick(`) for a multiline string", nil, t, diag.RenderOptions{IsDisplayColLength: true}, "")
	}
	firstLine := s[:first]
	lastLine := s[last+1:]
	if firstLine != "" && !isWhitespaceOnly(firstLine) {
		return diag.NewJMCSyntaxException("Expected only whitespace on the line after the opening backtick(`)", nil, t, diag.RenderOptions{IsDisplayColLength: true}, "")
	}
	if lastLine != "" && !isWhitespaceOnly(lastLine) {
		return diag.NewJMCSyntaxException("Expected only whitespace on the line before the closing backtick(`)", nil, t, diag.RenderOptions{IsDisplayColLength: true}, "")
	}
	return nil
}

func isWhitespaceOnly(s string) bool {
	for _, r := range s {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

func (t *Tokenizer) scanParen(ch rune) *diag.Error {
	if t.isStringInParen {
		t.tokenStr.WriteRune(ch)
		if ch == t.quote {
			t.isStringInParen = false
		}
		return nil
	}
	if t.isCommentInParen {
		t.tokenStr.WriteRune(ch)
		return nil
	}
	switch ch {
	case '\'', '"', '`':
		t.quote = ch
		t.isStringInParen = true
		t.tokenStr.WriteRune(ch)
		return nil
	case '#':
		if t.tokenStr.Len() == 1 {
			t.isCommentInParen = true
		}
		t.tokenStr.WriteRune(ch)
		return nil
	case t.leftParen:
		t.parenCount++
		t.tokenStr.WriteRune(ch)
		return nil
	case t.rightParen:
		t.parenCount--
		t.tokenStr.WriteRune(ch)
		if t.parenCount == 0 {
			return t.closeParen()
		}
		return nil
	default:
		t.tokenStr.WriteRune(ch)
		return nil
	}
}

func (t *Tokenizer) closeParen() *diag.Error {
	var kind token.Kind
	switch t.parenKind {
	case parenRound:
		kind = token.RoundParen
	case parenSquare:
		kind = token.SquareParen
	default:
		kind = token.CurlyParen
	}
	tok := token.New(kind, t.parenPos.line, t.parenPos.col, t.tokenStr.String(), 0, 0)
	t.st = stateIdle
	t.tokenStr.Reset()

	if t.pending != nil && kind == token.RoundParen {
		return t.completeMacroCall(tok)
	}

	t.statement = append(t.statement, tok)

	if kind == token.CurlyParen && t.shouldTerminateOnCurly() {
		t.pushStatement()
	}
	return nil
}

// shouldTerminateOnCurly implements statement-termination rule 2 and its
// refinements: a just-closed CurlyParen ends the statement when the
// statement's leading keyword calls for brace termination, or the
// statement is decorator-prefixed, or it's an execute...run/expand
// block, or a return-run sequence.
func (t *Tokenizer) shouldTerminateOnCurly() bool {
	if len(t.statement) == 0 {
		return false
	}
	first := t.statement[0]
	if first.Kind == token.Keyword && strings.HasPrefix(first.String, "@") {
		return true
	}
	if first.Kind == token.Keyword && terminateLine[first.String] {
		if first.String == "if" && !t.isShortenedIf() {
			return false
		}
		return true
	}
	if first.Kind == token.Keyword && first.String == "execute" {
		n := len(t.statement)
		if n >= 2 {
			prev := t.statement[n-2]
			if prev.Kind == token.Keyword && (prev.String == "run" || prev.String == "expand") {
				return true
			}
		}
	}
	n := len(t.statement)
	if n >= 3 {
		a, b, c := t.statement[n-3], t.statement[n-2], t.statement[n-1]
		if a.Kind == token.Keyword && a.String == "return" && b.Kind == token.Keyword && b.String == "run" && c.Kind == token.CurlyParen {
			return true
		}
	}
	return false
}

// isShortenedIf reports whether the in-progress `if` statement is the
// brace-terminated shorthand (`if (...) { ... }`) rather than the
// semicolon-terminated full form that merely contains a curly body
// (e.g. an NBT literal argument).
func (t *Tokenizer) isShortenedIf() bool {
	for i, tok := range t.statement {
		if i == 0 {
			continue
		}
		if tok.Kind == token.RoundParen {
			return i == len(t.statement)-2 || i == 1
		}
	}
	return len(t.statement) == 2
}

// emitSynthetic appends a single-character token (Comma) at the
// current cursor position directly to the in-progress statement.
func (t *Tokenizer) emitSynthetic(kind token.Kind, s string) {
	t.statement = append(t.statement, token.New(kind, t.line, t.col, s, 0, 0))
}

func (t *Tokenizer) pushStatement() {
	if len(t.statement) == 0 {
		return
	}
	stmt := make(token.Statement, len(t.statement))
	copy(stmt, t.statement)
	t.statements = append(t.statements, stmt)
	t.statement = nil
}

// flushToken finalizes the in-progress Keyword/Operator/String run into a
// token, checking it against the Header's macro table when it's a
// Keyword.
func (t *Tokenizer) flushToken() *diag.Error {
	switch t.st {
	case stateString:
		tok := token.New(token.String, t.tokenPos.line, t.tokenPos.col, t.tokenStr.String(), 0, t.quote)
		t.statement = append(t.statement, tok)
		t.st = stateIdle
		t.tokenStr.Reset()
		return nil
	case stateOperator:
		tok := token.New(token.Operator, t.tokenPos.line, t.tokenPos.col, t.tokenStr.String(), 0, 0)
		t.statement = append(t.statement, tok)
		t.st = stateIdle
		t.tokenStr.Reset()
		return nil
	case stateKeyword:
		name := t.tokenStr.String()
		pos := t.tokenPos
		t.st = stateIdle
		t.tokenStr.Reset()
		return t.flushKeyword(name, pos)
	default:
		return nil
	}
}

func (t *Tokenizer) flushKeyword(name string, pos position) *diag.Error {
	factory, arity, ok := t.header.Macro(name)
	if !ok {
		t.statement = append(t.statement, token.New(token.Keyword, pos.line, pos.col, name, 0, 0))
		return nil
	}
	if arity == 0 {
		expanded := factory.Call(nil, pos.line, pos.col)
		t.logger.Debug("expanding macro", zap.String("name", name), zap.Int("line", pos.line), zap.Int("col", pos.col), zap.Int("arity", 0))
		t.statement = append(t.statement, expanded...)
		return nil
	}
	t.pending = &pendingMacroCall{name: name, factory: factory, arity: arity, pos: pos}
	return nil
}

// abandonPendingMacroCall reports the spec-mandated error for a
// positive-arity macro name not immediately followed by its argument
// list, and clears t.pending so the offending token isn't mistaken for
// completing some later, unrelated RoundParen.
func (t *Tokenizer) abandonPendingMacroCall() *diag.Error {
	pending := t.pending
	t.pending = nil
	tok := token.New(token.Keyword, pending.pos.line, pending.pos.col, pending.name, 0, 0)
	return diag.NewJMCSyntaxException(
		"Expected round bracket after macro factory", &tok, t, diag.RenderOptions{IsDisplayColLength: true},
		"add parentheses immediately after the macro name, e.g. "+pending.name+"(args)",
	)
}

// completeMacroCall reparses a just-closed RoundParen's contents as an
// argument list for the pending macro factory.
func (t *Tokenizer) completeMacroCall(paren token.Token) *diag.Error {
	pending := t.pending
	t.pending = nil

	inner := paren.String
	if len(inner) >= 2 {
		inner = inner[1 : len(inner)-1]
	}
	args, err := ParseArgumentList(t.fragment, t.header, inner, paren.Line, paren.Col+1, false)
	if err != nil {
		return err
	}
	if len(args) != pending.arity {
		tok := token.New(token.RoundParen, pending.pos.line, pending.pos.col, "(", 0, 0)
		return diag.NewJMCSyntaxException(
			"Macro factory argument count mismatch", &tok, t, diag.RenderOptions{}, "")
	}

	flatArgs := make([]token.Token, 0, len(args))
	for _, a := range args {
		flatArgs = append(flatArgs, a.Value...)
	}
	expanded := pending.factory.Call(flatArgs, pending.pos.line, pending.pos.col)
	t.logger.Debug("expanding macro", zap.String("name", pending.name), zap.Int("line", pending.pos.line), zap.Int("col", pending.pos.col), zap.Int("arity", pending.arity))
	t.statement = append(t.statement, expanded...)
	return nil
}
