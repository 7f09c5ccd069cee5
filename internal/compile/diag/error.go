package diag

import (
	"fmt"

	"github.com/jmc-lang/jmc/internal/compile/token"
)

// Error is the single tagged error value every fallible operation in the
// compile pipeline returns. It carries its Kind for callers that branch on
// diagnostic taxonomy (the CLI colors warnings differently from
// exceptions) and a fully rendered message, built once at construction
// time by the formatter rather than re-derived on every Error() call.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// NewJMCSyntaxException builds the most common diagnostic: a syntax error
// anchored at tok (or, if tok is nil, at src's current cursor position).
func NewJMCSyntaxException(message string, tok *token.Token, src Locator, opts RenderOptions, suggestion string) *Error {
	return &Error{
		Kind:    JMCSyntaxException,
		Message: render(JMCSyntaxException, message, tok, src, opts, suggestion),
	}
}

// NewJMCSyntaxWarning builds a non-fatal-taxonomy diagnostic that still
// aborts the compilation unit (see Kind.IsWarning doc comment).
func NewJMCSyntaxWarning(message string, tok *token.Token, src Locator, opts RenderOptions, suggestion string) *Error {
	return &Error{
		Kind:    JMCSyntaxWarning,
		Message: render(JMCSyntaxWarning, message, tok, src, opts, suggestion),
	}
}

// NewMinecraftSyntaxWarning flags a construct that is syntactically valid
// JMC but will not behave as the author likely expects in vanilla
// Minecraft (for example, referencing an unrecognized vanilla command).
func NewMinecraftSyntaxWarning(message string, tok *token.Token, src Locator, opts RenderOptions, suggestion string) *Error {
	return &Error{
		Kind:    MinecraftSyntaxWarning,
		Message: render(MinecraftSyntaxWarning, message, tok, src, opts, suggestion),
	}
}

// NewMinecraftVersionTooLow reports that a feature requires a pack_format
// higher than the one configured for this project.
func NewMinecraftVersionTooLow(requiredPackFormat int, tok *token.Token, src Locator, opts RenderOptions, suggestion string) *Error {
	message := fmt.Sprintf("This feature requires pack_format %d or higher", requiredPackFormat)
	return &Error{
		Kind:    MinecraftVersionTooLow,
		Message: render(MinecraftVersionTooLow, message, tok, src, opts, suggestion),
	}
}

// NewHeaderFileNotFound reports a `#include`d header file that does not
// exist on disk.
func NewHeaderFileNotFound(path string) *Error {
	return &Error{
		Kind:    HeaderFileNotFound,
		Message: fmt.Sprintf("Header file not found: %s", path),
	}
}

// NewHeaderDuplicatedMacro reports a `#define` that collides with an
// already-registered macro name.
func NewHeaderDuplicatedMacro(message, fileName string, line int, lineStr string) *Error {
	return &Error{
		Kind:    HeaderDuplicatedMacro,
		Message: renderHeaderLine(message, fileName, line, lineStr, ""),
	}
}

// NewHeaderSyntaxException reports a malformed header directive line.
func NewHeaderSyntaxException(message, fileName string, line int, lineStr string, suggestion string) *Error {
	return &Error{
		Kind:    HeaderSyntaxException,
		Message: renderHeaderLine(message, fileName, line, lineStr, suggestion),
	}
}

// NewEvaluationException reports a constant-folding/arithmetic failure in
// a macro or keyword-argument expression.
func NewEvaluationException(expr string) *Error {
	return &Error{
		Kind:    EvaluationException,
		Message: fmt.Sprintf("Unable to evaluate expression: %s", expr),
	}
}

// NewJMCFileNotFound reports an `import`ed .jmc file or glob that matched
// nothing on disk.
func NewJMCFileNotFound(path string) *Error {
	return &Error{
		Kind:    JMCFileNotFound,
		Message: fmt.Sprintf("JMC file not found: %s", path),
	}
}

// NewJMCDecodeJSONError reports a resource declaration whose body failed
// to parse as JSON.
func NewJMCDecodeJSONError(path string, cause error) *Error {
	return &Error{
		Kind:    JMCDecodeJSONError,
		Message: fmt.Sprintf("Failed to decode JSON in %s: %s", path, cause),
	}
}
