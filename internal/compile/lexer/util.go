package lexer

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/jmc-lang/jmc/internal/compile/diag"
	"github.com/jmc-lang/jmc/internal/compile/token"
)

// absPath resolves path to an absolute form, used as the Header's
// import-dedup key so two different relative spellings of the same file
// (e.g. from nested imports) are still recognized as the same visit.
func absPath(path string) (string, error) {
	return filepath.Abs(path)
}

// isDecorator reports whether s names a decorator invocation: an '@'
// prefix with at least two characters of name following it.
func isDecorator(s string) bool {
	return len(s) > 2 && strings.HasPrefix(s, "@")
}

// isConnected reports whether cur immediately follows prev with no
// whitespace between them — used to recognize `TYPE(PATH)` as one
// pasted-together resource declaration head rather than two separate
// tokens that merely happen to be adjacent in the statement.
func isConnected(prev, cur token.Token) bool {
	return prev.Line == cur.Line && cur.Col == prev.Col+prev.Length()
}

var mcNameRe = regexp.MustCompile(`^[a-z0-9_/.]+$`)

// conventionJMCToMC validates and converts a dotted JMC identifier into
// a '/'-separated Minecraft resource path. If prefix is non-empty and
// name starts with "this.", prefix is substituted for "this." first (the
// way a function inside a class scope refers to its own class). On
// failure it returns a MinecraftSyntaxWarning, including a "remove the
// parentheses" hint when the offending text ends in "()" (a common
// mistake: writing a function name as if it were being called); logger
// records the warning at Warn before it's turned into a returned error.
func conventionJMCToMC(name string, tok *token.Token, src diag.Locator, logger *zap.Logger, prefix string, lowercase bool) (string, *diag.Error) {
	if strings.HasPrefix(name, ".") || strings.HasSuffix(name, ".") {
		logger.Warn("rejecting Minecraft name", zap.String("name", name), zap.String("reason", "starts or ends with '.'"))
		return "", diag.NewMinecraftSyntaxWarning(
			fmt.Sprintf("%q must not start or end with '.'", name), tok, src, diag.RenderOptions{}, "")
	}

	if prefix != "" && strings.HasPrefix(name, "this.") {
		name = prefix + strings.TrimPrefix(name, "this.")
	}
	if lowercase {
		name = strings.ToLower(name)
	}

	converted := strings.ReplaceAll(name, ".", "/")
	if !mcNameRe.MatchString(converted) {
		suggestion := ""
		if strings.HasSuffix(name, "()") {
			suggestion = "remove the parentheses"
		}
		logger.Warn("rejecting Minecraft name", zap.String("name", name), zap.String("reason", "invalid characters"))
		return "", diag.NewMinecraftSyntaxWarning(
			fmt.Sprintf("%q is not a valid Minecraft function/resource name", name), tok, src, diag.RenderOptions{}, suggestion)
	}
	return converted, nil
}

// isVanillaFunctionShape implements the vanilla-function heuristic: a
// statement starting with the "function" keyword that actually matches
// the shape of a vanilla /function command (left for FuncContent to
// lower as a command, not registered as a JMC function definition).
//
// Two shapes qualify:
//   - exactly two tokens, the second a String (`function "namespace:path"`);
//   - `function NAMESPACE : PATH`, optionally continued by `/`-separated
//     path segments (each additional `/segment` pair counts as one unit
//     toward the logical length), where the logical length after the
//     colon-path is 4 (nothing more), 5 with a trailing CurlyParen (an
//     inline `run {...}` style command body), or >= 5 with a `with`
//     keyword at the next slot (a data-merge command).
func isVanillaFunctionShape(stmt token.Statement) bool {
	if len(stmt) == 2 && stmt[1].Kind == token.String {
		return true
	}

	if len(stmt) < 4 {
		return false
	}
	if stmt[1].Kind != token.Keyword || stmt[3].Kind != token.Keyword {
		return false
	}
	if stmt[2].Kind != token.Operator || stmt[2].String != ":" {
		return false
	}

	idx := 4
	for idx+1 < len(stmt) && stmt[idx].Kind == token.Operator && stmt[idx].String == "/" && stmt[idx+1].Kind == token.Keyword {
		idx += 2
	}

	switch remaining := len(stmt) - idx; {
	case remaining == 0:
		return true
	case remaining == 1:
		return stmt[idx].Kind == token.CurlyParen || (stmt[idx].Kind == token.Keyword && stmt[idx].String == "with")
	default:
		return stmt[idx].Kind == token.Keyword && stmt[idx].String == "with"
	}
}
