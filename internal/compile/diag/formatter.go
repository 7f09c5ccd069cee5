package diag

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jmc-lang/jmc/internal/compile/token"
)

// RenderOptions controls how a position-anchored diagnostic's source
// context and caret line are laid out. The three flags are independent:
// a caller picks the combination matching where the anchoring token sits
// relative to the error (at it, just past it, or spanning the whole
// line), mirroring the three booleans the original formatter takes.
type RenderOptions struct {
	// IsLengthIncludeCol advances the reported line/col past the token's
	// own text before rendering — used when the error actually concerns
	// whatever comes immediately after the token (e.g. "expected ';' after
	// this expression").
	IsLengthIncludeCol bool
	// IsDisplayColLength additionally widens the caret to span the
	// token's full length rather than pointing at a single column.
	IsDisplayColLength bool
	// IsEntireLine underlines from the column to the end of the source
	// line instead of a token-length span.
	IsEntireLine bool
}

func render(kind Kind, message string, tok *token.Token, src Locator, opts RenderOptions, suggestion string) string {
	var str string
	var length, line, col int
	if tok != nil {
		str = tok.FullString()
		length = tok.Length()
		line, col = tok.Line, tok.Col
	} else {
		str = ""
		length = 1
		line, col = src.Line(), src.Col()
	}

	displayLine, displayCol := line, col
	newlineCount := strings.Count(str, "\n")

	if opts.IsLengthIncludeCol {
		if newlineCount > 0 {
			line += newlineCount
			col = length - strings.LastIndex(str, "\n")
		} else {
			col += length
		}
		displayCol++
	}

	if opts.IsDisplayColLength {
		if newlineCount > 0 {
			displayLine += newlineCount
			displayCol = length - strings.LastIndex(str, "\n") + 1
		} else {
			displayCol += length
		}
	} else {
		displayCol++
	}

	lines := strings.Split(src.ContextText(), "\n")
	maxSpace := len(strconv.Itoa(displayLine + 1))
	var current string
	if displayLine-1 >= 0 && displayLine-1 < len(lines) {
		current = lines[displayLine-1]
	}
	var prev, next string
	if displayLine-2 >= 0 {
		prev = lines[displayLine-2]
	}
	if displayLine < len(lines) {
		next = lines[displayLine]
	}

	gutter := func(n int, text string) string {
		return fmt.Sprintf("%*d | %s", maxSpace, n, expandTabs(text))
	}

	var header, underline string
	var tabCount int
	if opts.IsEntireLine {
		tabCount = strings.Count(current, "\t")
		header = fmt.Sprintf("at line %d.", line)
		caretLen := len(current) - col + 1
		if caretLen < 1 {
			caretLen = 1
		}
		underline = strings.Repeat(" ", col+maxSpace+3*tabCount+2) + strings.Repeat("^", caretLen)
	} else {
		prefixLen := col - 1
		if prefixLen > len(current) {
			prefixLen = len(current)
		}
		if prefixLen < 0 {
			prefixLen = 0
		}
		tabCount = strings.Count(current[:prefixLen], "\t")
		header = fmt.Sprintf("at line %d col %d.", line, col)
		caretLen := displayCol - col
		if caretLen < 1 {
			caretLen = 1
		}
		underline = strings.Repeat(" ", col+maxSpace+3*tabCount+2) + strings.Repeat("^", caretLen)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "In %s\n", relativeFileName(src.FilePath(), line, col, opts.IsEntireLine))
	fmt.Fprintf(&b, "%s %s\n", message, header)
	if displayLine-1 >= 1 {
		fmt.Fprintln(&b, gutter(displayLine-1, prev))
	}
	fmt.Fprintln(&b, gutter(displayLine, current))
	fmt.Fprintln(&b, underline)
	if next != "" || displayLine+1 <= len(lines) {
		fmt.Fprintln(&b, gutter(displayLine+1, next))
	}
	if suggestion != "" {
		fmt.Fprintf(&b, "Suggestion: %s\n", suggestion)
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderHeaderLine(message, fileName string, line int, lineStr string, suggestion string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "In %s\n", fileName)
	fmt.Fprintf(&b, "%s at line %d.\n", message, line)
	fmt.Fprintln(&b, expandTabs(lineStr))
	if suggestion != "" {
		fmt.Fprintf(&b, "Suggestion: %s\n", suggestion)
	}
	return strings.TrimRight(b.String(), "\n")
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", "    ")
}

// relativeFileName renders path relative to the working directory when it
// lies underneath it, absolute otherwise, with a line/col suffix matched
// to whether the caller is reporting a whole-line or column-anchored
// diagnostic.
func relativeFileName(path string, line, col int, entireLine bool) string {
	display := path
	if cwd, err := os.Getwd(); err == nil {
		if rel, err := filepath.Rel(cwd, path); err == nil && !strings.HasPrefix(rel, "..") {
			display = rel
		}
	}
	if entireLine {
		return fmt.Sprintf("%s:%d", display, line)
	}
	return fmt.Sprintf("%s:%d:%d", display, line, col)
}
