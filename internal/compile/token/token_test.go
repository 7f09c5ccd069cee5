package token

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLengthMatchesSourceColumnsForNonStringKinds(t *testing.T) {
	kw := New(Keyword, 1, 1, "function", 0, 0)
	require.Equal(t, len("function"), kw.Length())

	paren := New(RoundParen, 1, 1, "(1, 2)", 0, 0)
	require.Equal(t, len("(1, 2)"), paren.Length())
}

func TestLengthMatchesQuotedRenderingForStringKind(t *testing.T) {
	str := New(String, 1, 1, "hi", 0, '"')
	require.Equal(t, len(`"hi"`), str.Length())

	withEscape := New(String, 1, 1, "a\tb", 0, '"')
	require.Equal(t, len(`"a\tb"`), withEscape.Length())
}

func TestKeywordFullStringRoundTrips(t *testing.T) {
	kw := New(Keyword, 1, 1, "say", 0, 0)
	require.Equal(t, "say", kw.FullString())
}

func TestStringFullStringRoundTripsThroughQuoting(t *testing.T) {
	str := New(String, 1, 1, `hello "world"`, 0, '\'')
	full := str.FullString()
	require.Equal(t, `'hello "world"'`, full)
}

func TestFullStringPrefersTheQuoteWithFewerEscapes(t *testing.T) {
	// Two apostrophes but only one double quote: wrapping in double
	// quotes needs a single escape instead of two.
	str := New(String, 1, 1, `it's don't say "hi`, 0, '\'')
	require.Equal(t, `"it's don't say \"hi"`, str.FullString())
}

func TestFullStringBreaksTiesTowardTheOriginatingQuote(t *testing.T) {
	str := New(String, 1, 1, `plain text`, 0, '\'')
	require.Equal(t, `'plain text'`, str.FullString())

	str2 := New(String, 1, 1, `plain text`, 0, '"')
	require.Equal(t, `"plain text"`, str2.FullString())
}

func TestOriginalStringReproducesBacktickMultilineSource(t *testing.T) {
	str := New(String, 1, 1, "line one\nline two", 0, '`')
	require.Equal(t, "`\nline one\nline two\n`", str.OriginalString())
}

func TestPreferredQuotePicksFewerOccurrences(t *testing.T) {
	require.Equal(t, byte('\''), byte(PreferredQuote(`has "one" double`, '"')))
	require.Equal(t, byte('"'), byte(PreferredQuote(`it's got two singles`, '\'')))
}

func TestPreferredQuoteBreaksTiesToPreferred(t *testing.T) {
	require.Equal(t, byte('"'), byte(PreferredQuote("no quotes here", '"')))
	require.Equal(t, byte('\''), byte(PreferredQuote("no quotes here", '\'')))
	require.Equal(t, byte('\''), byte(PreferredQuote("no quotes here", 0)))
}

func TestCurlyParenInvariantPanicsOnMismatchedBraces(t *testing.T) {
	require.Panics(t, func() {
		New(CurlyParen, 1, 1, "not braces", 0, 0)
	})
}
