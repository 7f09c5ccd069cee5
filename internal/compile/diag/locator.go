package diag

// Locator is the subset of Tokenizer (or any other source cursor) the
// formatter needs to report a position-less diagnostic — one raised
// without an anchoring Token, where the formatter falls back to the
// cursor's current line/col instead.
type Locator interface {
	// Line and Col report the cursor's current 1-based position.
	Line() int
	Col() int
	// FilePath is the originating file path, used in diagnostic headers.
	FilePath() string
	// ContextText is the text diagnostics slice source lines out of (the
	// enclosing file, even when the cursor is over a nested fragment).
	ContextText() string
}
