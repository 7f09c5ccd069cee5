// Package header implements the compilation-wide mutable state shared by
// every Tokenizer and the Lexer driver: macros, textual substitutions,
// import dedup, and the vanilla command/condition allowlists.
package header

import (
	"time"

	"github.com/jmc-lang/jmc/internal/compile/token"
)

// MacroFactory expands a user-defined macro invocation into the tokens
// that replace it. call receives the already-parsed argument tokens (for
// zero-arity macros, an empty slice) and the position the macro
// invocation started at, so the produced tokens can be positioned as if
// they were written there directly.
type MacroFactory interface {
	Call(args []token.Token, line, col int) []token.Token
}

// macroEntry pairs a macro's expansion factory with its declared argument
// count (arity), checked exactly against the supplied argument list.
type macroEntry struct {
	factory MacroFactory
	arity   int
}

// Header is the compilation-wide bag of state threaded through every
// Tokenizer invocation and the Lexer driver. It is not safe for
// concurrent use from multiple goroutines without external
// synchronization — the reference implementation this is ported from
// assumes single-threaded compilation.
type Header struct {
	macros map[string]macroEntry
	// substitutions maps a textual key to a literal numeric-string
	// replacement, used by `#define` style constant substitution.
	substitutions map[string]string
	// visited is the set of already-imported file paths, used to dedup
	// recursive import resolution.
	visited map[string]bool
	// extraCommands and extraConditions are allowlists of additional
	// vanilla command/condition names beyond the built-in set. Nothing in
	// this module populates or reads them apart from the accessors below;
	// in particular the vanilla-function heuristic does not consult them.
	extraCommands   map[string]bool
	extraConditions map[string]bool
	// preservedPaths holds output paths the emitter must not overwrite.
	preservedPaths map[string]bool
	// credits accumulates credit-comment lines emitted verbatim into
	// generated function headers.
	credits []string
	// finishTime is set once compilation completes; nil beforehand.
	finishTime *time.Time
	// NoMetadata disables the emission of the generated-by comment block
	// datapacks normally carry.
	NoMetadata bool
}

// New returns an empty Header ready for a fresh compilation run.
func New() *Header {
	return &Header{
		macros:          make(map[string]macroEntry),
		substitutions:   make(map[string]string),
		visited:         make(map[string]bool),
		extraCommands:   make(map[string]bool),
		extraConditions: make(map[string]bool),
		preservedPaths:  make(map[string]bool),
	}
}

// DefineMacro registers a macro factory under name with the given arity.
// It does not check for a pre-existing definition — callers needing
// duplicate detection (header file `#define` parsing) should consult
// HasMacro first and raise a diag.Error themselves, since the exact
// message differs by call site.
func (h *Header) DefineMacro(name string, factory MacroFactory, arity int) {
	h.macros[name] = macroEntry{factory: factory, arity: arity}
}

// HasMacro reports whether name is a registered macro.
func (h *Header) HasMacro(name string) bool {
	_, ok := h.macros[name]
	return ok
}

// Macro returns the factory and declared arity registered for name.
func (h *Header) Macro(name string) (factory MacroFactory, arity int, ok bool) {
	entry, ok := h.macros[name]
	if !ok {
		return nil, 0, false
	}
	return entry.factory, entry.arity, true
}

// DefineSubstitution records a literal numeric-string replacement for key.
func (h *Header) DefineSubstitution(key, value string) {
	h.substitutions[key] = value
}

// Substitution looks up a textual substitution by key.
func (h *Header) Substitution(key string) (string, bool) {
	v, ok := h.substitutions[key]
	return v, ok
}

// MarkVisited records path as imported, returning true if it was already
// visited (the caller should silently skip re-importing it in that case).
func (h *Header) MarkVisited(path string) (alreadyVisited bool) {
	if h.visited[path] {
		return true
	}
	h.visited[path] = true
	return false
}

// AllowExtraCommand registers name as a recognized vanilla command beyond
// the built-in allowlist, typically from a loaded header file.
func (h *Header) AllowExtraCommand(name string) {
	h.extraCommands[name] = true
}

// AllowExtraCondition registers name as a recognized vanilla condition
// beyond the built-in allowlist.
func (h *Header) AllowExtraCondition(name string) {
	h.extraConditions[name] = true
}

// IsExtraCommand reports whether name was registered via AllowExtraCommand.
func (h *Header) IsExtraCommand(name string) bool {
	return h.extraCommands[name]
}

// IsExtraCondition reports whether name was registered via AllowExtraCondition.
func (h *Header) IsExtraCondition(name string) bool {
	return h.extraConditions[name]
}

// PreservePath marks path as one the emitter must not overwrite.
func (h *Header) PreservePath(path string) {
	h.preservedPaths[path] = true
}

// IsPreserved reports whether path was marked via PreservePath.
func (h *Header) IsPreserved(path string) bool {
	return h.preservedPaths[path]
}

// AddCredit appends a credit-comment line, preserving insertion order.
func (h *Header) AddCredit(line string) {
	h.credits = append(h.credits, line)
}

// Credits returns the accumulated credit-comment lines in insertion order.
func (h *Header) Credits() []string {
	return h.credits
}

// Finish records the compilation's completion time. Calling it more than
// once overwrites the previous timestamp.
func (h *Header) Finish(at time.Time) {
	h.finishTime = &at
}

// FinishTime returns the timestamp recorded by Finish, or the zero value
// and false if compilation has not finished yet.
func (h *Header) FinishTime() (time.Time, bool) {
	if h.finishTime == nil {
		return time.Time{}, false
	}
	return *h.finishTime, true
}
