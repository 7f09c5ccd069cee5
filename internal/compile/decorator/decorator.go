// Package decorator implements the `@name` decorator registry consulted
// by the lexer driver when a statement's first token is a decorator
// (see the Lexer Driver's decorated-function form dispatch). The
// registry is intentionally small: decorators modify how a function is
// saved into the datapack, not its semantics, since semantic lowering is
// FuncContent's concern and explicitly out of scope here.
package decorator

import "github.com/jmc-lang/jmc/internal/compile/token"

// Effect runs a decorator's side effect against the decorator's
// arguments (already parsed via the tokenizer's argument-list grammar)
// and the prefix the enclosing class scope (if any) has established. It
// is invoked by the lexer driver once the decorated function's body has
// been recognized; it does not itself construct the function record.
type Effect func(args []token.Token, prefix string)

// Descriptor is a decorator's registry entry: its side-effect function
// and whether a function it decorates should still be saved into the
// datapack's function map (ModifyMcFunction::Save) or withheld
// (ModifyMcFunction::NoSave — the function is parsed and validated, but
// never emitted).
type Descriptor struct {
	Name   string
	Save   bool
	Effect Effect
}

// registry is the fixed name-to-descriptor mapping, seeded with the
// single built-in decorator and open to registration by callers that
// need additional ones.
var registry = map[string]Descriptor{
	"test": {
		Name:   "test",
		Save:   false,
		Effect: func(args []token.Token, prefix string) {},
	},
}

// Lookup returns the descriptor registered under name.
func Lookup(name string) (Descriptor, bool) {
	d, ok := registry[name]
	return d, ok
}

// Register adds or replaces a decorator descriptor. Intended for
// embedding applications that extend the registry beyond the built-in
// set; the lexer driver itself never calls this.
func Register(d Descriptor) {
	registry[d.Name] = d
}
