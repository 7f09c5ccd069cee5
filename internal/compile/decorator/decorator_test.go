package decorator

import (
	"testing"

	"github.com/jmc-lang/jmc/internal/compile/token"
)

func TestBuiltinTestDecoratorDoesNotSave(t *testing.T) {
	d, ok := Lookup("test")
	if !ok {
		t.Fatal("expected built-in test decorator to be registered")
	}
	if d.Save {
		t.Error("expected test decorator to be NoSave")
	}
	d.Effect(nil, "")
}

func TestLookupMissing(t *testing.T) {
	if _, ok := Lookup("nonexistent"); ok {
		t.Error("expected nonexistent decorator to be absent")
	}
}

func TestRegisterAddsDecorator(t *testing.T) {
	called := false
	Register(Descriptor{Name: "mark-saved", Save: true, Effect: func(args []token.Token, prefix string) {
		called = true
	}})
	d, ok := Lookup("mark-saved")
	if !ok || !d.Save {
		t.Fatal("expected mark-saved decorator to be registered and Save=true")
	}
	d.Effect(nil, "")
	if !called {
		t.Error("expected effect to run")
	}
}
