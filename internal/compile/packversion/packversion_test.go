package packversion

import (
	"testing"

	"github.com/jmc-lang/jmc/internal/compile/token"
)

type stubLocator struct{}

func (stubLocator) Line() int           { return 1 }
func (stubLocator) Col() int            { return 1 }
func (stubLocator) FilePath() string    { return "main.jmc" }
func (stubLocator) ContextText() string { return "@new-feature;" }

func TestRequiresZeroDisablesGating(t *testing.T) {
	pv := New(0)
	tok := token.New(token.Keyword, 1, 1, "new-feature", 0, 0)
	if err := pv.Requires(41, &tok, stubLocator{}, ""); err != nil {
		t.Fatalf("expected no error with gating disabled, got %v", err)
	}
}

func TestRequiresTooLow(t *testing.T) {
	pv := New(10)
	tok := token.New(token.Keyword, 1, 1, "new-feature", 0, 0)
	err := pv.Requires(41, &tok, stubLocator{}, "bump pack_format")
	if err == nil {
		t.Fatal("expected MinecraftVersionTooLow error")
	}
	if err.Kind.String() != "MinecraftVersionTooLow" {
		t.Fatalf("unexpected kind: %v", err.Kind)
	}
}

func TestRequiresSatisfied(t *testing.T) {
	pv := New(41)
	tok := token.New(token.Keyword, 1, 1, "new-feature", 0, 0)
	if err := pv.Requires(41, &tok, stubLocator{}, ""); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestFromMinecraftVersion(t *testing.T) {
	pv, ok := FromMinecraftVersion(MinecraftVersion{1, 20, 2})
	if !ok {
		t.Fatal("expected a resolvable pack_format for 1.20.2")
	}
	if pv.PackFormat() != 18 {
		t.Fatalf("expected pack_format 18, got %d", pv.PackFormat())
	}

	_, ok = FromMinecraftVersion(MinecraftVersion{1, 12, 0})
	if ok {
		t.Fatal("expected no pack_format for a pre-datapack version")
	}
}
