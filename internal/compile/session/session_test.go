package session

import (
	"testing"

	"github.com/jmc-lang/jmc/internal/cli/config"
)

func TestNewBuildsEmptyDatapack(t *testing.T) {
	sess := New(config.Configuration{Namespace: "demo", LoadName: "__load__", PrivateName: "__private__"})

	if sess.Datapack == nil {
		t.Fatal("expected a non-nil Datapack")
	}
	if sess.Datapack.Namespace != "demo" {
		t.Errorf("expected namespace 'demo', got %s", sess.Datapack.Namespace)
	}
	if sess.Header == nil {
		t.Fatal("expected a non-nil Header")
	}
	if sess.Logger == nil {
		t.Fatal("expected a non-nil no-op logger")
	}
	if sess.RunID.String() == "" {
		t.Fatal("expected a non-empty RunID")
	}
}

func TestTwoSessionsGetDistinctRunIDs(t *testing.T) {
	a := New(config.Configuration{Namespace: "demo"})
	b := New(config.Configuration{Namespace: "demo"})
	if a.RunID == b.RunID {
		t.Error("expected distinct RunIDs across sessions")
	}
}
