package vanilla

import "testing"

func TestIsCommand(t *testing.T) {
	if !IsCommand("execute") {
		t.Error("expected execute to be a vanilla command")
	}
	if IsCommand("not-a-real-command") {
		t.Error("did not expect not-a-real-command to be a vanilla command")
	}
}

func TestIsCondition(t *testing.T) {
	if !IsCondition("predicate") {
		t.Error("expected predicate to be a vanilla condition")
	}
	if IsCondition("advancement") {
		t.Error("advancement is a command, not a condition")
	}
}

func TestResolveJSONFileType(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantOK  bool
	}{
		{"advancements", "advancements", true},
		{"advancement", "advancements", true},
		{"recipe", "recipes", true},
		{"worldgen/biome", "worldgen/biome", true},
		{"not_a_type", "", false},
	}
	for _, c := range cases {
		got, ok := ResolveJSONFileType(c.in)
		if ok != c.wantOK || got != c.want {
			t.Errorf("ResolveJSONFileType(%q) = (%q, %v), want (%q, %v)", c.in, got, ok, c.want, c.wantOK)
		}
	}
}
