package node

import "testing"

func TestParseCombo(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantMods []string
		wantKeys []string
	}{
		{"ctrl shift p", "ctrl+shift+p", []string{"ctrl", "shift"}, []string{"p"}},
		{"spaced cmd c", " cmd + c ", []string{"meta"}, []string{"c"}},
		{"win alias", "win+d", []string{"meta"}, []string{"d"}},
		{"return alias", "return", nil, []string{"enter"}},
		{"esc alias", "esc", nil, []string{"escape"}},
		{"empty parts ignored", "ctrl++c", []string{"ctrl"}, []string{"c"}},
		{"duplicates removed", "ctrl+ctrl+c", []string{"ctrl"}, []string{"c"}},
		{"case insensitive", "CTRL+SHIFT+P", []string{"ctrl", "shift"}, []string{"p"}},
		{"function key passthrough", "ctrl+f5", []string{"ctrl"}, []string{"f5"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseCombo(tt.input)
			if !equalStrings(got.Modifiers, tt.wantMods) {
				t.Errorf("modifiers = %v, want %v", got.Modifiers, tt.wantMods)
			}
			if !equalStrings(got.Keys, tt.wantKeys) {
				t.Errorf("keys = %v, want %v", got.Keys, tt.wantKeys)
			}
		})
	}
}

func TestParseCombo_RoundTrip(t *testing.T) {
	combos := []Combo{
		{Modifiers: []string{"ctrl", "shift"}, Keys: []string{"p"}},
		{Modifiers: []string{"meta"}, Keys: []string{"c"}},
		{Modifiers: nil, Keys: []string{"f5"}},
	}
	for _, c := range combos {
		rendered := RenderCombo(c)
		reparsed := ParseCombo(rendered)
		if !equalStrings(reparsed.Modifiers, c.Modifiers) || !equalStrings(reparsed.Keys, c.Keys) {
			t.Errorf("round trip of %+v via %q produced %+v", c, rendered, reparsed)
		}
	}
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
