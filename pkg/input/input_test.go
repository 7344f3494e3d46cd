package input

import "testing"

func TestNormalizeKeyName(t *testing.T) {
	cases := map[string]string{
		"Enter":    "enter",
		"RETURN":   "enter",
		"Esc":      "escape",
		"PageDown": "pagedown",
		"F5":       "f5",
		"unmapped": "unmapped",
	}
	for in, want := range cases {
		if got := normalizeKeyName(in); got != want {
			t.Errorf("normalizeKeyName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNormalizeModifier(t *testing.T) {
	cases := map[string]string{
		"Meta":    "cmd",
		"Windows": "cmd",
		"Control": "ctrl",
		"Option":  "alt",
		"SHIFT":   "shift",
	}
	for in, want := range cases {
		if got := normalizeModifier(in); got != want {
			t.Errorf("normalizeModifier(%q) = %q, want %q", in, got, want)
		}
	}
}

// robotgoModifier bridges CUP's canonical "meta" to robotgo's "cmd" token,
// independent of normalizeModifier's separate alias table.
func TestRobotgoModifier(t *testing.T) {
	if got := robotgoModifier("meta"); got != "cmd" {
		t.Errorf("robotgoModifier(meta) = %q, want cmd", got)
	}
	if got := robotgoModifier("ctrl"); got != "ctrl" {
		t.Errorf("robotgoModifier(ctrl) = %q, want ctrl (passthrough)", got)
	}
}
