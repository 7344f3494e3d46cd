package node

import "testing"

func TestFormatLine_ExactGrammar(t *testing.T) {
	n := &Node{
		ID:      "e0",
		Role:    RoleButton,
		Name:    "Submit",
		Bounds:  &Bounds{X: 100, Y: 200, W: 80, H: 30},
		States:  []State{StateFocused},
		Actions: []Action{ActionClick, ActionFocus},
	}
	got := formatLine(n)
	want := `[e0] button "Submit" @100,200 80x30 {focused} [click]`
	if got != want {
		t.Errorf("formatLine() = %q, want %q", got, want)
	}
}

func TestFormatLine_EscapesQuoteOnce(t *testing.T) {
	n := &Node{
		ID:   "e0",
		Role: RoleButton,
		Name: `Say "hi"`,
	}
	got := formatLine(n)
	want := `[e0] button "Say \"hi\""`
	if got != want {
		t.Errorf("formatLine() = %q, want %q", got, want)
	}
}

func TestSerializeOverview_MarksForeground(t *testing.T) {
	out := SerializeOverview([]WindowSummary{
		{Title: "Editor", PID: 42, Foreground: true},
		{Title: "Terminal", PID: 7},
	}, "macos", 1920, 1080)

	if !contains(out, "* [fg] Editor (pid:42)") {
		t.Errorf("expected foreground marker line, got:\n%s", out)
	}
	if !contains(out, "  Terminal (pid:7)") {
		t.Errorf("expected background window line, got:\n%s", out)
	}
}

func contains(haystack, needle string) bool {
	return len(haystack) >= len(needle) && indexOf(haystack, needle) >= 0
}

func indexOf(s, sub string) int {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return i
		}
	}
	return -1
}
