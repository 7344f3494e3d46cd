package node

import (
	"fmt"
	"strings"
)

// TruncateRunes truncates s to n code points, appending "..." if cut.
func TruncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

func escapeText(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = strings.ReplaceAll(s, "\n", " ")
	return s
}

// WindowSummary is the minimal window description the overview serializer
// and the compact-text header render.
type WindowSummary struct {
	Title      string
	PID        int
	Foreground bool
	Bounds     *Bounds
	URL        string
}

// SerializeOverview renders a window-list-only report: no tree walking, no
// element IDs.
func SerializeOverview(windows []WindowSummary, platform string, w, h int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# CUP %s | %s | %dx%d\n", EnvelopeVersion, platform, w, h)
	fmt.Fprintf(&b, "# overview | %d windows\n\n", len(windows))

	for _, win := range windows {
		title := win.Title
		if title == "" {
			title = "(untitled)"
		}
		prefix := "  "
		marker := ""
		if win.Foreground {
			prefix = "* "
			marker = "[fg] "
		}
		parts := []string{prefix + marker + title}
		if win.PID != 0 {
			parts = append(parts, fmt.Sprintf("(pid:%d)", win.PID))
		}
		if win.Bounds != nil {
			parts = append(parts, fmt.Sprintf("@%d,%d %dx%d", win.Bounds.X, win.Bounds.Y, win.Bounds.W, win.Bounds.H))
		}
		if win.URL != "" {
			parts = append(parts, "url:"+TruncateRunes(win.URL, 80))
		}
		b.WriteString(strings.Join(parts, " "))
		b.WriteByte('\n')
	}
	return b.String()
}

// formatLine renders a single already-pruned node as a compact one-liner.
func formatLine(n *Node) string {
	parts := []string{fmt.Sprintf("[%s]", n.ID), string(n.Role)}

	if n.Name != "" {
		parts = append(parts, `"`+escapeText(TruncateRunes(n.Name, 80))+`"`)
	}

	if n.Bounds != nil {
		parts = append(parts, fmt.Sprintf("@%d,%d %dx%d", n.Bounds.X, n.Bounds.Y, n.Bounds.W, n.Bounds.H))
	}

	if len(n.States) > 0 {
		ss := make([]string, len(n.States))
		for i, s := range n.States {
			ss[i] = string(s)
		}
		parts = append(parts, "{"+strings.Join(ss, ",")+"}")
	}

	acts := n.MeaningfulActions()
	if len(acts) > 0 {
		as := make([]string, len(acts))
		for i, a := range acts {
			as[i] = string(a)
		}
		parts = append(parts, "["+strings.Join(as, ",")+"]")
	}

	if n.Value != "" && ValueRenderRoles[n.Role] {
		parts = append(parts, `val="`+escapeText(TruncateRunes(n.Value, 120))+`"`)
	}

	if attr := formatAttributes(n.Attributes); attr != "" {
		parts = append(parts, attr)
	}

	return strings.Join(parts, " ")
}

func formatAttributes(attrs map[string]string) string {
	if len(attrs) == 0 {
		return ""
	}
	var parts []string
	if lvl, ok := attrs["level"]; ok {
		parts = append(parts, "L"+lvl)
	}
	if ph, ok := attrs["placeholder"]; ok {
		ph = TruncateRunes(ph, 30)
		parts = append(parts, `ph="`+escapeText(ph)+`"`)
	}
	if orient, ok := attrs["orientation"]; ok && len(orient) > 0 {
		parts = append(parts, orient[:1])
	}
	vmin, hasMin := attrs["valueMin"]
	vmax, hasMax := attrs["valueMax"]
	if hasMin || hasMax {
		parts = append(parts, fmt.Sprintf("range=%s..%s", vmin, vmax))
	}
	if len(parts) == 0 {
		return ""
	}
	return "(" + strings.Join(parts, " ") + ")"
}

func emitCompact(n *Node, depth int, b *strings.Builder, counter *int) {
	*counter++
	b.WriteString(strings.Repeat("  ", depth))
	b.WriteString(formatLine(n))
	b.WriteByte('\n')
	for _, c := range n.Children {
		emitCompact(c, depth+1, b, counter)
	}
}

// SerializeCompact renders an envelope's (already-pruned) tree as compact
// LLM-facing text. rawCount is the node count of the unpruned tree, used
// only for the "N nodes (M before pruning)" header line.
func SerializeCompact(env *Envelope, pruned []*Node, rawCount int, windows []WindowSummary) string {
	var body strings.Builder
	counter := 0
	for _, root := range pruned {
		emitCompact(root, 0, &body, &counter)
	}

	var header strings.Builder
	fmt.Fprintf(&header, "# CUP %s | %s | %dx%d\n", env.Version, env.Platform, env.Screen.W, env.Screen.H)
	if env.App != nil {
		fmt.Fprintf(&header, "# app: %s\n", env.App.Name)
	}
	fmt.Fprintf(&header, "# %d nodes (%d before pruning)\n", counter, rawCount)
	if n := len(env.Tools); n > 0 {
		plural := "s"
		if n == 1 {
			plural = ""
		}
		fmt.Fprintf(&header, "# %d WebMCP tool%s available\n", n, plural)
	}
	if len(windows) > 0 {
		fmt.Fprintf(&header, "# --- %d open windows ---\n", len(windows))
		for _, w := range windows {
			title := TruncateRunes(w.Title, 50)
			if title == "" {
				title = "(untitled)"
			}
			marker := ""
			if w.Foreground {
				marker = " [fg]"
			}
			fmt.Fprintf(&header, "#   %s%s\n", title, marker)
		}
	}
	header.WriteByte('\n')

	return header.String() + body.String()
}
