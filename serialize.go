package cup

import (
	"github.com/anxuanzi/cup/pkg/node"
	"github.com/anxuanzi/cup/pkg/platform"
)

func toWindowSummaries(windows []platform.WindowInfo, fg platform.WindowInfo) []node.WindowSummary {
	out := make([]node.WindowSummary, 0, len(windows))
	for _, w := range windows {
		var bounds *node.Bounds
		if w.Bounds != nil {
			b := *w.Bounds
			bounds = &b
		}
		out = append(out, node.WindowSummary{
			Title:      w.Title,
			PID:        w.PID,
			Foreground: w.PID != 0 && w.PID == fg.PID,
			Bounds:     bounds,
			URL:        w.URL,
		})
	}
	return out
}

// SerializeCompact renders an envelope as the compact LLM-facing text
// format, including the situational-awareness window list gathered
// during the Capture call that produced env.
func (s *Session) SerializeCompact(env *node.Envelope) string {
	s.mu.Lock()
	windows := toWindowSummaries(s.lastWindows, s.lastFg)
	rawCount := s.lastRawCount
	s.mu.Unlock()
	return node.SerializeCompact(env, env.Tree, rawCount, windows)
}

// SerializeOverview renders a window-list-only report: no tree walking,
// no element IDs.
func (s *Session) SerializeOverview() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.adapter.GetAllWindows()
	if err != nil {
		return "", NewError(TagCaptureFailed, "failed to enumerate windows", err)
	}
	fg, _ := s.adapter.GetForegroundWindow()
	screenInfo, _ := s.adapter.GetScreenInfo()

	return node.SerializeOverview(toWindowSummaries(all, fg), s.adapter.PlatformName(), screenInfo.W, screenInfo.H), nil
}
