package node

// Detail is a pruning level name accepted by Prune and the Session API.
type Detail string

const (
	DetailFull     Detail = "full"
	DetailStandard Detail = "standard"
	DetailMinimal  Detail = "minimal"
)

// ScreenInfo describes the primary display for the envelope header.
type ScreenInfo struct {
	W     int     `json:"w"`
	H     int     `json:"h"`
	Scale float64 `json:"scale,omitempty"`
}

// AppInfo identifies the application a scoped capture targeted.
type AppInfo struct {
	Name     string `json:"name,omitempty"`
	PID      int    `json:"pid,omitempty"`
	BundleID string `json:"bundleId,omitempty"`
}

// Tool describes a WebMCP-exposed action surfaced by a web-adapter page;
// carried through to the envelope but never interpreted by the core.
type Tool struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Envelope is the wire-level CUP snapshot: version, platform, timing,
// screen geometry, optional app scope, the node forest, and optional tool
// list.
type Envelope struct {
	Version   string     `json:"version"`
	Platform  string     `json:"platform"`
	Timestamp int64      `json:"timestamp"`
	Screen    ScreenInfo `json:"screen"`
	Scope     string     `json:"scope,omitempty"`
	App       *AppInfo   `json:"app,omitempty"`
	Tree      []*Node    `json:"tree"`
	Tools     []Tool     `json:"tools,omitempty"`
}

// EnvelopeVersion is the CUP wire-format version this implementation emits.
const EnvelopeVersion = "0.1.0"

// BuildEnvelope wraps a captured node forest in the CUP envelope shape.
func BuildEnvelope(tree []*Node, platform, scope string, screen ScreenInfo, app *AppInfo, tools []Tool, timestampMs int64) *Envelope {
	return &Envelope{
		Version:   EnvelopeVersion,
		Platform:  platform,
		Timestamp: timestampMs,
		Screen:    screen,
		Scope:     scope,
		App:       app,
		Tree:      tree,
		Tools:     tools,
	}
}
