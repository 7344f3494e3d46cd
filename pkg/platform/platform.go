// Package platform defines the contract every OS-specific capture and
// action backend implements, plus the name-keyed registry that lets a
// Session pick a concrete implementation at construction time without
// the root package importing any build-tag-gated file directly.
package platform

import (
	"errors"
	"fmt"

	"github.com/anxuanzi/cup/pkg/node"
)

// ScreenInfo is the primary display's geometry and pixel scale.
type ScreenInfo struct {
	W     int
	H     int
	Scale float64
}

// WindowInfo is a window descriptor returned by GetForegroundWindow and
// GetAllWindows. Handle is the backend's native reference (HWND, an
// AXUIElementRef wrapper, a CDP target ID, ...); capture backends pass it
// straight into CaptureTree without the caller needing to know its shape.
type WindowInfo struct {
	Handle     any
	Title      string
	PID        int
	BundleID   string
	Bounds     *node.Bounds
	Foreground bool
	URL        string // populated only by the web adapter
}

// CaptureStats summarizes one CaptureTree call, independent of pruning.
type CaptureStats struct {
	Nodes    int
	MaxDepth int
	Roles    map[node.Role]int
}

// Result is the outcome of one dispatched action, key-press sequence, or
// app launch.
type Result struct {
	Success bool
	Message string
	Err     error
}

// Ok builds a successful Result carrying a human-readable message.
func Ok(message string) Result { return Result{Success: true, Message: message} }

// Fail builds a failed Result from an error, surfacing its text as the
// Message so callers that only look at Message still get a useful value.
func Fail(err error) Result { return Result{Success: false, Err: err, Message: err.Error()} }

// ErrUnregistered is returned by New when no factory was registered under
// the requested name. It is a plain sentinel, not a tagged cup.Error,
// because pkg/platform must not import the root package (which imports
// pkg/platform to build a Session) — the root package translates this
// into the AdapterUnavailable wire tag at the boundary.
type ErrUnregistered string

func (e ErrUnregistered) Error() string {
	return fmt.Sprintf("platform: no adapter registered as %q", string(e))
}

// ErrUnsupported is returned by an Adapter method the current platform's
// accessibility APIs cannot implement at all, as opposed to an action that
// simply isn't available on a given element.
var ErrUnsupported = errors.New("platform: operation not supported on this backend")

// Adapter is the capability set a capture-and-act backend exposes to a
// Session: enumerate windows, materialize an accessibility subtree into
// CUP nodes, and dispatch actions, key presses, and app launches against
// the native references CaptureTree attached to each node's Ref field.
type Adapter interface {
	PlatformName() string
	Initialize() error

	GetScreenInfo() (ScreenInfo, error)
	GetForegroundWindow() (WindowInfo, error)
	GetAllWindows() ([]WindowInfo, error)

	// CaptureTree walks each window down to maxDepth (0 means unbounded)
	// and returns one root node per window, built via builder so ID
	// assignment stays centralized and monotonic across the whole batch.
	CaptureTree(windows []WindowInfo, maxDepth int, builder *node.Builder) ([]*node.Node, CaptureStats, error)

	// ExecuteAction dispatches a canonical action against the native
	// element referenced by ref (a node's Ref field, as attached during
	// the most recent CaptureTree). params carries action-specific
	// arguments, e.g. {"value": "..."} for setvalue.
	ExecuteAction(ref any, action node.Action, params map[string]string) Result

	PressKeys(modifiers, keys []string) Result
	LaunchApp(name string) Result

	Close() error
}

// Factory constructs a fresh Adapter instance. Backends register one under
// their platform name from an init() in a build-tag-gated file, so several
// backends can coexist in one binary (e.g. a native adapter and a
// web/CDP adapter) and a Session picks between them by name.
type Factory func() (Adapter, error)

var registry = map[string]Factory{}

// Register adds a factory under name. Called from backend init()s; not
// safe to call concurrently with New, which is fine since registration
// only ever happens at package-init time.
func Register(name string, f Factory) {
	registry[name] = f
}

// New constructs the adapter registered under name.
func New(name string) (Adapter, error) {
	f, ok := registry[name]
	if !ok {
		return nil, ErrUnregistered(name)
	}
	return f()
}

// Registered lists the names currently available, for diagnostics.
func Registered() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	return names
}
