package cup

import (
	"fmt"
	"image"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/anxuanzi/cup/pkg/input"
	"github.com/anxuanzi/cup/pkg/logging"
	"github.com/anxuanzi/cup/pkg/node"
	"github.com/anxuanzi/cup/pkg/platform"
	"github.com/anxuanzi/cup/pkg/screen"
)

// Session orchestrates one platform Adapter: capture populates the
// Reference Registry and the pruned-tree cache find_elements searches;
// execute resolves an ephemeral ID back through the Registry before
// dispatching to the adapter.
type Session struct {
	mu       sync.Mutex
	cfg      sessionConfig
	adapter  platform.Adapter
	registry *node.Registry
	log      *logging.Logger

	lastPruned   []*node.Node
	lastRawCount int
	lastWindows  []platform.WindowInfo
	lastFg       platform.WindowInfo
}

// defaultPlatformName maps the running OS to the adapter name registered
// for it; the web adapter must be requested explicitly via WithPlatform.
func defaultPlatformName() string {
	switch runtime.GOOS {
	case "windows":
		return "windows"
	case "darwin":
		return "darwin"
	default:
		return "linux"
	}
}

// NewSession constructs a Session and initializes its platform adapter.
// The adapter is torn down by Close.
func NewSession(opts ...SessionOption) (*Session, error) {
	cfg := defaultSessionConfig()
	for _, o := range opts {
		o(&cfg)
	}
	if cfg.platform == "" {
		cfg.platform = defaultPlatformName()
	}

	log := logging.WithPrefix("session")
	log.SetLevel(cfg.logLevel)

	adapter, err := platform.New(cfg.platform)
	if err != nil {
		return nil, NewError(TagAdapterUnavailable, fmt.Sprintf("no adapter registered for %q", cfg.platform), err)
	}
	if err := adapter.Initialize(); err != nil {
		return nil, NewError(TagAdapterUnavailable, "adapter initialization failed", err)
	}

	return &Session{
		cfg:      cfg,
		adapter:  adapter,
		registry: node.NewRegistry(),
		log:      log,
	}, nil
}

// Close releases the underlying platform adapter. The Session must not be
// used afterward.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.adapter.Close()
}

// CaptureOptions configures one Capture call. Zero values fall back to
// the Session's defaults (MaxDepth from WithMaxDepth, App from
// WithAppFilter).
type CaptureOptions struct {
	Scope    Scope
	App      string
	MaxDepth int
	Detail   Detail
}

func (s *Session) resolveWindows(opts CaptureOptions) ([]platform.WindowInfo, platform.WindowInfo, error) {
	all, err := s.adapter.GetAllWindows()
	if err != nil {
		return nil, platform.WindowInfo{}, NewError(TagCaptureFailed, "failed to enumerate windows", err)
	}
	fg, _ := s.adapter.GetForegroundWindow()

	filter := opts.App
	if filter == "" {
		filter = s.cfg.titleFilter
	}
	if filter == "" {
		return all, fg, nil
	}

	lower := strings.ToLower(filter)
	var filtered []platform.WindowInfo
	for _, w := range all {
		if strings.Contains(strings.ToLower(w.Title), lower) {
			filtered = append(filtered, w)
		}
	}
	if len(filtered) == 0 {
		return nil, fg, NewError(TagWindowNotFound, fmt.Sprintf("no window title matches %q", filter), nil)
	}
	return filtered, fg, nil
}

// Capture takes a CUP snapshot according to scope, populating the
// Registry used by subsequent Execute/FindElements calls.
func (s *Session) Capture(opts CaptureOptions) (*node.Envelope, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if opts.MaxDepth == 0 {
		opts.MaxDepth = s.cfg.maxDepth
	}
	if opts.Detail == "" {
		opts.Detail = node.DetailStandard
	}
	if opts.Scope == "" {
		opts.Scope = ScopeForeground
	}

	screenInfo, serr := s.adapter.GetScreenInfo()
	if serr != nil {
		// Backends without a screen-geometry query fall back to the
		// primary display bounds reported by pkg/screen.
		if d, derr := screen.PrimaryDisplay(); derr == nil {
			screenInfo = platform.ScreenInfo{W: d.Bounds.Width, H: d.Bounds.Height}
		}
	}
	envScreen := node.ScreenInfo{W: screenInfo.W, H: screenInfo.H, Scale: screenInfo.Scale}

	var windows []platform.WindowInfo
	var fg platform.WindowInfo
	var err error

	switch opts.Scope {
	case ScopeOverview:
		windows, fg, err = s.resolveWindows(opts)
		if err != nil {
			return nil, err
		}
		return node.BuildEnvelope(nil, s.adapter.PlatformName(), string(opts.Scope), envScreen, windowAppInfo(fg), nil, nowMs()), nil

	case ScopeForeground:
		if fg.Title == "" && fg.PID == 0 {
			fg, err = s.adapter.GetForegroundWindow()
			if err != nil {
				return nil, NewError(TagCaptureFailed, "failed to resolve foreground window", err)
			}
		}
		windows = []platform.WindowInfo{fg}
		s.lastFg = fg
		if all, err := s.adapter.GetAllWindows(); err == nil {
			s.lastWindows = all
		}

	case ScopeDesktop, ScopeFull:
		windows, fg, err = s.resolveWindows(opts)
		if err != nil {
			return nil, err
		}
		s.lastFg = fg
		s.lastWindows = windows

	default:
		return nil, NewError(TagInvalidParams, fmt.Sprintf("unknown scope %q", opts.Scope), nil)
	}

	builder := node.NewBuilder()
	roots, stats, err := s.adapter.CaptureTree(windows, opts.MaxDepth, builder)
	if err != nil {
		return nil, NewError(TagCaptureFailed, "tree capture failed", err)
	}
	s.log.Debug("captured %d nodes (max depth %d)", stats.Nodes, stats.MaxDepth)

	// The prior capture's native handles are dropped here; nothing holds
	// them once the Registry swap returns.
	s.registry.Swap(builder.Handles())

	pruned := node.Prune(roots, opts.Detail)
	s.lastPruned = pruned
	s.lastRawCount = node.CountNodes(roots)

	return node.BuildEnvelope(pruned, s.adapter.PlatformName(), string(opts.Scope), envScreen, windowAppInfo(fg), nil, nowMs()), nil
}

func windowAppInfo(w platform.WindowInfo) *node.AppInfo {
	if w.Title == "" && w.PID == 0 {
		return nil
	}
	return &node.AppInfo{Name: w.Title, PID: w.PID, BundleID: w.BundleID}
}

func nowMs() int64 {
	return time.Now().UnixMilli()
}

// FindElements searches the most recently pruned tree with AND-semantics
// across the supplied criteria; a zero-value field is not filtered on.
// Triggers an implicit foreground capture if nothing has been captured
// yet. Results never carry children.
func (s *Session) FindElements(criteria FindCriteria) ([]*node.Node, error) {
	s.mu.Lock()
	needCapture := s.lastPruned == nil
	s.mu.Unlock()

	if needCapture {
		if _, err := s.Capture(CaptureOptions{Scope: ScopeForeground}); err != nil {
			return nil, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*node.Node
	node.Walk(s.lastPruned, func(n *node.Node, depth int) {
		if criteria.Role != "" && n.Role != criteria.Role {
			return
		}
		if criteria.Name != "" && !strings.Contains(strings.ToLower(n.Name), strings.ToLower(criteria.Name)) {
			return
		}
		if criteria.State != "" && !n.HasState(criteria.State) {
			return
		}
		cp := *n
		cp.Children = nil
		out = append(out, &cp)
	})
	return out, nil
}

// Execute resolves an ephemeral ID through the Registry and dispatches
// the action to the platform adapter.
func (s *Session) Execute(elementID string, action Action, params map[string]string) ActionResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.registry.Lookup(elementID)
	if !ok {
		return ActionResult{ElementID: elementID, Success: false,
			Err: NewError(TagUnknownElement, elementID, nil), Message: "unknown element"}
	}
	if !node.IsCanonicalAction(string(action)) {
		return ActionResult{ElementID: elementID, Success: false,
			Err: NewError(TagUnknownAction, string(action), nil), Message: "unknown action"}
	}
	if !n.HasAction(action) {
		return ActionResult{ElementID: elementID, Success: false,
			Err: NewError(TagActionNotSupported, string(action), nil), Message: "action not in element's allow-list"}
	}

	if err := validateParams(action, params); err != nil {
		return ActionResult{ElementID: elementID, Success: false, Err: err, Message: err.Error()}
	}

	res := s.adapter.ExecuteAction(n.Ref, action, params)
	if !res.Success {
		return ActionResult{ElementID: elementID, Success: false,
			Err: translateAdapterErr(res.Err), Message: res.Message}
	}
	return ActionResult{ElementID: elementID, Success: true, Message: res.Message}
}

func validateParams(action Action, params map[string]string) error {
	switch action {
	case ActionType, ActionSetValue:
		if params["value"] == "" {
			return NewError(TagInvalidParams, "value is required", nil)
		}
	case ActionScroll:
		switch params["direction"] {
		case "up", "down", "left", "right":
		default:
			return NewError(TagInvalidParams, "direction must be one of up, down, left, right", nil)
		}
	}
	return nil
}

func translateAdapterErr(err error) error {
	if err == nil {
		return NewError(TagUnimplemented, "action failed", nil)
	}
	if err == platform.ErrUnsupported {
		return NewError(TagUnimplemented, "not implemented on this backend", err)
	}
	return NewError(TagCaptureFailed, "adapter error", err)
}

// PressKeys parses a "+"-separated combo string (e.g. "ctrl+shift+p") and
// dispatches it as a global keystroke. Unlike Execute this never touches
// the Registry: key dispatch is OS-global, not element-scoped, so it is
// sent through pkg/input directly rather than routed through the
// adapter's PressKeys (which native backends leave unimplemented for
// exactly this reason).
func (s *Session) PressKeys(combo string) ActionResult {
	c := node.ParseCombo(combo)
	if len(c.Keys) == 0 {
		return ActionResult{Success: false, Err: NewError(TagInvalidParams, "combo has no key", nil)}
	}
	for _, key := range c.Keys {
		if err := input.PressCombo(c.Modifiers, key); err != nil {
			return ActionResult{Success: false, Err: NewError(TagCaptureFailed, "key dispatch failed", err)}
		}
	}
	return ActionResult{Success: true, Message: "pressed " + node.RenderCombo(c)}
}

// BatchExecute runs action specs in order, stopping at the first failure.
// The returned slice holds a result for every spec attempted, so its
// length may be shorter than len(specs).
func (s *Session) BatchExecute(specs []ActionSpec) []ActionResult {
	results := make([]ActionResult, 0, len(specs))
	for _, spec := range specs {
		r := s.Execute(spec.ElementID, spec.Action, spec.Params)
		results = append(results, r)
		if !r.Success {
			break
		}
	}
	return results
}

// Screenshot captures the primary display, or a specific region if
// provided.
func (s *Session) Screenshot(region *Bounds) (image.Image, error) {
	if region == nil {
		return screen.CapturePrimary()
	}
	return screen.CaptureRect(screen.Rect{X: region.X, Y: region.Y, Width: region.W, Height: region.H})
}
