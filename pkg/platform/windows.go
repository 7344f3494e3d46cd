//go:build windows

// Windows backend: UI Automation via raw COM interop, the same manual
// vtable-offset calling convention as the rest of this package's Windows
// support. The element tree comes from one cached subtree fetch per
// window; each node's properties are then read with the Current* accessors,
// one COM call per property.
package platform

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"sync"
	"syscall"
	"unsafe"

	"github.com/anxuanzi/cup/pkg/node"
)

func init() {
	Register("windows", newWindowsAdapter)
}

var (
	clsidCUIAutomation = &guid{0xff48dba4, 0x60ef, 0x4201, [8]byte{0xaa, 0x87, 0x54, 0x10, 0x3e, 0xef, 0x59, 0x4e}}
	iidIUIAutomation   = &guid{0x30cbe57d, 0xd9d0, 0x452a, [8]byte{0xab, 0x13, 0x7a, 0xc5, 0xac, 0x48, 0x25, 0xee}}
)

type guid struct {
	Data1 uint32
	Data2 uint16
	Data3 uint16
	Data4 [8]byte
}

// vtable offsets, IUnknown-relative. IUIAutomation and IUIAutomationElement
// expose far more than this; only what CaptureTree/ExecuteAction touch is
// listed.
const (
	vtblRelease = 2

	// IUIAutomation
	autoGetRootElement            = 5
	autoElementFromHandle         = 6
	autoGetFocusedElement         = 8
	autoElementFromHandleBuildCache = 10
	autoCreateCacheRequest        = 20

	// IUIAutomationElement
	elemSetFocus               = 3
	elemGetCachedPropertyValue = 12
	elemGetCachedPatternAs     = 15
	elemGetCurrentPattern      = 16
	elemGetCachedChildren      = 55
	elemGetCachedParent        = 56
	elemGetCurrentControlType  = 24
	elemGetCurrentName         = 26
	elemGetCurrentIsEnabled    = 31
	elemGetCurrentHasFocus     = 29
	elemGetCurrentProcessId    = 23
	elemGetCurrentBounds       = 46
	elemGetCurrentOffscreen    = 41

	// IUIAutomationCacheRequest
	cacheAddProperty   = 3
	cachePutTreeScope  = 5
	cacheAddPattern    = 7

	// IUIAutomationElementArray
	arrGetLength  = 3
	arrGetElement = 4
)

const (
	uiaPropertyControlType   = 30003
	uiaPropertyName          = 30005
	uiaPropertyBoundingRect  = 30001
	uiaPropertyIsEnabled     = 30010
	uiaPropertyHasKeyboard   = 30008
	uiaPropertyProcessId     = 30002
	uiaPropertyIsOffscreen   = 30022

	uiaPatternInvoke        = 10000
	uiaPatternValue         = 10002
	uiaPatternToggle        = 10015
	uiaPatternSelectionItem = 10010
	uiaPatternExpandCollapse = 10005
	uiaPatternScroll        = 10004
	uiaPatternRangeValue    = 10003

	treeScopeSubtree = 5 // Element | Descendants
)

var controlTypeToRole = map[int32]node.Role{
	50000: node.RoleButton,
	50001: node.RoleGroup,
	50002: node.RoleCheckbox,
	50003: node.RoleComboBox,
	50004: node.RoleTextbox,
	50005: node.RoleLink,
	50006: node.RoleImg,
	50007: node.RoleListItem,
	50008: node.RoleList,
	50009: node.RoleMenu,
	50010: node.RoleMenuBar,
	50011: node.RoleMenuItem,
	50012: node.RoleProgressBar,
	50013: node.RoleRadio,
	50014: node.RoleScrollBar,
	50015: node.RoleSlider,
	50016: node.RoleSpinButton,
	50017: node.RoleStatus,
	50018: node.RoleTabList,
	50019: node.RoleTab,
	50020: node.RoleText,
	50021: node.RoleToolbar,
	50022: node.RoleTooltip,
	50023: node.RoleTree,
	50024: node.RoleTreeItem,
	50025: node.RoleGeneric,
	50026: node.RoleGroup,
	50028: node.RoleTable,
	50029: node.RoleRow,
	50030: node.RoleDocument,
	50032: node.RoleWindow,
	50033: node.RolePane,
	50034: node.RoleGroup,
	50036: node.RoleTable,
	50037: node.RoleTitleBar,
	50038: node.RoleSeparator,
}

var (
	ole32    = syscall.NewLazyDLL("ole32.dll")
	user32   = syscall.NewLazyDLL("user32.dll")
	oleaut32 = syscall.NewLazyDLL("oleaut32.dll")

	procCoInitializeEx   = ole32.NewProc("CoInitializeEx")
	procCoUninitialize   = ole32.NewProc("CoUninitialize")
	procCoCreateInstance = ole32.NewProc("CoCreateInstance")
	procSysFreeString    = oleaut32.NewProc("SysFreeString")

	procGetForegroundWindow      = user32.NewProc("GetForegroundWindow")
	procGetWindowThreadProcessId = user32.NewProc("GetWindowThreadProcessId")
	procEnumWindows              = user32.NewProc("EnumWindows")
	procGetWindowTextW           = user32.NewProc("GetWindowTextW")
	procIsWindowVisible          = user32.NewProc("IsWindowVisible")
)

const (
	coinitMultithreaded = 0x0
	clsctxInprocServer  = 0x1
)

type rect struct{ Left, Top, Right, Bottom int32 }

// windowsAdapter implements platform.Adapter over UI Automation.
type windowsAdapter struct {
	mu             sync.Mutex
	automation     uintptr
	comInitialized bool
}

func newWindowsAdapter() (Adapter, error) {
	return &windowsAdapter{}, nil
}

func (a *windowsAdapter) PlatformName() string { return "windows" }

func (a *windowsAdapter) Initialize() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	runtime.LockOSThread()
	hr, _, _ := procCoInitializeEx.Call(0, coinitMultithreaded)
	if hr != 0 && hr != 1 {
		runtime.UnlockOSThread()
		return fmt.Errorf("CoInitializeEx failed: 0x%x", hr)
	}
	a.comInitialized = true

	var automation uintptr
	hr, _, _ = procCoCreateInstance.Call(
		uintptr(unsafe.Pointer(clsidCUIAutomation)),
		0,
		clsctxInprocServer,
		uintptr(unsafe.Pointer(iidIUIAutomation)),
		uintptr(unsafe.Pointer(&automation)),
	)
	if hr != 0 {
		procCoUninitialize.Call()
		a.comInitialized = false
		runtime.UnlockOSThread()
		return fmt.Errorf("CoCreateInstance(IUIAutomation) failed: 0x%x", hr)
	}
	a.automation = automation
	return nil
}

func (a *windowsAdapter) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.automation != 0 {
		comRelease(a.automation)
		a.automation = 0
	}
	if a.comInitialized {
		procCoUninitialize.Call()
		a.comInitialized = false
		runtime.UnlockOSThread()
	}
	return nil
}

func (a *windowsAdapter) GetScreenInfo() (ScreenInfo, error) {
	// Primary monitor metrics are read through robotgo at the session
	// layer (pkg/screen); UIA has no direct screen-geometry query.
	return ScreenInfo{}, ErrUnsupported
}

func (a *windowsAdapter) GetForegroundWindow() (WindowInfo, error) {
	hwnd, _, _ := procGetForegroundWindow.Call()
	if hwnd == 0 {
		return WindowInfo{}, fmt.Errorf("no foreground window")
	}
	return a.windowInfoFromHWND(hwnd, true)
}

func (a *windowsAdapter) GetAllWindows() ([]WindowInfo, error) {
	fg, _, _ := procGetForegroundWindow.Call()
	var out []WindowInfo
	for _, hwnd := range enumTopLevelWindows() {
		wi, err := a.windowInfoFromHWND(hwnd, hwnd == fg)
		if err == nil {
			out = append(out, wi)
		}
	}
	return out, nil
}

func (a *windowsAdapter) windowInfoFromHWND(hwnd uintptr, foreground bool) (WindowInfo, error) {
	var pid uint32
	procGetWindowThreadProcessId.Call(hwnd, uintptr(unsafe.Pointer(&pid)))

	buf := make([]uint16, 512)
	n, _, _ := procGetWindowTextW.Call(hwnd, uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
	title := syscall.UTF16ToString(buf[:n])

	return WindowInfo{
		Handle:     hwnd,
		Title:      title,
		PID:        int(pid),
		Foreground: foreground,
	}, nil
}

// CaptureTree fetches the whole subtree under each window in one COM call
// per window via a cache request, then walks the cached elements with
// GetCachedChildren. Pattern presence comes from the cache; control type,
// name, bounds, enabled/focus/offscreen and pattern states are read with
// Current* calls, one COM round trip per property per node. The cached
// property values themselves are not read.
func (a *windowsAdapter) CaptureTree(windows []WindowInfo, maxDepth int, builder *node.Builder) ([]*node.Node, CaptureStats, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.automation == 0 {
		return nil, CaptureStats{}, fmt.Errorf("automation not initialized")
	}

	cacheReq, err := a.buildCacheRequest()
	if err != nil {
		return nil, CaptureStats{}, err
	}
	defer comRelease(cacheReq)

	stats := CaptureStats{Roles: map[node.Role]int{}}
	var roots []*node.Node

	for _, w := range windows {
		hwnd, ok := w.Handle.(uintptr)
		if !ok {
			continue
		}
		var root uintptr
		hr, _, _ := callMethod(a.automation, autoElementFromHandleBuildCache, hwnd, cacheReq, uintptr(unsafe.Pointer(&root)))
		if hr != 0 || root == 0 {
			// Falls back to GetRootElement-style per-window lookup via
			// plain ElementFromHandle; a window a cache request cannot
			// resolve still gets a single-node placeholder rather than
			// dropping the window entirely.
			hr2, _, _ := callMethod(a.automation, autoElementFromHandle, hwnd, uintptr(unsafe.Pointer(&root)))
			if hr2 != 0 || root == 0 {
				continue
			}
		}

		n := a.walkCached(root, 0, maxDepth, builder, &stats)
		if n != nil {
			roots = append(roots, n)
		}
	}

	return roots, stats, nil
}

func (a *windowsAdapter) buildCacheRequest() (uintptr, error) {
	var req uintptr
	hr, _, _ := callMethod(a.automation, autoCreateCacheRequest, uintptr(unsafe.Pointer(&req)))
	if hr != 0 || req == 0 {
		return 0, fmt.Errorf("CreateCacheRequest failed: 0x%x", hr)
	}

	for _, prop := range []int{
		uiaPropertyControlType, uiaPropertyName, uiaPropertyBoundingRect,
		uiaPropertyIsEnabled, uiaPropertyHasKeyboard, uiaPropertyProcessId,
		uiaPropertyIsOffscreen,
	} {
		callMethod(req, cacheAddProperty, uintptr(prop))
	}
	for _, pat := range []int{
		uiaPatternInvoke, uiaPatternValue, uiaPatternToggle,
		uiaPatternSelectionItem, uiaPatternExpandCollapse, uiaPatternScroll,
		uiaPatternRangeValue,
	} {
		callMethod(req, cacheAddPattern, uintptr(pat))
	}
	callMethod(req, cachePutTreeScope, uintptr(treeScopeSubtree))

	return req, nil
}

func (a *windowsAdapter) walkCached(elem uintptr, depth, maxDepth int, builder *node.Builder, stats *CaptureStats) *node.Node {
	raw := node.RawAttrs{Ref: elem}

	var controlType int32
	if hr, _, _ := callMethod(elem, elemGetCurrentControlType, uintptr(unsafe.Pointer(&controlType))); hr == 0 {
		stats.Roles[controlTypeToRole[controlType]]++
	}
	role := controlTypeToRole[controlType]
	if role == "" {
		role = node.RoleGeneric
	}

	var bstrName uintptr
	if hr, _, _ := callMethod(elem, elemGetCurrentName, uintptr(unsafe.Pointer(&bstrName))); hr == 0 && bstrName != 0 {
		raw.Name = bstrToString(bstrName)
		procSysFreeString.Call(bstrName)
	}
	if role == node.RolePane && raw.Name != "" {
		role = node.RoleRegion
	}

	var r rect
	if hr, _, _ := callMethod(elem, elemGetCurrentBounds, uintptr(unsafe.Pointer(&r))); hr == 0 {
		raw.Bounds = &node.Bounds{X: int(r.Left), Y: int(r.Top), W: int(r.Right - r.Left), H: int(r.Bottom - r.Top)}
	}

	var enabled, focused, offscreen int32
	callMethod(elem, elemGetCurrentIsEnabled, uintptr(unsafe.Pointer(&enabled)))
	callMethod(elem, elemGetCurrentHasFocus, uintptr(unsafe.Pointer(&focused)))
	callMethod(elem, elemGetCurrentOffscreen, uintptr(unsafe.Pointer(&offscreen)))
	raw.Enabled = enabled != 0
	raw.Focused = focused != 0
	raw.Offscreen = offscreen != 0

	raw.Patterns, raw.Toggle, raw.Expand, raw.HasValue, raw.Value = patternsOf(elem)

	n := node.Build(role, raw)
	builder.NextID(n)
	stats.Nodes++
	if depth > stats.MaxDepth {
		stats.MaxDepth = depth
	}

	if maxDepth > 0 && depth >= maxDepth {
		return n
	}

	var children uintptr
	if hr, _, _ := callMethod(elem, elemGetCachedChildren, uintptr(unsafe.Pointer(&children))); hr == 0 && children != 0 {
		defer comRelease(children)
		var length int32
		callMethod(children, arrGetLength, uintptr(unsafe.Pointer(&length)))
		for i := int32(0); i < length; i++ {
			var child uintptr
			if hr, _, _ := callMethod(children, arrGetElement, uintptr(i), uintptr(unsafe.Pointer(&child))); hr == 0 && child != 0 {
				if cn := a.walkCached(child, depth+1, maxDepth, builder, stats); cn != nil {
					n.Children = append(n.Children, cn)
				}
			}
		}
	}

	return n
}

// patternsOf inspects which cached patterns a cached element exposes.
// Invoke/Value/etc presence is read back via GetCachedPatternAs; a zero
// pattern pointer means the pattern wasn't in the cache request's list or
// isn't supported by this element.
func patternsOf(elem uintptr) (node.Patterns, node.ToggleState, node.ExpandState, bool, string) {
	var p node.Patterns
	var toggle = node.ToggleNone
	var expand = node.ExpandNone
	var hasValue bool
	var value string

	if has, _ := cachedPattern(elem, uiaPatternInvoke); has {
		p.Invoke = true
	}
	if has, ptr := cachedPattern(elem, uiaPatternToggle); has {
		p.Toggle = true
		var state int32
		callMethod(ptr, 4, uintptr(unsafe.Pointer(&state))) // get_CurrentToggleState
		toggle = node.ToggleState(state)
		comRelease(ptr)
	}
	if has, ptr := cachedPattern(elem, uiaPatternExpandCollapse); has {
		p.ExpandCollapse = true
		var state int32
		callMethod(ptr, 4, uintptr(unsafe.Pointer(&state))) // get_CurrentExpandCollapseState
		expand = node.ExpandState(state)
		comRelease(ptr)
	}
	if has, ptr := cachedPattern(elem, uiaPatternValue); has {
		p.Value = true
		hasValue = true
		var bstr uintptr
		callMethod(ptr, 4, uintptr(unsafe.Pointer(&bstr))) // get_CurrentValue
		if bstr != 0 {
			value = bstrToString(bstr)
			procSysFreeString.Call(bstr)
		}
		comRelease(ptr)
	}
	if has, _ := cachedPattern(elem, uiaPatternSelectionItem); has {
		p.SelectionItem = true
	}
	if has, _ := cachedPattern(elem, uiaPatternScroll); has {
		p.Scroll = true
	}
	if has, _ := cachedPattern(elem, uiaPatternRangeValue); has {
		p.RangeValue = true
	}

	return p, toggle, expand, hasValue, value
}

func cachedPattern(elem uintptr, patternID int) (bool, uintptr) {
	var pattern uintptr
	hr, _, _ := callMethod(elem, elemGetCachedPatternAs, uintptr(patternID), uintptr(unsafe.Pointer(&pattern)))
	return hr == 0 && pattern != 0, pattern
}

func (a *windowsAdapter) ExecuteAction(ref any, action node.Action, params map[string]string) Result {
	elem, ok := ref.(uintptr)
	if !ok || elem == 0 {
		return Fail(fmt.Errorf("stale element reference"))
	}

	switch action {
	case node.ActionFocus:
		if hr, _, _ := callMethod(elem, elemSetFocus); hr != 0 {
			return Fail(fmt.Errorf("SetFocus failed: 0x%x", hr))
		}
		return Ok("focused")

	case node.ActionClick:
		return invokePattern(elem, uiaPatternInvoke, 3)

	case node.ActionToggle:
		return invokePattern(elem, uiaPatternToggle, 3)

	case node.ActionExpand:
		return invokePattern(elem, uiaPatternExpandCollapse, 3)

	case node.ActionCollapse:
		return invokePattern(elem, uiaPatternExpandCollapse, 4)

	case node.ActionSelect:
		return invokePattern(elem, uiaPatternSelectionItem, 3)

	case node.ActionSetValue, node.ActionType:
		value := params["value"]
		pattern, err := getPattern(elem, uiaPatternValue)
		if err != nil {
			return Fail(err)
		}
		defer comRelease(pattern)
		utf16Value, err := syscall.UTF16PtrFromString(value)
		if err != nil {
			return Fail(err)
		}
		if hr, _, _ := callMethod(pattern, 3, uintptr(unsafe.Pointer(utf16Value))); hr != 0 {
			return Fail(fmt.Errorf("SetValue failed: 0x%x", hr))
		}
		return Ok("value set")

	case node.ActionIncrement:
		return invokePattern(elem, uiaPatternRangeValue, 3)

	case node.ActionDecrement:
		return invokePattern(elem, uiaPatternRangeValue, 4)

	default:
		return Fail(ErrUnsupported)
	}
}

func invokePattern(elem uintptr, patternID int, methodIndex uintptr) Result {
	pattern, err := getPattern(elem, patternID)
	if err != nil {
		return Fail(err)
	}
	defer comRelease(pattern)
	if hr, _, _ := callMethod(pattern, methodIndex); hr != 0 {
		return Fail(fmt.Errorf("pattern call failed: 0x%x", hr))
	}
	return Ok("done")
}

func getPattern(elem uintptr, patternID int) (uintptr, error) {
	var pattern uintptr
	hr, _, _ := callMethod(elem, elemGetCurrentPattern, uintptr(patternID), uintptr(unsafe.Pointer(&pattern)))
	if hr != 0 || pattern == 0 {
		return 0, fmt.Errorf("GetCurrentPattern(%d) failed: 0x%x", patternID, hr)
	}
	return pattern, nil
}

func (a *windowsAdapter) PressKeys(modifiers, keys []string) Result {
	// Key dispatch is a global OS input event, not an element call; the
	// session delegates it to pkg/input and never routes PressKeys through
	// the adapter. This method exists only to satisfy the interface for
	// backends (like the web adapter) that do need to own it.
	return Fail(ErrUnsupported)
}

// windowsAppAliases maps common spoken app names to the executable or URI
// scheme "start" resolves on a stock install. Anything not in the table is
// passed through to start verbatim, so an exact executable name still works.
var windowsAppAliases = map[string]string{
	"chrome":              "chrome",
	"google chrome":       "chrome",
	"firefox":             "firefox",
	"edge":                "msedge",
	"microsoft edge":      "msedge",
	"notepad":             "notepad",
	"calculator":          "calc",
	"calc":                "calc",
	"cmd":                 "cmd",
	"command prompt":      "cmd",
	"powershell":          "powershell",
	"terminal":            "wt",
	"windows terminal":    "wt",
	"explorer":            "explorer",
	"file explorer":       "explorer",
	"paint":               "mspaint",
	"wordpad":             "wordpad",
	"snipping tool":       "snippingtool",
	"task manager":        "taskmgr",
	"control panel":       "control",
	"settings":            "ms-settings:",
	"word":                "winword",
	"excel":               "excel",
	"powerpoint":          "powerpnt",
	"outlook":             "outlook",
	"vscode":              "code",
	"visual studio code":  "code",
	"code":                "code",
	"slack":               "slack",
	"discord":             "discord",
	"zoom":                "zoom",
	"teams":               "msteams",
	"microsoft teams":     "msteams",
	"spotify":             "spotify",
}

// LaunchApp starts a named application via the shell's "start" verb, which
// resolves both registered executables and ms-settings:-style URI schemes
// without needing their install path.
func (a *windowsAdapter) LaunchApp(name string) Result {
	target := name
	if mapped, ok := windowsAppAliases[strings.ToLower(name)]; ok {
		target = mapped
	}

	cmd := exec.Command("cmd", "/c", "start", "", target)
	if err := cmd.Run(); err != nil {
		return Fail(fmt.Errorf("launch %q: %w", name, err))
	}
	return Ok(fmt.Sprintf("launched %s", target))
}

func callMethod(obj uintptr, offset uintptr, args ...uintptr) (uintptr, uintptr, error) {
	vtbl := *(*uintptr)(unsafe.Pointer(obj))
	fn := *(*uintptr)(unsafe.Pointer(vtbl + offset*unsafe.Sizeof(uintptr(0))))
	full := append([]uintptr{obj}, args...)
	return syscall.SyscallN(fn, full...)
}

func comRelease(obj uintptr) {
	if obj == 0 {
		return
	}
	callMethod(obj, vtblRelease)
}

func bstrToString(bstr uintptr) string {
	if bstr == 0 {
		return ""
	}
	length := *(*uint32)(unsafe.Pointer(bstr - 4))
	if length == 0 {
		return ""
	}
	chars := length / 2
	utf16 := make([]uint16, chars)
	for i := uint32(0); i < chars; i++ {
		utf16[i] = *(*uint16)(unsafe.Pointer(bstr + uintptr(i*2)))
	}
	return syscall.UTF16ToString(utf16)
}

func enumTopLevelWindows() []uintptr {
	var hwnds []uintptr
	callback := syscall.NewCallback(func(hwnd, _ uintptr) uintptr {
		visible, _, _ := procIsWindowVisible.Call(hwnd)
		if visible != 0 {
			buf := make([]uint16, 256)
			n, _, _ := procGetWindowTextW.Call(hwnd, uintptr(unsafe.Pointer(&buf[0])), 256)
			if n > 0 {
				hwnds = append(hwnds, hwnd)
			}
		}
		return 1
	})
	procEnumWindows.Call(callback, 0)
	return hwnds
}
