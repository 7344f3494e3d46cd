//go:build darwin

// macOS backend: the Accessibility API (AXUIElement) via CGo, walking
// AXChildren recursively into a CUP tree and dispatching actions through
// AXUIElementPerformAction / AXUIElementSetAttributeValue.
package platform

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework ApplicationServices -framework Foundation -framework AppKit

#include <ApplicationServices/ApplicationServices.h>
#include <Foundation/Foundation.h>
#include <AppKit/AppKit.h>

static int ax_is_trusted() {
    return AXIsProcessTrusted();
}

static AXUIElementRef ax_create_application(int pid) {
    return AXUIElementCreateApplication(pid);
}

static CFTypeRef ax_copy_attribute_value(AXUIElementRef element, CFStringRef attribute) {
    CFTypeRef value = NULL;
    AXError err = AXUIElementCopyAttributeValue(element, attribute, &value);
    if (err != kAXErrorSuccess) {
        return NULL;
    }
    return value;
}

static int ax_perform_action(AXUIElementRef element, CFStringRef action) {
    AXError err = AXUIElementPerformAction(element, action);
    return err == kAXErrorSuccess ? 0 : (int)err;
}

static int ax_set_attribute_value(AXUIElementRef element, CFStringRef attribute, CFTypeRef value) {
    AXError err = AXUIElementSetAttributeValue(element, attribute, value);
    return err == kAXErrorSuccess ? 0 : (int)err;
}

static char* cf_string_to_cstring(CFStringRef str) {
    if (str == NULL) return NULL;
    CFIndex length = CFStringGetLength(str);
    CFIndex maxSize = CFStringGetMaximumSizeForEncoding(length, kCFStringEncodingUTF8) + 1;
    char *buffer = (char *)malloc(maxSize);
    if (buffer == NULL) return NULL;
    if (!CFStringGetCString(str, buffer, maxSize, kCFStringEncodingUTF8)) {
        free(buffer);
        return NULL;
    }
    return buffer;
}

static CFStringRef cstring_to_cf_string(const char *str) {
    return CFStringCreateWithCString(kCFAllocatorDefault, str, kCFStringEncodingUTF8);
}

static int ax_value_get_point(AXValueRef value, float *x, float *y) {
    CGPoint point;
    if (AXValueGetValue(value, kAXValueCGPointType, &point)) {
        *x = point.x;
        *y = point.y;
        return 1;
    }
    return 0;
}

static int ax_value_get_size(AXValueRef value, float *width, float *height) {
    CGSize size;
    if (AXValueGetValue(value, kAXValueCGSizeType, &size)) {
        *width = size.width;
        *height = size.height;
        return 1;
    }
    return 0;
}

static int ax_get_frontmost_app_pid() {
    NSRunningApplication *frontApp = [[NSWorkspace sharedWorkspace] frontmostApplication];
    if (frontApp == nil) {
        return -1;
    }
    return (int)[frontApp processIdentifier];
}

static void ax_get_running_apps(int *pids, int *count, int maxCount) {
    NSArray<NSRunningApplication *> *apps = [[NSWorkspace sharedWorkspace] runningApplications];
    int i = 0;
    for (NSRunningApplication *app in apps) {
        if (i >= maxCount) break;
        if (app.activationPolicy == NSApplicationActivationPolicyRegular) {
            pids[i++] = (int)[app processIdentifier];
        }
    }
    *count = i;
}

static int ax_launch_by_name(const char *name) {
    NSString *appName = [NSString stringWithUTF8String:name];
    NSWorkspace *ws = [NSWorkspace sharedWorkspace];
    NSURL *url = [ws URLForApplicationWithBundleIdentifier:appName];
    if (url == nil) {
        return [ws launchApplication:appName] ? 0 : 1;
    }
    NSError *err = nil;
    NSRunningApplication *app = [ws launchApplicationAtURL:url options:0 configuration:@{} error:&err];
    return app != nil ? 0 : 1;
}
*/
import "C"

import (
	"fmt"
	"unsafe"

	"github.com/anxuanzi/cup/pkg/node"
)

func init() {
	Register("darwin", newDarwinAdapter)
}

type darwinAdapter struct{}

func newDarwinAdapter() (Adapter, error) {
	return &darwinAdapter{}, nil
}

func (a *darwinAdapter) PlatformName() string { return "darwin" }

func (a *darwinAdapter) Initialize() error {
	if C.ax_is_trusted() == 0 {
		return fmt.Errorf("accessibility permission not granted; enable this process under System Settings > Privacy & Security > Accessibility")
	}
	return nil
}

func (a *darwinAdapter) Close() error { return nil }

func (a *darwinAdapter) GetScreenInfo() (ScreenInfo, error) {
	return ScreenInfo{}, ErrUnsupported
}

func (a *darwinAdapter) GetForegroundWindow() (WindowInfo, error) {
	pid := int(C.ax_get_frontmost_app_pid())
	if pid < 0 {
		return WindowInfo{}, fmt.Errorf("no frontmost application")
	}
	return a.windowInfoFromPID(pid, true)
}

func (a *darwinAdapter) GetAllWindows() ([]WindowInfo, error) {
	const maxApps = 128
	pids := make([]C.int, maxApps)
	var count C.int
	C.ax_get_running_apps(&pids[0], &count, C.int(maxApps))

	frontPID := int(C.ax_get_frontmost_app_pid())

	var out []WindowInfo
	for i := 0; i < int(count); i++ {
		pid := int(pids[i])
		wi, err := a.windowInfoFromPID(pid, pid == frontPID)
		if err == nil {
			out = append(out, wi)
		}
	}
	return out, nil
}

func (a *darwinAdapter) windowInfoFromPID(pid int, foreground bool) (WindowInfo, error) {
	ref := C.ax_create_application(C.int(pid))
	if ref == 0 {
		return WindowInfo{}, fmt.Errorf("no accessibility element for pid %d", pid)
	}
	title := getStringAttr(ref, "AXTitle")
	return WindowInfo{Handle: ref, Title: title, PID: pid, Foreground: foreground}, nil
}

// CaptureTree walks AXChildren recursively from each window's application
// element. Unlike the Windows backend there is no batched-cache API on
// this platform: every attribute read is its own AXUIElementCopyAttributeValue
// call, so depth is the main lever for keeping a capture affordable.
func (a *darwinAdapter) CaptureTree(windows []WindowInfo, maxDepth int, builder *node.Builder) ([]*node.Node, CaptureStats, error) {
	stats := CaptureStats{Roles: map[node.Role]int{}}
	var roots []*node.Node

	for _, w := range windows {
		ref, ok := w.Handle.(C.AXUIElementRef)
		if !ok {
			continue
		}
		n := walkAX(ref, 0, maxDepth, builder, &stats)
		if n != nil {
			roots = append(roots, n)
		}
	}
	return roots, stats, nil
}

func walkAX(ref C.AXUIElementRef, depth, maxDepth int, builder *node.Builder, stats *CaptureStats) *node.Node {
	if ref == 0 {
		return nil
	}

	role := mapAXRole(getStringAttr(ref, "AXRole"))
	raw := node.RawAttrs{
		Ref:     ref,
		Name:    firstNonEmpty(getStringAttr(ref, "AXTitle"), getStringAttr(ref, "AXDescription")),
		Enabled: getBoolAttr(ref, "AXEnabled", true),
		Focused: getBoolAttr(ref, "AXFocused", false),
	}

	x, y := getPointAttr(ref, "AXPosition")
	w, h := getSizeAttr(ref, "AXSize")
	if w != 0 || h != 0 {
		raw.Bounds = &node.Bounds{X: int(x), Y: int(y), W: int(w), H: int(h)}
	}

	if val := getStringAttr(ref, "AXValue"); val != "" {
		raw.HasValue = true
		raw.Value = val
	}

	raw.Patterns, raw.Toggle, raw.Expand = axPatterns(ref, role)

	n := node.Build(role, raw)
	builder.NextID(n)
	stats.Nodes++
	stats.Roles[role]++
	if depth > stats.MaxDepth {
		stats.MaxDepth = depth
	}

	if maxDepth > 0 && depth >= maxDepth {
		return n
	}

	for _, child := range getChildrenAttr(ref) {
		if cn := walkAX(child, depth+1, maxDepth, builder, stats); cn != nil {
			n.Children = append(n.Children, cn)
		}
	}
	return n
}

// axPatterns infers which canonical patterns an AX element supports from
// its advertised action list, since AX has no pattern-capability query
// the way UIA does.
func axPatterns(ref C.AXUIElementRef, role node.Role) (node.Patterns, node.ToggleState, node.ExpandState) {
	actions := getActionNames(ref)
	var p node.Patterns
	toggle := node.ToggleNone
	expand := node.ExpandNone

	for _, act := range actions {
		switch act {
		case "AXPress":
			p.Invoke = true
		case "AXIncrement", "AXDecrement":
			p.RangeValue = true
		case "AXShowMenu":
			p.Invoke = true
		}
	}
	if role == node.RoleCheckbox || role == node.RoleRadio {
		p.Toggle = true
		if getBoolAttr(ref, "AXValue", false) {
			toggle = node.ToggleOn
		} else {
			toggle = node.ToggleOff
		}
	}
	if hasAttr(ref, "AXExpanded") {
		p.ExpandCollapse = true
		if getBoolAttr(ref, "AXExpanded", false) {
			expand = node.ExpandExpanded
		} else {
			expand = node.ExpandCollapsed
		}
	}
	if hasAttr(ref, "AXValue") && (role == node.RoleTextbox || role == node.RoleSearchbox || role == node.RoleComboBox) {
		p.Value = true
	}
	if hasAttr(ref, "AXSelected") {
		p.SelectionItem = true
	}
	return p, toggle, expand
}

func (a *darwinAdapter) ExecuteAction(ref any, action node.Action, params map[string]string) Result {
	elem, ok := ref.(C.AXUIElementRef)
	if !ok || elem == 0 {
		return Fail(fmt.Errorf("stale element reference"))
	}

	switch action {
	case node.ActionClick:
		return performAX(elem, "AXPress")
	case node.ActionToggle:
		return performAX(elem, "AXPress")
	case node.ActionExpand, node.ActionCollapse:
		return setBoolAttr(elem, "AXExpanded", action == node.ActionExpand)
	case node.ActionIncrement:
		return performAX(elem, "AXIncrement")
	case node.ActionDecrement:
		return performAX(elem, "AXDecrement")
	case node.ActionFocus:
		return setBoolAttr(elem, "AXFocused", true)
	case node.ActionSelect:
		return setBoolAttr(elem, "AXSelected", true)
	case node.ActionSetValue, node.ActionType:
		return setStringAttr(elem, "AXValue", params["value"])
	case node.ActionDismiss:
		return performAX(elem, "AXCancel")
	default:
		return Fail(ErrUnsupported)
	}
}

func (a *darwinAdapter) PressKeys(modifiers, keys []string) Result {
	return Fail(ErrUnsupported)
}

func (a *darwinAdapter) LaunchApp(name string) Result {
	cName := C.CString(name)
	defer C.free(unsafe.Pointer(cName))
	if C.ax_launch_by_name(cName) != 0 {
		return Fail(fmt.Errorf("failed to launch %q", name))
	}
	return Ok("launched " + name)
}

func performAX(ref C.AXUIElementRef, action string) Result {
	cAction := C.CString(action)
	defer C.free(unsafe.Pointer(cAction))
	name := C.cstring_to_cf_string(cAction)
	defer C.CFRelease(C.CFTypeRef(name))

	if r := C.ax_perform_action(ref, name); r != 0 {
		return Fail(fmt.Errorf("%s failed: AXError %d", action, int(r)))
	}
	return Ok(action)
}

func setBoolAttr(ref C.AXUIElementRef, attr string, v bool) Result {
	cAttr := C.CString(attr)
	defer C.free(unsafe.Pointer(cAttr))
	name := C.cstring_to_cf_string(cAttr)
	defer C.CFRelease(C.CFTypeRef(name))

	val := C.kCFBooleanFalse
	if v {
		val = C.kCFBooleanTrue
	}
	if r := C.ax_set_attribute_value(ref, name, C.CFTypeRef(val)); r != 0 {
		return Fail(fmt.Errorf("set %s failed: AXError %d", attr, int(r)))
	}
	return Ok("set " + attr)
}

func setStringAttr(ref C.AXUIElementRef, attr, value string) Result {
	cAttr := C.CString(attr)
	defer C.free(unsafe.Pointer(cAttr))
	name := C.cstring_to_cf_string(cAttr)
	defer C.CFRelease(C.CFTypeRef(name))

	cVal := C.CString(value)
	defer C.free(unsafe.Pointer(cVal))
	cfVal := C.cstring_to_cf_string(cVal)
	defer C.CFRelease(C.CFTypeRef(cfVal))

	if r := C.ax_set_attribute_value(ref, name, C.CFTypeRef(cfVal)); r != 0 {
		return Fail(fmt.Errorf("set %s failed: AXError %d", attr, int(r)))
	}
	return Ok("value set")
}

func hasAttr(ref C.AXUIElementRef, name string) bool {
	cName := C.CString(name)
	defer C.free(unsafe.Pointer(cName))
	attrName := C.cstring_to_cf_string(cName)
	defer C.CFRelease(C.CFTypeRef(attrName))

	value := C.ax_copy_attribute_value(ref, attrName)
	if value == 0 {
		return false
	}
	C.CFRelease(value)
	return true
}

func getStringAttr(ref C.AXUIElementRef, name string) string {
	cName := C.CString(name)
	defer C.free(unsafe.Pointer(cName))
	attrName := C.cstring_to_cf_string(cName)
	defer C.CFRelease(C.CFTypeRef(attrName))

	value := C.ax_copy_attribute_value(ref, attrName)
	if value == 0 {
		return ""
	}
	defer C.CFRelease(value)

	if C.CFGetTypeID(value) != C.CFStringGetTypeID() {
		return ""
	}
	cStr := C.cf_string_to_cstring(C.CFStringRef(value))
	if cStr == nil {
		return ""
	}
	defer C.free(unsafe.Pointer(cStr))
	return C.GoString(cStr)
}

func getBoolAttr(ref C.AXUIElementRef, name string, def bool) bool {
	cName := C.CString(name)
	defer C.free(unsafe.Pointer(cName))
	attrName := C.cstring_to_cf_string(cName)
	defer C.CFRelease(C.CFTypeRef(attrName))

	value := C.ax_copy_attribute_value(ref, attrName)
	if value == 0 {
		return def
	}
	defer C.CFRelease(value)

	if C.CFGetTypeID(value) == C.CFBooleanGetTypeID() {
		return C.CFBooleanGetValue(C.CFBooleanRef(value)) != 0
	}
	return def
}

func getPointAttr(ref C.AXUIElementRef, name string) (float32, float32) {
	cName := C.CString(name)
	defer C.free(unsafe.Pointer(cName))
	attrName := C.cstring_to_cf_string(cName)
	defer C.CFRelease(C.CFTypeRef(attrName))

	value := C.ax_copy_attribute_value(ref, attrName)
	if value == 0 {
		return 0, 0
	}
	defer C.CFRelease(value)

	var x, y C.float
	axValue := C.AXValueRef(unsafe.Pointer(value))
	if C.ax_value_get_point(axValue, &x, &y) != 0 {
		return float32(x), float32(y)
	}
	return 0, 0
}

func getSizeAttr(ref C.AXUIElementRef, name string) (float32, float32) {
	cName := C.CString(name)
	defer C.free(unsafe.Pointer(cName))
	attrName := C.cstring_to_cf_string(cName)
	defer C.CFRelease(C.CFTypeRef(attrName))

	value := C.ax_copy_attribute_value(ref, attrName)
	if value == 0 {
		return 0, 0
	}
	defer C.CFRelease(value)

	var w, h C.float
	axValue := C.AXValueRef(unsafe.Pointer(value))
	if C.ax_value_get_size(axValue, &w, &h) != 0 {
		return float32(w), float32(h)
	}
	return 0, 0
}

func getActionNames(ref C.AXUIElementRef) []string {
	var names C.CFArrayRef
	err := C.AXUIElementCopyActionNames(ref, &names)
	if err != C.kAXErrorSuccess || names == 0 {
		return nil
	}
	defer C.CFRelease(C.CFTypeRef(names))

	count := C.CFArrayGetCount(names)
	out := make([]string, 0, int(count))
	for i := C.CFIndex(0); i < count; i++ {
		s := C.CFStringRef(C.CFArrayGetValueAtIndex(names, i))
		cStr := C.cf_string_to_cstring(s)
		if cStr != nil {
			out = append(out, C.GoString(cStr))
			C.free(unsafe.Pointer(cStr))
		}
	}
	return out
}

func getChildrenAttr(ref C.AXUIElementRef) []C.AXUIElementRef {
	cName := C.CString("AXChildren")
	defer C.free(unsafe.Pointer(cName))
	attrName := C.cstring_to_cf_string(cName)
	defer C.CFRelease(C.CFTypeRef(attrName))

	value := C.ax_copy_attribute_value(ref, attrName)
	if value == 0 {
		return nil
	}
	defer C.CFRelease(value)

	if C.CFGetTypeID(value) != C.CFArrayGetTypeID() {
		return nil
	}
	array := C.CFArrayRef(value)
	count := C.CFArrayGetCount(array)

	out := make([]C.AXUIElementRef, 0, int(count))
	for i := C.CFIndex(0); i < count; i++ {
		childRef := C.AXUIElementRef(C.CFArrayGetValueAtIndex(array, i))
		if childRef != 0 {
			C.CFRetain(C.CFTypeRef(childRef))
			out = append(out, childRef)
		}
	}
	return out
}

func mapAXRole(axRole string) node.Role {
	switch axRole {
	case "AXWindow":
		return node.RoleWindow
	case "AXButton":
		return node.RoleButton
	case "AXTextField":
		return node.RoleTextbox
	case "AXTextArea":
		return node.RoleDocument
	case "AXStaticText":
		return node.RoleText
	case "AXCheckBox":
		return node.RoleCheckbox
	case "AXRadioButton":
		return node.RoleRadio
	case "AXList":
		return node.RoleList
	case "AXRow", "AXOutlineRow":
		return node.RoleListItem
	case "AXMenu":
		return node.RoleMenu
	case "AXMenuItem":
		return node.RoleMenuItem
	case "AXMenuBar":
		return node.RoleMenuBar
	case "AXToolbar":
		return node.RoleToolbar
	case "AXScrollBar":
		return node.RoleScrollBar
	case "AXImage":
		return node.RoleImg
	case "AXLink":
		return node.RoleLink
	case "AXGroup":
		return node.RoleGroup
	case "AXTabGroup":
		return node.RoleTabList
	case "AXTable":
		return node.RoleTable
	case "AXSlider":
		return node.RoleSlider
	case "AXComboBox":
		return node.RoleComboBox
	case "AXPopUpButton":
		return node.RoleComboBox
	case "AXProgressIndicator":
		return node.RoleProgressBar
	case "AXSplitter":
		return node.RoleSeparator
	case "AXSheet", "AXDrawer":
		return node.RoleDialog
	default:
		return node.RoleGeneric
	}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
