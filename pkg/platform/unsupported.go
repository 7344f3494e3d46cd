//go:build !windows && !darwin

// No accessibility backend ships for this OS: Linux desktop environments
// split their accessibility surface across AT-SPI2/D-Bus implementations
// that vary enough per desktop environment that a single adapter can't
// cover them credibly without a much larger investment. Registering a
// stub here still gives Session a well-defined AdapterUnavailable instead
// of a missing-symbol build failure.
package platform

import "github.com/anxuanzi/cup/pkg/node"

func init() {
	Register("linux", newUnsupportedAdapter)
}

type unsupportedAdapter struct{}

func newUnsupportedAdapter() (Adapter, error) {
	return &unsupportedAdapter{}, nil
}

func (a *unsupportedAdapter) PlatformName() string { return "linux" }
func (a *unsupportedAdapter) Initialize() error     { return ErrUnsupported }
func (a *unsupportedAdapter) Close() error          { return nil }

func (a *unsupportedAdapter) GetScreenInfo() (ScreenInfo, error) {
	return ScreenInfo{}, ErrUnsupported
}
func (a *unsupportedAdapter) GetForegroundWindow() (WindowInfo, error) {
	return WindowInfo{}, ErrUnsupported
}
func (a *unsupportedAdapter) GetAllWindows() ([]WindowInfo, error) {
	return nil, ErrUnsupported
}
func (a *unsupportedAdapter) CaptureTree(windows []WindowInfo, maxDepth int, builder *node.Builder) ([]*node.Node, CaptureStats, error) {
	return nil, CaptureStats{}, ErrUnsupported
}
func (a *unsupportedAdapter) ExecuteAction(ref any, action node.Action, params map[string]string) Result {
	return Fail(ErrUnsupported)
}
func (a *unsupportedAdapter) PressKeys(modifiers, keys []string) Result { return Fail(ErrUnsupported) }
func (a *unsupportedAdapter) LaunchApp(name string) Result              { return Fail(ErrUnsupported) }
