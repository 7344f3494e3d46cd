package cup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anxuanzi/cup/pkg/node"
	"github.com/anxuanzi/cup/pkg/platform"
)

// mockAdapter is a fixed, in-memory Adapter used to exercise Session
// without touching a real accessibility API.
type mockAdapter struct {
	windows     []platform.WindowInfo
	foreground  platform.WindowInfo
	tree        []*node.Node
	executeErr  error
	executeOK   bool
	closeCalled bool
}

func (m *mockAdapter) PlatformName() string { return "mock" }
func (m *mockAdapter) Initialize() error    { return nil }

func (m *mockAdapter) GetScreenInfo() (platform.ScreenInfo, error) {
	return platform.ScreenInfo{W: 1920, H: 1080, Scale: 1}, nil
}

func (m *mockAdapter) GetForegroundWindow() (platform.WindowInfo, error) {
	return m.foreground, nil
}

func (m *mockAdapter) GetAllWindows() ([]platform.WindowInfo, error) {
	return m.windows, nil
}

func (m *mockAdapter) CaptureTree(windows []platform.WindowInfo, maxDepth int, builder *node.Builder) ([]*node.Node, platform.CaptureStats, error) {
	var assign func(n *node.Node)
	assign = func(n *node.Node) {
		builder.NextID(n)
		for _, c := range n.Children {
			assign(c)
		}
	}
	for _, n := range m.tree {
		assign(n)
	}
	return m.tree, platform.CaptureStats{Nodes: node.CountNodes(m.tree)}, nil
}

func (m *mockAdapter) ExecuteAction(ref any, action node.Action, params map[string]string) platform.Result {
	if m.executeErr != nil {
		return platform.Fail(m.executeErr)
	}
	if !m.executeOK {
		return platform.Fail(platform.ErrUnsupported)
	}
	return platform.Ok("done")
}

func (m *mockAdapter) PressKeys(modifiers, keys []string) platform.Result {
	return platform.Fail(platform.ErrUnsupported)
}

func (m *mockAdapter) LaunchApp(name string) platform.Result {
	return platform.Ok("launched " + name)
}

func (m *mockAdapter) Close() error {
	m.closeCalled = true
	return nil
}

func newTestSession(t *testing.T, a *mockAdapter) *Session {
	t.Helper()
	platform.Register("mock-"+t.Name(), func() (platform.Adapter, error) { return a, nil })
	sess, err := NewSession(WithPlatform("mock-" + t.Name()))
	require.NoError(t, err)
	return sess
}

func sampleTree() []*node.Node {
	return []*node.Node{
		{Role: RoleButton, Name: "Submit", Actions: []node.Action{ActionClick}},
		{Role: RoleTextbox, Name: "Search", Actions: []node.Action{ActionType, ActionFocus},
			States: []node.State{StateEditable}},
	}
}

func TestSession_CaptureAssignsRegistryIDs(t *testing.T) {
	a := &mockAdapter{
		foreground: platform.WindowInfo{Title: "Notes", PID: 42},
		windows:    []platform.WindowInfo{{Title: "Notes", PID: 42}},
		tree:       sampleTree(),
	}
	sess := newTestSession(t, a)
	defer sess.Close()

	env, err := sess.Capture(CaptureOptions{Scope: ScopeForeground})
	require.NoError(t, err)
	require.Len(t, env.Tree, 2)
	assert.Equal(t, "e0", env.Tree[0].ID)
	assert.Equal(t, "e1", env.Tree[1].ID)
}

func TestSession_ExecuteUnknownElementNeverTouchesAdapter(t *testing.T) {
	a := &mockAdapter{executeOK: true}
	sess := newTestSession(t, a)
	defer sess.Close()

	res := sess.Execute("e999", ActionClick, nil)
	assert.False(t, res.Success)
	assert.Equal(t, TagUnknownElement, TagOf(res.Err))
}

func TestSession_ExecuteRejectsActionOutsideAllowList(t *testing.T) {
	a := &mockAdapter{
		foreground: platform.WindowInfo{Title: "Notes", PID: 1},
		windows:    []platform.WindowInfo{{Title: "Notes", PID: 1}},
		tree:       sampleTree(),
		executeOK:  true,
	}
	sess := newTestSession(t, a)
	defer sess.Close()

	_, err := sess.Capture(CaptureOptions{Scope: ScopeForeground})
	require.NoError(t, err)

	// e0 is the Submit button, whose allow-list is only {click}.
	res := sess.Execute("e0", ActionScroll, map[string]string{"direction": "down"})
	assert.False(t, res.Success)
	assert.Equal(t, TagActionNotSupported, TagOf(res.Err))
}

func TestSession_ExecuteValidatesParams(t *testing.T) {
	a := &mockAdapter{
		foreground: platform.WindowInfo{Title: "Notes", PID: 1},
		windows:    []platform.WindowInfo{{Title: "Notes", PID: 1}},
		tree:       sampleTree(),
		executeOK:  true,
	}
	sess := newTestSession(t, a)
	defer sess.Close()

	_, err := sess.Capture(CaptureOptions{Scope: ScopeForeground})
	require.NoError(t, err)

	// e1 is the Search textbox, whose allow-list includes `type`.
	res := sess.Execute("e1", ActionType, nil)
	assert.False(t, res.Success)
	assert.Equal(t, TagInvalidParams, TagOf(res.Err))
}

func TestSession_ExecuteSucceeds(t *testing.T) {
	a := &mockAdapter{
		foreground: platform.WindowInfo{Title: "Notes", PID: 1},
		windows:    []platform.WindowInfo{{Title: "Notes", PID: 1}},
		tree:       sampleTree(),
		executeOK:  true,
	}
	sess := newTestSession(t, a)
	defer sess.Close()

	_, err := sess.Capture(CaptureOptions{Scope: ScopeForeground})
	require.NoError(t, err)

	res := sess.Execute("e0", ActionClick, nil)
	assert.True(t, res.Success)
}

func TestSession_FindElementsANDSemantics(t *testing.T) {
	a := &mockAdapter{
		foreground: platform.WindowInfo{Title: "Notes", PID: 1},
		windows:    []platform.WindowInfo{{Title: "Notes", PID: 1}},
		tree:       sampleTree(),
	}
	sess := newTestSession(t, a)
	defer sess.Close()

	_, err := sess.Capture(CaptureOptions{Scope: ScopeForeground})
	require.NoError(t, err)

	found, err := sess.FindElements(FindCriteria{Role: RoleTextbox, Name: "search"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Search", found[0].Name)

	// Role matches but name doesn't: AND semantics reject it.
	found, err = sess.FindElements(FindCriteria{Role: RoleTextbox, Name: "submit"})
	require.NoError(t, err)
	assert.Empty(t, found)

	// Results never carry children.
	found, err = sess.FindElements(FindCriteria{Role: RoleButton})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Nil(t, found[0].Children)
}

func TestSession_BatchExecuteStopsAtFirstFailure(t *testing.T) {
	a := &mockAdapter{
		foreground: platform.WindowInfo{Title: "Notes", PID: 1},
		windows:    []platform.WindowInfo{{Title: "Notes", PID: 1}},
		tree:       sampleTree(),
		executeOK:  true,
	}
	sess := newTestSession(t, a)
	defer sess.Close()

	_, err := sess.Capture(CaptureOptions{Scope: ScopeForeground})
	require.NoError(t, err)

	specs := []ActionSpec{
		{ElementID: "e0", Action: ActionClick},
		{ElementID: "e999", Action: ActionClick}, // unknown, should fail
		{ElementID: "e0", Action: ActionClick},   // never reached
	}
	results := sess.BatchExecute(specs)
	require.Len(t, results, 2)
	assert.True(t, results[0].Success)
	assert.False(t, results[1].Success)
}

func TestSession_CaptureWindowNotFound(t *testing.T) {
	a := &mockAdapter{
		windows: []platform.WindowInfo{{Title: "Notes", PID: 1}},
	}
	sess := newTestSession(t, a)
	defer sess.Close()

	_, err := sess.Capture(CaptureOptions{Scope: ScopeFull, App: "nonexistent"})
	require.Error(t, err)
	assert.Equal(t, TagWindowNotFound, TagOf(err))
}
