// Package node defines the CUP data model: the canonical node shape every
// platform adapter converges on, independent of the originating
// accessibility API.
package node

// Role is a canonical, platform-independent element role.
type Role string

const (
	RoleButton       Role = "button"
	RoleCheckbox     Role = "checkbox"
	RoleComboBox     Role = "combobox"
	RoleTextbox      Role = "textbox"
	RoleSearchbox    Role = "searchbox"
	RoleLink         Role = "link"
	RoleImg          Role = "img"
	RoleList         Role = "list"
	RoleListItem     Role = "listitem"
	RoleMenu         Role = "menu"
	RoleMenuBar      Role = "menubar"
	RoleMenuItem     Role = "menuitem"
	RoleProgressBar  Role = "progressbar"
	RoleRadio        Role = "radio"
	RoleScrollBar    Role = "scrollbar"
	RoleSlider       Role = "slider"
	RoleSpinButton   Role = "spinbutton"
	RoleStatus       Role = "status"
	RoleTabList      Role = "tablist"
	RoleTab          Role = "tab"
	RoleText         Role = "text"
	RoleToolbar      Role = "toolbar"
	RoleTooltip      Role = "tooltip"
	RoleTree         Role = "tree"
	RoleTreeItem     Role = "treeitem"
	RoleGrid         Role = "grid"
	RoleRow          Role = "row"
	RoleDocument     Role = "document"
	RoleWindow       Role = "window"
	RolePane         Role = "pane"
	RoleTitleBar     Role = "titlebar"
	RoleSeparator    Role = "separator"
	RoleGroup        Role = "group"
	RoleRegion       Role = "region"
	RoleGeneric      Role = "generic"
	RoleColumnHeader Role = "columnheader"
	RoleTable        Role = "table"
	RoleHeading      Role = "heading"
	RoleDialog       Role = "dialog"
)

// State is a boolean flag on a node, emitted only when true.
type State string

const (
	StateDisabled  State = "disabled"
	StateFocused   State = "focused"
	StateOffscreen State = "offscreen"
	StateChecked   State = "checked"
	StateMixed     State = "mixed"
	StateCollapsed State = "collapsed"
	StateExpanded  State = "expanded"
	StateSelected  State = "selected"
	StateReadonly  State = "readonly"
	StateEditable  State = "editable"
	StateRequired  State = "required"
	StateBusy      State = "busy"
)

// Action is one of the fixed fifteen canonical dispatchable actions.
type Action string

const (
	ActionClick       Action = "click"
	ActionRightClick  Action = "rightclick"
	ActionDoubleClick Action = "doubleclick"
	ActionToggle      Action = "toggle"
	ActionType        Action = "type"
	ActionSetValue    Action = "setvalue"
	ActionSelect      Action = "select"
	ActionExpand      Action = "expand"
	ActionCollapse    Action = "collapse"
	ActionScroll      Action = "scroll"
	ActionIncrement   Action = "increment"
	ActionDecrement   Action = "decrement"
	ActionFocus       Action = "focus"
	ActionLongPress   Action = "longpress"
	ActionDismiss     Action = "dismiss"
)

// CanonicalActions is the full fixed action vocabulary actions are
// validated against; anything outside this set is dropped or rejected.
var CanonicalActions = map[Action]bool{
	ActionClick: true, ActionRightClick: true, ActionDoubleClick: true,
	ActionToggle: true, ActionType: true, ActionSetValue: true,
	ActionSelect: true, ActionExpand: true, ActionCollapse: true,
	ActionScroll: true, ActionIncrement: true, ActionDecrement: true,
	ActionFocus: true, ActionLongPress: true, ActionDismiss: true,
}

// IsCanonicalAction reports whether a (already lower-cased) action string
// is in the fixed action vocabulary.
func IsCanonicalAction(a string) bool {
	return CanonicalActions[Action(a)]
}

// TextInputRoles is the exact role set the builder treats as text-input
// for the purposes of the `editable` state and `type` action.
var TextInputRoles = map[Role]bool{
	RoleTextbox: true, RoleSearchbox: true, RoleComboBox: true, RoleDocument: true,
}

// ValueRenderRoles is the role set the compact serializer renders `value=`
// for: the text-input roles except document, plus spin buttons and
// sliders, whose current value isn't typed text but is still worth showing.
var ValueRenderRoles = map[Role]bool{
	RoleTextbox: true, RoleSearchbox: true, RoleComboBox: true,
	RoleSpinButton: true, RoleSlider: true,
}

// Bounds is a node's on-screen rectangle in device pixels.
type Bounds struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

// Node is one element in a CUP tree.
type Node struct {
	ID          string            `json:"id"`
	Role        Role              `json:"role"`
	Name        string            `json:"name,omitempty"`
	Bounds      *Bounds           `json:"bounds,omitempty"`
	States      []State           `json:"states,omitempty"`
	Actions     []Action          `json:"actions,omitempty"`
	Value       string            `json:"value,omitempty"`
	Description string            `json:"description,omitempty"`
	Attributes  map[string]string `json:"attributes,omitempty"`
	Platform    map[string]string `json:"platform,omitempty"`
	Children    []*Node           `json:"children,omitempty"`

	// Ref is the opaque native handle backing this node for the
	// duration of one capture. Never serialized; consumed only by the
	// Registry that owns this snapshot.
	Ref any `json:"-"`
}

// HasState reports whether a node carries the given state.
func (n *Node) HasState(s State) bool {
	for _, st := range n.States {
		if st == s {
			return true
		}
	}
	return false
}

// HasAction reports whether a node's allow-list contains the given action.
func (n *Node) HasAction(a Action) bool {
	for _, act := range n.Actions {
		if act == a {
			return true
		}
	}
	return false
}

// MeaningfulActions returns a node's actions with the bare `focus`
// fallback excluded — the signal the pruner and minimal-detail filter
// use to decide whether a node is "interactive".
func (n *Node) MeaningfulActions() []Action {
	out := make([]Action, 0, len(n.Actions))
	for _, a := range n.Actions {
		if a != ActionFocus {
			out = append(out, a)
		}
	}
	return out
}

// HasMeaningfulAction reports whether a node has any action beyond focus.
func (n *Node) HasMeaningfulAction() bool {
	for _, a := range n.Actions {
		if a != ActionFocus {
			return true
		}
	}
	return false
}

// CountNodes counts every node in a forest, including descendants.
func CountNodes(roots []*Node) int {
	total := 0
	for _, n := range roots {
		total++
		total += CountNodes(n.Children)
	}
	return total
}

// Walk visits every node of a forest in preorder.
func Walk(roots []*Node, visit func(n *Node, depth int)) {
	var rec func(nodes []*Node, depth int)
	rec = func(nodes []*Node, depth int) {
		for _, n := range nodes {
			visit(n, depth)
			rec(n.Children, depth+1)
		}
	}
	rec(roots, 0)
}

// CloneDeep returns a deep copy of a forest, preserving Ref handles.
func CloneDeep(roots []*Node) []*Node {
	out := make([]*Node, len(roots))
	for i, n := range roots {
		cp := *n
		cp.Children = CloneDeep(n.Children)
		if n.States != nil {
			cp.States = append([]State(nil), n.States...)
		}
		if n.Actions != nil {
			cp.Actions = append([]Action(nil), n.Actions...)
		}
		out[i] = &cp
	}
	return out
}
