package node

// Patterns records which UIA-style capability patterns a native element
// exposed, platform-agnostically: UIA pattern names, AX actions/attributes,
// and AT-SPI interfaces all reduce to this same shape before reaching the
// builder.
type Patterns struct {
	Invoke        bool
	Toggle        bool
	ExpandCollapse bool
	Value         bool
	SelectionItem bool
	Scroll        bool
	RangeValue    bool
}

// ToggleState mirrors the UIA ToggleState enum: -1 means "pattern not
// present", 0 off, 1 on, 2 mixed.
type ToggleState int

const (
	ToggleNone ToggleState = -1
	ToggleOff  ToggleState = 0
	ToggleOn   ToggleState = 1
	ToggleMix  ToggleState = 2
)

// ExpandState mirrors the UIA ExpandCollapseState enum: -1 means "pattern
// not present", 0 collapsed, 1 expanded, 2 partially expanded, 3 leaf (no
// children to expand).
type ExpandState int

const (
	ExpandNone              ExpandState = -1
	ExpandCollapsed         ExpandState = 0
	ExpandExpanded          ExpandState = 1
	ExpandPartiallyExpanded ExpandState = 2
	ExpandLeaf              ExpandState = 3
)

// RawAttrs is the platform-neutral fact sheet a capture backend fills in
// for one native element before handing it to Build. Every field has a
// safe zero value so a backend that failed to read a given cached
// property can simply leave it unset rather than abort the subtree,
// falling back to the documented default for that property.
type RawAttrs struct {
	Name        string
	Bounds      *Bounds
	Enabled     bool
	Focused     bool
	Offscreen   bool
	Selected    bool
	HasSelected bool
	Readonly    bool
	HasValue    bool
	Value       string
	Required    bool
	Busy        bool
	Toggle      ToggleState
	Expand      ExpandState
	Patterns    Patterns
	Description string
	Attributes  map[string]string
	Platform    map[string]string
	Ref         any
}

// Build derives a CUP node's states, actions, and value from a resolved
// canonical role and a platform's raw fact sheet. ID assignment and
// children are the caller's responsibility (capture order differs per
// backend).
func Build(role Role, raw RawAttrs) *Node {
	n := &Node{
		Role:        role,
		Name:        TruncateRunes(raw.Name, 200),
		Bounds:      raw.Bounds,
		Description: raw.Description,
		Attributes:  raw.Attributes,
		Platform:    raw.Platform,
		Ref:         raw.Ref,
	}

	n.States = deriveStates(role, raw)
	n.Actions = deriveActions(role, raw)
	if raw.HasValue {
		n.Value = TruncateRunes(raw.Value, 200)
	}
	return n
}

func deriveStates(role Role, raw RawAttrs) []State {
	var states []State
	add := func(s State) { states = append(states, s) }

	if !raw.Enabled {
		add(StateDisabled)
	}
	if raw.Focused {
		add(StateFocused)
	}
	if raw.Offscreen {
		add(StateOffscreen)
	}
	switch raw.Toggle {
	case ToggleOn:
		add(StateChecked)
	case ToggleMix:
		add(StateMixed)
	}
	if raw.Patterns.ExpandCollapse {
		switch raw.Expand {
		case ExpandCollapsed:
			add(StateCollapsed)
		case ExpandExpanded, ExpandPartiallyExpanded:
			add(StateExpanded)
		}
	}
	if raw.HasSelected && raw.Selected {
		add(StateSelected)
	}
	if raw.Readonly {
		add(StateReadonly)
	}
	if raw.HasValue && !raw.Readonly && TextInputRoles[role] {
		add(StateEditable)
	}
	if raw.Required {
		add(StateRequired)
	}
	if raw.Busy {
		add(StateBusy)
	}
	return states
}

func deriveActions(role Role, raw RawAttrs) []Action {
	var actions []Action
	add := func(a Action) { actions = append(actions, a) }

	if raw.Patterns.Invoke {
		add(ActionClick)
	}
	if raw.Patterns.Toggle {
		add(ActionToggle)
	}
	if raw.Patterns.ExpandCollapse && raw.Expand != ExpandLeaf {
		add(ActionExpand)
		add(ActionCollapse)
	}
	if raw.Patterns.Value {
		add(ActionSetValue)
		if TextInputRoles[role] {
			add(ActionType)
		}
	}
	if raw.Patterns.SelectionItem {
		add(ActionSelect)
	}
	if raw.Patterns.Scroll {
		add(ActionScroll)
	}
	if raw.Patterns.RangeValue {
		add(ActionIncrement)
		add(ActionDecrement)
	}

	if len(actions) == 0 && raw.Enabled {
		add(ActionFocus)
	}
	return actions
}
