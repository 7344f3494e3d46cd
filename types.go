// Package cup implements the Computer Use Protocol: a platform-neutral
// accessibility-tree capture and action-execution engine for autonomous
// desktop agents.
//
// A Session owns one platform Adapter, the Reference Registry from its
// most recent capture, and the pruning/serialization pipeline between
// them:
//
//	sess, err := cup.NewSession()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer sess.Close()
//
//	env, err := sess.Capture(cup.CaptureOptions{Scope: cup.ScopeForeground})
//	text := sess.SerializeCompact(env)
//	result := sess.Execute("e3", node.ActionClick, nil)
package cup

import "github.com/anxuanzi/cup/pkg/node"

// Scope bounds how much of the desktop a capture walks.
type Scope string

const (
	// ScopeOverview lists open windows only; no tree is walked.
	ScopeOverview Scope = "overview"
	// ScopeForeground captures only the frontmost window.
	ScopeForeground Scope = "foreground"
	// ScopeDesktop captures the desktop surface only.
	ScopeDesktop Scope = "desktop"
	// ScopeFull captures every open window.
	ScopeFull Scope = "full"
)

// Re-export the node package's data-model types so callers only need to
// import this one package for the common case.
type (
	Node     = node.Node
	Role     = node.Role
	State    = node.State
	Action   = node.Action
	Bounds   = node.Bounds
	Detail   = node.Detail
	Envelope = node.Envelope
	Combo    = node.Combo
)

// Re-export canonical roles.
const (
	RoleButton       = node.RoleButton
	RoleCheckbox     = node.RoleCheckbox
	RoleComboBox     = node.RoleComboBox
	RoleTextbox      = node.RoleTextbox
	RoleSearchbox    = node.RoleSearchbox
	RoleLink         = node.RoleLink
	RoleImg          = node.RoleImg
	RoleList         = node.RoleList
	RoleListItem     = node.RoleListItem
	RoleMenu         = node.RoleMenu
	RoleMenuBar      = node.RoleMenuBar
	RoleMenuItem     = node.RoleMenuItem
	RoleProgressBar  = node.RoleProgressBar
	RoleRadio        = node.RoleRadio
	RoleScrollBar    = node.RoleScrollBar
	RoleSlider       = node.RoleSlider
	RoleSpinButton   = node.RoleSpinButton
	RoleStatus       = node.RoleStatus
	RoleTabList      = node.RoleTabList
	RoleTab          = node.RoleTab
	RoleText         = node.RoleText
	RoleToolbar      = node.RoleToolbar
	RoleTooltip      = node.RoleTooltip
	RoleTree         = node.RoleTree
	RoleTreeItem     = node.RoleTreeItem
	RoleGrid         = node.RoleGrid
	RoleRow          = node.RoleRow
	RoleDocument     = node.RoleDocument
	RoleWindow       = node.RoleWindow
	RolePane         = node.RolePane
	RoleTitleBar     = node.RoleTitleBar
	RoleSeparator    = node.RoleSeparator
	RoleGroup        = node.RoleGroup
	RoleRegion       = node.RoleRegion
	RoleGeneric      = node.RoleGeneric
	RoleColumnHeader = node.RoleColumnHeader
	RoleTable        = node.RoleTable
	RoleHeading      = node.RoleHeading
	RoleDialog       = node.RoleDialog
)

// Re-export canonical states.
const (
	StateDisabled  = node.StateDisabled
	StateFocused   = node.StateFocused
	StateOffscreen = node.StateOffscreen
	StateChecked   = node.StateChecked
	StateMixed     = node.StateMixed
	StateCollapsed = node.StateCollapsed
	StateExpanded  = node.StateExpanded
	StateSelected  = node.StateSelected
	StateReadonly  = node.StateReadonly
	StateEditable  = node.StateEditable
	StateRequired  = node.StateRequired
	StateBusy      = node.StateBusy
)

// Re-export the fifteen canonical actions.
const (
	ActionClick       = node.ActionClick
	ActionRightClick  = node.ActionRightClick
	ActionDoubleClick = node.ActionDoubleClick
	ActionToggle      = node.ActionToggle
	ActionType        = node.ActionType
	ActionSetValue    = node.ActionSetValue
	ActionSelect      = node.ActionSelect
	ActionExpand      = node.ActionExpand
	ActionCollapse    = node.ActionCollapse
	ActionScroll      = node.ActionScroll
	ActionIncrement   = node.ActionIncrement
	ActionDecrement   = node.ActionDecrement
	ActionFocus       = node.ActionFocus
	ActionLongPress   = node.ActionLongPress
	ActionDismiss     = node.ActionDismiss
)

// Re-export detail levels.
const (
	DetailFull     = node.DetailFull
	DetailStandard = node.DetailStandard
	DetailMinimal  = node.DetailMinimal
)

// ActionSpec is one step of a BatchExecute call.
type ActionSpec struct {
	ElementID string
	Action    Action
	Params    map[string]string
}

// ActionResult is the outcome of one Execute or BatchExecute step.
type ActionResult struct {
	ElementID string
	Success   bool
	Message   string
	Err       error
}

// FindCriteria is the AND-combined filter find_elements searches with.
// A zero-value field is not applied as a filter.
type FindCriteria struct {
	Role  Role
	Name  string
	State State
}

// Version returns the CUP implementation version.
func Version() string {
	return node.EnvelopeVersion
}
