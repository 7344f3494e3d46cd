package node

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuild_FallsBackToFocus(t *testing.T) {
	n := Build(RoleGroup, RawAttrs{Name: "wrapper", Enabled: true})
	assert.Equal(t, []Action{ActionFocus}, n.Actions)
}

func TestBuild_InvokeAndValuePatterns(t *testing.T) {
	n := Build(RoleTextbox, RawAttrs{
		Name:     "Search",
		Enabled:  true,
		HasValue: true,
		Value:    "golang",
		Patterns: Patterns{Value: true},
	})
	assert.Contains(t, n.Actions, ActionSetValue)
	assert.Contains(t, n.Actions, ActionType)
	assert.Contains(t, n.States, StateEditable)
	assert.Equal(t, "golang", n.Value)
}

func TestBuild_LeafExpandStateOmitsExpandCollapseActions(t *testing.T) {
	n := Build(RoleTreeItem, RawAttrs{
		Enabled:  true,
		Expand:   ExpandLeaf,
		Patterns: Patterns{ExpandCollapse: true},
	})
	assert.NotContains(t, n.Actions, ActionExpand)
	assert.NotContains(t, n.Actions, ActionCollapse)
}

func TestBuild_PartiallyExpandedGetsExpandedStateAndActions(t *testing.T) {
	n := Build(RoleTreeItem, RawAttrs{
		Enabled:  true,
		Expand:   ExpandPartiallyExpanded,
		Patterns: Patterns{ExpandCollapse: true},
	})
	assert.Contains(t, n.States, StateExpanded)
	assert.Contains(t, n.Actions, ActionExpand)
	assert.Contains(t, n.Actions, ActionCollapse)
}

func TestBuild_DisabledAndOffscreenStates(t *testing.T) {
	n := Build(RoleButton, RawAttrs{Enabled: false, Offscreen: true})
	assert.Contains(t, n.States, StateDisabled)
	assert.Contains(t, n.States, StateOffscreen)
	assert.Empty(t, n.Actions)
}
