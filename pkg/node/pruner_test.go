package node

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrune_HoistsUnnamedGeneric(t *testing.T) {
	tree := []*Node{
		{ID: "e0", Role: RoleGeneric, Children: []*Node{
			{ID: "e1", Role: RoleButton, Name: "OK"},
		}},
	}
	got := Prune(tree, DetailStandard)
	require.Len(t, got, 1)
	assert.Equal(t, "e1", got[0].ID)
	assert.Equal(t, RoleButton, got[0].Role)
}

func TestPrune_DropsUnnamedImage(t *testing.T) {
	tree := []*Node{{ID: "e0", Role: RoleImg}}
	got := Prune(tree, DetailStandard)
	assert.Empty(t, got)
}

func TestPrune_DropsRedundantTextLabel(t *testing.T) {
	tree := []*Node{
		{ID: "e0", Role: RoleButton, Name: "Submit", Children: []*Node{
			{ID: "e1", Role: RoleText, Name: "Submit"},
		}},
	}
	got := Prune(tree, DetailStandard)
	require.Len(t, got, 1)
	assert.Equal(t, "e0", got[0].ID)
	assert.Empty(t, got[0].Children)
}

func TestPrune_Monotonicity(t *testing.T) {
	tree := []*Node{
		{ID: "e0", Role: RoleGeneric, Children: []*Node{
			{ID: "e1", Role: RoleText, Name: "hello", Actions: []Action{ActionFocus}},
			{ID: "e2", Role: RoleButton, Name: "Go", Actions: []Action{ActionClick}},
		}},
	}
	minimal := idSet(Prune(tree, DetailMinimal))
	standard := idSet(Prune(tree, DetailStandard))
	full := idSet(Prune(tree, DetailFull))

	for id := range minimal {
		assert.Contains(t, standard, id)
	}
	for id := range standard {
		assert.Contains(t, full, id)
	}
}

func TestPrune_Idempotent(t *testing.T) {
	tree := []*Node{
		{ID: "e0", Role: RoleGeneric, Children: []*Node{
			{ID: "e1", Role: RoleButton, Name: "OK"},
			{ID: "e2", Role: RoleImg},
		}},
	}
	for _, d := range []Detail{DetailFull, DetailStandard, DetailMinimal} {
		once := Prune(tree, d)
		twice := Prune(once, d)
		assert.Equal(t, idSet(once), idSet(twice), "detail=%s", d)
	}
}

func TestPrune_PreservesNodeIdentity(t *testing.T) {
	tree := []*Node{
		{ID: "e0", Role: RoleGeneric, Children: []*Node{
			{ID: "e1", Role: RoleButton, Name: "OK", Actions: []Action{ActionClick}},
		}},
	}
	got := Prune(tree, DetailStandard)
	require.Len(t, got, 1)
	assert.Equal(t, "e1", got[0].ID)
	assert.Equal(t, RoleButton, got[0].Role)
	assert.Equal(t, "OK", got[0].Name)
	assert.Equal(t, []Action{ActionClick}, got[0].Actions)
}

func idSet(roots []*Node) map[string]bool {
	out := map[string]bool{}
	Walk(roots, func(n *Node, depth int) { out[n.ID] = true })
	return out
}
