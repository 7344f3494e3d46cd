package node

import "testing"

// buildWideTree constructs a forest wide and deep enough to give Prune
// something nontrivial to chew on: a mix of named interactive nodes,
// unlabeled generics due for hoisting, and unlabeled images/text due for
// skipping.
func buildWideTree(breadth, depth int) []*Node {
	if depth == 0 {
		return nil
	}
	out := make([]*Node, 0, breadth)
	for i := 0; i < breadth; i++ {
		switch i % 4 {
		case 0:
			out = append(out, &Node{Role: RoleButton, Name: "item", Actions: []Action{ActionClick},
				Children: buildWideTree(breadth, depth-1)})
		case 1:
			out = append(out, &Node{Role: RoleGeneric, Children: buildWideTree(breadth, depth-1)})
		case 2:
			out = append(out, &Node{Role: RoleImg})
		default:
			out = append(out, &Node{Role: RoleText})
		}
	}
	return out
}

func BenchmarkPrune_Standard(b *testing.B) {
	tree := buildWideTree(6, 4)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Prune(tree, DetailStandard)
	}
}

func BenchmarkPrune_Minimal(b *testing.B) {
	tree := buildWideTree(6, 4)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Prune(tree, DetailMinimal)
	}
}

func BenchmarkPrune_Full(b *testing.B) {
	tree := buildWideTree(6, 4)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Prune(tree, DetailFull)
	}
}

func BenchmarkParseCombo(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		ParseCombo("ctrl+shift+p")
	}
}

func BenchmarkRenderCombo(b *testing.B) {
	c := Combo{Modifiers: []string{"ctrl", "shift"}, Keys: []string{"p"}}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		RenderCombo(c)
	}
}
