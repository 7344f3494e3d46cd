package node

// shouldSkip decides whether a node (and its whole subtree) is dropped:
// offscreen filler with no name and nothing actionable, an unlabeled image,
// an unlabeled text node, or a text node that is the only child of a named
// parent (a redundant label; the two names are not compared).
func shouldSkip(n *Node, parent *Node, siblingCount int) bool {
	if n.HasState(StateOffscreen) && n.Name == "" && !n.HasMeaningfulAction() {
		return true
	}
	if n.Role == RoleImg && n.Name == "" {
		return true
	}
	if n.Role == RoleText && n.Name == "" {
		return true
	}
	if n.Role == RoleText && parent != nil && parent.Name != "" && siblingCount == 1 {
		return true
	}
	return false
}

// shouldHoist decides whether a node is dropped but its children spliced
// into its parent's child list in its place.
func shouldHoist(n *Node) bool {
	if n.Role == RoleGeneric && n.Name == "" {
		return true
	}
	if n.Role == RoleGroup && n.Name == "" && !n.HasMeaningfulAction() {
		return true
	}
	return false
}

// pruneStandard applies skip/hoist to one node, returning the list of
// nodes that replace it (0, 1, or — via hoisting — many).
func pruneStandard(n *Node, parent *Node, siblingCount int) []*Node {
	if shouldHoist(n) {
		var out []*Node
		for _, c := range n.Children {
			out = append(out, pruneStandard(c, parent, len(n.Children))...)
		}
		return out
	}
	if shouldSkip(n, parent, siblingCount) {
		return nil
	}

	var children []*Node
	for _, c := range n.Children {
		children = append(children, pruneStandard(c, n, len(n.Children))...)
	}
	cp := *n
	cp.Children = children
	return []*Node{&cp}
}

// pruneMinimal keeps a node only if it (or a kept descendant) carries a
// meaningful action. Returns nil when the whole subtree can be dropped.
func pruneMinimal(n *Node) *Node {
	var kept []*Node
	for _, c := range n.Children {
		if pc := pruneMinimal(c); pc != nil {
			kept = append(kept, pc)
		}
	}
	if n.HasMeaningfulAction() || len(kept) > 0 {
		cp := *n
		cp.Children = kept
		return &cp
	}
	return nil
}

// Prune applies the named detail level to a captured forest, returning a
// new tree. IDs are never reassigned; pruning only removes nodes (or, for
// hoisting, removes a node while keeping its children).
//
// full     — deep copy, unchanged.
// standard — skip/hoist rules above.
// minimal  — standard result, further reduced to interactive nodes and
//
//	their ancestor chain.
func Prune(roots []*Node, detail Detail) []*Node {
	switch detail {
	case DetailFull:
		return CloneDeep(roots)
	case DetailMinimal:
		standard := pruneStandardForest(roots)
		var out []*Node
		for _, r := range standard {
			if pr := pruneMinimal(r); pr != nil {
				out = append(out, pr)
			}
		}
		return out
	default: // standard, and any unrecognized value falls back to it
		return pruneStandardForest(roots)
	}
}

func pruneStandardForest(roots []*Node) []*Node {
	var out []*Node
	for _, r := range roots {
		out = append(out, pruneStandard(r, nil, len(roots))...)
	}
	return out
}
