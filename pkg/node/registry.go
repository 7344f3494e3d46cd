package node

import (
	"fmt"
	"sync"
)

// Registry maps ephemeral snapshot IDs to native element handles. A
// Registry is built up during one capture and then replaced wholesale by
// the next, so IDs from a stale capture reliably fail lookup instead of
// silently resolving to the wrong element.
type Registry struct {
	mu      sync.Mutex
	handles map[string]*Node
}

// NewRegistry returns an empty Registry, ready to accept entries during a
// capture.
func NewRegistry() *Registry {
	return &Registry{handles: make(map[string]*Node)}
}

// Put records the native handle for a single node ID, replacing any entry
// already stored under it. Capture publishes through Builder and Swap
// instead.
func (r *Registry) Put(n *Node) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handles[n.ID] = n
}

// Lookup resolves an ID to its node (and native handle via Node.Ref).
// Returns false if the ID is unknown in this Registry.
func (r *Registry) Lookup(id string) (*Node, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.handles[id]
	return n, ok
}

// Len reports how many handles this Registry currently holds.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.handles)
}

// Swap atomically replaces this Registry's table with a freshly built one
// and returns the replaced (now-stale) handles for release by the caller.
func (r *Registry) Swap(fresh map[string]*Node) map[string]*Node {
	r.mu.Lock()
	defer r.mu.Unlock()
	old := r.handles
	r.handles = fresh
	return old
}

// Builder accumulates (id, node) pairs during one capture walk before they
// are published to a Registry atomically.
type Builder struct {
	counter int
	handles map[string]*Node
}

// NewBuilder starts a fresh ID sequence for one capture.
func NewBuilder() *Builder {
	return &Builder{handles: make(map[string]*Node)}
}

// NextID returns the next monotonically increasing ephemeral ID in
// "eN" form, and records the owning node for later publication.
func (b *Builder) NextID(n *Node) string {
	id := formatID(b.counter)
	b.counter++
	n.ID = id
	b.handles[id] = n
	return id
}

// Handles returns the accumulated id→node table, ready to be swapped into
// a Registry.
func (b *Builder) Handles() map[string]*Node {
	return b.handles
}

func formatID(n int) string {
	return fmt.Sprintf("e%d", n)
}
