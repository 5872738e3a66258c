package vdom

import (
	"sync"

	"github.com/vango-dev/viewcore/pkg/view"
)

// Kind is the node type discriminator.
type Kind uint8

const (
	KindElement Kind = iota // <div>, <button>, etc.
	KindText                // Plain text node
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindElement:
		return "element"
	case KindText:
		return "text"
	default:
		return "unknown"
	}
}

// Node is one host element.
type Node struct {
	ID       uint64 // Serial id, unique per Ctx
	Kind     Kind
	Tag      string            // Element tag name
	Text     string            // Text content, or a leaf element's label
	Attrs    map[string]string // Attributes
	Children []*view.Pod[*Node]
	Path     view.Path // Path the node was built under
}

// Child returns the i-th child element.
func (n *Node) Child(i int) *Node {
	return n.Children[i].Element()
}

// ChildNodes returns the child elements in order.
func (n *Node) ChildNodes() []*Node {
	out := make([]*Node, len(n.Children))
	for i, p := range n.Children {
		out[i] = p.Element()
	}
	return out
}

// IDGenerator hands out serial node ids.
type IDGenerator struct {
	counter uint64
	mu      sync.Mutex
}

// NewIDGenerator creates a new IDGenerator.
func NewIDGenerator() *IDGenerator {
	return &IDGenerator{}
}

// Next returns the next id, starting at 1.
func (g *IDGenerator) Next() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.counter++
	return g.counter
}

// Reset resets the counter to 0.
func (g *IDGenerator) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.counter = 0
}

// Current returns the current counter value without incrementing.
func (g *IDGenerator) Current() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.counter
}
