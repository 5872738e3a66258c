package vdom

import (
	"sort"
	"strings"

	"github.com/vango-dev/viewcore/pkg/view"
)

// Render prints n as compact markup with attributes in key order.
func Render(n *Node) string {
	var b strings.Builder
	renderNode(&b, n)
	return b.String()
}

func renderNode(b *strings.Builder, n *Node) {
	if n == nil {
		return
	}
	if n.Kind == KindText {
		b.WriteString(escapeText(n.Text))
		return
	}

	b.WriteByte('<')
	b.WriteString(n.Tag)
	for _, k := range sortedKeys(n.Attrs) {
		b.WriteByte(' ')
		b.WriteString(k)
		b.WriteString(`="`)
		b.WriteString(escapeAttr(n.Attrs[k]))
		b.WriteByte('"')
	}
	b.WriteByte('>')
	b.WriteString(escapeText(n.Text))
	for _, c := range n.Children {
		renderNode(b, c.Element())
	}
	b.WriteString("</")
	b.WriteString(n.Tag)
	b.WriteByte('>')
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// SnapshotNode is the serialisable form of a Node.
type SnapshotNode struct {
	ID       uint64            `json:"id"`
	Kind     string            `json:"kind"`
	Tag      string            `json:"tag,omitempty"`
	Text     string            `json:"text,omitempty"`
	Attrs    map[string]string `json:"attrs,omitempty"`
	Path     string            `json:"path"`
	Children []SnapshotNode    `json:"children,omitempty"`
}

// Snapshot copies the tree under n.
func Snapshot(n *Node) SnapshotNode {
	s := SnapshotNode{
		ID:   n.ID,
		Kind: n.Kind.String(),
		Tag:  n.Tag,
		Text: n.Text,
		Path: n.Path.String(),
	}
	if len(n.Attrs) > 0 {
		s.Attrs = copyAttrs(n.Attrs)
	}
	for _, c := range n.Children {
		s.Children = append(s.Children, Snapshot(c.Element()))
	}
	return s
}

// Walk visits n and its descendants depth first. Returning false from fn
// skips the node's children.
func Walk(n *Node, fn func(*Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, c := range n.Children {
		Walk(c.Element(), fn)
	}
}

// CollectPaths returns the build path of every node under n, in document
// order.
func CollectPaths(n *Node) []view.Path {
	var out []view.Path
	Walk(n, func(c *Node) bool {
		out = append(out, c.Path)
		return true
	})
	return out
}

// FindByPath returns the node built under path, or nil.
func FindByPath(n *Node, path view.Path) *Node {
	var found *Node
	Walk(n, func(c *Node) bool {
		if found != nil {
			return false
		}
		if c.Path.Equal(path) {
			found = c
			return false
		}
		return path.HasPrefix(c.Path)
	})
	return found
}

// FindByID returns the node with the given serial id, or nil.
func FindByID(n *Node, id uint64) *Node {
	var found *Node
	Walk(n, func(c *Node) bool {
		if c.ID == id {
			found = c
		}
		return found == nil
	})
	return found
}
