package protocol

import (
	"sort"

	"github.com/vango-dev/viewcore/pkg/vdom"
)

// NodeWire is the wire form of a vdom node and its subtree.
type NodeWire struct {
	ID       uint64
	Kind     vdom.Kind
	Tag      string
	Text     string
	Attrs    map[string]string
	Children []*NodeWire
}

// NodeToWire copies a host subtree into its wire form.
func NodeToWire(n *vdom.Node) *NodeWire {
	if n == nil {
		return nil
	}
	w := &NodeWire{ID: n.ID, Kind: n.Kind, Tag: n.Tag, Text: n.Text}
	if len(n.Attrs) > 0 {
		w.Attrs = make(map[string]string, len(n.Attrs))
		for k, v := range n.Attrs {
			w.Attrs[k] = v
		}
	}
	for _, c := range n.ChildNodes() {
		w.Children = append(w.Children, NodeToWire(c))
	}
	return w
}

// Wire format:
//
//	[Kind: 1 byte][ID: varint]
//	Text:    [Text: len-prefixed]
//	Element: [Tag][Text][AttrCount: varint][Key, Value]...[ChildCount: varint][Child]...
//
// Attributes are written in key order so equal trees encode identically.
func encodeNode(e *Encoder, n *NodeWire) {
	e.WriteByte(byte(n.Kind))
	e.WriteUvarint(n.ID)
	if n.Kind == vdom.KindText {
		e.WriteString(n.Text)
		return
	}
	e.WriteString(n.Tag)
	e.WriteString(n.Text)

	keys := make([]string, 0, len(n.Attrs))
	for k := range n.Attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	e.WriteUvarint(uint64(len(keys)))
	for _, k := range keys {
		e.WriteString(k)
		e.WriteString(n.Attrs[k])
	}

	e.WriteUvarint(uint64(len(n.Children)))
	for _, c := range n.Children {
		encodeNode(e, c)
	}
}

func decodeNode(d *Decoder, depth int) (*NodeWire, error) {
	if depth > MaxNodeDepth {
		return nil, ErrMaxDepthExceeded
	}
	kb, err := d.ReadByte()
	if err != nil {
		return nil, err
	}
	n := &NodeWire{Kind: vdom.Kind(kb)}
	if n.ID, err = d.ReadUvarint(); err != nil {
		return nil, err
	}
	switch n.Kind {
	case vdom.KindText:
		n.Text, err = d.ReadString()
		return n, err
	case vdom.KindElement:
	default:
		return nil, ErrInvalidNodeKind
	}

	if n.Tag, err = d.ReadString(); err != nil {
		return nil, err
	}
	if n.Text, err = d.ReadString(); err != nil {
		return nil, err
	}

	attrs, err := d.ReadCollectionCount()
	if err != nil {
		return nil, err
	}
	if attrs > 0 {
		n.Attrs = make(map[string]string, attrs)
	}
	for i := 0; i < attrs; i++ {
		k, err := d.ReadString()
		if err != nil {
			return nil, err
		}
		v, err := d.ReadString()
		if err != nil {
			return nil, err
		}
		n.Attrs[k] = v
	}

	children, err := d.ReadCollectionCount()
	if err != nil {
		return nil, err
	}
	for i := 0; i < children; i++ {
		c, err := decodeNode(d, depth+1)
		if err != nil {
			return nil, err
		}
		n.Children = append(n.Children, c)
	}
	return n, nil
}
