package protocol

import (
	"errors"

	"github.com/vango-dev/viewcore/pkg/vdom"
)

// ErrInvalidPatchOp is returned when decoding an unknown patch op.
var ErrInvalidPatchOp = errors.New("protocol: invalid patch op")

// Patch is the wire form of a vdom.Patch.
//
// Wire format:
//
//	[Op: 1 byte][Target: varint] then, per op:
//	SetText:     [Value]
//	SetAttr:     [Key][Value]
//	RemoveAttr:  [Key]
//	InsertNode:  [Parent: varint][Index: varint][Node]
//	RemoveNode:  [Parent: varint][Index: varint]
//	MoveNode:    [Parent: varint][Index: varint]
//	ReplaceNode: [Parent: varint][Index: varint][Node]
type Patch struct {
	Op     vdom.PatchOp
	Target uint64
	Parent uint64
	Key    string
	Value  string
	Index  int
	Node   *NodeWire
}

// PatchFromVDOM converts a recorded host patch, copying any carried subtree.
func PatchFromVDOM(p vdom.Patch) Patch {
	return Patch{
		Op:     p.Op,
		Target: p.Target,
		Parent: p.Parent,
		Key:    p.Key,
		Value:  p.Value,
		Index:  p.Index,
		Node:   NodeToWire(p.Node),
	}
}

// PatchesFrame is a sequenced batch of patches.
type PatchesFrame struct {
	Seq     uint64
	Patches []Patch
}

// NewPatchesFrame converts a batch of recorded host patches.
func NewPatchesFrame(seq uint64, patches []vdom.Patch) *PatchesFrame {
	pf := &PatchesFrame{Seq: seq, Patches: make([]Patch, len(patches))}
	for i, p := range patches {
		pf.Patches[i] = PatchFromVDOM(p)
	}
	return pf
}

// EncodePatches encodes a PatchesFrame to bytes.
func EncodePatches(pf *PatchesFrame) []byte {
	e := NewEncoder()
	EncodePatchesTo(e, pf)
	return e.Bytes()
}

// EncodePatchesTo encodes a PatchesFrame using the provided encoder.
func EncodePatchesTo(e *Encoder, pf *PatchesFrame) {
	e.WriteUvarint(pf.Seq)
	e.WriteUvarint(uint64(len(pf.Patches)))
	for i := range pf.Patches {
		encodePatch(e, &pf.Patches[i])
	}
}

func encodePatch(e *Encoder, p *Patch) {
	e.WriteByte(byte(p.Op))
	e.WriteUvarint(p.Target)
	switch p.Op {
	case vdom.PatchSetText:
		e.WriteString(p.Value)
	case vdom.PatchSetAttr:
		e.WriteString(p.Key)
		e.WriteString(p.Value)
	case vdom.PatchRemoveAttr:
		e.WriteString(p.Key)
	case vdom.PatchInsertNode, vdom.PatchReplaceNode:
		e.WriteUvarint(p.Parent)
		e.WriteUvarint(uint64(p.Index))
		encodeNode(e, p.Node)
	case vdom.PatchRemoveNode, vdom.PatchMoveNode:
		e.WriteUvarint(p.Parent)
		e.WriteUvarint(uint64(p.Index))
	}
}

// DecodePatches decodes a PatchesFrame from bytes.
func DecodePatches(data []byte) (*PatchesFrame, error) {
	return DecodePatchesFrom(NewDecoder(data))
}

// DecodePatchesFrom decodes a PatchesFrame from a decoder.
func DecodePatchesFrom(d *Decoder) (*PatchesFrame, error) {
	seq, err := d.ReadUvarint()
	if err != nil {
		return nil, err
	}
	count, err := d.ReadCollectionCount()
	if err != nil {
		return nil, err
	}
	pf := &PatchesFrame{Seq: seq, Patches: make([]Patch, count)}
	for i := range pf.Patches {
		if err := decodePatch(d, &pf.Patches[i]); err != nil {
			return nil, err
		}
	}
	return pf, nil
}

func decodePatch(d *Decoder, p *Patch) error {
	op, err := d.ReadByte()
	if err != nil {
		return err
	}
	p.Op = vdom.PatchOp(op)
	if p.Target, err = d.ReadUvarint(); err != nil {
		return err
	}

	switch p.Op {
	case vdom.PatchSetText:
		p.Value, err = d.ReadString()
	case vdom.PatchSetAttr:
		if p.Key, err = d.ReadString(); err != nil {
			return err
		}
		p.Value, err = d.ReadString()
	case vdom.PatchRemoveAttr:
		p.Key, err = d.ReadString()
	case vdom.PatchInsertNode, vdom.PatchReplaceNode:
		if err = decodePlacement(d, p); err != nil {
			return err
		}
		p.Node, err = decodeNode(d, 0)
	case vdom.PatchRemoveNode, vdom.PatchMoveNode:
		err = decodePlacement(d, p)
	default:
		return ErrInvalidPatchOp
	}
	return err
}

func decodePlacement(d *Decoder, p *Patch) error {
	var err error
	if p.Parent, err = d.ReadUvarint(); err != nil {
		return err
	}
	idx, err := d.ReadUvarint()
	if err != nil {
		return err
	}
	if idx > MaxCollectionCount {
		return ErrCollectionTooLarge
	}
	p.Index = int(idx)
	return nil
}

// PatchFrame wraps an encoded batch in a frame.
func PatchFrame(pf *PatchesFrame) *Frame {
	return NewFrame(FramePatches, EncodePatches(pf))
}
