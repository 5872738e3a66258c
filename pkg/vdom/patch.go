package vdom

// PatchOp is the type of patch operation.
type PatchOp uint8

const (
	PatchSetText     PatchOp = 0x01 // Update text content
	PatchSetAttr     PatchOp = 0x02 // Set/update attribute
	PatchRemoveAttr  PatchOp = 0x03 // Remove attribute
	PatchInsertNode  PatchOp = 0x04 // Insert new node
	PatchRemoveNode  PatchOp = 0x05 // Remove node
	PatchMoveNode    PatchOp = 0x06 // Move node to new position
	PatchReplaceNode PatchOp = 0x07 // Replace node entirely
)

// String returns the string representation of the PatchOp.
func (op PatchOp) String() string {
	switch op {
	case PatchSetText:
		return "SetText"
	case PatchSetAttr:
		return "SetAttr"
	case PatchRemoveAttr:
		return "RemoveAttr"
	case PatchInsertNode:
		return "InsertNode"
	case PatchRemoveNode:
		return "RemoveNode"
	case PatchMoveNode:
		return "MoveNode"
	case PatchReplaceNode:
		return "ReplaceNode"
	default:
		return "Unknown"
	}
}

// Patch records a single mutation applied to the tree.
type Patch struct {
	Op     PatchOp // Operation type
	Target uint64  // Node the patch applies to
	Parent uint64  // Parent for Insert/Remove/Move
	Key    string  // Attribute key (for SetAttr/RemoveAttr)
	Value  string  // New value
	Index  int     // Position within the parent after the patch
	Node   *Node   // For InsertNode/ReplaceNode
}

// CountOps tallies patches by operation.
func CountOps(patches []Patch) map[PatchOp]int {
	counts := make(map[PatchOp]int)
	for _, p := range patches {
		counts[p.Op]++
	}
	return counts
}
