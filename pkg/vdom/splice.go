package vdom

import "github.com/vango-dev/viewcore/pkg/view"

// Splice is the child list of one Node as seen by a view sequence. Every
// operation is applied to the node and recorded on the Ctx.
type Splice struct {
	ctx    *Ctx
	parent *Node
	cursor int
}

// NewSplice opens parent's children with the cursor at the start.
func NewSplice(ctx *Ctx, parent *Node) *Splice {
	return &Splice{ctx: ctx, parent: parent}
}

// Cursor returns the absolute cursor position.
func (s *Splice) Cursor() int {
	return s.cursor
}

func (s *Splice) Insert(i int, e *Node) {
	at := s.cursor + i
	kids := append(s.parent.Children, nil)
	copy(kids[at+1:], kids[at:])
	kids[at] = view.NewPod(e)
	s.parent.Children = kids
	s.ctx.emit(Patch{Op: PatchInsertNode, Target: e.ID, Parent: s.parent.ID, Index: at, Node: e})
}

func (s *Splice) Mutate(i int, fn func(*view.Mut[*Node])) {
	at := s.cursor + i
	pod := s.parent.Children[at]
	old := pod.Element()
	if pod.With(fn) {
		s.ctx.emit(Patch{Op: PatchReplaceNode, Target: old.ID, Parent: s.parent.ID, Index: at, Node: pod.Element()})
	}
}

func (s *Splice) Delete(i int, fn func(*view.Mut[*Node])) {
	at := s.cursor + i
	pod := s.parent.Children[at]
	pod.With(fn)
	s.parent.Children = append(s.parent.Children[:at], s.parent.Children[at+1:]...)
	s.ctx.emit(Patch{Op: PatchRemoveNode, Target: pod.Element().ID, Parent: s.parent.ID, Index: at})
}

func (s *Splice) Move(from, to int) {
	src, dst := s.cursor+from, s.cursor+to
	pod := s.parent.Children[src]
	kids := append(s.parent.Children[:src], s.parent.Children[src+1:]...)
	kids = append(kids, nil)
	copy(kids[dst+1:], kids[dst:])
	kids[dst] = pod
	s.parent.Children = kids
	s.ctx.emit(Patch{Op: PatchMoveNode, Target: pod.Element().ID, Parent: s.parent.ID, Index: dst})
}

func (s *Splice) Skip(n int) {
	s.cursor += n
}
