package view

// AppendVec collects the elements a sequence builds.
type AppendVec[E any] struct {
	items []E
}

// Push appends an element.
func (v *AppendVec[E]) Push(e E) {
	v.items = append(v.items, e)
}

// Len returns the number of collected elements.
func (v *AppendVec[E]) Len() int {
	return len(v.items)
}

// Items returns the collected elements.
func (v *AppendVec[E]) Items() []E {
	return v.items
}

// Drain returns the collected elements and empties the vector.
func (v *AppendVec[E]) Drain() []E {
	out := v.items
	v.items = nil
	return out
}

// ElementSplice is a container's child list as seen by a sequence.
//
// All positions are relative to a cursor. Elements before the cursor belong
// to sequences that have finished; a sequence works on the elements at and
// after it, then calls Skip with its final element count.
type ElementSplice[E any] interface {
	// Insert places e at offset i.
	Insert(i int, e E)
	// Mutate issues a handle for the element at offset i.
	Mutate(i int, fn func(*Mut[E]))
	// Delete runs fn on the element at offset i, then removes it.
	Delete(i int, fn func(*Mut[E]))
	// Move relocates the element at offset from to offset to, where to is
	// counted after the element has been taken out.
	Move(from, to int)
	// Skip advances the cursor past n elements.
	Skip(n int)
}

// ViewSequence describes zero or more sibling elements.
type ViewSequence[S, A, E any] interface {
	SeqBuild(ctx Context, out *AppendVec[E], app *S) any
	// SeqRebuild leaves the splice cursor after its last element.
	SeqRebuild(prev ViewSequence[S, A, E], state any, ctx Context, splice ElementSplice[E], app *S) any
	// SeqTeardown removes all of the sequence's elements; the cursor does
	// not move.
	SeqTeardown(state any, ctx Context, splice ElementSplice[E], app *S)
	SeqMessage(state any, path Path, msg Message, app *S) MessageResult[A]
}

// OneSeq is a sequence of exactly one view. It is entered under id 0; when
// the view changes shape the old node is torn down and the new one is built
// under the next id, so messages for the old node come back Stale.
type OneSeq[S, A, E any] struct {
	view View[S, A, E]
}

type oneState struct {
	id    ViewID
	inner any
}

// One lifts a view into a one-element sequence.
func One[S, A, E any](v View[S, A, E]) *OneSeq[S, A, E] {
	return &OneSeq[S, A, E]{view: v}
}

func (o *OneSeq[S, A, E]) SeqBuild(ctx Context, out *AppendVec[E], app *S) any {
	st := &oneState{}
	var el E
	WithID(ctx, st.id, func() {
		el, st.inner = o.view.Build(ctx, app)
	})
	out.Push(el)
	return st
}

func (o *OneSeq[S, A, E]) SeqRebuild(prev ViewSequence[S, A, E], state any, ctx Context, splice ElementSplice[E], app *S) any {
	p := Downcast[*OneSeq[S, A, E]](prev)
	st := StateAs[*oneState](state)
	splice.Mutate(0, func(m *Mut[E]) {
		if ShapeOf(p.view) == ShapeOf(o.view) {
			WithID(ctx, st.id, func() {
				st.inner = o.view.Rebuild(p.view, st.inner, ctx, m, app)
			})
			return
		}
		WithID(ctx, st.id, func() {
			p.view.Teardown(st.inner, ctx, m, app)
		})
		st.id++
		var next E
		WithID(ctx, st.id, func() {
			next, st.inner = o.view.Build(ctx, app)
		})
		m.Replace(next)
	})
	splice.Skip(1)
	return st
}

func (o *OneSeq[S, A, E]) SeqTeardown(state any, ctx Context, splice ElementSplice[E], app *S) {
	st := StateAs[*oneState](state)
	splice.Delete(0, func(m *Mut[E]) {
		WithID(ctx, st.id, func() {
			o.view.Teardown(st.inner, ctx, m, app)
		})
	})
}

func (o *OneSeq[S, A, E]) SeqMessage(state any, path Path, msg Message, app *S) MessageResult[A] {
	st := StateAs[*oneState](state)
	if len(path) == 0 || path[0] != st.id {
		return Stale[A](msg)
	}
	return o.view.Message(st.inner, path[1:], msg, app)
}

// Shape lets a OneSeq be matched by the shape of the view it wraps.
func (o *OneSeq[S, A, E]) Shape() any {
	return ShapeOf(o.view)
}
