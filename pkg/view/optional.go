package view

// OptionalSeq contributes its view's element when present and nothing when
// absent. A presence change never rebuilds: the element is built or torn
// down. Every build enters a fresh id, so messages captured for an earlier
// incarnation are answered with Stale.
type OptionalSeq[S, A, E any] struct {
	view View[S, A, E]
}

type optionalState struct {
	present bool
	gen     uint64
	inner   any
}

// Optional wraps v, which may be nil.
func Optional[S, A, E any](v View[S, A, E]) *OptionalSeq[S, A, E] {
	return &OptionalSeq[S, A, E]{view: v}
}

// None returns an absent optional.
func None[S, A, E any]() *OptionalSeq[S, A, E] {
	return &OptionalSeq[S, A, E]{}
}

// When returns Optional(v) if cond holds and None otherwise.
func When[S, A, E any](cond bool, v View[S, A, E]) *OptionalSeq[S, A, E] {
	if !cond {
		return None[S, A, E]()
	}
	return Optional(v)
}

// Present reports whether the optional holds a view.
func (o *OptionalSeq[S, A, E]) Present() bool {
	return o.view != nil
}

func (o *OptionalSeq[S, A, E]) build(st *optionalState, ctx Context, app *S) E {
	st.gen++
	st.present = true
	var el E
	WithID(ctx, ViewID(st.gen), func() {
		el, st.inner = o.view.Build(ctx, app)
	})
	return el
}

func (o *OptionalSeq[S, A, E]) SeqBuild(ctx Context, out *AppendVec[E], app *S) any {
	st := &optionalState{}
	if o.view != nil {
		out.Push(o.build(st, ctx, app))
	}
	return st
}

func (o *OptionalSeq[S, A, E]) SeqRebuild(prev ViewSequence[S, A, E], state any, ctx Context, splice ElementSplice[E], app *S) any {
	p := Downcast[*OptionalSeq[S, A, E]](prev)
	st := StateAs[*optionalState](state)

	switch {
	case p.view != nil && o.view != nil:
		if ShapeOf(p.view) != ShapeOf(o.view) {
			o.teardownInner(p.view, st, ctx, splice, app)
			splice.Insert(0, o.build(st, ctx, app))
			break
		}
		splice.Mutate(0, func(m *Mut[E]) {
			WithID(ctx, ViewID(st.gen), func() {
				st.inner = o.view.Rebuild(p.view, st.inner, ctx, m, app)
			})
		})
	case p.view != nil:
		o.teardownInner(p.view, st, ctx, splice, app)
	case o.view != nil:
		splice.Insert(0, o.build(st, ctx, app))
	}

	if st.present {
		splice.Skip(1)
	}
	return st
}

func (o *OptionalSeq[S, A, E]) teardownInner(v View[S, A, E], st *optionalState, ctx Context, splice ElementSplice[E], app *S) {
	splice.Delete(0, func(m *Mut[E]) {
		WithID(ctx, ViewID(st.gen), func() {
			v.Teardown(st.inner, ctx, m, app)
		})
	})
	st.present = false
	st.inner = nil
}

func (o *OptionalSeq[S, A, E]) SeqTeardown(state any, ctx Context, splice ElementSplice[E], app *S) {
	st := StateAs[*optionalState](state)
	if o.view != nil && st.present {
		o.teardownInner(o.view, st, ctx, splice, app)
	}
}

func (o *OptionalSeq[S, A, E]) SeqMessage(state any, path Path, msg Message, app *S) MessageResult[A] {
	st := StateAs[*optionalState](state)
	if len(path) == 0 || o.view == nil || !st.present || path[0] != ViewID(st.gen) {
		return Stale[A](msg)
	}
	return o.view.Message(st.inner, path[1:], msg, app)
}
