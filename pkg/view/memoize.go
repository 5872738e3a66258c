package view

// MemoizeView defers constructing its inner view until its data changes.
//
// The inner view is produced by fn and rebuilt only when data differs from
// the previous frame, or when the inner view asked for a rebuild while
// handling a message since the last pass. The inner view is entered under a
// generation id that changes whenever fn returns a view of another shape.
type MemoizeView[S, A, E any, D comparable] struct {
	data D
	fn   func(D) View[S, A, E]
}

type memoState[S, A, E any] struct {
	gen   uint64
	view  View[S, A, E]
	inner any
	dirty bool
}

// Memoize caches the view fn builds from data.
func Memoize[S, A, E any, D comparable](data D, fn func(D) View[S, A, E]) *MemoizeView[S, A, E, D] {
	return &MemoizeView[S, A, E, D]{data: data, fn: fn}
}

// Frozen builds its view once and never rebuilds it from the outside.
func Frozen[S, A, E any](fn func() View[S, A, E]) *MemoizeView[S, A, E, struct{}] {
	return Memoize(struct{}{}, func(struct{}) View[S, A, E] { return fn() })
}

func (m *MemoizeView[S, A, E, D]) Build(ctx Context, app *S) (E, any) {
	st := &memoState[S, A, E]{gen: 1, view: m.fn(m.data)}
	var el E
	WithID(ctx, ViewID(st.gen), func() {
		el, st.inner = st.view.Build(ctx, app)
	})
	return el, st
}

func (m *MemoizeView[S, A, E, D]) Rebuild(prev View[S, A, E], state any, ctx Context, el *Mut[E], app *S) any {
	p := Downcast[*MemoizeView[S, A, E, D]](prev)
	st := StateAs[*memoState[S, A, E]](state)
	if !st.dirty && p.data == m.data {
		return st
	}

	v := m.fn(m.data)
	if ShapeOf(v) == ShapeOf(st.view) {
		WithID(ctx, ViewID(st.gen), func() {
			st.inner = v.Rebuild(st.view, st.inner, ctx, el, app)
		})
	} else {
		WithID(ctx, ViewID(st.gen), func() {
			st.view.Teardown(st.inner, ctx, el, app)
		})
		st.gen++
		var next E
		WithID(ctx, ViewID(st.gen), func() {
			next, st.inner = v.Build(ctx, app)
		})
		el.Replace(next)
	}
	st.view = v
	st.dirty = false
	return st
}

func (m *MemoizeView[S, A, E, D]) Teardown(state any, ctx Context, el *Mut[E], app *S) {
	st := StateAs[*memoState[S, A, E]](state)
	WithID(ctx, ViewID(st.gen), func() {
		st.view.Teardown(st.inner, ctx, el, app)
	})
}

func (m *MemoizeView[S, A, E, D]) Message(state any, path Path, msg Message, app *S) MessageResult[A] {
	st := StateAs[*memoState[S, A, E]](state)
	if len(path) == 0 || path[0] != ViewID(st.gen) {
		return Stale[A](msg)
	}
	r := st.view.Message(st.inner, path[1:], msg, app)
	if r.Kind == ResultRequestRebuild {
		st.dirty = true
	}
	return r
}
