package view

// AnyView erases the concrete type of the view it wraps. The runtime tag is
// the wrapped view's shape, checked when the node is rebuilt: a different
// tag means a different node, so the old one is torn down and a new one is
// built under a fresh id and swapped in.
type AnyView[S, A, E any] struct {
	inner View[S, A, E]
}

type anyState struct {
	gen   uint64
	inner any
}

// Erase wraps v behind its runtime shape.
func Erase[S, A, E any](v View[S, A, E]) *AnyView[S, A, E] {
	if a, ok := v.(*AnyView[S, A, E]); ok {
		return a
	}
	return &AnyView[S, A, E]{inner: v}
}

// Inner returns the wrapped view.
func (a *AnyView[S, A, E]) Inner() View[S, A, E] {
	return a.inner
}

// Shape is the shape of the wrapped view.
func (a *AnyView[S, A, E]) Shape() any {
	return wrapShape(a, a.inner)
}

func (a *AnyView[S, A, E]) tag() any {
	return ShapeOf(a.inner)
}

func (a *AnyView[S, A, E]) Build(ctx Context, app *S) (E, any) {
	st := &anyState{gen: 1}
	var el E
	WithID(ctx, ViewID(st.gen), func() {
		el, st.inner = a.inner.Build(ctx, app)
	})
	return el, st
}

func (a *AnyView[S, A, E]) Rebuild(prev View[S, A, E], state any, ctx Context, el *Mut[E], app *S) any {
	p := Downcast[*AnyView[S, A, E]](prev)
	st := StateAs[*anyState](state)

	if p.tag() == a.tag() {
		WithID(ctx, ViewID(st.gen), func() {
			st.inner = a.inner.Rebuild(p.inner, st.inner, ctx, el, app)
		})
		return st
	}

	WithID(ctx, ViewID(st.gen), func() {
		p.inner.Teardown(st.inner, ctx, el, app)
	})
	st.gen++
	var next E
	WithID(ctx, ViewID(st.gen), func() {
		next, st.inner = a.inner.Build(ctx, app)
	})
	el.Replace(next)
	return st
}

func (a *AnyView[S, A, E]) Teardown(state any, ctx Context, el *Mut[E], app *S) {
	st := StateAs[*anyState](state)
	WithID(ctx, ViewID(st.gen), func() {
		a.inner.Teardown(st.inner, ctx, el, app)
	})
}

func (a *AnyView[S, A, E]) Message(state any, path Path, msg Message, app *S) MessageResult[A] {
	st := StateAs[*anyState](state)
	if len(path) == 0 || path[0] != ViewID(st.gen) {
		return Stale[A](msg)
	}
	return a.inner.Message(st.inner, path[1:], msg, app)
}
