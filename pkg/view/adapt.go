package view

// MapActionView converts the actions bubbling out of a subtree.
type MapActionView[S, A, B, E any] struct {
	inner View[S, A, E]
	fn    func(app *S, a A) B
}

// MapAction wraps v so that every action it produces goes through fn.
func MapAction[S, A, B, E any](v View[S, A, E], fn func(app *S, a A) B) *MapActionView[S, A, B, E] {
	return &MapActionView[S, A, B, E]{inner: v, fn: fn}
}

func (m *MapActionView[S, A, B, E]) Shape() any {
	return wrapShape(m, m.inner)
}

func (m *MapActionView[S, A, B, E]) Build(ctx Context, app *S) (E, any) {
	return m.inner.Build(ctx, app)
}

func (m *MapActionView[S, A, B, E]) Rebuild(prev View[S, B, E], state any, ctx Context, el *Mut[E], app *S) any {
	p := Downcast[*MapActionView[S, A, B, E]](prev)
	return m.inner.Rebuild(p.inner, state, ctx, el, app)
}

func (m *MapActionView[S, A, B, E]) Teardown(state any, ctx Context, el *Mut[E], app *S) {
	m.inner.Teardown(state, ctx, el, app)
}

func (m *MapActionView[S, A, B, E]) Message(state any, path Path, msg Message, app *S) MessageResult[B] {
	r := m.inner.Message(state, path, msg, app)
	return MapResult(r, func(a A) MessageResult[B] {
		return Action(m.fn(app, a))
	})
}

// LensView runs a subtree written against a part T of the app state S.
type LensView[S, T, A, E any] struct {
	inner View[T, A, E]
	focus func(app *S) *T
}

// Lens focuses v onto the part of the app state returned by focus.
func Lens[S, T, A, E any](v View[T, A, E], focus func(app *S) *T) *LensView[S, T, A, E] {
	return &LensView[S, T, A, E]{inner: v, focus: focus}
}

func (l *LensView[S, T, A, E]) Shape() any {
	return wrapShape(l, l.inner)
}

func (l *LensView[S, T, A, E]) Build(ctx Context, app *S) (E, any) {
	return l.inner.Build(ctx, l.focus(app))
}

func (l *LensView[S, T, A, E]) Rebuild(prev View[S, A, E], state any, ctx Context, el *Mut[E], app *S) any {
	p := Downcast[*LensView[S, T, A, E]](prev)
	return l.inner.Rebuild(p.inner, state, ctx, el, l.focus(app))
}

func (l *LensView[S, T, A, E]) Teardown(state any, ctx Context, el *Mut[E], app *S) {
	l.inner.Teardown(state, ctx, el, l.focus(app))
}

func (l *LensView[S, T, A, E]) Message(state any, path Path, msg Message, app *S) MessageResult[A] {
	return l.inner.Message(state, path, msg, l.focus(app))
}
