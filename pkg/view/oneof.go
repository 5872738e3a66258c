package view

// OneOfView is an either-of-N view: exactly one of several variants is
// active. Switching variant tears the old element down completely before the
// new one is built and swapped into the parent's slot; staying on the same
// variant is an ordinary rebuild.
type OneOfView[S, A, E any] struct {
	variant int
	view    View[S, A, E]
}

type oneOfState struct {
	gen   uint64
	inner any
}

type oneOfShape struct {
	variant int
	shape   any
}

// OneOf selects variant i, described by v. Views of the same variant must
// share a concrete type across frames.
func OneOf[S, A, E any](i int, v View[S, A, E]) *OneOfView[S, A, E] {
	return &OneOfView[S, A, E]{variant: i, view: v}
}

// Either picks first when cond holds and second otherwise.
func Either[S, A, E any](cond bool, first, second View[S, A, E]) *OneOfView[S, A, E] {
	if cond {
		return OneOf(0, first)
	}
	return OneOf(1, second)
}

// Variant returns the active variant index.
func (o *OneOfView[S, A, E]) Variant() int {
	return o.variant
}

// Shape includes the variant so that sequences treat a variant change at the
// same position like any other shape change.
func (o *OneOfView[S, A, E]) Shape() any {
	return oneOfShape{variant: o.variant, shape: ShapeOf(o.view)}
}

func (o *OneOfView[S, A, E]) id(st *oneOfState) ViewID {
	return ViewID(st.gen<<8 | uint64(o.variant&0xff))
}

func (o *OneOfView[S, A, E]) Build(ctx Context, app *S) (E, any) {
	st := &oneOfState{gen: 1}
	var el E
	WithID(ctx, o.id(st), func() {
		el, st.inner = o.view.Build(ctx, app)
	})
	return el, st
}

func (o *OneOfView[S, A, E]) Rebuild(prev View[S, A, E], state any, ctx Context, el *Mut[E], app *S) any {
	p := Downcast[*OneOfView[S, A, E]](prev)
	st := StateAs[*oneOfState](state)

	if p.variant == o.variant {
		WithID(ctx, o.id(st), func() {
			st.inner = o.view.Rebuild(p.view, st.inner, ctx, el, app)
		})
		return st
	}

	WithID(ctx, p.id(st), func() {
		p.view.Teardown(st.inner, ctx, el, app)
	})
	st.gen++
	var next E
	WithID(ctx, o.id(st), func() {
		next, st.inner = o.view.Build(ctx, app)
	})
	el.Replace(next)
	return st
}

func (o *OneOfView[S, A, E]) Teardown(state any, ctx Context, el *Mut[E], app *S) {
	st := StateAs[*oneOfState](state)
	WithID(ctx, o.id(st), func() {
		o.view.Teardown(st.inner, ctx, el, app)
	})
}

func (o *OneOfView[S, A, E]) Message(state any, path Path, msg Message, app *S) MessageResult[A] {
	st := StateAs[*oneOfState](state)
	if len(path) == 0 || path[0] != o.id(st) {
		return Stale[A](msg)
	}
	return o.view.Message(st.inner, path[1:], msg, app)
}
