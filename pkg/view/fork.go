package view

const (
	forkActive ViewID = iota
	forkBackground
)

// ForkView pairs a view with a background view that has no element, such
// as a Task. The background view lives and dies with the active one.
type ForkView[S, A, E any] struct {
	active     View[S, A, E]
	background View[S, A, NoElement]
}

type forkState struct {
	active     any
	background any
	pod        *Pod[NoElement]
}

// Fork runs background alongside active.
func Fork[S, A, E any](active View[S, A, E], background View[S, A, NoElement]) *ForkView[S, A, E] {
	return &ForkView[S, A, E]{active: active, background: background}
}

func (f *ForkView[S, A, E]) Shape() any {
	return forkShape{active: ShapeOf(f.active), background: ShapeOf(f.background)}
}

type forkShape struct {
	active     any
	background any
}

func (f *ForkView[S, A, E]) Build(ctx Context, app *S) (E, any) {
	st := &forkState{}
	var el E
	WithID(ctx, forkActive, func() {
		el, st.active = f.active.Build(ctx, app)
	})
	WithID(ctx, forkBackground, func() {
		var bg NoElement
		bg, st.background = f.background.Build(ctx, app)
		st.pod = NewPod(bg)
	})
	return el, st
}

func (f *ForkView[S, A, E]) Rebuild(prev View[S, A, E], state any, ctx Context, el *Mut[E], app *S) any {
	p := Downcast[*ForkView[S, A, E]](prev)
	st := StateAs[*forkState](state)
	WithID(ctx, forkActive, func() {
		st.active = f.active.Rebuild(p.active, st.active, ctx, el, app)
	})
	WithID(ctx, forkBackground, func() {
		st.pod.With(func(m *Mut[NoElement]) {
			st.background = f.background.Rebuild(p.background, st.background, ctx, m, app)
		})
	})
	return st
}

func (f *ForkView[S, A, E]) Teardown(state any, ctx Context, el *Mut[E], app *S) {
	st := StateAs[*forkState](state)
	WithID(ctx, forkBackground, func() {
		st.pod.With(func(m *Mut[NoElement]) {
			f.background.Teardown(st.background, ctx, m, app)
		})
	})
	WithID(ctx, forkActive, func() {
		f.active.Teardown(st.active, ctx, el, app)
	})
}

func (f *ForkView[S, A, E]) Message(state any, path Path, msg Message, app *S) MessageResult[A] {
	if len(path) == 0 {
		return Stale[A](msg)
	}
	st := StateAs[*forkState](state)
	switch path[0] {
	case forkActive:
		return f.active.Message(st.active, path[1:], msg, app)
	case forkBackground:
		return f.background.Message(st.background, path[1:], msg, app)
	default:
		return Stale[A](msg)
	}
}
