package view

// RunOnceView calls a function when it is first built and does nothing on
// later frames. It produces no element.
type RunOnceView[S, A any] struct {
	fn func(app *S)
}

// RunOnce runs fn against the app state the first time the node appears.
func RunOnce[S, A any](fn func(app *S)) *RunOnceView[S, A] {
	return &RunOnceView[S, A]{fn: fn}
}

func (r *RunOnceView[S, A]) Build(ctx Context, app *S) (NoElement, any) {
	r.fn(app)
	return NoElement{}, nil
}

func (r *RunOnceView[S, A]) Rebuild(prev View[S, A, NoElement], state any, ctx Context, el *Mut[NoElement], app *S) any {
	return state
}

func (r *RunOnceView[S, A]) Teardown(state any, ctx Context, el *Mut[NoElement], app *S) {}

func (r *RunOnceView[S, A]) Message(state any, path Path, msg Message, app *S) MessageResult[A] {
	return Stale[A](msg)
}
