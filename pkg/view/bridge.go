package view

import "github.com/vango-dev/viewcore/internal/errors"

// ElementBridge declares that a parent slot of element type P can host a
// child element of type C.
type ElementBridge[P, C any] interface {
	// Upcast wraps a child element for the parent slot.
	Upcast(child C) P
	// Downcast recovers the child element from the slot.
	Downcast(parent P) (C, bool)
}

// FuncBridge builds an ElementBridge from two functions.
type FuncBridge[P, C any] struct {
	Up   func(C) P
	Down func(P) (C, bool)
}

func (b FuncBridge[P, C]) Upcast(child C) P            { return b.Up(child) }
func (b FuncBridge[P, C]) Downcast(parent P) (C, bool) { return b.Down(parent) }

// InterfaceBridge hosts a concrete element C in a slot typed as the
// interface P that C implements.
func InterfaceBridge[P, C any]() ElementBridge[P, C] {
	return FuncBridge[P, C]{
		Up: func(c C) P {
			return any(c).(P)
		},
		Down: func(p P) (C, bool) {
			c, ok := any(p).(C)
			return c, ok
		},
	}
}

// UpcastView places a view producing C into a slot of element type P.
type UpcastView[S, A, P, C any] struct {
	child  View[S, A, C]
	bridge ElementBridge[P, C]
}

// Upcast adapts child to a parent slot through bridge.
func Upcast[S, A, P, C any](child View[S, A, C], bridge ElementBridge[P, C]) *UpcastView[S, A, P, C] {
	return &UpcastView[S, A, P, C]{child: child, bridge: bridge}
}

// Shape is the shape of the child view.
func (u *UpcastView[S, A, P, C]) Shape() any {
	return wrapShape(u, u.child)
}

func (u *UpcastView[S, A, P, C]) Build(ctx Context, app *S) (P, any) {
	c, state := u.child.Build(ctx, app)
	return u.bridge.Upcast(c), state
}

// withChild runs fn against the downcast child element and writes the
// result back into the parent slot. A wholesale replacement of the child
// is swapped into the parent handle so no ancestor keeps pointing at the
// old element; any other write is stored in place.
func (u *UpcastView[S, A, P, C]) withChild(el *Mut[P], fn func(*Mut[C])) {
	c, ok := u.bridge.Downcast(el.Get())
	if !ok {
		errors.Panic("VC004", "slot holds %T", el.Get())
	}
	pod := NewPod(c)
	if pod.With(fn) {
		el.Replace(u.bridge.Upcast(pod.Element()))
		return
	}
	el.Set(u.bridge.Upcast(pod.Element()))
}

func (u *UpcastView[S, A, P, C]) Rebuild(prev View[S, A, P], state any, ctx Context, el *Mut[P], app *S) any {
	p := Downcast[*UpcastView[S, A, P, C]](prev)
	u.withChild(el, func(m *Mut[C]) {
		state = u.child.Rebuild(p.child, state, ctx, m, app)
	})
	return state
}

func (u *UpcastView[S, A, P, C]) Teardown(state any, ctx Context, el *Mut[P], app *S) {
	u.withChild(el, func(m *Mut[C]) {
		u.child.Teardown(state, ctx, m, app)
	})
}

func (u *UpcastView[S, A, P, C]) Message(state any, path Path, msg Message, app *S) MessageResult[A] {
	return u.child.Message(state, path, msg, app)
}
