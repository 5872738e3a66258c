package view

import (
	"reflect"

	"github.com/vango-dev/viewcore/internal/errors"
)

// View is an immutable description of one node of the UI.
//
// S is the application state, A the action type bubbled out of Message and
// E the host element type the view produces.
type View[S, A, E any] interface {
	// Build creates the element and view state the first time the node's
	// identity appears. It cannot fail; a panic here is a caller bug.
	Build(ctx Context, app *S) (E, any)

	// Rebuild updates el in place so that it reflects the receiver instead of
	// prev. Callers only invoke it once they have established that prev and
	// the receiver describe the same node; prev always has the receiver's
	// concrete type. The returned state replaces state.
	Rebuild(prev View[S, A, E], state any, ctx Context, el *Mut[E], app *S) any

	// Teardown releases element side resources and tears down children.
	Teardown(state any, ctx Context, el *Mut[E], app *S)

	// Message delivers msg. An empty path targets this node; otherwise
	// path[0] names the child the message continues to.
	Message(state any, path Path, msg Message, app *S) MessageResult[A]
}

// Shaped is implemented by views whose erased shape differs from their Go
// type, such as wrappers that carry a variant.
type Shaped interface {
	Shape() any
}

// ShapeOf returns the tag used to decide whether two views at the same
// position describe the same node.
func ShapeOf(v any) any {
	if s, ok := v.(Shaped); ok {
		return s.Shape()
	}
	return reflect.TypeOf(v)
}

type wrappedShape struct {
	outer reflect.Type
	inner any
}

// wrapShape tags the shape of inner with the wrapper's own type, so that a
// wrapper never matches the bare view it wraps.
func wrapShape(outer, inner any) any {
	return wrappedShape{outer: reflect.TypeOf(outer), inner: ShapeOf(inner)}
}

// Downcast asserts that prev has the receiver's concrete type. A mismatch
// means the caller skipped the identity check and aborts the pass.
func Downcast[T any](prev any) T {
	t, ok := prev.(T)
	if !ok {
		errors.Panic("VC003", "expected %s, got %T", reflect.TypeOf((*T)(nil)).Elem(), prev)
	}
	return t
}

// StateAs asserts the concrete type of a view state.
func StateAs[T any](state any) T {
	t, ok := state.(T)
	if !ok {
		errors.Panic("VC007", "expected %s, got %T", reflect.TypeOf((*T)(nil)).Elem(), state)
	}
	return t
}

// NoElement is the element type of views that contribute nothing to the
// element tree, such as RunOnce and Task.
type NoElement struct{}
