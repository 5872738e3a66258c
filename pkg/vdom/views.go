package vdom

import (
	"reflect"

	"github.com/vango-dev/viewcore/internal/errors"
	"github.com/vango-dev/viewcore/pkg/view"
)

func hostCtx(ctx view.Context) *Ctx {
	c, ok := ctx.(*Ctx)
	if !ok {
		errors.Panic("VC008", "vdom views need a *vdom.Ctx, got %T", ctx)
	}
	return c
}

// TextView is a text leaf.
type TextView[S, A any] struct {
	text string
}

// Text creates a text leaf.
func Text[S, A any](s string) *TextView[S, A] {
	return &TextView[S, A]{text: s}
}

func (t *TextView[S, A]) Build(ctx view.Context, app *S) (*Node, any) {
	n := hostCtx(ctx).newNode(KindText, "")
	n.Text = t.text
	return n, nil
}

func (t *TextView[S, A]) Rebuild(prev view.View[S, A, *Node], state any, ctx view.Context, el *view.Mut[*Node], app *S) any {
	p := view.Downcast[*TextView[S, A]](prev)
	if p.text != t.text {
		n := el.Get()
		n.Text = t.text
		hostCtx(ctx).emit(Patch{Op: PatchSetText, Target: n.ID, Value: t.text})
	}
	return state
}

func (t *TextView[S, A]) Teardown(state any, ctx view.Context, el *view.Mut[*Node], app *S) {}

func (t *TextView[S, A]) Message(state any, path view.Path, msg view.Message, app *S) view.MessageResult[A] {
	return view.Stale[A](msg)
}

// ElView is an element with attributes and a child sequence.
type ElView[S, A any] struct {
	tag      string
	attrs    Attrs
	children view.ViewSequence[S, A, *Node]
}

type elShape struct {
	tag      string
	children reflect.Type
}

// El creates an element. children may be nil.
func El[S, A any](tag string, attrs Attrs, children view.ViewSequence[S, A, *Node]) *ElView[S, A] {
	return &ElView[S, A]{tag: tag, attrs: attrs, children: children}
}

// Div creates a div element.
func Div[S, A any](attrs Attrs, children view.ViewSequence[S, A, *Node]) *ElView[S, A] {
	return El("div", attrs, children)
}

// Ul creates a ul element.
func Ul[S, A any](attrs Attrs, children view.ViewSequence[S, A, *Node]) *ElView[S, A] {
	return El("ul", attrs, children)
}

// Li creates an li element.
func Li[S, A any](attrs Attrs, children view.ViewSequence[S, A, *Node]) *ElView[S, A] {
	return El("li", attrs, children)
}

// Shape makes elements with different tags or child sequence types
// distinct nodes.
func (e *ElView[S, A]) Shape() any {
	return elShape{tag: e.tag, children: reflect.TypeOf(e.children)}
}

func (e *ElView[S, A]) Build(ctx view.Context, app *S) (*Node, any) {
	n := hostCtx(ctx).newNode(KindElement, e.tag)
	n.Attrs = copyAttrs(e.attrs)
	if e.children == nil {
		return n, nil
	}
	var out view.AppendVec[*Node]
	state := e.children.SeqBuild(ctx, &out, app)
	for _, c := range out.Drain() {
		n.Children = append(n.Children, view.NewPod(c))
	}
	return n, state
}

func (e *ElView[S, A]) Rebuild(prev view.View[S, A, *Node], state any, ctx view.Context, el *view.Mut[*Node], app *S) any {
	p := view.Downcast[*ElView[S, A]](prev)
	if p.Shape() != e.Shape() {
		// Parents check shapes before rebuilding, so this is only reached
		// from a root that skipped the check.
		p.Teardown(state, ctx, el, app)
		n, next := e.Build(ctx, app)
		el.Replace(n)
		return next
	}

	c := hostCtx(ctx)
	n := el.Get()
	diffAttrs(c, n, p.attrs, e.attrs)
	if e.children == nil {
		return state
	}
	return e.children.SeqRebuild(p.children, state, ctx, NewSplice(c, n), app)
}

func (e *ElView[S, A]) Teardown(state any, ctx view.Context, el *view.Mut[*Node], app *S) {
	if e.children == nil {
		return
	}
	e.children.SeqTeardown(state, ctx, NewSplice(hostCtx(ctx), el.Get()), app)
}

func (e *ElView[S, A]) Message(state any, path view.Path, msg view.Message, app *S) view.MessageResult[A] {
	if len(path) == 0 || e.children == nil {
		return view.Stale[A](msg)
	}
	return e.children.SeqMessage(state, path, msg, app)
}

// ButtonView is a button that turns Click messages into actions.
type ButtonView[S, A any] struct {
	label   string
	onClick func(app *S) A
}

// Button creates a button labelled label.
func Button[S, A any](label string, onClick func(app *S) A) *ButtonView[S, A] {
	return &ButtonView[S, A]{label: label, onClick: onClick}
}

func (b *ButtonView[S, A]) Build(ctx view.Context, app *S) (*Node, any) {
	n := hostCtx(ctx).newNode(KindElement, "button")
	n.Text = b.label
	return n, nil
}

func (b *ButtonView[S, A]) Rebuild(prev view.View[S, A, *Node], state any, ctx view.Context, el *view.Mut[*Node], app *S) any {
	p := view.Downcast[*ButtonView[S, A]](prev)
	if p.label != b.label {
		n := el.Get()
		n.Text = b.label
		hostCtx(ctx).emit(Patch{Op: PatchSetText, Target: n.ID, Value: b.label})
	}
	return state
}

func (b *ButtonView[S, A]) Teardown(state any, ctx view.Context, el *view.Mut[*Node], app *S) {}

func (b *ButtonView[S, A]) Message(state any, path view.Path, msg view.Message, app *S) view.MessageResult[A] {
	if _, ok := msg.(Click); !ok || len(path) != 0 {
		return view.Stale[A](msg)
	}
	return view.Action(b.onClick(app))
}

// InputView is a text input that turns InputEvent messages into actions.
type InputView[S, A any] struct {
	value   string
	onInput func(app *S, value string) A
}

// Input creates a text input showing value.
func Input[S, A any](value string, onInput func(app *S, value string) A) *InputView[S, A] {
	return &InputView[S, A]{value: value, onInput: onInput}
}

func (in *InputView[S, A]) Build(ctx view.Context, app *S) (*Node, any) {
	n := hostCtx(ctx).newNode(KindElement, "input")
	n.Attrs = map[string]string{"value": in.value}
	return n, nil
}

func (in *InputView[S, A]) Rebuild(prev view.View[S, A, *Node], state any, ctx view.Context, el *view.Mut[*Node], app *S) any {
	p := view.Downcast[*InputView[S, A]](prev)
	if p.value != in.value {
		n := el.Get()
		n.Attrs["value"] = in.value
		hostCtx(ctx).emit(Patch{Op: PatchSetAttr, Target: n.ID, Key: "value", Value: in.value})
	}
	return state
}

func (in *InputView[S, A]) Teardown(state any, ctx view.Context, el *view.Mut[*Node], app *S) {}

func (in *InputView[S, A]) Message(state any, path view.Path, msg view.Message, app *S) view.MessageResult[A] {
	ev, ok := msg.(InputEvent)
	if !ok || len(path) != 0 {
		return view.Stale[A](msg)
	}
	return view.Action(in.onInput(app, ev.Value))
}
