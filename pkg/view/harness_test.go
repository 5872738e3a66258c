package view_test

import (
	"testing"

	"github.com/vango-dev/viewcore/internal/errors"
	"github.com/vango-dev/viewcore/pkg/vdom"
	"github.com/vango-dev/viewcore/pkg/view"
)

type testApp struct {
	clicks []string
	sub    subApp
}

type subApp struct {
	hits int
}

type node = view.View[testApp, string, *vdom.Node]

type seq = view.ViewSequence[testApp, string, *vdom.Node]

func txt(s string) node {
	return vdom.Text[testApp, string](s)
}

func div(children seq) node {
	return vdom.Div[testApp, string](nil, children)
}

func button(label string) node {
	return vdom.Button[testApp, string](label, func(app *testApp) string {
		app.clicks = append(app.clicks, label)
		return label
	})
}

// counts tracks lifecycle calls of recorder views.
type counts struct {
	builds, rebuilds, teardowns int
}

// recorder is a text leaf that records its lifecycle.
type recorder struct {
	label string
	c     *counts
}

func (p *recorder) Build(ctx view.Context, app *testApp) (*vdom.Node, any) {
	p.c.builds++
	return txt(p.label).Build(ctx, app)
}

func (p *recorder) Rebuild(prev node, state any, ctx view.Context, el *view.Mut[*vdom.Node], app *testApp) any {
	p.c.rebuilds++
	old := view.Downcast[*recorder](prev)
	return txt(p.label).Rebuild(txt(old.label), state, ctx, el, app)
}

func (p *recorder) Teardown(state any, ctx view.Context, el *view.Mut[*vdom.Node], app *testApp) {
	p.c.teardowns++
}

func (p *recorder) Message(state any, path view.Path, msg view.Message, app *testApp) view.MessageResult[string] {
	return view.Stale[string](msg)
}

// mount holds one live tree.
type mount struct {
	t     *testing.T
	ctx   *vdom.Ctx
	pod   *view.Pod[*vdom.Node]
	view  node
	state any
	app   *testApp
}

func build(t *testing.T, v node) *mount {
	t.Helper()
	m := &mount{t: t, ctx: vdom.NewCtx(), view: v, app: &testApp{}}
	m.ctx.Debug = true
	el, state := v.Build(m.ctx, m.app)
	m.pod = view.NewPod(el)
	m.state = state
	if d := m.ctx.Depth(); d != 0 {
		t.Fatalf("depth after build = %d, want 0", d)
	}
	m.ctx.TakePatches()
	return m
}

func (m *mount) rebuild(v node) []vdom.Patch {
	m.t.Helper()
	m.pod.With(func(h *view.Mut[*vdom.Node]) {
		m.state = v.Rebuild(m.view, m.state, m.ctx, h, m.app)
	})
	m.view = v
	if d := m.ctx.Depth(); d != 0 {
		m.t.Fatalf("depth after rebuild = %d, want 0", d)
	}
	return m.ctx.TakePatches()
}

func (m *mount) teardown() []vdom.Patch {
	m.pod.With(func(h *view.Mut[*vdom.Node]) {
		m.view.Teardown(m.state, m.ctx, h, m.app)
	})
	return m.ctx.TakePatches()
}

func (m *mount) send(path view.Path, msg view.Message) view.MessageResult[string] {
	return m.view.Message(m.state, path, msg, m.app)
}

func (m *mount) root() *vdom.Node {
	return m.pod.Element()
}

// texts returns the text of each child of the root.
func (m *mount) texts() []string {
	var out []string
	for _, c := range m.root().ChildNodes() {
		out = append(out, c.Text)
	}
	return out
}

func expectPanic(t *testing.T, code string, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		ce := errors.Recovered(recover())
		if ce == nil {
			t.Fatalf("expected panic %s, got none", code)
		}
		if ce.Code != code {
			t.Fatalf("panic code = %s (%s), want %s", ce.Code, ce.Detail, code)
		}
	}()
	fn()
}
