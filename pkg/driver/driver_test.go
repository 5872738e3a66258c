package driver

import (
	"context"
	stderrors "errors"
	"io"
	"log/slog"
	"strconv"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/goleak"

	"github.com/vango-dev/viewcore/internal/errors"
	"github.com/vango-dev/viewcore/pkg/vdom"
	"github.com/vango-dev/viewcore/pkg/view"
)

type counter struct {
	n     int
	ticks int
}

type cnode = view.View[counter, int, *vdom.Node]

func counterLogic(c *counter) cnode {
	return vdom.Div[counter, int](nil, view.Tuple2[counter, int, *vdom.Node](
		view.One(cnode(vdom.Text[counter, int](strconv.Itoa(c.n)))),
		view.One(cnode(vdom.Button[counter, int]("+", func(c *counter) int {
			c.n++
			return c.n
		}))),
	))
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newCounter(t *testing.T, opts ...Option) (*Driver[counter, int, *vdom.Node], *vdom.Ctx) {
	t.Helper()
	ctx := vdom.NewCtx()
	opts = append([]Option{WithLogger(quietLogger())}, opts...)
	d := New(&counter{}, counterLogic, view.Context(ctx), opts...)
	if err := d.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	return d, ctx
}

func buttonPath(d *Driver[counter, int, *vdom.Node]) view.Path {
	return d.Root().Child(1).Path
}

func TestDriverMessageRebuilds(t *testing.T) {
	d, ctx := newCounter(t)
	defer d.Close()

	var actions []int
	d.OnAction(func(a int) { actions = append(actions, a) })
	ctx.TakePatches()

	for i := 0; i < 2; i++ {
		if err := d.SendMessage(buttonPath(d), vdom.Click{}); err != nil {
			t.Fatalf("SendMessage: %v", err)
		}
	}
	n, err := d.Drain()
	if err != nil {
		t.Fatalf("Drain: %v", err)
	}
	if n != 2 {
		t.Errorf("delivered %d messages, want 2", n)
	}
	if got := d.Root().Child(0).Text; got != "2" {
		t.Errorf("text = %q, want 2", got)
	}
	if len(actions) != 2 || actions[1] != 2 {
		t.Errorf("actions = %v, want [1 2]", actions)
	}

	// Two messages, one rebuild.
	if ops := vdom.CountOps(ctx.TakePatches()); ops[vdom.PatchSetText] != 1 {
		t.Errorf("patches = %v, want one SetText", ops)
	}
}

func TestDriverStaleMessage(t *testing.T) {
	d, _ := newCounter(t)
	defer d.Close()

	if err := d.SendMessage(view.Path{9, 9}, vdom.Click{}); err != nil {
		t.Fatalf("SendMessage: %v", err)
	}
	if _, err := d.Drain(); err != nil {
		t.Fatalf("Drain: %v", err)
	}
	st := d.Stats()
	if st.Stale != 1 || st.Actions != 0 {
		t.Errorf("stats = %+v, want one stale message", st)
	}
}

func TestDriverRootShapeChange(t *testing.T) {
	logic := func(c *counter) cnode {
		tag := "div"
		if c.ticks > 0 {
			tag = "section"
		}
		return vdom.El[counter, int](tag, nil, view.ListOf(cnode(vdom.Button[counter, int]("+", func(c *counter) int {
			c.n++
			return c.n
		}))))
	}
	d := New(&counter{}, logic, view.Context(vdom.NewCtx()), WithLogger(quietLogger()))
	defer d.Close()
	if err := d.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	old := d.Root().Child(0).Path

	if err := d.Update(func(c *counter) { c.ticks = 1 }); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got := d.Root().Tag; got != "section" {
		t.Fatalf("root tag = %q, want section", got)
	}
	if d.Root().Child(0).Path.Equal(old) {
		t.Fatalf("new root reuses child path %s", old)
	}

	d.SendMessage(old, vdom.Click{})
	if _, err := d.Drain(); err != nil {
		t.Fatalf("Drain: %v", err)
	}
	if st := d.Stats(); st.Stale != 1 || d.App().n != 0 {
		t.Errorf("stats = %+v n = %d, want the old click stale", st, d.App().n)
	}
}

func TestDriverQueueFull(t *testing.T) {
	d, _ := newCounter(t, WithQueueSize(1))
	defer d.Close()

	if err := d.SendMessage(buttonPath(d), vdom.Click{}); err != nil {
		t.Fatalf("first SendMessage: %v", err)
	}
	err := d.SendMessage(buttonPath(d), vdom.Click{})
	var pe *view.ProxyError
	if !stderrors.As(err, &pe) || pe.Reason != view.ProxyQueueFull {
		t.Fatalf("err = %v, want queue full", err)
	}
	if !stderrors.Is(err, errors.New("VC011")) {
		t.Error("queue full error does not carry VC011")
	}
	if _, ok := pe.Message.(vdom.Click); !ok {
		t.Error("rejected message not handed back")
	}
}

func TestDriverClosed(t *testing.T) {
	d, _ := newCounter(t)
	path := buttonPath(d)
	d.Close()
	d.Close()

	err := d.SendMessage(path, vdom.Click{})
	var pe *view.ProxyError
	if !stderrors.As(err, &pe) || pe.Reason != view.ProxyDriverFinished {
		t.Errorf("err = %v, want driver finished", err)
	}
	if err := d.Rebuild(); errors.Code(err) != "VC010" {
		t.Errorf("Rebuild after Close = %v, want VC010", err)
	}
	if len(d.Root().Children) != 0 {
		t.Error("Close did not tear the tree down")
	}
}

func TestDriverNotStarted(t *testing.T) {
	d := New(&counter{}, counterLogic, view.Context(vdom.NewCtx()), WithLogger(quietLogger()))
	if err := d.Rebuild(); errors.Code(err) != "VC013" {
		t.Errorf("Rebuild = %v, want VC013", err)
	}
	if _, err := d.Drain(); errors.Code(err) != "VC013" {
		t.Errorf("Drain = %v, want VC013", err)
	}
	if d.Root() != nil {
		t.Error("Root before Start should be nil")
	}
}

func TestDriverUpdate(t *testing.T) {
	d, _ := newCounter(t)
	defer d.Close()

	if err := d.Update(func(c *counter) { c.n = 41 }); err != nil {
		t.Fatalf("Update: %v", err)
	}
	d.Inspect(func(root *vdom.Node) {
		if got := root.Child(0).Text; got != "41" {
			t.Errorf("text = %q, want 41", got)
		}
	})
}

func TestDriverMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(WithRegistry(reg))
	d, _ := newCounter(t, WithMetrics(m), WithTracer(noop.NewTracerProvider().Tracer("test")))
	defer d.Close()

	d.SendMessage(buttonPath(d), vdom.Click{})
	d.SendMessage(view.Path{7}, vdom.Click{})
	if _, err := d.Drain(); err != nil {
		t.Fatalf("Drain: %v", err)
	}

	if got := testutil.ToFloat64(m.passesTotal.WithLabelValues(PassBuild)); got != 1 {
		t.Errorf("passes_total(build) = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.passesTotal.WithLabelValues(PassRebuild)); got != 1 {
		t.Errorf("passes_total(rebuild) = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.messages.WithLabelValues("action")); got != 1 {
		t.Errorf("messages_total(action) = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.messages.WithLabelValues("stale")); got != 1 {
		t.Errorf("messages_total(stale) = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.queueDepth); got != 0 {
		t.Errorf("queue_depth = %v, want 0", got)
	}
}

func TestDriverOnPass(t *testing.T) {
	d, _ := newCounter(t)
	defer d.Close()

	var passes []string
	d.OnPass(func(pass string) { passes = append(passes, pass) })
	d.SendMessage(buttonPath(d), vdom.Click{})
	d.Drain()

	if len(passes) != 2 || passes[0] != PassMessage || passes[1] != PassRebuild {
		t.Errorf("passes = %v, want [message rebuild]", passes)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	d, _ := newCounter(t)
	defer d.Close()

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- d.Run(ctx) }()

	d.SendMessage(buttonPath(d), vdom.Click{})
	cancel()
	if err := <-errc; !stderrors.Is(err, context.Canceled) {
		t.Errorf("Run = %v, want context.Canceled", err)
	}
}

func tickerLogic(c *counter) cnode {
	return view.Fork[counter, int, *vdom.Node](
		vdom.Text[counter, int](strconv.Itoa(c.ticks)),
		view.Task(func(ctx context.Context, p *view.MessageProxy[int]) {
			for i := 1; i <= 3; i++ {
				if err := p.Send(i); err != nil {
					return
				}
			}
			<-ctx.Done()
		}, func(c *counter, m int) int {
			c.ticks += m
			return m
		}),
	)
}

func TestTaskDeliversThroughRun(t *testing.T) {
	defer goleak.VerifyNone(t)

	d := New(&counter{}, tickerLogic, view.Context(vdom.NewCtx()), WithLogger(quietLogger()))
	acts := make(chan int, 3)
	d.OnAction(func(a int) { acts <- a })
	if err := d.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}

	errc := make(chan error, 1)
	go func() { errc <- d.Run(context.Background()) }()

	for i := 0; i < 3; i++ {
		select {
		case <-acts:
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for task messages")
		}
	}
	if got := d.Root().Text; got != "6" {
		t.Errorf("text = %q, want 6", got)
	}

	d.Close()
	if err := <-errc; err != nil {
		t.Errorf("Run = %v, want nil after Close", err)
	}
}
