package driver

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/viewcore/internal/errors"
	"github.com/vango-dev/viewcore/pkg/view"
)

// Pass names used in logs, spans and metrics.
const (
	PassBuild    = "build"
	PassRebuild  = "rebuild"
	PassMessage  = "message"
	PassTeardown = "teardown"
)

type envelope struct {
	path view.Path
	msg  view.Message
}

// Driver owns one view tree.
type Driver[S, A, E any] struct {
	app   *S
	logic func(app *S) view.View[S, A, E]
	ctx   view.Context

	// Tree, guarded by mu
	mu      sync.Mutex
	root    *view.Pod[E]
	view    view.View[S, A, E]
	state   any
	started bool
	done    chan struct{}

	queue  chan envelope
	closed atomic.Bool

	onAction func(A)
	onPass   func(pass string)

	logger  *slog.Logger
	metrics *Metrics
	tracer  trace.Tracer

	// Counters
	passCount    atomic.Uint64
	messageCount atomic.Uint64
	staleCount   atomic.Uint64
	actionCount  atomic.Uint64
}

// New creates a driver for app. logic describes the UI for the current state
// and is called on Start and on every rebuild. If ctx can hold a proxy
// (SetProxy(view.Proxy)), the driver installs itself.
func New[S, A, E any](app *S, logic func(app *S) view.View[S, A, E], ctx view.Context, opts ...Option) *Driver[S, A, E] {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.queueSize <= 0 {
		o.queueSize = DefaultQueueSize
	}

	d := &Driver[S, A, E]{
		app:     app,
		logic:   logic,
		ctx:     ctx,
		done:    make(chan struct{}),
		queue:   make(chan envelope, o.queueSize),
		logger:  o.logger,
		metrics: o.metrics,
		tracer:  o.tracer,
	}
	if p, ok := ctx.(interface{ SetProxy(view.Proxy) }); ok {
		p.SetProxy(d)
	}
	return d
}

// OnAction registers fn to receive every action that bubbles out of the
// root. It runs inside the message pass.
func (d *Driver[S, A, E]) OnAction(fn func(A)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.onAction = fn
}

// OnPass registers fn to run at the end of every pass, while the tree is
// still locked. Hosts use it to flush what the pass recorded.
func (d *Driver[S, A, E]) OnPass(fn func(pass string)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.onPass = fn
}

// Context returns the host context passed to New.
func (d *Driver[S, A, E]) Context() view.Context {
	return d.ctx
}

// App returns the application state.
func (d *Driver[S, A, E]) App() *S {
	return d.app
}

// Root returns the root element. It is the zero E before Start.
func (d *Driver[S, A, E]) Root() E {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.root == nil {
		var zero E
		return zero
	}
	return d.root.Element()
}

// Inspect runs fn with the root element while no pass can run.
func (d *Driver[S, A, E]) Inspect(fn func(root E)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	var root E
	if d.root != nil {
		root = d.root.Element()
	}
	fn(root)
}

// Update runs fn against the app state while no pass can run, then
// rebuilds.
func (d *Driver[S, A, E]) Update(fn func(app *S)) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	fn(d.app)
	return d.rebuildLocked()
}

// Start builds the tree.
func (d *Driver[S, A, E]) Start() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed.Load() {
		return errors.New("VC010")
	}
	if d.started {
		return nil
	}

	end := d.beginPass(PassBuild)
	d.resetPath()
	v := d.describe()
	el, state := v.Build(d.ctx, d.app)
	d.root = view.NewPod(el)
	d.view = v
	d.state = state
	d.started = true
	end(nil)
	return nil
}

// describe runs logic. The root is erased so that a root of another shape
// is built under a new id instead of inheriting the old root's paths.
func (d *Driver[S, A, E]) describe() view.View[S, A, E] {
	return view.Erase(d.logic(d.app))
}

// Rebuild reconciles the tree against the current app state.
func (d *Driver[S, A, E]) Rebuild() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.rebuildLocked()
}

func (d *Driver[S, A, E]) rebuildLocked() error {
	if !d.started {
		return errors.New("VC013")
	}
	if d.closed.Load() {
		return errors.New("VC010")
	}

	end := d.beginPass(PassRebuild)
	d.resetPath()
	next := d.describe()
	d.root.With(func(m *view.Mut[E]) {
		d.state = next.Rebuild(d.view, d.state, d.ctx, m, d.app)
	})
	d.view = next
	end(nil)
	return nil
}

// SendMessage queues msg for the view at path. It never blocks; a full
// queue or a closed driver hands the message back in a *view.ProxyError.
func (d *Driver[S, A, E]) SendMessage(path view.Path, msg view.Message) error {
	if d.closed.Load() {
		return view.NewProxyError(view.ProxyDriverFinished, path, msg)
	}
	select {
	case d.queue <- envelope{path: path.Clone(), msg: msg}:
		d.metrics.setQueueDepth(len(d.queue))
		return nil
	default:
		d.logger.Warn("message queue full, dropping message", "path", path.String())
		return view.NewProxyError(view.ProxyQueueFull, path, msg)
	}
}

// Pending returns the number of queued messages.
func (d *Driver[S, A, E]) Pending() int {
	return len(d.queue)
}

// Drain delivers every queued message in FIFO order and rebuilds once if
// any of them asked for it. It returns the number of messages delivered.
func (d *Driver[S, A, E]) Drain() (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.drainLocked(nil)
}

func (d *Driver[S, A, E]) drainLocked(first *envelope) (int, error) {
	if !d.started {
		return 0, errors.New("VC013")
	}
	if d.closed.Load() {
		return 0, errors.New("VC010")
	}

	end := d.beginPass(PassMessage)
	n := 0
	rebuild := false
	if first != nil {
		rebuild = d.deliver(*first) || rebuild
		n++
	}
	for more := true; more; {
		select {
		case env := <-d.queue:
			rebuild = d.deliver(env) || rebuild
			n++
		default:
			more = false
		}
	}
	d.metrics.setQueueDepth(len(d.queue))
	end([]attribute.KeyValue{attribute.Int("viewcore.messages", n)})

	if rebuild {
		return n, d.rebuildLocked()
	}
	return n, nil
}

// deliver routes one message and reports whether a rebuild is needed.
func (d *Driver[S, A, E]) deliver(env envelope) bool {
	d.messageCount.Add(1)
	r := d.view.Message(d.state, env.path, env.msg, d.app)
	d.metrics.recordMessage(r.Kind.String())

	switch r.Kind {
	case view.ResultAction:
		d.actionCount.Add(1)
		if d.onAction != nil {
			d.onAction(r.Action)
		}
		return true
	case view.ResultRequestRebuild:
		return true
	case view.ResultStale:
		d.staleCount.Add(1)
		d.logger.Debug("stale message dropped", "path", env.path.String(), "result", r.Kind.String())
	}
	return false
}

// Run delivers messages as they arrive until ctx is done or the driver is
// closed.
func (d *Driver[S, A, E]) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-d.done:
			return nil
		case env := <-d.queue:
			if err := d.runOne(env); err != nil {
				if errors.Code(err) == "VC010" {
					return nil
				}
				return err
			}
		}
	}
}

func (d *Driver[S, A, E]) runOne(env envelope) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, err := d.drainLocked(&env)
	return err
}

// Close tears the tree down and rejects further messages. Close is
// idempotent.
func (d *Driver[S, A, E]) Close() {
	if d.closed.Swap(true) {
		return
	}
	close(d.done)

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.started {
		end := d.beginPass(PassTeardown)
		d.resetPath()
		d.root.With(func(m *view.Mut[E]) {
			d.view.Teardown(d.state, d.ctx, m, d.app)
		})
		end(nil)
	}
	d.logger.Info("driver closed",
		"passes", d.passCount.Load(),
		"messages", d.messageCount.Load(),
		"stale", d.staleCount.Load())
}

// Done returns a channel that's closed when the driver is closed.
func (d *Driver[S, A, E]) Done() <-chan struct{} {
	return d.done
}

// beginPass opens a span for one pass and returns the function that ends it.
func (d *Driver[S, A, E]) beginPass(pass string) func(attrs []attribute.KeyValue) {
	start := time.Now()
	_, span := d.tracer.Start(context.Background(), "viewcore."+pass,
		trace.WithAttributes(attribute.String("viewcore.pass", pass)),
	)
	return func(attrs []attribute.KeyValue) {
		elapsed := time.Since(start)
		d.passCount.Add(1)
		d.metrics.observePass(pass, elapsed)
		if len(attrs) > 0 {
			span.SetAttributes(attrs...)
		}
		span.SetStatus(codes.Ok, "")
		span.End()
		d.logger.Debug("pass complete", "pass", pass, "duration", elapsed)
		if d.onPass != nil {
			d.onPass(pass)
		}
	}
}

// resetPath clears a path left behind by an aborted pass.
func (d *Driver[S, A, E]) resetPath() {
	if d.ctx.Depth() == 0 {
		return
	}
	if r, ok := d.ctx.(interface{ Reset() }); ok {
		d.logger.Warn("path not empty at pass start", "path", d.ctx.Path().String())
		r.Reset()
	}
}

// Stats returns driver statistics.
func (d *Driver[S, A, E]) Stats() Stats {
	return Stats{
		Passes:   d.passCount.Load(),
		Messages: d.messageCount.Load(),
		Stale:    d.staleCount.Load(),
		Actions:  d.actionCount.Load(),
		Pending:  len(d.queue),
	}
}

// Stats contains driver statistics.
type Stats struct {
	Passes   uint64 `json:"passes"`
	Messages uint64 `json:"messages"`
	Stale    uint64 `json:"stale"`
	Actions  uint64 `json:"actions"`
	Pending  int    `json:"pending"`
}
