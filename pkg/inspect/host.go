package inspect

import (
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/vango-dev/viewcore/pkg/driver"
	"github.com/vango-dev/viewcore/pkg/protocol"
	"github.com/vango-dev/viewcore/pkg/vdom"
	"github.com/vango-dev/viewcore/pkg/view"
)

// Host is the tree an inspector serves.
type Host interface {
	// Tree returns a copy of the current tree.
	Tree() vdom.SnapshotNode

	// Send queues msg for the view at path.
	Send(path view.Path, msg view.Message) error

	// Subscribe returns a channel of encoded patch frames and a function
	// that ends the subscription and closes the channel.
	Subscribe() (<-chan []byte, func())

	// Stats returns driver counters.
	Stats() driver.Stats
}

// subscriberBuffer is the number of frames a slow subscriber may fall
// behind before frames are dropped for it.
const subscriberBuffer = 64

// hub fans encoded frames out to subscribers without blocking the
// publisher.
type hub struct {
	mu     sync.Mutex
	subs   map[chan []byte]struct{}
	logger *slog.Logger
}

func newHub(logger *slog.Logger) *hub {
	return &hub{subs: make(map[chan []byte]struct{}), logger: logger}
}

func (h *hub) subscribe() (<-chan []byte, func()) {
	ch := make(chan []byte, subscriberBuffer)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, ch)
			close(ch)
			h.mu.Unlock()
		})
	}
}

func (h *hub) publish(frame []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs {
		select {
		case ch <- frame:
		default:
			h.logger.Warn("subscriber behind, dropping patch frame")
		}
	}
}

func (h *hub) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// DriverHost serves a driver whose host context is a *vdom.Ctx.
type DriverHost[S, A any] struct {
	drv    *driver.Driver[S, A, *vdom.Node]
	ctx    *vdom.Ctx
	hub    *hub
	seq    atomic.Uint64
	logger *slog.Logger
}

// NewDriverHost wraps drv. It takes over drv's OnPass hook: the patches a
// pass records are drained from ctx and published as one frame.
func NewDriverHost[S, A any](drv *driver.Driver[S, A, *vdom.Node], ctx *vdom.Ctx, logger *slog.Logger) *DriverHost[S, A] {
	if logger == nil {
		logger = slog.Default()
	}
	h := &DriverHost[S, A]{
		drv:    drv,
		ctx:    ctx,
		hub:    newHub(logger),
		logger: logger,
	}
	drv.OnPass(h.flush)
	return h
}

func (h *DriverHost[S, A]) flush(pass string) {
	patches := h.ctx.TakePatches()
	if len(patches) == 0 {
		return
	}
	pf := protocol.NewPatchesFrame(h.seq.Add(1), patches)
	data, err := protocol.PatchFrame(pf).Encode()
	if err != nil {
		h.logger.Warn("patch frame not sent", "pass", pass, "patches", len(patches), "error", err)
		return
	}
	h.hub.publish(data)
}

// Tree returns a copy of the current tree. Before Start it is empty.
func (h *DriverHost[S, A]) Tree() vdom.SnapshotNode {
	var snap vdom.SnapshotNode
	h.drv.Inspect(func(root *vdom.Node) {
		if root != nil {
			snap = vdom.Snapshot(root)
		}
	})
	return snap
}

// Send queues msg on the driver.
func (h *DriverHost[S, A]) Send(path view.Path, msg view.Message) error {
	return h.drv.SendMessage(path, msg)
}

// Subscribe registers a patch frame subscriber.
func (h *DriverHost[S, A]) Subscribe() (<-chan []byte, func()) {
	return h.hub.subscribe()
}

// Stats returns the driver's counters.
func (h *DriverHost[S, A]) Stats() driver.Stats {
	return h.drv.Stats()
}

// Subscribers returns the number of live subscriptions.
func (h *DriverHost[S, A]) Subscribers() int {
	return h.hub.count()
}
