package vdom

import "github.com/vango-dev/viewcore/pkg/view"

// Ctx is the view.Context of the vdom host.
type Ctx struct {
	*view.Tracker

	ids     *IDGenerator
	patches []Patch
	proxy   view.Proxy
}

// NewCtx creates a context with an empty path.
func NewCtx() *Ctx {
	return &Ctx{
		Tracker: view.NewTracker(),
		ids:     NewIDGenerator(),
	}
}

// SetProxy installs the proxy handed to views that send messages from other
// goroutines. Drivers install themselves.
func (c *Ctx) SetProxy(p view.Proxy) {
	c.proxy = p
}

// Proxy implements view.AsyncContext.
func (c *Ctx) Proxy() view.Proxy {
	if c.proxy == nil {
		return detachedProxy{}
	}
	return c.proxy
}

// Patches returns the patches recorded since the last TakePatches.
func (c *Ctx) Patches() []Patch {
	return c.patches
}

// TakePatches returns the recorded patches and starts a new list.
func (c *Ctx) TakePatches() []Patch {
	out := c.patches
	c.patches = nil
	return out
}

func (c *Ctx) emit(p Patch) {
	c.patches = append(c.patches, p)
}

func (c *Ctx) newNode(kind Kind, tag string) *Node {
	return &Node{
		ID:   c.ids.Next(),
		Kind: kind,
		Tag:  tag,
		Path: c.Path(),
	}
}

// detachedProxy answers for a context no driver is attached to.
type detachedProxy struct{}

func (detachedProxy) SendMessage(path view.Path, msg view.Message) error {
	return view.NewProxyError(view.ProxyDriverFinished, path, msg)
}
