package view

// Message is an asynchronous event addressed to a node.
type Message = any

// Context is threaded through every Build, Rebuild and Teardown call. The
// core only requires path tracking; hosts add whatever else their views need
// and views type-assert for it.
type Context interface {
	PathTracker
}

// AsyncContext is a Context that can hand out a Proxy for sending messages
// back into the tree from other goroutines.
type AsyncContext interface {
	Context
	Proxy() Proxy
}
