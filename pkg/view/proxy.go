package view

import (
	"fmt"

	"github.com/vango-dev/viewcore/internal/errors"
)

// Proxy queues a message for the view at path. Drivers implement it; it may
// be called from any goroutine and outlive the view it was created for.
type Proxy interface {
	SendMessage(path Path, msg Message) error
}

// ProxyReason classifies a ProxyError.
type ProxyReason uint8

const (
	ProxyDriverFinished ProxyReason = iota + 1
	ProxyViewExpired
	ProxyQueueFull
	ProxyOther
)

// String returns the string representation of the ProxyReason.
func (r ProxyReason) String() string {
	switch r {
	case ProxyDriverFinished:
		return "driver_finished"
	case ProxyViewExpired:
		return "view_expired"
	case ProxyQueueFull:
		return "queue_full"
	default:
		return "other"
	}
}

// ProxyError is returned when a message could not be queued. The message is
// handed back to the caller.
type ProxyError struct {
	Reason  ProxyReason
	Message Message
	Path    Path
	Err     error
}

// NewProxyError builds a ProxyError with the registered cause for reason.
func NewProxyError(reason ProxyReason, path Path, msg Message) *ProxyError {
	var cause error
	switch reason {
	case ProxyDriverFinished:
		cause = errors.New("VC010")
	case ProxyQueueFull:
		cause = errors.New("VC011")
	case ProxyViewExpired:
		cause = errors.New("VC012")
	}
	return &ProxyError{Reason: reason, Message: msg, Path: path, Err: cause}
}

func (e *ProxyError) Error() string {
	switch e.Reason {
	case ProxyDriverFinished:
		return "the driver finished"
	case ProxyViewExpired:
		return fmt.Sprintf("the view at %s is no longer present", e.Path)
	case ProxyQueueFull:
		return fmt.Sprintf("message queue full sending to %s", e.Path)
	default:
		if e.Err != nil {
			return e.Err.Error()
		}
		return "proxy error"
	}
}

func (e *ProxyError) Unwrap() error {
	return e.Err
}

// MessageProxy sends messages of type M to the view that created it.
type MessageProxy[M any] struct {
	proxy Proxy
	path  Path
}

// NewMessageProxy binds proxy to path.
func NewMessageProxy[M any](proxy Proxy, path Path) *MessageProxy[M] {
	return &MessageProxy[M]{proxy: proxy, path: path.Clone()}
}

// Send queues msg for the bound view.
func (p *MessageProxy[M]) Send(msg M) error {
	return p.proxy.SendMessage(p.path, msg)
}

// Path returns the bound path.
func (p *MessageProxy[M]) Path() Path {
	return p.path.Clone()
}
