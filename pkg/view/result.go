package view

// ResultKind discriminates a MessageResult.
type ResultKind uint8

const (
	ResultNop            ResultKind = iota // Consumed, nothing to report
	ResultAction                           // Consumed, Action bubbles upward
	ResultRequestRebuild                   // Consumed, a rebuild pass is needed
	ResultStale                            // Not consumed, the addressed node is gone
)

// String returns the string representation of the ResultKind.
func (k ResultKind) String() string {
	switch k {
	case ResultNop:
		return "nop"
	case ResultAction:
		return "action"
	case ResultRequestRebuild:
		return "request_rebuild"
	case ResultStale:
		return "stale"
	default:
		return "unknown"
	}
}

// MessageResult is the outcome of delivering a message.
type MessageResult[A any] struct {
	Kind ResultKind

	// Action is set when Kind is ResultAction.
	Action A

	// Message carries the unconsumed message when Kind is ResultStale.
	Message Message
}

// Action returns a result carrying a handled value upward.
func Action[A any](a A) MessageResult[A] {
	return MessageResult[A]{Kind: ResultAction, Action: a}
}

// RequestRebuild returns a result asking the host for a rebuild pass.
func RequestRebuild[A any]() MessageResult[A] {
	return MessageResult[A]{Kind: ResultRequestRebuild}
}

// Stale returns msg unconsumed because its target no longer exists.
func Stale[A any](msg Message) MessageResult[A] {
	return MessageResult[A]{Kind: ResultStale, Message: msg}
}

// Nop returns a consumed result with no upstream effect.
func Nop[A any]() MessageResult[A] {
	return MessageResult[A]{Kind: ResultNop}
}

// IsStale reports whether the message went unconsumed.
func (r MessageResult[A]) IsStale() bool { return r.Kind == ResultStale }

// IsAction reports whether the result carries an action.
func (r MessageResult[A]) IsAction() bool { return r.Kind == ResultAction }

// MapResult converts a result between action types. Non-action kinds are
// carried over unchanged; actions go through f.
func MapResult[A, B any](r MessageResult[A], f func(A) MessageResult[B]) MessageResult[B] {
	switch r.Kind {
	case ResultAction:
		return f(r.Action)
	case ResultRequestRebuild:
		return RequestRebuild[B]()
	case ResultStale:
		return Stale[B](r.Message)
	default:
		return Nop[B]()
	}
}
