package vdom

// Click is delivered to a Button.
type Click struct{}

// InputEvent is delivered to an Input when its value changes.
type InputEvent struct {
	Value string
}
