// Package vdom is the reference element host for the view core.
//
// Elements are plain Node values kept in view.Pod cells, so every write made
// by a view goes through a generation-checked handle. Each write is also
// recorded as a Patch on the Ctx, which makes the host useful for tests,
// demos and the inspector: the patch list of a pass is exactly the set of
// mutations the core decided to apply.
//
// # Views
//
//	Text(s)                        // text leaf
//	El(tag, attrs, children)       // element with a child sequence
//	Button(label, onClick)         // element answering Click messages
//	Input(value, onInput)          // element answering InputEvent messages
//
// # Inspection
//
// Render prints a tree as markup, Snapshot converts it to a JSON-friendly
// value, and CollectPaths/FindByPath relate nodes to the paths they were
// built under.
package vdom
