// Package view is the reconciliation core of viewcore.
//
// A UI is described by immutable View values, re-created every time the
// application state changes. The core compares the new description with the
// previous one and applies the smallest set of mutations to a persistent
// tree of host elements. Asynchronous messages are routed back to the node
// that should handle them by the Path that node was built under.
//
// # View Contract
//
// Every node implements View:
//
//	Build(ctx, app) (element, state)          // identity appears
//	Rebuild(prev, state, ctx, el, app) state  // identity persists
//	Teardown(state, ctx, el, app)             // identity removed
//	Message(state, path, msg, app) result     // async delivery
//
// View values are never mutated. Persistent data lives in the view state
// (opaque to parents) and in the element.
//
// # Addressing
//
// Parents mint a ViewID for each child and enter it with WithID while
// building or rebuilding that child. The Path seen by a node is the stack of
// ids from the root. Dynamic containers never reuse an id, so a message
// captured for a node that has since been torn down is answered with Stale.
//
// # Mutation Handles
//
// Elements live in a Pod. A Pod issues one exclusive Mut handle at a time,
// bumping its generation; a handle that outlives its call, or whose
// generation no longer matches, aborts the pass. Erasure boundaries compare
// generations before and after a nested call to detect a child that replaced
// its element instead of mutating it.
//
// # Sequences
//
// Containers host a ViewSequence and hand it an ElementSplice. List is the
// dynamic diffing engine (keyed and positional); Tuple2..Tuple4 are fixed
// arity; Optional inserts or removes its element.
package view
