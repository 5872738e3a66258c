// Package inspect serves a live view tree over HTTP for debugging.
//
// Routes:
//
//	GET  /tree              JSON snapshot of the current tree
//	GET  /stats             driver counters
//	POST /event             queue an event: {"path": "/0/1", "kind": "click"}
//	GET  /ws                binary protocol: event frames in, patch frames out
//	GET  /metrics           Prometheus metrics
//	GET  /snapshots         list stored snapshots
//	POST /snapshots         store the current tree, returns its name
//	GET  /snapshots/{name}  fetch a stored snapshot
//
// A Host adapts the tree being inspected. DriverHost wires a
// driver.Driver over a vdom.Ctx and fans the patches of every pass out to
// websocket subscribers.
//
// Snapshots go to a SnapshotStore: FileStore writes a directory, S3Store
// writes a bucket.
package inspect
