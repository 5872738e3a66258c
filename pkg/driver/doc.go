// Package driver runs a view tree against application state.
//
// A Driver owns the root element, the root view state and a FIFO queue of
// messages. Each pass is serialised by the driver: Start builds the tree,
// Rebuild re-runs the application's logic function and reconciles the new
// description against the previous one, and Drain delivers queued messages
// by path, scheduling one rebuild when any of them produced an action or
// asked for one.
//
// Messages may be queued from any goroutine through SendMessage, which makes
// a Driver the view.Proxy handed to views built under an async context.
//
//	d := driver.New(&app, logic, vdom.NewCtx(),
//	    driver.WithLogger(logger),
//	    driver.WithMetrics(driver.NewMetrics(driver.WithRegistry(reg))),
//	)
//	d.Start()
//	go d.Run(ctx)
//
// A logic error inside a pass panics with a *errors.CoreError and aborts
// the pass; the driver does not try to recover the tree.
package driver
