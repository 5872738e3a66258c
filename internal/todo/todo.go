// Package todo is the sample application driven by the viewcore CLI.
package todo

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/vango-dev/viewcore/pkg/vdom"
	"github.com/vango-dev/viewcore/pkg/view"
)

// Item is one entry of the list.
type Item struct {
	ID    int
	Title string
	Done  bool
}

// App is the application state.
type App struct {
	Draft  string
	Items  []Item
	Uptime int // seconds, advanced by the clock task
	nextID int
}

// Node is the view type of every part of the app. Actions are short log
// lines describing what changed.
type Node = view.View[App, string, *vdom.Node]

// Add appends a new item. Blank titles are ignored.
func (a *App) Add(title string) bool {
	if title == "" {
		return false
	}
	a.nextID++
	a.Items = append(a.Items, Item{ID: a.nextID, Title: title})
	return true
}

// Toggle flips the done flag of an item.
func (a *App) Toggle(id int) {
	for i := range a.Items {
		if a.Items[i].ID == id {
			a.Items[i].Done = !a.Items[i].Done
			return
		}
	}
}

// Remove deletes an item.
func (a *App) Remove(id int) {
	for i := range a.Items {
		if a.Items[i].ID == id {
			a.Items = append(a.Items[:i], a.Items[i+1:]...)
			return
		}
	}
}

// Counts is the footer's input.
type Counts struct {
	Total int
	Done  int
}

// Counts tallies the items.
func (a *App) Counts() Counts {
	c := Counts{Total: len(a.Items)}
	for _, it := range a.Items {
		if it.Done {
			c.Done++
		}
	}
	return c
}

// Logic describes the UI for app.
func Logic(app *App) Node {
	return vdom.Div[App, string](vdom.Class("todo"), view.Tuple4[App, string, *vdom.Node](
		view.One(header(app)),
		view.One(Node(vdom.Ul[App, string](nil, list(app.Items)))),
		view.When[App, string, *vdom.Node](len(app.Items) == 0, vdom.Text[App, string]("Nothing to do")),
		view.One(Node(view.Memoize(app.Counts(), footer))),
	))
}

// WithClock runs Logic with a background task that advances Uptime every
// interval.
func WithClock(interval time.Duration) func(app *App) Node {
	return func(app *App) Node {
		return view.Fork[App, string, *vdom.Node](Logic(app), view.Task(
			func(ctx context.Context, proxy *view.MessageProxy[time.Time]) {
				t := time.NewTicker(interval)
				defer t.Stop()
				for {
					select {
					case <-ctx.Done():
						return
					case now := <-t.C:
						if proxy.Send(now) != nil {
							return
						}
					}
				}
			},
			func(app *App, _ time.Time) string {
				app.Uptime += int(interval / time.Second)
				return ""
			},
		))
	}
}

func header(app *App) Node {
	return vdom.El[App, string]("form", nil, view.Tuple3[App, string, *vdom.Node](
		view.One(Node(vdom.Input[App, string](app.Draft, func(app *App, v string) string {
			app.Draft = v
			return ""
		}))),
		view.One(Node(vdom.Button[App, string]("Add", func(app *App) string {
			title := app.Draft
			if !app.Add(title) {
				return ""
			}
			app.Draft = ""
			return "added " + strconv.Quote(title)
		}))),
		view.One(Node(vdom.Text[App, string](fmt.Sprintf("up %ds", app.Uptime)))),
	))
}

func list(items []Item) *view.ListSeq[App, string, *vdom.Node] {
	entries := make([]view.Item[App, string, *vdom.Node], len(items))
	for i, it := range items {
		entries[i] = view.Keyed(strconv.Itoa(it.ID), row(it))
	}
	return view.List(entries...)
}

func row(it Item) Node {
	attrs := vdom.Data("id", strconv.Itoa(it.ID))
	label := "done"
	if it.Done {
		attrs = attrs.With("class", "done")
		label = "undo"
	}
	id := it.ID
	return vdom.Li[App, string](attrs, view.Tuple3[App, string, *vdom.Node](
		view.One(Node(vdom.Text[App, string](it.Title))),
		view.One(Node(vdom.Button[App, string](label, func(app *App) string {
			app.Toggle(id)
			return fmt.Sprintf("toggled #%d", id)
		}))),
		view.One(Node(vdom.Button[App, string]("x", func(app *App) string {
			app.Remove(id)
			return fmt.Sprintf("removed #%d", id)
		}))),
	))
}

func footer(c Counts) Node {
	return vdom.Text[App, string](fmt.Sprintf("%d of %d done", c.Done, c.Total))
}

// FindButton returns the first button labelled label under root whose
// closest li ancestor, if any, has data-id id. An id of 0 matches buttons
// outside the list.
func FindButton(root *vdom.Node, id int, label string) *vdom.Node {
	var found *vdom.Node
	var visit func(n *vdom.Node, rowID int)
	visit = func(n *vdom.Node, rowID int) {
		if found != nil {
			return
		}
		if n.Tag == "li" {
			rowID, _ = strconv.Atoi(n.Attrs["data-id"])
		}
		if n.Tag == "button" && n.Text == label && rowID == id {
			found = n
			return
		}
		for _, c := range n.ChildNodes() {
			visit(c, rowID)
		}
	}
	visit(root, 0)
	return found
}

// FindInput returns the draft input.
func FindInput(root *vdom.Node) *vdom.Node {
	var found *vdom.Node
	vdom.Walk(root, func(n *vdom.Node) bool {
		if found == nil && n.Tag == "input" {
			found = n
		}
		return found == nil
	})
	return found
}
