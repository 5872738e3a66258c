package view

import "github.com/vango-dev/viewcore/internal/errors"

// Item is one entry of a List, optionally carrying an explicit key.
type Item[S, A, E any] struct {
	Key    string
	HasKey bool
	View   View[S, A, E]
}

// Keyed pairs v with an explicit identity key.
func Keyed[S, A, E any](key string, v View[S, A, E]) Item[S, A, E] {
	return Item[S, A, E]{Key: key, HasKey: true, View: v}
}

// Unkeyed wraps v as a positional entry.
func Unkeyed[S, A, E any](v View[S, A, E]) Item[S, A, E] {
	return Item[S, A, E]{View: v}
}

// ListSeq is the dynamic sequence diffing engine.
//
// Entries are matched against the previous frame by explicit key, or, for
// un-keyed entries, by position. Either way the erased shape must agree.
// Matched entries are rebuilt and moved into place, entries only in the old
// list are torn down, entries only in the new list are built and inserted.
// Elements are never destroyed and recreated to express a reordering.
type ListSeq[S, A, E any] struct {
	items []Item[S, A, E]
}

type listEntry struct {
	id    ViewID
	state any
}

type listState struct {
	entries []listEntry
	next    uint64
}

func (st *listState) mint() ViewID {
	id := ViewID(st.next)
	st.next++
	return id
}

// List creates a sequence from items.
func List[S, A, E any](items ...Item[S, A, E]) *ListSeq[S, A, E] {
	checkKeys(items)
	return &ListSeq[S, A, E]{items: items}
}

// ListOf creates a positional sequence from views.
func ListOf[S, A, E any](views ...View[S, A, E]) *ListSeq[S, A, E] {
	items := make([]Item[S, A, E], len(views))
	for i, v := range views {
		items[i] = Unkeyed(v)
	}
	return &ListSeq[S, A, E]{items: items}
}

// Len returns the number of entries.
func (l *ListSeq[S, A, E]) Len() int {
	return len(l.items)
}

func checkKeys[S, A, E any](items []Item[S, A, E]) {
	seen := make(map[string]struct{}, len(items))
	for _, it := range items {
		if !it.HasKey {
			continue
		}
		if _, dup := seen[it.Key]; dup {
			errors.Panic("VC005", "key %q", it.Key)
		}
		seen[it.Key] = struct{}{}
	}
}

func (l *ListSeq[S, A, E]) SeqBuild(ctx Context, out *AppendVec[E], app *S) any {
	st := &listState{entries: make([]listEntry, len(l.items))}
	for i, it := range l.items {
		id := st.mint()
		var el E
		WithID(ctx, id, func() {
			el, st.entries[i].state = it.View.Build(ctx, app)
		})
		st.entries[i].id = id
		out.Push(el)
	}
	return st
}

// match pairs every new entry with an old one, or -1.
func (l *ListSeq[S, A, E]) match(old []Item[S, A, E]) []int {
	keyed := make(map[string]int)
	for i, it := range old {
		if it.HasKey {
			keyed[it.Key] = i
		}
	}

	used := make([]bool, len(old))
	match := make([]int, len(l.items))
	for j, it := range l.items {
		match[j] = -1
		i := -1
		if it.HasKey {
			if k, ok := keyed[it.Key]; ok {
				i = k
			}
		} else if j < len(old) && !old[j].HasKey {
			i = j
		}
		if i < 0 || used[i] || ShapeOf(old[i].View) != ShapeOf(it.View) {
			continue
		}
		used[i] = true
		match[j] = i
	}
	return match
}

func (l *ListSeq[S, A, E]) SeqRebuild(prev ViewSequence[S, A, E], state any, ctx Context, splice ElementSplice[E], app *S) any {
	p := Downcast[*ListSeq[S, A, E]](prev)
	st := StateAs[*listState](state)
	old := p.items
	if len(st.entries) != len(old) {
		errors.Panic("VC007", "list state holds %d entries for %d views", len(st.entries), len(old))
	}

	match := l.match(old)
	newOf := make([]int, len(old))
	for i := range newOf {
		newOf[i] = -1
	}
	for j, i := range match {
		if i >= 0 {
			newOf[i] = j
		}
	}

	// Tear down entries that did not survive, last first so that the
	// offsets of the remaining ones stay put.
	for i := len(old) - 1; i >= 0; i-- {
		if newOf[i] >= 0 {
			continue
		}
		e := st.entries[i]
		v := old[i].View
		splice.Delete(i, func(m *Mut[E]) {
			WithID(ctx, e.id, func() {
				v.Teardown(e.state, ctx, m, app)
			})
		})
	}

	// order holds, for each element currently in the segment, the new index
	// it belongs to.
	order := make([]int, 0, len(l.items))
	for i := range old {
		if newOf[i] >= 0 {
			order = append(order, newOf[i])
		}
	}

	// Rebuild survivors and build newcomers in new order. Nothing has moved
	// yet, so survivors are still where the deletions left them.
	entries := make([]listEntry, len(l.items))
	built := make([]E, len(l.items))
	for j, it := range l.items {
		i := match[j]
		if i < 0 {
			id := st.mint()
			WithID(ctx, id, func() {
				built[j], entries[j].state = it.View.Build(ctx, app)
			})
			entries[j].id = id
			continue
		}
		e := st.entries[i]
		at := indexOf(order, j)
		splice.Mutate(at, func(m *Mut[E]) {
			WithID(ctx, e.id, func() {
				e.state = it.View.Rebuild(old[i].View, e.state, ctx, m, app)
			})
		})
		entries[j] = e
	}

	// Place elements walking the new order backwards. Survivors on the
	// longest increasing run of new indices keep their place; every other
	// survivor moves once, in front of its successor.
	stable := lisMembers(order)
	for j := len(l.items) - 1; j >= 0; j-- {
		anchor := len(order)
		if j+1 < len(l.items) {
			anchor = indexOf(order, j+1)
		}
		if match[j] < 0 {
			splice.Insert(anchor, built[j])
			order = insertAt(order, anchor, j)
			continue
		}
		if stable[j] {
			continue
		}
		from := indexOf(order, j)
		to := anchor
		if from < to {
			to--
		}
		if from != to {
			splice.Move(from, to)
			order = moveTo(order, from, to)
		}
	}

	splice.Skip(len(l.items))
	st.entries = entries
	return st
}

func (l *ListSeq[S, A, E]) SeqTeardown(state any, ctx Context, splice ElementSplice[E], app *S) {
	st := StateAs[*listState](state)
	for i, it := range l.items {
		e := st.entries[i]
		splice.Delete(0, func(m *Mut[E]) {
			WithID(ctx, e.id, func() {
				it.View.Teardown(e.state, ctx, m, app)
			})
		})
	}
	st.entries = nil
}

func (l *ListSeq[S, A, E]) SeqMessage(state any, path Path, msg Message, app *S) MessageResult[A] {
	if len(path) == 0 {
		return Stale[A](msg)
	}
	st := StateAs[*listState](state)
	for i, e := range st.entries {
		if e.id == path[0] {
			return l.items[i].View.Message(e.state, path[1:], msg, app)
		}
	}
	return Stale[A](msg)
}

func indexOf(order []int, v int) int {
	for i, x := range order {
		if x == v {
			return i
		}
	}
	errors.Panic("VC007", "entry %d missing from sequence order", v)
	return -1
}

func insertAt(order []int, at, v int) []int {
	order = append(order, 0)
	copy(order[at+1:], order[at:])
	order[at] = v
	return order
}

func moveTo(order []int, from, to int) []int {
	v := order[from]
	order = append(order[:from], order[from+1:]...)
	return insertAt(order, to, v)
}

// lisMembers returns the values on a longest strictly increasing
// subsequence of seq.
func lisMembers(seq []int) map[int]bool {
	members := make(map[int]bool, len(seq))
	if len(seq) == 0 {
		return members
	}

	// tails[k] is the index in seq of the smallest tail of an increasing
	// run of length k+1.
	tails := make([]int, 0, len(seq))
	parent := make([]int, len(seq))
	for i, v := range seq {
		lo, hi := 0, len(tails)
		for lo < hi {
			mid := (lo + hi) / 2
			if seq[tails[mid]] < v {
				lo = mid + 1
			} else {
				hi = mid
			}
		}
		if lo > 0 {
			parent[i] = tails[lo-1]
		} else {
			parent[i] = -1
		}
		if lo == len(tails) {
			tails = append(tails, i)
		} else {
			tails[lo] = i
		}
	}

	for i := tails[len(tails)-1]; i >= 0; i = parent[i] {
		members[seq[i]] = true
	}
	return members
}
