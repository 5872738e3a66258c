package view

import "reflect"

// SeqOf concatenates a variable number of sequences. Slots are matched by
// position; slots beyond the shorter frame are torn down or built, and a
// slot whose sequence changed type is rebuilt from scratch under a new id.
type SeqOf[S, A, E any] struct {
	seqs []ViewSequence[S, A, E]
}

type seqSlot struct {
	id    ViewID
	state any
}

type seqState struct {
	slots []seqSlot
	next  uint64
}

// Seq concatenates seqs.
func Seq[S, A, E any](seqs ...ViewSequence[S, A, E]) *SeqOf[S, A, E] {
	return &SeqOf[S, A, E]{seqs: seqs}
}

func (q *SeqOf[S, A, E]) build(st *seqState, s ViewSequence[S, A, E], ctx Context, out *AppendVec[E], app *S) seqSlot {
	slot := seqSlot{id: ViewID(st.next)}
	st.next++
	WithID(ctx, slot.id, func() {
		slot.state = s.SeqBuild(ctx, out, app)
	})
	return slot
}

func (q *SeqOf[S, A, E]) SeqBuild(ctx Context, out *AppendVec[E], app *S) any {
	st := &seqState{slots: make([]seqSlot, 0, len(q.seqs))}
	for _, s := range q.seqs {
		st.slots = append(st.slots, q.build(st, s, ctx, out, app))
	}
	return st
}

func (q *SeqOf[S, A, E]) SeqRebuild(prev ViewSequence[S, A, E], state any, ctx Context, splice ElementSplice[E], app *S) any {
	p := Downcast[*SeqOf[S, A, E]](prev)
	st := StateAs[*seqState](state)

	n := min(len(p.seqs), len(q.seqs))
	for i := 0; i < n; i++ {
		slot := &st.slots[i]
		if reflect.TypeOf(p.seqs[i]) == reflect.TypeOf(q.seqs[i]) {
			WithID(ctx, slot.id, func() {
				slot.state = q.seqs[i].SeqRebuild(p.seqs[i], slot.state, ctx, splice, app)
			})
			continue
		}
		WithID(ctx, slot.id, func() {
			p.seqs[i].SeqTeardown(slot.state, ctx, splice, app)
		})
		var out AppendVec[E]
		*slot = q.build(st, q.seqs[i], ctx, &out, app)
		q.insert(splice, out.Drain())
	}
	for i := n; i < len(p.seqs); i++ {
		slot := st.slots[i]
		WithID(ctx, slot.id, func() {
			p.seqs[i].SeqTeardown(slot.state, ctx, splice, app)
		})
	}
	st.slots = st.slots[:n]

	var out AppendVec[E]
	for _, s := range q.seqs[n:] {
		st.slots = append(st.slots, q.build(st, s, ctx, &out, app))
	}
	q.insert(splice, out.Drain())
	return st
}

// insert places freshly built elements at the cursor and skips past them.
func (q *SeqOf[S, A, E]) insert(splice ElementSplice[E], built []E) {
	for i, e := range built {
		splice.Insert(i, e)
	}
	splice.Skip(len(built))
}

func (q *SeqOf[S, A, E]) SeqTeardown(state any, ctx Context, splice ElementSplice[E], app *S) {
	st := StateAs[*seqState](state)
	for i, s := range q.seqs {
		slot := st.slots[i]
		WithID(ctx, slot.id, func() {
			s.SeqTeardown(slot.state, ctx, splice, app)
		})
	}
	st.slots = nil
}

func (q *SeqOf[S, A, E]) SeqMessage(state any, path Path, msg Message, app *S) MessageResult[A] {
	if len(path) == 0 {
		return Stale[A](msg)
	}
	st := StateAs[*seqState](state)
	for i, slot := range st.slots {
		if slot.id == path[0] {
			return q.seqs[i].SeqMessage(slot.state, path[1:], msg, app)
		}
	}
	return Stale[A](msg)
}
