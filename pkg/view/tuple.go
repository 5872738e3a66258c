package view

import "reflect"

// Tuple sequences have a fixed number of slots. Each slot maps to the same
// slot of the previous frame, so no runtime matching happens. Slot i is
// entered under id i until the sequence in it changes type; it is then
// rebuilt from scratch under a fresh id.

type tupleState struct {
	slots []any
	ids   []ViewID
}

func slotID(gen uint64, i int) ViewID {
	return ViewID(gen<<8 | uint64(i))
}

func tupleMessage[S, A, E any](slots []ViewSequence[S, A, E], state any, path Path, msg Message, app *S) MessageResult[A] {
	if len(path) == 0 {
		return Stale[A](msg)
	}
	st := StateAs[*tupleState](state)
	i := int(path[0] & 0xff)
	if i >= len(slots) || st.ids[i] != path[0] {
		return Stale[A](msg)
	}
	return slots[i].SeqMessage(st.slots[i], path[1:], msg, app)
}

func tupleBuild[S, A, E any](slots []ViewSequence[S, A, E], ctx Context, out *AppendVec[E], app *S) any {
	st := &tupleState{slots: make([]any, len(slots)), ids: make([]ViewID, len(slots))}
	for i, s := range slots {
		st.ids[i] = slotID(0, i)
		WithID(ctx, st.ids[i], func() {
			st.slots[i] = s.SeqBuild(ctx, out, app)
		})
	}
	return st
}

func tupleRebuild[S, A, E any](slots, prev []ViewSequence[S, A, E], state any, ctx Context, splice ElementSplice[E], app *S) any {
	st := StateAs[*tupleState](state)
	for i, s := range slots {
		if reflect.TypeOf(prev[i]) == reflect.TypeOf(s) {
			WithID(ctx, st.ids[i], func() {
				st.slots[i] = s.SeqRebuild(prev[i], st.slots[i], ctx, splice, app)
			})
			continue
		}
		WithID(ctx, st.ids[i], func() {
			prev[i].SeqTeardown(st.slots[i], ctx, splice, app)
		})
		st.ids[i] = slotID(uint64(st.ids[i]>>8)+1, i)
		var out AppendVec[E]
		WithID(ctx, st.ids[i], func() {
			st.slots[i] = s.SeqBuild(ctx, &out, app)
		})
		built := out.Drain()
		for j, e := range built {
			splice.Insert(j, e)
		}
		splice.Skip(len(built))
	}
	return st
}

func tupleTeardown[S, A, E any](slots []ViewSequence[S, A, E], state any, ctx Context, splice ElementSplice[E], app *S) {
	st := StateAs[*tupleState](state)
	for i, s := range slots {
		WithID(ctx, st.ids[i], func() {
			s.SeqTeardown(st.slots[i], ctx, splice, app)
		})
	}
}

// Tuple2Seq is a fixed two-slot sequence.
type Tuple2Seq[S, A, E any] struct {
	A ViewSequence[S, A, E]
	B ViewSequence[S, A, E]
}

// Tuple2 creates a two-slot sequence.
func Tuple2[S, A, E any](a, b ViewSequence[S, A, E]) *Tuple2Seq[S, A, E] {
	return &Tuple2Seq[S, A, E]{A: a, B: b}
}

func (t *Tuple2Seq[S, A, E]) slots() []ViewSequence[S, A, E] {
	return []ViewSequence[S, A, E]{t.A, t.B}
}

func (t *Tuple2Seq[S, A, E]) SeqBuild(ctx Context, out *AppendVec[E], app *S) any {
	return tupleBuild(t.slots(), ctx, out, app)
}

func (t *Tuple2Seq[S, A, E]) SeqRebuild(prev ViewSequence[S, A, E], state any, ctx Context, splice ElementSplice[E], app *S) any {
	p := Downcast[*Tuple2Seq[S, A, E]](prev)
	return tupleRebuild(t.slots(), p.slots(), state, ctx, splice, app)
}

func (t *Tuple2Seq[S, A, E]) SeqTeardown(state any, ctx Context, splice ElementSplice[E], app *S) {
	tupleTeardown(t.slots(), state, ctx, splice, app)
}

func (t *Tuple2Seq[S, A, E]) SeqMessage(state any, path Path, msg Message, app *S) MessageResult[A] {
	return tupleMessage(t.slots(), state, path, msg, app)
}

// Tuple3Seq is a fixed three-slot sequence.
type Tuple3Seq[S, A, E any] struct {
	A ViewSequence[S, A, E]
	B ViewSequence[S, A, E]
	C ViewSequence[S, A, E]
}

// Tuple3 creates a three-slot sequence.
func Tuple3[S, A, E any](a, b, c ViewSequence[S, A, E]) *Tuple3Seq[S, A, E] {
	return &Tuple3Seq[S, A, E]{A: a, B: b, C: c}
}

func (t *Tuple3Seq[S, A, E]) slots() []ViewSequence[S, A, E] {
	return []ViewSequence[S, A, E]{t.A, t.B, t.C}
}

func (t *Tuple3Seq[S, A, E]) SeqBuild(ctx Context, out *AppendVec[E], app *S) any {
	return tupleBuild(t.slots(), ctx, out, app)
}

func (t *Tuple3Seq[S, A, E]) SeqRebuild(prev ViewSequence[S, A, E], state any, ctx Context, splice ElementSplice[E], app *S) any {
	p := Downcast[*Tuple3Seq[S, A, E]](prev)
	return tupleRebuild(t.slots(), p.slots(), state, ctx, splice, app)
}

func (t *Tuple3Seq[S, A, E]) SeqTeardown(state any, ctx Context, splice ElementSplice[E], app *S) {
	tupleTeardown(t.slots(), state, ctx, splice, app)
}

func (t *Tuple3Seq[S, A, E]) SeqMessage(state any, path Path, msg Message, app *S) MessageResult[A] {
	return tupleMessage(t.slots(), state, path, msg, app)
}

// Tuple4Seq is a fixed four-slot sequence.
type Tuple4Seq[S, A, E any] struct {
	A ViewSequence[S, A, E]
	B ViewSequence[S, A, E]
	C ViewSequence[S, A, E]
	D ViewSequence[S, A, E]
}

// Tuple4 creates a four-slot sequence.
func Tuple4[S, A, E any](a, b, c, d ViewSequence[S, A, E]) *Tuple4Seq[S, A, E] {
	return &Tuple4Seq[S, A, E]{A: a, B: b, C: c, D: d}
}

func (t *Tuple4Seq[S, A, E]) slots() []ViewSequence[S, A, E] {
	return []ViewSequence[S, A, E]{t.A, t.B, t.C, t.D}
}

func (t *Tuple4Seq[S, A, E]) SeqBuild(ctx Context, out *AppendVec[E], app *S) any {
	return tupleBuild(t.slots(), ctx, out, app)
}

func (t *Tuple4Seq[S, A, E]) SeqRebuild(prev ViewSequence[S, A, E], state any, ctx Context, splice ElementSplice[E], app *S) any {
	p := Downcast[*Tuple4Seq[S, A, E]](prev)
	return tupleRebuild(t.slots(), p.slots(), state, ctx, splice, app)
}

func (t *Tuple4Seq[S, A, E]) SeqTeardown(state any, ctx Context, splice ElementSplice[E], app *S) {
	tupleTeardown(t.slots(), state, ctx, splice, app)
}

func (t *Tuple4Seq[S, A, E]) SeqMessage(state any, path Path, msg Message, app *S) MessageResult[A] {
	return tupleMessage(t.slots(), state, path, msg, app)
}
