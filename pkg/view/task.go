package view

import (
	"context"

	"github.com/vango-dev/viewcore/internal/errors"
)

// TaskView starts a goroutine when built and cancels it on teardown. The
// goroutine reports back through a MessageProxy bound to the task's path;
// each message it sends is handed to onEvent, whose result bubbles up as an
// action.
//
// Build needs an AsyncContext.
type TaskView[S, A, M any] struct {
	run     func(ctx context.Context, proxy *MessageProxy[M])
	onEvent func(app *S, msg M) A
}

type taskState struct {
	cancel context.CancelFunc
}

// Task creates a background task. run must return once ctx is done.
func Task[S, A, M any](run func(ctx context.Context, proxy *MessageProxy[M]), onEvent func(app *S, msg M) A) *TaskView[S, A, M] {
	return &TaskView[S, A, M]{run: run, onEvent: onEvent}
}

func (t *TaskView[S, A, M]) Build(ctx Context, app *S) (NoElement, any) {
	ac, ok := ctx.(AsyncContext)
	if !ok {
		errors.Panic("VC008", "task needs an AsyncContext, got %T", ctx)
	}
	proxy := NewMessageProxy[M](ac.Proxy(), ctx.Path())
	runCtx, cancel := context.WithCancel(context.Background())
	go t.run(runCtx, proxy)
	return NoElement{}, &taskState{cancel: cancel}
}

func (t *TaskView[S, A, M]) Rebuild(prev View[S, A, NoElement], state any, ctx Context, el *Mut[NoElement], app *S) any {
	return state
}

func (t *TaskView[S, A, M]) Teardown(state any, ctx Context, el *Mut[NoElement], app *S) {
	StateAs[*taskState](state).cancel()
}

func (t *TaskView[S, A, M]) Message(state any, path Path, msg Message, app *S) MessageResult[A] {
	m, ok := msg.(M)
	if len(path) != 0 || !ok {
		return Stale[A](msg)
	}
	return Action(t.onEvent(app, m))
}
