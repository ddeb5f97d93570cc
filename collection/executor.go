package collection

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/kbukum/collectionkit/errors"
	"github.com/kbukum/collectionkit/logger"
	"github.com/kbukum/collectionkit/observability"
)

const (
	executorUnbounded = "unbounded"
	executorBounded   = "bounded"

	statusOK       = "ok"
	statusError    = "error"
	statusCanceled = "canceled"
)

// completion is what a finished task reports back to the orchestrator.
type completion[R any] struct {
	index int
	value R
	err   error
}

// run is the state of one orchestration call. Everything except the done
// channel is owned by the goroutine that called execute.
type run[T, R any] struct {
	id    string
	o     *options
	items []T
	fn    func(context.Context, T) (R, error)

	taskCtx context.Context
	done    chan completion[R]
	results *slots[R]
	failure failure
	gate    gate

	launched  int
	cancelErr error
	log       *logger.Logger
	debug     bool
}

// execute validates the options, fans items out with the selected executor
// and returns the results in input order, or the first observed failure.
func execute[T, R any](ctx context.Context, name string, items []T, fn func(context.Context, T) (R, error), opts []Option) ([]R, error) {
	o := newOptions(name, opts)
	if o.bounded && o.limit < 1 {
		return nil, errors.InvalidArgument("limit", fmt.Sprintf("must be at least 1 (got %d)", o.limit)).
			WithDetail("value", o.limit)
	}
	if len(items) == 0 {
		return []R{}, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	capacity := len(items)
	if o.bounded {
		capacity = min(o.limit, len(items))
	}
	r := &run[T, R]{
		id:      uuid.NewString(),
		o:       o,
		items:   items,
		fn:      fn,
		done:    make(chan completion[R], capacity),
		results: newSlots[R](len(items)),
	}
	return r.execute(ctx)
}

func (r *run[T, R]) execute(parent context.Context) ([]R, error) {
	start := time.Now()
	executor := r.o.executor()

	ctx, span := observability.StartSpan(parent, observability.SpanPrefix+r.o.name)
	defer span.End()
	observability.SetSpanAttribute(ctx, observability.AttrRunID, r.id)
	observability.SetSpanAttribute(ctx, observability.AttrOperation, r.o.name)
	observability.SetSpanAttribute(ctx, observability.AttrExecutor, executor)
	observability.SetSpanAttribute(ctx, observability.AttrTotal, len(r.items))
	observability.SetSpanAttribute(ctx, observability.AttrPriority, r.o.priority.String())
	if r.o.bounded {
		observability.SetSpanAttribute(ctx, observability.AttrLimit, r.o.limit)
	}

	r.taskCtx = context.WithValue(context.WithValue(ctx, priorityKey, r.o.priority), runIDKey, r.id)
	r.log = r.o.log.WithContext(ctx).WithComponent("collection").WithFields(map[string]interface{}{
		logger.FieldRunID:     r.id,
		logger.FieldOperation: r.o.name,
		logger.FieldExecutor:  executor,
	})
	r.debug = r.log.Enabled(zerolog.DebugLevel)
	if r.debug {
		r.log.Debug("run started", logger.Fields(
			logger.FieldTotal, len(r.items),
			logger.FieldLimit, r.o.limit,
			logger.FieldPriority, r.o.priority.String(),
		))
	}

	if r.o.bounded {
		r.runBounded(ctx)
	} else {
		r.runUnbounded()
	}

	status, err := r.outcome()
	elapsed := time.Since(start)

	observability.SetSpanAttribute(ctx, observability.AttrLaunched, r.launched)
	observability.SetSpanAttribute(ctx, observability.AttrSuppressed, r.failure.suppressed)
	observability.SetSpanAttribute(ctx, observability.AttrStatus, status)
	if err != nil {
		observability.SetSpanError(ctx, err)
	}
	if m := r.o.metrics; m != nil {
		m.RecordRun(ctx, r.o.name, executor, status, elapsed)
		m.RecordRejected(ctx, r.o.name, len(r.items)-r.launched)
	}
	if r.debug {
		r.log.Debug("run finished", logger.MergeWithDuration(logger.Fields(
			logger.FieldStatus, status,
			logger.FieldLaunched, r.launched,
			logger.FieldSuppressed, r.failure.suppressed,
		), elapsed))
	}

	if err != nil {
		return nil, err
	}
	return r.results.collect(), nil
}

// runUnbounded launches every element immediately and waits for all of them.
func (r *run[T, R]) runUnbounded() {
	for i := range r.items {
		r.launch(i)
	}
	for range r.items {
		r.observe(<-r.done)
	}
}

// runBounded keeps at most limit elements in flight. Each observed
// completion frees a slot that goes to the next unstarted element, in input
// order, for as long as the gate stays open. Once input is exhausted or the
// gate closes, the remaining tasks are drained.
func (r *run[T, R]) runBounded(ctx context.Context) {
	next := 0
	for next < len(r.items) && r.launched < r.o.limit && r.admit(ctx) {
		r.launch(next)
		next++
	}

	for active := r.launched; active > 0; {
		c := <-r.done
		active--
		r.observe(c)

		if next < len(r.items) && r.admit(ctx) {
			r.launch(next)
			next++
			active++
		}
	}
}

// admit reports whether another element may be launched. A finished caller
// context closes the gate the same way a failure does.
func (r *run[T, R]) admit(ctx context.Context) bool {
	if r.gate.open() {
		if err := ctx.Err(); err != nil {
			r.cancelErr = err
			r.gate.close(statusCanceled)
			r.log.Debug("admission stopped", logger.MergeWithError(nil, err))
		}
	}
	return r.gate.open()
}

func (r *run[T, R]) launch(index int) {
	r.launched++
	if r.debug {
		r.log.Debug("task launched", logger.Fields(logger.FieldIndex, index))
	}
	item := r.items[index]
	r.o.launcher.Launch(r.o.priority, func() {
		r.done <- r.invoke(index, item)
	})
}

// invoke runs the operation for one element. It is the only code that runs
// off the orchestrating goroutine.
func (r *run[T, R]) invoke(index int, item T) (c completion[R]) {
	c.index = index
	if m := r.o.metrics; m != nil {
		start := time.Now()
		m.RecordTaskStart(r.taskCtx, r.o.name)
		defer func() {
			m.RecordTaskEnd(r.taskCtx, r.o.name, statusOf(c.err), time.Since(start))
		}()
	}
	defer func() {
		if v := recover(); v != nil {
			c.err = &PanicError{Index: index, Value: v, Stack: debug.Stack()}
		}
	}()
	c.value, c.err = r.fn(r.taskCtx, item)
	return c
}

// observe records one completion into the slot table or the failure capsule.
func (r *run[T, R]) observe(c completion[R]) {
	if c.err == nil {
		r.results.put(c.index, c.value)
		return
	}
	if r.failure.record(c.index, c.err) {
		r.gate.close(statusError)
		r.log.Warn("operation failed, no further elements will be launched", logger.Fields(
			logger.FieldIndex, c.index,
			logger.FieldError, c.err.Error(),
		))
		return
	}
	if r.debug {
		r.log.Debug("additional failure suppressed", logger.Fields(
			logger.FieldIndex, c.index,
			logger.FieldError, c.err.Error(),
		))
	}
}

func (r *run[T, R]) outcome() (string, error) {
	switch {
	case r.failure.failed():
		return statusError, r.failure.err
	case r.launched < len(r.items):
		return statusCanceled, r.cancelErr
	default:
		return statusOK, nil
	}
}

func statusOf(err error) string {
	if err != nil {
		return statusError
	}
	return statusOK
}
