package index

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// taskRunner bounds how many workers run concurrently, grounded directly on
// the teacher's TaskRunner (_examples/SharedCode-sop/task_runner.go): an
// errgroup.Group paired with a buffered "limiter" channel whose capacity is
// the concurrency cap.
type taskRunner struct {
	eg          *errgroup.Group
	limiterChan chan struct{}
	context     context.Context
}

func newTaskRunner(ctx context.Context, maxConcurrent int) *taskRunner {
	eg, ctx2 := errgroup.WithContext(ctx)
	return &taskRunner{
		eg:          eg,
		limiterChan: make(chan struct{}, maxConcurrent),
		context:     ctx2,
	}
}

// spawn runs task in its own goroutine once a concurrency slot is free, or
// returns immediately without running it if context is done first (so a
// cancelled crawl never wedges waiting for a slot that will never free).
func (tr *taskRunner) spawn(task func() error) {
	select {
	case tr.limiterChan <- struct{}{}:
	case <-tr.context.Done():
		return
	}
	t := func() error {
		err := task()
		<-tr.limiterChan
		return err
	}
	tr.eg.Go(t)
}

// wait blocks until every spawned task has returned, returning the first
// non-nil error if any.
func (tr *taskRunner) wait() error {
	defer close(tr.limiterChan)
	return tr.eg.Wait()
}
