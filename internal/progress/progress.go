package progress

import (
	"sync/atomic"

	log "github.com/sirupsen/logrus"
)

const logEvery = 100

type completion struct {
	success bool
}

type byteUpdate struct {
	remotePath string
	written    int64
	total      int64
}

// Aggregator owns the run's progress counters. Workers report over channels
// and never mutate shared state; a single goroutine applies every update.
// Completion events are exact and the counter reaches the plan total exactly
// once; byte updates are advisory and dropped under backpressure so they
// never delay a transfer.
type Aggregator struct {
	total int

	completions chan completion
	bytes       chan byteUpdate
	finished    chan struct{}

	completed atomic.Int64
	succeeded atomic.Int64
	failed    atomic.Int64
}

// NewAggregator starts the collector for a plan of total tasks.
func NewAggregator(total int) *Aggregator {
	a := &Aggregator{
		total:       total,
		completions: make(chan completion, total),
		bytes:       make(chan byteUpdate, 256),
		finished:    make(chan struct{}),
	}
	go a.run()
	return a
}

func (a *Aggregator) run() {
	defer close(a.finished)
	remaining := a.total
	for remaining > 0 {
		select {
		case c := <-a.completions:
			remaining--
			if c.success {
				a.succeeded.Add(1)
			} else {
				a.failed.Add(1)
			}
			done := a.completed.Add(1)
			if done%logEvery == 0 || remaining == 0 {
				log.Infof("Fetched %d of %d assemblies (%d failed)", done, a.total, a.failed.Load())
			}
		case b := <-a.bytes:
			if b.total > 0 {
				log.Debugf("%s: %d of %d bytes", b.remotePath, b.written, b.total)
			} else {
				log.Debugf("%s: %d bytes", b.remotePath, b.written)
			}
		}
	}
}

// TaskCompleted records one finished task. The channel is sized for the full
// plan, so the send never blocks a worker.
func (a *Aggregator) TaskCompleted(success bool) {
	a.completions <- completion{success: success}
}

// TaskBytes reports transfer progress for one task. Updates are dropped when
// the collector is busy.
func (a *Aggregator) TaskBytes(remotePath string, written, total int64) {
	select {
	case a.bytes <- byteUpdate{remotePath: remotePath, written: written, total: total}:
	default:
	}
}

// Wait blocks until every planned task has reported completion.
func (a *Aggregator) Wait() {
	<-a.finished
}

// Completed returns the number of tasks finished so far. Monotonically
// non-decreasing.
func (a *Aggregator) Completed() int64 {
	return a.completed.Load()
}

// Succeeded returns the success count so far.
func (a *Aggregator) Succeeded() int64 {
	return a.succeeded.Load()
}

// Failed returns the failure count so far.
func (a *Aggregator) Failed() int64 {
	return a.failed.Load()
}
