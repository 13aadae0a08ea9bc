package executor

import (
	"context"
	"fmt"
	"sync"

	"ncbi/fetcher/internal/domain"
	"ncbi/fetcher/internal/progress"

	log "github.com/sirupsen/logrus"
)

// Fetcher executes a single fetch task, streaming the remote file to its
// destination and reporting byte progress through the callback.
type Fetcher interface {
	Fetch(ctx context.Context, task domain.FetchTask, onProgress func(written, total int64)) (int64, error)
}

// Executor runs a fetch plan under a fixed concurrency ceiling. Each task is
// attempted exactly once; a failed task yields a failure outcome without
// cancelling its siblings, and nothing is retried.
type Executor struct {
	fetcher Fetcher
	workers int
}

func New(fetcher Fetcher, workers int) (*Executor, error) {
	if workers < 1 {
		return nil, fmt.Errorf("concurrency limit must be at least 1, got %d", workers)
	}
	return &Executor{
		fetcher: fetcher,
		workers: workers,
	}, nil
}

// Run executes every task in the plan with at most e.workers transfers in
// flight. The semaphore slot is acquired before a task starts and released
// by defer, so the ceiling holds on success and failure alike.
func (e *Executor) Run(ctx context.Context, tasks []domain.FetchTask, agg *progress.Aggregator) []domain.FetchOutcome {
	outcomes := make(chan domain.FetchOutcome, len(tasks))
	semaphore := make(chan struct{}, e.workers)
	wg := &sync.WaitGroup{}

	for _, task := range tasks {
		wg.Add(1)

		go func(task domain.FetchTask) {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			written, err := e.fetcher.Fetch(ctx, task, func(written, total int64) {
				agg.TaskBytes(task.RemotePath, written, total)
			})
			if err != nil {
				log.Errorf("Failed to fetch %s: %v", task.URL, err)
				agg.TaskCompleted(false)
				outcomes <- domain.FetchOutcome{
					RemotePath: task.RemotePath,
					Success:    false,
					Reason:     err.Error(),
					Bytes:      written,
				}
				return
			}

			agg.TaskCompleted(true)
			outcomes <- domain.FetchOutcome{
				RemotePath: task.RemotePath,
				Success:    true,
				Bytes:      written,
			}
		}(task)
	}

	wg.Wait()
	close(outcomes)

	results := make([]domain.FetchOutcome, 0, len(tasks))
	for outcome := range outcomes {
		results = append(results, outcome)
	}
	return results
}
