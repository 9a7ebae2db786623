// Package orchestrator runs batches of agent executions under a concurrency
// cap and drives the three-stage synthesis pipeline over them.
package orchestrator

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"roundtable/internal/logging"
	"roundtable/internal/types"
)

// Runner executes one agent's review. Satisfied by *agents.Executor; tests
// substitute stubs.
type Runner interface {
	Run(ctx context.Context, agent *types.AgentIdentity, content string) types.Outcome
}

// Dispatcher runs review tasks concurrently, at most `limit` in flight.
// Task failures are independent: one agent's permanent failure never cancels
// or blocks its siblings, and RunBatch returns only when every task has
// reached a terminal state.
type Dispatcher struct {
	exec   Runner
	limit  int64
	logger *zap.Logger
}

// NewDispatcher builds a dispatcher with the given concurrency cap.
func NewDispatcher(exec Runner, limit int, logger *zap.Logger) *Dispatcher {
	if limit < 1 {
		limit = 1
	}
	return &Dispatcher{
		exec:   exec,
		limit:  int64(limit),
		logger: logging.OrNop(logger),
	}
}

// RunBatch executes all tasks and barrier-joins on their completion. The
// returned map has one outcome per task, keyed by agent slug, regardless of
// individual success or failure.
func (d *Dispatcher) RunBatch(ctx context.Context, tasks []*types.ReviewTask) map[string]types.Outcome {
	sem := semaphore.NewWeighted(d.limit)
	outcomes := make(map[string]types.Outcome, len(tasks))

	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	for _, task := range tasks {
		task.Status = types.TaskPending
		wg.Add(1)
		go func(task *types.ReviewTask) {
			defer wg.Done()

			if err := sem.Acquire(ctx, 1); err != nil {
				// Context cancelled while queued: terminal failure for this
				// task only.
				task.Status = types.TaskFailedPermanent
				task.Err = err
				mu.Lock()
				outcomes[task.Agent.Slug] = types.Outcome{AgentName: task.Agent.Name, Err: err}
				mu.Unlock()
				return
			}
			defer sem.Release(1)

			task.Status = types.TaskRunning
			task.Attempts++
			outcome := d.exec.Run(ctx, task.Agent, task.Content)

			if outcome.Succeeded() {
				task.Status = types.TaskSucceeded
				task.Result = outcome.Text
			} else {
				task.Status = types.TaskFailedPermanent
				task.Err = outcome.Err
			}

			mu.Lock()
			outcomes[task.Agent.Slug] = outcome
			mu.Unlock()
		}(task)
	}
	wg.Wait()

	succeeded := 0
	for _, o := range outcomes {
		if o.Succeeded() {
			succeeded++
		}
	}
	d.logger.Info("batch completed",
		zap.Int("tasks", len(tasks)),
		zap.Int("succeeded", succeeded),
		zap.Int("failed", len(tasks)-succeeded))
	return outcomes
}
