package orchestrator

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"roundtable/internal/inference"
	"roundtable/internal/types"
)

// stubRunner is a Runner with scripted per-agent outcomes and in-flight
// accounting.
type stubRunner struct {
	mu      sync.Mutex
	calls   []string
	delay   time.Duration
	outcome func(agent *types.AgentIdentity) types.Outcome

	inFlight atomic.Int32
	maxSeen  atomic.Int32
}

func (s *stubRunner) Run(ctx context.Context, agent *types.AgentIdentity, content string) types.Outcome {
	cur := s.inFlight.Add(1)
	for {
		max := s.maxSeen.Load()
		if cur <= max || s.maxSeen.CompareAndSwap(max, cur) {
			break
		}
	}
	defer s.inFlight.Add(-1)

	s.mu.Lock()
	s.calls = append(s.calls, agent.Slug)
	s.mu.Unlock()

	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	if s.outcome != nil {
		return s.outcome(agent)
	}
	return types.Outcome{AgentName: agent.Name, Text: "review of " + agent.Slug}
}

func (s *stubRunner) called(slug string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.calls {
		if c == slug {
			return true
		}
	}
	return false
}

func makeTasks(n int) []*types.ReviewTask {
	tasks := make([]*types.ReviewTask, 0, n)
	for i := 0; i < n; i++ {
		slug := "agent-" + string(rune('a'+i))
		tasks = append(tasks, &types.ReviewTask{
			Agent: &types.AgentIdentity{Name: "Agent " + slug, Slug: slug, Tier: types.TierBasic},
		})
	}
	return tasks
}

func TestRunBatch_AllTasksReachTerminalState(t *testing.T) {
	runner := &stubRunner{}
	d := NewDispatcher(runner, 3, nil)
	tasks := makeTasks(9)

	outcomes := d.RunBatch(context.Background(), tasks)
	if len(outcomes) != 9 {
		t.Fatalf("expected 9 outcomes, got %d", len(outcomes))
	}
	for _, task := range tasks {
		if !task.Status.Terminal() {
			t.Errorf("task %s left in non-terminal state %s", task.Agent.Slug, task.Status)
		}
		if task.Status != types.TaskSucceeded {
			t.Errorf("task %s expected success, got %s", task.Agent.Slug, task.Status)
		}
	}
}

func TestRunBatch_ConcurrencyCap(t *testing.T) {
	runner := &stubRunner{delay: 30 * time.Millisecond}
	d := NewDispatcher(runner, 3, nil)

	d.RunBatch(context.Background(), makeTasks(9))
	if max := runner.maxSeen.Load(); max > 3 {
		t.Fatalf("concurrency cap violated: %d tasks in flight", max)
	}
}

func TestRunBatch_FailureIsolation(t *testing.T) {
	failing := "agent-c"
	runner := &stubRunner{outcome: func(agent *types.AgentIdentity) types.Outcome {
		if agent.Slug == failing {
			return types.Outcome{AgentName: agent.Name, Err: inference.NewPermanent(400, "rejected")}
		}
		return types.Outcome{AgentName: agent.Name, Text: "fine"}
	}}
	d := NewDispatcher(runner, 3, nil)
	tasks := makeTasks(9)

	outcomes := d.RunBatch(context.Background(), tasks)
	if len(outcomes) != 9 {
		t.Fatalf("failure must not drop outcomes: got %d", len(outcomes))
	}
	succeeded := 0
	for slug, o := range outcomes {
		if o.Succeeded() {
			succeeded++
		} else if slug != failing {
			t.Errorf("unexpected failure for %s: %v", slug, o.Err)
		}
	}
	if succeeded != 8 {
		t.Fatalf("expected 8 successes, got %d", succeeded)
	}
	if outcomes[failing].Err == nil {
		t.Fatal("failed task must carry its error")
	}
	for _, task := range tasks {
		want := types.TaskSucceeded
		if task.Agent.Slug == failing {
			want = types.TaskFailedPermanent
		}
		if task.Status != want {
			t.Errorf("task %s: status %s, want %s", task.Agent.Slug, task.Status, want)
		}
	}
}

func TestRunBatch_CancelledContext(t *testing.T) {
	runner := &stubRunner{}
	d := NewDispatcher(runner, 3, nil)
	tasks := makeTasks(5)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	outcomes := d.RunBatch(ctx, tasks)
	if len(outcomes) != 5 {
		t.Fatalf("every task needs a terminal outcome, got %d", len(outcomes))
	}
	for slug, o := range outcomes {
		if o.Succeeded() {
			t.Errorf("task %s should not have run under a cancelled context", slug)
		}
	}
	for _, task := range tasks {
		if task.Status != types.TaskFailedPermanent {
			t.Errorf("task %s: status %s, want %s", task.Agent.Slug, task.Status, types.TaskFailedPermanent)
		}
	}
}

func TestNewDispatcher_MinimumLimit(t *testing.T) {
	runner := &stubRunner{delay: 10 * time.Millisecond}
	d := NewDispatcher(runner, 0, nil)

	d.RunBatch(context.Background(), makeTasks(3))
	if max := runner.maxSeen.Load(); max != 1 {
		t.Fatalf("limit below 1 must clamp to serial execution, saw %d in flight", max)
	}
}
