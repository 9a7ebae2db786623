package orchestrator

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"roundtable/internal/agents"
	"roundtable/internal/logging"
	"roundtable/internal/types"
)

// Pipeline drives the dependent synthesis schedule:
//
//	CollectingReviews -> Synthesizing -> Deciding -> Complete
//
// with Aborted reachable from any state. Stage 2 never begins until every
// stage-1 task is terminal; stage 3 strictly follows stage 2. Partial
// stage-1 results are acceptable input to synthesis, zero successes are
// fatal.
type Pipeline struct {
	dispatcher *Dispatcher
	exec       Runner
	roster     *agents.Roster
	logger     *zap.Logger

	mu    sync.Mutex
	state types.PipelineState
}

// NewPipeline wires a pipeline over a roster for one run.
func NewPipeline(dispatcher *Dispatcher, exec Runner, roster *agents.Roster, logger *zap.Logger) *Pipeline {
	return &Pipeline{
		dispatcher: dispatcher,
		exec:       exec,
		roster:     roster,
		logger:     logging.OrNop(logger),
		state:      types.StateCollectingReviews,
	}
}

// State returns the current pipeline state.
func (p *Pipeline) State() types.PipelineState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

func (p *Pipeline) setState(s types.PipelineState) {
	p.mu.Lock()
	prev := p.state
	p.state = s
	p.mu.Unlock()
	p.logger.Info("pipeline transition", zap.String("from", string(prev)), zap.String("to", string(s)))
}

// Run executes the full schedule and always returns a terminal result: the
// pipeline ends in Complete or Aborted with an explicit record of which
// agents failed and why.
func (p *Pipeline) Run(ctx context.Context, info types.PaperInfo, paperText string, paperScore float64) *types.SynthesisResult {
	result := &types.SynthesisResult{
		RunID:       uuid.NewString(),
		Paper:       info,
		Assignments: p.roster.Assignments,
		PaperScore:  paperScore,
		StartedAt:   time.Now(),
	}

	// Stage 1: all reviewers, concurrent and independent.
	p.setState(types.StateCollectingReviews)
	message := agents.InitialMessage(info, paperText)
	tasks := make([]*types.ReviewTask, 0, len(p.roster.Reviewers))
	for _, agent := range p.roster.Reviewers {
		tasks = append(tasks, &types.ReviewTask{Agent: agent, Content: message})
	}
	result.Reviews = p.dispatcher.RunBatch(ctx, tasks)

	if len(result.SucceededReviews()) == 0 {
		return p.abort(result, "all reviewer agents failed")
	}

	// Stage 2: the coordinator consumes every stage-1 outcome, failed
	// reviewers marked unavailable.
	p.setState(types.StateSynthesizing)
	coordinator := p.exec.Run(ctx, p.roster.Coordinator, agents.CoordinatorMessage(result.Reviews))
	result.Reviews[agents.SlugCoordinator] = coordinator
	if !coordinator.Succeeded() {
		return p.abort(result, "coordinator failed: "+coordinator.Err.Error())
	}
	result.Coordinator = coordinator.Text

	// Author/editor summary rides between coordinator and editor. Only the
	// coordinator and editor are load-bearing, so its failure is recorded
	// but does not abort the run.
	summary := p.exec.Run(ctx, p.roster.Summary, agents.SummaryMessage(result.Reviews, coordinator.Text))
	result.Reviews[agents.SlugSummary] = summary
	if summary.Succeeded() {
		result.Summary = summary.Text
	} else {
		p.logger.Warn("author/editor summary failed", zap.Error(summary.Err))
	}

	// Stage 3: the editor renders the decision from the synthesis.
	p.setState(types.StateDeciding)
	editor := p.exec.Run(ctx, p.roster.Editor, agents.EditorMessage(result.Reviews, coordinator.Text, result.Summary))
	result.Reviews[agents.SlugEditor] = editor
	if !editor.Succeeded() {
		return p.abort(result, "editor failed: "+editor.Err.Error())
	}
	result.EditorDecision = editor.Text

	p.setState(types.StateComplete)
	return p.finalize(result, types.StateComplete)
}

func (p *Pipeline) abort(result *types.SynthesisResult, reason string) *types.SynthesisResult {
	p.setState(types.StateAborted)
	result.AbortReason = reason
	p.logger.Error("pipeline aborted", zap.String("reason", reason))
	return p.finalize(result, types.StateAborted)
}

// finalize freezes the terminal record handed off to reporting.
func (p *Pipeline) finalize(result *types.SynthesisResult, state types.PipelineState) *types.SynthesisResult {
	result.State = state
	result.FinishedAt = time.Now()
	result.ReviewTexts = make(map[string]string, len(result.Reviews))
	result.FailedAgents = make(map[string]string)
	for name, o := range result.Reviews {
		if o.Succeeded() {
			result.ReviewTexts[name] = o.Text
		} else {
			result.FailedAgents[name] = o.Err.Error()
		}
	}
	if len(result.FailedAgents) == 0 {
		result.FailedAgents = nil
	}
	return result
}
