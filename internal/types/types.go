// Package types holds the shared records of the review engine.
// It sits at the bottom of the import graph so that scoring, inference,
// agents and the orchestrator can exchange data without import cycles.
package types

import (
	"fmt"
	"time"
)

// =============================================================================
// MODEL TIERS
// =============================================================================

// ModelTier is one of three model capability levels selected per agent per run.
type ModelTier string

const (
	// TierPowerful is for the hardest review tasks (e.g. methodology critique).
	TierPowerful ModelTier = "powerful"
	// TierStandard is the mid-range tier for regular review tasks.
	TierStandard ModelTier = "standard"
	// TierBasic is for cheap, shallow tasks.
	TierBasic ModelTier = "basic"
)

// Valid returns true if the tier is a known value.
func (t ModelTier) Valid() bool {
	switch t {
	case TierPowerful, TierStandard, TierBasic:
		return true
	default:
		return false
	}
}

func (t ModelTier) String() string {
	return string(t)
}

// =============================================================================
// AGENT IDENTITY
// =============================================================================

// AgentIdentity is a fixed (name, instructions) pair that produces one review.
// BaseWeight is the task-intrinsic complexity of the agent's job on a 0..1
// scale, drawn from the catalog. Tier is assigned exactly once per run by the
// selector and is read-only afterwards.
type AgentIdentity struct {
	Name         string
	Slug         string // short key used for catalog lookup and file names
	Instructions string
	BaseWeight   float64
	Temperature  float64
	Tier         ModelTier
}

// =============================================================================
// REVIEW TASKS
// =============================================================================

// TaskStatus tracks the lifecycle of one review task. Transitions are
// monotonic: pending -> running -> {succeeded | failed_retryable | failed_permanent},
// where failed_retryable may re-enter running and the other two are terminal.
type TaskStatus string

const (
	TaskPending         TaskStatus = "pending"
	TaskRunning         TaskStatus = "running"
	TaskSucceeded       TaskStatus = "succeeded"
	TaskFailedRetryable TaskStatus = "failed_retryable"
	TaskFailedPermanent TaskStatus = "failed_permanent"
)

// Terminal reports whether the status is an end state.
func (s TaskStatus) Terminal() bool {
	return s == TaskSucceeded || s == TaskFailedPermanent
}

// ReviewTask is one unit of dispatch. Owned exclusively by the dispatcher
// until it reaches a terminal state.
type ReviewTask struct {
	Agent    *AgentIdentity
	Content  string
	Attempts int
	Status   TaskStatus
	Result   string
	Err      error
}

// Outcome is the terminal record of one agent execution. Err is nil iff the
// agent succeeded; Cached marks results served from the cache.
type Outcome struct {
	AgentName string
	Text      string
	Err       error
	Cached    bool
	Duration  time.Duration
}

// Succeeded reports whether the agent produced a usable review.
func (o Outcome) Succeeded() bool {
	return o.Err == nil
}

// =============================================================================
// PAPER METADATA
// =============================================================================

// PaperInfo is the structured metadata handed over by the text-extraction
// collaborator, plus the shallow signals the scorer consumes.
type PaperInfo struct {
	Title    string   `json:"title"`
	Authors  string   `json:"authors"`
	Abstract string   `json:"abstract"`
	Length   int      `json:"length"`
	Sections []string `json:"sections"`
	FilePath string   `json:"file_path,omitempty"`
}

// =============================================================================
// SYNTHESIS PIPELINE
// =============================================================================

// PipelineState is the synthesis pipeline state machine position.
type PipelineState string

const (
	StateCollectingReviews PipelineState = "collecting_reviews"
	StateSynthesizing      PipelineState = "synthesizing"
	StateDeciding          PipelineState = "deciding"
	StateComplete          PipelineState = "complete"
	StateAborted           PipelineState = "aborted"
)

// Terminal reports whether the pipeline has finished.
func (s PipelineState) Terminal() bool {
	return s == StateComplete || s == StateAborted
}

// TierAssignment records the selection decision for one agent, kept for the
// final report.
type TierAssignment struct {
	AgentName string    `json:"agent_name"`
	Score     float64   `json:"score"`
	Tier      ModelTier `json:"tier"`
	Model     string    `json:"model"`
}

// SynthesisResult is the immutable output of one pipeline run. Reviews holds
// an entry for every stage-1 agent, failed ones included; Coordinator,
// Summary and EditorDecision are empty when the producing stage did not
// complete.
type SynthesisResult struct {
	RunID          string             `json:"run_id"`
	Paper          PaperInfo          `json:"paper"`
	State          PipelineState      `json:"state"`
	Reviews        map[string]Outcome `json:"-"`
	ReviewTexts    map[string]string  `json:"reviews"`
	FailedAgents   map[string]string  `json:"failed_agents,omitempty"`
	Coordinator    string             `json:"coordinator,omitempty"`
	Summary        string             `json:"author_editor_summary,omitempty"`
	EditorDecision string             `json:"editor_decision,omitempty"`
	Assignments    []TierAssignment   `json:"assignments"`
	PaperScore     float64            `json:"paper_complexity"`
	StartedAt      time.Time          `json:"started_at"`
	FinishedAt     time.Time          `json:"finished_at"`
	AbortReason    string             `json:"abort_reason,omitempty"`
}

// SucceededReviews returns the names of stage-1 agents that produced a review.
func (r *SynthesisResult) SucceededReviews() []string {
	var names []string
	for name, o := range r.Reviews {
		if o.Succeeded() {
			names = append(names, name)
		}
	}
	return names
}

// Validate sanity-checks the terminal record before handing it to reporting.
func (r *SynthesisResult) Validate() error {
	if !r.State.Terminal() {
		return fmt.Errorf("synthesis result in non-terminal state %q", r.State)
	}
	return nil
}
