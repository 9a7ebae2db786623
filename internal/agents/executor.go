package agents

import (
	"context"
	"time"

	"go.uber.org/zap"

	"roundtable/internal/cache"
	"roundtable/internal/config"
	"roundtable/internal/inference"
	"roundtable/internal/logging"
	"roundtable/internal/retry"
	"roundtable/internal/types"
)

// Executor runs one agent's review. It composes the independent capabilities
// around a plain client call: cache lookup first, then the retry policy
// around the inference client, then a single cache write on success. Any
// combination can be assembled per run; the executor has no per-agent state.
type Executor struct {
	client    inference.Client
	store     cache.Store
	policy    *retry.Policy
	models    config.ModelsConfig
	maxTokens int
	timeout   time.Duration
	logger    *zap.Logger
}

// ExecutorConfig wires an executor.
type ExecutorConfig struct {
	Client    inference.Client
	Store     cache.Store // nil disables caching
	Policy    *retry.Policy
	Models    config.ModelsConfig
	MaxTokens int
	Timeout   time.Duration // per-call timeout applied to every attempt
	Logger    *zap.Logger
}

// NewExecutor builds an executor for one run.
func NewExecutor(cfg ExecutorConfig) *Executor {
	store := cfg.Store
	if store == nil {
		store = cache.Disabled{}
	}
	return &Executor{
		client:    cfg.Client,
		store:     store,
		policy:    cfg.Policy,
		models:    cfg.Models,
		maxTokens: cfg.MaxTokens,
		timeout:   cfg.Timeout,
		logger:    logging.OrNop(cfg.Logger),
	}
}

// Run executes a review for one agent. Cache hits return without touching
// the inference client; misses go through the retry policy and write the
// cache exactly once on success. The returned outcome always carries the
// agent name, and Err holds the classified failure when the call could not
// be completed.
func (e *Executor) Run(ctx context.Context, agent *types.AgentIdentity, content string) types.Outcome {
	start := time.Now()
	model := e.models.ForTier(agent.Tier)
	fingerprint := cache.Fingerprint(agent.Name, model, agent.Instructions, content)

	if cached, ok, err := e.store.Get(fingerprint); err != nil {
		// A broken cache must not fail the review; log and call through.
		e.logger.Warn("cache read failed", zap.String("agent", agent.Name), zap.Error(err))
	} else if ok {
		e.logger.Info("cache hit", zap.String("agent", agent.Name), zap.String("model", model))
		return types.Outcome{
			AgentName: agent.Name,
			Text:      cached,
			Cached:    true,
			Duration:  time.Since(start),
		}
	}

	text, err := e.policy.Do(ctx, func(ctx context.Context) (string, error) {
		return e.client.Complete(ctx, inference.Request{
			Model:       model,
			System:      agent.Instructions,
			User:        content,
			Temperature: agent.Temperature,
			MaxTokens:   e.maxTokens,
			Timeout:     e.timeout,
		})
	})
	if err != nil {
		e.logger.Warn("agent execution failed",
			zap.String("agent", agent.Name),
			zap.String("model", model),
			zap.Error(err))
		return types.Outcome{AgentName: agent.Name, Err: err, Duration: time.Since(start)}
	}

	if err := e.store.Put(fingerprint, text); err != nil {
		e.logger.Warn("cache write failed", zap.String("agent", agent.Name), zap.Error(err))
	}

	e.logger.Info("agent completed",
		zap.String("agent", agent.Name),
		zap.String("model", model),
		zap.Duration("elapsed", time.Since(start)))
	return types.Outcome{AgentName: agent.Name, Text: text, Duration: time.Since(start)}
}
