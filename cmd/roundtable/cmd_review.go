package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"roundtable/internal/agents"
	"roundtable/internal/cache"
	"roundtable/internal/config"
	"roundtable/internal/inference"
	"roundtable/internal/orchestrator"
	"roundtable/internal/paper"
	"roundtable/internal/report"
	"roundtable/internal/retry"
	"roundtable/internal/scoring"
)

// reviewCmd runs the full review pipeline over one manuscript.
var reviewCmd = &cobra.Command{
	Use:   "review [paper.txt]",
	Short: "Run the multi-agent review pipeline over a manuscript",
	Long: `Reads a plain-text manuscript, scores its complexity, assigns a model
tier to every reviewer agent, runs all reviewers concurrently and produces a
coordinator synthesis plus a final editorial decision.

Example:
  roundtable review paper.txt --concurrency 4 -o ./reviews`,
	Args: cobra.ExactArgs(1),
	RunE: runReview,
}

// agentsCmd lists the reviewer catalog.
var agentsCmd = &cobra.Command{
	Use:   "agents",
	Short: "List the reviewer agent catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "SLUG\tBASE WEIGHT")
		for _, slug := range agents.ReviewerSlugs {
			fmt.Fprintf(w, "%s\t%.1f\n", slug, agents.BaseWeights[slug])
		}
		fmt.Fprintf(w, "%s\t%.1f\n", agents.SlugCoordinator, agents.BaseWeights[agents.SlugCoordinator])
		fmt.Fprintf(w, "%s\t%.1f\n", agents.SlugSummary, agents.BaseWeights[agents.SlugSummary])
		fmt.Fprintf(w, "%s\t%.1f\n", agents.SlugEditor, agents.BaseWeights[agents.SlugEditor])
		return w.Flush()
	},
}

func runReview(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if flagOutput != "" {
		cfg.Output.Dir = flagOutput
	}
	if flagConcurrency > 0 {
		cfg.Orchestrator.MaxParallelAgents = flagConcurrency
	}
	if flagNoCache {
		cfg.Cache.Enabled = false
	}
	// Configuration errors are fatal before any dispatch begins.
	if err := cfg.Validate(); err != nil {
		return err
	}

	raw, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read paper: %w", err)
	}
	paperText := string(raw)
	if len(paperText) == 0 {
		return fmt.Errorf("paper %s is empty", args[0])
	}

	info := paper.Extract(paperText)
	info.FilePath = args[0]
	paperScore := scoring.PaperComplexity(paperText, info.Sections)
	logger.Info("paper analyzed",
		zap.String("title", info.Title),
		zap.Int("length", info.Length),
		zap.Int("sections", len(info.Sections)),
		zap.Float64("complexity", paperScore))

	roster := agents.NewRoster(cfg, paperScore)
	for _, a := range roster.Assignments {
		logger.Info("tier assigned",
			zap.String("agent", a.AgentName),
			zap.Float64("score", a.Score),
			zap.String("tier", string(a.Tier)),
			zap.String("model", a.Model))
	}

	store, err := openCache(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	executor := agents.NewExecutor(agents.ExecutorConfig{
		Client: inference.NewOpenAIClient(inference.OpenAIConfig{
			APIKey:  cfg.API.Key,
			BaseURL: cfg.API.BaseURL,
			Logger:  logger,
		}),
		Store:     store,
		Policy:    retry.New(cfg.Retry.MaxAttempts, cfg.Retry.InitialDelay(), cfg.Retry.MaxDelay(), logger),
		Models:    cfg.Models,
		MaxTokens: cfg.API.MaxTokens,
		Timeout:   cfg.Orchestrator.AgentTimeout(),
		Logger:    logger,
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dispatcher := orchestrator.NewDispatcher(executor, cfg.Orchestrator.MaxParallelAgents, logger)
	pipeline := orchestrator.NewPipeline(dispatcher, executor, roster, logger)
	result := pipeline.Run(ctx, info, paperText, paperScore)

	writer, err := report.NewWriter(cfg.Output.Dir, logger)
	if err != nil {
		return err
	}
	if err := writer.Write(result); err != nil {
		return err
	}

	fmt.Printf("Pipeline finished: %s\n", result.State)
	if result.AbortReason != "" {
		return fmt.Errorf("review aborted: %s", result.AbortReason)
	}
	succeeded := 0
	for _, slug := range agents.ReviewerSlugs {
		if _, ok := result.ReviewTexts[slug]; ok {
			succeeded++
		}
	}
	fmt.Printf("Reviews: %d of %d reviewers succeeded\n", succeeded, len(agents.ReviewerSlugs))
	fmt.Printf("Reports written to %s\n", cfg.Output.Dir)
	return nil
}

func openCache(cfg *config.Config) (cache.Store, error) {
	if !cfg.Cache.Enabled {
		return cache.Disabled{}, nil
	}
	if cfg.Cache.Path != "" {
		store, err := cache.NewSQLiteStore(cfg.Cache.Path)
		if err != nil {
			return nil, fmt.Errorf("open cache: %w", err)
		}
		return store, nil
	}
	return cache.NewMemoryStore(), nil
}
