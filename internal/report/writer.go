// Package report renders a terminal SynthesisResult to disk. It is a
// reporting collaborator of the engine: it only formats, never decides.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"roundtable/internal/agents"
	"roundtable/internal/logging"
	"roundtable/internal/types"
)

// Writer renders reports into an output directory.
type Writer struct {
	dir    string
	logger *zap.Logger
	now    func() time.Time
}

// NewWriter creates the output directory if needed.
func NewWriter(dir string, logger *zap.Logger) (*Writer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}
	return &Writer{dir: dir, logger: logging.OrNop(logger), now: time.Now}, nil
}

// Write renders the full report set: one text file per review, the Markdown
// report, the executive summary and the raw JSON results.
func (w *Writer) Write(result *types.SynthesisResult) error {
	if err := result.Validate(); err != nil {
		return err
	}
	stamp := w.now().Format("20060102_150405")

	for slug, text := range result.ReviewTexts {
		name := fmt.Sprintf("review_%s.txt", strings.ReplaceAll(slug, " ", "_"))
		if err := w.saveText(text, name); err != nil {
			return err
		}
	}
	if err := w.saveText(markdownReport(result), fmt.Sprintf("review_report_%s.md", stamp)); err != nil {
		return err
	}
	if err := w.saveText(executiveSummary(result), fmt.Sprintf("executive_summary_%s.md", stamp)); err != nil {
		return err
	}
	if err := w.saveJSON(result, fmt.Sprintf("review_results_%s.json", stamp)); err != nil {
		return err
	}
	w.logger.Info("reports written", zap.String("dir", w.dir), zap.String("run_id", result.RunID))
	return nil
}

func (w *Writer) saveText(text, name string) error {
	path := filepath.Join(w.dir, name)
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("save %s: %w", name, err)
	}
	return nil
}

func (w *Writer) saveJSON(v any, name string) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", name, err)
	}
	return w.saveText(string(data), name)
}

func markdownReport(result *types.SynthesisResult) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# Peer Review Report\n\n")
	fmt.Fprintf(&sb, "**Run:** %s\n\n", result.RunID)
	fmt.Fprintf(&sb, "**Generated:** %s\n\n", result.FinishedAt.Format(time.RFC3339))
	fmt.Fprintf(&sb, "## Paper Information\n\n")
	fmt.Fprintf(&sb, "**Title:** %s\n\n", result.Paper.Title)
	fmt.Fprintf(&sb, "**Authors:** %s\n\n", result.Paper.Authors)
	fmt.Fprintf(&sb, "**Abstract:**\n%s\n\n", result.Paper.Abstract)
	fmt.Fprintf(&sb, "**Document Length:** %d characters\n\n", result.Paper.Length)
	if len(result.Paper.Sections) > 0 {
		n := len(result.Paper.Sections)
		if n > 10 {
			n = 10
		}
		fmt.Fprintf(&sb, "**Identified Sections:** %s\n\n", strings.Join(result.Paper.Sections[:n], ", "))
	}

	fmt.Fprintf(&sb, "## Review Configuration\n\n")
	fmt.Fprintf(&sb, "**Paper Complexity:** %.2f\n\n", result.PaperScore)
	fmt.Fprintf(&sb, "**Model Assignments:**\n\n")
	for _, a := range result.Assignments {
		fmt.Fprintf(&sb, "- %s: %s (`%s`, score %.2f)\n", a.AgentName, a.Tier, a.Model, a.Score)
	}
	fmt.Fprintf(&sb, "\n**Pipeline State:** %s\n\n", result.State)
	if result.AbortReason != "" {
		fmt.Fprintf(&sb, "**Abort Reason:** %s\n\n", result.AbortReason)
	}

	fmt.Fprintf(&sb, "## Editorial Decision\n\n%s\n\n", orUnavailable(result.EditorDecision))
	fmt.Fprintf(&sb, "## Coordinator Assessment\n\n%s\n\n", orUnavailable(result.Coordinator))
	fmt.Fprintf(&sb, "## Author & Editor Summary\n\n%s\n\n", orUnavailable(result.Summary))

	fmt.Fprintf(&sb, "## Detailed Reviews\n\n")
	for _, slug := range agents.ReviewerSlugs {
		title := headingFor(slug)
		if text, ok := result.ReviewTexts[slug]; ok {
			fmt.Fprintf(&sb, "### %s Review\n\n%s\n\n---\n\n", title, text)
		} else if reason, ok := result.FailedAgents[slug]; ok {
			fmt.Fprintf(&sb, "### %s Review\n\nUnavailable: %s\n\n---\n\n", title, reason)
		}
	}
	return sb.String()
}

func executiveSummary(result *types.SynthesisResult) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# Executive Summary\n\n")
	fmt.Fprintf(&sb, "**Paper:** %s\n", result.Paper.Title)
	fmt.Fprintf(&sb, "**Authors:** %s\n", result.Paper.Authors)
	fmt.Fprintf(&sb, "**Review Date:** %s\n\n", result.FinishedAt.Format(time.RFC3339))
	fmt.Fprintf(&sb, "## Editorial Decision\n\n%s\n\n", orUnavailable(result.EditorDecision))
	fmt.Fprintf(&sb, "## Coordinator's Overall Assessment\n\n%s\n\n", orUnavailable(result.Coordinator))
	fmt.Fprintf(&sb, "## Author & Editor Summary\n\n%s\n\n", orUnavailable(result.Summary))

	succeeded, failed := 0, 0
	for _, slug := range agents.ReviewerSlugs {
		if _, ok := result.ReviewTexts[slug]; ok {
			succeeded++
		} else if _, ok := result.FailedAgents[slug]; ok {
			failed++
		}
	}
	fmt.Fprintf(&sb, "## Review Summary\n\n")
	fmt.Fprintf(&sb, "This paper has been reviewed by %d specialized agents. ", succeeded)
	if failed > 0 {
		fmt.Fprintf(&sb, "%d agent(s) did not complete their review. ", failed)
	}
	fmt.Fprintf(&sb, "The reviews were synthesized by a Review Coordinator and evaluated by a Journal Editor for the final publication decision.\n\n")
	fmt.Fprintf(&sb, "---\n\nFor the complete detailed reviews, please refer to the full report.\n")
	return sb.String()
}

// headingFor renders an agent slug as a section heading ("ai_origin" ->
// "Ai Origin").
func headingFor(slug string) string {
	words := strings.Split(slug, "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

func orUnavailable(text string) string {
	if strings.TrimSpace(text) == "" {
		return "Not available"
	}
	return text
}
