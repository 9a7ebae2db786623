package agents

import (
	"fmt"
	"sort"
	"strings"

	"roundtable/internal/types"
)

// UnavailableMarker stands in for a failed reviewer in downstream prompts so
// the coordinator can reason about missing coverage instead of silently
// losing it.
const UnavailableMarker = "REVIEW UNAVAILABLE"

// InitialMessage assembles the stage-1 reviewer prompt: manuscript metadata
// followed by the full text. The full text is always kept; very long papers
// are the caller's concern.
func InitialMessage(info types.PaperInfo, paperText string) string {
	return fmt.Sprintf(`Paper to be analyzed:

Title: %s
Authors: %s
Abstract: %s

Please conduct a comprehensive and thorough review of this scientific paper.
All reviewers should provide their comments IN ENGLISH.
Each reviewer should analyze the paper from their own expert perspective.

The paper content is as follows:

%s
`, info.Title, info.Authors, info.Abstract, paperText)
}

// formatReviews renders a deterministic, ordered digest of reviewer outcomes.
// Failed reviewers appear with the unavailable marker and their failure
// reason rather than being omitted.
func formatReviews(reviews map[string]types.Outcome, order []string) string {
	names := make([]string, 0, len(reviews))
	seen := make(map[string]bool, len(reviews))
	for _, name := range order {
		if _, ok := reviews[name]; ok && !seen[name] {
			names = append(names, name)
			seen[name] = true
		}
	}
	// Anything outside the preferred order goes last, sorted for stability.
	var rest []string
	for name := range reviews {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	names = append(names, rest...)

	var sb strings.Builder
	for i, name := range names {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		outcome := reviews[name]
		fmt.Fprintf(&sb, "=== %s REVIEW ===\n", strings.ToUpper(name))
		if outcome.Succeeded() {
			sb.WriteString(outcome.Text)
		} else {
			fmt.Fprintf(&sb, "%s: %v", UnavailableMarker, outcome.Err)
		}
	}
	return sb.String()
}

// CoordinatorMessage assembles the stage-2 prompt from all stage-1 outcomes.
func CoordinatorMessage(reviews map[string]types.Outcome) string {
	return fmt.Sprintf(`
Here are all the expert reviews for the paper:

%s

Please provide your comprehensive coordinator assessment based on all these reviews.
`, formatReviews(reviews, ReviewerSlugs))
}

// SummaryMessage assembles the author/editor summary prompt from the
// reviews plus the coordinator's assessment.
func SummaryMessage(reviews map[string]types.Outcome, coordinator string) string {
	combined := withCoordinator(reviews, coordinator)
	return fmt.Sprintf(`
Here are all the expert reviews and the coordinator's assessment for the paper:

%s

Please provide the two requested summaries as per your instructions.
`, formatReviews(combined, append(append([]string{}, ReviewerSlugs...), SlugCoordinator)))
}

// EditorMessage assembles the stage-3 prompt: every review, the coordinator
// assessment and, when available, the author/editor summary.
func EditorMessage(reviews map[string]types.Outcome, coordinator, summary string) string {
	combined := withCoordinator(reviews, coordinator)
	if summary != "" {
		combined[SlugSummary] = types.Outcome{AgentName: SlugSummary, Text: summary}
	}
	order := append(append([]string{}, ReviewerSlugs...), SlugCoordinator, SlugSummary)
	return fmt.Sprintf(`
Here are all the reviews including the coordinator's assessment:

%s

Please provide your editorial decision based on all these reviews.
`, formatReviews(combined, order))
}

func withCoordinator(reviews map[string]types.Outcome, coordinator string) map[string]types.Outcome {
	combined := make(map[string]types.Outcome, len(reviews)+1)
	for name, o := range reviews {
		combined[name] = o
	}
	combined[SlugCoordinator] = types.Outcome{AgentName: SlugCoordinator, Text: coordinator}
	return combined
}
