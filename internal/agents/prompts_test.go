package agents

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roundtable/internal/inference"
	"roundtable/internal/types"
)

func sampleReviews() map[string]types.Outcome {
	return map[string]types.Outcome{
		SlugMethodology: {AgentName: SlugMethodology, Text: "methodology looks sound"},
		SlugResults:     {AgentName: SlugResults, Err: inference.NewTransient(429, "rate limited")},
		SlugEthics:      {AgentName: SlugEthics, Text: "no ethical concerns"},
	}
}

func TestInitialMessage(t *testing.T) {
	info := types.PaperInfo{Title: "T", Authors: "A, B", Abstract: "short abstract"}
	msg := InitialMessage(info, "full paper body")
	assert.Contains(t, msg, "Title: T")
	assert.Contains(t, msg, "Authors: A, B")
	assert.Contains(t, msg, "Abstract: short abstract")
	assert.Contains(t, msg, "full paper body")
}

func TestCoordinatorMessage_FailedReviewersMarkedUnavailable(t *testing.T) {
	msg := CoordinatorMessage(sampleReviews())

	assert.Contains(t, msg, "=== METHODOLOGY REVIEW ===")
	assert.Contains(t, msg, "methodology looks sound")
	assert.Contains(t, msg, "=== RESULTS REVIEW ===")
	assert.Contains(t, msg, UnavailableMarker)
	assert.Contains(t, msg, "rate limited")
}

func TestCoordinatorMessage_DeterministicOrdering(t *testing.T) {
	first := CoordinatorMessage(sampleReviews())
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, CoordinatorMessage(sampleReviews()))
	}

	// Reviewer sections follow the catalog order.
	m := strings.Index(first, "=== METHODOLOGY REVIEW ===")
	r := strings.Index(first, "=== RESULTS REVIEW ===")
	e := strings.Index(first, "=== ETHICS REVIEW ===")
	require.True(t, m >= 0 && r >= 0 && e >= 0)
	assert.Less(t, m, r)
	assert.Less(t, r, e)
}

func TestFormatReviews_UnknownNamesSortedLast(t *testing.T) {
	reviews := sampleReviews()
	reviews["zeta"] = types.Outcome{AgentName: "zeta", Text: "extra"}
	reviews["alpha"] = types.Outcome{AgentName: "alpha", Text: "extra"}

	out := formatReviews(reviews, ReviewerSlugs)
	e := strings.Index(out, "=== ETHICS REVIEW ===")
	a := strings.Index(out, "=== ALPHA REVIEW ===")
	z := strings.Index(out, "=== ZETA REVIEW ===")
	require.True(t, e >= 0 && a >= 0 && z >= 0)
	assert.Less(t, e, a)
	assert.Less(t, a, z)
}

func TestSummaryMessage_IncludesCoordinator(t *testing.T) {
	msg := SummaryMessage(sampleReviews(), "coordinator verdict")
	assert.Contains(t, msg, "=== COORDINATOR REVIEW ===")
	assert.Contains(t, msg, "coordinator verdict")
}

func TestEditorMessage(t *testing.T) {
	withSummary := EditorMessage(sampleReviews(), "coordinator verdict", "summary text")
	assert.Contains(t, withSummary, "coordinator verdict")
	assert.Contains(t, withSummary, "summary text")
	assert.Contains(t, withSummary, "=== AUTHOR_EDITOR_SUMMARY REVIEW ===")

	// The summary stage is optional; its section is omitted when it failed.
	withoutSummary := EditorMessage(sampleReviews(), "coordinator verdict", "")
	assert.NotContains(t, withoutSummary, "AUTHOR_EDITOR_SUMMARY")
}
