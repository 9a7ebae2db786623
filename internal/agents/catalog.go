// Package agents defines the reviewer catalog and the executor that runs one
// agent's review through cache, retry and the inference client.
package agents

import (
	"roundtable/internal/config"
	"roundtable/internal/scoring"
	"roundtable/internal/types"
)

// Agent slugs. These key the catalog, the per-agent temperature overrides
// and the review map in the synthesis result.
const (
	SlugMethodology   = "methodology"
	SlugResults       = "results"
	SlugLiterature    = "literature"
	SlugStructure     = "structure"
	SlugImpact        = "impact"
	SlugContradiction = "contradiction"
	SlugEthics        = "ethics"
	SlugAIOrigin      = "ai_origin"
	SlugHallucination = "hallucination"
	SlugCoordinator   = "coordinator"
	SlugEditor        = "editor"
	SlugSummary       = "author_editor_summary"
)

// BaseWeights is the intrinsic task complexity of each agent's job on a
// 0..1 scale. The coordinator is always maximal: it synthesizes every review.
var BaseWeights = map[string]float64{
	SlugMethodology:   0.9,
	SlugResults:       0.7,
	SlugLiterature:    0.6,
	SlugStructure:     0.3,
	SlugImpact:        0.7,
	SlugContradiction: 0.9,
	SlugEthics:        0.5,
	SlugAIOrigin:      0.4,
	SlugHallucination: 0.6,
	SlugCoordinator:   1.0,
	SlugEditor:        0.8,
	SlugSummary:       0.8,
}

// ReviewerSlugs lists the stage-1 reviewers in report order.
var ReviewerSlugs = []string{
	SlugMethodology,
	SlugResults,
	SlugLiterature,
	SlugStructure,
	SlugImpact,
	SlugContradiction,
	SlugEthics,
	SlugAIOrigin,
	SlugHallucination,
}

type catalogEntry struct {
	name         string
	instructions string
}

// newIdentity builds one agent from the catalog, resolving temperature from
// config and tier from the combined complexity score.
func newIdentity(slug string, cfg *config.Config, paperComplexity float64) *types.AgentIdentity {
	entry := catalogEntries[slug]
	weight := BaseWeights[slug]
	score := scoring.Score(paperComplexity, weight)
	return &types.AgentIdentity{
		Name:         entry.name,
		Slug:         slug,
		Instructions: entry.instructions,
		BaseWeight:   weight,
		Temperature:  cfg.Temperature(slug),
		Tier:         scoring.SelectTier(score),
	}
}

// Roster holds the full agent set for one run. Tier assignment happens here,
// exactly once; identities are read-only afterwards.
type Roster struct {
	Reviewers   []*types.AgentIdentity
	Coordinator *types.AgentIdentity
	Summary     *types.AgentIdentity
	Editor      *types.AgentIdentity
	Assignments []types.TierAssignment
}

// NewRoster creates all agents for a run and records each tier decision.
func NewRoster(cfg *config.Config, paperComplexity float64) *Roster {
	roster := &Roster{}
	record := func(a *types.AgentIdentity) *types.AgentIdentity {
		roster.Assignments = append(roster.Assignments, types.TierAssignment{
			AgentName: a.Name,
			Score:     scoring.Score(paperComplexity, a.BaseWeight),
			Tier:      a.Tier,
			Model:     cfg.Models.ForTier(a.Tier),
		})
		return a
	}

	for _, slug := range ReviewerSlugs {
		roster.Reviewers = append(roster.Reviewers, record(newIdentity(slug, cfg, paperComplexity)))
	}
	roster.Coordinator = record(newIdentity(SlugCoordinator, cfg, paperComplexity))
	roster.Summary = record(newIdentity(SlugSummary, cfg, paperComplexity))
	roster.Editor = record(newIdentity(SlugEditor, cfg, paperComplexity))
	return roster
}
