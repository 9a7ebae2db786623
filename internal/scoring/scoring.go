// Package scoring decides how much model capability each review task gets.
// A paper-level complexity estimate is combined with the agent's intrinsic
// task weight into a selection score, which maps to one of three tiers.
package scoring

import (
	"regexp"
	"strings"
)

// Weighting of the combined selection score. Task-intrinsic difficulty
// dominates: an agent whose job is inherently hard should get the powerful
// tier even for a simple paper.
const (
	paperWeight = 0.4
	agentWeight = 0.6
)

// Tier thresholds, inclusive lower bounds. Boundary values belong to the
// higher tier.
const (
	powerfulThreshold = 0.65
	standardThreshold = 0.45
)

// Normalization caps for the structural signals.
const (
	lengthCap   = 60_000 // characters; beyond this a paper reads as maximally long
	sectionsCap = 12     // sections; a fully structured paper
	markersCap  = 25.0   // technical markers per 1000 words
)

// technicalMarkers are shallow lexical signals of technical density. Matching
// is case-insensitive against whole words.
var technicalMarkers = regexp.MustCompile(`(?i)\b(theorem|lemma|corollary|proof|equation|algorithm|regression|coefficient|significance|p-value|confidence interval|std|variance|dataset|benchmark|hypothesis|estimator|gradient|convergence|eigenvalue|stochastic|asymptotic|covariance)\b|et al\.|\[\d+\]|[=<>±∈∑∏√σμλΔ]`)

// PaperComplexity estimates document difficulty in [0,1] from shallow
// structural signals: length, section count and the density of technical
// markers. Pure and deterministic for identical inputs.
func PaperComplexity(text string, sections []string) float64 {
	if strings.TrimSpace(text) == "" {
		return 0
	}

	lengthSignal := clamp01(float64(len(text)) / lengthCap)
	sectionSignal := clamp01(float64(len(sections)) / sectionsCap)

	words := len(strings.Fields(text))
	if words == 0 {
		words = 1
	}
	markers := len(technicalMarkers.FindAllStringIndex(text, -1))
	density := float64(markers) / float64(words) * 1000
	densitySignal := clamp01(density / markersCap)

	return clamp01(0.4*lengthSignal + 0.3*sectionSignal + 0.3*densitySignal)
}

// Score combines paper complexity and an agent's base task weight into the
// selection score: 0.4 * paper + 0.6 * weight.
func Score(paperComplexity, baseWeight float64) float64 {
	return clamp01(paperWeight*clamp01(paperComplexity) + agentWeight*clamp01(baseWeight))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
