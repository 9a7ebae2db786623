package scoring

import "roundtable/internal/types"

// SelectTier maps a selection score to a capability tier. Total over [0,1]:
// score >= 0.65 -> powerful, 0.45 <= score < 0.65 -> standard, else basic.
func SelectTier(score float64) types.ModelTier {
	switch {
	case score >= powerfulThreshold:
		return types.TierPowerful
	case score >= standardThreshold:
		return types.TierStandard
	default:
		return types.TierBasic
	}
}
