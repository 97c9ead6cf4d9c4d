package match

// Score labels by band.
const (
	LabelStrongFit = "Strong Fit"
	LabelOkayMatch = "Okay Match"
	LabelNeedsWork = "Needs Work"
)

// Calibrate blends similarity and coverage percentages into the final score.
// Coverage dominates the blend: skill presence is a stronger ATS signal than
// embedding similarity, which generic phrasing overlap can inflate. The
// linear compression and negative offset counteract the blended figure's
// tendency to run high; lenient mode adds a small fixed bonus. The result is
// clamped to [0,100] and rounded to 2 decimals.
func Calibrate(similarityPct, coveragePct float64, lenient bool, p Params) float64 {
	blended := p.BlendSimilarity*similarityPct + p.BlendCoverage*coveragePct
	score := p.CalibrationScale*blended + p.CalibrationOffset
	if lenient {
		score += p.LenientBonus
	}
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return round2(score)
}

// Label maps a final score to its display band.
func Label(score float64) string {
	switch {
	case score >= 75:
		return LabelStrongFit
	case score >= 50:
		return LabelOkayMatch
	default:
		return LabelNeedsWork
	}
}
