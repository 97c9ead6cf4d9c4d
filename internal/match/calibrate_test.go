package match_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fairyhunter13/ats-matcher/internal/match"
)

func TestCalibrate_Bounds(t *testing.T) {
	t.Parallel()
	p := match.DefaultParams()
	for _, sim := range []float64{0, 25, 50, 75, 100} {
		for _, cov := range []float64{0, 25, 50, 75, 100} {
			for _, lenient := range []bool{false, true} {
				got := match.Calibrate(sim, cov, lenient, p)
				assert.GreaterOrEqual(t, got, 0.0)
				assert.LessOrEqual(t, got, 100.0)
			}
		}
	}
}

func TestCalibrate_ZeroInputsClampToZero(t *testing.T) {
	t.Parallel()
	// the negative offset would push the raw figure below zero
	assert.Zero(t, match.Calibrate(0, 0, false, match.DefaultParams()))
}

func TestCalibrate_Formula(t *testing.T) {
	t.Parallel()
	p := match.DefaultParams()
	// 0.82*(0.30*80 + 0.70*60) - 12 = 42.12
	assert.InDelta(t, 42.12, match.Calibrate(80, 60, false, p), 1e-9)
	assert.InDelta(t, 42.12+p.LenientBonus, match.Calibrate(80, 60, true, p), 1e-9)
}

func TestCalibrate_CoverageDominates(t *testing.T) {
	t.Parallel()
	p := match.DefaultParams()
	highCov := match.Calibrate(40, 90, false, p)
	highSim := match.Calibrate(90, 40, false, p)
	assert.Greater(t, highCov, highSim)
}

func TestLabel(t *testing.T) {
	t.Parallel()
	assert.Equal(t, match.LabelStrongFit, match.Label(100))
	assert.Equal(t, match.LabelStrongFit, match.Label(75))
	assert.Equal(t, match.LabelOkayMatch, match.Label(74.99))
	assert.Equal(t, match.LabelOkayMatch, match.Label(50))
	assert.Equal(t, match.LabelNeedsWork, match.Label(49.99))
	assert.Equal(t, match.LabelNeedsWork, match.Label(0))
}
