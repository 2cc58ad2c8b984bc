package curves

import (
	"math"

	risk "AusTreeCalc/internal/calc/risk"
	scenario "AusTreeCalc/internal/calc/scenario"
	species "AusTreeCalc/internal/calc/species"
)

// Curve is a sampled SF response to one varying parameter.
type Curve struct {
	XLabel string    `json:"x_label"`
	X      []float64 `json:"x"`
	SF     []float64 `json:"sf"`
}

// ResidualWallCurve also carries the point where SF crosses 1, if any.
type ResidualWallCurve struct {
	Curve
	CriticalResidualPercent *float64 `json:"critical_residual_percent,omitempty"`
	CriticalWallThicknessCm *float64 `json:"critical_wall_thickness_cm,omitempty"`
}

const (
	windSteps      = 12
	wallSteps      = 9
	reductionSteps = 9

	minResidualPercent = 20.0
	maxResidualPercent = 100.0
)

// Wind samples SF between half and 1.8x the design speed, extended past
// the wind-to-failure speed when that is higher.
func Wind(sp species.Preset, in risk.Input, windToFailure float64) Curve {
	c := Curve{XLabel: "Wind speed (m/s)"}
	v := in.DesignWindSpeedMs
	if v <= 0 {
		return c
	}
	lo := math.Max(5, v*0.5)
	hi := v * 1.8
	if windToFailure > 0 && !math.IsInf(windToFailure, 0) && windToFailure*1.1 > hi {
		hi = windToFailure * 1.1
	}
	if hi <= lo {
		hi = lo + 5
	}
	for i := 0; i < windSteps; i++ {
		x := lo + (hi-lo)*float64(i)/float64(windSteps-1)
		p := in
		p.DesignWindSpeedMs = x
		c.X = append(c.X, x)
		c.SF = append(c.SF, risk.Calculate(sp, p).SafetyFactor)
	}
	return c
}

// ResidualWall samples SF for sound-wall shares from 20 to 100 percent of
// the diameter, replacing any measured cavity.
func ResidualWall(sp species.Preset, in risk.Input) ResidualWallCurve {
	c := ResidualWallCurve{Curve: Curve{XLabel: "Residual wall (% of diameter)"}}
	for i := 0; i < wallSteps; i++ {
		rw := minResidualPercent + (maxResidualPercent-minResidualPercent)*float64(i)/float64(wallSteps-1)
		p := in
		p.CavityInnerDiameterCm = math.Max(0, in.DBHCm*(1-rw/100))
		c.X = append(c.X, rw)
		c.SF = append(c.SF, risk.Calculate(sp, p).SafetyFactor)
	}

	if x, ok := crossing(c.X, c.SF, risk.SFFailure); ok {
		x = math.Max(minResidualPercent, math.Min(maxResidualPercent, x))
		wall := in.DBHCm * (x / 100) / 2
		c.CriticalResidualPercent = &x
		c.CriticalWallThicknessCm = &wall
	}
	return c
}

// CrownReduction samples the pruning comparator from no reduction up to
// the planned reduction (5..40 percent, 20 when unset). Thinning is scaled
// in step with the reduction so the first point is the tree as it stands.
func CrownReduction(sp species.Preset, in risk.Input, crownPct, fullnessPct float64) Curve {
	c := Curve{XLabel: "Crown reduction (%)"}
	maxRed := crownPct
	if maxRed <= 0 {
		maxRed = 20
	}
	maxRed = math.Max(5, math.Min(40, maxRed))
	for i := 0; i < reductionSteps; i++ {
		share := float64(i) / float64(reductionSteps-1)
		r := maxRed * share
		res := scenario.Calculate(sp, scenario.Input{
			Input:                         in,
			CrownDiameterReductionPercent: r,
			FullnessReductionPercent:      fullnessPct * share,
		})
		c.X = append(c.X, r)
		c.SF = append(c.SF, res.After.SafetyFactor)
	}
	return c
}

// crossing linearly interpolates the first x where y passes level.
func crossing(xs, ys []float64, level float64) (float64, bool) {
	for i := 0; i+1 < len(xs); i++ {
		y1, y2 := ys[i], ys[i+1]
		if y1 == risk.MaxSafetyFactor || y2 == risk.MaxSafetyFactor {
			continue
		}
		if (y1-level)*(y2-level) > 0 {
			continue
		}
		t := 0.0
		if y2 != y1 {
			t = (level - y1) / (y2 - y1)
		}
		return xs[i] + (xs[i+1]-xs[i])*t, true
	}
	return 0, false
}
