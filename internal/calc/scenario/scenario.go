package scenario

import (
	"math"

	risk "AusTreeCalc/internal/calc/risk"
	species "AusTreeCalc/internal/calc/species"
)

type Input struct {
	risk.Input                    `yaml:",inline"`
	CrownDiameterReductionPercent float64 `json:"crown_diameter_reduction_percent" yaml:"crown_diameter_reduction_percent"`
	FullnessReductionPercent      float64 `json:"fullness_reduction_percent" yaml:"fullness_reduction_percent"`
}

type Result struct {
	Before                  risk.Result `json:"before"`
	After                   risk.Result `json:"after"`
	CrownDiameterAfterM     float64     `json:"crown_diameter_after_m"`
	CrownFullnessAfter      float64     `json:"crown_fullness_after"`
	SafetyFactorGainPercent float64     `json:"safety_factor_gain_percent"`
}

// Calculate compares the tree as it stands with the tree after crown
// reduction and thinning. Only the crown changes; stem, cavity, wind and
// site stay as given. Percentages are not validated here.
func Calculate(sp species.Preset, in Input) Result {
	fullness := sp.DefaultFullness
	if in.CrownFullness != nil {
		fullness = *in.CrownFullness
	}

	before := in.Input
	before.CrownFullness = &fullness

	crownAfter := math.Max(0, in.CrownDiameterM*(1-in.CrownDiameterReductionPercent/100))
	fullnessAfter := math.Max(0, math.Min(1, fullness*(1-in.FullnessReductionPercent/100)))

	after := in.Input
	after.CrownDiameterM = crownAfter
	after.CrownFullness = &fullnessAfter

	out := Result{
		Before:              risk.Calculate(sp, before),
		After:               risk.Calculate(sp, after),
		CrownDiameterAfterM: crownAfter,
		CrownFullnessAfter:  fullnessAfter,
	}
	if !out.Before.Unloaded && !out.After.Unloaded && out.Before.SafetyFactor > 0 {
		out.SafetyFactorGainPercent = (out.After.SafetyFactor/out.Before.SafetyFactor - 1) * 100
	}
	return out
}
