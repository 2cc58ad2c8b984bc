package risk

import (
	"math"

	species "AusTreeCalc/internal/calc/species"
)

const (
	AirDensity       = 1.2  // kg/m3
	LeverArmFraction = 0.66 // centre of wind pressure as a share of tree height
	CavityClampRatio = 0.99

	// MaxSafetyFactor is reported when nothing loads the stem.
	MaxSafetyFactor = math.MaxFloat64

	SFFailure = 1.0
	SFTarget  = 1.5
)

type Band string

const (
	BandCritical Band = "critical" // SF < 1
	BandMarginal Band = "marginal" // 1 <= SF < 1.5
	BandAdequate Band = "adequate"
)

type Input struct {
	DBHCm                 float64  `json:"dbh_cm" yaml:"dbh_cm"`
	HeightM               float64  `json:"height_m" yaml:"height_m"`
	CrownDiameterM        float64  `json:"crown_diameter_m" yaml:"crown_diameter_m"`
	DesignWindSpeedMs     float64  `json:"design_wind_speed_ms" yaml:"design_wind_speed_ms"`
	CavityInnerDiameterCm float64  `json:"cavity_inner_diameter_cm,omitempty" yaml:"cavity_inner_diameter_cm,omitempty"`
	CrownFullness         *float64 `json:"crown_fullness,omitempty" yaml:"crown_fullness,omitempty"`
	SiteFactor            float64  `json:"site_factor,omitempty" yaml:"site_factor,omitempty"`
	DefectFactor          float64  `json:"defect_factor,omitempty" yaml:"defect_factor,omitempty"`
}

type Result struct {
	SafetyFactor         float64 `json:"safety_factor"`
	Unloaded             bool    `json:"unloaded"`
	Band                 Band    `json:"band"`
	SectionModulusM3     float64 `json:"section_modulus_m3"`
	ResistingMomentNm    float64 `json:"resisting_moment_nm"`
	EffectiveStrengthMPa float64 `json:"effective_strength_mpa"`
	DynamicPressurePa    float64 `json:"dynamic_pressure_pa"`
	SailAreaM2           float64 `json:"sail_area_m2"`
	WindLoadForceN       float64 `json:"wind_load_force_n"`
	LeverArmM            float64 `json:"lever_arm_m"`
	AppliedMomentNm      float64 `json:"applied_moment_nm"`
	BendingStressMPa     float64 `json:"bending_stress_mpa"`
	Notes                string  `json:"notes"`
}

// Calculate runs the static wind-load check at the stem base. Inputs are
// trusted; validation belongs to the caller.
func Calculate(sp species.Preset, in Input) Result {
	if in.SiteFactor <= 0 {
		in.SiteFactor = 1.0
	}
	if in.DefectFactor <= 0 {
		in.DefectFactor = 1.0
	}

	S := SectionModulus(in.DBHCm, in.CavityInnerDiameterCm)
	fb := sp.WoodStrengthMPa * in.DefectFactor
	Mr := fb * 1e6 * S

	q := in.SiteFactor * 0.5 * AirDensity * in.DesignWindSpeedMs * in.DesignWindSpeedMs

	fullness := sp.DefaultFullness
	if in.CrownFullness != nil {
		fullness = *in.CrownFullness
	}
	fullness = clamp(fullness, 0, 1)
	rc := math.Max(in.CrownDiameterM, 0) / 2.0
	area := math.Pi * rc * rc * sp.CrownShapeFactor * fullness

	F := q * sp.DragCoefficient * area
	arm := LeverArmFraction * in.HeightM
	Ma := F * arm

	res := Result{
		SectionModulusM3:     S,
		ResistingMomentNm:    Mr,
		EffectiveStrengthMPa: fb,
		DynamicPressurePa:    q,
		SailAreaM2:           area,
		WindLoadForceN:       F,
		LeverArmM:            arm,
		AppliedMomentNm:      Ma,
		Notes:                "Static wind check at stem base, hollow circular section.",
	}
	if S > 0 {
		res.BendingStressMPa = Ma / S / 1e6
	}
	if Ma <= 0 {
		res.SafetyFactor = MaxSafetyFactor
		res.Unloaded = true
		res.Band = BandAdequate
		res.Notes = "No wind load on the crown; safety factor unbounded."
		return res
	}
	res.SafetyFactor = Mr / Ma
	res.Band = Classify(res.SafetyFactor)
	return res
}

// SectionModulus of an annular stem section in m3. A cavity at or beyond the
// outer diameter is clamped so the wall never vanishes completely.
func SectionModulus(dbhCm, cavityCm float64) float64 {
	R := dbhCm / 200.0
	if R <= 0 {
		return 0
	}
	r := 0.0
	if cavityCm > 0 {
		if cavityCm >= dbhCm {
			cavityCm = dbhCm * CavityClampRatio
		}
		r = cavityCm / 200.0
	}
	return math.Pi / 4.0 * (math.Pow(R, 4) - math.Pow(r, 4)) / R
}

// Classify maps a safety factor to its band. NaN is treated as critical.
func Classify(sf float64) Band {
	switch {
	case math.IsNaN(sf), sf < SFFailure:
		return BandCritical
	case sf < SFTarget:
		return BandMarginal
	default:
		return BandAdequate
	}
}

// WindToFailure estimates the speed at which SF reaches 1. Load grows with
// V^2, so V_fail = V * sqrt(SF).
func WindToFailure(windMs float64, res Result) (float64, bool) {
	if res.Unloaded || windMs <= 0 {
		return 0, false
	}
	sf := res.SafetyFactor
	if math.IsInf(sf, 0) || math.IsNaN(sf) || sf <= 0 {
		return 0, false
	}
	return windMs * math.Sqrt(sf), true
}

// ResidualWallFraction is the share of the diameter that is sound wood.
func ResidualWallFraction(dbhCm, cavityCm float64) float64 {
	if dbhCm <= 0 || cavityCm <= 0 {
		return 1.0
	}
	if cavityCm >= dbhCm {
		cavityCm = dbhCm * CavityClampRatio
	}
	return clamp((dbhCm-cavityCm)/dbhCm, 0, 1)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
