package validate

import (
	"fmt"
	"math"

	biometrics "AusTreeCalc/internal/calc/biometrics"
	risk "AusTreeCalc/internal/calc/risk"
	scenario "AusTreeCalc/internal/calc/scenario"
)

type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue is a single finding about the measurements.
type Issue struct {
	Field    string   `json:"field"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

func (i Issue) IsError() bool { return i.Severity == SeverityError }

// Limits are the plausibility thresholds behind the warnings.
type Limits struct {
	MaxWindSpeedMs        float64
	MaxCrownToHeightRatio float64
	MinSiteFactor         float64
	MaxSiteFactor         float64
}

var DefaultLimits = Limits{
	MaxWindSpeedMs:        85,
	MaxCrownToHeightRatio: 2.0,
	MinSiteFactor:         0.5,
	MaxSiteFactor:         1.5,
}

func Validate(in risk.Input) []Issue {
	return DefaultLimits.Validate(in)
}

// Validate returns every applicable issue in a fixed check order.
func (l Limits) Validate(in risk.Input) []Issue {
	issues := []Issue{}
	add := func(sev Severity, field, format string, args ...any) {
		issues = append(issues, Issue{Field: field, Message: fmt.Sprintf(format, args...), Severity: sev})
	}

	switch {
	case !finite(in.DBHCm):
		add(SeverityError, "dbh_cm", "stem diameter must be a finite number")
	case in.DBHCm <= 0:
		add(SeverityError, "dbh_cm", "stem diameter must be positive")
	}
	switch {
	case !finite(in.HeightM):
		add(SeverityError, "height_m", "height must be a finite number")
	case in.HeightM <= 0:
		add(SeverityError, "height_m", "height must be positive")
	}
	switch {
	case !finite(in.CrownDiameterM):
		add(SeverityError, "crown_diameter_m", "crown diameter must be a finite number")
	case in.CrownDiameterM <= 0:
		add(SeverityError, "crown_diameter_m", "crown diameter must be positive")
	}
	switch {
	case !finite(in.DesignWindSpeedMs):
		add(SeverityError, "design_wind_speed_ms", "wind speed must be a finite number")
	case in.DesignWindSpeedMs < 0:
		add(SeverityError, "design_wind_speed_ms", "wind speed cannot be negative")
	}
	if cav := in.CavityInnerDiameterCm; cav != 0 {
		switch {
		case !finite(cav):
			add(SeverityError, "cavity_inner_diameter_cm", "cavity diameter must be a finite number")
		case cav < 0:
			add(SeverityError, "cavity_inner_diameter_cm", "cavity diameter cannot be negative")
		case cav >= in.DBHCm:
			add(SeverityError, "cavity_inner_diameter_cm", "cavity cannot exceed or equal stem diameter")
		}
	}
	if l.MaxWindSpeedMs > 0 && in.DesignWindSpeedMs > l.MaxWindSpeedMs && finite(in.DesignWindSpeedMs) {
		add(SeverityWarning, "design_wind_speed_ms",
			"wind speed %.1f m/s is above %.0f m/s; check units", in.DesignWindSpeedMs, l.MaxWindSpeedMs)
	}
	if l.MaxCrownToHeightRatio > 0 && in.HeightM > 0 && in.CrownDiameterM/in.HeightM > l.MaxCrownToHeightRatio &&
		finite(in.HeightM) && finite(in.CrownDiameterM) {
		add(SeverityWarning, "crown_diameter_m",
			"crown spread is more than %.1fx tree height; shape looks implausible", l.MaxCrownToHeightRatio)
	}
	if f := in.CrownFullness; f != nil && (!finite(*f) || *f <= 0 || *f > 1) {
		add(SeverityError, "crown_fullness", "crown fullness must be within (0, 1]")
	}
	if sf := in.SiteFactor; sf != 0 {
		switch {
		case !finite(sf):
			add(SeverityError, "site_factor", "site factor must be a finite number")
		case l.MaxSiteFactor > 0 && (sf < l.MinSiteFactor || sf > l.MaxSiteFactor):
			add(SeverityWarning, "site_factor",
				"site factor %.2f is outside the usual %.1f-%.1f range", sf, l.MinSiteFactor, l.MaxSiteFactor)
		}
	}
	if k := in.DefectFactor; k != 0 && (!finite(k) || k < 0 || k > 1) {
		add(SeverityError, "defect_factor", "defect strength factor must be within (0, 1]")
	}
	return issues
}

// ValidatePruning adds the reduction percentage checks to the measurement checks.
func (l Limits) ValidatePruning(in scenario.Input) []Issue {
	issues := l.Validate(in.Input)
	pct := []struct {
		field string
		v     float64
	}{
		{"crown_diameter_reduction_percent", in.CrownDiameterReductionPercent},
		{"fullness_reduction_percent", in.FullnessReductionPercent},
	}
	for _, p := range pct {
		if !finite(p.v) || p.v < 0 || p.v > 100 {
			issues = append(issues, Issue{
				Field:    p.field,
				Message:  "reduction must be between 0 and 100 percent",
				Severity: SeverityError,
			})
		}
	}
	return issues
}

func ValidatePruning(in scenario.Input) []Issue {
	return DefaultLimits.ValidatePruning(in)
}

// ValidateBiometrics checks the optional volume and carbon overrides. Diameter
// and height are covered by Validate.
func ValidateBiometrics(in biometrics.Input) []Issue {
	issues := []Issue{}
	if ff := in.FormFactor; ff != 0 && (!finite(ff) || ff < 0 || ff > 1) {
		issues = append(issues, Issue{Field: "form_factor", Message: "form factor must be within (0, 1]", Severity: SeverityError})
	}
	if d := in.WoodDensityKgM3; d != 0 && (!finite(d) || d < 0) {
		issues = append(issues, Issue{Field: "wood_density_kg_m3", Message: "wood density must be positive", Severity: SeverityError})
	}
	return issues
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// HasErrors reports whether any issue should block the calculation.
func HasErrors(issues []Issue) bool {
	for _, i := range issues {
		if i.IsError() {
			return true
		}
	}
	return false
}
