package biometrics

import (
	"math"
	"strings"
)

const (
	DefaultFormFactor      = 0.5
	DefaultWoodDensityKgM3 = 500.0 // dry softwood
	CarbonFraction         = 0.5   // share of dry wood mass

	// DefaultGrowthRateCmPerYear applies when the genus is not in the table.
	DefaultGrowthRateCmPerYear = 0.7
)

// Diameter growth at breast height, cm per year.
var growthRates = map[string]float64{
	"oak":        0.5,
	"pine":       1.0,
	"eucalyptus": 2.0,
	"maple":      0.6,
	"spruce":     0.8,
}

type Input struct {
	DBHCm           float64 `json:"dbh_cm" yaml:"dbh_cm"`
	HeightM         float64 `json:"height_m" yaml:"height_m"`
	Genus           string  `json:"genus,omitempty" yaml:"genus,omitempty"`
	FormFactor      float64 `json:"form_factor,omitempty" yaml:"form_factor,omitempty"`
	WoodDensityKgM3 float64 `json:"wood_density_kg_m3,omitempty" yaml:"wood_density_kg_m3,omitempty"`
}

type Result struct {
	VolumeM3            float64 `json:"volume_m3"`
	DryMassKg           float64 `json:"dry_mass_kg"`
	CarbonKg            float64 `json:"carbon_kg"`
	GrowthRateCmPerYear float64 `json:"growth_rate_cm_per_year"`
	GrowthRateKnown     bool    `json:"growth_rate_known"`
	EstimatedAgeYears   float64 `json:"estimated_age_years"`
	FormFactor          float64 `json:"form_factor"`
	WoodDensityKgM3     float64 `json:"wood_density_kg_m3"`
}

// Volume of the stem as a form-factor-reduced cylinder, m3.
func Volume(heightM, dbhCm, formFactor float64) float64 {
	r := dbhCm / 200.0
	return math.Pi * r * r * heightM * formFactor
}

// Carbon stored in the wood, kg.
func Carbon(volumeM3, densityKgM3 float64) float64 {
	return volumeM3 * densityKgM3 * CarbonFraction
}

// GrowthRate looks up the genus, case-insensitively. ok is false when the
// default rate was used.
func GrowthRate(genus string) (rate float64, ok bool) {
	rate, ok = growthRates[strings.ToLower(strings.TrimSpace(genus))]
	if !ok {
		return DefaultGrowthRateCmPerYear, false
	}
	return rate, true
}

// Age is a rough estimate from diameter and mean radial growth.
func Age(genus string, dbhCm float64) float64 {
	rate, _ := GrowthRate(genus)
	return dbhCm / rate
}

// Genera returns the genera with a known growth rate.
func Genera() map[string]float64 {
	out := make(map[string]float64, len(growthRates))
	for k, v := range growthRates {
		out[k] = v
	}
	return out
}

func Calculate(in Input) Result {
	if in.FormFactor <= 0 {
		in.FormFactor = DefaultFormFactor
	}
	if in.WoodDensityKgM3 <= 0 {
		in.WoodDensityKgM3 = DefaultWoodDensityKgM3
	}
	dbh := math.Max(in.DBHCm, 0)
	h := math.Max(in.HeightM, 0)

	res := Result{
		FormFactor:      in.FormFactor,
		WoodDensityKgM3: in.WoodDensityKgM3,
	}
	res.VolumeM3 = Volume(h, dbh, in.FormFactor)
	res.DryMassKg = res.VolumeM3 * in.WoodDensityKgM3
	res.CarbonKg = Carbon(res.VolumeM3, in.WoodDensityKgM3)
	res.GrowthRateCmPerYear, res.GrowthRateKnown = GrowthRate(in.Genus)
	res.EstimatedAgeYears = dbh / res.GrowthRateCmPerYear
	return res
}
