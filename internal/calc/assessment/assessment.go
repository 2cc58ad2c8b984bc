package assessment

import (
	"errors"
	"fmt"
	"io"

	biometrics "AusTreeCalc/internal/calc/biometrics"
	curves "AusTreeCalc/internal/calc/curves"
	risk "AusTreeCalc/internal/calc/risk"
	scenario "AusTreeCalc/internal/calc/scenario"
	species "AusTreeCalc/internal/calc/species"
	validate "AusTreeCalc/internal/calc/validate"
	"gopkg.in/yaml.v3"
)

var ErrUnknownSpecies = errors.New("unknown species")

// Request is one tree as entered by the assessor.
type Request struct {
	Label   string       `json:"label" yaml:"label"`
	Site    string       `json:"site" yaml:"site"`
	Species string       `json:"species" yaml:"species"`
	Defects risk.Defects `json:"defects" yaml:"defects"`
	scenario.Input `yaml:",inline"`

	Genus           string  `json:"genus,omitempty" yaml:"genus,omitempty"`
	FormFactor      float64 `json:"form_factor,omitempty" yaml:"form_factor,omitempty"`
	WoodDensityKgM3 float64 `json:"wood_density_kg_m3,omitempty" yaml:"wood_density_kg_m3,omitempty"`
}

type Assessment struct {
	Label               string                   `json:"label"`
	Site                string                   `json:"site"`
	Species             species.Preset           `json:"species"`
	Input               scenario.Input           `json:"input"`
	Defects             risk.Defects             `json:"defects"`
	DefectFactor        float64                  `json:"defect_factor"`
	Issues              []validate.Issue         `json:"issues"`
	Blocking            bool                     `json:"blocking"`
	Result              risk.Result              `json:"result"`
	WindToFailureMs     *float64                 `json:"wind_to_failure_ms,omitempty"`
	ResidualWallPercent float64                  `json:"residual_wall_percent"`
	Pruning             scenario.Result          `json:"pruning"`
	WindCurve           curves.Curve             `json:"sf_vs_wind"`
	ResidualWallCurve   curves.ResidualWallCurve `json:"sf_vs_residual_wall"`
	CrownReductionCurve curves.Curve             `json:"sf_vs_crown_reduction"`
	Genus               string                   `json:"genus,omitempty"`
	Biometrics          biometrics.Result        `json:"biometrics"`
}

// Decode reads a YAML (or JSON) request.
func Decode(r io.Reader) (Request, error) {
	var req Request
	if err := yaml.NewDecoder(r).Decode(&req); err != nil {
		return Request{}, fmt.Errorf("decode request: %w", err)
	}
	if req.Species == "" {
		req.Species = species.DefaultCode
	}
	return req, nil
}

// Run evaluates a request with the default limits.
func Run(req Request) (Assessment, error) {
	return RunWithLimits(req, validate.DefaultLimits)
}

// RunWithLimits always computes, even when validation reports errors;
// Blocking tells the caller whether to trust the numbers.
func RunWithLimits(req Request, limits validate.Limits) (Assessment, error) {
	sp, ok := species.Lookup(req.Species)
	if !ok {
		return Assessment{}, fmt.Errorf("%w: %q", ErrUnknownSpecies, req.Species)
	}
	in := req.Input
	if in.DefectFactor <= 0 {
		in.DefectFactor = req.Defects.StrengthFactor()
	}
	if in.SiteFactor <= 0 {
		in.SiteFactor = 1.0
	}

	bio := biometrics.Input{
		DBHCm:           in.DBHCm,
		HeightM:         in.HeightM,
		Genus:           req.Genus,
		FormFactor:      req.FormFactor,
		WoodDensityKgM3: req.WoodDensityKgM3,
	}
	issues := append(limits.ValidatePruning(in), validate.ValidateBiometrics(bio)...)
	res := risk.Calculate(sp, in.Input)

	a := Assessment{
		Label:               req.Label,
		Site:                req.Site,
		Species:             sp,
		Input:               in,
		Defects:             req.Defects,
		DefectFactor:        in.DefectFactor,
		Issues:              issues,
		Blocking:            validate.HasErrors(issues),
		Result:              res,
		ResidualWallPercent: risk.ResidualWallFraction(in.DBHCm, in.CavityInnerDiameterCm) * 100,
		Pruning:             scenario.Calculate(sp, in),
		Genus:               req.Genus,
		Biometrics:          biometrics.Calculate(bio),
	}
	vf, ok := risk.WindToFailure(in.DesignWindSpeedMs, res)
	if ok {
		a.WindToFailureMs = &vf
	}
	a.WindCurve = curves.Wind(sp, in.Input, vf)
	a.ResidualWallCurve = curves.ResidualWall(sp, in.Input)
	a.CrownReductionCurve = curves.CrownReduction(sp, in.Input, in.CrownDiameterReductionPercent, in.FullnessReductionPercent)
	return a, nil
}
