package species

// Preset holds the mechanical constants of one species group.
type Preset struct {
	Code             string  `json:"code"`
	Name             string  `json:"name"`
	WoodStrengthMPa  float64 `json:"wood_strength_mpa"`  // green bending strength fb
	WoodStiffnessGPa float64 `json:"wood_stiffness_gpa"` // green MOE, not used by the SF check
	DragCoefficient  float64 `json:"drag_coefficient"`
	CrownShapeFactor float64 `json:"crown_shape_factor"`
	DefaultFullness  float64 `json:"default_fullness"`
}

const DefaultCode = "euc_typical"

var catalogue = []Preset{
	{
		Code:             "euc_high",
		Name:             "Eucalypt - High Strength (ironbark / spotted gum type)",
		WoodStrengthMPa:  50,
		WoodStiffnessGPa: 16,
		DragCoefficient:  0.25,
		CrownShapeFactor: 0.7,
		DefaultFullness:  0.9,
	},
	{
		Code:             "euc_typical",
		Name:             "Eucalypt - Typical Street Tree",
		WoodStrengthMPa:  35,
		WoodStiffnessGPa: 12,
		DragCoefficient:  0.25,
		CrownShapeFactor: 0.7,
		DefaultFullness:  0.9,
	},
	{
		Code:             "broadleaf_deciduous",
		Name:             "Broadleaf - Plane / Elm / Oak",
		WoodStrengthMPa:  28,
		WoodStiffnessGPa: 8,
		DragCoefficient:  0.30,
		CrownShapeFactor: 0.75,
		DefaultFullness:  0.95,
	},
	{
		Code:             "conifer_softwood",
		Name:             "Conifer - Pine / Cypress",
		WoodStrengthMPa:  20,
		WoodStiffnessGPa: 7,
		DragCoefficient:  0.35,
		CrownShapeFactor: 0.8,
		DefaultFullness:  1.0,
	},
	{
		Code:             "araucaria",
		Name:             "Araucaria - Norfolk Island Pine",
		WoodStrengthMPa:  24,
		WoodStiffnessGPa: 8,
		DragCoefficient:  0.30,
		CrownShapeFactor: 0.7,
		DefaultFullness:  0.95,
	},
	{
		Code:             "unknown_hardwood",
		Name:             "Unknown Hardwood (broadleaf)",
		WoodStrengthMPa:  25,
		WoodStiffnessGPa: 8,
		DragCoefficient:  0.28,
		CrownShapeFactor: 0.7,
		DefaultFullness:  0.9,
	},
	{
		Code:             "unknown_softwood",
		Name:             "Unknown Softwood / Evergreen",
		WoodStrengthMPa:  18,
		WoodStiffnessGPa: 6,
		DragCoefficient:  0.33,
		CrownShapeFactor: 0.75,
		DefaultFullness:  0.95,
	},
}

var byCode = func() map[string]Preset {
	m := make(map[string]Preset, len(catalogue))
	for _, p := range catalogue {
		m[p.Code] = p
	}
	return m
}()

// All returns the catalogue in display order. The slice is a copy.
func All() []Preset {
	out := make([]Preset, len(catalogue))
	copy(out, catalogue)
	return out
}

func Lookup(code string) (Preset, bool) {
	p, ok := byCode[code]
	return p, ok
}

// Default is the preset used when the caller does not pick one.
func Default() Preset {
	return byCode[DefaultCode]
}
