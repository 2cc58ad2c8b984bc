package risk

// Defects are visual observations that reduce the usable wood strength.
type Defects struct {
	BracketFungi bool   `json:"bracket_fungi" yaml:"bracket_fungi"`
	CavityDecay  bool   `json:"cavity_decay" yaml:"cavity_decay"`
	Cracks       bool   `json:"cracks" yaml:"cracks"`
	BasalDecay   bool   `json:"basal_decay" yaml:"basal_decay"`
	Union        bool   `json:"union" yaml:"union"` // included bark or compromised unions
	Other        string `json:"other,omitempty" yaml:"other,omitempty"`
}

const (
	MinDefectFactor = 0.3
	MaxDefectFactor = 1.0
)

// StrengthFactor multiplies the per-defect reductions into k_defect.
func (d Defects) StrengthFactor() float64 {
	k := 1.0
	if d.BracketFungi {
		k *= 0.8
	}
	if d.CavityDecay {
		k *= 0.8
	}
	if d.Cracks {
		k *= 0.9
	}
	if d.BasalDecay {
		k *= 0.8
	}
	if d.Union {
		k *= 0.9
	}
	return clamp(k, MinDefectFactor, MaxDefectFactor)
}

// Labels lists the observed defects in report order.
func (d Defects) Labels() []string {
	var out []string
	flags := []struct {
		on    bool
		label string
	}{
		{d.BracketFungi, "Bracket fungi on stem or base"},
		{d.CavityDecay, "Cavity with visible decay"},
		{d.Cracks, "Longitudinal cracks / shear planes"},
		{d.BasalDecay, "Basal/root-plate decay symptoms"},
		{d.Union, "Included bark / compromised unions"},
	}
	for _, f := range flags {
		if f.on {
			out = append(out, f.label)
		}
	}
	if d.Other != "" {
		out = append(out, d.Other)
	}
	return out
}
