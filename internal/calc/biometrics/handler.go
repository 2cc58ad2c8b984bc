package biometrics

import (
	"encoding/json"
	"math"
	"net/http"
)

type Handler struct{}

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	var in Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if !positive(in.DBHCm) || !positive(in.HeightM) {
		http.Error(w, "Diameter and height must be positive", http.StatusBadRequest)
		return
	}
	if in.FormFactor < 0 || in.FormFactor > 1 || in.WoodDensityKgM3 < 0 {
		http.Error(w, "Form factor must be within (0, 1] and density positive", http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(Calculate(in))
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}
