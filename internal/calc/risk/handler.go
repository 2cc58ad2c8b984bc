package risk

import (
	"encoding/json"
	"net/http"

	species "AusTreeCalc/internal/calc/species"
)

type Request struct {
	Species string  `json:"species"`
	Defects Defects `json:"defects"`
	Input
}

type Handler struct{}

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	sp, ok := species.Lookup(req.Species)
	if !ok {
		http.Error(w, "Unknown species", http.StatusBadRequest)
		return
	}
	in := req.Input
	if in.DefectFactor <= 0 {
		in.DefectFactor = req.Defects.StrengthFactor()
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(Calculate(sp, in))
}
