package assessment

import (
	"encoding/json"
	"errors"
	"net/http"

	validate "AusTreeCalc/internal/calc/validate"
)

type Handler struct {
	Limits validate.Limits
}

func (h *Handler) Assess(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	a, err := RunWithLimits(req, h.Limits)
	if errors.Is(err, ErrUnknownSpecies) {
		http.Error(w, "Unknown species", http.StatusBadRequest)
		return
	}
	if err != nil {
		http.Error(w, "Calculation error", http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(a)
}
