package validate

import (
	"encoding/json"
	"net/http"

	scenario "AusTreeCalc/internal/calc/scenario"
)

type Response struct {
	Issues   []Issue `json:"issues"`
	Blocking bool    `json:"blocking"`
}

type Handler struct {
	Limits Limits
}

func (h *Handler) Check(w http.ResponseWriter, r *http.Request) {
	var input scenario.Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	issues := h.Limits.ValidatePruning(input)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(Response{Issues: issues, Blocking: HasErrors(issues)})
}
