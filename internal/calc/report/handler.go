package report

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	assessment "AusTreeCalc/internal/calc/assessment"
	validate "AusTreeCalc/internal/calc/validate"
)

type Handler struct {
	Limits validate.Limits
}

func (h *Handler) PDF(w http.ResponseWriter, r *http.Request) {
	h.generate(w, r, "application/pdf", "tree-report.pdf", WritePDF)
}

func (h *Handler) XLSX(w http.ResponseWriter, r *http.Request) {
	h.generate(w, r, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "tree-report.xlsx", WriteXLSX)
}

func (h *Handler) generate(w http.ResponseWriter, r *http.Request, contentType, filename string,
	write func(io.Writer, assessment.Assessment) error) {
	var req assessment.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	a, err := assessment.RunWithLimits(req, h.Limits)
	if errors.Is(err, assessment.ErrUnknownSpecies) {
		http.Error(w, "Unknown species", http.StatusBadRequest)
		return
	}
	if err != nil {
		http.Error(w, "Calculation error", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", "attachment; filename=\""+filename+"\"")
	if err := write(w, a); err != nil {
		log.Printf("report %s: %v", filename, err)
		http.Error(w, "Report generation error", http.StatusInternalServerError)
		return
	}
}
