package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	assessment "AusTreeCalc/internal/calc/assessment"
	report "AusTreeCalc/internal/calc/report"
	risk "AusTreeCalc/internal/calc/risk"
)

type calcFlags struct {
	species    string
	dbh        float64
	height     float64
	crown      float64
	wind       float64
	cavity     float64
	fullness   float64
	siteFactor float64
	reduction  float64
	thinning   float64
}

var errBlocking = errors.New("inputs have validation errors")

func (f calcFlags) request(withFullness bool) assessment.Request {
	req := assessment.Request{Species: f.species}
	req.DBHCm = f.dbh
	req.HeightM = f.height
	req.CrownDiameterM = f.crown
	req.DesignWindSpeedMs = f.wind
	req.CavityInnerDiameterCm = f.cavity
	req.SiteFactor = f.siteFactor
	req.CrownDiameterReductionPercent = f.reduction
	req.FullnessReductionPercent = f.thinning
	if withFullness {
		v := f.fullness
		req.CrownFullness = &v
	}
	return req
}

func runCalc(w io.Writer, f calcFlags, withFullness bool) error {
	a, err := assessment.Run(f.request(withFullness))
	if err != nil {
		return err
	}
	printIssues(w, a)
	if a.Blocking {
		return errBlocking
	}
	printResult(w, a.Result)
	if f.reduction > 0 || f.thinning > 0 {
		printPruning(w, a)
	}
	return nil
}

// loadAssessment reads a request file and evaluates it.
func loadAssessment(path string) (assessment.Assessment, error) {
	file, err := os.Open(path)
	if err != nil {
		return assessment.Assessment{}, fmt.Errorf("open request: %w", err)
	}
	defer file.Close()

	req, err := assessment.Decode(file)
	if err != nil {
		return assessment.Assessment{}, err
	}
	return assessment.Run(req)
}

func runAssess(w io.Writer, path string) error {
	a, err := loadAssessment(path)
	if err != nil {
		return err
	}
	printIssues(w, a)
	if a.Blocking {
		return errBlocking
	}
	printAssessment(w, a)
	return nil
}

func runReport(w io.Writer, path, pdfPath, xlsxPath string) error {
	a, err := loadAssessment(path)
	if err != nil {
		return err
	}
	printIssues(w, a)
	if a.Blocking {
		return errBlocking
	}

	if err := writeFile(pdfPath, a, report.WritePDF); err != nil {
		return err
	}
	fmt.Fprintf(w, "PDF report written to %s\n", pdfPath)
	if xlsxPath != "" {
		if err := writeFile(xlsxPath, a, report.WriteXLSX); err != nil {
			return err
		}
		fmt.Fprintf(w, "Workbook written to %s\n", xlsxPath)
	}
	return nil
}

func writeFile(path string, a assessment.Assessment, write func(io.Writer, assessment.Assessment) error) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(out, a); err != nil {
		out.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return out.Close()
}

func sfText(r risk.Result) string {
	if r.Unloaded {
		return "unbounded (no wind load)"
	}
	return fmt.Sprintf("%.2f", r.SafetyFactor)
}
