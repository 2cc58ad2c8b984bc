package report

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	assessment "AusTreeCalc/internal/calc/assessment"
	curves "AusTreeCalc/internal/calc/curves"
	risk "AusTreeCalc/internal/calc/risk"
	"github.com/phpdave11/gofpdf"
)

const (
	pageBottom  = 280.0
	chartHeight = 60.0
	labelWidth  = 80.0
)

type pdfWriter struct {
	pdf *gofpdf.Fpdf
	tr  func(string) string
}

// WritePDF renders the tree stability report as an A4 PDF.
func WritePDF(w io.Writer, a assessment.Assessment) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	p := &pdfWriter{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
	pdf.SetTitle(title(a), true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, p.tr(title(a)))
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "", 9)
	pdf.Cell(0, 5, fmt.Sprintf("Generated %s", time.Now().Format("2006-01-02")))
	pdf.Ln(8)

	p.heading("Tree and site details")
	p.row("Species", a.Species.Name)
	if a.Site != "" {
		p.row("Location", a.Site)
	}

	p.heading("Key inputs")
	in := a.Input
	p.row("DBH (cm)", num(in.DBHCm, 1))
	p.row("Height (m)", num(in.HeightM, 1))
	p.row("Crown diameter (m)", num(in.CrownDiameterM, 1))
	if in.CavityInnerDiameterCm > 0 {
		p.row("Cavity inner diameter (cm)", num(in.CavityInnerDiameterCm, 1))
	} else {
		p.row("Cavity inner diameter (cm)", "none")
	}
	p.row("Design wind speed (m/s)", num(in.DesignWindSpeedMs, 1))
	p.row("Site factor", num(in.SiteFactor, 2))

	if len(a.Issues) > 0 {
		p.heading("Input checks")
		for _, i := range a.Issues {
			p.bullet(fmt.Sprintf("[%s] %s: %s", i.Severity, i.Field, i.Message))
		}
	}

	p.heading("Observed structural defects / decay indicators")
	labels := a.Defects.Labels()
	if len(labels) == 0 {
		p.para("No specific structural defects selected.")
	}
	for _, l := range labels {
		p.bullet(l)
	}
	p.row("Defect strength factor k_defect", num(a.DefectFactor, 2))

	p.heading("Numerical results")
	res := a.Result
	p.row("Safety factor at design wind (SF)", sf(res))
	p.row("Rating", string(res.Band))
	p.row("Bending stress at stem base (MPa)", num(res.BendingStressMPa, 2))
	p.row("Applied moment (kNm)", num(res.AppliedMomentNm/1000, 1))
	p.row("Resisting moment (kNm)", num(res.ResistingMomentNm/1000, 1))
	p.row("Wind force on crown (kN)", num(res.WindLoadForceN/1000, 2))
	if a.WindToFailureMs != nil {
		p.row("Estimated wind-to-failure, SF = 1 (m/s)", num(*a.WindToFailureMs, 1))
	}

	p.heading("Decay / residual wall")
	p.para(fmt.Sprintf("Current residual wall (from DBH and cavity): %.0f%% of diameter.", a.ResidualWallPercent))
	rw := a.ResidualWallCurve
	if rw.CriticalResidualPercent != nil && rw.CriticalWallThicknessCm != nil {
		p.para(fmt.Sprintf("At the design wind speed SF reaches 1 when the residual wall is about %.0f%% of diameter (about %.1f cm on each side).",
			*rw.CriticalResidualPercent, *rw.CriticalWallThicknessCm))
	}

	p.heading("Volume, carbon and age")
	bio := a.Biometrics
	p.row("Stem volume (m3)", num(bio.VolumeM3, 2))
	p.row("Carbon stored (kg)", num(bio.CarbonKg, 0))
	age := num(bio.EstimatedAgeYears, 0)
	if !bio.GrowthRateKnown {
		age += " (default growth rate)"
	}
	p.row("Estimated age (years)", age)

	p.heading("Pruning scenario")
	pr := a.Pruning
	p.row("Crown reduction / thinning (%)", fmt.Sprintf("%.0f / %.0f", in.CrownDiameterReductionPercent, in.FullnessReductionPercent))
	p.row("Crown diameter after (m)", num(pr.CrownDiameterAfterM, 1))
	p.row("SF before / after", fmt.Sprintf("%s / %s", sf(pr.Before), sf(pr.After)))

	p.heading("Graphs")
	p.chart("Safety factor versus wind speed", a.WindCurve)
	p.chart("Safety factor versus residual wall thickness", rw.Curve)
	p.chart("Safety factor versus crown reduction", a.CrownReductionCurve)

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return pdf.Output(w)
}

func title(a assessment.Assessment) string {
	if a.Label != "" {
		return a.Label
	}
	return "Tree stability report"
}

func (p *pdfWriter) ensureSpace(h float64) {
	if p.pdf.GetY()+h > pageBottom {
		p.pdf.AddPage()
	}
}

func (p *pdfWriter) heading(s string) {
	p.ensureSpace(20)
	p.pdf.Ln(3)
	p.pdf.SetFont("Helvetica", "B", 12)
	p.pdf.Cell(0, 7, p.tr(s))
	p.pdf.Ln(8)
	p.pdf.SetFont("Helvetica", "", 10)
}

func (p *pdfWriter) row(label, value string) {
	p.ensureSpace(6)
	p.pdf.CellFormat(labelWidth, 6, p.tr(label), "1", 0, "L", false, 0, "")
	p.pdf.CellFormat(0, 6, p.tr(value), "1", 1, "L", false, 0, "")
}

func (p *pdfWriter) para(s string) {
	p.ensureSpace(6)
	p.pdf.MultiCell(0, 5, p.tr(s), "", "L", false)
}

func (p *pdfWriter) bullet(s string) {
	p.para("- " + s)
}

// chart draws a line plot of SF with guides at SF 1 and 1.5.
func (p *pdfWriter) chart(caption string, c curves.Curve) {
	xs, ys := finite(c)
	if len(xs) < 2 || xs[len(xs)-1] <= xs[0] {
		return
	}
	p.ensureSpace(chartHeight + 20)
	pdf := p.pdf
	pdf.SetFont("Helvetica", "", 9)
	pdf.Cell(0, 5, p.tr(caption))
	pdf.Ln(6)

	left, _, right, _ := pdf.GetMargins()
	pageW, _ := pdf.GetPageSize()
	x0 := left + 10
	w := pageW - right - x0
	y0 := pdf.GetY()
	h := chartHeight

	xMin, xMax := xs[0], xs[len(xs)-1]
	yMax := risk.SFTarget
	for _, y := range ys {
		yMax = math.Max(yMax, y)
	}
	yMax *= 1.1
	px := func(x float64) float64 { return x0 + (x-xMin)/(xMax-xMin)*w }
	py := func(y float64) float64 { return y0 + h - y/yMax*h }

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.2)
	pdf.Rect(x0, y0, w, h, "D")

	pdf.SetDrawColor(150, 150, 150)
	pdf.SetDashPattern([]float64{1, 1}, 0)
	for _, level := range []float64{risk.SFFailure, risk.SFTarget} {
		pdf.Line(x0, py(level), x0+w, py(level))
		pdf.Text(x0-8, py(level)+1, fmt.Sprintf("%.1f", level))
	}
	pdf.SetDashPattern([]float64{}, 0)

	pdf.SetDrawColor(20, 90, 160)
	pdf.SetFillColor(20, 90, 160)
	pdf.SetLineWidth(0.4)
	for i := range xs {
		if i > 0 {
			pdf.Line(px(xs[i-1]), py(ys[i-1]), px(xs[i]), py(ys[i]))
		}
		pdf.Circle(px(xs[i]), py(ys[i]), 0.7, "F")
	}
	pdf.SetLineWidth(0.2)
	pdf.SetDrawColor(0, 0, 0)

	pdf.SetFontSize(8)
	pdf.Text(x0, y0+h+4, fmt.Sprintf("%.0f", xMin))
	pdf.Text(x0+w-6, y0+h+4, fmt.Sprintf("%.0f", xMax))
	pdf.Text(x0+w/2-15, y0+h+4, p.tr(c.XLabel))
	pdf.Text(x0-8, y0+3, fmt.Sprintf("%.1f", yMax))
	pdf.SetY(y0 + h + 8)
	pdf.SetFontSize(10)
}

// finite drops unloaded points, which have no meaningful SF to plot.
func finite(c curves.Curve) (xs, ys []float64) {
	for i := range c.X {
		if i >= len(c.SF) || c.SF[i] == risk.MaxSafetyFactor {
			continue
		}
		xs = append(xs, c.X[i])
		ys = append(ys, c.SF[i])
	}
	return xs, ys
}

func sf(r risk.Result) string {
	if r.Unloaded {
		return "unbounded (no wind load)"
	}
	return num(r.SafetyFactor, 2)
}

func num(v float64, prec int) string {
	s := fmt.Sprintf("%.*f", prec, v)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	}
	return s
}
