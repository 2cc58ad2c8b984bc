package report

import (
	"fmt"
	"io"

	assessment "AusTreeCalc/internal/calc/assessment"
	curves "AusTreeCalc/internal/calc/curves"
	risk "AusTreeCalc/internal/calc/risk"
	"github.com/xuri/excelize/v2"
)

const (
	sheetInputs  = "Inputs"
	sheetResults = "Results"
	sheetCurves  = "Curves"
)

// WriteXLSX exports the assessment as a workbook with one line chart per curve.
func WriteXLSX(w io.Writer, a assessment.Assessment) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetInputs); err != nil {
		return err
	}
	for _, name := range []string{sheetResults, sheetCurves} {
		if _, err := f.NewSheet(name); err != nil {
			return err
		}
	}

	in := a.Input
	inputs := [][]any{
		{"Field", "Value"},
		{"Label", a.Label},
		{"Site", a.Site},
		{"Species", a.Species.Name},
		{"DBH (cm)", in.DBHCm},
		{"Height (m)", in.HeightM},
		{"Crown diameter (m)", in.CrownDiameterM},
		{"Cavity inner diameter (cm)", in.CavityInnerDiameterCm},
		{"Design wind speed (m/s)", in.DesignWindSpeedMs},
		{"Site factor", in.SiteFactor},
		{"Defect strength factor", a.DefectFactor},
		{"Crown reduction (%)", in.CrownDiameterReductionPercent},
		{"Fullness reduction (%)", in.FullnessReductionPercent},
		{"Genus", a.Genus},
		{"Form factor", a.Biometrics.FormFactor},
		{"Wood density (kg/m3)", a.Biometrics.WoodDensityKgM3},
	}
	if err := writeRows(f, sheetInputs, inputs); err != nil {
		return err
	}

	res := a.Result
	results := [][]any{
		{"Quantity", "Value"},
		{"Safety factor", sfCell(res)},
		{"Rating", string(res.Band)},
		{"Section modulus (m3)", res.SectionModulusM3},
		{"Resisting moment (Nm)", res.ResistingMomentNm},
		{"Dynamic pressure (Pa)", res.DynamicPressurePa},
		{"Sail area (m2)", res.SailAreaM2},
		{"Wind force (N)", res.WindLoadForceN},
		{"Lever arm (m)", res.LeverArmM},
		{"Applied moment (Nm)", res.AppliedMomentNm},
		{"Bending stress (MPa)", res.BendingStressMPa},
		{"Residual wall (% of diameter)", a.ResidualWallPercent},
		{"Stem volume (m3)", a.Biometrics.VolumeM3},
		{"Carbon stored (kg)", a.Biometrics.CarbonKg},
		{"Estimated age (years)", a.Biometrics.EstimatedAgeYears},
		{"SF before pruning", sfCell(a.Pruning.Before)},
		{"SF after pruning", sfCell(a.Pruning.After)},
	}
	if a.WindToFailureMs != nil {
		results = append(results, []any{"Wind to failure (m/s)", *a.WindToFailureMs})
	}
	if v := a.ResidualWallCurve.CriticalResidualPercent; v != nil {
		results = append(results, []any{"Critical residual wall (%)", *v})
	}
	for _, i := range a.Issues {
		results = append(results, []any{fmt.Sprintf("%s: %s", i.Severity, i.Field), i.Message})
	}
	if err := writeRows(f, sheetResults, results); err != nil {
		return err
	}

	series := []struct {
		col   int
		curve curves.Curve
	}{
		{1, a.WindCurve},
		{4, a.ResidualWallCurve.Curve},
		{7, a.CrownReductionCurve},
	}
	for i, s := range series {
		if err := writeCurve(f, s.col, s.curve, fmt.Sprintf("K%d", 2+i*18)); err != nil {
			return err
		}
	}
	for _, name := range []string{sheetInputs, sheetResults} {
		if err := f.SetColWidth(name, "A", "A", 34); err != nil {
			return err
		}
	}
	f.SetActiveSheet(0)
	return f.Write(w)
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

// writeCurve puts x and SF into two columns starting at col and charts them.
func writeCurve(f *excelize.File, col int, c curves.Curve, chartCell string) error {
	head, err := excelize.CoordinatesToCellName(col, 1)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheetCurves, head, &[]any{c.XLabel, "SF"}); err != nil {
		return err
	}
	n := 0
	for i := range c.X {
		if i >= len(c.SF) || c.SF[i] == risk.MaxSafetyFactor {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(col, n+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheetCurves, cell, &[]any{c.X[i], c.SF[i]}); err != nil {
			return err
		}
		n++
	}
	if n < 2 {
		return nil
	}
	xCol, _ := excelize.ColumnNumberToName(col)
	yCol, _ := excelize.ColumnNumberToName(col + 1)
	return f.AddChart(sheetCurves, chartCell, &excelize.Chart{
		Type: excelize.Line,
		Series: []excelize.ChartSeries{{
			Name:       fmt.Sprintf("%s!$%s$1", sheetCurves, yCol),
			Categories: fmt.Sprintf("%s!$%s$2:$%s$%d", sheetCurves, xCol, xCol, n+1),
			Values:     fmt.Sprintf("%s!$%s$2:$%s$%d", sheetCurves, yCol, yCol, n+1),
		}},
	})
}

func sfCell(r risk.Result) any {
	if r.Unloaded {
		return "unbounded"
	}
	return r.SafetyFactor
}
