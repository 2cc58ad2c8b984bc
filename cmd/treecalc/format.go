package main

import (
	"fmt"
	"io"

	assessment "AusTreeCalc/internal/calc/assessment"
	risk "AusTreeCalc/internal/calc/risk"
	species "AusTreeCalc/internal/calc/species"
	validate "AusTreeCalc/internal/calc/validate"
)

func printSpecies(w io.Writer) {
	fmt.Fprintf(w, "%-22s %7s %6s  %s\n", "CODE", "fb MPa", "Cd", "NAME")
	for _, p := range species.All() {
		fmt.Fprintf(w, "%-22s %7.1f %6.2f  %s\n", p.Code, p.WoodStrengthMPa, p.DragCoefficient, p.Name)
	}
}

func printIssues(w io.Writer, a assessment.Assessment) {
	var errs, warns []validate.Issue
	for _, i := range a.Issues {
		if i.IsError() {
			errs = append(errs, i)
		} else {
			warns = append(warns, i)
		}
	}
	if len(errs) > 0 {
		fmt.Fprintf(w, "ERRORS (%d):\n", len(errs))
		for _, e := range errs {
			fmt.Fprintf(w, "  [%s] %s\n", e.Field, e.Message)
		}
		fmt.Fprintln(w)
	}
	if len(warns) > 0 {
		fmt.Fprintf(w, "WARNINGS (%d):\n", len(warns))
		for _, e := range warns {
			fmt.Fprintf(w, "  [%s] %s\n", e.Field, e.Message)
		}
		fmt.Fprintln(w)
	}
}

func printResult(w io.Writer, r risk.Result) {
	fmt.Fprintf(w, "Safety factor:        %s (%s)\n", sfText(r), r.Band)
	fmt.Fprintf(w, "Bending stress:       %.2f MPa\n", r.BendingStressMPa)
	fmt.Fprintf(w, "Wind force on crown:  %.2f kN\n", r.WindLoadForceN/1000)
	fmt.Fprintf(w, "Applied moment:       %.1f kNm\n", r.AppliedMomentNm/1000)
	fmt.Fprintf(w, "Resisting moment:     %.1f kNm\n", r.ResistingMomentNm/1000)
}

func printPruning(w io.Writer, a assessment.Assessment) {
	p := a.Pruning
	fmt.Fprintf(w, "\nPruning (crown -%.0f%%, fullness -%.0f%%):\n",
		a.Input.CrownDiameterReductionPercent, a.Input.FullnessReductionPercent)
	fmt.Fprintf(w, "  SF before: %s\n", sfText(p.Before))
	fmt.Fprintf(w, "  SF after:  %s\n", sfText(p.After))
	if p.SafetyFactorGainPercent != 0 {
		fmt.Fprintf(w, "  Gain:      %+.0f%%\n", p.SafetyFactorGainPercent)
	}
}

func printAssessment(w io.Writer, a assessment.Assessment) {
	if a.Label != "" {
		fmt.Fprintf(w, "%s\n", a.Label)
	}
	fmt.Fprintf(w, "Species: %s\n", a.Species.Name)
	fmt.Fprintf(w, "Defect strength factor k_defect: %.2f\n\n", a.DefectFactor)
	printResult(w, a.Result)
	if a.WindToFailureMs != nil {
		fmt.Fprintf(w, "Wind to failure:      %.1f m/s\n", *a.WindToFailureMs)
	}
	fmt.Fprintf(w, "Residual wall:        %.0f%% of diameter\n", a.ResidualWallPercent)
	rw := a.ResidualWallCurve
	if rw.CriticalResidualPercent != nil && rw.CriticalWallThicknessCm != nil {
		fmt.Fprintf(w, "SF = 1 at residual wall of about %.0f%% (%.1f cm each side)\n",
			*rw.CriticalResidualPercent, *rw.CriticalWallThicknessCm)
	}
	bio := a.Biometrics
	fmt.Fprintf(w, "Stem volume:          %.2f m3\n", bio.VolumeM3)
	fmt.Fprintf(w, "Carbon stored:        %.0f kg\n", bio.CarbonKg)
	fmt.Fprintf(w, "Estimated age:        %.0f years", bio.EstimatedAgeYears)
	if !bio.GrowthRateKnown {
		fmt.Fprint(w, " (default growth rate)")
	}
	fmt.Fprintln(w)
	printPruning(w, a)
}
