package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "treecalc",
		Short:        "Tree stability calculator: wind load safety factor and pruning what-ifs",
		SilenceUsage: true,
	}
	root.AddCommand(speciesCmd())
	root.AddCommand(calcCmd())
	root.AddCommand(assessCmd())
	root.AddCommand(reportCmd())
	return root
}

func speciesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "species",
		Short: "List the species presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			printSpecies(cmd.OutOrStdout())
			return nil
		},
	}
}

func calcCmd() *cobra.Command {
	var f calcFlags

	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Compute the safety factor for one tree from flags",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCalc(cmd.OutOrStdout(), f, cmd.Flags().Changed("fullness"))
		},
	}

	cmd.Flags().StringVarP(&f.species, "species", "s", "euc_typical", "species preset code")
	cmd.Flags().Float64Var(&f.dbh, "dbh", 0, "stem diameter at breast height (cm)")
	cmd.Flags().Float64Var(&f.height, "height", 0, "tree height (m)")
	cmd.Flags().Float64Var(&f.crown, "crown", 0, "crown diameter (m)")
	cmd.Flags().Float64Var(&f.wind, "wind", 0, "design wind speed (m/s)")
	cmd.Flags().Float64Var(&f.cavity, "cavity", 0, "cavity inner diameter (cm), 0 for a solid stem")
	cmd.Flags().Float64Var(&f.fullness, "fullness", 0, "crown fullness override (0-1)")
	cmd.Flags().Float64Var(&f.siteFactor, "site-factor", 1, "exposure / topography factor")
	cmd.Flags().Float64Var(&f.reduction, "reduce", 0, "crown diameter reduction to model (%)")
	cmd.Flags().Float64Var(&f.thinning, "thin", 0, "crown fullness reduction to model (%)")
	for _, name := range []string{"dbh", "height", "crown", "wind"} {
		cmd.MarkFlagRequired(name)
	}
	return cmd
}

func assessCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "assess",
		Short: "Run the full assessment for a tree described in a YAML file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAssess(cmd.OutOrStdout(), file)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "tree request file (YAML or JSON)")
	cmd.MarkFlagRequired("file")
	return cmd
}

func reportCmd() *cobra.Command {
	var file, out, xlsx string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Write a PDF (and optionally XLSX) report for a tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runReport(cmd.OutOrStdout(), file, out, xlsx)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "tree request file (YAML or JSON)")
	cmd.Flags().StringVarP(&out, "out", "o", "tree-report.pdf", "PDF output path")
	cmd.Flags().StringVar(&xlsx, "xlsx", "", "also write an XLSX workbook to this path")
	cmd.MarkFlagRequired("file")
	return cmd
}
