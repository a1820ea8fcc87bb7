package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gerorank/adapters/excel"
	"gerorank/adapters/export"
	"gerorank/adapters/rng"
	"gerorank/app"
	"gerorank/domain/mcda"
	"gerorank/domain/simulation"
	"gerorank/internal/report"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	// Optional .env for local runs; absence is fine
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "gerorank",
		Short: "MCDA ranking of geroscience interventions with Monte Carlo uncertainty analysis",
	}

	rootCmd.AddCommand(
		newAnalyzeCmd(),
		newSchemesCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newAnalyzeCmd() *cobra.Command {
	var (
		input       string
		sheet       string
		outdir      string
		schemeName  string
		trials      int
		jitter      float64
		perturb     float64
		seedScores  int64
		seedWeights int64
		noClamp     bool
		allSchemes  bool
		reportPath  string
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Run the weighted-score, interval and robustness analyses",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			intervalParams := simulation.IntervalParams{
				Trials:      trials,
				Jitter:      jitter,
				Seed:        seedScores,
				ClampScores: !noClamp,
			}
			robustnessParams := simulation.RobustnessParams{
				Trials:       trials,
				Perturbation: perturb,
				Seed:         seedWeights,
			}
			if err := intervalParams.Validate(); err != nil {
				return err
			}
			if err := robustnessParams.Validate(); err != nil {
				return err
			}

			reader := excel.NewScoreReader(input, sheet)
			table, err := reader.ResolveScores(ctx)
			if err != nil {
				return err
			}
			headerScheme, err := reader.HeaderScheme(ctx)
			if err != nil {
				return err
			}
			schemes, err := buildSchemeTable(headerScheme)
			if err != nil {
				return err
			}

			fmt.Printf("Loaded %d interventions from %s\n", table.Len(), input)
			fmt.Printf("Domain columns: %v\n", reader.DomainColumns())
			fmt.Printf("Trials: %d, jitter: +-%g, weight perturbation: +-%g%%\n",
				trials, jitter, perturb*100)

			if err := os.MkdirAll(outdir, 0o755); err != nil {
				return fmt.Errorf("create output dir: %w", err)
			}

			service := app.NewAnalysisService(rng.NewDeterministicAdapter(), nil)
			req := app.AnalysisRequest{
				Table:            table,
				Schemes:          schemes,
				Scheme:           schemeName,
				IntervalParams:   intervalParams,
				RobustnessParams: robustnessParams,
			}

			var run *simulation.AnalysisRun
			if allSchemes {
				runs, err := service.RunAllSchemes(ctx, req)
				if err != nil {
					return err
				}
				for _, r := range runs {
					fmt.Printf("Scheme %-20s fingerprint %.12s... (%d ms)\n", r.Scheme, r.Fingerprint, r.RuntimeMs)
					if r.Scheme == schemeName {
						run = r
					}
				}
				if run == nil {
					run = runs[0]
				}
			} else {
				run, err = service.Run(ctx, req)
				if err != nil {
					return err
				}
			}

			intervalPath := filepath.Join(outdir, export.IntervalFileName)
			if err := export.WriteIntervalCSV(intervalPath, run.Intervals); err != nil {
				return err
			}
			robustnessPath := filepath.Join(outdir, export.RobustnessFileName)
			if err := export.WriteRobustnessCSV(robustnessPath, run.Robustness); err != nil {
				return err
			}
			enrichedPath := filepath.Join(outdir, export.EnrichedFileName)
			if err := export.WriteEnrichedWorkbook(enrichedPath, table, schemes); err != nil {
				return err
			}

			printTopIntervals(run.Intervals, 5)
			printTopRobustness(run.Robustness, 5)

			if reportPath != "" {
				md := report.NewRenderer(5).Markdown(run)
				if err := os.WriteFile(reportPath, []byte(md), 0o644); err != nil {
					return fmt.Errorf("write report: %w", err)
				}
				fmt.Printf("Wrote report: %s\n", reportPath)
			}

			fmt.Printf("\nGenerated files in %s:\n", outdir)
			fmt.Printf("  1. %s\n", export.EnrichedFileName)
			fmt.Printf("  2. %s\n", export.IntervalFileName)
			fmt.Printf("  3. %s\n", export.RobustnessFileName)
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "Intervention_scores.xlsx", "input workbook or CSV")
	cmd.Flags().StringVarP(&sheet, "sheet", "s", "Scoring", "sheet name for workbook input")
	cmd.Flags().StringVarP(&outdir, "outdir", "o", ".", "output directory")
	cmd.Flags().StringVar(&schemeName, "scheme", mcda.SchemeBaseline, "target weighting scheme")
	cmd.Flags().IntVarP(&trials, "trials", "r", simulation.DefaultTrials, "Monte Carlo trials for both analyses")
	cmd.Flags().Float64Var(&jitter, "noise", simulation.DefaultJitter, "score jitter half-width")
	cmd.Flags().Float64Var(&perturb, "wpert", simulation.DefaultPerturbation, "weight perturbation fraction")
	cmd.Flags().Int64Var(&seedScores, "seed-scores", simulation.DefaultScoreSeed, "seed for score jitter")
	cmd.Flags().Int64Var(&seedWeights, "seed-weights", simulation.DefaultWeightSeed, "seed for weight perturbation")
	cmd.Flags().BoolVar(&noClamp, "no-clamp", false, "leave jittered scores unclamped")
	cmd.Flags().BoolVar(&allSchemes, "all-schemes", false, "analyze every scheme, not just the target")
	cmd.Flags().StringVar(&reportPath, "report", "", "optional markdown report path")
	return cmd
}

func newSchemesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schemes",
		Short: "List builtin weighting schemes",
		RunE: func(cmd *cobra.Command, args []string) error {
			schemes := mcda.BuiltinSchemes()
			for _, name := range schemes.Names() {
				s, err := schemes.Lookup(name)
				if err != nil {
					return err
				}
				fmt.Printf("%-20s", name)
				for i, d := range mcda.AllDomains {
					fmt.Printf(" %s=%.2f", d, s.Weights[i])
				}
				fmt.Println()
			}
			return nil
		},
	}
}

// buildSchemeTable registers the header-derived baseline first, then
// the remaining builtin stakeholder schemes.
func buildSchemeTable(header mcda.WeightScheme) (*mcda.SchemeTable, error) {
	schemes, err := mcda.NewSchemeTable([]mcda.WeightScheme{header})
	if err != nil {
		return nil, err
	}
	builtins := mcda.BuiltinSchemes()
	for _, name := range builtins.Names() {
		if name == header.Name {
			continue
		}
		s, err := builtins.Lookup(name)
		if err != nil {
			return nil, err
		}
		if err := schemes.Add(s); err != nil {
			return nil, err
		}
	}
	return schemes, nil
}

func printTopIntervals(summaries []simulation.IntervalSummary, n int) {
	rows := make([]simulation.IntervalSummary, len(summaries))
	copy(rows, summaries)
	sort.SliceStable(rows, func(a, b int) bool { return rows[a].Mean > rows[b].Mean })
	fmt.Printf("\nTop %d interventions (mean weighted score):\n", n)
	for i, s := range rows {
		if i >= n {
			break
		}
		fmt.Printf("  %d. %s: %.2f [%.2f, %.2f]\n", i+1, s.Intervention, s.Mean, s.P2_5, s.P97_5)
	}
}

func printTopRobustness(summaries []simulation.RobustnessSummary, n int) {
	rows := make([]simulation.RobustnessSummary, len(summaries))
	copy(rows, summaries)
	sort.SliceStable(rows, func(a, b int) bool {
		if rows[a].MeanRank != rows[b].MeanRank {
			return rows[a].MeanRank < rows[b].MeanRank
		}
		return rows[a].BaseWeightedScore > rows[b].BaseWeightedScore
	})
	fmt.Printf("\nTop %d most stable rankings:\n", n)
	for i, s := range rows {
		if i >= n {
			break
		}
		fmt.Printf("  %d. %s: rank %.1f [%.0f, %.0f], P(top-1)=%.1f%%, P(top-3)=%.1f%%\n",
			i+1, s.Intervention, s.MeanRank, s.RankP2_5, s.RankP97_5, s.PTop1*100, s.PTop3*100)
	}
}
