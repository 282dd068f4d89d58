package main

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/orbit-research/exoplanet-cli/internal/dataset"
	"github.com/orbit-research/exoplanet-cli/internal/model"
	"github.com/orbit-research/exoplanet-cli/internal/reconcile"
	"github.com/orbit-research/exoplanet-cli/internal/table"
)

var (
	outputCandidatesPath string
	outputFalsePosPath   string
	outputPath           string
	outputReportPath     string
	outputThreshold      float64
)

var outputCmd = &cobra.Command{
	Use:   "output <predictions.csv|xlsx>",
	Short: "Merge prediction scores into the canonical record set",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		predictions, err := table.ReadPredictions(args[0])
		if err != nil {
			return eris.Wrap(err, "output: load predictions")
		}
		zap.L().Info("loaded predictions",
			zap.Int("count", len(predictions)),
			zap.String("path", args[0]),
		)

		records := loadArchivalRecords(outputCandidatesPath)
		records = append(records, loadArchivalRecords(outputFalsePosPath)...)
		zap.L().Info("loaded archival records", zap.Int("count", len(records)))

		threshold := cfg.Output.Threshold
		if cmd.Flags().Changed("threshold") {
			threshold = outputThreshold
		}

		labeled, report := reconcile.Match(predictions, records, threshold)

		if err := table.FromRecords(labeled).WriteCSV(outputPath); err != nil {
			return eris.Wrap(err, "output: write labeled table")
		}

		zap.L().Info("prediction matching complete",
			zap.Float64("threshold", threshold),
			zap.Int("matched", report.Matched),
			zap.Int("unmatched", report.Unmatched),
		)
		if len(report.UnmatchedNames) > 0 {
			zap.L().Warn("predictions without archival counterpart",
				zap.Strings("names", report.UnmatchedNames))
		}

		summary := dataset.Summarize(labeled)
		dataset.LogSummary("final_output", summary)

		if outputReportPath != "" {
			run := &dataset.Report{Summary: summary, Match: report}
			if err := dataset.WriteReport(run, outputReportPath); err != nil {
				return eris.Wrap(err, "output: write report")
			}
		}
		return nil
	},
}

// loadArchivalRecords reads a canonical-format table, treating a missing
// file as zero rows rather than a fatal condition.
func loadArchivalRecords(path string) []model.CanonicalRecord {
	if _, err := os.Stat(path); err != nil {
		zap.L().Warn("archival table not found", zap.String("path", path))
		return nil
	}
	t, err := table.ReadCSV(path)
	if err != nil {
		zap.L().Warn("archival table unreadable, skipping",
			zap.String("path", path),
			zap.Error(err),
		)
		return nil
	}
	return table.ToRecords(t)
}

func init() {
	outputCmd.Flags().StringVarP(&outputCandidatesPath, "candidates", "c", "data/all_candidates_standard.csv", "candidates standard table")
	outputCmd.Flags().StringVarP(&outputFalsePosPath, "false-positives", "f", "data/all_false_positives_standard.csv", "false positives standard table")
	outputCmd.Flags().StringVarP(&outputPath, "output", "o", "data/final_output.csv", "labeled output CSV path")
	outputCmd.Flags().StringVar(&outputReportPath, "report", "", "optional YAML run report path")
	outputCmd.Flags().Float64VarP(&outputThreshold, "threshold", "t", 0.5, "probability threshold for CONFIRMED")
	rootCmd.AddCommand(outputCmd)
}
