package main

import (
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/orbit-research/exoplanet-cli/internal/dataset"
	"github.com/orbit-research/exoplanet-cli/internal/model"
	"github.com/orbit-research/exoplanet-cli/internal/reconcile"
	"github.com/orbit-research/exoplanet-cli/internal/table"
)

var convertBalanced bool

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Standardize downloaded mission tables into the canonical schema",
	RunE: func(cmd *cobra.Command, _ []string) error {
		candidates, err := convertGroup(dataset.CandidateSources(), "all_candidates_standard.csv")
		if err != nil {
			return err
		}
		falsePositives, err := convertGroup(dataset.FalsePositiveSources(), "all_false_positives_standard.csv")
		if err != nil {
			return err
		}
		if len(candidates) == 0 && len(falsePositives) == 0 {
			return eris.New("convert: no standardized data produced from any mission table")
		}

		if convertBalanced {
			all := append(append([]model.CanonicalRecord{}, candidates...), falsePositives...)
			deduped := reconcile.Dedupe(all)
			balanced := dataset.Balanced(deduped, cfg.Output.BalancedFalsePositives, cfg.Output.Seed)

			path := filepath.Join(cfg.Data.Dir, "balanced_training.csv")
			if err := table.FromRecords(balanced).WriteCSV(path); err != nil {
				return eris.Wrap(err, "convert: write balanced set")
			}
			dataset.LogSummary("balanced_training", dataset.Summarize(balanced))
		}
		return nil
	},
}

// convertGroup standardizes each raw per-mission CSV in the group and writes
// the per-mission and combined standard tables. A missing raw file is
// skipped, not fatal: mission downloads fail independently.
func convertGroup(sources []dataset.Source, combinedName string) ([]model.CanonicalRecord, error) {
	var combined []model.CanonicalRecord

	for _, src := range sources {
		rawPath := filepath.Join(cfg.Data.Dir, src.Name+".csv")
		if _, err := os.Stat(rawPath); err != nil {
			zap.L().Warn("raw table not found, skipping", zap.String("path", rawPath))
			continue
		}

		t, err := table.ReadCSV(rawPath)
		if err != nil {
			return nil, eris.Wrapf(err, "convert: read %s", rawPath)
		}

		records, report, err := reconcile.MapTable(t, src.Mission)
		if err != nil {
			zap.L().Warn("mission table could not be mapped, skipping",
				zap.String("source", src.Name),
				zap.Error(err),
			)
			continue
		}
		if len(report.Unmapped) > 0 {
			zap.L().Warn("unrecognized dispositions passed through",
				zap.String("source", src.Name),
				zap.Any("codes", report.Unmapped),
			)
		}

		stdPath := filepath.Join(cfg.Data.Dir, src.Name+"_standard.csv")
		if err := table.FromRecords(records).WriteCSV(stdPath); err != nil {
			return nil, eris.Wrapf(err, "convert: write %s", stdPath)
		}
		zap.L().Info("standardized mission table",
			zap.String("source", src.Name),
			zap.Int("rows", len(records)),
			zap.String("path", stdPath),
		)

		combined = append(combined, records...)
	}

	if len(combined) == 0 {
		return nil, nil
	}

	combinedPath := filepath.Join(cfg.Data.Dir, combinedName)
	if err := table.FromRecords(combined).WriteCSV(combinedPath); err != nil {
		return nil, eris.Wrapf(err, "convert: write %s", combinedPath)
	}
	dataset.LogSummary(combinedName, dataset.Summarize(combined))

	return combined, nil
}

func init() {
	convertCmd.Flags().BoolVar(&convertBalanced, "balanced", false, "also write a balanced confirmed/false-positive training set")
	rootCmd.AddCommand(convertCmd)
}
