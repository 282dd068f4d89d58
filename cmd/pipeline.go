package main

import (
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/orbit-research/exoplanet-cli/internal/dataset"
	"github.com/orbit-research/exoplanet-cli/internal/reconcile"
	"github.com/orbit-research/exoplanet-cli/internal/table"
)

var pipelineSkipArchive bool

var pipelineCmd = &cobra.Command{
	Use:   "pipeline",
	Short: "Run the full pipeline: fetch, reconcile, dedupe, write",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		client := newArchiveClient(cfg)

		sources := dataset.CandidateSources()
		sources = append(sources, dataset.FalsePositiveSources()...)
		if !pipelineSkipArchive {
			sources = append(sources, dataset.ArchiveSource())
		}

		results, err := dataset.FetchAll(ctx, client, sources)
		if err != nil {
			return eris.Wrap(err, "pipeline")
		}

		var skipped []string
		for _, res := range results {
			if res.Err != nil {
				skipped = append(skipped, res.Source.Name)
			}
		}

		records, reports := dataset.Combine(results)
		zap.L().Info("combined mission feeds",
			zap.Int("records", len(records)),
			zap.Int("skipped_sources", len(skipped)),
		)

		deduped := reconcile.Dedupe(records)
		zap.L().Info("deduplicated",
			zap.Int("before", len(records)),
			zap.Int("after", len(deduped)),
		)

		if err := os.MkdirAll(cfg.Data.Dir, 0o755); err != nil {
			return eris.Wrapf(err, "pipeline: create data dir %s", cfg.Data.Dir)
		}
		outPath := filepath.Join(cfg.Data.Dir, "full_dataset.csv")
		if err := table.FromRecords(deduped).WriteCSV(outPath); err != nil {
			return eris.Wrap(err, "pipeline: write dataset")
		}

		summary := dataset.Summarize(deduped)
		dataset.LogSummary("full_dataset", summary)

		report := &dataset.Report{
			Summary: summary,
			Sources: reports,
			Skipped: skipped,
		}
		reportPath := filepath.Join(cfg.Data.Dir, "pipeline_report.yaml")
		if err := dataset.WriteReport(report, reportPath); err != nil {
			return eris.Wrap(err, "pipeline: write report")
		}

		zap.L().Info("pipeline complete",
			zap.String("dataset", outPath),
			zap.String("report", reportPath),
		)
		return nil
	},
}

func init() {
	pipelineCmd.Flags().BoolVar(&pipelineSkipArchive, "skip-archive", false, "skip the confirmed-planet archive feed")
	rootCmd.AddCommand(pipelineCmd)
}
