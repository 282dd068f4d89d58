package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/orbit-research/exoplanet-cli/internal/dataset"
)

var (
	fetchListTables bool
	fetchKind       string
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download mission tables from the NASA Exoplanet Archive",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		client := newArchiveClient(cfg)

		if fetchListTables {
			names, err := client.ListTables(ctx)
			if err != nil {
				return eris.Wrap(err, "fetch: list tables")
			}
			for _, name := range names {
				fmt.Println(name)
			}
			return nil
		}

		sources, err := sourcesForKind(fetchKind)
		if err != nil {
			return err
		}

		if err := os.MkdirAll(cfg.Data.Dir, 0o755); err != nil {
			return eris.Wrapf(err, "fetch: create data dir %s", cfg.Data.Dir)
		}

		results, err := dataset.FetchAll(ctx, client, sources)
		if err != nil {
			return eris.Wrap(err, "fetch")
		}

		for _, res := range results {
			if res.Err != nil {
				continue
			}
			path := filepath.Join(cfg.Data.Dir, res.Source.Name+".csv")
			if err := res.Table.WriteCSV(path); err != nil {
				return eris.Wrapf(err, "fetch: save %s", res.Source.Name)
			}
			zap.L().Info("saved raw table",
				zap.String("source", res.Source.Name),
				zap.String("path", path),
				zap.Int("rows", res.Table.Len()),
			)
		}
		return nil
	},
}

// sourcesForKind resolves the --kind flag into the source list, in merge order.
func sourcesForKind(kind string) ([]dataset.Source, error) {
	switch kind {
	case "candidates":
		return dataset.CandidateSources(), nil
	case "false-positives":
		return dataset.FalsePositiveSources(), nil
	case "confirmed":
		return []dataset.Source{dataset.ArchiveSource()}, nil
	case "all":
		sources := dataset.CandidateSources()
		sources = append(sources, dataset.FalsePositiveSources()...)
		sources = append(sources, dataset.ArchiveSource())
		return sources, nil
	default:
		return nil, eris.Errorf("fetch: unknown kind %q (valid: candidates, false-positives, confirmed, all)", kind)
	}
}

func init() {
	fetchCmd.Flags().BoolVar(&fetchListTables, "list-tables", false, "list available archive tables and exit")
	fetchCmd.Flags().StringVar(&fetchKind, "kind", "all", "which feeds to download: candidates, false-positives, confirmed, all")
	rootCmd.AddCommand(fetchCmd)
}
