package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/orbit-research/exoplanet-cli/internal/table"
)

var (
	exportName string
	exportList bool
)

var exportCmd = &cobra.Command{
	Use:   "export [dataset.csv]",
	Short: "Persist a labeled dataset into the configured store",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := newStore(ctx, cfg)
		if err != nil {
			return eris.Wrap(err, "export: open store")
		}
		defer st.Close() //nolint:errcheck

		if err := st.Migrate(ctx); err != nil {
			return eris.Wrap(err, "export: migrate store")
		}

		if exportList {
			infos, err := st.ListDatasets(ctx)
			if err != nil {
				return eris.Wrap(err, "export: list datasets")
			}
			for _, info := range infos {
				fmt.Printf("%s  %-30s %8d rows  %s\n",
					info.ID, info.Name, info.Records, info.CreatedAt.Format("2006-01-02 15:04:05"))
			}
			return nil
		}

		if len(args) == 0 {
			return eris.New("export: dataset CSV path required (or use --list)")
		}

		t, err := table.ReadCSV(args[0])
		if err != nil {
			return eris.Wrap(err, "export: read dataset")
		}
		records := table.ToRecords(t)

		name := exportName
		if name == "" {
			name = args[0]
		}

		id, err := st.SaveDataset(ctx, name, records)
		if err != nil {
			return eris.Wrap(err, "export: save dataset")
		}

		zap.L().Info("dataset exported",
			zap.String("id", id),
			zap.String("name", name),
			zap.Int("records", len(records)),
		)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportName, "name", "", "dataset name (defaults to the file path)")
	exportCmd.Flags().BoolVar(&exportList, "list", false, "list stored datasets and exit")
	rootCmd.AddCommand(exportCmd)
}
