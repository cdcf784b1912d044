package main

import (
	"fmt"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/listings-cli/internal/export"
	"github.com/sells-group/listings-cli/internal/model"
	"github.com/sells-group/listings-cli/internal/store"
)

var (
	exportRunID  string
	exportFormat string
	exportOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a stored run to CSV or XLSX",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		s, err := store.Open(ctx, cfg.Store)
		if err != nil {
			return err
		}
		defer s.Close() //nolint:errcheck

		var run *model.Run
		if exportRunID != "" {
			run, err = s.GetRun(ctx, exportRunID)
		} else {
			run, err = s.LatestRun(ctx)
		}
		if err != nil {
			if eris.Is(err, store.ErrNotFound) {
				return eris.New("export: no completed runs found")
			}
			return err
		}

		records, err := s.ListRecords(ctx, run.ID, 0)
		if err != nil {
			return err
		}

		out := exportOut
		if out == "" {
			out = fmt.Sprintf("providers_%s.%s", time.Now().Format("2006-01-02"), exportFormat)
		}

		switch exportFormat {
		case "csv":
			err = export.WriteCSV(out, records)
		case "xlsx":
			err = export.WriteXLSX(out, records)
		default:
			return eris.Errorf("export: unknown format %q (want csv or xlsx)", exportFormat)
		}
		if err != nil {
			return err
		}

		zap.L().Info("export complete",
			zap.String("run_id", run.ID),
			zap.Int("records", len(records)),
			zap.String("file", out),
		)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportRunID, "run", "", "run id to export (default: latest completed run)")
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "output format: csv or xlsx")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "output file path")
	rootCmd.AddCommand(exportCmd)
}
