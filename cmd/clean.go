package main

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/listings-cli/internal/export"
	"github.com/sells-group/listings-cli/internal/model"
	"github.com/sells-group/listings-cli/internal/pipeline"
	"github.com/sells-group/listings-cli/internal/source"
	"github.com/sells-group/listings-cli/internal/store"
	"github.com/sells-group/listings-cli/internal/validate"
)

var (
	cleanInDir   string
	cleanOutDir  string
	cleanNoStore bool
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Filter, dedupe, and score raw provider listings",
	Long:  "Loads raw per-state JSON files, removes chains and non-providers, dedupes by phone, address, and domain, scores quality, and writes the clean set.",
	RunE: func(cmd *cobra.Command, args []string) error {
		inDir, outDir := cleanInDir, cleanOutDir
		if inDir == "" {
			inDir = cfg.Clean.RawDir
		}
		if outDir == "" {
			outDir = cfg.Clean.OutDir
		}
		return runPipelineCmd(cmd.Context(), pipelineOpts{
			kind:    model.RunKindClean,
			inDir:   inDir,
			outDir:  outDir,
			prefix:  "all_providers",
			noStore: cleanNoStore,
		})
	},
}

var (
	validateInDir   string
	validateOutDir  string
	validateNoStore bool
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Clean listings and probe every website",
	Long:  "Runs the full cleaning pipeline and then checks each surviving website with a bounded concurrent probe, recording a reachability verdict per record.",
	RunE: func(cmd *cobra.Command, args []string) error {
		inDir, outDir := validateInDir, validateOutDir
		if inDir == "" {
			inDir = cfg.Clean.RawDir
		}
		if outDir == "" {
			outDir = cfg.Validate.OutDir
		}
		return runPipelineCmd(cmd.Context(), pipelineOpts{
			kind:      model.RunKindValidate,
			inDir:     inDir,
			outDir:    outDir,
			prefix:    "validated_providers",
			noStore:   validateNoStore,
			validator: validate.New(cfg.Validate.Concurrency, cfg.Validate.Timeout()),
		})
	},
}

func init() {
	cleanCmd.Flags().StringVar(&cleanInDir, "in", "", "raw data directory (default from config)")
	cleanCmd.Flags().StringVar(&cleanOutDir, "out", "", "output directory (default from config)")
	cleanCmd.Flags().BoolVar(&cleanNoStore, "no-store", false, "skip persisting the run to the database")
	rootCmd.AddCommand(cleanCmd)

	validateCmd.Flags().StringVar(&validateInDir, "in", "", "raw data directory (default from config)")
	validateCmd.Flags().StringVar(&validateOutDir, "out", "", "output directory (default from config)")
	validateCmd.Flags().BoolVar(&validateNoStore, "no-store", false, "skip persisting the run to the database")
	rootCmd.AddCommand(validateCmd)
}

type pipelineOpts struct {
	kind      string
	inDir     string
	outDir    string
	prefix    string
	noStore   bool
	validator *validate.Validator
}

// runPipelineCmd is the shared body of the clean and validate commands: load
// batches, run the pipeline, write the JSON/stats/CSV outputs, and persist
// the run.
func runPipelineCmd(ctx context.Context, opts pipelineOpts) error {
	log := zap.L().With(zap.String("command", opts.kind))

	batches, err := source.LoadDir(opts.inDir)
	if err != nil {
		return err
	}
	if len(batches) == 0 {
		return eris.Errorf("%s: no raw data files in %s", opts.kind, opts.inDir)
	}

	result, err := pipeline.New(cfg.Policy, opts.validator).Run(ctx, batches)
	if err != nil {
		return err
	}

	date := time.Now().Format("2006-01-02")
	jsonPath := filepath.Join(opts.outDir, fmt.Sprintf("%s_%s.json", opts.prefix, date))
	statsPath := filepath.Join(opts.outDir, fmt.Sprintf("%s_stats_%s.json", opts.kind, date))
	csvPath := filepath.Join(opts.outDir, fmt.Sprintf("%s_%s.csv", opts.prefix, date))

	if err := export.WriteJSON(jsonPath, result.Records); err != nil {
		return err
	}
	if err := export.WriteStats(statsPath, result.Stats); err != nil {
		return err
	}
	if err := export.WriteCSV(csvPath, result.Records); err != nil {
		return err
	}
	log.Info("outputs written",
		zap.String("json", jsonPath),
		zap.String("stats", statsPath),
		zap.String("csv", csvPath),
	)

	if opts.noStore {
		return nil
	}

	s, err := store.Open(ctx, cfg.Store)
	if err != nil {
		return err
	}
	defer s.Close() //nolint:errcheck

	if err := s.Migrate(ctx); err != nil {
		return err
	}
	run, err := s.CreateRun(ctx, opts.kind)
	if err != nil {
		return err
	}
	if err := s.SaveRecords(ctx, run.ID, result.Records); err != nil {
		return err
	}
	if err := s.CompleteRun(ctx, run.ID, result.Stats, len(result.Records)); err != nil {
		return err
	}
	log.Info("run persisted", zap.String("run_id", run.ID), zap.Int("records", len(result.Records)))

	return nil
}
