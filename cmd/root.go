package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/listings-cli/internal/config"
)

var (
	cfg        *config.Config
	policyFile string
)

var rootCmd = &cobra.Command{
	Use:   "listings-cli",
	Short: "Business listing acquisition and cleaning pipeline",
	Long:  "Pulls provider listings from Outscraper, filters out chains and junk, dedupes, scores quality, validates websites, and serves the results.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if policyFile != "" {
			p, err := config.LoadPolicyFile(policyFile)
			if err != nil {
				return fmt.Errorf("load policy: %w", err)
			}
			cfg.Policy = *p
		}

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&policyFile, "policy", "", "YAML file overriding the classification keyword lists")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
