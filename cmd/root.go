package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/saumyabhardwaj17/AM10-LBS-Group6-MAM26/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "civicdash",
	Short: "Election and energy dashboard backend",
	Long:  "Derives county vote margins from tabular results, joins presidential cycles, reshapes global electricity data, and serves chart specifications over HTTP.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
