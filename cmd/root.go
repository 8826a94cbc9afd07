package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/frostline/freezethaw-cli/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "freezethaw",
	Short: "Freeze-thaw cycle lookup for concrete durability assessment",
	Long:  "Finds the nearest freeze-thaw monitoring station to a coordinate and summarizes that location's cycle history across seasons.",
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
