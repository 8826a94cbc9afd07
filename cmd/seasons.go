package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/frostline/freezethaw-cli/internal/model"
)

var seasonsRecent int

var seasonsCmd = &cobra.Command{
	Use:   "seasons",
	Short: "List seasons with available data, most recent first",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("data"); err != nil {
			return err
		}

		provider, closer, err := newProvider(cmd.Context())
		if err != nil {
			return err
		}
		defer closer()

		seasons, err := provider.AvailableSeasons(cmd.Context())
		if err != nil {
			return err
		}
		seasons = model.RecentSeasons(seasons, seasonsRecent)

		if len(seasons) == 0 {
			fmt.Println("No season data found.")
			return nil
		}
		for _, s := range seasons {
			fmt.Println(s)
		}
		return nil
	},
}

func init() {
	seasonsCmd.Flags().IntVar(&seasonsRecent, "recent", 0, "show only the N most recent seasons")
	rootCmd.AddCommand(seasonsCmd)
}
