package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/frostline/freezethaw-cli/internal/model"
	"github.com/frostline/freezethaw-cli/internal/query"
)

var (
	stationsSeason string
	stationsState  string
)

var stationsCmd = &cobra.Command{
	Use:   "stations",
	Short: "List monitoring stations in a state for a season",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("data"); err != nil {
			return err
		}

		provider, closer, err := newProvider(cmd.Context())
		if err != nil {
			return err
		}
		defer closer()

		records, err := provider.LoadSeason(cmd.Context(), model.SeasonID(stationsSeason))
		if err != nil {
			return err
		}
		if stationsState != "" {
			records = query.FilterByState(records, stationsState)
		}

		if len(records) == 0 {
			fmt.Println("No stations found.")
			return nil
		}
		for _, r := range records {
			fmt.Printf("%-20s %-15s (%.4f, %.4f)  total=%d damaging=%d\n",
				r.County, r.State, r.Latitude, r.Longitude, r.TotalCycles, r.DamagingCycles)
		}
		return nil
	},
}

func init() {
	stationsCmd.Flags().StringVar(&stationsSeason, "season", "", "season label (required)")
	stationsCmd.Flags().StringVar(&stationsState, "state", "", "restrict to one state")
	stationsCmd.MarkFlagRequired("season")
	rootCmd.AddCommand(stationsCmd)
}
