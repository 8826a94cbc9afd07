package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/frostline/freezethaw-cli/internal/model"
)

var statesSeason string

var statesCmd = &cobra.Command{
	Use:   "states",
	Short: "List states with data in a season",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("data"); err != nil {
			return err
		}

		provider, closer, err := newProvider(cmd.Context())
		if err != nil {
			return err
		}
		defer closer()

		states, err := provider.States(cmd.Context(), model.SeasonID(statesSeason))
		if err != nil {
			return err
		}
		if len(states) == 0 {
			fmt.Printf("No states found for season %s.\n", statesSeason)
			return nil
		}
		for _, s := range states {
			fmt.Println(s)
		}
		return nil
	},
}

func init() {
	statesCmd.Flags().StringVar(&statesSeason, "season", "", "season label (required)")
	statesCmd.MarkFlagRequired("season")
	rootCmd.AddCommand(statesCmd)
}
