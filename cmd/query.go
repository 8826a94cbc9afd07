package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/frostline/freezethaw-cli/internal/model"
	"github.com/frostline/freezethaw-cli/internal/query"
	"github.com/frostline/freezethaw-cli/internal/stats"
	"github.com/frostline/freezethaw-cli/internal/trend"
)

var (
	queryState  string
	querySeason string
	queryLat    float64
	queryLon    float64
	queryRadius float64
	queryJSON   bool
)

var titleCaser = cases.Title(language.AmericanEnglish)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Find the nearest monitoring station and its cycle history",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if err := cfg.Validate("query"); err != nil {
			return err
		}

		provider, closer, err := newProvider(ctx)
		if err != nil {
			return err
		}
		defer closer()

		svc := query.NewService(provider, trend.WithRecentWindow(cfg.Query.RecentWindow))

		season := model.SeasonID(querySeason)
		if season == "" {
			seasons, err := provider.AvailableSeasons(ctx)
			if err != nil {
				return eris.Wrap(err, "query: list seasons")
			}
			if len(seasons) == 0 {
				return eris.New("query: no season data found; check data.dir or run import")
			}
			recent := model.RecentSeasons(seasons, 1)
			season = recent[0]
		}

		radius := queryRadius
		if radius == 0 {
			radius = cfg.Query.MaxRadiusKM
		}

		res, err := svc.Run(ctx, query.Request{
			Season:      season,
			State:       queryState,
			Latitude:    queryLat,
			Longitude:   queryLon,
			MaxRadiusKM: radius,
		})
		if err != nil {
			return err
		}

		if queryJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		}

		printResult(res, radius)
		return nil
	},
}

func printResult(res *query.Result, radiusKM float64) {
	if !res.StateFound {
		fmt.Printf("No data for state %q in season %s.\n", queryState, res.Season)
		if len(res.AvailableStates) > 0 {
			fmt.Println("States with data this season:")
			for _, s := range res.AvailableStates {
				fmt.Printf("  %s\n", s)
			}
		}
		return
	}

	if res.Station == nil {
		fmt.Printf("No monitoring station within %.0f km of (%.4f, %.4f) in %s.\n",
			radiusKM, queryLat, queryLon, titleCaser.String(queryState))
		if len(res.StationsInState) > 0 {
			fmt.Println("Stations in this state:")
			for _, s := range res.StationsInState {
				fmt.Printf("  %-20s (%.4f, %.4f)  total=%d damaging=%d\n",
					s.County, s.Latitude, s.Longitude, s.TotalCycles, s.DamagingCycles)
			}
		}
		return
	}

	st := res.Station
	fmt.Printf("Nearest station: %s, %s (%.2f km away)\n", st.County, st.State, res.DistanceKM)
	fmt.Printf("Coordinates:     %.6f, %.6f\n", st.Latitude, st.Longitude)
	fmt.Printf("Season %s:  total cycles %d, damaging cycles %d\n\n", res.Season, st.TotalCycles, st.DamagingCycles)

	if res.Statistics == nil {
		fmt.Println("No historical data for this location.")
		return
	}
	printStatistics(res.Statistics)
}

func printStatistics(s *model.Statistics) {
	fmt.Printf("History: %d season(s)\n\n", s.YearsAvailable)

	fmt.Println("All years:")
	printWindow("total", s.AllTotal)
	printWindow("damaging", s.AllDamaging)

	fmt.Printf("\nLast %d years:\n", s.RecentWindow)
	printWindow("total", s.RecentTotal)
	printWindow("damaging", s.RecentDamaging)

	if s.YearsAvailable >= 2 {
		fmt.Printf("\nDamaging share of total: %.1f%% (all), %.1f%% (recent)\n",
			s.DamageRatioAll(), s.DamageRatioRecent())
	}

	fmt.Println("\nBy season (most recent first):")
	for _, p := range s.Points {
		fmt.Printf("  %s  total=%-4d damaging=%d\n", p.Season, p.TotalCycles, p.DamagingCycles)
	}
}

func printWindow(label string, w model.WindowStats) {
	fmt.Printf("  %-9s avg %.1f, COV %.1f%% (%s variability)\n",
		label, w.Mean, w.COV, stats.Classify(w.COV))
}

func init() {
	queryCmd.Flags().StringVar(&queryState, "state", "", "state name (required)")
	queryCmd.Flags().StringVar(&querySeason, "season", "", "season label, e.g. 2023-2024 (default: most recent)")
	queryCmd.Flags().Float64Var(&queryLat, "lat", 0, "latitude in decimal degrees (required)")
	queryCmd.Flags().Float64Var(&queryLon, "lon", 0, "longitude in decimal degrees (required)")
	queryCmd.Flags().Float64Var(&queryRadius, "radius-km", 0, "max station distance in km (default from config)")
	queryCmd.Flags().BoolVar(&queryJSON, "json", false, "print the raw result as JSON")
	queryCmd.MarkFlagRequired("state")
	queryCmd.MarkFlagRequired("lat")
	queryCmd.MarkFlagRequired("lon")
	rootCmd.AddCommand(queryCmd)
}
