package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/frostline/freezethaw-cli/internal/model"
	"github.com/frostline/freezethaw-cli/internal/seasondata"
)

var importDir string

type parsedSeason struct {
	season  model.SeasonID
	source  string
	records []model.StationRecord
}

var importCmd = &cobra.Command{
	Use:   "import [files...]",
	Short: "Load season spreadsheets into the snapshot store",
	Long:  "Parses freeze_thaw_cycles_<season>.xlsx/.csv files and replaces each season's rows in the configured sqlite or postgres store.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		files := args
		if len(files) == 0 {
			var err error
			files, err = seasonFilesInDir(importDir)
			if err != nil {
				return err
			}
		}
		if len(files) == 0 {
			return eris.New("import: no season files given or found")
		}

		s, err := newStore(ctx)
		if err != nil {
			return err
		}
		defer s.Close()

		if err := s.Migrate(ctx); err != nil {
			return err
		}

		// Parsing is CPU-bound and per-file independent; store writes stay
		// sequential so each season replacement is one clean transaction.
		parsed := make([]parsedSeason, len(files))
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(4)
		for i, path := range files {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				season, records, err := seasondata.ParseSeasonFile(path)
				if err != nil {
					return eris.Wrapf(err, "import: parse %s", path)
				}
				parsed[i] = parsedSeason{season: season, source: filepath.Base(path), records: records}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		log := zap.L().With(zap.String("command", "import"))
		for _, p := range parsed {
			n, err := s.ReplaceSeason(ctx, p.season, p.source, p.records)
			if err != nil {
				return eris.Wrapf(err, "import: store season %s", p.season)
			}
			log.Info("season imported",
				zap.String("season", string(p.season)),
				zap.String("source", p.source),
				zap.Int64("stations", n),
			)
		}

		return nil
	},
}

// seasonFilesInDir lists the spreadsheet files in dir that follow the
// season naming convention.
func seasonFilesInDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, eris.Wrapf(err, "import: read dir %s", dir)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasPrefix(name, seasondata.FilePrefix) {
			continue
		}
		switch strings.ToLower(filepath.Ext(name)) {
		case ".xlsx", ".csv":
			files = append(files, filepath.Join(dir, name))
		}
	}
	return files, nil
}

func init() {
	importCmd.Flags().StringVar(&importDir, "dir", "data", "directory to scan when no files are given")
	rootCmd.AddCommand(importCmd)
}
