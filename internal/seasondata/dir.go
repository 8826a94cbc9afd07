package seasondata

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/frostline/freezethaw-cli/internal/model"
)

// FilePrefix is the naming convention for season files in the data
// directory: freeze_thaw_cycles_<season>.xlsx or .csv.
const FilePrefix = "freeze_thaw_cycles_"

// DirProvider serves season data from spreadsheet files in a directory.
// Loaded seasons are cached per file and invalidated when the file's
// modification time changes, so a re-exported spreadsheet is picked up
// without restarting the process.
type DirProvider struct {
	dir   string
	cache *fileCache
}

// NewDirProvider creates a provider over the given data directory.
// The directory must exist.
func NewDirProvider(dir string) (*DirProvider, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, eris.Wrapf(err, "seasondata: stat data dir %s", dir)
	}
	if !info.IsDir() {
		return nil, eris.Errorf("seasondata: %s is not a directory", dir)
	}
	return &DirProvider{dir: dir, cache: newFileCache()}, nil
}

// AvailableSeasons scans the directory for season files.
func (p *DirProvider) AvailableSeasons(ctx context.Context) ([]model.SeasonID, error) {
	entries, err := os.ReadDir(p.dir)
	if err != nil {
		return nil, eris.Wrapf(err, "seasondata: read data dir %s", p.dir)
	}

	seen := make(map[model.SeasonID]bool)
	var seasons []model.SeasonID
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		season, ok := seasonFromFilename(e.Name())
		if !ok || seen[season] {
			continue
		}
		seen[season] = true
		seasons = append(seasons, season)
	}
	model.SortSeasonsDesc(seasons)
	return seasons, nil
}

// LoadSeason reads one season's records, serving from cache while the
// backing file is unchanged.
func (p *DirProvider) LoadSeason(ctx context.Context, season model.SeasonID) ([]model.StationRecord, error) {
	path, err := p.seasonFile(season)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, eris.Wrapf(ErrDataUnavailable, "seasondata: stat %s", path)
	}

	if records, ok := p.cache.get(season, info.ModTime()); ok {
		return records, nil
	}

	var rows [][]string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		rows, err = readXLSXRows(path)
	case ".csv":
		rows, err = readCSVRows(path)
	default:
		return nil, eris.Errorf("seasondata: unsupported season file %s", path)
	}
	if err != nil {
		return nil, err
	}

	records := recordsFromRows(season, rows)
	p.cache.put(season, info.ModTime(), records)
	zap.L().Debug("seasondata: season loaded",
		zap.String("season", string(season)),
		zap.String("file", filepath.Base(path)),
		zap.Int("records", len(records)),
	)
	return records, nil
}

// States returns the distinct state names in a season, sorted.
func (p *DirProvider) States(ctx context.Context, season model.SeasonID) ([]string, error) {
	records, err := p.LoadSeason(ctx, season)
	if err != nil {
		return nil, err
	}
	return distinctStates(records), nil
}

// seasonFile locates the backing file for a season, preferring xlsx.
func (p *DirProvider) seasonFile(season model.SeasonID) (string, error) {
	for _, ext := range []string{".xlsx", ".csv"} {
		path := filepath.Join(p.dir, FilePrefix+string(season)+ext)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", eris.Wrapf(ErrDataUnavailable, "seasondata: no file for season %s in %s", season, p.dir)
}

// ParseSeasonFile reads one season spreadsheet outside of a provider,
// deriving the season from the filename. The import command uses this to
// load files into a snapshot store.
func ParseSeasonFile(path string) (model.SeasonID, []model.StationRecord, error) {
	season, ok := seasonFromFilename(filepath.Base(path))
	if !ok {
		return "", nil, eris.Errorf("seasondata: %s does not follow the %s<season>.xlsx naming convention", filepath.Base(path), FilePrefix)
	}

	var rows [][]string
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		rows, err = readXLSXRows(path)
	case ".csv":
		rows, err = readCSVRows(path)
	}
	if err != nil {
		return "", nil, err
	}
	return season, recordsFromRows(season, rows), nil
}

func seasonFromFilename(name string) (model.SeasonID, bool) {
	ext := strings.ToLower(filepath.Ext(name))
	if ext != ".xlsx" && ext != ".csv" {
		return "", false
	}
	base := strings.TrimSuffix(name, filepath.Ext(name))
	if !strings.HasPrefix(base, FilePrefix) {
		return "", false
	}
	season := strings.TrimPrefix(base, FilePrefix)
	if season == "" {
		return "", false
	}
	return model.SeasonID(season), true
}

func distinctStates(records []model.StationRecord) []string {
	seen := make(map[string]string)
	for _, r := range records {
		s := strings.TrimSpace(r.State)
		if s == "" {
			continue
		}
		// Keep the first casing observed for each normalized name.
		key := strings.ToUpper(s)
		if _, ok := seen[key]; !ok {
			seen[key] = s
		}
	}
	states := make([]string, 0, len(seen))
	for _, s := range seen {
		states = append(states, s)
	}
	sort.Strings(states)
	return states
}
