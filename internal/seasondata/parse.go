package seasondata

import (
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/frostline/freezethaw-cli/internal/model"
)

// Season files carry these columns, in order. The header row is matched
// case-insensitively so exports with different casing still load.
var expectedColumns = []string{
	"State", "County", "Latitude", "Longitude",
	"Total_Freeze_Thaw_Cycles", "Damaging_Freeze_Thaw_Cycles",
}

// recordsFromRows converts raw string rows into station records.
// If the first row looks like a header it is skipped. Malformed rows are
// logged at debug level and dropped; source spreadsheets routinely contain
// blank or partial rows and one of them must not sink a whole season.
func recordsFromRows(season model.SeasonID, rows [][]string) []model.StationRecord {
	records := make([]model.StationRecord, 0, len(rows))
	for i, row := range rows {
		if i == 0 && isHeaderRow(row) {
			continue
		}
		rec, err := parseRow(row)
		if err != nil {
			zap.L().Debug("seasondata: skipping row",
				zap.String("season", string(season)),
				zap.Int("row", i),
				zap.Error(err),
			)
			continue
		}
		records = append(records, rec)
	}
	return records
}

func isHeaderRow(row []string) bool {
	if len(row) == 0 {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(row[0]), expectedColumns[0])
}

func parseRow(row []string) (model.StationRecord, error) {
	var rec model.StationRecord
	if len(row) < len(expectedColumns) {
		return rec, eris.Errorf("seasondata: row has %d cells, want %d", len(row), len(expectedColumns))
	}

	state := strings.TrimSpace(row[0])
	county := strings.TrimSpace(row[1])
	if state == "" || county == "" {
		return rec, eris.New("seasondata: empty state or county")
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(row[2]), 64)
	if err != nil {
		return rec, eris.Wrap(err, "seasondata: parse latitude")
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(row[3]), 64)
	if err != nil {
		return rec, eris.Wrap(err, "seasondata: parse longitude")
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return rec, eris.Errorf("seasondata: coordinates (%v, %v) out of range", lat, lon)
	}

	total, err := parseCount(row[4])
	if err != nil {
		return rec, eris.Wrap(err, "seasondata: parse total cycles")
	}
	damaging, err := parseCount(row[5])
	if err != nil {
		return rec, eris.Wrap(err, "seasondata: parse damaging cycles")
	}

	return model.StationRecord{
		State:          state,
		County:         county,
		Latitude:       lat,
		Longitude:      lon,
		TotalCycles:    total,
		DamagingCycles: damaging,
	}, nil
}

// parseCount reads a non-negative integer cell. Spreadsheet exports often
// render counts as floats ("50.0"), so a float with no fractional part is
// accepted too.
func parseCount(cell string) (int, error) {
	s := strings.TrimSpace(cell)
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 {
			return 0, eris.Errorf("seasondata: negative count %d", n)
		}
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, eris.Wrapf(err, "seasondata: parse count %q", s)
	}
	if f < 0 || f != float64(int(f)) {
		return 0, eris.Errorf("seasondata: count %q is not a non-negative integer", s)
	}
	return int(f), nil
}
