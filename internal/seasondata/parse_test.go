package seasondata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRow(t *testing.T) {
	rec, err := parseRow([]string{" Colorado ", " Denver ", "39.7392", "-104.9903", "50", "10"})
	require.NoError(t, err)
	assert.Equal(t, "Colorado", rec.State)
	assert.Equal(t, "Denver", rec.County)
	assert.Equal(t, 50, rec.TotalCycles)
	assert.Equal(t, 10, rec.DamagingCycles)
}

func TestParseRow_Invalid(t *testing.T) {
	tests := []struct {
		name string
		row  []string
	}{
		{"too short", []string{"Colorado", "Denver"}},
		{"empty state", []string{" ", "Denver", "39.7", "-104.9", "50", "10"}},
		{"empty county", []string{"Colorado", "", "39.7", "-104.9", "50", "10"}},
		{"bad latitude", []string{"Colorado", "Denver", "abc", "-104.9", "50", "10"}},
		{"latitude out of range", []string{"Colorado", "Denver", "95.0", "-104.9", "50", "10"}},
		{"longitude out of range", []string{"Colorado", "Denver", "39.7", "-195.0", "50", "10"}},
		{"negative count", []string{"Colorado", "Denver", "39.7", "-104.9", "-5", "10"}},
		{"fractional count", []string{"Colorado", "Denver", "39.7", "-104.9", "50.5", "10"}},
		{"non-numeric count", []string{"Colorado", "Denver", "39.7", "-104.9", "fifty", "10"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseRow(tt.row)
			assert.Error(t, err)
		})
	}
}

func TestParseRow_DamagingMayExceedTotal(t *testing.T) {
	// Upstream data is untrusted; the invariant is not enforced here.
	rec, err := parseRow([]string{"Colorado", "Denver", "39.7", "-104.9", "10", "50"})
	require.NoError(t, err)
	assert.Equal(t, 10, rec.TotalCycles)
	assert.Equal(t, 50, rec.DamagingCycles)
}

func TestParseCount_FloatRendered(t *testing.T) {
	n, err := parseCount("50.0")
	require.NoError(t, err)
	assert.Equal(t, 50, n)
}

func TestRecordsFromRows_HeaderSkipped(t *testing.T) {
	rows := [][]string{
		{"state", "county", "latitude", "longitude", "total_freeze_thaw_cycles", "damaging_freeze_thaw_cycles"},
		{"Colorado", "Denver", "39.7392", "-104.9903", "50", "10"},
	}
	records := recordsFromRows("2023-2024", rows)
	require.Len(t, records, 1)
	assert.Equal(t, "Denver", records[0].County)
}

func TestRecordsFromRows_NoHeader(t *testing.T) {
	rows := [][]string{
		{"Colorado", "Denver", "39.7392", "-104.9903", "50", "10"},
	}
	records := recordsFromRows("2023-2024", rows)
	assert.Len(t, records, 1)
}
