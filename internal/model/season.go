package model

import "sort"

// SeasonID labels one winter monitoring period (September through April).
// Labels are "YYYY-YYYY" (e.g. "2023-2024"), so lexicographic order equals
// chronological order. The core never parses the label; it only sorts it.
type SeasonID string

// SortSeasonsDesc sorts seasons most recent first, in place.
// Callers should not trust provider ordering; windows over the series are
// defined as "first N of the descending sort".
func SortSeasonsDesc(seasons []SeasonID) {
	sort.Slice(seasons, func(i, j int) bool { return seasons[i] > seasons[j] })
}

// RecentSeasons returns the n most recent seasons from the given set.
// The input is not modified. Fewer than n seasons returns them all.
func RecentSeasons(seasons []SeasonID, n int) []SeasonID {
	out := make([]SeasonID, len(seasons))
	copy(out, seasons)
	SortSeasonsDesc(out)
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
