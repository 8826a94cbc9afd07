package model

// SeasonPoint is one season's contribution to a station's history.
type SeasonPoint struct {
	Season         SeasonID `json:"season"`
	TotalCycles    int      `json:"total_cycles"`
	DamagingCycles int      `json:"damaging_cycles"`
}

// WindowStats holds summary statistics for one cycle type over one window.
// COV is the coefficient of variation in percent; it is 0 when the window
// has fewer than two points or a zero mean.
type WindowStats struct {
	Mean float64 `json:"mean"`
	COV  float64 `json:"cov"`
}

// Statistics is the derived, per-query trend summary for one location.
// Points are sorted most recent season first; the recent window is the
// first RecentWindow points of that series (truncated when history is
// shorter). Nothing here is persisted.
type Statistics struct {
	Location LocationKey   `json:"location"`
	Points   []SeasonPoint `json:"points"`

	AllTotal    WindowStats `json:"all_total"`
	AllDamaging WindowStats `json:"all_damaging"`

	RecentWindow   int         `json:"recent_window"`
	RecentTotal    WindowStats `json:"recent_total"`
	RecentDamaging WindowStats `json:"recent_damaging"`

	YearsAvailable int `json:"years_available"`
}

// DamageRatioAll returns average damaging cycles as a percentage of average
// total cycles over the full history, or 0 when the total mean is zero.
func (s *Statistics) DamageRatioAll() float64 {
	if s.AllTotal.Mean == 0 {
		return 0
	}
	return s.AllDamaging.Mean / s.AllTotal.Mean * 100
}

// DamageRatioRecent is DamageRatioAll over the recent window.
func (s *Statistics) DamageRatioRecent() float64 {
	if s.RecentTotal.Mean == 0 {
		return 0
	}
	return s.RecentDamaging.Mean / s.RecentTotal.Mean * 100
}
