package seasondata

import (
	"sync"
	"time"

	"github.com/frostline/freezethaw-cli/internal/model"
)

// fileCache holds parsed season records keyed by season, invalidated when
// the backing file's modification time changes. This replaces ad-hoc
// process-wide memoization with a cache the provider explicitly owns.
type fileCache struct {
	mu      sync.Mutex
	entries map[model.SeasonID]cacheEntry
}

type cacheEntry struct {
	modTime time.Time
	records []model.StationRecord
}

func newFileCache() *fileCache {
	return &fileCache{entries: make(map[model.SeasonID]cacheEntry)}
}

// get returns the cached records for a season if the cached modification
// time matches the file's current one.
func (c *fileCache) get(season model.SeasonID, modTime time.Time) ([]model.StationRecord, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[season]
	if !ok || !e.modTime.Equal(modTime) {
		return nil, false
	}
	return e.records, true
}

func (c *fileCache) put(season model.SeasonID, modTime time.Time, records []model.StationRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[season] = cacheEntry{modTime: modTime, records: records}
}
