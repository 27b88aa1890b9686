package cache

import (
	"sync/atomic"

	"roster/contexts/sales-ops/client-distribution/domain/entities"

	lru "github.com/hashicorp/golang-lru/v2"
)

const defaultSize = 16

// StatsCache keeps computed dashboard stats keyed by store generation.
// Invalidate bumps the generation, so entries computed before a mutation are
// never served afterwards. Only the current generation is ever read, so the
// cache holds at most one live entry; the LRU bound caps what Put can retain
// if Invalidate races it.
//
// The generation lives in this process. Wire the cache only in front of a
// store that no other process writes to.
type StatsCache struct {
	generation atomic.Uint64
	entries    *lru.Cache[uint64, entities.DashboardStats]
}

func NewStatsCache(size int) (*StatsCache, error) {
	if size <= 0 {
		size = defaultSize
	}
	entries, err := lru.New[uint64, entities.DashboardStats](size)
	if err != nil {
		return nil, err
	}
	return &StatsCache{entries: entries}, nil
}

func (c *StatsCache) Generation() uint64 {
	return c.generation.Load()
}

func (c *StatsCache) Get(generation uint64) (entities.DashboardStats, bool) {
	if generation != c.generation.Load() {
		return entities.DashboardStats{}, false
	}
	stats, ok := c.entries.Get(generation)
	if !ok {
		return entities.DashboardStats{}, false
	}
	return cloneStats(stats), true
}

// Put drops stats computed for a generation that has already moved on.
func (c *StatsCache) Put(generation uint64, stats entities.DashboardStats) {
	if generation != c.generation.Load() {
		return
	}
	c.entries.Add(generation, cloneStats(stats))
}

func (c *StatsCache) Invalidate() {
	previous := c.generation.Add(1) - 1
	c.entries.Remove(previous)
}

func (c *StatsCache) Len() int {
	return c.entries.Len()
}

func cloneStats(stats entities.DashboardStats) entities.DashboardStats {
	stats.Executives = append([]entities.ExecutiveStats(nil), stats.Executives...)
	return stats
}
