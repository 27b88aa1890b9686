package application

import (
	"time"

	"roster/contexts/sales-ops/client-distribution/ports"
)

func Now(clock ports.Clock) time.Time {
	if clock == nil {
		return time.Now().UTC()
	}
	return clock.Now().UTC()
}

// InvalidateStats is a no-op when no cache is wired.
func InvalidateStats(cache ports.StatsCache) {
	if cache != nil {
		cache.Invalidate()
	}
}
