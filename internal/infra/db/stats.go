package db

import (
	"context"
	"database/sql"
	"time"

	"spectrum-feed/internal/observability/metrics"
)

// ReportPoolStats publishes the pool's in-use and idle connection counts
// every interval until ctx is done.
func ReportPoolStats(ctx context.Context, db *sql.DB, interval time.Duration) {
	report := func() {
		s := db.Stats()
		metrics.UpdateDBConnectionStats(s.InUse, s.Idle)
	}
	report()

	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			report()
		}
	}
}
