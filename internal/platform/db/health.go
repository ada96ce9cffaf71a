package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Health reports the reachability of the database.
type Health struct {
	Status  string        `json:"status"`
	Latency time.Duration `json:"latency_ms"`
}

// Check pings the pool with a short deadline and reports the result. A failed
// ping is reported, not returned as an error, so the health endpoint can still
// render a response while the database is down.
func Check(ctx context.Context, pool *pgxpool.Pool) Health {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	start := time.Now()
	if err := pool.Ping(ctx); err != nil {
		return Health{Status: "unreachable", Latency: time.Since(start) / time.Millisecond}
	}
	return Health{Status: "ok", Latency: time.Since(start) / time.Millisecond}
}
