package db

import (
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/seo-pirate/backend/internal/observability/metrics"
)

func collectPoolStats(pool *pgxpool.Pool) {
	stats := pool.Stat()

	metrics.DBPoolAcquiredConnections.Set(float64(stats.AcquiredConns()))
	metrics.DBPoolIdleConnections.Set(float64(stats.IdleConns()))
	metrics.DBPoolMaxConnections.Set(float64(stats.MaxConns()))
	metrics.DBPoolTotalConnections.Set(float64(stats.TotalConns()))
}
