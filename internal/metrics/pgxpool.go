package metrics

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
)

// RegisterPgxPoolMetrics exposes the billing database connection pool as
// Prometheus metrics. Acquire stalls show up in empty_acquire_total before
// they show up as API latency.
func RegisterPgxPoolMetrics(pool *pgxpool.Pool) {
	gauge := func(name, help string, value func(*pgxpool.Stat) int32) prometheus.GaugeFunc {
		return prometheus.NewGaugeFunc(prometheus.GaugeOpts{Name: name, Help: help}, func() float64 {
			return float64(value(pool.Stat()))
		})
	}

	prometheus.MustRegister(
		gauge("db_pool_acquired_conns", "Connections currently checked out of the pool",
			(*pgxpool.Stat).AcquiredConns),
		gauge("db_pool_idle_conns", "Connections sitting idle in the pool",
			(*pgxpool.Stat).IdleConns),
		gauge("db_pool_total_conns", "Total connections held by the pool",
			(*pgxpool.Stat).TotalConns),
		gauge("db_pool_max_conns", "Configured pool size ceiling",
			(*pgxpool.Stat).MaxConns),
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Name: "db_pool_empty_acquire_total",
			Help: "Acquires that had to wait because the pool was empty",
		}, func() float64 {
			return float64(pool.Stat().EmptyAcquireCount())
		}),
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Name: "db_pool_canceled_acquire_total",
			Help: "Acquires canceled by context before a connection was available",
		}, func() float64 {
			return float64(pool.Stat().CanceledAcquireCount())
		}),
	)
}
