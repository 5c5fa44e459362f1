package db

import (
	"context"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// QueryEvent captures execution telemetry for one statement.
type QueryEvent struct {
	Statement string
	Duration  time.Duration
	Rows      int64 // -1 when the row count is not tracked
	Err       error
	StartedAt time.Time
}

// QueryObserver receives statement execution events.
type QueryObserver interface {
	ObserveQuery(ctx context.Context, event QueryEvent)
}

// NoopQueryObserver ignores all events.
type NoopQueryObserver struct{}

func (NoopQueryObserver) ObserveQuery(context.Context, QueryEvent) {}

type logQueryObserver struct {
	logger *slog.Logger
}

// NewLogQueryObserver writes statement events to logger. Successful statements
// are logged at debug level, failures at error level.
func NewLogQueryObserver(logger *slog.Logger) QueryObserver {
	if logger == nil {
		return NoopQueryObserver{}
	}
	return &logQueryObserver{logger: logger}
}

func (o *logQueryObserver) ObserveQuery(ctx context.Context, event QueryEvent) {
	attrs := []any{
		"statement", event.Statement,
		"duration_ms", event.Duration.Milliseconds(),
	}
	if event.Rows >= 0 {
		attrs = append(attrs, "rows", event.Rows)
	}
	if event.Err != nil {
		attrs = append(attrs, "error", event.Err.Error())
		o.logger.ErrorContext(ctx, "db_query", attrs...)
		return
	}
	o.logger.DebugContext(ctx, "db_query", attrs...)
}

type metricsQueryObserver struct {
	duration *prometheus.HistogramVec
}

// NewMetricsQueryObserver registers the hospital_db_query_duration_seconds
// histogram with reg and records every statement into it.
func NewMetricsQueryObserver(reg prometheus.Registerer) QueryObserver {
	return &metricsQueryObserver{
		duration: promauto.With(reg).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "hospital_db_query_duration_seconds",
				Help:    "Duration of database statements in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
			[]string{"statement", "outcome"},
		),
	}
}

func (o *metricsQueryObserver) ObserveQuery(_ context.Context, event QueryEvent) {
	outcome := "ok"
	if event.Err != nil {
		outcome = "error"
	}
	o.duration.WithLabelValues(event.Statement, outcome).Observe(event.Duration.Seconds())
}

type multiQueryObserver []QueryObserver

// MultiQueryObserver fans every event out to all non-nil observers.
func MultiQueryObserver(observers ...QueryObserver) QueryObserver {
	var out multiQueryObserver
	for _, obs := range observers {
		if obs != nil {
			out = append(out, obs)
		}
	}
	return out
}

func (m multiQueryObserver) ObserveQuery(ctx context.Context, event QueryEvent) {
	for _, obs := range m {
		obs.ObserveQuery(ctx, event)
	}
}

func queryObserverOrNoop(observers []QueryObserver) QueryObserver {
	for _, obs := range observers {
		if obs != nil {
			return obs
		}
	}
	return NoopQueryObserver{}
}
