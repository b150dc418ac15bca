package store

import (
	"context"
	"slices"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/mikesterific/parallel-instances/internal/models"
	srvErrors "github.com/mikesterific/parallel-instances/pkg/errors"
)

var metricColumns = []string{
	"run_id",
	"instance",
	"load_time_ms",
	"dns_ms",
	"tcp_ms",
	"ttfb_ms",
	"resources",
	"recorded_at",
}

type MetricStore struct {
	db QueryInterceptor
}

func NewMetricStore(db QueryInterceptor) *MetricStore {
	return &MetricStore{db: db}
}

func (s *MetricStore) Save(ctx context.Context, m models.Metrics) error {
	_, err := s.db.ExecContext(ctx, queryInsertMetrics,
		m.RunID,
		m.Instance,
		m.LoadTime.Milliseconds(),
		m.DNS.Milliseconds(),
		m.TCP.Milliseconds(),
		m.TTFB.Milliseconds(),
		m.Resources,
		m.RecordedAt,
	)
	return err
}

func (s *MetricStore) List(ctx context.Context, opts ...ListOption) ([]models.Metrics, error) {
	builder := apply(sq.Select(metricColumns...).From("metrics"), opts).
		OrderBy("recorded_at DESC", "instance")
	return s.query(ctx, builder)
}

// Latest returns the most recent metrics of every instance matching opts.
// It fails with a not found error when there are none.
func (s *MetricStore) Latest(ctx context.Context, opts ...ListOption) ([]models.Metrics, error) {
	ranked := apply(
		sq.Select(slices.Concat(metricColumns, []string{"row_number() OVER (PARTITION BY instance ORDER BY recorded_at DESC) AS rn"})...).
			From("metrics"),
		opts,
	)
	builder := sq.Select(metricColumns...).
		FromSelect(ranked, "ranked").
		Where(sq.Eq{"rn": 1}).
		OrderBy("instance")

	metrics, err := s.query(ctx, builder)
	if err != nil {
		return nil, err
	}
	if len(metrics) == 0 {
		return nil, srvErrors.NewMetricsNotFoundError()
	}
	return metrics, nil
}

func (s *MetricStore) query(ctx context.Context, builder sq.SelectBuilder) ([]models.Metrics, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var metrics []models.Metrics
	for rows.Next() {
		var (
			m                    models.Metrics
			load, dns, tcp, ttfb int64
		)
		if err := rows.Scan(&m.RunID, &m.Instance, &load, &dns, &tcp, &ttfb, &m.Resources, &m.RecordedAt); err != nil {
			return nil, err
		}
		m.LoadTime = time.Duration(load) * time.Millisecond
		m.DNS = time.Duration(dns) * time.Millisecond
		m.TCP = time.Duration(tcp) * time.Millisecond
		m.TTFB = time.Duration(ttfb) * time.Millisecond
		metrics = append(metrics, m)
	}
	return metrics, rows.Err()
}
