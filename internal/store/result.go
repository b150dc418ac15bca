package store

import (
	"context"
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/mikesterific/parallel-instances/internal/models"
)

type ResultStore struct {
	db QueryInterceptor
}

func NewResultStore(db QueryInterceptor) *ResultStore {
	return &ResultStore{db: db}
}

func (s *ResultStore) Save(ctx context.Context, results ...models.TestResult) error {
	for _, r := range results {
		_, err := s.db.ExecContext(ctx, queryInsertResult,
			r.RunID,
			r.Instance,
			r.Suite,
			r.Test,
			string(r.Status),
			r.Attempts,
			r.Duration.Milliseconds(),
			sql.NullString{String: r.Error, Valid: r.Error != ""},
		)
		if err != nil {
			return err
		}
	}
	return nil
}

// List returns test results ordered by WithSort fields first, then by
// recording time, instance, suite and test name.
func (s *ResultStore) List(ctx context.Context, opts ...ListOption) ([]models.TestResult, error) {
	builder := sq.Select(
		"run_id",
		"instance",
		"suite",
		"test_name",
		"status",
		"attempts",
		"duration_ms",
		"error_message",
	).From("test_results")
	builder = apply(builder, opts)
	builder = builder.OrderBy("recorded_at", "instance", "suite", "test_name")

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []models.TestResult
	for rows.Next() {
		var (
			r        models.TestResult
			status   string
			duration int64
			errMsg   sql.NullString
		)
		if err := rows.Scan(&r.RunID, &r.Instance, &r.Suite, &r.Test, &status, &r.Attempts, &duration, &errMsg); err != nil {
			return nil, err
		}
		r.Status = models.TestStatus(status)
		r.Duration = time.Duration(duration) * time.Millisecond
		r.Error = errMsg.String
		results = append(results, r)
	}
	return results, rows.Err()
}

func (s *ResultStore) Count(ctx context.Context, opts ...ListOption) (int, error) {
	builder := apply(sq.Select("COUNT(*)").From("test_results"), opts)

	query, args, err := builder.ToSql()
	if err != nil {
		return 0, err
	}

	var count int
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&count)
	return count, err
}

// Summarize counts the results of a run by status.
func (s *ResultStore) Summarize(ctx context.Context, run models.Run) (*models.RunSummary, error) {
	rows, err := s.db.QueryContext(ctx, querySummarizeResults, run.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summary := &models.RunSummary{Run: run}
	for rows.Next() {
		var (
			status string
			count  int
		)
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		switch models.TestStatus(status) {
		case models.TestStatusPassed:
			summary.Passed = count
		case models.TestStatusFailed:
			summary.Failed = count
		case models.TestStatusSkipped:
			summary.Skipped = count
		}
	}
	return summary, rows.Err()
}
