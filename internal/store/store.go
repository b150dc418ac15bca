package store

import (
	"context"
	"database/sql"

	"github.com/mikesterific/parallel-instances/internal/store/migrations"
)

// QueryInterceptor is the subset of *sql.DB and *sql.Tx the sub-stores use.
type QueryInterceptor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store provides access to all storage repositories.
type Store struct {
	db      *sql.DB
	runs    *RunStore
	results *ResultStore
	metrics *MetricStore
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:      db,
		runs:    NewRunStore(db),
		results: NewResultStore(db),
		metrics: NewMetricStore(db),
	}
}

func (s *Store) Migrate(ctx context.Context) error {
	return migrations.Run(ctx, s.db)
}

func (s *Store) Runs() *RunStore {
	return s.runs
}

func (s *Store) Results() *ResultStore {
	return s.results
}

func (s *Store) Metrics() *MetricStore {
	return s.metrics
}

// WithTx runs fn against stores bound to a single transaction. The
// transaction is committed when fn returns nil and rolled back otherwise.
func (s *Store) WithTx(ctx context.Context, fn func(runs *RunStore, results *ResultStore, metrics *MetricStore) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(NewRunStore(tx), NewResultStore(tx), NewMetricStore(tx)); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Store) Close() error {
	return s.db.Close()
}
