package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/mikesterific/parallel-instances/internal/models"
	srvErrors "github.com/mikesterific/parallel-instances/pkg/errors"
)

type RunStore struct {
	db QueryInterceptor
}

func NewRunStore(db QueryInterceptor) *RunStore {
	return &RunStore{db: db}
}

func (s *RunStore) Create(ctx context.Context, run models.Run) error {
	_, err := s.db.ExecContext(ctx, queryInsertRun,
		run.ID,
		run.ProjectID,
		sql.NullString{String: run.CIBuildID, Valid: run.CIBuildID != ""},
		string(run.Mode),
		run.StartedAt,
	)
	return err
}

func (s *RunStore) Finish(ctx context.Context, id string, at time.Time) error {
	res, err := s.db.ExecContext(ctx, queryFinishRun, at, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return srvErrors.NewRunNotFoundError(id)
	}
	return nil
}

func (s *RunStore) Get(ctx context.Context, id string) (*models.Run, error) {
	run, err := scanRun(s.db.QueryRowContext(ctx, queryGetRun, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, srvErrors.NewRunNotFoundError(id)
	}
	if err != nil {
		return nil, err
	}
	return run, nil
}

// List returns runs newest first.
func (s *RunStore) List(ctx context.Context, opts ...ListOption) ([]models.Run, error) {
	builder := sq.Select("id", "project_id", "ci_build_id", "mode", "started_at", "finished_at").
		From("runs").
		OrderBy("started_at DESC")
	builder = apply(builder, opts)

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []models.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}
	return runs, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*models.Run, error) {
	var (
		run      models.Run
		ciBuild  sql.NullString
		mode     string
		finished sql.NullTime
	)
	if err := row.Scan(&run.ID, &run.ProjectID, &ciBuild, &mode, &run.StartedAt, &finished); err != nil {
		return nil, err
	}
	run.CIBuildID = ciBuild.String
	run.Mode = models.RunMode(mode)
	if finished.Valid {
		t := finished.Time
		run.FinishedAt = &t
	}
	return &run, nil
}
