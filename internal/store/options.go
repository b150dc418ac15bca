package store

import (
	sq "github.com/Masterminds/squirrel"
)

// ListOption narrows or pages a select over runs, test_results or metrics.
type ListOption func(sq.SelectBuilder) sq.SelectBuilder

func ByRun(runID string) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		if runID == "" {
			return b
		}
		return b.Where(sq.Eq{"run_id": runID})
	}
}

func ByProject(projectID string) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		if projectID == "" {
			return b
		}
		return b.Where(sq.Eq{"project_id": projectID})
	}
}

func ByInstances(instances ...string) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		if len(instances) == 0 {
			return b
		}
		return b.Where(sq.Eq{"instance": instances})
	}
}

func ByStatus(statuses ...string) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		if len(statuses) == 0 {
			return b
		}
		return b.Where(sq.Eq{"status": statuses})
	}
}

func BySuites(suites ...string) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		if len(suites) == 0 {
			return b
		}
		return b.Where(sq.Eq{"suite": suites})
	}
}

func WithLimit(limit uint64) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		return b.Limit(limit)
	}
}

func WithOffset(offset uint64) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		return b.Offset(offset)
	}
}

type SortParam struct {
	Field string
	Desc  bool
}

var apiFieldToDBColumn = map[string]string{
	"instance": "instance",
	"suite":    "suite",
	"test":     "test_name",
	"status":   "status",
	"duration": "duration_ms",
	"attempts": "attempts",
}

// WithSort orders test results by API field names. Unknown fields are ignored.
func WithSort(sorts []SortParam) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		var orderClauses []string
		for _, s := range sorts {
			col, ok := apiFieldToDBColumn[s.Field]
			if !ok {
				continue
			}
			if s.Desc {
				orderClauses = append(orderClauses, col+" DESC")
			} else {
				orderClauses = append(orderClauses, col+" ASC")
			}
		}
		if len(orderClauses) == 0 {
			return b
		}
		return b.OrderBy(orderClauses...)
	}
}

func apply(b sq.SelectBuilder, opts []ListOption) sq.SelectBuilder {
	for _, opt := range opts {
		b = opt(b)
	}
	return b
}

func IsSortField(field string) bool {
	_, ok := apiFieldToDBColumn[field]
	return ok
}
