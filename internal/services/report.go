package services

import (
	"context"
	"sort"

	"github.com/mikesterific/parallel-instances/internal/models"
	"github.com/mikesterific/parallel-instances/internal/store"
	srvErrors "github.com/mikesterific/parallel-instances/pkg/errors"
)

// ReportService reads persisted runs for the report command and the API.
type ReportService struct {
	store *store.Store
}

func NewReportService(st *store.Store) *ReportService {
	return &ReportService{store: st}
}

type ResultListParams struct {
	RunID     string
	Instances []string
	Suites    []string
	Statuses  []string
	Sort      []store.SortParam
	Limit     uint64
	Offset    uint64
}

type ResultListResult struct {
	Results []models.TestResult
	Total   int
}

func (s *ReportService) ListRuns(ctx context.Context, projectID string, limit uint64) ([]models.RunSummary, error) {
	opts := []store.ListOption{store.ByProject(projectID)}
	if limit > 0 {
		opts = append(opts, store.WithLimit(limit))
	}

	runs, err := s.store.Runs().List(ctx, opts...)
	if err != nil {
		return nil, err
	}

	summaries := make([]models.RunSummary, 0, len(runs))
	for _, r := range runs {
		summary, err := s.store.Results().Summarize(ctx, r)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, *summary)
	}
	return summaries, nil
}

func (s *ReportService) GetRun(ctx context.Context, id string) (*models.RunSummary, error) {
	run, err := s.store.Runs().Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.store.Results().Summarize(ctx, *run)
}

// LatestRun returns the newest run of the project.
func (s *ReportService) LatestRun(ctx context.Context, projectID string) (*models.RunSummary, error) {
	runs, err := s.ListRuns(ctx, projectID, 1)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, srvErrors.NewRunNotFoundError("latest")
	}
	return &runs[0], nil
}

func (s *ReportService) ListResults(ctx context.Context, params ResultListParams) (*ResultListResult, error) {
	filters := s.buildFilters(params)

	opts := append([]store.ListOption{}, filters...)
	if len(params.Sort) > 0 {
		opts = append(opts, store.WithSort(params.Sort))
	}
	if params.Limit > 0 {
		opts = append(opts, store.WithLimit(params.Limit))
	}
	if params.Offset > 0 {
		opts = append(opts, store.WithOffset(params.Offset))
	}

	results, err := s.store.Results().List(ctx, opts...)
	if err != nil {
		return nil, err
	}

	// total count without pagination
	total, err := s.store.Results().Count(ctx, filters...)
	if err != nil {
		return nil, err
	}

	return &ResultListResult{Results: results, Total: total}, nil
}

// Metrics returns the metrics of a run, or the latest metrics of every
// instance when runID is empty.
func (s *ReportService) Metrics(ctx context.Context, runID string, instances ...string) ([]models.Metrics, error) {
	if runID == "" {
		return s.store.Metrics().Latest(ctx, store.ByInstances(instances...))
	}
	metrics, err := s.store.Metrics().List(ctx, store.ByRun(runID), store.ByInstances(instances...))
	if err != nil {
		return nil, err
	}
	if len(metrics) == 0 {
		return nil, srvErrors.NewMetricsNotFoundError()
	}
	return metrics, nil
}

// Compare groups the results of a run per instance, sorted by instance, with
// the metrics recorded during the run when there are any.
func (s *ReportService) Compare(ctx context.Context, runID string) ([]models.InstanceSummary, error) {
	if _, err := s.store.Runs().Get(ctx, runID); err != nil {
		return nil, err
	}

	results, err := s.store.Results().List(ctx, store.ByRun(runID))
	if err != nil {
		return nil, err
	}

	byInstance := map[string]*models.InstanceSummary{}
	for _, r := range results {
		sum, ok := byInstance[r.Instance]
		if !ok {
			sum = &models.InstanceSummary{Instance: r.Instance}
			byInstance[r.Instance] = sum
		}
		switch r.Status {
		case models.TestStatusPassed:
			sum.Passed++
		case models.TestStatusFailed:
			sum.Failed++
		case models.TestStatusSkipped:
			sum.Skipped++
		}
	}

	metrics, err := s.Metrics(ctx, runID)
	if err != nil && !srvErrors.IsResourceNotFoundError(err) {
		return nil, err
	}
	for _, m := range metrics {
		sum, ok := byInstance[m.Instance]
		if !ok {
			sum = &models.InstanceSummary{Instance: m.Instance}
			byInstance[m.Instance] = sum
		}
		if sum.Metrics == nil {
			m := m
			sum.Metrics = &m
		}
	}

	out := make([]models.InstanceSummary, 0, len(byInstance))
	for _, sum := range byInstance {
		out = append(out, *sum)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Instance < out[j].Instance })
	return out, nil
}

// ResolveRunID returns id, or the newest run of the project when id is empty.
func (s *ReportService) ResolveRunID(ctx context.Context, projectID, id string) (string, error) {
	if id != "" {
		return id, nil
	}
	latest, err := s.LatestRun(ctx, projectID)
	if err != nil {
		return "", err
	}
	return latest.Run.ID, nil
}

func (s *ReportService) buildFilters(params ResultListParams) []store.ListOption {
	var opts []store.ListOption

	if params.RunID != "" {
		opts = append(opts, store.ByRun(params.RunID))
	}
	if len(params.Instances) > 0 {
		opts = append(opts, store.ByInstances(params.Instances...))
	}
	if len(params.Suites) > 0 {
		opts = append(opts, store.BySuites(params.Suites...))
	}
	if len(params.Statuses) > 0 {
		opts = append(opts, store.ByStatus(params.Statuses...))
	}

	return opts
}
