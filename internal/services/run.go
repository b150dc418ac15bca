package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mikesterific/parallel-instances/internal/artifacts"
	"github.com/mikesterific/parallel-instances/internal/browser"
	"github.com/mikesterific/parallel-instances/internal/config"
	"github.com/mikesterific/parallel-instances/internal/models"
	"github.com/mikesterific/parallel-instances/internal/store"
	"github.com/mikesterific/parallel-instances/internal/suite"
	srvErrors "github.com/mikesterific/parallel-instances/pkg/errors"
	"github.com/mikesterific/parallel-instances/pkg/scheduler"
	"github.com/mikesterific/parallel-instances/pkg/visitor"
)

// RunService runs the selected suites against every configured instance,
// fanning instances out on a scheduler, and persists the outcome.
// Only one run can be in progress at a time.
type RunService struct {
	store   *store.Store
	driver  browser.Driver
	writer  *artifacts.Writer
	cfg     *config.Configuration
	suites  []suite.Suite
	sleeper visitor.Sleeper

	mu     sync.Mutex
	status models.RunnerStatus
	cancel context.CancelFunc
	done   chan struct{}
}

func NewRunService(st *store.Store, driver browser.Driver, writer *artifacts.Writer, cfg *config.Configuration, suites []suite.Suite) *RunService {
	return &RunService{
		store:  st,
		driver: driver,
		writer: writer,
		cfg:    cfg,
		suites: suites,
		status: models.RunnerStatus{State: models.RunnerStateReady},
	}
}

// WithSleeper replaces the timer used between visit retries.
func (s *RunService) WithSleeper(sl visitor.Sleeper) *RunService {
	s.sleeper = sl
	return s
}

func (s *RunService) Status() models.RunnerStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Run executes a run and blocks until every instance is done. Test failures
// are part of the report; the error reports instances that could not be
// driven, persistence failures and cancellation.
func (s *RunService) Run(ctx context.Context, mode models.RunMode) (*models.RunReport, error) {
	id, err := s.begin()
	if err != nil {
		return nil, err
	}

	report, err := s.execute(ctx, id, mode)
	s.end(err)
	return report, err
}

// Start launches a run in the background and returns its id. The run
// outlives ctx; use Stop to cancel it.
func (s *RunService) Start(ctx context.Context, mode models.RunMode) (string, error) {
	id, err := s.begin()
	if err != nil {
		return "", err
	}

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	done := make(chan struct{})

	s.mu.Lock()
	s.cancel = cancel
	s.done = done
	s.mu.Unlock()

	go func() {
		defer close(done)
		defer cancel()
		_, err := s.execute(runCtx, id, mode)
		s.end(err)
	}()

	return id, nil
}

// Stop cancels a background run and waits for it to wind down.
func (s *RunService) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (s *RunService) begin() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status.State == models.RunnerStateRunning {
		return "", srvErrors.NewRunInProgressError(s.status.RunID)
	}

	id := uuid.NewString()
	s.status = models.RunnerStatus{State: models.RunnerStateRunning, RunID: id}
	return id, nil
}

func (s *RunService) end(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.status.Error = err
	if err != nil {
		s.status.State = models.RunnerStateError
		return
	}
	s.status.State = models.RunnerStateCompleted
}

func (s *RunService) retries(mode models.RunMode) int {
	if mode == models.RunModeOpen {
		return s.cfg.Run.Retries.OpenMode
	}
	return s.cfg.Run.Retries.RunMode
}

func (s *RunService) execute(ctx context.Context, id string, mode models.RunMode) (*models.RunReport, error) {
	log := zap.S().Named("run_service").With("run_id", id)
	// results are persisted even when the run is cancelled
	persistCtx := context.WithoutCancel(ctx)

	suites, err := suite.Select(s.suites, s.cfg.SpecPattern)
	if err != nil {
		return nil, err
	}

	run := models.Run{
		ID:        id,
		ProjectID: s.cfg.ProjectID,
		CIBuildID: s.cfg.Run.CIBuildID,
		Mode:      mode,
		StartedAt: time.Now(),
	}
	if err := s.store.Runs().Create(persistCtx, run); err != nil {
		return nil, fmt.Errorf("failed to create run: %w", err)
	}
	if err := s.writer.Prepare(); err != nil {
		return nil, err
	}

	instances := s.cfg.InstanceURLs()
	log.Infow("run started", "mode", mode, "instances", instances, "workers", s.cfg.Run.Workers, "suites", len(suites))

	runner := suite.NewRunner(s.driver, s.writer, suite.RunnerOptions{
		RunID:                 id,
		Retries:               s.retries(mode),
		DefaultCommandTimeout: s.cfg.Run.DefaultCommandTimeout,
		PageLoadTimeout:       s.cfg.Run.PageLoadTimeout,
		Fixtures:              s.cfg.FixtureTable(),
		Hooks:                 []suite.BeforeRunHook{suite.LogInstanceHook(s.cfg.ProjectID)},
		Sleeper:               s.sleeper,
	})

	sched := scheduler.NewScheduler[models.InstanceRun](ctx, s.cfg.Run.Workers)
	defer sched.Close()

	futures := make([]*scheduler.Future[scheduler.Result[models.InstanceRun]], 0, len(instances))
	for _, baseURL := range instances {
		futures = append(futures, sched.AddWork(baseURL, func(ctx context.Context) (models.InstanceRun, error) {
			ir, err := runner.RunInstance(ctx, baseURL, suites)
			if perr := s.persist(persistCtx, ir); perr != nil {
				err = errors.Join(err, perr)
			}
			return ir, err
		}))
	}

	report := &models.RunReport{}
	var errs []error
	for i, f := range futures {
		r, err := f.Wait(ctx)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if r.Err != nil {
			log.Errorw("instance failed", "instance", instances[i], "error", r.Err)
			errs = append(errs, fmt.Errorf("instance %s: %w", instances[i], r.Err))
		}
		if r.Data.BaseURL != "" {
			report.Instances = append(report.Instances, r.Data)
		}
	}

	finished := time.Now()
	run.FinishedAt = &finished
	if err := s.store.Runs().Finish(persistCtx, id, finished); err != nil {
		errs = append(errs, fmt.Errorf("failed to finish run: %w", err))
	}

	summary, err := s.store.Results().Summarize(persistCtx, run)
	if err != nil {
		errs = append(errs, fmt.Errorf("failed to summarize run: %w", err))
		summary = &models.RunSummary{Run: run}
	}
	report.Summary = *summary

	log.Infow("run finished",
		"passed", summary.Passed,
		"failed", summary.Failed,
		"skipped", summary.Skipped,
		"duration", finished.Sub(run.StartedAt),
	)

	return report, errors.Join(errs...)
}

func (s *RunService) persist(ctx context.Context, ir models.InstanceRun) error {
	if len(ir.Results) == 0 && ir.Metrics == nil {
		return nil
	}
	return s.store.WithTx(ctx, func(_ *store.RunStore, results *store.ResultStore, metrics *store.MetricStore) error {
		if err := results.Save(ctx, ir.Results...); err != nil {
			return fmt.Errorf("failed to save results: %w", err)
		}
		if ir.Metrics != nil {
			if err := metrics.Save(ctx, *ir.Metrics); err != nil {
				return fmt.Errorf("failed to save metrics: %w", err)
			}
		}
		return nil
	})
}
