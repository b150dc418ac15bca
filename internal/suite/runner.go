package suite

import (
	"context"
	"fmt"
	"time"

	"github.com/onsi/gomega"
	"go.uber.org/zap"

	"github.com/mikesterific/parallel-instances/internal/artifacts"
	"github.com/mikesterific/parallel-instances/internal/browser"
	"github.com/mikesterific/parallel-instances/internal/models"
	"github.com/mikesterific/parallel-instances/pkg/fixtures"
	"github.com/mikesterific/parallel-instances/pkg/instance"
	"github.com/mikesterific/parallel-instances/pkg/visitor"
)

// BeforeRunHook runs once per instance before its first suite.
type BeforeRunHook func(ctx context.Context, baseURL string) error

// LogInstanceHook logs the instance and project a run targets.
func LogInstanceHook(projectID string) BeforeRunHook {
	return func(_ context.Context, baseURL string) error {
		log := zap.S().Named("suite")
		log.Infof("Testing instance: %s", baseURL)
		log.Infof("Project ID: %s", projectID)
		return nil
	}
}

type RunnerOptions struct {
	RunID string
	// Retries is the number of extra attempts a failing test gets.
	Retries               int
	DefaultCommandTimeout time.Duration
	PageLoadTimeout       time.Duration
	Fixtures              fixtures.Table
	Hooks                 []BeforeRunHook
	// Sleeper is used by VisitWithRetry; nil waits on a real timer.
	Sleeper visitor.Sleeper
}

// Runner executes suites against one instance at a time. A Runner may be
// shared by concurrent RunInstance calls as long as its driver allows it.
type Runner struct {
	driver    browser.Driver
	artifacts *artifacts.Writer
	opts      RunnerOptions
}

func NewRunner(driver browser.Driver, writer *artifacts.Writer, opts RunnerOptions) *Runner {
	if opts.Retries < 0 {
		opts.Retries = 0
	}
	if opts.Fixtures == nil {
		opts.Fixtures = fixtures.Default
	}
	return &Runner{driver: driver, artifacts: writer, opts: opts}
}

// RunInstance runs every case of suites against baseURL on a dedicated page.
// Test failures are reported in the results; the error is only set when the
// instance could not be driven at all or ctx was cancelled.
func (r *Runner) RunInstance(ctx context.Context, baseURL string, suites []Suite) (models.InstanceRun, error) {
	run := models.InstanceRun{BaseURL: baseURL}
	log := zap.S().Named("suite").With("instance", baseURL)

	for _, hook := range r.opts.Hooks {
		if err := hook(ctx, baseURL); err != nil {
			return run, fmt.Errorf("before run hook failed for %s: %w", baseURL, err)
		}
	}

	page, err := r.driver.NewPage(ctx, browser.PageOptions{
		CommandTimeout:  instance.CommandTimeout(baseURL, r.opts.DefaultCommandTimeout),
		PageLoadTimeout: r.opts.PageLoadTimeout,
		VideoDir:        r.artifacts.VideoDir(baseURL),
		OnPageError: func(err error) {
			log.Warnw("uncaught exception ignored", "error", err)
		},
	})
	if err != nil {
		return run, fmt.Errorf("failed to open page for %s: %w", baseURL, err)
	}
	defer func() {
		if err := page.Close(); err != nil {
			log.Warnw("failed to close page", "error", err)
		}
	}()

	slot := &metricsSlot{}
	v := visitor.New(page, r.opts.Sleeper)

	for _, s := range suites {
		for _, c := range s.Cases {
			if err := ctx.Err(); err != nil {
				return run, err
			}
			result := r.runCase(ctx, baseURL, page, v, slot, s, c)
			run.Results = append(run.Results, result)
		}
	}

	run.Metrics = slot.m
	return run, nil
}

func (r *Runner) runCase(ctx context.Context, baseURL string, page browser.Page, v *visitor.Visitor, slot *metricsSlot, s Suite, c Case) models.TestResult {
	log := zap.S().Named("suite").With("instance", baseURL, "suite", s.Name, "test", c.Name)
	result := models.TestResult{
		RunID:    r.opts.RunID,
		Instance: baseURL,
		Suite:    s.Name,
		Test:     c.Name,
	}

	start := time.Now()
	for attempt := 1; attempt <= r.opts.Retries+1; attempt++ {
		result.Attempts = attempt
		t := r.newT(ctx, baseURL, page, v, slot, log)

		status, msg := execute(t, s.BeforeEach, c.Fn)
		result.Status = status
		result.Error = msg
		if status != models.TestStatusFailed || ctx.Err() != nil {
			break
		}
		if attempt <= r.opts.Retries {
			log.Infow("test failed, retrying", "attempt", attempt, "error", msg)
		}
	}
	result.Duration = time.Since(start)

	switch result.Status {
	case models.TestStatusFailed:
		log.Errorw("test failed", "attempts", result.Attempts, "error", result.Error)
		if r.artifacts.ScreenshotOnFailure() {
			p := r.artifacts.FailureScreenshotPath(baseURL, s.Name, c.Name)
			if err := page.Screenshot(ctx, p); err != nil {
				log.Debugw("failure screenshot not taken", "error", err)
			}
		}
	case models.TestStatusSkipped:
		log.Infow("test skipped", "reason", result.Error)
	default:
		log.Debugw("test passed", "attempts", result.Attempts, "duration", result.Duration)
	}

	return result
}

func (r *Runner) newT(ctx context.Context, baseURL string, page browser.Page, v *visitor.Visitor, slot *metricsSlot, log *zap.SugaredLogger) *T {
	return &T{
		Gomega: gomega.NewGomega(func(message string, _ ...int) {
			panic(failure{message: message})
		}),
		ctx:       ctx,
		baseURL:   baseURL,
		page:      page,
		visitor:   v,
		fixtures:  r.opts.Fixtures,
		artifacts: r.artifacts,
		runID:     r.opts.RunID,
		log:       log,
		metrics:   slot,
	}
}

// execute runs the hook and the test body, turning assertion failures,
// skips and panics into a status.
func execute(t *T, fns ...TestFunc) (status models.TestStatus, msg string) {
	defer func() {
		switch rec := recover().(type) {
		case nil:
		case failure:
			status, msg = models.TestStatusFailed, rec.message
		case skip:
			status, msg = models.TestStatusSkipped, rec.reason
		default:
			status, msg = models.TestStatusFailed, fmt.Sprintf("panic: %v", rec)
		}
	}()

	for _, fn := range fns {
		if fn == nil {
			continue
		}
		if err := fn(t); err != nil {
			return models.TestStatusFailed, err.Error()
		}
	}
	return models.TestStatusPassed, ""
}
