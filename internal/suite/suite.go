package suite

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path"

	"github.com/onsi/gomega"
	"go.uber.org/zap"

	"github.com/mikesterific/parallel-instances/internal/artifacts"
	"github.com/mikesterific/parallel-instances/internal/browser"
	"github.com/mikesterific/parallel-instances/internal/models"
	srvErrors "github.com/mikesterific/parallel-instances/pkg/errors"
	"github.com/mikesterific/parallel-instances/pkg/fixtures"
	"github.com/mikesterific/parallel-instances/pkg/instance"
	"github.com/mikesterific/parallel-instances/pkg/visitor"
)

// TestFunc is the body of a test case. Failed gomega assertions, Fail and
// Skip abort it; a returned error fails it.
type TestFunc func(t *T) error

type Case struct {
	Name string
	Fn   TestFunc
}

type Suite struct {
	Name       string
	BeforeEach TestFunc
	Cases      []Case
}

// Select keeps the suites whose name matches the glob pattern. An empty
// pattern selects everything.
func Select(suites []Suite, pattern string) ([]Suite, error) {
	if pattern == "" {
		pattern = "*"
	}
	if _, err := path.Match(pattern, ""); err != nil {
		return nil, srvErrors.NewValidationError("specPattern", err.Error())
	}

	var selected []Suite
	for _, s := range suites {
		if ok, _ := path.Match(pattern, s.Name); ok {
			selected = append(selected, s)
		}
	}
	return selected, nil
}

type failure struct{ message string }

type skip struct{ reason string }

// T is handed to every test case. It is bound to a single instance and page
// and is not safe for concurrent use.
type T struct {
	gomega.Gomega

	ctx       context.Context
	baseURL   string
	page      browser.Page
	visitor   *visitor.Visitor
	fixtures  fixtures.Table
	artifacts *artifacts.Writer
	runID     string
	log       *zap.SugaredLogger
	metrics   *metricsSlot
}

type metricsSlot struct {
	m *models.Metrics
}

func (t *T) Context() context.Context { return t.ctx }

func (t *T) BaseURL() string { return t.baseURL }

func (t *T) Page() browser.Page { return t.page }

func (t *T) RunID() string { return t.runID }

func (t *T) Artifacts() *artifacts.Writer { return t.artifacts }

// Log writes to the instance scoped logger, like cy.log.
func (t *T) Log(format string, args ...any) {
	t.log.Infof(format, args...)
}

func (t *T) Fail(format string, args ...any) {
	panic(failure{message: fmt.Sprintf(format, args...)})
}

func (t *T) Skip(format string, args ...any) {
	panic(skip{reason: fmt.Sprintf(format, args...)})
}

// SkipIfUnsupported skips the test when err reports a feature the driver
// lacks and returns err unchanged otherwise.
func (t *T) SkipIfUnsupported(err error) error {
	if errors.Is(err, srvErrors.ErrUnsupported) {
		t.Skip("%s", err)
	}
	return err
}

// Visit loads path relative to the base URL once. Any status >= 400 fails
// the test.
func (t *T) Visit(p string) error {
	url := instance.JoinURL(t.baseURL, p)
	status, err := t.page.Goto(t.ctx, url)
	if err != nil {
		return fmt.Errorf("failed to visit %s: %w", url, err)
	}
	if status >= http.StatusBadRequest {
		return fmt.Errorf("visit %s failed with status %d", url, status)
	}
	return nil
}

// VisitWithRetry loads path relative to the base URL, retrying failing
// statuses. Running out of retries does not fail the test by itself.
func (t *T) VisitWithRetry(p string, opts ...visitor.Option) (visitor.Result, error) {
	return t.visitor.VisitWithRetry(t.ctx, t.baseURL, p, opts...)
}

// TestData resolves a fixture value for the current instance.
func (t *T) TestData(key string) (string, bool) {
	return t.fixtures.Resolve(t.baseURL, key)
}

// Screenshot captures the page as <instance name>-<name>.png. Drivers that
// cannot take screenshots are logged and ignored.
func (t *T) Screenshot(name string) error {
	p := t.artifacts.ScreenshotPath(t.baseURL, name)
	if err := t.page.Screenshot(t.ctx, p); err != nil {
		if errors.Is(err, srvErrors.ErrUnsupported) {
			t.log.Debugw("screenshot skipped", "name", name, "reason", err)
			return nil
		}
		return fmt.Errorf("failed to take screenshot %s: %w", name, err)
	}
	t.log.Debugw("screenshot taken", "path", p)
	return nil
}

// RecordMetrics attaches performance metrics to the instance run.
func (t *T) RecordMetrics(m models.Metrics) {
	m.RunID = t.runID
	m.Instance = t.baseURL
	t.metrics.m = &m
}
