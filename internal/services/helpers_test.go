package services_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"time"

	. "github.com/onsi/gomega"

	"github.com/mikesterific/parallel-instances/internal/artifacts"
	"github.com/mikesterific/parallel-instances/internal/browser"
	"github.com/mikesterific/parallel-instances/internal/config"
	"github.com/mikesterific/parallel-instances/internal/services"
	"github.com/mikesterific/parallel-instances/internal/store"
	"github.com/mikesterific/parallel-instances/internal/suite"
)

const page = `<html><head><title>Instance</title></head><body><h1>ok</h1></body></html>`

// newInstance serves page on every path with the given status.
func newInstance(status int) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(page))
	}))
}

type noSleep struct{}

func (noSleep) Sleep(context.Context, time.Duration) error { return nil }

type env struct {
	store  *store.Store
	cfg    *config.Configuration
	runSvc *services.RunService
	report *services.ReportService
	dir    string
	once   sync.Once
}

func newEnv(ctx context.Context, dir string, instances []string, opts ...config.ConfigurationOption) *env {
	db, err := store.NewDB(":memory:")
	Expect(err).NotTo(HaveOccurred())
	st := store.NewStore(db)
	Expect(st.Migrate(ctx)).To(Succeed())

	base := []config.ConfigurationOption{
		config.SetInstances(instances),
		config.WithArtifacts(config.Artifacts{
			ScreenshotOnRunFailure: true,
			VideosFolder:           filepath.Join(dir, "videos"),
			ScreenshotsFolder:      filepath.Join(dir, "screenshots"),
			MetricsFolder:          filepath.Join(dir, "performance-metrics"),
		}),
		config.WithRun(*config.NewRunWithOptionsAndDefaults(
			config.WithWorkers(2),
			config.WithCIBuildID("build-42"),
		)),
	}
	cfg := config.NewConfigurationWithOptionsAndDefaults(append(base, opts...)...)

	writer := artifacts.NewWriter(cfg.Artifacts)
	runSvc := services.NewRunService(st, browser.NewHTTPDriver(nil), writer, cfg, suite.Builtin()).WithSleeper(noSleep{})

	return &env{
		store:  st,
		cfg:    cfg,
		runSvc: runSvc,
		report: services.NewReportService(st),
		dir:    dir,
	}
}

func (e *env) Close() {
	e.once.Do(func() { _ = e.store.Close() })
}
