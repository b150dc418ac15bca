package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	v1 "github.com/mikesterific/parallel-instances/api/v1"
	"github.com/mikesterific/parallel-instances/internal/artifacts"
	"github.com/mikesterific/parallel-instances/internal/browser"
	"github.com/mikesterific/parallel-instances/internal/config"
	"github.com/mikesterific/parallel-instances/internal/handlers"
	"github.com/mikesterific/parallel-instances/internal/models"
	"github.com/mikesterific/parallel-instances/internal/services"
	"github.com/mikesterific/parallel-instances/internal/store"
	"github.com/mikesterific/parallel-instances/internal/suite"
)

const (
	staging    = "https://staging.example.com"
	production = "https://production.example.com"
)

type noSleep struct{}

func (noSleep) Sleep(context.Context, time.Duration) error { return nil }

var _ = Describe("Handlers", func() {
	var (
		ctx      context.Context
		st       *store.Store
		router   *gin.Engine
		instance *httptest.Server
		release  chan struct{}
		runSrv   *services.RunService
	)

	do := func(method, target, body string) *httptest.ResponseRecorder {
		var req *http.Request
		if body != "" {
			req = httptest.NewRequest(method, target, strings.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
		} else {
			req = httptest.NewRequest(method, target, nil)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	decode := func(w *httptest.ResponseRecorder, out any) {
		ExpectWithOffset(1, json.Unmarshal(w.Body.Bytes(), out)).To(Succeed())
	}

	BeforeEach(func() {
		ctx = context.Background()
		release = make(chan struct{})

		// the instance holds every request until released
		instance = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-release:
			case <-r.Context().Done():
				return
			}
			_, _ = w.Write([]byte(`<html><head><title>ok</title></head><body>ok</body></html>`))
		}))

		db, err := store.NewDB(":memory:")
		Expect(err).NotTo(HaveOccurred())
		st = store.NewStore(db)
		Expect(st.Migrate(ctx)).To(Succeed())

		// seed one finished run
		started := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
		Expect(st.Runs().Create(ctx, models.Run{
			ID: "run-1", ProjectID: "my-parallel-project", CIBuildID: "build-42",
			Mode: models.RunModeRun, StartedAt: started,
		})).To(Succeed())
		Expect(st.Runs().Finish(ctx, "run-1", started.Add(time.Minute))).To(Succeed())
		Expect(st.Results().Save(ctx,
			models.TestResult{RunID: "run-1", Instance: staging, Suite: "homepage", Test: "a", Status: models.TestStatusPassed, Attempts: 1, Duration: 10 * time.Millisecond},
			models.TestResult{RunID: "run-1", Instance: staging, Suite: "homepage", Test: "b", Status: models.TestStatusPassed, Attempts: 1, Duration: 30 * time.Millisecond},
			models.TestResult{RunID: "run-1", Instance: production, Suite: "homepage", Test: "a", Status: models.TestStatusFailed, Attempts: 3, Duration: 20 * time.Millisecond, Error: "boom"},
			models.TestResult{RunID: "run-1", Instance: production, Suite: "performance", Test: "c", Status: models.TestStatusSkipped, Attempts: 1},
		)).To(Succeed())
		Expect(st.Metrics().Save(ctx, models.Metrics{
			RunID: "run-1", Instance: staging, LoadTime: 500 * time.Millisecond, TTFB: 40 * time.Millisecond,
			Resources: 12, RecordedAt: started.Add(time.Second),
		})).To(Succeed())

		dir := GinkgoT().TempDir()
		cfg := config.NewConfigurationWithOptionsAndDefaults(
			config.SetInstances([]string{instance.URL + "/staging"}),
			config.WithSpecPattern("homepage"),
			config.WithArtifacts(config.Artifacts{
				VideosFolder:      filepath.Join(dir, "videos"),
				ScreenshotsFolder: filepath.Join(dir, "screenshots"),
				MetricsFolder:     filepath.Join(dir, "metrics"),
			}),
		)
		runSrv = services.NewRunService(st, browser.NewHTTPDriver(nil), artifacts.NewWriter(cfg.Artifacts), cfg, suite.Builtin()).WithSleeper(noSleep{})

		router = gin.New()
		handlers.RegisterHandlers(router.Group("/api/v1"), handlers.New(runSrv, services.NewReportService(st), cfg.ProjectID))
	})

	AfterEach(func() {
		select {
		case <-release:
		default:
			close(release)
		}
		runSrv.Stop()
		instance.Close()
		Expect(st.Close()).To(Succeed())
	})

	Context("runs", func() {
		It("should list runs with counters", func() {
			w := do(http.MethodGet, "/api/v1/runs", "")

			Expect(w.Code).To(Equal(http.StatusOK))
			var resp v1.RunListResponse
			decode(w, &resp)
			Expect(resp.Runs).To(HaveLen(1))
			Expect(resp.Runs[0].Id).To(Equal("run-1"))
			Expect(*resp.Runs[0].CiBuildId).To(Equal("build-42"))
			Expect(resp.Runs[0].Passed).To(Equal(2))
			Expect(resp.Runs[0].Failed).To(Equal(1))
			Expect(resp.Runs[0].Skipped).To(Equal(1))
		})

		It("should return an empty list for another project", func() {
			w := do(http.MethodGet, "/api/v1/runs?projectId=other", "")

			Expect(w.Code).To(Equal(http.StatusOK))
			var resp v1.RunListResponse
			decode(w, &resp)
			Expect(resp.Runs).To(BeEmpty())
		})

		It("should resolve the latest alias", func() {
			w := do(http.MethodGet, "/api/v1/runs/latest", "")

			Expect(w.Code).To(Equal(http.StatusOK))
			var run v1.Run
			decode(w, &run)
			Expect(run.Id).To(Equal("run-1"))
			Expect(run.FinishedAt).NotTo(BeNil())
		})

		It("should return 404 for unknown runs", func() {
			Expect(do(http.MethodGet, "/api/v1/runs/nope", "").Code).To(Equal(http.StatusNotFound))
			Expect(do(http.MethodGet, "/api/v1/runs/nope/results", "").Code).To(Equal(http.StatusNotFound))
			Expect(do(http.MethodGet, "/api/v1/runs/nope/compare", "").Code).To(Equal(http.StatusNotFound))
		})

		It("should compare instances", func() {
			w := do(http.MethodGet, "/api/v1/runs/run-1/compare", "")

			Expect(w.Code).To(Equal(http.StatusOK))
			var resp v1.CompareResponse
			decode(w, &resp)
			Expect(resp.Run.Id).To(Equal("run-1"))
			Expect(resp.Instances).To(HaveLen(2))
			Expect(resp.Instances[0].Instance).To(Equal(production))
			Expect(resp.Instances[0].Metrics).To(BeNil())
			Expect(resp.Instances[1].Instance).To(Equal(staging))
			Expect(resp.Instances[1].Metrics.LoadTimeMs).To(Equal(int64(500)))
		})
	})

	Context("results", func() {
		It("should page results", func() {
			w := do(http.MethodGet, "/api/v1/runs/run-1/results?pageSize=3&page=2", "")

			Expect(w.Code).To(Equal(http.StatusOK))
			var resp v1.TestResultListResponse
			decode(w, &resp)
			Expect(resp.Total).To(Equal(4))
			Expect(resp.Page).To(Equal(2))
			Expect(resp.PageCount).To(Equal(2))
			Expect(resp.Results).To(HaveLen(1))
		})

		It("should filter and sort", func() {
			w := do(http.MethodGet, "/api/v1/runs/run-1/results?instance="+staging+"&sort=duration:desc", "")

			Expect(w.Code).To(Equal(http.StatusOK))
			var resp v1.TestResultListResponse
			decode(w, &resp)
			Expect(resp.Total).To(Equal(2))
			Expect(resp.Results[0].Test).To(Equal("b"))
			Expect(resp.Results[0].DurationMs).To(Equal(int64(30)))
		})

		It("should expose the error of failed tests", func() {
			w := do(http.MethodGet, "/api/v1/runs/run-1/results?status=failed", "")

			var resp v1.TestResultListResponse
			decode(w, &resp)
			Expect(resp.Results).To(HaveLen(1))
			Expect(*resp.Results[0].Error).To(Equal("boom"))
			Expect(resp.Results[0].Attempts).To(Equal(3))
		})

		DescribeTable("invalid queries",
			func(query string) {
				Expect(do(http.MethodGet, "/api/v1/runs/run-1/results?"+query, "").Code).To(Equal(http.StatusBadRequest))
			},
			Entry("sort without direction", "sort=duration"),
			Entry("unknown sort field", "sort=color:asc"),
			Entry("bad direction", "sort=duration:up"),
			Entry("unknown status", "status=flaky"),
			Entry("non numeric page", "page=abc"),
		)
	})

	Context("metrics", func() {
		It("should return the latest metrics per instance", func() {
			w := do(http.MethodGet, "/api/v1/metrics", "")

			Expect(w.Code).To(Equal(http.StatusOK))
			var resp v1.MetricsListResponse
			decode(w, &resp)
			Expect(resp.Metrics).To(HaveLen(1))
			Expect(resp.Metrics[0].Instance).To(Equal(staging))
			Expect(resp.Metrics[0].Resources).To(Equal(12))
		})

		It("should return 404 when an instance has no metrics", func() {
			Expect(do(http.MethodGet, "/api/v1/metrics?instance="+production, "").Code).To(Equal(http.StatusNotFound))
		})
	})

	Context("runner", func() {
		It("should be ready before any run", func() {
			w := do(http.MethodGet, "/api/v1/runner", "")

			var status v1.RunnerStatus
			decode(w, &status)
			Expect(status.State).To(Equal(v1.RunnerStatusStateReady))
		})

		// Given a run started through the API
		// When a second run is requested while it is in progress
		// Then the second request is rejected and the first completes once the instance answers
		It("should start a run and reject concurrent ones", func() {
			// Act
			w := do(http.MethodPost, "/api/v1/runs", `{"mode":"run"}`)

			// Assert
			Expect(w.Code).To(Equal(http.StatusAccepted))
			var status v1.RunnerStatus
			decode(w, &status)
			Expect(status.State).To(Equal(v1.RunnerStatusStateRunning))
			Expect(status.RunId).NotTo(BeNil())

			Expect(do(http.MethodPost, "/api/v1/runs", "").Code).To(Equal(http.StatusConflict))

			close(release)
			Eventually(func() v1.RunnerStatusState {
				var s v1.RunnerStatus
				decode(do(http.MethodGet, "/api/v1/runner", ""), &s)
				return s.State
			}).WithTimeout(10 * time.Second).Should(Equal(v1.RunnerStatusStateCompleted))

			run := do(http.MethodGet, "/api/v1/runs/"+*status.RunId, "")
			Expect(run.Code).To(Equal(http.StatusOK))
		})

		It("should stop a run", func() {
			Expect(do(http.MethodPost, "/api/v1/runs", "").Code).To(Equal(http.StatusAccepted))

			w := do(http.MethodDelete, "/api/v1/runner", "")

			var status v1.RunnerStatus
			decode(w, &status)
			Expect(status.State).To(Equal(v1.RunnerStatusStateError))
		})

		It("should reject unknown modes", func() {
			Expect(do(http.MethodPost, "/api/v1/runs", `{"mode":"watch"}`).Code).To(Equal(http.StatusBadRequest))
		})
	})
})
