package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	v1 "github.com/mikesterific/parallel-instances/api/v1"
	"github.com/mikesterific/parallel-instances/internal/artifacts"
	"github.com/mikesterific/parallel-instances/internal/browser"
	"github.com/mikesterific/parallel-instances/internal/config"
	"github.com/mikesterific/parallel-instances/internal/handlers"
	"github.com/mikesterific/parallel-instances/internal/server"
	"github.com/mikesterific/parallel-instances/internal/services"
	"github.com/mikesterific/parallel-instances/internal/store"
	"github.com/mikesterific/parallel-instances/internal/suite"
	"github.com/mikesterific/parallel-instances/test/e2e/infra"
	"github.com/mikesterific/parallel-instances/test/e2e/service"
)

var _ = Describe("parallel instances", Ordered, func() {
	var (
		ctx       context.Context
		cancel    context.CancelFunc
		st        *store.Store
		driver    browser.Driver
		runSrv    *services.RunService
		reportSvc *service.ReportSvc
		srvDone   chan error
		runID     string
	)

	BeforeAll(func() {
		ctx, cancel = context.WithCancel(context.Background())

		Expect(infraManager.StartInstances(
			infra.InstanceSpec{Name: "staging", Title: "Staging"},
			infra.InstanceSpec{Name: "production", Title: "Production", FailFirst: 1},
			infra.InstanceSpec{Name: "scale-computing", Title: "Scale Computing"},
		)).To(Succeed())

		secret := uuid.NewString()
		appCfg := config.NewConfigurationWithOptionsAndDefaults(
			config.SetInstances(infraManager.BaseURLs()),
			config.WithBrowser(*config.NewBrowserWithOptionsAndDefaults(config.WithDriver(cfg.Driver))),
			config.WithArtifacts(*config.NewArtifactsWithOptionsAndDefaults(
				config.WithVideo(false),
				config.WithVideosFolder(filepath.Join(cfg.WorkDir, "videos")),
				config.WithScreenshotsFolder(filepath.Join(cfg.WorkDir, "screenshots")),
				config.WithMetricsFolder(filepath.Join(cfg.WorkDir, "performance-metrics")),
			)),
			config.WithRun(*config.NewRunWithOptionsAndDefaults(config.WithWorkers(3))),
			config.WithStore(config.Store{DBPath: filepath.Join(cfg.WorkDir, "results.duckdb")}),
			config.WithServer(config.Server{ServerMode: server.ModeDev, HTTPPort: cfg.APIPort}),
			config.WithAuth(config.Authentication{Enabled: true, JWTSecret: secret}),
		)
		Expect(appCfg.Validate()).To(Succeed())

		db, err := store.NewDB(appCfg.Store.DBPath)
		Expect(err).NotTo(HaveOccurred())
		st = store.NewStore(db)
		Expect(st.Migrate(ctx)).To(Succeed())

		driver, err = browser.Open(ctx, appCfg.Browser)
		Expect(err).NotTo(HaveOccurred())

		runSrv = services.NewRunService(st, driver, artifacts.NewWriter(appCfg.Artifacts), appCfg, suite.Builtin())
		h := handlers.New(runSrv, services.NewReportService(st), appCfg.ProjectID)
		srv, err := server.NewServer(appCfg, func(router *gin.RouterGroup) {
			handlers.RegisterHandlers(router, h)
		})
		Expect(err).NotTo(HaveOccurred())

		srvDone = make(chan error, 1)
		go func() { srvDone <- srv.Start(ctx) }()

		reportSvc = service.NewReportService(fmt.Sprintf("http://127.0.0.1:%d", cfg.APIPort), func(subject string) (string, error) {
			return server.NewToken(secret, subject, time.Hour)
		})
		Eventually(func() error {
			resp, err := http.Get(fmt.Sprintf("http://127.0.0.1:%d/health", cfg.APIPort))
			if err != nil {
				return err
			}
			resp.Body.Close()
			return nil
		}).WithTimeout(10 * time.Second).Should(Succeed())
	})

	AfterAll(func() {
		runSrv.Stop()
		cancel()
		Eventually(srvDone).WithTimeout(10 * time.Second).Should(Receive(BeNil()))
		Expect(driver.Close()).To(Succeed())
		Expect(st.Close()).To(Succeed())
		Expect(infraManager.StopInstances()).To(Succeed())
	})

	It("should reject requests without a token", func() {
		_, err := reportSvc.ListRuns(ctx)

		var statusErr *service.StatusError
		Expect(errors.As(err, &statusErr)).To(BeTrue())
		Expect(statusErr.Code).To(Equal(http.StatusUnauthorized))
	})

	// Given three instances, one failing its first request
	// When a run is started through the API
	// Then every instance is tested in parallel and the retries absorb the flaky one
	It("should run every instance through the api", func() {
		client := reportSvc.WithSubject("e2e")

		status, err := client.StartRun(ctx, v1.RunModeRun)
		Expect(err).NotTo(HaveOccurred())
		Expect(status.RunId).NotTo(BeNil())
		runID = *status.RunId

		Eventually(func() (v1.RunnerStatusState, error) {
			s, err := client.RunnerStatus(ctx)
			if err != nil {
				return "", err
			}
			return s.State, nil
		}).WithTimeout(5 * time.Minute).WithPolling(time.Second).Should(Equal(v1.RunnerStatusStateCompleted))

		run, err := client.GetRun(ctx, runID)
		Expect(err).NotTo(HaveOccurred())
		Expect(run.FinishedAt).NotTo(BeNil())
		if cfg.InfraMode == "local" {
			Expect(run.Failed).To(BeZero())
		}
		Expect(run.Passed).To(BeNumerically(">", 0))
	})

	It("should compare the instances", func() {
		resp, err := reportSvc.WithSubject("e2e").Compare(ctx, runID)

		Expect(err).NotTo(HaveOccurred())
		Expect(resp.Instances).To(HaveLen(len(infraManager.BaseURLs())))
		if cfg.InfraMode != "local" {
			return
		}
		for _, in := range resp.Instances {
			Expect(in.Failed).To(BeZero(), in.Instance)
			Expect(in.Metrics).NotTo(BeNil(), in.Instance)
		}
	})

	It("should record the retried test of the flaky instance", func() {
		if cfg.InfraMode != "local" {
			Skip("flaky instances only exist in local mode")
		}
		production, ok := infraManager.BaseURL("production")
		Expect(ok).To(BeTrue())

		resp, err := reportSvc.WithSubject("e2e").Results(ctx, runID, url.Values{
			"instance": {production},
			"sort":     {"attempts:desc"},
		})

		Expect(err).NotTo(HaveOccurred())
		Expect(resp.Total).To(BeNumerically(">", 0))
		Expect(resp.Results[0].Attempts).To(Equal(2))
		Expect(resp.Results[0].Status).To(Equal(v1.TestResultStatusPassed))
	})

	It("should serve the metrics of the run", func() {
		metrics, err := reportSvc.WithSubject("e2e").Metrics(ctx, runID)

		Expect(err).NotTo(HaveOccurred())
		Expect(metrics).To(HaveLen(len(infraManager.BaseURLs())))
	})
})
