package services_test

import (
	"context"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/mikesterific/parallel-instances/internal/models"
	"github.com/mikesterific/parallel-instances/internal/services"
	"github.com/mikesterific/parallel-instances/internal/store"
	srvErrors "github.com/mikesterific/parallel-instances/pkg/errors"
)

var _ = Describe("ReportService", func() {
	var (
		ctx        context.Context
		healthy    *httptest.Server
		broken     *httptest.Server
		e          *env
		runID      string
		staging    string
		production string
	)

	BeforeEach(func() {
		ctx = context.Background()
		healthy = newInstance(http.StatusOK)
		broken = newInstance(http.StatusInternalServerError)
		staging = healthy.URL + "/staging"
		production = broken.URL + "/production"

		e = newEnv(ctx, GinkgoT().TempDir(), []string{staging, production})
		report, err := e.runSvc.Run(ctx, models.RunModeRun)
		Expect(err).NotTo(HaveOccurred())
		runID = report.Summary.Run.ID
	})

	AfterEach(func() {
		e.Close()
		healthy.Close()
		broken.Close()
	})

	It("should list runs with their counters", func() {
		runs, err := e.report.ListRuns(ctx, e.cfg.ProjectID, 0)

		Expect(err).NotTo(HaveOccurred())
		Expect(runs).To(HaveLen(1))
		Expect(runs[0].Run.ID).To(Equal(runID))
		Expect(runs[0].Passed + runs[0].Failed + runs[0].Skipped).To(Equal(36))
	})

	It("should resolve the latest run", func() {
		id, err := e.report.ResolveRunID(ctx, e.cfg.ProjectID, "")
		Expect(err).NotTo(HaveOccurred())
		Expect(id).To(Equal(runID))

		id, err = e.report.ResolveRunID(ctx, e.cfg.ProjectID, "explicit")
		Expect(err).NotTo(HaveOccurred())
		Expect(id).To(Equal("explicit"))

		_, err = e.report.ResolveRunID(ctx, "other-project", "")
		Expect(srvErrors.IsResourceNotFoundError(err)).To(BeTrue())
	})

	It("should return ResourceNotFoundError for an unknown run", func() {
		_, err := e.report.GetRun(ctx, "missing")
		Expect(srvErrors.IsResourceNotFoundError(err)).To(BeTrue())

		_, err = e.report.Compare(ctx, "missing")
		Expect(srvErrors.IsResourceNotFoundError(err)).To(BeTrue())
	})

	// Given a run with 36 results
	// When results are paged by 10 with an offset of 30
	// Then the page holds the last 6 results and the total ignores paging
	It("should page results and count the total", func() {
		// Act
		res, err := e.report.ListResults(ctx, services.ResultListParams{RunID: runID, Limit: 10, Offset: 30})

		// Assert
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Results).To(HaveLen(6))
		Expect(res.Total).To(Equal(36))
	})

	It("should filter results by instance and status", func() {
		res, err := e.report.ListResults(ctx, services.ResultListParams{
			RunID:     runID,
			Instances: []string{production},
			Statuses:  []string{string(models.TestStatusFailed)},
			Sort:      []store.SortParam{{Field: "test"}},
		})

		Expect(err).NotTo(HaveOccurred())
		Expect(res.Results).NotTo(BeEmpty())
		Expect(res.Total).To(Equal(len(res.Results)))
		for _, r := range res.Results {
			Expect(r.Instance).To(Equal(production))
			Expect(r.Status).To(Equal(models.TestStatusFailed))
		}
	})

	It("should return the metrics of the run and the latest metrics", func() {
		metrics, err := e.report.Metrics(ctx, runID)
		Expect(err).NotTo(HaveOccurred())
		Expect(metrics).To(HaveLen(1))
		Expect(metrics[0].Instance).To(Equal(staging))

		latest, err := e.report.Metrics(ctx, "", staging)
		Expect(err).NotTo(HaveOccurred())
		Expect(latest).To(HaveLen(1))

		_, err = e.report.Metrics(ctx, "missing")
		Expect(srvErrors.IsResourceNotFoundError(err)).To(BeTrue())
	})

	// Given a healthy staging and a broken production instance
	// When the run is compared
	// Then staging has no failures and metrics while production only failures
	It("should compare instances", func() {
		// Act
		summaries, err := e.report.Compare(ctx, runID)

		// Assert
		Expect(err).NotTo(HaveOccurred())
		Expect(summaries).To(HaveLen(2))

		byInstance := map[string]models.InstanceSummary{}
		for _, s := range summaries {
			byInstance[s.Instance] = s
		}
		Expect(byInstance[staging].Failed).To(BeZero())
		Expect(byInstance[staging].Metrics).NotTo(BeNil())
		Expect(byInstance[production].Failed).To(BeNumerically(">", 0))
		Expect(byInstance[production].Metrics).To(BeNil())
	})
})
