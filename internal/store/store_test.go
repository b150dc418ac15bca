package store_test

import (
	"context"
	"database/sql"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/mikesterific/parallel-instances/internal/models"
	"github.com/mikesterific/parallel-instances/internal/store"
	srvErrors "github.com/mikesterific/parallel-instances/pkg/errors"
)

const (
	staging    = "https://staging.example.com"
	production = "https://production.example.com"
)

func newTestStore(ctx context.Context) (*store.Store, *sql.DB) {
	db, err := store.NewDB(":memory:")
	Expect(err).NotTo(HaveOccurred())

	s := store.NewStore(db)
	Expect(s.Migrate(ctx)).To(Succeed())
	return s, db
}

func sampleRun(id string, startedAt time.Time) models.Run {
	return models.Run{
		ID:        id,
		ProjectID: "my-parallel-project",
		Mode:      models.RunModeRun,
		StartedAt: startedAt,
	}
}

var _ = Describe("RunStore", func() {
	var (
		ctx context.Context
		s   *store.Store
		db  *sql.DB
	)

	BeforeEach(func() {
		ctx = context.Background()
		s, db = newTestStore(ctx)
	})

	AfterEach(func() {
		if db != nil {
			db.Close()
		}
	})

	Context("Get", func() {
		It("should return ResourceNotFoundError for an unknown run", func() {
			// Act
			_, err := s.Runs().Get(ctx, "missing")

			// Assert
			Expect(err).To(HaveOccurred())
			Expect(srvErrors.IsResourceNotFoundError(err)).To(BeTrue())
		})

		// Given a created run
		// When we retrieve it
		// Then every field should round trip and it should not be finished yet
		It("should return a created run", func() {
			// Arrange
			started := time.Now().Truncate(time.Millisecond)
			run := sampleRun("run-1", started)
			run.CIBuildID = "build-42"
			Expect(s.Runs().Create(ctx, run)).To(Succeed())

			// Act
			got, err := s.Runs().Get(ctx, "run-1")

			// Assert
			Expect(err).NotTo(HaveOccurred())
			Expect(got.ProjectID).To(Equal("my-parallel-project"))
			Expect(got.CIBuildID).To(Equal("build-42"))
			Expect(got.Mode).To(Equal(models.RunModeRun))
			Expect(got.StartedAt).To(BeTemporally("~", started, time.Millisecond))
			Expect(got.FinishedAt).To(BeNil())
		})
	})

	Context("Finish", func() {
		It("should stamp the finish time", func() {
			// Arrange
			started := time.Now()
			Expect(s.Runs().Create(ctx, sampleRun("run-1", started))).To(Succeed())

			// Act
			finished := started.Add(5 * time.Second)
			err := s.Runs().Finish(ctx, "run-1", finished)

			// Assert
			Expect(err).NotTo(HaveOccurred())
			got, err := s.Runs().Get(ctx, "run-1")
			Expect(err).NotTo(HaveOccurred())
			Expect(got.FinishedAt).NotTo(BeNil())
			Expect(*got.FinishedAt).To(BeTemporally("~", finished, time.Millisecond))
		})

		It("should fail for an unknown run", func() {
			err := s.Runs().Finish(ctx, "missing", time.Now())
			Expect(srvErrors.IsResourceNotFoundError(err)).To(BeTrue())
		})
	})

	Context("List", func() {
		It("should list runs newest first", func() {
			// Arrange
			now := time.Now()
			Expect(s.Runs().Create(ctx, sampleRun("old", now.Add(-time.Hour)))).To(Succeed())
			Expect(s.Runs().Create(ctx, sampleRun("new", now))).To(Succeed())

			// Act
			runs, err := s.Runs().List(ctx)

			// Assert
			Expect(err).NotTo(HaveOccurred())
			Expect(runs).To(HaveLen(2))
			Expect(runs[0].ID).To(Equal("new"))
			Expect(runs[1].ID).To(Equal("old"))
		})

		It("should filter by project and limit", func() {
			// Arrange
			now := time.Now()
			other := sampleRun("other", now)
			other.ProjectID = "other-project"
			Expect(s.Runs().Create(ctx, other)).To(Succeed())
			Expect(s.Runs().Create(ctx, sampleRun("a", now.Add(-time.Minute)))).To(Succeed())
			Expect(s.Runs().Create(ctx, sampleRun("b", now.Add(-2*time.Minute)))).To(Succeed())

			// Act
			runs, err := s.Runs().List(ctx, store.ByProject("my-parallel-project"), store.WithLimit(1))

			// Assert
			Expect(err).NotTo(HaveOccurred())
			Expect(runs).To(HaveLen(1))
			Expect(runs[0].ID).To(Equal("a"))
		})
	})
})

var _ = Describe("ResultStore", func() {
	var (
		ctx context.Context
		s   *store.Store
		db  *sql.DB
	)

	BeforeEach(func() {
		ctx = context.Background()
		s, db = newTestStore(ctx)

		Expect(s.Results().Save(ctx,
			models.TestResult{RunID: "run-1", Instance: staging, Suite: "homepage", Test: "should load", Status: models.TestStatusPassed, Attempts: 1, Duration: 1500 * time.Millisecond},
			models.TestResult{RunID: "run-1", Instance: staging, Suite: "navigation", Test: "should navigate", Status: models.TestStatusFailed, Attempts: 3, Error: "status 503"},
			models.TestResult{RunID: "run-1", Instance: production, Suite: "homepage", Test: "should load", Status: models.TestStatusPassed, Attempts: 1},
			models.TestResult{RunID: "run-1", Instance: production, Suite: "performance", Test: "should record", Status: models.TestStatusSkipped},
			models.TestResult{RunID: "run-2", Instance: staging, Suite: "homepage", Test: "should load", Status: models.TestStatusPassed, Attempts: 1},
		)).To(Succeed())
	})

	AfterEach(func() {
		if db != nil {
			db.Close()
		}
	})

	Context("List", func() {
		It("should round trip durations and errors", func() {
			// Act
			results, err := s.Results().List(ctx, store.ByRun("run-1"), store.ByInstances(staging))

			// Assert
			Expect(err).NotTo(HaveOccurred())
			Expect(results).To(HaveLen(2))
			Expect(results[0].Suite).To(Equal("homepage"))
			Expect(results[0].Duration).To(Equal(1500 * time.Millisecond))
			Expect(results[0].Error).To(BeEmpty())
			Expect(results[1].Status).To(Equal(models.TestStatusFailed))
			Expect(results[1].Attempts).To(Equal(3))
			Expect(results[1].Error).To(Equal("status 503"))
		})

		It("should filter by status and suite", func() {
			results, err := s.Results().List(ctx,
				store.ByRun("run-1"),
				store.ByStatus(string(models.TestStatusPassed)),
				store.BySuites("homepage"),
			)

			Expect(err).NotTo(HaveOccurred())
			Expect(results).To(HaveLen(2))
			for _, r := range results {
				Expect(r.Suite).To(Equal("homepage"))
				Expect(r.Status).To(Equal(models.TestStatusPassed))
			}
		})

		It("should sort and page", func() {
			results, err := s.Results().List(ctx,
				store.ByRun("run-1"),
				store.WithSort([]store.SortParam{{Field: "attempts", Desc: true}}),
				store.WithLimit(1),
			)

			Expect(err).NotTo(HaveOccurred())
			Expect(results).To(HaveLen(1))
			Expect(results[0].Attempts).To(Equal(3))

			results, err = s.Results().List(ctx, store.ByRun("run-1"), store.WithLimit(2), store.WithOffset(3))
			Expect(err).NotTo(HaveOccurred())
			Expect(results).To(HaveLen(1))
		})

		It("should ignore unknown sort fields", func() {
			results, err := s.Results().List(ctx, store.ByRun("run-1"), store.WithSort([]store.SortParam{{Field: "nope"}}))
			Expect(err).NotTo(HaveOccurred())
			Expect(results).To(HaveLen(4))
		})
	})

	Context("Count", func() {
		It("should count with filters", func() {
			total, err := s.Results().Count(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(Equal(5))

			count, err := s.Results().Count(ctx, store.ByRun("run-1"), store.ByInstances(production))
			Expect(err).NotTo(HaveOccurred())
			Expect(count).To(Equal(2))
		})
	})

	Context("Summarize", func() {
		It("should count results per status", func() {
			summary, err := s.Results().Summarize(ctx, sampleRun("run-1", time.Now()))

			Expect(err).NotTo(HaveOccurred())
			Expect(summary.Passed).To(Equal(2))
			Expect(summary.Failed).To(Equal(1))
			Expect(summary.Skipped).To(Equal(1))
		})

		It("should return zero counters for an empty run", func() {
			summary, err := s.Results().Summarize(ctx, sampleRun("run-9", time.Now()))

			Expect(err).NotTo(HaveOccurred())
			Expect(summary.Passed + summary.Failed + summary.Skipped).To(BeZero())
		})
	})
})

var _ = Describe("MetricStore", func() {
	var (
		ctx context.Context
		s   *store.Store
		db  *sql.DB
	)

	BeforeEach(func() {
		ctx = context.Background()
		s, db = newTestStore(ctx)
	})

	AfterEach(func() {
		if db != nil {
			db.Close()
		}
	})

	It("should return MetricsNotFound when nothing was recorded", func() {
		_, err := s.Metrics().Latest(ctx)
		Expect(srvErrors.IsResourceNotFoundError(err)).To(BeTrue())
	})

	// Given two recordings for staging and one for production
	// When we ask for the latest metrics
	// Then only the newest staging record and the production record are returned
	It("should return the latest record per instance", func() {
		// Arrange
		now := time.Now()
		Expect(s.Metrics().Save(ctx, models.Metrics{RunID: "run-1", Instance: staging, LoadTime: 900 * time.Millisecond, RecordedAt: now.Add(-time.Hour)})).To(Succeed())
		Expect(s.Metrics().Save(ctx, models.Metrics{RunID: "run-2", Instance: staging, LoadTime: 700 * time.Millisecond, DNS: 12 * time.Millisecond, Resources: 14, RecordedAt: now})).To(Succeed())
		Expect(s.Metrics().Save(ctx, models.Metrics{RunID: "run-2", Instance: production, LoadTime: 400 * time.Millisecond, RecordedAt: now})).To(Succeed())

		// Act
		latest, err := s.Metrics().Latest(ctx)

		// Assert
		Expect(err).NotTo(HaveOccurred())
		Expect(latest).To(HaveLen(2))
		Expect(latest[0].Instance).To(Equal(production))
		Expect(latest[1].Instance).To(Equal(staging))
		Expect(latest[1].RunID).To(Equal("run-2"))
		Expect(latest[1].LoadTime).To(Equal(700 * time.Millisecond))
		Expect(latest[1].DNS).To(Equal(12 * time.Millisecond))
		Expect(latest[1].Resources).To(Equal(14))
	})

	It("should filter latest metrics by instance", func() {
		Expect(s.Metrics().Save(ctx, models.Metrics{RunID: "run-1", Instance: staging, RecordedAt: time.Now()})).To(Succeed())

		_, err := s.Metrics().Latest(ctx, store.ByInstances(production))
		Expect(srvErrors.IsResourceNotFoundError(err)).To(BeTrue())

		all, err := s.Metrics().List(ctx, store.ByRun("run-1"))
		Expect(err).NotTo(HaveOccurred())
		Expect(all).To(HaveLen(1))
	})
})

var _ = Describe("Store", func() {
	var (
		ctx context.Context
		s   *store.Store
		db  *sql.DB
	)

	BeforeEach(func() {
		ctx = context.Background()
		s, db = newTestStore(ctx)
	})

	AfterEach(func() {
		if db != nil {
			db.Close()
		}
	})

	It("should roll back a failed transaction", func() {
		boom := errors.New("boom")

		err := s.WithTx(ctx, func(runs *store.RunStore, results *store.ResultStore, _ *store.MetricStore) error {
			Expect(runs.Create(ctx, sampleRun("run-1", time.Now()))).To(Succeed())
			return boom
		})

		Expect(err).To(MatchError(boom))
		_, err = s.Runs().Get(ctx, "run-1")
		Expect(srvErrors.IsResourceNotFoundError(err)).To(BeTrue())
	})

	It("should commit a successful transaction", func() {
		err := s.WithTx(ctx, func(runs *store.RunStore, results *store.ResultStore, _ *store.MetricStore) error {
			if err := runs.Create(ctx, sampleRun("run-1", time.Now())); err != nil {
				return err
			}
			return results.Save(ctx, models.TestResult{RunID: "run-1", Instance: staging, Suite: "homepage", Test: "should load", Status: models.TestStatusPassed, Attempts: 1})
		})

		Expect(err).NotTo(HaveOccurred())
		count, err := s.Results().Count(ctx, store.ByRun("run-1"))
		Expect(err).NotTo(HaveOccurred())
		Expect(count).To(Equal(1))
	})
})
