package visitor_test

import (
	"context"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/mikesterific/parallel-instances/pkg/visitor"
)

// scriptedLoader returns statuses in order and repeats the last one.
type scriptedLoader struct {
	statuses []int
	err      error
	urls     []string
}

func (l *scriptedLoader) Goto(_ context.Context, url string) (int, error) {
	l.urls = append(l.urls, url)
	if l.err != nil {
		return 0, l.err
	}
	i := len(l.urls) - 1
	if i >= len(l.statuses) {
		i = len(l.statuses) - 1
	}
	return l.statuses[i], nil
}

type recordingSleeper struct {
	waits []time.Duration
}

func (s *recordingSleeper) Sleep(_ context.Context, d time.Duration) error {
	s.waits = append(s.waits, d)
	return nil
}

var _ = Describe("Visitor", func() {
	var (
		ctx     context.Context
		sleeper *recordingSleeper
	)

	BeforeEach(func() {
		ctx = context.Background()
		sleeper = &recordingSleeper{}
	})

	Describe("VisitWithRetry", func() {
		It("should stop after the first successful load", func() {
			loader := &scriptedLoader{statuses: []int{200}}
			v := visitor.New(loader, sleeper)

			res, err := v.VisitWithRetry(ctx, "http://localhost:3000", "/")

			Expect(err).NotTo(HaveOccurred())
			Expect(res.Attempts).To(Equal(1))
			Expect(res.Status).To(Equal(200))
			Expect(res.OK()).To(BeTrue())
			Expect(res.Err()).NotTo(HaveOccurred())
			Expect(loader.urls).To(Equal([]string{"http://localhost:3000/"}))
			Expect(sleeper.waits).To(BeEmpty())
		})

		// Given a zero retry budget
		// When the target fails
		// Then exactly one attempt is made
		It("should make exactly one attempt with zero retries", func() {
			loader := &scriptedLoader{statuses: []int{503}}
			v := visitor.New(loader, sleeper)

			res, err := v.VisitWithRetry(ctx, "http://localhost:3000", "/", visitor.WithRetries(0))

			Expect(err).NotTo(HaveOccurred())
			Expect(res.Attempts).To(Equal(1))
			Expect(res.Exhausted).To(BeTrue())
			Expect(sleeper.waits).To(BeEmpty())
		})

		It("should make one attempt with zero retries on success too", func() {
			loader := &scriptedLoader{statuses: []int{200}}
			v := visitor.New(loader, sleeper)

			res, err := v.VisitWithRetry(ctx, "http://localhost:3000", "/", visitor.WithRetries(0))

			Expect(err).NotTo(HaveOccurred())
			Expect(res.Attempts).To(Equal(1))
			Expect(res.Exhausted).To(BeFalse())
		})

		// Given a permanently failing target and a budget of 3
		// When visiting
		// Then 4 attempts are made with the fixed delay between each
		It("should make retries+1 attempts on a permanently failing target", func() {
			loader := &scriptedLoader{statuses: []int{500}}
			v := visitor.New(loader, sleeper)

			res, err := v.VisitWithRetry(ctx, "http://localhost:3000", "/",
				visitor.WithRetries(3), visitor.WithRetryDelay(10*time.Millisecond))

			Expect(err).NotTo(HaveOccurred())
			Expect(res.Attempts).To(Equal(4))
			Expect(res.Status).To(Equal(500))
			Expect(res.Exhausted).To(BeTrue())
			Expect(res.Err()).To(MatchError(visitor.ErrRetriesExhausted))
			Expect(sleeper.waits).To(HaveLen(3))
			for _, w := range sleeper.waits {
				Expect(w).To(BeNumerically(">=", 10*time.Millisecond))
			}
		})

		It("should use the default budget and delay", func() {
			loader := &scriptedLoader{statuses: []int{404}}
			v := visitor.New(loader, sleeper)

			res, err := v.VisitWithRetry(ctx, "http://localhost:3000", "/missing")

			Expect(err).NotTo(HaveOccurred())
			Expect(res.Attempts).To(Equal(visitor.DefaultRetries + 1))
			Expect(sleeper.waits).To(HaveEach(visitor.DefaultRetryDelay))
		})

		It("should recover when the target comes back", func() {
			loader := &scriptedLoader{statuses: []int{502, 502, 200}}
			v := visitor.New(loader, sleeper)

			res, err := v.VisitWithRetry(ctx, "http://localhost:3000", "/", visitor.WithRetries(5))

			Expect(err).NotTo(HaveOccurred())
			Expect(res.Attempts).To(Equal(3))
			Expect(res.Status).To(Equal(200))
			Expect(res.Exhausted).To(BeFalse())
		})

		It("should treat negative retries as zero", func() {
			loader := &scriptedLoader{statuses: []int{500}}
			v := visitor.New(loader, sleeper)

			res, err := v.VisitWithRetry(ctx, "http://localhost:3000", "/", visitor.WithRetries(-2))

			Expect(err).NotTo(HaveOccurred())
			Expect(res.Attempts).To(Equal(1))
		})

		It("should return loader errors without retrying", func() {
			loader := &scriptedLoader{err: errors.New("connection refused")}
			v := visitor.New(loader, sleeper)

			res, err := v.VisitWithRetry(ctx, "http://localhost:3000", "/")

			Expect(err).To(MatchError(ContainSubstring("connection refused")))
			Expect(res.Attempts).To(Equal(1))
			Expect(sleeper.waits).To(BeEmpty())
		})

		It("should stop waiting when the context is cancelled", func() {
			loader := &scriptedLoader{statuses: []int{500}}
			cctx, cancel := context.WithCancel(ctx)
			v := visitor.New(loader, visitor.SleeperFunc(func(ctx context.Context, _ time.Duration) error {
				cancel()
				return ctx.Err()
			}))

			res, err := v.VisitWithRetry(cctx, "http://localhost:3000", "/", visitor.WithRetries(3))

			Expect(err).To(MatchError(context.Canceled))
			Expect(res.Attempts).To(Equal(1))
		})

		It("should wait at least the delay with the real timer", func() {
			loader := &scriptedLoader{statuses: []int{500}}
			v := visitor.New(loader, nil)

			start := time.Now()
			res, err := v.VisitWithRetry(ctx, "http://localhost:3000", "/",
				visitor.WithRetries(3), visitor.WithRetryDelay(10*time.Millisecond))

			Expect(err).NotTo(HaveOccurred())
			Expect(res.Attempts).To(Equal(4))
			Expect(time.Since(start)).To(BeNumerically(">=", 30*time.Millisecond))
		})
	})
})
