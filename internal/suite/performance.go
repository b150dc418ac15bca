package suite

import (
	"context"
	"errors"
	"time"

	"github.com/onsi/gomega"

	"github.com/mikesterific/parallel-instances/internal/models"
	srvErrors "github.com/mikesterific/parallel-instances/pkg/errors"
	"github.com/mikesterific/parallel-instances/pkg/instance"
)

const (
	loadTimeBudget     = 10 * time.Second
	maxResponseTime    = 5 * time.Second
	slowResourceBudget = time.Second
	maxResources       = 200
)

func Performance() Suite {
	return Suite{
		Name: "performance",
		Cases: []Case{
			{
				Name: "should measure page load performance",
				Fn: func(t *T) error {
					start := time.Now()
					if err := t.Visit("/"); err != nil {
						return err
					}
					loadTime := time.Since(start)
					t.Log("Total load time: %dms", loadTime.Milliseconds())

					timing, err := t.Page().Timing(t.Context())
					if err != nil {
						return err
					}
					t.Log("DNS lookup: %dms", timing.DNS.Milliseconds())
					t.Log("TCP connection: %dms", timing.TCP.Milliseconds())
					t.Log("Time to first byte: %dms", timing.TTFB.Milliseconds())

					t.Expect(loadTime).To(gomega.BeNumerically("<", loadTimeBudget))
					return nil
				},
			},
			{
				Name: "should compare performance across instances",
				Fn:   comparePerformance,
			},
			{
				Name: "should verify resource loading",
				Fn: func(t *T) error {
					if err := t.Visit("/"); err != nil {
						return err
					}
					resources, err := t.Page().Resources(t.Context())
					if err := t.SkipIfUnsupported(err); err != nil {
						return err
					}
					t.Log("Total resources loaded: %d", len(resources))

					var slow []models.ResourceTiming
					for _, r := range resources {
						if r.Duration > slowResourceBudget {
							slow = append(slow, r)
						}
					}
					if len(slow) > 0 {
						t.Log("Slow resources found: %d", len(slow))
						for _, r := range slow {
							t.Log("Slow resource: %s (%dms)", r.Name, r.Duration.Milliseconds())
						}
					}

					t.Expect(len(resources)).To(gomega.BeNumerically("<", maxResources))
					return nil
				},
			},
			{
				Name: "should verify response times are acceptable",
				Fn: func(t *T) error {
					ctx, cancel := context.WithTimeout(t.Context(), maxResponseTime)
					defer cancel()

					url := instance.JoinURL(t.BaseURL(), "/")
					status, err := t.Page().Goto(ctx, url)
					if err != nil {
						return err
					}
					t.Expect(status).To(gomega.BeNumerically("<", 400), "status of %s", url)
					if err := expectVisibleBody(t); err != nil {
						return err
					}
					t.Log("Page responded within acceptable time")
					return nil
				},
			},
		},
	}
}

// comparePerformance records the load time of the instance and writes it to
// the metrics folder so runs against different instances can be compared.
func comparePerformance(t *T) error {
	start := time.Now()
	if err := t.Visit("/"); err != nil {
		return err
	}
	m := models.Metrics{
		LoadTime:   time.Since(start),
		RecordedAt: time.Now(),
	}

	if timing, err := t.Page().Timing(t.Context()); err == nil {
		m.DNS, m.TCP, m.TTFB = timing.DNS, timing.TCP, timing.TTFB
	}
	resources, err := t.Page().Resources(t.Context())
	switch {
	case err == nil:
		m.Resources = len(resources)
	case !errors.Is(err, srvErrors.ErrUnsupported):
		return err
	}

	t.Log("Instance: %s", t.BaseURL())
	t.Log("Load time: %dms", m.LoadTime.Milliseconds())

	t.RecordMetrics(m)
	m.Instance = t.BaseURL()
	path, err := t.Artifacts().WriteMetrics(m)
	if err != nil {
		return err
	}
	t.Log("Metrics written to %s", path)
	return nil
}
