package suite

import (
	"time"

	"github.com/onsi/gomega"

	"github.com/mikesterific/parallel-instances/pkg/fixtures"
	"github.com/mikesterific/parallel-instances/pkg/instance"
	"github.com/mikesterific/parallel-instances/pkg/visitor"
)

const (
	accessibilityRetries    = 3
	accessibilityRetryDelay = 2 * time.Second
)

func InstanceSpecific() Suite {
	return Suite{
		Name: "instance-specific",
		Cases: []Case{
			{
				Name: "should use instance-specific test data",
				Fn: func(t *T) error {
					username, _ := t.TestData(fixtures.KeyUsername)
					t.Log("Using test data for this instance")
					t.Expect(username).NotTo(gomega.BeEmpty(), "no %q fixture for %s", fixtures.KeyUsername, t.BaseURL())
					return nil
				},
			},
			{
				Name: "should identify the current instance",
				Fn: func(t *T) error {
					t.Log("Current instance: %s", t.BaseURL())
					switch instance.Kind(t.BaseURL()) {
					case instance.KindProduction:
						t.Log("Running production-specific tests")
					case instance.KindStaging:
						t.Log("Running staging-specific tests")
					case instance.KindScaleComputing:
						t.Log("Running Scale Computing-specific tests")
					}
					return nil
				},
			},
			{
				Name: "should handle instance-specific features",
				Fn: func(t *T) error {
					if err := t.Visit("/"); err != nil {
						return err
					}
					if instance.IsProduction(t.BaseURL()) {
						t.Log("Verifying production features")
					} else {
						t.Log("Verifying non-production features")
					}
					return expectVisibleBody(t)
				},
			},
			{
				Name: "should verify instance accessibility",
				Fn: func(t *T) error {
					result, err := t.VisitWithRetry("/",
						visitor.WithRetries(accessibilityRetries),
						visitor.WithRetryDelay(accessibilityRetryDelay),
					)
					if err != nil {
						return err
					}
					if result.Exhausted {
						t.Log("Instance still failing after %d attempts (status %d)", result.Attempts, result.Status)
					}
					if err := expectVisibleBody(t); err != nil {
						return err
					}
					return t.Screenshot("accessibility-check")
				},
			},
			{
				Name: "should test API endpoints with instance-specific keys",
				Fn: func(t *T) error {
					apiKey, _ := t.TestData(fixtures.KeyAPIKey)
					t.Log("Testing with API key for this instance")
					t.Expect(apiKey).NotTo(gomega.BeEmpty(), "no %q fixture for %s", fixtures.KeyAPIKey, t.BaseURL())
					return nil
				},
			},
		},
	}
}
