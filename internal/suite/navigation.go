package suite

import (
	"github.com/onsi/gomega"
)

func Navigation() Suite {
	return Suite{
		Name: "navigation",
		BeforeEach: func(t *T) error {
			return t.Visit("/")
		},
		Cases: []Case{
			{
				Name: "should have navigation elements",
				Fn: func(t *T) error {
					// BodyVisible fails when there is no body at all
					_, err := t.Page().BodyVisible(t.Context())
					return err
				},
			},
			{
				Name: "should handle page navigation",
				Fn: func(t *T) error {
					t.Expect(t.Page().URL()).To(gomega.ContainSubstring(t.BaseURL()))
					return nil
				},
			},
			{
				Name: "should maintain consistent navigation across instances",
				Fn: func(t *T) error {
					t.Log("Testing navigation consistency on %s", t.BaseURL())
					return expectVisibleBody(t)
				},
			},
			{
				Name: "should load resources correctly",
				Fn: func(t *T) error {
					if err := t.Visit("/"); err != nil {
						return err
					}
					loaded, err := t.Page().DocumentLoaded(t.Context())
					if err != nil {
						return err
					}
					t.Expect(loaded).To(gomega.BeTrue(), "document should be loaded")
					return nil
				},
			},
		},
	}
}
