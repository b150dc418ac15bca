package suite

import (
	"time"

	"github.com/onsi/gomega"
)

const homepageLoadBudget = 5 * time.Second

func Homepage() Suite {
	return Suite{
		Name: "homepage",
		Cases: []Case{
			{
				Name: "should load the homepage successfully",
				Fn: func(t *T) error {
					if err := t.Visit("/"); err != nil {
						return err
					}
					t.Expect(t.Page().URL()).To(gomega.ContainSubstring(t.BaseURL()))
					return nil
				},
			},
			{
				Name: "should display the page title",
				Fn: func(t *T) error {
					if err := t.Visit("/"); err != nil {
						return err
					}
					title, err := t.Page().Title(t.Context())
					if err != nil {
						return err
					}
					t.Expect(title).NotTo(gomega.BeEmpty())
					return nil
				},
			},
			{
				Name: "should have a visible body element",
				Fn:   visitAndExpectVisibleBody,
			},
			{
				Name: "should load within acceptable time",
				Fn: func(t *T) error {
					start := time.Now()
					if err := t.Visit("/"); err != nil {
						return err
					}
					loadTime := time.Since(start)
					t.Log("Page load time: %dms", loadTime.Milliseconds())
					t.Expect(loadTime).To(gomega.BeNumerically("<", homepageLoadBudget))
					return nil
				},
			},
			{
				Name: "should take a screenshot of the homepage",
				Fn: func(t *T) error {
					if err := t.Visit("/"); err != nil {
						return err
					}
					return t.Screenshot("homepage")
				},
			},
		},
	}
}

func visitAndExpectVisibleBody(t *T) error {
	if err := t.Visit("/"); err != nil {
		return err
	}
	return expectVisibleBody(t)
}

func expectVisibleBody(t *T) error {
	visible, err := t.Page().BodyVisible(t.Context())
	if err != nil {
		return err
	}
	t.Expect(visible).To(gomega.BeTrue(), "body should be visible")
	return nil
}
