package fixtures_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/mikesterific/parallel-instances/pkg/fixtures"
)

var _ = Describe("Resolve", func() {
	DescribeTable("known instances",
		func(baseURL, key, expected string) {
			v, ok := fixtures.Resolve(baseURL, key)
			Expect(ok).To(BeTrue())
			Expect(v).To(Equal(expected))
		},
		Entry("production username", "https://production.example.com", fixtures.KeyUsername, "prod_user"),
		Entry("production api key", "https://production.example.com", fixtures.KeyAPIKey, "prod_api_key"),
		Entry("staging test item", "https://staging.example.com", fixtures.KeyTestItem, "Staging Item"),
		Entry("development username", "http://development.local:3000", fixtures.KeyUsername, "dev_user"),
		Entry("scale-computing api key", "https://scale-computing.example.com:8080", fixtures.KeyAPIKey, "scale_api_key"),
	)

	// Given a known instance
	// When an unknown field is requested
	// Then nothing is found
	It("should return not found for an unknown key", func() {
		v, ok := fixtures.Resolve("https://staging.example.com", "password")
		Expect(ok).To(BeFalse())
		Expect(v).To(BeEmpty())
	})

	It("should return not found for every key of an unknown instance", func() {
		for _, key := range []string{fixtures.KeyUsername, fixtures.KeyAPIKey, fixtures.KeyTestItem, "other"} {
			_, ok := fixtures.Resolve("http://localhost:3000", key)
			Expect(ok).To(BeFalse(), key)
		}
	})

	It("should resolve identical data for two urls sharing a fragment", func() {
		a, okA := fixtures.Lookup("https://staging.example.com")
		b, okB := fixtures.Lookup("http://app-staging-2.internal:8080/path")
		Expect(okA).To(BeTrue())
		Expect(okB).To(BeTrue())
		Expect(a).To(Equal(b))
	})

	Context("overlapping fragments", func() {
		// Given a url containing both "production" and "staging"
		// When it is resolved
		// Then the first entry in table order wins
		It("should prefer the first matching entry", func() {
			v, ok := fixtures.Resolve("https://staging-mirror-of-production.example.com", fixtures.KeyUsername)
			Expect(ok).To(BeTrue())
			Expect(v).To(Equal("prod_user"))
		})

		It("should follow the order of a custom table", func() {
			table := fixtures.Table{
				{Name: "staging", Fixture: fixtures.Fixture{Username: "first"}},
				{Name: "production", Fixture: fixtures.Fixture{Username: "second"}},
			}
			v, ok := table.Resolve("https://staging-mirror-of-production.example.com", fixtures.KeyUsername)
			Expect(ok).To(BeTrue())
			Expect(v).To(Equal("first"))
		})
	})

	It("should treat empty fixture values as absent", func() {
		table := fixtures.Table{{Name: "qa", Fixture: fixtures.Fixture{Username: "qa_user"}}}
		_, ok := table.Resolve("https://qa.example.com", fixtures.KeyAPIKey)
		Expect(ok).To(BeFalse())
	})
})

var _ = Describe("IsInstance", func() {
	It("should match substrings of the base url", func() {
		Expect(fixtures.IsInstance("https://staging.example.com", "staging")).To(BeTrue())
		Expect(fixtures.IsInstance("https://staging.example.com", "production")).To(BeFalse())
		Expect(fixtures.IsInstance("https://staging.example.com", "")).To(BeFalse())
	})
})
