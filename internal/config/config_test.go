package config_test

import (
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/spf13/viper"

	"github.com/mikesterific/parallel-instances/internal/config"
	srvErrors "github.com/mikesterific/parallel-instances/pkg/errors"
	"github.com/mikesterific/parallel-instances/pkg/fixtures"
)

const sampleConfig = `
projectId: sample-project
baseUrl: https://staging.example.com
instances:
  - https://staging.example.com
  - https://production.example.com
specPattern: "home*"
run:
  workers: 2
  retries:
    runMode: 3
  defaultCommandTimeout: 5s
browser:
  driver: http
fixtures:
  - name: qa
    fixture:
      username: qa_user
      apiKey: qa_api_key
      testItem: QA Item
`

var _ = Describe("Configuration", func() {
	Context("defaults", func() {
		It("should match the documented defaults", func() {
			cfg := config.NewConfigurationWithOptionsAndDefaults()

			Expect(cfg.ProjectID).To(Equal("my-parallel-project"))
			Expect(cfg.BaseURL).To(Equal("http://localhost:3000"))
			Expect(cfg.Run.Retries.RunMode).To(Equal(2))
			Expect(cfg.Run.Retries.OpenMode).To(Equal(0))
			Expect(cfg.Run.DefaultCommandTimeout).To(Equal(10 * time.Second))
			Expect(cfg.Run.PageLoadTimeout).To(Equal(60 * time.Second))
			Expect(cfg.Browser.Driver).To(Equal(config.DriverPlaywright))
			Expect(cfg.Browser.Headless).To(BeTrue())
			Expect(cfg.Artifacts.Video).To(BeTrue())
			Expect(cfg.Artifacts.ScreenshotOnRunFailure).To(BeTrue())
			Expect(cfg.Validate()).To(Succeed())
		})

		It("should fall back to the base url and built-in fixtures", func() {
			cfg := config.NewConfigurationWithOptionsAndDefaults(config.WithBaseURL("https://staging.example.com"))

			Expect(cfg.InstanceURLs()).To(Equal([]string{"https://staging.example.com"}))
			Expect(cfg.FixtureTable()).To(Equal(fixtures.Default))
		})

		It("should hide the jwt secret from the debug map", func() {
			cfg := config.NewConfigurationWithOptionsAndDefaults(
				config.WithAuth(*config.NewAuthenticationWithOptionsAndDefaults(config.WithJWTSecret("s3cr3t"))),
			)
			Expect(cfg.Auth.DebugMap()["JWTSecret"]).NotTo(Equal("s3cr3t"))
		})
	})

	Context("Load", func() {
		var dir string

		BeforeEach(func() {
			dir = GinkgoT().TempDir()
		})

		// Given a configuration file
		// When it is loaded
		// Then file values override the defaults and untouched fields keep them
		It("should layer the file over the defaults", func() {
			path := filepath.Join(dir, "parallel-instances.yaml")
			Expect(os.WriteFile(path, []byte(sampleConfig), 0o600)).To(Succeed())

			cfg, err := config.Load(viper.New(), path)

			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.ProjectID).To(Equal("sample-project"))
			Expect(cfg.InstanceURLs()).To(HaveLen(2))
			Expect(cfg.SpecPattern).To(Equal("home*"))
			Expect(cfg.Run.Workers).To(Equal(2))
			Expect(cfg.Run.Retries.RunMode).To(Equal(3))
			Expect(cfg.Run.Retries.OpenMode).To(Equal(0))
			Expect(cfg.Run.DefaultCommandTimeout).To(Equal(5 * time.Second))
			Expect(cfg.Run.PageLoadTimeout).To(Equal(60 * time.Second))
			Expect(cfg.Browser.Driver).To(Equal(config.DriverHTTP))
			Expect(cfg.Browser.Headless).To(BeTrue())

			v, ok := cfg.FixtureTable().Resolve("https://qa.example.com", fixtures.KeyAPIKey)
			Expect(ok).To(BeTrue())
			Expect(v).To(Equal("qa_api_key"))
		})

		It("should apply options after the file", func() {
			path := filepath.Join(dir, "parallel-instances.yaml")
			Expect(os.WriteFile(path, []byte(sampleConfig), 0o600)).To(Succeed())

			cfg, err := config.Load(viper.New(), path, config.WithBaseURL("https://development.example.com"))

			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.BaseURL).To(Equal("https://development.example.com"))
		})

		It("should fail when an explicit file is missing", func() {
			_, err := config.Load(viper.New(), filepath.Join(dir, "missing.yaml"))
			Expect(err).To(HaveOccurred())
		})
	})

	Context("Validate", func() {
		DescribeTable("invalid configurations",
			func(opts ...config.ConfigurationOption) {
				cfg := config.NewConfigurationWithOptionsAndDefaults(opts...)
				err := cfg.Validate()
				Expect(err).To(HaveOccurred())
				Expect(srvErrors.IsValidationError(err)).To(BeTrue())
			},
			Entry("empty base url", config.WithBaseURL("")),
			Entry("relative base url", config.WithBaseURL("staging.example.com")),
			Entry("ftp base url", config.WithBaseURL("ftp://staging.example.com")),
			Entry("bad instance", config.WithInstances("not a url")),
			Entry("unknown driver", config.WithBrowser(config.Browser{Driver: "selenium"})),
			Entry("bad log format", config.WithLogFormat("xml")),
			Entry("auth without secret", config.WithAuth(config.Authentication{Enabled: true})),
		)

		It("should reject zero workers", func() {
			cfg := config.NewConfigurationWithOptionsAndDefaults()
			cfg.Run.Workers = 0
			Expect(srvErrors.IsValidationError(cfg.Validate())).To(BeTrue())
		})
	})

	Context("Plugins", func() {
		It("should stamp the ci build id", func() {
			cfg := config.NewConfigurationWithOptionsAndDefaults()
			getenv := func(k string) string {
				if k == "CI_BUILD_ID" {
					return "build-42"
				}
				return ""
			}

			out, err := config.ApplyPlugins(cfg, config.CIBuildPlugin(getenv))

			Expect(err).NotTo(HaveOccurred())
			Expect(out.Run.CIBuildID).To(Equal("build-42"))
		})

		It("should keep a configured build id", func() {
			cfg := config.NewConfigurationWithOptionsAndDefaults(
				config.WithRun(*config.NewRunWithOptionsAndDefaults(config.WithCIBuildID("manual"))),
			)

			out, err := config.ApplyPlugins(cfg, config.CIBuildPlugin(func(string) string { return "build-42" }))

			Expect(err).NotTo(HaveOccurred())
			Expect(out.Run.CIBuildID).To(Equal("manual"))
		})

		It("should chain plugins in order", func() {
			cfg := config.NewConfigurationWithOptionsAndDefaults()
			first := func(c *config.Configuration) (*config.Configuration, error) {
				c.ProjectID = "first"
				return c, nil
			}
			second := func(c *config.Configuration) (*config.Configuration, error) {
				c.ProjectID += "-second"
				return c, nil
			}

			out, err := config.ApplyPlugins(cfg, first, second)

			Expect(err).NotTo(HaveOccurred())
			Expect(out.ProjectID).To(Equal("first-second"))
		})
	})
})
