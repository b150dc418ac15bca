package config

import (
	"net/url"
	"time"

	"github.com/mikesterific/parallel-instances/pkg/errors"
	"github.com/mikesterific/parallel-instances/pkg/fixtures"
)

//go:generate go run github.com/ecordell/optgen -output zz_generated.configuration.go . Configuration Run Browser Artifacts Store Server Authentication

const (
	DriverPlaywright = "playwright"
	DriverRod        = "rod"
	DriverHTTP       = "http"
)

type Configuration struct {
	ProjectID   string         `default:"my-parallel-project" debugmap:"visible"`
	BaseURL     string         `default:"http://localhost:3000" debugmap:"visible"`
	Instances   []string       `debugmap:"visible"`
	SpecPattern string         `default:"*" debugmap:"visible"`
	Fixtures    fixtures.Table `debugmap:"hidden"`
	Run         Run            `debugmap:"visible"`
	Browser     Browser        `debugmap:"visible"`
	Artifacts   Artifacts      `debugmap:"visible"`
	Store       Store          `debugmap:"visible"`
	Server      Server         `debugmap:"visible"`
	Auth        Authentication `debugmap:"visible"`
	LogFormat   string         `default:"console" debugmap:"visible"`
	LogLevel    string         `default:"info" debugmap:"visible"`
}

type Retries struct {
	RunMode  int `default:"2"`
	OpenMode int `default:"0"`
}

type Run struct {
	Retries               Retries       `debugmap:"visible"`
	Workers               int           `default:"1" debugmap:"visible"`
	DefaultCommandTimeout time.Duration `default:"10s" debugmap:"visible"`
	PageLoadTimeout       time.Duration `default:"60s" debugmap:"visible"`
	CIBuildID             string        `debugmap:"visible"`
}

type Browser struct {
	Driver   string `default:"playwright" debugmap:"visible"`
	Headless bool   `default:"true" debugmap:"visible"`
}

type Artifacts struct {
	Video                  bool   `default:"true" debugmap:"visible"`
	ScreenshotOnRunFailure bool   `default:"true" debugmap:"visible"`
	VideosFolder           string `default:"artifacts/videos" debugmap:"visible"`
	ScreenshotsFolder      string `default:"artifacts/screenshots" debugmap:"visible"`
	MetricsFolder          string `default:"artifacts/performance-metrics" debugmap:"visible"`
}

type Store struct {
	DBPath string `default:"artifacts/results.duckdb" debugmap:"visible"`
}

type Server struct {
	ServerMode string `default:"dev" debugmap:"visible"`
	HTTPPort   int    `default:"8000" debugmap:"visible"`
}

type Authentication struct {
	Enabled   bool   `default:"false" debugmap:"visible"`
	JWTSecret string `debugmap:"sensitive"`
}

// InstanceURLs returns the base URLs to run against. BaseURL is used when no
// instance list is configured.
func (c *Configuration) InstanceURLs() []string {
	if len(c.Instances) > 0 {
		return c.Instances
	}
	return []string{c.BaseURL}
}

// FixtureTable returns the configured fixtures or the built-in table.
func (c *Configuration) FixtureTable() fixtures.Table {
	if len(c.Fixtures) > 0 {
		return c.Fixtures
	}
	return fixtures.Default
}

func (c *Configuration) Validate() error {
	for _, u := range c.InstanceURLs() {
		if err := validateBaseURL(u); err != nil {
			return err
		}
	}
	switch c.Browser.Driver {
	case DriverPlaywright, DriverRod, DriverHTTP:
	default:
		return errors.NewValidationError("browser.driver", "must be one of playwright, rod, http")
	}
	if c.Run.Workers < 1 {
		return errors.NewValidationError("run.workers", "must be at least 1")
	}
	if c.Run.Retries.RunMode < 0 || c.Run.Retries.OpenMode < 0 {
		return errors.NewValidationError("run.retries", "must not be negative")
	}
	if c.Run.DefaultCommandTimeout <= 0 || c.Run.PageLoadTimeout <= 0 {
		return errors.NewValidationError("run timeouts", "must be positive")
	}
	if c.LogFormat != "console" && c.LogFormat != "json" {
		return errors.NewValidationError("logFormat", "must be console or json")
	}
	if c.Server.ServerMode != "dev" && c.Server.ServerMode != "prod" {
		return errors.NewValidationError("server.serverMode", "must be dev or prod")
	}
	if c.Auth.Enabled && c.Auth.JWTSecret == "" {
		return errors.NewValidationError("auth.jwtSecret", "required when auth is enabled")
	}
	return nil
}

func validateBaseURL(s string) error {
	if s == "" {
		return errors.NewValidationError("baseUrl", "must not be empty")
	}
	u, err := url.Parse(s)
	if err != nil {
		return errors.NewValidationError("baseUrl", err.Error())
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.NewValidationError("baseUrl", "scheme must be http or https: "+s)
	}
	if u.Host == "" {
		return errors.NewValidationError("baseUrl", "missing host: "+s)
	}
	return nil
}
