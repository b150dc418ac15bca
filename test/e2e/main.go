package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"github.com/mikesterific/parallel-instances/test/e2e/infra"
)

type configuration struct {
	InfraMode     string // "local" or "external"
	Instances     string
	Driver        string
	APIPort       int
	WorkDir       string
	KeepArtifacts bool
}

var (
	cfg          configuration
	infraManager infra.InfraManager
)

func (c configuration) instanceURLs() []string {
	var urls []string
	for _, u := range strings.Split(c.Instances, ",") {
		if u = strings.TrimSpace(u); u != "" {
			urls = append(urls, u)
		}
	}
	return urls
}

func (c configuration) Validate() error {
	if c.InfraMode != "local" && c.InfraMode != "external" {
		return fmt.Errorf("invalid infra-mode %q: must be 'local' or 'external'", c.InfraMode)
	}
	if c.InfraMode == "external" {
		urls := c.instanceURLs()
		if len(urls) == 0 {
			return errors.New("external mode needs at least one instance")
		}
		for _, u := range urls {
			if _, err := url.Parse(u); err != nil {
				return fmt.Errorf("failed to parse instance url %q: %v", u, err)
			}
		}
	}
	if c.APIPort <= 0 {
		return fmt.Errorf("invalid api port %d", c.APIPort)
	}
	return nil
}

func main() {
	flag.StringVar(&cfg.InfraMode, "infra-mode", "local", "Instances: 'local' (in-process servers) or 'external' (deployed elsewhere)")
	flag.StringVar(&cfg.Instances, "instances", "", "Comma separated instance base URLs (external mode)")
	flag.StringVar(&cfg.Driver, "driver", "http", "Browser driver: playwright, rod or http")
	flag.IntVar(&cfg.APIPort, "api-port", 18000, "Port of the report API started by the suite")
	flag.StringVar(&cfg.WorkDir, "workdir", "", "Folder for the results database and artifacts (default: temp dir)")
	flag.BoolVar(&cfg.KeepArtifacts, "keep-artifacts", false, "Keep the work dir after the run (useful for debugging)")
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	zap.ReplaceGlobals(logger)
	defer logger.Sync()

	if err := cfg.Validate(); err != nil {
		log.Fatalf("failed to validate configuration: %v", err)
	}

	if cfg.WorkDir == "" {
		dir, err := os.MkdirTemp("", "parallel-instances-e2e-")
		if err != nil {
			log.Fatalf("failed to create work dir: %v", err)
		}
		cfg.WorkDir = dir
	}
	if !cfg.KeepArtifacts {
		defer os.RemoveAll(cfg.WorkDir)
	}

	switch cfg.InfraMode {
	case "local":
		infraManager = infra.NewLocalInfraManager()
	case "external":
		infraManager = infra.NewExternalInfraManager(cfg.instanceURLs())
	}

	RegisterFailHandler(Fail)
	if !RunSpecs(&testing.T{}, "E2E Suite") {
		os.Exit(1)
	}
}
