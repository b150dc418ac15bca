/*
Package main provides the end-to-end suite of parallel-instances.

The suite wires the real stack (DuckDB store, browser driver, run and report
services, gin server with bearer auth) and drives it through the report API
the way a CI job would.

# Package Structure

	test/e2e/
	├── main.go          Entry point: flags, config, InfraManager setup, Ginkgo runner
	├── tests.go         Ginkgo specs (auth, run through the api, compare, retries, metrics)
	├── doc.go           This file
	├── infra/           Instances under test
	│   ├── infra.go     InfraManager interface + InstanceSpec
	│   ├── instance.go  InstanceServer (in-process fake instance)
	│   ├── local.go     LocalInfraManager (one InstanceServer per name)
	│   └── external.go  ExternalInfraManager (no-op, instances deployed elsewhere)
	└── service/
	    └── service.go   ReportSvc: HTTP client for the report API with token injection

# InfraManager

	type InfraManager interface {
	    StartInstances(specs...) / StopInstances()
	    BaseURL(name) / BaseURLs()
	}

Local instances listen on 127.0.0.1 with the instance name as the base URL
path (http://127.0.0.1:port/staging), so fixture lookups and timeout
profiles resolve as they would against real hosts. An InstanceSpec can
answer a fixed status or fail its first requests to exercise test retries.

Selected via the -infra-mode flag ("local" or "external").

	┌──────────────┐      ┌─────────────┐      ┌─────────────────────┐
	│  ReportSvc   │─────▶│  gin server │─────▶│ RunService          │
	│  (bearer)    │      │  /api/v1    │      │  ├─ staging         │
	└──────────────┘      └─────────────┘      │  ├─ production      │
	                                           │  └─ scale-computing │
	                                           └─────────────────────┘

# Running

	go run ./test/e2e                                  local instances, http driver
	go run ./test/e2e -driver playwright               same with a real browser
	go run ./test/e2e -infra-mode external \
	    -instances https://staging.example.com,https://production.example.com
*/
package main
