// Package config defines the configuration structure for parallel-instances.
//
// Configuration is read from a YAML file (parallel-instances.yaml by default)
// with viper, layered over struct defaults, and finally overridden by CLI
// flags. Every flag can also be set from the environment with the CYPRESS_
// prefix, so CYPRESS_BASE_URL overrides the base URL.
//
// # Configuration Structure
//
//	Configuration
//	├── ProjectID      - Project identifier logged before each run
//	├── BaseURL        - Default instance base URL
//	├── Instances      - Base URLs run in parallel (falls back to BaseURL)
//	├── SpecPattern    - Glob over built-in suite names
//	├── Fixtures       - Ordered per-instance fixture table (optional)
//	├── Run            - Retries, workers and timeouts
//	├── Browser        - Driver selection
//	├── Artifacts      - Video, screenshots and metrics folders
//	├── Store          - DuckDB results database
//	├── Server         - Report API server
//	├── Auth           - Report API authentication
//	├── LogFormat      - Logging format
//	└── LogLevel       - Logging verbosity
//
// # Run Configuration
//
//	┌───────────────────────┬─────────┬─────────────────────────────────────────┐
//	│ Field                 │ Default │ Description                             │
//	├───────────────────────┼─────────┼─────────────────────────────────────────┤
//	│ Retries.RunMode       │ 2       │ Test retries for `run` (CI)             │
//	│ Retries.OpenMode      │ 0       │ Test retries for `open` (interactive)   │
//	│ Workers               │ 1       │ Instances driven concurrently           │
//	│ DefaultCommandTimeout │ 10s     │ Per command timeout (profile adjusted)  │
//	│ PageLoadTimeout       │ 60s     │ Navigation timeout                      │
//	│ CIBuildID             │ ""      │ Set by CIBuildPlugin from CI_BUILD_ID   │
//	└───────────────────────┴─────────┴─────────────────────────────────────────┘
//
// # Browser Configuration
//
//	┌──────────┬──────────────┬───────────────────────────────────────────┐
//	│ Field    │ Default      │ Description                               │
//	├──────────┼──────────────┼───────────────────────────────────────────┤
//	│ Driver   │ "playwright" │ "playwright", "rod" (CDP) or "http"       │
//	│ Headless │ true         │ Forced off in `open` mode                 │
//	└──────────┴──────────────┴───────────────────────────────────────────┘
//
// # Artifacts Configuration
//
//	┌────────────────────────┬─────────────────────────────────┐
//	│ Field                  │ Default                         │
//	├────────────────────────┼─────────────────────────────────┤
//	│ Video                  │ true                            │
//	│ ScreenshotOnRunFailure │ true                            │
//	│ VideosFolder           │ artifacts/videos                │
//	│ ScreenshotsFolder      │ artifacts/screenshots           │
//	│ MetricsFolder          │ artifacts/performance-metrics   │
//	└────────────────────────┴─────────────────────────────────┘
//
// # Example File
//
//	projectId: my-parallel-project
//	baseUrl: http://localhost:3000
//	instances:
//	  - https://staging.example.com
//	  - https://production.example.com
//	specPattern: "*"
//	run:
//	  workers: 2
//	  retries:
//	    runMode: 2
//	    openMode: 0
//	  defaultCommandTimeout: 10s
//	  pageLoadTimeout: 60s
//	browser:
//	  driver: playwright
//	fixtures:
//	  - name: qa
//	    fixture:
//	      username: qa_user
//	      apiKey: qa_api_key
//	      testItem: QA Item
//
// # Code Generation
//
// Functional option helpers are generated with optgen:
//
//	//go:generate go run github.com/ecordell/optgen -output zz_generated.configuration.go . Configuration Run Browser Artifacts Store Server Authentication
//
// # Plugins
//
// Plugins wrap the final configuration before a run, mirroring the plugin
// entry point of hosted orchestrators:
//
//	cfg, err = config.ApplyPlugins(cfg, config.CIBuildPlugin(os.Getenv))
//
// # Debug Logging
//
// Fields are tagged for DebugMap(); the JWT secret is marked sensitive:
//
//	zap.S().Infow("configuration loaded", "config", cfg.DebugMap())
package config
