// Package services implements the business logic layer of parallel-instances.
//
// Services sit between the CLI commands / HTTP handlers and the store, the
// browser drivers and the suite runner.
//
// # Service Dependency Graph
//
//	cmd (run, open, report) / Handlers (HTTP endpoints)
//	    │
//	    ▼
//	Services Layer
//	    ├── RunService ────► Store, Scheduler, browser.Driver, suite.Runner, artifacts.Writer
//	    └── ReportService ─► Store
//
// # RunService
//
// RunService executes the suites selected by specPattern against every
// configured instance. Each instance is a unit of work on a pkg/scheduler
// pool sized by run.workers; each gets its own page, so instances never
// share browser state.
//
//	Run(ctx, mode)
//	    ├── runs row created (id = uuid)
//	    ├── artifact folders prepared
//	    ├── scheduler.AddWork(baseURL) per instance
//	    │       ├── suite.Runner.RunInstance  → results + metrics
//	    │       └── store.WithTx              → test_results, metrics
//	    ├── Future.Wait per instance (configuration order)
//	    ├── runs.finished_at stamped
//	    └── summary counted from test_results
//
// State Machine:
//
//	┌───────┐    ┌─────────┐    ┌───────────┐
//	│ Ready │───►│ Running │───►│ Completed │
//	└───────┘    └─────────┘    └───────────┘
//	                ▲  │              │
//	                │  ▼              │
//	                │ ┌───────┐       │
//	                │ │ Error │       │
//	                │ └───────┘       │
//	                └───┴─────────────┘
//	                   (next run)
//
// Key behaviors:
//   - Only one run can be in progress at a time (returns RunInProgressError otherwise)
//   - Run blocks; Start runs in the background and Stop cancels it
//   - Test failures are part of the report, not errors
//   - Instances that cannot be driven (page creation, cancellation) are joined into the error
//   - Results are persisted even when the run is cancelled
//   - Test retries come from run.retries.runMode for `run` and run.retries.openMode for `open`
//
// Usage:
//
//	svc := services.NewRunService(store, driver, writer, cfg, suite.Builtin())
//	report, err := svc.Run(ctx, models.RunModeRun)
//	if report.Summary.Failed > 0 { ... }
//
// # ReportService
//
// ReportService is a stateless facade over the store used by `report` and
// the API server.
//
//	reports := services.NewReportService(store)
//	runs, err := reports.ListRuns(ctx, projectID, 20)
//	id, err := reports.ResolveRunID(ctx, projectID, "")   // latest run
//	summaries, err := reports.Compare(ctx, id)            // one row per instance
//	page, err := reports.ListResults(ctx, services.ResultListParams{
//	    RunID:    id,
//	    Statuses: []string{"failed"},
//	    Limit:    50,
//	})
//
// # Thread Safety
//
// RunService:
//   - State protected by sync.Mutex
//   - Background run lifecycle managed via context cancellation and a done channel
//
// ReportService:
//   - Stateless (only holds the store)
package services
