// Package store implements the results database of parallel-instances.
//
// Every run, the outcome of every test case against every instance and the
// performance metrics recorded by the performance suite are persisted in a
// DuckDB file (artifacts/results.duckdb by default) so that `report` and
// `serve` can read them after the run is over.
//
// # Architecture Overview
//
//	┌─────────────────────────────────────────────────────────────────┐
//	│                         Store (facade)                          │
//	├─────────────────────┬─────────────────────┬─────────────────────┤
//	│      RunStore       │     ResultStore     │     MetricStore     │
//	│         ▼           │          ▼          │          ▼          │
//	│        runs         │    test_results     │       metrics       │
//	└─────────────────────┴─────────────────────┴─────────────────────┘
//
// Sub-stores accept a QueryInterceptor, so the same code runs against the
// *sql.DB or against a transaction opened by Store.WithTx.
//
// # Tables
//
// Tables are created by the embedded migrations (internal/store/migrations/sql/):
//
//	┌────────────────────┬─────────────────────────────────────────────┐
//	│  Table             │  Purpose                                    │
//	├────────────────────┼─────────────────────────────────────────────┤
//	│  runs              │  One row per run/open invocation            │
//	│  test_results      │  One row per test case and instance         │
//	│  metrics           │  Performance timings per instance and run   │
//	│  schema_migrations │  Migration version tracking                 │
//	└────────────────────┴─────────────────────────────────────────────┘
//
// Durations are stored as BIGINT milliseconds.
//
// # Initialization Flow
//
//	NewDB(path)
//	    └── Opens duckdb (":memory:" for tests)
//
//	NewStore(db)
//	    └── Initializes all sub-stores
//
//	Store.Migrate(ctx)
//	    └── migrations.Run()  → Creates runs, test_results, metrics
//
// # List Options
//
// List and Count take functional options that modify the squirrel select
// builder:
//
//	results, err := s.Results().List(ctx,
//	    store.ByRun(runID),
//	    store.ByInstances("https://staging.example.com"),
//	    store.ByStatus("failed"),
//	    store.WithSort([]store.SortParam{{Field: "duration", Desc: true}}),
//	    store.WithLimit(50),
//	    store.WithOffset(0),
//	)
//
// Filtering options:
//
//   - ByRun(runID)               WHERE run_id = ?
//   - ByProject(projectID)       WHERE project_id = ? (runs only)
//   - ByInstances(instances...)  WHERE instance IN (...)
//   - ByStatus(statuses...)      WHERE status IN (...)
//   - BySuites(suites...)        WHERE suite IN (...)
//
// Empty filter arguments are ignored.
//
// # MetricStore.Latest
//
// Latest keeps the newest row per instance with a window function:
//
//	SELECT ... FROM (
//	    SELECT ..., row_number() OVER (PARTITION BY instance ORDER BY recorded_at DESC) AS rn
//	    FROM metrics WHERE ...
//	) AS ranked WHERE rn = 1 ORDER BY instance
//
// # Error Handling
//
//   - RunStore.Get / RunStore.Finish return ResourceNotFoundError for unknown ids
//   - MetricStore.Latest returns ResourceNotFoundError when nothing matches
//   - Other database errors are returned unwrapped
package store
