// Package handlers implements the HTTP API layer of parallel-instances.
//
// Handlers expose persisted runs, results and metrics and let clients start
// or stop a run. They delegate to the services layer and focus on request
// validation, response formatting, and HTTP semantics.
//
// # Architecture Overview
//
//	┌─────────────────────────────────────────────────────────────────┐
//	│                     HTTP Request (Gin)                          │
//	└─────────────────────────────────────────────────────────────────┘
//	                              │
//	                              ▼
//	┌─────────────────────────────────────────────────────────────────┐
//	│                      Handler (this package)                     │
//	│  - Query binding and validation                                 │
//	│  - Error mapping to HTTP status codes                           │
//	│  - Model-to-API conversion                                      │
//	└─────────────────────────────────────────────────────────────────┘
//	                              │
//	                              ▼
//	┌─────────────────────────────────────────────────────────────────┐
//	│                      Services Layer                             │
//	│  RunService │ ReportService                                     │
//	└─────────────────────────────────────────────────────────────────┘
//
// Routes are mounted with:
//
//	handlers.RegisterHandlers(router.Group("/api/v1"), handler)
//
// # API Endpoints
//
//	┌────────┬─────────────────────┬──────────────────────────────────────┐
//	│ Method │ Endpoint            │ Description                          │
//	├────────┼─────────────────────┼──────────────────────────────────────┤
//	│ GET    │ /runs               │ List runs, newest first              │
//	│ POST   │ /runs               │ Start a run in the background        │
//	│ GET    │ /runs/{id}          │ Run with counters ("latest" alias)   │
//	│ GET    │ /runs/{id}/results  │ Results with filters and pagination  │
//	│ GET    │ /runs/{id}/compare  │ One summary per instance             │
//	│ GET    │ /runner             │ Runner state                         │
//	│ DELETE │ /runner             │ Cancel the background run            │
//	│ GET    │ /metrics            │ Metrics of a run or latest per inst. │
//	└────────┴─────────────────────┴──────────────────────────────────────┘
//
// # Results query parameters
//
//	┌────────────┬──────────┬───────────────────────────────────────────┐
//	│ Parameter  │ Type     │ Description                               │
//	├────────────┼──────────┼───────────────────────────────────────────┤
//	│ instance   │ []string │ Filter by base URL (OR logic)             │
//	│ suite      │ []string │ Filter by suite name (OR logic)           │
//	│ status     │ []string │ passed, failed or skipped                 │
//	│ sort       │ []string │ "field:direction", comma separated        │
//	│ page       │ int      │ Page number (default: 1)                  │
//	│ pageSize   │ int      │ Items per page (default: 20, max: 100)    │
//	└────────────┴──────────┴───────────────────────────────────────────┘
//
// Sort fields: instance, suite, test, status, duration, attempts.
//
// Example: /runs/latest/results?status=failed&sort=duration:desc&pageSize=50
//
// # Starting a run
//
// POST /runs takes an optional body { "mode": "run" | "open" } and answers
// 202 Accepted with the runner status. While a run is in progress further
// starts return 409 Conflict.
//
// # Error Handling
//
//	{ "error": "error message" }
//
//	┌─────────────────────────────┬────────┬──────────────────────────────┐
//	│ Error Type                  │ Status │ When                         │
//	├─────────────────────────────┼────────┼──────────────────────────────┤
//	│ ValidationError / binding   │ 400    │ Invalid query or body        │
//	│ ResourceNotFoundError       │ 404    │ Unknown run, no metrics      │
//	│ RunInProgressError          │ 409    │ A run is already running     │
//	│ Internal error              │ 500    │ Unexpected service errors    │
//	└─────────────────────────────┴────────┴──────────────────────────────┘
//
// Conversions to API types live in api/v1/extension.go.
package handlers
