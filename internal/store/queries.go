package store

// Run queries
const (
	queryInsertRun = `
		INSERT INTO runs (id, project_id, ci_build_id, mode, started_at)
		VALUES (?, ?, ?, ?, ?)`

	queryFinishRun = `UPDATE runs SET finished_at = ? WHERE id = ?`

	queryGetRun = `
		SELECT id, project_id, ci_build_id, mode, started_at, finished_at
		FROM runs WHERE id = ?`
)

// Test result queries
const (
	queryInsertResult = `
		INSERT INTO test_results (run_id, instance, suite, test_name, status, attempts, duration_ms, error_message)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	querySummarizeResults = `
		SELECT status, COUNT(*)
		FROM test_results WHERE run_id = ?
		GROUP BY status`
)

// Metrics queries
const (
	queryInsertMetrics = `
		INSERT INTO metrics (run_id, instance, load_time_ms, dns_ms, tcp_ms, ttfb_ms, resources, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
)
