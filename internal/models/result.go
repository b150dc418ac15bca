package models

import "time"

type TestStatus string

const (
	TestStatusPassed  TestStatus = "passed"
	TestStatusFailed  TestStatus = "failed"
	TestStatusSkipped TestStatus = "skipped"
)

// TestResult is the outcome of one test case against one instance.
// Attempts counts the test retries of the run mode, not page visit retries.
type TestResult struct {
	RunID    string
	Instance string
	Suite    string
	Test     string
	Status   TestStatus
	Attempts int
	Duration time.Duration
	Error    string
}
