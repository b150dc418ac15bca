package models

import (
	"fmt"
	"time"
)

type RunMode string

const (
	RunModeRun  RunMode = "run"
	RunModeOpen RunMode = "open"
)

func ParseRunMode(s string) (RunMode, error) {
	switch s {
	case "run":
		return RunModeRun, nil
	case "open":
		return RunModeOpen, nil
	default:
		return "", fmt.Errorf("invalid run mode: %s", s)
	}
}

// Run groups the results of one CLI invocation across every instance.
type Run struct {
	ID         string
	ProjectID  string
	CIBuildID  string
	Mode       RunMode
	StartedAt  time.Time
	FinishedAt *time.Time
}

// InstanceRun is what a single instance produced during a run.
type InstanceRun struct {
	BaseURL string
	Results []TestResult
	Metrics *Metrics
}

func (r InstanceRun) Failed() int {
	n := 0
	for _, t := range r.Results {
		if t.Status == TestStatusFailed {
			n++
		}
	}
	return n
}

// RunSummary aggregates test counters for a run.
type RunSummary struct {
	Run     Run
	Passed  int
	Failed  int
	Skipped int
}

// RunReport is what a completed run hands back to the CLI.
type RunReport struct {
	Summary   RunSummary
	Instances []InstanceRun
}

// InstanceSummary compares one instance against the others of a run.
type InstanceSummary struct {
	Instance string
	Passed   int
	Failed   int
	Skipped  int
	Metrics  *Metrics
}

type RunnerState string

const (
	RunnerStateReady     RunnerState = "ready"
	RunnerStateRunning   RunnerState = "running"
	RunnerStateCompleted RunnerState = "completed"
	RunnerStateError     RunnerState = "error"
)

type RunnerStatus struct {
	State RunnerState
	RunID string
	Error error
}
