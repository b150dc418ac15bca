package v1

import "time"

type RunMode string

const (
	RunModeRun  RunMode = "run"
	RunModeOpen RunMode = "open"
)

type RunnerStatusState string

const (
	RunnerStatusStateReady     RunnerStatusState = "ready"
	RunnerStatusStateRunning   RunnerStatusState = "running"
	RunnerStatusStateCompleted RunnerStatusState = "completed"
	RunnerStatusStateError     RunnerStatusState = "error"
)

type TestResultStatus string

const (
	TestResultStatusPassed  TestResultStatus = "passed"
	TestResultStatusFailed  TestResultStatus = "failed"
	TestResultStatusSkipped TestResultStatus = "skipped"
)

// Run is a run with its result counters.
type Run struct {
	Id         string     `json:"id"`
	ProjectId  string     `json:"projectId"`
	CiBuildId  *string    `json:"ciBuildId,omitempty"`
	Mode       RunMode    `json:"mode"`
	StartedAt  time.Time  `json:"startedAt"`
	FinishedAt *time.Time `json:"finishedAt,omitempty"`
	Passed     int        `json:"passed"`
	Failed     int        `json:"failed"`
	Skipped    int        `json:"skipped"`
}

type RunListResponse struct {
	Runs []Run `json:"runs"`
}

type StartRunRequest struct {
	Mode *RunMode `json:"mode,omitempty"`
}

type RunnerStatus struct {
	State RunnerStatusState `json:"state"`
	RunId *string           `json:"runId,omitempty"`
	Error *string           `json:"error,omitempty"`
}

type TestResult struct {
	Instance   string           `json:"instance"`
	Suite      string           `json:"suite"`
	Test       string           `json:"test"`
	Status     TestResultStatus `json:"status"`
	Attempts   int              `json:"attempts"`
	DurationMs int64            `json:"durationMs"`
	Error      *string          `json:"error,omitempty"`
}

type TestResultListResponse struct {
	Page      int          `json:"page"`
	PageCount int          `json:"pageCount"`
	Total     int          `json:"total"`
	Results   []TestResult `json:"results"`
}

type Metrics struct {
	RunId      string    `json:"runId"`
	Instance   string    `json:"instance"`
	LoadTimeMs int64     `json:"loadTimeMs"`
	DnsMs      int64     `json:"dnsMs"`
	TcpMs      int64     `json:"tcpMs"`
	TtfbMs     int64     `json:"ttfbMs"`
	Resources  int       `json:"resources"`
	RecordedAt time.Time `json:"recordedAt"`
}

type MetricsListResponse struct {
	Metrics []Metrics `json:"metrics"`
}

type InstanceSummary struct {
	Instance string   `json:"instance"`
	Passed   int      `json:"passed"`
	Failed   int      `json:"failed"`
	Skipped  int      `json:"skipped"`
	Metrics  *Metrics `json:"metrics,omitempty"`
}

type CompareResponse struct {
	Run       Run               `json:"run"`
	Instances []InstanceSummary `json:"instances"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// GetResultsParams are the query parameters of GET /runs/{id}/results.
type GetResultsParams struct {
	Instance []string `form:"instance"`
	Suite    []string `form:"suite"`
	Status   []string `form:"status"`
	Sort     []string `form:"sort"`
	Page     *int     `form:"page"`
	PageSize *int     `form:"pageSize"`
}

type GetRunsParams struct {
	ProjectId *string `form:"projectId"`
	Limit     *int    `form:"limit"`
}

type GetMetricsParams struct {
	RunId    *string  `form:"runId"`
	Instance []string `form:"instance"`
}
