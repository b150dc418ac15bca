package v1

import (
	"github.com/mikesterific/parallel-instances/internal/models"
)

// NewRunFromModel converts a run summary to an API Run.
func NewRunFromModel(s models.RunSummary) Run {
	r := Run{
		Id:         s.Run.ID,
		ProjectId:  s.Run.ProjectID,
		Mode:       RunMode(s.Run.Mode),
		StartedAt:  s.Run.StartedAt,
		FinishedAt: s.Run.FinishedAt,
		Passed:     s.Passed,
		Failed:     s.Failed,
		Skipped:    s.Skipped,
	}
	if s.Run.CIBuildID != "" {
		r.CiBuildId = &s.Run.CIBuildID
	}
	return r
}

func NewTestResultFromModel(t models.TestResult) TestResult {
	r := TestResult{
		Instance:   t.Instance,
		Suite:      t.Suite,
		Test:       t.Test,
		Status:     TestResultStatus(t.Status),
		Attempts:   t.Attempts,
		DurationMs: t.Duration.Milliseconds(),
	}
	if t.Error != "" {
		r.Error = &t.Error
	}
	return r
}

func NewMetricsFromModel(m models.Metrics) Metrics {
	return Metrics{
		RunId:      m.RunID,
		Instance:   m.Instance,
		LoadTimeMs: m.LoadTime.Milliseconds(),
		DnsMs:      m.DNS.Milliseconds(),
		TcpMs:      m.TCP.Milliseconds(),
		TtfbMs:     m.TTFB.Milliseconds(),
		Resources:  m.Resources,
		RecordedAt: m.RecordedAt,
	}
}

func NewInstanceSummaryFromModel(s models.InstanceSummary) InstanceSummary {
	out := InstanceSummary{
		Instance: s.Instance,
		Passed:   s.Passed,
		Failed:   s.Failed,
		Skipped:  s.Skipped,
	}
	if s.Metrics != nil {
		m := NewMetricsFromModel(*s.Metrics)
		out.Metrics = &m
	}
	return out
}

func (r *RunnerStatus) FromModel(m models.RunnerStatus) {
	r.State = RunnerStatusState(m.State)
	if m.RunID != "" {
		id := m.RunID
		r.RunId = &id
	}
	if m.Error != nil {
		msg := m.Error.Error()
		r.Error = &msg
	}
}

// ToModel returns the run mode of the request, run when unset.
func (r StartRunRequest) ToModel() (models.RunMode, error) {
	if r.Mode == nil {
		return models.RunModeRun, nil
	}
	return models.ParseRunMode(string(*r.Mode))
}
