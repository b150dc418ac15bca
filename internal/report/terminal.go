// Package report renders persisted runs: a colored comparison table for the
// terminal and an xlsx workbook export.
package report

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"

	"github.com/mikesterific/parallel-instances/internal/models"
)

var (
	passColor = color.New(color.FgGreen, color.Bold)
	failColor = color.New(color.FgRed, color.Bold)
	skipColor = color.New(color.FgYellow)
	headColor = color.New(color.Bold)
)

// PrintComparison writes the run header and one row per instance. Colored
// cells are kept in the last column so tab alignment is not disturbed.
func PrintComparison(w io.Writer, summary models.RunSummary, instances []models.InstanceSummary) error {
	run := summary.Run
	headColor.Fprintf(w, "Run %s (%s)\n", run.ID, run.Mode)
	fmt.Fprintf(w, "Project: %s", run.ProjectID)
	if run.CIBuildID != "" {
		fmt.Fprintf(w, "  CI build: %s", run.CIBuildID)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Started: %s  Duration: %s\n\n", run.StartedAt.Format(time.RFC3339), duration(run))

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "INSTANCE\tPASSED\tFAILED\tSKIPPED\tLOAD\tTTFB\tRESOURCES\tRESULT")
	for _, in := range instances {
		load, ttfb, resources := "-", "-", "-"
		if in.Metrics != nil {
			load = fmt.Sprintf("%dms", in.Metrics.LoadTime.Milliseconds())
			ttfb = fmt.Sprintf("%dms", in.Metrics.TTFB.Milliseconds())
			resources = fmt.Sprintf("%d", in.Metrics.Resources)
		}
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%s\t%s\t%s\t%s\n",
			in.Instance, in.Passed, in.Failed, in.Skipped, load, ttfb, resources, verdict(in))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\nTotal: %s, %s, %s\n",
		passColor.Sprintf("%d passed", summary.Passed),
		failColor.Sprintf("%d failed", summary.Failed),
		skipColor.Sprintf("%d skipped", summary.Skipped),
	)
	return nil
}

// PrintRuns lists runs newest first.
func PrintRuns(w io.Writer, runs []models.RunSummary) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RUN\tMODE\tSTARTED\tDURATION\tPASSED\tFAILED\tSKIPPED")
	for _, r := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%d\t%d\n",
			r.Run.ID, r.Run.Mode, r.Run.StartedAt.Format(time.RFC3339), duration(r.Run), r.Passed, r.Failed, r.Skipped)
	}
	return tw.Flush()
}

// PrintFailures lists failing tests with their last error.
func PrintFailures(w io.Writer, results []models.TestResult) {
	for _, r := range results {
		if r.Status != models.TestStatusFailed {
			continue
		}
		failColor.Fprintf(w, "✗ ")
		fmt.Fprintf(w, "[%s] %s > %s (attempts: %d)\n", r.Instance, r.Suite, r.Test, r.Attempts)
		if r.Error != "" {
			fmt.Fprintf(w, "    %s\n", r.Error)
		}
	}
}

func verdict(in models.InstanceSummary) string {
	switch {
	case in.Failed > 0:
		return failColor.Sprint("FAIL")
	case in.Passed == 0 && in.Skipped > 0:
		return skipColor.Sprint("SKIP")
	default:
		return passColor.Sprint("PASS")
	}
}

func duration(run models.Run) string {
	if run.FinishedAt == nil {
		return "running"
	}
	return run.FinishedAt.Sub(run.StartedAt).Round(time.Millisecond).String()
}
