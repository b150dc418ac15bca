package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mikesterific/parallel-instances/internal/artifacts"
	"github.com/mikesterific/parallel-instances/internal/browser"
	"github.com/mikesterific/parallel-instances/internal/models"
	"github.com/mikesterific/parallel-instances/internal/report"
	"github.com/mikesterific/parallel-instances/internal/services"
	"github.com/mikesterific/parallel-instances/internal/suite"
)

func newRunCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the suites headless against every instance (CI mode)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.execute(cmd, models.RunModeRun)
		},
	}
}

func newOpenCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "open",
		Short: "Run the suites in a visible browser with open mode retries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a.cfg.Browser.Headless = false
			return a.execute(cmd, models.RunModeOpen)
		},
	}
}

// execute runs the selected suites and prints the comparison. It fails when
// any test failed after its retries.
func (a *app) execute(cmd *cobra.Command, mode models.RunMode) error {
	ctx := cmd.Context()
	log := zap.S().Named("cmd")

	st, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	driver, err := browser.Open(ctx, a.cfg.Browser)
	if err != nil {
		return err
	}
	defer driver.Close()

	log.Infow("starting run", "mode", mode, "instances", a.cfg.InstanceURLs(), "driver", driver.Name())

	svc := services.NewRunService(st, driver, artifacts.NewWriter(a.cfg.Artifacts), a.cfg, suite.Builtin())
	rep, runErr := svc.Run(ctx, mode)
	if rep == nil {
		return runErr
	}

	reports := services.NewReportService(st)
	instances, err := reports.Compare(ctx, rep.Summary.Run.ID)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out)
	if err := report.PrintComparison(out, rep.Summary, instances); err != nil {
		return err
	}
	for _, ir := range rep.Instances {
		report.PrintFailures(out, ir.Results)
	}

	if runErr != nil {
		return runErr
	}
	if rep.Summary.Failed > 0 {
		return fmt.Errorf("%d test(s) failed", rep.Summary.Failed)
	}
	return nil
}
