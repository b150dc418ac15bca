package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mikesterific/parallel-instances/internal/report"
	"github.com/mikesterific/parallel-instances/internal/services"
)

func newReportCommand(a *app) *cobra.Command {
	var (
		runID string
		xlsx  string
		list  bool
		limit uint64
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Compare the instances of a stored run",
		Long: `Prints the per-instance comparison of a run (the latest run of the project by
default) and optionally exports it to an xlsx workbook.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			st, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			reports := services.NewReportService(st)

			if list {
				runs, err := reports.ListRuns(ctx, a.cfg.ProjectID, limit)
				if err != nil {
					return err
				}
				return report.PrintRuns(out, runs)
			}

			id, err := reports.ResolveRunID(ctx, a.cfg.ProjectID, runID)
			if err != nil {
				return err
			}
			summary, err := reports.GetRun(ctx, id)
			if err != nil {
				return err
			}
			instances, err := reports.Compare(ctx, id)
			if err != nil {
				return err
			}
			results, err := reports.ListResults(ctx, services.ResultListParams{RunID: id})
			if err != nil {
				return err
			}

			if err := report.PrintComparison(out, *summary, instances); err != nil {
				return err
			}
			report.PrintFailures(out, results.Results)

			if xlsx != "" {
				if err := report.ExportXLSX(xlsx, *summary, instances, results.Results); err != nil {
					return err
				}
				zap.S().Named("cmd").Infow("report exported", "path", xlsx, "run_id", id)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&runID, "run", "", "run id (default: latest run of the project)")
	cmd.Flags().StringVar(&xlsx, "xlsx", "", "export the report to this xlsx file")
	cmd.Flags().BoolVar(&list, "list", false, "list stored runs instead")
	cmd.Flags().Uint64Var(&limit, "limit", 20, "runs listed with --list")

	return cmd
}
