package report

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/mikesterific/parallel-instances/internal/models"
)

const (
	SheetSummary = "Summary"
	SheetResults = "Results"
)

// ExportXLSX writes a workbook with a per-instance summary sheet and the full
// list of test results.
func ExportXLSX(path string, summary models.RunSummary, instances []models.InstanceSummary, results []models.TestResult) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return err
	}
	if _, err := f.NewSheet(SheetResults); err != nil {
		return err
	}

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	summaryRows := [][]any{
		{"Run", summary.Run.ID},
		{"Project", summary.Run.ProjectID},
		{"Mode", string(summary.Run.Mode)},
		{"CI build", summary.Run.CIBuildID},
		{"Started", summary.Run.StartedAt.Format(time.RFC3339)},
		{"Passed", summary.Passed},
		{"Failed", summary.Failed},
		{"Skipped", summary.Skipped},
		{},
		{"Instance", "Passed", "Failed", "Skipped", "Load (ms)", "DNS (ms)", "TCP (ms)", "TTFB (ms)", "Resources"},
	}
	tableHeaderRow := len(summaryRows)
	for _, in := range instances {
		row := []any{in.Instance, in.Passed, in.Failed, in.Skipped}
		if m := in.Metrics; m != nil {
			row = append(row, m.LoadTime.Milliseconds(), m.DNS.Milliseconds(), m.TCP.Milliseconds(), m.TTFB.Milliseconds(), m.Resources)
		}
		summaryRows = append(summaryRows, row)
	}
	if err := writeRows(f, SheetSummary, summaryRows); err != nil {
		return err
	}
	if err := styleRow(f, SheetSummary, tableHeaderRow, 9, header); err != nil {
		return err
	}

	resultRows := [][]any{{"Instance", "Suite", "Test", "Status", "Attempts", "Duration (ms)", "Error"}}
	for _, r := range results {
		resultRows = append(resultRows, []any{r.Instance, r.Suite, r.Test, string(r.Status), r.Attempts, r.Duration.Milliseconds(), r.Error})
	}
	if err := writeRows(f, SheetResults, resultRows); err != nil {
		return err
	}
	if err := styleRow(f, SheetResults, 1, 7, header); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", path, err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func styleRow(f *excelize.File, sheet string, row, cols, style int) error {
	first, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(cols, row)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, first, last, style)
}
