package dataset

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/xuri/excelize/v2"
	"youpull-go/internal/types"
)

const (
	outcomeSheet = "Outcomes"
	summarySheet = "Summary"
)

var outcomeHeader = []interface{}{"#", "ID", "Title", "URL", "Status", "Stage", "Error", "Document", "Duration (ms)"}

// WriteReport stores the outcome of every selected item and the batch
// totals in an .xlsx workbook at path.
func WriteReport(path string, s types.BatchSummary) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", outcomeSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := f.SetSheetRow(outcomeSheet, "A1", &outcomeHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, o := range s.Outcomes {
		row := []interface{}{o.Index, o.Item.ID, o.Item.Title, o.Item.SourceURL, o.Status, o.Stage, o.Error, o.Document, o.DurationMs}
		cellRef, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(outcomeSheet, cellRef, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("add summary sheet: %w", err)
	}
	summary := [][]interface{}{
		{"Run ID", s.RunID},
		{"Reference", s.Reference},
		{"Found", s.Found},
		{"Selected", s.Selected},
		{"Done", s.Done},
		{"Failed", s.Failed},
		{"Diarization", s.Diarization},
	}
	for _, stage := range sortedKeys(s.FailedByStage) {
		summary = append(summary, []interface{}{"Failed at " + stage, s.FailedByStage[stage]})
	}
	for i, row := range summary {
		cellRef, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(summarySheet, cellRef, &row); err != nil {
			return fmt.Errorf("write summary row: %w", err)
		}
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create report dir: %w", err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save report: %w", err)
	}
	return nil
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
