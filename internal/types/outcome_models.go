// internal/types/outcome_models.go
package types

import "time"

// --------------------------------------------
// Outcome of one item's pipeline run
// --------------------------------------------
type ItemOutcome struct {
	Index      int           `json:"index"`
	Item       CatalogItem   `json:"item"`
	Status     string        `json:"status"` // done | failed
	Stage      string        `json:"stage,omitempty"`
	Error      string        `json:"error,omitempty"`
	Document   string        `json:"document,omitempty"`
	DurationMs int64         `json:"duration_ms"`
	Elapsed    time.Duration `json:"-"`
}

const (
	StatusDone   = "done"
	StatusFailed = "failed"
)

// --------------------------------------------
// Batch summary (built after the loop)
// --------------------------------------------
type BatchSummary struct {
	RunID         string         `json:"run_id"`
	Reference     string         `json:"reference"`
	Found         int            `json:"found"`
	Selected      int            `json:"selected"`
	Done          int            `json:"done"`
	Failed        int            `json:"failed"`
	FailedByStage map[string]int `json:"failed_by_stage"`
	Diarization   bool           `json:"diarization"`
	Outcomes      []ItemOutcome  `json:"outcomes"`
}
