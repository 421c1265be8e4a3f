package aggregator

import "youpull-go/internal/types"

// Aggregate folds per-item outcomes into batch totals.
func Aggregate(outcomes []types.ItemOutcome) types.BatchSummary {
	s := types.BatchSummary{
		Selected:      len(outcomes),
		FailedByStage: map[string]int{},
		Outcomes:      outcomes,
	}
	for _, o := range outcomes {
		switch o.Status {
		case types.StatusDone:
			s.Done++
		case types.StatusFailed:
			s.Failed++
			stage := o.Stage
			if stage == "" {
				stage = "unknown"
			}
			s.FailedByStage[stage]++
		}
	}
	return s
}
