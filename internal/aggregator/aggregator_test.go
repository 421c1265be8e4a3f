package aggregator

import (
	"testing"

	"youpull-go/internal/types"
)

func TestAggregate(t *testing.T) {
	outcomes := []types.ItemOutcome{
		{Index: 1, Status: types.StatusDone},
		{Index: 2, Status: types.StatusFailed, Stage: "download"},
		{Index: 3, Status: types.StatusFailed, Stage: "download"},
		{Index: 4, Status: types.StatusFailed, Stage: "transcribe"},
		{Index: 5, Status: types.StatusFailed},
		{Index: 6, Status: types.StatusDone},
	}
	s := Aggregate(outcomes)
	if s.Selected != 6 || s.Done != 2 || s.Failed != 4 {
		t.Errorf("totals = %d/%d/%d, want 6/2/4", s.Selected, s.Done, s.Failed)
	}
	want := map[string]int{"download": 2, "transcribe": 1, "unknown": 1}
	for stage, n := range want {
		if s.FailedByStage[stage] != n {
			t.Errorf("FailedByStage[%s] = %d, want %d", stage, s.FailedByStage[stage], n)
		}
	}
	if len(s.Outcomes) != 6 {
		t.Errorf("outcomes not carried through")
	}
}

func TestAggregate_Empty(t *testing.T) {
	s := Aggregate(nil)
	if s.Selected != 0 || s.Done != 0 || s.Failed != 0 || len(s.FailedByStage) != 0 {
		t.Errorf("summary = %+v", s)
	}
}
