package actionable

import (
	"strings"
	"testing"

	"youpull-go/internal/types"
)

func TestGenerate_OrdersByCount(t *testing.T) {
	hints := Generate(types.BatchSummary{FailedByStage: map[string]int{
		"persist":    1,
		"download":   3,
		"transcribe": 1,
		"unknown":    2,
	}})
	var got []string
	for _, h := range hints {
		got = append(got, h.Stage)
	}
	want := "download,unknown,persist,transcribe"
	if strings.Join(got, ",") != want {
		t.Errorf("order = %v, want %s", got, want)
	}
	if !strings.Contains(hints[0].Action, "yt-dlp") {
		t.Errorf("download hint = %q", hints[0].Action)
	}
	if hints[1].Action == "" {
		t.Error("unknown stage has no fallback action")
	}
}

func TestGenerate_NoFailures(t *testing.T) {
	if h := Generate(types.BatchSummary{}); len(h) != 0 {
		t.Errorf("hints = %v, want none", h)
	}
}

func TestHint_String(t *testing.T) {
	h := Hint{Stage: "diarize", Count: 2, Action: "Check PYANNOTE_TOKEN"}
	if got := h.String(); got != "2 failed at diarize: Check PYANNOTE_TOKEN" {
		t.Errorf("String() = %q", got)
	}
}
