package actionable

import (
	"fmt"
	"sort"

	"youpull-go/internal/types"
)

// Hint is an operator-facing next step for one failing stage.
type Hint struct {
	Stage  string `json:"stage"`
	Count  int    `json:"count"`
	Action string `json:"action"`
}

var actions = map[string]string{
	"download":   "Check that yt-dlp and ffmpeg are installed and the videos are public",
	"transcribe": "Check OPENAI_API_KEY, quota and the audio size limit of the transcription backend",
	"diarize":    "Check PYANNOTE_TOKEN and that the diarization service is reachable",
	"persist":    "Check that TRANSCRIPT_DIR is writable and has free space",
}

// Generate returns one hint per stage that had failures, most frequent first.
func Generate(s types.BatchSummary) []Hint {
	hints := make([]Hint, 0, len(s.FailedByStage))
	for stage, n := range s.FailedByStage {
		action, ok := actions[stage]
		if !ok {
			action = "Inspect the error log for the failed items"
		}
		hints = append(hints, Hint{Stage: stage, Count: n, Action: action})
	}
	sort.Slice(hints, func(i, j int) bool {
		if hints[i].Count != hints[j].Count {
			return hints[i].Count > hints[j].Count
		}
		return hints[i].Stage < hints[j].Stage
	})
	return hints
}

func (h Hint) String() string {
	return fmt.Sprintf("%d failed at %s: %s", h.Count, h.Stage, h.Action)
}
