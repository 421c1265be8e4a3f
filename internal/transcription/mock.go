package transcription

import (
	"context"
	"fmt"
	"os"

	"youpull-go/internal/capability"
	"youpull-go/internal/types"
)

// Mock returns a fixed transcript without calling any backend. Enabled with
// USE_MOCK_TRANSCRIBE=true for offline runs.
type Mock struct{}

func (Mock) Transcribe(_ context.Context, audioPath, language string) (types.TranscriptResult, error) {
	if _, err := os.Stat(audioPath); err != nil {
		return types.TranscriptResult{}, fmt.Errorf("%w: %v", capability.ErrTranscription, err)
	}
	return types.TranscriptResult{
		Text:     "MOCK TRANSCRIPT: speaker welcomes the audience and introduces the topic.",
		Language: language,
	}, nil
}
