// Package capability declares the external backends the transcript pipeline
// depends on. Each interface covers exactly one capability; concrete
// adapters live in catalog, download, transcription and diarization.
package capability

import (
	"context"
	"errors"
	"path/filepath"

	"youpull-go/internal/types"
)

// Error categories. Adapters wrap their causes with one of these so the
// batch driver can classify failures with errors.Is.
var (
	ErrLookup        = errors.New("catalog lookup failed")
	ErrDownload      = errors.New("audio download failed")
	ErrTranscription = errors.New("transcription failed")
	ErrDiarization   = errors.New("diarization failed")
	ErrPersistence   = errors.New("transcript persistence failed")
)

// CatalogLookup enumerates the items behind a playlist or channel reference.
// An empty result is not an error.
type CatalogLookup interface {
	ListItems(ctx context.Context, reference string) ([]types.CatalogItem, error)
}

// ScratchAudioExt is the container every Downloader converts audio to.
const ScratchAudioExt = ".wav"

// ScratchPath is where a Downloader leaves the audio of item id inside dir.
// The pipeline relies on it to clean up after a download that failed half
// way.
func ScratchPath(dir, id string) string {
	return filepath.Join(dir, id+ScratchAudioExt)
}

// Downloader fetches the audio track of one item into scratchDir.
type Downloader interface {
	Download(ctx context.Context, item types.CatalogItem, scratchDir string) (types.AudioAsset, error)
}

type Transcriber interface {
	Transcribe(ctx context.Context, audioPath, language string) (types.TranscriptResult, error)
}

// Diarizer returns speaker segments ordered by start time.
type Diarizer interface {
	Diarize(ctx context.Context, audioPath string) ([]types.SpeakerSegment, error)
}
