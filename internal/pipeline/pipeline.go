// internal/pipeline/pipeline.go
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"youpull-go/internal/capability"
	"youpull-go/internal/types"
)

// DefaultLanguage is the language hint passed to the transcriber.
const DefaultLanguage = "en"

// Stage identifies a step of the per-item state machine.
type Stage int

const (
	StagePending Stage = iota
	StageDownload
	StageTranscribe
	StageDiarize
	StagePersist
	StageCleanup
	StageDone
	StageFailed
)

func (s Stage) String() string {
	switch s {
	case StagePending:
		return "pending"
	case StageDownload:
		return "download"
	case StageTranscribe:
		return "transcribe"
	case StageDiarize:
		return "diarize"
	case StagePersist:
		return "persist"
	case StageCleanup:
		return "cleanup"
	case StageDone:
		return "done"
	case StageFailed:
		return "failed"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

// StageError is the failure of one item at one stage.
type StageError struct {
	Stage Stage
	Item  types.CatalogItem
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Stage, e.Item.Title, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// FailedStage reports the stage of a StageError inside err, or StageFailed
// when err carries none.
func FailedStage(err error) Stage {
	var se *StageError
	if errors.As(err, &se) {
		return se.Stage
	}
	return StageFailed
}

// DocumentWriter persists the rendered result of one item.
type DocumentWriter interface {
	Write(item types.CatalogItem, tr types.TranscriptResult, segments []types.SpeakerSegment) (types.TranscriptDocument, error)
}

// Observer receives every state transition of an item.
type Observer func(item types.CatalogItem, stage Stage)

type Options struct {
	ScratchDir string
	Language   string
	// Diarize is the batch-wide feature flag. It only has an effect when a
	// Diarizer is present.
	Diarize  bool
	Observer Observer
}

// Pipeline runs download, transcription, optional diarization, persistence
// and cleanup for one item at a time.
type Pipeline struct {
	downloader  capability.Downloader
	transcriber capability.Transcriber
	diarizer    capability.Diarizer
	writer      DocumentWriter
	opts        Options
	log         *logrus.Entry
}

// New builds a pipeline. diarizer may be nil; whether diarization runs is
// fixed here and never re-evaluated per item.
func New(dl capability.Downloader, tr capability.Transcriber, dz capability.Diarizer, w DocumentWriter, opts Options, log *logrus.Entry) *Pipeline {
	if opts.Language == "" {
		opts.Language = DefaultLanguage
	}
	if opts.ScratchDir == "" {
		opts.ScratchDir = os.TempDir()
	}
	if dz == nil {
		opts.Diarize = false
	}
	return &Pipeline{
		downloader:  dl,
		transcriber: tr,
		diarizer:    dz,
		writer:      w,
		opts:        opts,
		log:         log,
	}
}

// DiarizationEnabled reports whether items get speaker segments.
func (p *Pipeline) DiarizationEnabled() bool { return p.opts.Diarize }

// Process runs every stage for item. On failure the returned error is a
// *StageError and no document has been written. The scratch audio file is
// removed in both cases.
func (p *Pipeline) Process(ctx context.Context, item types.CatalogItem) (doc types.TranscriptDocument, err error) {
	var asset types.AudioAsset
	p.observe(item, StagePending)

	defer func() {
		p.observe(item, StageCleanup)
		p.cleanup(item, asset)
		if err != nil {
			p.observe(item, StageFailed)
			return
		}
		p.observe(item, StageDone)
	}()

	p.observe(item, StageDownload)
	asset, err = p.downloader.Download(ctx, item, p.opts.ScratchDir)
	if err != nil {
		return doc, p.fail(StageDownload, item, capability.ErrDownload, err)
	}

	p.observe(item, StageTranscribe)
	tr, err := p.transcriber.Transcribe(ctx, asset.Path, p.opts.Language)
	if err != nil {
		return doc, p.fail(StageTranscribe, item, capability.ErrTranscription, err)
	}

	var segments []types.SpeakerSegment
	if p.opts.Diarize {
		p.observe(item, StageDiarize)
		segments, err = p.diarizer.Diarize(ctx, asset.Path)
		if err != nil {
			return doc, p.fail(StageDiarize, item, capability.ErrDiarization, err)
		}
	}

	p.observe(item, StagePersist)
	doc, err = p.writer.Write(item, tr, segments)
	if err != nil {
		return types.TranscriptDocument{}, p.fail(StagePersist, item, capability.ErrPersistence, err)
	}
	return doc, nil
}

// fail wraps err in a StageError, adding the category sentinel when the
// adapter did not already.
func (p *Pipeline) fail(stage Stage, item types.CatalogItem, category, err error) error {
	if !errors.Is(err, category) {
		err = fmt.Errorf("%w: %w", category, err)
	}
	return &StageError{Stage: stage, Item: item, Err: err}
}

// cleanup is best effort. The asset path is also derived from the item id so
// a download that failed half way still has its partial file removed.
func (p *Pipeline) cleanup(item types.CatalogItem, asset types.AudioAsset) {
	path := asset.Path
	if path == "" {
		path = capability.ScratchPath(p.opts.ScratchDir, item.ID)
	}
	if err := os.Remove(path); err != nil && p.log != nil {
		p.log.WithField("path", path).WithField("error", err.Error()).Debug("scratch cleanup skipped")
	}
}

func (p *Pipeline) observe(item types.CatalogItem, stage Stage) {
	if p.opts.Observer != nil {
		p.opts.Observer(item, stage)
	}
}
