package processor

import (
	"youpull-go/internal/capability"
	"youpull-go/internal/catalog"
	"youpull-go/internal/config"
	"youpull-go/internal/diarization"
	"youpull-go/internal/download"
	"youpull-go/internal/logger"
	"youpull-go/internal/pipeline"
	"youpull-go/internal/transcription"
	"youpull-go/internal/types"
	"youpull-go/internal/writer"
)

// NewTranscriber picks the speech backend named by the configuration.
func NewTranscriber(cfg config.Config, log *logger.Logger) capability.Transcriber {
	switch {
	case cfg.MockTranscribe:
		log.Warn("USE_MOCK_TRANSCRIBE is set, transcripts are canned")
		return transcription.Mock{}
	case cfg.TranscribeBackend == config.BackendWhisper:
		return transcription.NewWhisper(transcription.WhisperConfig{
			URL:    cfg.WhisperURL,
			APIKey: cfg.OpenAIKey,
		})
	default:
		return transcription.NewOpenAI(transcription.OpenAIConfig{
			APIKey:  cfg.OpenAIKey,
			BaseURL: cfg.OpenAIBaseURL,
			Model:   cfg.TranscribeModel,
		}, log.WithComponent("transcription").Entry)
	}
}

// NewDriver wires the production adapters. Whether diarization runs is
// settled here from the operator's answer and the token.
func NewDriver(cfg config.Config, diarize bool, log *logger.Logger) *Driver {
	dz := diarization.FromToken(diarize, diarization.Config{
		BaseURL: cfg.PyannoteURL,
		Token:   cfg.PyannoteToken,
	}, log.WithComponent("diarization").Entry)

	plog := log.WithComponent("pipeline")
	p := pipeline.New(
		&download.YTDLP{Executable: cfg.YTDLPPath},
		NewTranscriber(cfg, log),
		dz,
		writer.New(cfg.TranscriptDir, log.WithComponent("writer").Entry),
		pipeline.Options{
			ScratchDir: cfg.ScratchDir,
			Language:   cfg.Language,
			Diarize:    diarize,
			Observer:   func(item types.CatalogItem, stage pipeline.Stage) {
				plog.WithItem(item).WithField("stage", stage.String()).Debug("stage transition")
			},
		},
		plog.Entry,
	)
	return &Driver{
		Lookup:     catalog.NewRouter(cfg.YTDLPPath),
		Processor:  p,
		Log:        log,
		ReportPath: cfg.ReportPath,
	}
}
