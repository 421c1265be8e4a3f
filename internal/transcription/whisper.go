package transcription

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"youpull-go/internal/capability"
	"youpull-go/internal/httpclient"
	"youpull-go/internal/types"
)

const (
	defaultWhisperURL   = "http://localhost:8387"
	defaultWhisperModel = "base"
)

type WhisperConfig struct {
	URL     string
	Model   string
	APIKey  string
	Timeout time.Duration
}

// Whisper talks to a self-hosted faster-whisper HTTP sidecar.
type Whisper struct {
	cfg    WhisperConfig
	client *httpclient.Client
}

func NewWhisper(cfg WhisperConfig) *Whisper {
	if cfg.URL == "" {
		cfg.URL = defaultWhisperURL
	}
	if cfg.Model == "" {
		cfg.Model = defaultWhisperModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}
	return &Whisper{cfg: cfg, client: httpclient.New(cfg.Timeout)}
}

// IsAvailable checks if the sidecar answers its health probe.
func (w *Whisper) IsAvailable(ctx context.Context) bool {
	return w.client.Healthy(ctx, strings.TrimRight(w.cfg.URL, "/")+"/health")
}

type whisperResponse struct {
	Text     string `json:"text"`
	Language string `json:"language"`
	Segments []struct {
		Text  string  `json:"text"`
		Start float64 `json:"start"`
		End   float64 `json:"end"`
	} `json:"segments"`
}

func (w *Whisper) Transcribe(ctx context.Context, audioPath, language string) (types.TranscriptResult, error) {
	endpoint := strings.TrimRight(w.cfg.URL, "/") + "/transcribe"
	form := httpclient.Form{
		FileField: "audio",
		FilePath:  audioPath,
		Fields:    map[string]string{"model": w.cfg.Model, "language": language},
		Order:     []string{"model", "language"},
	}

	var resp whisperResponse
	err := w.client.DoJSON(ctx, func(ctx context.Context) (*http.Request, error) {
		body, contentType, err := form.Encode()
		if err != nil {
			return nil, err
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", contentType)
		if w.cfg.APIKey != "" {
			req.Header.Set("Authorization", "Bearer "+w.cfg.APIKey)
		}
		return req, nil
	}, &resp)
	if err != nil {
		return types.TranscriptResult{}, fmt.Errorf("%w: whisper: %w", capability.ErrTranscription, err)
	}

	out := types.TranscriptResult{Text: resp.Text, Language: resp.Language}
	for _, s := range resp.Segments {
		out.Segments = append(out.Segments, types.TranscriptSegment{Start: s.Start, End: s.End, Text: s.Text})
	}
	if n := len(out.Segments); n > 0 {
		out.Duration = out.Segments[n-1].End
	}
	return out, nil
}
