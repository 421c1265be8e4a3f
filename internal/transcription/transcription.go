package transcription

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"youpull-go/internal/capability"
	"youpull-go/internal/httpclient"
	"youpull-go/internal/types"
)

const (
	defaultBaseURL = "https://api.openai.com/v1"
	defaultModel   = "whisper-1"
	defaultTimeout = 10 * time.Minute
)

type OpenAIConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// OpenAI transcribes through the audio/transcriptions endpoint with a
// verbose_json response so segment timings come back with the text.
type OpenAI struct {
	cfg    OpenAIConfig
	client *httpclient.Client
	log    *logrus.Entry
}

func NewOpenAI(cfg OpenAIConfig, log *logrus.Entry) *OpenAI {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}
	return &OpenAI{cfg: cfg, client: httpclient.New(cfg.Timeout), log: log}
}

type verboseResponse struct {
	Text     string  `json:"text"`
	Language string  `json:"language"`
	Duration float64 `json:"duration"`
	Segments []struct {
		Start float64 `json:"start"`
		End   float64 `json:"end"`
		Text  string  `json:"text"`
	} `json:"segments"`
}

func (o *OpenAI) Transcribe(ctx context.Context, audioPath, language string) (types.TranscriptResult, error) {
	endpoint := strings.TrimRight(o.cfg.BaseURL, "/") + "/audio/transcriptions"
	form := httpclient.Form{
		FileField: "file",
		FilePath:  audioPath,
		Fields: map[string]string{
			"model":           o.cfg.Model,
			"language":        language,
			"response_format": "verbose_json",
		},
		Order: []string{"model", "language", "response_format"},
	}
	if o.log != nil {
		o.log.WithFields(logrus.Fields{"audio": audioPath, "model": o.cfg.Model}).Debug("openai transcription request")
	}

	var resp verboseResponse
	err := o.client.DoJSON(ctx, func(ctx context.Context) (*http.Request, error) {
		body, contentType, err := form.Encode()
		if err != nil {
			return nil, err
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", contentType)
		req.Header.Set("Authorization", "Bearer "+o.cfg.APIKey)
		return req, nil
	}, &resp)
	if err != nil {
		return types.TranscriptResult{}, fmt.Errorf("%w: openai: %w", capability.ErrTranscription, err)
	}

	out := types.TranscriptResult{Text: resp.Text, Language: resp.Language, Duration: resp.Duration}
	for _, s := range resp.Segments {
		out.Segments = append(out.Segments, types.TranscriptSegment{Start: s.Start, End: s.End, Text: s.Text})
	}
	return out, nil
}
