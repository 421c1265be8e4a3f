// Package diarization adapts speaker diarization backends to the
// capability.Diarizer port.
package diarization

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"youpull-go/internal/capability"
	"youpull-go/internal/httpclient"
	"youpull-go/internal/types"
)

const (
	defaultPyannoteURL     = "http://localhost:8388"
	defaultPyannoteModel   = "pyannote/speaker-diarization@2.1"
	defaultPyannoteTimeout = 30 * time.Minute
)

type Config struct {
	BaseURL string
	Token   string
	Model   string
	Timeout time.Duration
}

// Pyannote calls a pyannote HTTP sidecar, authenticating with the
// Hugging Face access token the model requires.
type Pyannote struct {
	cfg    Config
	client *httpclient.Client
}

func NewPyannote(cfg Config) *Pyannote {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultPyannoteURL
	}
	if cfg.Model == "" {
		cfg.Model = defaultPyannoteModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultPyannoteTimeout
	}
	return &Pyannote{cfg: cfg, client: httpclient.New(cfg.Timeout)}
}

// FromToken returns the diarizer to inject into the pipeline, or nil when
// diarization cannot run. The decision and its warning happen here, once,
// instead of on every item.
func FromToken(enabled bool, cfg Config, log *logrus.Entry) capability.Diarizer {
	if !enabled {
		return nil
	}
	if strings.TrimSpace(cfg.Token) == "" {
		if log != nil {
			log.Warn("Diarization enabled but no pyannote token provided. Disabling diarization.")
		}
		return nil
	}
	return NewPyannote(cfg)
}

// IsAvailable checks if the sidecar is reachable.
func (p *Pyannote) IsAvailable(ctx context.Context) bool {
	return p.client.Healthy(ctx, strings.TrimRight(p.cfg.BaseURL, "/")+"/health")
}

type pyannoteResponse struct {
	Segments []struct {
		SpeakerID string  `json:"speaker_id"`
		StartTime float64 `json:"start_time"`
		EndTime   float64 `json:"end_time"`
	} `json:"segments"`
	NumSpeakers int    `json:"num_speakers"`
	Error       string `json:"error,omitempty"`
}

func (p *Pyannote) Diarize(ctx context.Context, audioPath string) ([]types.SpeakerSegment, error) {
	endpoint := strings.TrimRight(p.cfg.BaseURL, "/") + "/diarize"
	form := httpclient.Form{
		FileField: "audio",
		FilePath:  audioPath,
		Fields:    map[string]string{"model": p.cfg.Model},
		Order:     []string{"model"},
	}

	var resp pyannoteResponse
	err := p.client.DoJSON(ctx, func(ctx context.Context) (*http.Request, error) {
		body, contentType, err := form.Encode()
		if err != nil {
			return nil, err
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", contentType)
		req.Header.Set("Authorization", "Bearer "+p.cfg.Token)
		return req, nil
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("%w: pyannote: %w", capability.ErrDiarization, err)
	}
	if resp.Error != "" {
		return nil, fmt.Errorf("%w: pyannote: %s", capability.ErrDiarization, resp.Error)
	}
	return toSegments(resp)
}

// toSegments orders segments by start time. Overlaps are kept as returned;
// an interval that does not end after it starts is rejected.
func toSegments(resp pyannoteResponse) ([]types.SpeakerSegment, error) {
	out := make([]types.SpeakerSegment, 0, len(resp.Segments))
	for _, s := range resp.Segments {
		if s.EndTime <= s.StartTime {
			return nil, fmt.Errorf("%w: invalid segment %s [%.2f, %.2f]", capability.ErrDiarization, s.SpeakerID, s.StartTime, s.EndTime)
		}
		out = append(out, types.SpeakerSegment{Speaker: s.SpeakerID, Start: s.StartTime, End: s.EndTime})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	return out, nil
}
