// Package config resolves process configuration once at startup: .env file,
// environment, defaults and validation.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ErrConfiguration marks a fatal startup problem such as a missing
// credential. Nothing has been processed when it is returned.
var ErrConfiguration = errors.New("configuration error")

const (
	BackendOpenAI  = "openai"
	BackendWhisper = "whisper"
)

type Config struct {
	OpenAIKey         string `validate:"required"`
	OpenAIBaseURL     string `validate:"required,url"`
	TranscribeModel   string `validate:"required"`
	TranscribeBackend string `validate:"oneof=openai whisper"`
	WhisperURL        string `validate:"omitempty,url"`
	Language          string `validate:"required"`
	MockTranscribe    bool

	PyannoteToken string
	PyannoteURL   string `validate:"omitempty,url"`

	TranscriptDir string `validate:"required"`
	ScratchDir    string `validate:"required"`
	YTDLPPath     string
	ReportPath    string
}

// Load reads .env (when present) and the environment.
func Load() (Config, error) {
	_ = godotenv.Load() // loads .env
	return FromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("OPENAI_BASE_URL", "https://api.openai.com/v1")
	v.SetDefault("TRANSCRIBE_MODEL", "whisper-1")
	v.SetDefault("TRANSCRIBE_BACKEND", BackendOpenAI)
	v.SetDefault("TRANSCRIBE_LANGUAGE", "en")
	v.SetDefault("USE_MOCK_TRANSCRIBE", false)
	v.SetDefault("TRANSCRIPT_DIR", "API/transcript")
	v.SetDefault("SCRATCH_DIR", os.TempDir())
	return v
}

// FromViper builds and validates a Config from v.
func FromViper(v *viper.Viper) (Config, error) {
	cfg := Config{
		OpenAIKey:         strings.TrimSpace(v.GetString("OPENAI_API_KEY")),
		OpenAIBaseURL:     v.GetString("OPENAI_BASE_URL"),
		TranscribeModel:   v.GetString("TRANSCRIBE_MODEL"),
		TranscribeBackend: strings.ToLower(v.GetString("TRANSCRIBE_BACKEND")),
		WhisperURL:        v.GetString("WHISPER_URL"),
		Language:          v.GetString("TRANSCRIBE_LANGUAGE"),
		MockTranscribe:    v.GetBool("USE_MOCK_TRANSCRIBE"),
		PyannoteToken:     strings.TrimSpace(v.GetString("PYANNOTE_TOKEN")),
		PyannoteURL:       v.GetString("PYANNOTE_URL"),
		TranscriptDir:     v.GetString("TRANSCRIPT_DIR"),
		ScratchDir:        v.GetString("SCRATCH_DIR"),
		YTDLPPath:         v.GetString("YTDLP_PATH"),
		ReportPath:        v.GetString("REPORT_PATH"),
	}
	if err := validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

var envNames = map[string]string{
	"OpenAIKey":         "OPENAI_API_KEY",
	"OpenAIBaseURL":     "OPENAI_BASE_URL",
	"TranscribeModel":   "TRANSCRIBE_MODEL",
	"TranscribeBackend": "TRANSCRIBE_BACKEND",
	"WhisperURL":        "WHISPER_URL",
	"Language":          "TRANSCRIBE_LANGUAGE",
	"PyannoteURL":       "PYANNOTE_URL",
	"TranscriptDir":     "TRANSCRIPT_DIR",
	"ScratchDir":        "SCRATCH_DIR",
}

func validate(cfg Config) error {
	err := validator.New().Struct(cfg)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrConfiguration, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		name := envNames[fe.Field()]
		if name == "" {
			name = fe.Field()
		}
		if fe.Tag() == "required" {
			msgs = append(msgs, fmt.Sprintf("%s is not set", name))
			continue
		}
		msgs = append(msgs, fmt.Sprintf("%s is invalid (%s)", name, fe.Tag()))
	}
	return fmt.Errorf("%w: %s", ErrConfiguration, strings.Join(msgs, "; "))
}
