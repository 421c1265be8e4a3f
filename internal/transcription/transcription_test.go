package transcription

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"youpull-go/internal/capability"
)

func audioFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vid.wav")
	if err := os.WriteFile(path, []byte("RIFF....WAVE"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestOpenAI_Transcribe(t *testing.T) {
	var got struct {
		auth, model, lang, format, file string
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/audio/transcriptions" {
			http.NotFound(w, r)
			return
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse form: %v", err)
		}
		got.auth = r.Header.Get("Authorization")
		got.model = r.FormValue("model")
		got.lang = r.FormValue("language")
		got.format = r.FormValue("response_format")
		if _, hdr, err := r.FormFile("file"); err == nil {
			got.file = hdr.Filename
		}
		json.NewEncoder(w).Encode(map[string]any{
			"text":     "hello there",
			"language": "english",
			"duration": 4.2,
			"segments": []map[string]any{{"start": 0.0, "end": 4.2, "text": "hello there"}},
		})
	}))
	defer server.Close()

	o := NewOpenAI(OpenAIConfig{APIKey: "sk-test", BaseURL: server.URL + "/v1/"}, nil)
	res, err := o.Transcribe(context.Background(), audioFile(t), "en")
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if res.Text != "hello there" || len(res.Segments) != 1 || res.Duration != 4.2 {
		t.Errorf("result = %+v", res)
	}
	if got.auth != "Bearer sk-test" || got.model != "whisper-1" || got.lang != "en" || got.format != "verbose_json" || got.file != "vid.wav" {
		t.Errorf("request = %+v", got)
	}
}

func TestOpenAI_ClientErrorNotRetried(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		http.Error(w, `{"error":{"message":"Invalid file format."}}`, http.StatusBadRequest)
	}))
	defer server.Close()

	o := NewOpenAI(OpenAIConfig{APIKey: "sk-test", BaseURL: server.URL}, nil)
	_, err := o.Transcribe(context.Background(), audioFile(t), "en")
	if !errors.Is(err, capability.ErrTranscription) {
		t.Fatalf("err = %v, want ErrTranscription", err)
	}
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Errorf("calls = %d, want 1", n)
	}
}

func TestOpenAI_MissingAudio(t *testing.T) {
	o := NewOpenAI(OpenAIConfig{APIKey: "sk-test", BaseURL: "http://127.0.0.1:1"}, nil)
	_, err := o.Transcribe(context.Background(), filepath.Join(t.TempDir(), "nope.wav"), "en")
	if !errors.Is(err, capability.ErrTranscription) {
		t.Fatalf("err = %v, want ErrTranscription", err)
	}
}

func TestWhisper_Transcribe(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/health":
			w.WriteHeader(http.StatusOK)
		case "/transcribe":
			r.ParseMultipartForm(1 << 20)
			if r.FormValue("model") != "base" || r.FormValue("language") != "de" {
				t.Errorf("form = %v", r.MultipartForm.Value)
			}
			w.Write([]byte(`{"text":"hallo","language":"de","segments":[{"text":"hallo","start":0,"end":1.5},{"text":"welt","start":1.5,"end":3}]}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	w := NewWhisper(WhisperConfig{URL: server.URL})
	if !w.IsAvailable(context.Background()) {
		t.Error("sidecar reported unavailable")
	}
	res, err := w.Transcribe(context.Background(), audioFile(t), "de")
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if res.Text != "hallo" || res.Duration != 3 || len(res.Segments) != 2 {
		t.Errorf("result = %+v", res)
	}
}

func TestMock_Transcribe(t *testing.T) {
	res, err := Mock{}.Transcribe(context.Background(), audioFile(t), "en")
	if err != nil || res.Text == "" {
		t.Fatalf("Mock: res=%+v err=%v", res, err)
	}
	if _, err := (Mock{}).Transcribe(context.Background(), "/does/not/exist.wav", "en"); !errors.Is(err, capability.ErrTranscription) {
		t.Errorf("err = %v, want ErrTranscription", err)
	}
}
