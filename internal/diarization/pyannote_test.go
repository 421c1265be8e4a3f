package diarization

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"youpull-go/internal/capability"
)

func audioFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vid.wav")
	if err := os.WriteFile(path, []byte("RIFF"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFromToken(t *testing.T) {
	if FromToken(false, Config{Token: "hf_x"}, nil) != nil {
		t.Error("diarizer built with diarization disabled")
	}
	if FromToken(true, Config{Token: "  "}, nil) != nil {
		t.Error("diarizer built with a blank token")
	}
	if FromToken(true, Config{Token: "hf_x"}, nil) == nil {
		t.Error("no diarizer built with a token")
	}
}

func TestPyannote_Diarize(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer hf_x" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		w.Write([]byte(`{"num_speakers":2,"segments":[
			{"speaker_id":"SPEAKER_01","start_time":4.0,"end_time":9.0},
			{"speaker_id":"SPEAKER_00","start_time":0.5,"end_time":4.5},
			{"speaker_id":"SPEAKER_00","start_time":4.0,"end_time":6.0}
		]}`))
	}))
	defer server.Close()

	p := NewPyannote(Config{BaseURL: server.URL, Token: "hf_x"})
	segs, err := p.Diarize(context.Background(), audioFile(t))
	if err != nil {
		t.Fatalf("Diarize: %v", err)
	}
	if len(segs) != 3 {
		t.Fatalf("got %d segments, want 3", len(segs))
	}
	if segs[0].Speaker != "SPEAKER_00" || segs[0].Start != 0.5 {
		t.Errorf("first = %+v, want earliest start first", segs[0])
	}
	// equal starts keep backend order, overlaps are kept
	if segs[1].Speaker != "SPEAKER_01" || segs[2].End != 6.0 {
		t.Errorf("segments = %+v", segs)
	}
}

func TestPyannote_Unauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	defer server.Close()

	_, err := NewPyannote(Config{BaseURL: server.URL, Token: "bad"}).Diarize(context.Background(), audioFile(t))
	if !errors.Is(err, capability.ErrDiarization) {
		t.Fatalf("err = %v, want ErrDiarization", err)
	}
}

func TestPyannote_BackendErrorField(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"segments":[],"error":"audio too short"}`))
	}))
	defer server.Close()

	_, err := NewPyannote(Config{BaseURL: server.URL, Token: "hf_x"}).Diarize(context.Background(), audioFile(t))
	if !errors.Is(err, capability.ErrDiarization) {
		t.Fatalf("err = %v, want ErrDiarization", err)
	}
}

func TestToSegments_RejectsEmptyInterval(t *testing.T) {
	var resp pyannoteResponse
	resp.Segments = append(resp.Segments, struct {
		SpeakerID string  `json:"speaker_id"`
		StartTime float64 `json:"start_time"`
		EndTime   float64 `json:"end_time"`
	}{"SPEAKER_00", 2, 2})
	if _, err := toSegments(resp); !errors.Is(err, capability.ErrDiarization) {
		t.Fatalf("err = %v, want ErrDiarization", err)
	}
}
