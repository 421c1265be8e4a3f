// Package httpclient holds the HTTP plumbing shared by the transcription and
// diarization adapters: multipart audio uploads and JSON calls retried with
// exponential backoff on transient failures.
package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const defaultMaxElapsed = 30 * time.Second

// StatusError is a non-2xx response.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("status %d: %s", e.Code, e.Body)
}

// Form is one multipart upload: a file plus plain fields.
type Form struct {
	FileField string
	FilePath  string
	Fields    map[string]string
	// Order fixes field order so request bodies are reproducible.
	Order []string
}

// Encode reads the audio file and builds the multipart body.
func (f Form) Encode() (*bytes.Buffer, string, error) {
	data, err := os.ReadFile(f.FilePath)
	if err != nil {
		return nil, "", fmt.Errorf("read audio file: %w", err)
	}
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile(f.FileField, filepath.Base(f.FilePath))
	if err != nil {
		return nil, "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, "", fmt.Errorf("write audio data: %w", err)
	}
	for _, k := range f.Order {
		if v, ok := f.Fields[k]; ok && v != "" {
			_ = w.WriteField(k, v)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}

// Client wraps an http.Client with the retry policy.
type Client struct {
	HTTP       *http.Client
	MaxElapsed time.Duration
}

func New(timeout time.Duration) *Client {
	return &Client{HTTP: &http.Client{Timeout: timeout}, MaxElapsed: defaultMaxElapsed}
}

// DoJSON sends the request produced by build and decodes the body into
// target. build is called once per attempt so the body can be replayed.
// Network errors and 5xx responses are retried; 4xx responses and decode
// failures are returned immediately.
func (c *Client) DoJSON(ctx context.Context, build func(ctx context.Context) (*http.Request, error), target any) error {
	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = c.MaxElapsed
	if bo.MaxElapsedTime == 0 {
		bo.MaxElapsedTime = defaultMaxElapsed
	}

	var lastErr error
	op := func() error {
		req, err := build(ctx)
		if err != nil {
			lastErr = err
			return backoff.Permanent(err)
		}
		resp, err := c.HTTP.Do(req)
		if err != nil {
			lastErr = err
			if ctx.Err() != nil {
				return backoff.Permanent(err)
			}
			return err
		}
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		if resp.StatusCode >= 500 {
			lastErr = &StatusError{Code: resp.StatusCode, Body: string(body)}
			return lastErr
		}
		if resp.StatusCode >= 300 {
			lastErr = &StatusError{Code: resp.StatusCode, Body: string(body)}
			return backoff.Permanent(lastErr)
		}
		if len(body) == 0 {
			lastErr = fmt.Errorf("empty body")
			return backoff.Permanent(lastErr)
		}
		if err := json.Unmarshal(body, target); err != nil {
			lastErr = fmt.Errorf("json decode error: %v body=%s", err, string(body))
			return backoff.Permanent(lastErr)
		}
		lastErr = nil
		return nil
	}
	if err := backoff.Retry(op, backoff.WithContext(bo, ctx)); err != nil {
		if lastErr != nil {
			return lastErr
		}
		return err
	}
	return nil
}

// Healthy reports whether GET url answers 200.
func (c *Client) Healthy(ctx context.Context, url string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}
