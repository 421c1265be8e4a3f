// Package writer renders transcript documents to markdown files.
package writer

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"youpull-go/internal/capability"
	"youpull-go/internal/types"
)

const (
	notAvailable  = "N/A"
	filePrefix    = "script_"
	fileExtension = ".md"

	// SpeakerSection is the heading of the diarization block.
	SpeakerSection = "## Speaker Segments"
)

// Writer persists one transcript document per item into Dir.
type Writer struct {
	Dir string
	log *logrus.Entry
}

func New(dir string, log *logrus.Entry) *Writer {
	return &Writer{Dir: dir, log: log}
}

// Write renders the document and stores it under a path derived from the
// item title. An existing file at that path is replaced. The content is
// staged in a temp file and renamed so a failed write never leaves a
// partial document behind.
func (w *Writer) Write(item types.CatalogItem, tr types.TranscriptResult, segments []types.SpeakerSegment) (types.TranscriptDocument, error) {
	if err := os.MkdirAll(w.Dir, 0o755); err != nil {
		return types.TranscriptDocument{}, fmt.Errorf("%w: create transcript dir: %v", capability.ErrPersistence, err)
	}

	body := Render(item, tr, segments)
	path := filepath.Join(w.Dir, FileName(item.Title))

	tmp, err := os.CreateTemp(w.Dir, ".partial-*")
	if err != nil {
		return types.TranscriptDocument{}, fmt.Errorf("%w: create temp file: %v", capability.ErrPersistence, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(body); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return types.TranscriptDocument{}, fmt.Errorf("%w: write %s: %v", capability.ErrPersistence, path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return types.TranscriptDocument{}, fmt.Errorf("%w: close %s: %v", capability.ErrPersistence, path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return types.TranscriptDocument{}, fmt.Errorf("%w: rename into %s: %v", capability.ErrPersistence, path, err)
	}

	if w.log != nil {
		w.log.WithField("path", path).Info("transcript saved")
	}
	return types.TranscriptDocument{
		Path:     path,
		Item:     item,
		Size:     len(body),
		Speakers: len(segments) > 0,
	}, nil
}

// FileName derives the document file name from a title. Only path
// separators are replaced; two items with the same title map to the same
// file.
func FileName(title string) string {
	safe := strings.NewReplacer("/", "_", "\\", "_").Replace(title)
	return filePrefix + safe + fileExtension
}

// Render produces the document bytes. Output depends only on its inputs.
func Render(item types.CatalogItem, tr types.TranscriptResult, segments []types.SpeakerSegment) []byte {
	var b bytes.Buffer

	date := item.UploadDate
	if date == "" {
		date = notAvailable
	}
	duration := notAvailable
	if item.DurationSeconds != nil {
		duration = strconv.FormatFloat(*item.DurationSeconds, 'f', -1, 64)
	}

	fmt.Fprintf(&b, "# %s\n", item.Title)
	fmt.Fprintf(&b, "Date: %s\n", date)
	fmt.Fprintf(&b, "Duration: %s seconds\n\n", duration)

	if len(segments) > 0 {
		b.WriteString(SpeakerSection + "\n")
		for _, seg := range segments {
			fmt.Fprintf(&b, "- Speaker %s: %.2fs - %.2fs\n", seg.Speaker, seg.Start, seg.End)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Transcript\n\n")
	b.WriteString(tr.Text)
	return b.Bytes()
}
