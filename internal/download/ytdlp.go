// Package download fetches item audio into the scratch directory.
package download

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lrstanley/go-ytdlp"
	"youpull-go/internal/capability"
	"youpull-go/internal/types"
)

// YTDLP downloads the best audio stream and converts it to wav through
// yt-dlp's ffmpeg post-processor.
type YTDLP struct {
	Executable string
	Quality    string
}

func (y *YTDLP) Download(ctx context.Context, item types.CatalogItem, scratchDir string) (types.AudioAsset, error) {
	if err := os.MkdirAll(scratchDir, 0o755); err != nil {
		return types.AudioAsset{}, fmt.Errorf("%w: scratch dir: %v", capability.ErrDownload, err)
	}
	quality := y.Quality
	if quality == "" {
		quality = "192"
	}
	cmd := ytdlp.New().
		Format("bestaudio/best").
		ExtractAudio().
		AudioFormat("wav").
		AudioQuality(quality).
		NoPlaylist().
		Quiet().
		Output(filepath.Join(scratchDir, "%(id)s.%(ext)s"))
	if y.Executable != "" {
		cmd.SetExecutable(y.Executable)
	}
	if _, err := cmd.Run(ctx, item.SourceURL); err != nil {
		return types.AudioAsset{}, fmt.Errorf("%w: yt-dlp %s: %w", capability.ErrDownload, item.SourceURL, err)
	}

	path := capability.ScratchPath(scratchDir, item.ID)
	if _, err := os.Stat(path); err != nil {
		return types.AudioAsset{}, fmt.Errorf("%w: expected audio at %s: %v", capability.ErrDownload, path, err)
	}
	return types.AudioAsset{Path: path, ItemID: item.ID}, nil
}
