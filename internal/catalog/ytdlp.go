// Package catalog resolves playlist and channel references into catalog
// items. Three backends are supported: yt-dlp flat extraction, YouTube
// Atom feeds and local spreadsheets.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lrstanley/go-ytdlp"
	"youpull-go/internal/capability"
	"youpull-go/internal/types"
)

const watchURL = "https://www.youtube.com/watch?v="

// YTDLP enumerates playlists with yt-dlp's flat extraction, so no media is
// fetched while listing.
type YTDLP struct {
	Executable string
}

func (y *YTDLP) ListItems(ctx context.Context, reference string) ([]types.CatalogItem, error) {
	cmd := ytdlp.New().
		FlatPlaylist().
		DumpSingleJSON().
		SkipDownload().
		Quiet()
	if y.Executable != "" {
		cmd.SetExecutable(y.Executable)
	}
	res, err := cmd.Run(ctx, reference)
	if err != nil {
		return nil, fmt.Errorf("%w: yt-dlp %s: %w", capability.ErrLookup, reference, err)
	}
	return parsePlaylist([]byte(res.Stdout))
}

type flatPlaylist struct {
	Entries []flatEntry `json:"entries"`
}

type flatEntry struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	URL        string   `json:"url"`
	UploadDate string   `json:"upload_date"`
	Duration   *float64 `json:"duration"`
}

// parsePlaylist maps yt-dlp's single JSON dump to items. Entries without a
// url are skipped; the watch URL is rebuilt from the id.
func parsePlaylist(data []byte) ([]types.CatalogItem, error) {
	var pl flatPlaylist
	if err := json.Unmarshal(data, &pl); err != nil {
		return nil, fmt.Errorf("%w: decode yt-dlp output: %v", capability.ErrLookup, err)
	}
	items := make([]types.CatalogItem, 0, len(pl.Entries))
	for _, e := range pl.Entries {
		if strings.TrimSpace(e.URL) == "" {
			continue
		}
		items = append(items, types.CatalogItem{
			ID:              e.ID,
			Title:           e.Title,
			SourceURL:       watchURL + e.ID,
			UploadDate:      e.UploadDate,
			DurationSeconds: e.Duration,
		})
	}
	return items, nil
}
