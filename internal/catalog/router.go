package catalog

import (
	"context"
	"strings"

	"youpull-go/internal/capability"
	"youpull-go/internal/types"
)

// Router picks the backend for a reference: .xlsx files go to the
// spreadsheet loader, feed URLs to the feed parser, everything else to
// yt-dlp.
type Router struct {
	Spreadsheet capability.CatalogLookup
	Feed        capability.CatalogLookup
	Default     capability.CatalogLookup
}

func NewRouter(ytdlpPath string) *Router {
	return &Router{
		Spreadsheet: Spreadsheet{},
		Feed:        NewFeed(),
		Default:     &YTDLP{Executable: ytdlpPath},
	}
}

func (r *Router) ListItems(ctx context.Context, reference string) ([]types.CatalogItem, error) {
	ref := strings.TrimSpace(reference)
	switch {
	case strings.HasSuffix(strings.ToLower(ref), ".xlsx") && r.Spreadsheet != nil:
		return r.Spreadsheet.ListItems(ctx, ref)
	case IsFeedReference(ref) && r.Feed != nil:
		return r.Feed.ListItems(ctx, ref)
	default:
		return r.Default.ListItems(ctx, ref)
	}
}
