package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/mmcdole/gofeed"
	"youpull-go/internal/capability"
	"youpull-go/internal/types"
)

// Feed enumerates a channel or playlist through its public Atom feed
// (youtube.com/feeds/videos.xml?channel_id=... or ?playlist_id=...). The feed
// only carries the most recent uploads and no durations.
type Feed struct {
	parser *gofeed.Parser
}

func NewFeed() *Feed {
	return &Feed{parser: gofeed.NewParser()}
}

// IsFeedReference reports whether ref looks like a YouTube feed URL.
func IsFeedReference(ref string) bool {
	return strings.Contains(strings.ToLower(ref), "/feeds/videos.xml")
}

func (f *Feed) ListItems(ctx context.Context, reference string) ([]types.CatalogItem, error) {
	feed, err := f.parser.ParseURLWithContext(reference, ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: parse feed: %w", capability.ErrLookup, err)
	}
	return feedItems(feed), nil
}

func feedItems(feed *gofeed.Feed) []types.CatalogItem {
	if feed == nil {
		return nil
	}
	items := make([]types.CatalogItem, 0, len(feed.Items))
	for _, it := range feed.Items {
		if it.Link == "" {
			continue
		}
		id := videoID(it)
		link := it.Link
		if id != "" {
			link = watchURL + id
		}
		date := ""
		if it.PublishedParsed != nil {
			date = it.PublishedParsed.UTC().Format("20060102")
		}
		items = append(items, types.CatalogItem{
			ID:         id,
			Title:      it.Title,
			SourceURL:  link,
			UploadDate: date,
		})
	}
	return items
}

// videoID prefers the yt:videoId extension and falls back to the guid,
// which YouTube formats as "yt:video:<id>".
func videoID(it *gofeed.Item) string {
	if ext, ok := it.Extensions["yt"]; ok {
		if vals := ext["videoId"]; len(vals) > 0 && vals[0].Value != "" {
			return vals[0].Value
		}
	}
	if id, ok := strings.CutPrefix(it.GUID, "yt:video:"); ok {
		return id
	}
	return it.GUID
}
