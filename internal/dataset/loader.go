package dataset

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"youpull-go/internal/types"
)

// Load reads catalog items from the first sheet of an .xlsx file, detecting
// the url, title, id, date and duration columns from the header row.
func Load(path string) ([]types.CatalogItem, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	if len(rows) <= 1 {
		return nil, nil
	}
	header := rows[0]
	urlIdx, titleIdx, idIdx, dateIdx, durIdx := -1, -1, -1, -1, -1
	for i, h := range header {
		l := strings.ToLower(strings.TrimSpace(h))
		switch {
		case strings.Contains(l, "url") || strings.Contains(l, "link"):
			if urlIdx == -1 {
				urlIdx = i
			}
		case strings.Contains(l, "title") || strings.Contains(l, "name"):
			if titleIdx == -1 {
				titleIdx = i
			}
		case strings.Contains(l, "date") || strings.Contains(l, "published"):
			if dateIdx == -1 {
				dateIdx = i
			}
		case strings.Contains(l, "duration") || strings.Contains(l, "length"):
			if durIdx == -1 {
				durIdx = i
			}
		case l == "id" || strings.Contains(l, "video id") || strings.Contains(l, "videoid"):
			if idIdx == -1 {
				idIdx = i
			}
		}
	}
	// fallback heuristics
	if urlIdx == -1 {
		urlIdx = 0
	}
	cell := func(r []string, idx int) string {
		if idx >= 0 && idx < len(r) {
			return strings.TrimSpace(r[idx])
		}
		return ""
	}

	var out []types.CatalogItem
	for i, r := range rows {
		if i == 0 {
			continue
		}
		item := types.CatalogItem{
			ID:         cell(r, idIdx),
			Title:      cell(r, titleIdx),
			SourceURL:  cell(r, urlIdx),
			UploadDate: cell(r, dateIdx),
		}
		// rows without a usable URL are skipped quietly
		lower := strings.ToLower(item.SourceURL)
		if !(strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")) {
			continue
		}
		if item.ID == "" {
			item.ID = idFromURL(item.SourceURL, i)
		}
		if item.Title == "" {
			item.Title = item.ID
		}
		if d := cell(r, durIdx); d != "" {
			if v, err := strconv.ParseFloat(d, 64); err == nil {
				item.DurationSeconds = &v
			}
		}
		out = append(out, item)
	}
	return out, nil
}

// idFromURL takes the v= parameter of a watch URL, else the row number.
func idFromURL(u string, row int) string {
	if _, after, ok := strings.Cut(u, "v="); ok {
		id, _, _ := strings.Cut(after, "&")
		if id != "" {
			return id
		}
	}
	return fmt.Sprintf("row%d", row+1)
}
