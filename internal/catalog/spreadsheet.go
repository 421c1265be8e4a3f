package catalog

import (
	"context"
	"fmt"

	"youpull-go/internal/capability"
	"youpull-go/internal/dataset"
	"youpull-go/internal/types"
)

// Spreadsheet reads a hand-curated list of videos from an .xlsx file.
type Spreadsheet struct{}

func (Spreadsheet) ListItems(_ context.Context, reference string) ([]types.CatalogItem, error) {
	items, err := dataset.Load(reference)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", capability.ErrLookup, err)
	}
	return items, nil
}
