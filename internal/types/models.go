package types

// CatalogItem is one enumerable video of a playlist or channel.
type CatalogItem struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	SourceURL       string   `json:"source_url"`
	UploadDate      string   `json:"upload_date,omitempty"`
	DurationSeconds *float64 `json:"duration_seconds,omitempty"`
}

// AudioAsset is a scratch audio file owned by exactly one item run.
type AudioAsset struct {
	Path   string `json:"path"`
	ItemID string `json:"item_id"`
}

type TranscriptSegment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

type TranscriptResult struct {
	Text     string              `json:"text"`
	Segments []TranscriptSegment `json:"segments,omitempty"`
	Language string              `json:"language,omitempty"`
	Duration float64             `json:"duration,omitempty"`
}

// SpeakerSegment is one diarized interval. End is always after Start.
type SpeakerSegment struct {
	Speaker string  `json:"speaker"`
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
}

type TranscriptDocument struct {
	Path     string      `json:"path"`
	Item     CatalogItem `json:"item"`
	Size     int         `json:"size"`
	Speakers bool        `json:"speakers"`
}
