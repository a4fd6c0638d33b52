package model

// Package model contains the domain data structures shared across layers
// (HTTP, service, persistence). JSON tags define the wire format used both
// by the API and by the persisted document, so there is no separate DTO layer.

// Clip type discriminators.
const (
	ClipTypeText  = "text"
	ClipTypeImage = "image"
	ClipTypeFile  = "file"
)

// DefaultBoardID is the identifier of the permanent board created at first run.
// It can never be deleted.
const DefaultBoardID = "default"

// Board is a named container for an ordered list of clips.
type Board struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt int64  `json:"createdAt"` // unix milliseconds
}

// Clip is one submitted clipboard item. The Type field selects which of the
// optional fields are populated:
//   - text:  Content
//   - image: Filename, ImageURL
//   - file:  Filename, OriginalName, Size, FileURL
//
// Clips are immutable after creation.
type Clip struct {
	ID           string `json:"id"`
	Type         string `json:"type"`
	Content      string `json:"content,omitempty"`
	Filename     string `json:"filename,omitempty"`
	ImageURL     string `json:"imageUrl,omitempty"`
	OriginalName string `json:"originalName,omitempty"`
	Size         int64  `json:"size,omitempty"`
	FileURL      string `json:"fileUrl,omitempty"`
	CreatedAt    int64  `json:"createdAt"`
}

// HasBlob reports whether the clip references a binary payload in the blob store.
func (c Clip) HasBlob() bool {
	return (c.Type == ClipTypeImage || c.Type == ClipTypeFile) && c.Filename != ""
}
