package domain

import "time"

// Asset is an opaque handle to a stored photo. The application keeps
// references only; the underlying media stays in the library store.
type Asset struct {
	ID        string
	AlbumID   string
	RelPath   string
	SourceURL string // set for non-local assets fetched over the network
	CreatedAt time.Time
}

// Local reports whether the asset's media lives on the local filesystem.
func (a Asset) Local() bool {
	return a.SourceURL == ""
}
