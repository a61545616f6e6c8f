package domain

// Album is a named, read-only grouping of assets, enumerated once per session.
type Album struct {
	ID         string
	Title      string
	PhotoCount int
}
