package domain

import "time"

// Book is the canonical record shape produced by the metadata resolver,
// regardless of which provider supplied the data. All metadata fields
// default to the empty string when unresolved; only ISBN and ScannedAt are
// always populated.
//
// Invariants: ISBN never changes after creation, and no two records in the
// same profile's collection share an ISBN. Records are never mutated in
// place.
type Book struct {
	ISBN          string    `json:"isbn"`
	Title         string    `json:"title"`
	Authors       string    `json:"authors"`
	Publisher     string    `json:"publisher"`
	PublishedDate string    `json:"published_date"`
	PageCount     int       `json:"page_count"`
	Categories    string    `json:"categories"`
	Description   string    `json:"description"`
	CoverURL      string    `json:"cover_url"`
	ScannedAt     time.Time `json:"scanned_at"`
}

// Identified reports whether any provider matched this record.
// An unidentified record is still a valid scan result ("scanned but
// unidentified"), not an error.
func (b *Book) Identified() bool {
	return b.Title != ""
}
