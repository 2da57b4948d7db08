// Package search provides full-text search over scanned books using
// Bleve. Books from all profiles share one index; every document is
// tagged with its profile id and queries always filter on it.
package search

import (
	"github.com/shelfmark/shelfmark-server/internal/domain"
)

// BookDocument is the indexed representation of a scanned book.
type BookDocument struct {
	ID        string `json:"id"` // "<profile-id>/<isbn>"
	ProfileID string `json:"profile_id"`
	ISBN      string `json:"isbn"`
	Title     string `json:"title"`
	Authors   string `json:"authors"`
	Publisher string `json:"publisher"`

	Categories  string `json:"categories,omitempty"`
	Description string `json:"description,omitempty"`

	ScannedAt int64 `json:"scanned_at"` // Unix millis, for recency sort
}

// DocumentID derives the index key for a book within a profile. ISBNs
// repeat across profiles, so the profile id is part of the key.
func DocumentID(profileID, isbn string) string {
	return profileID + "/" + isbn
}

// BookToDocument converts a domain book for indexing.
func BookToDocument(profileID string, book *domain.Book) *BookDocument {
	return &BookDocument{
		ID:          DocumentID(profileID, book.ISBN),
		ProfileID:   profileID,
		ISBN:        book.ISBN,
		Title:       book.Title,
		Authors:     book.Authors,
		Publisher:   book.Publisher,
		Categories:  book.Categories,
		Description: book.Description,
		ScannedAt:   book.ScannedAt.UnixMilli(),
	}
}

// ToMap converts the document to a map with lowercase field names so
// they match the index mapping. Bleve would otherwise index under the
// capitalized Go field names.
func (d *BookDocument) ToMap() map[string]interface{} {
	m := map[string]interface{}{
		"id":         d.ID,
		"profile_id": d.ProfileID,
		"isbn":       d.ISBN,
		"title":      d.Title,
		"scanned_at": d.ScannedAt,
	}
	if d.Authors != "" {
		m["authors"] = d.Authors
	}
	if d.Publisher != "" {
		m["publisher"] = d.Publisher
	}
	if d.Categories != "" {
		m["categories"] = d.Categories
	}
	if d.Description != "" {
		m["description"] = d.Description
	}
	return m
}
