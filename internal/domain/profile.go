// Package domain defines the core data model: library profiles, scanned
// book records, and per-session sync state.
package domain

import "time"

// Profile is a named, isolated configuration context ("library").
// Each profile owns its own book collection and sync settings. Exactly one
// profile is active at a time; the active pointer is a weak reference (an
// id) resolved against the profile list on every read.
type Profile struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Settings  ProfileSettings `json:"settings"`
	CreatedAt time.Time       `json:"created_at"`
}

// ProfileSettings is the per-profile sync configuration bag.
// ScriptURL is the optional external spreadsheet sync endpoint; when empty
// the sync dispatcher is never invoked for this profile.
type ProfileSettings struct {
	SheetName      string `json:"sheet_name,omitempty"`
	ScriptURL      string `json:"script_url,omitempty"`
	SpreadsheetURL string `json:"spreadsheet_url,omitempty"`
}

// SyncConfigured reports whether this profile has a sync endpoint.
func (p *Profile) SyncConfigured() bool {
	return p.Settings.ScriptURL != ""
}
