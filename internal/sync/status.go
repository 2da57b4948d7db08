package sync

import (
	stdsync "sync"

	"github.com/shelfmark/shelfmark-server/internal/domain"
)

// StatusTracker holds the in-memory sync state of the active profile's
// scans, keyed by ISBN. It is never persisted. Entries exist only for
// books dispatched during the current session of the current profile.
//
// Every write names the profile it belongs to; writes for any other
// profile are dropped. That guards against a dispatch settling after
// the user switched profiles.
type StatusTracker struct {
	mu        stdsync.Mutex
	profileID string
	states    map[string]domain.SyncState
}

func NewStatusTracker() *StatusTracker {
	return &StatusTracker{
		states: make(map[string]domain.SyncState),
	}
}

// Reset drops all entries and binds the tracker to a new active
// profile. Called on every profile switch.
func (t *StatusTracker) Reset(profileID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.profileID = profileID
	t.states = make(map[string]domain.SyncState)
}

// Set records a state for an ISBN. The write is discarded when
// profileID is not the tracker's current owner.
func (t *StatusTracker) Set(profileID, isbn string, state domain.SyncState) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if profileID != t.profileID {
		return
	}
	t.states[isbn] = state
}

// Get returns the recorded state for an ISBN, if any.
func (t *StatusTracker) Get(isbn string) (domain.SyncState, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	state, ok := t.states[isbn]
	return state, ok
}

// Snapshot copies the current state map for read-only use.
func (t *StatusTracker) Snapshot() map[string]domain.SyncState {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make(map[string]domain.SyncState, len(t.states))
	for isbn, state := range t.states {
		out[isbn] = state
	}
	return out
}
