package store

import "sync"

// Fixed keys. The profile list and the active id live under their own keys;
// each profile's book collection lives under a key derived from the
// profile id.
const (
	profilesKey      = "profiles"
	activeProfileKey = "profiles:active"
	booksPrefix      = "books:"

	// Legacy single-profile layout, migrated on first open.
	legacyBooksKey    = "books"
	legacySettingsKey = "settings"
)

// keyPool provides reusable byte slices for building per-profile book keys.
// Reduces allocations on the scan hot path.
var keyPool = sync.Pool{
	New: func() any {
		// 64 bytes covers prefix (6) plus a prefixed NanoID (26).
		return make([]byte, 0, 64)
	},
}

// booksKey builds the book-collection key for a profile using a pooled
// buffer. Callers MUST call releaseKey when done with the key.
//
// Read paths only: Badger keeps key slices referenced until a write
// transaction commits, so mutating transactions build their keys with
// booksKeyOwned instead.
func booksKey(profileID string) []byte {
	buf, _ := keyPool.Get().([]byte)
	buf = buf[:0] // Reset length, keep capacity
	buf = append(buf, booksPrefix...)
	buf = append(buf, profileID...)
	return buf
}

// booksKeyOwned builds a freshly allocated book-collection key that is safe
// to hand to txn.Set and txn.Delete.
func booksKeyOwned(profileID string) []byte {
	return []byte(booksPrefix + profileID)
}

// releaseKey returns a key buffer to the pool for reuse.
// After calling this, the key slice must not be used.
func releaseKey(key []byte) {
	if cap(key) <= 256 {
		keyPool.Put(key[:0])
	}
}
