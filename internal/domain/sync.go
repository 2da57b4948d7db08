package domain

// SyncState is the transient per-identifier sync outcome tag. It is held
// only in process memory for the active session, keyed by ISBN, and reset
// whenever the active profile changes. Absent entirely when the profile has
// no sync endpoint configured.
type SyncState string

const (
	// SyncPending marks a record whose dispatch has started but not settled.
	SyncPending SyncState = "pending"

	// SyncDone marks a record whose dispatch was issued without a transport
	// error. This is not a delivery acknowledgment: the transport mode
	// cannot observe the remote response.
	SyncDone SyncState = "synced"

	// SyncError marks a record whose dispatch failed at the transport
	// level. Never retried automatically.
	SyncError SyncState = "error"
)
