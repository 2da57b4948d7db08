package sync

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfmark/shelfmark-server/internal/domain"
)

func testBook() *domain.Book {
	return &domain.Book{
		ISBN:          "9780134190440",
		Title:         "The Go Programming Language",
		Authors:       "Alan A. A. Donovan, Brian W. Kernighan",
		Publisher:     "Addison-Wesley",
		PublishedDate: "2015-11-16",
		PageCount:     380,
		Categories:    "Computers",
		ScannedAt:     time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC),
	}
}

func TestDispatch_SendsRecordAsQuery(t *testing.T) {
	var got *http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Clone(context.Background())
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	d := NewDispatcher(nil, 0)
	ok := d.Dispatch(context.Background(), srv.URL, "Books", testBook())

	assert.True(t, ok)
	require.NotNil(t, got)
	q := got.URL.Query()
	assert.Equal(t, "Books", q.Get("sheet"))
	assert.Equal(t, "9780134190440", q.Get("isbn"))
	assert.Equal(t, "The Go Programming Language", q.Get("title"))
	assert.Equal(t, "Alan A. A. Donovan, Brian W. Kernighan", q.Get("authors"))
	assert.Equal(t, "380", q.Get("pageCount"))
	assert.Equal(t, "2026-03-14T09:26:53Z", q.Get("scannedAt"))
}

func TestDispatch_RemoteStatusIsNotInterpreted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	d := NewDispatcher(nil, 0)

	// Issued means sent, not delivered; a 500 still counts as sent.
	assert.True(t, d.Dispatch(context.Background(), srv.URL, "Books", testBook()))
}

func TestDispatch_TransportErrorIsFalse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	d := NewDispatcher(nil, time.Second)
	assert.False(t, d.Dispatch(context.Background(), srv.URL, "Books", testBook()))
}

func TestStatusTracker_StaleWriteGuard(t *testing.T) {
	tr := NewStatusTracker()
	tr.Reset("prof-a")

	tr.Set("prof-a", "9780134190440", domain.SyncPending)
	state, ok := tr.Get("9780134190440")
	require.True(t, ok)
	assert.Equal(t, domain.SyncPending, state)

	// Profile switch clears all entries and changes the owner.
	tr.Reset("prof-b")
	_, ok = tr.Get("9780134190440")
	assert.False(t, ok)

	// A dispatch for the old profile settles late; its write is dropped.
	tr.Set("prof-a", "9780134190440", domain.SyncDone)
	_, ok = tr.Get("9780134190440")
	assert.False(t, ok)

	// Writes for the current owner still land.
	tr.Set("prof-b", "9780262033848", domain.SyncError)
	state, ok = tr.Get("9780262033848")
	require.True(t, ok)
	assert.Equal(t, domain.SyncError, state)
}

func TestStatusTracker_Snapshot(t *testing.T) {
	tr := NewStatusTracker()
	tr.Reset("prof-a")
	tr.Set("prof-a", "9780134190440", domain.SyncDone)

	snap := tr.Snapshot()
	assert.Len(t, snap, 1)

	// Mutating the snapshot does not touch the tracker.
	snap["9780262033848"] = domain.SyncPending
	_, ok := tr.Get("9780262033848")
	assert.False(t, ok)
}
