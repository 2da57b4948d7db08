package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfmark/shelfmark-server/internal/domain"
	"github.com/shelfmark/shelfmark-server/internal/id"
)

// setupTestStore creates a store backed by a temp directory.
func setupTestStore(t *testing.T) (*Store, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "shelfmark-test-*")
	require.NoError(t, err)

	dbPath := filepath.Join(tmpDir, "test.db")
	s, err := New(dbPath, nil)
	require.NoError(t, err)

	cleanup := func() {
		_ = s.Close()
		_ = os.RemoveAll(tmpDir)
	}

	return s, cleanup
}

// newTestProfile builds a profile with a fresh id.
func newTestProfile(name string) *domain.Profile {
	return &domain.Profile{
		ID:        id.MustGenerate("prof"),
		Name:      name,
		CreatedAt: time.Now(),
	}
}

func TestGetActiveProfile_EmptyStore(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	_, err := s.GetActiveProfile(context.Background())
	assert.ErrorIs(t, err, ErrNoProfiles)
}

func TestCreateProfile_BecomesActive(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	p := newTestProfile("Home")
	require.NoError(t, s.CreateProfile(ctx, p))

	active, err := s.GetActiveProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Home", active.Name)
	assert.Equal(t, p.ID, active.ID)
}

func TestListProfiles_CreationOrder(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	first := newTestProfile("First")
	second := newTestProfile("Second")
	require.NoError(t, s.CreateProfile(ctx, first))
	require.NoError(t, s.CreateProfile(ctx, second))

	profiles, err := s.ListProfiles(ctx)
	require.NoError(t, err)
	require.Len(t, profiles, 2)
	assert.Equal(t, "First", profiles[0].Name)
	assert.Equal(t, "Second", profiles[1].Name)

	// The most recently created profile is active.
	active, err := s.GetActiveProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, second.ID, active.ID)
}

func TestUpdateProfile(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	p := newTestProfile("Home")
	require.NoError(t, s.CreateProfile(ctx, p))

	settings := domain.ProfileSettings{
		SheetName: "Books",
		ScriptURL: "https://script.example.com/exec",
	}
	require.NoError(t, s.UpdateProfile(ctx, p.ID, "Office", settings))

	got, err := s.GetProfile(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Office", got.Name)
	assert.Equal(t, "Books", got.Settings.SheetName)
	assert.True(t, got.SyncConfigured())
}

func TestUpdateProfile_MissingIDIsNoop(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	p := newTestProfile("Home")
	require.NoError(t, s.CreateProfile(ctx, p))
	require.NoError(t, s.UpdateProfile(ctx, "prof-missing", "Ghost", domain.ProfileSettings{}))

	profiles, err := s.ListProfiles(ctx)
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	assert.Equal(t, "Home", profiles[0].Name)
}

func TestDeleteProfile_PromotesNextActive(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	first := newTestProfile("First")
	second := newTestProfile("Second")
	require.NoError(t, s.CreateProfile(ctx, first))
	require.NoError(t, s.CreateProfile(ctx, second))

	// Second is active; deleting it promotes the first remaining profile.
	require.NoError(t, s.DeleteProfile(ctx, second.ID))

	active, err := s.GetActiveProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, first.ID, active.ID)
}

func TestDeleteProfile_LastProfileLeavesNone(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	p := newTestProfile("Only")
	require.NoError(t, s.CreateProfile(ctx, p))
	require.NoError(t, s.DeleteProfile(ctx, p.ID))

	_, err := s.GetActiveProfile(ctx)
	assert.ErrorIs(t, err, ErrNoProfiles)
}

func TestDeleteProfile_CascadesBooks(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	doomed := newTestProfile("Doomed")
	keeper := newTestProfile("Keeper")
	require.NoError(t, s.CreateProfile(ctx, doomed))
	require.NoError(t, s.CreateProfile(ctx, keeper))

	_, err := s.AddBook(ctx, doomed.ID, &domain.Book{ISBN: "9780134190440", ScannedAt: time.Now()})
	require.NoError(t, err)
	_, err = s.AddBook(ctx, keeper.ID, &domain.Book{ISBN: "9780262033848", ScannedAt: time.Now()})
	require.NoError(t, err)

	require.NoError(t, s.DeleteProfile(ctx, doomed.ID))

	// Other profiles' books are unaffected.
	books, err := s.ListBooks(ctx, keeper.ID)
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "9780262033848", books[0].ISBN)

	// The deleted profile's collection is gone even if the id is reused.
	books, err = s.ListBooks(ctx, doomed.ID)
	require.NoError(t, err)
	assert.Empty(t, books)
}

func TestSetActiveProfile_InvalidIDFallsBack(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	first := newTestProfile("First")
	require.NoError(t, s.CreateProfile(ctx, first))

	// SetActive records anything; the fallback absorbs it on read.
	require.NoError(t, s.SetActiveProfile(ctx, "prof-does-not-exist"))

	active, err := s.GetActiveProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, first.ID, active.ID)
}

func TestProfiles_PersistAcrossReopen(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "shelfmark-reopen-*")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)
	dbPath := filepath.Join(tmpDir, "test.db")
	ctx := context.Background()

	s, err := New(dbPath, nil)
	require.NoError(t, err)
	p := newTestProfile("Durable")
	require.NoError(t, s.CreateProfile(ctx, p))
	require.NoError(t, s.Close())

	s, err = New(dbPath, nil)
	require.NoError(t, err)
	defer s.Close()

	active, err := s.GetActiveProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Durable", active.Name)
}
