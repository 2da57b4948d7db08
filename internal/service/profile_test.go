package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfmark/shelfmark-server/internal/domain"
	apperrors "github.com/shelfmark/shelfmark-server/internal/errors"
	"github.com/shelfmark/shelfmark-server/internal/search"
)

func TestProfileService_CreateRejectsBlankName(t *testing.T) {
	f := setupScanFixture(t, identifyingProvider())

	_, err := f.profiles.Create(context.Background(), "   ", domain.ProfileSettings{})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestProfileService_ActiveWithoutProfiles(t *testing.T) {
	f := setupScanFixture(t, identifyingProvider())

	_, err := f.profiles.Active(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrNoActiveProfile)
}

func TestProfileService_SetActiveUnknown(t *testing.T) {
	f := setupScanFixture(t, identifyingProvider())
	f.createProfile(t, "Home", domain.ProfileSettings{})

	_, err := f.profiles.SetActive(context.Background(), "prof-missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestProfileService_UpdateReturnsFreshProfile(t *testing.T) {
	f := setupScanFixture(t, identifyingProvider())
	ctx := context.Background()
	p := f.createProfile(t, "Home", domain.ProfileSettings{})

	updated, err := f.profiles.Update(ctx, p.ID, "Office", domain.ProfileSettings{
		SheetName: "Books",
		ScriptURL: "https://script.example.com/exec",
	})
	require.NoError(t, err)
	assert.Equal(t, "Office", updated.Name)
	assert.True(t, updated.SyncConfigured())
}

func TestProfileService_SwitchResetsSyncStatus(t *testing.T) {
	f := setupScanFixture(t, identifyingProvider())
	ctx := context.Background()

	first := f.createProfile(t, "First", domain.ProfileSettings{})
	second := f.createProfile(t, "Second", domain.ProfileSettings{})

	f.status.Set(second.ID, validISBN, domain.SyncDone)
	_, ok := f.status.Get(validISBN)
	require.True(t, ok)

	_, err := f.profiles.SetActive(ctx, first.ID)
	require.NoError(t, err)

	_, ok = f.status.Get(validISBN)
	assert.False(t, ok)
}

func TestProfileService_DeleteActivePromotesAndResets(t *testing.T) {
	f := setupScanFixture(t, identifyingProvider())
	ctx := context.Background()

	first := f.createProfile(t, "First", domain.ProfileSettings{})
	second := f.createProfile(t, "Second", domain.ProfileSettings{})

	require.NoError(t, f.profiles.Delete(ctx, second.ID))

	active, err := f.profiles.Active(ctx)
	require.NoError(t, err)
	assert.Equal(t, first.ID, active.ID)

	// The tracker now belongs to the promoted profile.
	f.status.Set(first.ID, validISBN, domain.SyncPending)
	_, ok := f.status.Get(validISBN)
	assert.True(t, ok)
}

func TestProfileService_DeleteRemovesIndexedBooks(t *testing.T) {
	f := setupScanFixture(t, identifyingProvider())
	ctx := context.Background()
	p := f.createProfile(t, "Home", domain.ProfileSettings{})

	_, err := f.scan.Scan(ctx, validISBN)
	require.NoError(t, err)

	require.NoError(t, f.profiles.Delete(ctx, p.ID))

	// No ghost documents may survive under the deleted profile's scope.
	params := search.DefaultParams()
	params.ProfileID = p.ID
	params.Query = "programming"

	result, err := f.books.Search(ctx, params)
	require.NoError(t, err)
	assert.Empty(t, result.Hits)
}
