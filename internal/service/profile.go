// Package service holds the application services that sit between the
// HTTP API and the store: profile management, book collections, and
// the scan pipeline.
package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/shelfmark/shelfmark-server/internal/domain"
	apperrors "github.com/shelfmark/shelfmark-server/internal/errors"
	"github.com/shelfmark/shelfmark-server/internal/id"
	"github.com/shelfmark/shelfmark-server/internal/store"
	"github.com/shelfmark/shelfmark-server/internal/sync"
	"github.com/shelfmark/shelfmark-server/internal/validation"
)

// profileInput is the validated shape of a create or update request.
type profileInput struct {
	Name           string `json:"name" validate:"required,max=100"`
	ScriptURL      string `json:"script_url" validate:"omitempty,url"`
	SpreadsheetURL string `json:"spreadsheet_url" validate:"omitempty,url"`
}

// ProfileService manages library profiles and the active-profile
// selection. Every change to the active profile resets the sync status
// tracker, which only ever describes the active profile's session.
type ProfileService struct {
	store    *store.Store
	books    *BookService
	status   *sync.StatusTracker
	validate *validation.Validator
	logger   *slog.Logger
}

// NewProfileService creates a new profile service and binds the status
// tracker to whichever profile is currently active.
func NewProfileService(s *store.Store, books *BookService, status *sync.StatusTracker, logger *slog.Logger) *ProfileService {
	svc := &ProfileService{
		store:    s,
		books:    books,
		status:   status,
		validate: validation.New(),
		logger:   logger,
	}

	active, err := s.GetActiveProfile(context.Background())
	if err != nil {
		status.Reset("")
	} else {
		status.Reset(active.ID)
	}
	return svc
}

// List returns all profiles in creation order.
func (s *ProfileService) List(ctx context.Context) ([]domain.Profile, error) {
	return s.store.ListProfiles(ctx)
}

// Get returns one profile by id.
func (s *ProfileService) Get(ctx context.Context, profileID string) (*domain.Profile, error) {
	p, err := s.store.GetProfile(ctx, profileID)
	if apperrors.Is(err, store.ErrProfileNotFound) {
		return nil, apperrors.NotFoundf("profile %s not found", profileID)
	}
	return p, err
}

// Active returns the currently active profile.
func (s *ProfileService) Active(ctx context.Context) (*domain.Profile, error) {
	p, err := s.store.GetActiveProfile(ctx)
	if apperrors.Is(err, store.ErrNoProfiles) {
		return nil, apperrors.NoActiveProfile("no library profile exists; create one first")
	}
	return p, err
}

// Create adds a new profile and makes it active.
func (s *ProfileService) Create(ctx context.Context, name string, settings domain.ProfileSettings) (*domain.Profile, error) {
	name = strings.TrimSpace(name)
	if err := s.validateInput(name, settings); err != nil {
		return nil, err
	}

	profile := &domain.Profile{
		ID:        id.MustGenerate("prof"),
		Name:      name,
		Settings:  settings,
		CreatedAt: time.Now(),
	}
	if err := s.store.CreateProfile(ctx, profile); err != nil {
		return nil, err
	}

	// Creation switches the active profile.
	s.status.Reset(profile.ID)

	if s.logger != nil {
		s.logger.LogAttrs(ctx, slog.LevelInfo, "profile created",
			slog.String("profile_id", profile.ID),
			slog.String("name", profile.Name))
	}
	return profile, nil
}

// Update renames a profile and replaces its sync settings.
func (s *ProfileService) Update(ctx context.Context, profileID, name string, settings domain.ProfileSettings) (*domain.Profile, error) {
	name = strings.TrimSpace(name)
	if err := s.validateInput(name, settings); err != nil {
		return nil, err
	}
	if _, err := s.Get(ctx, profileID); err != nil {
		return nil, err
	}
	if err := s.store.UpdateProfile(ctx, profileID, name, settings); err != nil {
		return nil, err
	}
	return s.Get(ctx, profileID)
}

// Delete removes a profile and its book collection. When the active
// profile is deleted the store promotes the next remaining one; the
// status tracker follows.
func (s *ProfileService) Delete(ctx context.Context, profileID string) error {
	if _, err := s.Get(ctx, profileID); err != nil {
		return err
	}

	// Capture the book list first; the store cascade wipes the snapshot
	// the index cleanup needs.
	books, err := s.books.List(ctx, profileID)
	if err != nil {
		return err
	}
	if err := s.store.DeleteProfile(ctx, profileID); err != nil {
		return err
	}
	s.books.Deindex(ctx, profileID, books)

	active, err := s.store.GetActiveProfile(ctx)
	if err != nil {
		s.status.Reset("")
	} else {
		s.status.Reset(active.ID)
	}

	if s.logger != nil {
		s.logger.LogAttrs(ctx, slog.LevelInfo, "profile deleted",
			slog.String("profile_id", profileID))
	}
	return nil
}

func (s *ProfileService) validateInput(name string, settings domain.ProfileSettings) error {
	return s.validate.Validate(profileInput{
		Name:           name,
		ScriptURL:      settings.ScriptURL,
		SpreadsheetURL: settings.SpreadsheetURL,
	})
}

// SetActive switches the active profile and clears all sync status.
func (s *ProfileService) SetActive(ctx context.Context, profileID string) (*domain.Profile, error) {
	profile, err := s.Get(ctx, profileID)
	if err != nil {
		return nil, err
	}
	if err := s.store.SetActiveProfile(ctx, profileID); err != nil {
		return nil, err
	}
	s.status.Reset(profileID)

	if s.logger != nil {
		s.logger.LogAttrs(ctx, slog.LevelInfo, "active profile switched",
			slog.String("profile_id", profileID))
	}
	return profile, nil
}
