package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"

	"github.com/shelfmark/shelfmark-server/internal/domain"
)

var (
	// ErrProfileNotFound is returned when a profile id resolves to nothing.
	ErrProfileNotFound = errors.New("profile not found")

	// ErrNoProfiles is returned by GetActiveProfile when the profile list
	// is empty.
	ErrNoProfiles = errors.New("no profiles exist")
)

// Profile operations. The full profile list is a single JSON snapshot;
// every mutating operation rewrites it synchronously before returning.

// ListProfiles returns all profiles in creation order.
func (s *Store) ListProfiles(ctx context.Context) ([]domain.Profile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var profiles []domain.Profile
	err := s.get([]byte(profilesKey), &profiles)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return []domain.Profile{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	return profiles, nil
}

// GetProfile retrieves a single profile by id.
func (s *Store) GetProfile(ctx context.Context, id string) (*domain.Profile, error) {
	profiles, err := s.ListProfiles(ctx)
	if err != nil {
		return nil, err
	}
	for i := range profiles {
		if profiles[i].ID == id {
			return &profiles[i], nil
		}
	}
	return nil, ErrProfileNotFound
}

// GetActiveProfile resolves the stored active id against the profile list.
// A missing or stale active id falls back to the first profile; an empty
// list returns ErrNoProfiles. The active pointer is never trusted without
// this lookup.
func (s *Store) GetActiveProfile(ctx context.Context) (*domain.Profile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var active *domain.Profile
	err := s.db.View(func(txn *badger.Txn) error {
		var profiles []domain.Profile
		if err := getTxn(txn, []byte(profilesKey), &profiles); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		if len(profiles) == 0 {
			return ErrNoProfiles
		}

		var activeID string
		if err := getTxn(txn, []byte(activeProfileKey), &activeID); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}

		for i := range profiles {
			if profiles[i].ID == activeID {
				active = &profiles[i]
				return nil
			}
		}

		// Stored id missing or unset: first profile wins.
		active = &profiles[0]
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrNoProfiles) {
			return nil, ErrNoProfiles
		}
		return nil, fmt.Errorf("get active profile: %w", err)
	}
	return active, nil
}

// CreateProfile appends the profile to the list and records it as active,
// in a single transaction. The caller supplies a freshly generated id.
func (s *Store) CreateProfile(ctx context.Context, profile *domain.Profile) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		var profiles []domain.Profile
		if err := getTxn(txn, []byte(profilesKey), &profiles); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}

		for i := range profiles {
			if profiles[i].ID == profile.ID {
				return fmt.Errorf("profile id collision: %s", profile.ID)
			}
		}

		profiles = append(profiles, *profile)
		if err := setTxn(txn, []byte(profilesKey), profiles); err != nil {
			return err
		}
		return setTxn(txn, []byte(activeProfileKey), profile.ID)
	})
	if err != nil {
		return fmt.Errorf("create profile: %w", err)
	}

	if s.logger != nil {
		s.logger.LogAttrs(ctx, slog.LevelInfo, "profile created",
			slog.String("id", profile.ID),
			slog.String("name", profile.Name),
		)
	}
	return nil
}

// UpdateProfile replaces the mutable fields of the matching profile in
// place. A missing id is a silent no-op; the active id is never changed.
func (s *Store) UpdateProfile(ctx context.Context, id, name string, settings domain.ProfileSettings) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		var profiles []domain.Profile
		if err := getTxn(txn, []byte(profilesKey), &profiles); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return nil
			}
			return err
		}

		for i := range profiles {
			if profiles[i].ID == id {
				profiles[i].Name = name
				profiles[i].Settings = settings
				return setTxn(txn, []byte(profilesKey), profiles)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	return nil
}

// DeleteProfile removes the profile and its entire book collection. If the
// deleted id was active, the first remaining profile is promoted; deleting
// the last profile leaves no active profile.
func (s *Store) DeleteProfile(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		var profiles []domain.Profile
		if err := getTxn(txn, []byte(profilesKey), &profiles); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return nil
			}
			return err
		}

		remaining := profiles[:0:0]
		found := false
		for _, p := range profiles {
			if p.ID == id {
				found = true
				continue
			}
			remaining = append(remaining, p)
		}
		if !found {
			return nil
		}

		if err := setTxn(txn, []byte(profilesKey), remaining); err != nil {
			return err
		}

		// Cascade: the profile's book collection goes with it.
		key := booksKeyOwned(id)
		if err := txn.Delete(key); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}

		// Re-derive active if we deleted it.
		var activeID string
		if err := getTxn(txn, []byte(activeProfileKey), &activeID); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		if activeID != id {
			return nil
		}
		if len(remaining) > 0 {
			return setTxn(txn, []byte(activeProfileKey), remaining[0].ID)
		}
		return txn.Delete([]byte(activeProfileKey))
	})
	if err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}

	if s.logger != nil {
		s.logger.LogAttrs(ctx, slog.LevelInfo, "profile deleted",
			slog.String("id", id),
		)
	}
	return nil
}

// SetActiveProfile unconditionally records the given id as active, with no
// existence check: GetActiveProfile's fallback absorbs invalid ids.
func (s *Store) SetActiveProfile(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.set([]byte(activeProfileKey), id); err != nil {
		return fmt.Errorf("set active profile: %w", err)
	}
	return nil
}
