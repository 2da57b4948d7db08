package store

import (
	"errors"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/shelfmark/shelfmark-server/internal/domain"
	"github.com/shelfmark/shelfmark-server/internal/id"
)

// defaultProfileName is the name given to the profile generated when a
// legacy single-profile layout is migrated.
const defaultProfileName = "My Library"

// migrateLegacyLayout converts the pre-profile storage format (a bare
// "books" snapshot plus a "settings" snapshot) into a generated default
// profile owning both. Runs once on open; a database that already has a
// profile list is left untouched.
func (s *Store) migrateLegacyLayout() error {
	return s.db.Update(func(txn *badger.Txn) error {
		// Already on the profile layout?
		if _, err := txn.Get([]byte(profilesKey)); err == nil {
			return nil
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}

		var legacyBooks []domain.Book
		booksErr := getTxn(txn, []byte(legacyBooksKey), &legacyBooks)
		var legacySettings domain.ProfileSettings
		settingsErr := getTxn(txn, []byte(legacySettingsKey), &legacySettings)

		booksMissing := errors.Is(booksErr, badger.ErrKeyNotFound)
		settingsMissing := errors.Is(settingsErr, badger.ErrKeyNotFound)
		if booksMissing && settingsMissing {
			return nil // fresh database, nothing to migrate
		}
		if booksErr != nil && !booksMissing {
			return booksErr
		}
		if settingsErr != nil && !settingsMissing {
			return settingsErr
		}

		profileID, err := id.Generate("prof")
		if err != nil {
			return err
		}
		profile := domain.Profile{
			ID:        profileID,
			Name:      defaultProfileName,
			Settings:  legacySettings,
			CreatedAt: time.Now(),
		}

		if err := setTxn(txn, []byte(profilesKey), []domain.Profile{profile}); err != nil {
			return err
		}
		if err := setTxn(txn, []byte(activeProfileKey), profileID); err != nil {
			return err
		}
		if len(legacyBooks) > 0 {
			key := booksKeyOwned(profileID)
			if err := setTxn(txn, key, legacyBooks); err != nil {
				return err
			}
		}

		if err := txn.Delete([]byte(legacyBooksKey)); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		if err := txn.Delete([]byte(legacySettingsKey)); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}

		if s.logger != nil {
			s.logger.Info("migrated legacy single-profile layout",
				"profile_id", profileID,
				"books", len(legacyBooks),
			)
		}
		return nil
	})
}
