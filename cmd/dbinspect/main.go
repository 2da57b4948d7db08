// Package main provides an operator tool that dumps the profile list,
// the active profile, and each profile's book collection from a
// Shelfmark database.
//
// Usage:
//
//	DB_PATH=~/Shelfmark/data/db go run ./cmd/dbinspect
package main

import (
	"encoding/json/v2"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/dgraph-io/badger/v4"

	"github.com/shelfmark/shelfmark-server/internal/domain"
)

func main() {
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = os.ExpandEnv("$HOME/Shelfmark/data/db")
	}

	opts := badger.DefaultOptions(dbPath).
		WithReadOnly(true).
		WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	fmt.Println("=== Database Inspection ===")
	fmt.Println()

	var profiles []domain.Profile
	var activeID string

	err = db.View(func(txn *badger.Txn) error {
		if err := readJSON(txn, "profiles", &profiles); err != nil {
			return err
		}
		return readJSON(txn, "profiles:active", &activeID)
	})
	if err != nil {
		log.Fatalf("Failed to read profiles: %v", err)
	}

	fmt.Printf("Profiles: %d (active: %s)\n", len(profiles), activeID)
	fmt.Println()

	for _, profile := range profiles {
		marker := " "
		if profile.ID == activeID {
			marker = "*"
		}
		fmt.Printf("%s %s  %q\n", marker, profile.ID, profile.Name)
		if profile.Settings.ScriptURL != "" {
			fmt.Printf("    sync: %s (sheet %q)\n", profile.Settings.ScriptURL, profile.Settings.SheetName)
		}

		var books []domain.Book
		err := db.View(func(txn *badger.Txn) error {
			return readJSON(txn, "books:"+profile.ID, &books)
		})
		if err != nil {
			log.Fatalf("Failed to read books for %s: %v", profile.ID, err)
		}

		fmt.Printf("    books: %d\n", len(books))
		for _, book := range books {
			title := book.Title
			if title == "" {
				title = "(unidentified)"
			}
			fmt.Printf("      %s  %s\n", book.ISBN, title)
		}
		fmt.Println()
	}
}

// readJSON loads one JSON snapshot. A missing key leaves dest untouched.
func readJSON(txn *badger.Txn, key string, dest any) error {
	item, err := txn.Get([]byte(key))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	return item.Value(func(val []byte) error {
		return json.Unmarshal(val, dest)
	})
}
