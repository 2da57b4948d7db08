// Package main provides a tool to seed the database with test books.
//
// This creates a demo profile and fills it with generated book records
// to exercise the list, search, and sync status UIs.
//
// Usage:
//
//	DATA_PATH=~/Shelfmark/data go run ./cmd/seed
//	DATA_PATH=~/Shelfmark/data go run ./cmd/seed --count 50
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shelfmark/shelfmark-server/internal/domain"
	"github.com/shelfmark/shelfmark-server/internal/id"
	"github.com/shelfmark/shelfmark-server/internal/store"
)

var (
	count       = flag.Int("count", 20, "Number of books to create")
	profileName = flag.String("profile", "Seeded Shelf", "Name of the profile to create")
)

var titleWords = []string{
	"Practical", "Modern", "Distributed", "Concurrent", "Elegant",
	"Systems", "Networks", "Databases", "Algorithms", "Compilers",
	"Gardening", "Cooking", "Sailing", "Photography", "Typography",
}

var authorNames = []string{
	"Ada Byron", "Edsger Holt", "Grace Murray", "Donald Ross",
	"Barbara Oakley", "Ken Ritchie", "Leslie Winters", "Frances Allen",
}

func main() {
	flag.Parse()

	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		dataPath = os.ExpandEnv("$HOME/Shelfmark/data")
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))

	s, err := store.New(filepath.Join(dataPath, "db"), logger)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer s.Close()

	ctx := context.Background()
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	profile := &domain.Profile{
		ID:        id.MustGenerate("prof"),
		Name:      *profileName,
		CreatedAt: time.Now(),
	}
	if err := s.CreateProfile(ctx, profile); err != nil {
		log.Fatalf("Failed to create profile: %v", err)
	}
	fmt.Printf("Created profile %s (%q)\n", profile.ID, profile.Name)

	added := 0
	for i := 0; i < *count; i++ {
		book := &domain.Book{
			ISBN:          randomISBN(rng),
			Title:         randomTitle(rng),
			Authors:       authorNames[rng.Intn(len(authorNames))],
			Publisher:     "Seed Press",
			PublishedDate: fmt.Sprintf("%d", 1990+rng.Intn(35)),
			PageCount:     120 + rng.Intn(600),
			Categories:    "Seeded",
			ScannedAt:     time.Now().Add(-time.Duration(rng.Intn(720)) * time.Hour),
		}
		ok, err := s.AddBook(ctx, profile.ID, book)
		if err != nil {
			log.Fatalf("Failed to add book: %v", err)
		}
		if ok {
			added++
		}
	}

	fmt.Printf("Seeded %d books into %s\n", added, profile.ID)
}

// randomTitle composes a two-word title.
func randomTitle(rng *rand.Rand) string {
	a := titleWords[rng.Intn(len(titleWords))]
	b := titleWords[rng.Intn(len(titleWords))]
	for b == a {
		b = titleWords[rng.Intn(len(titleWords))]
	}
	return strings.TrimSpace(a + " " + b)
}

// randomISBN generates a checksum-valid ISBN-13 in the 978 range.
func randomISBN(rng *rand.Rand) string {
	digits := make([]int, 13)
	digits[0], digits[1], digits[2] = 9, 7, 8
	for i := 3; i < 12; i++ {
		digits[i] = rng.Intn(10)
	}

	sum := 0
	for i := 0; i < 12; i++ {
		if i%2 == 0 {
			sum += digits[i]
		} else {
			sum += digits[i] * 3
		}
	}
	digits[12] = (10 - sum%10) % 10

	var sb strings.Builder
	for _, d := range digits {
		sb.WriteByte(byte('0' + d))
	}
	return sb.String()
}
