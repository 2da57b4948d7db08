package service

import (
	"context"
	"log/slog"
	stdsync "sync"
	"time"

	"github.com/google/uuid"

	"github.com/shelfmark/shelfmark-server/internal/domain"
	apperrors "github.com/shelfmark/shelfmark-server/internal/errors"
	"github.com/shelfmark/shelfmark-server/internal/isbn"
	"github.com/shelfmark/shelfmark-server/internal/metadata"
	"github.com/shelfmark/shelfmark-server/internal/store"
	"github.com/shelfmark/shelfmark-server/internal/sync"
)

// ScanOutcome is the terminal result of one scan run.
type ScanOutcome string

const (
	// OutcomeAdded means the book was identified, persisted, and (if
	// configured) queued for sync.
	OutcomeAdded ScanOutcome = "added"

	// OutcomeAddedUnidentified means no provider knew the ISBN; a bare
	// record with just the ISBN was persisted.
	OutcomeAddedUnidentified ScanOutcome = "added_unidentified"

	// OutcomeInvalid means the input is not structurally an ISBN.
	OutcomeInvalid ScanOutcome = "invalid"

	// OutcomeDuplicate means the active profile already holds the ISBN.
	OutcomeDuplicate ScanOutcome = "duplicate"

	// OutcomeNoProfile means no profile exists to scan into.
	OutcomeNoProfile ScanOutcome = "no_profile"

	// OutcomeBusy means another scan was in flight; the input was
	// dropped, not queued.
	OutcomeBusy ScanOutcome = "busy"
)

// ScanResult carries the outcome of one scan and, when a record was
// persisted, the record itself.
type ScanResult struct {
	Outcome ScanOutcome
	Book    *domain.Book
}

// ScanService runs the scan pipeline: validate, duplicate-check,
// resolve, persist, then dispatch sync in the background.
//
// A single-flight gate admits one scan at a time. A scan arriving
// while another is in flight is reported busy and dropped.
type ScanService struct {
	store      *store.Store
	books      *BookService
	resolver   *metadata.Resolver
	dispatcher *sync.Dispatcher
	status     *sync.StatusTracker
	logger     *slog.Logger

	gate        stdsync.Mutex
	syncTimeout time.Duration
}

// NewScanService creates a new scan service.
func NewScanService(
	s *store.Store,
	books *BookService,
	resolver *metadata.Resolver,
	dispatcher *sync.Dispatcher,
	status *sync.StatusTracker,
	syncTimeout time.Duration,
	logger *slog.Logger,
) *ScanService {
	if syncTimeout == 0 {
		syncTimeout = 30 * time.Second
	}
	return &ScanService{
		store:       s,
		books:       books,
		resolver:    resolver,
		dispatcher:  dispatcher,
		status:      status,
		logger:      logger,
		syncTimeout: syncTimeout,
	}
}

// Scan pushes one raw decoded or typed string through the pipeline.
// Rejections (invalid, duplicate, no profile, busy) are outcomes, not
// errors; the error return covers storage failures only.
func (s *ScanService) Scan(ctx context.Context, raw string) (*ScanResult, error) {
	if !s.gate.TryLock() {
		return &ScanResult{Outcome: OutcomeBusy}, nil
	}
	defer s.gate.Unlock()

	scanID := uuid.NewString()

	normalized := isbn.Normalize(raw)
	if !isbn.IsValid(normalized) {
		s.log(ctx, slog.LevelInfo, "scan rejected: invalid isbn", scanID,
			slog.String("input", raw))
		return &ScanResult{Outcome: OutcomeInvalid}, nil
	}

	profile, err := s.store.GetActiveProfile(ctx)
	if err != nil {
		if apperrors.Is(err, store.ErrNoProfiles) {
			s.log(ctx, slog.LevelWarn, "scan rejected: no profile", scanID)
			return &ScanResult{Outcome: OutcomeNoProfile}, nil
		}
		return nil, err
	}

	exists, err := s.books.Contains(ctx, profile.ID, normalized)
	if err != nil {
		return nil, err
	}
	if exists {
		s.log(ctx, slog.LevelInfo, "scan rejected: duplicate", scanID,
			slog.String("isbn", normalized),
			slog.String("profile_id", profile.ID))
		return &ScanResult{Outcome: OutcomeDuplicate}, nil
	}

	// Resolution never fails; at worst it yields a bare record.
	book := s.resolver.Resolve(ctx, normalized)

	if _, err := s.books.Add(ctx, profile.ID, book); err != nil {
		return nil, err
	}

	// Sync runs in the background; the pipeline is idle again as soon
	// as persistence completes. The profile captured here keeps a
	// late-settling dispatch attributed to the profile that was active
	// at scan time.
	if profile.SyncConfigured() {
		s.status.Set(profile.ID, book.ISBN, domain.SyncPending)
		go s.dispatch(profile, book, scanID)
	}

	outcome := OutcomeAdded
	if !book.Identified() {
		outcome = OutcomeAddedUnidentified
	}
	s.log(ctx, slog.LevelInfo, "scan completed", scanID,
		slog.String("isbn", book.ISBN),
		slog.String("title", book.Title),
		slog.String("outcome", string(outcome)))

	return &ScanResult{Outcome: outcome, Book: book}, nil
}

// dispatch forwards one record to the profile's sync endpoint and
// applies the settled state. The tracker drops the write if the
// profile is no longer active by then.
func (s *ScanService) dispatch(profile *domain.Profile, book *domain.Book, scanID string) {
	ctx, cancel := context.WithTimeout(context.Background(), s.syncTimeout)
	defer cancel()

	state := domain.SyncError
	if s.dispatcher.Dispatch(ctx, profile.Settings.ScriptURL, profile.Settings.SheetName, book) {
		state = domain.SyncDone
	}
	s.status.Set(profile.ID, book.ISBN, state)

	s.log(ctx, slog.LevelDebug, "sync settled", scanID,
		slog.String("isbn", book.ISBN),
		slog.String("state", string(state)))
}

// SyncStatus returns the active profile's per-ISBN sync states.
func (s *ScanService) SyncStatus() map[string]domain.SyncState {
	return s.status.Snapshot()
}

// ConsumeFeed drains a decoder feed, pushing each plausible string
// through the pipeline. Implausible strings are discarded before
// validation; outcomes are logged and otherwise dropped. Returns when
// the feed closes or the context ends.
func (s *ScanService) ConsumeFeed(ctx context.Context, feed <-chan string) {
	for {
		select {
		case <-ctx.Done():
			return
		case raw, ok := <-feed:
			if !ok {
				return
			}
			if !isbn.Plausible(isbn.Normalize(raw)) {
				continue
			}
			if _, err := s.Scan(ctx, raw); err != nil && s.logger != nil {
				s.logger.LogAttrs(ctx, slog.LevelError, "feed scan failed",
					slog.String("input", raw),
					slog.String("error", err.Error()))
			}
		}
	}
}

func (s *ScanService) log(ctx context.Context, level slog.Level, msg, scanID string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	attrs = append(attrs, slog.String("scan_id", scanID))
	s.logger.LogAttrs(ctx, level, msg, attrs...)
}
