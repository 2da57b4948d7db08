package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	apperrors "github.com/shelfmark/shelfmark-server/internal/errors"
	"github.com/shelfmark/shelfmark-server/internal/service"
)

func (s *Server) registerScanRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "scan",
		Method:      http.MethodPost,
		Path:        "/api/v1/scan",
		Summary:     "Scan a barcode",
		Description: "Runs one raw scan through the pipeline: validate, duplicate-check, resolve metadata, persist, and dispatch spreadsheet sync in the background",
		Tags:        []string{"Scan"},
	}, s.handleScan)

	huma.Register(s.api, huma.Operation{
		OperationID: "getScanStatus",
		Method:      http.MethodGet,
		Path:        "/api/v1/scan/status",
		Summary:     "Get sync status",
		Description: "Returns per-ISBN spreadsheet sync states for the active profile's session",
		Tags:        []string{"Scan"},
	}, s.handleScanStatus)
}

// === Request/Response Types ===

// ScanInput contains the raw scanned or typed code.
type ScanInput struct {
	Body struct {
		Code string `json:"code" minLength:"1" maxLength:"64" doc:"Raw barcode or typed ISBN"`
	}
}

// ScanResponse reports the outcome of one scan. Book is present only
// when a record was persisted.
type ScanResponse struct {
	Outcome string        `json:"outcome" enum:"added,added_unidentified,invalid,duplicate" doc:"Pipeline outcome"`
	Book    *BookResponse `json:"book,omitempty" doc:"The persisted record"`
}

// ScanOutput wraps the scan result.
type ScanOutput struct {
	Body ScanResponse
}

// ScanStatusOutput wraps the per-session sync status map.
type ScanStatusOutput struct {
	Body struct {
		Status map[string]string `json:"status" doc:"Sync state per ISBN: pending, done, or error"`
	}
}

// === Handlers ===

func (s *Server) handleScan(ctx context.Context, input *ScanInput) (*ScanOutput, error) {
	result, err := s.scan.Scan(ctx, input.Body.Code)
	if err != nil {
		return nil, err
	}

	// Busy and missing-profile are rejections the shell must surface
	// differently from pipeline outcomes, so they travel as errors.
	switch result.Outcome {
	case service.OutcomeBusy:
		return nil, apperrors.ScanBusy("a scan is already in flight; input dropped")
	case service.OutcomeNoProfile:
		return nil, apperrors.NoActiveProfile("no library profile exists; create one first")
	}

	out := &ScanOutput{}
	out.Body.Outcome = string(result.Outcome)
	if result.Book != nil {
		book := bookResponse(result.Book)
		out.Body.Book = &book
	}
	return out, nil
}

func (s *Server) handleScanStatus(_ context.Context, _ *struct{}) (*ScanStatusOutput, error) {
	states := s.scan.SyncStatus()

	out := &ScanStatusOutput{}
	out.Body.Status = make(map[string]string, len(states))
	for isbn, state := range states {
		out.Body.Status[isbn] = string(state)
	}
	return out, nil
}
