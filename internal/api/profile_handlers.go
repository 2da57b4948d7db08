package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/shelfmark/shelfmark-server/internal/domain"
)

func (s *Server) registerProfileRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listProfiles",
		Method:      http.MethodGet,
		Path:        "/api/v1/profiles",
		Summary:     "List profiles",
		Description: "Returns all library profiles and the active profile id",
		Tags:        []string{"Profiles"},
	}, s.handleListProfiles)

	huma.Register(s.api, huma.Operation{
		OperationID:   "createProfile",
		Method:        http.MethodPost,
		Path:          "/api/v1/profiles",
		Summary:       "Create profile",
		Description:   "Creates a new library profile and makes it active",
		Tags:          []string{"Profiles"},
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateProfile)

	huma.Register(s.api, huma.Operation{
		OperationID: "getActiveProfile",
		Method:      http.MethodGet,
		Path:        "/api/v1/profiles/active",
		Summary:     "Get active profile",
		Tags:        []string{"Profiles"},
	}, s.handleGetActiveProfile)

	huma.Register(s.api, huma.Operation{
		OperationID: "setActiveProfile",
		Method:      http.MethodPut,
		Path:        "/api/v1/profiles/active",
		Summary:     "Switch active profile",
		Description: "Makes another profile active and clears all sync status",
		Tags:        []string{"Profiles"},
	}, s.handleSetActiveProfile)

	huma.Register(s.api, huma.Operation{
		OperationID: "getProfile",
		Method:      http.MethodGet,
		Path:        "/api/v1/profiles/{id}",
		Summary:     "Get profile",
		Tags:        []string{"Profiles"},
	}, s.handleGetProfile)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateProfile",
		Method:      http.MethodPatch,
		Path:        "/api/v1/profiles/{id}",
		Summary:     "Update profile",
		Description: "Renames a profile and replaces its sync settings",
		Tags:        []string{"Profiles"},
	}, s.handleUpdateProfile)

	huma.Register(s.api, huma.Operation{
		OperationID:   "deleteProfile",
		Method:        http.MethodDelete,
		Path:          "/api/v1/profiles/{id}",
		Summary:       "Delete profile",
		Description:   "Deletes a profile together with its book collection",
		Tags:          []string{"Profiles"},
		DefaultStatus: http.StatusNoContent,
	}, s.handleDeleteProfile)
}

// === Request/Response Types ===

// ProfileResponse contains one library profile.
type ProfileResponse struct {
	ID             string    `json:"id" doc:"Profile ID"`
	Name           string    `json:"name" doc:"Display name"`
	SheetName      string    `json:"sheet_name,omitempty" doc:"Target sheet tab name"`
	ScriptURL      string    `json:"script_url,omitempty" doc:"Spreadsheet sync endpoint"`
	SpreadsheetURL string    `json:"spreadsheet_url,omitempty" doc:"Spreadsheet link for display"`
	SyncConfigured bool      `json:"sync_configured" doc:"Whether a sync endpoint is set"`
	CreatedAt      time.Time `json:"created_at" doc:"Creation timestamp"`
}

// ProfileOutput wraps a single profile for huma.
type ProfileOutput struct {
	Body ProfileResponse
}

// ProfileListOutput wraps the profile list.
type ProfileListOutput struct {
	Body struct {
		Profiles []ProfileResponse `json:"profiles" doc:"All profiles in creation order"`
		ActiveID string            `json:"active_id,omitempty" doc:"ID of the active profile"`
	}
}

// ProfileSettingsBody is the writable portion of a profile.
type ProfileSettingsBody struct {
	Name           string `json:"name" minLength:"1" maxLength:"100" doc:"Display name"`
	SheetName      string `json:"sheet_name,omitempty" maxLength:"100" doc:"Target sheet tab name"`
	ScriptURL      string `json:"script_url,omitempty" doc:"Spreadsheet sync endpoint"`
	SpreadsheetURL string `json:"spreadsheet_url,omitempty" doc:"Spreadsheet link for display"`
}

// CreateProfileInput contains the create request.
type CreateProfileInput struct {
	Body ProfileSettingsBody
}

// UpdateProfileInput contains the update request.
type UpdateProfileInput struct {
	ID   string `path:"id" doc:"Profile ID"`
	Body ProfileSettingsBody
}

// ProfileIDInput addresses one profile.
type ProfileIDInput struct {
	ID string `path:"id" doc:"Profile ID"`
}

// SetActiveProfileInput contains the switch request.
type SetActiveProfileInput struct {
	Body struct {
		ID string `json:"id" minLength:"1" doc:"Profile ID to activate"`
	}
}

// DeleteProfileOutput is an empty 204 response.
type DeleteProfileOutput struct{}

func profileResponse(p *domain.Profile) ProfileResponse {
	return ProfileResponse{
		ID:             p.ID,
		Name:           p.Name,
		SheetName:      p.Settings.SheetName,
		ScriptURL:      p.Settings.ScriptURL,
		SpreadsheetURL: p.Settings.SpreadsheetURL,
		SyncConfigured: p.SyncConfigured(),
		CreatedAt:      p.CreatedAt,
	}
}

func settingsFromBody(body ProfileSettingsBody) domain.ProfileSettings {
	return domain.ProfileSettings{
		SheetName:      body.SheetName,
		ScriptURL:      body.ScriptURL,
		SpreadsheetURL: body.SpreadsheetURL,
	}
}

// === Handlers ===

func (s *Server) handleListProfiles(ctx context.Context, _ *struct{}) (*ProfileListOutput, error) {
	profiles, err := s.profiles.List(ctx)
	if err != nil {
		return nil, err
	}

	out := &ProfileListOutput{}
	out.Body.Profiles = make([]ProfileResponse, 0, len(profiles))
	for i := range profiles {
		out.Body.Profiles = append(out.Body.Profiles, profileResponse(&profiles[i]))
	}

	if active, err := s.profiles.Active(ctx); err == nil {
		out.Body.ActiveID = active.ID
	}
	return out, nil
}

func (s *Server) handleCreateProfile(ctx context.Context, input *CreateProfileInput) (*ProfileOutput, error) {
	profile, err := s.profiles.Create(ctx, input.Body.Name, settingsFromBody(input.Body))
	if err != nil {
		return nil, err
	}
	return &ProfileOutput{Body: profileResponse(profile)}, nil
}

func (s *Server) handleGetActiveProfile(ctx context.Context, _ *struct{}) (*ProfileOutput, error) {
	profile, err := s.profiles.Active(ctx)
	if err != nil {
		return nil, err
	}
	return &ProfileOutput{Body: profileResponse(profile)}, nil
}

func (s *Server) handleSetActiveProfile(ctx context.Context, input *SetActiveProfileInput) (*ProfileOutput, error) {
	profile, err := s.profiles.SetActive(ctx, input.Body.ID)
	if err != nil {
		return nil, err
	}
	return &ProfileOutput{Body: profileResponse(profile)}, nil
}

func (s *Server) handleGetProfile(ctx context.Context, input *ProfileIDInput) (*ProfileOutput, error) {
	profile, err := s.profiles.Get(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &ProfileOutput{Body: profileResponse(profile)}, nil
}

func (s *Server) handleUpdateProfile(ctx context.Context, input *UpdateProfileInput) (*ProfileOutput, error) {
	profile, err := s.profiles.Update(ctx, input.ID, input.Body.Name, settingsFromBody(input.Body))
	if err != nil {
		return nil, err
	}
	return &ProfileOutput{Body: profileResponse(profile)}, nil
}

func (s *Server) handleDeleteProfile(ctx context.Context, input *ProfileIDInput) (*DeleteProfileOutput, error) {
	if err := s.profiles.Delete(ctx, input.ID); err != nil {
		return nil, err
	}
	return &DeleteProfileOutput{}, nil
}
