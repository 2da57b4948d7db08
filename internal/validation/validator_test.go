package validation_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/shelfmark/shelfmark-server/internal/errors"
	"github.com/shelfmark/shelfmark-server/internal/validation"
)

type testRequest struct {
	Name      string `json:"name" validate:"required,max=100"`
	ScriptURL string `json:"script_url" validate:"omitempty,url"`
}

func TestValidator_ValidateSuccess(t *testing.T) {
	v := validation.New()

	err := v.Validate(testRequest{
		Name:      "Home",
		ScriptURL: "https://script.example.com/exec",
	})
	assert.NoError(t, err)

	// Optional URL may be absent entirely.
	err = v.Validate(testRequest{Name: "Home"})
	assert.NoError(t, err)
}

func TestValidator_ValidateErrors(t *testing.T) {
	v := validation.New()

	tests := []struct {
		name       string
		req        testRequest
		wantErrMsg string
	}{
		{
			name:       "missing required field",
			req:        testRequest{ScriptURL: "https://script.example.com/exec"},
			wantErrMsg: "name",
		},
		{
			name:       "invalid url",
			req:        testRequest{Name: "Home", ScriptURL: "not a url"},
			wantErrMsg: "script_url",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.req)
			require.Error(t, err)

			var appErr *apperrors.Error
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, http.StatusBadRequest, appErr.HTTPStatus())

			// Field errors are keyed by json tag name.
			details, ok := appErr.Details.(map[string]string)
			require.True(t, ok)
			assert.Contains(t, details, tt.wantErrMsg)
		})
	}
}
