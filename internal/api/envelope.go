package api

import (
	"strings"

	"github.com/danielgtaylor/huma/v2"
)

// EnvelopeVersion is bumped when the envelope structure changes so
// clients can detect incompatible servers.
const EnvelopeVersion = 1

// APIEnvelope wraps every API response in a consistent structure.
type APIEnvelope struct { //nolint:revive // API prefix is intentional for clarity
	Version int    `json:"v" doc:"Envelope schema version"`
	Success bool   `json:"success" doc:"Whether the request succeeded"`
	Data    any    `json:"data,omitempty" doc:"Response payload"`
	Error   string `json:"error,omitempty" doc:"Error message when success is false"`
}

// APIErrorEnvelope wraps structured errors that carry a code and
// details in addition to the message.
type APIErrorEnvelope struct { //nolint:revive // API prefix is intentional for clarity
	Version int       `json:"v" doc:"Envelope schema version"`
	Success bool      `json:"success" doc:"Always false"`
	Error   *APIError `json:"error" doc:"Structured error"`
}

// EnvelopeTransformer wraps all huma responses in the envelope. It is
// registered on the huma config at server construction.
func EnvelopeTransformer(_ huma.Context, status string, v any) (any, error) {
	if apiErr, ok := v.(*APIError); ok {
		return APIErrorEnvelope{
			Version: EnvelopeVersion,
			Success: false,
			Error:   apiErr,
		}, nil
	}

	if err, ok := v.(error); ok {
		return APIEnvelope{
			Version: EnvelopeVersion,
			Success: false,
			Error:   err.Error(),
		}, nil
	}

	return APIEnvelope{
		Version: EnvelopeVersion,
		Success: strings.HasPrefix(status, "2"),
		Data:    v,
	}, nil
}
