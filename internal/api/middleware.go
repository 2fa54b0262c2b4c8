package api

import (
	"errors"

	"github.com/danielgtaylor/huma/v2"
)

// EnvelopeVersion is the wire version of the response envelope.
const EnvelopeVersion = 1

// APIEnvelope wraps successful responses and simple errors.
type APIEnvelope struct { //nolint:revive // API prefix is intentional for clarity
	Version int    `json:"v"`
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// APIErrorEnvelope wraps errors that carry a machine-readable code.
type APIErrorEnvelope struct { //nolint:revive // API prefix is intentional for clarity
	Version int    `json:"v"`
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// EnvelopeTransformer wraps every response body in the versioned
// envelope so clients can parse success and failure uniformly.
func EnvelopeTransformer(_ huma.Context, status string, v any) (any, error) {
	success := len(status) > 0 && (status[0] == '2' || status[0] == '3')

	if success {
		return APIEnvelope{
			Version: EnvelopeVersion,
			Success: true,
			Data:    v,
		}, nil
	}

	// Coded errors keep their structure for clients that dispatch on code.
	var apiErr *APIError
	if errors.As(toError(v), &apiErr) && apiErr.Code != "" {
		return APIErrorEnvelope{
			Version: EnvelopeVersion,
			Success: false,
			Code:    apiErr.Code,
			Message: apiErr.Message,
			Details: apiErr.Details,
		}, nil
	}

	msg := ""
	if err := toError(v); err != nil {
		msg = err.Error()
	}

	return APIEnvelope{
		Version: EnvelopeVersion,
		Success: false,
		Error:   msg,
	}, nil
}

func toError(v any) error {
	err, ok := v.(error)
	if !ok {
		return nil
	}
	return err
}
