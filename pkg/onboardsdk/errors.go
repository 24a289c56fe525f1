package onboardsdk

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Error codes returned by the onboarding service.
const (
	ErrorCodeInvalidRequest = "invalid_request"
	ErrorCodeInvalidGrant   = "invalid_grant"
	ErrorCodeInvalidInvite  = "invalid_invite"
	ErrorCodeForbidden      = "forbidden"
	ErrorCodeDuplicate      = "duplicate_account"
	ErrorCodeValidation     = "validation_error"
	ErrorCodeServerError    = "server_error"
)

// APIError is a structured error returned by the onboarding service. It
// implements the error interface so SDK callers can inspect the code and
// status with errors.As.
type APIError struct {
	// StatusCode is the HTTP status code for this error
	StatusCode int `json:"-"`

	// Code is the stable machine-readable error code
	Code string `json:"error"`

	// Description is a human-readable description of the error
	Description string `json:"error_description"`

	// Details carries field-level validation failures when Code is
	// "validation_error"
	Details map[string]string `json:"details,omitempty"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Description != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Description)
	}
	return e.Code
}

// parseAPIError decodes an error response body into an APIError. Both the
// plain and validation error envelopes are handled.
func parseAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode, Code: ErrorCodeServerError}

	var raw struct {
		Error            string            `json:"error"`
		ErrorDescription string            `json:"error_description"`
		Code             string            `json:"code"`
		Message          string            `json:"message"`
		Details          map[string]string `json:"details"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		apiErr.Description = fmt.Sprintf("unexpected status %d", resp.StatusCode)
		return apiErr
	}

	switch {
	case raw.Code != "":
		apiErr.Code = raw.Code
		apiErr.Description = raw.Message
		apiErr.Details = raw.Details
	case raw.Error != "":
		apiErr.Code = raw.Error
		apiErr.Description = raw.ErrorDescription
	default:
		apiErr.Description = fmt.Sprintf("unexpected status %d", resp.StatusCode)
	}
	return apiErr
}
