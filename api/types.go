package api

import (
	"fee-wizard/core/types"
	"fee-wizard/core/validation"
)

// Error codes
const (
	CodeError        = "ERROR"
	CodeNotFound     = "NOT_FOUND"
	CodeInvalidBody  = "INVALID_BODY"
	CodeRateLimited  = "RATE_LIMITED"
	GenericErrorText = "An error occurred"
)

// ErrorBody is the payload of an error response
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps every non-validation failure
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// JourneyResponse is returned when a journey starts
type JourneyResponse struct {
	Next types.Step `json:"next"`
}

// SubmitResponse is returned when a step is accepted
type SubmitResponse struct {
	Next    types.Step    `json:"next"`
	Cleared []types.Field `json:"cleared,omitempty"`
}

// ValidationResponse is returned with 422 when a step is rejected.
// ErrorList keeps display order; ErrorMap is keyed by form field.
type ValidationResponse struct {
	Step      types.Step                        `json:"step"`
	ErrorList []*validation.FieldError          `json:"errorList"`
	ErrorMap  map[string]*validation.FieldError `json:"errorMap"`
	Form      map[string]string                 `json:"form"`
}

