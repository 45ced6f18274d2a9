package workflow

import (
	"fmt"
	"strings"

	"loanflow-backend/internal/domain/application"
)

// Stable machine-readable codes; the presentation layer maps these to HTTP
// statuses / localized messages without parsing free text.
const (
	CodeNotFound      = "NOT_FOUND"
	CodeInvalidStatus = "INVALID_STATUS"
	CodeUnauthorized  = "UNAUTHORIZED"
	CodeValidation    = "VALIDATION_ERROR"
)

type Error struct {
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Code + ": " + e.Message + ": " + e.Err.Error()
	}
	return e.Code + ": " + e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func notFoundErr(applicationID string) *Error {
	return &Error{Code: CodeNotFound, Message: fmt.Sprintf("loan application %s not found", applicationID), Err: application.ErrNotFound}
}

func invalidStatusErr(expected, actual application.Status) *Error {
	return &Error{
		Code:    CodeInvalidStatus,
		Message: fmt.Sprintf("loan application status must be %s, current status is %s", expected, actual),
		Err:     application.ErrInvalidStatus,
	}
}

func unauthorizedErr() *Error {
	return &Error{Code: CodeUnauthorized, Message: "caller does not resolve to an active reviewer"}
}

func validationErr(msg string) *Error {
	return &Error{Code: CodeValidation, Message: msg}
}

// internalErr carries the stage-specific generic failure code, e.g.
// ELIGIBILITY_ASSESSMENT_FAILED.
func internalErr(stage StageKey, err error) *Error {
	return &Error{
		Code:    strings.ToUpper(string(stage)) + "_FAILED",
		Message: fmt.Sprintf("failed to complete %s stage", strings.ReplaceAll(string(stage), "_", " ")),
		Err:     err,
	}
}
