package dto

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/taskproof/taskproof/internal/domain"
)

// ErrorResponse is the standard error response format.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error code and message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewErrorResponse creates a new error response.
func NewErrorResponse(code, message string) ErrorResponse {
	return ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
		},
	}
}

// MapDomainError maps domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code string, message string) {
	message = err.Error()

	switch {
	// Not-found errors
	case errors.Is(err, domain.ErrTaskNotFound):
		return http.StatusNotFound, "TASK_NOT_FOUND", message
	case errors.Is(err, domain.ErrZoneNotFound):
		return http.StatusNotFound, "ZONE_NOT_FOUND", message
	case errors.Is(err, domain.ErrBranchNotFound):
		return http.StatusNotFound, "BRANCH_NOT_FOUND", message
	case errors.Is(err, domain.ErrEvidenceNotFound):
		return http.StatusNotFound, "EVIDENCE_NOT_FOUND", message
	case errors.Is(err, domain.ErrInvitationNotFound):
		return http.StatusNotFound, "INVITATION_NOT_FOUND", message
	case errors.Is(err, domain.ErrNoCaptureSession):
		return http.StatusNotFound, "NO_CAPTURE_SESSION", message

	// Conflict errors
	case errors.Is(err, domain.ErrCaptureInProgress):
		return http.StatusConflict, "CAPTURE_IN_PROGRESS", message
	case errors.Is(err, domain.ErrInvalidCaptureEvent):
		return http.StatusConflict, "INVALID_CAPTURE_EVENT", message
	case errors.Is(err, domain.ErrInvitationAccepted):
		return http.StatusConflict, "INVITATION_ACCEPTED", message

	// Permission errors
	case errors.Is(err, domain.ErrPermissionDenied):
		return http.StatusForbidden, "INSUFFICIENT_ACCESS", message
	case errors.Is(err, domain.ErrBranchMismatch):
		return http.StatusForbidden, "BRANCH_MISMATCH", message

	// Staff errors
	case errors.Is(err, domain.ErrStaffNotFound):
		return http.StatusUnauthorized, "INVALID_TOKEN", message
	case errors.Is(err, domain.ErrStaffInactive):
		return http.StatusUnauthorized, "STAFF_INACTIVE", message
	case errors.Is(err, domain.ErrInvalidToken):
		return http.StatusUnauthorized, "INVALID_TOKEN", message

	// Validation errors
	case errors.Is(err, domain.ErrInvalidLimitTime),
		errors.Is(err, domain.ErrInvalidWeekday),
		errors.Is(err, domain.ErrInvalidEvidenceKind),
		errors.Is(err, domain.ErrInvalidTimezone),
		errors.Is(err, domain.ErrMissingArtifact),
		errors.Is(err, domain.ErrEmptyFileURL),
		errors.Is(err, domain.ErrEmptyReason),
		errors.Is(err, domain.ErrEmptyComment):
		return http.StatusUnprocessableEntity, "VALIDATION_ERROR", message

	// Default: internal server error
	default:
		slog.Error("unmapped domain error returned to client",
			"error", err,
			"error_type", fmt.Sprintf("%T", err),
		)
		return http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error"
	}
}
