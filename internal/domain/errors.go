package domain

import "errors"

// Domain-specific errors for business logic validation.
var (
	// Catalog errors
	ErrTaskNotFound     = errors.New("task not found")
	ErrZoneNotFound     = errors.New("zone not found")
	ErrBranchNotFound   = errors.New("branch not found")
	ErrEvidenceNotFound = errors.New("evidence not found")

	// Staff errors
	ErrStaffNotFound      = errors.New("staff not found")
	ErrStaffInactive      = errors.New("staff member is inactive")
	ErrInvalidToken       = errors.New("invalid authentication token")
	ErrInvitationNotFound = errors.New("invitation not found")
	ErrInvitationAccepted = errors.New("invitation already accepted")

	// Permission errors
	ErrPermissionDenied = errors.New("permission denied")
	ErrBranchMismatch   = errors.New("staff and task belong to different branches")

	// Capture workflow errors
	ErrCaptureInProgress   = errors.New("capture attempt already in progress")
	ErrNoCaptureSession    = errors.New("no active capture attempt")
	ErrInvalidCaptureEvent = errors.New("event not allowed in current capture state")
	ErrMissingArtifact     = errors.New("required media artifact not captured")

	// Validation errors
	ErrInvalidLimitTime    = errors.New("invalid limit time, expected HH:MM")
	ErrInvalidWeekday      = errors.New("invalid weekday code")
	ErrInvalidEvidenceKind = errors.New("invalid evidence kind")
	ErrInvalidTimezone     = errors.New("invalid branch timezone")
	ErrEmptyFileURL        = errors.New("file url is required")
	ErrEmptyReason         = errors.New("reason is required")
	ErrEmptyComment        = errors.New("comment is required")
)
