package dto

import (
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ArtifactRequest carries one captured media item.
type ArtifactRequest struct {
	FileURL    string           `json:"file_url" validate:"required,url"`
	CapturedAt time.Time        `json:"captured_at" validate:"required"`
	Location   *LocationRequest `json:"location,omitempty"`
}

// Validate checks the artifact payload.
func (r ArtifactRequest) Validate() error {
	return validate.Struct(r)
}

// LocationRequest is an optional device location. Omitting the object means
// "no location"; zero coordinates are a real place.
type LocationRequest struct {
	Latitude  float64 `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64 `json:"longitude" validate:"gte=-180,lte=180"`
}

// RetakeRequest selects which artifact to retake from review.
type RetakeRequest struct {
	Media string `json:"media"` // PHOTO or VIDEO
}

// ConfirmCaptureRequest represents the request body for POST /tasks/{id}/capture/confirm.
type ConfirmCaptureRequest struct {
	Comment string `json:"comment"`
}

// RemarkRequest represents the request body for POST /tasks/{id}/capture/remark.
type RemarkRequest struct {
	Body string `json:"body"`
}

// ReportRequest represents the request body for POST /tasks/{id}/capture/report.
type ReportRequest struct {
	Reason string `json:"reason"`
}

// AssignTaskRequest represents the request body for PUT /tasks/{id}/assignee.
// A null staff_id clears the assignment.
type AssignTaskRequest struct {
	StaffID *string `json:"staff_id"`
}

// ProvisionOfflineStaffRequest represents the request body for
// POST /branches/{id}/staff/offline.
type ProvisionOfflineStaffRequest struct {
	Name string `json:"name" validate:"required,min=2,max=100"`
}

// Validate checks the provisioning payload.
func (r ProvisionOfflineStaffRequest) Validate() error {
	return validate.Struct(r)
}

// InviteStaffRequest represents the request body for POST /branches/{id}/invitations.
type InviteStaffRequest struct {
	Email          string  `json:"email" validate:"required,email"`
	Name           string  `json:"name" validate:"required,min=2,max=100"`
	JobTitle       string  `json:"job_title" validate:"max=100"`
	Phone          string  `json:"phone" validate:"max=30"`
	AssignedTaskID *string `json:"assigned_task_id,omitempty" validate:"omitempty,uuid"`
}

// Validate checks the invitation payload.
func (r InviteStaffRequest) Validate() error {
	return validate.Struct(r)
}

// AcceptInvitationRequest represents the request body for POST /invitations/accept.
type AcceptInvitationRequest struct {
	Token string `json:"token" validate:"required"`
}

// Validate checks the acceptance payload.
func (r AcceptInvitationRequest) Validate() error {
	return validate.Struct(r)
}

// ListTasksFilters represents query parameters for GET /zones/{id}/tasks.
type ListTasksFilters struct {
	Query  string // ?query=<substring>
	Status string // ?status=ALL|COMPLETED|PENDING|LATE
	Staff  string // ?staff=ALL|UNASSIGNED|<staff uuid>
}
