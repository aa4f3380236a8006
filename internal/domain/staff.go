package domain

import "time"

// StaffRole separates managers (who assign and provision) from field
// operators (who capture evidence).
type StaffRole string

const (
	StaffRoleManager  StaffRole = "manager"
	StaffRoleOperator StaffRole = "operator"
)

// IsValid checks if the role is one of the allowed values.
func (r StaffRole) IsValid() bool {
	return r == StaffRoleManager || r == StaffRoleOperator
}

// Staff is a staff identity scoped to a branch. Offline operators carry no
// email account and authenticate through a shareable access code; only the
// hash of that code is ever stored.
type Staff struct {
	ID             string
	BranchID       string
	Name           string
	PhotoURL       *string
	Role           StaffRole
	IsOffline      bool
	Token          string
	AccessCodeHash *string
	IsActive       bool
	CreatedAt      time.Time
}

// InvitationStatus tracks the lifecycle of an email invitation.
type InvitationStatus string

const (
	InvitationStatusPending  InvitationStatus = "pending"
	InvitationStatusAccepted InvitationStatus = "accepted"
)

// Invitation is an asynchronous email invitation. The invited identity does
// not appear among assignable staff until accepted.
type Invitation struct {
	ID             string
	BranchID       string
	Email          string
	Name           string
	JobTitle       string
	Phone          string
	AssignedTaskID *string
	Token          string
	Status         InvitationStatus
	CreatedAt      time.Time
	AcceptedAt     *time.Time
}
