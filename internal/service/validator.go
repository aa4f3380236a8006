package service

import (
	"context"
	"fmt"

	"github.com/taskproof/taskproof/internal/domain"
	"github.com/taskproof/taskproof/internal/repository"
)

// Validator handles permission and branch-scoping validation shared by the
// services.
type Validator struct {
	staffRepo  *repository.StaffRepository
	branchRepo *repository.BranchRepository
}

// NewValidator creates a new Validator.
func NewValidator(staffRepo *repository.StaffRepository, branchRepo *repository.BranchRepository) *Validator {
	return &Validator{
		staffRepo:  staffRepo,
		branchRepo: branchRepo,
	}
}

// ActiveStaff fetches a staff member by ID and verifies they are active.
func (v *Validator) ActiveStaff(ctx context.Context, staffID string) (*domain.Staff, error) {
	staff, err := v.staffRepo.GetByID(ctx, staffID)
	if err != nil {
		return nil, err
	}
	if !staff.IsActive {
		return nil, domain.ErrStaffInactive
	}
	return staff, nil
}

// RequireManager validates that the actor holds the manager role.
func (v *Validator) RequireManager(staff *domain.Staff) error {
	if staff.Role != domain.StaffRoleManager {
		return fmt.Errorf("%w: staff %s is not a manager", domain.ErrPermissionDenied, staff.ID)
	}
	return nil
}

// RequireBranch validates that the actor belongs to the given branch.
func (v *Validator) RequireBranch(staff *domain.Staff, branchID string) error {
	if staff.BranchID != branchID {
		return fmt.Errorf("%w: staff %s in branch %s, expected %s",
			domain.ErrPermissionDenied, staff.ID, staff.BranchID, branchID)
	}
	return nil
}

// TaskBranch resolves the branch owning a task and verifies the actor
// belongs to it. Branch isolation is a correctness requirement, not a
// convenience.
func (v *Validator) TaskBranch(ctx context.Context, staff *domain.Staff, taskID string) (*domain.Branch, error) {
	branch, err := v.branchRepo.GetByTaskID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if staff.BranchID != branch.ID {
		return nil, fmt.Errorf("%w: staff %s in branch %s, task %s in branch %s",
			domain.ErrBranchMismatch, staff.ID, staff.BranchID, taskID, branch.ID)
	}
	return branch, nil
}
