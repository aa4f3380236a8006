package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/taskproof/taskproof/internal/domain"
	"github.com/taskproof/taskproof/internal/repository"
)

// accessCodeAlphabet avoids characters that are easy to misread on paper.
const accessCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const accessCodeLength = 8

// maxAccessCodeAttempts bounds the retry loop on a per-branch hash collision.
const maxAccessCodeAttempts = 5

// AssignmentService manages task assignment and staff provisioning.
type AssignmentService struct {
	pool           *pgxpool.Pool
	taskRepo       *repository.TaskRepository
	staffRepo      *repository.StaffRepository
	invitationRepo *repository.InvitationRepository
	branchRepo     *repository.BranchRepository
	validator      *Validator
}

// NewAssignmentService creates a new AssignmentService.
func NewAssignmentService(
	pool *pgxpool.Pool,
	taskRepo *repository.TaskRepository,
	staffRepo *repository.StaffRepository,
	invitationRepo *repository.InvitationRepository,
	branchRepo *repository.BranchRepository,
	validator *Validator,
) *AssignmentService {
	return &AssignmentService{
		pool:           pool,
		taskRepo:       taskRepo,
		staffRepo:      staffRepo,
		invitationRepo: invitationRepo,
		branchRepo:     branchRepo,
		validator:      validator,
	}
}

// Assign sets or clears a task's assignee. Only managers may assign, and the
// assignee must belong to the same branch as the task. Passing nil clears the
// assignment; clearing an already clear task succeeds.
func (s *AssignmentService) Assign(ctx context.Context, actorID, taskID string, staffID *string) error {
	actor, err := s.validator.ActiveStaff(ctx, actorID)
	if err != nil {
		return err
	}
	if err := s.validator.RequireManager(actor); err != nil {
		return err
	}

	branch, err := s.validator.TaskBranch(ctx, actor, taskID)
	if err != nil {
		return err
	}

	if staffID != nil {
		assignee, err := s.validator.ActiveStaff(ctx, *staffID)
		if err != nil {
			return err
		}
		if assignee.BranchID != branch.ID {
			return fmt.Errorf("%w: staff %s in branch %s, task %s in branch %s",
				domain.ErrBranchMismatch, assignee.ID, assignee.BranchID, taskID, branch.ID)
		}
	}

	if err := s.taskRepo.UpdateAssignee(ctx, taskID, staffID); err != nil {
		return err
	}

	slog.Info("task assignment updated",
		"task_id", taskID,
		"actor_id", actorID,
		"assignee_id", staffID,
	)

	return nil
}

// ListAssignableStaff returns the active staff of the actor's branch. Pending
// invitations are not staff yet and never appear here.
func (s *AssignmentService) ListAssignableStaff(ctx context.Context, actorID, branchID string) ([]*domain.Staff, error) {
	actor, err := s.validator.ActiveStaff(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if err := s.validator.RequireBranch(actor, branchID); err != nil {
		return nil, err
	}

	return s.staffRepo.ListActiveByBranch(ctx, branchID)
}

// ProvisionedStaff pairs a freshly created offline staff identity with its
// plaintext access code. The code is returned exactly once; only its hash is
// stored.
type ProvisionedStaff struct {
	Staff      *domain.Staff
	AccessCode string
}

// ProvisionOfflineStaff creates an operator identity without an email
// account, assignable immediately. The access code is generated server side
// and handed to the manager for out-of-band delivery.
func (s *AssignmentService) ProvisionOfflineStaff(ctx context.Context, actorID, branchID, name string) (*ProvisionedStaff, error) {
	actor, err := s.validator.ActiveStaff(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if err := s.validator.RequireManager(actor); err != nil {
		return nil, err
	}
	if err := s.validator.RequireBranch(actor, branchID); err != nil {
		return nil, err
	}
	if _, err := s.branchRepo.GetByID(ctx, branchID); err != nil {
		return nil, err
	}

	code, hash, err := s.uniqueAccessCode(ctx, branchID)
	if err != nil {
		return nil, err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && err.Error() != "tx is closed" {
			slog.Error("failed to rollback transaction", "error", err)
		}
	}()

	staff := &domain.Staff{
		BranchID:       branchID,
		Name:           name,
		Role:           domain.StaffRoleOperator,
		IsOffline:      true,
		Token:          uuid.NewString(),
		AccessCodeHash: &hash,
		IsActive:       true,
	}
	if err := s.staffRepo.Create(ctx, tx, staff); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	slog.Info("offline staff provisioned",
		"staff_id", staff.ID,
		"branch_id", branchID,
		"actor_id", actorID,
	)

	return &ProvisionedStaff{Staff: staff, AccessCode: code}, nil
}

// uniqueAccessCode generates an access code whose hash does not collide
// within the branch.
func (s *AssignmentService) uniqueAccessCode(ctx context.Context, branchID string) (string, string, error) {
	for attempt := 0; attempt < maxAccessCodeAttempts; attempt++ {
		code, err := generateAccessCode()
		if err != nil {
			return "", "", err
		}
		hash := hashAccessCode(code)

		exists, err := s.staffRepo.AccessCodeHashExists(ctx, branchID, hash)
		if err != nil {
			return "", "", err
		}
		if !exists {
			return code, hash, nil
		}
	}
	return "", "", fmt.Errorf("generate access code: exhausted %d attempts", maxAccessCodeAttempts)
}

func generateAccessCode() (string, error) {
	buf := make([]byte, accessCodeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	for i, b := range buf {
		buf[i] = accessCodeAlphabet[int(b)%len(accessCodeAlphabet)]
	}
	return string(buf), nil
}

func hashAccessCode(code string) string {
	sum := sha256.Sum256([]byte(code))
	return hex.EncodeToString(sum[:])
}

// InviteStaffParams carries the details of an email invitation.
type InviteStaffParams struct {
	BranchID       string
	Email          string
	Name           string
	JobTitle       string
	Phone          string
	AssignedTaskID *string
}

// InviteStaffByEmail issues a pending invitation. The invited person becomes
// staff only on acceptance; until then they are not assignable. Delivery of
// the invitation email is delegated to the notification pipeline.
func (s *AssignmentService) InviteStaffByEmail(ctx context.Context, actorID string, params InviteStaffParams) (*domain.Invitation, error) {
	actor, err := s.validator.ActiveStaff(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if err := s.validator.RequireManager(actor); err != nil {
		return nil, err
	}
	if err := s.validator.RequireBranch(actor, params.BranchID); err != nil {
		return nil, err
	}

	if params.AssignedTaskID != nil {
		branch, err := s.branchRepo.GetByTaskID(ctx, *params.AssignedTaskID)
		if err != nil {
			return nil, err
		}
		if branch.ID != params.BranchID {
			return nil, fmt.Errorf("%w: pre-assigned task %s in branch %s, invitation for branch %s",
				domain.ErrBranchMismatch, *params.AssignedTaskID, branch.ID, params.BranchID)
		}
	}

	invitation := &domain.Invitation{
		BranchID:       params.BranchID,
		Email:          params.Email,
		Name:           params.Name,
		JobTitle:       params.JobTitle,
		Phone:          params.Phone,
		AssignedTaskID: params.AssignedTaskID,
		Token:          uuid.NewString(),
		Status:         domain.InvitationStatusPending,
	}
	if err := s.invitationRepo.Create(ctx, invitation); err != nil {
		return nil, err
	}

	slog.Info("staff invitation issued",
		"invitation_id", invitation.ID,
		"branch_id", params.BranchID,
		"email", params.Email,
		"actor_id", actorID,
	)

	return invitation, nil
}

// AcceptInvitation consumes a pending invitation: it creates the staff
// identity and applies any pre-assignment in one transaction. A consumed
// invitation cannot be accepted twice.
func (s *AssignmentService) AcceptInvitation(ctx context.Context, token string) (*domain.Staff, error) {
	invitation, err := s.invitationRepo.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if invitation.Status != domain.InvitationStatusPending {
		return nil, domain.ErrInvitationAccepted
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && err.Error() != "tx is closed" {
			slog.Error("failed to rollback transaction", "error", err)
		}
	}()

	// MarkAccepted is guarded on status=pending, so a concurrent accept of
	// the same token loses here.
	if err := s.invitationRepo.MarkAccepted(ctx, tx, invitation.ID); err != nil {
		return nil, err
	}

	staff := &domain.Staff{
		BranchID: invitation.BranchID,
		Name:     invitation.Name,
		Role:     domain.StaffRoleOperator,
		Token:    uuid.NewString(),
		IsActive: true,
	}
	if err := s.staffRepo.Create(ctx, tx, staff); err != nil {
		return nil, err
	}

	if invitation.AssignedTaskID != nil {
		if err := s.taskRepo.UpdateAssigneeTx(ctx, tx, *invitation.AssignedTaskID, &staff.ID); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	slog.Info("staff invitation accepted",
		"invitation_id", invitation.ID,
		"staff_id", staff.ID,
		"branch_id", invitation.BranchID,
	)

	return staff, nil
}
