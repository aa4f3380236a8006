package repository

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/taskproof/taskproof/internal/domain"
)

// InvitationRepository handles database operations for staff invitations.
type InvitationRepository struct {
	pool *pgxpool.Pool
}

// NewInvitationRepository creates a new InvitationRepository.
func NewInvitationRepository(pool *pgxpool.Pool) *InvitationRepository {
	return &InvitationRepository{pool: pool}
}

// Create persists a new pending invitation.
func (r *InvitationRepository) Create(ctx context.Context, invitation *domain.Invitation) error {
	query, args, err := psql.
		Insert("staff_invitations").
		Columns("branch_id", "email", "name", "job_title", "phone", "assigned_task_id", "token", "status").
		Values(
			invitation.BranchID,
			invitation.Email,
			invitation.Name,
			invitation.JobTitle,
			invitation.Phone,
			invitation.AssignedTaskID,
			invitation.Token,
			invitation.Status,
		).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build Create query for invitation: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&invitation.ID, &invitation.CreatedAt); err != nil {
		return fmt.Errorf("create invitation: %w", err)
	}

	return nil
}

// GetByToken retrieves an invitation by its acceptance token.
func (r *InvitationRepository) GetByToken(ctx context.Context, token string) (*domain.Invitation, error) {
	query, args, err := psql.
		Select("id", "branch_id", "email", "name", "job_title", "phone",
			"assigned_task_id", "token", "status", "created_at", "accepted_at").
		From("staff_invitations").
		Where(sq.Eq{"token": token}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build GetByToken query for invitation: %w", err)
	}

	var invitation domain.Invitation
	err = r.pool.QueryRow(ctx, query, args...).Scan(
		&invitation.ID,
		&invitation.BranchID,
		&invitation.Email,
		&invitation.Name,
		&invitation.JobTitle,
		&invitation.Phone,
		&invitation.AssignedTaskID,
		&invitation.Token,
		&invitation.Status,
		&invitation.CreatedAt,
		&invitation.AcceptedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrInvitationNotFound
		}
		return nil, fmt.Errorf("query invitation: %w", err)
	}

	return &invitation, nil
}

// MarkAccepted flips a pending invitation to accepted within the transaction.
// Returns ErrInvitationAccepted if the invitation was already consumed.
func (r *InvitationRepository) MarkAccepted(ctx context.Context, tx pgx.Tx, invitationID string) error {
	query, args, err := psql.
		Update("staff_invitations").
		Set("status", domain.InvitationStatusAccepted).
		Set("accepted_at", sq.Expr("NOW()")).
		Where(sq.Eq{
			"id":     invitationID,
			"status": domain.InvitationStatusPending,
		}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build MarkAccepted query for invitation %s: %w", invitationID, err)
	}

	tag, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("mark invitation accepted: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrInvitationAccepted
	}

	return nil
}
