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

var staffColumns = []string{
	"id", "branch_id", "name", "photo_url", "role", "is_offline",
	"token", "access_code_hash", "is_active", "created_at",
}

// StaffRepository handles database operations for staff identities.
type StaffRepository struct {
	pool *pgxpool.Pool
}

// NewStaffRepository creates a new StaffRepository.
func NewStaffRepository(pool *pgxpool.Pool) *StaffRepository {
	return &StaffRepository{pool: pool}
}

func scanStaff(row pgx.Row) (*domain.Staff, error) {
	var staff domain.Staff
	err := row.Scan(
		&staff.ID,
		&staff.BranchID,
		&staff.Name,
		&staff.PhotoURL,
		&staff.Role,
		&staff.IsOffline,
		&staff.Token,
		&staff.AccessCodeHash,
		&staff.IsActive,
		&staff.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrStaffNotFound
		}
		return nil, fmt.Errorf("scan staff: %w", err)
	}
	return &staff, nil
}

// GetByID retrieves a staff member by ID.
func (r *StaffRepository) GetByID(ctx context.Context, staffID string) (*domain.Staff, error) {
	query, args, err := psql.
		Select(staffColumns...).
		From("staff").
		Where(sq.Eq{"id": staffID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build GetByID query for staff: %w", err)
	}

	return scanStaff(r.pool.QueryRow(ctx, query, args...))
}

// GetByToken finds a staff member by API authentication token.
func (r *StaffRepository) GetByToken(ctx context.Context, token string) (*domain.Staff, error) {
	query, args, err := psql.
		Select(staffColumns...).
		From("staff").
		Where(sq.Eq{"token": token}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build GetByToken query for staff: %w", err)
	}

	return scanStaff(r.pool.QueryRow(ctx, query, args...))
}

// ListActiveByBranch retrieves active staff scoped to a single branch.
// The branch_id predicate is the isolation boundary: staff lists must never
// cross branches.
func (r *StaffRepository) ListActiveByBranch(ctx context.Context, branchID string) ([]*domain.Staff, error) {
	query, args, err := psql.
		Select(staffColumns...).
		From("staff").
		Where(sq.Eq{"branch_id": branchID, "is_active": true}).
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build ListActiveByBranch query for staff: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query staff: %w", err)
	}
	defer rows.Close()

	var members []*domain.Staff
	for rows.Next() {
		member, err := scanStaff(rows)
		if err != nil {
			return nil, err
		}
		members = append(members, member)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return members, nil
}

// Create persists a new staff identity within the transaction.
func (r *StaffRepository) Create(ctx context.Context, tx pgx.Tx, staff *domain.Staff) error {
	query, args, err := psql.
		Insert("staff").
		Columns("branch_id", "name", "photo_url", "role", "is_offline", "token", "access_code_hash", "is_active").
		Values(
			staff.BranchID,
			staff.Name,
			staff.PhotoURL,
			staff.Role,
			staff.IsOffline,
			staff.Token,
			staff.AccessCodeHash,
			staff.IsActive,
		).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build Create query for staff: %w", err)
	}

	if err := tx.QueryRow(ctx, query, args...).Scan(&staff.ID, &staff.CreatedAt); err != nil {
		return fmt.Errorf("create staff: %w", err)
	}

	return nil
}

// AccessCodeHashExists reports whether an access-code hash is already taken
// within a branch. Codes must be unique per branch.
func (r *StaffRepository) AccessCodeHashExists(ctx context.Context, branchID, hash string) (bool, error) {
	query, args, err := psql.
		Select("COUNT(*)").
		From("staff").
		Where(sq.Eq{"branch_id": branchID, "access_code_hash": hash}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build AccessCodeHashExists query: %w", err)
	}

	var count int
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("count access code hashes: %w", err)
	}

	return count > 0, nil
}
