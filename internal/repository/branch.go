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

var branchColumns = []string{"id", "name", "timezone", "created_at"}

// BranchRepository handles database operations for branches.
type BranchRepository struct {
	pool *pgxpool.Pool
}

// NewBranchRepository creates a new BranchRepository.
func NewBranchRepository(pool *pgxpool.Pool) *BranchRepository {
	return &BranchRepository{pool: pool}
}

func scanBranch(row pgx.Row) (*domain.Branch, error) {
	var branch domain.Branch
	err := row.Scan(&branch.ID, &branch.Name, &branch.Timezone, &branch.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBranchNotFound
		}
		return nil, fmt.Errorf("scan branch: %w", err)
	}
	return &branch, nil
}

// GetByID retrieves a branch by ID.
func (r *BranchRepository) GetByID(ctx context.Context, branchID string) (*domain.Branch, error) {
	query, args, err := psql.
		Select(branchColumns...).
		From("branches").
		Where(sq.Eq{"id": branchID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build GetByID query for branch: %w", err)
	}

	return scanBranch(r.pool.QueryRow(ctx, query, args...))
}

// GetByZoneID retrieves the branch that owns a zone.
func (r *BranchRepository) GetByZoneID(ctx context.Context, zoneID string) (*domain.Branch, error) {
	query, args, err := psql.
		Select("b.id", "b.name", "b.timezone", "b.created_at").
		From("branches b").
		Join("zones z ON z.branch_id = b.id").
		Where(sq.Eq{"z.id": zoneID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build GetByZoneID query for branch: %w", err)
	}

	return scanBranch(r.pool.QueryRow(ctx, query, args...))
}

// GetByTaskID retrieves the branch that owns a task, through its zone.
func (r *BranchRepository) GetByTaskID(ctx context.Context, taskID string) (*domain.Branch, error) {
	query, args, err := psql.
		Select("b.id", "b.name", "b.timezone", "b.created_at").
		From("branches b").
		Join("zones z ON z.branch_id = b.id").
		Join("tasks t ON t.zone_id = z.id").
		Where(sq.Eq{"t.id": taskID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build GetByTaskID query for branch: %w", err)
	}

	return scanBranch(r.pool.QueryRow(ctx, query, args...))
}

// List retrieves all branches ordered by name.
func (r *BranchRepository) List(ctx context.Context) ([]*domain.Branch, error) {
	query, args, err := psql.
		Select(branchColumns...).
		From("branches").
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build List query for branches: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query branches: %w", err)
	}
	defer rows.Close()

	var branches []*domain.Branch
	for rows.Next() {
		branch, err := scanBranch(rows)
		if err != nil {
			return nil, err
		}
		branches = append(branches, branch)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return branches, nil
}
