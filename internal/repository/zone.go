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

// ZoneRepository handles database operations for zones.
type ZoneRepository struct {
	pool *pgxpool.Pool
}

// NewZoneRepository creates a new ZoneRepository.
func NewZoneRepository(pool *pgxpool.Pool) *ZoneRepository {
	return &ZoneRepository{pool: pool}
}

// GetByID retrieves a zone by ID.
func (r *ZoneRepository) GetByID(ctx context.Context, zoneID string) (*domain.Zone, error) {
	query, args, err := psql.
		Select("id", "branch_id", "name", "description", "position", "created_at").
		From("zones").
		Where(sq.Eq{"id": zoneID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build GetByID query for zone: %w", err)
	}

	var zone domain.Zone
	err = r.pool.QueryRow(ctx, query, args...).Scan(
		&zone.ID,
		&zone.BranchID,
		&zone.Name,
		&zone.Description,
		&zone.Position,
		&zone.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrZoneNotFound
		}
		return nil, fmt.Errorf("query zone: %w", err)
	}

	return &zone, nil
}
