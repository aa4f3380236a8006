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

// EvidenceRepository handles database operations for evidence and its
// append-only comments.
type EvidenceRepository struct {
	pool *pgxpool.Pool
}

// NewEvidenceRepository creates a new EvidenceRepository.
func NewEvidenceRepository(pool *pgxpool.Pool) *EvidenceRepository {
	return &EvidenceRepository{pool: pool}
}

// Create persists one evidence record within the transaction. Evidence core
// fields are never updated after this insert.
func (r *EvidenceRepository) Create(ctx context.Context, tx pgx.Tx, evidence *domain.Evidence) error {
	var latitude, longitude *float64
	if evidence.Location != nil {
		latitude = &evidence.Location.Latitude
		longitude = &evidence.Location.Longitude
	}

	query, args, err := psql.
		Insert("evidence").
		Columns("task_id", "file_url", "media_kind", "captured_at", "latitude", "longitude", "comment", "submitted_by").
		Values(
			evidence.TaskID,
			evidence.FileURL,
			evidence.MediaKind,
			evidence.CapturedAt,
			latitude,
			longitude,
			evidence.Comment,
			evidence.SubmittedBy,
		).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build Create query for evidence: %w", err)
	}

	if err := tx.QueryRow(ctx, query, args...).Scan(&evidence.ID, &evidence.CreatedAt); err != nil {
		return fmt.Errorf("create evidence: %w", err)
	}

	return nil
}

// GetByID retrieves an evidence record by ID.
func (r *EvidenceRepository) GetByID(ctx context.Context, evidenceID string) (*domain.Evidence, error) {
	query, args, err := psql.
		Select("id", "task_id", "file_url", "media_kind", "captured_at", "latitude", "longitude", "comment", "submitted_by", "created_at").
		From("evidence").
		Where(sq.Eq{"id": evidenceID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build GetByID query for evidence: %w", err)
	}

	return scanEvidence(r.pool.QueryRow(ctx, query, args...))
}

func scanEvidence(row pgx.Row) (*domain.Evidence, error) {
	var (
		evidence  domain.Evidence
		latitude  *float64
		longitude *float64
	)
	err := row.Scan(
		&evidence.ID,
		&evidence.TaskID,
		&evidence.FileURL,
		&evidence.MediaKind,
		&evidence.CapturedAt,
		&latitude,
		&longitude,
		&evidence.Comment,
		&evidence.SubmittedBy,
		&evidence.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEvidenceNotFound
		}
		return nil, fmt.Errorf("scan evidence: %w", err)
	}
	if latitude != nil && longitude != nil {
		evidence.Location = &domain.Location{Latitude: *latitude, Longitude: *longitude}
	}
	return &evidence, nil
}

// AddComment appends a post-submission remark to an evidence record within
// the transaction, so a multi-record batch lands all-or-nothing.
func (r *EvidenceRepository) AddComment(ctx context.Context, tx pgx.Tx, comment *domain.EvidenceComment) error {
	query, args, err := psql.
		Insert("evidence_comments").
		Columns("evidence_id", "body", "author_id").
		Values(comment.EvidenceID, comment.Body, comment.AuthorID).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build AddComment query: %w", err)
	}

	if err := tx.QueryRow(ctx, query, args...).Scan(&comment.ID, &comment.CreatedAt); err != nil {
		return fmt.Errorf("create evidence comment: %w", err)
	}

	return nil
}

// ListByTask retrieves a task's evidence in chronological order, joined with
// the submitter's display name.
func (r *EvidenceRepository) ListByTask(ctx context.Context, taskID string) ([]domain.EvidenceRecord, error) {
	query, args, err := psql.
		Select("e.id", "e.task_id", "e.file_url", "e.media_kind", "e.captured_at",
			"e.latitude", "e.longitude", "e.comment", "e.submitted_by", "e.created_at", "s.name").
		From("evidence e").
		Join("staff s ON s.id = e.submitted_by").
		Where(sq.Eq{"e.task_id": taskID}).
		OrderBy("e.captured_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build ListByTask query for evidence: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query evidence: %w", err)
	}
	defer rows.Close()

	var records []domain.EvidenceRecord
	for rows.Next() {
		var (
			record    domain.EvidenceRecord
			latitude  *float64
			longitude *float64
		)
		err := rows.Scan(
			&record.Evidence.ID,
			&record.Evidence.TaskID,
			&record.Evidence.FileURL,
			&record.Evidence.MediaKind,
			&record.Evidence.CapturedAt,
			&latitude,
			&longitude,
			&record.Evidence.Comment,
			&record.Evidence.SubmittedBy,
			&record.Evidence.CreatedAt,
			&record.SubmitterName,
		)
		if err != nil {
			return nil, fmt.Errorf("scan evidence record: %w", err)
		}
		if latitude != nil && longitude != nil {
			record.Evidence.Location = &domain.Location{Latitude: *latitude, Longitude: *longitude}
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return records, nil
}
