package repository

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/taskproof/taskproof/internal/domain"
)

// ReportRepository handles database operations for blocking-issue reports.
type ReportRepository struct {
	pool *pgxpool.Pool
}

// NewReportRepository creates a new ReportRepository.
func NewReportRepository(pool *pgxpool.Pool) *ReportRepository {
	return &ReportRepository{pool: pool}
}

// Create persists a new report. Reports are terminal records.
func (r *ReportRepository) Create(ctx context.Context, report *domain.Report) error {
	query, args, err := psql.
		Insert("reports").
		Columns("task_id", "reason", "filed_by").
		Values(report.TaskID, report.Reason, report.FiledBy).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build Create query for report: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&report.ID, &report.CreatedAt); err != nil {
		return fmt.Errorf("create report: %w", err)
	}

	return nil
}

// ListByTask retrieves all reports for a task, newest first.
func (r *ReportRepository) ListByTask(ctx context.Context, taskID string) ([]*domain.Report, error) {
	query, args, err := psql.
		Select("id", "task_id", "reason", "filed_by", "created_at").
		From("reports").
		Where(sq.Eq{"task_id": taskID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build ListByTask query for reports: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query reports: %w", err)
	}
	defer rows.Close()

	var reports []*domain.Report
	for rows.Next() {
		var report domain.Report
		if err := rows.Scan(&report.ID, &report.TaskID, &report.Reason, &report.FiledBy, &report.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan report: %w", err)
		}
		reports = append(reports, &report)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return reports, nil
}
