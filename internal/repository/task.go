package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/taskproof/taskproof/internal/domain"
)

// taskColumns is the shared list of columns for task queries.
var taskColumns = []string{
	"id", "zone_id", "title", "description", "limit_time", "evidence_kind",
	"days", "assignee_id", "position", "created_at", "updated_at",
}

// lastEvidenceExpr computes the most recent evidence timestamp for a task
// row aliased as t. The evaluator decides whether it falls in the current
// branch-local day.
const lastEvidenceExpr = "(SELECT MAX(e.captured_at) FROM evidence e WHERE e.task_id = t.id)"

// TaskRepository handles database operations for tasks.
type TaskRepository struct {
	pool *pgxpool.Pool
}

// NewTaskRepository creates a new TaskRepository.
func NewTaskRepository(pool *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{pool: pool}
}

// scanTask scans a single row into a Task struct.
func scanTask(row pgx.Row) (*domain.Task, error) {
	var (
		task      domain.Task
		limitTime *string
		days      []string
	)
	err := row.Scan(
		&task.ID,
		&task.ZoneID,
		&task.Title,
		&task.Description,
		&limitTime,
		&task.EvidenceKind,
		&days,
		&task.AssigneeID,
		&task.Position,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("scan task: %w", err)
	}
	if err := applyTaskFields(&task, limitTime, days); err != nil {
		return nil, err
	}
	return &task, nil
}

// applyTaskFields converts raw column values into their domain types.
func applyTaskFields(task *domain.Task, limitTime *string, days []string) error {
	if limitTime != nil {
		lt, err := domain.ParseLimitTime(*limitTime)
		if err != nil {
			return fmt.Errorf("task %s: %w", task.ID, err)
		}
		task.LimitTime = lt
	}
	task.Days = make(domain.WeekdaySet, len(days))
	for i, d := range days {
		task.Days[i] = domain.Weekday(d)
	}
	return nil
}

// GetByID retrieves a task by ID.
func (r *TaskRepository) GetByID(ctx context.Context, taskID string) (*domain.Task, error) {
	query, args, err := psql.
		Select(taskColumns...).
		From("tasks").
		Where(sq.Eq{"id": taskID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build GetByID query for task: %w", err)
	}

	return scanTask(r.pool.QueryRow(ctx, query, args...))
}

// UpdateAssignee sets or clears the task's assignee. Clearing an already
// clear assignment succeeds: the operation is idempotent.
func (r *TaskRepository) UpdateAssignee(ctx context.Context, taskID string, assigneeID *string) error {
	query, args, err := psql.
		Update("tasks").
		Set("assignee_id", assigneeID).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": taskID}).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("build UpdateAssignee query for task %s: %w", taskID, err)
	}

	var id string
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrTaskNotFound
		}
		return fmt.Errorf("update task assignee: %w", err)
	}

	return nil
}

// UpdateAssigneeTx is UpdateAssignee scoped to a transaction, used when the
// assignee is being created in the same transaction.
func (r *TaskRepository) UpdateAssigneeTx(ctx context.Context, tx pgx.Tx, taskID string, assigneeID *string) error {
	query, args, err := psql.
		Update("tasks").
		Set("assignee_id", assigneeID).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": taskID}).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("build UpdateAssignee query for task %s: %w", taskID, err)
	}

	var id string
	if err := tx.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrTaskNotFound
		}
		return fmt.Errorf("update task assignee: %w", err)
	}

	return nil
}

// snapshotColumns prefixes taskColumns for the snapshot join and appends the
// assignee display name and last evidence timestamp.
func snapshotColumns() []string {
	cols := make([]string, 0, len(taskColumns)+2)
	for _, c := range taskColumns {
		cols = append(cols, "t."+c)
	}
	return append(cols, "s.name", lastEvidenceExpr)
}

func scanSnapshots(rows pgx.Rows) ([]domain.TaskSnapshot, error) {
	defer rows.Close()

	var snaps []domain.TaskSnapshot
	for rows.Next() {
		var (
			snap      domain.TaskSnapshot
			limitTime *string
			days      []string
		)
		err := rows.Scan(
			&snap.Task.ID,
			&snap.Task.ZoneID,
			&snap.Task.Title,
			&snap.Task.Description,
			&limitTime,
			&snap.Task.EvidenceKind,
			&days,
			&snap.Task.AssigneeID,
			&snap.Task.Position,
			&snap.Task.CreatedAt,
			&snap.Task.UpdatedAt,
			&snap.AssigneeName,
			&snap.LastEvidenceAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan task snapshot: %w", err)
		}
		if err := applyTaskFields(&snap.Task, limitTime, days); err != nil {
			return nil, err
		}
		snaps = append(snaps, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return snaps, nil
}

// ListSnapshotsByZone retrieves the snapshot of every task in a zone, in
// catalog order, with the metadata the evaluator and filter layer need.
func (r *TaskRepository) ListSnapshotsByZone(ctx context.Context, zoneID string) ([]domain.TaskSnapshot, error) {
	query, args, err := psql.
		Select(snapshotColumns()...).
		From("tasks t").
		LeftJoin("staff s ON s.id = t.assignee_id").
		Where(sq.Eq{"t.zone_id": zoneID}).
		OrderBy("t.position ASC", "t.created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build ListSnapshotsByZone query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query task snapshots: %w", err)
	}

	return scanSnapshots(rows)
}

// ListSnapshotsByBranch retrieves snapshots for every task under a branch,
// used by the overdue sweep.
func (r *TaskRepository) ListSnapshotsByBranch(ctx context.Context, branchID string) ([]domain.TaskSnapshot, error) {
	query, args, err := psql.
		Select(snapshotColumns()...).
		From("tasks t").
		Join("zones z ON z.id = t.zone_id").
		LeftJoin("staff s ON s.id = t.assignee_id").
		Where(sq.Eq{"z.branch_id": branchID}).
		OrderBy("z.position ASC", "t.position ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build ListSnapshotsByBranch query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query task snapshots: %w", err)
	}

	return scanSnapshots(rows)
}

// ZoneDayRow is one task's completion flag for a historical date.
type ZoneDayRow struct {
	TaskID       string
	Title        string
	Days         domain.WeekdaySet
	AssigneeName *string
	Done         bool
	CompletedAt  *time.Time
}

// ListZoneDay returns, for every task of a zone, whether evidence exists in
// the half-open interval [dayStart, dayEnd).
func (r *TaskRepository) ListZoneDay(ctx context.Context, zoneID string, dayStart, dayEnd time.Time) ([]ZoneDayRow, error) {
	query := `
		SELECT
			t.id,
			t.title,
			t.days,
			s.name,
			EXISTS(
				SELECT 1 FROM evidence e
				WHERE e.task_id = t.id AND e.captured_at >= $2 AND e.captured_at < $3
			) AS done,
			(
				SELECT MAX(e.captured_at) FROM evidence e
				WHERE e.task_id = t.id AND e.captured_at >= $2 AND e.captured_at < $3
			) AS completed_at
		FROM tasks t
		LEFT JOIN staff s ON s.id = t.assignee_id
		WHERE t.zone_id = $1
		ORDER BY t.position ASC, t.created_at ASC
	`

	rows, err := r.pool.Query(ctx, query, zoneID, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("query zone day: %w", err)
	}
	defer rows.Close()

	var results []ZoneDayRow
	for rows.Next() {
		var (
			row  ZoneDayRow
			days []string
		)
		if err := rows.Scan(&row.TaskID, &row.Title, &days, &row.AssigneeName, &row.Done, &row.CompletedAt); err != nil {
			return nil, fmt.Errorf("scan zone day row: %w", err)
		}
		row.Days = make(domain.WeekdaySet, len(days))
		for i, d := range days {
			row.Days[i] = domain.Weekday(d)
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate zone day rows: %w", err)
	}

	return results, nil
}
