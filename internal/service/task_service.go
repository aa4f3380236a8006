package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/taskproof/taskproof/internal/domain"
	"github.com/taskproof/taskproof/internal/repository"
)

// TaskService serves the task-list surface and owns evidence submission.
type TaskService struct {
	pool         *pgxpool.Pool
	taskRepo     *repository.TaskRepository
	evidenceRepo *repository.EvidenceRepository
	zoneRepo     *repository.ZoneRepository
	branchRepo   *repository.BranchRepository
	validator    *Validator
}

// NewTaskService creates a new TaskService.
func NewTaskService(
	pool *pgxpool.Pool,
	taskRepo *repository.TaskRepository,
	evidenceRepo *repository.EvidenceRepository,
	zoneRepo *repository.ZoneRepository,
	branchRepo *repository.BranchRepository,
	validator *Validator,
) *TaskService {
	return &TaskService{
		pool:         pool,
		taskRepo:     taskRepo,
		evidenceRepo: evidenceRepo,
		zoneRepo:     zoneRepo,
		branchRepo:   branchRepo,
		validator:    validator,
	}
}

// TaskView is a snapshot paired with its derived status at query time.
type TaskView struct {
	Snapshot domain.TaskSnapshot
	Status   domain.TaskStatus
}

// ListZoneTasks returns the filtered task list for a zone, each task carrying
// its status derived at "now" in the owning branch's timezone. The snapshot is
// always re-fetched in full: after any mutation the caller re-lists instead of
// patching locally.
func (s *TaskService) ListZoneTasks(
	ctx context.Context,
	actorID string,
	zoneID string,
	criteria FilterCriteria,
	now time.Time,
) ([]TaskView, error) {
	actor, err := s.validator.ActiveStaff(ctx, actorID)
	if err != nil {
		return nil, err
	}

	zone, err := s.zoneRepo.GetByID(ctx, zoneID)
	if err != nil {
		return nil, err
	}
	if err := s.validator.RequireBranch(actor, zone.BranchID); err != nil {
		return nil, err
	}

	branch, err := s.branchRepo.GetByID(ctx, zone.BranchID)
	if err != nil {
		return nil, fmt.Errorf("get branch: %w", err)
	}
	loc, err := branch.Location()
	if err != nil {
		return nil, err
	}

	snaps, err := s.taskRepo.ListSnapshotsByZone(ctx, zoneID)
	if err != nil {
		return nil, err
	}

	filtered := FilterTasks(snaps, criteria, loc, now)
	views := make([]TaskView, len(filtered))
	for i, snap := range filtered {
		views[i] = TaskView{
			Snapshot: snap,
			Status:   EvaluateStatus(snap, loc, now),
		}
	}
	return views, nil
}

// SubmittedArtifact is one captured media item being turned into evidence.
type SubmittedArtifact struct {
	FileURL    string
	MediaKind  domain.MediaKind
	CapturedAt time.Time
	Location   *domain.Location
}

// SubmitEvidenceParams carries a whole capture batch.
type SubmitEvidenceParams struct {
	TaskID    string
	StaffID   string
	Artifacts []SubmittedArtifact
	Comment   string
}

// SubmitEvidence persists every artifact of a capture attempt in a single
// transaction. The batch is atomic: the task is never left half-evidenced
// when one artifact fails.
func (s *TaskService) SubmitEvidence(ctx context.Context, params SubmitEvidenceParams) ([]*domain.Evidence, error) {
	if len(params.Artifacts) == 0 {
		return nil, domain.ErrMissingArtifact
	}
	for _, artifact := range params.Artifacts {
		if artifact.FileURL == "" {
			return nil, domain.ErrEmptyFileURL
		}
	}

	staff, err := s.validator.ActiveStaff(ctx, params.StaffID)
	if err != nil {
		return nil, err
	}
	if _, err := s.taskRepo.GetByID(ctx, params.TaskID); err != nil {
		return nil, err
	}
	if _, err := s.validator.TaskBranch(ctx, staff, params.TaskID); err != nil {
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

	records := make([]*domain.Evidence, len(params.Artifacts))
	for i, artifact := range params.Artifacts {
		evidence := &domain.Evidence{
			TaskID:      params.TaskID,
			FileURL:     artifact.FileURL,
			MediaKind:   artifact.MediaKind,
			CapturedAt:  artifact.CapturedAt,
			Location:    artifact.Location,
			Comment:     params.Comment,
			SubmittedBy: params.StaffID,
		}
		if err := s.evidenceRepo.Create(ctx, tx, evidence); err != nil {
			return nil, err
		}
		records[i] = evidence
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	slog.Info("evidence submitted",
		"task_id", params.TaskID,
		"staff_id", params.StaffID,
		"artifacts", len(records),
	)

	return records, nil
}

// AddEvidenceComments appends the same post-submission remark to every
// evidence record of a capture batch in a single transaction. A retry after a
// failure can therefore never leave duplicate remarks on part of the batch.
func (s *TaskService) AddEvidenceComments(ctx context.Context, evidenceIDs []string, authorID, body string) ([]*domain.EvidenceComment, error) {
	if body == "" {
		return nil, domain.ErrEmptyComment
	}
	if len(evidenceIDs) == 0 {
		return nil, domain.ErrEvidenceNotFound
	}

	if _, err := s.validator.ActiveStaff(ctx, authorID); err != nil {
		return nil, err
	}
	for _, evidenceID := range evidenceIDs {
		if _, err := s.evidenceRepo.GetByID(ctx, evidenceID); err != nil {
			return nil, err
		}
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

	comments := make([]*domain.EvidenceComment, len(evidenceIDs))
	for i, evidenceID := range evidenceIDs {
		comment := &domain.EvidenceComment{
			EvidenceID: evidenceID,
			Body:       body,
			AuthorID:   authorID,
		}
		if err := s.evidenceRepo.AddComment(ctx, tx, comment); err != nil {
			return nil, err
		}
		comments[i] = comment
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	slog.Info("evidence comments added",
		"evidence_count", len(comments),
		"author_id", authorID,
	)

	return comments, nil
}
