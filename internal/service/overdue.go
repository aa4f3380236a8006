package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/taskproof/taskproof/internal/domain"
	"github.com/taskproof/taskproof/internal/repository"
)

// OverdueTask is one task found Late by the sweep.
type OverdueTask struct {
	TaskID     string
	Title      string
	BranchID   string
	BranchName string
	Deadline   string
	Assignee   *string
}

// OverdueSweeper periodically scans every branch for tasks past their limit
// time without evidence for the current branch-local day.
type OverdueSweeper struct {
	branchRepo *repository.BranchRepository
	taskRepo   *repository.TaskRepository
}

// NewOverdueSweeper creates a new OverdueSweeper.
func NewOverdueSweeper(branchRepo *repository.BranchRepository, taskRepo *repository.TaskRepository) *OverdueSweeper {
	return &OverdueSweeper{
		branchRepo: branchRepo,
		taskRepo:   taskRepo,
	}
}

// Sweep evaluates every task of every branch at "now" and returns those that
// are Late. Each branch is evaluated in its own timezone.
func (s *OverdueSweeper) Sweep(ctx context.Context, now time.Time) ([]OverdueTask, error) {
	branches, err := s.branchRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	var overdue []OverdueTask
	for _, branch := range branches {
		loc, err := branch.Location()
		if err != nil {
			slog.Error("skipping branch with invalid timezone",
				"branch_id", branch.ID,
				"timezone", branch.Timezone,
				"error", err,
			)
			continue
		}

		snaps, err := s.taskRepo.ListSnapshotsByBranch(ctx, branch.ID)
		if err != nil {
			return nil, err
		}

		var lateCount int
		for _, snap := range snaps {
			if EvaluateStatus(snap, loc, now) != domain.TaskStatusLate {
				continue
			}
			lateCount++
			overdue = append(overdue, OverdueTask{
				TaskID:     snap.Task.ID,
				Title:      snap.Task.Title,
				BranchID:   branch.ID,
				BranchName: branch.Name,
				Deadline:   snap.Task.LimitTime.String(),
				Assignee:   snap.AssigneeName,
			})
		}

		slog.Info("overdue sweep completed for branch",
			"branch_id", branch.ID,
			"branch", branch.Name,
			"late_tasks", lateCount,
		)
	}

	return overdue, nil
}
