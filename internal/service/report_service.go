package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/taskproof/taskproof/internal/domain"
	"github.com/taskproof/taskproof/internal/repository"
)

// ReportService handles blocking-issue reports filed against tasks.
type ReportService struct {
	reportRepo *repository.ReportRepository
	taskRepo   *repository.TaskRepository
	validator  *Validator
}

// NewReportService creates a new ReportService.
func NewReportService(
	reportRepo *repository.ReportRepository,
	taskRepo *repository.TaskRepository,
	validator *Validator,
) *ReportService {
	return &ReportService{
		reportRepo: reportRepo,
		taskRepo:   taskRepo,
		validator:  validator,
	}
}

// FileReport records why a task could not be completed. Filing a report does
// not change the task's derived status; an unevidenced task stays Pending or
// Late. Manager notification is delegated to the notification pipeline.
func (s *ReportService) FileReport(ctx context.Context, taskID, staffID, reason string) (*domain.Report, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, domain.ErrEmptyReason
	}

	staff, err := s.validator.ActiveStaff(ctx, staffID)
	if err != nil {
		return nil, err
	}
	if _, err := s.taskRepo.GetByID(ctx, taskID); err != nil {
		return nil, err
	}
	if _, err := s.validator.TaskBranch(ctx, staff, taskID); err != nil {
		return nil, err
	}

	report := &domain.Report{
		TaskID:  taskID,
		Reason:  reason,
		FiledBy: staffID,
	}
	if err := s.reportRepo.Create(ctx, report); err != nil {
		return nil, err
	}

	slog.Info("report filed",
		"report_id", report.ID,
		"task_id", taskID,
		"staff_id", staffID,
	)

	return report, nil
}

// ListTaskReports returns every report filed against a task, newest first.
func (s *ReportService) ListTaskReports(ctx context.Context, actorID, taskID string) ([]*domain.Report, error) {
	actor, err := s.validator.ActiveStaff(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if _, err := s.validator.TaskBranch(ctx, actor, taskID); err != nil {
		return nil, err
	}

	return s.reportRepo.ListByTask(ctx, taskID)
}
