package service

import (
	"context"
	"time"

	"github.com/taskproof/taskproof/internal/domain"
	"github.com/taskproof/taskproof/internal/repository"
)

// HistoryService serves the read-only compliance history views.
type HistoryService struct {
	zoneRepo     *repository.ZoneRepository
	branchRepo   *repository.BranchRepository
	taskRepo     *repository.TaskRepository
	evidenceRepo *repository.EvidenceRepository
	validator    *Validator
}

// NewHistoryService creates a new HistoryService.
func NewHistoryService(
	zoneRepo *repository.ZoneRepository,
	branchRepo *repository.BranchRepository,
	taskRepo *repository.TaskRepository,
	evidenceRepo *repository.EvidenceRepository,
	validator *Validator,
) *HistoryService {
	return &HistoryService{
		zoneRepo:     zoneRepo,
		branchRepo:   branchRepo,
		taskRepo:     taskRepo,
		evidenceRepo: evidenceRepo,
		validator:    validator,
	}
}

// TaskDayRecord is one task's outcome for a historical date.
type TaskDayRecord struct {
	TaskID       string
	Title        string
	AssigneeName *string
	Status       domain.DayStatus
	CompletedAt  *time.Time
}

// DayStats aggregates a zone's outcomes for one date.
type DayStats struct {
	Completed int
	Missed    int
	Total     int
}

// ZoneDayHistory is the per-date compliance view of a zone.
type ZoneDayHistory struct {
	Date  time.Time
	Tasks []TaskDayRecord
	Stats DayStats
}

// ZoneHistory reports, for a past date, which of the zone's scheduled tasks
// were evidenced and which were missed. Days are bounded in the branch's
// timezone; tasks not scheduled on that weekday are omitted entirely rather
// than counted as missed.
func (s *HistoryService) ZoneHistory(ctx context.Context, actorID, zoneID string, date time.Time) (*ZoneDayHistory, error) {
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
		return nil, err
	}
	loc, err := branch.Location()
	if err != nil {
		return nil, err
	}

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
	dayEnd := dayStart.AddDate(0, 0, 1)

	rows, err := s.taskRepo.ListZoneDay(ctx, zoneID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	history := &ZoneDayHistory{Date: dayStart}
	for _, row := range rows {
		if !row.Days.ScheduledOn(dayStart.Weekday()) {
			continue
		}

		record := TaskDayRecord{
			TaskID:       row.TaskID,
			Title:        row.Title,
			AssigneeName: row.AssigneeName,
			CompletedAt:  row.CompletedAt,
		}
		if row.Done {
			record.Status = domain.DayStatusDone
			history.Stats.Completed++
		} else {
			record.Status = domain.DayStatusMissed
			history.Stats.Missed++
		}
		history.Stats.Total++
		history.Tasks = append(history.Tasks, record)
	}

	return history, nil
}

// TaskHistory returns the full evidence trail of a task, oldest first, with
// submitter names resolved.
func (s *HistoryService) TaskHistory(ctx context.Context, actorID, taskID string) ([]domain.EvidenceRecord, error) {
	actor, err := s.validator.ActiveStaff(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if _, err := s.taskRepo.GetByID(ctx, taskID); err != nil {
		return nil, err
	}
	if _, err := s.validator.TaskBranch(ctx, actor, taskID); err != nil {
		return nil, err
	}

	return s.evidenceRepo.ListByTask(ctx, taskID)
}
