package service

import (
	"strings"
	"time"

	"github.com/taskproof/taskproof/internal/domain"
)

// StatusFilter narrows a task list by derived status.
type StatusFilter string

const (
	StatusFilterAll       StatusFilter = "ALL"
	StatusFilterCompleted StatusFilter = "COMPLETED"
	StatusFilterPending   StatusFilter = "PENDING"
	StatusFilterLate      StatusFilter = "LATE"
)

// IsValid checks if the filter is one of the allowed values.
func (f StatusFilter) IsValid() bool {
	switch f {
	case StatusFilterAll, StatusFilterCompleted, StatusFilterPending, StatusFilterLate:
		return true
	default:
		return false
	}
}

// StaffFilter narrows a task list by assignee. Besides the two reserved
// values it holds a stable staff identifier, never a display name: names are
// presentation labels resolved after filtering.
type StaffFilter string

const (
	StaffFilterAll        StaffFilter = "ALL"
	StaffFilterUnassigned StaffFilter = "UNASSIGNED"
)

// FilterCriteria combines the three task-list predicates with logical AND.
type FilterCriteria struct {
	Query  string
	Status StatusFilter
	Staff  StaffFilter
}

// FilterTasks narrows a task snapshot list. It is pure, order-preserving and
// always returns a subset of its input, so results may be memoized on
// (snapshots, criteria, now).
func FilterTasks(
	snaps []domain.TaskSnapshot,
	criteria FilterCriteria,
	loc *time.Location,
	now time.Time,
) []domain.TaskSnapshot {
	query := strings.ToLower(strings.TrimSpace(criteria.Query))

	out := make([]domain.TaskSnapshot, 0, len(snaps))
	for _, snap := range snaps {
		if query != "" && !strings.Contains(strings.ToLower(snap.Task.Title), query) {
			continue
		}
		if !matchesStatus(snap, criteria.Status, loc, now) {
			continue
		}
		if !matchesStaff(snap.Task, criteria.Staff) {
			continue
		}
		out = append(out, snap)
	}
	return out
}

func matchesStatus(snap domain.TaskSnapshot, f StatusFilter, loc *time.Location, now time.Time) bool {
	if f == "" || f == StatusFilterAll {
		return true
	}
	status := EvaluateStatus(snap, loc, now)
	switch f {
	case StatusFilterCompleted:
		return status == domain.TaskStatusDone
	case StatusFilterPending:
		return status == domain.TaskStatusPending
	case StatusFilterLate:
		return status == domain.TaskStatusLate
	default:
		return true
	}
}

func matchesStaff(task domain.Task, f StaffFilter) bool {
	switch f {
	case "", StaffFilterAll:
		return true
	case StaffFilterUnassigned:
		return task.AssigneeID == nil
	default:
		return task.AssigneeID != nil && *task.AssigneeID == string(f)
	}
}
