package service

import (
	"time"

	"github.com/taskproof/taskproof/internal/domain"
)

// EvaluateStatus derives the live status of a task at a point in time.
// Priority order, first match wins:
//  1. evidence submitted in the current branch-local day -> DONE,
//     regardless of time: proof of work always overrides timing;
//  2. a deadline is set, the task recurs on today's weekday, and the
//     branch-local time of day is past it -> LATE;
//  3. otherwise -> PENDING.
//
// A task with no limit time can never be late. Pure computation, no I/O.
func EvaluateStatus(snap domain.TaskSnapshot, loc *time.Location, now time.Time) domain.TaskStatus {
	localNow := now.In(loc)

	if snap.LastEvidenceAt != nil && sameDay(snap.LastEvidenceAt.In(loc), localNow) {
		return domain.TaskStatusDone
	}

	if snap.Task.LimitTime != nil &&
		snap.Task.Days.ScheduledOn(localNow.Weekday()) &&
		snap.Task.LimitTime.PassedAt(localNow) {
		return domain.TaskStatusLate
	}

	return domain.TaskStatusPending
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
