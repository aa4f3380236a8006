package service_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskproof/taskproof/internal/domain"
	"github.com/taskproof/taskproof/internal/service"
)

func limitTime(t *testing.T, s string) *domain.LimitTime {
	t.Helper()
	lt, err := domain.ParseLimitTime(s)
	require.NoError(t, err)
	return lt
}

func snapshot(lt *domain.LimitTime, lastEvidenceAt *time.Time) domain.TaskSnapshot {
	return domain.TaskSnapshot{
		Task: domain.Task{
			ID:           "task-1",
			Title:        "Degrease fryer",
			LimitTime:    lt,
			EvidenceKind: domain.EvidenceKindPhoto,
		},
		LastEvidenceAt: lastEvidenceAt,
	}
}

func TestEvaluateStatus(t *testing.T) {
	// Monday 2026-03-02.
	now := time.Date(2026, 3, 2, 15, 0, 0, 0, time.UTC)
	earlier := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	yesterday := now.AddDate(0, 0, -1)

	tests := []struct {
		name string
		snap domain.TaskSnapshot
		now  time.Time
		want domain.TaskStatus
	}{
		{
			name: "evidence today wins regardless of deadline",
			snap: snapshot(limitTime(t, "14:00"), &earlier),
			now:  now,
			want: domain.TaskStatusDone,
		},
		{
			name: "evidence after the deadline still counts as done",
			snap: snapshot(limitTime(t, "08:00"), &earlier),
			now:  now,
			want: domain.TaskStatusDone,
		},
		{
			name: "no evidence past deadline is late",
			snap: snapshot(limitTime(t, "14:00"), nil),
			now:  now,
			want: domain.TaskStatusLate,
		},
		{
			name: "no evidence before deadline is pending",
			snap: snapshot(limitTime(t, "16:00"), nil),
			now:  now,
			want: domain.TaskStatusPending,
		},
		{
			name: "no deadline can never be late",
			snap: snapshot(nil, nil),
			now:  time.Date(2026, 3, 2, 23, 59, 0, 0, time.UTC),
			want: domain.TaskStatusPending,
		},
		{
			name: "yesterday's evidence does not carry over",
			snap: snapshot(limitTime(t, "14:00"), &yesterday),
			now:  now,
			want: domain.TaskStatusLate,
		},
		{
			name: "exactly at the deadline is still pending",
			snap: snapshot(limitTime(t, "15:00"), nil),
			now:  now,
			want: domain.TaskStatusPending,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := service.EvaluateStatus(tt.snap, time.UTC, tt.now)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEvaluateStatus_OffDayIsNeverLate(t *testing.T) {
	// Monday, but the task only recurs on Friday.
	now := time.Date(2026, 3, 2, 18, 0, 0, 0, time.UTC)
	snap := snapshot(limitTime(t, "14:00"), nil)
	snap.Task.Days = domain.WeekdaySet{domain.WeekdayFriday}

	got := service.EvaluateStatus(snap, time.UTC, now)
	assert.Equal(t, domain.TaskStatusPending, got)
}

func TestEvaluateStatus_BranchTimezone(t *testing.T) {
	loc, err := time.LoadLocation("America/Mexico_City")
	require.NoError(t, err)

	// 19:00 UTC is 13:00 in Mexico City: not yet past a 14:00 deadline there.
	now := time.Date(2026, 3, 2, 19, 0, 0, 0, time.UTC)
	snap := snapshot(limitTime(t, "14:00"), nil)

	assert.Equal(t, domain.TaskStatusPending, service.EvaluateStatus(snap, loc, now))
	assert.Equal(t, domain.TaskStatusLate, service.EvaluateStatus(snap, time.UTC, now))
}
