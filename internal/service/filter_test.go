package service_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskproof/taskproof/internal/domain"
	"github.com/taskproof/taskproof/internal/service"
)

func strPtr(s string) *string { return &s }

func fixtureSnapshots(t *testing.T) []domain.TaskSnapshot {
	t.Helper()
	doneAt := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	return []domain.TaskSnapshot{
		{
			Task: domain.Task{
				ID:           "task-1",
				Title:        "Mop kitchen floor",
				EvidenceKind: domain.EvidenceKindPhoto,
				AssigneeID:   strPtr("staff-carlos"),
			},
			AssigneeName:   strPtr("Carlos"),
			LastEvidenceAt: &doneAt,
		},
		{
			Task: domain.Task{
				ID:           "task-2",
				Title:        "Sanitize prep tables",
				EvidenceKind: domain.EvidenceKindPhoto,
				LimitTime:    limitTime(t, "10:00"),
				AssigneeID:   strPtr("staff-ana"),
			},
			AssigneeName: strPtr("Ana"),
		},
		{
			Task: domain.Task{
				ID:           "task-3",
				Title:        "Check freezer temperature",
				EvidenceKind: domain.EvidenceKindVideo,
			},
		},
	}
}

func TestFilterTasks_EmptyCriteriaIsIdentity(t *testing.T) {
	now := time.Date(2026, 3, 2, 15, 0, 0, 0, time.UTC)
	snaps := fixtureSnapshots(t)

	got := service.FilterTasks(snaps, service.FilterCriteria{
		Query:  "",
		Status: service.StatusFilterAll,
		Staff:  service.StaffFilterAll,
	}, time.UTC, now)

	require.Len(t, got, len(snaps))
	for i := range snaps {
		assert.Equal(t, snaps[i].Task.ID, got[i].Task.ID, "order must be preserved")
	}
}

func TestFilterTasks_QueryIsCaseInsensitiveSubstring(t *testing.T) {
	now := time.Date(2026, 3, 2, 15, 0, 0, 0, time.UTC)

	got := service.FilterTasks(fixtureSnapshots(t), service.FilterCriteria{Query: "FREEZER"}, time.UTC, now)

	require.Len(t, got, 1)
	assert.Equal(t, "task-3", got[0].Task.ID)
}

func TestFilterTasks_ByStatus(t *testing.T) {
	now := time.Date(2026, 3, 2, 15, 0, 0, 0, time.UTC)
	snaps := fixtureSnapshots(t)

	tests := []struct {
		status  service.StatusFilter
		wantIDs []string
	}{
		{service.StatusFilterCompleted, []string{"task-1"}},
		{service.StatusFilterLate, []string{"task-2"}},
		{service.StatusFilterPending, []string{"task-3"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			got := service.FilterTasks(snaps, service.FilterCriteria{Status: tt.status}, time.UTC, now)
			ids := make([]string, len(got))
			for i, snap := range got {
				ids[i] = snap.Task.ID
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestFilterTasks_ByStaffID(t *testing.T) {
	now := time.Date(2026, 3, 2, 15, 0, 0, 0, time.UTC)
	snaps := fixtureSnapshots(t)

	got := service.FilterTasks(snaps, service.FilterCriteria{Staff: service.StaffFilter("staff-ana")}, time.UTC, now)
	require.Len(t, got, 1)
	assert.Equal(t, "task-2", got[0].Task.ID)

	got = service.FilterTasks(snaps, service.FilterCriteria{Staff: service.StaffFilterUnassigned}, time.UTC, now)
	require.Len(t, got, 1)
	assert.Equal(t, "task-3", got[0].Task.ID)
}

func TestFilterTasks_PredicatesCombineWithAnd(t *testing.T) {
	now := time.Date(2026, 3, 2, 15, 0, 0, 0, time.UTC)
	snaps := fixtureSnapshots(t)

	got := service.FilterTasks(snaps, service.FilterCriteria{
		Query:  "tables",
		Status: service.StatusFilterLate,
		Staff:  service.StaffFilter("staff-ana"),
	}, time.UTC, now)
	require.Len(t, got, 1)
	assert.Equal(t, "task-2", got[0].Task.ID)

	// Same query but wrong status: no matches, never synthesized entries.
	got = service.FilterTasks(snaps, service.FilterCriteria{
		Query:  "tables",
		Status: service.StatusFilterCompleted,
	}, time.UTC, now)
	assert.Empty(t, got)
}
