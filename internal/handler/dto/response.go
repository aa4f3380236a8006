package dto

import (
	"time"

	"github.com/taskproof/taskproof/internal/capture"
	"github.com/taskproof/taskproof/internal/domain"
	"github.com/taskproof/taskproof/internal/service"
)

// TaskListItem is one task row in the zone list view.
type TaskListItem struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	LimitTime      *string    `json:"limit_time"`
	EvidenceKind   string     `json:"evidence_kind"`
	Days           []string   `json:"days"`
	Status         string     `json:"status"`
	AssigneeID     *string    `json:"assignee_id"`
	AssigneeName   *string    `json:"assignee_name"`
	LastEvidenceAt *time.Time `json:"last_evidence_at"`
	Position       int        `json:"position"`
}

// ZoneTasksResponse represents the response for GET /zones/{id}/tasks.
type ZoneTasksResponse struct {
	Tasks []TaskListItem `json:"tasks"`
	Total int            `json:"total"`
}

// ToTaskListItem converts a service.TaskView to its wire form.
func ToTaskListItem(view service.TaskView) TaskListItem {
	task := view.Snapshot.Task

	var limitTime *string
	if task.LimitTime != nil {
		s := task.LimitTime.String()
		limitTime = &s
	}

	days := make([]string, len(task.Days))
	for i, d := range task.Days {
		days[i] = string(d)
	}

	return TaskListItem{
		ID:             task.ID,
		Title:          task.Title,
		Description:    task.Description,
		LimitTime:      limitTime,
		EvidenceKind:   string(task.EvidenceKind),
		Days:           days,
		Status:         string(view.Status),
		AssigneeID:     task.AssigneeID,
		AssigneeName:   view.Snapshot.AssigneeName,
		LastEvidenceAt: view.Snapshot.LastEvidenceAt,
		Position:       task.Position,
	}
}

// ToZoneTasksResponse converts a list of task views.
func ToZoneTasksResponse(views []service.TaskView) ZoneTasksResponse {
	items := make([]TaskListItem, len(views))
	for i, view := range views {
		items[i] = ToTaskListItem(view)
	}
	return ZoneTasksResponse{Tasks: items, Total: len(items)}
}

// LocationInfo is a device location on the wire.
type LocationInfo struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// ArtifactInfo is one captured artifact of a live attempt.
type ArtifactInfo struct {
	FileURL    string        `json:"file_url"`
	CapturedAt time.Time     `json:"captured_at"`
	Location   *LocationInfo `json:"location,omitempty"`
}

// CaptureSessionResponse represents the live capture attempt for a task.
type CaptureSessionResponse struct {
	TaskID      string        `json:"task_id"`
	State       string        `json:"state"`
	Kind        string        `json:"kind"`
	Photo       *ArtifactInfo `json:"photo,omitempty"`
	Video       *ArtifactInfo `json:"video,omitempty"`
	EvidenceIDs []string      `json:"evidence_ids,omitempty"`
}

func toArtifactInfo(a *capture.Artifact) *ArtifactInfo {
	if a == nil {
		return nil
	}
	info := &ArtifactInfo{
		FileURL:    a.FileURL,
		CapturedAt: a.CapturedAt,
	}
	if a.Location != nil {
		info.Location = &LocationInfo{
			Latitude:  a.Location.Latitude,
			Longitude: a.Location.Longitude,
		}
	}
	return info
}

// ToCaptureSessionResponse converts a capture session to its wire form.
func ToCaptureSessionResponse(sess capture.Session) CaptureSessionResponse {
	return CaptureSessionResponse{
		TaskID:      sess.TaskID,
		State:       string(sess.State),
		Kind:        string(sess.Kind),
		Photo:       toArtifactInfo(sess.Photo),
		Video:       toArtifactInfo(sess.Video),
		EvidenceIDs: sess.EvidenceIDs,
	}
}

// StaffResponse represents a staff member.
type StaffResponse struct {
	ID        string  `json:"id"`
	BranchID  string  `json:"branch_id"`
	Name      string  `json:"name"`
	PhotoURL  *string `json:"photo_url"`
	Role      string  `json:"role"`
	IsOffline bool    `json:"is_offline"`
}

// ToStaffResponse converts a domain.Staff. Token and access-code hash never
// leave the server through this view.
func ToStaffResponse(staff *domain.Staff) StaffResponse {
	return StaffResponse{
		ID:        staff.ID,
		BranchID:  staff.BranchID,
		Name:      staff.Name,
		PhotoURL:  staff.PhotoURL,
		Role:      string(staff.Role),
		IsOffline: staff.IsOffline,
	}
}

// StaffListResponse represents the response for GET /branches/{id}/staff.
type StaffListResponse struct {
	Staff []StaffResponse `json:"staff"`
	Total int             `json:"total"`
}

// ToStaffListResponse converts a staff list.
func ToStaffListResponse(members []*domain.Staff) StaffListResponse {
	out := make([]StaffResponse, len(members))
	for i, member := range members {
		out[i] = ToStaffResponse(member)
	}
	return StaffListResponse{Staff: out, Total: len(out)}
}

// ProvisionedStaffResponse carries the new offline identity and its access
// code. The code appears in this response exactly once and is not
// recoverable afterwards.
type ProvisionedStaffResponse struct {
	Staff      StaffResponse `json:"staff"`
	AccessCode string        `json:"access_code"`
}

// ToProvisionedStaffResponse converts a provisioning result.
func ToProvisionedStaffResponse(p *service.ProvisionedStaff) ProvisionedStaffResponse {
	return ProvisionedStaffResponse{
		Staff:      ToStaffResponse(p.Staff),
		AccessCode: p.AccessCode,
	}
}

// InvitationResponse represents a pending invitation.
type InvitationResponse struct {
	ID             string    `json:"id"`
	BranchID       string    `json:"branch_id"`
	Email          string    `json:"email"`
	Name           string    `json:"name"`
	JobTitle       string    `json:"job_title,omitempty"`
	Phone          string    `json:"phone,omitempty"`
	AssignedTaskID *string   `json:"assigned_task_id,omitempty"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

// ToInvitationResponse converts a domain.Invitation.
func ToInvitationResponse(inv *domain.Invitation) InvitationResponse {
	return InvitationResponse{
		ID:             inv.ID,
		BranchID:       inv.BranchID,
		Email:          inv.Email,
		Name:           inv.Name,
		JobTitle:       inv.JobTitle,
		Phone:          inv.Phone,
		AssignedTaskID: inv.AssignedTaskID,
		Status:         string(inv.Status),
		CreatedAt:      inv.CreatedAt,
	}
}

// ReportResponse represents a blocking-issue report.
type ReportResponse struct {
	ID        string    `json:"id"`
	TaskID    string    `json:"task_id"`
	Reason    string    `json:"reason"`
	FiledBy   string    `json:"filed_by"`
	CreatedAt time.Time `json:"created_at"`
}

// ToReportResponse converts a domain.Report.
func ToReportResponse(report *domain.Report) ReportResponse {
	return ReportResponse{
		ID:        report.ID,
		TaskID:    report.TaskID,
		Reason:    report.Reason,
		FiledBy:   report.FiledBy,
		CreatedAt: report.CreatedAt,
	}
}

// ReportsListResponse represents the response for GET /tasks/{id}/reports.
type ReportsListResponse struct {
	Reports []ReportResponse `json:"reports"`
	Total   int              `json:"total"`
}

// ToReportsListResponse converts a report list.
func ToReportsListResponse(reports []*domain.Report) ReportsListResponse {
	out := make([]ReportResponse, len(reports))
	for i, report := range reports {
		out[i] = ToReportResponse(report)
	}
	return ReportsListResponse{Reports: out, Total: len(out)}
}

// EvidenceInfo is one evidence record in the task history trail.
type EvidenceInfo struct {
	ID            string        `json:"id"`
	FileURL       string        `json:"file_url"`
	MediaKind     string        `json:"media_kind"`
	CapturedAt    time.Time     `json:"captured_at"`
	Location      *LocationInfo `json:"location,omitempty"`
	Comment       string        `json:"comment,omitempty"`
	SubmitterName string        `json:"submitter_name"`
}

// TaskHistoryResponse represents the response for GET /tasks/{id}/history.
type TaskHistoryResponse struct {
	Evidence []EvidenceInfo `json:"evidence"`
	Total    int            `json:"total"`
}

// ToTaskHistoryResponse converts an evidence trail.
func ToTaskHistoryResponse(records []domain.EvidenceRecord) TaskHistoryResponse {
	out := make([]EvidenceInfo, len(records))
	for i, record := range records {
		info := EvidenceInfo{
			ID:            record.Evidence.ID,
			FileURL:       record.Evidence.FileURL,
			MediaKind:     string(record.Evidence.MediaKind),
			CapturedAt:    record.Evidence.CapturedAt,
			Comment:       record.Evidence.Comment,
			SubmitterName: record.SubmitterName,
		}
		if record.Evidence.Location != nil {
			info.Location = &LocationInfo{
				Latitude:  record.Evidence.Location.Latitude,
				Longitude: record.Evidence.Location.Longitude,
			}
		}
		out[i] = info
	}
	return TaskHistoryResponse{Evidence: out, Total: len(out)}
}

// DayTaskInfo is one task's outcome for a historical date.
type DayTaskInfo struct {
	TaskID       string     `json:"task_id"`
	Title        string     `json:"title"`
	AssigneeName *string    `json:"assignee_name"`
	Status       string     `json:"status"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
}

// DayStatsInfo aggregates a zone's outcomes for one date.
type DayStatsInfo struct {
	Completed int `json:"completed"`
	Missed    int `json:"missed"`
	Total     int `json:"total"`
}

// ZoneHistoryResponse represents the response for GET /zones/{id}/history.
type ZoneHistoryResponse struct {
	Date  string        `json:"date"`
	Tasks []DayTaskInfo `json:"tasks"`
	Stats DayStatsInfo  `json:"stats"`
}

// ToZoneHistoryResponse converts a zone day history.
func ToZoneHistoryResponse(history *service.ZoneDayHistory) ZoneHistoryResponse {
	tasks := make([]DayTaskInfo, len(history.Tasks))
	for i, record := range history.Tasks {
		tasks[i] = DayTaskInfo{
			TaskID:       record.TaskID,
			Title:        record.Title,
			AssigneeName: record.AssigneeName,
			Status:       string(record.Status),
			CompletedAt:  record.CompletedAt,
		}
	}
	return ZoneHistoryResponse{
		Date:  history.Date.Format("2006-01-02"),
		Tasks: tasks,
		Stats: DayStatsInfo{
			Completed: history.Stats.Completed,
			Missed:    history.Stats.Missed,
			Total:     history.Stats.Total,
		},
	}
}
