package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/suite"

	"github.com/taskproof/taskproof/internal/database"
	"github.com/taskproof/taskproof/internal/handler"
	"github.com/taskproof/taskproof/internal/handler/dto"
)

type HandlerTestSuite struct {
	suite.Suite
	pool *pgxpool.Pool
	mux  *http.ServeMux

	// Test fixtures
	branch1ID     string
	branch2ID     string
	zone1ID       string
	managerID     string
	managerToken  string
	operatorID    string
	operatorToken string
	outsiderToken string
	task1ID       string
	task2ID       string
}

func (s *HandlerTestSuite) SetupSuite() {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		s.T().Skip("DATABASE_URL not set, skipping integration tests")
	}

	ctx := context.Background()
	db, err := database.New(ctx, databaseURL)
	s.Require().NoError(err)
	s.pool = db.Pool()

	err = database.RunMigrations(ctx, s.pool)
	s.Require().NoError(err)
}

func (s *HandlerTestSuite) SetupTest() {
	ctx := context.Background()

	// The capture service keeps attempts in memory, so each test gets a
	// fresh handler along with a fresh database.
	h := handler.New(s.pool)
	s.mux = http.NewServeMux()
	h.RegisterRoutes(s.mux)

	_, err := s.pool.Exec(ctx,
		"TRUNCATE branches, zones, staff, staff_invitations, tasks, evidence, evidence_comments, reports CASCADE")
	s.Require().NoError(err)

	_, err = s.pool.Exec(ctx, `
		INSERT INTO branches (id, name, timezone)
		VALUES
			('00000000-0000-0000-0000-000000000001', 'Downtown', 'UTC'),
			('00000000-0000-0000-0000-000000000002', 'Airport', 'UTC')
	`)
	s.Require().NoError(err)
	s.branch1ID = "00000000-0000-0000-0000-000000000001"
	s.branch2ID = "00000000-0000-0000-0000-000000000002"

	_, err = s.pool.Exec(ctx, `
		INSERT INTO zones (id, branch_id, name, position)
		VALUES ('00000000-0000-0000-0000-000000000011', $1, 'Kitchen', 0)
	`, s.branch1ID)
	s.Require().NoError(err)
	s.zone1ID = "00000000-0000-0000-0000-000000000011"

	_, err = s.pool.Exec(ctx, `
		INSERT INTO staff (id, branch_id, name, role, token, is_active)
		VALUES
			('00000000-0000-0000-0000-000000000021', $1, 'Maria Lopez', 'manager', 'token-manager', true),
			('00000000-0000-0000-0000-000000000022', $1, 'Ivan Petrov', 'operator', 'token-operator', true),
			('00000000-0000-0000-0000-000000000023', $2, 'Outside Op', 'operator', 'token-outsider', true)
	`, s.branch1ID, s.branch2ID)
	s.Require().NoError(err)
	s.managerID = "00000000-0000-0000-0000-000000000021"
	s.managerToken = "token-manager"
	s.operatorID = "00000000-0000-0000-0000-000000000022"
	s.operatorToken = "token-operator"
	s.outsiderToken = "token-outsider"

	_, err = s.pool.Exec(ctx, `
		INSERT INTO tasks (id, zone_id, title, evidence_kind, days, limit_time, position)
		VALUES
			('00000000-0000-0000-0000-000000000031', $1, 'Clean fryer', 'PHOTO', '{}', NULL, 0),
			('00000000-0000-0000-0000-000000000032', $1, 'Sanitize sink', 'BOTH', '{}', '23:59', 1)
	`, s.zone1ID)
	s.Require().NoError(err)
	s.task1ID = "00000000-0000-0000-0000-000000000031"
	s.task2ID = "00000000-0000-0000-0000-000000000032"
}

func (s *HandlerTestSuite) TearDownSuite() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

func (s *HandlerTestSuite) doRequest(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	s.mux.ServeHTTP(rec, req)
	return rec
}

func (s *HandlerTestSuite) decode(rec *httptest.ResponseRecorder, out interface{}) {
	s.Require().NoError(json.NewDecoder(rec.Body).Decode(out))
}

func (s *HandlerTestSuite) TestListZoneTasks() {
	rec := s.doRequest(http.MethodGet, "/api/v1/zones/"+s.zone1ID+"/tasks", s.operatorToken, nil)
	s.Require().Equal(http.StatusOK, rec.Code)

	var resp dto.ZoneTasksResponse
	s.decode(rec, &resp)
	s.Require().Equal(2, resp.Total)
	s.Equal("Clean fryer", resp.Tasks[0].Title)
	s.Equal("PENDING", resp.Tasks[0].Status)
	s.Equal("23:59", *resp.Tasks[1].LimitTime)
}

func (s *HandlerTestSuite) TestListZoneTasksFilters() {
	// Search is a case-insensitive substring on the title.
	rec := s.doRequest(http.MethodGet, "/api/v1/zones/"+s.zone1ID+"/tasks?query=FRYER", s.operatorToken, nil)
	s.Require().Equal(http.StatusOK, rec.Code)

	var resp dto.ZoneTasksResponse
	s.decode(rec, &resp)
	s.Require().Equal(1, resp.Total)
	s.Equal(s.task1ID, resp.Tasks[0].ID)

	// Unknown status filter values are rejected.
	rec = s.doRequest(http.MethodGet, "/api/v1/zones/"+s.zone1ID+"/tasks?status=BOGUS", s.operatorToken, nil)
	s.Equal(http.StatusUnprocessableEntity, rec.Code)

	// Every task is unassigned in the fixture.
	rec = s.doRequest(http.MethodGet, "/api/v1/zones/"+s.zone1ID+"/tasks?staff=UNASSIGNED", s.operatorToken, nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.decode(rec, &resp)
	s.Equal(2, resp.Total)
}

func (s *HandlerTestSuite) TestListZoneTasksCrossBranchDenied() {
	rec := s.doRequest(http.MethodGet, "/api/v1/zones/"+s.zone1ID+"/tasks", s.outsiderToken, nil)
	s.Equal(http.StatusForbidden, rec.Code)
}

func (s *HandlerTestSuite) TestAuthRequired() {
	rec := s.doRequest(http.MethodGet, "/api/v1/zones/"+s.zone1ID+"/tasks", "", nil)
	s.Equal(http.StatusUnauthorized, rec.Code)

	rec = s.doRequest(http.MethodGet, "/api/v1/zones/"+s.zone1ID+"/tasks", "bad-token", nil)
	s.Equal(http.StatusUnauthorized, rec.Code)
}

func (s *HandlerTestSuite) TestAssignTask() {
	rec := s.doRequest(http.MethodPut, "/api/v1/tasks/"+s.task1ID+"/assignee", s.managerToken,
		dto.AssignTaskRequest{StaffID: &s.operatorID})
	s.Require().Equal(http.StatusNoContent, rec.Code)

	var listResp dto.ZoneTasksResponse
	listRec := s.doRequest(http.MethodGet, "/api/v1/zones/"+s.zone1ID+"/tasks?staff="+s.operatorID, s.managerToken, nil)
	s.Require().Equal(http.StatusOK, listRec.Code)
	s.decode(listRec, &listResp)
	s.Require().Equal(1, listResp.Total)
	s.Equal("Ivan Petrov", *listResp.Tasks[0].AssigneeName)

	// Clearing twice is idempotent.
	rec = s.doRequest(http.MethodPut, "/api/v1/tasks/"+s.task1ID+"/assignee", s.managerToken,
		dto.AssignTaskRequest{StaffID: nil})
	s.Equal(http.StatusNoContent, rec.Code)
	rec = s.doRequest(http.MethodPut, "/api/v1/tasks/"+s.task1ID+"/assignee", s.managerToken,
		dto.AssignTaskRequest{StaffID: nil})
	s.Equal(http.StatusNoContent, rec.Code)
}

func (s *HandlerTestSuite) TestAssignTaskOperatorForbidden() {
	rec := s.doRequest(http.MethodPut, "/api/v1/tasks/"+s.task1ID+"/assignee", s.operatorToken,
		dto.AssignTaskRequest{StaffID: &s.operatorID})
	s.Equal(http.StatusForbidden, rec.Code)
}

func (s *HandlerTestSuite) TestCaptureFlow() {
	base := "/api/v1/tasks/" + s.task1ID + "/capture"

	rec := s.doRequest(http.MethodPost, base, s.operatorToken, nil)
	s.Require().Equal(http.StatusCreated, rec.Code)

	var sess dto.CaptureSessionResponse
	s.decode(rec, &sess)
	s.Equal("PHOTO", sess.State)

	// A second attempt for the same task is rejected while one is live.
	rec = s.doRequest(http.MethodPost, base, s.managerToken, nil)
	s.Equal(http.StatusConflict, rec.Code)

	rec = s.doRequest(http.MethodPost, base+"/photo", s.operatorToken,
		dto.ArtifactRequest{FileURL: "https://cdn.example.com/fryer.jpg"})
	s.Equal(http.StatusUnprocessableEntity, rec.Code) // captured_at required

	// The captured_at timestamp must fall in the current branch-local day for
	// the task to derive as completed below.
	rec = s.doRequest(http.MethodPost, base+"/photo", s.operatorToken, map[string]interface{}{
		"file_url":    "https://cdn.example.com/fryer.jpg",
		"captured_at": time.Now().UTC().Format(time.RFC3339),
	})
	s.Require().Equal(http.StatusOK, rec.Code)
	s.decode(rec, &sess)
	s.Equal("REVIEW", sess.State)

	rec = s.doRequest(http.MethodPost, base+"/confirm", s.operatorToken, dto.ConfirmCaptureRequest{Comment: "all clean"})
	s.Require().Equal(http.StatusOK, rec.Code)
	s.decode(rec, &sess)
	s.Equal("SUCCESS", sess.State)
	s.Require().Len(sess.EvidenceIDs, 1)

	rec = s.doRequest(http.MethodPost, base+"/remark", s.operatorToken, dto.RemarkRequest{Body: "filter replaced too"})
	s.Require().Equal(http.StatusOK, rec.Code)

	rec = s.doRequest(http.MethodPost, base+"/finish", s.operatorToken, nil)
	s.Require().Equal(http.StatusNoContent, rec.Code)

	// The evidence trail now carries the record and its submitter.
	rec = s.doRequest(http.MethodGet, "/api/v1/tasks/"+s.task1ID+"/history", s.operatorToken, nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	var history dto.TaskHistoryResponse
	s.decode(rec, &history)
	s.Require().Equal(1, history.Total)
	s.Equal("Ivan Petrov", history.Evidence[0].SubmitterName)
	s.Equal("all clean", history.Evidence[0].Comment)

	// And the task now derives as COMPLETED.
	listRec := s.doRequest(http.MethodGet, "/api/v1/zones/"+s.zone1ID+"/tasks?status=COMPLETED", s.operatorToken, nil)
	s.Require().Equal(http.StatusOK, listRec.Code)
	var listResp dto.ZoneTasksResponse
	s.decode(listRec, &listResp)
	s.Require().Equal(1, listResp.Total)
	s.Equal(s.task1ID, listResp.Tasks[0].ID)
}

func (s *HandlerTestSuite) TestCaptureReport() {
	base := "/api/v1/tasks/" + s.task1ID + "/capture"

	rec := s.doRequest(http.MethodPost, base, s.operatorToken, nil)
	s.Require().Equal(http.StatusCreated, rec.Code)

	rec = s.doRequest(http.MethodPost, base+"/report", s.operatorToken,
		dto.ReportRequest{Reason: "fryer is out for repair"})
	s.Require().Equal(http.StatusCreated, rec.Code)

	var report dto.ReportResponse
	s.decode(rec, &report)
	s.Equal(s.task1ID, report.TaskID)
	s.Equal(s.operatorID, report.FiledBy)

	// The attempt is closed and the task is still not completed.
	rec = s.doRequest(http.MethodGet, base, s.operatorToken, nil)
	s.Equal(http.StatusNotFound, rec.Code)

	rec = s.doRequest(http.MethodGet, "/api/v1/tasks/"+s.task1ID+"/reports", s.operatorToken, nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	var reports dto.ReportsListResponse
	s.decode(rec, &reports)
	s.Equal(1, reports.Total)
}

func (s *HandlerTestSuite) TestProvisionOfflineStaff() {
	rec := s.doRequest(http.MethodPost, "/api/v1/branches/"+s.branch1ID+"/staff/offline", s.managerToken,
		dto.ProvisionOfflineStaffRequest{Name: "Night Cleaner"})
	s.Require().Equal(http.StatusCreated, rec.Code)

	var resp dto.ProvisionedStaffResponse
	s.decode(rec, &resp)
	s.Len(resp.AccessCode, 8)
	s.True(resp.Staff.IsOffline)
	s.Equal("operator", resp.Staff.Role)

	// Only the hash is stored, never the plaintext code.
	var hash string
	err := s.pool.QueryRow(context.Background(),
		"SELECT access_code_hash FROM staff WHERE id = $1", resp.Staff.ID).Scan(&hash)
	s.Require().NoError(err)
	s.NotEmpty(hash)
	s.NotEqual(resp.AccessCode, hash)

	// The new identity is immediately assignable.
	assignRec := s.doRequest(http.MethodPut, "/api/v1/tasks/"+s.task1ID+"/assignee", s.managerToken,
		dto.AssignTaskRequest{StaffID: &resp.Staff.ID})
	s.Equal(http.StatusNoContent, assignRec.Code)
}

func (s *HandlerTestSuite) TestProvisionRequiresManager() {
	rec := s.doRequest(http.MethodPost, "/api/v1/branches/"+s.branch1ID+"/staff/offline", s.operatorToken,
		dto.ProvisionOfflineStaffRequest{Name: "Night Cleaner"})
	s.Equal(http.StatusForbidden, rec.Code)
}

func (s *HandlerTestSuite) TestInviteAndAccept() {
	rec := s.doRequest(http.MethodPost, "/api/v1/branches/"+s.branch1ID+"/invitations", s.managerToken,
		dto.InviteStaffRequest{
			Email:          "new.op@example.com",
			Name:           "New Operator",
			AssignedTaskID: &s.task1ID,
		})
	s.Require().Equal(http.StatusCreated, rec.Code)

	var invitation dto.InvitationResponse
	s.decode(rec, &invitation)
	s.Equal("pending", invitation.Status)

	// A pending invitee is not in the assignable roster.
	staffRec := s.doRequest(http.MethodGet, "/api/v1/branches/"+s.branch1ID+"/staff", s.managerToken, nil)
	s.Require().Equal(http.StatusOK, staffRec.Code)
	var roster dto.StaffListResponse
	s.decode(staffRec, &roster)
	s.Equal(2, roster.Total)

	var token string
	err := s.pool.QueryRow(context.Background(),
		"SELECT token FROM staff_invitations WHERE id = $1", invitation.ID).Scan(&token)
	s.Require().NoError(err)

	rec = s.doRequest(http.MethodPost, "/api/v1/invitations/accept", "",
		dto.AcceptInvitationRequest{Token: token})
	s.Require().Equal(http.StatusCreated, rec.Code)

	var staff dto.StaffResponse
	s.decode(rec, &staff)
	s.Equal(s.branch1ID, staff.BranchID)
	s.Equal("New Operator", staff.Name)

	// Acceptance applied the pre-assignment.
	var assignee string
	err = s.pool.QueryRow(context.Background(),
		"SELECT assignee_id FROM tasks WHERE id = $1", s.task1ID).Scan(&assignee)
	s.Require().NoError(err)
	s.Equal(staff.ID, assignee)

	// A consumed token cannot be accepted twice.
	rec = s.doRequest(http.MethodPost, "/api/v1/invitations/accept", "",
		dto.AcceptInvitationRequest{Token: token})
	s.Equal(http.StatusConflict, rec.Code)
}

func (s *HandlerTestSuite) TestInviteValidation() {
	rec := s.doRequest(http.MethodPost, "/api/v1/branches/"+s.branch1ID+"/invitations", s.managerToken,
		dto.InviteStaffRequest{Email: "not-an-email", Name: "X"})
	s.Equal(http.StatusUnprocessableEntity, rec.Code)
}

func (s *HandlerTestSuite) TestZoneHistory() {
	_, err := s.pool.Exec(context.Background(), `
		INSERT INTO evidence (task_id, file_url, media_kind, captured_at, submitted_by)
		VALUES ($1, 'https://cdn.example.com/old.jpg', 'PHOTO', '2026-03-02T09:30:00Z', $2)
	`, s.task1ID, s.operatorID)
	s.Require().NoError(err)

	// Weekend-only task: 2026-03-02 is a Monday, so it must not show up in
	// that day's history at all, not even as missed.
	weekendTaskID := "00000000-0000-0000-0000-000000000033"
	_, err = s.pool.Exec(context.Background(), `
		INSERT INTO tasks (id, zone_id, title, evidence_kind, days, limit_time, position)
		VALUES ($1, $2, 'Deep clean grill', 'PHOTO', '{SAT,SUN}', NULL, 2)
	`, weekendTaskID, s.zone1ID)
	s.Require().NoError(err)

	rec := s.doRequest(http.MethodGet, "/api/v1/zones/"+s.zone1ID+"/history?date=2026-03-02", s.managerToken, nil)
	s.Require().Equal(http.StatusOK, rec.Code)

	var history dto.ZoneHistoryResponse
	s.decode(rec, &history)
	s.Equal("2026-03-02", history.Date)
	s.Equal(2, history.Stats.Total)
	s.Equal(1, history.Stats.Completed)
	s.Equal(1, history.Stats.Missed)
	for _, task := range history.Tasks {
		s.NotEqual(weekendTaskID, task.TaskID)
	}

	rec = s.doRequest(http.MethodGet, "/api/v1/zones/"+s.zone1ID+"/history?date=yesterday", s.managerToken, nil)
	s.Equal(http.StatusUnprocessableEntity, rec.Code)
}
