package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/taskproof/taskproof/internal/handler/dto"
	"github.com/taskproof/taskproof/internal/middleware"
	"github.com/taskproof/taskproof/internal/service"
)

// handleListZoneTasks lists a zone's tasks with derived statuses.
// @Summary List zone tasks
// @Description Lists the zone's tasks in catalog order with status derived at request time in the branch's timezone. Supports text search and status/staff filters combined with AND.
// @Tags tasks
// @Produce json
// @Param id path string true "Zone ID"
// @Param query query string false "Case-insensitive title substring"
// @Param status query string false "ALL, COMPLETED, PENDING or LATE" default(ALL)
// @Param staff query string false "ALL, UNASSIGNED or a staff ID" default(ALL)
// @Success 200 {object} dto.ZoneTasksResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /zones/{id}/tasks [get]
func (h *Handler) handleListZoneTasks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor, err := middleware.GetStaffFromContext(ctx)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Authentication required")
		return
	}

	zoneID, ok := extractPathID(w, r, "zone")
	if !ok {
		return
	}

	criteria := service.FilterCriteria{
		Query:  r.URL.Query().Get("query"),
		Status: service.StatusFilterAll,
		Staff:  service.StaffFilterAll,
	}

	if status := r.URL.Query().Get("status"); status != "" {
		criteria.Status = service.StatusFilter(status)
		if !criteria.Status.IsValid() {
			respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR",
				"status must be 'ALL', 'COMPLETED', 'PENDING' or 'LATE'")
			return
		}
	}

	if staff := r.URL.Query().Get("staff"); staff != "" {
		filter := service.StaffFilter(staff)
		if filter != service.StaffFilterAll && filter != service.StaffFilterUnassigned {
			if _, err := uuid.Parse(staff); err != nil {
				respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR",
					"staff must be 'ALL', 'UNASSIGNED' or a staff ID")
				return
			}
		}
		criteria.Staff = filter
	}

	views, err := h.taskService.ListZoneTasks(ctx, actor.ID, zoneID, criteria, time.Now())
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToZoneTasksResponse(views))
}

// handleAssignTask sets or clears a task's assignee.
// @Summary Assign a task
// @Description Sets or clears the task's assignee. Managers only; the assignee must belong to the task's branch. A null staff_id clears the assignment.
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param request body dto.AssignTaskRequest true "Assignment request"
// @Success 204
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /tasks/{id}/assignee [put]
func (h *Handler) handleAssignTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor, err := middleware.GetStaffFromContext(ctx)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Authentication required")
		return
	}

	taskID, ok := extractPathID(w, r, "task")
	if !ok {
		return
	}

	var req dto.AssignTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if req.StaffID != nil {
		if _, err := uuid.Parse(*req.StaffID); err != nil {
			respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "staff_id must be a valid UUID")
			return
		}
	}

	if err := h.assignmentService.Assign(ctx, actor.ID, taskID, req.StaffID); err != nil {
		respondDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleListTaskReports lists the reports filed against a task.
// @Summary List task reports
// @Description Lists every blocking-issue report filed against the task, newest first.
// @Tags reports
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} dto.ReportsListResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /tasks/{id}/reports [get]
func (h *Handler) handleListTaskReports(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor, err := middleware.GetStaffFromContext(ctx)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Authentication required")
		return
	}

	taskID, ok := extractPathID(w, r, "task")
	if !ok {
		return
	}

	reports, err := h.reportService.ListTaskReports(ctx, actor.ID, taskID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToReportsListResponse(reports))
}
