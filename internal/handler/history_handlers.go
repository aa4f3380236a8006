package handler

import (
	"net/http"
	"time"

	"github.com/taskproof/taskproof/internal/handler/dto"
	"github.com/taskproof/taskproof/internal/middleware"
)

// handleZoneHistory returns a zone's compliance record for a past date.
// @Summary Zone history for a date
// @Description Returns every task scheduled on the date with its done/missed outcome and aggregate stats. Day boundaries follow the branch's timezone.
// @Tags history
// @Produce json
// @Param id path string true "Zone ID"
// @Param date query string true "Date in YYYY-MM-DD"
// @Success 200 {object} dto.ZoneHistoryResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /zones/{id}/history [get]
func (h *Handler) handleZoneHistory(w http.ResponseWriter, r *http.Request) {
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

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "date is required")
		return
	}
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "date must be in YYYY-MM-DD format")
		return
	}

	history, err := h.historyService.ZoneHistory(ctx, actor.ID, zoneID, date)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToZoneHistoryResponse(history))
}

// handleTaskHistory returns the full evidence trail of a task.
// @Summary Task evidence history
// @Description Returns every evidence record of the task, oldest first, with submitter names resolved.
// @Tags history
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} dto.TaskHistoryResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /tasks/{id}/history [get]
func (h *Handler) handleTaskHistory(w http.ResponseWriter, r *http.Request) {
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

	records, err := h.historyService.TaskHistory(ctx, actor.ID, taskID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToTaskHistoryResponse(records))
}
