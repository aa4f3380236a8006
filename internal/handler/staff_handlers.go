package handler

import (
	"encoding/json"
	"net/http"

	"github.com/taskproof/taskproof/internal/handler/dto"
	"github.com/taskproof/taskproof/internal/middleware"
	"github.com/taskproof/taskproof/internal/service"
)

// handleListStaff lists the assignable staff of a branch.
// @Summary List branch staff
// @Description Lists the active staff of a branch. Pending invitations never appear here.
// @Tags staff
// @Produce json
// @Param id path string true "Branch ID"
// @Success 200 {object} dto.StaffListResponse
// @Failure 403 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /branches/{id}/staff [get]
func (h *Handler) handleListStaff(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor, err := middleware.GetStaffFromContext(ctx)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Authentication required")
		return
	}

	branchID, ok := extractPathID(w, r, "branch")
	if !ok {
		return
	}

	members, err := h.assignmentService.ListAssignableStaff(ctx, actor.ID, branchID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToStaffListResponse(members))
}

// handleProvisionOfflineStaff creates an operator without an email account.
// @Summary Provision offline staff
// @Description Creates an operator identity with a server-generated access code. The plaintext code appears in this response exactly once; only its hash is stored.
// @Tags staff
// @Accept json
// @Produce json
// @Param id path string true "Branch ID"
// @Param request body dto.ProvisionOfflineStaffRequest true "Provisioning request"
// @Success 201 {object} dto.ProvisionedStaffResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /branches/{id}/staff/offline [post]
func (h *Handler) handleProvisionOfflineStaff(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor, err := middleware.GetStaffFromContext(ctx)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Authentication required")
		return
	}

	branchID, ok := extractPathID(w, r, "branch")
	if !ok {
		return
	}

	var req dto.ProvisionOfflineStaffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", err.Error())
		return
	}

	provisioned, err := h.assignmentService.ProvisionOfflineStaff(ctx, actor.ID, branchID, req.Name)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, dto.ToProvisionedStaffResponse(provisioned))
}

// handleInviteStaff issues an email invitation.
// @Summary Invite staff by email
// @Description Issues a pending invitation, optionally pre-assigning a task that takes effect on acceptance. Email delivery is handled by the notification pipeline.
// @Tags staff
// @Accept json
// @Produce json
// @Param id path string true "Branch ID"
// @Param request body dto.InviteStaffRequest true "Invitation request"
// @Success 201 {object} dto.InvitationResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /branches/{id}/invitations [post]
func (h *Handler) handleInviteStaff(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor, err := middleware.GetStaffFromContext(ctx)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Authentication required")
		return
	}

	branchID, ok := extractPathID(w, r, "branch")
	if !ok {
		return
	}

	var req dto.InviteStaffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", err.Error())
		return
	}

	invitation, err := h.assignmentService.InviteStaffByEmail(ctx, actor.ID, service.InviteStaffParams{
		BranchID:       branchID,
		Email:          req.Email,
		Name:           req.Name,
		JobTitle:       req.JobTitle,
		Phone:          req.Phone,
		AssignedTaskID: req.AssignedTaskID,
	})
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, dto.ToInvitationResponse(invitation))
}

// handleAcceptInvitation consumes an invitation token.
// @Summary Accept an invitation
// @Description Creates the staff identity and applies any pre-assignment atomically. A consumed token cannot be accepted again.
// @Tags staff
// @Accept json
// @Produce json
// @Param request body dto.AcceptInvitationRequest true "Acceptance request"
// @Success 201 {object} dto.StaffResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /invitations/accept [post]
func (h *Handler) handleAcceptInvitation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req dto.AcceptInvitationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", err.Error())
		return
	}

	staff, err := h.assignmentService.AcceptInvitation(ctx, req.Token)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, dto.ToStaffResponse(staff))
}
