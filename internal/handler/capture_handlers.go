package handler

import (
	"encoding/json"
	"net/http"

	"github.com/taskproof/taskproof/internal/capture"
	"github.com/taskproof/taskproof/internal/domain"
	"github.com/taskproof/taskproof/internal/handler/dto"
	"github.com/taskproof/taskproof/internal/middleware"
)

func toArtifact(req dto.ArtifactRequest) capture.Artifact {
	artifact := capture.Artifact{
		FileURL:    req.FileURL,
		CapturedAt: req.CapturedAt,
	}
	if req.Location != nil {
		artifact.Location = &domain.Location{
			Latitude:  req.Location.Latitude,
			Longitude: req.Location.Longitude,
		}
	}
	return artifact
}

// handleStartCapture opens a capture attempt for a task.
// @Summary Start a capture attempt
// @Description Opens the capture workflow for a task. Only one attempt may be live per task; the initial step follows the task's evidence kind.
// @Tags capture
// @Produce json
// @Param id path string true "Task ID"
// @Success 201 {object} dto.CaptureSessionResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /tasks/{id}/capture [post]
func (h *Handler) handleStartCapture(w http.ResponseWriter, r *http.Request) {
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

	sess, err := h.captureService.Start(ctx, taskID, actor.ID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, dto.ToCaptureSessionResponse(sess))
}

// handleGetCapture returns the live attempt for a task.
// @Summary Get the live capture attempt
// @Tags capture
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} dto.CaptureSessionResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /tasks/{id}/capture [get]
func (h *Handler) handleGetCapture(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.GetStaffFromContext(r.Context())
	if err != nil {
		respondError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Authentication required")
		return
	}

	taskID, ok := extractPathID(w, r, "task")
	if !ok {
		return
	}

	sess, err := h.captureService.Session(taskID, actor.ID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToCaptureSessionResponse(sess))
}

// handleCapturePhoto attaches a captured photo to the attempt.
// @Summary Attach a photo
// @Description Records a captured photo. Valid only while the attempt is on the photo step.
// @Tags capture
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param request body dto.ArtifactRequest true "Photo artifact"
// @Success 200 {object} dto.CaptureSessionResponse
// @Failure 409 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /tasks/{id}/capture/photo [post]
func (h *Handler) handleCapturePhoto(w http.ResponseWriter, r *http.Request) {
	h.handleAttachArtifact(w, r, domain.MediaKindPhoto)
}

// handleCaptureVideo attaches a captured video to the attempt.
// @Summary Attach a video
// @Description Records a captured video. Valid only while the attempt is on the video step.
// @Tags capture
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param request body dto.ArtifactRequest true "Video artifact"
// @Success 200 {object} dto.CaptureSessionResponse
// @Failure 409 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /tasks/{id}/capture/video [post]
func (h *Handler) handleCaptureVideo(w http.ResponseWriter, r *http.Request) {
	h.handleAttachArtifact(w, r, domain.MediaKindVideo)
}

func (h *Handler) handleAttachArtifact(w http.ResponseWriter, r *http.Request, kind domain.MediaKind) {
	actor, err := middleware.GetStaffFromContext(r.Context())
	if err != nil {
		respondError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Authentication required")
		return
	}

	taskID, ok := extractPathID(w, r, "task")
	if !ok {
		return
	}

	var req dto.ArtifactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", err.Error())
		return
	}

	var sess capture.Session
	if kind == domain.MediaKindPhoto {
		sess, err = h.captureService.AttachPhoto(taskID, actor.ID, toArtifact(req))
	} else {
		sess, err = h.captureService.AttachVideo(taskID, actor.ID, toArtifact(req))
	}
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToCaptureSessionResponse(sess))
}

// handleRetake discards an artifact and returns to its capture step.
// @Summary Retake an artifact
// @Description Discards the chosen artifact from the review step. The other artifact, if any, is preserved.
// @Tags capture
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param request body dto.RetakeRequest true "Which media to retake"
// @Success 200 {object} dto.CaptureSessionResponse
// @Failure 409 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /tasks/{id}/capture/retake [post]
func (h *Handler) handleRetake(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.GetStaffFromContext(r.Context())
	if err != nil {
		respondError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Authentication required")
		return
	}

	taskID, ok := extractPathID(w, r, "task")
	if !ok {
		return
	}

	var req dto.RetakeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	media := domain.MediaKind(req.Media)
	if media != domain.MediaKindPhoto && media != domain.MediaKindVideo {
		respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "media must be 'PHOTO' or 'VIDEO'")
		return
	}

	sess, err := h.captureService.Retake(taskID, actor.ID, media)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToCaptureSessionResponse(sess))
}

// handleConfirmCapture submits the artifact batch.
// @Summary Confirm and submit
// @Description Persists every captured artifact of the attempt as one atomic batch and moves to the success step.
// @Tags capture
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param request body dto.ConfirmCaptureRequest true "Optional comment applied to the batch"
// @Success 200 {object} dto.CaptureSessionResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /tasks/{id}/capture/confirm [post]
func (h *Handler) handleConfirmCapture(w http.ResponseWriter, r *http.Request) {
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

	var req dto.ConfirmCaptureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	sess, err := h.captureService.Confirm(ctx, taskID, actor.ID, req.Comment)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToCaptureSessionResponse(sess))
}

// handleRemark appends a remark to every evidence record of the batch.
// @Summary Add a post-submission remark
// @Tags capture
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param request body dto.RemarkRequest true "Remark body"
// @Success 200 {object} dto.CaptureSessionResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /tasks/{id}/capture/remark [post]
func (h *Handler) handleRemark(w http.ResponseWriter, r *http.Request) {
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

	var req dto.RemarkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	sess, err := h.captureService.Remark(ctx, taskID, actor.ID, req.Body)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToCaptureSessionResponse(sess))
}

// handleFinishCapture closes a successful attempt.
// @Summary Finish the attempt
// @Description Closes a successful attempt. The client must re-fetch the task list; completion state is always re-derived server side.
// @Tags capture
// @Param id path string true "Task ID"
// @Success 204
// @Failure 409 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /tasks/{id}/capture/finish [post]
func (h *Handler) handleFinishCapture(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.GetStaffFromContext(r.Context())
	if err != nil {
		respondError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Authentication required")
		return
	}

	taskID, ok := extractPathID(w, r, "task")
	if !ok {
		return
	}

	if err := h.captureService.Finish(taskID, actor.ID); err != nil {
		respondDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleAbortCapture discards an in-progress attempt.
// @Summary Abort the attempt
// @Description Discards an in-progress attempt with no side effects. Rejected once the batch has been submitted.
// @Tags capture
// @Param id path string true "Task ID"
// @Success 204
// @Failure 409 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /tasks/{id}/capture/abort [post]
func (h *Handler) handleAbortCapture(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.GetStaffFromContext(r.Context())
	if err != nil {
		respondError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Authentication required")
		return
	}

	taskID, ok := extractPathID(w, r, "task")
	if !ok {
		return
	}

	if err := h.captureService.Abort(taskID, actor.ID); err != nil {
		respondDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleCaptureReport files a blocking-issue report and closes the attempt.
// @Summary Report a blocking issue
// @Description Files a report explaining why the task cannot be completed and closes the attempt without evidence. The task's status is unchanged.
// @Tags capture
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param request body dto.ReportRequest true "Report reason"
// @Success 201 {object} dto.ReportResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /tasks/{id}/capture/report [post]
func (h *Handler) handleCaptureReport(w http.ResponseWriter, r *http.Request) {
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

	var req dto.ReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	report, err := h.captureService.Report(ctx, taskID, actor.ID, req.Reason)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, dto.ToReportResponse(report))
}
