package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	httpSwagger "github.com/swaggo/http-swagger"
	_ "github.com/taskproof/taskproof/docs" // Import generated docs
	"github.com/taskproof/taskproof/internal/handler/dto"
	"github.com/taskproof/taskproof/internal/middleware"
	"github.com/taskproof/taskproof/internal/repository"
	"github.com/taskproof/taskproof/internal/service"
)

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	pool              *pgxpool.Pool
	taskService       *service.TaskService
	captureService    *service.CaptureService
	assignmentService *service.AssignmentService
	reportService     *service.ReportService
	historyService    *service.HistoryService
	authMiddleware    *middleware.AuthMiddleware
}

// New creates a new Handler instance with all dependencies.
func New(pool *pgxpool.Pool) *Handler {
	// Create repositories
	taskRepo := repository.NewTaskRepository(pool)
	evidenceRepo := repository.NewEvidenceRepository(pool)
	zoneRepo := repository.NewZoneRepository(pool)
	branchRepo := repository.NewBranchRepository(pool)
	staffRepo := repository.NewStaffRepository(pool)
	invitationRepo := repository.NewInvitationRepository(pool)
	reportRepo := repository.NewReportRepository(pool)

	// Create services
	validator := service.NewValidator(staffRepo, branchRepo)
	taskService := service.NewTaskService(pool, taskRepo, evidenceRepo, zoneRepo, branchRepo, validator)
	reportService := service.NewReportService(reportRepo, taskRepo, validator)
	captureService := service.NewCaptureService(taskRepo, taskService, reportService)
	assignmentService := service.NewAssignmentService(pool, taskRepo, staffRepo, invitationRepo, branchRepo, validator)
	historyService := service.NewHistoryService(zoneRepo, branchRepo, taskRepo, evidenceRepo, validator)

	// Create middleware
	authMiddleware := middleware.NewAuthMiddleware(staffRepo)

	return &Handler{
		pool:              pool,
		taskService:       taskService,
		captureService:    captureService,
		assignmentService: assignmentService,
		reportService:     reportService,
		historyService:    historyService,
		authMiddleware:    authMiddleware,
	}
}

// RegisterRoutes registers all HTTP routes.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	// Health check
	mux.HandleFunc("GET /healthz", h.handleHealthz)

	// Swagger UI
	mux.HandleFunc("GET /swagger/", httpSwagger.Handler())

	// Invitation acceptance carries its own token; it happens before the
	// invitee has any credentials.
	mux.HandleFunc("POST /api/v1/invitations/accept", h.handleAcceptInvitation)

	// Task list and assignment
	mux.Handle("GET /api/v1/zones/{id}/tasks", h.auth(h.handleListZoneTasks))
	mux.Handle("PUT /api/v1/tasks/{id}/assignee", h.auth(h.handleAssignTask))
	mux.Handle("GET /api/v1/tasks/{id}/reports", h.auth(h.handleListTaskReports))

	// Capture workflow
	mux.Handle("POST /api/v1/tasks/{id}/capture", h.auth(h.handleStartCapture))
	mux.Handle("GET /api/v1/tasks/{id}/capture", h.auth(h.handleGetCapture))
	mux.Handle("POST /api/v1/tasks/{id}/capture/photo", h.auth(h.handleCapturePhoto))
	mux.Handle("POST /api/v1/tasks/{id}/capture/video", h.auth(h.handleCaptureVideo))
	mux.Handle("POST /api/v1/tasks/{id}/capture/retake", h.auth(h.handleRetake))
	mux.Handle("POST /api/v1/tasks/{id}/capture/confirm", h.auth(h.handleConfirmCapture))
	mux.Handle("POST /api/v1/tasks/{id}/capture/remark", h.auth(h.handleRemark))
	mux.Handle("POST /api/v1/tasks/{id}/capture/finish", h.auth(h.handleFinishCapture))
	mux.Handle("POST /api/v1/tasks/{id}/capture/abort", h.auth(h.handleAbortCapture))
	mux.Handle("POST /api/v1/tasks/{id}/capture/report", h.auth(h.handleCaptureReport))

	// Staff roster and provisioning
	mux.Handle("GET /api/v1/branches/{id}/staff", h.auth(h.handleListStaff))
	mux.Handle("POST /api/v1/branches/{id}/staff/offline", h.auth(h.handleProvisionOfflineStaff))
	mux.Handle("POST /api/v1/branches/{id}/invitations", h.auth(h.handleInviteStaff))

	// History browser
	mux.Handle("GET /api/v1/zones/{id}/history", h.auth(h.handleZoneHistory))
	mux.Handle("GET /api/v1/tasks/{id}/history", h.auth(h.handleTaskHistory))
}

func (h *Handler) auth(fn http.HandlerFunc) http.Handler {
	return h.authMiddleware.Authenticate(fn)
}

// handleHealthz returns 200 OK if the database is reachable.
func (h *Handler) handleHealthz(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.pool.Ping(ctx); err != nil {
		slog.Error("database health check failed", "error", err)
		http.Error(w, "database unavailable", http.StatusServiceUnavailable)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// Ping checks if the database is reachable (used for testing).
func (h *Handler) Ping(ctx context.Context) error {
	return h.pool.Ping(ctx)
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// respondError writes a standard error response.
func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, dto.NewErrorResponse(code, message))
}

// respondDomainError maps a domain error and writes it.
func respondDomainError(w http.ResponseWriter, err error) {
	status, code, message := dto.MapDomainError(err)
	respondError(w, status, code, message)
}

// extractPathID extracts and validates a UUID path parameter.
// Returns (id, true) if valid, ("", false) if invalid (error already sent to
// client).
func extractPathID(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	id := r.PathValue("id")
	if id == "" {
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", name+" id is required")
		return "", false
	}

	if _, err := uuid.Parse(id); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", name+" id must be a valid UUID")
		return "", false
	}

	return id, true
}
