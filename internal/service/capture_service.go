package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/taskproof/taskproof/internal/capture"
	"github.com/taskproof/taskproof/internal/domain"
)

// TaskDirectory resolves tasks for capture attempts.
type TaskDirectory interface {
	GetByID(ctx context.Context, taskID string) (*domain.Task, error)
}

// EvidenceSink persists capture batches and post-submission remarks.
type EvidenceSink interface {
	SubmitEvidence(ctx context.Context, params SubmitEvidenceParams) ([]*domain.Evidence, error)
	AddEvidenceComments(ctx context.Context, evidenceIDs []string, authorID, body string) ([]*domain.EvidenceComment, error)
}

// ReportSink files blocking-issue reports.
type ReportSink interface {
	FileReport(ctx context.Context, taskID, staffID, reason string) (*domain.Report, error)
}

// CaptureService drives the capture state machine and performs the I/O its
// transitions demand. It holds at most one live attempt per task; a second
// Start for the same task is rejected until the first attempt closes.
type CaptureService struct {
	mu       sync.Mutex
	sessions map[string]capture.Session

	tasks    TaskDirectory
	evidence EvidenceSink
	reports  ReportSink
}

// NewCaptureService creates a new CaptureService.
func NewCaptureService(tasks TaskDirectory, evidence EvidenceSink, reports ReportSink) *CaptureService {
	return &CaptureService{
		sessions: make(map[string]capture.Session),
		tasks:    tasks,
		evidence: evidence,
		reports:  reports,
	}
}

// Start opens a capture attempt for a task. The initial state follows the
// task's evidence kind.
func (s *CaptureService) Start(ctx context.Context, taskID, staffID string) (capture.Session, error) {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return capture.Session{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[taskID]; ok {
		return capture.Session{}, fmt.Errorf("%w: task %s", domain.ErrCaptureInProgress, taskID)
	}

	sess, err := capture.NewSession(taskID, staffID, task.EvidenceKind)
	if err != nil {
		return capture.Session{}, err
	}
	s.sessions[taskID] = sess

	slog.Info("capture attempt started",
		"task_id", taskID,
		"staff_id", staffID,
		"kind", task.EvidenceKind,
	)

	return sess, nil
}

// session fetches the live attempt for a task and verifies the actor owns it.
// Callers must hold s.mu.
func (s *CaptureService) session(taskID, staffID string) (capture.Session, error) {
	sess, ok := s.sessions[taskID]
	if !ok {
		return capture.Session{}, fmt.Errorf("%w: task %s", domain.ErrNoCaptureSession, taskID)
	}
	if sess.StaffID != staffID {
		return capture.Session{}, fmt.Errorf("%w: capture attempt owned by another staff member", domain.ErrPermissionDenied)
	}
	return sess, nil
}

// apply runs one event against the live attempt and stores the result.
// Callers must hold s.mu.
func (s *CaptureService) apply(taskID, staffID string, ev capture.Event) (capture.Session, error) {
	sess, err := s.session(taskID, staffID)
	if err != nil {
		return capture.Session{}, err
	}
	next, err := capture.Apply(sess, ev)
	if err != nil {
		return sess, err
	}
	if next.Closed() {
		delete(s.sessions, taskID)
	} else {
		s.sessions[taskID] = next
	}
	return next, nil
}

// AttachPhoto records a captured photo on the attempt.
func (s *CaptureService) AttachPhoto(taskID, staffID string, artifact capture.Artifact) (capture.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.apply(taskID, staffID, capture.PhotoCaptured{Artifact: artifact})
}

// AttachVideo records a captured video on the attempt.
func (s *CaptureService) AttachVideo(taskID, staffID string, artifact capture.Artifact) (capture.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.apply(taskID, staffID, capture.VideoCaptured{Artifact: artifact})
}

// Retake discards one captured artifact from the review step and returns to
// the corresponding capture step.
func (s *CaptureService) Retake(taskID, staffID string, kind domain.MediaKind) (capture.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch kind {
	case domain.MediaKindPhoto:
		return s.apply(taskID, staffID, capture.RetakePhoto{})
	case domain.MediaKindVideo:
		return s.apply(taskID, staffID, capture.RetakeVideo{})
	default:
		return capture.Session{}, fmt.Errorf("%w: retake %q", domain.ErrInvalidCaptureEvent, kind)
	}
}

// Confirm submits the whole artifact batch from the review step. The batch is
// written atomically; on failure the attempt stays in review so the operator
// can retry without recapturing.
func (s *CaptureService) Confirm(ctx context.Context, taskID, staffID, comment string) (capture.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(taskID, staffID)
	if err != nil {
		return capture.Session{}, err
	}
	if sess.State != capture.StateReview {
		return sess, fmt.Errorf("%w: submitted in state %s", domain.ErrInvalidCaptureEvent, sess.State)
	}
	if err := sess.CanSubmit(); err != nil {
		return sess, err
	}

	artifacts := make([]SubmittedArtifact, 0, 2)
	if sess.Photo != nil {
		artifacts = append(artifacts, SubmittedArtifact{
			FileURL:    sess.Photo.FileURL,
			MediaKind:  domain.MediaKindPhoto,
			CapturedAt: sess.Photo.CapturedAt,
			Location:   sess.Photo.Location,
		})
	}
	if sess.Video != nil {
		artifacts = append(artifacts, SubmittedArtifact{
			FileURL:    sess.Video.FileURL,
			MediaKind:  domain.MediaKindVideo,
			CapturedAt: sess.Video.CapturedAt,
			Location:   sess.Video.Location,
		})
	}

	records, err := s.evidence.SubmitEvidence(ctx, SubmitEvidenceParams{
		TaskID:    taskID,
		StaffID:   staffID,
		Artifacts: artifacts,
		Comment:   comment,
	})
	if err != nil {
		return sess, err
	}

	ids := make([]string, len(records))
	for i, record := range records {
		ids[i] = record.ID
	}

	return s.apply(taskID, staffID, capture.Submitted{EvidenceIDs: ids})
}

// Remark appends a post-submission remark to every evidence record of the
// batch in one write. On failure nothing is persisted and the attempt returns
// to the success screen unchanged, so a retry never duplicates remarks.
func (s *CaptureService) Remark(ctx context.Context, taskID, staffID, body string) (capture.Session, error) {
	if body == "" {
		return capture.Session{}, domain.ErrEmptyComment
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	editing, err := s.apply(taskID, staffID, capture.OpenRemark{})
	if err != nil {
		return editing, err
	}

	if _, err := s.evidence.AddEvidenceComments(ctx, editing.EvidenceIDs, staffID, body); err != nil {
		if _, cancelErr := s.apply(taskID, staffID, capture.CancelRemark{}); cancelErr != nil {
			slog.Error("failed to cancel remark editor", "task_id", taskID, "error", cancelErr)
		}
		return capture.Session{}, fmt.Errorf("add remarks: %w", err)
	}

	return s.apply(taskID, staffID, capture.RemarkAdded{})
}

// Finish closes a successful attempt. The caller must refresh its task list
// afterwards; completion state is always re-derived server side.
func (s *CaptureService) Finish(taskID, staffID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.apply(taskID, staffID, capture.Finished{})
	return err
}

// Abort discards an in-progress attempt without side effects. Aborting after
// submission is rejected; evidence is immutable once persisted.
func (s *CaptureService) Abort(taskID, staffID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.apply(taskID, staffID, capture.Aborted{})
	return err
}

// Report files a blocking-issue report from within an attempt and closes it
// without evidence. If filing fails the attempt survives so the operator can
// retry or continue capturing.
func (s *CaptureService) Report(ctx context.Context, taskID, staffID, reason string) (*domain.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(taskID, staffID)
	if err != nil {
		return nil, err
	}
	// Dry-run the transition first so an attempt past submission cannot be
	// closed by a report.
	if _, err := capture.Apply(sess, capture.ReportFiled{}); err != nil {
		return nil, err
	}

	report, err := s.reports.FileReport(ctx, taskID, staffID, reason)
	if err != nil {
		return nil, err
	}

	if _, err := s.apply(taskID, staffID, capture.ReportFiled{}); err != nil {
		return nil, err
	}

	return report, nil
}

// Session returns the live attempt for a task, if the actor owns one.
func (s *CaptureService) Session(taskID, staffID string) (capture.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session(taskID, staffID)
}
