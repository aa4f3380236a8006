package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/taskproof/taskproof/internal/capture"
	"github.com/taskproof/taskproof/internal/domain"
	"github.com/taskproof/taskproof/internal/service"
)

type fakeTaskDirectory struct {
	tasks map[string]*domain.Task
}

func (f *fakeTaskDirectory) GetByID(_ context.Context, taskID string) (*domain.Task, error) {
	task, ok := f.tasks[taskID]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	return task, nil
}

type fakeEvidenceSink struct {
	submitCalls  []service.SubmitEvidenceParams
	submitErr    error
	nextID       int
	commentCalls []string
	commentErr   error
}

func (f *fakeEvidenceSink) SubmitEvidence(_ context.Context, params service.SubmitEvidenceParams) ([]*domain.Evidence, error) {
	f.submitCalls = append(f.submitCalls, params)
	if f.submitErr != nil {
		return nil, f.submitErr
	}
	records := make([]*domain.Evidence, len(params.Artifacts))
	for i, artifact := range params.Artifacts {
		f.nextID++
		records[i] = &domain.Evidence{
			ID:          fmt.Sprintf("ev-%d", f.nextID),
			TaskID:      params.TaskID,
			FileURL:     artifact.FileURL,
			MediaKind:   artifact.MediaKind,
			CapturedAt:  artifact.CapturedAt,
			SubmittedBy: params.StaffID,
		}
	}
	return records, nil
}

func (f *fakeEvidenceSink) AddEvidenceComments(_ context.Context, evidenceIDs []string, _, _ string) ([]*domain.EvidenceComment, error) {
	if f.commentErr != nil {
		return nil, f.commentErr
	}
	comments := make([]*domain.EvidenceComment, len(evidenceIDs))
	for i, evidenceID := range evidenceIDs {
		f.commentCalls = append(f.commentCalls, evidenceID)
		comments[i] = &domain.EvidenceComment{EvidenceID: evidenceID}
	}
	return comments, nil
}

type fakeReportSink struct {
	reports []*domain.Report
	err     error
}

func (f *fakeReportSink) FileReport(_ context.Context, taskID, staffID, reason string) (*domain.Report, error) {
	if f.err != nil {
		return nil, f.err
	}
	report := &domain.Report{ID: "rep-1", TaskID: taskID, Reason: reason, FiledBy: staffID}
	f.reports = append(f.reports, report)
	return report, nil
}

func newCaptureFixture(kind domain.EvidenceKind) (*service.CaptureService, *fakeEvidenceSink, *fakeReportSink) {
	tasks := &fakeTaskDirectory{tasks: map[string]*domain.Task{
		"task-1": {ID: "task-1", Title: "Sanitize prep station", EvidenceKind: kind},
	}}
	evidence := &fakeEvidenceSink{}
	reports := &fakeReportSink{}
	return service.NewCaptureService(tasks, evidence, reports), evidence, reports
}

func photoArtifact() capture.Artifact {
	return capture.Artifact{FileURL: "https://cdn.example.com/p.jpg", CapturedAt: time.Now()}
}

func videoArtifact() capture.Artifact {
	return capture.Artifact{FileURL: "https://cdn.example.com/v.mp4", CapturedAt: time.Now()}
}

func TestCaptureService_SingleAttemptPerTask(t *testing.T) {
	svc, _, _ := newCaptureFixture(domain.EvidenceKindPhoto)
	ctx := context.Background()

	_, err := svc.Start(ctx, "task-1", "staff-1")
	require.NoError(t, err)

	_, err = svc.Start(ctx, "task-1", "staff-2")
	require.ErrorIs(t, err, domain.ErrCaptureInProgress)

	// Aborting releases the task for a new attempt.
	require.NoError(t, svc.Abort("task-1", "staff-1"))
	_, err = svc.Start(ctx, "task-1", "staff-2")
	require.NoError(t, err)
}

func TestCaptureService_UnknownTask(t *testing.T) {
	svc, _, _ := newCaptureFixture(domain.EvidenceKindPhoto)

	_, err := svc.Start(context.Background(), "task-missing", "staff-1")
	require.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func TestCaptureService_ActorMismatch(t *testing.T) {
	svc, _, _ := newCaptureFixture(domain.EvidenceKindPhoto)
	ctx := context.Background()

	_, err := svc.Start(ctx, "task-1", "staff-1")
	require.NoError(t, err)

	_, err = svc.AttachPhoto("task-1", "staff-2", photoArtifact())
	require.ErrorIs(t, err, domain.ErrPermissionDenied)
}

func TestCaptureService_PhotoFlow(t *testing.T) {
	svc, evidence, _ := newCaptureFixture(domain.EvidenceKindPhoto)
	ctx := context.Background()

	_, err := svc.Start(ctx, "task-1", "staff-1")
	require.NoError(t, err)

	sess, err := svc.AttachPhoto("task-1", "staff-1", photoArtifact())
	require.NoError(t, err)
	require.Equal(t, capture.StateReview, sess.State)

	sess, err = svc.Confirm(ctx, "task-1", "staff-1", "done before lunch")
	require.NoError(t, err)
	require.Equal(t, capture.StateSuccess, sess.State)
	require.Len(t, sess.EvidenceIDs, 1)

	require.Len(t, evidence.submitCalls, 1)
	batch := evidence.submitCalls[0]
	require.Equal(t, "task-1", batch.TaskID)
	require.Equal(t, "staff-1", batch.StaffID)
	require.Len(t, batch.Artifacts, 1)
	require.Equal(t, domain.MediaKindPhoto, batch.Artifacts[0].MediaKind)

	require.NoError(t, svc.Finish("task-1", "staff-1"))
	_, err = svc.Session("task-1", "staff-1")
	require.ErrorIs(t, err, domain.ErrNoCaptureSession)
}

func TestCaptureService_BothKindSubmitsOneBatch(t *testing.T) {
	svc, evidence, _ := newCaptureFixture(domain.EvidenceKindBoth)
	ctx := context.Background()

	_, err := svc.Start(ctx, "task-1", "staff-1")
	require.NoError(t, err)

	// Submitting with only the photo captured is rejected before any I/O.
	sess, err := svc.AttachPhoto("task-1", "staff-1", photoArtifact())
	require.NoError(t, err)
	require.Equal(t, capture.StateVideo, sess.State)
	_, err = svc.Confirm(ctx, "task-1", "staff-1", "")
	require.Error(t, err)
	require.Empty(t, evidence.submitCalls)

	sess, err = svc.AttachVideo("task-1", "staff-1", videoArtifact())
	require.NoError(t, err)
	require.Equal(t, capture.StateReview, sess.State)

	sess, err = svc.Confirm(ctx, "task-1", "staff-1", "")
	require.NoError(t, err)
	require.Equal(t, capture.StateSuccess, sess.State)
	require.Len(t, sess.EvidenceIDs, 2)

	// Both artifacts travel in one submission, photo first.
	require.Len(t, evidence.submitCalls, 1)
	artifacts := evidence.submitCalls[0].Artifacts
	require.Len(t, artifacts, 2)
	require.Equal(t, domain.MediaKindPhoto, artifacts[0].MediaKind)
	require.Equal(t, domain.MediaKindVideo, artifacts[1].MediaKind)
}

func TestCaptureService_SubmitFailureKeepsReview(t *testing.T) {
	svc, evidence, _ := newCaptureFixture(domain.EvidenceKindPhoto)
	ctx := context.Background()

	_, err := svc.Start(ctx, "task-1", "staff-1")
	require.NoError(t, err)
	_, err = svc.AttachPhoto("task-1", "staff-1", photoArtifact())
	require.NoError(t, err)

	evidence.submitErr = errors.New("connection reset")
	sess, err := svc.Confirm(ctx, "task-1", "staff-1", "")
	require.Error(t, err)
	require.Equal(t, capture.StateReview, sess.State)

	// The attempt survives and the retry succeeds.
	evidence.submitErr = nil
	sess, err = svc.Confirm(ctx, "task-1", "staff-1", "")
	require.NoError(t, err)
	require.Equal(t, capture.StateSuccess, sess.State)
}

func TestCaptureService_RemarkFansOutToWholeBatch(t *testing.T) {
	svc, evidence, _ := newCaptureFixture(domain.EvidenceKindBoth)
	ctx := context.Background()

	_, err := svc.Start(ctx, "task-1", "staff-1")
	require.NoError(t, err)
	_, err = svc.AttachPhoto("task-1", "staff-1", photoArtifact())
	require.NoError(t, err)
	_, err = svc.AttachVideo("task-1", "staff-1", videoArtifact())
	require.NoError(t, err)
	sess, err := svc.Confirm(ctx, "task-1", "staff-1", "")
	require.NoError(t, err)

	remarked, err := svc.Remark(ctx, "task-1", "staff-1", "drain was slow")
	require.NoError(t, err)
	require.Equal(t, capture.StateSuccess, remarked.State)
	require.ElementsMatch(t, sess.EvidenceIDs, evidence.commentCalls)
}

func TestCaptureService_RemarkFailureReturnsToSuccess(t *testing.T) {
	svc, evidence, _ := newCaptureFixture(domain.EvidenceKindBoth)
	ctx := context.Background()

	_, err := svc.Start(ctx, "task-1", "staff-1")
	require.NoError(t, err)
	_, err = svc.AttachPhoto("task-1", "staff-1", photoArtifact())
	require.NoError(t, err)
	_, err = svc.AttachVideo("task-1", "staff-1", videoArtifact())
	require.NoError(t, err)
	submitted, err := svc.Confirm(ctx, "task-1", "staff-1", "")
	require.NoError(t, err)

	evidence.commentErr = errors.New("connection reset")
	_, err = svc.Remark(ctx, "task-1", "staff-1", "note")
	require.Error(t, err)

	sess, err := svc.Session("task-1", "staff-1")
	require.NoError(t, err)
	require.Equal(t, capture.StateSuccess, sess.State)
	require.Empty(t, evidence.commentCalls, "a failed remark must persist nothing")

	// Retrying after the failure lands exactly one remark per record.
	evidence.commentErr = nil
	_, err = svc.Remark(ctx, "task-1", "staff-1", "note")
	require.NoError(t, err)
	require.ElementsMatch(t, submitted.EvidenceIDs, evidence.commentCalls)
}

func TestCaptureService_EmptyRemarkRejected(t *testing.T) {
	svc, _, _ := newCaptureFixture(domain.EvidenceKindPhoto)

	_, err := svc.Remark(context.Background(), "task-1", "staff-1", "")
	require.ErrorIs(t, err, domain.ErrEmptyComment)
}

func TestCaptureService_ReportClosesAttemptWithoutEvidence(t *testing.T) {
	svc, evidence, reports := newCaptureFixture(domain.EvidenceKindPhoto)
	ctx := context.Background()

	_, err := svc.Start(ctx, "task-1", "staff-1")
	require.NoError(t, err)

	report, err := svc.Report(ctx, "task-1", "staff-1", "equipment out for repair")
	require.NoError(t, err)
	require.Equal(t, "task-1", report.TaskID)
	require.Len(t, reports.reports, 1)
	require.Empty(t, evidence.submitCalls)

	_, err = svc.Session("task-1", "staff-1")
	require.ErrorIs(t, err, domain.ErrNoCaptureSession)
}

func TestCaptureService_ReportFailureKeepsAttempt(t *testing.T) {
	svc, _, reports := newCaptureFixture(domain.EvidenceKindPhoto)
	ctx := context.Background()

	_, err := svc.Start(ctx, "task-1", "staff-1")
	require.NoError(t, err)

	reports.err = errors.New("connection reset")
	_, err = svc.Report(ctx, "task-1", "staff-1", "broken fridge")
	require.Error(t, err)

	sess, err := svc.Session("task-1", "staff-1")
	require.NoError(t, err)
	require.Equal(t, capture.StatePhoto, sess.State)
}

func TestCaptureService_NoAbandonAfterSubmission(t *testing.T) {
	svc, _, reports := newCaptureFixture(domain.EvidenceKindPhoto)
	ctx := context.Background()

	_, err := svc.Start(ctx, "task-1", "staff-1")
	require.NoError(t, err)
	_, err = svc.AttachPhoto("task-1", "staff-1", photoArtifact())
	require.NoError(t, err)
	_, err = svc.Confirm(ctx, "task-1", "staff-1", "")
	require.NoError(t, err)

	require.ErrorIs(t, svc.Abort("task-1", "staff-1"), domain.ErrInvalidCaptureEvent)

	_, err = svc.Report(ctx, "task-1", "staff-1", "too late")
	require.ErrorIs(t, err, domain.ErrInvalidCaptureEvent)
	require.Empty(t, reports.reports)
}
