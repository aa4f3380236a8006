package capture_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskproof/taskproof/internal/capture"
	"github.com/taskproof/taskproof/internal/domain"
)

func artifact(url string) capture.Artifact {
	return capture.Artifact{
		FileURL:    url,
		CapturedAt: time.Date(2026, 3, 2, 10, 30, 0, 0, time.UTC),
	}
}

func TestNewSession_InitialState(t *testing.T) {
	tests := []struct {
		name string
		kind domain.EvidenceKind
		want capture.State
	}{
		{"photo only starts at photo", domain.EvidenceKindPhoto, capture.StatePhoto},
		{"both starts at photo", domain.EvidenceKindBoth, capture.StatePhoto},
		{"video only starts at video", domain.EvidenceKindVideo, capture.StateVideo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := capture.NewSession("task-1", "staff-1", tt.kind)
			require.NoError(t, err)
			assert.Equal(t, tt.want, s.State)
		})
	}
}

func TestNewSession_InvalidKind(t *testing.T) {
	_, err := capture.NewSession("task-1", "staff-1", "AUDIO")
	assert.ErrorIs(t, err, domain.ErrInvalidEvidenceKind)
}

// Scenario: PHOTO-only task runs PHOTO -> REVIEW -> SUCCESS and never enters
// the video step.
func TestApply_PhotoOnlyCleanRun(t *testing.T) {
	s, err := capture.NewSession("task-1", "staff-1", domain.EvidenceKindPhoto)
	require.NoError(t, err)

	s, err = capture.Apply(s, capture.PhotoCaptured{Artifact: artifact("https://cdn/p.jpg")})
	require.NoError(t, err)
	assert.Equal(t, capture.StateReview, s.State)

	s, err = capture.Apply(s, capture.Submitted{EvidenceIDs: []string{"ev-1"}})
	require.NoError(t, err)
	assert.Equal(t, capture.StateSuccess, s.State)
	assert.Equal(t, []string{"ev-1"}, s.EvidenceIDs)

	// A video event is never valid anywhere on this path.
	_, err = capture.Apply(s, capture.VideoCaptured{Artifact: artifact("https://cdn/v.mp4")})
	assert.ErrorIs(t, err, domain.ErrInvalidCaptureEvent)
}

// Scenario: BOTH runs PHOTO -> VIDEO -> REVIEW -> SUCCESS.
func TestApply_BothCleanRun(t *testing.T) {
	s, err := capture.NewSession("task-1", "staff-1", domain.EvidenceKindBoth)
	require.NoError(t, err)

	s, err = capture.Apply(s, capture.PhotoCaptured{Artifact: artifact("https://cdn/p.jpg")})
	require.NoError(t, err)
	assert.Equal(t, capture.StateVideo, s.State)

	s, err = capture.Apply(s, capture.VideoCaptured{Artifact: artifact("https://cdn/v.mp4")})
	require.NoError(t, err)
	assert.Equal(t, capture.StateReview, s.State)

	s, err = capture.Apply(s, capture.Submitted{EvidenceIDs: []string{"ev-1", "ev-2"}})
	require.NoError(t, err)
	assert.Equal(t, capture.StateSuccess, s.State)
	assert.Len(t, s.Artifacts(), 2)
}

// Submitting from review with a required artifact missing must be rejected.
func TestApply_SubmitGuardRejectsPartialBatch(t *testing.T) {
	s := capture.Session{
		TaskID:  "task-1",
		StaffID: "staff-1",
		Kind:    domain.EvidenceKindBoth,
		State:   capture.StateReview,
		Photo:   &capture.Artifact{FileURL: "https://cdn/p.jpg"},
	}

	_, err := capture.Apply(s, capture.Submitted{EvidenceIDs: []string{"ev-1"}})
	assert.ErrorIs(t, err, domain.ErrMissingArtifact)
}

// Re-capture: retaking the photo from review leaves the video untouched and
// returns to review after the new capture.
func TestApply_RetakePhotoPreservesVideo(t *testing.T) {
	s, err := capture.NewSession("task-1", "staff-1", domain.EvidenceKindBoth)
	require.NoError(t, err)

	s, err = capture.Apply(s, capture.PhotoCaptured{Artifact: artifact("https://cdn/p1.jpg")})
	require.NoError(t, err)
	s, err = capture.Apply(s, capture.VideoCaptured{Artifact: artifact("https://cdn/v.mp4")})
	require.NoError(t, err)

	s, err = capture.Apply(s, capture.RetakePhoto{})
	require.NoError(t, err)
	assert.Equal(t, capture.StatePhoto, s.State)

	s, err = capture.Apply(s, capture.PhotoCaptured{Artifact: artifact("https://cdn/p2.jpg")})
	require.NoError(t, err)
	assert.Equal(t, capture.StateReview, s.State)
	assert.Equal(t, "https://cdn/p2.jpg", s.Photo.FileURL)
	require.NotNil(t, s.Video)
	assert.Equal(t, "https://cdn/v.mp4", s.Video.FileURL)
}

func TestApply_RetakeVideoRequiresVideoKind(t *testing.T) {
	s := capture.Session{
		Kind:  domain.EvidenceKindPhoto,
		State: capture.StateReview,
		Photo: &capture.Artifact{FileURL: "https://cdn/p.jpg"},
	}

	_, err := capture.Apply(s, capture.RetakeVideo{})
	assert.ErrorIs(t, err, domain.ErrInvalidCaptureEvent)
}

// Filing a report from a capture step closes the attempt.
func TestApply_ReportClosesAttempt(t *testing.T) {
	s, err := capture.NewSession("task-1", "staff-1", domain.EvidenceKindPhoto)
	require.NoError(t, err)

	s, err = capture.Apply(s, capture.ReportFiled{})
	require.NoError(t, err)
	assert.True(t, s.Closed())
	assert.Empty(t, s.EvidenceIDs)
}

// Reports and aborts are only reachable before submission.
func TestApply_NoAbandonAfterSuccess(t *testing.T) {
	s := capture.Session{
		Kind:        domain.EvidenceKindPhoto,
		State:       capture.StateSuccess,
		Photo:       &capture.Artifact{FileURL: "https://cdn/p.jpg"},
		EvidenceIDs: []string{"ev-1"},
	}

	_, err := capture.Apply(s, capture.Aborted{})
	assert.ErrorIs(t, err, domain.ErrInvalidCaptureEvent)

	_, err = capture.Apply(s, capture.ReportFiled{})
	assert.ErrorIs(t, err, domain.ErrInvalidCaptureEvent)
}

func TestApply_RemarkRoundTrip(t *testing.T) {
	s := capture.Session{
		Kind:        domain.EvidenceKindPhoto,
		State:       capture.StateSuccess,
		Photo:       &capture.Artifact{FileURL: "https://cdn/p.jpg"},
		EvidenceIDs: []string{"ev-1"},
	}

	s, err := capture.Apply(s, capture.OpenRemark{})
	require.NoError(t, err)
	assert.Equal(t, capture.StateAddRemark, s.State)

	// Cancelling returns to success without mutation.
	s, err = capture.Apply(s, capture.CancelRemark{})
	require.NoError(t, err)
	assert.Equal(t, capture.StateSuccess, s.State)

	s, err = capture.Apply(s, capture.OpenRemark{})
	require.NoError(t, err)
	s, err = capture.Apply(s, capture.RemarkAdded{})
	require.NoError(t, err)
	assert.Equal(t, capture.StateSuccess, s.State)

	s, err = capture.Apply(s, capture.Finished{})
	require.NoError(t, err)
	assert.True(t, s.Closed())
}

func TestApply_EmptyFileURLRejected(t *testing.T) {
	s, err := capture.NewSession("task-1", "staff-1", domain.EvidenceKindPhoto)
	require.NoError(t, err)

	_, err = capture.Apply(s, capture.PhotoCaptured{Artifact: capture.Artifact{}})
	assert.ErrorIs(t, err, domain.ErrEmptyFileURL)
}
