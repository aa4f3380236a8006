// Package capture models the evidence capture workflow as a pure state
// machine: a tagged-union event applied to an immutable session value.
// All I/O (uploading, persisting, reporting) lives in the service layer;
// this package only answers "is this step allowed, and what comes next".
package capture

import (
	"fmt"
	"time"

	"github.com/taskproof/taskproof/internal/domain"
)

// State is the current step of a capture attempt. Exactly one state is
// active at a time per attempt.
type State string

const (
	// StateClosed is the terminal state: the attempt has ended and a new
	// one may be started for the same task.
	StateClosed State = "CLOSED"

	StatePhoto     State = "PHOTO"
	StateVideo     State = "VIDEO"
	StateReview    State = "REVIEW"
	StateSuccess   State = "SUCCESS"
	StateAddRemark State = "ADD_REMARK"
)

// Artifact is a single captured media item awaiting submission.
// Location is optional; a denied or missing device location never blocks
// capture.
type Artifact struct {
	FileURL    string
	CapturedAt time.Time
	Location   *domain.Location
}

// Session is the full state of one capture attempt for one task.
type Session struct {
	TaskID      string
	StaffID     string
	Kind        domain.EvidenceKind
	State       State
	Photo       *Artifact
	Video       *Artifact
	EvidenceIDs []string
}

// NewSession starts an attempt in the initial capture state dictated by the
// task's evidence kind: PHOTO and BOTH start at photo, VIDEO starts at video.
func NewSession(taskID, staffID string, kind domain.EvidenceKind) (Session, error) {
	if !kind.IsValid() {
		return Session{}, fmt.Errorf("%w: %q", domain.ErrInvalidEvidenceKind, kind)
	}
	state := StatePhoto
	if kind == domain.EvidenceKindVideo {
		state = StateVideo
	}
	return Session{
		TaskID:  taskID,
		StaffID: staffID,
		Kind:    kind,
		State:   state,
	}, nil
}

// Event is one member of the closed set of things that can happen to an
// attempt.
type Event interface {
	isCaptureEvent()
}

// PhotoCaptured carries a freshly acquired photo artifact.
type PhotoCaptured struct{ Artifact Artifact }

// VideoCaptured carries a freshly acquired video artifact.
type VideoCaptured struct{ Artifact Artifact }

// RetakePhoto returns from review to the photo step, preserving any video.
type RetakePhoto struct{}

// RetakeVideo returns from review to the video step, preserving any photo.
type RetakeVideo struct{}

// Submitted records that the service persisted the whole artifact batch.
type Submitted struct{ EvidenceIDs []string }

// OpenRemark moves from the success screen to the remark editor.
type OpenRemark struct{}

// RemarkAdded records that a remark was appended to every batch record.
type RemarkAdded struct{}

// CancelRemark returns from the remark editor without mutation.
type CancelRemark struct{}

// Finished closes a successful attempt; the caller must refresh its list.
type Finished struct{}

// Aborted closes an in-progress attempt with no side effects.
type Aborted struct{}

// ReportFiled closes an in-progress attempt because a blocking-issue report
// was filed instead.
type ReportFiled struct{}

func (PhotoCaptured) isCaptureEvent() {}
func (VideoCaptured) isCaptureEvent() {}
func (RetakePhoto) isCaptureEvent()   {}
func (RetakeVideo) isCaptureEvent()   {}
func (Submitted) isCaptureEvent()     {}
func (OpenRemark) isCaptureEvent()    {}
func (RemarkAdded) isCaptureEvent()   {}
func (CancelRemark) isCaptureEvent()  {}
func (Finished) isCaptureEvent()      {}
func (Aborted) isCaptureEvent()       {}
func (ReportFiled) isCaptureEvent()   {}

// Apply computes the next session value for an event. It never performs I/O
// and returns domain.ErrInvalidCaptureEvent for any event the current state
// does not accept.
func Apply(s Session, ev Event) (Session, error) {
	switch e := ev.(type) {
	case PhotoCaptured:
		if s.State != StatePhoto {
			return s, invalidEvent(s.State, "photo captured")
		}
		if e.Artifact.FileURL == "" {
			return s, domain.ErrEmptyFileURL
		}
		a := e.Artifact
		s.Photo = &a
		if s.Kind == domain.EvidenceKindBoth && s.Video == nil {
			s.State = StateVideo
		} else {
			s.State = StateReview
		}
		return s, nil

	case VideoCaptured:
		if s.State != StateVideo {
			return s, invalidEvent(s.State, "video captured")
		}
		if e.Artifact.FileURL == "" {
			return s, domain.ErrEmptyFileURL
		}
		a := e.Artifact
		s.Video = &a
		if s.Kind == domain.EvidenceKindBoth && s.Photo == nil {
			s.State = StatePhoto
		} else {
			s.State = StateReview
		}
		return s, nil

	case RetakePhoto:
		if s.State != StateReview || !s.Kind.RequiresPhoto() {
			return s, invalidEvent(s.State, "retake photo")
		}
		s.State = StatePhoto
		return s, nil

	case RetakeVideo:
		if s.State != StateReview || !s.Kind.RequiresVideo() {
			return s, invalidEvent(s.State, "retake video")
		}
		s.State = StateVideo
		return s, nil

	case Submitted:
		if s.State != StateReview {
			return s, invalidEvent(s.State, "submitted")
		}
		if err := s.CanSubmit(); err != nil {
			return s, err
		}
		s.EvidenceIDs = e.EvidenceIDs
		s.State = StateSuccess
		return s, nil

	case OpenRemark:
		if s.State != StateSuccess {
			return s, invalidEvent(s.State, "open remark")
		}
		s.State = StateAddRemark
		return s, nil

	case RemarkAdded, CancelRemark:
		if s.State != StateAddRemark {
			return s, invalidEvent(s.State, "close remark")
		}
		s.State = StateSuccess
		return s, nil

	case Finished:
		if s.State != StateSuccess {
			return s, invalidEvent(s.State, "finished")
		}
		s.State = StateClosed
		return s, nil

	case Aborted:
		if !s.canAbandon() {
			return s, invalidEvent(s.State, "aborted")
		}
		s.State = StateClosed
		return s, nil

	case ReportFiled:
		if !s.canAbandon() {
			return s, invalidEvent(s.State, "report filed")
		}
		s.State = StateClosed
		return s, nil

	default:
		return s, fmt.Errorf("%w: unknown event %T", domain.ErrInvalidCaptureEvent, ev)
	}
}

// CanSubmit is the review-screen guard: every artifact the evidence kind
// requires must be present before submission.
func (s Session) CanSubmit() error {
	if s.Kind.RequiresPhoto() && s.Photo == nil {
		return fmt.Errorf("%w: photo", domain.ErrMissingArtifact)
	}
	if s.Kind.RequiresVideo() && s.Video == nil {
		return fmt.Errorf("%w: video", domain.ErrMissingArtifact)
	}
	return nil
}

// Artifacts returns the captured artifacts in capture order, photo first.
func (s Session) Artifacts() []Artifact {
	var out []Artifact
	if s.Photo != nil {
		out = append(out, *s.Photo)
	}
	if s.Video != nil {
		out = append(out, *s.Video)
	}
	return out
}

// Closed reports whether the attempt has ended.
func (s Session) Closed() bool {
	return s.State == StateClosed
}

// canAbandon reports whether the attempt may end without evidence:
// only from the capture and review steps, never after submission.
func (s Session) canAbandon() bool {
	return s.State == StatePhoto || s.State == StateVideo || s.State == StateReview
}

func invalidEvent(state State, event string) error {
	return fmt.Errorf("%w: %s in state %s", domain.ErrInvalidCaptureEvent, event, state)
}
