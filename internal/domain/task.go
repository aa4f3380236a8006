package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// EvidenceKind declares which media artifacts a task requires as proof.
type EvidenceKind string

const (
	EvidenceKindPhoto EvidenceKind = "PHOTO"
	EvidenceKindVideo EvidenceKind = "VIDEO"
	EvidenceKindBoth  EvidenceKind = "BOTH"
)

// IsValid checks if the kind is one of the allowed values.
func (k EvidenceKind) IsValid() bool {
	switch k {
	case EvidenceKindPhoto, EvidenceKindVideo, EvidenceKindBoth:
		return true
	default:
		return false
	}
}

// RequiresPhoto returns true if a photo artifact is mandatory.
func (k EvidenceKind) RequiresPhoto() bool {
	return k == EvidenceKindPhoto || k == EvidenceKindBoth
}

// RequiresVideo returns true if a video artifact is mandatory.
func (k EvidenceKind) RequiresVideo() bool {
	return k == EvidenceKindVideo || k == EvidenceKindBoth
}

// TaskStatus is the live classification of a task, derived per render from
// evidence and deadline. It is never persisted.
type TaskStatus string

const (
	TaskStatusDone    TaskStatus = "DONE"
	TaskStatusLate    TaskStatus = "LATE"
	TaskStatusPending TaskStatus = "PENDING"
)

// DayStatus is the historical two-state classification for a past date.
// A past task that was never done cannot still be pending.
type DayStatus string

const (
	DayStatusDone   DayStatus = "DONE"
	DayStatusMissed DayStatus = "MISSED"
)

// Weekday is a three-letter weekday code as carried on the wire.
type Weekday string

const (
	WeekdayMonday    Weekday = "MON"
	WeekdayTuesday   Weekday = "TUE"
	WeekdayWednesday Weekday = "WED"
	WeekdayThursday  Weekday = "THU"
	WeekdayFriday    Weekday = "FRI"
	WeekdaySaturday  Weekday = "SAT"
	WeekdaySunday    Weekday = "SUN"
)

// IsValid checks if the code is one of the seven allowed values.
func (w Weekday) IsValid() bool {
	switch w {
	case WeekdayMonday, WeekdayTuesday, WeekdayWednesday, WeekdayThursday,
		WeekdayFriday, WeekdaySaturday, WeekdaySunday:
		return true
	default:
		return false
	}
}

// WeekdayOf maps a time.Weekday to its wire code.
func WeekdayOf(d time.Weekday) Weekday {
	switch d {
	case time.Monday:
		return WeekdayMonday
	case time.Tuesday:
		return WeekdayTuesday
	case time.Wednesday:
		return WeekdayWednesday
	case time.Thursday:
		return WeekdayThursday
	case time.Friday:
		return WeekdayFriday
	case time.Saturday:
		return WeekdaySaturday
	default:
		return WeekdaySunday
	}
}

// WeekdaySet is the set of weekdays a task recurs on.
// The empty set means "every day", not "no days".
type WeekdaySet []Weekday

// ScheduledOn returns true if the task recurs on the given weekday.
func (s WeekdaySet) ScheduledOn(d time.Weekday) bool {
	if len(s) == 0 {
		return true
	}
	code := WeekdayOf(d)
	for _, w := range s {
		if w == code {
			return true
		}
	}
	return false
}

// Validate checks every code in the set.
func (s WeekdaySet) Validate() error {
	for _, w := range s {
		if !w.IsValid() {
			return fmt.Errorf("%w: %q", ErrInvalidWeekday, w)
		}
	}
	return nil
}

// LimitTime is a recurring daily deadline as wall-clock time of day,
// evaluated in the owning branch's timezone. It carries no date component.
type LimitTime struct {
	Hour   int
	Minute int
}

// ParseLimitTime parses a 24-hour "HH:MM" string.
func ParseLimitTime(s string) (*LimitTime, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidLimitTime, s)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidLimitTime, s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidLimitTime, s)
	}
	return &LimitTime{Hour: hour, Minute: minute}, nil
}

// String renders the deadline back to its "HH:MM" wire form.
func (lt LimitTime) String() string {
	return fmt.Sprintf("%02d:%02d", lt.Hour, lt.Minute)
}

// PassedAt returns true if t's wall-clock time of day is past the deadline.
// The caller is responsible for converting t into the branch's timezone.
func (lt LimitTime) PassedAt(t time.Time) bool {
	return t.Hour()*60+t.Minute() > lt.Hour*60+lt.Minute
}

// Task is a recurring unit of work requiring photographic or video proof.
// Tasks are created and edited by the catalog surface; the compliance core
// only attaches evidence and moves the assignment.
type Task struct {
	ID           string
	ZoneID       string
	Title        string
	Description  string
	LimitTime    *LimitTime
	EvidenceKind EvidenceKind
	Days         WeekdaySet
	AssigneeID   *string
	Position     int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAssignedTo checks if the task is assigned to the given staff member.
func (t *Task) IsAssignedTo(staffID string) bool {
	return t.AssigneeID != nil && *t.AssigneeID == staffID
}

// TaskSnapshot is a task together with the per-render metadata the status
// evaluator and filter layer need. It is produced by the repository and
// consumed by pure functions only.
type TaskSnapshot struct {
	Task           Task
	AssigneeName   *string
	LastEvidenceAt *time.Time
}
