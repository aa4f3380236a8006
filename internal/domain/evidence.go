package domain

import "time"

// MediaKind identifies the artifact type of a single evidence record.
type MediaKind string

const (
	MediaKindPhoto MediaKind = "PHOTO"
	MediaKindVideo MediaKind = "VIDEO"
)

// Location is an explicit optional device location. A nil *Location means
// "no location"; a real coordinate is never overloaded as a sentinel.
type Location struct {
	Latitude  float64
	Longitude float64
}

// Evidence is a single proof submission. Once created it is immutable except
// for appended comments, which live in their own append-only records.
type Evidence struct {
	ID          string
	TaskID      string
	FileURL     string
	MediaKind   MediaKind
	CapturedAt  time.Time
	Location    *Location
	Comment     string
	SubmittedBy string
	CreatedAt   time.Time
}

// EvidenceComment is a post-submission remark appended to an evidence record.
type EvidenceComment struct {
	ID         string
	EvidenceID string
	Body       string
	AuthorID   string
	CreatedAt  time.Time
}

// EvidenceRecord is an evidence row joined with its submitter's display name,
// as returned by the history browser.
type EvidenceRecord struct {
	Evidence      Evidence
	SubmitterName string
}
