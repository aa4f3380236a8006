package domain

import (
	"fmt"
	"time"
)

// Branch is the isolation boundary for staff, assignments and task catalogs
// within a multi-location business. Its timezone governs every wall-clock
// deadline comparison for tasks under it.
type Branch struct {
	ID        string
	Name      string
	Timezone  string
	CreatedAt time.Time
}

// Location resolves the branch timezone into a *time.Location.
func (b *Branch) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(b.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTimezone, b.Timezone)
	}
	return loc, nil
}

// Zone is a named grouping of related operational tasks within a branch.
// Zones are owned by the catalog surface and immutable from the core's
// perspective within a session.
type Zone struct {
	ID          string
	BranchID    string
	Name        string
	Description string
	Position    int
	CreatedAt   time.Time
}
