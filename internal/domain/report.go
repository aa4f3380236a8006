package domain

import "time"

// Report is a staff-filed blocking issue, raised instead of completing a
// capture attempt. Reports are terminal: they have no further lifecycle.
type Report struct {
	ID        string
	TaskID    string
	Reason    string
	FiledBy   string
	CreatedAt time.Time
}
