package config

const (
	// DefaultPort is the default HTTP server port.
	DefaultPort = "8080"

	// DefaultDatabaseURL is empty; must be provided via flag or environment.
	DefaultDatabaseURL = ""

	// DefaultSweepSchedule runs the overdue sweep every 15 minutes.
	DefaultSweepSchedule = "*/15 * * * *"
)
