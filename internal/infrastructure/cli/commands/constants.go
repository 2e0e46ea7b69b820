package commands

// CLI-specific constants
const (
	// TimestampFormat renders history timestamps.
	TimestampFormat = "2006-01-02 15:04"

	// DefaultHistoryLimit caps 'history list' output.
	DefaultHistoryLimit = 20

	// DefaultHistorySearchLimit caps 'history search' output.
	DefaultHistorySearchLimit = 20

	// MaxHistoryAnalysisRecords bounds the records loaded for stats.
	MaxHistoryAnalysisRecords = 1000

	// DefaultHistoryRetainDays is the default retention window.
	DefaultHistoryRetainDays = 90
)
