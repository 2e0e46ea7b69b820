package domain

import "time"

// RunRecord captures one root-keyword collection run for the history
// log.
type RunRecord struct {
	Timestamp    time.Time `json:"timestamp"`
	Command      string    `json:"command"`
	RootKeyword  string    `json:"root_keyword"`
	LanguageCode string    `json:"language_code"`
	LocationCode int       `json:"location_code"`
	RequestsUsed int       `json:"requests_used"`
	ResultCount  int       `json:"result_count"`
	Success      bool      `json:"success"`
	DurationMS   int64     `json:"duration_ms"`
}
