package domain

// Config mirrors ~/.serpkit/config.yaml.
type Config struct {
	ConfigFormatVersion string          `yaml:"config_format_version"`
	Credentials         Credentials     `yaml:"credentials"`
	Defaults            Defaults        `yaml:"defaults"`
	History             HistorySettings `yaml:"history"`
	RateLimit           RateSettings    `yaml:"rate_limit"`
}

// Credentials holds the DataForSEO basic-auth pair. The collection
// engine treats these as opaque and only hands them to the API client.
type Credentials struct {
	APILogin    string `yaml:"api_login" envconfig:"API_LOGIN"`
	APIPassword string `yaml:"api_password" envconfig:"API_PASSWORD"`
}

// Defaults captures per-run knobs that flags may override.
type Defaults struct {
	Language       string `yaml:"language"`
	Country        string `yaml:"country"`
	PAADepth       int    `yaml:"paa_depth"`
	MaxQuestions   int    `yaml:"max_questions"`
	MaxRequests    int    `yaml:"max_requests"`
	TimeoutSeconds int    `yaml:"timeout"`
	Concurrency    int    `yaml:"concurrency"`
}

// HistorySettings defines run-log retention behavior.
type HistorySettings struct {
	Enabled       bool `yaml:"enabled"`
	RetentionDays int  `yaml:"retention_days"`
}

// RateSettings throttles calls against the shared provider quota.
type RateSettings struct {
	RequestsPerMinute int `yaml:"requests_per_minute"`
}
