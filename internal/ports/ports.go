// Package ports defines the interfaces (ports) for the hexagonal architecture.
//
// This package establishes the contract between the application core and external
// adapters (infrastructure). Following the Ports and Adapters (Hexagonal) pattern,
// these interfaces allow the collection engine to remain independent of specific
// implementations like the DataForSEO HTTP client, output writers, or the CLI
// framework.
package ports

import (
	"context"

	"github.com/doeshing/serpkit-go/internal/domain"
)

// ConfigProvider loads the latest configuration from persistent storage.
// Implementations typically read from ~/.serpkit/config.yaml.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// QuestionSource performs one provider round trip for a single keyword
// and returns the People Also Ask questions it surfaces, in response
// order. It is stateless, never retries, and is safe to call
// concurrently for distinct keywords.
type QuestionSource interface {
	FetchQuestions(ctx context.Context, keyword string, locale domain.Locale) ([]string, error)
}

// SERPSource fetches a full result page for one keyword.
type SERPSource interface {
	FetchSERP(ctx context.Context, req domain.SERPRequest) (domain.SERPPage, error)
}

// LocationCatalog retrieves the provider's full location list.
type LocationCatalog interface {
	FetchLocations(ctx context.Context) ([]domain.Location, error)
}

// ProgressSink receives one event per traversal step. Implementations
// must be fire-and-forget: the engine never blocks on them and never
// changes behavior based on them.
type ProgressSink interface {
	OnStep(event domain.StepEvent)
}

// RunRecorder persists run history.
type RunRecorder interface {
	Save(record domain.RunRecord) error
	Records(limit int, search string) ([]domain.RunRecord, error)
	Clear() error
	PruneOlderThan(days int) error
	ExportJSON(dest string) error
}

// PageFetcher retrieves raw page bodies for the sitemap and schema
// commands.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) (body []byte, statusCode int, err error)
}

// CatalogCache stores the downloaded location catalog between runs.
type CatalogCache interface {
	Get() ([]domain.Location, bool, error)
	Set([]domain.Location) error
	Clear() error
}

// ConfirmationPrompter asks the user before overwriting existing
// output files.
type ConfirmationPrompter interface {
	ConfirmOverwrite(path string) (bool, error)
	Enabled() bool
}

// Logger provides structured logging abstraction for the application layer.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
