package domain

// SchemaReport holds the schema.org types detected on one URL.
type SchemaReport struct {
	URL        string
	StatusCode int
	Types      []string
	Err        error
}
