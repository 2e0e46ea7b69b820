package dataforseo

import "fmt"

// NetworkError wraps transport-level failures (DNS, TLS, timeouts).
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ProviderError covers non-success HTTP statuses and response bodies
// that cannot be decoded.
type ProviderError struct {
	StatusCode int
	Message    string
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("provider error: status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("provider error: %s", e.Message)
}

// ApplicationError is a logical failure the provider reports inside an
// otherwise well-formed response (status_code != 20000, at the top
// level or on a task).
type ApplicationError struct {
	StatusCode    int
	StatusMessage string
}

func (e *ApplicationError) Error() string {
	return fmt.Sprintf("dataforseo error: status_code=%d, status_message=%s", e.StatusCode, e.StatusMessage)
}
