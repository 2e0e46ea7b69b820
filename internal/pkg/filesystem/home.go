package filesystem

import "os"

// UserHomeDir resolves the home directory for the config, cache and
// history paths, falling back to "." when it cannot be determined.
func UserHomeDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}
