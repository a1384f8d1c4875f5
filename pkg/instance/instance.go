package instance

import (
	"os"

	"github.com/google/uuid"
)

// SessionID returns the browser-profile equivalent for this process: the
// configured identifier when present, otherwise a freshly generated one.
// Generated ids are stable for the process lifetime only, so persisted slots
// keyed by them behave like a fresh profile on every start.
func SessionID() string {
	if id := os.Getenv("STOREFRONT_SESSION_ID"); id != "" {
		return id
	}
	return generated
}

var generated = uuid.NewString()
