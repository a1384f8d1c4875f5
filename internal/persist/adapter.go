// Package persist abstracts the named-slot key-value medium that state
// snapshots survive in between sessions. Adapters never interpret payloads;
// encoding and sanitizing belong to the domain packages.
package persist

import "context"

// Adapter is the sole surface touching the storage medium. Load reports
// absence via the second return value; an error means the medium itself
// misbehaved and callers are expected to degrade rather than propagate.
type Adapter interface {
	Load(ctx context.Context, slot string) (payload string, found bool, err error)
	Save(ctx context.Context, slot, payload string) error
	Ping(ctx context.Context) error
}
