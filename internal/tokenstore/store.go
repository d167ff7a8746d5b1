// Package tokenstore persists the session's bearer credential pair
// behind a small key-value interface so the storage medium is
// swappable without touching session logic.
package tokenstore

import "github.com/medicare/clinicctl/internal/model"

// Store holds at most one credential pair. The pair is written and
// deleted as a unit; implementations must never leave one token behind
// without the other.
type Store interface {
	// Save replaces the stored pair.
	Save(pair model.TokenPair) error
	// Load returns the stored pair, or an empty pair (and nil error)
	// when nothing is stored.
	Load() (model.TokenPair, error)
	// Clear removes the pair. Clearing an empty store succeeds.
	Clear() error
}
