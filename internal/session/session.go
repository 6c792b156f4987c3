// Package session stores the state of open matchmaking browse flows.
//
// A browse flow is the descending candidate list of one matchmake request
// plus a cursor. Flows expire after a TTL measured from the last write, so an
// abandoned flow disappears without explicit cleanup.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/Sakemo/matchmake-bot/internal/model"
)

// DefaultTTL is how long an untouched browse flow stays open
const DefaultTTL = 60 * time.Second

// ErrNotFound is returned for unknown or expired sessions
var ErrNotFound = errors.New("session not found")

// Store persists match sessions by ID
type Store interface {
	// Save creates or replaces a session and restarts its TTL
	Save(ctx context.Context, s *model.MatchSession) error
	// Get returns a live session or ErrNotFound
	Get(ctx context.Context, id string) (*model.MatchSession, error)
	// Delete removes a session. Unknown IDs are not an error.
	Delete(ctx context.Context, id string) error
}
