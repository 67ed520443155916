// Package storage persists the session across process restarts. It is the
// local analog of the device key-value storage the mobile app used: two
// logical keys, an opaque token and a serialized profile, kept in a small
// sqlite database.
package storage

import (
	"context"

	"github.com/padips/padips-cli/internal/models"
)

// SessionStore is a passive persistence collaborator for the session
// controller. It never interprets the token.
//
// Contract:
//   - Session returns (nil, nil) when no session is stored.
//   - SaveSession writes token and profile atomically.
//   - Clear removes both keys and is a no-op when nothing is stored.
type SessionStore interface {
	Session(ctx context.Context) (*models.Session, error)
	SaveSession(ctx context.Context, s models.Session) error
	Clear(ctx context.Context) error
}
