package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/padips/padips-cli/internal/dbx"
	"github.com/padips/padips-cli/internal/models"
)

const (
	keyToken = "token"
	keyUser  = "user"
)

// SQLiteSessionStore keeps the session in a session_kv table.
type SQLiteSessionStore struct {
	db *sql.DB
}

var _ SessionStore = (*SQLiteSessionStore)(nil)

func NewSQLiteSessionStore(db *sql.DB) *SQLiteSessionStore {
	return &SQLiteSessionStore{db: db}
}

func (r *SQLiteSessionStore) get(ctx context.Context, q dbx.DBTX, key string) ([]byte, error) {
	var value []byte
	err := q.QueryRowContext(ctx, `SELECT value FROM session_kv WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session_kv[%s]: %w", key, err)
	}
	return value, nil
}

func (r *SQLiteSessionStore) set(ctx context.Context, q dbx.DBTX, key string, value []byte) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO session_kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set session_kv[%s]: %w", key, err)
	}
	return nil
}

// Session loads the persisted token and profile. A stored profile that no
// longer unmarshals is reported as an error so the caller can decide to
// clear it; a missing token or profile yields (nil, nil).
func (r *SQLiteSessionStore) Session(ctx context.Context) (*models.Session, error) {
	token, err := r.get(ctx, r.db, keyToken)
	if err != nil {
		return nil, err
	}
	userRaw, err := r.get(ctx, r.db, keyUser)
	if err != nil {
		return nil, err
	}
	if len(token) == 0 || len(userRaw) == 0 {
		return nil, nil
	}

	var user models.UserProfile
	if err := json.Unmarshal(userRaw, &user); err != nil {
		return nil, fmt.Errorf("failed to decode stored profile: %w", err)
	}

	return &models.Session{Token: string(token), User: user}, nil
}

// SaveSession writes token and profile in a single transaction.
func (r *SQLiteSessionStore) SaveSession(ctx context.Context, s models.Session) error {
	userRaw, err := json.Marshal(s.User)
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}

	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := r.set(ctx, tx, keyToken, []byte(s.Token)); err != nil {
			return err
		}
		return r.set(ctx, tx, keyUser, userRaw)
	})
}

// Clear removes both keys. Idempotent.
func (r *SQLiteSessionStore) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM session_kv WHERE key IN (?, ?)`, keyToken, keyUser)
	if err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
