package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/bnema/dimmer/internal/domain/repository"
	"github.com/bnema/dimmer/internal/logging"
)

const (
	getPreference = `SELECT value FROM preferences WHERE key = ?`

	setPreference = `INSERT INTO preferences (key, value, updated_at)
VALUES (?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`

	deletePreference = `DELETE FROM preferences WHERE key = ?`
)

type preferenceRepo struct {
	db *sql.DB
}

// NewPreferenceRepository creates a new SQLite-backed preference repository.
func NewPreferenceRepository(db *sql.DB) repository.PreferenceRepository {
	return &preferenceRepo{db: db}
}

func (r *preferenceRepo) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := r.db.QueryRowContext(ctx, getPreference, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get preference %q: %w", key, err)
	}
	return value, true, nil
}

func (r *preferenceRepo) Set(ctx context.Context, key, value string) error {
	log := logging.FromContext(ctx)
	log.Debug().Str("key", key).Str("value", value).Msg("setting preference")

	if _, err := r.db.ExecContext(ctx, setPreference, key, value); err != nil {
		return fmt.Errorf("set preference %q: %w", key, err)
	}
	return nil
}

func (r *preferenceRepo) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, deletePreference, key); err != nil {
		return fmt.Errorf("delete preference %q: %w", key, err)
	}
	return nil
}
