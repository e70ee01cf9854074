package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// GetSettings retrieves the system settings bag. Returns an empty map when no
// settings row exists yet.
func (db *DB) GetSettings(ctx context.Context) (JSONMap, error) {
	var settings JSONMap
	err := db.pool.QueryRow(ctx,
		`SELECT value FROM system_settings WHERE key = 'global'`,
	).Scan(&settings)
	if err != nil {
		if err == pgx.ErrNoRows {
			return JSONMap{}, nil
		}
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	return settings, nil
}

// UpdateSettings replaces the system settings bag
func (db *DB) UpdateSettings(ctx context.Context, settings JSONMap) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO system_settings (key, value) VALUES ('global', $1)
		 ON CONFLICT (key) DO UPDATE SET value = $1, updated_at = NOW()`,
		settings,
	)
	if err != nil {
		return fmt.Errorf("failed to update settings: %w", err)
	}
	return nil
}
