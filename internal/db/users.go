package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const userColumns = `id, name, email, role, password_hash, active,
	notification_preferences, privacy_settings, created_at, updated_at`

// CreateUser inserts a new account with the given role and password hash
func (db *DB) CreateUser(ctx context.Context, name, email, role, passwordHash string) (*User, error) {
	row := db.pool.QueryRow(ctx,
		`INSERT INTO users (name, email, role, password_hash)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+userColumns,
		name, email, role, passwordHash,
	)
	user, err := scanUser(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// GetUserByID retrieves a user by ID
func (db *DB) GetUserByID(ctx context.Context, id uuid.UUID) (*User, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id,
	)
	user, err := scanUser(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// GetUserByEmail retrieves a user by email
func (db *DB) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email,
	)
	user, err := scanUser(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return user, nil
}

// CheckEmailExists reports whether an account with the email already exists
func (db *DB) CheckEmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := db.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check email existence: %w", err)
	}
	return exists, nil
}

// SetUserActive toggles an account's active flag (admin moderation)
func (db *DB) SetUserActive(ctx context.Context, id uuid.UUID, active bool) (*User, error) {
	row := db.pool.QueryRow(ctx,
		`UPDATE users SET active = $2, updated_at = NOW() WHERE id = $1 RETURNING `+userColumns,
		id, active,
	)
	user, err := scanUser(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to set user active: %w", err)
	}
	return user, nil
}

// UpdateUserPreferences replaces the notification/privacy preference bags
func (db *DB) UpdateUserPreferences(ctx context.Context, id uuid.UUID, notifications, privacy JSONMap) (*User, error) {
	row := db.pool.QueryRow(ctx,
		`UPDATE users SET
			notification_preferences = COALESCE($2, notification_preferences),
			privacy_settings = COALESCE($3, privacy_settings),
			updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+userColumns,
		id, notifications, privacy,
	)
	user, err := scanUser(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update user preferences: %w", err)
	}
	return user, nil
}

// ListUsers retrieves users matching the options, newest first (admin)
func (db *DB) ListUsers(ctx context.Context, opts ListUsersOptions) ([]User, int, error) {
	where := ""
	var args []any
	if opts.Role != nil {
		args = append(args, *opts.Role)
		where = fmt.Sprintf(" WHERE role = $%d", len(args))
	}
	if opts.Active != nil {
		args = append(args, *opts.Active)
		if where == "" {
			where = fmt.Sprintf(" WHERE active = $%d", len(args))
		} else {
			where += fmt.Sprintf(" AND active = $%d", len(args))
		}
	}

	var total int
	if err := db.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	args = append(args, opts.Limit, opts.Offset)
	query := fmt.Sprintf(`SELECT `+userColumns+` FROM users%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		where, len(args)-1, len(args))

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, *user)
	}
	return users, total, rows.Err()
}

func scanUser(row pgx.Row) (*User, error) {
	var u User
	err := row.Scan(
		&u.ID, &u.Name, &u.Email, &u.Role, &u.PasswordHash, &u.Active,
		&u.NotificationPreferences, &u.PrivacySettings, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
