package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"pet-care-tracker/internal/domain/users"
)

type UsersRepo struct {
	db *sql.DB
}

func NewUsersRepo(db *sql.DB) *UsersRepo {
	return &UsersRepo{db: db}
}

func (r *UsersRepo) Create(ctx context.Context, u users.User) (int64, error) {
	prefs, err := json.Marshal(u.NotificationPreferences)
	if err != nil {
		return 0, fmt.Errorf("marshal preferences: %w", err)
	}

	var id int64
	err = r.db.QueryRowContext(ctx, `
		INSERT INTO users (username, password, email, notification_preferences, created_at)
		VALUES ($1, $2, $3, $4::jsonb, $5)
		RETURNING id
	`,
		u.Username,
		u.PasswordHash,
		emptyAsNull(u.Email),
		string(prefs),
		u.CreatedAt,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, users.ErrDuplicateUsername
		}
		return 0, err
	}
	return id, nil
}

const selectUser = `
	SELECT id, username, password, COALESCE(email, ''), notification_preferences, created_at
	FROM users
`

func (r *UsersRepo) GetByID(ctx context.Context, id int64) (users.User, error) {
	return scanUser(r.db.QueryRowContext(ctx, selectUser+` WHERE id = $1`, id))
}

func (r *UsersRepo) GetByUsername(ctx context.Context, username string) (users.User, error) {
	return scanUser(r.db.QueryRowContext(ctx, selectUser+` WHERE username = $1`, username))
}

func (r *UsersRepo) Update(ctx context.Context, u users.User) error {
	prefs, err := json.Marshal(u.NotificationPreferences)
	if err != nil {
		return fmt.Errorf("marshal preferences: %w", err)
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET username = $2, password = $3, email = $4, notification_preferences = $5::jsonb
		WHERE id = $1
	`,
		u.ID,
		u.Username,
		u.PasswordHash,
		emptyAsNull(u.Email),
		string(prefs),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return users.ErrDuplicateUsername
		}
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return users.ErrNotFound
	}
	return nil
}

func scanUser(row *sql.Row) (users.User, error) {
	var u users.User
	var prefs []byte
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Email, &prefs, &u.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return users.User{}, users.ErrNotFound
		}
		return users.User{}, err
	}
	if len(prefs) > 0 {
		if err := json.Unmarshal(prefs, &u.NotificationPreferences); err != nil {
			return users.User{}, fmt.Errorf("decode preferences: %w", err)
		}
	}
	return u, nil
}
