package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/tallyhq/crm/internal/crm/domain"
)

type usersRepo struct {
	db dbtx
}

const userColumns = `id, username, password_hash, totp_secret, totp_enabled, created_at, updated_at`

func scanUser(row *sql.Row) (domain.User, error) {
	var (
		u       domain.User
		secret  sql.NullString
		enabled sql.NullTime
	)
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &secret, &enabled, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	u.TOTPSecret = mapNullStringPtr(secret)
	u.TOTPEnabled = mapNullTimePtr(enabled)
	return u, nil
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return scanUser(row)
}

func (r *usersRepo) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	// username carries COLLATE NOCASE, so the comparison is case-insensitive.
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = ?`, username)
	return scanUser(row)
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, username, password_hash, totp_secret, totp_enabled, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Username, u.PasswordHash,
		mapOptionalString(u.TOTPSecret), mapOptionalTime(u.TOTPEnabled),
		now, now,
	)
	return mapConstraint(err)
}

func (r *usersRepo) DeleteUser(ctx context.Context, userID string) error {
	return requireRow(r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, userID))
}

func (r *usersRepo) UpdateTOTPSecret(ctx context.Context, userID string, secret string) error {
	return requireRow(r.db.ExecContext(ctx, `
		UPDATE users SET totp_secret = ?, updated_at = ? WHERE id = ?`,
		secret, time.Now().UTC(), userID))
}

func (r *usersRepo) EnableTOTP(ctx context.Context, userID string) error {
	now := time.Now().UTC()
	return requireRow(r.db.ExecContext(ctx, `
		UPDATE users SET totp_enabled = ?, updated_at = ? WHERE id = ?`,
		now, now, userID))
}

func (r *usersRepo) DisableTOTP(ctx context.Context, userID string) error {
	return requireRow(r.db.ExecContext(ctx, `
		UPDATE users SET totp_secret = NULL, totp_enabled = NULL, updated_at = ? WHERE id = ?`,
		time.Now().UTC(), userID))
}
