package domain

import "time"

// User is an authenticated account. Every Client row is owned by exactly one
// User, which is what the whole tenant-isolation model hangs off.
type User struct {
	ID           string
	Username     string
	PasswordHash string     // argon2id PHC-encoded
	TOTPEnabled  *time.Time // set when TOTP was activated (nullable)
	TOTPSecret   *string    // base32 TOTP secret (nullable)
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// MFAActive reports whether logins for this account require a TOTP code.
func (u User) MFAActive() bool {
	return u.TOTPEnabled != nil && u.TOTPSecret != nil && *u.TOTPSecret != ""
}
