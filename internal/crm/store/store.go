package store

import (
	"context"
	"errors"

	"github.com/tallyhq/crm/internal/crm/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite for now)
// implement it. Sub-repositories keep concerns tidy and make it obvious
// which queries carry the owner scope.
//
// Every Client/Project/Invoice read or mutation takes the owner id and
// composes it into the SQL predicate, so a row outside the caller's tenant
// is indistinguishable from a missing row.
type Store interface {
	Users() Users
	Clients() Clients
	Projects() Projects
	Invoices() Invoices
	RefreshTokens() RefreshTokens

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction, committing on nil and
	// rolling back on error. Preferred over Tx for almost everything.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. Same repositories plus Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByUsername matches case-insensitively; used during login and
	// duplicate checks at registration.
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by the app via ULID).
	// Returns ErrAlreadyExists on a username collision.
	CreateUser(ctx context.Context, u domain.User) error

	// DeleteUser cascades to clients, projects, invoices and refresh tokens.
	DeleteUser(ctx context.Context, userID string) error

	// UpdateTOTPSecret stores a pending TOTP secret without activating MFA.
	UpdateTOTPSecret(ctx context.Context, userID string, secret string) error

	// EnableTOTP marks TOTP as active (sets the totp_enabled timestamp).
	EnableTOTP(ctx context.Context, userID string) error

	// DisableTOTP clears both the secret and the activation timestamp.
	DisableTOTP(ctx context.Context, userID string) error
}

type Clients interface {
	// CreateClient inserts a new client. OwnerID must be set by the caller.
	CreateClient(ctx context.Context, c domain.Client) error

	// GetClient returns the client only when it belongs to ownerID.
	GetClient(ctx context.Context, id, ownerID string) (domain.Client, error)

	// ListClients returns all of ownerID's clients, newest first.
	ListClients(ctx context.Context, ownerID string) ([]domain.Client, error)

	// UpdateClient persists mutable fields; the row must belong to ownerID.
	UpdateClient(ctx context.Context, c domain.Client) error

	// DeleteClient removes the client and, via FK cascade, its projects and
	// invoices. The row must belong to ownerID.
	DeleteClient(ctx context.Context, id, ownerID string) error
}

type Projects interface {
	// CreateProject inserts a new project. The service layer is responsible
	// for verifying the target client belongs to the caller first.
	CreateProject(ctx context.Context, p domain.Project) error

	// GetProject resolves ownership through the client relation.
	GetProject(ctx context.Context, id, ownerID string) (domain.Project, error)

	// ListProjects returns ownerID's projects, newest first. A non-empty
	// clientID narrows the result to that client; a clientID the owner does
	// not hold simply yields an empty slice.
	ListProjects(ctx context.Context, ownerID, clientID string) ([]domain.Project, error)

	// UpdateProject persists mutable fields, scoped through the client owner.
	UpdateProject(ctx context.Context, p domain.Project, ownerID string) error

	// DeleteProject removes the project, scoped through the client owner.
	DeleteProject(ctx context.Context, id, ownerID string) error
}

type Invoices interface {
	// CreateInvoice inserts a new invoice. Returns ErrAlreadyExists when the
	// invoice number is already taken (the number is globally unique).
	CreateInvoice(ctx context.Context, inv domain.Invoice) error

	// GetInvoice resolves ownership through the client relation.
	GetInvoice(ctx context.Context, id, ownerID string) (domain.Invoice, error)

	// ListInvoices returns ownerID's invoices, newest first.
	ListInvoices(ctx context.Context, ownerID string) ([]domain.Invoice, error)

	// UpdateInvoice persists mutable fields, scoped through the client owner.
	// Returns ErrAlreadyExists when renumbering collides.
	UpdateInvoice(ctx context.Context, inv domain.Invoice, ownerID string) error

	// DeleteInvoice removes the invoice, scoped through the client owner.
	DeleteInvoice(ctx context.Context, id, ownerID string) error
}

type RefreshTokens interface {
	// CreateRefreshToken stores a new refresh token record.
	CreateRefreshToken(ctx context.Context, t domain.RefreshToken) error

	// GetRefreshTokenByHash returns the token by SHA-256 fingerprint.
	GetRefreshTokenByHash(ctx context.Context, hash string) (domain.RefreshToken, error)

	// RevokeRefreshToken flips revoked, keyed by fingerprint.
	RevokeRefreshToken(ctx context.Context, hash string) error

	// RevokeAllUserRefreshTokens bulk-revokes a user's sessions.
	RevokeAllUserRefreshTokens(ctx context.Context, userID string) error

	// DeleteExpiredRefreshTokens is housekeeping.
	DeleteExpiredRefreshTokens(ctx context.Context) error
}
