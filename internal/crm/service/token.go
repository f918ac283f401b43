package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/tallyhq/crm/internal/crm/domain"
	"github.com/tallyhq/crm/internal/crm/store"
	"github.com/tallyhq/crm/pkg/cryptox"
	"github.com/tallyhq/crm/pkg/idx"
	"github.com/tallyhq/crm/pkg/jwtx"
	"github.com/tallyhq/crm/pkg/slogx"
	"github.com/pquerna/otp/totp"
)

// TokenService issues and refreshes access tokens. Access tokens are signed
// JWTs; refresh tokens are opaque strings stored by SHA-256 fingerprint.
type TokenService struct {
	KeyManager *jwtx.KeyManager
	Store      store.Store
	Issuer     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// PasswordGrant exchanges username/password (plus a TOTP code when the
// account has MFA active) for a token pair.
//
// All credential failures collapse into ErrInvalidCredentials so the
// endpoint never reveals whether the username exists. A missing OTP on an
// MFA-active account is the one distinguishable case (ErrMFARequired), and
// only after the password already checked out.
func (s *TokenService) PasswordGrant(ctx context.Context, username, password, otpCode string) (*domain.TokenPair, error) {
	now := time.Now()
	l := slogx.FromContext(ctx)

	u, err := s.Store.Users().GetUserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := cryptox.VerifyPassword(password, u.PasswordHash); err != nil {
		l.Info("password verification failed", slog.String("username", username))
		return nil, ErrInvalidCredentials
	}

	if u.MFAActive() {
		if otpCode == "" {
			return nil, ErrMFARequired
		}
		if !totp.Validate(otpCode, *u.TOTPSecret) {
			l.Info("totp verification failed", slog.String("user_id", u.ID))
			return nil, ErrInvalidCredentials
		}
	}

	sessionID := idx.New().String()

	accessToken, err := s.signAccess(u, sessionID, now)
	if err != nil {
		return nil, err
	}

	refreshOpaque, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return nil, err
	}

	rt := domain.RefreshToken{
		ID:        idx.New().String(),
		UserID:    u.ID,
		TokenHash: cryptox.FingerprintToken(refreshOpaque),
		SessionID: sessionID,
		ExpiresAt: now.Add(s.RefreshTTL),
	}
	if err := s.Store.RefreshTokens().CreateRefreshToken(ctx, rt); err != nil {
		return nil, err
	}

	l.Info("tokens issued",
		slog.String("user_id", u.ID),
		slog.String("session_id", sessionID),
	)

	return &domain.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshOpaque,
		TokenType:    "Bearer",
		ExpiresIn:    s.AccessTTL,
	}, nil
}

// Refresh exchanges a valid refresh token for a new access token. The
// refresh token itself is not rotated; it stays valid until it expires or
// is revoked, and the new access token reuses the original session id.
func (s *TokenService) Refresh(ctx context.Context, refreshOpaque string) (*domain.TokenPair, error) {
	now := time.Now()

	fp := cryptox.FingerprintToken(refreshOpaque)
	rt, err := s.Store.RefreshTokens().GetRefreshTokenByHash(ctx, fp)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidRefresh
		}
		return nil, err
	}
	if rt.Revoked || now.After(rt.ExpiresAt) {
		return nil, ErrInvalidRefresh
	}

	u, err := s.Store.Users().GetUserByID(ctx, rt.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidRefresh
		}
		return nil, err
	}

	accessToken, err := s.signAccess(u, rt.SessionID, now)
	if err != nil {
		return nil, err
	}

	return &domain.TokenPair{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresIn:   s.AccessTTL,
	}, nil
}

// Revoke invalidates a single refresh token. Unknown tokens are a no-op so
// the endpoint is idempotent.
func (s *TokenService) Revoke(ctx context.Context, refreshOpaque string) error {
	fp := cryptox.FingerprintToken(refreshOpaque)
	if err := s.Store.RefreshTokens().RevokeRefreshToken(ctx, fp); err != nil && !errors.Is(err, store.ErrNotFound) {
		return err
	}
	return nil
}

// RevokeAll invalidates every refresh token the user holds.
func (s *TokenService) RevokeAll(ctx context.Context, userID string) error {
	return s.Store.RefreshTokens().RevokeAllUserRefreshTokens(ctx, userID)
}

func (s *TokenService) signAccess(u domain.User, sessionID string, now time.Time) (string, error) {
	claims := jwtx.NewAccessClaims(u.ID, sessionID, u.Username, s.AccessTTL, s.Issuer, now)
	return s.KeyManager.GetSigner().Sign(claims)
}
