package service

import (
	"context"
	"fmt"

	"github.com/tallyhq/crm/internal/crm/domain"
	"github.com/tallyhq/crm/internal/crm/store"
	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

// MFAService manages TOTP enrollment. Enrollment is two-phase: EnrollTOTP
// stores a pending secret, ActivateTOTP proves the user's authenticator
// works before logins start requiring a code.
type MFAService struct {
	Store  store.Store
	Issuer string // display name in authenticator apps
}

// EnrollTOTP generates a fresh secret for the user. MFA is not active until
// ActivateTOTP succeeds; re-enrolling before activation replaces the
// pending secret.
func (s *MFAService) EnrollTOTP(ctx context.Context, userID string) (domain.TOTPEnrollment, error) {
	u, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		return domain.TOTPEnrollment{}, err
	}
	if u.MFAActive() {
		return domain.TOTPEnrollment{}, ErrMFAAlreadyEnabled
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      s.Issuer,
		AccountName: u.Username,
		Period:      30,
		Digits:      otp.DigitsSix,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		return domain.TOTPEnrollment{}, fmt.Errorf("generate totp key: %w", err)
	}

	if err := s.Store.Users().UpdateTOTPSecret(ctx, userID, key.Secret()); err != nil {
		return domain.TOTPEnrollment{}, err
	}

	return domain.TOTPEnrollment{
		Secret:  key.Secret(),
		URL:     key.URL(),
		Issuer:  s.Issuer,
		Account: u.Username,
	}, nil
}

// ActivateTOTP verifies a code against the pending secret and switches MFA
// on for the account.
func (s *MFAService) ActivateTOTP(ctx context.Context, userID, code string) error {
	u, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if u.TOTPSecret == nil || *u.TOTPSecret == "" {
		return ErrMFANotEnabled
	}
	if u.MFAActive() {
		return ErrMFAAlreadyEnabled
	}
	if !totp.Validate(code, *u.TOTPSecret) {
		return ErrInvalidTOTPCode
	}

	return s.Store.Users().EnableTOTP(ctx, userID)
}

// DisableTOTP turns MFA off after verifying a current code.
func (s *MFAService) DisableTOTP(ctx context.Context, userID, code string) error {
	u, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if !u.MFAActive() {
		return ErrMFANotEnabled
	}
	if !totp.Validate(code, *u.TOTPSecret) {
		return ErrInvalidTOTPCode
	}

	return s.Store.Users().DisableTOTP(ctx, userID)
}
