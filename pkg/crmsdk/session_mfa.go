package crmsdk

import (
	"context"
	"net/http"
)

// EnrollTOTP begins TOTP enrollment. The returned secret is shown once;
// logins keep working without a code until ActivateTOTP succeeds.
func (s *Session) EnrollTOTP(ctx context.Context) (*TOTPEnrollResponse, error) {
	var out TOTPEnrollResponse
	if err := s.sendJSON(ctx, http.MethodPost, "/v1/mfa/totp/enroll", struct{}{}, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// ActivateTOTP proves the authenticator works and switches MFA on.
func (s *Session) ActivateTOTP(ctx context.Context, code string) error {
	resp, err := s.doAuthRequestJSON(ctx, http.MethodPost, "/v1/mfa/totp/activate", TOTPCodeRequest{Code: code})
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

// DisableTOTP switches MFA off after verifying a current code.
func (s *Session) DisableTOTP(ctx context.Context, code string) error {
	resp, err := s.doAuthRequestJSON(ctx, http.MethodPost, "/v1/mfa/totp/disable", TOTPCodeRequest{Code: code})
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}
