package http

import (
	"errors"
	"net/http"

	"github.com/tallyhq/crm/internal/crm/service"
	"github.com/tallyhq/crm/pkg/crmsdk"
	"github.com/tallyhq/crm/pkg/httpx"
	"github.com/tallyhq/crm/pkg/slogx"
)

// TokenHandler serves POST /v1/auth/token.
type TokenHandler struct {
	TokenService *service.TokenService
}

// ServeHTTP godoc
//
//	@Summary		Obtain a token pair
//	@Description	Exchanges username/password for a JWT access token and an opaque refresh token. Accounts with TOTP active must include the current code in the otp field.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		crmsdk.TokenRequest		true	"Credentials"
//	@Success		200		{object}	crmsdk.TokenResponse	"access, refresh, token_type, expires_in"
//	@Failure		400		{object}	crmsdk.ErrorResponse	"error, error_description"
//	@Failure		401		{object}	crmsdk.ErrorResponse	"invalid credentials or missing otp"
//	@Failure		500		{object}	crmsdk.ErrorResponse	"error, error_description"
//	@Header			200		{string}	Cache-Control			"no-store"
//	@Router			/v1/auth/token [post].
func (h *TokenHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req crmsdk.TokenRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		crmsdk.ErrInvalidJSONBody.WriteError(w)
		return
	}
	if req.Username == "" || req.Password == "" {
		crmsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	pair, err := h.TokenService.PasswordGrant(ctx, req.Username, req.Password, req.OTP)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			crmsdk.ErrInvalidCredentials.WriteError(w)
		case errors.Is(err, service.ErrMFARequired):
			crmsdk.ErrMFARequired.WriteError(w)
		default:
			log.Error("password grant failed", "err", err)
			crmsdk.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, crmsdk.TokenResponse{
		Access:    pair.AccessToken,
		Refresh:   pair.RefreshToken,
		TokenType: pair.TokenType,
		ExpiresIn: int(pair.ExpiresIn.Seconds()),
	})
}

// RefreshHandler serves POST /v1/auth/refresh.
type RefreshHandler struct {
	TokenService *service.TokenService
}

// ServeHTTP godoc
//
//	@Summary		Refresh an access token
//	@Description	Exchanges a valid refresh token for a new access token. The refresh token itself is unchanged.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		crmsdk.RefreshRequest	true	"Refresh token"
//	@Success		200		{object}	crmsdk.TokenResponse	"access, token_type, expires_in"
//	@Failure		400		{object}	crmsdk.ErrorResponse	"error, error_description"
//	@Failure		401		{object}	crmsdk.ErrorResponse	"refresh token invalid, expired or revoked"
//	@Failure		500		{object}	crmsdk.ErrorResponse	"error, error_description"
//	@Header			200		{string}	Cache-Control			"no-store"
//	@Router			/v1/auth/refresh [post].
func (h *RefreshHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req crmsdk.RefreshRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		crmsdk.ErrInvalidJSONBody.WriteError(w)
		return
	}
	if req.Refresh == "" {
		crmsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	pair, err := h.TokenService.Refresh(ctx, req.Refresh)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRefresh) {
			crmsdk.ErrInvalidRefresh.WriteError(w)
			return
		}
		log.Error("refresh failed", "err", err)
		crmsdk.ErrServerError.WriteError(w)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, crmsdk.TokenResponse{
		Access:    pair.AccessToken,
		TokenType: pair.TokenType,
		ExpiresIn: int(pair.ExpiresIn.Seconds()),
	})
}

// RevokeHandler serves POST /v1/auth/revoke.
type RevokeHandler struct {
	TokenService *service.TokenService
}

// ServeHTTP godoc
//
//	@Summary		Revoke a refresh token
//	@Description	Invalidates a refresh token. Revoking an unknown token still succeeds, so the endpoint is idempotent.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body	crmsdk.RefreshRequest	true	"Refresh token"
//	@Success		204		"revoked"
//	@Failure		400		{object}	crmsdk.ErrorResponse	"error, error_description"
//	@Failure		500		{object}	crmsdk.ErrorResponse	"error, error_description"
//	@Router			/v1/auth/revoke [post].
func (h *RevokeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req crmsdk.RefreshRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		crmsdk.ErrInvalidJSONBody.WriteError(w)
		return
	}
	if req.Refresh == "" {
		crmsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	if err := h.TokenService.Revoke(ctx, req.Refresh); err != nil {
		log.Error("revoke failed", "err", err)
		crmsdk.ErrServerError.WriteError(w)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
