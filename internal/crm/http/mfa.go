package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/tallyhq/crm/internal/crm/service"
	"github.com/tallyhq/crm/pkg/crmsdk"
	"github.com/tallyhq/crm/pkg/httpx"
	"github.com/tallyhq/crm/pkg/slogx"
)

// MFAHandler serves the TOTP enrollment endpoints.
type MFAHandler struct {
	MFAService *service.MFAService
}

// HandleEnroll handles POST /v1/mfa/totp/enroll
//
//	@Summary		Begin TOTP enrollment
//	@Description	Generates a TOTP secret for the authenticated user. Logins keep working without a code until activation succeeds.
//	@Tags			MFA
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	crmsdk.TOTPEnrollResponse	"secret, provisioning URL"
//	@Failure		401	{object}	crmsdk.ErrorResponse		"invalid or missing access token"
//	@Failure		409	{object}	crmsdk.ErrorResponse		"TOTP already active"
//	@Failure		500	{object}	crmsdk.ErrorResponse		"error, error_description"
//	@Router			/v1/mfa/totp/enroll [post].
func (h *MFAHandler) HandleEnroll(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID := httpx.UserIDFromContext(ctx)
	if userID == "" {
		crmsdk.ErrInvalidToken.WriteError(w)
		return
	}

	enrollment, err := h.MFAService.EnrollTOTP(ctx, userID)
	if err != nil {
		if errors.Is(err, service.ErrMFAAlreadyEnabled) {
			crmsdk.NewConflictError("TOTP is already active on this account").WriteError(w)
			return
		}
		log.Error("totp enrollment failed", "user_id", userID, "err", err)
		writeServiceError(w, r, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, crmsdk.TOTPEnrollResponse{
		Secret:  enrollment.Secret,
		URL:     enrollment.URL,
		Issuer:  enrollment.Issuer,
		Account: enrollment.Account,
	})
}

// HandleActivate handles POST /v1/mfa/totp/activate
//
//	@Summary		Activate TOTP
//	@Description	Verifies a code against the pending secret and switches MFA on for the account.
//	@Tags			MFA
//	@Security		BearerAuth
//	@Accept			json
//	@Param			request	body	crmsdk.TOTPCodeRequest	true	"Six-digit TOTP code"
//	@Success		204		"activated"
//	@Failure		400		{object}	crmsdk.ErrorResponse	"invalid code or no pending enrollment"
//	@Failure		401		{object}	crmsdk.ErrorResponse	"invalid or missing access token"
//	@Failure		409		{object}	crmsdk.ErrorResponse	"TOTP already active"
//	@Failure		500		{object}	crmsdk.ErrorResponse	"error, error_description"
//	@Router			/v1/mfa/totp/activate [post].
func (h *MFAHandler) HandleActivate(w http.ResponseWriter, r *http.Request) {
	h.verifyAndApply(w, r, h.MFAService.ActivateTOTP)
}

// HandleDisable handles POST /v1/mfa/totp/disable
//
//	@Summary		Disable TOTP
//	@Description	Turns MFA off after verifying a current code.
//	@Tags			MFA
//	@Security		BearerAuth
//	@Accept			json
//	@Param			request	body	crmsdk.TOTPCodeRequest	true	"Six-digit TOTP code"
//	@Success		204		"disabled"
//	@Failure		400		{object}	crmsdk.ErrorResponse	"invalid code or TOTP not active"
//	@Failure		401		{object}	crmsdk.ErrorResponse	"invalid or missing access token"
//	@Failure		500		{object}	crmsdk.ErrorResponse	"error, error_description"
//	@Router			/v1/mfa/totp/disable [post].
func (h *MFAHandler) HandleDisable(w http.ResponseWriter, r *http.Request) {
	h.verifyAndApply(w, r, h.MFAService.DisableTOTP)
}

func (h *MFAHandler) verifyAndApply(
	w http.ResponseWriter,
	r *http.Request,
	apply func(ctx context.Context, userID, code string) error,
) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID := httpx.UserIDFromContext(ctx)
	if userID == "" {
		crmsdk.ErrInvalidToken.WriteError(w)
		return
	}

	var req crmsdk.TOTPCodeRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		crmsdk.ErrInvalidJSONBody.WriteError(w)
		return
	}
	if req.Code == "" {
		crmsdk.NewValidationError("code", "must not be empty").WriteError(w)
		return
	}

	if err := apply(ctx, userID, req.Code); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidTOTPCode):
			crmsdk.NewValidationError("code", "the code is not valid").WriteError(w)
		case errors.Is(err, service.ErrMFANotEnabled):
			crmsdk.NewValidationError("code", "no TOTP enrollment on this account").WriteError(w)
		case errors.Is(err, service.ErrMFAAlreadyEnabled):
			crmsdk.NewConflictError("TOTP is already active on this account").WriteError(w)
		default:
			log.Error("totp update failed", "user_id", userID, "err", err)
			writeServiceError(w, r, err)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
