package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/tallyhq/crm/internal/crm/service"
	"github.com/tallyhq/crm/pkg/crmsdk"
	"github.com/tallyhq/crm/pkg/httpx"
)

// RegisterHandler serves POST /v1/register.
type RegisterHandler struct {
	AccountService *service.AccountService
}

// ServeHTTP godoc
//
//	@Summary		Register a new account
//	@Description	Creates a new account. Usernames are unique case-insensitively; the password must be at least 6 characters.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		crmsdk.RegisterRequest	true	"Account credentials"
//	@Success		201		{object}	crmsdk.RegisterResponse	"id, username, created_at"
//	@Failure		400		{object}	crmsdk.ErrorResponse	"error, error_description"
//	@Failure		409		{object}	crmsdk.ErrorResponse	"username already taken"
//	@Failure		500		{object}	crmsdk.ErrorResponse	"error, error_description"
//	@Router			/v1/register [post].
func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req crmsdk.RegisterRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		crmsdk.ErrInvalidJSONBody.WriteError(w)
		return
	}

	u, err := h.AccountService.Register(ctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrUsernameTaken) {
			crmsdk.NewConflictError("that username is already taken").WriteError(w)
			return
		}
		writeServiceError(w, r, err)
		return
	}

	// The password, hashed or otherwise, never appears in the response.
	httpx.WriteJSON(w, http.StatusCreated, crmsdk.RegisterResponse{
		ID:        u.ID,
		Username:  u.Username,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	})
}
