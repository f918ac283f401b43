package http

import (
	"net/http"

	"github.com/tallyhq/crm/internal/crm/service"
	"github.com/tallyhq/crm/pkg/crmsdk"
	"github.com/tallyhq/crm/pkg/httpx"
)

// ClientsHandler serves the /v1/clients CRUD surface. Every operation is
// scoped to the authenticated user; another tenant's client answers 404.
type ClientsHandler struct {
	ClientService *service.ClientService
}

// HandleCreate handles POST /v1/clients
//
//	@Summary		Create a client
//	@Description	Creates a client record owned by the authenticated user. Name is required; email, phone and company are optional.
//	@Tags			Clients
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		crmsdk.ClientRequest	true	"Client fields"
//	@Success		201		{object}	crmsdk.Client
//	@Failure		400		{object}	crmsdk.ErrorResponse	"error, error_description"
//	@Failure		401		{object}	crmsdk.ErrorResponse	"invalid or missing access token"
//	@Failure		500		{object}	crmsdk.ErrorResponse	"error, error_description"
//	@Router			/v1/clients [post].
func (h *ClientsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ownerID := httpx.UserIDFromContext(ctx)

	var req crmsdk.ClientRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		crmsdk.ErrInvalidJSONBody.WriteError(w)
		return
	}

	c, err := h.ClientService.Create(ctx, ownerID, service.CreateClientInput{
		Name:    strOrEmpty(req.Name),
		Email:   strOrEmpty(req.Email),
		Phone:   strOrEmpty(req.Phone),
		Company: strOrEmpty(req.Company),
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toClientResponse(c))
}

// HandleList handles GET /v1/clients
//
//	@Summary		List clients
//	@Description	Returns the authenticated user's clients, newest first. Other tenants' clients never appear.
//	@Tags			Clients
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		crmsdk.Client
//	@Failure		401	{object}	crmsdk.ErrorResponse	"invalid or missing access token"
//	@Failure		500	{object}	crmsdk.ErrorResponse	"error, error_description"
//	@Router			/v1/clients [get].
func (h *ClientsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	clients, err := h.ClientService.List(ctx, httpx.UserIDFromContext(ctx))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := make([]crmsdk.Client, 0, len(clients))
	for _, c := range clients {
		out = append(out, toClientResponse(c))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleGet handles GET /v1/clients/{id}
//
//	@Summary		Get a client
//	@Description	Returns a single client. A client owned by another tenant answers 404, exactly like a missing one.
//	@Tags			Clients
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string	true	"Client id"
//	@Success		200	{object}	crmsdk.Client
//	@Failure		401	{object}	crmsdk.ErrorResponse	"invalid or missing access token"
//	@Failure		404	{object}	crmsdk.ErrorResponse	"not found"
//	@Failure		500	{object}	crmsdk.ErrorResponse	"error, error_description"
//	@Router			/v1/clients/{id} [get].
func (h *ClientsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	c, err := h.ClientService.Get(ctx, r.PathValue("id"), httpx.UserIDFromContext(ctx))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toClientResponse(c))
}

// HandleUpdate handles PUT and PATCH /v1/clients/{id}
//
//	@Summary		Update a client
//	@Description	Applies a partial update; absent fields are left untouched. PUT and PATCH behave identically.
//	@Tags			Clients
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"Client id"
//	@Param			request	body		crmsdk.ClientRequest	true	"Fields to change"
//	@Success		200		{object}	crmsdk.Client
//	@Failure		400		{object}	crmsdk.ErrorResponse	"error, error_description"
//	@Failure		401		{object}	crmsdk.ErrorResponse	"invalid or missing access token"
//	@Failure		404		{object}	crmsdk.ErrorResponse	"not found"
//	@Failure		500		{object}	crmsdk.ErrorResponse	"error, error_description"
//	@Router			/v1/clients/{id} [patch].
func (h *ClientsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req crmsdk.ClientRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		crmsdk.ErrInvalidJSONBody.WriteError(w)
		return
	}

	c, err := h.ClientService.Update(ctx, r.PathValue("id"), httpx.UserIDFromContext(ctx), service.UpdateClientInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Company: req.Company,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toClientResponse(c))
}

// HandleDelete handles DELETE /v1/clients/{id}
//
//	@Summary		Delete a client
//	@Description	Removes the client together with all of its projects and invoices.
//	@Tags			Clients
//	@Security		BearerAuth
//	@Param			id	path	string	true	"Client id"
//	@Success		204	"deleted"
//	@Failure		401	{object}	crmsdk.ErrorResponse	"invalid or missing access token"
//	@Failure		404	{object}	crmsdk.ErrorResponse	"not found"
//	@Failure		500	{object}	crmsdk.ErrorResponse	"error, error_description"
//	@Router			/v1/clients/{id} [delete].
func (h *ClientsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.ClientService.Delete(ctx, r.PathValue("id"), httpx.UserIDFromContext(ctx)); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
