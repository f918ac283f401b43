package http

import (
	"net/http"

	"github.com/tallyhq/crm/internal/crm/service"
	"github.com/tallyhq/crm/pkg/crmsdk"
	"github.com/tallyhq/crm/pkg/httpx"
)

// ProjectsHandler serves the /v1/projects CRUD surface. Ownership resolves
// through the project's client.
type ProjectsHandler struct {
	ProjectService *service.ProjectService
}

// HandleCreate handles POST /v1/projects
//
//	@Summary		Create a project
//	@Description	Creates a project under one of the caller's clients. Status defaults to "active", payment_currency to "USD" and payment_status to "unpaid".
//	@Tags			Projects
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		crmsdk.ProjectRequest	true	"Project fields; client and title are required"
//	@Success		201		{object}	crmsdk.Project
//	@Failure		400		{object}	crmsdk.ErrorResponse	"error, error_description"
//	@Failure		401		{object}	crmsdk.ErrorResponse	"invalid or missing access token"
//	@Failure		404		{object}	crmsdk.ErrorResponse	"client not found in the caller's tenant"
//	@Failure		500		{object}	crmsdk.ErrorResponse	"error, error_description"
//	@Router			/v1/projects [post].
func (h *ProjectsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req crmsdk.ProjectRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		crmsdk.ErrInvalidJSONBody.WriteError(w)
		return
	}

	dueDate, err := parseDate("due_date", strOrEmpty(req.DueDate))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	p, err := h.ProjectService.Create(ctx, httpx.UserIDFromContext(ctx), service.CreateProjectInput{
		ClientID:        strOrEmpty(req.ClientID),
		Title:           strOrEmpty(req.Title),
		Status:          strOrEmpty(req.Status),
		DueDate:         dueDate,
		PaymentCurrency: strOrEmpty(req.PaymentCurrency),
		PaymentStatus:   strOrEmpty(req.PaymentStatus),
		PaymentAmount:   f64OrZero(req.PaymentAmount),
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toProjectResponse(p))
}

// HandleList handles GET /v1/projects
//
//	@Summary		List projects
//	@Description	Returns the caller's projects, newest first. The optional client query parameter narrows the list; a client id outside the caller's tenant yields an empty list.
//	@Tags			Projects
//	@Security		BearerAuth
//	@Produce		json
//	@Param			client	query		string	false	"Filter by client id"
//	@Success		200		{array}		crmsdk.Project
//	@Failure		401		{object}	crmsdk.ErrorResponse	"invalid or missing access token"
//	@Failure		500		{object}	crmsdk.ErrorResponse	"error, error_description"
//	@Router			/v1/projects [get].
func (h *ProjectsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	projects, err := h.ProjectService.List(ctx, httpx.UserIDFromContext(ctx), r.URL.Query().Get("client"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := make([]crmsdk.Project, 0, len(projects))
	for _, p := range projects {
		out = append(out, toProjectResponse(p))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleGet handles GET /v1/projects/{id}
//
//	@Summary		Get a project
//	@Description	Returns a single project. One owned by another tenant answers 404.
//	@Tags			Projects
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string	true	"Project id"
//	@Success		200	{object}	crmsdk.Project
//	@Failure		401	{object}	crmsdk.ErrorResponse	"invalid or missing access token"
//	@Failure		404	{object}	crmsdk.ErrorResponse	"not found"
//	@Failure		500	{object}	crmsdk.ErrorResponse	"error, error_description"
//	@Router			/v1/projects/{id} [get].
func (h *ProjectsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	p, err := h.ProjectService.Get(ctx, r.PathValue("id"), httpx.UserIDFromContext(ctx))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toProjectResponse(p))
}

// HandleUpdate handles PUT and PATCH /v1/projects/{id}
//
//	@Summary		Update a project
//	@Description	Applies a partial update; absent fields are left untouched. The project may be moved to another client of the same owner.
//	@Tags			Projects
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"Project id"
//	@Param			request	body		crmsdk.ProjectRequest	true	"Fields to change"
//	@Success		200		{object}	crmsdk.Project
//	@Failure		400		{object}	crmsdk.ErrorResponse	"error, error_description"
//	@Failure		401		{object}	crmsdk.ErrorResponse	"invalid or missing access token"
//	@Failure		404		{object}	crmsdk.ErrorResponse	"not found"
//	@Failure		500		{object}	crmsdk.ErrorResponse	"error, error_description"
//	@Router			/v1/projects/{id} [patch].
func (h *ProjectsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req crmsdk.ProjectRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		crmsdk.ErrInvalidJSONBody.WriteError(w)
		return
	}

	in := service.UpdateProjectInput{
		ClientID:        req.ClientID,
		Title:           req.Title,
		Status:          req.Status,
		PaymentCurrency: req.PaymentCurrency,
		PaymentStatus:   req.PaymentStatus,
		PaymentAmount:   req.PaymentAmount,
	}
	if req.DueDate != nil {
		dueDate, err := parseDate("due_date", *req.DueDate)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		in.DueDate = dueDate
	}

	p, err := h.ProjectService.Update(ctx, r.PathValue("id"), httpx.UserIDFromContext(ctx), in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toProjectResponse(p))
}

// HandleDelete handles DELETE /v1/projects/{id}
//
//	@Summary		Delete a project
//	@Description	Removes a project. Its client and invoices are unaffected.
//	@Tags			Projects
//	@Security		BearerAuth
//	@Param			id	path	string	true	"Project id"
//	@Success		204	"deleted"
//	@Failure		401	{object}	crmsdk.ErrorResponse	"invalid or missing access token"
//	@Failure		404	{object}	crmsdk.ErrorResponse	"not found"
//	@Failure		500	{object}	crmsdk.ErrorResponse	"error, error_description"
//	@Router			/v1/projects/{id} [delete].
func (h *ProjectsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.ProjectService.Delete(ctx, r.PathValue("id"), httpx.UserIDFromContext(ctx)); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
