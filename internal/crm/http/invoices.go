package http

import (
	"net/http"

	"github.com/tallyhq/crm/internal/crm/service"
	"github.com/tallyhq/crm/pkg/crmsdk"
	"github.com/tallyhq/crm/pkg/httpx"
)

// InvoicesHandler serves the /v1/invoices CRUD surface.
type InvoicesHandler struct {
	InvoiceService *service.InvoiceService
}

// HandleCreate handles POST /v1/invoices
//
//	@Summary		Create an invoice
//	@Description	Creates an invoice for one of the caller's clients. The invoice number is unique across all tenants; status defaults to "draft".
//	@Tags			Invoices
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		crmsdk.InvoiceRequest	true	"Invoice fields; client and number are required"
//	@Success		201		{object}	crmsdk.Invoice
//	@Failure		400		{object}	crmsdk.ErrorResponse	"error, error_description"
//	@Failure		401		{object}	crmsdk.ErrorResponse	"invalid or missing access token"
//	@Failure		404		{object}	crmsdk.ErrorResponse	"client not found in the caller's tenant"
//	@Failure		409		{object}	crmsdk.ErrorResponse	"invoice number already taken"
//	@Failure		500		{object}	crmsdk.ErrorResponse	"error, error_description"
//	@Router			/v1/invoices [post].
func (h *InvoicesHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req crmsdk.InvoiceRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		crmsdk.ErrInvalidJSONBody.WriteError(w)
		return
	}

	dueDate, err := parseDate("due_date", strOrEmpty(req.DueDate))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	inv, err := h.InvoiceService.Create(ctx, httpx.UserIDFromContext(ctx), service.CreateInvoiceInput{
		ClientID: strOrEmpty(req.ClientID),
		Number:   strOrEmpty(req.Number),
		Status:   strOrEmpty(req.Status),
		DueDate:  dueDate,
		Total:    f64OrZero(req.Total),
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toInvoiceResponse(inv))
}

// HandleList handles GET /v1/invoices
//
//	@Summary		List invoices
//	@Description	Returns the caller's invoices, newest first.
//	@Tags			Invoices
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		crmsdk.Invoice
//	@Failure		401	{object}	crmsdk.ErrorResponse	"invalid or missing access token"
//	@Failure		500	{object}	crmsdk.ErrorResponse	"error, error_description"
//	@Router			/v1/invoices [get].
func (h *InvoicesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	invoices, err := h.InvoiceService.List(ctx, httpx.UserIDFromContext(ctx))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := make([]crmsdk.Invoice, 0, len(invoices))
	for _, inv := range invoices {
		out = append(out, toInvoiceResponse(inv))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleGet handles GET /v1/invoices/{id}
//
//	@Summary		Get an invoice
//	@Description	Returns a single invoice. One owned by another tenant answers 404.
//	@Tags			Invoices
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string	true	"Invoice id"
//	@Success		200	{object}	crmsdk.Invoice
//	@Failure		401	{object}	crmsdk.ErrorResponse	"invalid or missing access token"
//	@Failure		404	{object}	crmsdk.ErrorResponse	"not found"
//	@Failure		500	{object}	crmsdk.ErrorResponse	"error, error_description"
//	@Router			/v1/invoices/{id} [get].
func (h *InvoicesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	inv, err := h.InvoiceService.Get(ctx, r.PathValue("id"), httpx.UserIDFromContext(ctx))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toInvoiceResponse(inv))
}

// HandleUpdate handles PUT and PATCH /v1/invoices/{id}
//
//	@Summary		Update an invoice
//	@Description	Applies a partial update; absent fields are left untouched. Renumbering onto a taken number answers 409.
//	@Tags			Invoices
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"Invoice id"
//	@Param			request	body		crmsdk.InvoiceRequest	true	"Fields to change"
//	@Success		200		{object}	crmsdk.Invoice
//	@Failure		400		{object}	crmsdk.ErrorResponse	"error, error_description"
//	@Failure		401		{object}	crmsdk.ErrorResponse	"invalid or missing access token"
//	@Failure		404		{object}	crmsdk.ErrorResponse	"not found"
//	@Failure		409		{object}	crmsdk.ErrorResponse	"invoice number already taken"
//	@Failure		500		{object}	crmsdk.ErrorResponse	"error, error_description"
//	@Router			/v1/invoices/{id} [patch].
func (h *InvoicesHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req crmsdk.InvoiceRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		crmsdk.ErrInvalidJSONBody.WriteError(w)
		return
	}

	in := service.UpdateInvoiceInput{
		ClientID: req.ClientID,
		Number:   req.Number,
		Status:   req.Status,
		Total:    req.Total,
	}
	if req.DueDate != nil {
		dueDate, err := parseDate("due_date", *req.DueDate)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		in.DueDate = dueDate
	}

	inv, err := h.InvoiceService.Update(ctx, r.PathValue("id"), httpx.UserIDFromContext(ctx), in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toInvoiceResponse(inv))
}

// HandleDelete handles DELETE /v1/invoices/{id}
//
//	@Summary		Delete an invoice
//	@Description	Removes an invoice.
//	@Tags			Invoices
//	@Security		BearerAuth
//	@Param			id	path	string	true	"Invoice id"
//	@Success		204	"deleted"
//	@Failure		401	{object}	crmsdk.ErrorResponse	"invalid or missing access token"
//	@Failure		404	{object}	crmsdk.ErrorResponse	"not found"
//	@Failure		500	{object}	crmsdk.ErrorResponse	"error, error_description"
//	@Router			/v1/invoices/{id} [delete].
func (h *InvoicesHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.InvoiceService.Delete(ctx, r.PathValue("id"), httpx.UserIDFromContext(ctx)); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
