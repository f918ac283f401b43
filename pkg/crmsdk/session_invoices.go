package crmsdk

import (
	"context"
	"net/http"
)

// CreateInvoice creates an invoice for one of the caller's clients. The
// invoice number must be globally unique; a collision returns a 409.
func (s *Session) CreateInvoice(ctx context.Context, req InvoiceRequest) (*Invoice, error) {
	var out Invoice
	if err := s.sendJSON(ctx, http.MethodPost, "/v1/invoices", req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListInvoices returns the caller's invoices, newest first.
func (s *Session) ListInvoices(ctx context.Context) ([]Invoice, error) {
	var out []Invoice
	if err := s.getJSON(ctx, "/v1/invoices", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetInvoice fetches a single invoice by id.
func (s *Session) GetInvoice(ctx context.Context, id string) (*Invoice, error) {
	var out Invoice
	if err := s.getJSON(ctx, "/v1/invoices/"+id, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateInvoice applies a partial update. Nil fields are left untouched.
func (s *Session) UpdateInvoice(ctx context.Context, id string, req InvoiceRequest) (*Invoice, error) {
	var out Invoice
	if err := s.sendJSON(ctx, http.MethodPatch, "/v1/invoices/"+id, req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteInvoice removes an invoice.
func (s *Session) DeleteInvoice(ctx context.Context, id string) error {
	return s.delete(ctx, "/v1/invoices/"+id)
}
