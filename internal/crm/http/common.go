package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/tallyhq/crm/internal/crm/domain"
	"github.com/tallyhq/crm/internal/crm/service"
	"github.com/tallyhq/crm/internal/crm/store"
	"github.com/tallyhq/crm/pkg/crmsdk"
	"github.com/tallyhq/crm/pkg/slogx"
)

const dateLayout = "2006-01-02"

// writeServiceError maps service and store errors onto the API error
// envelope. Anything unrecognised is logged and becomes a 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var vErr *service.ValidationError

	switch {
	case errors.As(err, &vErr):
		crmsdk.NewValidationError(vErr.Field, vErr.Reason).WriteError(w)
	case errors.Is(err, store.ErrNotFound):
		crmsdk.ErrNotFound.WriteError(w)
	case errors.Is(err, store.ErrAlreadyExists):
		crmsdk.NewConflictError("a resource with that identifier already exists").WriteError(w)
	default:
		slogx.FromContext(r.Context()).Error("request failed", "err", err)
		crmsdk.ErrServerError.WriteError(w)
	}
}

// parseDate parses an optional YYYY-MM-DD field. An empty string is nil.
func parseDate(field, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(dateLayout, value, time.UTC)
	if err != nil {
		return nil, &service.ValidationError{Field: field, Reason: "must be a date in YYYY-MM-DD form"}
	}
	return &t, nil
}

func formatDate(t time.Time) string {
	return t.Format(dateLayout)
}

func formatOptionalDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatDate(*t)
}

func toClientResponse(c domain.Client) crmsdk.Client {
	return crmsdk.Client{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Company:   c.Company,
		CreatedAt: c.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: c.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func toProjectResponse(p domain.Project) crmsdk.Project {
	return crmsdk.Project{
		ID:              p.ID,
		ClientID:        p.ClientID,
		Title:           p.Title,
		Status:          p.Status,
		StartDate:       formatDate(p.StartDate),
		DueDate:         formatOptionalDate(p.DueDate),
		PaymentCurrency: p.PaymentCurrency,
		PaymentStatus:   p.PaymentStatus,
		PaymentAmount:   p.PaymentAmount,
		CreatedAt:       p.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:       p.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func toInvoiceResponse(inv domain.Invoice) crmsdk.Invoice {
	return crmsdk.Invoice{
		ID:        inv.ID,
		ClientID:  inv.ClientID,
		Number:    inv.Number,
		IssueDate: formatDate(inv.IssueDate),
		DueDate:   formatOptionalDate(inv.DueDate),
		Status:    inv.Status,
		Total:     inv.Total,
		CreatedAt: inv.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: inv.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func f64OrZero(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}
