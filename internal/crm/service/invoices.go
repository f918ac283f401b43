package service

import (
	"context"
	"strings"
	"time"

	"github.com/tallyhq/crm/internal/crm/domain"
	"github.com/tallyhq/crm/internal/crm/store"
	"github.com/tallyhq/crm/pkg/idx"
)

// InvoiceService owns the invoice CRUD surface. Invoice numbers are unique
// across all tenants; a collision surfaces as store.ErrAlreadyExists and
// the HTTP layer turns it into a 409.
type InvoiceService struct {
	Store store.Store
}

type CreateInvoiceInput struct {
	ClientID string
	Number   string
	Status   string // defaults to "draft"
	DueDate  *time.Time
	Total    float64
}

// UpdateInvoiceInput uses pointers so absent fields are left untouched.
type UpdateInvoiceInput struct {
	ClientID *string
	Number   *string
	Status   *string
	DueDate  *time.Time
	Total    *float64
}

func (s *InvoiceService) Create(ctx context.Context, ownerID string, in CreateInvoiceInput) (domain.Invoice, error) {
	in.Number = strings.TrimSpace(in.Number)
	if in.Number == "" {
		return domain.Invoice{}, invalidf("number", "must not be empty")
	}
	if in.Status == "" {
		in.Status = domain.InvoiceDraft
	}
	if !domain.ValidInvoiceStatus(in.Status) {
		return domain.Invoice{}, invalidf("status", "must be draft, sent, paid or overdue")
	}
	if err := validateAmount("total", in.Total); err != nil {
		return domain.Invoice{}, err
	}

	if _, err := s.Store.Clients().GetClient(ctx, in.ClientID, ownerID); err != nil {
		return domain.Invoice{}, err
	}

	inv := domain.Invoice{
		ID:        idx.New().String(),
		ClientID:  in.ClientID,
		Number:    in.Number,
		IssueDate: time.Now().UTC().Truncate(24 * time.Hour),
		DueDate:   in.DueDate,
		Status:    in.Status,
		Total:     in.Total,
	}
	if err := s.Store.Invoices().CreateInvoice(ctx, inv); err != nil {
		return domain.Invoice{}, err
	}
	return s.Store.Invoices().GetInvoice(ctx, inv.ID, ownerID)
}

func (s *InvoiceService) Get(ctx context.Context, id, ownerID string) (domain.Invoice, error) {
	return s.Store.Invoices().GetInvoice(ctx, id, ownerID)
}

func (s *InvoiceService) List(ctx context.Context, ownerID string) ([]domain.Invoice, error) {
	return s.Store.Invoices().ListInvoices(ctx, ownerID)
}

func (s *InvoiceService) Update(ctx context.Context, id, ownerID string, in UpdateInvoiceInput) (domain.Invoice, error) {
	if in.Number != nil && strings.TrimSpace(*in.Number) == "" {
		return domain.Invoice{}, invalidf("number", "must not be empty")
	}
	if in.Status != nil && !domain.ValidInvoiceStatus(*in.Status) {
		return domain.Invoice{}, invalidf("status", "must be draft, sent, paid or overdue")
	}
	if in.Total != nil {
		if err := validateAmount("total", *in.Total); err != nil {
			return domain.Invoice{}, err
		}
	}

	var updated domain.Invoice
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		inv, err := tx.Invoices().GetInvoice(ctx, id, ownerID)
		if err != nil {
			return err
		}

		if in.ClientID != nil && *in.ClientID != inv.ClientID {
			if _, err := tx.Clients().GetClient(ctx, *in.ClientID, ownerID); err != nil {
				return err
			}
			inv.ClientID = *in.ClientID
		}
		if in.Number != nil {
			inv.Number = strings.TrimSpace(*in.Number)
		}
		if in.Status != nil {
			inv.Status = *in.Status
		}
		if in.DueDate != nil {
			inv.DueDate = in.DueDate
		}
		if in.Total != nil {
			inv.Total = *in.Total
		}

		if err := tx.Invoices().UpdateInvoice(ctx, inv, ownerID); err != nil {
			return err
		}
		updated, err = tx.Invoices().GetInvoice(ctx, id, ownerID)
		return err
	})
	if err != nil {
		return domain.Invoice{}, err
	}
	return updated, nil
}

func (s *InvoiceService) Delete(ctx context.Context, id, ownerID string) error {
	return s.Store.Invoices().DeleteInvoice(ctx, id, ownerID)
}
