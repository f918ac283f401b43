package service

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/tallyhq/crm/internal/crm/domain"
	"github.com/tallyhq/crm/internal/crm/store"
	"github.com/tallyhq/crm/pkg/idx"
)

// ProjectService owns the project CRUD surface. Projects hang off clients,
// so ownership checks resolve through the client relation; pointing a
// project at another tenant's client is indistinguishable from pointing it
// at a client that does not exist.
type ProjectService struct {
	Store store.Store
}

type CreateProjectInput struct {
	ClientID        string
	Title           string
	Status          string // defaults to "active"
	DueDate         *time.Time
	PaymentCurrency string // defaults to "USD"
	PaymentStatus   string // defaults to "unpaid"
	PaymentAmount   float64
}

// UpdateProjectInput uses pointers so absent fields are left untouched.
// ClientID may be changed, but only to another client of the same owner.
type UpdateProjectInput struct {
	ClientID        *string
	Title           *string
	Status          *string
	DueDate         *time.Time
	PaymentCurrency *string
	PaymentStatus   *string
	PaymentAmount   *float64
}

func (s *ProjectService) Create(ctx context.Context, ownerID string, in CreateProjectInput) (domain.Project, error) {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return domain.Project{}, invalidf("title", "must not be empty")
	}
	if in.Status == "" {
		in.Status = domain.DefaultProjectStatus
	}
	if in.PaymentCurrency == "" {
		in.PaymentCurrency = "USD"
	}
	if in.PaymentStatus == "" {
		in.PaymentStatus = domain.PaymentUnpaid
	}
	if !domain.ValidCurrency(in.PaymentCurrency) {
		return domain.Project{}, invalidf("payment_currency", "must be one of %s", strings.Join(domain.SupportedCurrencies, ", "))
	}
	if !domain.ValidPaymentStatus(in.PaymentStatus) {
		return domain.Project{}, invalidf("payment_status", "must be paid, unpaid or partial")
	}
	if err := validateAmount("payment_amount", in.PaymentAmount); err != nil {
		return domain.Project{}, err
	}

	// The target client must belong to the caller.
	if _, err := s.Store.Clients().GetClient(ctx, in.ClientID, ownerID); err != nil {
		return domain.Project{}, err
	}

	p := domain.Project{
		ID:              idx.New().String(),
		ClientID:        in.ClientID,
		Title:           in.Title,
		Status:          in.Status,
		StartDate:       time.Now().UTC().Truncate(24 * time.Hour),
		DueDate:         in.DueDate,
		PaymentCurrency: in.PaymentCurrency,
		PaymentStatus:   in.PaymentStatus,
		PaymentAmount:   in.PaymentAmount,
	}
	if err := s.Store.Projects().CreateProject(ctx, p); err != nil {
		return domain.Project{}, err
	}
	return s.Store.Projects().GetProject(ctx, p.ID, ownerID)
}

func (s *ProjectService) Get(ctx context.Context, id, ownerID string) (domain.Project, error) {
	return s.Store.Projects().GetProject(ctx, id, ownerID)
}

// List returns the caller's projects, optionally narrowed to one client.
// A clientID the caller does not own yields an empty list, not an error.
func (s *ProjectService) List(ctx context.Context, ownerID, clientID string) ([]domain.Project, error) {
	return s.Store.Projects().ListProjects(ctx, ownerID, clientID)
}

func (s *ProjectService) Update(ctx context.Context, id, ownerID string, in UpdateProjectInput) (domain.Project, error) {
	if in.Title != nil && strings.TrimSpace(*in.Title) == "" {
		return domain.Project{}, invalidf("title", "must not be empty")
	}
	if in.PaymentCurrency != nil && !domain.ValidCurrency(*in.PaymentCurrency) {
		return domain.Project{}, invalidf("payment_currency", "must be one of %s", strings.Join(domain.SupportedCurrencies, ", "))
	}
	if in.PaymentStatus != nil && !domain.ValidPaymentStatus(*in.PaymentStatus) {
		return domain.Project{}, invalidf("payment_status", "must be paid, unpaid or partial")
	}
	if in.PaymentAmount != nil {
		if err := validateAmount("payment_amount", *in.PaymentAmount); err != nil {
			return domain.Project{}, err
		}
	}

	var updated domain.Project
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		p, err := tx.Projects().GetProject(ctx, id, ownerID)
		if err != nil {
			return err
		}

		if in.ClientID != nil && *in.ClientID != p.ClientID {
			if _, err := tx.Clients().GetClient(ctx, *in.ClientID, ownerID); err != nil {
				return err
			}
			p.ClientID = *in.ClientID
		}
		if in.Title != nil {
			p.Title = strings.TrimSpace(*in.Title)
		}
		if in.Status != nil {
			p.Status = *in.Status
		}
		if in.DueDate != nil {
			p.DueDate = in.DueDate
		}
		if in.PaymentCurrency != nil {
			p.PaymentCurrency = *in.PaymentCurrency
		}
		if in.PaymentStatus != nil {
			p.PaymentStatus = *in.PaymentStatus
		}
		if in.PaymentAmount != nil {
			p.PaymentAmount = *in.PaymentAmount
		}

		if err := tx.Projects().UpdateProject(ctx, p, ownerID); err != nil {
			return err
		}
		updated, err = tx.Projects().GetProject(ctx, id, ownerID)
		return err
	})
	if err != nil {
		return domain.Project{}, err
	}
	return updated, nil
}

func (s *ProjectService) Delete(ctx context.Context, id, ownerID string) error {
	return s.Store.Projects().DeleteProject(ctx, id, ownerID)
}

// validateAmount enforces non-negative money with at most two decimal places.
func validateAmount(field string, amount float64) error {
	if amount < 0 {
		return invalidf(field, "must not be negative")
	}
	cents := amount * 100
	if math.Abs(cents-math.Round(cents)) > 1e-6 {
		return invalidf(field, "must have at most two decimal places")
	}
	return nil
}
