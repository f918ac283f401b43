package service

import (
	"context"
	"strings"

	"github.com/tallyhq/crm/internal/crm/domain"
	"github.com/tallyhq/crm/internal/crm/store"
	"github.com/tallyhq/crm/pkg/idx"
)

// ClientService owns the client CRUD surface. Every operation takes the
// calling user's id and scopes through the store, so a client outside the
// caller's tenant behaves exactly like a missing one.
type ClientService struct {
	Store store.Store
}

type CreateClientInput struct {
	Name    string
	Email   string
	Phone   string
	Company string
}

// UpdateClientInput uses pointers so absent fields are left untouched.
type UpdateClientInput struct {
	Name    *string
	Email   *string
	Phone   *string
	Company *string
}

func (s *ClientService) Create(ctx context.Context, ownerID string, in CreateClientInput) (domain.Client, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return domain.Client{}, invalidf("name", "must not be empty")
	}

	c := domain.Client{
		ID:      idx.New().String(),
		OwnerID: ownerID,
		Name:    in.Name,
		Email:   strings.TrimSpace(in.Email),
		Phone:   strings.TrimSpace(in.Phone),
		Company: strings.TrimSpace(in.Company),
	}
	if err := s.Store.Clients().CreateClient(ctx, c); err != nil {
		return domain.Client{}, err
	}
	return s.Store.Clients().GetClient(ctx, c.ID, ownerID)
}

func (s *ClientService) Get(ctx context.Context, id, ownerID string) (domain.Client, error) {
	return s.Store.Clients().GetClient(ctx, id, ownerID)
}

func (s *ClientService) List(ctx context.Context, ownerID string) ([]domain.Client, error) {
	return s.Store.Clients().ListClients(ctx, ownerID)
}

// Update applies a partial update inside a transaction so a concurrent
// write cannot interleave between the read and the write.
func (s *ClientService) Update(ctx context.Context, id, ownerID string, in UpdateClientInput) (domain.Client, error) {
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return domain.Client{}, invalidf("name", "must not be empty")
	}

	var updated domain.Client
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		c, err := tx.Clients().GetClient(ctx, id, ownerID)
		if err != nil {
			return err
		}

		if in.Name != nil {
			c.Name = strings.TrimSpace(*in.Name)
		}
		if in.Email != nil {
			c.Email = strings.TrimSpace(*in.Email)
		}
		if in.Phone != nil {
			c.Phone = strings.TrimSpace(*in.Phone)
		}
		if in.Company != nil {
			c.Company = strings.TrimSpace(*in.Company)
		}

		if err := tx.Clients().UpdateClient(ctx, c); err != nil {
			return err
		}
		updated, err = tx.Clients().GetClient(ctx, id, ownerID)
		return err
	})
	if err != nil {
		return domain.Client{}, err
	}
	return updated, nil
}

func (s *ClientService) Delete(ctx context.Context, id, ownerID string) error {
	return s.Store.Clients().DeleteClient(ctx, id, ownerID)
}
