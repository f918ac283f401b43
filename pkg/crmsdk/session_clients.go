package crmsdk

import (
	"context"
	"net/http"
)

// CreateClient creates a client record. Name is required.
func (s *Session) CreateClient(ctx context.Context, req ClientRequest) (*Client, error) {
	var out Client
	if err := s.sendJSON(ctx, http.MethodPost, "/v1/clients", req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListClients returns the caller's clients, newest first.
func (s *Session) ListClients(ctx context.Context) ([]Client, error) {
	var out []Client
	if err := s.getJSON(ctx, "/v1/clients", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetClient fetches a single client by id.
func (s *Session) GetClient(ctx context.Context, id string) (*Client, error) {
	var out Client
	if err := s.getJSON(ctx, "/v1/clients/"+id, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateClient applies a partial update. Nil fields are left untouched.
func (s *Session) UpdateClient(ctx context.Context, id string, req ClientRequest) (*Client, error) {
	var out Client
	if err := s.sendJSON(ctx, http.MethodPatch, "/v1/clients/"+id, req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteClient removes a client and, with it, its projects and invoices.
func (s *Session) DeleteClient(ctx context.Context, id string) error {
	return s.delete(ctx, "/v1/clients/"+id)
}
