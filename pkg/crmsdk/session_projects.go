package crmsdk

import (
	"context"
	"net/http"
	"net/url"
)

// CreateProject creates a project under one of the caller's clients.
func (s *Session) CreateProject(ctx context.Context, req ProjectRequest) (*Project, error) {
	var out Project
	if err := s.sendJSON(ctx, http.MethodPost, "/v1/projects", req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListProjects returns the caller's projects, newest first. A non-empty
// clientID narrows the list to that client; a clientID the caller does not
// own yields an empty list.
func (s *Session) ListProjects(ctx context.Context, clientID string) ([]Project, error) {
	path := "/v1/projects"
	if clientID != "" {
		path += "?client=" + url.QueryEscape(clientID)
	}

	var out []Project
	if err := s.getJSON(ctx, path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetProject fetches a single project by id.
func (s *Session) GetProject(ctx context.Context, id string) (*Project, error) {
	var out Project
	if err := s.getJSON(ctx, "/v1/projects/"+id, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProject applies a partial update. Nil fields are left untouched.
func (s *Session) UpdateProject(ctx context.Context, id string, req ProjectRequest) (*Project, error) {
	var out Project
	if err := s.sendJSON(ctx, http.MethodPatch, "/v1/projects/"+id, req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteProject removes a project.
func (s *Session) DeleteProject(ctx context.Context, id string) error {
	return s.delete(ctx, "/v1/projects/"+id)
}
