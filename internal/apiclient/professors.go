// ABOUTME: Professor endpoints of the academy API
// ABOUTME: Listing, CRUD, account state, class assignment and statistics

package apiclient

import (
	"context"
	"net/http"

	"github.com/markalston/academia-console/internal/pagination"
)

// ListProfessors calls GET /api/profesores/paged
func (c *Client) ListProfessors(ctx context.Context, f ProfessorFilters, p pagination.Params) (*pagination.Page[Professor], error) {
	return getPage[Professor](ctx, c, "/api/profesores/paged", listQuery(f, p))
}

// GetProfessor calls GET /api/profesores/{id}
func (c *Client) GetProfessor(ctx context.Context, id int64) (*Professor, error) {
	var p Professor
	if err := c.get(ctx, idPath("/api/profesores/%d", id), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// CreateProfessor calls POST /api/profesores
func (c *Client) CreateProfessor(ctx context.Context, req ProfessorCreate) (*Professor, error) {
	var p Professor
	if err := c.send(ctx, http.MethodPost, "/api/profesores", req, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateProfessor calls PATCH /api/profesores/{id}
func (c *Client) UpdateProfessor(ctx context.Context, id int64, req ProfessorUpdate) (*Professor, error) {
	var p Professor
	if err := c.send(ctx, http.MethodPatch, idPath("/api/profesores/%d", id), req, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// DeleteProfessor calls DELETE /api/profesores/{id}
func (c *Client) DeleteProfessor(ctx context.Context, id int64) error {
	return c.send(ctx, http.MethodDelete, idPath("/api/profesores/%d", id), nil, nil)
}

// SetProfessorEnabled calls PATCH /api/profesores/{id}/estado
func (c *Client) SetProfessorEnabled(ctx context.Context, id int64, enabled bool) (*Professor, error) {
	var p Professor
	body := map[string]bool{"enabled": enabled}
	if err := c.send(ctx, http.MethodPatch, idPath("/api/profesores/%d/estado", id), body, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// AssignProfessorClass calls PUT /api/profesores/{id}/clases/{classId}
func (c *Client) AssignProfessorClass(ctx context.Context, id, classID int64) (*Professor, error) {
	var p Professor
	if err := c.send(ctx, http.MethodPut, idPath("/api/profesores/%d/clases/%d", id, classID), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// RemoveProfessorClass calls DELETE /api/profesores/{id}/clases/{classId}
func (c *Client) RemoveProfessorClass(ctx context.Context, id, classID int64) (*Professor, error) {
	var p Professor
	if err := c.send(ctx, http.MethodDelete, idPath("/api/profesores/%d/clases/%d", id, classID), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// CountProfessors calls GET /api/profesores/estadisticas/total
func (c *Client) CountProfessors(ctx context.Context) (*Count, error) {
	var n Count
	if err := c.get(ctx, "/api/profesores/estadisticas/total", nil, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

// ProfessorEnabledCounts calls GET /api/profesores/estadisticas/habilitacion
func (c *Client) ProfessorEnabledCounts(ctx context.Context) (*EnabledCounts, error) {
	var n EnabledCounts
	if err := c.get(ctx, "/api/profesores/estadisticas/habilitacion", nil, &n); err != nil {
		return nil, err
	}
	return &n, nil
}
