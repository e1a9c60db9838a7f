// ABOUTME: Student endpoints of the academy API
// ABOUTME: Listing, CRUD, enrollment/enabled toggles and statistics

package apiclient

import (
	"context"
	"net/http"

	"github.com/markalston/academia-console/internal/pagination"
)

// ListStudents calls GET /api/alumnos/paged
func (c *Client) ListStudents(ctx context.Context, f StudentFilters, p pagination.Params) (*pagination.Page[Student], error) {
	return getPage[Student](ctx, c, "/api/alumnos/paged", listQuery(f, p))
}

// ListAvailableStudents calls GET /api/alumnos/disponibles
func (c *Client) ListAvailableStudents(ctx context.Context, p pagination.Params) (*pagination.Page[Student], error) {
	return getPage[Student](ctx, c, "/api/alumnos/disponibles", listQuery(nil, p))
}

// GetStudent calls GET /api/alumnos/{id}
func (c *Client) GetStudent(ctx context.Context, id int64) (*Student, error) {
	var s Student
	if err := c.get(ctx, idPath("/api/alumnos/%d", id), nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// MyProfile calls GET /api/alumnos/mi-perfil
func (c *Client) MyProfile(ctx context.Context) (*Student, error) {
	var s Student
	if err := c.get(ctx, "/api/alumnos/mi-perfil", nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// CreateStudent calls POST /api/alumnos
func (c *Client) CreateStudent(ctx context.Context, req StudentCreate) (*Student, error) {
	var s Student
	if err := c.send(ctx, http.MethodPost, "/api/alumnos", req, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// UpdateStudent calls PATCH /api/alumnos/{id}
func (c *Client) UpdateStudent(ctx context.Context, id int64, req StudentUpdate) (*Student, error) {
	var s Student
	if err := c.send(ctx, http.MethodPatch, idPath("/api/alumnos/%d", id), req, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// DeleteStudent calls DELETE /api/alumnos/{id}
func (c *Client) DeleteStudent(ctx context.Context, id int64) error {
	return c.send(ctx, http.MethodDelete, idPath("/api/alumnos/%d", id), nil, nil)
}

// SetStudentEnrolled calls PATCH /api/alumnos/{id}/matricula
func (c *Client) SetStudentEnrolled(ctx context.Context, id int64, enrolled bool) (*Student, error) {
	var s Student
	body := map[string]bool{"enrolled": enrolled}
	if err := c.send(ctx, http.MethodPatch, idPath("/api/alumnos/%d/matricula", id), body, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// SetStudentEnabled calls PATCH /api/alumnos/{id}/habilitar
func (c *Client) SetStudentEnabled(ctx context.Context, id int64, enabled bool) (*Student, error) {
	var s Student
	body := map[string]bool{"enabled": enabled}
	if err := c.send(ctx, http.MethodPatch, idPath("/api/alumnos/%d/habilitar", id), body, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// CountStudents calls GET /api/alumnos/estadisticas/total
func (c *Client) CountStudents(ctx context.Context) (*Count, error) {
	var n Count
	if err := c.get(ctx, "/api/alumnos/estadisticas/total", nil, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

// StudentEnrollmentCounts calls GET /api/alumnos/estadisticas/matriculas
func (c *Client) StudentEnrollmentCounts(ctx context.Context) (*EnrollmentCounts, error) {
	var n EnrollmentCounts
	if err := c.get(ctx, "/api/alumnos/estadisticas/matriculas", nil, &n); err != nil {
		return nil, err
	}
	return &n, nil
}
