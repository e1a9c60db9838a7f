// ABOUTME: Class endpoints of the academy API
// ABOUTME: Courses and workshops share one model but have separate creation routes

package apiclient

import (
	"context"
	"net/http"

	"github.com/markalston/academia-console/internal/pagination"
)

// ListClasses calls GET /api/clases
func (c *Client) ListClasses(ctx context.Context, f ClassFilters, p pagination.Params) (*pagination.Page[Class], error) {
	return getPage[Class](ctx, c, "/api/clases", listQuery(f, p))
}

// GetClass calls GET /api/clases/{id}
func (c *Client) GetClass(ctx context.Context, id int64) (*Class, error) {
	var cl Class
	if err := c.get(ctx, idPath("/api/clases/%d", id), nil, &cl); err != nil {
		return nil, err
	}
	return &cl, nil
}

// CreateClass calls POST /api/clases/cursos or /api/clases/talleres by kind.
func (c *Client) CreateClass(ctx context.Context, req ClassCreate) (*Class, error) {
	path := "/api/clases/cursos"
	if req.Kind == ClassKindWorkshop {
		path = "/api/clases/talleres"
	}
	var cl Class
	if err := c.send(ctx, http.MethodPost, path, req, &cl); err != nil {
		return nil, err
	}
	return &cl, nil
}

// UpdateClass calls PATCH /api/clases/{id}
func (c *Client) UpdateClass(ctx context.Context, id int64, req ClassUpdate) (*Class, error) {
	var cl Class
	if err := c.send(ctx, http.MethodPatch, idPath("/api/clases/%d", id), req, &cl); err != nil {
		return nil, err
	}
	return &cl, nil
}

// DeleteClass calls DELETE /api/clases/{id}
func (c *Client) DeleteClass(ctx context.Context, id int64) error {
	return c.send(ctx, http.MethodDelete, idPath("/api/clases/%d", id), nil, nil)
}

// ListClassStudents calls GET /api/clases/{id}/alumnos
func (c *Client) ListClassStudents(ctx context.Context, id int64, p pagination.Params) (*pagination.Page[Student], error) {
	return getPage[Student](ctx, c, idPath("/api/clases/%d/alumnos", id), listQuery(nil, p))
}
