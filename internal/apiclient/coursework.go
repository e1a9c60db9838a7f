// ABOUTME: Exercise, delivery and material endpoints of the academy API
// ABOUTME: Plain CRUD plus paged listings with filters

package apiclient

import (
	"context"
	"net/http"

	"github.com/markalston/academia-console/internal/pagination"
)

// ListExercises calls GET /api/ejercicios
func (c *Client) ListExercises(ctx context.Context, f ExerciseFilters, p pagination.Params) (*pagination.Page[Exercise], error) {
	return getPage[Exercise](ctx, c, "/api/ejercicios", listQuery(f, p))
}

// GetExercise calls GET /api/ejercicios/{id}
func (c *Client) GetExercise(ctx context.Context, id int64) (*Exercise, error) {
	var e Exercise
	if err := c.get(ctx, idPath("/api/ejercicios/%d", id), nil, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// CreateExercise calls POST /api/ejercicios
func (c *Client) CreateExercise(ctx context.Context, req ExerciseCreate) (*Exercise, error) {
	var e Exercise
	if err := c.send(ctx, http.MethodPost, "/api/ejercicios", req, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// UpdateExercise calls PATCH /api/ejercicios/{id}
func (c *Client) UpdateExercise(ctx context.Context, id int64, req ExerciseUpdate) (*Exercise, error) {
	var e Exercise
	if err := c.send(ctx, http.MethodPatch, idPath("/api/ejercicios/%d", id), req, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// DeleteExercise calls DELETE /api/ejercicios/{id}
func (c *Client) DeleteExercise(ctx context.Context, id int64) error {
	return c.send(ctx, http.MethodDelete, idPath("/api/ejercicios/%d", id), nil, nil)
}

// ListDeliveries calls GET /api/entregas
func (c *Client) ListDeliveries(ctx context.Context, f DeliveryFilters, p pagination.Params) (*pagination.Page[Delivery], error) {
	return getPage[Delivery](ctx, c, "/api/entregas", listQuery(f, p))
}

// GetDelivery calls GET /api/entregas/{id}
func (c *Client) GetDelivery(ctx context.Context, id int64) (*Delivery, error) {
	var d Delivery
	if err := c.get(ctx, idPath("/api/entregas/%d", id), nil, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// CreateDelivery calls POST /api/entregas
func (c *Client) CreateDelivery(ctx context.Context, req DeliveryCreate) (*Delivery, error) {
	var d Delivery
	if err := c.send(ctx, http.MethodPost, "/api/entregas", req, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// UpdateDelivery calls PATCH /api/entregas/{id}
func (c *Client) UpdateDelivery(ctx context.Context, id int64, req DeliveryUpdate) (*Delivery, error) {
	var d Delivery
	if err := c.send(ctx, http.MethodPatch, idPath("/api/entregas/%d", id), req, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// DeleteDelivery calls DELETE /api/entregas/{id}
func (c *Client) DeleteDelivery(ctx context.Context, id int64) error {
	return c.send(ctx, http.MethodDelete, idPath("/api/entregas/%d", id), nil, nil)
}

// ListMaterials calls GET /api/material
func (c *Client) ListMaterials(ctx context.Context, f MaterialFilters, p pagination.Params) (*pagination.Page[Material], error) {
	return getPage[Material](ctx, c, "/api/material", listQuery(f, p))
}

// GetMaterial calls GET /api/material/{id}
func (c *Client) GetMaterial(ctx context.Context, id int64) (*Material, error) {
	var m Material
	if err := c.get(ctx, idPath("/api/material/%d", id), nil, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// CreateMaterial calls POST /api/material
func (c *Client) CreateMaterial(ctx context.Context, req MaterialCreate) (*Material, error) {
	var m Material
	if err := c.send(ctx, http.MethodPost, "/api/material", req, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// UpdateMaterial calls PUT /api/material/{id}
func (c *Client) UpdateMaterial(ctx context.Context, id int64, req MaterialUpdate) (*Material, error) {
	var m Material
	if err := c.send(ctx, http.MethodPut, idPath("/api/material/%d", id), req, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// DeleteMaterial calls DELETE /api/material/{id}
func (c *Client) DeleteMaterial(ctx context.Context, id int64) error {
	return c.send(ctx, http.MethodDelete, idPath("/api/material/%d", id), nil, nil)
}
