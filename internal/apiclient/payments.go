// ABOUTME: Payment endpoints of the academy API
// ABOUTME: Gateway callbacks are handled server-side and not exposed here

package apiclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/markalston/academia-console/internal/pagination"
)

// ListPayments calls GET /api/pagos
func (c *Client) ListPayments(ctx context.Context, f PaymentFilters, p pagination.Params) (*pagination.Page[Payment], error) {
	return getPage[Payment](ctx, c, "/api/pagos", listQuery(f, p))
}

// GetPayment calls GET /api/pagos/{id}
func (c *Client) GetPayment(ctx context.Context, id int64) (*Payment, error) {
	var p Payment
	if err := c.get(ctx, idPath("/api/pagos/%d", id), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// CreatePayment calls POST /api/pagos
func (c *Client) CreatePayment(ctx context.Context, req PaymentCreate) (*Payment, error) {
	var p Payment
	if err := c.send(ctx, http.MethodPost, "/api/pagos", req, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdatePayment calls PATCH /api/pagos/{id}
func (c *Client) UpdatePayment(ctx context.Context, id int64, req PaymentUpdate) (*Payment, error) {
	var p Payment
	if err := c.send(ctx, http.MethodPatch, idPath("/api/pagos/%d", id), req, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// DeletePayment calls DELETE /api/pagos/{id}
func (c *Client) DeletePayment(ctx context.Context, id int64) error {
	return c.send(ctx, http.MethodDelete, idPath("/api/pagos/%d", id), nil, nil)
}

// PaymentStatus calls GET /api/pagos/{id}/status
func (c *Client) PaymentStatus(ctx context.Context, id int64) (*PaymentStatus, error) {
	var s PaymentStatus
	if err := c.get(ctx, idPath("/api/pagos/%d/status", id), nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// RecentPayments calls GET /api/pagos/recent
func (c *Client) RecentPayments(ctx context.Context, limit int) ([]Payment, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	var ps []Payment
	if err := c.get(ctx, "/api/pagos/recent", q, &ps); err != nil {
		return nil, err
	}
	return ps, nil
}
