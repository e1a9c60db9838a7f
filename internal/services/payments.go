// ABOUTME: Payment facade over the payments API
// ABOUTME: Gateway checkout is handled server-side; this covers records and status

package services

import (
	"context"

	"github.com/markalston/academia-console/internal/apiclient"
	"github.com/markalston/academia-console/internal/pagination"
)

// DefaultRecentLimit applies when Recent is called with a non-positive limit.
const DefaultRecentLimit = 10

type Payments struct{ *base }

func (s *Payments) List(ctx context.Context, f apiclient.PaymentFilters, p pagination.Params) (*pagination.Page[apiclient.Payment], error) {
	page, err := s.api.ListPayments(ctx, f, params(p, pagination.PaymentDefaults))
	if err != nil {
		return nil, s.fail("payments.list", err)
	}
	return page, nil
}

func (s *Payments) Get(ctx context.Context, id int64) (*apiclient.Payment, error) {
	p, err := s.api.GetPayment(ctx, id)
	if err != nil {
		return nil, s.fail("payments.get", err)
	}
	return p, nil
}

func (s *Payments) Create(ctx context.Context, req apiclient.PaymentCreate) (*apiclient.Payment, error) {
	if req.Currency == "" {
		req.Currency = "EUR"
	}
	if err := check(req); err != nil {
		return nil, s.fail("payments.create", err)
	}
	p, err := s.api.CreatePayment(ctx, req)
	if err != nil {
		return nil, s.fail("payments.create", err)
	}
	return p, nil
}

func (s *Payments) Update(ctx context.Context, id int64, req apiclient.PaymentUpdate) (*apiclient.Payment, error) {
	if err := check(req); err != nil {
		return nil, s.fail("payments.update", err)
	}
	p, err := s.api.UpdatePayment(ctx, id, req)
	if err != nil {
		return nil, s.fail("payments.update", err)
	}
	return p, nil
}

func (s *Payments) Delete(ctx context.Context, id int64) error {
	if err := s.api.DeletePayment(ctx, id); err != nil {
		return s.fail("payments.delete", err)
	}
	return nil
}

func (s *Payments) Status(ctx context.Context, id int64) (*apiclient.PaymentStatus, error) {
	st, err := s.api.PaymentStatus(ctx, id)
	if err != nil {
		return nil, s.fail("payments.status", err)
	}
	return st, nil
}

// Recent returns the latest payments, newest first.
func (s *Payments) Recent(ctx context.Context, limit int) ([]apiclient.Payment, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	ps, err := s.api.RecentPayments(ctx, limit)
	if err != nil {
		return nil, s.fail("payments.recent", err)
	}
	return ps, nil
}
