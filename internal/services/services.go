// ABOUTME: Entity service facades over the academy API client
// ABOUTME: Each facade default-fills params, validates payloads and normalizes every error

package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/markalston/academia-console/internal/apiclient"
	"github.com/markalston/academia-console/internal/apperror"
	"github.com/markalston/academia-console/internal/cache"
	"github.com/markalston/academia-console/internal/pagination"
	"github.com/markalston/academia-console/internal/validate"
)

// DefaultStatsTTL is how long dashboard counters are reused.
const DefaultStatsTTL = 30 * time.Second

// Services groups one facade per entity kind.
type Services struct {
	Students   *Students
	Professors *Professors
	Classes    *Classes
	Exercises  *Exercises
	Deliveries *Deliveries
	Materials  *Materials
	Payments   *Payments
	Enrollment *Enrollment

	stats *cache.Cache[any]
}

type Option func(*options)

type options struct {
	logger   *slog.Logger
	statsTTL time.Duration
}

func WithLogger(l *slog.Logger) Option { return func(o *options) { o.logger = l } }

// WithStatsTTL sets how long statistics are cached. Zero or less disables caching.
func WithStatsTTL(d time.Duration) Option { return func(o *options) { o.statsTTL = d } }

// New builds every facade on top of api.
func New(api *apiclient.Client, opts ...Option) *Services {
	o := options{logger: slog.Default(), statsTTL: DefaultStatsTTL}
	for _, opt := range opts {
		opt(&o)
	}

	b := &base{api: api, logger: o.logger}
	if o.statsTTL > 0 {
		b.stats = cache.New[any](o.statsTTL)
	}

	return &Services{
		Students:   &Students{base: b},
		Professors: &Professors{base: b},
		Classes:    &Classes{base: b},
		Exercises:  &Exercises{base: b},
		Deliveries: &Deliveries{base: b},
		Materials:  &Materials{base: b},
		Payments:   &Payments{base: b},
		Enrollment: &Enrollment{base: b},
		stats:      b.stats,
	}
}

// Close stops background cache maintenance.
func (s *Services) Close() {
	if s.stats != nil {
		s.stats.Close()
	}
}

// base holds what every facade shares.
type base struct {
	api    *apiclient.Client
	logger *slog.Logger
	stats  *cache.Cache[any]
	group  singleflight.Group
}

// fail logs err under op and returns it normalized.
func (b *base) fail(op string, err error) error {
	b.logger.Warn("Service call failed", "op", op, "error", err)
	return apperror.Wrap(op, err)
}

// check struct-validates a request payload before any network call.
func check(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var fields validate.FieldErrors
	if errors.As(err, &fields) {
		return apperror.Validation(fields)
	}
	return err
}

// params default-fills and clamps caller params for one listing.
func params(p pagination.Params, def pagination.Params) pagination.Params {
	return p.Normalize(def)
}

// cached serves key from the statistics cache, deduplicating concurrent
// fetches of the same key. The shared fetch runs detached from the caller's
// cancellation so one caller giving up does not fail the others; each caller
// still returns as soon as its own ctx is done.
func cached[T any](ctx context.Context, b *base, key string, fetch func(context.Context) (T, error)) (T, error) {
	var zero T
	if b.stats != nil {
		if v, ok := b.stats.Get(key); ok {
			if t, ok := v.(T); ok {
				return t, nil
			}
		}
	}

	shared := context.WithoutCancel(ctx)
	ch := b.group.DoChan(key, func() (any, error) {
		t, err := fetch(shared)
		if err != nil {
			return nil, err
		}
		if b.stats != nil {
			b.stats.Set(key, t)
		}
		return t, nil
	})

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		return res.Val.(T), nil
	}
}

// invalidate drops cached statistics after a mutation.
func (b *base) invalidate(keys ...string) {
	if b.stats == nil {
		return
	}
	for _, k := range keys {
		b.stats.Clear(k)
	}
}
