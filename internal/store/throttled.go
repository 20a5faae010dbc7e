package store

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/lgbarn/pgn-ingest-go/internal/record"
)

// Throttled limits the upsert rate of another Store.
type Throttled struct {
	Store
	limiter *rate.Limiter
}

// NewThrottled allows perSecond upserts with bursts of up to burst.
func NewThrottled(s Store, perSecond float64, burst int) *Throttled {
	if burst < 1 {
		burst = 1
	}
	return &Throttled{
		Store:   s,
		limiter: rate.NewLimiter(rate.Limit(perSecond), burst),
	}
}

// Upsert waits for a token, then delegates.
func (t *Throttled) Upsert(ctx context.Context, rec *record.Record) error {
	if err := t.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit: %w", err)
	}
	return t.Store.Upsert(ctx, rec)
}
