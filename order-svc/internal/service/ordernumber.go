package service

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"overcooked-tableside/order-svc/internal/domain"
)

const (
	DefaultNumberAttempts = 10
	DefaultNumberDelay    = time.Millisecond
)

// OrderNumberGenerator builds ORD<8 digits of unix ms><3 random digits>
// candidates and asks the store whether they are taken. The store's UNIQUE
// constraint stays the final authority.
type OrderNumberGenerator struct {
	MaxAttempts int
	RetryDelay  time.Duration

	Now   func() time.Time
	IntN  func(n int) int
	Sleep func(ctx context.Context, d time.Duration) error
}

func NewOrderNumberGenerator(maxAttempts int) *OrderNumberGenerator {
	if maxAttempts <= 0 {
		maxAttempts = DefaultNumberAttempts
	}
	return &OrderNumberGenerator{
		MaxAttempts: maxAttempts,
		RetryDelay:  DefaultNumberDelay,
		Now:         time.Now,
		IntN:        rand.IntN,
		Sleep:       sleepContext,
	}
}

func (g *OrderNumberGenerator) Generate(ctx context.Context, checker NumberChecker) (string, error) {
	for attempt := 1; attempt <= g.MaxAttempts; attempt++ {
		candidate := FormatOrderNumber(g.Now(), g.IntN(1000))

		exists, err := checker.OrderNumberExists(ctx, candidate)
		if err != nil {
			return "", domain.WrapStore("check order number", err)
		}
		if !exists {
			return candidate, nil
		}

		if attempt < g.MaxAttempts {
			if err := g.Sleep(ctx, g.RetryDelay); err != nil {
				return "", err
			}
		}
	}
	return "", fmt.Errorf("%w after %d attempts", domain.ErrExhaustedRetries, g.MaxAttempts)
}

func FormatOrderNumber(at time.Time, random int) string {
	return fmt.Sprintf("ORD%08d%03d", at.UnixMilli()%100_000_000, random%1000)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
