// Package gateway abstracts the external charge decision. Production
// would put a real acquirer client behind Client; the simulated client
// reproduces the storefront's stand-in behavior.
package gateway

import (
	"context"
	"math/rand"
	"time"

	"github.com/dzmarket/payment-engine/internal/models"
)

// Client attempts to charge a transaction. Approved=false with a nil
// error is a clean decline; a non-nil error is a transport failure.
type Client interface {
	Charge(ctx context.Context, tx models.PaymentTransaction) (approved bool, err error)
}

// SimulatedClient approves charges with a fixed probability after an
// optional artificial latency.
type SimulatedClient struct {
	successRate float64
	latency     time.Duration
	rng         *rand.Rand
}

func NewSimulatedClient(successRate float64, latency time.Duration, seed int64) *SimulatedClient {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &SimulatedClient{
		successRate: successRate,
		latency:     latency,
		rng:         rand.New(rand.NewSource(seed)),
	}
}

func (c *SimulatedClient) Charge(ctx context.Context, tx models.PaymentTransaction) (bool, error) {
	if c.latency > 0 {
		select {
		case <-time.After(c.latency):
		case <-ctx.Done():
			return false, ctx.Err()
		}
	}
	return c.rng.Float64() < c.successRate, nil
}

// StaticClient always returns the configured outcome. Test helper.
type StaticClient struct {
	Approved bool
	Err      error
}

func (c StaticClient) Charge(ctx context.Context, tx models.PaymentTransaction) (bool, error) {
	return c.Approved, c.Err
}
