package interfaces

import (
	"context"
	"time"

	"github.com/dzmarket/payment-engine/internal/models"
)

// TransactionArchive persists finished transactions. Implementations must
// never store the one-time security code.
type TransactionArchive interface {
	Save(ctx context.Context, tx models.PaymentTransaction) error
	GetByOrderID(ctx context.Context, orderID string) ([]models.PaymentTransaction, error)
}

// EventPublisher emits transaction state-change events to the stream
// consumed by downstream order/notification services.
type EventPublisher interface {
	PublishStateChange(ctx context.Context, txID string, from, to models.TransactionStatus) error
}

// Locker serializes processing per order id so a retried submission
// cannot double-charge. Release is best-effort; the TTL bounds staleness.
type Locker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key string) error
}
