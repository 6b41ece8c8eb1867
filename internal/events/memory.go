package events

import (
	"context"
	"sync"

	"github.com/dzmarket/payment-engine/internal/models"
)

// StateChange is one recorded transition.
type StateChange struct {
	TransactionID string
	From          models.TransactionStatus
	To            models.TransactionStatus
}

// MemoryPublisher records transitions in memory. Used in tests and when
// no broker is configured.
type MemoryPublisher struct {
	mu      sync.Mutex
	changes []StateChange
}

func NewMemoryPublisher() *MemoryPublisher {
	return &MemoryPublisher{}
}

func (p *MemoryPublisher) PublishStateChange(ctx context.Context, txID string, from, to models.TransactionStatus) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.changes = append(p.changes, StateChange{TransactionID: txID, From: from, To: to})
	return nil
}

func (p *MemoryPublisher) Changes() []StateChange {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]StateChange, len(p.changes))
	copy(out, p.changes)
	return out
}
