package repository

import (
	"context"
	"sync"

	"github.com/dzmarket/payment-engine/internal/models"
)

// MemoryArchive keeps finished transactions in memory. Used in tests and
// when no database is configured.
type MemoryArchive struct {
	mu           sync.RWMutex
	transactions []models.PaymentTransaction
}

func NewMemoryArchive() *MemoryArchive {
	return &MemoryArchive{}
}

func (r *MemoryArchive) Save(ctx context.Context, tx models.PaymentTransaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx.SecurityCode = ""
	for i, existing := range r.transactions {
		if existing.ID == tx.ID {
			r.transactions[i] = tx
			return nil
		}
	}
	r.transactions = append(r.transactions, tx)
	return nil
}

func (r *MemoryArchive) GetByOrderID(ctx context.Context, orderID string) ([]models.PaymentTransaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.PaymentTransaction
	for _, tx := range r.transactions {
		if tx.OrderID == orderID {
			out = append(out, tx)
		}
	}
	return out, nil
}
