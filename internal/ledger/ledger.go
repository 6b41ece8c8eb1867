// Package ledger keeps the session's payment transactions in memory.
// The ledger is append-only: records are created once and afterwards
// mutated only through forward status transitions, never deleted.
package ledger

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dzmarket/payment-engine/internal/models"
)

type Ledger struct {
	mu           sync.RWMutex
	transactions map[string]*models.PaymentTransaction
	order        []string
	now          func() time.Time
	rng          *rand.Rand
}

func NewLedger(now func() time.Time) *Ledger {
	if now == nil {
		now = time.Now
	}
	return &Ledger{
		transactions: make(map[string]*models.PaymentTransaction),
		now:          now,
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Create opens a pending transaction with a fresh 6-digit security code
// and returns a snapshot of it.
func (l *Ledger) Create(orderID string, amount float64, currency string, method models.PaymentMethod) models.PaymentTransaction {
	l.mu.Lock()
	defer l.mu.Unlock()

	tx := &models.PaymentTransaction{
		ID:           uuid.NewString(),
		OrderID:      orderID,
		Amount:       amount,
		Currency:     currency,
		Method:       method,
		Status:       models.StatusPending,
		CreatedAt:    l.now(),
		SecurityCode: l.generateSecurityCode(),
	}
	l.transactions[tx.ID] = tx
	l.order = append([]string{tx.ID}, l.order...)
	return *tx
}

// UpdateStatus transitions a transaction. Reference is recorded only on
// completion, errMsg only on failure, and CompletedAt is stamped when the
// transaction completes. Transitions out of a terminal status are rejected.
func (l *Ledger) UpdateStatus(id string, status models.TransactionStatus, reference, errMsg string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	tx, ok := l.transactions[id]
	if !ok {
		return models.ErrTransactionNotFound
	}
	if !models.CanTransition(tx.Status, status) {
		return fmt.Errorf("%w: %s -> %s", models.ErrInvalidTransition, tx.Status, status)
	}

	tx.Status = status
	switch status {
	case models.StatusCompleted:
		tx.Reference = reference
		now := l.now()
		tx.CompletedAt = &now
	case models.StatusFailed:
		tx.ErrorMessage = errMsg
	}
	return nil
}

// Get returns a snapshot of the transaction, or nil when the id is unknown.
func (l *Ledger) Get(id string) *models.PaymentTransaction {
	l.mu.RLock()
	defer l.mu.RUnlock()

	tx, ok := l.transactions[id]
	if !ok {
		return nil
	}
	snapshot := *tx
	return &snapshot
}

// List returns snapshots of all transactions, newest first.
func (l *Ledger) List() []models.PaymentTransaction {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]models.PaymentTransaction, 0, len(l.order))
	for _, id := range l.order {
		out = append(out, *l.transactions[id])
	}
	return out
}

// VerifyCode compares a submitted code against the transaction's security
// code. Unknown ids simply fail the comparison.
func (l *Ledger) VerifyCode(id, code string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()

	tx, ok := l.transactions[id]
	return ok && tx.SecurityCode != "" && tx.SecurityCode == code
}

// RotateSecurityCode replaces the transaction's one-time code, invalidating
// the previous one, and returns the new code.
func (l *Ledger) RotateSecurityCode(id string) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	tx, ok := l.transactions[id]
	if !ok {
		return "", models.ErrTransactionNotFound
	}
	tx.SecurityCode = l.generateSecurityCode()
	return tx.SecurityCode, nil
}

// CompletedTotalSince sums the amounts of transactions completed at or
// after the cutoff. Used for the daily spending ceiling.
func (l *Ledger) CompletedTotalSince(cutoff time.Time) float64 {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var total float64
	for _, tx := range l.transactions {
		if tx.Status == models.StatusCompleted && tx.CompletedAt != nil && !tx.CompletedAt.Before(cutoff) {
			total += tx.Amount
		}
	}
	return total
}

func (l *Ledger) generateSecurityCode() string {
	return fmt.Sprintf("%06d", 100000+l.rng.Intn(900000))
}
