package verification

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/dzmarket/payment-engine/internal/models"
	"github.com/dzmarket/payment-engine/internal/notifier"
	"github.com/dzmarket/payment-engine/internal/security"
)

// Manager holds the live verification sessions keyed by transaction id so
// the HTTP layer can drive a session across requests.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session

	guard    *security.Guard
	codes    CodeSource
	notifier notifier.Notifier
	logger   *zap.Logger
	now      func() time.Time
}

func NewManager(guard *security.Guard, codes CodeSource, n notifier.Notifier, logger *zap.Logger, now func() time.Time) *Manager {
	if now == nil {
		now = time.Now
	}
	return &Manager{
		sessions: make(map[string]*Session),
		guard:    guard,
		codes:    codes,
		notifier: n,
		logger:   logger,
		now:      now,
	}
}

// Start opens (or reuses) the session for a transaction and dispatches
// the code over the chosen channel.
func (m *Manager) Start(ctx context.Context, txID string, channel models.VerificationChannel, destination string) error {
	m.mu.Lock()
	session, ok := m.sessions[txID]
	if !ok {
		var err error
		session, err = NewSession(txID, m.guard, m.codes, m.notifier, m.logger, m.now)
		if err != nil {
			m.mu.Unlock()
			return err
		}
		m.sessions[txID] = session
	}
	m.mu.Unlock()

	return session.ChooseChannel(ctx, channel, destination)
}

// Submit forwards a code to the transaction's session.
func (m *Manager) Submit(ctx context.Context, txID, code string) error {
	session, err := m.session(txID)
	if err != nil {
		return err
	}
	return session.Submit(ctx, code)
}

// Resend re-dispatches the code for the transaction's session.
func (m *Manager) Resend(ctx context.Context, txID string) error {
	session, err := m.session(txID)
	if err != nil {
		return err
	}
	return session.Resend(ctx)
}

// State reports the session state, or false when no session exists.
func (m *Manager) State(txID string) (State, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	session, ok := m.sessions[txID]
	if !ok {
		return "", false
	}
	return session.State(), true
}

func (m *Manager) session(txID string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	session, ok := m.sessions[txID]
	if !ok {
		return nil, models.ErrTransactionNotFound
	}
	return session, nil
}
