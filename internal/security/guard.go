// Package security tracks failed payment and verification attempts for a
// session and enforces the lockout window.
package security

import (
	"sync"
	"time"

	"github.com/dzmarket/payment-engine/internal/models"
)

const (
	// MaxFailedAttempts failures trigger the lockout.
	MaxFailedAttempts = 3
	// LockoutWindow is how long the account stays locked.
	LockoutWindow = 30 * time.Minute
)

// Guard owns the per-session security state. Time is read through the
// injected clock so lockout expiry can be tested deterministically.
type Guard struct {
	mu          sync.Mutex
	settings    models.SecuritySettings
	attempts    int
	lockedUntil time.Time
	now         func() time.Time
}

func NewGuard(settings models.SecuritySettings, now func() time.Time) *Guard {
	if now == nil {
		now = time.Now
	}
	return &Guard{settings: settings, now: now}
}

// RecordFailure increments the failed-attempt counter by exactly one.
// Reaching the ceiling starts the lockout window.
func (g *Guard) RecordFailure() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.attempts++
	if g.attempts >= MaxFailedAttempts {
		g.lockedUntil = g.now().Add(LockoutWindow)
	}
}

// Reset clears the counter and any active lock. Only an explicit reset
// does this; the counter never decays with time on its own.
func (g *Guard) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.attempts = 0
	g.lockedUntil = time.Time{}
}

// IsLocked reports whether the lockout window is still open.
func (g *Guard) IsLocked() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.lockedLocked()
}

// LockedUntil returns the lock expiry, or the zero time when unlocked.
func (g *Guard) LockedUntil() time.Time {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.lockedLocked() {
		return time.Time{}
	}
	return g.lockedUntil
}

func (g *Guard) FailedAttempts() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.attempts
}

func (g *Guard) Settings() models.SecuritySettings {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.settings
}

// UpdateSettings overwrites the gating configuration.
func (g *Guard) UpdateSettings(settings models.SecuritySettings) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.settings = settings
}

// Status returns a read-only snapshot for reporting.
func (g *Guard) Status() models.SecurityStatus {
	g.mu.Lock()
	defer g.mu.Unlock()

	st := models.SecurityStatus{
		Settings:       g.settings,
		FailedAttempts: g.attempts,
		Locked:         g.lockedLocked(),
	}
	if st.Locked {
		until := g.lockedUntil
		st.LockedUntil = &until
	}
	return st
}

func (g *Guard) lockedLocked() bool {
	return !g.lockedUntil.IsZero() && g.now().Before(g.lockedUntil)
}
