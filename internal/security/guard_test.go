package security

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dzmarket/payment-engine/internal/models"
)

type fakeClock struct {
	current time.Time
}

func (c *fakeClock) Now() time.Time          { return c.current }
func (c *fakeClock) Advance(d time.Duration) { c.current = c.current.Add(d) }

func newTestGuard() (*Guard, *fakeClock) {
	clock := &fakeClock{current: time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)}
	return NewGuard(models.DefaultSecuritySettings(), clock.Now), clock
}

func TestRecordFailureLocksAtThreshold(t *testing.T) {
	g, _ := newTestGuard()

	g.RecordFailure()
	g.RecordFailure()
	assert.Equal(t, 2, g.FailedAttempts())
	assert.False(t, g.IsLocked())

	g.RecordFailure()
	assert.Equal(t, 3, g.FailedAttempts())
	assert.True(t, g.IsLocked())
}

func TestLockExpiresWithClock(t *testing.T) {
	g, clock := newTestGuard()

	for i := 0; i < MaxFailedAttempts; i++ {
		g.RecordFailure()
	}
	require.True(t, g.IsLocked())

	clock.Advance(29 * time.Minute)
	assert.True(t, g.IsLocked())

	clock.Advance(2 * time.Minute)
	assert.False(t, g.IsLocked())

	// Expiry unlocks but does not clear the counter.
	assert.Equal(t, 3, g.FailedAttempts())
}

func TestResetClearsCounterAndLock(t *testing.T) {
	g, _ := newTestGuard()

	for i := 0; i < MaxFailedAttempts; i++ {
		g.RecordFailure()
	}
	require.True(t, g.IsLocked())

	g.Reset()
	assert.False(t, g.IsLocked())
	assert.Equal(t, 0, g.FailedAttempts())
	assert.True(t, g.LockedUntil().IsZero())
}

func TestLockedUntil(t *testing.T) {
	g, clock := newTestGuard()
	assert.True(t, g.LockedUntil().IsZero())

	for i := 0; i < MaxFailedAttempts; i++ {
		g.RecordFailure()
	}
	assert.Equal(t, clock.Now().Add(LockoutWindow), g.LockedUntil())
}

func TestStatusSnapshot(t *testing.T) {
	g, _ := newTestGuard()
	g.RecordFailure()

	st := g.Status()
	assert.Equal(t, 1, st.FailedAttempts)
	assert.False(t, st.Locked)
	assert.Nil(t, st.LockedUntil)
	assert.Equal(t, 100000.0, st.Settings.MaxTransactionLimit)

	g.RecordFailure()
	g.RecordFailure()
	st = g.Status()
	assert.True(t, st.Locked)
	require.NotNil(t, st.LockedUntil)
}
