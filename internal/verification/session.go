// Package verification drives the out-of-band code confirmation for a
// transaction: choosing a delivery channel, submitting the 6-digit code,
// and resending after the cooldown. Attempt accounting goes through the
// session's security guard, so repeated mismatches here trigger the same
// lockout as repeated payment failures.
package verification

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/dzmarket/payment-engine/internal/models"
	"github.com/dzmarket/payment-engine/internal/notifier"
	"github.com/dzmarket/payment-engine/internal/security"
)

type State string

const (
	StateChoosingMethod State = "choosing_method"
	StateCodeSent       State = "code_sent"
	StateVerified       State = "verified"
	StateExhausted      State = "exhausted"
)

// ResendCooldown is how long after a send the resend action stays blocked.
const ResendCooldown = 60 * time.Second

var ErrNotAwaitingCode = errors.New("verification session is not awaiting a code")

// CodeSource is the ledger surface the session needs: reading, rotating
// and comparing a transaction's security code.
type CodeSource interface {
	Get(id string) *models.PaymentTransaction
	VerifyCode(id, code string) bool
	RotateSecurityCode(id string) (string, error)
}

// Session is the verification state machine for one transaction.
// It is driven sequentially by a single user flow.
type Session struct {
	txID        string
	state       State
	channel     models.VerificationChannel
	destination string
	codeSentAt  time.Time

	guard    *security.Guard
	codes    CodeSource
	notifier notifier.Notifier
	logger   *zap.Logger
	now      func() time.Time
}

func NewSession(txID string, guard *security.Guard, codes CodeSource, n notifier.Notifier, logger *zap.Logger, now func() time.Time) (*Session, error) {
	if now == nil {
		now = time.Now
	}
	if codes.Get(txID) == nil {
		return nil, models.ErrTransactionNotFound
	}
	return &Session{
		txID:     txID,
		state:    StateChoosingMethod,
		guard:    guard,
		codes:    codes,
		notifier: n,
		logger:   logger,
		now:      now,
	}, nil
}

func (s *Session) State() State { return s.state }

// AttemptsRemaining reports how many mismatches are left before exhaustion.
func (s *Session) AttemptsRemaining() int {
	remaining := security.MaxFailedAttempts - s.guard.FailedAttempts()
	if remaining < 0 {
		return 0
	}
	return remaining
}

// ChooseChannel selects the delivery channel, sends the code and starts
// the resend cooldown.
func (s *Session) ChooseChannel(ctx context.Context, channel models.VerificationChannel, destination string) error {
	if err := s.rejectIfLocked(); err != nil {
		return err
	}
	if s.state != StateChoosingMethod {
		return ErrNotAwaitingCode
	}
	if !s.channelEnabled(channel) || destination == "" {
		return models.ErrChannelUnavailable
	}

	tx := s.codes.Get(s.txID)
	if tx == nil {
		return models.ErrTransactionNotFound
	}
	if err := s.notifier.SendCode(ctx, channel, destination, tx.SecurityCode); err != nil {
		return err
	}

	s.channel = channel
	s.destination = destination
	s.state = StateCodeSent
	s.codeSentAt = s.now()

	s.logger.Info("Verification code dispatched",
		zap.String("transaction_id", s.txID),
		zap.String("channel", string(channel)),
	)
	return nil
}

// Submit compares the entered code. A locked account rejects without
// consuming an attempt, as does a malformed code. A mismatch consumes
// one attempt; the third mismatch exhausts the session and locks the
// account. A match verifies the session and resets the counter.
func (s *Session) Submit(ctx context.Context, code string) error {
	if err := s.rejectIfLocked(); err != nil {
		return err
	}
	if s.state != StateCodeSent {
		return ErrNotAwaitingCode
	}
	if !validCodeFormat(code) {
		return models.ErrCodeFormat
	}

	if s.codes.VerifyCode(s.txID, code) {
		s.state = StateVerified
		s.guard.Reset()
		s.logger.Info("Transaction verified", zap.String("transaction_id", s.txID))
		return nil
	}

	s.guard.RecordFailure()
	if s.guard.FailedAttempts() >= security.MaxFailedAttempts {
		s.state = StateExhausted
		s.logger.Warn("Verification attempts exhausted",
			zap.String("transaction_id", s.txID),
		)
		return models.ErrVerificationExhausted
	}

	s.logger.Warn("Verification code mismatch",
		zap.String("transaction_id", s.txID),
		zap.Int("attempts_remaining", s.AttemptsRemaining()),
	)
	return models.ErrVerificationMismatch
}

// Resend rotates the code and sends it again once the cooldown has
// elapsed. It never consumes an attempt.
func (s *Session) Resend(ctx context.Context) error {
	if err := s.rejectIfLocked(); err != nil {
		return err
	}
	if s.state != StateCodeSent {
		return ErrNotAwaitingCode
	}
	if s.now().Sub(s.codeSentAt) < ResendCooldown {
		return models.ErrResendCooldown
	}

	code, err := s.codes.RotateSecurityCode(s.txID)
	if err != nil {
		return err
	}
	if err := s.notifier.SendCode(ctx, s.channel, s.destination, code); err != nil {
		return err
	}
	s.codeSentAt = s.now()
	return nil
}

// CanResend reports whether the cooldown has elapsed.
func (s *Session) CanResend() bool {
	return s.state == StateCodeSent && s.now().Sub(s.codeSentAt) >= ResendCooldown
}

func (s *Session) rejectIfLocked() error {
	if s.guard.IsLocked() {
		return &models.AccountLockedError{Until: s.guard.LockedUntil()}
	}
	return nil
}

func (s *Session) channelEnabled(channel models.VerificationChannel) bool {
	settings := s.guard.Settings()
	switch channel {
	case models.ChannelSMS:
		return settings.SMSVerificationEnabled
	case models.ChannelEmail:
		return settings.EmailVerificationEnabled
	default:
		return false
	}
}

func validCodeFormat(code string) bool {
	if len(code) != 6 {
		return false
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
