package models

import (
	"errors"
	"fmt"
	"time"
)

// Stable error-kind tokens surfaced to callers. The HTTP layer maps these
// to statuses; localization of the human-readable text is the UI's job.
const (
	KindValidationFailed      = "validation_failed"
	KindLimitExceeded         = "limit_exceeded"
	KindAccountLocked         = "account_locked"
	KindGatewayDeclined       = "gateway_declined"
	KindNetworkError          = "network_error"
	KindVerificationMismatch  = "verification_mismatch"
	KindVerificationExhausted = "verification_exhausted"
	KindDuplicateRequest      = "duplicate_request"
	KindNotFound              = "not_found"
)

// ValidationError reports a malformed method-specific payload.
type ValidationError struct {
	Method PaymentMethod
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid payment details for method %s", e.Method)
}

// LimitExceededError reports an amount over a configured ceiling.
// Scope is "transaction" or "daily".
type LimitExceededError struct {
	Scope  string
	Limit  float64
	Amount float64
}

func (e *LimitExceededError) Error() string {
	return fmt.Sprintf("amount %.2f exceeds %s limit %.2f", e.Amount, e.Scope, e.Limit)
}

// AccountLockedError reports an active security lockout.
type AccountLockedError struct {
	Until time.Time
}

func (e *AccountLockedError) Error() string {
	return fmt.Sprintf("account is temporarily locked until %s", e.Until.Format(time.RFC3339))
}

var (
	ErrGatewayDeclined       = errors.New("payment processing failed")
	ErrNetwork               = errors.New("network error occurred")
	ErrVerificationMismatch  = errors.New("verification code does not match")
	ErrVerificationExhausted = errors.New("verification attempts exhausted")
	ErrCodeFormat            = errors.New("verification code must be 6 digits")
	ErrResendCooldown        = errors.New("resend cooldown has not elapsed")
	ErrChannelUnavailable    = errors.New("verification channel is not available")
	ErrTransactionNotFound   = errors.New("transaction not found")
	ErrInvalidTransition     = errors.New("invalid status transition")
	ErrOrderInFlight         = errors.New("order is already being processed")
)

// ErrorKind resolves an engine error to its stable kind token.
func ErrorKind(err error) string {
	var ve *ValidationError
	var le *LimitExceededError
	var ae *AccountLockedError
	switch {
	case errors.As(err, &ve):
		return KindValidationFailed
	case errors.As(err, &le):
		return KindLimitExceeded
	case errors.As(err, &ae):
		return KindAccountLocked
	case errors.Is(err, ErrGatewayDeclined):
		return KindGatewayDeclined
	case errors.Is(err, ErrVerificationMismatch), errors.Is(err, ErrCodeFormat):
		return KindVerificationMismatch
	case errors.Is(err, ErrVerificationExhausted):
		return KindVerificationExhausted
	case errors.Is(err, ErrOrderInFlight):
		return KindDuplicateRequest
	case errors.Is(err, ErrResendCooldown), errors.Is(err, ErrChannelUnavailable):
		return KindValidationFailed
	case errors.Is(err, ErrTransactionNotFound):
		return KindNotFound
	default:
		return KindNetworkError
	}
}
