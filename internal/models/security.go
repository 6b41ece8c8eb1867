package models

import "time"

// SecuritySettings gates which verification channels are offered and the
// spending ceilings enforced before a transaction may be created.
// Limits are in DZD.
type SecuritySettings struct {
	TwoFactorEnabled         bool    `json:"two_factor_enabled"`
	SMSVerificationEnabled   bool    `json:"sms_verification_enabled"`
	EmailVerificationEnabled bool    `json:"email_verification_enabled"`
	MaxDailyLimit            float64 `json:"max_daily_limit"`
	MaxTransactionLimit      float64 `json:"max_transaction_limit"`
}

func DefaultSecuritySettings() SecuritySettings {
	return SecuritySettings{
		SMSVerificationEnabled:   true,
		EmailVerificationEnabled: true,
		MaxDailyLimit:            500000,
		MaxTransactionLimit:      100000,
	}
}

// SecurityStatus is a read-only snapshot of the guard state.
type SecurityStatus struct {
	Settings       SecuritySettings `json:"settings"`
	FailedAttempts int              `json:"failed_attempts"`
	Locked         bool             `json:"locked"`
	LockedUntil    *time.Time       `json:"locked_until,omitempty"`
}

// VerificationChannel is the out-of-band delivery channel for one-time codes.
type VerificationChannel string

const (
	ChannelSMS   VerificationChannel = "sms"
	ChannelEmail VerificationChannel = "email"
)
