// Package notifier delivers one-time verification codes out of band.
package notifier

import (
	"context"

	"go.uber.org/zap"

	"github.com/dzmarket/payment-engine/internal/models"
)

// Notifier sends a verification code over a channel (SMS or email).
type Notifier interface {
	SendCode(ctx context.Context, channel models.VerificationChannel, destination, code string) error
}

// LogNotifier writes the send to the log instead of an external provider.
// This is the simulated delivery used in local runs and tests.
type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) SendCode(ctx context.Context, channel models.VerificationChannel, destination, code string) error {
	n.logger.Info("Verification code sent",
		zap.String("channel", string(channel)),
		zap.String("destination", maskDestination(destination)),
	)
	return nil
}

// maskDestination hides most of a phone number or email address.
func maskDestination(dest string) string {
	if len(dest) <= 4 {
		return "***"
	}
	return dest[:2] + "***" + dest[len(dest)-2:]
}
