package notifier

import (
	"context"
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/dzmarket/payment-engine/internal/models"
)

// SubjectCodeSent is the subject the delivery worker subscribes to.
const SubjectCodeSent = "verification.code.sent"

type codeSentMessage struct {
	Channel     string    `json:"channel"`
	Destination string    `json:"destination"`
	Code        string    `json:"code"`
	SentAt      time.Time `json:"sent_at"`
}

// NATSNotifier hands code delivery to the messaging worker that owns the
// actual SMS/email provider integration.
type NATSNotifier struct {
	nc *nats.Conn
}

func NewNATSNotifier(nc *nats.Conn) *NATSNotifier {
	return &NATSNotifier{nc: nc}
}

func (n *NATSNotifier) SendCode(ctx context.Context, channel models.VerificationChannel, destination, code string) error {
	msg := codeSentMessage{
		Channel:     string(channel),
		Destination: destination,
		Code:        code,
		SentAt:      time.Now(),
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return n.nc.Publish(SubjectCodeSent, payload)
}
