package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/dzmarket/payment-engine/internal/gateway"
	"github.com/dzmarket/payment-engine/internal/interfaces"
	"github.com/dzmarket/payment-engine/internal/ledger"
	"github.com/dzmarket/payment-engine/internal/models"
	"github.com/dzmarket/payment-engine/internal/security"
	"github.com/dzmarket/payment-engine/internal/telemetry"
	"github.com/dzmarket/payment-engine/internal/validator"
)

// Currency is the only settlement currency this engine charges in.
const Currency = "DZD"

// lockTTL bounds how long a stale processing lock can block an order.
const lockTTL = 30 * time.Second

// Orchestrator drives a payment attempt end to end: security and limit
// checks, payload validation, the ledger state machine, the gateway
// charge, and the resulting event/archive writes. One orchestrator owns
// one session's ledger and guard.
type Orchestrator struct {
	ledger  *ledger.Ledger
	guard   *security.Guard
	gateway gateway.Client
	locker  interfaces.Locker
	events  interfaces.EventPublisher
	archive interfaces.TransactionArchive
	logger  *zap.Logger
	now     func() time.Time
}

func NewOrchestrator(
	l *ledger.Ledger,
	guard *security.Guard,
	gw gateway.Client,
	locker interfaces.Locker,
	events interfaces.EventPublisher,
	archive interfaces.TransactionArchive,
	logger *zap.Logger,
	now func() time.Time,
) *Orchestrator {
	if now == nil {
		now = time.Now
	}
	return &Orchestrator{
		ledger:  l,
		guard:   guard,
		gateway: gw,
		locker:  locker,
		events:  events,
		archive: archive,
		logger:  logger,
		now:     now,
	}
}

// ProcessPayment executes one payment attempt. Rejections before the
// transaction exists (lockout, limits, malformed payload, in-flight
// duplicate) create no ledger record.
func (o *Orchestrator) ProcessPayment(ctx context.Context, orderID string, amount float64, method models.PaymentMethod, details models.PaymentDetails) models.PaymentResult {
	if o.guard.IsLocked() {
		return failureResult(&models.AccountLockedError{Until: o.guard.LockedUntil()})
	}

	settings := o.guard.Settings()
	if amount > settings.MaxTransactionLimit {
		return failureResult(&models.LimitExceededError{Scope: "transaction", Limit: settings.MaxTransactionLimit, Amount: amount})
	}
	if spent := o.ledger.CompletedTotalSince(startOfDay(o.now())); spent+amount > settings.MaxDailyLimit {
		return failureResult(&models.LimitExceededError{Scope: "daily", Limit: settings.MaxDailyLimit, Amount: spent + amount})
	}
	if !validator.Validate(method, details) {
		return failureResult(&models.ValidationError{Method: method})
	}

	acquired, err := o.locker.Acquire(ctx, orderID, lockTTL)
	if err != nil {
		o.logger.Error("Error acquiring processing lock", zap.String("order_id", orderID), zap.Error(err))
		return failureResult(models.ErrNetwork)
	}
	if !acquired {
		return failureResult(fmt.Errorf("%w: %s", models.ErrOrderInFlight, orderID))
	}
	defer o.locker.Release(ctx, orderID)

	tx := o.ledger.Create(orderID, amount, Currency, method)
	o.logger.Info("Processing payment",
		zap.String("transaction_id", tx.ID),
		zap.String("order_id", orderID),
		zap.Float64("amount", amount),
		zap.String("method", string(method)),
	)

	if err := o.transition(ctx, tx.ID, models.StatusPending, models.StatusProcessing, "", ""); err != nil {
		return failureResult(models.ErrNetwork)
	}

	approved, err := o.gateway.Charge(ctx, tx)
	if err != nil {
		// Transport failure, not a decline: the transaction must not be
		// left in processing and the failure counter stays untouched.
		o.logger.Error("Gateway error", zap.String("transaction_id", tx.ID), zap.Error(err))
		o.transition(ctx, tx.ID, models.StatusProcessing, models.StatusFailed, "", models.ErrNetwork.Error())
		o.finish(ctx, tx.ID, method, models.StatusFailed)
		return models.PaymentResult{
			Success:       false,
			TransactionID: tx.ID,
			Error:         models.ErrNetwork.Error(),
			ErrorKind:     models.KindNetworkError,
		}
	}

	if !approved {
		o.transition(ctx, tx.ID, models.StatusProcessing, models.StatusFailed, "", models.ErrGatewayDeclined.Error())
		o.guard.RecordFailure()
		o.finish(ctx, tx.ID, method, models.StatusFailed)
		return models.PaymentResult{
			Success:       false,
			TransactionID: tx.ID,
			Error:         models.ErrGatewayDeclined.Error(),
			ErrorKind:     models.KindGatewayDeclined,
		}
	}

	reference := o.buildReference(method)
	if err := o.transition(ctx, tx.ID, models.StatusProcessing, models.StatusCompleted, reference, ""); err != nil {
		return failureResult(models.ErrNetwork)
	}
	o.guard.Reset()
	o.finish(ctx, tx.ID, method, models.StatusCompleted)

	return models.PaymentResult{
		Success:       true,
		TransactionID: tx.ID,
		Reference:     reference,
	}
}

// GetTransaction returns a snapshot, or nil for an unknown id.
func (o *Orchestrator) GetTransaction(id string) *models.PaymentTransaction {
	return o.ledger.Get(id)
}

func (o *Orchestrator) ListTransactions() []models.PaymentTransaction {
	return o.ledger.List()
}

// Cancel drives an explicit external cancellation. Only non-terminal
// transactions can be cancelled.
func (o *Orchestrator) Cancel(ctx context.Context, id string) error {
	tx := o.ledger.Get(id)
	if tx == nil {
		return models.ErrTransactionNotFound
	}
	if err := o.transition(ctx, id, tx.Status, models.StatusCancelled, "", ""); err != nil {
		return err
	}
	o.finish(ctx, id, tx.Method, models.StatusCancelled)
	return nil
}

// ValidateMethod exposes payload validation for form-side checks.
func (o *Orchestrator) ValidateMethod(method models.PaymentMethod, details models.PaymentDetails) bool {
	return validator.Validate(method, details)
}

func (o *Orchestrator) SecurityStatus() models.SecurityStatus {
	return o.guard.Status()
}

// transition applies a ledger status change and publishes the event.
// A publish failure is logged but does not fail the payment.
func (o *Orchestrator) transition(ctx context.Context, txID string, from, to models.TransactionStatus, reference, errMsg string) error {
	if err := o.ledger.UpdateStatus(txID, to, reference, errMsg); err != nil {
		o.logger.Error("Invalid state transition",
			zap.String("transaction_id", txID),
			zap.String("from_state", string(from)),
			zap.String("to_state", string(to)),
			zap.Error(err),
		)
		return err
	}

	if err := o.events.PublishStateChange(ctx, txID, from, to); err != nil {
		o.logger.Warn("Error publishing state change", zap.String("transaction_id", txID), zap.Error(err))
	}

	o.logger.Info("Payment state transition",
		zap.String("transaction_id", txID),
		zap.String("from_state", string(from)),
		zap.String("to_state", string(to)),
	)
	return nil
}

// finish archives the terminal transaction and records the outcome metric.
func (o *Orchestrator) finish(ctx context.Context, txID string, method models.PaymentMethod, status models.TransactionStatus) {
	telemetry.PaymentsTotal.WithLabelValues(string(method), string(status)).Inc()

	tx := o.ledger.Get(txID)
	if tx == nil {
		return
	}
	tx.SecurityCode = ""
	if err := o.archive.Save(ctx, *tx); err != nil {
		o.logger.Warn("Error archiving transaction", zap.String("transaction_id", txID), zap.Error(err))
	}
}

func (o *Orchestrator) buildReference(method models.PaymentMethod) string {
	return fmt.Sprintf("ALG%d%s", o.now().UnixMilli(), strings.ToUpper(string(method)))
}

func failureResult(err error) models.PaymentResult {
	return models.PaymentResult{
		Success:   false,
		Error:     err.Error(),
		ErrorKind: models.ErrorKind(err),
	}
}

func startOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}
