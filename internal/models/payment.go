package models

import (
	"fmt"
	"time"
)

type PaymentMethod string

const (
	MethodCIB          PaymentMethod = "cib"
	MethodEddahabia    PaymentMethod = "eddahabia"
	MethodFlexy        PaymentMethod = "flexy"
	MethodGoldCard     PaymentMethod = "goldcard"
	MethodCOD          PaymentMethod = "cod"
	MethodBankTransfer PaymentMethod = "bankTransfer"
)

// ParsePaymentMethod maps a wire tag to a PaymentMethod.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch m := PaymentMethod(s); m {
	case MethodCIB, MethodEddahabia, MethodFlexy, MethodGoldCard, MethodCOD, MethodBankTransfer:
		return m, nil
	}
	return "", fmt.Errorf("unknown payment method %q", s)
}

type TransactionStatus string

const (
	StatusPending    TransactionStatus = "pending"
	StatusProcessing TransactionStatus = "processing"
	StatusCompleted  TransactionStatus = "completed"
	StatusFailed     TransactionStatus = "failed"
	StatusCancelled  TransactionStatus = "cancelled"
)

// allowedTransitions defines the valid forward-only status transitions.
// Terminal statuses map to an empty list.
var allowedTransitions = map[TransactionStatus][]TransactionStatus{
	StatusPending:    {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusCompleted, StatusFailed, StatusCancelled},
	StatusCompleted:  {},
	StatusFailed:     {},
	StatusCancelled:  {},
}

func CanTransition(from, to TransactionStatus) bool {
	for _, s := range allowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

func (s TransactionStatus) Terminal() bool {
	return len(allowedTransitions[s]) == 0
}

// PaymentTransaction is one attempted payment. Records are append-only:
// once created they are only ever mutated through status transitions.
type PaymentTransaction struct {
	ID           string            `json:"id"`
	OrderID      string            `json:"order_id"`
	Amount       float64           `json:"amount"`
	Currency     string            `json:"currency"`
	Method       PaymentMethod     `json:"method"`
	Status       TransactionStatus `json:"status"`
	Reference    string            `json:"reference,omitempty"`
	ErrorMessage string            `json:"error_message,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
	CompletedAt  *time.Time        `json:"completed_at,omitempty"`

	// SecurityCode is the one-time verification code. It lives only for
	// the transaction's verification window and is never serialized.
	SecurityCode string `json:"-"`
}

// PaymentDetails carries the method-specific payload submitted at checkout.
type PaymentDetails struct {
	CardNumber    string `json:"card_number,omitempty"`
	CVV           string `json:"cvv,omitempty"`
	Expiry        string `json:"expiry,omitempty"`
	AccountNumber string `json:"account_number,omitempty"`
	PIN           string `json:"pin,omitempty"`
	RIB           string `json:"rib,omitempty"`
}

// PaymentResult is the orchestrator's answer to a processPayment call.
type PaymentResult struct {
	Success       bool   `json:"success"`
	TransactionID string `json:"transaction_id,omitempty"`
	Reference     string `json:"reference,omitempty"`
	Error         string `json:"error,omitempty"`
	ErrorKind     string `json:"error_kind,omitempty"`
}

// MethodInfo describes a payment method for display purposes.
type MethodInfo struct {
	Method              PaymentMethod `json:"method"`
	Name                string        `json:"name"`
	Description         string        `json:"description"`
	Fees                string        `json:"fees"`
	ProcessingTime      string        `json:"processing_time"`
	SupportedCurrencies []string      `json:"supported_currencies"`
}

// MethodCatalog lists every supported payment method.
func MethodCatalog() []MethodInfo {
	return []MethodInfo{
		{MethodCIB, "CIB Bank Card", "Crédit Industriel et Commercial bank cards", "0%", "Instant", []string{"DZD"}},
		{MethodEddahabia, "Eddahabia", "Algeria Post electronic payment card", "0%", "Instant", []string{"DZD"}},
		{MethodFlexy, "Flexy", "Mobile money transfer service", "1%", "Instant", []string{"DZD"}},
		{MethodGoldCard, "Gold Card", "Premium bank card", "0%", "Instant", []string{"DZD", "USD", "EUR"}},
		{MethodCOD, "Cash on Delivery", "Pay when you receive your order", "50 DZD", "On delivery", []string{"DZD"}},
		{MethodBankTransfer, "Bank Transfer", "Direct bank to bank transfer", "0%", "1-3 business days", []string{"DZD"}},
	}
}
