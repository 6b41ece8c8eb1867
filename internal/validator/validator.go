// Package validator checks method-specific payment payloads before a
// transaction is created. All checks are format-only; issuer-side
// verification happens at the gateway.
package validator

import (
	"strings"

	"github.com/dzmarket/payment-engine/internal/models"
)

// cibPrefixes are the known CIB issuer ranges (first four digits).
var cibPrefixes = []string{"4267", "4277", "5456", "5457"}

// eddahabiaPrefix is the Algeria Post issuer identification number.
const eddahabiaPrefix = "507806"

// Validate reports whether the payload is well-formed for the method.
// It never returns an error; a malformed payload is simply invalid.
func Validate(method models.PaymentMethod, details models.PaymentDetails) bool {
	switch method {
	case models.MethodCIB:
		return validateCIBCard(details.CardNumber)
	case models.MethodEddahabia:
		return validateEddahabiaCard(details.CardNumber)
	case models.MethodFlexy:
		return validateFlexyAccount(details.AccountNumber)
	case models.MethodBankTransfer:
		return validateRIB(details.RIB)
	case models.MethodGoldCard:
		return details.CardNumber != ""
	case models.MethodCOD:
		// Cash on delivery needs no payload.
		return true
	default:
		return false
	}
}

func validateCIBCard(cardNumber string) bool {
	if len(cardNumber) != 16 || !allDigits(cardNumber) {
		return false
	}
	prefix := cardNumber[:4]
	for _, p := range cibPrefixes {
		if prefix == p {
			return true
		}
	}
	return false
}

func validateEddahabiaCard(cardNumber string) bool {
	return len(cardNumber) == 16 && allDigits(cardNumber) &&
		strings.HasPrefix(cardNumber, eddahabiaPrefix)
}

func validateFlexyAccount(accountNumber string) bool {
	return len(accountNumber) >= 8 && len(accountNumber) <= 12
}

// validateRIB accepts a Relevé d'Identité Bancaire: exactly 20 digits
// after stripping whitespace.
func validateRIB(rib string) bool {
	stripped := strings.Join(strings.Fields(rib), "")
	return len(stripped) == 20 && allDigits(stripped)
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
