package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dzmarket/payment-engine/internal/models"
)

func TestValidateCIB(t *testing.T) {
	assert.True(t, Validate(models.MethodCIB, models.PaymentDetails{CardNumber: "4267123456789012"}))
	assert.True(t, Validate(models.MethodCIB, models.PaymentDetails{CardNumber: "5456123456789012"}))

	// Unlisted prefix
	assert.False(t, Validate(models.MethodCIB, models.PaymentDetails{CardNumber: "1234123456789012"}))
	// Valid prefix but 15 digits
	assert.False(t, Validate(models.MethodCIB, models.PaymentDetails{CardNumber: "426712345678901"}))
	// 17 digits
	assert.False(t, Validate(models.MethodCIB, models.PaymentDetails{CardNumber: "42671234567890123"}))
	assert.False(t, Validate(models.MethodCIB, models.PaymentDetails{CardNumber: ""}))
}

func TestValidateEddahabia(t *testing.T) {
	assert.True(t, Validate(models.MethodEddahabia, models.PaymentDetails{CardNumber: "5078061234567890"}))
	assert.False(t, Validate(models.MethodEddahabia, models.PaymentDetails{CardNumber: "5078071234567890"}))
	assert.False(t, Validate(models.MethodEddahabia, models.PaymentDetails{CardNumber: "507806123456789"}))
}

func TestValidateFlexy(t *testing.T) {
	assert.False(t, Validate(models.MethodFlexy, models.PaymentDetails{AccountNumber: "1234567"}))
	assert.True(t, Validate(models.MethodFlexy, models.PaymentDetails{AccountNumber: "12345678"}))
	assert.True(t, Validate(models.MethodFlexy, models.PaymentDetails{AccountNumber: "123456789012"}))
	assert.False(t, Validate(models.MethodFlexy, models.PaymentDetails{AccountNumber: "1234567890123"}))
}

func TestValidateRIB(t *testing.T) {
	assert.True(t, Validate(models.MethodBankTransfer, models.PaymentDetails{RIB: "12345678901234567890"}))
	// Embedded spaces are stripped before the length check.
	assert.True(t, Validate(models.MethodBankTransfer, models.PaymentDetails{RIB: "1234 5678 9012 3456 7890"}))

	assert.False(t, Validate(models.MethodBankTransfer, models.PaymentDetails{RIB: "1234567890123456789"}))
	assert.False(t, Validate(models.MethodBankTransfer, models.PaymentDetails{RIB: "123456789012345678901"}))
	assert.False(t, Validate(models.MethodBankTransfer, models.PaymentDetails{RIB: "1234567890123456789a"}))
}

func TestValidateCODAndGoldCard(t *testing.T) {
	assert.True(t, Validate(models.MethodCOD, models.PaymentDetails{}))

	assert.True(t, Validate(models.MethodGoldCard, models.PaymentDetails{CardNumber: "4000123412341234"}))
	assert.False(t, Validate(models.MethodGoldCard, models.PaymentDetails{}))
}

func TestValidateUnknownMethod(t *testing.T) {
	assert.False(t, Validate(models.PaymentMethod("paypal"), models.PaymentDetails{CardNumber: "4267123456789012"}))
}
