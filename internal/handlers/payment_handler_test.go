package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dzmarket/payment-engine/internal/events"
	"github.com/dzmarket/payment-engine/internal/gateway"
	"github.com/dzmarket/payment-engine/internal/idempotency"
	"github.com/dzmarket/payment-engine/internal/ledger"
	"github.com/dzmarket/payment-engine/internal/models"
	"github.com/dzmarket/payment-engine/internal/notifier"
	"github.com/dzmarket/payment-engine/internal/repository"
	"github.com/dzmarket/payment-engine/internal/security"
	"github.com/dzmarket/payment-engine/internal/service"
	"github.com/dzmarket/payment-engine/internal/shipping"
	"github.com/dzmarket/payment-engine/internal/telemetry"
	"github.com/dzmarket/payment-engine/internal/verification"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	telemetry.Logger = zap.NewNop()
	os.Exit(m.Run())
}

type testEnv struct {
	router *gin.Engine
	ledger *ledger.Ledger
	guard  *security.Guard
	clock  time.Time
}

func newTestEnv(gw gateway.Client) *testEnv {
	env := &testEnv{clock: time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)}
	now := func() time.Time { return env.clock }

	env.ledger = ledger.NewLedger(now)
	env.guard = security.NewGuard(models.DefaultSecuritySettings(), now)

	orchestrator := service.NewOrchestrator(
		env.ledger, env.guard, gw,
		idempotency.NewMemoryLocker(now),
		events.NewMemoryPublisher(),
		repository.NewMemoryArchive(),
		zap.NewNop(), now,
	)
	verifications := verification.NewManager(env.guard, env.ledger, notifier.NewLogNotifier(zap.NewNop()), zap.NewNop(), now)
	engine := shipping.NewEngine(models.DefaultShippingRates())

	r := gin.New()
	paymentHandler := NewPaymentHandler(orchestrator)
	r.POST("/payments/process", paymentHandler.ProcessPayment)
	r.GET("/payments", paymentHandler.ListTransactions)
	r.GET("/payments/methods", paymentHandler.ListMethods)
	r.POST("/payments/validate", paymentHandler.ValidateMethod)
	r.GET("/payments/:id", paymentHandler.GetTransaction)
	r.POST("/payments/:id/cancel", paymentHandler.Cancel)
	r.GET("/security/status", paymentHandler.SecurityStatus)

	verificationHandler := NewVerificationHandler(verifications)
	r.POST("/payments/:id/verify/start", verificationHandler.Start)
	r.POST("/payments/:id/verify", verificationHandler.Submit)
	r.POST("/payments/:id/verify/resend", verificationHandler.Resend)

	shippingHandler := NewShippingHandler(engine)
	r.GET("/shipping/rates", shippingHandler.GetRates)
	r.GET("/shipping/cost", shippingHandler.GetCost)

	env.router = r
	return env
}

func (env *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestProcessPaymentEndpoint(t *testing.T) {
	env := newTestEnv(gateway.StaticClient{Approved: true})

	w := env.do(t, http.MethodPost, "/payments/process", gin.H{
		"order_id": "ORD1",
		"amount":   5000,
		"method":   "cib",
		"details":  gin.H{"card_number": "4267123456789012", "cvv": "123", "expiry": "12/27"},
	})

	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, true, body["success"])
	assert.NotEmpty(t, body["transaction_id"])
	assert.NotEmpty(t, body["reference"])

	// The created transaction is readable and never exposes the code.
	txID := body["transaction_id"].(string)
	w = env.do(t, http.MethodGet, "/payments/"+txID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	tx := decode(t, w)
	assert.Equal(t, "completed", tx["status"])
	assert.NotContains(t, tx, "securityCode")
	assert.NotContains(t, tx, "security_code")
}

func TestProcessPaymentEndpointRejections(t *testing.T) {
	env := newTestEnv(gateway.StaticClient{Approved: true})

	// Malformed payload.
	w := env.do(t, http.MethodPost, "/payments/process", gin.H{
		"order_id": "ORD1", "amount": 5000, "method": "cib",
		"details": gin.H{"card_number": "1111"},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, models.KindValidationFailed, decode(t, w)["error_kind"])

	// Over the per-transaction limit.
	w = env.do(t, http.MethodPost, "/payments/process", gin.H{
		"order_id": "ORD1", "amount": 100001, "method": "cod",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	// Unknown method tag.
	w = env.do(t, http.MethodPost, "/payments/process", gin.H{
		"order_id": "ORD1", "amount": 100, "method": "paypal",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProcessPaymentEndpointLocked(t *testing.T) {
	env := newTestEnv(gateway.StaticClient{Approved: true})
	for i := 0; i < security.MaxFailedAttempts; i++ {
		env.guard.RecordFailure()
	}

	w := env.do(t, http.MethodPost, "/payments/process", gin.H{
		"order_id": "ORD1", "amount": 100, "method": "cod",
	})
	assert.Equal(t, http.StatusLocked, w.Code)
	assert.Equal(t, models.KindAccountLocked, decode(t, w)["error_kind"])
}

func TestGetTransactionNotFound(t *testing.T) {
	env := newTestEnv(gateway.StaticClient{Approved: true})
	w := env.do(t, http.MethodGet, "/payments/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestValidateEndpoint(t *testing.T) {
	env := newTestEnv(gateway.StaticClient{Approved: true})

	w := env.do(t, http.MethodPost, "/payments/validate", gin.H{
		"method": "bankTransfer", "details": gin.H{"rib": "1234 5678 9012 3456 7890"},
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decode(t, w)["valid"])

	w = env.do(t, http.MethodPost, "/payments/validate", gin.H{
		"method": "bankTransfer", "details": gin.H{"rib": "123"},
	})
	assert.Equal(t, false, decode(t, w)["valid"])
}

func TestListMethodsEndpoint(t *testing.T) {
	env := newTestEnv(gateway.StaticClient{Approved: true})
	w := env.do(t, http.MethodGet, "/payments/methods", nil)
	require.Equal(t, http.StatusOK, w.Code)
	methods := decode(t, w)["methods"].([]any)
	assert.Len(t, methods, 6)
}

func TestCancelEndpoint(t *testing.T) {
	env := newTestEnv(gateway.StaticClient{Approved: true})
	tx := env.ledger.Create("ORD1", 100, "DZD", models.MethodCOD)

	w := env.do(t, http.MethodPost, "/payments/"+tx.ID+"/cancel", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodPost, "/payments/"+tx.ID+"/cancel", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestSecurityStatusEndpoint(t *testing.T) {
	env := newTestEnv(gateway.StaticClient{Approved: true})
	env.guard.RecordFailure()

	w := env.do(t, http.MethodGet, "/security/status", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, float64(1), body["failed_attempts"])
	assert.Equal(t, false, body["locked"])
}

func TestShippingEndpoints(t *testing.T) {
	env := newTestEnv(gateway.StaticClient{Approved: true})

	w := env.do(t, http.MethodGet, "/shipping/rates?wilaya=16&weight=2&value=6000", nil)
	require.Equal(t, http.StatusOK, w.Code)
	rates := decode(t, w)["rates"].([]any)
	assert.NotEmpty(t, rates)

	w = env.do(t, http.MethodGet, "/shipping/cost?method=express&wilaya=16&weight=2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, float64(1000), body["cost"])
	assert.Equal(t, true, body["available"])

	w = env.do(t, http.MethodGet, "/shipping/cost?method=express&wilaya=01&weight=2", nil)
	body = decode(t, w)
	assert.Equal(t, float64(-1), body["cost"])
	assert.Equal(t, false, body["available"])

	w = env.do(t, http.MethodGet, "/shipping/rates", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestVerificationEndpoints(t *testing.T) {
	env := newTestEnv(gateway.StaticClient{Approved: true})
	tx := env.ledger.Create("ORD1", 5000, "DZD", models.MethodCIB)

	w := env.do(t, http.MethodPost, "/payments/"+tx.ID+"/verify/start", gin.H{
		"channel": "sms", "destination": "0550123456",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "code_sent", decode(t, w)["state"])

	// Wrong code consumes an attempt.
	w = env.do(t, http.MethodPost, "/payments/"+tx.ID+"/verify", gin.H{"code": "000000"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, models.KindVerificationMismatch, decode(t, w)["error_kind"])

	// Resend is still cooling down.
	w = env.do(t, http.MethodPost, "/payments/"+tx.ID+"/verify/resend", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	// The right code verifies.
	w = env.do(t, http.MethodPost, "/payments/"+tx.ID+"/verify", gin.H{"code": tx.SecurityCode})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "verified", decode(t, w)["state"])

	// Unknown transaction.
	w = env.do(t, http.MethodPost, "/payments/missing/verify/start", gin.H{
		"channel": "sms", "destination": "0550123456",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
