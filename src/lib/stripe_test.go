package lib

import (
	"context"
	"net/http"
	"net/http/httptest"
	"plannova/src/models"
	"plannova/src/types"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v82"
)

func stripeTestClient(t *testing.T, handler http.HandlerFunc) *stripe.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	backends := stripe.NewBackendsWithConfig(&stripe.BackendConfig{
		URL:               stripe.String(server.URL),
		MaxNetworkRetries: stripe.Int64(0),
	})
	return stripe.NewClient("sk_test_123", stripe.WithBackends(backends))
}

func testPayment() *models.Payment {
	return &models.Payment{ID: uuid.New(), EventID: uuid.New(), VendorID: uuid.New(), Amount: 50000, Currency: "inr", Phase: types.PAYMENT_PENDING}
}

func TestStripeCaptureSucceeded(t *testing.T) {
	p := testPayment()
	var idempotencyKey string
	sc := stripeTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		idempotencyKey = r.Header.Get("Idempotency-Key")
		assert.Equal(t, "/v1/payment_intents", r.URL.Path)
		require.Nil(t, r.ParseForm())
		assert.Equal(t, "50000", r.PostForm.Get("amount"))
		assert.Equal(t, p.ID.String(), r.PostForm.Get("metadata[payment_id]"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"pi_123","object":"payment_intent","status":"succeeded"}`))
	})

	result, err := NewStripeCapturer(sc).Capture(context.Background(), p)
	require.Nil(t, err)
	assert.Equal(t, types.OUTCOME_SUCCESS, result.Outcome)
	assert.Equal(t, "pi_123", result.Reference)
	assert.Equal(t, "settlement-"+p.ID.String(), idempotencyKey)
}

func TestStripeCaptureDeclined(t *testing.T) {
	sc := stripeTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusPaymentRequired)
		w.Write([]byte(`{"error":{"type":"card_error","code":"card_declined","message":"Your card was declined."}}`))
	})

	result, err := NewStripeCapturer(sc).Capture(context.Background(), testPayment())
	require.Nil(t, err)
	assert.Equal(t, types.OUTCOME_FAILURE, result.Outcome)
	assert.Equal(t, "card_declined", result.Reason)
}

func TestStripeCaptureGatewayError(t *testing.T) {
	sc := stripeTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":{"type":"api_error","message":"boom"}}`))
	})

	_, err := NewStripeCapturer(sc).Capture(context.Background(), testPayment())
	assert.NotNil(t, err)
}

func TestStripeCaptureRequiresActionFails(t *testing.T) {
	sc := stripeTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"pi_3ds","object":"payment_intent","status":"requires_action"}`))
	})

	result, err := NewStripeCapturer(sc).Capture(context.Background(), testPayment())
	require.Nil(t, err)
	assert.Equal(t, types.OUTCOME_FAILURE, result.Outcome)
	assert.Equal(t, "pi_3ds", result.Reference)
	assert.Equal(t, "requires_action", result.Reason)
}

func TestStripeCaptureProcessingReadsLiveStatus(t *testing.T) {
	var retrieved bool
	sc := stripeTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.Method == http.MethodGet {
			retrieved = true
			assert.Equal(t, "/v1/payment_intents/pi_slow", r.URL.Path)
			w.Write([]byte(`{"id":"pi_slow","object":"payment_intent","status":"succeeded"}`))
			return
		}
		w.Write([]byte(`{"id":"pi_slow","object":"payment_intent","status":"processing"}`))
	})

	result, err := NewStripeCapturer(sc).Capture(context.Background(), testPayment())
	require.Nil(t, err)
	assert.True(t, retrieved)
	assert.Equal(t, types.OUTCOME_SUCCESS, result.Outcome)
	assert.Equal(t, "pi_slow", result.Reference)
}

func TestStripeCaptureStillProcessing(t *testing.T) {
	sc := stripeTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"pi_slow","object":"payment_intent","status":"processing"}`))
	})

	_, err := NewStripeCapturer(sc).Capture(context.Background(), testPayment())
	assert.ErrorIs(t, err, ErrCaptureInProgress)
}
