package payment_test

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"fitness-tracker/backend/internal/domain/payment"
	"fitness-tracker/backend/internal/logging"
	"fitness-tracker/backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const webhookSecret = "whsec_test"

type counter struct{ ok, failed int }

func (c *counter) RecordPaymentIntent(ok bool) {
	if ok {
		c.ok++
	} else {
		c.failed++
	}
}

func newService(gw *testutil.Gateway, ledger *testutil.Ledger) *payment.Service {
	return payment.NewService(gw, ledger, payment.Config{WebhookSecret: webhookSecret}, logging.Discard())
}

func TestParseAmount(t *testing.T) {
	cases := []struct {
		name    string
		in      interface{}
		want    float64
		wantErr bool
	}{
		{"number", 20.0, 20, false},
		{"json number", json.Number("12.5"), 12.5, false},
		{"numeric string", " 7.25 ", 7.25, false},
		{"word", "abc", 0, true},
		{"zero", 0.0, 0, true},
		{"negative", -3.0, 0, true},
		{"missing", nil, 0, true},
		{"bool", true, 0, true},
		{"at ceiling", payment.MaxAmount, payment.MaxAmount, false},
		{"above ceiling", 1e6, 0, true},
		{"overflows int64 cents", 1e17, 0, true},
		{"huge string", "1e300", 0, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := payment.ParseAmount(tc.in)
			if tc.wantErr {
				assert.True(t, payment.IsErrBadRequest(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestToMinorUnitsRounds(t *testing.T) {
	assert.EqualValues(t, 2000, payment.ToMinorUnits(20))
	assert.EqualValues(t, 1999, payment.ToMinorUnits(19.99))
}

func TestCreateIntentInvalidAmountNeverReachesGateway(t *testing.T) {
	gw := &testutil.Gateway{}
	svc := newService(gw, testutil.NewLedger())

	_, err := svc.CreateIntent(context.Background(), "ana@gym.io", payment.CreateIntentInput{Amount: "abc"})
	assert.True(t, payment.IsErrBadRequest(err))
	assert.Empty(t, gw.Requests)

	_, err = svc.CreateIntent(context.Background(), "ana@gym.io", payment.CreateIntentInput{Amount: 0.001})
	assert.True(t, payment.IsErrBadRequest(err))
	assert.Empty(t, gw.Requests)

	_, err = svc.CreateIntent(context.Background(), "ana@gym.io", payment.CreateIntentInput{Amount: 1e17})
	assert.True(t, payment.IsErrBadRequest(err))
	assert.Empty(t, gw.Requests)
}

func TestCreateIntentConvertsToMinorUnitsAndRecords(t *testing.T) {
	gw := &testutil.Gateway{}
	ledger := testutil.NewLedger()
	metrics := &counter{}
	svc := newService(gw, ledger)
	svc.SetRecorder(metrics)

	out, err := svc.CreateIntent(context.Background(), "ana@gym.io", payment.CreateIntentInput{Amount: 20.0})
	require.NoError(t, err)

	assert.Equal(t, "pi_test_secret", out.ClientSecret)
	require.Len(t, gw.Requests, 1)
	assert.EqualValues(t, 2000, gw.Requests[0].AmountMinor)
	assert.Equal(t, "usd", gw.Requests[0].Currency)
	assert.Equal(t, "ana@gym.io", gw.Requests[0].Metadata["email"])

	rec := ledger.Records["pi_test"]
	assert.Equal(t, payment.StatusCreated, rec.Status)
	assert.EqualValues(t, 2000, rec.Amount)
	assert.Equal(t, 1, metrics.ok)
}

func TestCreateIntentGatewayFailure(t *testing.T) {
	gw := &testutil.Gateway{Err: fmt.Errorf("%w: card declined", payment.ErrGateway)}
	metrics := &counter{}
	svc := newService(gw, testutil.NewLedger())
	svc.SetRecorder(metrics)

	_, err := svc.CreateIntent(context.Background(), "ana@gym.io", payment.CreateIntentInput{Amount: 5.0})
	assert.True(t, payment.IsErrGateway(err))
	assert.Equal(t, 1, metrics.failed)
}

func TestCreateIntentLedgerFailureStillReturnsSecret(t *testing.T) {
	ledger := testutil.NewLedger()
	ledger.Err = fmt.Errorf("duplicate key")
	svc := newService(&testutil.Gateway{}, ledger)

	out, err := svc.CreateIntent(context.Background(), "ana@gym.io", payment.CreateIntentInput{Amount: 5.0})
	require.NoError(t, err)
	assert.Equal(t, "pi_test_secret", out.ClientSecret)
}

func sign(payload []byte, secret string, at time.Time) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(fmt.Sprintf("%d.", at.Unix())))
	mac.Write(payload)
	return fmt.Sprintf("t=%d,v1=%s", at.Unix(), hex.EncodeToString(mac.Sum(nil)))
}

func eventPayload(kind, intent string) []byte {
	return []byte(fmt.Sprintf(
		`{"id":"evt_1","object":"event","type":%q,"api_version":"2020-08-27","data":{"object":{"id":%q,"object":"payment_intent"}}}`,
		kind, intent,
	))
}

func TestHandleWebhookUpdatesLedger(t *testing.T) {
	ledger := testutil.NewLedger()
	ledger.Records["pi_1"] = payment.Record{PaymentIntentID: "pi_1", Status: payment.StatusCreated}
	svc := newService(&testutil.Gateway{}, ledger)

	payload := eventPayload("payment_intent.succeeded", "pi_1")
	err := svc.HandleWebhook(context.Background(), payload, sign(payload, webhookSecret, time.Now()))
	require.NoError(t, err)
	assert.Equal(t, payment.StatusSucceeded, ledger.Records["pi_1"].Status)
}

func TestHandleWebhookRejectsBadSignature(t *testing.T) {
	svc := newService(&testutil.Gateway{}, testutil.NewLedger())

	payload := eventPayload("payment_intent.succeeded", "pi_1")
	err := svc.HandleWebhook(context.Background(), payload, sign(payload, "whsec_other", time.Now()))
	assert.True(t, payment.IsErrBadRequest(err))
}

func TestHandleWebhookIgnoresUnknownEvents(t *testing.T) {
	ledger := testutil.NewLedger()
	svc := newService(&testutil.Gateway{}, ledger)

	payload := eventPayload("customer.created", "cus_1")
	err := svc.HandleWebhook(context.Background(), payload, sign(payload, webhookSecret, time.Now()))
	assert.NoError(t, err)
	assert.Empty(t, ledger.Records)
}

func TestHandleWebhookWithoutSecret(t *testing.T) {
	svc := payment.NewService(&testutil.Gateway{}, testutil.NewLedger(), payment.Config{}, logging.Discard())

	err := svc.HandleWebhook(context.Background(), []byte("{}"), "")
	assert.True(t, payment.IsErrNotConfigured(err))
}
