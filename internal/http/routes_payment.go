package http

import (
	"io"
	"net/http"

	"fitness-tracker/backend/internal/domain/payment"

	"github.com/go-chi/chi/v5"
)

const maxWebhookBytes = int64(65536)

func mountPaymentRoutes(pub, authed chi.Router, d RouterDeps) {
	authed.Post("/create-payment-intent", func(w http.ResponseWriter, r *http.Request) {
		if d.Payments == nil {
			Fail(w, http.StatusNotImplemented, payment.ErrNotConfigured.Error())
			return
		}
		var in payment.CreateIntentInput
		if err := ReadJSON(w, r, &in); err != nil {
			Fail(w, http.StatusBadRequest, "invalid json")
			return
		}
		out, err := d.Payments.CreateIntent(r.Context(), callerEmail(r), in)
		if err != nil {
			failWith(w, r, d.Log, err, mapPaymentError)
			return
		}
		WriteJSON(w, http.StatusOK, out)
	})

	pub.Post("/stripe/webhook", func(w http.ResponseWriter, r *http.Request) {
		if d.Payments == nil {
			Fail(w, http.StatusNotImplemented, payment.ErrNotConfigured.Error())
			return
		}
		payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBytes))
		if err != nil {
			Fail(w, http.StatusBadRequest, "failed to read body")
			return
		}
		if err := d.Payments.HandleWebhook(r.Context(), payload, r.Header.Get("Stripe-Signature")); err != nil {
			failWith(w, r, d.Log, err, mapPaymentError)
			return
		}
		WriteJSON(w, http.StatusOK, map[string]bool{"received": true})
	})
}
