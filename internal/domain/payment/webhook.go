package payment

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/webhook"
)

var eventStatus = map[string]string{
	"payment_intent.succeeded":      StatusSucceeded,
	"payment_intent.payment_failed": StatusFailed,
	"payment_intent.canceled":       StatusCanceled,
}

// HandleWebhook verifies a gateway event and applies it to the ledger.
// Unknown event types are acknowledged and ignored.
func (s *Service) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	if s.cfg.WebhookSecret == "" {
		return ErrNotConfigured
	}

	event, err := webhook.ConstructEventWithOptions(payload, signature, s.cfg.WebhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		return fmt.Errorf("%w: signature verification failed", ErrBadRequest)
	}

	log := s.log.WithFields(logrus.Fields{"event": event.ID, "type": string(event.Type)})

	status, ok := eventStatus[string(event.Type)]
	if !ok {
		log.Debug("webhook event ignored")
		return nil
	}

	var pi stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
		return fmt.Errorf("%w: malformed payment intent payload", ErrBadRequest)
	}

	found, err := s.ledger.UpdateStatus(ctx, pi.ID, status, s.now())
	if err != nil {
		return err
	}
	if !found {
		log.WithField("intent", pi.ID).Warn("webhook for unknown payment intent")
		return nil
	}
	log.WithFields(logrus.Fields{"intent": pi.ID, "status": status}).Info("payment status updated")
	return nil
}
