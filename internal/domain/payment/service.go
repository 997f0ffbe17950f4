package payment

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

type Ledger interface {
	Record(ctx context.Context, rec Record) error
	UpdateStatus(ctx context.Context, intentID, status string, at time.Time) (bool, error)
}

// Recorder receives gateway outcomes for metrics.
type Recorder interface {
	RecordPaymentIntent(ok bool)
}

type Config struct {
	Currency      string
	WebhookSecret string
}

type Service struct {
	gateway Gateway
	ledger  Ledger
	cfg     Config
	metrics Recorder
	log     logrus.FieldLogger
	now     func() time.Time
}

func NewService(gateway Gateway, ledger Ledger, cfg Config, log logrus.FieldLogger) *Service {
	if cfg.Currency == "" {
		cfg.Currency = "usd"
	}
	return &Service{
		gateway: gateway,
		ledger:  ledger,
		cfg:     cfg,
		log:     log.WithField("component", "payment"),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) SetRecorder(r Recorder) { s.metrics = r }

// CreateIntent validates the amount before anything reaches the gateway.
func (s *Service) CreateIntent(ctx context.Context, callerEmail string, in CreateIntentInput) (*IntentResponse, error) {
	amount, err := ParseAmount(in.Amount)
	if err != nil {
		return nil, err
	}
	minor := ToMinorUnits(amount)
	if minor < 1 {
		return nil, fmt.Errorf("%w: amount is below the smallest currency unit", ErrBadRequest)
	}

	intent, err := s.gateway.CreatePaymentIntent(ctx, IntentRequest{
		AmountMinor: minor,
		Currency:    s.cfg.Currency,
		Metadata:    map[string]string{"email": callerEmail},
	})
	s.record(err == nil)
	if err != nil {
		s.log.WithError(err).WithField("amount", minor).Error("create payment intent failed")
		return nil, err
	}

	now := s.now()
	rec := Record{
		PaymentIntentID: intent.ID,
		Email:           callerEmail,
		Amount:          minor,
		Currency:        s.cfg.Currency,
		Status:          StatusCreated,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.ledger.Record(ctx, rec); err != nil {
		// the intent exists at the gateway; the webhook will still find nothing to update
		s.log.WithError(err).WithField("intent", intent.ID).Warn("payment ledger write failed")
	}

	return &IntentResponse{ClientSecret: intent.ClientSecret}, nil
}

func (s *Service) record(ok bool) {
	if s.metrics != nil {
		s.metrics.RecordPaymentIntent(ok)
	}
}
