package app

import (
	"context"
	"fmt"
	"net/http"

	"fitness-tracker/backend/internal/config"
	"fitness-tracker/backend/internal/domain/booking"
	"fitness-tracker/backend/internal/domain/class"
	"fitness-tracker/backend/internal/domain/community"
	"fitness-tracker/backend/internal/domain/media"
	"fitness-tracker/backend/internal/domain/payment"
	"fitness-tracker/backend/internal/domain/trainer"
	"fitness-tracker/backend/internal/domain/user"
	"fitness-tracker/backend/internal/firebase"
	apihttp "fitness-tracker/backend/internal/http"
	"fitness-tracker/backend/internal/metrics"
	"fitness-tracker/backend/internal/store"

	"github.com/sirupsen/logrus"
)

// App holds every long lived dependency of the API process.
type App struct {
	Cfg     config.Config
	Log     *logrus.Logger
	DB      *store.DB
	Google  *firebase.Clients
	Metrics *metrics.Metrics

	Users     *user.Service
	Trainers  *trainer.Service
	Classes   *class.Service
	Bookings  *booking.Service
	Community *community.Service
	Payments  *payment.Service
	Media     *media.Service
}

// New connects the store and the identity provider and builds the services.
func New(ctx context.Context, cfg config.Config, log *logrus.Logger) (*App, error) {
	db, err := store.Connect(ctx, store.Options{
		URI:          cfg.MongoURL,
		Database:     cfg.MongoDatabase,
		Transactions: cfg.MongoTransactions,
	})
	if err != nil {
		return nil, err
	}
	if err := db.EnsureIndexes(ctx); err != nil {
		log.WithError(err).Warn("ensure indexes failed")
	}

	clients, err := firebase.NewClients(ctx, cfg)
	if err != nil {
		_ = db.Close(context.Background())
		return nil, fmt.Errorf("google clients: %w", err)
	}

	a := &App{Cfg: cfg, Log: log, DB: db, Google: clients, Metrics: metrics.New()}

	a.Users = user.NewService(user.NewRepo(db.Database))

	a.Trainers = trainer.NewService(trainer.NewRepo(db.Database), a.Users, db, log)
	a.Trainers.SetClaimsSyncer(firebase.ClaimsSync{Users: clients.Auth})

	a.Classes = class.NewService(class.NewRepo(db.Database), a.Trainers)
	a.Bookings = booking.NewService(booking.NewRepo(db.Database), a.Trainers)
	a.Community = community.NewService(community.NewRepo(db.Database))

	if cfg.PaymentsEnabled() {
		a.Payments = payment.NewService(
			payment.NewStripeGateway(cfg.StripeSecretKey),
			payment.NewRepo(db.Database),
			payment.Config{Currency: cfg.PaymentCurrency, WebhookSecret: cfg.StripeWebhookSecret},
			log,
		)
		a.Payments.SetRecorder(a.Metrics)
		log.Info("payments enabled")
	} else {
		log.Warn("STRIPE_SECRET_KEY not set, payments disabled")
	}

	if clients.IAM != nil {
		a.Media = media.NewService(media.Config{
			Bucket:              cfg.StorageBucket,
			ServiceAccountEmail: cfg.SignedURLServiceAccountEmail,
		}, media.IAMSigner{Client: clients.IAM})
	}

	return a, nil
}

func (a *App) Router() http.Handler {
	return apihttp.NewRouter(apihttp.RouterDeps{
		Cfg:       a.Cfg,
		Log:       a.Log,
		Metrics:   a.Metrics,
		Verifier:  a.Google.Auth,
		Health:    a.DB,
		Users:     a.Users,
		Trainers:  a.Trainers,
		Classes:   a.Classes,
		Bookings:  a.Bookings,
		Community: a.Community,
		Payments:  a.Payments,
		Media:     a.Media,
	})
}

func (a *App) Close(ctx context.Context) {
	a.Google.Close()
	if err := a.DB.Close(ctx); err != nil {
		a.Log.WithError(err).Warn("mongo disconnect failed")
	}
}
