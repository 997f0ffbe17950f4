package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

type Config struct {
	Port string `env:"PORT,default=4000"`

	MongoURL          string `env:"MONGODB_URL"`
	MongoDatabase     string `env:"MONGODB_DATABASE,default=fitnessData"`
	MongoTransactions bool   `env:"MONGODB_TRANSACTIONS,default=true"`

	// comma separated; the frontend normally runs on a single origin
	AllowedOriginsRaw string `env:"ALLOWED_ORIGINS,default=http://localhost:5173"`
	AllowedOrigins    []string

	FirebaseCredentialsB64 string `env:"FIREBASE_SERVICE_ACCOUNT_B64"`
	ProjectID              string `env:"FIREBASE_PROJECT_ID"`

	StripeSecretKey     string `env:"STRIPE_SECRET_KEY"`
	StripeWebhookSecret string `env:"STRIPE_WEBHOOK_SECRET"`
	PaymentCurrency     string `env:"PAYMENT_CURRENCY,default=usd"`

	StorageBucket                string `env:"STORAGE_BUCKET"`
	SignedURLServiceAccountEmail string `env:"SIGNED_URL_SERVICE_ACCOUNT_EMAIL"`

	ReconcileSchedule string `env:"RECONCILE_SCHEDULE,default=@every 1h"`

	LogLevel  string `env:"LOG_LEVEL,default=info"`
	LogFormat string `env:"LOG_FORMAT,default=json"`
}

// Load reads an optional .env file and then the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return Config{}, fmt.Errorf("decode env: %w", err)
	}

	// RECONCILE_SCHEDULE="" disables the job, envdecode would apply the default instead
	if v, ok := os.LookupEnv("RECONCILE_SCHEDULE"); ok && strings.TrimSpace(v) == "" {
		cfg.ReconcileSchedule = ""
	}

	cfg.AllowedOrigins = splitOrigins(cfg.AllowedOriginsRaw)
	cfg.PaymentCurrency = strings.ToLower(strings.TrimSpace(cfg.PaymentCurrency))

	if cfg.MongoURL == "" {
		return Config{}, errors.New("missing MONGODB_URL")
	}
	return cfg, nil
}

// PaymentsEnabled reports whether a Stripe key is configured.
func (c Config) PaymentsEnabled() bool { return c.StripeSecretKey != "" }

// UploadsEnabled reports whether signed class-image uploads can be issued.
func (c Config) UploadsEnabled() bool {
	return c.StorageBucket != "" && c.SignedURLServiceAccountEmail != ""
}

func splitOrigins(raw string) []string {
	allowed := []string{}
	for _, o := range strings.Split(raw, ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			allowed = append(allowed, o)
		}
	}
	return allowed
}
