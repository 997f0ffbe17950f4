package http

import (
	"context"
	"net/http"
	"time"

	"fitness-tracker/backend/internal/authctx"
	"fitness-tracker/backend/internal/config"
	"fitness-tracker/backend/internal/domain/booking"
	"fitness-tracker/backend/internal/domain/class"
	"fitness-tracker/backend/internal/domain/community"
	"fitness-tracker/backend/internal/domain/media"
	"fitness-tracker/backend/internal/domain/payment"
	"fitness-tracker/backend/internal/domain/trainer"
	"fitness-tracker/backend/internal/domain/user"
	"fitness-tracker/backend/internal/metrics"
	"fitness-tracker/backend/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

const welcomeMessage = "Welcome to the Fitness Tracker API"

// HealthChecker is satisfied by *store.DB.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

type RouterDeps struct {
	Cfg      config.Config
	Log      logrus.FieldLogger
	Metrics  *metrics.Metrics
	Verifier middleware.TokenVerifier
	Health   HealthChecker

	Users     *user.Service
	Trainers  *trainer.Service
	Classes   *class.Service
	Bookings  *booking.Service
	Community *community.Service
	// Payments and Media are nil when their gateways are not configured.
	Payments *payment.Service
	Media    *media.Service
}

func NewRouter(d RouterDeps) http.Handler {
	if d.Metrics == nil {
		d.Metrics = metrics.New()
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(d.Log))
	r.Use(d.Metrics.Instrument)
	r.Use(chimw.Recoverer)
	r.Use(middleware.CORS(d.Cfg.AllowedOrigins, d.Log))

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte(welcomeMessage))
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		body := map[string]any{"ok": true, "ts": time.Now().UTC().Format(time.RFC3339)}
		if d.Health != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := d.Health.Ping(ctx); err != nil {
				body["ok"] = false
				body["store"] = err.Error()
				WriteJSON(w, http.StatusServiceUnavailable, body)
				return
			}
		}
		WriteJSON(w, http.StatusOK, body)
	})

	r.Method(http.MethodGet, "/metrics", d.Metrics.Handler())

	authed := r.With(middleware.WithAuth(d.Verifier, d.Log))
	admin := authed.With(middleware.RequireAdmin(d.Users, d.Log))

	mountUserRoutes(authed, admin, d)
	mountTrainerRoutes(r, authed, admin, d)
	mountClassRoutes(r, authed, admin, d)
	mountBookingRoutes(authed, d)
	mountCommunityRoutes(r, authed, admin, d)
	mountPaymentRoutes(r, authed, d)

	return r
}

// ownsOrAdmin allows a caller to read their own resources; admins read any.
// A failed role lookup is returned as an error, not as a denial.
func (d RouterDeps) ownsOrAdmin(ctx context.Context, email string) (bool, error) {
	c, ok := authctx.CallerFrom(ctx)
	if !ok {
		return false, nil
	}
	if c.Owns(email) || middleware.IsAdmin(c.Claims) {
		return true, nil
	}
	if c.Email == "" {
		return false, nil
	}
	role, err := d.Users.RoleOf(ctx, c.Email)
	if err != nil {
		return false, err
	}
	return role == user.RoleAdmin, nil
}

// requireOwnerOrAdmin writes the failure and reports false when the caller
// may not read email's resources.
func (d RouterDeps) requireOwnerOrAdmin(w http.ResponseWriter, r *http.Request, email string) bool {
	ok, err := d.ownsOrAdmin(r.Context(), email)
	if err != nil {
		failWith(w, r, d.Log, err)
		return false
	}
	if !ok {
		Fail(w, http.StatusForbidden, "forbidden access")
		return false
	}
	return true
}

func callerEmail(r *http.Request) string {
	if c, ok := authctx.CallerFrom(r.Context()); ok {
		return c.Email
	}
	return ""
}
