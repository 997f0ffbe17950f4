package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"fitness-tracker/backend/internal/authctx"

	"firebase.google.com/go/v4/auth"
	"github.com/sirupsen/logrus"
)

// TokenVerifier is satisfied by *auth.Client.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// RoleLookup resolves the stored role of a user by email.
type RoleLookup interface {
	RoleOf(ctx context.Context, email string) (string, error)
}

func WithAuth(verifier TokenVerifier, log logrus.FieldLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := r.Header.Get("Authorization")
			if len(h) < len("Bearer ") || !strings.EqualFold(h[:len("Bearer ")], "bearer ") {
				fail(w, http.StatusUnauthorized, "unauthorized access token")
				return
			}
			idToken := strings.TrimSpace(h[len("Bearer "):])
			if idToken == "" {
				fail(w, http.StatusUnauthorized, "unauthorized access token")
				return
			}

			tok, err := verifier.VerifyIDToken(r.Context(), idToken)
			if err != nil {
				log.WithError(err).Debug("id token rejected")
				fail(w, http.StatusUnauthorized, "unauthorized access")
				return
			}

			c := &authctx.Caller{
				UID:    tok.UID,
				Claims: tok.Claims,
			}
			if v, ok := tok.Claims["email"].(string); ok {
				c.Email = v
			}

			next.ServeHTTP(w, r.WithContext(authctx.WithCaller(r.Context(), c)))
		})
	}
}

// RequireAdmin must run after WithAuth. The stored user role wins, the
// custom claim is accepted so bootstrapped admins work before their first
// sign-in.
func RequireAdmin(roles RoleLookup, log logrus.FieldLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c, ok := authctx.CallerFrom(r.Context())
			if !ok {
				fail(w, http.StatusUnauthorized, "unauthorized access")
				return
			}
			if IsAdmin(c.Claims) {
				next.ServeHTTP(w, r)
				return
			}
			if c.Email != "" {
				role, err := roles.RoleOf(r.Context(), c.Email)
				if err != nil {
					log.WithError(err).WithField("email", c.Email).Error("role lookup failed")
					fail(w, http.StatusInternalServerError, "internal server error")
					return
				}
				if role == "admin" {
					next.ServeHTTP(w, r)
					return
				}
			}
			fail(w, http.StatusForbidden, "forbidden access")
		})
	}
}

// IsAdmin checks the admin custom claim set by cmd/set-claims.
func IsAdmin(claims map[string]interface{}) bool {
	if claims == nil {
		return false
	}
	if admin, ok := claims["admin"].(bool); ok && admin {
		return true
	}
	if role, ok := claims["role"].(string); ok && role == "admin" {
		return true
	}
	return false
}

func fail(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": msg})
}
