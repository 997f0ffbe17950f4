package firebase

import (
	"context"
	"fmt"
	"time"

	"firebase.google.com/go/v4/auth"
)

// UserAdmin is the part of *auth.Client used to manage custom claims.
type UserAdmin interface {
	GetUserByEmail(ctx context.Context, email string) (*auth.UserRecord, error)
	SetCustomUserClaims(ctx context.Context, uid string, customClaims map[string]interface{}) error
}

// ClaimsSync mirrors the stored user role onto the identity provider so
// fresh tokens carry it.
type ClaimsSync struct {
	Users UserAdmin
}

func (c ClaimsSync) SyncRole(ctx context.Context, email, role string) error {
	u, err := c.Users.GetUserByEmail(ctx, email)
	if err != nil {
		if auth.IsUserNotFound(err) {
			return nil
		}
		return fmt.Errorf("lookup %s: %w", email, err)
	}
	return c.SetRole(ctx, u, role)
}

// SetRole merges role into the user's existing custom claims.
func (c ClaimsSync) SetRole(ctx context.Context, u *auth.UserRecord, role string) error {
	claims := map[string]interface{}{}
	for k, v := range u.CustomClaims {
		claims[k] = v
	}
	claims["role"] = role
	claims["admin"] = role == "admin"
	claims["claimsUpdatedAt"] = time.Now().Unix()

	if err := c.Users.SetCustomUserClaims(ctx, u.UID, claims); err != nil {
		return fmt.Errorf("set claims for %s: %w", u.UID, err)
	}
	return nil
}
