package authctx

import (
	"context"
	"strings"
)

type ctxKey string

const callerKey ctxKey = "caller"

// Caller is the identity attached to a request after token verification.
type Caller struct {
	UID    string
	Email  string
	Claims map[string]interface{}
}

// Role returns the role custom claim, if any.
func (c *Caller) Role() string {
	if c == nil || c.Claims == nil {
		return ""
	}
	role, _ := c.Claims["role"].(string)
	return role
}

// Owns reports whether the caller's verified email matches email.
func (c *Caller) Owns(email string) bool {
	if c == nil || c.Email == "" {
		return false
	}
	return strings.EqualFold(c.Email, strings.TrimSpace(email))
}

func WithCaller(ctx context.Context, c *Caller) context.Context {
	return context.WithValue(ctx, callerKey, c)
}

func CallerFrom(ctx context.Context) (*Caller, bool) {
	c, ok := ctx.Value(callerKey).(*Caller)
	return c, ok && c != nil
}
