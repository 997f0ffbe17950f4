package authctx_test

import (
	"context"
	"testing"

	"fitness-tracker/backend/internal/authctx"

	"github.com/stretchr/testify/assert"
)

func TestCallerRoundTripThroughContext(t *testing.T) {
	_, ok := authctx.CallerFrom(context.Background())
	assert.False(t, ok)

	ctx := authctx.WithCaller(context.Background(), &authctx.Caller{
		Email:  "Bo@Gym.io",
		Claims: map[string]interface{}{"role": "trainer"},
	})
	c, ok := authctx.CallerFrom(ctx)
	assert.True(t, ok)
	assert.Equal(t, "trainer", c.Role())
	assert.True(t, c.Owns(" bo@gym.io"))
	assert.False(t, c.Owns("ana@gym.io"))
}

func TestNilCallerOwnsNothing(t *testing.T) {
	var c *authctx.Caller
	assert.False(t, c.Owns("bo@gym.io"))
	assert.Empty(t, c.Role())

	_, ok := authctx.CallerFrom(authctx.WithCaller(context.Background(), nil))
	assert.False(t, ok)
}
