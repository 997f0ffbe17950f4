package user_test

import (
	"context"
	"testing"

	"fitness-tracker/backend/internal/domain/user"
	"fitness-tracker/backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestSignInCreatesMemberOnce(t *testing.T) {
	users := testutil.NewUsers()
	svc := user.NewService(users)
	ctx := context.Background()

	first, err := svc.SignIn(ctx, "ana@gym.io", bson.M{"email": "ana@gym.io", "name": "Ana", "role": "admin"})
	require.NoError(t, err)
	assert.NotNil(t, first.UpsertedID)

	second, err := svc.SignIn(ctx, "ana@gym.io", bson.M{"email": "ana@gym.io", "name": "Changed"})
	require.NoError(t, err)
	assert.Nil(t, second.UpsertedID)
	assert.EqualValues(t, 1, second.MatchedCount)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, user.RoleMember, all[0]["role"])
	assert.Equal(t, "Ana", all[0]["name"])
}

func TestSignInFallsBackToTokenEmail(t *testing.T) {
	users := testutil.NewUsers()
	svc := user.NewService(users)

	_, err := svc.SignIn(context.Background(), "ana@gym.io", bson.M{"name": "Ana"})
	require.NoError(t, err)
	assert.Equal(t, user.RoleMember, users.Role("ana@gym.io"))
}

func TestSignInStoresTokenEmail(t *testing.T) {
	users := testutil.NewUsers()
	svc := user.NewService(users)
	ctx := context.Background()

	_, err := svc.SignIn(ctx, "ana@gym.io", bson.M{"email": "Ana@Gym.io", "name": "Ana"})
	require.NoError(t, err)
	require.Contains(t, users.Docs, "ana@gym.io")
	assert.NotContains(t, users.Docs, "Ana@Gym.io")
	assert.Equal(t, "ana@gym.io", users.Docs["ana@gym.io"]["email"])

	role, err := svc.RoleOf(ctx, "ana@gym.io")
	require.NoError(t, err)
	assert.Equal(t, user.RoleMember, role)
}

func TestSignInRejectsOtherAccounts(t *testing.T) {
	svc := user.NewService(testutil.NewUsers())

	_, err := svc.SignIn(context.Background(), "ana@gym.io", bson.M{"email": "eve@gym.io"})
	assert.True(t, user.IsErrForbidden(err))

	_, err = svc.SignIn(context.Background(), "", bson.M{"email": "not-an-email"})
	assert.True(t, user.IsErrBadRequest(err))
}

func TestGetPrivileged(t *testing.T) {
	svc := user.NewService(testutil.NewUsers(
		bson.M{"email": "ana@gym.io", "role": user.RoleMember},
		bson.M{"email": "bo@gym.io", "role": user.RoleTrainer},
		bson.M{"email": "root@gym.io", "role": user.RoleAdmin},
	))
	ctx := context.Background()

	_, err := svc.GetPrivileged(ctx, "ana@gym.io")
	assert.True(t, user.IsErrNotFound(err))

	_, err = svc.GetPrivileged(ctx, "nobody@gym.io")
	assert.True(t, user.IsErrNotFound(err))

	doc, err := svc.GetPrivileged(ctx, "bo@gym.io")
	require.NoError(t, err)
	assert.Equal(t, user.RoleTrainer, doc["role"])

	_, err = svc.GetPrivileged(ctx, "root@gym.io")
	assert.NoError(t, err)
}

func TestRoleOfUnknownUser(t *testing.T) {
	svc := user.NewService(testutil.NewUsers())

	role, err := svc.RoleOf(context.Background(), "ghost@gym.io")
	require.NoError(t, err)
	assert.Empty(t, role)
}

func TestIsValidRole(t *testing.T) {
	assert.True(t, user.IsValidRole(user.RoleTrainer))
	assert.False(t, user.IsValidRole("owner"))
}
