package firebase_test

import (
	"context"
	"errors"
	"testing"

	"fitness-tracker/backend/internal/firebase"

	"firebase.google.com/go/v4/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAdmin struct {
	users map[string]*auth.UserRecord
	set   map[string]map[string]interface{}
}

func (f *fakeAdmin) GetUserByEmail(_ context.Context, email string) (*auth.UserRecord, error) {
	if u, ok := f.users[email]; ok {
		return u, nil
	}
	return nil, errors.New("backend unavailable")
}

func (f *fakeAdmin) SetCustomUserClaims(_ context.Context, uid string, claims map[string]interface{}) error {
	if f.set == nil {
		f.set = map[string]map[string]interface{}{}
	}
	f.set[uid] = claims
	return nil
}

func record(uid, email string, claims map[string]interface{}) *auth.UserRecord {
	return &auth.UserRecord{UserInfo: &auth.UserInfo{UID: uid, Email: email}, CustomClaims: claims}
}

func TestSyncRoleMergesExistingClaims(t *testing.T) {
	admin := &fakeAdmin{users: map[string]*auth.UserRecord{
		"bo@gym.io": record("u1", "bo@gym.io", map[string]interface{}{"beta": true, "admin": true}),
	}}
	sync := firebase.ClaimsSync{Users: admin}

	require.NoError(t, sync.SyncRole(context.Background(), "bo@gym.io", "trainer"))

	claims := admin.set["u1"]
	assert.Equal(t, "trainer", claims["role"])
	assert.Equal(t, false, claims["admin"])
	assert.Equal(t, true, claims["beta"])
	assert.Contains(t, claims, "claimsUpdatedAt")
}

func TestSyncRoleLookupFailure(t *testing.T) {
	sync := firebase.ClaimsSync{Users: &fakeAdmin{}}

	err := sync.SyncRole(context.Background(), "ghost@gym.io", "member")
	assert.Error(t, err)
}
