package trainer_test

import (
	"context"
	"errors"
	"testing"

	"fitness-tracker/backend/internal/domain/trainer"
	"fitness-tracker/backend/internal/domain/user"
	"fitness-tracker/backend/internal/logging"
	"fitness-tracker/backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fixture struct {
	svc      *trainer.Service
	trainers *testutil.Trainers
	users    *testutil.Users
	tx       *testutil.Tx
	claims   *testutil.Claims
}

func newFixture(docs ...bson.M) *fixture {
	f := &fixture{
		trainers: testutil.NewTrainers(docs...),
		users: testutil.NewUsers(
			bson.M{"email": "ana@gym.io", "role": user.RoleMember},
			bson.M{"email": "bo@gym.io", "role": user.RoleTrainer},
			bson.M{"email": "root@gym.io", "role": user.RoleAdmin},
		),
		tx:     &testutil.Tx{},
		claims: &testutil.Claims{},
	}
	userSvc := user.NewService(f.users)
	f.svc = trainer.NewService(f.trainers, userSvc, f.tx, logging.Discard())
	f.svc.SetClaimsSyncer(f.claims)
	return f
}

func TestApprovePromotesApplicationAndUser(t *testing.T) {
	app := testutil.TrainerDoc("ana@gym.io", trainer.StatusPending, []string{"Yoga"}, nil)
	f := newFixture(app)
	id := app["_id"].(primitive.ObjectID)

	out, err := f.svc.Approve(context.Background(), id.Hex())
	require.NoError(t, err)

	assert.Equal(t, "Trainer approved successfully", out.Message)
	assert.EqualValues(t, 1, out.TrainerResult.MatchedCount)
	assert.EqualValues(t, 1, out.UserResult.ModifiedCount)
	assert.Equal(t, trainer.StatusTrainer, f.trainers.Doc(id)["status"])
	assert.Equal(t, user.RoleTrainer, f.users.Role("ana@gym.io"))
	assert.Equal(t, 1, f.tx.Calls)
	assert.Equal(t, user.RoleTrainer, f.claims.Roles["ana@gym.io"])
}

func TestApproveMissingApplicationWritesNothing(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Approve(context.Background(), primitive.NewObjectID().Hex())
	require.Error(t, err)
	assert.True(t, trainer.IsErrNotFound(err))
	assert.Zero(t, f.trainers.Writes)
	assert.Zero(t, f.users.Writes)
	assert.Zero(t, f.tx.Calls)
}

func TestApproveRejectsMalformedID(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Approve(context.Background(), "not-an-id")
	assert.True(t, trainer.IsErrBadRequest(err))
}

func TestApproveTransactionFailureSkipsClaims(t *testing.T) {
	app := testutil.TrainerDoc("ana@gym.io", trainer.StatusPending, nil, nil)
	f := newFixture(app)
	f.tx.Err = errors.New("commit failed")

	_, err := f.svc.Approve(context.Background(), app["_id"].(primitive.ObjectID).Hex())
	require.Error(t, err)
	assert.Empty(t, f.claims.Roles)
}

func TestRejectKeepsUserRole(t *testing.T) {
	app := testutil.TrainerDoc("ana@gym.io", trainer.StatusPending, nil, nil)
	f := newFixture(app)
	id := app["_id"].(primitive.ObjectID)

	res, err := f.svc.Reject(context.Background(), id.Hex(), trainer.RejectInput{Feedback: "needs certification"})
	require.NoError(t, err)

	assert.EqualValues(t, 1, res.MatchedCount)
	doc := f.trainers.Doc(id)
	assert.Equal(t, trainer.StatusRejected, doc["status"])
	assert.Equal(t, "needs certification", doc["feedback"])
	assert.Equal(t, user.RoleMember, f.users.Role("ana@gym.io"))
	assert.Zero(t, f.users.Writes)
}

func TestRejectUnknownID(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Reject(context.Background(), primitive.NewObjectID().Hex(), trainer.RejectInput{})
	assert.True(t, trainer.IsErrNotFound(err))
}

func TestCreateForcesPendingStatus(t *testing.T) {
	f := newFixture()

	res, err := f.svc.Create(context.Background(), "ana@gym.io", bson.M{
		"email":    "ana@gym.io",
		"fullName": "Ana",
		"status":   trainer.StatusTrainer,
	})
	require.NoError(t, err)

	doc := f.trainers.Doc(res.InsertedID.(primitive.ObjectID))
	require.NotNil(t, doc)
	assert.Equal(t, trainer.StatusPending, doc["status"])
	assert.Equal(t, "Ana", doc["fullName"])
	assert.Contains(t, doc, "created_at")
}

func TestCreateOnBehalfOfAnotherAccount(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Create(context.Background(), "ana@gym.io", bson.M{"email": "bo@gym.io"})
	assert.True(t, trainer.IsErrForbidden(err))
	assert.Empty(t, f.trainers.Docs)
}

func TestListMineOnlyReturnsCallerApplications(t *testing.T) {
	f := newFixture(
		testutil.TrainerDoc("ana@gym.io", trainer.StatusPending, nil, nil),
		testutil.TrainerDoc("ana@gym.io", trainer.StatusRejected, nil, nil),
		testutil.TrainerDoc("bo@gym.io", trainer.StatusPending, nil, nil),
		testutil.TrainerDoc("ana@gym.io", trainer.StatusTrainer, nil, nil),
	)

	out, err := f.svc.ListMine(context.Background(), "ana@gym.io")
	require.NoError(t, err)
	require.Len(t, out, 2)
	for _, d := range out {
		assert.Equal(t, "ana@gym.io", d["email"])
		assert.NotEqual(t, trainer.StatusTrainer, d["status"])
	}
}

func TestDeleteSlotRemovesSingleOccurrence(t *testing.T) {
	app := testutil.TrainerDoc("bo@gym.io", trainer.StatusTrainer, nil, []string{"Mon 9am", "Tue 9am", "Mon 9am"})
	f := newFixture(app)

	out, err := f.svc.DeleteSlot(context.Background(), "bo@gym.io", "bo@gym.io", "Mon 9am")
	require.NoError(t, err)

	assert.Equal(t, []string{"Tue 9am", "Mon 9am"}, out.TimeSlots)
	assert.Equal(t, []string{"Tue 9am", "Mon 9am"}, f.trainers.Doc(app["_id"].(primitive.ObjectID))["timeSlots"])
}

func TestDeleteSlotForAnotherTrainer(t *testing.T) {
	app := testutil.TrainerDoc("bo@gym.io", trainer.StatusTrainer, nil, []string{"Mon 9am"})
	f := newFixture(app)

	_, err := f.svc.DeleteSlot(context.Background(), "ana@gym.io", "bo@gym.io", "Mon 9am")
	assert.True(t, trainer.IsErrForbidden(err))
	assert.Zero(t, f.trainers.Writes)
}

func TestDeleteSlotUnknownSlot(t *testing.T) {
	app := testutil.TrainerDoc("bo@gym.io", trainer.StatusTrainer, nil, []string{"Mon 9am"})
	f := newFixture(app)

	_, err := f.svc.DeleteSlot(context.Background(), "bo@gym.io", "bo@gym.io", "Fri 5pm")
	assert.True(t, trainer.IsErrNotFound(err))
	assert.Zero(t, f.trainers.Writes)
}

func TestUpdateAvailabilityRequiresApprovedTrainer(t *testing.T) {
	f := newFixture(testutil.TrainerDoc("ana@gym.io", trainer.StatusPending, nil, nil))

	_, err := f.svc.UpdateAvailability(context.Background(), "ana@gym.io", "ana@gym.io", trainer.AvailabilityInput{
		TimeSlots: []string{" Mon 9am "},
	})
	assert.True(t, trainer.IsErrNotFound(err))
}

func TestUpdateAvailabilityTrimsInput(t *testing.T) {
	app := testutil.TrainerDoc("bo@gym.io", trainer.StatusTrainer, nil, nil)
	f := newFixture(app)

	_, err := f.svc.UpdateAvailability(context.Background(), "bo@gym.io", "bo@gym.io", trainer.AvailabilityInput{
		AvailableDays: []string{"Mon"},
		TimeSlots:     []string{" Mon 9am "},
		Skills:        []string{"Yoga "},
	})
	require.NoError(t, err)

	doc := f.trainers.Doc(app["_id"].(primitive.ObjectID))
	assert.Equal(t, []string{"Mon 9am"}, doc["timeSlots"])
	assert.Equal(t, []string{"Yoga"}, doc["skills"])
}

func TestDeleteDemotesUser(t *testing.T) {
	app := testutil.TrainerDoc("bo@gym.io", trainer.StatusTrainer, nil, nil)
	f := newFixture(app)
	id := app["_id"].(primitive.ObjectID)

	out, err := f.svc.Delete(context.Background(), id.Hex())
	require.NoError(t, err)

	assert.EqualValues(t, 1, out.TrainerResult.DeletedCount)
	assert.Nil(t, f.trainers.Doc(id))
	assert.Equal(t, user.RoleMember, f.users.Role("bo@gym.io"))
	assert.Equal(t, user.RoleMember, f.claims.Roles["bo@gym.io"])
}

func TestReconcileRepairsDrift(t *testing.T) {
	f := newFixture(
		// approved but user still a member
		testutil.TrainerDoc("ana@gym.io", trainer.StatusTrainer, nil, nil),
		// approved admin keeps admin
		testutil.TrainerDoc("root@gym.io", trainer.StatusTrainer, nil, nil),
	)

	report, err := f.svc.Reconcile(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"ana@gym.io"}, report.Promoted)
	assert.Equal(t, []string{"bo@gym.io"}, report.Demoted)
	assert.Equal(t, user.RoleTrainer, f.users.Role("ana@gym.io"))
	assert.Equal(t, user.RoleMember, f.users.Role("bo@gym.io"))
	assert.Equal(t, user.RoleAdmin, f.users.Role("root@gym.io"))
}

func TestCreateStoresTokenEmail(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	res, err := f.svc.Create(ctx, "ana@gym.io", bson.M{"email": "Ana@Gym.io"})
	require.NoError(t, err)
	id := res.InsertedID.(primitive.ObjectID)
	assert.Equal(t, "ana@gym.io", f.trainers.Doc(id)["email"])

	mine, err := f.svc.ListMine(ctx, "ana@gym.io")
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	_, err = f.svc.Approve(ctx, id.Hex())
	require.NoError(t, err)
	assert.Equal(t, user.RoleTrainer, f.users.Role("ana@gym.io"))
}

// vanishingStore loses the application right after it has been read, as a
// concurrent delete would.
type vanishingStore struct {
	*testutil.Trainers
}

func (v vanishingStore) GetApplication(ctx context.Context, id primitive.ObjectID) (*trainer.Application, error) {
	app, err := v.Trainers.GetApplication(ctx, id)
	if err == nil {
		_, _ = v.Trainers.Delete(ctx, id)
	}
	return app, err
}

func TestApproveAbortsWhenApplicationDisappears(t *testing.T) {
	app := testutil.TrainerDoc("ana@gym.io", trainer.StatusPending, nil, nil)
	f := newFixture(app)
	svc := trainer.NewService(vanishingStore{f.trainers}, user.NewService(f.users), f.tx, logging.Discard())
	svc.SetClaimsSyncer(f.claims)

	_, err := svc.Approve(context.Background(), app["_id"].(primitive.ObjectID).Hex())
	assert.True(t, trainer.IsErrNotFound(err))
	assert.Equal(t, user.RoleMember, f.users.Role("ana@gym.io"))
	assert.Zero(t, f.users.Writes)
	assert.Empty(t, f.claims.Roles)
}

func TestDeleteAbortsWhenApplicationDisappears(t *testing.T) {
	app := testutil.TrainerDoc("bo@gym.io", trainer.StatusTrainer, nil, nil)
	f := newFixture(app)
	svc := trainer.NewService(vanishingStore{f.trainers}, user.NewService(f.users), f.tx, logging.Discard())

	_, err := svc.Delete(context.Background(), app["_id"].(primitive.ObjectID).Hex())
	assert.True(t, trainer.IsErrNotFound(err))
	assert.Equal(t, user.RoleTrainer, f.users.Role("bo@gym.io"))
	assert.Zero(t, f.users.Writes)
}

func TestApproveAndDeleteKeepAdminRole(t *testing.T) {
	app := testutil.TrainerDoc("root@gym.io", trainer.StatusPending, nil, nil)
	f := newFixture(app)
	id := app["_id"].(primitive.ObjectID).Hex()

	_, err := f.svc.Approve(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, user.RoleAdmin, f.users.Role("root@gym.io"))

	_, err = f.svc.Delete(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, user.RoleAdmin, f.users.Role("root@gym.io"))

	assert.Zero(t, f.users.Writes)
	assert.Empty(t, f.claims.Roles)
}
