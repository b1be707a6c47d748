package repositories

import (
	"context"
	"flag"
	"os"
	"testing"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"jobdesk/internal/database"
	"jobdesk/internal/models"
)

var testDB database.Service

func TestMain(m *testing.M) {
	flag.Parse()
	if testing.Short() {
		os.Exit(m.Run())
	}

	dbContainer, err := mongodb.Run(context.Background(), "mongo:latest")
	if err != nil {
		log.Fatal().Err(err).Msg("Could not start mongodb container")
	}

	uri, err := dbContainer.ConnectionString(context.Background())
	if err != nil {
		log.Fatal().Err(err).Msg("Could not get mongodb connection string")
	}
	os.Setenv("MONGO_URI", uri)
	os.Setenv("MONGO_DB", "jobdesk_test")

	testDB = database.New()

	code := m.Run()

	_ = testDB.Close()
	if err := dbContainer.Terminate(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Could not teardown mongodb container")
	}
	os.Exit(code)
}

func skipShort(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
}

func TestUserUpsertPendingLifecycle(t *testing.T) {
	skipShort(t)
	ctx := context.Background()
	repo := NewUserRepository(testDB)
	require.NoError(t, repo.EnsureIndexes(ctx))

	email := "lifecycle@example.com"

	actor, err := repo.UpsertPending(ctx, email, bson.M{"name": "First", "password": "hash-1"})
	require.NoError(t, err)
	assert.False(t, actor.IsVerified)
	assert.Equal(t, "hash-1", actor.Password)

	// Re-registering before verification overwrites in place.
	again, err := repo.UpsertPending(ctx, email, bson.M{"name": "Second", "password": "hash-2"})
	require.NoError(t, err)
	assert.Equal(t, actor.ID, again.ID)
	assert.Equal(t, "hash-2", again.Password)

	require.NoError(t, repo.SetVerified(ctx, actor.ID))

	verified, err := repo.FindActorByEmail(ctx, email)
	require.NoError(t, err)
	require.NotNil(t, verified)
	assert.True(t, verified.IsVerified)

	// A verified account can never be overwritten.
	_, err = repo.UpsertPending(ctx, email, bson.M{"password": "hash-3"})
	assert.ErrorIs(t, err, ErrVerifiedActorExists)
}

func TestUserFindActorByEmailMissing(t *testing.T) {
	skipShort(t)
	repo := NewUserRepository(testDB)

	actor, err := repo.FindActorByEmail(context.Background(), "missing@example.com")
	require.NoError(t, err)
	assert.Nil(t, actor)
}

func TestUserSetTwoFactor(t *testing.T) {
	skipShort(t)
	ctx := context.Background()
	repo := NewUserRepository(testDB)

	actor, err := repo.UpsertPending(ctx, "twofactor@example.com", bson.M{"password": "hash"})
	require.NoError(t, err)

	require.NoError(t, repo.SetTwoFactor(ctx, actor.ID, true))
	found, err := repo.FindActorByID(ctx, actor.ID)
	require.NoError(t, err)
	assert.True(t, found.IsTwoFactorEnabled)

	require.NoError(t, repo.SetTwoFactor(ctx, actor.ID, false))
	found, err = repo.FindActorByID(ctx, actor.ID)
	require.NoError(t, err)
	assert.False(t, found.IsTwoFactorEnabled)
}

func TestUserUpdateProfileSparse(t *testing.T) {
	skipShort(t)
	ctx := context.Background()
	repo := NewUserRepository(testDB)

	actor, err := repo.UpsertPending(ctx, "profile@example.com", bson.M{
		"name": "Original", "password": "hash", "phone_no": "1234567890", "country": "IN",
	})
	require.NoError(t, err)

	updated, err := repo.UpdateProfile(ctx, actor.ID, &models.UserProfileUpdate{City: "Pune"})
	require.NoError(t, err)
	assert.Equal(t, "Pune", updated.City)
	assert.Equal(t, "Original", updated.Name, "unset fields must survive a sparse update")
	assert.Equal(t, "1234567890", updated.PhoneNo)
}

func TestOTPMarkUsedClaimsOnce(t *testing.T) {
	skipShort(t)
	ctx := context.Background()
	repo := NewOTPRepository(testDB)

	otp, err := repo.Create(ctx, &models.OTP{
		ActorID:   primitive.NewObjectID(),
		Role:      models.RoleUser,
		Email:     "otp@example.com",
		OTPCode:   "123456",
		Purpose:   models.OTPPurposeRegistration,
		ExpiresAt: time.Now().Add(10 * time.Minute),
	})
	require.NoError(t, err)

	claimed, err := repo.MarkUsed(ctx, otp.ID)
	require.NoError(t, err)
	assert.True(t, claimed)

	claimed, err = repo.MarkUsed(ctx, otp.ID)
	require.NoError(t, err)
	assert.False(t, claimed, "second claim must lose")
}

func TestOTPInvalidateActive(t *testing.T) {
	skipShort(t)
	ctx := context.Background()
	repo := NewOTPRepository(testDB)
	actorID := primitive.NewObjectID()

	first, err := repo.Create(ctx, &models.OTP{
		ActorID: actorID, Role: models.RoleUser, OTPCode: "111111",
		Purpose: models.OTPPurposeRegistration, ExpiresAt: time.Now().Add(10 * time.Minute),
	})
	require.NoError(t, err)

	// Different purpose stays live.
	other, err := repo.Create(ctx, &models.OTP{
		ActorID: actorID, Role: models.RoleUser, OTPCode: "222222",
		Purpose: models.OTPPurposeLogin, ExpiresAt: time.Now().Add(10 * time.Minute),
	})
	require.NoError(t, err)

	require.NoError(t, repo.InvalidateActive(ctx, actorID, models.OTPPurposeRegistration))

	found, err := repo.FindByID(ctx, first.ID)
	require.NoError(t, err)
	assert.True(t, found.IsUsed)

	found, err = repo.FindByID(ctx, other.ID)
	require.NoError(t, err)
	assert.False(t, found.IsUsed)
}

func TestOTPDeleteExpired(t *testing.T) {
	skipShort(t)
	ctx := context.Background()
	repo := NewOTPRepository(testDB)

	expired, err := repo.Create(ctx, &models.OTP{
		ActorID: primitive.NewObjectID(), Role: models.RoleUser, OTPCode: "333333",
		Purpose: models.OTPPurposeRegistration, ExpiresAt: time.Now().Add(-time.Minute),
	})
	require.NoError(t, err)

	live, err := repo.Create(ctx, &models.OTP{
		ActorID: primitive.NewObjectID(), Role: models.RoleUser, OTPCode: "444444",
		Purpose: models.OTPPurposeRegistration, ExpiresAt: time.Now().Add(10 * time.Minute),
	})
	require.NoError(t, err)

	deleted, err := repo.DeleteExpired(ctx)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, deleted, int64(1))

	found, err := repo.FindByID(ctx, expired.ID)
	require.NoError(t, err)
	assert.Nil(t, found)

	found, err = repo.FindByID(ctx, live.ID)
	require.NoError(t, err)
	assert.NotNil(t, found)
}

func TestAdminCannotSelfRegister(t *testing.T) {
	skipShort(t)
	repo := NewAdminRepository(testDB)

	_, err := repo.UpsertPending(context.Background(), "root@example.com", bson.M{"password": "hash"})
	assert.Error(t, err)
}

func TestAdminCreateAndFind(t *testing.T) {
	skipShort(t)
	ctx := context.Background()
	repo := NewAdminRepository(testDB)
	require.NoError(t, repo.EnsureIndexes(ctx))

	admin, err := repo.Create(ctx, &models.Admin{
		Name:     "Root",
		Username: "root",
		Email:    "admin@example.com",
		Password: "hash",
	})
	require.NoError(t, err)

	actor, err := repo.FindActorByEmail(ctx, "admin@example.com")
	require.NoError(t, err)
	require.NotNil(t, actor)
	assert.True(t, actor.IsVerified, "admins are always verified")
	assert.Equal(t, admin.ID, actor.ID)
}
