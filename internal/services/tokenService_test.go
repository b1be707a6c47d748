package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"jobdesk/internal/models"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	tokens := NewTokenService([]byte("test-secret"), 10*time.Minute)
	actorID := primitive.NewObjectID()

	signed, err := tokens.IssueSession(actorID, models.RoleCompany, time.Hour)
	require.NoError(t, err)

	claims, err := tokens.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, actorID.Hex(), claims.ID)
	assert.Equal(t, "company", claims.Role)
	assert.False(t, claims.IsChallenge())
}

func TestChallengeTokenCarriesOTPID(t *testing.T) {
	tokens := NewTokenService([]byte("test-secret"), 10*time.Minute)
	actorID := primitive.NewObjectID()
	otpID := primitive.NewObjectID()

	signed, err := tokens.IssueChallenge(actorID, otpID, models.RoleUser)
	require.NoError(t, err)

	claims, err := tokens.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, otpID.Hex(), claims.OTPID)
	assert.True(t, claims.IsChallenge())
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	tokens := NewTokenService([]byte("test-secret"), 10*time.Minute)

	signed, err := tokens.IssueSession(primitive.NewObjectID(), models.RoleUser, -time.Minute)
	require.NoError(t, err)

	_, err = tokens.Verify(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsWrongKey(t *testing.T) {
	tokens := NewTokenService([]byte("test-secret"), 10*time.Minute)
	other := NewTokenService([]byte("other-secret"), 10*time.Minute)

	signed, err := tokens.IssueSession(primitive.NewObjectID(), models.RoleUser, time.Hour)
	require.NoError(t, err)

	_, err = other.Verify(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	tokens := NewTokenService([]byte("test-secret"), 10*time.Minute)

	_, err := tokens.Verify("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
