package repositories

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"jobdesk/internal/models"
)

// ErrVerifiedActorExists is returned by UpsertPending when a verified actor
// already holds the email. Re-registration must never overwrite a verified
// account.
var ErrVerifiedActorExists = errors.New("account already registered and verified")

// ActorStore is the credential-store view shared by the user, company and
// admin repositories. The verification/login flow is written once against it.
//
// FindActorByEmail and FindActorByID return (nil, nil) when no actor exists.
type ActorStore interface {
	Role() models.Role
	FindActorByEmail(ctx context.Context, email string) (*models.Actor, error)
	FindActorByID(ctx context.Context, id primitive.ObjectID) (*models.Actor, error)
	// UpsertPending creates or overwrites an unverified actor record. The
	// fields must already contain the hashed password.
	UpsertPending(ctx context.Context, email string, fields bson.M) (*models.Actor, error)
	SetVerified(ctx context.Context, id primitive.ObjectID) error
	SetTwoFactor(ctx context.Context, id primitive.ObjectID, enabled bool) error
}
