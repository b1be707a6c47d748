package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"jobdesk/internal/database"
	"jobdesk/internal/models"
)

type OTPRepository interface {
	Create(ctx context.Context, otp *models.OTP) (*models.OTP, error)
	FindByID(ctx context.Context, otpID primitive.ObjectID) (*models.OTP, error)
	// MarkUsed atomically claims an unused code. It reports false when the
	// code was already claimed, so concurrent submissions of the same code
	// cannot both succeed.
	MarkUsed(ctx context.Context, otpID primitive.ObjectID) (bool, error)
	// InvalidateActive marks every outstanding unused code for the actor as
	// used, enforcing a single live code per actor and purpose.
	InvalidateActive(ctx context.Context, actorID primitive.ObjectID, purpose string) error
	DeleteExpired(ctx context.Context) (int64, error)
}

type otpRepository struct {
	collection *mongo.Collection
}

func NewOTPRepository(db database.Service) OTPRepository {
	return &otpRepository{collection: db.Database().Collection("otps")}
}

func (r *otpRepository) Create(ctx context.Context, otp *models.OTP) (*models.OTP, error) {
	otp.ID = primitive.NewObjectID()
	otp.CreatedAt = time.Now()
	otp.UpdatedAt = otp.CreatedAt
	_, err := r.collection.InsertOne(ctx, otp)
	if err != nil {
		return nil, err
	}
	return otp, nil
}

func (r *otpRepository) FindByID(ctx context.Context, otpID primitive.ObjectID) (*models.OTP, error) {
	var otp models.OTP
	err := r.collection.FindOne(ctx, bson.M{"_id": otpID}).Decode(&otp)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &otp, nil
}

func (r *otpRepository) MarkUsed(ctx context.Context, otpID primitive.ObjectID) (bool, error) {
	filter := bson.M{"_id": otpID, "is_used": false}
	update := bson.M{"$set": bson.M{"is_used": true, "updated_at": time.Now()}}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}
	return result.ModifiedCount == 1, nil
}

func (r *otpRepository) InvalidateActive(ctx context.Context, actorID primitive.ObjectID, purpose string) error {
	filter := bson.M{"actor_id": actorID, "purpose": purpose, "is_used": false}
	update := bson.M{"$set": bson.M{"is_used": true, "updated_at": time.Now()}}
	_, err := r.collection.UpdateMany(ctx, filter, update)
	return err
}

func (r *otpRepository) DeleteExpired(ctx context.Context) (int64, error) {
	filter := bson.M{"expires_at": bson.M{"$lt": time.Now()}}
	result, err := r.collection.DeleteMany(ctx, filter)
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}
