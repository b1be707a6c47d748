package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"jobdesk/internal/database"
	"jobdesk/internal/models"
	"jobdesk/internal/utils"
)

type UserRepository interface {
	ActorStore
	FindByID(ctx context.Context, userID primitive.ObjectID) (*models.User, error)
	UpdateProfile(ctx context.Context, userID primitive.ObjectID, update *models.UserProfileUpdate) (*models.User, error)
	CountAll(ctx context.Context) (int64, error)
	EnsureIndexes(ctx context.Context) error
}

type userRepository struct {
	collection *mongo.Collection
}

func NewUserRepository(db database.Service) UserRepository {
	return &userRepository{collection: db.Database().Collection("users")}
}

func (r *userRepository) Role() models.Role {
	return models.RoleUser
}

func (r *userRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.M{"email": 1},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (r *userRepository) FindActorByEmail(ctx context.Context, email string) (*models.Actor, error) {
	queryType := "findActorByEmail"
	repository := "user"
	status := "success"
	timer := prometheus.NewTimer(prometheus.ObserverFunc(func(v float64) {
		utils.DBQueryDurationSeconds.WithLabelValues(queryType, repository, status).Observe(v)
	}))
	defer timer.ObserveDuration()

	var actor models.Actor
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&actor)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		status = "error"
		utils.DBQueryErrorsTotal.WithLabelValues(queryType, repository).Inc()
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	return &actor, nil
}

func (r *userRepository) FindActorByID(ctx context.Context, id primitive.ObjectID) (*models.Actor, error) {
	var actor models.Actor
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&actor)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find user by id: %w", err)
	}
	return &actor, nil
}

func (r *userRepository) UpsertPending(ctx context.Context, email string, fields bson.M) (*models.Actor, error) {
	queryType := "upsertPending"
	repository := "user"
	status := "success"
	timer := prometheus.NewTimer(prometheus.ObserverFunc(func(v float64) {
		utils.DBQueryDurationSeconds.WithLabelValues(queryType, repository, status).Observe(v)
	}))
	defer timer.ObserveDuration()

	return upsertPendingActor(ctx, r.collection, email, fields, func() {
		status = "error"
		utils.DBQueryErrorsTotal.WithLabelValues(queryType, repository).Inc()
	})
}

func (r *userRepository) SetVerified(ctx context.Context, id primitive.ObjectID) error {
	update := bson.M{"$set": bson.M{"is_verified": true, "updated_at": time.Now()}}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		log.Error().Err(err).Str("user_id", id.Hex()).Msg("Failed to mark user verified")
		return fmt.Errorf("failed to mark user verified: %w", err)
	}
	return nil
}

func (r *userRepository) SetTwoFactor(ctx context.Context, id primitive.ObjectID, enabled bool) error {
	update := bson.M{"$set": bson.M{"is_two_factor_enabled": enabled, "updated_at": time.Now()}}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update user 2FA flag: %w", err)
	}
	return nil
}

func (r *userRepository) FindByID(ctx context.Context, userID primitive.ObjectID) (*models.User, error) {
	queryType := "findById"
	repository := "user"
	status := "success"
	timer := prometheus.NewTimer(prometheus.ObserverFunc(func(v float64) {
		utils.DBQueryDurationSeconds.WithLabelValues(queryType, repository, status).Observe(v)
	}))
	defer timer.ObserveDuration()

	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"_id": userID}).Decode(&user)
	if err != nil {
		status = "error"
		utils.DBQueryErrorsTotal.WithLabelValues(queryType, repository).Inc()
		return nil, err // Can be mongo.ErrNoDocuments
	}
	return &user, nil
}

func (r *userRepository) UpdateProfile(ctx context.Context, userID primitive.ObjectID, update *models.UserProfileUpdate) (*models.User, error) {
	queryType := "updateProfile"
	repository := "user"
	status := "success"
	timer := prometheus.NewTimer(prometheus.ObserverFunc(func(v float64) {
		utils.DBQueryDurationSeconds.WithLabelValues(queryType, repository, status).Observe(v)
	}))
	defer timer.ObserveDuration()

	doc, err := toUpdateDoc(update)
	if err != nil {
		return nil, err
	}
	doc["updated_at"] = time.Now()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var user models.User
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": userID}, bson.M{"$set": doc}, opts).Decode(&user)
	if err != nil {
		status = "error"
		utils.DBQueryErrorsTotal.WithLabelValues(queryType, repository).Inc()
		log.Error().Err(err).Str("user_id", userID.Hex()).Msg("Error updating user profile")
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) CountAll(ctx context.Context) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}

// upsertPendingActor implements the shared create-or-overwrite-unverified
// write. The filter excludes verified documents, so when one exists the upsert
// trips the unique email index instead of overwriting it.
func upsertPendingActor(ctx context.Context, collection *mongo.Collection, email string, fields bson.M, onError func()) (*models.Actor, error) {
	now := time.Now()
	set := bson.M{"updated_at": now}
	for k, v := range fields {
		set[k] = v
	}
	set["email"] = email
	set["is_verified"] = false

	filter := bson.M{"email": email, "is_verified": bson.M{"$ne": true}}
	update := bson.M{"$set": set, "$setOnInsert": bson.M{"created_at": now}}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var actor models.Actor
	err := collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&actor)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrVerifiedActorExists
		}
		onError()
		log.Error().Err(err).Str("email", email).Msg("Failed to upsert pending actor")
		return nil, fmt.Errorf("failed to upsert pending record: %w", err)
	}
	return &actor, nil
}

// toUpdateDoc marshals a sparse update payload into a $set document,
// dropping empty fields via the omitempty bson tags.
func toUpdateDoc(payload interface{}) (bson.M, error) {
	raw, err := bson.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal update payload: %w", err)
	}
	var doc bson.M
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal update payload: %w", err)
	}
	return doc, nil
}
