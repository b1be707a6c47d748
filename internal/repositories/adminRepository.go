package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"jobdesk/internal/database"
	"jobdesk/internal/models"
)

type AdminRepository interface {
	ActorStore
	FindByID(ctx context.Context, adminID primitive.ObjectID) (*models.Admin, error)
	Create(ctx context.Context, admin *models.Admin) (*models.Admin, error)
	EnsureIndexes(ctx context.Context) error
}

type adminRepository struct {
	collection *mongo.Collection
}

func NewAdminRepository(db database.Service) AdminRepository {
	return &adminRepository{collection: db.Database().Collection("admins")}
}

func (r *adminRepository) Role() models.Role {
	return models.RoleAdmin
}

func (r *adminRepository) EnsureIndexes(ctx context.Context) error {
	for _, field := range []string{"email", "username"} {
		_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.M{field: 1},
			Options: options.Index().SetUnique(true),
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *adminRepository) FindActorByEmail(ctx context.Context, email string) (*models.Actor, error) {
	var actor models.Actor
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&actor)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find admin by email: %w", err)
	}
	// Admin documents carry no is_verified field; admins are always verified.
	actor.IsVerified = true
	return &actor, nil
}

func (r *adminRepository) FindActorByID(ctx context.Context, id primitive.ObjectID) (*models.Actor, error) {
	var actor models.Actor
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&actor)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find admin by id: %w", err)
	}
	actor.IsVerified = true
	return &actor, nil
}

// UpsertPending is never reachable for admins; accounts are created by the
// seed command only.
func (r *adminRepository) UpsertPending(ctx context.Context, email string, fields bson.M) (*models.Actor, error) {
	return nil, errors.New("admins cannot self-register")
}

func (r *adminRepository) SetVerified(ctx context.Context, id primitive.ObjectID) error {
	return nil
}

func (r *adminRepository) SetTwoFactor(ctx context.Context, id primitive.ObjectID, enabled bool) error {
	update := bson.M{"$set": bson.M{"is_two_factor_enabled": enabled, "updated_at": time.Now()}}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update admin 2FA flag: %w", err)
	}
	return nil
}

func (r *adminRepository) FindByID(ctx context.Context, adminID primitive.ObjectID) (*models.Admin, error) {
	var admin models.Admin
	err := r.collection.FindOne(ctx, bson.M{"_id": adminID}).Decode(&admin)
	if err != nil {
		return nil, err // Can be mongo.ErrNoDocuments
	}
	return &admin, nil
}

func (r *adminRepository) Create(ctx context.Context, admin *models.Admin) (*models.Admin, error) {
	admin.ID = primitive.NewObjectID()
	admin.CreatedAt = time.Now()
	admin.UpdatedAt = admin.CreatedAt
	_, err := r.collection.InsertOne(ctx, admin)
	if err != nil {
		return nil, fmt.Errorf("failed to create admin: %w", err)
	}
	return admin, nil
}
