package repositories

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"jobdesk/internal/database"
	"jobdesk/internal/models"
)

type ApplicationRepository interface {
	Create(ctx context.Context, application *models.Application) (*models.Application, error)
	FindByID(ctx context.Context, applicationID primitive.ObjectID) (*models.Application, error)
	FindByJobAndUser(ctx context.Context, jobID, userID primitive.ObjectID) (*models.Application, error)
	UpdateStatus(ctx context.Context, applicationID primitive.ObjectID, status string) (*models.Application, error)
	CountByJobIDs(ctx context.Context, jobIDs []primitive.ObjectID) (int64, error)
	CountByJobIDsAndStatus(ctx context.Context, jobIDs []primitive.ObjectID, status string) (int64, error)
	Collection() *mongo.Collection
}

type applicationRepository struct {
	collection *mongo.Collection
}

func NewApplicationRepository(db database.Service) ApplicationRepository {
	return &applicationRepository{collection: db.Database().Collection("applications")}
}

func (r *applicationRepository) Collection() *mongo.Collection {
	return r.collection
}

func (r *applicationRepository) Create(ctx context.Context, application *models.Application) (*models.Application, error) {
	application.ID = primitive.NewObjectID()
	application.CreatedAt = time.Now()
	application.UpdatedAt = application.CreatedAt
	_, err := r.collection.InsertOne(ctx, application)
	if err != nil {
		return nil, fmt.Errorf("failed to create application: %w", err)
	}
	return application, nil
}

func (r *applicationRepository) FindByID(ctx context.Context, applicationID primitive.ObjectID) (*models.Application, error) {
	var application models.Application
	err := r.collection.FindOne(ctx, bson.M{"_id": applicationID}).Decode(&application)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &application, nil
}

func (r *applicationRepository) FindByJobAndUser(ctx context.Context, jobID, userID primitive.ObjectID) (*models.Application, error) {
	var application models.Application
	err := r.collection.FindOne(ctx, bson.M{"job_id": jobID, "user_id": userID}).Decode(&application)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &application, nil
}

func (r *applicationRepository) UpdateStatus(ctx context.Context, applicationID primitive.ObjectID, status string) (*models.Application, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	update := bson.M{"$set": bson.M{"status": status, "updated_at": time.Now()}}

	var application models.Application
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": applicationID}, update, opts).Decode(&application)
	if err != nil {
		return nil, err
	}
	return &application, nil
}

func (r *applicationRepository) CountByJobIDs(ctx context.Context, jobIDs []primitive.ObjectID) (int64, error) {
	if len(jobIDs) == 0 {
		return 0, nil
	}
	return r.collection.CountDocuments(ctx, bson.M{"job_id": bson.M{"$in": jobIDs}})
}

func (r *applicationRepository) CountByJobIDsAndStatus(ctx context.Context, jobIDs []primitive.ObjectID, status string) (int64, error) {
	if len(jobIDs) == 0 {
		return 0, nil
	}
	return r.collection.CountDocuments(ctx, bson.M{"job_id": bson.M{"$in": jobIDs}, "status": status})
}
