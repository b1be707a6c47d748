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

type JobRepository interface {
	Create(ctx context.Context, job *models.Job) (*models.Job, error)
	FindByID(ctx context.Context, jobID primitive.ObjectID) (*models.Job, error)
	IDsByCompany(ctx context.Context, companyID primitive.ObjectID) ([]primitive.ObjectID, error)
	CountByCompany(ctx context.Context, companyID primitive.ObjectID) (int64, error)
	CountOpenByCompany(ctx context.Context, companyID primitive.ObjectID) (int64, error)
	CountAll(ctx context.Context) (int64, error)
	Collection() *mongo.Collection
}

type jobRepository struct {
	collection *mongo.Collection
}

func NewJobRepository(db database.Service) JobRepository {
	return &jobRepository{collection: db.Database().Collection("jobs")}
}

func (r *jobRepository) Collection() *mongo.Collection {
	return r.collection
}

func (r *jobRepository) Create(ctx context.Context, job *models.Job) (*models.Job, error) {
	job.ID = primitive.NewObjectID()
	job.CreatedAt = time.Now()
	job.UpdatedAt = job.CreatedAt
	_, err := r.collection.InsertOne(ctx, job)
	if err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}
	return job, nil
}

func (r *jobRepository) FindByID(ctx context.Context, jobID primitive.ObjectID) (*models.Job, error) {
	var job models.Job
	err := r.collection.FindOne(ctx, bson.M{"_id": jobID}).Decode(&job)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &job, nil
}

func (r *jobRepository) IDsByCompany(ctx context.Context, companyID primitive.ObjectID) ([]primitive.ObjectID, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"company_id": companyID},
		options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var ids []primitive.ObjectID
	for cursor.Next(ctx) {
		var doc struct {
			ID primitive.ObjectID `bson:"_id"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		ids = append(ids, doc.ID)
	}
	return ids, cursor.Err()
}

func (r *jobRepository) CountByCompany(ctx context.Context, companyID primitive.ObjectID) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"company_id": companyID})
}

func (r *jobRepository) CountOpenByCompany(ctx context.Context, companyID primitive.ObjectID) (int64, error) {
	filter := bson.M{
		"company_id": companyID,
		"$or": bson.A{
			bson.M{"deadline": bson.M{"$gt": time.Now()}},
			bson.M{"deadline": bson.M{"$exists": false}},
		},
	}
	return r.collection.CountDocuments(ctx, filter)
}

func (r *jobRepository) CountAll(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}
