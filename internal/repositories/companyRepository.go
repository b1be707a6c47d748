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

type CompanyRepository interface {
	ActorStore
	FindByID(ctx context.Context, companyID primitive.ObjectID) (*models.Company, error)
	UpdateProfile(ctx context.Context, companyID primitive.ObjectID, update *models.CompanyProfileUpdate) (*models.Company, error)
	CountAll(ctx context.Context) (int64, error)
	Collection() *mongo.Collection
	EnsureIndexes(ctx context.Context) error
}

type companyRepository struct {
	collection *mongo.Collection
}

func NewCompanyRepository(db database.Service) CompanyRepository {
	return &companyRepository{collection: db.Database().Collection("companies")}
}

func (r *companyRepository) Role() models.Role {
	return models.RoleCompany
}

// Collection exposes the raw collection for the admin listing's pagination.
func (r *companyRepository) Collection() *mongo.Collection {
	return r.collection
}

func (r *companyRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.M{"email": 1},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (r *companyRepository) FindActorByEmail(ctx context.Context, email string) (*models.Actor, error) {
	queryType := "findActorByEmail"
	repository := "company"
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
		return nil, fmt.Errorf("failed to find company by email: %w", err)
	}
	return &actor, nil
}

func (r *companyRepository) FindActorByID(ctx context.Context, id primitive.ObjectID) (*models.Actor, error) {
	var actor models.Actor
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&actor)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find company by id: %w", err)
	}
	return &actor, nil
}

func (r *companyRepository) UpsertPending(ctx context.Context, email string, fields bson.M) (*models.Actor, error) {
	queryType := "upsertPending"
	repository := "company"
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

func (r *companyRepository) SetVerified(ctx context.Context, id primitive.ObjectID) error {
	update := bson.M{"$set": bson.M{"is_verified": true, "updated_at": time.Now()}}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		log.Error().Err(err).Str("company_id", id.Hex()).Msg("Failed to mark company verified")
		return fmt.Errorf("failed to mark company verified: %w", err)
	}
	return nil
}

func (r *companyRepository) SetTwoFactor(ctx context.Context, id primitive.ObjectID, enabled bool) error {
	update := bson.M{"$set": bson.M{"is_two_factor_enabled": enabled, "updated_at": time.Now()}}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update company 2FA flag: %w", err)
	}
	return nil
}

func (r *companyRepository) FindByID(ctx context.Context, companyID primitive.ObjectID) (*models.Company, error) {
	var company models.Company
	err := r.collection.FindOne(ctx, bson.M{"_id": companyID}).Decode(&company)
	if err != nil {
		return nil, err // Can be mongo.ErrNoDocuments
	}
	return &company, nil
}

func (r *companyRepository) UpdateProfile(ctx context.Context, companyID primitive.ObjectID, update *models.CompanyProfileUpdate) (*models.Company, error) {
	doc, err := toUpdateDoc(update)
	if err != nil {
		return nil, err
	}
	doc["updated_at"] = time.Now()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var company models.Company
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": companyID}, bson.M{"$set": doc}, opts).Decode(&company)
	if err != nil {
		log.Error().Err(err).Str("company_id", companyID.Hex()).Msg("Error updating company profile")
		return nil, err
	}
	return &company, nil
}

func (r *companyRepository) CountAll(ctx context.Context) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count companies: %w", err)
	}
	return count, nil
}
