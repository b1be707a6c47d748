package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"jobdesk/internal/models"
	"jobdesk/internal/repositories"
)

// Profile services return role-specific documents for the authenticated
// actor. Password hashes never serialize; the models exclude them.

type UserProfileService interface {
	Get(ctx context.Context, userID primitive.ObjectID) (*models.User, error)
	Update(ctx context.Context, userID primitive.ObjectID, update *models.UserProfileUpdate) (*models.User, error)
}

type userProfileService struct {
	userRepo repositories.UserRepository
}

func NewUserProfileService(userRepo repositories.UserRepository) UserProfileService {
	return &userProfileService{userRepo: userRepo}
}

func (s *userProfileService) Get(ctx context.Context, userID primitive.ObjectID) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrActorNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userProfileService) Update(ctx context.Context, userID primitive.ObjectID, update *models.UserProfileUpdate) (*models.User, error) {
	if update.PhoneNo != "" && len(update.PhoneNo) != 10 {
		return nil, NewValidationError("phoneNo must be exactly 10 digits")
	}
	user, err := s.userRepo.UpdateProfile(ctx, userID, update)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrActorNotFound
		}
		return nil, err
	}
	return user, nil
}

type CompanyProfileService interface {
	Get(ctx context.Context, companyID primitive.ObjectID) (*models.Company, error)
	Update(ctx context.Context, companyID primitive.ObjectID, update *models.CompanyProfileUpdate) (*models.Company, error)
}

type companyProfileService struct {
	companyRepo repositories.CompanyRepository
}

func NewCompanyProfileService(companyRepo repositories.CompanyRepository) CompanyProfileService {
	return &companyProfileService{companyRepo: companyRepo}
}

func (s *companyProfileService) Get(ctx context.Context, companyID primitive.ObjectID) (*models.Company, error) {
	company, err := s.companyRepo.FindByID(ctx, companyID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrActorNotFound
		}
		return nil, err
	}
	return company, nil
}

func (s *companyProfileService) Update(ctx context.Context, companyID primitive.ObjectID, update *models.CompanyProfileUpdate) (*models.Company, error) {
	company, err := s.companyRepo.UpdateProfile(ctx, companyID, update)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrActorNotFound
		}
		return nil, err
	}
	return company, nil
}

type AdminProfileService interface {
	Get(ctx context.Context, adminID primitive.ObjectID) (*models.Admin, error)
}

type adminProfileService struct {
	adminRepo repositories.AdminRepository
}

func NewAdminProfileService(adminRepo repositories.AdminRepository) AdminProfileService {
	return &adminProfileService{adminRepo: adminRepo}
}

func (s *adminProfileService) Get(ctx context.Context, adminID primitive.ObjectID) (*models.Admin, error) {
	admin, err := s.adminRepo.FindByID(ctx, adminID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrActorNotFound
		}
		return nil, err
	}
	return admin, nil
}
