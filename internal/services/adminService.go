package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"jobdesk/internal/models"
	"jobdesk/internal/repositories"
	"jobdesk/internal/utils"
)

type CompanyListParams struct {
	Page      int
	Limit     int
	Search    string
	StartDate *time.Time
	EndDate   *time.Time
}

type AdminService interface {
	ListCompanies(ctx context.Context, params CompanyListParams) ([]models.Company, utils.Pagination, error)
	Dashboard(ctx context.Context) (*models.AdminDashboard, error)
}

type adminService struct {
	userRepo    repositories.UserRepository
	companyRepo repositories.CompanyRepository
	jobRepo     repositories.JobRepository
}

func NewAdminService(userRepo repositories.UserRepository, companyRepo repositories.CompanyRepository, jobRepo repositories.JobRepository) AdminService {
	return &adminService{userRepo: userRepo, companyRepo: companyRepo, jobRepo: jobRepo}
}

func (s *adminService) ListCompanies(ctx context.Context, params CompanyListParams) ([]models.Company, utils.Pagination, error) {
	return utils.Paginate[models.Company](ctx, s.companyRepo.Collection(), utils.PaginationParams{
		Page:         params.Page,
		Limit:        params.Limit,
		Search:       params.Search,
		SearchFields: []string{"name", "email", "location"},
		DateField:    "created_at",
		StartDate:    params.StartDate,
		EndDate:      params.EndDate,
		Projection:   bson.M{"password": 0},
		Sort:         bson.D{{Key: "created_at", Value: -1}},
	})
}

func (s *adminService) Dashboard(ctx context.Context) (*models.AdminDashboard, error) {
	totalUsers, err := s.userRepo.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	totalCompanies, err := s.companyRepo.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	totalJobs, err := s.jobRepo.CountAll(ctx)
	if err != nil {
		return nil, err
	}

	return &models.AdminDashboard{
		TotalUsers:     totalUsers,
		TotalCompanies: totalCompanies,
		TotalJobs:      totalJobs,
	}, nil
}
