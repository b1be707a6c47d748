package services

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"jobdesk/internal/metrics"
	"jobdesk/internal/models"
	"jobdesk/internal/repositories"
	"jobdesk/internal/utils"
)

type JobService interface {
	CreateJob(ctx context.Context, companyID primitive.ObjectID, job *models.Job) (*models.Job, error)
	ListCompanyJobs(ctx context.Context, companyID primitive.ObjectID, page, limit int) ([]models.Job, utils.Pagination, error)
	ListOpenJobs(ctx context.Context, page, limit int, search string) ([]models.Job, utils.Pagination, error)
	Apply(ctx context.Context, userID, jobID primitive.ObjectID, resume, coverLetter string) (*models.Application, error)
	ListUserApplications(ctx context.Context, userID primitive.ObjectID, page, limit int) ([]models.Application, utils.Pagination, error)
	ListJobApplications(ctx context.Context, companyID, jobID primitive.ObjectID, page, limit int) ([]models.Application, utils.Pagination, error)
	UpdateApplicationStatus(ctx context.Context, companyID, applicationID primitive.ObjectID, status string) (*models.Application, error)
	Dashboard(ctx context.Context, companyID primitive.ObjectID) (*models.CompanyDashboard, error)
}

type jobService struct {
	jobRepo         repositories.JobRepository
	applicationRepo repositories.ApplicationRepository
}

func NewJobService(jobRepo repositories.JobRepository, applicationRepo repositories.ApplicationRepository) JobService {
	return &jobService{jobRepo: jobRepo, applicationRepo: applicationRepo}
}

func (s *jobService) CreateJob(ctx context.Context, companyID primitive.ObjectID, job *models.Job) (*models.Job, error) {
	if job.Title == "" {
		return nil, NewValidationError("title is required")
	}
	if job.Description == "" {
		return nil, NewValidationError("description is required")
	}
	if job.Location == "" {
		return nil, NewValidationError("location is required")
	}
	if job.Type != "" && !slices.Contains(models.JobTypes, job.Type) {
		return nil, NewValidationError(fmt.Sprintf("type must be one of %v", models.JobTypes))
	}
	if job.Openings <= 0 {
		job.Openings = 1
	}
	job.CompanyID = companyID

	created, err := s.jobRepo.Create(ctx, job)
	if err != nil {
		return nil, err
	}

	metrics.JobsCreatedTotal.Inc()
	log.Info().Str("company_id", companyID.Hex()).Str("job_id", created.ID.Hex()).Msg("Job posted")
	return created, nil
}

func (s *jobService) ListCompanyJobs(ctx context.Context, companyID primitive.ObjectID, page, limit int) ([]models.Job, utils.Pagination, error) {
	return utils.Paginate[models.Job](ctx, s.jobRepo.Collection(), utils.PaginationParams{
		Page:  page,
		Limit: limit,
		Query: bson.M{"company_id": companyID},
		Sort:  bson.D{{Key: "created_at", Value: -1}},
	})
}

func (s *jobService) ListOpenJobs(ctx context.Context, page, limit int, search string) ([]models.Job, utils.Pagination, error) {
	// The open-jobs clause lives under $and so a search $or can sit next to
	// it in the same filter.
	open := bson.M{"$and": bson.A{
		bson.M{"$or": bson.A{
			bson.M{"deadline": bson.M{"$gt": time.Now()}},
			bson.M{"deadline": bson.M{"$exists": false}},
		}},
	}}

	return utils.Paginate[models.Job](ctx, s.jobRepo.Collection(), utils.PaginationParams{
		Page:         page,
		Limit:        limit,
		Search:       search,
		SearchFields: []string{"title", "location"},
		Query:        open,
		Sort:         bson.D{{Key: "created_at", Value: -1}},
	})
}

func (s *jobService) Apply(ctx context.Context, userID, jobID primitive.ObjectID, resume, coverLetter string) (*models.Application, error) {
	if resume == "" {
		return nil, NewValidationError("resume is required")
	}

	job, err := s.jobRepo.FindByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, ErrJobNotFound
	}
	if job.Deadline != nil && job.Deadline.Before(time.Now()) {
		return nil, ErrJobClosed
	}

	existing, err := s.applicationRepo.FindByJobAndUser(ctx, jobID, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyApplied
	}

	application := &models.Application{
		JobID:       jobID,
		UserID:      userID,
		Resume:      resume,
		CoverLetter: coverLetter,
		Status:      models.ApplicationStatusPending,
	}
	created, err := s.applicationRepo.Create(ctx, application)
	if err != nil {
		return nil, err
	}

	metrics.ApplicationsCreatedTotal.Inc()
	log.Info().Str("user_id", userID.Hex()).Str("job_id", jobID.Hex()).Msg("Application submitted")
	return created, nil
}

func (s *jobService) ListUserApplications(ctx context.Context, userID primitive.ObjectID, page, limit int) ([]models.Application, utils.Pagination, error) {
	return utils.Paginate[models.Application](ctx, s.applicationRepo.Collection(), utils.PaginationParams{
		Page:  page,
		Limit: limit,
		Query: bson.M{"user_id": userID},
		Sort:  bson.D{{Key: "created_at", Value: -1}},
	})
}

func (s *jobService) ListJobApplications(ctx context.Context, companyID, jobID primitive.ObjectID, page, limit int) ([]models.Application, utils.Pagination, error) {
	job, err := s.jobRepo.FindByID(ctx, jobID)
	if err != nil {
		return nil, utils.Pagination{}, err
	}
	if job == nil {
		return nil, utils.Pagination{}, ErrJobNotFound
	}
	if job.CompanyID != companyID {
		return nil, utils.Pagination{}, ErrNotJobOwner
	}

	return utils.Paginate[models.Application](ctx, s.applicationRepo.Collection(), utils.PaginationParams{
		Page:  page,
		Limit: limit,
		Query: bson.M{"job_id": jobID},
		Sort:  bson.D{{Key: "created_at", Value: -1}},
	})
}

func (s *jobService) UpdateApplicationStatus(ctx context.Context, companyID, applicationID primitive.ObjectID, status string) (*models.Application, error) {
	if !slices.Contains(models.ApplicationStatuses, status) {
		return nil, NewValidationError(fmt.Sprintf("status must be one of %v", models.ApplicationStatuses))
	}

	application, err := s.applicationRepo.FindByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if application == nil {
		return nil, ErrApplicationNotFound
	}

	job, err := s.jobRepo.FindByID(ctx, application.JobID)
	if err != nil {
		return nil, err
	}
	if job == nil || job.CompanyID != companyID {
		return nil, ErrNotJobOwner
	}

	return s.applicationRepo.UpdateStatus(ctx, applicationID, status)
}

func (s *jobService) Dashboard(ctx context.Context, companyID primitive.ObjectID) (*models.CompanyDashboard, error) {
	totalJobs, err := s.jobRepo.CountByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}

	openJobs, err := s.jobRepo.CountOpenByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}

	jobIDs, err := s.jobRepo.IDsByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}

	totalApplications, err := s.applicationRepo.CountByJobIDs(ctx, jobIDs)
	if err != nil {
		return nil, err
	}

	byStatus := make(map[string]int64, len(models.ApplicationStatuses))
	for _, status := range models.ApplicationStatuses {
		count, err := s.applicationRepo.CountByJobIDsAndStatus(ctx, jobIDs, status)
		if err != nil {
			return nil, err
		}
		byStatus[status] = count
	}

	return &models.CompanyDashboard{
		TotalJobs:            totalJobs,
		OpenJobs:             openJobs,
		TotalApplications:    totalApplications,
		ApplicationsByStatus: byStatus,
	}, nil
}
