package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"jobdesk/internal/models"
)

type fakeJobRepo struct {
	jobs map[primitive.ObjectID]*models.Job
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{jobs: make(map[primitive.ObjectID]*models.Job)}
}

func (f *fakeJobRepo) Create(ctx context.Context, job *models.Job) (*models.Job, error) {
	job.ID = primitive.NewObjectID()
	copied := *job
	f.jobs[job.ID] = &copied
	return job, nil
}

func (f *fakeJobRepo) FindByID(ctx context.Context, jobID primitive.ObjectID) (*models.Job, error) {
	job, ok := f.jobs[jobID]
	if !ok {
		return nil, nil
	}
	copied := *job
	return &copied, nil
}

func (f *fakeJobRepo) IDsByCompany(ctx context.Context, companyID primitive.ObjectID) ([]primitive.ObjectID, error) {
	var ids []primitive.ObjectID
	for id, job := range f.jobs {
		if job.CompanyID == companyID {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (f *fakeJobRepo) CountByCompany(ctx context.Context, companyID primitive.ObjectID) (int64, error) {
	var n int64
	for _, job := range f.jobs {
		if job.CompanyID == companyID {
			n++
		}
	}
	return n, nil
}

func (f *fakeJobRepo) CountOpenByCompany(ctx context.Context, companyID primitive.ObjectID) (int64, error) {
	var n int64
	for _, job := range f.jobs {
		if job.CompanyID == companyID && (job.Deadline == nil || job.Deadline.After(time.Now())) {
			n++
		}
	}
	return n, nil
}

func (f *fakeJobRepo) CountAll(ctx context.Context) (int64, error) {
	return int64(len(f.jobs)), nil
}

func (f *fakeJobRepo) Collection() *mongo.Collection { return nil }

type fakeApplicationRepo struct {
	applications map[primitive.ObjectID]*models.Application
}

func newFakeApplicationRepo() *fakeApplicationRepo {
	return &fakeApplicationRepo{applications: make(map[primitive.ObjectID]*models.Application)}
}

func (f *fakeApplicationRepo) Create(ctx context.Context, application *models.Application) (*models.Application, error) {
	application.ID = primitive.NewObjectID()
	copied := *application
	f.applications[application.ID] = &copied
	return application, nil
}

func (f *fakeApplicationRepo) FindByID(ctx context.Context, applicationID primitive.ObjectID) (*models.Application, error) {
	application, ok := f.applications[applicationID]
	if !ok {
		return nil, nil
	}
	copied := *application
	return &copied, nil
}

func (f *fakeApplicationRepo) FindByJobAndUser(ctx context.Context, jobID, userID primitive.ObjectID) (*models.Application, error) {
	for _, application := range f.applications {
		if application.JobID == jobID && application.UserID == userID {
			copied := *application
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeApplicationRepo) UpdateStatus(ctx context.Context, applicationID primitive.ObjectID, status string) (*models.Application, error) {
	application, ok := f.applications[applicationID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	application.Status = status
	copied := *application
	return &copied, nil
}

func (f *fakeApplicationRepo) CountByJobIDs(ctx context.Context, jobIDs []primitive.ObjectID) (int64, error) {
	var n int64
	for _, application := range f.applications {
		for _, id := range jobIDs {
			if application.JobID == id {
				n++
			}
		}
	}
	return n, nil
}

func (f *fakeApplicationRepo) CountByJobIDsAndStatus(ctx context.Context, jobIDs []primitive.ObjectID, status string) (int64, error) {
	var n int64
	for _, application := range f.applications {
		if application.Status != status {
			continue
		}
		for _, id := range jobIDs {
			if application.JobID == id {
				n++
			}
		}
	}
	return n, nil
}

func (f *fakeApplicationRepo) Collection() *mongo.Collection { return nil }

func TestCreateJobValidation(t *testing.T) {
	svc := NewJobService(newFakeJobRepo(), newFakeApplicationRepo())
	companyID := primitive.NewObjectID()

	cases := []struct {
		name string
		job  models.Job
	}{
		{"missing title", models.Job{Description: "d", Location: "l"}},
		{"missing description", models.Job{Title: "t", Location: "l"}},
		{"missing location", models.Job{Title: "t", Description: "d"}},
		{"bad type", models.Job{Title: "t", Description: "d", Location: "l", Type: "Freelance"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateJob(context.Background(), companyID, &tc.job)
			var ve *ValidationError
			assert.ErrorAs(t, err, &ve)
		})
	}
}

func TestCreateJobDefaultsOpenings(t *testing.T) {
	svc := NewJobService(newFakeJobRepo(), newFakeApplicationRepo())
	companyID := primitive.NewObjectID()

	job, err := svc.CreateJob(context.Background(), companyID, &models.Job{
		Title:       "Backend Engineer",
		Description: "Go services",
		Location:    "Remote",
		Type:        "Remote",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, job.Openings)
	assert.Equal(t, companyID, job.CompanyID)
}

func TestApplyHappyPath(t *testing.T) {
	jobRepo := newFakeJobRepo()
	svc := NewJobService(jobRepo, newFakeApplicationRepo())

	job, err := svc.CreateJob(context.Background(), primitive.NewObjectID(), &models.Job{
		Title: "t", Description: "d", Location: "l",
	})
	require.NoError(t, err)

	application, err := svc.Apply(context.Background(), primitive.NewObjectID(), job.ID, "https://cv.example/me.pdf", "")
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusPending, application.Status)
}

func TestApplyRequiresResume(t *testing.T) {
	svc := NewJobService(newFakeJobRepo(), newFakeApplicationRepo())

	_, err := svc.Apply(context.Background(), primitive.NewObjectID(), primitive.NewObjectID(), "", "")
	var ve *ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestApplyUnknownJob(t *testing.T) {
	svc := NewJobService(newFakeJobRepo(), newFakeApplicationRepo())

	_, err := svc.Apply(context.Background(), primitive.NewObjectID(), primitive.NewObjectID(), "resume", "")
	assert.ErrorIs(t, err, ErrJobNotFound)
}

func TestApplyPastDeadline(t *testing.T) {
	jobRepo := newFakeJobRepo()
	svc := NewJobService(jobRepo, newFakeApplicationRepo())

	past := time.Now().Add(-time.Hour)
	job, err := svc.CreateJob(context.Background(), primitive.NewObjectID(), &models.Job{
		Title: "t", Description: "d", Location: "l", Deadline: &past,
	})
	require.NoError(t, err)

	_, err = svc.Apply(context.Background(), primitive.NewObjectID(), job.ID, "resume", "")
	assert.ErrorIs(t, err, ErrJobClosed)
}

func TestApplyTwiceRejected(t *testing.T) {
	jobRepo := newFakeJobRepo()
	svc := NewJobService(jobRepo, newFakeApplicationRepo())

	job, err := svc.CreateJob(context.Background(), primitive.NewObjectID(), &models.Job{
		Title: "t", Description: "d", Location: "l",
	})
	require.NoError(t, err)

	userID := primitive.NewObjectID()
	_, err = svc.Apply(context.Background(), userID, job.ID, "resume", "")
	require.NoError(t, err)

	_, err = svc.Apply(context.Background(), userID, job.ID, "resume", "")
	assert.ErrorIs(t, err, ErrAlreadyApplied)
}

func TestUpdateApplicationStatus(t *testing.T) {
	jobRepo := newFakeJobRepo()
	svc := NewJobService(jobRepo, newFakeApplicationRepo())
	companyID := primitive.NewObjectID()

	job, err := svc.CreateJob(context.Background(), companyID, &models.Job{
		Title: "t", Description: "d", Location: "l",
	})
	require.NoError(t, err)

	application, err := svc.Apply(context.Background(), primitive.NewObjectID(), job.ID, "resume", "")
	require.NoError(t, err)

	updated, err := svc.UpdateApplicationStatus(context.Background(), companyID, application.ID, models.ApplicationStatusShortlisted)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusShortlisted, updated.Status)

	// Another company cannot touch it.
	_, err = svc.UpdateApplicationStatus(context.Background(), primitive.NewObjectID(), application.ID, models.ApplicationStatusRejected)
	assert.ErrorIs(t, err, ErrNotJobOwner)

	_, err = svc.UpdateApplicationStatus(context.Background(), companyID, application.ID, "hired")
	var ve *ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestDashboardCounts(t *testing.T) {
	jobRepo := newFakeJobRepo()
	svc := NewJobService(jobRepo, newFakeApplicationRepo())
	companyID := primitive.NewObjectID()

	past := time.Now().Add(-time.Hour)
	open, err := svc.CreateJob(context.Background(), companyID, &models.Job{
		Title: "open", Description: "d", Location: "l",
	})
	require.NoError(t, err)
	_, err = svc.CreateJob(context.Background(), companyID, &models.Job{
		Title: "closed", Description: "d", Location: "l", Deadline: &past,
	})
	require.NoError(t, err)

	application, err := svc.Apply(context.Background(), primitive.NewObjectID(), open.ID, "resume", "")
	require.NoError(t, err)
	_, err = svc.Apply(context.Background(), primitive.NewObjectID(), open.ID, "resume", "")
	require.NoError(t, err)
	_, err = svc.UpdateApplicationStatus(context.Background(), companyID, application.ID, models.ApplicationStatusShortlisted)
	require.NoError(t, err)

	dashboard, err := svc.Dashboard(context.Background(), companyID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), dashboard.TotalJobs)
	assert.Equal(t, int64(1), dashboard.OpenJobs)
	assert.Equal(t, int64(2), dashboard.TotalApplications)
	assert.Equal(t, int64(1), dashboard.ApplicationsByStatus[models.ApplicationStatusPending])
	assert.Equal(t, int64(1), dashboard.ApplicationsByStatus[models.ApplicationStatusShortlisted])
	assert.Equal(t, int64(0), dashboard.ApplicationsByStatus[models.ApplicationStatusRejected])
}
