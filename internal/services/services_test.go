package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/alikamatu/artisan-app-sub000/database"
	"github.com/alikamatu/artisan-app-sub000/internal/models"
	"github.com/alikamatu/artisan-app-sub000/internal/repositories"
	"github.com/alikamatu/artisan-app-sub000/internal/services/dto"
	"github.com/alikamatu/artisan-app-sub000/internal/store"
	"github.com/alikamatu/artisan-app-sub000/pkg/apperrors"
)

type testEnv struct {
	db *gorm.DB

	userRepo        *repositories.UserRepository
	jobRepo         *repositories.JobRepository
	applicationRepo *repositories.ApplicationRepository
	bookingRepo     *repositories.BookingRepository
	reviewRepo      *repositories.ReviewRepository

	authService         *AuthService
	jobService          *JobService
	applicationService  *ApplicationService
	bookingService      *BookingService
	reviewService       *ReviewService
	notificationService *NotificationService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	gw := store.New(db)

	userRepo := repositories.NewUserRepository(gw)
	jobRepo := repositories.NewJobRepository(gw)
	applicationRepo := repositories.NewApplicationRepository(gw)
	bookingRepo := repositories.NewBookingRepository(gw)
	reviewRepo := repositories.NewReviewRepository(gw)
	notificationRepo := repositories.NewNotificationRepository(gw)

	notificationService := NewNotificationService(notificationRepo)
	jobService := NewJobService(jobRepo, userRepo)
	applicationService := NewApplicationService(applicationRepo, jobRepo, userRepo, jobService, notificationService)
	bookingService := NewBookingService(bookingRepo, applicationRepo, jobRepo, notificationService)
	reviewService := NewReviewService(reviewRepo, bookingRepo, userRepo, notificationService)

	return &testEnv{
		db:                  db,
		userRepo:            userRepo,
		jobRepo:             jobRepo,
		applicationRepo:     applicationRepo,
		bookingRepo:         bookingRepo,
		reviewRepo:          reviewRepo,
		authService:         NewAuthService(userRepo),
		jobService:          jobService,
		applicationService:  applicationService,
		bookingService:      bookingService,
		reviewService:       reviewService,
		notificationService: notificationService,
	}
}

func (e *testEnv) createUser(t *testing.T, role models.UserRole, verified bool) *models.User {
	t.Helper()

	user := &models.User{
		Name:         "Test " + string(role),
		Email:        uuid.NewString() + "@example.com",
		PasswordHash: "irrelevant",
		Role:         role,
		Status:       models.UserStatusActive,
		IsVerified:   verified,
	}
	require.NoError(t, e.userRepo.Create(context.Background(), user))
	return user
}

func (e *testEnv) createJob(t *testing.T, clientID string, budgetMin, budgetMax float64) *dto.JobResponse {
	t.Helper()

	job, err := e.jobService.Create(context.Background(), clientID, &dto.CreateJobRequest{
		Title:     "Fix the kitchen sink",
		Category:  "plumbing",
		BudgetMin: budgetMin,
		BudgetMax: budgetMax,
	})
	require.NoError(t, err)
	return job
}

func (e *testEnv) submitApplication(t *testing.T, workerID, jobID string, budget float64) *dto.ApplicationResponse {
	t.Helper()

	app, err := e.applicationService.Submit(context.Background(), workerID, &dto.SubmitApplicationRequest{
		JobID:          jobID,
		ProposedBudget: budget,
		AvailableFrom:  time.Now().Add(24 * time.Hour),
	})
	require.NoError(t, err)
	return app
}

// acceptedApplication runs the happy path up to an accepted application:
// client posts a job, worker applies, client accepts.
func (e *testEnv) acceptedApplication(t *testing.T) (client, worker *models.User, job *dto.JobResponse, app *dto.ApplicationResponse) {
	t.Helper()

	client = e.createUser(t, models.UserRoleClient, true)
	worker = e.createUser(t, models.UserRoleWorker, true)
	job = e.createJob(t, client.ID, 100, 500)
	app = e.submitApplication(t, worker.ID, job.ID, 200)

	accepted, err := e.applicationService.Accept(context.Background(), app.ID, client.ID)
	require.NoError(t, err)
	return client, worker, job, accepted
}

// activeBooking extends acceptedApplication with a booking.
func (e *testEnv) activeBooking(t *testing.T) (client, worker *models.User, job *dto.JobResponse, booking *dto.BookingResponse) {
	t.Helper()

	client, worker, job, app := e.acceptedApplication(t)
	booking, err := e.bookingService.Create(context.Background(), client.ID, &dto.CreateBookingRequest{
		ApplicationID:          app.ID,
		StartDate:              time.Now().Add(24 * time.Hour),
		ExpectedCompletionDate: time.Now().Add(7 * 24 * time.Hour),
		FinalBudget:            200,
	})
	require.NoError(t, err)
	return client, worker, job, booking
}

func requireAppCode(t *testing.T, err error, code apperrors.ErrorCode) {
	t.Helper()

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, code, appErr.Code)
}

func (e *testEnv) bookFromApplication(t *testing.T, clientID, applicationID string) *dto.BookingResponse {
	t.Helper()

	booking, err := e.bookingService.Create(context.Background(), clientID, &dto.CreateBookingRequest{
		ApplicationID:          applicationID,
		StartDate:              time.Now().Add(24 * time.Hour),
		ExpectedCompletionDate: time.Now().Add(7 * 24 * time.Hour),
		FinalBudget:            200,
	})
	require.NoError(t, err)
	return booking
}

// completedBooking extends activeBooking with the client marking it done.
func (e *testEnv) completedBooking(t *testing.T) (client, worker *models.User, booking *dto.BookingResponse) {
	t.Helper()

	client, worker, _, active := e.activeBooking(t)
	completed, err := e.bookingService.MarkCompleted(context.Background(), active.ID, client.ID, nil)
	require.NoError(t, err)
	return client, worker, completed
}
