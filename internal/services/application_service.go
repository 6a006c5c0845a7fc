package services

import (
	"context"
	"errors"

	"github.com/alikamatu/artisan-app-sub000/internal/logger"
	"github.com/alikamatu/artisan-app-sub000/internal/models"
	"github.com/alikamatu/artisan-app-sub000/internal/repositories"
	"github.com/alikamatu/artisan-app-sub000/internal/services/dto"
	"github.com/alikamatu/artisan-app-sub000/internal/store"
	"github.com/alikamatu/artisan-app-sub000/pkg/apperrors"
)

// ApplicationService owns application status and the accept/reject cascade.
// Every multi-step operation here is a sequence of independent store writes;
// once the primary write lands, secondary-step failures are logged and
// swallowed rather than surfaced.
type ApplicationService struct {
	applicationRepo *repositories.ApplicationRepository
	jobRepo         *repositories.JobRepository
	userRepo        *repositories.UserRepository
	jobService      *JobService
	notifier        *NotificationService
}

func NewApplicationService(
	applicationRepo *repositories.ApplicationRepository,
	jobRepo *repositories.JobRepository,
	userRepo *repositories.UserRepository,
	jobService *JobService,
	notifier *NotificationService,
) *ApplicationService {
	return &ApplicationService{
		applicationRepo: applicationRepo,
		jobRepo:         jobRepo,
		userRepo:        userRepo,
		jobService:      jobService,
		notifier:        notifier,
	}
}

func (s *ApplicationService) Submit(ctx context.Context, workerID string, req *dto.SubmitApplicationRequest) (*dto.ApplicationResponse, error) {
	worker, err := s.userRepo.FindByID(ctx, workerID)
	if err != nil {
		return nil, applicationStoreError(err, "Worker not found")
	}
	if worker.Role != models.UserRoleWorker {
		return nil, apperrors.ErrForbidden("application", "Only workers can apply to jobs")
	}
	if !worker.IsVerified {
		return nil, apperrors.ErrWorkerNotVerified
	}

	job, err := s.jobRepo.FindByID(ctx, req.JobID)
	if err != nil {
		return nil, applicationStoreError(err, "Job not found")
	}
	if job.ClientID == workerID {
		return nil, apperrors.ErrForbidden("application", "Cannot apply to your own job")
	}
	if job.Status != models.JobStatusOpen {
		return nil, apperrors.ErrInvalidState("application", "Job is not open for applications")
	}

	if req.ProposedBudget < job.BudgetMin || req.ProposedBudget > job.BudgetMax {
		return nil, apperrors.ErrValidation("application", "Proposed budget must lie within the job's budget range")
	}
	if beforeToday(req.AvailableFrom) {
		return nil, apperrors.ErrValidation("application", "Availability date cannot be in the past")
	}

	// Per-pair uniqueness is a read-then-write check: two concurrent submits
	// can both pass it before either insert commits.
	if _, err := s.applicationRepo.FindActiveByJobAndWorker(ctx, req.JobID, workerID); err == nil {
		return nil, apperrors.ErrAlreadyExists(nil, "application", "You already applied to this job")
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, apperrors.DependencyFailure("application", err)
	}

	app := &models.Application{
		JobID:          req.JobID,
		WorkerID:       workerID,
		ProposedBudget: req.ProposedBudget,
		CoverLetter:    req.CoverLetter,
		AvailableFrom:  req.AvailableFrom,
		Status:         models.ApplicationStatusPending,
	}
	if err := s.applicationRepo.Create(ctx, app); err != nil {
		return nil, apperrors.DependencyFailure("application", err)
	}

	// Secondary step: the application exists even if the counter update
	// fails.
	if err := s.jobService.AdjustApplicationsCount(ctx, job.ID, +1); err != nil {
		logger.Error("applications count increment failed", "job_id", job.ID, "application_id", app.ID, "error", err)
	}

	go s.notifier.ApplicationSubmitted(context.Background(), job.ClientID, job.ID, app.ID)

	return buildApplicationResponse(app), nil
}

// Accept marks the application accepted, moves the job to in_progress with
// the worker selected, then rejects every pending sibling. The cascade is a
// secondary step: its failures are logged and swallowed, so siblings can be
// left pending after a partial failure.
func (s *ApplicationService) Accept(ctx context.Context, applicationID, clientID string) (*dto.ApplicationResponse, error) {
	app, err := s.applicationRepo.FindByID(ctx, applicationID)
	if err != nil {
		return nil, applicationStoreError(err, "Application not found")
	}
	if app.Status != models.ApplicationStatusPending {
		return nil, apperrors.ErrInvalidState("application", "Only pending applications can be accepted")
	}

	job, err := s.jobRepo.FindByID(ctx, app.JobID)
	if err != nil {
		return nil, applicationStoreError(err, "Job not found")
	}
	if job.ClientID != clientID {
		return nil, apperrors.ErrForbidden("application", "Only the job owner can accept applications")
	}

	// (a) primary write
	app.Status = models.ApplicationStatusAccepted
	if err := s.applicationRepo.UpdateFields(ctx, app.ID, map[string]interface{}{
		"status": models.ApplicationStatusAccepted,
	}); err != nil {
		return nil, apperrors.DependencyFailure("application", err)
	}

	// (b) flip the job
	if err := s.jobRepo.UpdateFields(ctx, job.ID, map[string]interface{}{
		"selected_worker_id": app.WorkerID,
		"status":             models.JobStatusInProgress,
		"current_status":     models.JobPhaseAccepted,
	}); err != nil {
		logger.Error("job update failed after application accept", "job_id", job.ID, "application_id", app.ID, "error", err)
		return nil, apperrors.DependencyFailure("application", err)
	}

	// (c) cascade
	siblings, err := s.applicationRepo.FindPendingSiblings(ctx, job.ID, app.ID)
	if err != nil {
		logger.Error("sibling lookup failed during accept cascade", "job_id", job.ID, "error", err)
	}
	for i := range siblings {
		sibling := &siblings[i]
		err := s.applicationRepo.UpdateFields(ctx, sibling.ID, map[string]interface{}{
			"status":           models.ApplicationStatusRejected,
			"rejection_reason": models.RejectionReasonSelected,
		})
		if err != nil {
			logger.Error("sibling rejection failed during accept cascade", "application_id", sibling.ID, "error", err)
			continue
		}
		go s.notifier.ApplicationStatusChanged(context.Background(), sibling.WorkerID, sibling.ID, models.ApplicationStatusRejected)
	}

	go s.notifier.ApplicationStatusChanged(context.Background(), app.WorkerID, app.ID, models.ApplicationStatusAccepted)

	return buildApplicationResponse(app), nil
}

func (s *ApplicationService) Reject(ctx context.Context, applicationID, clientID string, reason *string) (*dto.ApplicationResponse, error) {
	app, err := s.applicationRepo.FindByID(ctx, applicationID)
	if err != nil {
		return nil, applicationStoreError(err, "Application not found")
	}
	if app.Status != models.ApplicationStatusPending {
		return nil, apperrors.ErrInvalidState("application", "Only pending applications can be rejected")
	}

	job, err := s.jobRepo.FindByID(ctx, app.JobID)
	if err != nil {
		return nil, applicationStoreError(err, "Job not found")
	}
	if job.ClientID != clientID {
		return nil, apperrors.ErrForbidden("application", "Only the job owner can reject applications")
	}

	fields := map[string]interface{}{"status": models.ApplicationStatusRejected}
	if reason != nil {
		fields["rejection_reason"] = *reason
	}
	if err := s.applicationRepo.UpdateFields(ctx, app.ID, fields); err != nil {
		return nil, apperrors.DependencyFailure("application", err)
	}
	app.Status = models.ApplicationStatusRejected
	app.RejectionReason = reason

	go s.notifier.ApplicationStatusChanged(context.Background(), app.WorkerID, app.ID, models.ApplicationStatusRejected)

	return buildApplicationResponse(app), nil
}

func (s *ApplicationService) Withdraw(ctx context.Context, applicationID, workerID string) (*dto.ApplicationResponse, error) {
	app, err := s.applicationRepo.FindByID(ctx, applicationID)
	if err != nil {
		return nil, applicationStoreError(err, "Application not found")
	}
	if app.WorkerID != workerID {
		return nil, apperrors.ErrForbidden("application", "Only the applicant can withdraw an application")
	}
	if app.Status != models.ApplicationStatusPending {
		return nil, apperrors.ErrInvalidState("application", "Only pending applications can be withdrawn")
	}

	if err := s.applicationRepo.UpdateFields(ctx, app.ID, map[string]interface{}{
		"status": models.ApplicationStatusWithdrawn,
	}); err != nil {
		return nil, apperrors.DependencyFailure("application", err)
	}
	app.Status = models.ApplicationStatusWithdrawn

	if err := s.jobService.AdjustApplicationsCount(ctx, app.JobID, -1); err != nil {
		logger.Error("applications count decrement failed", "job_id", app.JobID, "application_id", app.ID, "error", err)
	}

	return buildApplicationResponse(app), nil
}

func (s *ApplicationService) Get(ctx context.Context, applicationID, requesterID string) (*dto.ApplicationResponse, error) {
	app, err := s.applicationRepo.FindByID(ctx, applicationID)
	if err != nil {
		return nil, applicationStoreError(err, "Application not found")
	}

	if app.WorkerID != requesterID {
		job, err := s.jobRepo.FindByID(ctx, app.JobID)
		if err != nil {
			return nil, applicationStoreError(err, "Job not found")
		}
		if job.ClientID != requesterID {
			return nil, apperrors.ErrInsufficientPermissions
		}
	}
	return buildApplicationResponse(app), nil
}

func (s *ApplicationService) ListByWorker(ctx context.Context, workerID, requesterID string, query dto.ApplicationListQuery) (*dto.ApplicationListResponse, error) {
	if workerID != requesterID {
		return nil, apperrors.ErrInsufficientPermissions
	}
	return s.list(ctx, repositories.ApplicationListCriteria{WorkerID: workerID}, query)
}

func (s *ApplicationService) ListByJob(ctx context.Context, jobID, requesterID string, query dto.ApplicationListQuery) (*dto.ApplicationListResponse, error) {
	job, err := s.jobRepo.FindByID(ctx, jobID)
	if err != nil {
		return nil, applicationStoreError(err, "Job not found")
	}
	if job.ClientID != requesterID {
		return nil, apperrors.ErrInsufficientPermissions
	}
	return s.list(ctx, repositories.ApplicationListCriteria{JobID: jobID}, query)
}

// ListByClient lists applications across every job the client owns. The
// store has no joins, so this is a two-step read: the client's job ids
// first, then applications filtered by that id set.
func (s *ApplicationService) ListByClient(ctx context.Context, clientID, requesterID string, query dto.ApplicationListQuery) (*dto.ApplicationListResponse, error) {
	if clientID != requesterID {
		return nil, apperrors.ErrInsufficientPermissions
	}

	jobs, err := s.jobRepo.FindByClient(ctx, clientID)
	if err != nil {
		return nil, apperrors.DependencyFailure("application", err)
	}
	if len(jobs) == 0 {
		page, limit := clampPagination(query.Page, query.Limit)
		return &dto.ApplicationListResponse{Applications: []*dto.ApplicationResponse{}, Page: page, Limit: limit}, nil
	}

	jobIDs := make([]string, 0, len(jobs))
	for i := range jobs {
		jobIDs = append(jobIDs, jobs[i].ID)
	}
	return s.list(ctx, repositories.ApplicationListCriteria{JobIDs: jobIDs}, query)
}

func (s *ApplicationService) list(ctx context.Context, criteria repositories.ApplicationListCriteria, query dto.ApplicationListQuery) (*dto.ApplicationListResponse, error) {
	criteria.Page, criteria.Limit = clampPagination(query.Page, query.Limit)

	criteria.SortBy = query.SortBy
	if criteria.SortBy == "" {
		criteria.SortBy = "created_at"
	}
	criteria.Desc = query.Order != "asc"

	apps, total, err := s.applicationRepo.List(ctx, criteria)
	if err != nil {
		return nil, apperrors.DependencyFailure("application", err)
	}

	responses := make([]*dto.ApplicationResponse, 0, len(apps))
	for i := range apps {
		responses = append(responses, buildApplicationResponse(&apps[i]))
	}
	return &dto.ApplicationListResponse{
		Applications: responses,
		Total:        total,
		Page:         criteria.Page,
		Limit:        criteria.Limit,
	}, nil
}

func buildApplicationResponse(app *models.Application) *dto.ApplicationResponse {
	return &dto.ApplicationResponse{
		ID:              app.ID,
		JobID:           app.JobID,
		WorkerID:        app.WorkerID,
		ProposedBudget:  app.ProposedBudget,
		CoverLetter:     app.CoverLetter,
		AvailableFrom:   app.AvailableFrom,
		Status:          app.Status,
		BookingID:       app.BookingID,
		RejectionReason: app.RejectionReason,
		CreatedAt:       app.CreatedAt,
		UpdatedAt:       app.UpdatedAt,
	}
}

func applicationStoreError(err error, notFoundMsg string) error {
	if errors.Is(err, store.ErrNotFound) {
		return apperrors.ErrNotFound(err, "application", notFoundMsg)
	}
	return apperrors.DependencyFailure("application", err)
}
