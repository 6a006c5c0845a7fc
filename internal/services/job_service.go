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

// JobService owns job status, the fine-grained phase, and the job counters.
// Transition legality is checked here and nowhere else.
type JobService struct {
	jobRepo  *repositories.JobRepository
	userRepo *repositories.UserRepository
}

func NewJobService(jobRepo *repositories.JobRepository, userRepo *repositories.UserRepository) *JobService {
	return &JobService{jobRepo: jobRepo, userRepo: userRepo}
}

func (s *JobService) Create(ctx context.Context, clientID string, req *dto.CreateJobRequest) (*dto.JobResponse, error) {
	client, err := s.userRepo.FindByID(ctx, clientID)
	if err != nil {
		return nil, jobStoreError(err, "Client not found")
	}
	if client.Role != models.UserRoleClient {
		return nil, apperrors.ErrForbidden("job", "Only clients can post jobs")
	}

	if req.BudgetMax < req.BudgetMin {
		return nil, apperrors.ErrValidation("job", "Maximum budget cannot be less than minimum budget")
	}
	if req.StartDate != nil && beforeToday(*req.StartDate) {
		return nil, apperrors.ErrValidation("job", "Start date cannot be in the past")
	}

	job := &models.Job{
		ClientID:      clientID,
		Title:         req.Title,
		Description:   req.Description,
		Category:      req.Category,
		Location:      req.Location,
		BudgetMin:     req.BudgetMin,
		BudgetMax:     req.BudgetMax,
		StartDate:     req.StartDate,
		Status:        models.JobStatusOpen,
		CurrentStatus: models.JobPhaseOpen,
	}

	if err := s.jobRepo.Create(ctx, job); err != nil {
		return nil, apperrors.DependencyFailure("job", err)
	}
	return buildJobResponse(job), nil
}

func (s *JobService) Get(ctx context.Context, jobID, requesterID string) (*dto.JobResponse, error) {
	job, err := s.jobRepo.FindByID(ctx, jobID)
	if err != nil {
		return nil, jobStoreError(err, "Job not found")
	}

	if requesterID != job.ClientID {
		go s.IncrementViews(context.Background(), jobID)
	}
	return buildJobResponse(job), nil
}

// Transition moves a job along the fixed status table. The fine phase is
// derived from the same table entry, so status and current_status move
// together.
func (s *JobService) Transition(ctx context.Context, jobID, requesterID string, newStatus models.JobStatus) (*dto.JobResponse, error) {
	job, err := s.jobRepo.FindByID(ctx, jobID)
	if err != nil {
		return nil, jobStoreError(err, "Job not found")
	}
	if job.ClientID != requesterID {
		return nil, apperrors.ErrForbidden("job", "Only the job owner can change its status")
	}

	phase, ok := models.JobTransitionPhase(job.Status, newStatus)
	if !ok {
		return nil, apperrors.ErrInvalidState("job",
			"Cannot transition job from "+string(job.Status)+" to "+string(newStatus))
	}

	job.Status = newStatus
	job.CurrentStatus = phase
	if err := s.jobRepo.UpdateFields(ctx, job.ID, map[string]interface{}{
		"status":         newStatus,
		"current_status": phase,
	}); err != nil {
		return nil, apperrors.DependencyFailure("job", err)
	}
	return buildJobResponse(job), nil
}

// AdjustApplicationsCount applies delta to the counter, clamped at zero.
// Read-modify-write with no version check: concurrent adjustments can lose
// updates, a documented property of this counter.
func (s *JobService) AdjustApplicationsCount(ctx context.Context, jobID string, delta int) error {
	job, err := s.jobRepo.FindByID(ctx, jobID)
	if err != nil {
		return jobStoreError(err, "Job not found")
	}

	count := job.ApplicationsCount + delta
	if count < 0 {
		count = 0
	}
	if err := s.jobRepo.UpdateFields(ctx, jobID, map[string]interface{}{
		"applications_count": count,
	}); err != nil {
		return apperrors.DependencyFailure("job", err)
	}
	return nil
}

// IncrementViews bumps the view counter. Best-effort: view counts are not a
// consistency-critical metric, so failures are swallowed.
func (s *JobService) IncrementViews(ctx context.Context, jobID string) {
	job, err := s.jobRepo.FindByID(ctx, jobID)
	if err != nil {
		logger.Debug("view increment skipped", "job_id", jobID, "error", err)
		return
	}
	err = s.jobRepo.UpdateFields(ctx, jobID, map[string]interface{}{
		"views_count": job.ViewsCount + 1,
	})
	if err != nil {
		logger.Debug("view increment failed", "job_id", jobID, "error", err)
	}
}

func (s *JobService) Remove(ctx context.Context, jobID, requesterID string) error {
	job, err := s.jobRepo.FindByID(ctx, jobID)
	if err != nil {
		return jobStoreError(err, "Job not found")
	}
	if job.ClientID != requesterID {
		return apperrors.ErrForbidden("job", "Only the job owner can delete it")
	}
	if job.Status != models.JobStatusOpen {
		return apperrors.ErrInvalidState("job", "Only open jobs can be deleted")
	}

	if err := s.jobRepo.Delete(ctx, jobID); err != nil {
		return apperrors.DependencyFailure("job", err)
	}
	return nil
}

func (s *JobService) ListByClient(ctx context.Context, clientID, requesterID string) ([]*dto.JobResponse, error) {
	if clientID != requesterID {
		return nil, apperrors.ErrInsufficientPermissions
	}

	jobs, err := s.jobRepo.FindByClient(ctx, clientID)
	if err != nil {
		return nil, apperrors.DependencyFailure("job", err)
	}

	responses := make([]*dto.JobResponse, 0, len(jobs))
	for i := range jobs {
		responses = append(responses, buildJobResponse(&jobs[i]))
	}
	return responses, nil
}

func (s *JobService) ListOpen(ctx context.Context, page, limit int) (*dto.JobListResponse, error) {
	page, limit = clampPagination(page, limit)

	jobs, total, err := s.jobRepo.FindOpen(ctx, page, limit)
	if err != nil {
		return nil, apperrors.DependencyFailure("job", err)
	}

	responses := make([]*dto.JobResponse, 0, len(jobs))
	for i := range jobs {
		responses = append(responses, buildJobResponse(&jobs[i]))
	}
	return &dto.JobListResponse{Jobs: responses, Total: total, Page: page, Limit: limit}, nil
}

func buildJobResponse(job *models.Job) *dto.JobResponse {
	return &dto.JobResponse{
		ID:                job.ID,
		ClientID:          job.ClientID,
		Title:             job.Title,
		Description:       job.Description,
		Category:          job.Category,
		Location:          job.Location,
		BudgetMin:         job.BudgetMin,
		BudgetMax:         job.BudgetMax,
		StartDate:         job.StartDate,
		Status:            job.Status,
		CurrentStatus:     job.CurrentStatus,
		SelectedWorkerID:  job.SelectedWorkerID,
		ApplicationsCount: job.ApplicationsCount,
		ViewsCount:        job.ViewsCount,
		CreatedAt:         job.CreatedAt,
		UpdatedAt:         job.UpdatedAt,
	}
}

func jobStoreError(err error, notFoundMsg string) error {
	if errors.Is(err, store.ErrNotFound) {
		return apperrors.ErrNotFound(err, "job", notFoundMsg)
	}
	return apperrors.DependencyFailure("job", err)
}
