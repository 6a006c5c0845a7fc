package services

import (
	"context"
	"errors"
	"time"

	"github.com/alikamatu/artisan-app-sub000/internal/logger"
	"github.com/alikamatu/artisan-app-sub000/internal/models"
	"github.com/alikamatu/artisan-app-sub000/internal/repositories"
	"github.com/alikamatu/artisan-app-sub000/internal/services/dto"
	"github.com/alikamatu/artisan-app-sub000/internal/store"
	"github.com/alikamatu/artisan-app-sub000/pkg/apperrors"
)

// BookingService owns booking status and milestone line items. Booking
// creation and the completed/cancelled paths also flip the parent job; those
// job writes are secondary steps of an already-committed booking write.
type BookingService struct {
	bookingRepo     *repositories.BookingRepository
	applicationRepo *repositories.ApplicationRepository
	jobRepo         *repositories.JobRepository
	notifier        *NotificationService
}

func NewBookingService(
	bookingRepo *repositories.BookingRepository,
	applicationRepo *repositories.ApplicationRepository,
	jobRepo *repositories.JobRepository,
	notifier *NotificationService,
) *BookingService {
	return &BookingService{
		bookingRepo:     bookingRepo,
		applicationRepo: applicationRepo,
		jobRepo:         jobRepo,
		notifier:        notifier,
	}
}

func (s *BookingService) Create(ctx context.Context, clientID string, req *dto.CreateBookingRequest) (*dto.BookingResponse, error) {
	app, err := s.applicationRepo.FindByID(ctx, req.ApplicationID)
	if err != nil {
		return nil, bookingStoreError(err, "Application not found")
	}
	if app.Status != models.ApplicationStatusAccepted {
		return nil, apperrors.ErrInvalidState("booking", "Bookings can only be created from accepted applications")
	}

	job, err := s.jobRepo.FindByID(ctx, app.JobID)
	if err != nil {
		return nil, bookingStoreError(err, "Job not found")
	}
	if job.ClientID != clientID {
		return nil, apperrors.ErrForbidden("booking", "Only the job owner can create a booking")
	}

	if _, err := s.bookingRepo.FindByApplication(ctx, app.ID); err == nil {
		return nil, apperrors.ErrAlreadyExists(nil, "booking", "A booking already exists for this application")
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, apperrors.DependencyFailure("booking", err)
	}

	if beforeToday(req.StartDate) {
		return nil, apperrors.ErrValidation("booking", "Start date cannot be in the past")
	}
	if !req.ExpectedCompletionDate.After(req.StartDate) {
		return nil, apperrors.ErrValidation("booking", "Expected completion date must be after the start date")
	}

	var milestoneSum float64
	for _, m := range req.Milestones {
		milestoneSum += m.Amount
	}
	if milestoneSum > req.FinalBudget {
		return nil, apperrors.ErrValidation("booking", "Milestone amounts cannot exceed the final budget")
	}

	booking := &models.Booking{
		ApplicationID:          app.ID,
		JobID:                  job.ID,
		ClientID:               clientID,
		WorkerID:               app.WorkerID,
		Status:                 models.BookingStatusActive,
		StartDate:              req.StartDate,
		ExpectedCompletionDate: req.ExpectedCompletionDate,
		FinalBudget:            req.FinalBudget,
	}
	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		// The unique index on application_id catches the insert that lost a
		// concurrent race past the existence check above.
		if errors.Is(err, store.ErrDuplicate) {
			return nil, apperrors.ErrAlreadyExists(err, "booking", "A booking already exists for this application")
		}
		return nil, apperrors.DependencyFailure("booking", err)
	}

	// Secondary steps. The booking exists from here on; failures below leave
	// the catalogued inconsistencies rather than rolling it back.
	if err := s.applicationRepo.UpdateFields(ctx, app.ID, map[string]interface{}{
		"booking_id": booking.ID,
	}); err != nil {
		logger.Error("application booking_id update failed", "application_id", app.ID, "booking_id", booking.ID, "error", err)
	}

	if err := s.jobRepo.UpdateFields(ctx, job.ID, map[string]interface{}{
		"status":         models.JobStatusInProgress,
		"current_status": models.JobPhaseBooked,
	}); err != nil {
		logger.Error("job update failed after booking create", "job_id", job.ID, "booking_id", booking.ID, "error", err)
	}

	for _, m := range req.Milestones {
		milestone := &models.Milestone{
			BookingID:   booking.ID,
			Description: m.Description,
			Amount:      m.Amount,
			DueDate:     m.DueDate,
			Status:      models.MilestoneStatusPending,
		}
		if err := s.bookingRepo.CreateMilestone(ctx, milestone); err != nil {
			logger.Error("milestone insert failed", "booking_id", booking.ID, "error", err)
			continue
		}
		booking.Milestones = append(booking.Milestones, *milestone)
	}

	go s.notifier.BookingCreated(context.Background(), booking.WorkerID, booking.ID)

	return buildBookingResponse(booking), nil
}

func (s *BookingService) Update(ctx context.Context, bookingID, requesterID string, req *dto.UpdateBookingRequest) (*dto.BookingResponse, error) {
	booking, err := s.bookingRepo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, bookingStoreError(err, "Booking not found")
	}
	if requesterID != booking.ClientID && requesterID != booking.WorkerID {
		return nil, apperrors.ErrForbidden("booking", "Only booking participants can update it")
	}

	fields := map[string]interface{}{}

	if req.Status != nil {
		newStatus := models.BookingStatus(*req.Status)
		if !models.CanBookingTransition(booking.Status, newStatus) {
			return nil, apperrors.ErrInvalidState("booking",
				"Cannot transition booking from "+string(booking.Status)+" to "+string(newStatus))
		}
		booking.Status = newStatus
		fields["status"] = newStatus
	}

	if req.ExpectedCompletionDate != nil {
		if !req.ExpectedCompletionDate.After(booking.StartDate) {
			return nil, apperrors.ErrValidation("booking", "Expected completion date must be after the start date")
		}
		booking.ExpectedCompletionDate = *req.ExpectedCompletionDate
		fields["expected_completion_date"] = *req.ExpectedCompletionDate
	}

	if len(fields) == 0 {
		return buildBookingResponse(booking), nil
	}

	if err := s.bookingRepo.UpdateFields(ctx, booking.ID, fields); err != nil {
		return nil, apperrors.DependencyFailure("booking", err)
	}

	if req.Status != nil {
		go s.notifier.BookingStatusChanged(context.Background(), otherParticipant(booking, requesterID), booking.ID, booking.Status)
	}
	return buildBookingResponse(booking), nil
}

func (s *BookingService) MarkCompleted(ctx context.Context, bookingID, clientID string, completionProof *string) (*dto.BookingResponse, error) {
	booking, err := s.bookingRepo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, bookingStoreError(err, "Booking not found")
	}
	if booking.ClientID != clientID {
		return nil, apperrors.ErrForbidden("booking", "Only the booking's client can mark it completed")
	}
	if booking.Status != models.BookingStatusActive {
		return nil, apperrors.ErrInvalidState("booking", "Only active bookings can be marked completed")
	}

	now := time.Now()
	fields := map[string]interface{}{
		"status":                 models.BookingStatusCompleted,
		"actual_completion_date": now,
	}
	if completionProof != nil {
		fields["completion_proof"] = *completionProof
	}
	if err := s.bookingRepo.UpdateFields(ctx, booking.ID, fields); err != nil {
		return nil, apperrors.DependencyFailure("booking", err)
	}
	booking.Status = models.BookingStatusCompleted
	booking.ActualCompletionDate = &now
	booking.CompletionProof = completionProof

	if err := s.jobRepo.UpdateFields(ctx, booking.JobID, map[string]interface{}{
		"status":         models.JobStatusCompleted,
		"current_status": models.JobPhaseCompleted,
	}); err != nil {
		logger.Error("job update failed after booking completion", "job_id", booking.JobID, "booking_id", booking.ID, "error", err)
	}

	go s.notifier.BookingStatusChanged(context.Background(), booking.WorkerID, booking.ID, models.BookingStatusCompleted)

	return buildBookingResponse(booking), nil
}

// Cancel voids an active booking and reopens the parent job so it can
// accept new applications. The cancelled engagement's own application stays
// non-withdrawn, so the same worker remains blocked from re-applying until
// the client rejects it.
func (s *BookingService) Cancel(ctx context.Context, bookingID, requesterID string, reason *string) (*dto.BookingResponse, error) {
	booking, err := s.bookingRepo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, bookingStoreError(err, "Booking not found")
	}
	if requesterID != booking.ClientID && requesterID != booking.WorkerID {
		return nil, apperrors.ErrForbidden("booking", "Only booking participants can cancel it")
	}
	if booking.Status != models.BookingStatusActive {
		return nil, apperrors.ErrInvalidState("booking", "Only active bookings can be cancelled")
	}

	fields := map[string]interface{}{"status": models.BookingStatusCancelled}
	if reason != nil {
		fields["cancellation_reason"] = *reason
	}
	if err := s.bookingRepo.UpdateFields(ctx, booking.ID, fields); err != nil {
		return nil, apperrors.DependencyFailure("booking", err)
	}
	booking.Status = models.BookingStatusCancelled
	booking.CancellationReason = reason

	if err := s.jobRepo.UpdateFields(ctx, booking.JobID, map[string]interface{}{
		"status":             models.JobStatusOpen,
		"current_status":     models.JobPhaseOpen,
		"selected_worker_id": nil,
	}); err != nil {
		logger.Error("job reopen failed after booking cancellation", "job_id", booking.JobID, "booking_id", booking.ID, "error", err)
	}

	go s.notifier.BookingStatusChanged(context.Background(), otherParticipant(booking, requesterID), booking.ID, models.BookingStatusCancelled)

	return buildBookingResponse(booking), nil
}

func (s *BookingService) Get(ctx context.Context, bookingID, requesterID string) (*dto.BookingResponse, error) {
	booking, err := s.bookingRepo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, bookingStoreError(err, "Booking not found")
	}
	if requesterID != booking.ClientID && requesterID != booking.WorkerID {
		return nil, apperrors.ErrInsufficientPermissions
	}

	milestones, err := s.bookingRepo.FindMilestones(ctx, booking.ID)
	if err == nil {
		booking.Milestones = milestones
	}
	return buildBookingResponse(booking), nil
}

func (s *BookingService) ListForUser(ctx context.Context, userID string, page, limit int) (*dto.BookingListResponse, error) {
	page, limit = clampPagination(page, limit)

	bookings, total, err := s.bookingRepo.FindByParticipant(ctx, userID, page, limit)
	if err != nil {
		return nil, apperrors.DependencyFailure("booking", err)
	}

	responses := make([]*dto.BookingResponse, 0, len(bookings))
	for i := range bookings {
		responses = append(responses, buildBookingResponse(&bookings[i]))
	}
	return &dto.BookingListResponse{Bookings: responses, Total: total, Page: page, Limit: limit}, nil
}

func otherParticipant(booking *models.Booking, userID string) string {
	if userID == booking.ClientID {
		return booking.WorkerID
	}
	return booking.ClientID
}

func buildBookingResponse(booking *models.Booking) *dto.BookingResponse {
	resp := &dto.BookingResponse{
		ID:                     booking.ID,
		ApplicationID:          booking.ApplicationID,
		JobID:                  booking.JobID,
		ClientID:               booking.ClientID,
		WorkerID:               booking.WorkerID,
		Status:                 booking.Status,
		StartDate:              booking.StartDate,
		ExpectedCompletionDate: booking.ExpectedCompletionDate,
		ActualCompletionDate:   booking.ActualCompletionDate,
		FinalBudget:            booking.FinalBudget,
		CompletionProof:        booking.CompletionProof,
		CancellationReason:     booking.CancellationReason,
		CreatedAt:              booking.CreatedAt,
		UpdatedAt:              booking.UpdatedAt,
	}
	for _, m := range booking.Milestones {
		resp.Milestones = append(resp.Milestones, dto.MilestoneResponse{
			ID:          m.ID,
			Description: m.Description,
			Amount:      m.Amount,
			DueDate:     m.DueDate,
			Status:      m.Status,
		})
	}
	return resp
}

func bookingStoreError(err error, notFoundMsg string) error {
	if errors.Is(err, store.ErrNotFound) {
		return apperrors.ErrNotFound(err, "booking", notFoundMsg)
	}
	return apperrors.DependencyFailure("booking", err)
}
