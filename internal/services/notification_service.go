package services

import (
	"context"
	"encoding/json"
	"errors"

	"gorm.io/datatypes"

	"github.com/alikamatu/artisan-app-sub000/internal/logger"
	"github.com/alikamatu/artisan-app-sub000/internal/models"
	"github.com/alikamatu/artisan-app-sub000/internal/repositories"
	"github.com/alikamatu/artisan-app-sub000/internal/store"
	"github.com/alikamatu/artisan-app-sub000/pkg/apperrors"
)

// NotificationService records notifications for users. Every call is
// fire-and-forget from the orchestration's point of view: failures are
// logged and never surfaced, so a notification error can never roll back a
// state change that already committed.
type NotificationService struct {
	notificationRepo *repositories.NotificationRepository
}

func NewNotificationService(notificationRepo *repositories.NotificationRepository) *NotificationService {
	return &NotificationService{notificationRepo: notificationRepo}
}

func (s *NotificationService) notify(ctx context.Context, userID, kind, title, message string, data map[string]string) {
	var payload datatypes.JSON
	if data != nil {
		raw, err := json.Marshal(data)
		if err == nil {
			payload = datatypes.JSON(raw)
		}
	}

	n := &models.Notification{
		UserID:  userID,
		Type:    kind,
		Title:   title,
		Message: message,
		Data:    payload,
	}
	if err := s.notificationRepo.Create(ctx, n); err != nil {
		logger.Warn("notification write failed", "type", kind, "user_id", userID, "error", err)
	}
}

func (s *NotificationService) ApplicationSubmitted(ctx context.Context, clientID, jobID, applicationID string) {
	s.notify(ctx, clientID, models.NotificationTypeNewApplication,
		"New application", "A worker applied to your job",
		map[string]string{"job_id": jobID, "application_id": applicationID})
}

func (s *NotificationService) ApplicationStatusChanged(ctx context.Context, workerID, applicationID string, status models.ApplicationStatus) {
	s.notify(ctx, workerID, models.NotificationTypeApplicationStatus,
		"Application "+string(status), "The status of your application changed",
		map[string]string{"application_id": applicationID, "status": string(status)})
}

func (s *NotificationService) BookingCreated(ctx context.Context, workerID, bookingID string) {
	s.notify(ctx, workerID, models.NotificationTypeBookingCreated,
		"Booking created", "A booking was created for your accepted application",
		map[string]string{"booking_id": bookingID})
}

func (s *NotificationService) BookingStatusChanged(ctx context.Context, userID, bookingID string, status models.BookingStatus) {
	s.notify(ctx, userID, models.NotificationTypeBookingStatus,
		"Booking "+string(status), "The status of your booking changed",
		map[string]string{"booking_id": bookingID, "status": string(status)})
}

func (s *NotificationService) ReviewReceived(ctx context.Context, workerID, reviewID string) {
	s.notify(ctx, workerID, models.NotificationTypeNewReview,
		"New review", "A client reviewed your work",
		map[string]string{"review_id": reviewID})
}

func (s *NotificationService) ListForUser(ctx context.Context, userID string, page, limit int) ([]models.Notification, int64, error) {
	page, limit = clampPagination(page, limit)
	return s.notificationRepo.FindByUser(ctx, userID, page, limit)
}

func (s *NotificationService) MarkAsRead(ctx context.Context, id string) error {
	if err := s.notificationRepo.MarkAsRead(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperrors.ErrNotFound(err, "notification", "Notification not found")
		}
		return apperrors.DependencyFailure("notification", err)
	}
	return nil
}
