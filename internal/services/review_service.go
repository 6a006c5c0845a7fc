package services

import (
	"context"
	"encoding/json"
	"errors"
	"math"

	"gorm.io/datatypes"

	"github.com/alikamatu/artisan-app-sub000/internal/logger"
	"github.com/alikamatu/artisan-app-sub000/internal/models"
	"github.com/alikamatu/artisan-app-sub000/internal/repositories"
	"github.com/alikamatu/artisan-app-sub000/internal/services/dto"
	"github.com/alikamatu/artisan-app-sub000/internal/store"
	"github.com/alikamatu/artisan-app-sub000/pkg/apperrors"
)

// ReviewService owns review creation/eligibility and the worker's cached
// aggregate rating. The aggregate is recomputed from scratch on every review
// mutation: all public reviews are read, averaged, and written back onto the
// worker record. There is no locking against a concurrent recompute.
type ReviewService struct {
	reviewRepo  *repositories.ReviewRepository
	bookingRepo *repositories.BookingRepository
	userRepo    *repositories.UserRepository
	notifier    *NotificationService
}

func NewReviewService(
	reviewRepo *repositories.ReviewRepository,
	bookingRepo *repositories.BookingRepository,
	userRepo *repositories.UserRepository,
	notifier *NotificationService,
) *ReviewService {
	return &ReviewService{
		reviewRepo:  reviewRepo,
		bookingRepo: bookingRepo,
		userRepo:    userRepo,
		notifier:    notifier,
	}
}

// CanReview reports whether userID may review the booking, with the blocking
// reason when not.
func (s *ReviewService) CanReview(ctx context.Context, bookingID, userID string) (*dto.CanReviewResponse, error) {
	_, err := s.eligibleBooking(ctx, bookingID, userID)
	if err != nil {
		appErr, ok := apperrors.AsAppError(err)
		if ok && appErr.Code != apperrors.CodeDependencyFailure {
			return &dto.CanReviewResponse{Allowed: false, Reason: appErr.Message}, nil
		}
		return nil, err
	}
	return &dto.CanReviewResponse{Allowed: true}, nil
}

func (s *ReviewService) Create(ctx context.Context, reviewerID string, req *dto.CreateReviewRequest) (*dto.ReviewResponse, error) {
	booking, err := s.eligibleBooking(ctx, req.BookingID, reviewerID)
	if err != nil {
		return nil, err
	}

	if req.Rating < 1 || req.Rating > 5 {
		return nil, apperrors.ErrValidation("review", "Rating must be between 1 and 5")
	}
	for category, rating := range req.CategoryRatings {
		if rating < 1 || rating > 5 {
			return nil, apperrors.ErrValidation("review", "Category rating for "+category+" must be between 1 and 5")
		}
	}

	review := &models.Review{
		BookingID:  booking.ID,
		ReviewerID: reviewerID,
		RevieweeID: booking.WorkerID,
		Rating:     req.Rating,
		Comment:    req.Comment,
		IsPublic:   true,
	}
	if req.IsPublic != nil {
		review.IsPublic = *req.IsPublic
	}
	if len(req.CategoryRatings) > 0 {
		raw, err := json.Marshal(req.CategoryRatings)
		if err != nil {
			return nil, apperrors.ErrValidation("review", "Invalid category ratings")
		}
		review.CategoryRatings = datatypes.JSON(raw)
	}

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		// Unique index on booking_id: a concurrent create past the
		// eligibility check surfaces here as the already-reviewed case.
		if errors.Is(err, store.ErrDuplicate) {
			return nil, apperrors.ErrAlreadyExists(err, "review", "This booking is already reviewed")
		}
		return nil, apperrors.DependencyFailure("review", err)
	}

	s.RecomputeRating(ctx, booking.WorkerID)

	go s.notifier.ReviewReceived(context.Background(), booking.WorkerID, review.ID)

	return buildReviewResponse(review), nil
}

func (s *ReviewService) Update(ctx context.Context, reviewID, userID string, req *dto.UpdateReviewRequest) (*dto.ReviewResponse, error) {
	review, err := s.reviewRepo.FindByID(ctx, reviewID)
	if err != nil {
		return nil, reviewStoreError(err, "Review not found")
	}
	if review.ReviewerID != userID {
		return nil, apperrors.ErrForbidden("review", "Only the review author can update it")
	}

	affectsRating := false
	if req.Rating != nil {
		if *req.Rating < 1 || *req.Rating > 5 {
			return nil, apperrors.ErrValidation("review", "Rating must be between 1 and 5")
		}
		if *req.Rating != review.Rating {
			affectsRating = true
		}
		review.Rating = *req.Rating
	}
	if req.Comment != nil {
		review.Comment = *req.Comment
	}
	if req.IsPublic != nil && *req.IsPublic != review.IsPublic {
		review.IsPublic = *req.IsPublic
		affectsRating = true
	}

	if err := s.reviewRepo.Update(ctx, review); err != nil {
		return nil, apperrors.DependencyFailure("review", err)
	}

	if affectsRating {
		s.RecomputeRating(ctx, review.RevieweeID)
	}
	return buildReviewResponse(review), nil
}

func (s *ReviewService) Delete(ctx context.Context, reviewID, userID string) error {
	review, err := s.reviewRepo.FindByID(ctx, reviewID)
	if err != nil {
		return reviewStoreError(err, "Review not found")
	}
	if review.ReviewerID != userID {
		return apperrors.ErrForbidden("review", "Only the review author can delete it")
	}

	if err := s.reviewRepo.Delete(ctx, reviewID); err != nil {
		return apperrors.DependencyFailure("review", err)
	}

	s.RecomputeRating(ctx, review.RevieweeID)
	return nil
}

func (s *ReviewService) Get(ctx context.Context, reviewID string) (*dto.ReviewResponse, error) {
	review, err := s.reviewRepo.FindByID(ctx, reviewID)
	if err != nil {
		return nil, reviewStoreError(err, "Review not found")
	}
	return buildReviewResponse(review), nil
}

func (s *ReviewService) ListByWorker(ctx context.Context, workerID string, page, limit int) (*dto.ReviewListResponse, error) {
	page, limit = clampPagination(page, limit)

	reviews, total, err := s.reviewRepo.FindByRevieweePaginated(ctx, workerID, page, limit)
	if err != nil {
		return nil, apperrors.DependencyFailure("review", err)
	}

	responses := make([]*dto.ReviewResponse, 0, len(reviews))
	for i := range reviews {
		responses = append(responses, buildReviewResponse(&reviews[i]))
	}
	return &dto.ReviewListResponse{Reviews: responses, Total: total, Page: page, Limit: limit}, nil
}

func (s *ReviewService) GetWorkerRating(ctx context.Context, workerID string) (*dto.RatingResponse, error) {
	worker, err := s.userRepo.FindByID(ctx, workerID)
	if err != nil {
		return nil, reviewStoreError(err, "Worker not found")
	}
	return &dto.RatingResponse{Rating: worker.Rating, TotalReviews: worker.TotalReviews}, nil
}

// RecomputeRating reads every public review of the worker, averages the
// ratings rounded to one decimal, and writes the result onto the worker's
// cached profile fields. A failure leaves the cache stale; the next
// mutation's recompute repairs it.
func (s *ReviewService) RecomputeRating(ctx context.Context, workerID string) {
	reviews, err := s.reviewRepo.FindPublicByReviewee(ctx, workerID)
	if err != nil {
		logger.Error("rating recompute read failed", "worker_id", workerID, "error", err)
		return
	}

	var rating float64
	if len(reviews) > 0 {
		var sum int
		for i := range reviews {
			sum += reviews[i].Rating
		}
		rating = math.Round(float64(sum)/float64(len(reviews))*10) / 10
	}

	if err := s.userRepo.UpdateRatingCache(ctx, workerID, rating, len(reviews)); err != nil {
		logger.Error("rating recompute write failed", "worker_id", workerID, "error", err)
	}
}

// eligibleBooking loads the booking and applies every review precondition:
// the caller is its client, it is completed, and it has no review yet.
func (s *ReviewService) eligibleBooking(ctx context.Context, bookingID, userID string) (*models.Booking, error) {
	booking, err := s.bookingRepo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, reviewStoreError(err, "Booking not found")
	}
	if booking.ClientID != userID {
		return nil, apperrors.ErrForbidden("review", "Only the booking's client can review it")
	}
	if booking.Status != models.BookingStatusCompleted {
		return nil, apperrors.ErrInvalidState("review", "Booking is not completed")
	}

	if _, err := s.reviewRepo.FindByBooking(ctx, bookingID); err == nil {
		return nil, apperrors.ErrAlreadyExists(nil, "review", "This booking is already reviewed")
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, apperrors.DependencyFailure("review", err)
	}
	return booking, nil
}

func buildReviewResponse(review *models.Review) *dto.ReviewResponse {
	resp := &dto.ReviewResponse{
		ID:         review.ID,
		BookingID:  review.BookingID,
		ReviewerID: review.ReviewerID,
		RevieweeID: review.RevieweeID,
		Rating:     review.Rating,
		Comment:    review.Comment,
		IsPublic:   review.IsPublic,
		CreatedAt:  review.CreatedAt,
		UpdatedAt:  review.UpdatedAt,
	}
	if len(review.CategoryRatings) > 0 {
		var categories map[string]int
		if err := json.Unmarshal(review.CategoryRatings, &categories); err == nil {
			resp.CategoryRatings = categories
		}
	}
	return resp
}

func reviewStoreError(err error, notFoundMsg string) error {
	if errors.Is(err, store.ErrNotFound) {
		return apperrors.ErrNotFound(err, "review", notFoundMsg)
	}
	return apperrors.DependencyFailure("review", err)
}
