package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/alikamatu/artisan-app-sub000/internal/models"
	"github.com/alikamatu/artisan-app-sub000/internal/store"
)

type ReviewRepository struct {
	store *store.Gateway
}

func NewReviewRepository(gw *store.Gateway) *ReviewRepository {
	return &ReviewRepository{store: gw}
}

func (r *ReviewRepository) Create(ctx context.Context, review *models.Review) error {
	if review.ID == "" {
		review.ID = uuid.NewString()
	}
	return r.store.Insert(ctx, review)
}

func (r *ReviewRepository) FindByID(ctx context.Context, id string) (*models.Review, error) {
	var review models.Review
	if err := r.store.Get(ctx, &review, id); err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *ReviewRepository) FindByBooking(ctx context.Context, bookingID string) (*models.Review, error) {
	var review models.Review
	if err := r.store.GetWhere(ctx, &review, store.Eq("booking_id", bookingID)); err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *ReviewRepository) Update(ctx context.Context, review *models.Review) error {
	return r.store.Update(ctx, review)
}

func (r *ReviewRepository) Delete(ctx context.Context, id string) error {
	return r.store.Delete(ctx, &models.Review{}, id)
}

// FindPublicByReviewee returns every public review of the worker; the rating
// recompute reads all of them on each pass.
func (r *ReviewRepository) FindPublicByReviewee(ctx context.Context, revieweeID string) ([]models.Review, error) {
	var reviews []models.Review
	_, err := r.store.List(ctx, &reviews, store.ListOptions{
		Filters: []store.Filter{
			store.Eq("reviewee_id", revieweeID),
			store.Eq("is_public", true),
		},
	})
	return reviews, err
}

func (r *ReviewRepository) FindByRevieweePaginated(ctx context.Context, revieweeID string, page, limit int) ([]models.Review, int64, error) {
	var reviews []models.Review
	total, err := r.store.List(ctx, &reviews, store.ListOptions{
		Filters: []store.Filter{
			store.Eq("reviewee_id", revieweeID),
			store.Eq("is_public", true),
		},
		SortBy: "created_at",
		Desc:   true,
		Page:   page,
		Limit:  limit,
	})
	return reviews, total, err
}
