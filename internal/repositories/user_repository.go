package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/alikamatu/artisan-app-sub000/internal/models"
	"github.com/alikamatu/artisan-app-sub000/internal/store"
)

type UserRepository struct {
	store *store.Gateway
}

func NewUserRepository(gw *store.Gateway) *UserRepository {
	return &UserRepository{store: gw}
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	return r.store.Insert(ctx, user)
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := r.store.Get(ctx, &user, id); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.store.GetWhere(ctx, &user, store.Eq("email", email)); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateRatingCache writes the recomputed aggregate rating back onto the
// user's profile record.
func (r *UserRepository) UpdateRatingCache(ctx context.Context, userID string, rating float64, totalReviews int) error {
	return r.store.UpdateFields(ctx, &models.User{}, userID, map[string]interface{}{
		"rating":        rating,
		"total_reviews": totalReviews,
	})
}
