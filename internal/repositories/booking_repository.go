package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/alikamatu/artisan-app-sub000/internal/models"
	"github.com/alikamatu/artisan-app-sub000/internal/store"
)

type BookingRepository struct {
	store *store.Gateway
}

func NewBookingRepository(gw *store.Gateway) *BookingRepository {
	return &BookingRepository{store: gw}
}

func (r *BookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	if booking.ID == "" {
		booking.ID = uuid.NewString()
	}
	return r.store.Insert(ctx, booking)
}

func (r *BookingRepository) FindByID(ctx context.Context, id string) (*models.Booking, error) {
	var booking models.Booking
	if err := r.store.Get(ctx, &booking, id); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *BookingRepository) FindByApplication(ctx context.Context, applicationID string) (*models.Booking, error) {
	var booking models.Booking
	if err := r.store.GetWhere(ctx, &booking, store.Eq("application_id", applicationID)); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *BookingRepository) Update(ctx context.Context, booking *models.Booking) error {
	return r.store.Update(ctx, booking)
}

func (r *BookingRepository) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error {
	return r.store.UpdateFields(ctx, &models.Booking{}, id, fields)
}

// FindByParticipant lists bookings where the user is either side.
func (r *BookingRepository) FindByParticipant(ctx context.Context, userID string, page, limit int) ([]models.Booking, int64, error) {
	var asClient []models.Booking
	_, err := r.store.List(ctx, &asClient, store.ListOptions{
		Filters: []store.Filter{store.Eq("client_id", userID)},
	})
	if err != nil {
		return nil, 0, err
	}

	var asWorker []models.Booking
	_, err = r.store.List(ctx, &asWorker, store.ListOptions{
		Filters: []store.Filter{store.Eq("worker_id", userID)},
	})
	if err != nil {
		return nil, 0, err
	}

	// Two single-collection reads merged in memory; the store offers no OR
	// filter.
	merged := append(asClient, asWorker...)
	total := int64(len(merged))

	if page > 0 && limit > 0 {
		start := (page - 1) * limit
		end := start + limit
		if start > len(merged) {
			start = len(merged)
		}
		if end > len(merged) {
			end = len(merged)
		}
		merged = merged[start:end]
	}
	return merged, total, nil
}

func (r *BookingRepository) CreateMilestone(ctx context.Context, m *models.Milestone) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return r.store.Insert(ctx, m)
}

func (r *BookingRepository) FindMilestones(ctx context.Context, bookingID string) ([]models.Milestone, error) {
	var milestones []models.Milestone
	_, err := r.store.List(ctx, &milestones, store.ListOptions{
		Filters: []store.Filter{store.Eq("booking_id", bookingID)},
		SortBy:  "created_at",
	})
	return milestones, err
}
