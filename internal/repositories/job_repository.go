package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/alikamatu/artisan-app-sub000/internal/models"
	"github.com/alikamatu/artisan-app-sub000/internal/store"
)

type JobRepository struct {
	store *store.Gateway
}

func NewJobRepository(gw *store.Gateway) *JobRepository {
	return &JobRepository{store: gw}
}

func (r *JobRepository) Create(ctx context.Context, job *models.Job) error {
	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	return r.store.Insert(ctx, job)
}

func (r *JobRepository) FindByID(ctx context.Context, id string) (*models.Job, error) {
	var job models.Job
	if err := r.store.Get(ctx, &job, id); err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *JobRepository) Update(ctx context.Context, job *models.Job) error {
	return r.store.Update(ctx, job)
}

func (r *JobRepository) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error {
	return r.store.UpdateFields(ctx, &models.Job{}, id, fields)
}

func (r *JobRepository) Delete(ctx context.Context, id string) error {
	return r.store.Delete(ctx, &models.Job{}, id)
}

func (r *JobRepository) FindByClient(ctx context.Context, clientID string) ([]models.Job, error) {
	var jobs []models.Job
	_, err := r.store.List(ctx, &jobs, store.ListOptions{
		Filters: []store.Filter{store.Eq("client_id", clientID)},
		SortBy:  "created_at",
		Desc:    true,
	})
	return jobs, err
}

func (r *JobRepository) FindOpen(ctx context.Context, page, limit int) ([]models.Job, int64, error) {
	var jobs []models.Job
	total, err := r.store.List(ctx, &jobs, store.ListOptions{
		Filters: []store.Filter{store.Eq("status", models.JobStatusOpen)},
		SortBy:  "created_at",
		Desc:    true,
		Page:    page,
		Limit:   limit,
	})
	return jobs, total, err
}
