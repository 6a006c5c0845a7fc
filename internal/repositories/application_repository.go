package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/alikamatu/artisan-app-sub000/internal/models"
	"github.com/alikamatu/artisan-app-sub000/internal/store"
)

type ApplicationRepository struct {
	store *store.Gateway
}

func NewApplicationRepository(gw *store.Gateway) *ApplicationRepository {
	return &ApplicationRepository{store: gw}
}

// ApplicationListCriteria narrows and orders an application listing. Exactly
// one of JobID / WorkerID / JobIDs is normally set.
type ApplicationListCriteria struct {
	JobID    string
	WorkerID string
	JobIDs   []string
	Status   models.ApplicationStatus
	Page     int
	Limit    int
	SortBy   string // created_at | proposed_budget
	Desc     bool
}

func (r *ApplicationRepository) Create(ctx context.Context, app *models.Application) error {
	if app.ID == "" {
		app.ID = uuid.NewString()
	}
	return r.store.Insert(ctx, app)
}

func (r *ApplicationRepository) FindByID(ctx context.Context, id string) (*models.Application, error) {
	var app models.Application
	if err := r.store.Get(ctx, &app, id); err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *ApplicationRepository) Update(ctx context.Context, app *models.Application) error {
	return r.store.Update(ctx, app)
}

func (r *ApplicationRepository) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error {
	return r.store.UpdateFields(ctx, &models.Application{}, id, fields)
}

// FindActiveByJobAndWorker returns the worker's non-withdrawn application
// for the job, if any. Backs the per-pair uniqueness pre-check in submit.
func (r *ApplicationRepository) FindActiveByJobAndWorker(ctx context.Context, jobID, workerID string) (*models.Application, error) {
	var app models.Application
	err := r.store.GetWhere(ctx, &app,
		store.Eq("job_id", jobID),
		store.Eq("worker_id", workerID),
		store.Neq("status", models.ApplicationStatusWithdrawn),
	)
	if err != nil {
		return nil, err
	}
	return &app, nil
}

// FindPendingSiblings returns every pending application on the job other
// than exceptID. Feeds the accept cascade.
func (r *ApplicationRepository) FindPendingSiblings(ctx context.Context, jobID, exceptID string) ([]models.Application, error) {
	var apps []models.Application
	_, err := r.store.List(ctx, &apps, store.ListOptions{
		Filters: []store.Filter{
			store.Eq("job_id", jobID),
			store.Eq("status", models.ApplicationStatusPending),
			store.Neq("id", exceptID),
		},
	})
	return apps, err
}

func (r *ApplicationRepository) List(ctx context.Context, criteria ApplicationListCriteria) ([]models.Application, int64, error) {
	var filters []store.Filter
	if criteria.JobID != "" {
		filters = append(filters, store.Eq("job_id", criteria.JobID))
	}
	if criteria.WorkerID != "" {
		filters = append(filters, store.Eq("worker_id", criteria.WorkerID))
	}
	if len(criteria.JobIDs) > 0 {
		filters = append(filters, store.In("job_id", criteria.JobIDs))
	}
	if criteria.Status != "" {
		filters = append(filters, store.Eq("status", criteria.Status))
	}

	var apps []models.Application
	total, err := r.store.List(ctx, &apps, store.ListOptions{
		Filters: filters,
		SortBy:  criteria.SortBy,
		Desc:    criteria.Desc,
		Page:    criteria.Page,
		Limit:   criteria.Limit,
	})
	return apps, total, err
}
