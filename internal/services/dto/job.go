package dto

import (
	"time"

	"github.com/alikamatu/artisan-app-sub000/internal/models"
)

type CreateJobRequest struct {
	Title       string     `json:"title" validate:"required,min=3,max=200"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Location    string     `json:"location"`
	BudgetMin   float64    `json:"budget_min" validate:"gte=0"`
	BudgetMax   float64    `json:"budget_max" validate:"gte=0"`
	StartDate   *time.Time `json:"start_date"`
}

type TransitionJobRequest struct {
	Status string `json:"status" validate:"required,oneof=open in_progress completed cancelled"`
}

type JobResponse struct {
	ID                string           `json:"id"`
	ClientID          string           `json:"client_id"`
	Title             string           `json:"title"`
	Description       string           `json:"description"`
	Category          string           `json:"category"`
	Location          string           `json:"location"`
	BudgetMin         float64          `json:"budget_min"`
	BudgetMax         float64          `json:"budget_max"`
	StartDate         *time.Time       `json:"start_date"`
	Status            models.JobStatus `json:"status"`
	CurrentStatus     models.JobPhase  `json:"current_status"`
	SelectedWorkerID  *string          `json:"selected_worker_id"`
	ApplicationsCount int              `json:"applications_count"`
	ViewsCount        int              `json:"views_count"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

type JobListResponse struct {
	Jobs  []*JobResponse `json:"jobs"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}
