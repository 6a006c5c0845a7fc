package dto

import (
	"time"

	"github.com/alikamatu/artisan-app-sub000/internal/models"
)

type SubmitApplicationRequest struct {
	JobID          string    `json:"job_id" validate:"required"`
	ProposedBudget float64   `json:"proposed_budget" validate:"required,gt=0"`
	CoverLetter    string    `json:"cover_letter" validate:"max=5000"`
	AvailableFrom  time.Time `json:"available_from" validate:"required"`
}

type RejectApplicationRequest struct {
	Reason *string `json:"reason" validate:"omitempty,max=500"`
}

// ApplicationListQuery is the common pagination/sort surface for application
// listings. Page defaults to 1, limit is clamped to [1,50] by the service.
type ApplicationListQuery struct {
	Page   int    `form:"page" json:"page"`
	Limit  int    `form:"limit" json:"limit"`
	SortBy string `form:"sort_by" json:"sort_by" validate:"omitempty,oneof=created_at proposed_budget"`
	Order  string `form:"order" json:"order" validate:"omitempty,oneof=asc desc"`
}

type ApplicationResponse struct {
	ID              string                   `json:"id"`
	JobID           string                   `json:"job_id"`
	WorkerID        string                   `json:"worker_id"`
	ProposedBudget  float64                  `json:"proposed_budget"`
	CoverLetter     string                   `json:"cover_letter"`
	AvailableFrom   time.Time                `json:"available_from"`
	Status          models.ApplicationStatus `json:"status"`
	BookingID       *string                  `json:"booking_id"`
	RejectionReason *string                  `json:"rejection_reason"`
	CreatedAt       time.Time                `json:"created_at"`
	UpdatedAt       time.Time                `json:"updated_at"`
}

type ApplicationListResponse struct {
	Applications []*ApplicationResponse `json:"applications"`
	Total        int64                  `json:"total"`
	Page         int                    `json:"page"`
	Limit        int                    `json:"limit"`
}
