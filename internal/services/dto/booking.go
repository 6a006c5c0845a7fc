package dto

import (
	"time"

	"github.com/alikamatu/artisan-app-sub000/internal/models"
)

type MilestoneInput struct {
	Description string     `json:"description" validate:"required,max=500"`
	Amount      float64    `json:"amount" validate:"required,gt=0"`
	DueDate     *time.Time `json:"due_date"`
}

type CreateBookingRequest struct {
	ApplicationID          string           `json:"application_id" validate:"required"`
	StartDate              time.Time        `json:"start_date" validate:"required"`
	ExpectedCompletionDate time.Time        `json:"expected_completion_date" validate:"required"`
	FinalBudget            float64          `json:"final_budget" validate:"required,gt=0"`
	Milestones             []MilestoneInput `json:"milestones" validate:"omitempty,dive"`
}

type UpdateBookingRequest struct {
	Status                 *string    `json:"status" validate:"omitempty,oneof=active completed cancelled disputed"`
	ExpectedCompletionDate *time.Time `json:"expected_completion_date"`
}

type CompleteBookingRequest struct {
	CompletionProof *string `json:"completion_proof" validate:"omitempty,max=2000"`
}

type CancelBookingRequest struct {
	Reason *string `json:"reason" validate:"omitempty,max=500"`
}

type MilestoneResponse struct {
	ID          string                 `json:"id"`
	Description string                 `json:"description"`
	Amount      float64                `json:"amount"`
	DueDate     *time.Time             `json:"due_date"`
	Status      models.MilestoneStatus `json:"status"`
}

type BookingResponse struct {
	ID                     string               `json:"id"`
	ApplicationID          string               `json:"application_id"`
	JobID                  string               `json:"job_id"`
	ClientID               string               `json:"client_id"`
	WorkerID               string               `json:"worker_id"`
	Status                 models.BookingStatus `json:"status"`
	StartDate              time.Time            `json:"start_date"`
	ExpectedCompletionDate time.Time            `json:"expected_completion_date"`
	ActualCompletionDate   *time.Time           `json:"actual_completion_date"`
	FinalBudget            float64              `json:"final_budget"`
	CompletionProof        *string              `json:"completion_proof"`
	CancellationReason     *string              `json:"cancellation_reason"`
	Milestones             []MilestoneResponse  `json:"milestones,omitempty"`
	CreatedAt              time.Time            `json:"created_at"`
	UpdatedAt              time.Time            `json:"updated_at"`
}

type BookingListResponse struct {
	Bookings []*BookingResponse `json:"bookings"`
	Total    int64              `json:"total"`
	Page     int                `json:"page"`
	Limit    int                `json:"limit"`
}
