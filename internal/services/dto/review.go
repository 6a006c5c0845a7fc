package dto

import "time"

type CreateReviewRequest struct {
	BookingID       string         `json:"booking_id" validate:"required"`
	Rating          int            `json:"rating" validate:"required,min=1,max=5"`
	Comment         string         `json:"comment" validate:"max=2000"`
	CategoryRatings map[string]int `json:"category_ratings"`
	IsPublic        *bool          `json:"is_public"`
}

type UpdateReviewRequest struct {
	Rating   *int    `json:"rating" validate:"omitempty,min=1,max=5"`
	Comment  *string `json:"comment" validate:"omitempty,max=2000"`
	IsPublic *bool   `json:"is_public"`
}

type CanReviewResponse struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason,omitempty"`
}

type ReviewResponse struct {
	ID              string         `json:"id"`
	BookingID       string         `json:"booking_id"`
	ReviewerID      string         `json:"reviewer_id"`
	RevieweeID      string         `json:"reviewee_id"`
	Rating          int            `json:"rating"`
	Comment         string         `json:"comment"`
	CategoryRatings map[string]int `json:"category_ratings,omitempty"`
	IsPublic        bool           `json:"is_public"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

type ReviewListResponse struct {
	Reviews []*ReviewResponse `json:"reviews"`
	Total   int64             `json:"total"`
	Page    int               `json:"page"`
	Limit   int               `json:"limit"`
}

type RatingResponse struct {
	Rating       float64 `json:"rating"`
	TotalReviews int     `json:"total_reviews"`
}
