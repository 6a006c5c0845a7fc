package models

import "time"

type Booking struct {
	BaseModel
	// One booking per application, enforced by the store.
	ApplicationID string `gorm:"not null;uniqueIndex" json:"application_id"`
	JobID         string `gorm:"not null;index" json:"job_id"`
	ClientID      string `gorm:"not null;index" json:"client_id"`
	WorkerID      string `gorm:"not null;index" json:"worker_id"`

	Status                 BookingStatus `gorm:"default:'active';index" json:"status"`
	StartDate              time.Time     `gorm:"not null" json:"start_date"`
	ExpectedCompletionDate time.Time     `gorm:"not null" json:"expected_completion_date"`
	ActualCompletionDate   *time.Time    `json:"actual_completion_date"`
	FinalBudget            float64       `gorm:"not null" json:"final_budget"`
	CompletionProof        *string       `json:"completion_proof"`
	CancellationReason     *string       `json:"cancellation_reason"`

	Milestones []Milestone `gorm:"foreignKey:BookingID" json:"milestones,omitempty"`
}

// Milestone is a partial-payment line item attached to a booking. The system
// only records intent; settlement happens elsewhere.
type Milestone struct {
	BaseModel
	BookingID   string          `gorm:"not null;index" json:"booking_id"`
	Description string          `gorm:"not null" json:"description"`
	Amount      float64         `gorm:"not null" json:"amount"`
	DueDate     *time.Time      `json:"due_date"`
	Status      MilestoneStatus `gorm:"default:'pending'" json:"status"`
}
