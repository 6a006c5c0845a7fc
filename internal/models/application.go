package models

import "time"

type Application struct {
	BaseModel
	JobID          string    `gorm:"not null;index" json:"job_id"`
	WorkerID       string    `gorm:"not null;index" json:"worker_id"`
	ProposedBudget float64   `gorm:"not null" json:"proposed_budget"`
	CoverLetter    string    `json:"cover_letter"`
	AvailableFrom  time.Time `gorm:"not null" json:"available_from"`

	Status          ApplicationStatus `gorm:"default:'pending';index" json:"status"`
	BookingID       *string           `json:"booking_id"`
	RejectionReason *string           `json:"rejection_reason"`

	Job    *Job  `gorm:"foreignKey:JobID" json:"job,omitempty"`
	Worker *User `gorm:"foreignKey:WorkerID" json:"worker,omitempty"`
}
