package models

import "time"

type Job struct {
	BaseModel
	ClientID    string     `gorm:"not null;index" json:"client_id"`
	Title       string     `gorm:"not null" json:"title"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Location    string     `json:"location"`
	BudgetMin   float64    `gorm:"not null" json:"budget_min"`
	BudgetMax   float64    `gorm:"not null" json:"budget_max"`
	StartDate   *time.Time `json:"start_date"`

	Status        JobStatus `gorm:"default:'open';index" json:"status"`
	CurrentStatus JobPhase  `gorm:"default:'open'" json:"current_status"`

	SelectedWorkerID  *string `gorm:"index" json:"selected_worker_id"`
	ApplicationsCount int     `gorm:"default:0" json:"applications_count"`
	ViewsCount        int     `gorm:"default:0" json:"views_count"`

	Client *User `gorm:"foreignKey:ClientID" json:"client,omitempty"`
}
