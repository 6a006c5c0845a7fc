package models

import "gorm.io/datatypes"

const (
	NotificationTypeNewApplication    = "new_application"
	NotificationTypeApplicationStatus = "application_status"
	NotificationTypeBookingCreated    = "booking_created"
	NotificationTypeBookingStatus     = "booking_status"
	NotificationTypeNewReview         = "new_review"
)

type Notification struct {
	BaseModel
	UserID  string         `gorm:"not null;index" json:"user_id"`
	Type    string         `gorm:"not null" json:"type"`
	Title   string         `gorm:"not null" json:"title"`
	Message string         `json:"message"`
	Data    datatypes.JSON `json:"data,omitempty"`
	IsRead  bool           `gorm:"default:false" json:"is_read"`
}
