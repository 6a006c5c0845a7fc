package models

import "gorm.io/datatypes"

type Review struct {
	BaseModel
	// One review per booking, enforced by the store.
	BookingID  string `gorm:"not null;uniqueIndex" json:"booking_id"`
	ReviewerID string `gorm:"not null;index" json:"reviewer_id"`
	RevieweeID string `gorm:"not null;index" json:"reviewee_id"`

	Rating  int    `gorm:"not null" json:"rating"` // 1-5
	Comment string `gorm:"type:text" json:"comment"`

	// Optional per-category ratings, e.g. {"quality": 5, "punctuality": 4}.
	CategoryRatings datatypes.JSON `json:"category_ratings,omitempty"`

	IsPublic bool `gorm:"default:true" json:"is_public"`

	Reviewer *User    `gorm:"foreignKey:ReviewerID" json:"reviewer,omitempty"`
	Reviewee *User    `gorm:"foreignKey:RevieweeID" json:"reviewee,omitempty"`
	Booking  *Booking `gorm:"foreignKey:BookingID" json:"booking,omitempty"`
}
