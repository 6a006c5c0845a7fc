package models

type User struct {
	BaseModel
	Name         string     `gorm:"not null" json:"name"`
	Email        string     `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string     `gorm:"not null" json:"-"`
	Role         UserRole   `gorm:"not null" json:"role"`
	Status       UserStatus `gorm:"default:'active'" json:"status"`
	IsVerified   bool       `gorm:"default:false" json:"is_verified"`
	City         string     `json:"city"`

	// Cached aggregates, recomputed from reviews on every review mutation.
	Rating       float64 `gorm:"default:0" json:"rating"`
	TotalReviews int     `gorm:"default:0" json:"total_reviews"`
}
