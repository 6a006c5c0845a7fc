package database

import (
	"gorm.io/gorm"

	"github.com/alikamatu/artisan-app-sub000/internal/models"
)

// AutoMigrate creates or updates the schema for every model, including the
// unique indexes the lifecycle invariants rely on (users.email,
// bookings.application_id, reviews.booking_id).
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Job{},
		&models.Application{},
		&models.Booking{},
		&models.Milestone{},
		&models.Review{},
		&models.Notification{},
	)
}
