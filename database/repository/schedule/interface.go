// File: database/repository/schedule/interface.go
package scheduleRepo

import (
	"context"

	"cliniq/config"
	"cliniq/database"
	"cliniq/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ScheduleRepository is the data access layer for per-doctor per-day
// availability records.
type ScheduleRepository interface {
	// Get returns the Schedule for (doctor, date), or nil when none exists
	// (absence means "use the doctor's defaults").
	Get(ctx context.Context, doctorID, date string) (*models.Schedule, error)
	// Upsert writes the full Schedule document keyed by (doctor, date).
	Upsert(ctx context.Context, schedule *models.Schedule) error
	// CreateMany inserts a batch of schedules (new-doctor pre-generation).
	CreateMany(ctx context.Context, schedules []models.Schedule) error
	// BlockDay marks the whole day unavailable, recording the leave reason.
	BlockDay(ctx context.Context, doctorID, date, reason string) error
	// BlockSession marks a single session unavailable (half-day leave).
	BlockSession(ctx context.Context, doctorID, date, sessionType, reason string) error
	// ListForDoctor returns schedules for a doctor in [from, to] inclusive.
	ListForDoctor(ctx context.Context, doctorID, from, to string) ([]models.Schedule, error)
}

type mongoScheduleRepo struct {
	coll *mongo.Collection
}

// NewMongoScheduleRepo constructs a new MongoDB ScheduleRepository.
func NewMongoScheduleRepo() ScheduleRepository {
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	return &mongoScheduleRepo{
		coll: db.Collection("schedules"),
	}
}
