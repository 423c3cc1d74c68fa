// File: database/repository/schedulereq/interface.go
package schedulereqRepo

import (
	"context"

	"cliniq/config"
	"cliniq/database"
	"cliniq/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ScheduleRequestRepository persists schedule change requests. These are
// durable documents with an approval workflow, never an in-process list, so
// pending requests survive restarts and are visible to every replica.
type ScheduleRequestRepository interface {
	Create(ctx context.Context, req *models.ScheduleRequest) error
	GetByID(ctx context.Context, requestID string) (*models.ScheduleRequest, error)
	UpdateStatus(ctx context.Context, requestID, expectedStatus, newStatus, adminComment string) error
	ListPending(ctx context.Context) ([]models.ScheduleRequest, error)
	ListByDoctor(ctx context.Context, doctorID string) ([]models.ScheduleRequest, error)
}

type mongoScheduleRequestRepo struct {
	coll *mongo.Collection
}

// NewMongoScheduleRequestRepo constructs a new MongoDB ScheduleRequestRepository.
func NewMongoScheduleRequestRepo() ScheduleRequestRepository {
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	return &mongoScheduleRequestRepo{
		coll: db.Collection("schedule_requests"),
	}
}
