// File: database/repository/leave/interface.go
package leaveRepo

import (
	"context"

	"cliniq/config"
	"cliniq/database"
	"cliniq/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// LeaveRepository is the data access layer for doctor leave requests.
type LeaveRepository interface {
	Create(ctx context.Context, req *models.LeaveRequest) error
	GetByID(ctx context.Context, requestID string) (*models.LeaveRequest, error)
	// UpdateStatus records the admin decision; expectedStatus guards the
	// transition (e.g. only a pending request can be approved).
	UpdateStatus(ctx context.Context, requestID, expectedStatus, newStatus, adminComment string) error
	ListByDoctor(ctx context.Context, doctorID, status string) ([]models.LeaveRequest, error)
	ListByStatus(ctx context.Context, status string) ([]models.LeaveRequest, error)
}

type mongoLeaveRepo struct {
	coll *mongo.Collection
}

// NewMongoLeaveRepo constructs a new MongoDB LeaveRepository.
func NewMongoLeaveRepo() LeaveRepository {
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	return &mongoLeaveRepo{
		coll: db.Collection("leave_requests"),
	}
}
