// File: database/repository/doctor/interface.go
package doctorRepo

import (
	"context"

	"cliniq/config"
	"cliniq/database"
	"cliniq/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// DoctorRepository exposes the staff records the scheduling engine reads.
type DoctorRepository interface {
	GetByID(ctx context.Context, doctorID string) (*models.Doctor, error)
	ListByDepartment(ctx context.Context, department string) ([]models.Doctor, error)
}

type mongoDoctorRepo struct {
	coll *mongo.Collection
}

// NewMongoDoctorRepo constructs a new MongoDB DoctorRepository.
func NewMongoDoctorRepo() DoctorRepository {
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	return &mongoDoctorRepo{
		coll: db.Collection("doctors"),
	}
}
