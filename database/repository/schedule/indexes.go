// File: database/repository/schedule/indexes.go
package scheduleRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the schedules collection indexes at startup.
func EnsureIndexes(repo ScheduleRepository) error {
	r, ok := repo.(*mongoScheduleRepo)
	if !ok {
		return nil
	}
	return r.ensureIndexes()
}

func (r *mongoScheduleRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		// One schedule per doctor per day.
		{
			Keys:    bson.D{{Key: "doctor_id", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("doctor_date_unique"),
		},
		{
			Keys:    bson.D{{Key: "date", Value: 1}, {Key: "is_available", Value: 1}},
			Options: options.Index().SetName("date_available_idx"),
		},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create schedule indexes: %w", err)
	}
	return nil
}
