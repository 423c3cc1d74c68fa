// File: database/repository/schedulereq/schedulereq_mongo.go
package schedulereqRepo

import (
	"context"
	"fmt"
	"time"

	"cliniq/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Create inserts a new schedule change request in pending status.
func (r *mongoScheduleRequestRepo) Create(ctx context.Context, req *models.ScheduleRequest) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if req.ID == "" {
		req.ID = uuid.New().String()
	}
	req.Status = models.RequestPending
	req.CreatedAt = time.Now()

	if _, err := r.coll.InsertOne(ctx, req); err != nil {
		return fmt.Errorf("error creating schedule request: %w", err)
	}
	return nil
}

// GetByID fetches a schedule request by ID.
func (r *mongoScheduleRequestRepo) GetByID(ctx context.Context, requestID string) (*models.ScheduleRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var req models.ScheduleRequest
	filter := bson.M{"id": requestID}
	if err := r.coll.FindOne(ctx, filter).Decode(&req); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("schedule request %s not found: %w", requestID, err)
		}
		return nil, fmt.Errorf("error fetching schedule request %s: %w", requestID, err)
	}
	return &req, nil
}

// UpdateStatus applies the admin decision as a compare-and-set on the
// expected current status.
func (r *mongoScheduleRequestRepo) UpdateStatus(ctx context.Context, requestID, expectedStatus, newStatus, adminComment string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now()
	filter := bson.M{"id": requestID, "status": expectedStatus}
	update := bson.M{"$set": bson.M{
		"status":        newStatus,
		"admin_comment": adminComment,
		"decided_at":    now,
	}}
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("error updating schedule request %s: %w", requestID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("schedule request %s is not in %s status", requestID, expectedStatus)
	}
	return nil
}

// ListPending returns all pending schedule requests (admin review queue).
func (r *mongoScheduleRequestRepo) ListPending(ctx context.Context) ([]models.ScheduleRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return r.list(ctx, bson.M{"status": models.RequestPending})
}

// ListByDoctor returns a doctor's schedule requests, newest first.
func (r *mongoScheduleRequestRepo) ListByDoctor(ctx context.Context, doctorID string) ([]models.ScheduleRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return r.list(ctx, bson.M{"doctor_id": doctorID})
}

func (r *mongoScheduleRequestRepo) list(ctx context.Context, filter bson.M) ([]models.ScheduleRequest, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing schedule requests: %w", err)
	}
	defer cursor.Close(ctx)

	var reqs []models.ScheduleRequest
	if err := cursor.All(ctx, &reqs); err != nil {
		return nil, fmt.Errorf("error decoding schedule requests: %w", err)
	}
	return reqs, nil
}
