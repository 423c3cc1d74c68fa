// File: database/repository/leave/leave_mongo.go
package leaveRepo

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

// Create inserts a new leave request in pending status.
func (r *mongoLeaveRepo) Create(ctx context.Context, req *models.LeaveRequest) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if req.ID == "" {
		req.ID = uuid.New().String()
	}
	req.Status = models.LeavePending
	req.CreatedAt = time.Now()

	if _, err := r.coll.InsertOne(ctx, req); err != nil {
		return fmt.Errorf("error creating leave request: %w", err)
	}
	return nil
}

// GetByID fetches a leave request by ID.
func (r *mongoLeaveRepo) GetByID(ctx context.Context, requestID string) (*models.LeaveRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var req models.LeaveRequest
	filter := bson.M{"id": requestID}
	if err := r.coll.FindOne(ctx, filter).Decode(&req); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("leave request %s not found: %w", requestID, err)
		}
		return nil, fmt.Errorf("error fetching leave request %s: %w", requestID, err)
	}
	return &req, nil
}

// UpdateStatus applies the admin decision. The expectedStatus filter makes
// the transition a compare-and-set, so a concurrent or repeated decision
// matches nothing instead of overwriting.
func (r *mongoLeaveRepo) UpdateStatus(ctx context.Context, requestID, expectedStatus, newStatus, adminComment string) error {
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
		return fmt.Errorf("error updating leave request %s: %w", requestID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("leave request %s is not in %s status", requestID, expectedStatus)
	}
	return nil
}

// ListByDoctor returns a doctor's leave requests, optionally by status.
func (r *mongoLeaveRepo) ListByDoctor(ctx context.Context, doctorID, status string) ([]models.LeaveRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"doctor_id": doctorID}
	if status != "" {
		filter["status"] = status
	}
	return r.list(ctx, filter)
}

// ListByStatus returns all leave requests in a status (admin review queue).
// An empty status lists everything.
func (r *mongoLeaveRepo) ListByStatus(ctx context.Context, status string) ([]models.LeaveRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	return r.list(ctx, filter)
}

func (r *mongoLeaveRepo) list(ctx context.Context, filter bson.M) ([]models.LeaveRequest, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing leave requests: %w", err)
	}
	defer cursor.Close(ctx)

	var reqs []models.LeaveRequest
	if err := cursor.All(ctx, &reqs); err != nil {
		return nil, fmt.Errorf("error decoding leave requests: %w", err)
	}
	return reqs, nil
}
