// File: database/repository/booking/crud.go
package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"cliniq/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Create inserts a new booking document.
func (r *mongoBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if booking.ID == "" {
		booking.ID = uuid.New().String()
	}
	now := time.Now()
	booking.CreatedAt = now
	booking.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, booking); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("slot already taken for doctor %s on %s at %s: %w",
				booking.DoctorID, booking.Date, booking.TimeSlot, err)
		}
		return fmt.Errorf("error creating booking: %w", err)
	}
	return nil
}

// CreateWithinCapacity counts the session's active bookings and inserts the
// new one inside a single transaction. Losing a slot race still surfaces the
// duplicate-key error; filling the last seat surfaces ErrCapacityExceeded.
func (r *mongoBookingRepo) CreateWithinCapacity(ctx context.Context, booking *models.Booking, sessionStart, sessionEnd string, maxPatients int) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if booking.ID == "" {
		booking.ID = uuid.New().String()
	}
	now := time.Now()
	booking.CreatedAt = now
	booking.UpdatedAt = now

	session, err := r.coll.Database().Client().StartSession()
	if err != nil {
		return fmt.Errorf("error starting session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		filter := bson.M{
			"doctor_id": booking.DoctorID,
			"date":      booking.Date,
			"status":    bson.M{"$in": models.ActiveStatuses},
			"time_slot": bson.M{"$gte": sessionStart, "$lt": sessionEnd},
		}
		count, err := r.coll.CountDocuments(sc, filter)
		if err != nil {
			return nil, fmt.Errorf("error counting bookings in range: %w", err)
		}
		if int(count) >= maxPatients {
			return nil, ErrCapacityExceeded
		}

		if _, err := r.coll.InsertOne(sc, booking); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return nil, fmt.Errorf("slot already taken for doctor %s on %s at %s: %w",
					booking.DoctorID, booking.Date, booking.TimeSlot, err)
			}
			return nil, fmt.Errorf("error creating booking: %w", err)
		}
		return nil, nil
	})
	return err
}

// GetByID fetches a booking by its ID.
func (r *mongoBookingRepo) GetByID(ctx context.Context, bookingID string) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var booking models.Booking
	filter := bson.M{"id": bookingID}
	if err := r.coll.FindOne(ctx, filter).Decode(&booking); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("booking with id %s not found: %w", bookingID, err)
		}
		return nil, fmt.Errorf("error fetching booking %s: %w", bookingID, err)
	}
	return &booking, nil
}

// Update replaces an existing booking document wholesale. A $set of the
// struct would drop omitempty fields and so could never clear cancellation
// metadata; ReplaceOne writes the document exactly as given.
func (r *mongoBookingRepo) Update(ctx context.Context, booking *models.Booking) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	booking.UpdatedAt = time.Now()
	filter := bson.M{"id": booking.ID}
	res, err := r.coll.ReplaceOne(ctx, filter, booking)
	if err != nil {
		return fmt.Errorf("error updating booking %s: %w", booking.ID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("booking %s not found", booking.ID)
	}
	return nil
}

// SetStatus transitions a booking's status field.
func (r *mongoBookingRepo) SetStatus(ctx context.Context, bookingID, status string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": bookingID}
	update := bson.M{"$set": bson.M{"status": status, "updated_at": time.Now()}}
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("error setting status for booking %s: %w", bookingID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("booking %s not found", bookingID)
	}
	return nil
}

// Cancel marks a booking cancelled with the reason and acting role. The
// filter only matches still-active bookings, so repeating a cancellation is a
// no-op rather than a double-cancel.
func (r *mongoBookingRepo) Cancel(ctx context.Context, bookingID, reason, actor string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now()
	filter := bson.M{"id": bookingID, "status": bson.M{"$in": models.ActiveStatuses}}
	update := bson.M{"$set": bson.M{
		"status":              models.StatusCancelled,
		"cancellation_reason": reason,
		"cancelled_by":        actor,
		"cancelled_at":        now,
		"updated_at":          now,
	}}
	if _, err := r.coll.UpdateOne(ctx, filter, update); err != nil {
		return fmt.Errorf("error cancelling booking %s: %w", bookingID, err)
	}
	return nil
}
