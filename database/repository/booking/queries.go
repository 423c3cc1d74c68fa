// File: database/repository/booking/queries.go
package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"cliniq/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func subjectFilter(patientID, dependentName string) bson.M {
	filter := bson.M{"patient_id": patientID}
	if dependentName != "" {
		filter["dependent_name"] = dependentName
	} else {
		// The patient themselves: exclude dependents' bookings.
		filter["dependent_name"] = bson.M{"$in": bson.A{nil, ""}}
	}
	return filter
}

func (r *mongoBookingRepo) findOneActive(ctx context.Context, filter bson.M) (*models.Booking, error) {
	filter["status"] = bson.M{"$in": models.ActiveStatuses}

	var booking models.Booking
	err := r.coll.FindOne(ctx, filter).Decode(&booking)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error querying active booking: %w", err)
	}
	return &booking, nil
}

// FindActiveBySubjectDoctorDate looks up the subject's live booking with one
// doctor on one date.
func (r *mongoBookingRepo) FindActiveBySubjectDoctorDate(ctx context.Context, patientID, dependentName, doctorID, date string) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := subjectFilter(patientID, dependentName)
	filter["doctor_id"] = doctorID
	filter["date"] = date
	return r.findOneActive(ctx, filter)
}

// FindActiveBySubjectDepartmentDate looks up the subject's live booking in a
// department on one date, any doctor.
func (r *mongoBookingRepo) FindActiveBySubjectDepartmentDate(ctx context.Context, patientID, dependentName, department, date string) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := subjectFilter(patientID, dependentName)
	filter["department"] = department
	filter["date"] = date
	return r.findOneActive(ctx, filter)
}

// CountActiveInClockRange counts active bookings for a doctor/date whose
// display slot falls inside [start, end). Clock strings are "HH:MM", so
// lexical comparison matches chronological order.
func (r *mongoBookingRepo) CountActiveInClockRange(ctx context.Context, doctorID, date, start, end string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"doctor_id": doctorID,
		"date":      date,
		"status":    bson.M{"$in": models.ActiveStatuses},
		"time_slot": bson.M{"$gte": start, "$lt": end},
	}
	count, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("error counting bookings in range: %w", err)
	}
	return int(count), nil
}

// CountActiveForDoctorDate counts a doctor's live bookings on a date,
// optionally for one session type.
func (r *mongoBookingRepo) CountActiveForDoctorDate(ctx context.Context, doctorID, date, sessionType string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"doctor_id": doctorID,
		"date":      date,
		"status":    bson.M{"$in": models.ActiveStatuses},
	}
	if sessionType != "" {
		filter["session_type"] = sessionType
	}
	count, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("error counting bookings for doctor %s on %s: %w", doctorID, date, err)
	}
	return int(count), nil
}

// ExistsActiveToken checks whether a formatted token is already held by an
// active booking on the date (the allocator's defensive de-duplication).
func (r *mongoBookingRepo) ExistsActiveToken(ctx context.Context, date, tokenID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"date":     date,
		"token_id": tokenID,
		"status":   bson.M{"$in": models.ActiveStatuses},
	}
	count, err := r.coll.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("error checking token %s on %s: %w", tokenID, date, err)
	}
	return count > 0, nil
}

// ListActiveForDoctorDate returns live bookings for a doctor/date, optionally
// for one session — the leave cascade's working set.
func (r *mongoBookingRepo) ListActiveForDoctorDate(ctx context.Context, doctorID, date, sessionType string) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"doctor_id": doctorID,
		"date":      date,
		"status":    bson.M{"$in": models.ActiveStatuses},
	}
	if sessionType != "" {
		filter["session_type"] = sessionType
	}
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error listing active bookings for doctor %s on %s: %w", doctorID, date, err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("error decoding bookings: %w", err)
	}
	return bookings, nil
}

// ListForDoctorDate returns the full queue for a doctor/date ordered by token
// number (receptionist and doctor day views).
func (r *mongoBookingRepo) ListForDoctorDate(ctx context.Context, doctorID, date string) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"doctor_id": doctorID, "date": date}
	opts := options.Find().SetSort(bson.D{{Key: "token_number", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing bookings for doctor %s on %s: %w", doctorID, date, err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("error decoding bookings: %w", err)
	}
	return bookings, nil
}

// ListForPatient returns a patient's bookings (their own and dependents'),
// newest first.
func (r *mongoBookingRepo) ListForPatient(ctx context.Context, patientID string) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"patient_id": patientID}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing bookings for patient %s: %w", patientID, err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("error decoding bookings: %w", err)
	}
	return bookings, nil
}

// ListActiveBefore returns active bookings dated before the given date, used
// by the sweep to expire stale queue entries.
func (r *mongoBookingRepo) ListActiveBefore(ctx context.Context, date string) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"date":   bson.M{"$lt": date},
		"status": bson.M{"$in": models.ActiveStatuses},
	}
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error listing stale bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("error decoding bookings: %w", err)
	}
	return bookings, nil
}
