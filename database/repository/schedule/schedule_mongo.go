// File: database/repository/schedule/schedule_mongo.go
package scheduleRepo

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

// Get fetches the schedule for (doctor, date). A missing document is not an
// error: the resolver falls back to doctor defaults.
func (r *mongoScheduleRepo) Get(ctx context.Context, doctorID, date string) (*models.Schedule, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var schedule models.Schedule
	filter := bson.M{"doctor_id": doctorID, "date": date}
	err := r.coll.FindOne(ctx, filter).Decode(&schedule)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching schedule for doctor %s on %s: %w", doctorID, date, err)
	}
	return &schedule, nil
}

// Upsert writes the schedule document, keyed by (doctor_id, date).
func (r *mongoScheduleRepo) Upsert(ctx context.Context, schedule *models.Schedule) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if schedule.ID == "" {
		schedule.ID = uuid.New().String()
	}
	filter := bson.M{"doctor_id": schedule.DoctorID, "date": schedule.Date}
	update := bson.M{"$set": schedule}
	opts := options.Update().SetUpsert(true)
	if _, err := r.coll.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("error upserting schedule for doctor %s on %s: %w", schedule.DoctorID, schedule.Date, err)
	}
	return nil
}

// CreateMany inserts pre-generated schedules for a new doctor.
func (r *mongoScheduleRepo) CreateMany(ctx context.Context, schedules []models.Schedule) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	docs := make([]interface{}, len(schedules))
	for i, s := range schedules {
		if s.ID == "" {
			s.ID = uuid.New().String()
		}
		docs[i] = s
	}
	if _, err := r.coll.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("error inserting schedules: %w", err)
	}
	return nil
}

// BlockDay upserts the (doctor, date) schedule to unavailable with the given
// leave reason. Safe to repeat for the same day.
func (r *mongoScheduleRepo) BlockDay(ctx context.Context, doctorID, date, reason string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"doctor_id": doctorID, "date": date}
	update := bson.M{
		"$set": bson.M{
			"is_available":                false,
			"leave_reason":                reason,
			"morning_session.available":   false,
			"afternoon_session.available": false,
		},
		"$setOnInsert": bson.M{
			"id":        uuid.New().String(),
			"doctor_id": doctorID,
			"date":      date,
		},
	}
	opts := options.Update().SetUpsert(true)
	if _, err := r.coll.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("error blocking schedule for doctor %s on %s: %w", doctorID, date, err)
	}
	return nil
}

// BlockSession flips a single session to unavailable for half-day leave,
// leaving the rest of the day bookable.
func (r *mongoScheduleRepo) BlockSession(ctx context.Context, doctorID, date, sessionType, reason string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var sessionField string
	switch sessionType {
	case models.SessionMorning:
		sessionField = "morning_session.available"
	case models.SessionAfternoon:
		sessionField = "afternoon_session.available"
	default:
		return fmt.Errorf("unknown session type %q", sessionType)
	}

	filter := bson.M{"doctor_id": doctorID, "date": date}
	update := bson.M{
		"$set": bson.M{
			sessionField:   false,
			"leave_reason": reason,
		},
		"$setOnInsert": bson.M{
			"id":           uuid.New().String(),
			"doctor_id":    doctorID,
			"date":         date,
			"is_available": true,
		},
	}
	opts := options.Update().SetUpsert(true)
	if _, err := r.coll.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("error blocking %s session for doctor %s on %s: %w", sessionType, doctorID, date, err)
	}
	return nil
}

// ListForDoctor returns schedules for a doctor between from and to inclusive.
func (r *mongoScheduleRepo) ListForDoctor(ctx context.Context, doctorID, from, to string) ([]models.Schedule, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"doctor_id": doctorID,
		"date":      bson.M{"$gte": from, "$lte": to},
	}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing schedules for doctor %s: %w", doctorID, err)
	}
	defer cursor.Close(ctx)

	var schedules []models.Schedule
	if err := cursor.All(ctx, &schedules); err != nil {
		return nil, fmt.Errorf("error decoding schedules: %w", err)
	}
	return schedules, nil
}
