// File: database/repository/booking/interface.go
package bookingRepo

import (
	"context"
	"errors"

	"cliniq/config"
	"cliniq/database"
	"cliniq/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ErrCapacityExceeded is returned by CreateWithinCapacity when the session
// already holds maxPatients active bookings at insert time.
var ErrCapacityExceeded = errors.New("session capacity exceeded")

// BookingRepository is the data access layer for queue tokens.
type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	// CreateWithinCapacity inserts the booking only while fewer than
	// maxPatients active bookings occupy [sessionStart, sessionEnd); the
	// count and insert are atomic, so concurrent racers past the pre-flight
	// validation cannot overfill a session.
	CreateWithinCapacity(ctx context.Context, booking *models.Booking, sessionStart, sessionEnd string, maxPatients int) error
	GetByID(ctx context.Context, bookingID string) (*models.Booking, error)
	Update(ctx context.Context, booking *models.Booking) error
	SetStatus(ctx context.Context, bookingID, status string) error
	Cancel(ctx context.Context, bookingID, reason, actor string) error

	// FindActiveBySubjectDoctorDate returns the subject's active booking with
	// this doctor on this date, or nil.
	FindActiveBySubjectDoctorDate(ctx context.Context, patientID, dependentName, doctorID, date string) (*models.Booking, error)
	// FindActiveBySubjectDepartmentDate returns the subject's active booking
	// in this department on this date regardless of doctor, or nil.
	FindActiveBySubjectDepartmentDate(ctx context.Context, patientID, dependentName, department, date string) (*models.Booking, error)

	// CountActiveInClockRange counts active bookings for a doctor/date whose
	// time slot falls inside [start, end) — session capacity usage.
	CountActiveInClockRange(ctx context.Context, doctorID, date, start, end string) (int, error)
	// CountActiveForDoctorDate counts active bookings for a doctor on a date,
	// optionally restricted to one session type ("" for all).
	CountActiveForDoctorDate(ctx context.Context, doctorID, date, sessionType string) (int, error)
	// ExistsActiveToken reports whether an active booking on the date already
	// carries the formatted token.
	ExistsActiveToken(ctx context.Context, date, tokenID string) (bool, error)

	// ListActiveForDoctorDate returns all still-active bookings for a
	// doctor/date, optionally restricted to a session ("" for all).
	ListActiveForDoctorDate(ctx context.Context, doctorID, date, sessionType string) ([]models.Booking, error)
	// ListForDoctorDate returns the full day queue ordered by token number.
	ListForDoctorDate(ctx context.Context, doctorID, date string) ([]models.Booking, error)
	// ListForPatient returns a patient's bookings, newest first.
	ListForPatient(ctx context.Context, patientID string) ([]models.Booking, error)
	// ListActiveBefore returns active bookings dated strictly before the
	// given date (stale-booking sweep input).
	ListActiveBefore(ctx context.Context, date string) ([]models.Booking, error)
}

type mongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo constructs a new MongoDB BookingRepository.
func NewMongoBookingRepo() BookingRepository {
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	return &mongoBookingRepo{
		coll: db.Collection("bookings"),
	}
}
