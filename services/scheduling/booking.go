package scheduling

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingRepo "cliniq/database/repository/booking"
	"cliniq/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateBooking runs the full booking path: resolve the schedule snapshot,
// validate the request against it, allocate a token, and persist the record.
// Validation failures leave no trace; a duplicate-slot race lost at insert
// time surfaces as an error the caller may retry.
func (s *DefaultSchedulingService) CreateBooking(ctx context.Context, req models.BookingRequest) (*models.BookingConfirmation, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	// Walk-in path: no doctor chosen, pick the least-loaded one.
	if req.DoctorID == "" {
		assignment, err := s.AutoAssign(ctx, req.Department, req.Date, req.SessionType)
		if err != nil {
			return nil, err
		}
		req.DoctorID = assignment.Primary.DoctorID
	}

	doctor, err := s.Doctors.GetByID(ctx, req.DoctorID)
	if err != nil {
		return nil, fmt.Errorf("doctor lookup failed: %w", err)
	}
	if doctor.Department != req.Department {
		return nil, ValidationError{Field: "doctor_id", Reason: fmt.Sprintf("doctor %s is not in department %s", req.DoctorID, req.Department)}
	}

	schedule, err := s.effectiveSchedule(ctx, doctor, req.Date)
	if err != nil {
		return nil, err
	}

	if err := s.validateBooking(ctx, req, schedule); err != nil {
		return nil, err
	}

	tokenNumber, tokenID, err := s.allocateToken(ctx, req.Date)
	if err != nil {
		return nil, err
	}

	session, _ := schedule.SessionFor(req.SessionType)
	timeSlot := req.TimeSlot
	if timeSlot == "" {
		timeSlot, err = derivedSlotTime(session, schedule.SlotDuration, tokenNumber)
		if err != nil {
			return nil, err
		}
	}

	booking := &models.Booking{
		ID:            uuid.New().String(),
		PatientID:     req.PatientID,
		DependentName: req.DependentName,
		DoctorID:      req.DoctorID,
		Department:    req.Department,
		Date:          req.Date,
		TimeSlot:      timeSlot,
		SessionType:   req.SessionType,
		Status:        models.StatusBooked,
		TokenNumber:   tokenNumber,
		TokenID:       tokenID,
		Symptoms:      req.Symptoms,
		PaymentStatus: models.PaymentPending,
	}
	// The atomic insert re-checks capacity: concurrent racers that all
	// passed the pre-flight validation cannot overfill the session.
	if err := s.Bookings.CreateWithinCapacity(ctx, booking, session.Start, session.End, session.MaxPatients); err != nil {
		if errors.Is(err, bookingRepo.ErrCapacityExceeded) {
			return nil, fmt.Errorf("%w: session %s on %s is full", ErrSessionFull, req.SessionType, req.Date)
		}
		return nil, fmt.Errorf("booking create failed: %w", err)
	}

	wait := s.estimateWait(ctx, booking, session, schedule.SlotDuration)

	s.logger().Info("booking created",
		zap.String("booking_id", booking.ID),
		zap.String("doctor_id", booking.DoctorID),
		zap.String("date", booking.Date),
		zap.String("token", booking.TokenID),
	)

	return &models.BookingConfirmation{
		BookingID:     booking.ID,
		TokenID:       booking.TokenID,
		TokenNumber:   booking.TokenNumber,
		DoctorID:      booking.DoctorID,
		Department:    booking.Department,
		Date:          booking.Date,
		TimeSlot:      booking.TimeSlot,
		SessionType:   booking.SessionType,
		Status:        booking.Status,
		EstimatedWait: wait,
	}, nil
}

// estimateWait approximates queue delay as patients-ahead times slot
// duration. Advisory only; failures degrade to an empty estimate.
func (s *DefaultSchedulingService) estimateWait(ctx context.Context, booking *models.Booking, session models.Session, slotDuration int) string {
	ahead, err := s.Bookings.CountActiveInClockRange(ctx, booking.DoctorID, booking.Date, session.Start, booking.TimeSlot)
	if err != nil {
		s.logger().Warn("wait estimate failed", zap.Error(err))
		return ""
	}
	wait := time.Duration(ahead*slotDuration) * time.Minute
	if wait <= 0 {
		return "0m"
	}
	return wait.String()
}

// GetBooking fetches one booking.
func (s *DefaultSchedulingService) GetBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	return s.Bookings.GetByID(ctx, bookingID)
}

// ListQueue returns a doctor's day queue ordered by token number.
func (s *DefaultSchedulingService) ListQueue(ctx context.Context, doctorID, date string) ([]models.Booking, error) {
	if _, err := parseDate(date); err != nil {
		return nil, ValidationError{Field: "date", Reason: err.Error()}
	}
	return s.Bookings.ListForDoctorDate(ctx, doctorID, date)
}

// ListPatientBookings returns a patient's booking history.
func (s *DefaultSchedulingService) ListPatientBookings(ctx context.Context, patientID string) ([]models.Booking, error) {
	if patientID == "" {
		return nil, ValidationError{Field: "patient_id", Reason: "required"}
	}
	return s.Bookings.ListForPatient(ctx, patientID)
}
