package scheduling

import (
	"context"
	"fmt"

	"cliniq/models"

	"go.uber.org/zap"
)

// transitions is the booking state machine. Terminal statuses have no
// entries; cancelled bookings can only come back through RescheduleBooking.
var transitions = map[string][]string{
	models.StatusBooked:  {models.StatusInQueue, models.StatusCancelled, models.StatusReferred},
	models.StatusInQueue: {models.StatusConsulted, models.StatusMissed, models.StatusCancelled, models.StatusReferred},
}

// canTransition reports whether the state machine allows from → to.
func canTransition(from, to string) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// AdvanceBooking moves a booking along its normal consultation path:
// booked → in_queue → consulted | missed, or sideways into referred.
// Cancellation goes through CancelBooking so the actor and reason are
// recorded.
func (s *DefaultSchedulingService) AdvanceBooking(ctx context.Context, bookingID, newStatus string) (*models.Booking, error) {
	if newStatus == models.StatusCancelled {
		return nil, fmt.Errorf("%w: cancellation requires an actor and reason", ErrInvalidTransition)
	}

	booking, err := s.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !canTransition(booking.Status, newStatus) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, newStatus)
	}

	if err := s.Bookings.SetStatus(ctx, bookingID, newStatus); err != nil {
		return nil, err
	}
	booking.Status = newStatus

	s.logger().Info("booking status changed",
		zap.String("booking_id", bookingID),
		zap.String("status", newStatus),
	)
	return booking, nil
}

// CancelBooking cancels an active booking, recording who cancelled and why.
// Refund eligibility is advisory only: it is flagged on paid bookings a
// patient cancels ahead of the appointment slot, and billing settles it
// elsewhere.
func (s *DefaultSchedulingService) CancelBooking(ctx context.Context, bookingID, actor, reason string) (*models.Booking, error) {
	booking, err := s.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !booking.IsActive() {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, models.StatusCancelled)
	}

	if err := s.Bookings.Cancel(ctx, bookingID, reason, actor); err != nil {
		return nil, err
	}

	booking, err = s.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if actor == models.ActorPatient && booking.PaymentStatus == models.PaymentPaid {
		if eligible := s.refundEligible(booking); eligible {
			booking.RefundEligible = true
			if err := s.Bookings.Update(ctx, booking); err != nil {
				s.logger().Warn("refund flag update failed",
					zap.String("booking_id", bookingID),
					zap.Error(err),
				)
			}
		}
	}

	s.logger().Info("booking cancelled",
		zap.String("booking_id", bookingID),
		zap.String("actor", actor),
		zap.String("reason", reason),
	)
	return booking, nil
}

// refundEligible holds when the cancellation lands before the appointment
// slot begins.
func (s *DefaultSchedulingService) refundEligible(booking *models.Booking) bool {
	day, err := parseDate(booking.Date)
	if err != nil {
		return false
	}
	slotMin, err := parseClock(booking.TimeSlot)
	if err != nil {
		return false
	}
	return s.now().Before(clockOn(day, slotMin))
}

// RescheduleBooking moves a booking to a new date, slot, or doctor. This is
// the one path that revives a cancelled booking back to booked. An active
// booking is cancelled first so its capacity and conflict footprint is
// released before the target is validated; on validation failure the
// original status is restored.
func (s *DefaultSchedulingService) RescheduleBooking(ctx context.Context, bookingID, newDate, newTimeSlot, newDoctorID string) (*models.Booking, error) {
	booking, err := s.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !booking.IsActive() && booking.Status != models.StatusCancelled {
		return nil, fmt.Errorf("%w: cannot reschedule a %s booking", ErrInvalidTransition, booking.Status)
	}
	if _, err := parseDate(newDate); err != nil {
		return nil, ValidationError{Field: "new_date", Reason: err.Error()}
	}

	priorStatus := booking.Status
	snapshot := *booking
	if booking.IsActive() {
		if err := s.Bookings.Cancel(ctx, bookingID, "rescheduled", models.ActorSystem); err != nil {
			return nil, err
		}
	}
	// Rollback writes the pre-cancel snapshot back so the released slot's
	// cancellation metadata does not stick to a still-active booking.
	restore := func() {
		if priorStatus == models.StatusCancelled {
			return
		}
		if err := s.Bookings.Update(ctx, &snapshot); err != nil {
			s.logger().Error("reschedule rollback failed",
				zap.String("booking_id", bookingID),
				zap.Error(err),
			)
		}
	}

	doctorID := booking.DoctorID
	if newDoctorID != "" {
		doctorID = newDoctorID
	}
	doctor, err := s.Doctors.GetByID(ctx, doctorID)
	if err != nil {
		restore()
		return nil, fmt.Errorf("doctor lookup failed: %w", err)
	}

	schedule, err := s.effectiveSchedule(ctx, doctor, newDate)
	if err != nil {
		restore()
		return nil, err
	}

	sessionType := booking.SessionType
	if newTimeSlot != "" {
		slotMin, err := parseClock(newTimeSlot)
		if err != nil {
			restore()
			return nil, ValidationError{Field: "new_time_slot", Reason: err.Error()}
		}
		if st := sessionTypeFor(schedule, slotMin); st != "" {
			sessionType = st
		}
	}

	req := models.BookingRequest{
		PatientID:     booking.PatientID,
		DependentName: booking.DependentName,
		DoctorID:      doctorID,
		Department:    doctor.Department,
		Date:          newDate,
		SessionType:   sessionType,
		TimeSlot:      newTimeSlot,
	}
	if err := s.validateBooking(ctx, req, schedule); err != nil {
		restore()
		return nil, err
	}

	tokenNumber, tokenID, err := s.allocateToken(ctx, newDate)
	if err != nil {
		restore()
		return nil, err
	}

	session, _ := schedule.SessionFor(sessionType)
	timeSlot := newTimeSlot
	if timeSlot == "" {
		timeSlot, err = derivedSlotTime(session, schedule.SlotDuration, tokenNumber)
		if err != nil {
			restore()
			return nil, err
		}
	}

	booking.DoctorID = doctorID
	booking.Department = doctor.Department
	booking.Date = newDate
	booking.TimeSlot = timeSlot
	booking.SessionType = sessionType
	booking.Status = models.StatusBooked
	booking.TokenNumber = tokenNumber
	booking.TokenID = tokenID
	booking.CancellationReason = ""
	booking.CancelledBy = ""
	booking.CancelledAt = nil
	if err := s.Bookings.Update(ctx, booking); err != nil {
		restore()
		return nil, fmt.Errorf("booking update failed: %w", err)
	}

	s.logger().Info("booking rescheduled",
		zap.String("booking_id", bookingID),
		zap.String("doctor_id", doctorID),
		zap.String("date", newDate),
		zap.String("token", tokenID),
	)
	return booking, nil
}
