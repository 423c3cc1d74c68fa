package scheduling

import (
	"context"
	"fmt"

	"cliniq/models"
)

// validateRequest rejects malformed input before any storage reads.
func validateRequest(req models.BookingRequest) error {
	if req.PatientID == "" {
		return ValidationError{Field: "patient_id", Reason: "required"}
	}
	if req.Department == "" {
		return ValidationError{Field: "department", Reason: "required"}
	}
	if _, err := parseDate(req.Date); err != nil {
		return ValidationError{Field: "date", Reason: err.Error()}
	}
	switch req.SessionType {
	case models.SessionMorning, models.SessionAfternoon, models.SessionEvening:
	default:
		return ValidationError{Field: "session_type", Reason: "must be morning, afternoon, or evening"}
	}
	if req.TimeSlot != "" {
		if _, err := parseClock(req.TimeSlot); err != nil {
			return ValidationError{Field: "time_slot", Reason: err.Error()}
		}
	}
	return nil
}

// validateBooking enforces the booking invariants against the same snapshot
// later used for allocation. It has no side effects: no counter increment,
// no record write. Checks run in a fixed order so callers see stable errors:
//
//  1. doctor conflict
//  2. department conflict
//  3. capacity
//  4. same-day cutoff
//  5. explicit doctor unavailability
//
// A conflicting write that lands between this check and the booking insert
// is caught by the allocator's collision retry and the storage-level unique
// index on (doctor, date, time_slot) over active statuses.
func (s *DefaultSchedulingService) validateBooking(ctx context.Context, req models.BookingRequest, schedule *models.Schedule) error {
	// 5 is checked first when the whole day is blocked: nothing downstream
	// is meaningful against an on-leave schedule.
	if !schedule.IsAvailable {
		return fmt.Errorf("%w: %s", ErrDoctorUnavailable, schedule.LeaveReason)
	}

	existing, err := s.Bookings.FindActiveBySubjectDoctorDate(ctx, req.PatientID, req.DependentName, req.DoctorID, req.Date)
	if err != nil {
		return fmt.Errorf("doctor conflict check failed: %w", err)
	}
	if existing != nil {
		return fmt.Errorf("%w (token %s)", ErrDoctorConflict, existing.TokenID)
	}

	other, err := s.Bookings.FindActiveBySubjectDepartmentDate(ctx, req.PatientID, req.DependentName, req.Department, req.Date)
	if err != nil {
		return fmt.Errorf("department conflict check failed: %w", err)
	}
	if other != nil {
		return fmt.Errorf("%w (doctor %s, token %s)", ErrDepartmentConflict, other.DoctorID, other.TokenID)
	}

	session, ok := schedule.SessionFor(req.SessionType)
	if !ok || !session.Available {
		return fmt.Errorf("%w: %s session", ErrSessionClosed, req.SessionType)
	}

	booked, err := s.Bookings.CountActiveInClockRange(ctx, req.DoctorID, req.Date, session.Start, session.End)
	if err != nil {
		return fmt.Errorf("capacity check failed: %w", err)
	}
	if booked >= session.MaxPatients {
		return fmt.Errorf("%w: %d of %d booked", ErrSessionFull, booked, session.MaxPatients)
	}

	cutoffPassed, err := s.cutoffPassed(req.Date, session)
	if err != nil {
		return err
	}
	if cutoffPassed {
		return fmt.Errorf("%w: %s session starts at %s", ErrCutoffPassed, req.SessionType, session.Start)
	}

	return nil
}
