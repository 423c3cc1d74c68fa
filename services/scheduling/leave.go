package scheduling

import (
	"context"
	"fmt"

	"cliniq/models"

	"go.uber.org/zap"
)

// cancelReasonLeave is stamped on every booking cancelled by the cascade.
const cancelReasonLeave = "doctor unavailable"

// RequestLeave files a new leave request in pending status.
func (s *DefaultSchedulingService) RequestLeave(ctx context.Context, req *models.LeaveRequest) error {
	if req.DoctorID == "" {
		return ValidationError{Field: "doctor_id", Reason: "required"}
	}
	switch req.LeaveType {
	case models.LeaveFullDay:
	case models.LeaveHalfDay:
		if req.Session != models.SessionMorning && req.Session != models.SessionAfternoon {
			return ValidationError{Field: "session", Reason: "half-day leave requires morning or afternoon"}
		}
	default:
		return ValidationError{Field: "leave_type", Reason: "must be full_day or half_day"}
	}
	if _, err := datesBetween(req.StartDate, req.EndDate); err != nil {
		return ValidationError{Field: "date range", Reason: err.Error()}
	}
	return s.Leaves.Create(ctx, req)
}

// ApproveLeave transitions a pending request to approved and runs the
// cascade: block the covered schedule days (or session, for half-day leave)
// and cancel every still-active booking in the window as the system actor.
// The cascade filters on active status only, so re-running it never touches
// already-terminal bookings.
func (s *DefaultSchedulingService) ApproveLeave(ctx context.Context, requestID, adminComment string) (*models.CascadeResult, error) {
	req, err := s.Leaves.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if req.Status != models.LeaveApproved {
		if err := s.Leaves.UpdateStatus(ctx, requestID, models.LeavePending, models.LeaveApproved, adminComment); err != nil {
			return nil, err
		}
	}

	session := ""
	if req.LeaveType == models.LeaveHalfDay {
		session = req.Session
	}
	return s.cascade(ctx, req.DoctorID, req.StartDate, req.EndDate, session, req.Reason)
}

// RejectLeave records the admin rejection; no schedules or bookings change.
func (s *DefaultSchedulingService) RejectLeave(ctx context.Context, requestID, adminComment string) error {
	return s.Leaves.UpdateStatus(ctx, requestID, models.LeavePending, models.LeaveRejected, adminComment)
}

// CancelLeave withdraws a doctor's own pending request. Requests already
// decided by an admin cannot be withdrawn.
func (s *DefaultSchedulingService) CancelLeave(ctx context.Context, requestID, doctorID string) error {
	req, err := s.Leaves.GetByID(ctx, requestID)
	if err != nil {
		return err
	}
	if req.DoctorID != doctorID {
		return ValidationError{Field: "doctor_id", Reason: "leave request belongs to another doctor"}
	}
	return s.Leaves.UpdateStatus(ctx, requestID, models.LeavePending, models.LeaveCancelled, "")
}

// ListLeaves returns leave requests by doctor and/or status.
func (s *DefaultSchedulingService) ListLeaves(ctx context.Context, doctorID, status string) ([]models.LeaveRequest, error) {
	if doctorID != "" {
		return s.Leaves.ListByDoctor(ctx, doctorID, status)
	}
	return s.Leaves.ListByStatus(ctx, status)
}

// cascade blocks the schedule for each covered day and cancels affected
// active bookings. Per-booking failures are logged and counted rather than
// aborting the cascade; both schedule and booking steps are idempotent, so a
// partial run can simply be retried.
func (s *DefaultSchedulingService) cascade(ctx context.Context, doctorID, startDate, endDate, session, reason string) (*models.CascadeResult, error) {
	dates, err := datesBetween(startDate, endDate)
	if err != nil {
		return nil, ValidationError{Field: "date range", Reason: err.Error()}
	}

	result := &models.CascadeResult{}
	log := s.logger()

	for _, date := range dates {
		if session == "" {
			err = s.Schedules.BlockDay(ctx, doctorID, date, reason)
		} else {
			err = s.Schedules.BlockSession(ctx, doctorID, date, session, reason)
		}
		if err != nil {
			log.Error("cascade: schedule block failed",
				zap.String("doctor_id", doctorID),
				zap.String("date", date),
				zap.Error(err),
			)
			result.Failures++
			continue
		}
		result.SchedulesBlocked++

		bookings, err := s.Bookings.ListActiveForDoctorDate(ctx, doctorID, date, session)
		if err != nil {
			log.Error("cascade: booking list failed",
				zap.String("doctor_id", doctorID),
				zap.String("date", date),
				zap.Error(err),
			)
			result.Failures++
			continue
		}

		for _, booking := range bookings {
			if err := s.Bookings.Cancel(ctx, booking.ID, cancelReasonLeave, models.ActorSystem); err != nil {
				log.Error("cascade: booking cancel failed",
					zap.String("booking_id", booking.ID),
					zap.Error(err),
				)
				result.Failures++
				continue
			}
			result.BookingsCancelled++
		}
	}

	log.Info("leave cascade completed",
		zap.String("doctor_id", doctorID),
		zap.String("from", startDate),
		zap.String("to", endDate),
		zap.Int("schedules_blocked", result.SchedulesBlocked),
		zap.Int("bookings_cancelled", result.BookingsCancelled),
		zap.Int("failures", result.Failures),
	)
	return result, nil
}

// SubmitScheduleRequest files a durable schedule change request for admin
// review.
func (s *DefaultSchedulingService) SubmitScheduleRequest(ctx context.Context, req *models.ScheduleRequest) error {
	if req.DoctorID == "" {
		return ValidationError{Field: "doctor_id", Reason: "required"}
	}
	if _, err := parseDate(req.Date); err != nil {
		return ValidationError{Field: "date", Reason: err.Error()}
	}
	switch req.Type {
	case models.ScheduleRequestCancel:
	case models.ScheduleRequestReschedule:
		if _, err := parseDate(req.NewDate); err != nil {
			return ValidationError{Field: "new_date", Reason: err.Error()}
		}
	default:
		return ValidationError{Field: "type", Reason: "must be cancel or reschedule"}
	}
	return s.Requests.Create(ctx, req)
}

// DecideScheduleRequest approves or rejects a pending schedule request. An
// approved cancel request blocks the day and cascades like a one-day leave;
// an approved reschedule request moves the schedule and cancels bookings on
// the vacated day so patients can rebook.
func (s *DefaultSchedulingService) DecideScheduleRequest(ctx context.Context, requestID string, approve bool, adminComment string) (*models.CascadeResult, error) {
	if !approve {
		return nil, s.Requests.UpdateStatus(ctx, requestID, models.RequestPending, models.RequestRejected, adminComment)
	}

	req, err := s.Requests.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.Status != models.RequestApproved {
		if err := s.Requests.UpdateStatus(ctx, requestID, models.RequestPending, models.RequestApproved, adminComment); err != nil {
			return nil, err
		}
	}

	if req.Type == models.ScheduleRequestReschedule {
		doctor, err := s.Doctors.GetByID(ctx, req.DoctorID)
		if err != nil {
			return nil, fmt.Errorf("doctor lookup failed: %w", err)
		}
		target, err := s.effectiveSchedule(ctx, doctor, req.NewDate)
		if err != nil {
			return nil, err
		}
		if req.NewWorkingHours != nil {
			target.WorkingHours = *req.NewWorkingHours
		}
		target.IsAvailable = true
		target.LeaveReason = ""
		if err := s.Schedules.Upsert(ctx, target); err != nil {
			return nil, err
		}
	}

	return s.cascade(ctx, req.DoctorID, req.Date, req.Date, "", req.Reason)
}

// ListPendingScheduleRequests returns the admin review queue.
func (s *DefaultSchedulingService) ListPendingScheduleRequests(ctx context.Context) ([]models.ScheduleRequest, error) {
	return s.Requests.ListPending(ctx)
}
