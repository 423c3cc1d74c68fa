package scheduling

import (
	"context"
	"fmt"

	"cliniq/models"
)

// tokenScope is the counter key for a booking day (global per-day sequence).
func tokenScope(date string) string {
	return "tokens:" + date
}

// effectiveSchedule returns the Schedule governing (doctor, date): the stored
// document when one exists, otherwise a synthetic schedule built from the
// doctor's defaults with sessions available.
func (s *DefaultSchedulingService) effectiveSchedule(ctx context.Context, doctor *models.Doctor, date string) (*models.Schedule, error) {
	schedule, err := s.Schedules.Get(ctx, doctor.ID, date)
	if err != nil {
		return nil, fmt.Errorf("schedule lookup failed: %w", err)
	}
	if schedule != nil {
		return schedule, nil
	}

	d := doctor.Defaults
	return &models.Schedule{
		DoctorID:         doctor.ID,
		Date:             date,
		IsAvailable:      true,
		WorkingHours:     d.WorkingHours,
		BreakTime:        d.BreakTime,
		SlotDuration:     d.SlotDuration,
		MorningSession:   d.MorningSession,
		AfternoonSession: d.AfternoonSession,
	}, nil
}

// CheckAvailability resolves a doctor's bookable sessions and slots for a
// date. A missing Schedule falls back to the doctor's defaults; an
// unavailable Schedule yields zero slots with the leave reason surfaced.
func (s *DefaultSchedulingService) CheckAvailability(ctx context.Context, doctorID, date string) (*models.DayAvailability, error) {
	if _, err := parseDate(date); err != nil {
		return nil, ValidationError{Field: "date", Reason: err.Error()}
	}

	doctor, err := s.Doctors.GetByID(ctx, doctorID)
	if err != nil {
		return nil, fmt.Errorf("doctor lookup failed: %w", err)
	}

	schedule, err := s.effectiveSchedule(ctx, doctor, date)
	if err != nil {
		return nil, err
	}

	day := &models.DayAvailability{
		DoctorID: doctorID,
		Date:     date,
	}

	if !schedule.IsAvailable {
		day.OnLeave = true
		day.LeaveReason = schedule.LeaveReason
		return day, nil
	}

	slots, err := generateSlots(schedule)
	if err != nil {
		return nil, err
	}
	day.Slots = slots

	for _, sessionType := range []string{models.SessionMorning, models.SessionAfternoon} {
		session, _ := schedule.SessionFor(sessionType)
		sa, err := s.sessionAvailability(ctx, schedule, sessionType, session)
		if err != nil {
			return nil, err
		}
		day.Sessions = append(day.Sessions, sa)
	}

	return day, nil
}

// CheckDepartmentAvailability resolves availability for every active doctor
// in a department, in the same deterministic ID order the auto-assigner uses.
func (s *DefaultSchedulingService) CheckDepartmentAvailability(ctx context.Context, department, date string) ([]models.DayAvailability, error) {
	if _, err := parseDate(date); err != nil {
		return nil, ValidationError{Field: "date", Reason: err.Error()}
	}

	doctors, err := s.Doctors.ListByDepartment(ctx, department)
	if err != nil {
		return nil, fmt.Errorf("doctor list failed: %w", err)
	}

	days := make([]models.DayAvailability, 0, len(doctors))
	for _, doctor := range doctors {
		day, err := s.CheckAvailability(ctx, doctor.ID, date)
		if err != nil {
			return nil, err
		}
		days = append(days, *day)
	}
	return days, nil
}

// generateSlots produces clock-time slots at slot-duration increments across
// working hours, excluding any slot that overlaps the break window.
func generateSlots(schedule *models.Schedule) ([]models.SlotInfo, error) {
	start, err := parseClock(schedule.WorkingHours.Start)
	if err != nil {
		return nil, ValidationError{Field: "working_hours.start", Reason: err.Error()}
	}
	end, err := parseClock(schedule.WorkingHours.End)
	if err != nil {
		return nil, ValidationError{Field: "working_hours.end", Reason: err.Error()}
	}
	dur := schedule.SlotDuration
	if dur <= 0 {
		return nil, ValidationError{Field: "slot_duration", Reason: "must be positive"}
	}

	breakStart, breakEnd := -1, -1
	if schedule.BreakTime != nil {
		if breakStart, err = parseClock(schedule.BreakTime.Start); err != nil {
			return nil, ValidationError{Field: "break_time.start", Reason: err.Error()}
		}
		if breakEnd, err = parseClock(schedule.BreakTime.End); err != nil {
			return nil, ValidationError{Field: "break_time.end", Reason: err.Error()}
		}
	}

	var slots []models.SlotInfo
	for t := start; t+dur <= end; t += dur {
		// Skip slots overlapping the break window.
		if breakStart >= 0 && t < breakEnd && t+dur > breakStart {
			continue
		}
		slots = append(slots, models.SlotInfo{
			Time:        formatClock(t),
			SessionType: sessionTypeFor(schedule, t),
		})
	}
	return slots, nil
}

// sessionTypeFor labels a slot start time with the session containing it.
func sessionTypeFor(schedule *models.Schedule, minutes int) string {
	for _, st := range []string{models.SessionMorning, models.SessionAfternoon} {
		session, _ := schedule.SessionFor(st)
		start, err1 := parseClock(session.Start)
		end, err2 := parseClock(session.End)
		if err1 != nil || err2 != nil {
			continue
		}
		if minutes >= start && minutes < end {
			return st
		}
	}
	return ""
}

// sessionAvailability computes one session's capacity usage, cutoff state,
// and the next display slot. The next slot comes from the next token number
// rather than from scanning discrete clock slots:
//
//	slot_time = session_start + (token_number - 1) * slot_duration
func (s *DefaultSchedulingService) sessionAvailability(ctx context.Context, schedule *models.Schedule, sessionType string, session models.Session) (models.SessionAvailability, error) {
	sa := models.SessionAvailability{
		SessionType: sessionType,
		Start:       session.Start,
		End:         session.End,
		MaxPatients: session.MaxPatients,
	}
	if !session.Available {
		return sa, nil
	}

	booked, err := s.Bookings.CountActiveInClockRange(ctx, schedule.DoctorID, schedule.Date, session.Start, session.End)
	if err != nil {
		return sa, fmt.Errorf("capacity count failed: %w", err)
	}
	sa.BookedCount = booked

	cutoffPassed, err := s.cutoffPassed(schedule.Date, session)
	if err != nil {
		return sa, err
	}
	sa.CutoffPassed = cutoffPassed
	sa.Available = booked < session.MaxPatients && !cutoffPassed

	if sa.Available {
		current, err := s.Counters.Peek(ctx, tokenScope(schedule.Date))
		if err != nil {
			return sa, fmt.Errorf("counter peek failed: %w", err)
		}
		nextToken := int(current) + 1
		slot, err := derivedSlotTime(session, schedule.SlotDuration, nextToken)
		if err != nil {
			return sa, err
		}
		sa.NextSlotTime = slot
	}

	return sa, nil
}

// cutoffPassed reports whether a same-day session's booking window has
// closed (now is at or past session_start minus the cutoff lead). Future
// dates never hit the cutoff.
func (s *DefaultSchedulingService) cutoffPassed(date string, session models.Session) (bool, error) {
	now := s.now()
	if date != now.Format(dateLayout) {
		return false, nil
	}
	startMin, err := parseClock(session.Start)
	if err != nil {
		return false, ValidationError{Field: "session.start", Reason: err.Error()}
	}
	cutoff := clockOn(now, startMin).Add(-s.CutoffLead)
	return !now.Before(cutoff), nil
}

// derivedSlotTime maps a token number onto the session's slot grid.
func derivedSlotTime(session models.Session, slotDuration, tokenNumber int) (string, error) {
	start, err := parseClock(session.Start)
	if err != nil {
		return "", ValidationError{Field: "session.start", Reason: err.Error()}
	}
	return formatClock(start + (tokenNumber-1)*slotDuration), nil
}
