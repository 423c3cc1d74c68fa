package scheduling

import (
	"context"
	"fmt"
	"sort"

	"cliniq/models"
)

// maxAlternatives caps the next-best doctors returned alongside the primary.
const maxAlternatives = 3

// AutoAssign picks the least-loaded doctor in a department whose session is
// still open, plus up to three alternatives with their loads. Advisory and
// read-only: the caller still goes through validation and token allocation
// with the returned doctor.
func (s *DefaultSchedulingService) AutoAssign(ctx context.Context, department, date, sessionType string) (*models.Assignment, error) {
	if department == "" {
		return nil, ValidationError{Field: "department", Reason: "required"}
	}
	if _, err := parseDate(date); err != nil {
		return nil, ValidationError{Field: "date", Reason: err.Error()}
	}

	doctors, err := s.Doctors.ListByDepartment(ctx, department)
	if err != nil {
		return nil, fmt.Errorf("department lookup failed: %w", err)
	}
	if len(doctors) == 0 {
		return nil, fmt.Errorf("%w: no doctors in department %s", ErrDoctorUnavailable, department)
	}

	var candidates []models.DoctorLoad
	for _, doctor := range doctors {
		open, err := s.sessionOpen(ctx, doctor, date, sessionType)
		if err != nil {
			return nil, err
		}
		if !open {
			continue
		}

		load, err := s.Bookings.CountActiveForDoctorDate(ctx, doctor.ID, date, sessionType)
		if err != nil {
			return nil, fmt.Errorf("load count failed for doctor %s: %w", doctor.ID, err)
		}
		candidates = append(candidates, models.DoctorLoad{
			DoctorID:   doctor.ID,
			DoctorName: doctor.Name,
			Load:       load,
		})
	}

	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w: no open %s session in department %s on %s", ErrSessionClosed, sessionType, department, date)
	}

	// Minimum load first; ties broken by doctor ID for determinism.
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Load != candidates[j].Load {
			return candidates[i].Load < candidates[j].Load
		}
		return candidates[i].DoctorID < candidates[j].DoctorID
	})

	assignment := &models.Assignment{Primary: candidates[0]}
	rest := candidates[1:]
	if len(rest) > maxAlternatives {
		rest = rest[:maxAlternatives]
	}
	assignment.Alternatives = append(assignment.Alternatives, rest...)
	return assignment, nil
}

// sessionOpen reports whether the resolver considers a doctor's session
// bookable: schedule available, session available, capacity remaining, and
// the same-day cutoff not yet passed.
func (s *DefaultSchedulingService) sessionOpen(ctx context.Context, doctor models.Doctor, date, sessionType string) (bool, error) {
	schedule, err := s.effectiveSchedule(ctx, &doctor, date)
	if err != nil {
		return false, err
	}
	if !schedule.IsAvailable {
		return false, nil
	}

	session, ok := schedule.SessionFor(sessionType)
	if !ok || !session.Available {
		return false, nil
	}

	booked, err := s.Bookings.CountActiveInClockRange(ctx, doctor.ID, date, session.Start, session.End)
	if err != nil {
		return false, fmt.Errorf("capacity count failed for doctor %s: %w", doctor.ID, err)
	}
	if booked >= session.MaxPatients {
		return false, nil
	}

	cutoffPassed, err := s.cutoffPassed(date, session)
	if err != nil {
		return false, err
	}
	return !cutoffPassed, nil
}
