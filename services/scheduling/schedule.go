package scheduling

import (
	"context"
	"fmt"

	"cliniq/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// GetSchedule returns the schedule governing (doctor, date): the stored
// document, or a synthetic one from the doctor's defaults.
func (s *DefaultSchedulingService) GetSchedule(ctx context.Context, doctorID, date string) (*models.Schedule, error) {
	if _, err := parseDate(date); err != nil {
		return nil, ValidationError{Field: "date", Reason: err.Error()}
	}
	doctor, err := s.Doctors.GetByID(ctx, doctorID)
	if err != nil {
		return nil, fmt.Errorf("doctor lookup failed: %w", err)
	}
	return s.effectiveSchedule(ctx, doctor, date)
}

// UpsertSchedule writes a full day schedule after basic shape validation.
func (s *DefaultSchedulingService) UpsertSchedule(ctx context.Context, schedule *models.Schedule) error {
	if schedule.DoctorID == "" {
		return ValidationError{Field: "doctor_id", Reason: "required"}
	}
	if _, err := parseDate(schedule.Date); err != nil {
		return ValidationError{Field: "date", Reason: err.Error()}
	}
	if schedule.IsAvailable {
		// generateSlots validates working hours, break window, and slot
		// duration in one pass.
		if _, err := generateSlots(schedule); err != nil {
			return err
		}
	}
	if schedule.ID == "" {
		schedule.ID = uuid.New().String()
	}
	return s.Schedules.Upsert(ctx, schedule)
}

// PregenerateSchedules materializes schedule documents from the doctor's
// defaults across an inclusive date range, skipping days that already have
// one. Returns how many documents were created.
func (s *DefaultSchedulingService) PregenerateSchedules(ctx context.Context, doctorID, from, to string) (int, error) {
	doctor, err := s.Doctors.GetByID(ctx, doctorID)
	if err != nil {
		return 0, fmt.Errorf("doctor lookup failed: %w", err)
	}

	dates, err := datesBetween(from, to)
	if err != nil {
		return 0, ValidationError{Field: "date range", Reason: err.Error()}
	}

	existing, err := s.Schedules.ListForDoctor(ctx, doctorID, from, to)
	if err != nil {
		return 0, fmt.Errorf("schedule list failed: %w", err)
	}
	have := make(map[string]bool, len(existing))
	for _, sched := range existing {
		have[sched.Date] = true
	}

	d := doctor.Defaults
	var batch []models.Schedule
	for _, date := range dates {
		if have[date] {
			continue
		}
		batch = append(batch, models.Schedule{
			ID:               uuid.New().String(),
			DoctorID:         doctorID,
			Date:             date,
			IsAvailable:      true,
			WorkingHours:     d.WorkingHours,
			BreakTime:        d.BreakTime,
			SlotDuration:     d.SlotDuration,
			MorningSession:   d.MorningSession,
			AfternoonSession: d.AfternoonSession,
		})
	}
	if len(batch) == 0 {
		return 0, nil
	}

	if err := s.Schedules.CreateMany(ctx, batch); err != nil {
		return 0, fmt.Errorf("schedule batch insert failed: %w", err)
	}

	s.logger().Info("schedules pregenerated",
		zap.String("doctor_id", doctorID),
		zap.String("from", from),
		zap.String("to", to),
		zap.Int("created", len(batch)),
	)
	return len(batch), nil
}
