package scheduling

import (
	"context"
	"testing"

	"cliniq/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPregenerateSchedulesSkipsExisting(t *testing.T) {
	env := newTestEnv(testDoctor("doc-1", "cardiology"))
	ctx := context.Background()

	// One day already has a hand-written schedule.
	existing := &models.Schedule{
		ID:          "s-1",
		DoctorID:    "doc-1",
		Date:        "2026-03-03",
		IsAvailable: false,
		LeaveReason: "conference",
	}
	require.NoError(t, env.schedules.Upsert(ctx, existing))

	created, err := env.svc.PregenerateSchedules(ctx, "doc-1", "2026-03-02", "2026-03-06")
	require.NoError(t, err)
	assert.Equal(t, 4, created)

	// The existing day is untouched.
	got, err := env.schedules.Get(ctx, "doc-1", "2026-03-03")
	require.NoError(t, err)
	assert.False(t, got.IsAvailable)

	// A generated day carries the doctor's defaults.
	gen, err := env.schedules.Get(ctx, "doc-1", "2026-03-04")
	require.NoError(t, err)
	require.NotNil(t, gen)
	assert.True(t, gen.IsAvailable)
	assert.Equal(t, "09:00", gen.WorkingHours.Start)
	assert.Equal(t, 30, gen.SlotDuration)
}

func TestUpsertScheduleValidatesShape(t *testing.T) {
	env := newTestEnv(testDoctor("doc-1", "cardiology"))
	ctx := context.Background()

	err := env.svc.UpsertSchedule(ctx, &models.Schedule{
		DoctorID:     "doc-1",
		Date:         "2026-03-02",
		IsAvailable:  true,
		WorkingHours: models.TimeRange{Start: "09:00", End: "17:00"},
		SlotDuration: 0,
	})
	var ve ValidationError
	assert.ErrorAs(t, err, &ve)

	good := &models.Schedule{
		DoctorID:         "doc-1",
		Date:             "2026-03-02",
		IsAvailable:      true,
		WorkingHours:     models.TimeRange{Start: "10:00", End: "16:00"},
		SlotDuration:     20,
		MorningSession:   models.Session{Available: true, Start: "10:00", End: "13:00", MaxPatients: 5},
		AfternoonSession: models.Session{Available: true, Start: "13:00", End: "16:00", MaxPatients: 5},
	}
	require.NoError(t, env.svc.UpsertSchedule(ctx, good))
	assert.NotEmpty(t, good.ID)
}

func TestScheduleRequestWorkflow(t *testing.T) {
	env := newTestEnv(testDoctor("doc-1", "cardiology"))
	ctx := context.Background()

	bookFor(t, env, "pat-1", "", "doc-1", "2026-03-02")

	req := &models.ScheduleRequest{
		DoctorID: "doc-1",
		Type:     models.ScheduleRequestCancel,
		Date:     "2026-03-02",
		Reason:   "emergency surgery",
	}
	require.NoError(t, env.svc.SubmitScheduleRequest(ctx, req))
	assert.Equal(t, models.RequestPending, req.Status)

	pending, err := env.svc.ListPendingScheduleRequests(ctx)
	require.NoError(t, err)
	assert.Len(t, pending, 1)

	result, err := env.svc.DecideScheduleRequest(ctx, req.ID, true, "approved")
	require.NoError(t, err)
	assert.Equal(t, 1, result.SchedulesBlocked)
	assert.Equal(t, 1, result.BookingsCancelled)

	schedule, err := env.schedules.Get(ctx, "doc-1", "2026-03-02")
	require.NoError(t, err)
	assert.False(t, schedule.IsAvailable)

	pending, err = env.svc.ListPendingScheduleRequests(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestScheduleRequestRejection(t *testing.T) {
	env := newTestEnv(testDoctor("doc-1", "cardiology"))
	ctx := context.Background()

	conf := bookFor(t, env, "pat-1", "", "doc-1", "2026-03-02")
	req := &models.ScheduleRequest{
		DoctorID: "doc-1",
		Type:     models.ScheduleRequestCancel,
		Date:     "2026-03-02",
	}
	require.NoError(t, env.svc.SubmitScheduleRequest(ctx, req))

	result, err := env.svc.DecideScheduleRequest(ctx, req.ID, false, "find a locum instead")
	require.NoError(t, err)
	assert.Nil(t, result)

	b, err := env.bookings.GetByID(ctx, conf.BookingID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusBooked, b.Status)
}

func TestRescheduleRequestMovesClinicDay(t *testing.T) {
	env := newTestEnv(testDoctor("doc-1", "cardiology"))
	ctx := context.Background()

	bookFor(t, env, "pat-1", "", "doc-1", "2026-03-02")

	req := &models.ScheduleRequest{
		DoctorID: "doc-1",
		Type:     models.ScheduleRequestReschedule,
		Date:     "2026-03-02",
		NewDate:  "2026-03-04",
		Reason:   "clinic moved",
	}
	require.NoError(t, env.svc.SubmitScheduleRequest(ctx, req))

	result, err := env.svc.DecideScheduleRequest(ctx, req.ID, true, "")
	require.NoError(t, err)
	assert.Equal(t, 1, result.BookingsCancelled)

	// The vacated day is blocked, the target day exists and is open.
	old, err := env.schedules.Get(ctx, "doc-1", "2026-03-02")
	require.NoError(t, err)
	assert.False(t, old.IsAvailable)

	target, err := env.schedules.Get(ctx, "doc-1", "2026-03-04")
	require.NoError(t, err)
	require.NotNil(t, target)
	assert.True(t, target.IsAvailable)
}

func TestSubmitScheduleRequestValidation(t *testing.T) {
	env := newTestEnv(testDoctor("doc-1", "cardiology"))
	ctx := context.Background()

	var ve ValidationError
	err := env.svc.SubmitScheduleRequest(ctx, &models.ScheduleRequest{
		DoctorID: "doc-1",
		Type:     "postpone",
		Date:     "2026-03-02",
	})
	assert.ErrorAs(t, err, &ve)

	err = env.svc.SubmitScheduleRequest(ctx, &models.ScheduleRequest{
		DoctorID: "doc-1",
		Type:     models.ScheduleRequestReschedule,
		Date:     "2026-03-02",
	})
	assert.ErrorAs(t, err, &ve)
}
