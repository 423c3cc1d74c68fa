package scheduling

import (
	"context"
	"fmt"
	"testing"

	"cliniq/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateBookingDerivesSlotFromToken(t *testing.T) {
	env := newTestEnv(testDoctor("doc-1", "cardiology"))

	first := bookFor(t, env, "pat-1", "", "doc-1", "2026-03-02")
	assert.Equal(t, "09:00", first.TimeSlot)
	assert.Equal(t, "T001", first.TokenID)

	second := bookFor(t, env, "pat-2", "", "doc-1", "2026-03-02")
	assert.Equal(t, "09:30", second.TimeSlot)
}

func TestCreateBookingHonorsExplicitSlot(t *testing.T) {
	env := newTestEnv(testDoctor("doc-1", "cardiology"))

	conf, err := env.svc.CreateBooking(context.Background(), models.BookingRequest{
		PatientID:   "pat-1",
		DoctorID:    "doc-1",
		Department:  "cardiology",
		Date:        "2026-03-02",
		SessionType: models.SessionMorning,
		TimeSlot:    "11:00",
	})
	require.NoError(t, err)
	assert.Equal(t, "11:00", conf.TimeSlot)
}

func TestCreateBookingAutoAssignsWhenDoctorOmitted(t *testing.T) {
	env := newTestEnv(
		testDoctor("doc-1", "cardiology"),
		testDoctor("doc-2", "cardiology"),
	)
	seedLoad(t, env, "doc-1", 2)

	conf, err := env.svc.CreateBooking(context.Background(), models.BookingRequest{
		PatientID:   "pat-9",
		Department:  "cardiology",
		Date:        "2026-03-02",
		SessionType: models.SessionMorning,
	})
	require.NoError(t, err)
	assert.Equal(t, "doc-2", conf.DoctorID)
}

func TestEstimatedWaitGrowsWithQueue(t *testing.T) {
	env := newTestEnv(testDoctor("doc-1", "cardiology"))

	first := bookFor(t, env, "pat-1", "", "doc-1", "2026-03-02")
	assert.Equal(t, "0m", first.EstimatedWait)

	second := bookFor(t, env, "pat-2", "", "doc-1", "2026-03-02")
	assert.Equal(t, "30m0s", second.EstimatedWait)

	third := bookFor(t, env, "pat-3", "", "doc-1", "2026-03-02")
	assert.Equal(t, "1h0m0s", third.EstimatedWait)
}

func TestListQueueOrderedByToken(t *testing.T) {
	env := newTestEnv(testDoctor("doc-1", "cardiology"))
	ctx := context.Background()

	for i := 1; i <= 4; i++ {
		bookFor(t, env, fmt.Sprintf("pat-%d", i), "", "doc-1", "2026-03-02")
	}

	queue, err := env.svc.ListQueue(ctx, "doc-1", "2026-03-02")
	require.NoError(t, err)
	require.Len(t, queue, 4)
	for i, b := range queue {
		assert.Equal(t, i+1, b.TokenNumber)
	}
}

func TestCreateBookingValidatesInput(t *testing.T) {
	env := newTestEnv(testDoctor("doc-1", "cardiology"))
	ctx := context.Background()

	cases := []models.BookingRequest{
		{Department: "cardiology", Date: "2026-03-02", SessionType: models.SessionMorning},
		{PatientID: "pat-1", Date: "2026-03-02", SessionType: models.SessionMorning},
		{PatientID: "pat-1", Department: "cardiology", Date: "bad", SessionType: models.SessionMorning},
		{PatientID: "pat-1", Department: "cardiology", Date: "2026-03-02", SessionType: "night"},
		{PatientID: "pat-1", Department: "cardiology", Date: "2026-03-02", SessionType: models.SessionMorning, TimeSlot: "25:99"},
	}
	for _, req := range cases {
		_, err := env.svc.CreateBooking(ctx, req)
		var ve ValidationError
		assert.ErrorAs(t, err, &ve, "request %+v should be rejected", req)
	}
}

func TestDuplicateSlotRaceFailsOnInsert(t *testing.T) {
	env := newTestEnv(testDoctor("doc-1", "cardiology"))
	ctx := context.Background()

	_, err := env.svc.CreateBooking(ctx, models.BookingRequest{
		PatientID:   "pat-1",
		DoctorID:    "doc-1",
		Department:  "cardiology",
		Date:        "2026-03-02",
		SessionType: models.SessionMorning,
		TimeSlot:    "10:00",
	})
	require.NoError(t, err)

	_, err = env.svc.CreateBooking(ctx, models.BookingRequest{
		PatientID:   "pat-2",
		DoctorID:    "doc-1",
		Department:  "cardiology",
		Date:        "2026-03-02",
		SessionType: models.SessionMorning,
		TimeSlot:    "10:00",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "slot already taken")
}
