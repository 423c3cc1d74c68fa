package scheduling

import (
	"context"
	"time"

	bookingRepo "cliniq/database/repository/booking"
	counterRepo "cliniq/database/repository/counter"
	doctorRepo "cliniq/database/repository/doctor"
	leaveRepo "cliniq/database/repository/leave"
	scheduleRepo "cliniq/database/repository/schedule"
	schedulereqRepo "cliniq/database/repository/schedulereq"

	"cliniq/config"
	"cliniq/models"
	"cliniq/utils"

	"go.uber.org/zap"
)

// SchedulingService is the appointment scheduling and token-allocation
// engine: availability resolution, booking validation, token sequencing,
// auto-assignment, and the leave cascade.
type SchedulingService interface {
	// Availability and booking path.
	CheckAvailability(ctx context.Context, doctorID, date string) (*models.DayAvailability, error)
	CheckDepartmentAvailability(ctx context.Context, department, date string) ([]models.DayAvailability, error)
	CreateBooking(ctx context.Context, req models.BookingRequest) (*models.BookingConfirmation, error)
	AutoAssign(ctx context.Context, department, date, sessionType string) (*models.Assignment, error)

	// Booking lifecycle.
	GetBooking(ctx context.Context, bookingID string) (*models.Booking, error)
	CancelBooking(ctx context.Context, bookingID, actor, reason string) (*models.Booking, error)
	RescheduleBooking(ctx context.Context, bookingID, newDate, newTimeSlot, newDoctorID string) (*models.Booking, error)
	AdvanceBooking(ctx context.Context, bookingID, newStatus string) (*models.Booking, error)
	ListQueue(ctx context.Context, doctorID, date string) ([]models.Booking, error)
	ListPatientBookings(ctx context.Context, patientID string) ([]models.Booking, error)

	// Leave workflow.
	RequestLeave(ctx context.Context, req *models.LeaveRequest) error
	ApproveLeave(ctx context.Context, requestID, adminComment string) (*models.CascadeResult, error)
	RejectLeave(ctx context.Context, requestID, adminComment string) error
	CancelLeave(ctx context.Context, requestID, doctorID string) error
	ListLeaves(ctx context.Context, doctorID, status string) ([]models.LeaveRequest, error)

	// Schedule management.
	GetSchedule(ctx context.Context, doctorID, date string) (*models.Schedule, error)
	UpsertSchedule(ctx context.Context, schedule *models.Schedule) error
	PregenerateSchedules(ctx context.Context, doctorID, from, to string) (int, error)

	// Schedule change requests (durable, admin-approved).
	SubmitScheduleRequest(ctx context.Context, req *models.ScheduleRequest) error
	DecideScheduleRequest(ctx context.Context, requestID string, approve bool, adminComment string) (*models.CascadeResult, error)
	ListPendingScheduleRequests(ctx context.Context) ([]models.ScheduleRequest, error)

	// System maintenance: expire yesterday-and-older active bookings.
	ExpireStale(ctx context.Context) (int, error)
}

// DefaultSchedulingService is the production implementation.
type DefaultSchedulingService struct {
	Doctors   doctorRepo.DoctorRepository
	Schedules scheduleRepo.ScheduleRepository
	Bookings  bookingRepo.BookingRepository
	Leaves    leaveRepo.LeaveRepository
	Requests  schedulereqRepo.ScheduleRequestRepository
	Counters  counterRepo.CounterStore
	Logger    *zap.Logger

	// Engine tunables, copied from config so tests can set them directly.
	TokenMax     int
	TokenRetries int
	CutoffLead   time.Duration
	Now          func() time.Time
}

// NewDefaultSchedulingService wires the engine from config and the given
// repositories.
func NewDefaultSchedulingService(
	doctors doctorRepo.DoctorRepository,
	schedules scheduleRepo.ScheduleRepository,
	bookings bookingRepo.BookingRepository,
	leaves leaveRepo.LeaveRepository,
	requests schedulereqRepo.ScheduleRequestRepository,
	counters counterRepo.CounterStore,
) *DefaultSchedulingService {
	return &DefaultSchedulingService{
		Doctors:      doctors,
		Schedules:    schedules,
		Bookings:     bookings,
		Leaves:       leaves,
		Requests:     requests,
		Counters:     counters,
		Logger:       utils.GetLogger(),
		TokenMax:     config.AppConfig.TokenMaxPerDay,
		TokenRetries: config.AppConfig.TokenRetryAttempts,
		CutoffLead:   time.Duration(config.AppConfig.BookingCutoffMinutes) * time.Minute,
		Now:          time.Now,
	}
}

func (s *DefaultSchedulingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DefaultSchedulingService) logger() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return zap.NewNop()
}
