package handlers

import (
	"cliniq/services/scheduling"

	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	Service scheduling.SchedulingService

	// Availability and booking endpoints
	CheckAvailability      gin.HandlerFunc
	DepartmentAvailability gin.HandlerFunc
	CreateBooking          gin.HandlerFunc
	AutoAssign             gin.HandlerFunc
	GetBooking             gin.HandlerFunc
	CancelBooking          gin.HandlerFunc
	RescheduleBooking      gin.HandlerFunc
	AdvanceBooking         gin.HandlerFunc
	ListQueue              gin.HandlerFunc
	ListPatientBookings    gin.HandlerFunc

	// Leave endpoints
	RequestLeave gin.HandlerFunc
	ApproveLeave gin.HandlerFunc
	RejectLeave  gin.HandlerFunc
	CancelLeave  gin.HandlerFunc
	ListLeaves   gin.HandlerFunc

	// Schedule endpoints
	GetSchedule           gin.HandlerFunc
	UpsertSchedule        gin.HandlerFunc
	PregenerateSchedules  gin.HandlerFunc
	SubmitScheduleRequest gin.HandlerFunc
	DecideScheduleRequest gin.HandlerFunc
	ListScheduleRequests  gin.HandlerFunc
}

// NewHandlerBundle wires every endpoint handler against one scheduling
// service instance.
func NewHandlerBundle(svc scheduling.SchedulingService) *HandlerBundle {
	return &HandlerBundle{
		Service: svc,

		CheckAvailability:      CheckAvailabilityHandler(svc),
		DepartmentAvailability: DepartmentAvailabilityHandler(svc),
		CreateBooking:          CreateBookingHandler(svc),
		AutoAssign:             AutoAssignHandler(svc),
		GetBooking:             GetBookingHandler(svc),
		CancelBooking:          CancelBookingHandler(svc),
		RescheduleBooking:      RescheduleBookingHandler(svc),
		AdvanceBooking:         AdvanceBookingHandler(svc),
		ListQueue:              ListQueueHandler(svc),
		ListPatientBookings:    ListPatientBookingsHandler(svc),

		RequestLeave: RequestLeaveHandler(svc),
		ApproveLeave: ApproveLeaveHandler(svc),
		RejectLeave:  RejectLeaveHandler(svc),
		CancelLeave:  CancelLeaveHandler(svc),
		ListLeaves:   ListLeavesHandler(svc),

		GetSchedule:           GetScheduleHandler(svc),
		UpsertSchedule:        UpsertScheduleHandler(svc),
		PregenerateSchedules:  PregenerateSchedulesHandler(svc),
		SubmitScheduleRequest: SubmitScheduleRequestHandler(svc),
		DecideScheduleRequest: DecideScheduleRequestHandler(svc),
		ListScheduleRequests:  ListScheduleRequestsHandler(svc),
	}
}
