package handlers

import (
	"net/http"

	"cliniq/models"
	"cliniq/services/scheduling"

	"github.com/gin-gonic/gin"
)

// CreateBookingHandler books an appointment and returns the token
// confirmation. Leaving doctor_id empty routes the request through the
// auto-assigner first.
func CreateBookingHandler(svc scheduling.SchedulingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.BookingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
			return
		}

		confirmation, err := svc.CreateBooking(c.Request.Context(), req)
		if err != nil {
			respondSchedulingError(c, err)
			return
		}
		c.JSON(http.StatusCreated, confirmation)
	}
}

// AutoAssignHandler previews the least-loaded doctor for a department,
// date, and session without creating a booking.
func AutoAssignHandler(svc scheduling.SchedulingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Department  string `json:"department"`
			Date        string `json:"date"`
			SessionType string `json:"session_type"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
			return
		}

		assignment, err := svc.AutoAssign(c.Request.Context(), input.Department, input.Date, input.SessionType)
		if err != nil {
			respondSchedulingError(c, err)
			return
		}
		c.JSON(http.StatusOK, assignment)
	}
}

// GetBookingHandler fetches one booking by ID.
func GetBookingHandler(svc scheduling.SchedulingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		booking, err := svc.GetBooking(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondSchedulingError(c, err)
			return
		}
		c.JSON(http.StatusOK, booking)
	}
}

// CancelBookingHandler cancels an active booking with the caller's role as
// the recorded actor.
func CancelBookingHandler(svc scheduling.SchedulingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Reason string `json:"reason"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
			return
		}

		actor := c.GetString("role")
		if actor == "" {
			actor = models.ActorPatient
		}

		booking, err := svc.CancelBooking(c.Request.Context(), c.Param("id"), actor, input.Reason)
		if err != nil {
			respondSchedulingError(c, err)
			return
		}
		c.JSON(http.StatusOK, booking)
	}
}

// RescheduleBookingHandler moves a booking to a new date, slot, or doctor.
// Cancelled bookings are revived to booked on success.
func RescheduleBookingHandler(svc scheduling.SchedulingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			NewDate     string `json:"new_date"`
			NewTimeSlot string `json:"new_time_slot,omitempty"`
			NewDoctorID string `json:"new_doctor_id,omitempty"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
			return
		}

		booking, err := svc.RescheduleBooking(c.Request.Context(), c.Param("id"), input.NewDate, input.NewTimeSlot, input.NewDoctorID)
		if err != nil {
			respondSchedulingError(c, err)
			return
		}
		c.JSON(http.StatusOK, booking)
	}
}

// AdvanceBookingHandler moves a booking along the consultation path
// (in_queue, consulted, missed, referred).
func AdvanceBookingHandler(svc scheduling.SchedulingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Status string `json:"status"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
			return
		}

		booking, err := svc.AdvanceBooking(c.Request.Context(), c.Param("id"), input.Status)
		if err != nil {
			respondSchedulingError(c, err)
			return
		}
		c.JSON(http.StatusOK, booking)
	}
}

// ListQueueHandler returns a doctor's day queue ordered by token number.
func ListQueueHandler(svc scheduling.SchedulingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		bookings, err := svc.ListQueue(c.Request.Context(), c.Param("doctorID"), c.Query("date"))
		if err != nil {
			respondSchedulingError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"queue": bookings, "count": len(bookings)})
	}
}

// ListPatientBookingsHandler returns a patient's booking history.
func ListPatientBookingsHandler(svc scheduling.SchedulingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		bookings, err := svc.ListPatientBookings(c.Request.Context(), c.Param("patientID"))
		if err != nil {
			respondSchedulingError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"bookings": bookings, "count": len(bookings)})
	}
}
