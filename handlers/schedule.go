package handlers

import (
	"net/http"

	"cliniq/models"
	"cliniq/services/scheduling"

	"github.com/gin-gonic/gin"
)

// GetScheduleHandler returns the effective schedule for a doctor and date.
func GetScheduleHandler(svc scheduling.SchedulingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		schedule, err := svc.GetSchedule(c.Request.Context(), c.Param("doctorID"), c.Query("date"))
		if err != nil {
			respondSchedulingError(c, err)
			return
		}
		c.JSON(http.StatusOK, schedule)
	}
}

// UpsertScheduleHandler writes a full day schedule for a doctor.
func UpsertScheduleHandler(svc scheduling.SchedulingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var schedule models.Schedule
		if err := c.ShouldBindJSON(&schedule); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
			return
		}
		schedule.DoctorID = c.Param("doctorID")

		if err := svc.UpsertSchedule(c.Request.Context(), &schedule); err != nil {
			respondSchedulingError(c, err)
			return
		}
		c.JSON(http.StatusOK, schedule)
	}
}

// PregenerateSchedulesHandler materializes default schedules for a doctor
// across a date range.
func PregenerateSchedulesHandler(svc scheduling.SchedulingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			From string `json:"from"`
			To   string `json:"to"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
			return
		}

		created, err := svc.PregenerateSchedules(c.Request.Context(), c.Param("doctorID"), input.From, input.To)
		if err != nil {
			respondSchedulingError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"created": created})
	}
}

// SubmitScheduleRequestHandler files a durable schedule change request.
func SubmitScheduleRequestHandler(svc scheduling.SchedulingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.ScheduleRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
			return
		}

		if err := svc.SubmitScheduleRequest(c.Request.Context(), &req); err != nil {
			respondSchedulingError(c, err)
			return
		}
		c.JSON(http.StatusCreated, req)
	}
}

// DecideScheduleRequestHandler approves or rejects a pending schedule
// request; approvals return the resulting cascade summary.
func DecideScheduleRequestHandler(svc scheduling.SchedulingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Approve      bool   `json:"approve"`
			AdminComment string `json:"admin_comment,omitempty"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
			return
		}

		result, err := svc.DecideScheduleRequest(c.Request.Context(), c.Param("id"), input.Approve, input.AdminComment)
		if err != nil {
			respondSchedulingError(c, err)
			return
		}
		if result == nil {
			c.JSON(http.StatusOK, gin.H{"status": models.RequestRejected})
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

// ListScheduleRequestsHandler returns the admin review queue.
func ListScheduleRequestsHandler(svc scheduling.SchedulingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		requests, err := svc.ListPendingScheduleRequests(c.Request.Context())
		if err != nil {
			respondSchedulingError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"requests": requests, "count": len(requests)})
	}
}
