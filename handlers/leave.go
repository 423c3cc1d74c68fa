package handlers

import (
	"net/http"

	"cliniq/models"
	"cliniq/services/scheduling"

	"github.com/gin-gonic/gin"
)

// RequestLeaveHandler files a leave request for admin review.
func RequestLeaveHandler(svc scheduling.SchedulingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.LeaveRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
			return
		}

		if err := svc.RequestLeave(c.Request.Context(), &req); err != nil {
			respondSchedulingError(c, err)
			return
		}
		c.JSON(http.StatusCreated, req)
	}
}

// ApproveLeaveHandler approves a pending leave request and returns the
// cascade summary: schedules blocked, bookings cancelled, failures.
func ApproveLeaveHandler(svc scheduling.SchedulingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			AdminComment string `json:"admin_comment,omitempty"`
		}
		// Body is optional on approval.
		_ = c.ShouldBindJSON(&input)

		result, err := svc.ApproveLeave(c.Request.Context(), c.Param("id"), input.AdminComment)
		if err != nil {
			respondSchedulingError(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

// RejectLeaveHandler rejects a pending leave request.
func RejectLeaveHandler(svc scheduling.SchedulingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			AdminComment string `json:"admin_comment,omitempty"`
		}
		_ = c.ShouldBindJSON(&input)

		if err := svc.RejectLeave(c.Request.Context(), c.Param("id"), input.AdminComment); err != nil {
			respondSchedulingError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": models.LeaveRejected})
	}
}

// CancelLeaveHandler withdraws the caller's own pending leave request. The
// owning doctor ID comes from the authenticated subject.
func CancelLeaveHandler(svc scheduling.SchedulingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.CancelLeave(c.Request.Context(), c.Param("id"), c.GetString("subject")); err != nil {
			respondSchedulingError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": models.LeaveCancelled})
	}
}

// ListLeavesHandler lists leave requests filtered by ?doctor_id= and
// ?status=.
func ListLeavesHandler(svc scheduling.SchedulingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		leaves, err := svc.ListLeaves(c.Request.Context(), c.Query("doctor_id"), c.Query("status"))
		if err != nil {
			respondSchedulingError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"leaves": leaves, "count": len(leaves)})
	}
}
