package routes

import (
	"net/http"
	"time"

	"cliniq/handlers"
	"cliniq/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAvailabilityRoutes registers the public availability endpoints.
func RegisterAvailabilityRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/availability")
	{
		api.GET("", hb.DepartmentAvailability)
		api.GET("/:doctorID", hb.CheckAvailability)
	}
}

// RegisterBookingRoutes registers the booking engine endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/bookings")
	{
		api.POST("", middleware.RequireCapability(middleware.CapBookingCreate), hb.CreateBooking)
		api.POST("/auto-assign", middleware.RequireCapability(middleware.CapBookingCreate), hb.AutoAssign)

		manage := api.Group("")
		manage.Use(middleware.RequireCapability(middleware.CapBookingManage))
		manage.GET("/:id", hb.GetBooking)
		manage.PUT("/:id/cancel", hb.CancelBooking)
		manage.PUT("/:id/reschedule", hb.RescheduleBooking)
		manage.GET("/patient/:patientID", hb.ListPatientBookings)

		api.PUT("/:id/status", middleware.RequireCapability(middleware.CapBookingAdvance), hb.AdvanceBooking)
		api.GET("/queue/:doctorID", middleware.RequireCapability(middleware.CapQueueView), hb.ListQueue)
	}
}

// RegisterLeaveRoutes registers the leave workflow endpoints.
func RegisterLeaveRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/leaves")
	{
		api.POST("", middleware.RequireCapability(middleware.CapLeaveRequest), hb.RequestLeave)
		api.GET("", middleware.RequireCapability(middleware.CapLeaveView), hb.ListLeaves)
		api.PUT("/:id/cancel", middleware.RequireCapability(middleware.CapLeaveRequest), hb.CancelLeave)

		decide := api.Group("")
		decide.Use(middleware.RequireCapability(middleware.CapLeaveDecide))
		decide.PUT("/:id/approve", hb.ApproveLeave)
		decide.PUT("/:id/reject", hb.RejectLeave)
	}
}

// RegisterScheduleRoutes registers schedule management and the durable
// schedule change request workflow.
func RegisterScheduleRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/schedules")
	{
		api.GET("/:doctorID", hb.GetSchedule)

		admin := api.Group("")
		admin.Use(middleware.RequireCapability(middleware.CapScheduleWrite))
		admin.PUT("/:doctorID", hb.UpsertSchedule)
		admin.POST("/:doctorID/pregenerate", hb.PregenerateSchedules)
	}

	reqs := r.Group("/api/schedule-requests")
	{
		reqs.POST("", middleware.RequireCapability(middleware.CapScheduleSubmit), hb.SubmitScheduleRequest)

		admin := reqs.Group("")
		admin.Use(middleware.RequireCapability(middleware.CapScheduleDecide))
		admin.GET("", hb.ListScheduleRequests)
		admin.PUT("/:id", hb.DecideScheduleRequest)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterAvailabilityRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterLeaveRoutes(r, hb)
	RegisterScheduleRoutes(r, hb)
}
