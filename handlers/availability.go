package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"cliniq/models"
	"cliniq/services/scheduling"
	"cliniq/utils"

	"github.com/gin-gonic/gin"
)

// availabilityCacheTTL is deliberately short: capacity counts go stale with
// every booking, so the cache only absorbs read bursts.
const availabilityCacheTTL = 30 * time.Second

// CheckAvailabilityHandler resolves a doctor's sessions and slots for a
// date (?date=YYYY-MM-DD), with a short-lived Redis cache in front.
func CheckAvailabilityHandler(svc scheduling.SchedulingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		doctorID := c.Param("doctorID")
		date := c.Query("date")
		cacheKey := "availability:" + doctorID + ":" + date

		cache := utils.GetCacheClient()
		if cached, err := cache.Get(c.Request.Context(), cacheKey).Result(); err == nil {
			var day models.DayAvailability
			if json.Unmarshal([]byte(cached), &day) == nil {
				c.JSON(http.StatusOK, day)
				return
			}
		}

		day, err := svc.CheckAvailability(c.Request.Context(), doctorID, date)
		if err != nil {
			respondSchedulingError(c, err)
			return
		}

		if data, err := json.Marshal(day); err == nil {
			cache.Set(c.Request.Context(), cacheKey, data, availabilityCacheTTL)
		}

		c.JSON(http.StatusOK, day)
	}
}

// DepartmentAvailabilityHandler resolves availability across every active
// doctor in a department (?department=&date=). Uncached: the fan-out result
// is as volatile as its most-booked doctor.
func DepartmentAvailabilityHandler(svc scheduling.SchedulingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		department := c.Query("department")
		if department == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": "department is required"})
			return
		}

		days, err := svc.CheckDepartmentAvailability(c.Request.Context(), department, c.Query("date"))
		if err != nil {
			respondSchedulingError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"doctors": days, "count": len(days)})
	}
}
