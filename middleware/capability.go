package middleware

import (
	"net/http"
	"strings"

	"cliniq/utils"

	"github.com/gin-gonic/gin"
)

// Staff and caller roles carried in the JWT "role" claim.
const (
	RolePatient      = "patient"
	RoleDoctor       = "doctor"
	RoleReceptionist = "receptionist"
	RoleAdmin        = "admin"
)

// Capabilities guarding route groups. Authorization is a single role ->
// capability lookup at the boundary; handlers never re-check roles.
const (
	CapBookingCreate  = "booking:create"
	CapBookingManage  = "booking:manage"
	CapBookingAdvance = "booking:advance"
	CapQueueView      = "queue:view"
	CapLeaveRequest   = "leave:request"
	CapLeaveDecide    = "leave:decide"
	CapLeaveView      = "leave:view"
	CapScheduleWrite  = "schedule:write"
	CapScheduleSubmit = "schedule:submit"
	CapScheduleDecide = "schedule:decide"
)

// rolePolicy is the single source of truth for what each role may do.
var rolePolicy = map[string]map[string]bool{
	RolePatient: {
		CapBookingCreate: true,
		CapBookingManage: true,
	},
	RoleDoctor: {
		CapBookingAdvance: true,
		CapQueueView:      true,
		CapLeaveRequest:   true,
		CapLeaveView:      true,
		CapScheduleSubmit: true,
	},
	RoleReceptionist: {
		CapBookingCreate:  true,
		CapBookingManage:  true,
		CapBookingAdvance: true,
		CapQueueView:      true,
		CapLeaveView:      true,
	},
	RoleAdmin: {
		CapBookingCreate:  true,
		CapBookingManage:  true,
		CapBookingAdvance: true,
		CapQueueView:      true,
		CapLeaveRequest:   true,
		CapLeaveDecide:    true,
		CapLeaveView:      true,
		CapScheduleWrite:  true,
		CapScheduleSubmit: true,
		CapScheduleDecide: true,
	},
}

// roleHas reports whether a role carries a capability.
func roleHas(role, capability string) bool {
	return rolePolicy[role][capability]
}

// RequireCapability authenticates the bearer token and authorizes the
// request against the role policy. The subject and role land in the gin
// context for handlers that record actors.
func RequireCapability(capability string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		subject, role, err := utils.ExtractClaims(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		if !roleHas(role, capability) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			return
		}

		c.Set("subject", subject)
		c.Set("role", role)
		c.Next()
	}
}
