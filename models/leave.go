package models

import "time"

// Leave request statuses.
const (
	LeavePending   = "pending"
	LeaveApproved  = "approved"
	LeaveRejected  = "rejected"
	LeaveCancelled = "cancelled"
)

// Leave types.
const (
	LeaveFullDay = "full_day"
	LeaveHalfDay = "half_day"
)

// LeaveRequest is a doctor's request for time off. Approval triggers the
// schedule/booking cascade handled by the scheduling service.
type LeaveRequest struct {
	ID        string `bson:"id" json:"id"`
	DoctorID  string `bson:"doctor_id" json:"doctor_id"`
	LeaveType string `bson:"leave_type" json:"leave_type"`
	StartDate string `bson:"start_date" json:"start_date"` // "YYYY-MM-DD", inclusive
	EndDate   string `bson:"end_date" json:"end_date"`     // inclusive
	Session   string `bson:"session,omitempty" json:"session,omitempty"` // half-day only
	Reason    string `bson:"reason" json:"reason"`
	Status    string `bson:"status" json:"status"`

	AdminComment string     `bson:"admin_comment,omitempty" json:"admin_comment,omitempty"`
	DecidedAt    *time.Time `bson:"decided_at,omitempty" json:"decided_at,omitempty"`
	CreatedAt    time.Time  `bson:"created_at" json:"created_at"`
}

// CascadeResult reports the outcome of a leave-approval cascade. Individual
// booking failures are logged and counted rather than aborting the cascade.
type CascadeResult struct {
	SchedulesBlocked  int `json:"schedules_blocked"`
	BookingsCancelled int `json:"bookings_cancelled"`
	Failures          int `json:"failures"`
}
