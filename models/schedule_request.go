package models

import "time"

// Schedule change request types and statuses. These are durable records with
// the same approval workflow as leave requests, queried from storage rather
// than held in process memory.
const (
	ScheduleRequestCancel     = "cancel"
	ScheduleRequestReschedule = "reschedule"

	RequestPending  = "pending"
	RequestApproved = "approved"
	RequestRejected = "rejected"
)

// ScheduleRequest is a doctor-initiated request to cancel or reschedule a
// day's clinic, pending admin approval.
type ScheduleRequest struct {
	ID       string `bson:"id" json:"id"`
	DoctorID string `bson:"doctor_id" json:"doctor_id"`
	Type     string `bson:"type" json:"type"` // cancel | reschedule
	Date     string `bson:"date" json:"date"`
	Reason   string `bson:"reason" json:"reason"`

	// Reschedule target, unset for cancel requests.
	NewDate         string     `bson:"new_date,omitempty" json:"new_date,omitempty"`
	NewWorkingHours *TimeRange `bson:"new_working_hours,omitempty" json:"new_working_hours,omitempty"`

	Status       string     `bson:"status" json:"status"`
	AdminComment string     `bson:"admin_comment,omitempty" json:"admin_comment,omitempty"`
	DecidedAt    *time.Time `bson:"decided_at,omitempty" json:"decided_at,omitempty"`
	CreatedAt    time.Time  `bson:"created_at" json:"created_at"`
}
