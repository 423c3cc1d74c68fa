package models

import "time"

// Booking statuses. Active statuses occupy session capacity; terminal
// statuses never transition again (with the single reschedule-revive
// exception handled by the scheduling service).
const (
	StatusBooked    = "booked"
	StatusInQueue   = "in_queue"
	StatusConsulted = "consulted"
	StatusMissed    = "missed"
	StatusCancelled = "cancelled"
	StatusReferred  = "referred"
)

// Cancellation actors recorded on a cancelled booking.
const (
	ActorPatient      = "patient"
	ActorDoctor       = "doctor"
	ActorReceptionist = "receptionist"
	ActorAdmin        = "admin"
	ActorSystem       = "system"
)

// Payment statuses surfaced to the billing collaborator. The engine never
// computes refunds; it only carries these fields.
const (
	PaymentPending  = "pending"
	PaymentPaid     = "paid"
	PaymentRefunded = "refunded"
)

// Booking is a queue token held by a subject (a patient, or a named
// dependent booking under a patient's account) for one doctor on one day.
type Booking struct {
	ID            string `bson:"id" json:"id"`
	PatientID     string `bson:"patient_id" json:"patient_id"`
	DependentName string `bson:"dependent_name,omitempty" json:"dependent_name,omitempty"` // set when a dependent is the subject
	DoctorID      string `bson:"doctor_id" json:"doctor_id"`
	Department    string `bson:"department" json:"department"`
	Date          string `bson:"date" json:"date"`                 // "YYYY-MM-DD"
	TimeSlot      string `bson:"time_slot" json:"time_slot"`       // display slot "HH:MM"
	SessionType   string `bson:"session_type" json:"session_type"` // morning | afternoon | evening
	Status        string `bson:"status" json:"status"`
	TokenNumber   int    `bson:"token_number" json:"token_number"`
	TokenID       string `bson:"token_id" json:"token_id"` // formatted, e.g. "T007"
	Symptoms      string `bson:"symptoms,omitempty" json:"symptoms,omitempty"`

	PaymentStatus  string  `bson:"payment_status" json:"payment_status"`
	RefundAmount   float64 `bson:"refund_amount,omitempty" json:"refund_amount,omitempty"`
	RefundEligible bool    `bson:"refund_eligible,omitempty" json:"refund_eligible,omitempty"`

	CancellationReason string     `bson:"cancellation_reason,omitempty" json:"cancellation_reason,omitempty"`
	CancelledBy        string     `bson:"cancelled_by,omitempty" json:"cancelled_by,omitempty"`
	CancelledAt        *time.Time `bson:"cancelled_at,omitempty" json:"cancelled_at,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// IsActive reports whether the booking still occupies capacity.
func (b Booking) IsActive() bool {
	return b.Status == StatusBooked || b.Status == StatusInQueue
}

// ActiveStatuses is the canonical active set, used by repository filters.
var ActiveStatuses = []string{StatusBooked, StatusInQueue}

// BookingRequest is the input for creating a booking.
type BookingRequest struct {
	PatientID     string `json:"patient_id"`
	DependentName string `json:"dependent_name,omitempty"`
	DoctorID      string `json:"doctor_id,omitempty"` // empty when auto-assigning
	Department    string `json:"department"`
	Date          string `json:"date"`
	SessionType   string `json:"session_type"`
	TimeSlot      string `json:"time_slot,omitempty"` // optional; derived from token when empty
	Symptoms      string `json:"symptoms,omitempty"`
}

// BookingConfirmation is returned to the caller after a successful booking.
type BookingConfirmation struct {
	BookingID     string `json:"booking_id"`
	TokenID       string `json:"token_id"`
	TokenNumber   int    `json:"token_number"`
	DoctorID      string `json:"doctor_id"`
	Department    string `json:"department"`
	Date          string `json:"date"`
	TimeSlot      string `json:"time_slot"`
	SessionType   string `json:"session_type"`
	Status        string `json:"status"`
	EstimatedWait string `json:"estimated_wait"`
}
