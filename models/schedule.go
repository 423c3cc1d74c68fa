package models

// Session type names used across schedules and bookings.
const (
	SessionMorning   = "morning"
	SessionAfternoon = "afternoon"
	SessionEvening   = "evening"
)

// TimeRange is a clock-time window in "HH:MM" form.
type TimeRange struct {
	Start string `bson:"start" json:"start"`
	End   string `bson:"end" json:"end"`
}

// Session is a named sub-window of a working day with its own capacity.
type Session struct {
	Available   bool   `bson:"available" json:"available"`
	Start       string `bson:"start" json:"start"`
	End         string `bson:"end" json:"end"`
	MaxPatients int    `bson:"max_patients" json:"max_patients"`
}

// Schedule is one doctor's availability for one calendar day. A missing
// Schedule means "use the doctor's defaults"; it is never required to exist.
type Schedule struct {
	ID           string     `bson:"id" json:"id"`
	DoctorID     string     `bson:"doctor_id" json:"doctor_id"`
	Date         string     `bson:"date" json:"date"` // "YYYY-MM-DD"
	IsAvailable  bool       `bson:"is_available" json:"is_available"`
	WorkingHours TimeRange  `bson:"working_hours" json:"working_hours"`
	BreakTime    *TimeRange `bson:"break_time,omitempty" json:"break_time,omitempty"`
	SlotDuration int        `bson:"slot_duration" json:"slot_duration"` // minutes

	MorningSession   Session `bson:"morning_session" json:"morning_session"`
	AfternoonSession Session `bson:"afternoon_session" json:"afternoon_session"`

	LeaveReason string `bson:"leave_reason,omitempty" json:"leave_reason,omitempty"`
	Notes       string `bson:"notes,omitempty" json:"notes,omitempty"`
}

// SessionFor returns the session definition matching a session type name.
// Evening is not part of the standing schedule shape; callers get ok=false.
func (s Schedule) SessionFor(sessionType string) (Session, bool) {
	switch sessionType {
	case SessionMorning:
		return s.MorningSession, true
	case SessionAfternoon:
		return s.AfternoonSession, true
	default:
		return Session{}, false
	}
}

// SlotInfo is one bookable clock slot surfaced to callers.
type SlotInfo struct {
	Time        string `json:"time"` // "HH:MM"
	SessionType string `json:"session_type"`
}

// SessionAvailability is the resolver's per-session verdict.
type SessionAvailability struct {
	SessionType  string `json:"session_type"`
	Available    bool   `json:"available"`
	Start        string `json:"start"`
	End          string `json:"end"`
	MaxPatients  int    `json:"max_patients"`
	BookedCount  int    `json:"booked_count"`
	CutoffPassed bool   `json:"cutoff_passed"`
	NextSlotTime string `json:"next_slot_time,omitempty"` // derived from the next token number
}

// DayAvailability is the full resolver output for one doctor and date.
type DayAvailability struct {
	DoctorID    string                `json:"doctor_id"`
	Date        string                `json:"date"`
	OnLeave     bool                  `json:"on_leave"`
	LeaveReason string                `json:"leave_reason,omitempty"`
	Sessions    []SessionAvailability `json:"sessions"`
	Slots       []SlotInfo            `json:"slots"`
}
