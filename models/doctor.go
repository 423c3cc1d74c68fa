package models

// DoctorDefaults is the fallback availability used when no Schedule document
// exists for a given day.
type DoctorDefaults struct {
	WorkingHours TimeRange  `bson:"working_hours" json:"working_hours"`
	BreakTime    *TimeRange `bson:"break_time,omitempty" json:"break_time,omitempty"`
	SlotDuration int        `bson:"slot_duration" json:"slot_duration"` // minutes

	MorningSession   Session `bson:"morning_session" json:"morning_session"`
	AfternoonSession Session `bson:"afternoon_session" json:"afternoon_session"`
}

// Doctor is the minimal staff record the scheduling engine reads. Profile,
// credentials, and contact details live with the identity service.
type Doctor struct {
	ID         string         `bson:"id" json:"id"`
	Name       string         `bson:"name" json:"name"`
	Department string         `bson:"department" json:"department"`
	Active     bool           `bson:"active" json:"active"`
	Defaults   DoctorDefaults `bson:"defaults" json:"defaults"`
}

// DoctorLoad pairs a doctor with their current active-booking count,
// produced by the auto-assigner.
type DoctorLoad struct {
	DoctorID   string `json:"doctor_id"`
	DoctorName string `json:"doctor_name"`
	Load       int    `json:"load"`
}

// Assignment is the auto-assigner's advisory result: the least-loaded open
// doctor plus next-best alternatives for client display.
type Assignment struct {
	Primary      DoctorLoad   `json:"primary"`
	Alternatives []DoctorLoad `json:"alternatives"`
}
