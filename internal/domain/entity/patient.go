package entity

import "time"

// PatientStatus is the canonical patient status used everywhere inside the
// service. The gateway expects these exact strings on write.
type PatientStatus string

const (
	PatientStatusActive   PatientStatus = "Active"
	PatientStatusBooked   PatientStatus = "Booked"
	PatientStatusFollowUp PatientStatus = "FollowUp"
	PatientStatusInactive PatientStatus = "Inactive"
)

// Gender values in gateway wire casing. Empty means unknown.
type Gender string

const (
	GenderMale    Gender = "Male"
	GenderFemale  Gender = "Female"
	GenderOther   Gender = "Other"
	GenderUnknown Gender = ""
)

// Patient is the view model served to the UI, converted from the gateway's
// customer record.
type Patient struct {
	ID               string        `json:"id"`
	Name             string        `json:"name"`
	Initials         string        `json:"initials"`
	Age              int           `json:"age,omitempty"`
	Gender           Gender        `json:"gender,omitempty"`
	Phone            string        `json:"phone,omitempty"`
	Email            string        `json:"email,omitempty"`
	Address          string        `json:"address,omitempty"`
	AssignedDoctorID string        `json:"assigned_doctor_id,omitempty"`
	Status           PatientStatus `json:"status"`
	MedicalNotes     string        `json:"medical_notes,omitempty"`
	DateOfBirth      *time.Time    `json:"date_of_birth,omitempty"`
	LastVisit        *time.Time    `json:"last_visit,omitempty"`
	NextAppointment  *time.Time    `json:"next_appointment,omitempty"`
	CreatedAt        *time.Time    `json:"created_at,omitempty"`
	UpdatedAt        *time.Time    `json:"updated_at,omitempty"`
}

// IsActive checks if the patient is in active status
func (p *Patient) IsActive() bool {
	return p.Status == PatientStatusActive
}

// NeedsFollowUp checks if the patient is flagged for follow-up
func (p *Patient) NeedsFollowUp() bool {
	return p.Status == PatientStatusFollowUp
}
