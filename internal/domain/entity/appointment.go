package entity

import "time"

// AppointmentStatus is the closed 4-value appointment status. The gateway
// expects these exact capitalized strings on write.
type AppointmentStatus string

const (
	AppointmentStatusConfirmed AppointmentStatus = "Confirmed"
	AppointmentStatusPending   AppointmentStatus = "Pending"
	AppointmentStatusCompleted AppointmentStatus = "Completed"
	AppointmentStatusCancelled AppointmentStatus = "Cancelled"
)

// Appointment is the view model served to the UI. The gateway stores a single
// scheduled_at timestamp; the UI works with separate date and time fields.
type Appointment struct {
	ID          string            `json:"id"`
	PatientID   string            `json:"patient_id"`
	PatientName string            `json:"patient_name,omitempty"`
	DoctorID    string            `json:"doctor_id,omitempty"`
	DoctorName  string            `json:"doctor_name,omitempty"`
	Date        string            `json:"date"` // 2006-01-02
	Time        string            `json:"time"` // 15:04, 24-hour
	DateValue   *time.Time        `json:"-"`    // set when the caller already holds a parsed date
	Status      AppointmentStatus `json:"status"`
	Type        string            `json:"type,omitempty"`
	Reason      string            `json:"reason,omitempty"`
	Notes       string            `json:"notes,omitempty"`
	Duration    int               `json:"duration,omitempty"` // minutes
	Priority    string            `json:"priority,omitempty"`
}

// IsCancelled checks if the appointment has been cancelled
func (a *Appointment) IsCancelled() bool {
	return a.Status == AppointmentStatusCancelled
}

// IsPending checks if the appointment is awaiting confirmation
func (a *Appointment) IsPending() bool {
	return a.Status == AppointmentStatusPending
}

// Cancel changes appointment status to cancelled
func (a *Appointment) Cancel() {
	a.Status = AppointmentStatusCancelled
}
