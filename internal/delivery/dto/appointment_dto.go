package dto

import "clinic-crm-service/internal/domain/entity"

// AppointmentRequest creates or replaces an appointment. Date accepts a bare
// 2006-01-02 day or a full ISO timestamp; Time is HH:mm 24-hour.
type AppointmentRequest struct {
	PatientID string `json:"patient_id" validate:"required,max=64"`
	DoctorID  string `json:"doctor_id" validate:"omitempty,max=64"`
	Date      string `json:"date" validate:"required,max=64"`
	Time      string `json:"time" validate:"omitempty,datetime=15:04"`
	Status    string `json:"status" validate:"omitempty,max=32"`
	Type      string `json:"type" validate:"omitempty,max=64"`
	Reason    string `json:"reason" validate:"omitempty,max=512"`
	Notes     string `json:"notes" validate:"omitempty,max=4096"`
	Duration  int    `json:"duration" validate:"omitempty,gte=0,lte=1440"`
	Priority  string `json:"priority" validate:"omitempty,oneof=low normal high urgent"`
}

type AppointmentListResponse struct {
	Appointments []entity.Appointment `json:"appointments"`
	Total        int                  `json:"total"`
}
