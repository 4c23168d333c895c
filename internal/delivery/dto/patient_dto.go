package dto

import "clinic-crm-service/internal/domain/entity"

// PatientRequest creates or replaces a patient record. Status and gender are
// free-form here; the converter layer normalizes them before they reach the
// gateway.
type PatientRequest struct {
	Name             string `json:"name" validate:"required,max=255"`
	Age              int    `json:"age" validate:"omitempty,gte=0,lte=130"`
	Gender           string `json:"gender" validate:"omitempty,max=16"`
	Phone            string `json:"phone" validate:"omitempty,max=32"`
	Email            string `json:"email" validate:"omitempty,email"`
	Address          string `json:"address" validate:"omitempty,max=512"`
	AssignedDoctorID string `json:"assigned_doctor_id" validate:"omitempty,max=64"`
	Status           string `json:"status" validate:"omitempty,max=32"`
	MedicalNotes     string `json:"medical_notes" validate:"omitempty,max=4096"`
	DateOfBirth      string `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
}

type PatientListResponse struct {
	Patients []entity.Patient `json:"patients"`
	Total    int              `json:"total"`
}
