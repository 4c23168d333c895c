package gateway

import "encoding/json"

// Customer is the gateway's wire representation of a patient record.
// Loosely-typed fields stay loose here; shaping them into the view model is
// the converter layer's job.
type Customer struct {
	ID              string          `json:"id"`
	FirstName       string          `json:"first_name"`
	LastName        string          `json:"last_name"`
	Age             json.Number     `json:"age,omitempty"`
	Gender          string          `json:"gender,omitempty"`
	Phone           string          `json:"phone,omitempty"`
	Email           string          `json:"email,omitempty"`
	Address         string          `json:"address,omitempty"`
	AssignedToID    string          `json:"assigned_to_id,omitempty"`
	Status          string          `json:"status,omitempty"`
	MedicalHistory  json.RawMessage `json:"medical_history,omitempty"`
	DateOfBirth     string          `json:"date_of_birth,omitempty"`
	LastVisit       string          `json:"last_visit,omitempty"`
	NextAppointment string          `json:"next_appointment,omitempty"`
	CreatedAt       string          `json:"created_at,omitempty"`
	UpdatedAt       string          `json:"updated_at,omitempty"`
}

// CustomerRequest is the payload the gateway expects when creating or
// updating a customer.
type CustomerRequest struct {
	FirstName      string          `json:"first_name"`
	LastName       string          `json:"last_name"`
	Age            int             `json:"age,omitempty"`
	Gender         string          `json:"gender,omitempty"`
	Phone          string          `json:"phone,omitempty"`
	Email          string          `json:"email,omitempty"`
	Address        string          `json:"address,omitempty"`
	AssignedToID   string          `json:"assigned_to_id,omitempty"`
	Status         string          `json:"status"`
	MedicalHistory json.RawMessage `json:"medical_history,omitempty"`
	DateOfBirth    string          `json:"date_of_birth,omitempty"`
	LastVisit      string          `json:"last_visit,omitempty"`
}

// Appointment is the gateway's wire representation. scheduled_at is a single
// combined timestamp; assigned_to may hold either a doctor name or an opaque
// doctor id depending on which upstream wrote the record.
type Appointment struct {
	ID           string    `json:"id"`
	CustomerID   string    `json:"customer_id,omitempty"`
	Customer     *Customer `json:"customer,omitempty"`
	AssignedTo   string    `json:"assigned_to,omitempty"`
	AssignedToID string    `json:"assigned_to_id,omitempty"`
	ScheduledAt  string    `json:"scheduled_at,omitempty"`
	Status       string    `json:"status,omitempty"`
	Type         string    `json:"type,omitempty"`
	Reason       string    `json:"reason,omitempty"`
	Notes        string    `json:"notes,omitempty"`
	Duration     int       `json:"duration,omitempty"`
	Priority     string    `json:"priority,omitempty"`
}

// AppointmentRequest is the payload for creating or updating an appointment.
type AppointmentRequest struct {
	CustomerID   string `json:"customer_id"`
	AssignedToID string `json:"assigned_to_id,omitempty"`
	ScheduledAt  string `json:"scheduled_at"`
	Status       string `json:"status"`
	Type         string `json:"type,omitempty"`
	Reason       string `json:"reason,omitempty"`
	Notes        string `json:"notes,omitempty"`
	Duration     int    `json:"duration,omitempty"`
	Priority     string `json:"priority,omitempty"`
}

// Template is the gateway's message template record.
type Template struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Content []string `json:"content"`
}

// TemplateRequest is the payload for creating or updating a template.
type TemplateRequest struct {
	Name    string   `json:"name"`
	Content []string `json:"content"`
}

// TeamMember is a staff record from the gateway's team endpoint.
type TeamMember struct {
	ID        string `json:"id"`
	FullName  string `json:"full_name"`
	Role      string `json:"role,omitempty"`
	Specialty string `json:"specialty,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// WalletBalance is the messaging-credit balance. The gateway serializes the
// amount as a string to avoid float drift.
type WalletBalance struct {
	Balance  string `json:"balance"`
	Currency string `json:"currency"`
}

// CampaignSendRequest dispatches one campaign to a resolved recipient list.
type CampaignSendRequest struct {
	CampaignID  string   `json:"campaign_id"`
	Name        string   `json:"name"`
	Tag         string   `json:"tag"`
	TemplateID  string   `json:"template_id"`
	CustomerIDs []string `json:"customer_ids"`
}

// CampaignSendResponse reports how many messages the gateway queued.
type CampaignSendResponse struct {
	ID     string `json:"id"`
	Queued int    `json:"queued"`
}

// VerifyCredentialsRequest asks the gateway to authenticate a clinic user.
type VerifyCredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// VerifyCredentialsResponse is the gateway's answer to a credential check.
type VerifyCredentialsResponse struct {
	UserID   string `json:"user_id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}
