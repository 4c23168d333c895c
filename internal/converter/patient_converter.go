package converter

import (
	"strings"
	"time"
	"unicode"

	"clinic-crm-service/internal/domain/entity"
	"clinic-crm-service/internal/gateway"
)

// dateLayouts are tried in order when reading gateway date fields. Values
// that match none of them are discarded rather than propagated as bogus
// timestamps.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// CustomerToPatient converts a gateway customer record into the UI patient
// view model. Returns nil when the record is absent or has no id; malformed
// upstream data must never abort a batch conversion.
func CustomerToPatient(customer *gateway.Customer) *entity.Patient {
	if customer == nil || customer.ID == "" {
		return nil
	}

	firstName := strings.TrimSpace(customer.FirstName)
	lastName := strings.TrimSpace(customer.LastName)

	patient := &entity.Patient{
		ID:               customer.ID,
		Name:             strings.TrimSpace(firstName + " " + lastName),
		Initials:         patientInitials(firstName, lastName),
		Gender:           NormalizeGender(customer.Gender),
		Phone:            customer.Phone,
		Email:            customer.Email,
		Address:          customer.Address,
		AssignedDoctorID: customer.AssignedToID,
		Status:           NormalizePatientStatus(customer.Status),
		MedicalNotes:     ParseMedicalHistory(customer.MedicalHistory),
	}

	if age, err := customer.Age.Int64(); err == nil && age > 0 {
		patient.Age = int(age)
	}

	patient.DateOfBirth = parseGatewayDate(customer.DateOfBirth)
	patient.LastVisit = parseGatewayDate(customer.LastVisit)
	patient.NextAppointment = parseGatewayDate(customer.NextAppointment)
	patient.CreatedAt = parseGatewayDate(customer.CreatedAt)
	patient.UpdatedAt = parseGatewayDate(customer.UpdatedAt)

	return patient
}

// CustomersToPatients converts a slice of customers, skipping records that
// fail conversion instead of dropping the whole batch.
func CustomersToPatients(customers []gateway.Customer) []entity.Patient {
	patients := make([]entity.Patient, 0, len(customers))
	for i := range customers {
		if patient := CustomerToPatient(&customers[i]); patient != nil {
			patients = append(patients, *patient)
		}
	}
	return patients
}

// PatientToCustomerRequest builds the gateway write payload. Single-word
// names split as (first, ""); the last name is sent as an empty string, not
// omitted.
func PatientToCustomerRequest(patient *entity.Patient) *gateway.CustomerRequest {
	if patient == nil {
		return nil
	}

	firstName, lastName := SplitName(patient.Name)

	req := &gateway.CustomerRequest{
		FirstName:      firstName,
		LastName:       lastName,
		Age:            patient.Age,
		Gender:         string(patient.Gender),
		Phone:          patient.Phone,
		Email:          patient.Email,
		Address:        patient.Address,
		AssignedToID:   patient.AssignedDoctorID,
		Status:         PatientStatusWire(patient.Status),
		MedicalHistory: EncodeMedicalHistory(patient.MedicalNotes),
	}

	if patient.DateOfBirth != nil {
		req.DateOfBirth = patient.DateOfBirth.Format("2006-01-02")
	}
	if patient.LastVisit != nil {
		req.LastVisit = patient.LastVisit.Format("2006-01-02")
	}

	return req
}

// SplitName splits a display name into first and last. Everything after the
// first word becomes the last name.
func SplitName(name string) (string, string) {
	fields := strings.Fields(name)
	switch len(fields) {
	case 0:
		return "", ""
	case 1:
		return fields[0], ""
	default:
		return fields[0], strings.Join(fields[1:], " ")
	}
}

// patientInitials takes the first letter of each name part, defaulting to
// "P" when both are absent.
func patientInitials(firstName, lastName string) string {
	var b strings.Builder
	if r := firstRune(firstName); r != 0 {
		b.WriteRune(unicode.ToUpper(r))
	}
	if r := firstRune(lastName); r != 0 {
		b.WriteRune(unicode.ToUpper(r))
	}
	if b.Len() == 0 {
		return "P"
	}
	return b.String()
}

func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return 0
}

// parseGatewayDate reads a gateway date or timestamp field, returning nil
// for anything unparsable.
func parseGatewayDate(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t
		}
	}
	return nil
}
