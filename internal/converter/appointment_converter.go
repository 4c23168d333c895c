package converter

import (
	"errors"
	"strings"
	"time"

	"clinic-crm-service/internal/domain/entity"
	"clinic-crm-service/internal/gateway"
)

// ErrMissingPatientRef is the one fail-fast condition in this layer: an
// appointment cannot be written without a resolvable patient id. Everything
// else degrades to defaults.
var ErrMissingPatientRef = errors.New("appointment has no patient reference")

const scheduledAtLayout = "2006-01-02T15:04:05.000Z07:00"

// AppointmentToView converts a gateway appointment into the UI view model.
// Returns nil when the record has no id. The combined scheduled_at timestamp
// splits into separate date and 24-hour time fields; an absent or unparsable
// timestamp degrades to today / "00:00" instead of failing.
func AppointmentToView(appointment *gateway.Appointment) *entity.Appointment {
	if appointment == nil || appointment.ID == "" {
		return nil
	}

	view := &entity.Appointment{
		ID:        appointment.ID,
		PatientID: resolvePatientRef(appointment),
		Status:    NormalizeAppointmentStatus(appointment.Status),
		Type:      appointment.Type,
		Reason:    appointment.Reason,
		Notes:     appointment.Notes,
		Duration:  appointment.Duration,
		Priority:  appointment.Priority,
	}

	if appointment.Customer != nil {
		view.PatientName = strings.TrimSpace(strings.TrimSpace(appointment.Customer.FirstName) + " " + strings.TrimSpace(appointment.Customer.LastName))
	}

	view.DoctorID, view.DoctorName = resolveDoctorRef(appointment)
	view.Date, view.Time = splitScheduledAt(appointment.ScheduledAt)

	return view
}

// AppointmentsToViews converts a slice, skipping unconvertible records.
func AppointmentsToViews(appointments []gateway.Appointment) []entity.Appointment {
	views := make([]entity.Appointment, 0, len(appointments))
	for i := range appointments {
		if view := AppointmentToView(&appointments[i]); view != nil {
			views = append(views, *view)
		}
	}
	return views
}

// AppointmentToRequest builds the gateway write payload, recombining the
// separate date and time fields into one UTC timestamp.
func AppointmentToRequest(appointment *entity.Appointment) (*gateway.AppointmentRequest, error) {
	if appointment == nil {
		return nil, ErrMissingPatientRef
	}

	customerID := strings.TrimSpace(appointment.PatientID)
	if customerID == "" {
		return nil, ErrMissingPatientRef
	}

	return &gateway.AppointmentRequest{
		CustomerID:   customerID,
		AssignedToID: appointment.DoctorID,
		ScheduledAt:  combineScheduledAt(appointment),
		Status:       string(NormalizeAppointmentStatus(string(appointment.Status))),
		Type:         appointment.Type,
		Reason:       appointment.Reason,
		Notes:        appointment.Notes,
		Duration:     appointment.Duration,
		Priority:     appointment.Priority,
	}, nil
}

// resolvePatientRef extracts the patient id from either the id field or an
// embedded customer record.
func resolvePatientRef(appointment *gateway.Appointment) string {
	if appointment.CustomerID != "" {
		return appointment.CustomerID
	}
	if appointment.Customer != nil {
		return appointment.Customer.ID
	}
	return ""
}

// resolveDoctorRef untangles the ambiguous assigned_to field, which may hold
// either a human name or an opaque id depending on which upstream wrote the
// record. When assigned_to sniffs as an id, assigned_to_id is preferred and
// the display name is left for caller-side enrichment.
func resolveDoctorRef(appointment *gateway.Appointment) (string, string) {
	assigned := strings.TrimSpace(appointment.AssignedTo)

	if assigned != "" && looksLikeOpaqueID(assigned) {
		id := appointment.AssignedToID
		if id == "" {
			id = assigned
		}
		return id, ""
	}

	return appointment.AssignedToID, assigned
}

// looksLikeOpaqueID reports whether an assigned_to value is an identifier
// rather than a human name: longer than 15 characters, no spaces,
// alphanumeric only. Kept for read compatibility with records written
// before assigned_to_id existed.
func looksLikeOpaqueID(s string) bool {
	if len(s) <= 15 || strings.Contains(s, " ") {
		return false
	}
	for _, r := range s {
		isDigit := r >= '0' && r <= '9'
		isLower := r >= 'a' && r <= 'z'
		isUpper := r >= 'A' && r <= 'Z'
		if !isDigit && !isLower && !isUpper {
			return false
		}
	}
	return true
}

// splitScheduledAt breaks a combined timestamp into date and 24-hour time
// strings, degrading to today / "00:00" when the value is missing or
// unparsable.
func splitScheduledAt(raw string) (string, string) {
	t := parseGatewayDate(raw)
	if t == nil {
		return time.Now().UTC().Format("2006-01-02"), "00:00"
	}
	utc := t.UTC()
	return utc.Format("2006-01-02"), utc.Format("15:04")
}

// combineScheduledAt reconstitutes the wire timestamp from the view model's
// date and time. The date may arrive as a parsed value, a full ISO string,
// or a bare yyyy-MM-dd; bare dates anchor at UTC midnight so the calendar
// day never shifts with the server timezone.
func combineScheduledAt(appointment *entity.Appointment) string {
	day := resolveCalendarDay(appointment)

	hour, minute := parseClock(appointment.Time)
	combined := day.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)

	return combined.Format(scheduledAtLayout)
}

func resolveCalendarDay(appointment *entity.Appointment) time.Time {
	if appointment.DateValue != nil {
		utc := appointment.DateValue.UTC()
		return time.Date(utc.Year(), utc.Month(), utc.Day(), 0, 0, 0, 0, time.UTC)
	}

	if t := parseGatewayDate(appointment.Date); t != nil {
		utc := t.UTC()
		return time.Date(utc.Year(), utc.Month(), utc.Day(), 0, 0, 0, 0, time.UTC)
	}

	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// parseClock reads an HH:mm 24-hour value; anything else means midnight.
func parseClock(raw string) (int, int) {
	t, err := time.Parse("15:04", strings.TrimSpace(raw))
	if err != nil {
		return 0, 0
	}
	return t.Hour(), t.Minute()
}
