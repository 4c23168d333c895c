package converter

import (
	"testing"
	"time"

	"clinic-crm-service/internal/domain/entity"
	"clinic-crm-service/internal/gateway"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppointmentToView(t *testing.T) {
	appointment := &gateway.Appointment{
		ID:          "apt_001",
		CustomerID:  "cus_001",
		AssignedTo:  "Dr. Maria Lopez",
		ScheduledAt: "2024-03-10T14:30:00Z",
		Status:      "confirmed",
		Type:        "checkup",
		Duration:    30,
	}

	view := AppointmentToView(appointment)
	require.NotNil(t, view)

	assert.Equal(t, "apt_001", view.ID)
	assert.Equal(t, "cus_001", view.PatientID)
	assert.Equal(t, "Dr. Maria Lopez", view.DoctorName)
	assert.Equal(t, "2024-03-10", view.Date)
	assert.Equal(t, "14:30", view.Time)
	assert.Equal(t, entity.AppointmentStatusConfirmed, view.Status)
	assert.Equal(t, 30, view.Duration)
}

func TestAppointmentToView_MissingID(t *testing.T) {
	assert.Nil(t, AppointmentToView(nil))
	assert.Nil(t, AppointmentToView(&gateway.Appointment{CustomerID: "cus_001"}))
}

func TestAppointmentToView_UnparsableScheduleDegrades(t *testing.T) {
	view := AppointmentToView(&gateway.Appointment{ID: "apt_002", ScheduledAt: "soonish"})

	require.NotNil(t, view)
	assert.Equal(t, time.Now().UTC().Format("2006-01-02"), view.Date)
	assert.Equal(t, "00:00", view.Time)
}

func TestAppointmentToView_EmbeddedCustomerRef(t *testing.T) {
	view := AppointmentToView(&gateway.Appointment{
		ID:       "apt_003",
		Customer: &gateway.Customer{ID: "cus_009", FirstName: "Jane", LastName: "Doe"},
	})

	require.NotNil(t, view)
	assert.Equal(t, "cus_009", view.PatientID)
	assert.Equal(t, "Jane Doe", view.PatientName)
}

func TestResolveDoctorRef_OpaqueIDHeuristic(t *testing.T) {
	// assigned_to carries an id written by the legacy upstream; prefer the
	// explicit assigned_to_id for resolution and leave the name for
	// enrichment.
	view := AppointmentToView(&gateway.Appointment{
		ID:           "apt_004",
		AssignedTo:   "64f1c2ab99d0e83a2b7c1d90",
		AssignedToID: "doc_42",
	})

	require.NotNil(t, view)
	assert.Equal(t, "doc_42", view.DoctorID)
	assert.Equal(t, "", view.DoctorName)
}

func TestResolveDoctorRef_OpaqueWithoutExplicitID(t *testing.T) {
	view := AppointmentToView(&gateway.Appointment{
		ID:         "apt_005",
		AssignedTo: "64f1c2ab99d0e83a2b7c1d90",
	})

	require.NotNil(t, view)
	assert.Equal(t, "64f1c2ab99d0e83a2b7c1d90", view.DoctorID)
	assert.Equal(t, "", view.DoctorName)
}

func TestLooksLikeOpaqueID(t *testing.T) {
	assert.True(t, looksLikeOpaqueID("64f1c2ab99d0e83a2b7c1d90"))

	assert.False(t, looksLikeOpaqueID("Dr. Maria Lopez"))   // spaces and punctuation
	assert.False(t, looksLikeOpaqueID("Smith"))             // too short
	assert.False(t, looksLikeOpaqueID("doc_4242424242424")) // underscore
}

func TestAppointmentToRequest_CombinesDateAndTime(t *testing.T) {
	req, err := AppointmentToRequest(&entity.Appointment{
		PatientID: "cus_001",
		Date:      "2024-03-10",
		Time:      "14:30",
		Status:    "confirmed",
	})

	require.NoError(t, err)
	assert.Equal(t, "2024-03-10T14:30:00.000Z", req.ScheduledAt)
	assert.Equal(t, "Confirmed", req.Status)
}

func TestAppointmentToRequest_ISODateString(t *testing.T) {
	req, err := AppointmentToRequest(&entity.Appointment{
		PatientID: "cus_001",
		Date:      "2024-03-10T08:00:00Z",
		Time:      "09:15",
	})

	require.NoError(t, err)
	assert.Equal(t, "2024-03-10T09:15:00.000Z", req.ScheduledAt)
}

func TestAppointmentToRequest_NativeDateValue(t *testing.T) {
	date := time.Date(2024, 3, 10, 22, 5, 0, 0, time.UTC)

	req, err := AppointmentToRequest(&entity.Appointment{
		PatientID: "cus_001",
		DateValue: &date,
		Time:      "14:30",
	})

	require.NoError(t, err)
	assert.Equal(t, "2024-03-10T14:30:00.000Z", req.ScheduledAt)
}

func TestAppointmentToRequest_BadTimeMeansMidnight(t *testing.T) {
	req, err := AppointmentToRequest(&entity.Appointment{
		PatientID: "cus_001",
		Date:      "2024-03-10",
		Time:      "half past two",
	})

	require.NoError(t, err)
	assert.Equal(t, "2024-03-10T00:00:00.000Z", req.ScheduledAt)
}

func TestAppointmentToRequest_MissingPatientRef(t *testing.T) {
	_, err := AppointmentToRequest(&entity.Appointment{Date: "2024-03-10", Time: "14:30"})
	assert.ErrorIs(t, err, ErrMissingPatientRef)

	_, err = AppointmentToRequest(&entity.Appointment{PatientID: "   "})
	assert.ErrorIs(t, err, ErrMissingPatientRef)

	_, err = AppointmentToRequest(nil)
	assert.ErrorIs(t, err, ErrMissingPatientRef)
}

func TestAppointmentsToViews_SkipsBadRecords(t *testing.T) {
	views := AppointmentsToViews([]gateway.Appointment{
		{ID: "apt_006"},
		{CustomerID: "cus_001"}, // no id
		{ID: "apt_007"},
	})

	assert.Len(t, views, 2)
}
