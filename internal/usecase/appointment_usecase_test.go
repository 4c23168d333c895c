package usecase

import (
	"context"
	"testing"

	"clinic-crm-service/internal/converter"
	"clinic-crm-service/internal/delivery/dto"
	"clinic-crm-service/internal/domain/entity"
	"clinic-crm-service/internal/gateway"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTeam(crm CRMGateway) TeamUsecase {
	return NewTeamUsecase(testLogger(), crm, &mockMemoCache{})
}

func TestGetAppointmentResolvesDoctorName(t *testing.T) {
	crm := &mockCRMGateway{
		GetAppointmentFn: func(ctx context.Context, id string) (*gateway.Appointment, error) {
			return &gateway.Appointment{
				ID:           "a-1",
				CustomerID:   "c-1",
				AssignedToID: "staff9f8e7d6c5b4a3",
				ScheduledAt:  "2024-03-10T14:30:00Z",
				Status:       "confirmed",
			}, nil
		},
		ListTeamMembersFn: func(ctx context.Context) ([]gateway.TeamMember, error) {
			return []gateway.TeamMember{
				{ID: "staff9f8e7d6c5b4a3", FullName: "Dr. Sarah Chen", Role: "Doctor"},
			}, nil
		},
	}
	uc := NewAppointmentUsecase(testLogger(), crm, newTestTeam(crm))

	view, err := uc.GetAppointment(context.Background(), "a-1")
	require.NoError(t, err)

	assert.Equal(t, "staff9f8e7d6c5b4a3", view.DoctorID)
	assert.Equal(t, "Dr. Sarah Chen", view.DoctorName)
	assert.Equal(t, "2024-03-10", view.Date)
	assert.Equal(t, "14:30", view.Time)
	assert.Equal(t, entity.AppointmentStatusConfirmed, view.Status)
}

func TestGetAppointmentUnknownDoctorKeepsReference(t *testing.T) {
	crm := &mockCRMGateway{
		GetAppointmentFn: func(ctx context.Context, id string) (*gateway.Appointment, error) {
			return &gateway.Appointment{
				ID:           "a-2",
				CustomerID:   "c-1",
				AssignedToID: "staff000000000000",
				ScheduledAt:  "2024-03-10T09:00:00Z",
			}, nil
		},
		ListTeamMembersFn: func(ctx context.Context) ([]gateway.TeamMember, error) {
			return nil, nil
		},
	}
	uc := NewAppointmentUsecase(testLogger(), crm, newTestTeam(crm))

	view, err := uc.GetAppointment(context.Background(), "a-2")
	require.NoError(t, err)

	assert.Equal(t, "staff000000000000", view.DoctorID)
	assert.Empty(t, view.DoctorName)
}

func TestCreateAppointmentRequiresPatient(t *testing.T) {
	crm := &mockCRMGateway{}
	uc := NewAppointmentUsecase(testLogger(), crm, newTestTeam(crm))

	_, err := uc.CreateAppointment(context.Background(), &dto.AppointmentRequest{
		DoctorID: "staff9f8e7d6c5b4a3",
		Date:     "2024-03-10",
		Time:     "14:30",
	})
	assert.ErrorIs(t, err, converter.ErrMissingPatientRef)
}

func TestCreateAppointmentCombinesSchedule(t *testing.T) {
	var gotReq *gateway.AppointmentRequest
	crm := &mockCRMGateway{
		CreateAppointmentFn: func(ctx context.Context, req *gateway.AppointmentRequest) (*gateway.Appointment, error) {
			gotReq = req
			return &gateway.Appointment{
				ID:          "a-3",
				CustomerID:  req.CustomerID,
				ScheduledAt: req.ScheduledAt,
				Status:      req.Status,
			}, nil
		},
		ListTeamMembersFn: func(ctx context.Context) ([]gateway.TeamMember, error) {
			return nil, nil
		},
	}
	uc := NewAppointmentUsecase(testLogger(), crm, newTestTeam(crm))

	view, err := uc.CreateAppointment(context.Background(), &dto.AppointmentRequest{
		PatientID: "c-1",
		Date:      "2024-03-10",
		Time:      "14:30",
		Status:    "CONFIRMED",
	})
	require.NoError(t, err)

	require.NotNil(t, gotReq)
	assert.Equal(t, "2024-03-10T14:30:00.000Z", gotReq.ScheduledAt)
	assert.Equal(t, "Confirmed", gotReq.Status)

	assert.Equal(t, "2024-03-10", view.Date)
	assert.Equal(t, "14:30", view.Time)
}

func TestCancelAppointmentFlipsStatus(t *testing.T) {
	var updatedStatus string
	crm := &mockCRMGateway{
		GetAppointmentFn: func(ctx context.Context, id string) (*gateway.Appointment, error) {
			return &gateway.Appointment{
				ID:          id,
				CustomerID:  "c-1",
				ScheduledAt: "2024-03-10T14:30:00Z",
				Status:      "Pending",
			}, nil
		},
		UpdateAppointmentFn: func(ctx context.Context, id string, req *gateway.AppointmentRequest) (*gateway.Appointment, error) {
			updatedStatus = req.Status
			return &gateway.Appointment{
				ID:          id,
				CustomerID:  req.CustomerID,
				ScheduledAt: req.ScheduledAt,
				Status:      req.Status,
			}, nil
		},
		ListTeamMembersFn: func(ctx context.Context) ([]gateway.TeamMember, error) {
			return nil, nil
		},
	}
	uc := NewAppointmentUsecase(testLogger(), crm, newTestTeam(crm))

	view, err := uc.CancelAppointment(context.Background(), "a-4")
	require.NoError(t, err)

	assert.Equal(t, "Cancelled", updatedStatus)
	assert.Equal(t, entity.AppointmentStatusCancelled, view.Status)
	assert.True(t, view.IsCancelled())
}

func TestUpdateAppointmentNotFound(t *testing.T) {
	crm := &mockCRMGateway{
		UpdateAppointmentFn: func(ctx context.Context, id string, req *gateway.AppointmentRequest) (*gateway.Appointment, error) {
			return nil, gateway.ErrNotFound
		},
	}
	uc := NewAppointmentUsecase(testLogger(), crm, newTestTeam(crm))

	_, err := uc.UpdateAppointment(context.Background(), "missing", &dto.AppointmentRequest{
		PatientID: "c-1",
		Date:      "2024-03-10",
		Time:      "10:00",
	})
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}
