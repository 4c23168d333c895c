package usecase

import (
	"context"
	"errors"
	"time"

	"clinic-crm-service/internal/converter"
	"clinic-crm-service/internal/delivery/dto"
	"clinic-crm-service/internal/domain/entity"
	"clinic-crm-service/internal/gateway"

	"github.com/sirupsen/logrus"
)

var (
	ErrAppointmentNotFound = errors.New("appointment not found")
)

type AppointmentUsecase interface {
	ListAppointments(ctx context.Context, date string) (*dto.AppointmentListResponse, error)
	GetAppointment(ctx context.Context, id string) (*entity.Appointment, error)
	CreateAppointment(ctx context.Context, req *dto.AppointmentRequest) (*entity.Appointment, error)
	UpdateAppointment(ctx context.Context, id string, req *dto.AppointmentRequest) (*entity.Appointment, error)
	CancelAppointment(ctx context.Context, id string) (*entity.Appointment, error)
}

type appointmentUsecase struct {
	log  *logrus.Logger
	crm  CRMGateway
	team TeamUsecase
}

func NewAppointmentUsecase(log *logrus.Logger, crm CRMGateway, team TeamUsecase) AppointmentUsecase {
	return &appointmentUsecase{
		log:  log,
		crm:  crm,
		team: team,
	}
}

func (u *appointmentUsecase) ListAppointments(ctx context.Context, date string) (*dto.AppointmentListResponse, error) {
	appointments, err := u.crm.ListAppointments(ctx, date)
	if err != nil {
		u.log.Warnf("Failed to list appointments: %+v", err)
		return nil, err
	}

	views := converter.AppointmentsToViews(appointments)
	for i := range views {
		u.enrichDoctorName(ctx, &views[i])
	}

	return &dto.AppointmentListResponse{
		Appointments: views,
		Total:        len(views),
	}, nil
}

func (u *appointmentUsecase) GetAppointment(ctx context.Context, id string) (*entity.Appointment, error) {
	appointment, err := u.crm.GetAppointment(ctx, id)
	if err != nil {
		if errors.Is(err, gateway.ErrNotFound) {
			return nil, ErrAppointmentNotFound
		}
		u.log.Warnf("Failed to get appointment %s: %+v", id, err)
		return nil, err
	}

	view := converter.AppointmentToView(appointment)
	if view == nil {
		u.log.Warnf("Gateway returned malformed appointment record for %s", id)
		return nil, ErrAppointmentNotFound
	}

	u.enrichDoctorName(ctx, view)
	return view, nil
}

func (u *appointmentUsecase) CreateAppointment(ctx context.Context, req *dto.AppointmentRequest) (*entity.Appointment, error) {
	wireReq, err := converter.AppointmentToRequest(appointmentFromRequest(req))
	if err != nil {
		return nil, err
	}

	appointment, err := u.crm.CreateAppointment(ctx, wireReq)
	if err != nil {
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, err
	}

	view := converter.AppointmentToView(appointment)
	if view == nil {
		u.log.Warnf("Gateway returned malformed appointment record after create")
		return nil, ErrAppointmentNotFound
	}

	u.enrichDoctorName(ctx, view)
	return view, nil
}

func (u *appointmentUsecase) UpdateAppointment(ctx context.Context, id string, req *dto.AppointmentRequest) (*entity.Appointment, error) {
	wireReq, err := converter.AppointmentToRequest(appointmentFromRequest(req))
	if err != nil {
		return nil, err
	}

	appointment, err := u.crm.UpdateAppointment(ctx, id, wireReq)
	if err != nil {
		if errors.Is(err, gateway.ErrNotFound) {
			return nil, ErrAppointmentNotFound
		}
		u.log.Warnf("Failed to update appointment %s: %+v", id, err)
		return nil, err
	}

	view := converter.AppointmentToView(appointment)
	if view == nil {
		u.log.Warnf("Gateway returned malformed appointment record for %s", id)
		return nil, ErrAppointmentNotFound
	}

	u.enrichDoctorName(ctx, view)
	return view, nil
}

// CancelAppointment keeps the record and flips its status; the gateway has
// no dedicated cancel endpoint.
func (u *appointmentUsecase) CancelAppointment(ctx context.Context, id string) (*entity.Appointment, error) {
	view, err := u.GetAppointment(ctx, id)
	if err != nil {
		return nil, err
	}

	view.Cancel()

	wireReq, err := converter.AppointmentToRequest(view)
	if err != nil {
		return nil, err
	}

	appointment, err := u.crm.UpdateAppointment(ctx, id, wireReq)
	if err != nil {
		u.log.Warnf("Failed to cancel appointment %s: %+v", id, err)
		return nil, err
	}

	cancelled := converter.AppointmentToView(appointment)
	if cancelled == nil {
		return nil, ErrAppointmentNotFound
	}

	u.enrichDoctorName(ctx, cancelled)
	return cancelled, nil
}

// enrichDoctorName fills the display name when the adapter could only
// resolve an opaque doctor id.
func (u *appointmentUsecase) enrichDoctorName(ctx context.Context, view *entity.Appointment) {
	if view.DoctorName != "" || view.DoctorID == "" {
		return
	}
	if name, ok := u.team.ResolveDoctorName(ctx, view.DoctorID); ok {
		view.DoctorName = name
	}
}

func appointmentFromRequest(req *dto.AppointmentRequest) *entity.Appointment {
	appointment := &entity.Appointment{
		PatientID: req.PatientID,
		DoctorID:  req.DoctorID,
		Date:      req.Date,
		Time:      req.Time,
		Status:    converter.NormalizeAppointmentStatus(req.Status),
		Type:      req.Type,
		Reason:    req.Reason,
		Notes:     req.Notes,
		Duration:  req.Duration,
		Priority:  req.Priority,
	}

	if req.Time == "" {
		appointment.Time = "00:00"
	}

	// Tolerate a full timestamp in the date field; the converter anchors
	// bare days at UTC midnight.
	if t, err := time.Parse(time.RFC3339, req.Date); err == nil {
		appointment.DateValue = &t
	}

	return appointment
}
