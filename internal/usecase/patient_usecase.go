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
	ErrPatientNotFound = errors.New("patient not found")
)

type PatientUsecase interface {
	ListPatients(ctx context.Context, status string) (*dto.PatientListResponse, error)
	GetPatient(ctx context.Context, id string) (*entity.Patient, error)
	CreatePatient(ctx context.Context, req *dto.PatientRequest) (*entity.Patient, error)
	UpdatePatient(ctx context.Context, id string, req *dto.PatientRequest) (*entity.Patient, error)
	DeletePatient(ctx context.Context, id string) error
}

type patientUsecase struct {
	log *logrus.Logger
	crm CRMGateway
}

func NewPatientUsecase(log *logrus.Logger, crm CRMGateway) PatientUsecase {
	return &patientUsecase{
		log: log,
		crm: crm,
	}
}

// ListPatients returns all patients, optionally filtered by status. The
// filter tolerates any casing/spelling variant of the four canonical
// statuses.
func (u *patientUsecase) ListPatients(ctx context.Context, status string) (*dto.PatientListResponse, error) {
	wireStatus := ""
	if status != "" {
		wireStatus = converter.PatientStatusWire(entity.PatientStatus(status))
	}

	customers, err := u.crm.ListCustomers(ctx, wireStatus)
	if err != nil {
		u.log.Warnf("Failed to list customers: %+v", err)
		return nil, err
	}

	patients := converter.CustomersToPatients(customers)

	return &dto.PatientListResponse{
		Patients: patients,
		Total:    len(patients),
	}, nil
}

func (u *patientUsecase) GetPatient(ctx context.Context, id string) (*entity.Patient, error) {
	customer, err := u.crm.GetCustomer(ctx, id)
	if err != nil {
		if errors.Is(err, gateway.ErrNotFound) {
			return nil, ErrPatientNotFound
		}
		u.log.Warnf("Failed to get customer %s: %+v", id, err)
		return nil, err
	}

	patient := converter.CustomerToPatient(customer)
	if patient == nil {
		u.log.Warnf("Gateway returned malformed customer record for %s", id)
		return nil, ErrPatientNotFound
	}

	return patient, nil
}

func (u *patientUsecase) CreatePatient(ctx context.Context, req *dto.PatientRequest) (*entity.Patient, error) {
	customer, err := u.crm.CreateCustomer(ctx, converter.PatientToCustomerRequest(patientFromRequest(req)))
	if err != nil {
		u.log.Warnf("Failed to create customer: %+v", err)
		return nil, err
	}

	patient := converter.CustomerToPatient(customer)
	if patient == nil {
		u.log.Warnf("Gateway returned malformed customer record after create")
		return nil, ErrPatientNotFound
	}

	return patient, nil
}

func (u *patientUsecase) UpdatePatient(ctx context.Context, id string, req *dto.PatientRequest) (*entity.Patient, error) {
	customer, err := u.crm.UpdateCustomer(ctx, id, converter.PatientToCustomerRequest(patientFromRequest(req)))
	if err != nil {
		if errors.Is(err, gateway.ErrNotFound) {
			return nil, ErrPatientNotFound
		}
		u.log.Warnf("Failed to update customer %s: %+v", id, err)
		return nil, err
	}

	patient := converter.CustomerToPatient(customer)
	if patient == nil {
		u.log.Warnf("Gateway returned malformed customer record for %s", id)
		return nil, ErrPatientNotFound
	}

	return patient, nil
}

func (u *patientUsecase) DeletePatient(ctx context.Context, id string) error {
	if err := u.crm.DeleteCustomer(ctx, id); err != nil {
		if errors.Is(err, gateway.ErrNotFound) {
			return ErrPatientNotFound
		}
		u.log.Warnf("Failed to delete customer %s: %+v", id, err)
		return err
	}
	return nil
}

// patientFromRequest builds the view model the converter encodes for the
// gateway. Status and gender normalization happen inside the converter.
func patientFromRequest(req *dto.PatientRequest) *entity.Patient {
	patient := &entity.Patient{
		Name:             req.Name,
		Age:              req.Age,
		Gender:           converter.NormalizeGender(req.Gender),
		Phone:            req.Phone,
		Email:            req.Email,
		Address:          req.Address,
		AssignedDoctorID: req.AssignedDoctorID,
		Status:           converter.NormalizePatientStatus(req.Status),
		MedicalNotes:     req.MedicalNotes,
	}

	if req.DateOfBirth != "" {
		if dob, err := time.Parse("2006-01-02", req.DateOfBirth); err == nil {
			patient.DateOfBirth = &dob
		}
	}

	return patient
}
