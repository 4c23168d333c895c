package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"clinic-crm-service/internal/delivery/dto"
	"clinic-crm-service/internal/gateway"
	"clinic-crm-service/internal/usecase"
	"clinic-crm-service/pkg/response"
	"clinic-crm-service/pkg/validator"

	"github.com/gorilla/mux"
)

type PatientHandler struct {
	patientUsecase usecase.PatientUsecase
	validator      *validator.CustomValidator
}

func NewPatientHandler(patientUsecase usecase.PatientUsecase, validator *validator.CustomValidator) *PatientHandler {
	return &PatientHandler{
		patientUsecase: patientUsecase,
		validator:      validator,
	}
}

func (h *PatientHandler) ListPatients(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")

	patients, err := h.patientUsecase.ListPatients(r.Context(), status)
	if err != nil {
		respondGatewayError(w, err, "Failed to list patients")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Patients retrieved successfully", patients.Patients, &response.Meta{Total: patients.Total})
}

func (h *PatientHandler) GetPatient(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	patient, err := h.patientUsecase.GetPatient(r.Context(), vars["id"])
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrPatientNotFound):
			response.NotFound(w, "Patient not found")
		default:
			respondGatewayError(w, err, "Failed to get patient")
		}
		return
	}

	response.Success(w, http.StatusOK, "Patient retrieved successfully", patient)
}

func (h *PatientHandler) CreatePatient(w http.ResponseWriter, r *http.Request) {
	var req dto.PatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	patient, err := h.patientUsecase.CreatePatient(r.Context(), &req)
	if err != nil {
		respondGatewayError(w, err, "Failed to create patient")
		return
	}

	response.Success(w, http.StatusCreated, "Patient created successfully", patient)
}

func (h *PatientHandler) UpdatePatient(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var req dto.PatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	patient, err := h.patientUsecase.UpdatePatient(r.Context(), vars["id"], &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrPatientNotFound):
			response.NotFound(w, "Patient not found")
		default:
			respondGatewayError(w, err, "Failed to update patient")
		}
		return
	}

	response.Success(w, http.StatusOK, "Patient updated successfully", patient)
}

func (h *PatientHandler) DeletePatient(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	if err := h.patientUsecase.DeletePatient(r.Context(), vars["id"]); err != nil {
		switch {
		case errors.Is(err, usecase.ErrPatientNotFound):
			response.NotFound(w, "Patient not found")
		default:
			respondGatewayError(w, err, "Failed to delete patient")
		}
		return
	}

	response.Success(w, http.StatusOK, "Patient deleted successfully", nil)
}

// respondGatewayError distinguishes upstream CRM failures from local ones so
// the UI can tell "gateway down" apart from "our bug".
func respondGatewayError(w http.ResponseWriter, err error, fallback string) {
	var apiErr *gateway.APIError
	if errors.As(err, &apiErr) {
		response.BadGateway(w, "CRM gateway error: "+apiErr.Message)
		return
	}
	if errors.Is(err, gateway.ErrUnauthorized) {
		response.BadGateway(w, "CRM gateway rejected the service credentials")
		return
	}
	response.InternalServerError(w, fallback)
}
