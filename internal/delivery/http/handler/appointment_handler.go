package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"clinic-crm-service/internal/converter"
	"clinic-crm-service/internal/delivery/dto"
	"clinic-crm-service/internal/usecase"
	"clinic-crm-service/pkg/response"
	"clinic-crm-service/pkg/validator"

	"github.com/gorilla/mux"
)

type AppointmentHandler struct {
	appointmentUsecase usecase.AppointmentUsecase
	validator          *validator.CustomValidator
}

func NewAppointmentHandler(appointmentUsecase usecase.AppointmentUsecase, validator *validator.CustomValidator) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentUsecase: appointmentUsecase,
		validator:          validator,
	}
}

func (h *AppointmentHandler) ListAppointments(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")

	appointments, err := h.appointmentUsecase.ListAppointments(r.Context(), date)
	if err != nil {
		respondGatewayError(w, err, "Failed to list appointments")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Appointments retrieved successfully", appointments.Appointments, &response.Meta{Total: appointments.Total})
}

func (h *AppointmentHandler) GetAppointment(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	appointment, err := h.appointmentUsecase.GetAppointment(r.Context(), vars["id"])
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrAppointmentNotFound):
			response.NotFound(w, "Appointment not found")
		default:
			respondGatewayError(w, err, "Failed to get appointment")
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointment retrieved successfully", appointment)
}

func (h *AppointmentHandler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	var req dto.AppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.appointmentUsecase.CreateAppointment(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, converter.ErrMissingPatientRef):
			response.Error(w, http.StatusBadRequest, "Appointment has no patient reference", nil)
		default:
			respondGatewayError(w, err, "Failed to create appointment")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Appointment created successfully", appointment)
}

func (h *AppointmentHandler) UpdateAppointment(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var req dto.AppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.appointmentUsecase.UpdateAppointment(r.Context(), vars["id"], &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrAppointmentNotFound):
			response.NotFound(w, "Appointment not found")
		case errors.Is(err, converter.ErrMissingPatientRef):
			response.Error(w, http.StatusBadRequest, "Appointment has no patient reference", nil)
		default:
			respondGatewayError(w, err, "Failed to update appointment")
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointment updated successfully", appointment)
}

func (h *AppointmentHandler) CancelAppointment(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	appointment, err := h.appointmentUsecase.CancelAppointment(r.Context(), vars["id"])
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrAppointmentNotFound):
			response.NotFound(w, "Appointment not found")
		default:
			respondGatewayError(w, err, "Failed to cancel appointment")
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointment cancelled successfully", appointment)
}
