package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"clinic-crm-service/internal/delivery/dto"
	"clinic-crm-service/internal/usecase"
	"clinic-crm-service/pkg/response"
	"clinic-crm-service/pkg/validator"

	"github.com/gorilla/mux"
)

type TemplateHandler struct {
	templateUsecase usecase.TemplateUsecase
	validator       *validator.CustomValidator
}

func NewTemplateHandler(templateUsecase usecase.TemplateUsecase, validator *validator.CustomValidator) *TemplateHandler {
	return &TemplateHandler{
		templateUsecase: templateUsecase,
		validator:       validator,
	}
}

func (h *TemplateHandler) ListTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := h.templateUsecase.ListTemplates(r.Context())
	if err != nil {
		respondGatewayError(w, err, "Failed to list templates")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Templates retrieved successfully", templates.Templates, &response.Meta{Total: templates.Total})
}

func (h *TemplateHandler) GetTemplate(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	template, err := h.templateUsecase.GetTemplate(r.Context(), vars["id"])
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrTemplateNotFound):
			response.NotFound(w, "Template not found")
		default:
			respondGatewayError(w, err, "Failed to get template")
		}
		return
	}

	response.Success(w, http.StatusOK, "Template retrieved successfully", template)
}

func (h *TemplateHandler) CreateTemplate(w http.ResponseWriter, r *http.Request) {
	var req dto.TemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	template, err := h.templateUsecase.CreateTemplate(r.Context(), &req)
	if err != nil {
		respondGatewayError(w, err, "Failed to create template")
		return
	}

	response.Success(w, http.StatusCreated, "Template created successfully", template)
}

func (h *TemplateHandler) UpdateTemplate(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var req dto.TemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	template, err := h.templateUsecase.UpdateTemplate(r.Context(), vars["id"], &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrTemplateNotFound):
			response.NotFound(w, "Template not found")
		default:
			respondGatewayError(w, err, "Failed to update template")
		}
		return
	}

	response.Success(w, http.StatusOK, "Template updated successfully", template)
}

func (h *TemplateHandler) DeleteTemplate(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	if err := h.templateUsecase.DeleteTemplate(r.Context(), vars["id"]); err != nil {
		switch {
		case errors.Is(err, usecase.ErrTemplateNotFound):
			response.NotFound(w, "Template not found")
		default:
			respondGatewayError(w, err, "Failed to delete template")
		}
		return
	}

	response.Success(w, http.StatusOK, "Template deleted successfully", nil)
}
