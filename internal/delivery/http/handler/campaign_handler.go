package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"clinic-crm-service/internal/delivery/dto"
	"clinic-crm-service/internal/usecase"
	"clinic-crm-service/pkg/response"
	"clinic-crm-service/pkg/validator"

	"github.com/gorilla/mux"
)

type CampaignHandler struct {
	campaignUsecase usecase.CampaignUsecase
	validator       *validator.CustomValidator
}

func NewCampaignHandler(campaignUsecase usecase.CampaignUsecase, validator *validator.CustomValidator) *CampaignHandler {
	return &CampaignHandler{
		campaignUsecase: campaignUsecase,
		validator:       validator,
	}
}

func (h *CampaignHandler) SendCampaign(w http.ResponseWriter, r *http.Request) {
	var req dto.CampaignSendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.campaignUsecase.SendCampaign(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrUnknownCampaignTag):
			response.Error(w, http.StatusBadRequest, "Unknown campaign tag", nil)
		case errors.Is(err, usecase.ErrTemplateNotFound):
			response.NotFound(w, "Template not found")
		case errors.Is(err, usecase.ErrNoRecipients):
			response.Error(w, http.StatusUnprocessableEntity, "Campaign tag matched no recipients", nil)
		case errors.Is(err, usecase.ErrInsufficientBalance):
			response.PaymentRequired(w, "Wallet balance does not cover campaign cost")
		case errors.Is(err, usecase.ErrCampaignAlreadySent):
			response.Error(w, http.StatusConflict, "Campaign already sent today", nil)
		default:
			respondGatewayError(w, err, "Failed to send campaign")
		}
		return
	}

	response.Success(w, http.StatusAccepted, "Campaign queued successfully", result)
}

func (h *CampaignHandler) ListDeliveries(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	deliveries, err := h.campaignUsecase.ListDeliveries(r.Context(), limit)
	if err != nil {
		response.InternalServerError(w, "Failed to list deliveries")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Deliveries retrieved successfully", deliveries.Deliveries, &response.Meta{Total: deliveries.Total})
}

func (h *CampaignHandler) ListCampaignDeliveries(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	deliveries, err := h.campaignUsecase.ListCampaignDeliveries(r.Context(), vars["id"])
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidCampaignID):
			response.Error(w, http.StatusBadRequest, "Invalid campaign id", nil)
		default:
			response.InternalServerError(w, "Failed to list campaign deliveries")
		}
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Deliveries retrieved successfully", deliveries.Deliveries, &response.Meta{Total: deliveries.Total})
}

func (h *CampaignHandler) ListTags(w http.ResponseWriter, r *http.Request) {
	response.Success(w, http.StatusOK, "Campaign tags retrieved successfully", h.campaignUsecase.ListTags())
}
