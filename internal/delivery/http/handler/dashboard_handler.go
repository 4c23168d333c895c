package handler

import (
	"net/http"

	"clinic-crm-service/internal/usecase"
	"clinic-crm-service/pkg/response"
)

type DashboardHandler struct {
	dashboardUsecase usecase.DashboardUsecase
}

func NewDashboardHandler(dashboardUsecase usecase.DashboardUsecase) *DashboardHandler {
	return &DashboardHandler{
		dashboardUsecase: dashboardUsecase,
	}
}

func (h *DashboardHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.dashboardUsecase.GetStats(r.Context())
	if err != nil {
		respondGatewayError(w, err, "Failed to get dashboard stats")
		return
	}

	response.Success(w, http.StatusOK, "Dashboard stats retrieved successfully", stats)
}

func (h *DashboardHandler) GetWallet(w http.ResponseWriter, r *http.Request) {
	wallet, err := h.dashboardUsecase.GetWallet(r.Context())
	if err != nil {
		respondGatewayError(w, err, "Failed to get wallet balance")
		return
	}

	response.Success(w, http.StatusOK, "Wallet balance retrieved successfully", wallet)
}
