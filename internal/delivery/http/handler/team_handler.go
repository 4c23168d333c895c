package handler

import (
	"net/http"

	"clinic-crm-service/internal/usecase"
	"clinic-crm-service/pkg/response"
)

type TeamHandler struct {
	teamUsecase usecase.TeamUsecase
}

func NewTeamHandler(teamUsecase usecase.TeamUsecase) *TeamHandler {
	return &TeamHandler{
		teamUsecase: teamUsecase,
	}
}

func (h *TeamHandler) ListTeam(w http.ResponseWriter, r *http.Request) {
	team, err := h.teamUsecase.ListTeam(r.Context())
	if err != nil {
		respondGatewayError(w, err, "Failed to list team members")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Team retrieved successfully", team.Members, &response.Meta{Total: team.Total})
}
