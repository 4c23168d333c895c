package dto

import "clinic-crm-service/internal/domain/entity"

// DashboardStatsResponse is the aggregate the dashboard page renders. It is
// memoized; see the dashboard usecase for the TTL.
type DashboardStatsResponse struct {
	TotalPatients     int    `json:"total_patients"`
	ActivePatients    int    `json:"active_patients"`
	BookedPatients    int    `json:"booked_patients"`
	FollowUpPatients  int    `json:"follow_up_patients"`
	InactivePatients  int    `json:"inactive_patients"`
	AppointmentsToday int    `json:"appointments_today"`
	PendingToday      int    `json:"pending_today"`
	WalletBalance     string `json:"wallet_balance"`
	WalletCurrency    string `json:"wallet_currency"`
}

type WalletResponse struct {
	Balance  string `json:"balance"`
	Currency string `json:"currency"`
}

type TeamListResponse struct {
	Members []entity.TeamMember `json:"members"`
	Total   int                 `json:"total"`
}
