package usecase

import (
	"context"
	"time"

	"clinic-crm-service/internal/converter"
	"clinic-crm-service/internal/delivery/dto"
	"clinic-crm-service/internal/domain/entity"

	"github.com/sirupsen/logrus"
)

const (
	dashboardStatsCacheKey = "dashboard:stats"
	dashboardStatsCacheTTL = 60 * time.Second
)

type DashboardUsecase interface {
	GetStats(ctx context.Context) (*dto.DashboardStatsResponse, error)
	GetWallet(ctx context.Context) (*dto.WalletResponse, error)
}

type dashboardUsecase struct {
	log  *logrus.Logger
	crm  CRMGateway
	memo MemoCache
}

func NewDashboardUsecase(log *logrus.Logger, crm CRMGateway, memo MemoCache) DashboardUsecase {
	return &dashboardUsecase{
		log:  log,
		crm:  crm,
		memo: memo,
	}
}

// GetStats aggregates patient counts, today's appointments and the wallet
// into one memoized snapshot. The short TTL keeps the dashboard off the
// gateway's hot path without going stale.
func (u *dashboardUsecase) GetStats(ctx context.Context) (*dto.DashboardStatsResponse, error) {
	var stats dto.DashboardStatsResponse
	err := u.memo.GetOrRefresh(ctx, dashboardStatsCacheKey, dashboardStatsCacheTTL, &stats, func(ctx context.Context) (interface{}, error) {
		return u.buildStats(ctx)
	})
	if err != nil {
		u.log.Warnf("Failed to build dashboard stats: %+v", err)
		return nil, err
	}
	return &stats, nil
}

func (u *dashboardUsecase) GetWallet(ctx context.Context) (*dto.WalletResponse, error) {
	wallet, err := u.crm.GetWalletBalance(ctx)
	if err != nil {
		u.log.Warnf("Failed to read wallet balance: %+v", err)
		return nil, err
	}
	return &dto.WalletResponse{
		Balance:  wallet.Balance,
		Currency: wallet.Currency,
	}, nil
}

func (u *dashboardUsecase) buildStats(ctx context.Context) (*dto.DashboardStatsResponse, error) {
	customers, err := u.crm.ListCustomers(ctx, "")
	if err != nil {
		return nil, err
	}

	patients := converter.CustomersToPatients(customers)

	stats := &dto.DashboardStatsResponse{TotalPatients: len(patients)}
	for i := range patients {
		patient := &patients[i]
		switch {
		case patient.IsActive():
			stats.ActivePatients++
		case patient.NeedsFollowUp():
			stats.FollowUpPatients++
		case patient.Status == entity.PatientStatusBooked:
			stats.BookedPatients++
		case patient.Status == entity.PatientStatusInactive:
			stats.InactivePatients++
		}
	}

	today := time.Now().UTC().Format("2006-01-02")
	appointments, err := u.crm.ListAppointments(ctx, today)
	if err != nil {
		return nil, err
	}

	views := converter.AppointmentsToViews(appointments)
	stats.AppointmentsToday = len(views)
	for i := range views {
		if views[i].IsPending() {
			stats.PendingToday++
		}
	}

	wallet, err := u.crm.GetWalletBalance(ctx)
	if err != nil {
		return nil, err
	}
	stats.WalletBalance = wallet.Balance
	stats.WalletCurrency = wallet.Currency

	return stats, nil
}
