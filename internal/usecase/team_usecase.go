package usecase

import (
	"context"
	"time"

	"clinic-crm-service/internal/converter"
	"clinic-crm-service/internal/delivery/dto"

	"github.com/sirupsen/logrus"
)

const (
	doctorLookupCacheKey = "team:doctor-names"
	doctorLookupCacheTTL = 5 * time.Minute
)

type TeamUsecase interface {
	ListTeam(ctx context.Context) (*dto.TeamListResponse, error)
	// ResolveDoctorName maps a doctor id to a display name via the
	// memoized roster. A failed or missing lookup reports false; the
	// caller degrades to showing the raw reference.
	ResolveDoctorName(ctx context.Context, doctorID string) (string, bool)
}

type teamUsecase struct {
	log  *logrus.Logger
	crm  CRMGateway
	memo MemoCache
}

func NewTeamUsecase(log *logrus.Logger, crm CRMGateway, memo MemoCache) TeamUsecase {
	return &teamUsecase{
		log:  log,
		crm:  crm,
		memo: memo,
	}
}

func (u *teamUsecase) ListTeam(ctx context.Context) (*dto.TeamListResponse, error) {
	members, err := u.crm.ListTeamMembers(ctx)
	if err != nil {
		u.log.Warnf("Failed to list team members: %+v", err)
		return nil, err
	}

	views := converter.TeamMembersToViews(members)

	return &dto.TeamListResponse{
		Members: views,
		Total:   len(views),
	}, nil
}

func (u *teamUsecase) ResolveDoctorName(ctx context.Context, doctorID string) (string, bool) {
	if doctorID == "" {
		return "", false
	}

	var lookup map[string]string
	err := u.memo.GetOrRefresh(ctx, doctorLookupCacheKey, doctorLookupCacheTTL, &lookup, func(ctx context.Context) (interface{}, error) {
		members, err := u.crm.ListTeamMembers(ctx)
		if err != nil {
			return nil, err
		}

		names := make(map[string]string, len(members))
		for _, view := range converter.TeamMembersToViews(members) {
			names[view.ID] = view.Name
		}
		return names, nil
	})
	if err != nil {
		u.log.Warnf("Failed to refresh doctor lookup: %+v", err)
		return "", false
	}

	name, ok := lookup[doctorID]
	return name, ok && name != ""
}
