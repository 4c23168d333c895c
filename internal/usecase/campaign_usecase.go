package usecase

import (
	"context"
	"errors"
	"time"

	"clinic-crm-service/internal/converter"
	"clinic-crm-service/internal/delivery/dto"
	"clinic-crm-service/internal/domain/entity"
	"clinic-crm-service/internal/gateway"
	"clinic-crm-service/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

var (
	ErrUnknownCampaignTag   = errors.New("unknown campaign tag")
	ErrInvalidCampaignID    = errors.New("invalid campaign id")
	ErrNoRecipients         = errors.New("campaign tag matched no recipients")
	ErrInsufficientBalance  = errors.New("wallet balance does not cover campaign cost")
	ErrCampaignAlreadySent  = errors.New("campaign already sent today")
	ErrInvalidWalletBalance = errors.New("gateway returned unreadable wallet balance")
)

// newPatientWindow is how far back a customer record counts as "New" for
// the recipient filter.
const newPatientWindow = 30 * 24 * time.Hour

type CampaignUsecase interface {
	SendCampaign(ctx context.Context, req *dto.CampaignSendRequest) (*dto.CampaignSendResponse, error)
	ListDeliveries(ctx context.Context, limit int) (*dto.DeliveryListResponse, error)
	ListCampaignDeliveries(ctx context.Context, campaignID string) (*dto.DeliveryListResponse, error)
	ListTags() []dto.CampaignTagResponse
}

type campaignUsecase struct {
	log         *logrus.Logger
	crm         CRMGateway
	deliveries  service.DeliveryService
	memo        MemoCache
	messageCost decimal.Decimal
}

func NewCampaignUsecase(log *logrus.Logger, crm CRMGateway, deliveries service.DeliveryService, memo MemoCache, messageCost decimal.Decimal) CampaignUsecase {
	return &campaignUsecase{
		log:         log,
		crm:         crm,
		deliveries:  deliveries,
		memo:        memo,
		messageCost: messageCost,
	}
}

// SendCampaign resolves the recipient filter, checks the wallet covers the
// cost, records the delivery trail, and hands the batch to the gateway. The
// campaign id is derived from name, tag and calendar day, so re-sending the
// same campaign within a day trips the delivery log's unique index instead
// of double-charging.
func (u *campaignUsecase) SendCampaign(ctx context.Context, req *dto.CampaignSendRequest) (*dto.CampaignSendResponse, error) {
	tag, ok := converter.NormalizeCampaignTag(req.Tag)
	if !ok {
		return nil, ErrUnknownCampaignTag
	}

	template, err := u.crm.GetTemplate(ctx, req.TemplateID)
	if err != nil {
		if errors.Is(err, gateway.ErrNotFound) {
			return nil, ErrTemplateNotFound
		}
		u.log.Warnf("Failed to load template %s: %+v", req.TemplateID, err)
		return nil, err
	}

	recipients, err := u.resolveRecipients(ctx, tag)
	if err != nil {
		return nil, err
	}
	if len(recipients) == 0 {
		return nil, ErrNoRecipients
	}

	messages := len(template.Content)
	if messages == 0 {
		messages = 1
	}
	cost := u.messageCost.
		Mul(decimal.NewFromInt(int64(messages))).
		Mul(decimal.NewFromInt(int64(len(recipients))))

	if err := u.checkBalance(ctx, cost); err != nil {
		return nil, err
	}

	day := time.Now().UTC().Format("2006-01-02")
	campaignID := uuid.NewSHA1(uuid.NameSpaceOID, []byte(req.Name+"|"+string(tag)+"|"+day))

	customerIDs := make([]string, len(recipients))
	for i, patient := range recipients {
		customerIDs[i] = patient.ID
	}

	if err := u.deliveries.LogQueued(ctx, campaignID, tag, req.TemplateID, customerIDs); err != nil {
		if errors.Is(err, service.ErrDuplicateDelivery) {
			return nil, ErrCampaignAlreadySent
		}
		return nil, err
	}

	resp, err := u.crm.SendCampaign(ctx, &gateway.CampaignSendRequest{
		CampaignID:  campaignID.String(),
		Name:        req.Name,
		Tag:         string(tag),
		TemplateID:  req.TemplateID,
		CustomerIDs: customerIDs,
	})
	if err != nil {
		u.log.Warnf("Gateway rejected campaign %s: %+v", campaignID, err)
		if markErr := u.deliveries.MarkFailed(ctx, campaignID, err.Error()); markErr != nil {
			u.log.Warnf("Failed to record campaign failure: %+v", markErr)
		}
		return nil, err
	}

	if err := u.deliveries.MarkSent(ctx, campaignID); err != nil {
		u.log.Warnf("Failed to record campaign success: %+v", err)
	}

	// The send spent wallet credit; drop the cached dashboard snapshot.
	if err := u.memo.Invalidate(ctx, dashboardStatsCacheKey); err != nil {
		u.log.Warnf("Failed to invalidate dashboard stats: %+v", err)
	}

	return &dto.CampaignSendResponse{
		CampaignID: campaignID.String(),
		Tag:        tag,
		TagLabel:   tag.Label(),
		Recipients: len(recipients),
		Queued:     resp.Queued,
		Cost:       cost.StringFixed(2),
	}, nil
}

func (u *campaignUsecase) ListDeliveries(ctx context.Context, limit int) (*dto.DeliveryListResponse, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	logs, err := u.deliveries.ListRecent(ctx, limit)
	if err != nil {
		return nil, err
	}

	return &dto.DeliveryListResponse{
		Deliveries: logs,
		Total:      len(logs),
	}, nil
}

func (u *campaignUsecase) ListCampaignDeliveries(ctx context.Context, campaignID string) (*dto.DeliveryListResponse, error) {
	id, err := uuid.Parse(campaignID)
	if err != nil {
		return nil, ErrInvalidCampaignID
	}

	logs, err := u.deliveries.ListByCampaign(ctx, id)
	if err != nil {
		return nil, err
	}

	return &dto.DeliveryListResponse{
		Deliveries: logs,
		Total:      len(logs),
	}, nil
}

func (u *campaignUsecase) ListTags() []dto.CampaignTagResponse {
	tags := make([]dto.CampaignTagResponse, 0, len(entity.CampaignTags))
	for _, tag := range entity.CampaignTags {
		tags = append(tags, dto.CampaignTagResponse{Value: tag, Label: tag.Label()})
	}
	return tags
}

// resolveRecipients turns a campaign tag into concrete patients. Status tags
// filter on the gateway; All, New and Birthday need local post-filtering.
func (u *campaignUsecase) resolveRecipients(ctx context.Context, tag entity.CampaignTag) ([]entity.Patient, error) {
	var wireStatus string
	switch tag {
	case entity.CampaignTagActive:
		wireStatus = string(entity.PatientStatusActive)
	case entity.CampaignTagInactive:
		wireStatus = string(entity.PatientStatusInactive)
	case entity.CampaignTagBooked:
		wireStatus = string(entity.PatientStatusBooked)
	case entity.CampaignTagFollowUp:
		wireStatus = string(entity.PatientStatusFollowUp)
	}

	customers, err := u.crm.ListCustomers(ctx, wireStatus)
	if err != nil {
		u.log.Warnf("Failed to resolve recipients for tag %s: %+v", tag, err)
		return nil, err
	}

	patients := converter.CustomersToPatients(customers)

	switch tag {
	case entity.CampaignTagNew:
		return filterPatients(patients, func(p *entity.Patient) bool {
			return p.CreatedAt != nil && time.Since(*p.CreatedAt) <= newPatientWindow
		}), nil
	case entity.CampaignTagBirthday:
		now := time.Now().UTC()
		return filterPatients(patients, func(p *entity.Patient) bool {
			return p.DateOfBirth != nil &&
				p.DateOfBirth.Month() == now.Month() &&
				p.DateOfBirth.Day() == now.Day()
		}), nil
	default:
		return patients, nil
	}
}

func (u *campaignUsecase) checkBalance(ctx context.Context, cost decimal.Decimal) error {
	raw, err := u.crm.GetWalletBalance(ctx)
	if err != nil {
		u.log.Warnf("Failed to read wallet balance: %+v", err)
		return err
	}

	balance, err := decimal.NewFromString(raw.Balance)
	if err != nil {
		u.log.Warnf("Unreadable wallet balance %q: %+v", raw.Balance, err)
		return ErrInvalidWalletBalance
	}

	wallet := entity.Wallet{Balance: balance, Currency: raw.Currency}
	if !wallet.CanAfford(cost) {
		return ErrInsufficientBalance
	}
	return nil
}

func filterPatients(patients []entity.Patient, keep func(*entity.Patient) bool) []entity.Patient {
	filtered := make([]entity.Patient, 0, len(patients))
	for i := range patients {
		if keep(&patients[i]) {
			filtered = append(filtered, patients[i])
		}
	}
	return filtered
}
