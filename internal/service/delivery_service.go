package service

import (
	"context"
	"errors"

	"clinic-crm-service/internal/domain/entity"
	"clinic-crm-service/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ErrDuplicateDelivery is returned when a campaign already has delivery rows
// for the same recipients; the unique (campaign_id, customer_id) index makes
// re-sends idempotent.
var ErrDuplicateDelivery = errors.New("delivery already recorded for campaign")

// DeliveryService owns the service's local trail of campaign messages handed
// to the gateway. The CRM data itself lives behind the gateway; this is the
// only locally persisted state.
type DeliveryService interface {
	LogQueued(ctx context.Context, campaignID uuid.UUID, tag entity.CampaignTag, templateID string, customerIDs []string) error
	MarkSent(ctx context.Context, campaignID uuid.UUID) error
	MarkFailed(ctx context.Context, campaignID uuid.UUID, reason string) error
	ListByCampaign(ctx context.Context, campaignID uuid.UUID) ([]entity.DeliveryLog, error)
	ListRecent(ctx context.Context, limit int) ([]entity.DeliveryLog, error)
}

type deliveryService struct {
	db           *gorm.DB
	log          *logrus.Logger
	deliveryRepo repository.DeliveryLogRepository
}

func NewDeliveryService(db *gorm.DB, log *logrus.Logger, deliveryRepo repository.DeliveryLogRepository) DeliveryService {
	return &deliveryService{
		db:           db,
		log:          log,
		deliveryRepo: deliveryRepo,
	}
}

// LogQueued writes one queued row per recipient in a single transaction.
func (s *deliveryService) LogQueued(ctx context.Context, campaignID uuid.UUID, tag entity.CampaignTag, templateID string, customerIDs []string) error {
	logs := make([]entity.DeliveryLog, 0, len(customerIDs))
	for _, customerID := range customerIDs {
		logs = append(logs, entity.DeliveryLog{
			CampaignID: campaignID,
			CustomerID: customerID,
			Tag:        string(tag),
			TemplateID: templateID,
			Status:     entity.DeliveryStatusQueued,
		})
	}

	tx := s.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := s.deliveryRepo.CreateBatch(tx, logs); err != nil {
		if isDuplicateKeyError(err) {
			return ErrDuplicateDelivery
		}
		s.log.Warnf("Failed to create delivery logs: %+v", err)
		return err
	}

	if err := tx.Commit().Error; err != nil {
		s.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}

// MarkSent flips every delivery row of the campaign to sent.
func (s *deliveryService) MarkSent(ctx context.Context, campaignID uuid.UUID) error {
	err := s.deliveryRepo.UpdateStatus(s.db.WithContext(ctx), campaignID, entity.DeliveryStatusSent)
	if err != nil {
		s.log.Warnf("Failed to mark deliveries sent: %+v", err)
		return err
	}
	return nil
}

// MarkFailed flips every delivery row of the campaign to failed, keeping the
// reason in metadata for the admin view.
func (s *deliveryService) MarkFailed(ctx context.Context, campaignID uuid.UUID, reason string) error {
	err := s.db.WithContext(ctx).Model(&entity.DeliveryLog{}).
		Where("campaign_id = ?", campaignID).
		Updates(map[string]interface{}{
			"status":   entity.DeliveryStatusFailed,
			"metadata": entity.JSON{"reason": reason},
		}).Error
	if err != nil {
		s.log.Warnf("Failed to mark deliveries failed: %+v", err)
		return err
	}
	return nil
}

func (s *deliveryService) ListByCampaign(ctx context.Context, campaignID uuid.UUID) ([]entity.DeliveryLog, error) {
	logs, err := s.deliveryRepo.FindByCampaignID(s.db.WithContext(ctx), campaignID)
	if err != nil {
		s.log.Warnf("Failed to list deliveries for campaign %s: %+v", campaignID, err)
		return nil, err
	}
	return logs, nil
}

func (s *deliveryService) ListRecent(ctx context.Context, limit int) ([]entity.DeliveryLog, error) {
	logs, err := s.deliveryRepo.FindRecent(s.db.WithContext(ctx), limit)
	if err != nil {
		s.log.Warnf("Failed to list recent deliveries: %+v", err)
		return nil, err
	}
	return logs, nil
}

// isDuplicateKeyError checks for a Postgres unique violation
func isDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
