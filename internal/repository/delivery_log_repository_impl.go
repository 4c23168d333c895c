package repository

import (
	"clinic-crm-service/internal/domain/entity"
	domainRepo "clinic-crm-service/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type deliveryLogRepository struct{}

func NewDeliveryLogRepository() domainRepo.DeliveryLogRepository {
	return &deliveryLogRepository{}
}

func (r *deliveryLogRepository) CreateBatch(db *gorm.DB, logs []entity.DeliveryLog) error {
	if len(logs) == 0 {
		return nil
	}
	return db.Create(&logs).Error
}

func (r *deliveryLogRepository) UpdateStatus(db *gorm.DB, campaignID uuid.UUID, status entity.DeliveryStatus) error {
	return db.Model(&entity.DeliveryLog{}).
		Where("campaign_id = ?", campaignID).
		Update("status", status).Error
}

func (r *deliveryLogRepository) FindByCampaignID(db *gorm.DB, campaignID uuid.UUID) ([]entity.DeliveryLog, error) {
	var logs []entity.DeliveryLog
	err := db.Where("campaign_id = ?", campaignID).Order("created_at").Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}

func (r *deliveryLogRepository) FindRecent(db *gorm.DB, limit int) ([]entity.DeliveryLog, error) {
	var logs []entity.DeliveryLog
	err := db.Order("created_at desc").Limit(limit).Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}
