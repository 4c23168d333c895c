package repository

import (
	"clinic-crm-service/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DeliveryLogRepository interface {
	CreateBatch(db *gorm.DB, logs []entity.DeliveryLog) error
	UpdateStatus(db *gorm.DB, campaignID uuid.UUID, status entity.DeliveryStatus) error
	FindByCampaignID(db *gorm.DB, campaignID uuid.UUID) ([]entity.DeliveryLog, error)
	FindRecent(db *gorm.DB, limit int) ([]entity.DeliveryLog, error)
}
