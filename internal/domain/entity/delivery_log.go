package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DeliveryStatus tracks the lifecycle of one campaign message delivery
type DeliveryStatus string

const (
	DeliveryStatusQueued DeliveryStatus = "queued"
	DeliveryStatusSent   DeliveryStatus = "sent"
	DeliveryStatusFailed DeliveryStatus = "failed"
)

// DeliveryLog is the local record of a campaign message handed to the
// gateway. The gateway owns the CRM data; this table is the service's own
// operational trail, and the (campaign_id, customer_id) unique index makes
// campaign re-sends idempotent.
type DeliveryLog struct {
	ID         int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	CampaignID uuid.UUID      `gorm:"type:uuid;not null;index;uniqueIndex:ux_delivery_campaign_customer" json:"campaign_id"`
	CustomerID string         `gorm:"type:varchar(64);not null;uniqueIndex:ux_delivery_campaign_customer" json:"customer_id"`
	Tag        string         `gorm:"type:varchar(32);not null;index" json:"tag"`
	TemplateID string         `gorm:"type:varchar(64);not null" json:"template_id"`
	Status     DeliveryStatus `gorm:"type:varchar(16);not null;default:'queued';index" json:"status"`
	Metadata   JSON           `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt  time.Time      `gorm:"autoCreateTime;index" json:"created_at"`
}

func (DeliveryLog) TableName() string {
	return "delivery_logs"
}

// JSON type for GORM JSONB support
type JSON map[string]interface{}

// Value returns json value, implement driver.Valuer interface
func (j JSON) Value() (driver.Value, error) {
	if len(j) == 0 {
		return nil, nil
	}
	return json.Marshal(j)
}

// Scan scan value into Jsonb, implements sql.Scanner interface
func (j *JSON) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New(fmt.Sprint("Failed to unmarshal JSONB value:", value))
	}

	result := map[string]interface{}{}
	err := json.Unmarshal(bytes, &result)
	*j = JSON(result)
	return err
}
