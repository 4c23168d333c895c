package dto

import "clinic-crm-service/internal/domain/entity"

// CampaignSendRequest dispatches one campaign. Tag is matched against the
// closed recipient-filter set, tolerating casing and separator variants.
type CampaignSendRequest struct {
	Name       string `json:"name" validate:"required,max=255"`
	Tag        string `json:"tag" validate:"required,max=32"`
	TemplateID string `json:"template_id" validate:"required,max=64"`
}

type CampaignSendResponse struct {
	CampaignID string             `json:"campaign_id"`
	Tag        entity.CampaignTag `json:"tag"`
	TagLabel   string             `json:"tag_label"`
	Recipients int                `json:"recipients"`
	Queued     int                `json:"queued"`
	Cost       string             `json:"cost"`
}

type DeliveryListResponse struct {
	Deliveries []entity.DeliveryLog `json:"deliveries"`
	Total      int                  `json:"total"`
}

// CampaignTagResponse is one recipient filter option for the UI.
type CampaignTagResponse struct {
	Value entity.CampaignTag `json:"value"`
	Label string             `json:"label"`
}
