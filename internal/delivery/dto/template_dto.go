package dto

import "clinic-crm-service/internal/domain/entity"

// TemplateRequest creates or replaces a message template. Content order is
// the send sequence.
type TemplateRequest struct {
	Name    string   `json:"name" validate:"required,max=255"`
	Content []string `json:"content" validate:"required,min=1,dive,required,max=4096"`
}

type TemplateListResponse struct {
	Templates []entity.Template `json:"templates"`
	Total     int               `json:"total"`
}
