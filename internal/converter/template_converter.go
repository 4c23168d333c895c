package converter

import (
	"clinic-crm-service/internal/domain/entity"
	"clinic-crm-service/internal/gateway"
)

// TemplateToView converts a gateway template record. Content order is the
// message send sequence and is preserved as-is.
func TemplateToView(template *gateway.Template) *entity.Template {
	if template == nil || template.ID == "" {
		return nil
	}

	content := make([]string, len(template.Content))
	copy(content, template.Content)

	return &entity.Template{
		ID:      template.ID,
		Name:    template.Name,
		Content: content,
	}
}

// TemplatesToViews converts a slice of templates, skipping invalid records.
func TemplatesToViews(templates []gateway.Template) []entity.Template {
	views := make([]entity.Template, 0, len(templates))
	for i := range templates {
		if view := TemplateToView(&templates[i]); view != nil {
			views = append(views, *view)
		}
	}
	return views
}

// TemplateToRequest builds the gateway write payload.
func TemplateToRequest(template *entity.Template) *gateway.TemplateRequest {
	if template == nil {
		return nil
	}

	content := make([]string, len(template.Content))
	copy(content, template.Content)

	return &gateway.TemplateRequest{
		Name:    template.Name,
		Content: content,
	}
}
