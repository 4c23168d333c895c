package gateway

import (
	"context"
	"net/http"
	"net/url"
)

func (c *Client) ListTemplates(ctx context.Context) ([]Template, error) {
	var templates []Template
	if err := c.do(ctx, http.MethodGet, "/api/templates", nil, &templates); err != nil {
		return nil, err
	}
	return templates, nil
}

func (c *Client) GetTemplate(ctx context.Context, id string) (*Template, error) {
	var template Template
	if err := c.do(ctx, http.MethodGet, "/api/templates/"+url.PathEscape(id), nil, &template); err != nil {
		return nil, err
	}
	return &template, nil
}

func (c *Client) CreateTemplate(ctx context.Context, req *TemplateRequest) (*Template, error) {
	var template Template
	if err := c.do(ctx, http.MethodPost, "/api/templates", req, &template); err != nil {
		return nil, err
	}
	return &template, nil
}

func (c *Client) UpdateTemplate(ctx context.Context, id string, req *TemplateRequest) (*Template, error) {
	var template Template
	if err := c.do(ctx, http.MethodPut, "/api/templates/"+url.PathEscape(id), req, &template); err != nil {
		return nil, err
	}
	return &template, nil
}

func (c *Client) DeleteTemplate(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/templates/"+url.PathEscape(id), nil, nil)
}
