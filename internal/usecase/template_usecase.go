package usecase

import (
	"context"
	"errors"

	"clinic-crm-service/internal/converter"
	"clinic-crm-service/internal/delivery/dto"
	"clinic-crm-service/internal/domain/entity"
	"clinic-crm-service/internal/gateway"

	"github.com/sirupsen/logrus"
)

var (
	ErrTemplateNotFound = errors.New("template not found")
)

type TemplateUsecase interface {
	ListTemplates(ctx context.Context) (*dto.TemplateListResponse, error)
	GetTemplate(ctx context.Context, id string) (*entity.Template, error)
	CreateTemplate(ctx context.Context, req *dto.TemplateRequest) (*entity.Template, error)
	UpdateTemplate(ctx context.Context, id string, req *dto.TemplateRequest) (*entity.Template, error)
	DeleteTemplate(ctx context.Context, id string) error
}

type templateUsecase struct {
	log *logrus.Logger
	crm CRMGateway
}

func NewTemplateUsecase(log *logrus.Logger, crm CRMGateway) TemplateUsecase {
	return &templateUsecase{
		log: log,
		crm: crm,
	}
}

func (u *templateUsecase) ListTemplates(ctx context.Context) (*dto.TemplateListResponse, error) {
	templates, err := u.crm.ListTemplates(ctx)
	if err != nil {
		u.log.Warnf("Failed to list templates: %+v", err)
		return nil, err
	}

	views := converter.TemplatesToViews(templates)

	return &dto.TemplateListResponse{
		Templates: views,
		Total:     len(views),
	}, nil
}

func (u *templateUsecase) GetTemplate(ctx context.Context, id string) (*entity.Template, error) {
	template, err := u.crm.GetTemplate(ctx, id)
	if err != nil {
		if errors.Is(err, gateway.ErrNotFound) {
			return nil, ErrTemplateNotFound
		}
		u.log.Warnf("Failed to get template %s: %+v", id, err)
		return nil, err
	}

	view := converter.TemplateToView(template)
	if view == nil {
		return nil, ErrTemplateNotFound
	}

	return view, nil
}

func (u *templateUsecase) CreateTemplate(ctx context.Context, req *dto.TemplateRequest) (*entity.Template, error) {
	template, err := u.crm.CreateTemplate(ctx, converter.TemplateToRequest(&entity.Template{
		Name:    req.Name,
		Content: req.Content,
	}))
	if err != nil {
		u.log.Warnf("Failed to create template: %+v", err)
		return nil, err
	}

	view := converter.TemplateToView(template)
	if view == nil {
		return nil, ErrTemplateNotFound
	}

	return view, nil
}

func (u *templateUsecase) UpdateTemplate(ctx context.Context, id string, req *dto.TemplateRequest) (*entity.Template, error) {
	template, err := u.crm.UpdateTemplate(ctx, id, converter.TemplateToRequest(&entity.Template{
		Name:    req.Name,
		Content: req.Content,
	}))
	if err != nil {
		if errors.Is(err, gateway.ErrNotFound) {
			return nil, ErrTemplateNotFound
		}
		u.log.Warnf("Failed to update template %s: %+v", id, err)
		return nil, err
	}

	view := converter.TemplateToView(template)
	if view == nil {
		return nil, ErrTemplateNotFound
	}

	return view, nil
}

func (u *templateUsecase) DeleteTemplate(ctx context.Context, id string) error {
	if err := u.crm.DeleteTemplate(ctx, id); err != nil {
		if errors.Is(err, gateway.ErrNotFound) {
			return ErrTemplateNotFound
		}
		u.log.Warnf("Failed to delete template %s: %+v", id, err)
		return err
	}
	return nil
}
