package usecase

import (
	"context"
	"time"

	"clinic-crm-service/internal/gateway"
	"clinic-crm-service/internal/infrastructure/cache"
)

// CRMGateway is the slice of the gateway client the usecases consume.
// Keeping it an interface lets tests swap in function-field mocks.
type CRMGateway interface {
	ListCustomers(ctx context.Context, status string) ([]gateway.Customer, error)
	GetCustomer(ctx context.Context, id string) (*gateway.Customer, error)
	CreateCustomer(ctx context.Context, req *gateway.CustomerRequest) (*gateway.Customer, error)
	UpdateCustomer(ctx context.Context, id string, req *gateway.CustomerRequest) (*gateway.Customer, error)
	DeleteCustomer(ctx context.Context, id string) error

	ListAppointments(ctx context.Context, date string) ([]gateway.Appointment, error)
	GetAppointment(ctx context.Context, id string) (*gateway.Appointment, error)
	CreateAppointment(ctx context.Context, req *gateway.AppointmentRequest) (*gateway.Appointment, error)
	UpdateAppointment(ctx context.Context, id string, req *gateway.AppointmentRequest) (*gateway.Appointment, error)
	DeleteAppointment(ctx context.Context, id string) error

	ListTemplates(ctx context.Context) ([]gateway.Template, error)
	GetTemplate(ctx context.Context, id string) (*gateway.Template, error)
	CreateTemplate(ctx context.Context, req *gateway.TemplateRequest) (*gateway.Template, error)
	UpdateTemplate(ctx context.Context, id string, req *gateway.TemplateRequest) (*gateway.Template, error)
	DeleteTemplate(ctx context.Context, id string) error

	SendCampaign(ctx context.Context, req *gateway.CampaignSendRequest) (*gateway.CampaignSendResponse, error)
	ListTeamMembers(ctx context.Context) ([]gateway.TeamMember, error)
	GetWalletBalance(ctx context.Context) (*gateway.WalletBalance, error)
	VerifyCredentials(ctx context.Context, req *gateway.VerifyCredentialsRequest) (*gateway.VerifyCredentialsResponse, error)
}

// MemoCache is the get-or-refresh cache surface.
type MemoCache interface {
	GetOrRefresh(ctx context.Context, key string, ttl time.Duration, out interface{}, loader func(ctx context.Context) (interface{}, error)) error
	Invalidate(ctx context.Context, key string) error
}

var (
	_ CRMGateway = (*gateway.Client)(nil)
	_ MemoCache  = (*cache.Memo)(nil)
)
