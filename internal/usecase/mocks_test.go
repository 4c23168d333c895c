package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"time"

	"clinic-crm-service/internal/domain/entity"
	"clinic-crm-service/internal/gateway"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var errNotStubbed = errors.New("method not stubbed")

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// mockCRMGateway implements CRMGateway with function fields so each test
// stubs only the calls it expects.
type mockCRMGateway struct {
	ListCustomersFn     func(ctx context.Context, status string) ([]gateway.Customer, error)
	GetCustomerFn       func(ctx context.Context, id string) (*gateway.Customer, error)
	CreateCustomerFn    func(ctx context.Context, req *gateway.CustomerRequest) (*gateway.Customer, error)
	UpdateCustomerFn    func(ctx context.Context, id string, req *gateway.CustomerRequest) (*gateway.Customer, error)
	DeleteCustomerFn    func(ctx context.Context, id string) error
	ListAppointmentsFn  func(ctx context.Context, date string) ([]gateway.Appointment, error)
	GetAppointmentFn    func(ctx context.Context, id string) (*gateway.Appointment, error)
	CreateAppointmentFn func(ctx context.Context, req *gateway.AppointmentRequest) (*gateway.Appointment, error)
	UpdateAppointmentFn func(ctx context.Context, id string, req *gateway.AppointmentRequest) (*gateway.Appointment, error)
	DeleteAppointmentFn func(ctx context.Context, id string) error
	ListTemplatesFn     func(ctx context.Context) ([]gateway.Template, error)
	GetTemplateFn       func(ctx context.Context, id string) (*gateway.Template, error)
	CreateTemplateFn    func(ctx context.Context, req *gateway.TemplateRequest) (*gateway.Template, error)
	UpdateTemplateFn    func(ctx context.Context, id string, req *gateway.TemplateRequest) (*gateway.Template, error)
	DeleteTemplateFn    func(ctx context.Context, id string) error
	SendCampaignFn      func(ctx context.Context, req *gateway.CampaignSendRequest) (*gateway.CampaignSendResponse, error)
	ListTeamMembersFn   func(ctx context.Context) ([]gateway.TeamMember, error)
	GetWalletBalanceFn  func(ctx context.Context) (*gateway.WalletBalance, error)
	VerifyCredentialsFn func(ctx context.Context, req *gateway.VerifyCredentialsRequest) (*gateway.VerifyCredentialsResponse, error)
}

func (m *mockCRMGateway) ListCustomers(ctx context.Context, status string) ([]gateway.Customer, error) {
	if m.ListCustomersFn == nil {
		return nil, errNotStubbed
	}
	return m.ListCustomersFn(ctx, status)
}

func (m *mockCRMGateway) GetCustomer(ctx context.Context, id string) (*gateway.Customer, error) {
	if m.GetCustomerFn == nil {
		return nil, errNotStubbed
	}
	return m.GetCustomerFn(ctx, id)
}

func (m *mockCRMGateway) CreateCustomer(ctx context.Context, req *gateway.CustomerRequest) (*gateway.Customer, error) {
	if m.CreateCustomerFn == nil {
		return nil, errNotStubbed
	}
	return m.CreateCustomerFn(ctx, req)
}

func (m *mockCRMGateway) UpdateCustomer(ctx context.Context, id string, req *gateway.CustomerRequest) (*gateway.Customer, error) {
	if m.UpdateCustomerFn == nil {
		return nil, errNotStubbed
	}
	return m.UpdateCustomerFn(ctx, id, req)
}

func (m *mockCRMGateway) DeleteCustomer(ctx context.Context, id string) error {
	if m.DeleteCustomerFn == nil {
		return errNotStubbed
	}
	return m.DeleteCustomerFn(ctx, id)
}

func (m *mockCRMGateway) ListAppointments(ctx context.Context, date string) ([]gateway.Appointment, error) {
	if m.ListAppointmentsFn == nil {
		return nil, errNotStubbed
	}
	return m.ListAppointmentsFn(ctx, date)
}

func (m *mockCRMGateway) GetAppointment(ctx context.Context, id string) (*gateway.Appointment, error) {
	if m.GetAppointmentFn == nil {
		return nil, errNotStubbed
	}
	return m.GetAppointmentFn(ctx, id)
}

func (m *mockCRMGateway) CreateAppointment(ctx context.Context, req *gateway.AppointmentRequest) (*gateway.Appointment, error) {
	if m.CreateAppointmentFn == nil {
		return nil, errNotStubbed
	}
	return m.CreateAppointmentFn(ctx, req)
}

func (m *mockCRMGateway) UpdateAppointment(ctx context.Context, id string, req *gateway.AppointmentRequest) (*gateway.Appointment, error) {
	if m.UpdateAppointmentFn == nil {
		return nil, errNotStubbed
	}
	return m.UpdateAppointmentFn(ctx, id, req)
}

func (m *mockCRMGateway) DeleteAppointment(ctx context.Context, id string) error {
	if m.DeleteAppointmentFn == nil {
		return errNotStubbed
	}
	return m.DeleteAppointmentFn(ctx, id)
}

func (m *mockCRMGateway) ListTemplates(ctx context.Context) ([]gateway.Template, error) {
	if m.ListTemplatesFn == nil {
		return nil, errNotStubbed
	}
	return m.ListTemplatesFn(ctx)
}

func (m *mockCRMGateway) GetTemplate(ctx context.Context, id string) (*gateway.Template, error) {
	if m.GetTemplateFn == nil {
		return nil, errNotStubbed
	}
	return m.GetTemplateFn(ctx, id)
}

func (m *mockCRMGateway) CreateTemplate(ctx context.Context, req *gateway.TemplateRequest) (*gateway.Template, error) {
	if m.CreateTemplateFn == nil {
		return nil, errNotStubbed
	}
	return m.CreateTemplateFn(ctx, req)
}

func (m *mockCRMGateway) UpdateTemplate(ctx context.Context, id string, req *gateway.TemplateRequest) (*gateway.Template, error) {
	if m.UpdateTemplateFn == nil {
		return nil, errNotStubbed
	}
	return m.UpdateTemplateFn(ctx, id, req)
}

func (m *mockCRMGateway) DeleteTemplate(ctx context.Context, id string) error {
	if m.DeleteTemplateFn == nil {
		return errNotStubbed
	}
	return m.DeleteTemplateFn(ctx, id)
}

func (m *mockCRMGateway) SendCampaign(ctx context.Context, req *gateway.CampaignSendRequest) (*gateway.CampaignSendResponse, error) {
	if m.SendCampaignFn == nil {
		return nil, errNotStubbed
	}
	return m.SendCampaignFn(ctx, req)
}

func (m *mockCRMGateway) ListTeamMembers(ctx context.Context) ([]gateway.TeamMember, error) {
	if m.ListTeamMembersFn == nil {
		return nil, errNotStubbed
	}
	return m.ListTeamMembersFn(ctx)
}

func (m *mockCRMGateway) GetWalletBalance(ctx context.Context) (*gateway.WalletBalance, error) {
	if m.GetWalletBalanceFn == nil {
		return nil, errNotStubbed
	}
	return m.GetWalletBalanceFn(ctx)
}

func (m *mockCRMGateway) VerifyCredentials(ctx context.Context, req *gateway.VerifyCredentialsRequest) (*gateway.VerifyCredentialsResponse, error) {
	if m.VerifyCredentialsFn == nil {
		return nil, errNotStubbed
	}
	return m.VerifyCredentialsFn(ctx, req)
}

// mockMemoCache runs the loader every time and marshals the result through
// JSON into out, the same shape data takes through Redis.
type mockMemoCache struct {
	calls int
}

func (m *mockMemoCache) GetOrRefresh(ctx context.Context, key string, ttl time.Duration, out interface{}, loader func(ctx context.Context) (interface{}, error)) error {
	m.calls++
	value, err := loader(ctx)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

func (m *mockMemoCache) Invalidate(ctx context.Context, key string) error {
	return nil
}

// mockDeliveryService records calls for the campaign tests.
type mockDeliveryService struct {
	LogQueuedFn  func(ctx context.Context, campaignID uuid.UUID, tag entity.CampaignTag, templateID string, customerIDs []string) error
	markedSent   []uuid.UUID
	markedFailed []uuid.UUID
	failReasons  []string
}

func (m *mockDeliveryService) LogQueued(ctx context.Context, campaignID uuid.UUID, tag entity.CampaignTag, templateID string, customerIDs []string) error {
	if m.LogQueuedFn == nil {
		return nil
	}
	return m.LogQueuedFn(ctx, campaignID, tag, templateID, customerIDs)
}

func (m *mockDeliveryService) MarkSent(ctx context.Context, campaignID uuid.UUID) error {
	m.markedSent = append(m.markedSent, campaignID)
	return nil
}

func (m *mockDeliveryService) MarkFailed(ctx context.Context, campaignID uuid.UUID, reason string) error {
	m.markedFailed = append(m.markedFailed, campaignID)
	m.failReasons = append(m.failReasons, reason)
	return nil
}

func (m *mockDeliveryService) ListByCampaign(ctx context.Context, campaignID uuid.UUID) ([]entity.DeliveryLog, error) {
	return nil, nil
}

func (m *mockDeliveryService) ListRecent(ctx context.Context, limit int) ([]entity.DeliveryLog, error) {
	return nil, nil
}
