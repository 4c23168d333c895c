package gateway

import (
	"context"
	"net/http"
	"net/url"
)

// ListAppointments returns all appointments, optionally bounded to a single
// calendar day (2006-01-02).
func (c *Client) ListAppointments(ctx context.Context, date string) ([]Appointment, error) {
	path := "/api/appointments"
	if date != "" {
		path += "?date=" + url.QueryEscape(date)
	}

	var appointments []Appointment
	if err := c.do(ctx, http.MethodGet, path, nil, &appointments); err != nil {
		return nil, err
	}
	return appointments, nil
}

func (c *Client) GetAppointment(ctx context.Context, id string) (*Appointment, error) {
	var appointment Appointment
	if err := c.do(ctx, http.MethodGet, "/api/appointments/"+url.PathEscape(id), nil, &appointment); err != nil {
		return nil, err
	}
	return &appointment, nil
}

func (c *Client) CreateAppointment(ctx context.Context, req *AppointmentRequest) (*Appointment, error) {
	var appointment Appointment
	if err := c.do(ctx, http.MethodPost, "/api/appointments", req, &appointment); err != nil {
		return nil, err
	}
	return &appointment, nil
}

func (c *Client) UpdateAppointment(ctx context.Context, id string, req *AppointmentRequest) (*Appointment, error) {
	var appointment Appointment
	if err := c.do(ctx, http.MethodPut, "/api/appointments/"+url.PathEscape(id), req, &appointment); err != nil {
		return nil, err
	}
	return &appointment, nil
}

func (c *Client) DeleteAppointment(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/appointments/"+url.PathEscape(id), nil, nil)
}
