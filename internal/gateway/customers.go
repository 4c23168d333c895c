package gateway

import (
	"context"
	"net/http"
	"net/url"
)

// ListCustomers returns all customers, optionally filtered by wire status.
func (c *Client) ListCustomers(ctx context.Context, status string) ([]Customer, error) {
	path := "/api/customers"
	if status != "" {
		path += "?status=" + url.QueryEscape(status)
	}

	var customers []Customer
	if err := c.do(ctx, http.MethodGet, path, nil, &customers); err != nil {
		return nil, err
	}
	return customers, nil
}

func (c *Client) GetCustomer(ctx context.Context, id string) (*Customer, error) {
	var customer Customer
	if err := c.do(ctx, http.MethodGet, "/api/customers/"+url.PathEscape(id), nil, &customer); err != nil {
		return nil, err
	}
	return &customer, nil
}

func (c *Client) CreateCustomer(ctx context.Context, req *CustomerRequest) (*Customer, error) {
	var customer Customer
	if err := c.do(ctx, http.MethodPost, "/api/customers", req, &customer); err != nil {
		return nil, err
	}
	return &customer, nil
}

func (c *Client) UpdateCustomer(ctx context.Context, id string, req *CustomerRequest) (*Customer, error) {
	var customer Customer
	if err := c.do(ctx, http.MethodPut, "/api/customers/"+url.PathEscape(id), req, &customer); err != nil {
		return nil, err
	}
	return &customer, nil
}

func (c *Client) DeleteCustomer(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/customers/"+url.PathEscape(id), nil, nil)
}
