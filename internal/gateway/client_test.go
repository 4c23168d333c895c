package gateway

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"clinic-crm-service/config"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	log := logrus.New()
	log.SetOutput(io.Discard)

	return NewClient(config.GatewayConfig{
		BaseURL: server.URL,
		APIKey:  "test-key",
		Timeout: 5 * time.Second,
	}, log)
}

func TestClientSendsAPIKey(t *testing.T) {
	var gotKey string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-API-Key")
		json.NewEncoder(w).Encode([]Customer{})
	})

	_, err := client.ListCustomers(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "test-key", gotKey)
}

func TestListCustomersStatusFilter(t *testing.T) {
	var gotQuery string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("status")
		json.NewEncoder(w).Encode([]Customer{{ID: "c-1", FirstName: "Jane"}})
	})

	customers, err := client.ListCustomers(context.Background(), "FollowUp")
	require.NoError(t, err)

	assert.Equal(t, "FollowUp", gotQuery)
	require.Len(t, customers, 1)
	assert.Equal(t, "c-1", customers[0].ID)
}

func TestGetCustomerNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"message": "no such customer"})
	})

	_, err := client.GetCustomer(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "no such customer")
}

func TestClientUnauthorized(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := client.GetWalletBalance(context.Background())
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestClientAPIErrorCarriesStatusAndMessage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		json.NewEncoder(w).Encode(map[string]string{"message": "upstream CRM is down"})
	})

	_, err := client.ListTeamMembers(context.Background())
	require.Error(t, err)

	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Equal(t, "upstream CRM is down", apiErr.Message)
}

func TestCreateCustomerRoundTrip(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req CustomerRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		json.NewEncoder(w).Encode(Customer{
			ID:        "c-42",
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Status:    req.Status,
		})
	})

	customer, err := client.CreateCustomer(context.Background(), &CustomerRequest{
		FirstName: "Jane",
		LastName:  "Doe",
		Status:    "Active",
	})
	require.NoError(t, err)

	assert.Equal(t, "c-42", customer.ID)
	assert.Equal(t, "Jane", customer.FirstName)
}

func TestGetCustomerEscapesID(t *testing.T) {
	var gotPath string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		json.NewEncoder(w).Encode(Customer{ID: "a/b"})
	})

	_, err := client.GetCustomer(context.Background(), "a/b")
	require.NoError(t, err)
	assert.Equal(t, "/api/customers/a%2Fb", gotPath)
}
