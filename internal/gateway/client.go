package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"clinic-crm-service/config"

	"github.com/sirupsen/logrus"
)

var (
	ErrNotFound     = errors.New("resource not found on gateway")
	ErrUnauthorized = errors.New("gateway rejected credentials")
)

// APIError is a non-2xx gateway response that is neither a 404 nor a 401.
type APIError struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("gateway error %d: %s", e.Status, e.Message)
}

// Client talks to the CRM Gateway REST API. The service authenticates with
// its API key; end-user credentials are only ever forwarded through
// VerifyCredentials.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	log        *logrus.Logger
}

func NewClient(cfg config.GatewayConfig, log *logrus.Logger) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		log: log,
	}
}

// do performs one gateway round trip. body and out may be nil; out is
// json-decoded from the response body on 2xx.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal gateway request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build gateway request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-API-Key", c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("gateway %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.errorFromResponse(resp, method, path)
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode gateway response for %s %s: %w", method, path, err)
	}

	return nil
}

func (c *Client) errorFromResponse(resp *http.Response, method, path string) error {
	var apiErr APIError
	apiErr.Status = resp.StatusCode
	apiErr.Message = http.StatusText(resp.StatusCode)

	// The gateway sends {"message": "..."} on errors; keep the status text
	// when the body is not parseable.
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err == nil && len(raw) > 0 {
		var parsed struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(raw, &parsed) == nil && parsed.Message != "" {
			apiErr.Message = parsed.Message
		}
	}

	c.log.Warnf("Gateway %s %s returned %d: %s", method, path, apiErr.Status, apiErr.Message)

	switch resp.StatusCode {
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, apiErr.Message)
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrUnauthorized, apiErr.Message)
	default:
		return &apiErr
	}
}
