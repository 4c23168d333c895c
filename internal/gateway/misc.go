package gateway

import (
	"context"
	"net/http"
)

// SendCampaign hands a resolved recipient list to the gateway for dispatch.
func (c *Client) SendCampaign(ctx context.Context, req *CampaignSendRequest) (*CampaignSendResponse, error) {
	var resp CampaignSendResponse
	if err := c.do(ctx, http.MethodPost, "/api/campaigns/send", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListTeamMembers returns the clinic staff roster.
func (c *Client) ListTeamMembers(ctx context.Context) ([]TeamMember, error) {
	var members []TeamMember
	if err := c.do(ctx, http.MethodGet, "/api/team", nil, &members); err != nil {
		return nil, err
	}
	return members, nil
}

// GetWalletBalance returns the clinic's messaging credit balance.
func (c *Client) GetWalletBalance(ctx context.Context) (*WalletBalance, error) {
	var balance WalletBalance
	if err := c.do(ctx, http.MethodGet, "/api/wallet", nil, &balance); err != nil {
		return nil, err
	}
	return &balance, nil
}

// VerifyCredentials forwards a clinic user's login to the gateway, which
// owns the user directory. The service never stores passwords.
func (c *Client) VerifyCredentials(ctx context.Context, req *VerifyCredentialsRequest) (*VerifyCredentialsResponse, error) {
	var resp VerifyCredentialsResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/verify", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
