package client

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/cloudwego/hertz/pkg/app/client"
	"github.com/cloudwego/hertz/pkg/network/standard"
	"github.com/cloudwego/hertz/pkg/protocol"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"github.com/lvyanru/chat-history/internal/cli/types"
)

// Paths histctl calls, all under /api/v1.
const (
	endpointLogin       = "/api/v1/auth/login"
	endpointCurrentUser = "/api/v1/users/me"
	endpointChatHistory = "/api/v1/chat/history"
)

// APIError is a non-2xx answer from the API server.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("%s (HTTP %d)", e.Message, e.StatusCode)
}

// APIClient wraps Hertz Client for HTTP communication with API Server
type APIClient struct {
	client *client.Client
	server string
	token  string
}

// NewAPIClient creates a new API client
func NewAPIClient(server, token string) (*APIClient, error) {
	normalizedServer, err := normalizeServerURL(server)
	if err != nil {
		return nil, fmt.Errorf("invalid server URL: %w", err)
	}

	c, err := client.NewClient(
		client.WithDialTimeout(10*time.Second),
		client.WithMaxIdleConnDuration(60*time.Second),
		client.WithDialer(standard.NewDialer()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP client: %w", err)
	}

	return &APIClient{
		client: c,
		server: normalizedServer,
		token:  token,
	}, nil
}

// normalizeServerURL normalizes server URL to ensure it has a scheme and no trailing slash
func normalizeServerURL(server string) (string, error) {
	if !strings.Contains(server, "://") {
		server = "http://" + server
	}

	u, err := url.Parse(server)
	if err != nil || u.Host == "" {
		return "", fmt.Errorf("invalid server URL")
	}

	// scheme://host (no path, no trailing slash)
	return fmt.Sprintf("%s://%s", u.Scheme, u.Host), nil
}

// Server returns the normalized server address.
func (c *APIClient) Server() string {
	return c.server
}

// Login exchanges credentials for a session token.
func (c *APIClient) Login(ctx context.Context, username, password string) (*types.Session, error) {
	reqBody := types.Credentials{
		Username: username,
		Password: password,
	}

	var loginResp types.APIResponse[types.Session]
	if err := c.do(ctx, consts.MethodPost, endpointLogin, reqBody, &loginResp); err != nil {
		return nil, err
	}
	if loginResp.Data.Token == "" {
		return nil, fmt.Errorf("server returned no token")
	}
	return &loginResp.Data, nil
}

// CurrentUser returns the account behind the stored token.
func (c *APIClient) CurrentUser(ctx context.Context) (*types.Account, error) {
	var userResp types.APIResponse[types.Account]
	if err := c.do(ctx, consts.MethodGet, endpointCurrentUser, nil, &userResp); err != nil {
		return nil, err
	}
	return &userResp.Data, nil
}

// GetHistory fetches the last limit turns of chatID, oldest first.
// A limit of 0 lets the server apply its default.
func (c *APIClient) GetHistory(ctx context.Context, chatID string, limit int) ([]types.Turn, error) {
	reqBody := types.HistoryRequest{
		ChatID: chatID,
		Limit:  limit,
	}

	var historyResp types.APIResponse[types.HistoryData]
	if err := c.do(ctx, consts.MethodPost, endpointChatHistory, reqBody, &historyResp); err != nil {
		return nil, err
	}
	if historyResp.Data.History == nil {
		return []types.Turn{}, nil
	}
	return historyResp.Data.History, nil
}

// do sends a JSON request and decodes the JSON envelope into out.
func (c *APIClient) do(ctx context.Context, method, endpoint string, body, out any) error {
	req := protocol.AcquireRequest()
	resp := protocol.AcquireResponse()
	defer func() {
		protocol.ReleaseRequest(req)
		protocol.ReleaseResponse(resp)
	}()

	req.SetMethod(method)
	req.SetRequestURI(c.server + endpoint)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if body != nil {
		bodyBytes, err := sonic.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		req.Header.SetContentTypeBytes([]byte("application/json"))
		req.SetBody(bodyBytes)
	}

	if err := c.client.Do(ctx, req, resp); err != nil {
		return fmt.Errorf("request failed: %w", err)
	}

	if status := resp.StatusCode(); status < 200 || status >= 300 {
		apiErr := &APIError{StatusCode: status}
		var envelope types.APIResponse[any]
		if err := sonic.Unmarshal(resp.Body(), &envelope); err == nil {
			apiErr.Code = envelope.Code
			apiErr.Message = envelope.Message
		}
		return apiErr
	}

	if err := sonic.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return nil
}
