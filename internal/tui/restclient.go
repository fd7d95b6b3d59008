package tui

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// manages HTTP requests to the adventure REST API
type APIClient struct {
	endpoint   string
	token      string
	httpClient *http.Client
}

// creates a new REST client
func NewAPIClient() *APIClient {
	endpoint := os.Getenv("ELDORIA_API_ENDPOINT")
	if endpoint == "" {
		endpoint = "http://localhost:8080"
	}

	return &APIClient{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: apiRequestTimeout,
		},
	}
}

// exchanges credentials for a session token
func (c *APIClient) Signin(ctx context.Context, username, password string) (string, error) {
	var result signinResponse
	if err := c.post(ctx, "/api/v1/auth/signin", credentials{username, password}, &result); err != nil {
		return "", err
	}

	if result.Token == "" {
		return "", fmt.Errorf("server returned an empty token")
	}

	c.token = result.Token
	return result.Token, nil
}

// registers a new account
func (c *APIClient) Signup(ctx context.Context, username, password string) error {
	var result signupResponse
	return c.post(ctx, "/api/v1/auth/signup", credentials{username, password}, &result)
}

// fetches the stored conversation for the signed-in user
func (c *APIClient) FetchHistory(ctx context.Context) ([]StoryEntry, error) {
	url := fmt.Sprintf("%s/api/v1/messages?mode=all", c.endpoint)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp.StatusCode, body)
	}

	var result messagesResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	entries := make([]StoryEntry, 0, len(result.Messages))
	for _, m := range result.Messages {
		entries = append(entries, StoryEntry{Role: m.Role, Content: m.Message})
	}

	return entries, nil
}

func (c *APIClient) post(ctx context.Context, path string, payload any, out any) error {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s%s", c.endpoint, path)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payloadBytes))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return apiError(resp.StatusCode, body)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	return nil
}

// extracts a readable message from an error response body
func apiError(status int, body []byte) error {
	var errResp errorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		if errResp.Message != "" {
			return fmt.Errorf("%s", errResp.Message)
		}
		return fmt.Errorf("%s", errResp.Error)
	}

	return fmt.Errorf("request failed with status %d", status)
}

// REST API request/response types

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type signinResponse struct {
	Token string `json:"token"`
}

type signupResponse struct {
	UserID int64 `json:"user_id"`
}

type storedMessage struct {
	ID      int64  `json:"id"`
	Message string `json:"message"`
	Role    string `json:"role"`
}

type messagesResponse struct {
	Messages []storedMessage `json:"messages"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// timeout for REST requests
const apiRequestTimeout = 15 * time.Second
