package narrator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const generatePath = "/generatenext"

// rate limit on backend calls (10 requests/second with burst capacity of 5)
const (
	backendRequestsPerSecond = 10
	backendBurst             = 5
)

// creates a narrator client for the given backend URL.
// The timeout bounds the whole request; a slow backend surfaces as an
// error to the turn pipeline rather than a hung connection.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
				TLSHandshakeTimeout: 10 * time.Second,
			},
		},
		limiter: rate.NewLimiter(backendRequestsPerSecond, backendBurst),
	}
}

// asks the backend what happens next. Returns the narrative reply and the
// updated rolling history. A timeout, non-200 status, or malformed body is
// returned as an error; the caller decides how to surface it.
func (c *Client) Generate(ctx context.Context, history, previousReply, playerAction string) (reply string, newHistory string, err error) {
	reqBody := generateRequest{
		History:            history,
		PreviousAIResponse: previousReply,
		PlayerAction:       playerAction,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+generatePath, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	// rate limiting
	if err := c.limiter.Wait(ctx); err != nil {
		return "", "", fmt.Errorf("rate limiter error: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", "", fmt.Errorf("failed to send request: %w", err)
	}

	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body) //nolint:errcheck
		return "", "", fmt.Errorf("narrator request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var genResp generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return "", "", fmt.Errorf("failed to decode response: %w", err)
	}

	if genResp.LatestAIResponse == "" {
		return "", "", ErrEmptyResponse
	}

	return genResp.LatestAIResponse, genResp.LatestHistory, nil
}
