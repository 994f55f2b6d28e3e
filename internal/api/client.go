// ABOUTME: HTTP client for the Nexus Health backend API
// ABOUTME: Wraps resty with a base URL and the caller's user id; no retries, no request timeouts

package api

import (
	"fmt"
	"log/slog"

	"github.com/go-resty/resty/v2"
)

// Client talks to the backend over HTTP. Every call takes a context;
// failures come back as wrapped errors and are terminal for the user
// action that triggered them - nothing is retried here.
type Client struct {
	http   *resty.Client
	userID string
	logger *slog.Logger
}

// New creates a Client for the backend at baseURL, acting as userID.
func New(baseURL, userID string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}

	http := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json")

	return &Client{
		http:   http,
		userID: userID,
		logger: logger.With("component", "api"),
	}
}

// UserID returns the user id this client sends with every request.
func (c *Client) UserID() string {
	return c.userID
}

// checkStatus converts a non-2xx response into an error.
func checkStatus(resp *resty.Response) error {
	if resp.IsError() {
		return fmt.Errorf("server returned status %d", resp.StatusCode())
	}
	return nil
}
