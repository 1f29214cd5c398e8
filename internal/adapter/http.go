package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const defaultHTTPTimeout = 10 * time.Minute

// ServiceError is the error reported by a scan or delete service. Message is
// the human readable text from the `{"error": "..."}` response body.
type ServiceError struct {
	Status  int
	Message string
}

func (e *ServiceError) Error() string {
	if e.Status == 0 {
		return e.Message
	}

	return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
}

// ClientOption configures the HTTP service clients.
type ClientOption func(*httpClient)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *httpClient) {
		c.client = client
	}
}

// WithRateLimit caps the number of requests per second. Zero disables it.
func WithRateLimit(perSecond float64) ClientOption {
	return func(c *httpClient) {
		if perSecond <= 0 {
			c.limiter = nil
			return
		}

		c.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
	}
}

type httpClient struct {
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
}

func newHTTPClient(baseURL string, options ...ClientOption) httpClient {
	c := httpClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: defaultHTTPTimeout},
	}

	for _, option := range options {
		option(&c)
	}

	return c
}

type errorResponse struct {
	Error string `json:"error"`
}

// postJSON sends body to endpoint and decodes a 2xx response into out.
func (c httpClient) postJSON(ctx context.Context, endpoint string, body, out interface{}) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limit: %w", err)
		}
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	url := c.baseURL + endpoint

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		slog.Error("Request failed", "url", url, "error", err)
		return &ServiceError{Message: err.Error()}
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return decodeServiceError(resp.StatusCode, data)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

func decodeServiceError(status int, data []byte) error {
	var body errorResponse
	if err := json.Unmarshal(data, &body); err == nil && body.Error != "" {
		return &ServiceError{Status: status, Message: body.Error}
	}

	message := strings.TrimSpace(string(data))
	if message == "" {
		message = http.StatusText(status)
	}

	return &ServiceError{Status: status, Message: message}
}
