package reader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"

var (
	ErrRateLimited = errors.New("reader rate limit exceeded")
	ErrNotFound    = errors.New("page not found")
	ErrForbidden   = errors.New("access forbidden")
)

// Client for the hosted reader API that turns any page into clean text.
// The target URL is appended to the base URL as is.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
	userAgent  string
}

func New(baseURL, apiKey string, timeout time.Duration, logger *zap.Logger) *Client {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		logger:    logger,
		userAgent: browserUserAgent,
	}
}

// Read fetches the page behind target. One attempt, no retries.
func (c *Client) Read(ctx context.Context, target string) (string, error) {
	fullURL := c.baseURL + target

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/plain")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		c.logger.Debug("successful request",
			zap.String("url", target),
			zap.Int("status", resp.StatusCode),
			zap.Int("bytes", len(body)),
		)
		return strings.TrimSpace(string(body)), nil
	}

	c.logger.Warn("reader API error",
		zap.String("url", target),
		zap.Int("status", resp.StatusCode),
		zap.String("body", truncate(string(body), 300)),
	)

	switch resp.StatusCode {
	case http.StatusTooManyRequests:
		return "", ErrRateLimited
	case http.StatusNotFound:
		return "", ErrNotFound
	case http.StatusUnauthorized, http.StatusForbidden:
		return "", ErrForbidden
	default:
		return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
