package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"time"

	"recovres/internal/config"
)

type Client struct {
	httpClient  *http.Client
	limiter     *RateLimiter
	maxAttempts int
	sleep       func(time.Duration)
}

func NewClient(cfg config.Config) *Client {
	attempts := cfg.FetchMaxAttempts
	if attempts <= 0 {
		attempts = 1
	}
	return &Client{
		httpClient:  &http.Client{Timeout: time.Duration(cfg.FetchTimeoutMs) * time.Millisecond},
		limiter:     NewRateLimiter(cfg.FetchRateLimitRPS),
		maxAttempts: attempts,
		sleep:       time.Sleep,
	}
}

// Get downloads rawURL, retrying transport errors and retryable statuses
// with exponential backoff.
func (c *Client) Get(ctx context.Context, rawURL string) ([]byte, error) {
	var lastErr error
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", "recovres/1.0")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			c.backoff(attempt)
			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if readErr != nil {
			lastErr = readErr
			c.backoff(attempt)
			continue
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			if isRetryableStatus(resp.StatusCode) && attempt < c.maxAttempts {
				lastErr = fmt.Errorf("registry status %d", resp.StatusCode)
				c.backoff(attempt)
				continue
			}
			return nil, fmt.Errorf("registry fetch failed: status=%d url=%s", resp.StatusCode, rawURL)
		}
		return body, nil
	}

	if lastErr == nil {
		lastErr = errors.New("registry request failed")
	}
	return nil, lastErr
}

func (c *Client) backoff(attempt int) {
	if attempt >= c.maxAttempts {
		return
	}
	c.sleep(time.Duration(250*(1<<(attempt-1))+rand.Intn(100)) * time.Millisecond)
}

func isRetryableStatus(status int) bool {
	switch status {
	case 429, 500, 502, 503, 504:
		return true
	default:
		return false
	}
}
