package amadeus

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"flightbook-service/internal/domain/entity"
	"flightbook-service/pkg/logger"
	"flightbook-service/pkg/metrics"
)

const maxAttempts = 3

// TokenSource supplies bearer tokens for provider calls.
type TokenSource interface {
	Token(ctx context.Context, forceRefresh bool) (string, bool)
}

// Client wraps every outbound call to the provider with token attachment,
// timeout, rate limiting and a bounded retry-with-refresh loop. It knows how
// to authenticate and retry, not the domain meaning of any endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	limiter    *rate.Limiter
	metrics    *metrics.Metrics
	logger     logger.Logger
}

// NewClient creates a provider client. ratePerSec bounds outbound calls;
// zero disables the limiter.
func NewClient(baseURL string, tokens TokenSource, timeout time.Duration, ratePerSec float64, m *metrics.Metrics, log logger.Logger) *Client {
	var limiter *rate.Limiter
	if ratePerSec > 0 {
		limiter = rate.NewLimiter(rate.Limit(ratePerSec), int(ratePerSec)*2)
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		tokens:     tokens,
		limiter:    limiter,
		metrics:    m,
		logger:     log,
	}
}

// Do performs an authenticated request against the provider and returns the
// parsed JSON body.
//
// Attempt 1 uses the best available token: the session-cached one when
// present, otherwise whatever the token source yields. Each retry clears the
// session token and forces a credential refresh; the refreshed token is
// written back into the session for reuse by later calls. Only HTTP 401 is
// retried. Any other error status is returned as a *ProviderError carrying
// the response body; transport failures become *NetworkError and are never
// retried here.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body interface{}, sess *entity.Session) (map[string]interface{}, error) {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
	}

	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		token, ok := c.attemptToken(ctx, attempt, sess)
		if !ok {
			return nil, ErrCredentialUnavailable
		}

		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return nil, &NetworkError{Reason: err.Error()}
			}
		}

		result, retry, err := c.doOnce(ctx, method, reqURL, path, payload, token)
		if err == nil {
			return result, nil
		}
		if !retry {
			return nil, err
		}
		lastErr = err
		c.logger.Warn("Provider rejected token, refreshing", "path", path, "attempt", attempt+1)
	}

	return nil, lastErr
}

// attemptToken resolves the token for one attempt. Retries discard the
// session token and force a refresh; the fresh token is persisted into the
// session.
func (c *Client) attemptToken(ctx context.Context, attempt int, sess *entity.Session) (string, bool) {
	if attempt == 0 {
		if sess != nil && sess.Token != "" {
			return sess.Token, true
		}
		return c.tokens.Token(ctx, false)
	}

	if sess != nil {
		sess.Token = ""
	}
	if c.metrics != nil {
		c.metrics.TokenRefreshes.Inc()
	}
	token, ok := c.tokens.Token(ctx, true)
	if ok && sess != nil {
		sess.Token = token
	}
	return token, ok
}

func (c *Client) doOnce(ctx context.Context, method, reqURL, path string, payload []byte, token string) (map[string]interface{}, bool, error) {
	var bodyReader io.Reader
	if payload != nil {
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, bodyReader)
	if err != nil {
		return nil, false, &NetworkError{Reason: err.Error()}
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if c.metrics != nil {
		c.metrics.ProviderLatency.Observe(time.Since(start).Seconds())
	}
	if err != nil {
		c.observe(path, "network_error")
		return nil, false, &NetworkError{Reason: err.Error()}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.observe(path, "network_error")
		return nil, false, &NetworkError{Reason: err.Error()}
	}

	c.observe(path, fmt.Sprint(resp.StatusCode))

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, true, &ProviderError{StatusCode: resp.StatusCode, Body: string(raw)}
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return nil, false, &ProviderError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	var result map[string]interface{}
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, false, &NetworkError{Reason: "malformed provider response: " + err.Error()}
	}
	return result, false, nil
}

func (c *Client) observe(path, status string) {
	if c.metrics != nil {
		c.metrics.ProviderRequests.WithLabelValues(path, status).Inc()
	}
}
