package oauth

import (
	"context"
	"net/http"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"flightbook-service/pkg/logger"
)

// expiryMargin is subtracted from the reported token lifetime so a token is
// refreshed before the provider rejects it.
const expiryMargin = 60 * time.Second

// TokenManager obtains and caches the Amadeus bearer token via the OAuth
// client-credentials flow. The cache is process-wide; concurrent refreshes
// are tolerated, last write wins.
type TokenManager struct {
	staticToken string
	config      clientcredentials.Config
	httpClient  *http.Client
	logger      logger.Logger

	mu        sync.Mutex
	token     string
	expiresAt time.Time
}

// NewTokenManager creates a new Amadeus token manager. staticToken, when
// non-empty, is returned as-is and bypasses the exchange entirely.
func NewTokenManager(baseURL, clientID, clientSecret, staticToken string, log logger.Logger) *TokenManager {
	return &TokenManager{
		staticToken: staticToken,
		config: clientcredentials.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			TokenURL:     baseURL + "/v1/security/oauth2/token",
			AuthStyle:    oauth2.AuthStyleInParams,
		},
		httpClient: &http.Client{Timeout: 15 * time.Second},
		logger:     log,
	}
}

// Token returns a usable bearer token, or ("", false) when none can be
// obtained. It never returns an error to the caller; failures are logged.
// forceRefresh skips both the static override and the cache and always
// performs a fresh exchange.
func (m *TokenManager) Token(ctx context.Context, forceRefresh bool) (string, bool) {
	if !forceRefresh {
		if m.staticToken != "" {
			return m.staticToken, true
		}

		m.mu.Lock()
		if m.token != "" && time.Now().Before(m.expiresAt) {
			token := m.token
			m.mu.Unlock()
			return token, true
		}
		m.mu.Unlock()
	}

	return m.exchange(ctx)
}

func (m *TokenManager) exchange(ctx context.Context) (string, bool) {
	if m.config.ClientID == "" || m.config.ClientSecret == "" {
		return "", false
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, m.httpClient)
	tok, err := m.config.Token(ctx)
	if err != nil {
		m.logger.Warn("Token exchange failed", "error", err)
		return "", false
	}
	if tok.AccessToken == "" {
		return "", false
	}

	m.mu.Lock()
	m.token = tok.AccessToken
	m.expiresAt = tok.Expiry.Add(-expiryMargin)
	m.mu.Unlock()

	m.logger.Info("Obtained new provider token", "expiresAt", tok.Expiry)
	return tok.AccessToken, true
}
