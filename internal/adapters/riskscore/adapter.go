package riskscore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/embedpay/checkout-client/internal/adapters/ports"
	pkgerrors "github.com/embedpay/checkout-client/pkg/errors"
	pkghttp "github.com/embedpay/checkout-client/pkg/http"
)

// Config contains configuration for the risk-scoring vendor adapter
type Config struct {
	// Vendor API base URL
	BaseURL string

	// Public client application id issued by the vendor
	ApplicationID string
}

// DefaultConfig returns default configuration for the given environment
func DefaultConfig(environment string) *Config {
	baseURL := "https://api.riskscore.example.com/v1"
	if environment == "sandbox" {
		baseURL = "https://sandbox.riskscore.example.com/v1"
	}

	return &Config{
		BaseURL: baseURL,
	}
}

// Adapter implements the RiskCollector port against the risk-scoring
// vendor's HTTP API. The session token is fetched once and cached for the
// adapter's lifetime, matching the vendor's one-session-per-checkout model.
type Adapter struct {
	config     *Config
	httpClient ports.HTTPClient
	logger     *zap.Logger

	mu     sync.Mutex
	cached string
}

// NewAdapter creates a new risk-scoring adapter with dependency injection
func NewAdapter(config *Config, httpClient ports.HTTPClient, logger *zap.Logger) *Adapter {
	return &Adapter{
		config:     config,
		httpClient: httpClient,
		logger:     logger,
	}
}

// NewAdapterWithDefaults creates a new risk-scoring adapter with a pooled HTTP
// client tuned for repeated calls to a single vendor host
func NewAdapterWithDefaults(config *Config, logger *zap.Logger) *Adapter {
	return &Adapter{
		config:     config,
		httpClient: pkghttp.NewHTTPClient(pkghttp.GatewayClientConfig(), 30*time.Second),
		logger:     logger,
	}
}

type sessionRequest struct {
	ApplicationID string `json:"application_id"`
}

type sessionResponse struct {
	SessionToken string `json:"session_token"`
}

// SessionToken implements svcports.RiskCollector
func (a *Adapter) SessionToken(ctx context.Context) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.cached != "" {
		return a.cached, nil
	}

	payloadBytes, err := json.Marshal(sessionRequest{ApplicationID: a.config.ApplicationID})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := a.config.BaseURL + "/sessions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payloadBytes))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	a.logger.Info("requesting risk session token")

	httpResp, err := a.httpClient.Do(httpReq)
	if err != nil {
		return "", &pkgerrors.RequestError{Err: err}
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	if httpResp.StatusCode >= 400 {
		return "", pkgerrors.NewRequestError(httpResp.StatusCode, string(body))
	}

	var resp sessionResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if resp.SessionToken == "" {
		return "", pkgerrors.NewRequestError(http.StatusBadGateway, "vendor returned no session token")
	}

	a.cached = resp.SessionToken
	return a.cached, nil
}
