package orderapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/embedpay/checkout-client/internal/adapters/ports"
	"github.com/embedpay/checkout-client/internal/domain"
	pkgerrors "github.com/embedpay/checkout-client/pkg/errors"
	pkghttp "github.com/embedpay/checkout-client/pkg/http"
)

// Config contains configuration for the order service client
type Config struct {
	// Order service base URL (e.g. https://orders.example.com/api)
	BaseURL string
}

// Client implements the OrderClient port against the backend order service
type Client struct {
	config     *Config
	httpClient ports.HTTPClient
	logger     *zap.Logger
}

// NewClient creates a new order service client with dependency injection
func NewClient(config *Config, httpClient ports.HTTPClient, logger *zap.Logger) *Client {
	return &Client{
		config:     config,
		httpClient: httpClient,
		logger:     logger,
	}
}

// NewClientWithDefaults creates a new order service client with a pooled HTTP client
func NewClientWithDefaults(config *Config, logger *zap.Logger) *Client {
	return &Client{
		config:     config,
		httpClient: pkghttp.NewHTTPClient(pkghttp.DefaultClientConfig(), 30*time.Second),
		logger:     logger,
	}
}

// SubmitOrderPayment implements ports.OrderClient
func (c *Client) SubmitOrderPayment(ctx context.Context, checkoutID string, submission *domain.PaymentSubmission) error {
	payloadBytes, err := json.Marshal(submission)
	if err != nil {
		return fmt.Errorf("failed to marshal submission: %w", err)
	}

	url := fmt.Sprintf("%s/checkouts/%s/payments", c.config.BaseURL, checkoutID)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payloadBytes))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	c.logger.Info("submitting order payment",
		zap.String("checkout_id", checkoutID),
		zap.String("method_id", submission.MethodID),
	)

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return &pkgerrors.RequestError{Err: err}
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if httpResp.StatusCode >= 400 {
		return pkgerrors.NewRequestError(httpResp.StatusCode, string(body))
	}

	return nil
}
