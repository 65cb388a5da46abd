package cardvault

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
	svcports "github.com/embedpay/checkout-client/internal/services/ports"
	pkgerrors "github.com/embedpay/checkout-client/pkg/errors"
	pkghttp "github.com/embedpay/checkout-client/pkg/http"
)

// Config contains configuration for the card vault vendor adapter
type Config struct {
	// Vendor API base URL
	// Sandbox: https://sandbox.cardvault.example.com/v2
	BaseURL string

	// Public client application id issued by the vendor
	ApplicationID string

	// Optional location id for vendors that scope tokens to a location
	LocationID string
}

// DefaultConfig returns default configuration for the given environment
func DefaultConfig(environment string) *Config {
	baseURL := "https://api.cardvault.example.com/v2"
	if environment == "sandbox" {
		baseURL = "https://sandbox.cardvault.example.com/v2"
	}

	return &Config{
		BaseURL: baseURL,
	}
}

// Adapter implements the CardTokenizer and BuyerVerifier ports against
// the card vault vendor's HTTP API
type Adapter struct {
	config     *Config
	httpClient ports.HTTPClient
	logger     *zap.Logger
}

// NewAdapter creates a new card vault adapter with dependency injection
func NewAdapter(config *Config, httpClient ports.HTTPClient, logger *zap.Logger) *Adapter {
	return &Adapter{
		config:     config,
		httpClient: httpClient,
		logger:     logger,
	}
}

// NewAdapterWithDefaults creates a new card vault adapter with a pooled HTTP
// client tuned for repeated calls to a single vendor host
func NewAdapterWithDefaults(config *Config, logger *zap.Logger) *Adapter {
	return &Adapter{
		config:     config,
		httpClient: pkghttp.NewHTTPClient(pkghttp.GatewayClientConfig(), 30*time.Second),
		logger:     logger,
	}
}

// tokenizeRequest is the vendor tokenization request body
type tokenizeRequest struct {
	ApplicationID string `json:"application_id"`
	LocationID    string `json:"location_id,omitempty"`
	CardNumber    string `json:"card_number"`
	ExpMonth      int    `json:"exp_month"`
	ExpYear       int    `json:"exp_year"`
	CVV           string `json:"cvv"`
	HolderName    string `json:"cardholder_name,omitempty"`
	PostalCode    string `json:"postal_code,omitempty"`
}

// tokenizeResponse is the vendor tokenization response body
type tokenizeResponse struct {
	Nonce string `json:"nonce"`
	Card  struct {
		Brand    string `json:"brand"`
		Last4    string `json:"last_4"`
		ExpMonth int    `json:"exp_month"`
		ExpYear  int    `json:"exp_year"`
	} `json:"card"`
	Errors []vendorError `json:"errors,omitempty"`
}

// verifyRequest is the vendor buyer-verification request body
type verifyRequest struct {
	ApplicationID string `json:"application_id"`
	Nonce         string `json:"nonce"`
	Amount        string `json:"amount"`
	Currency      string `json:"currency"`
	Intent        string `json:"intent"`
}

// verifyResponse is the vendor buyer-verification response body
type verifyResponse struct {
	VerificationToken string        `json:"verification_token"`
	Status            string        `json:"status"`
	Errors            []vendorError `json:"errors,omitempty"`
}

type vendorError struct {
	Code   string `json:"code"`
	Detail string `json:"detail"`
}

// Tokenize implements svcports.CardTokenizer
func (a *Adapter) Tokenize(ctx context.Context, card domain.CardInput) (*domain.TokenizeResult, error) {
	if a.config.ApplicationID == "" {
		return nil, pkgerrors.NewPaymentMethodError("cardvault", "missing vendor application id")
	}
	if card.Number == "" {
		return nil, pkgerrors.NewArgumentError("card.number", "card number is required")
	}

	apiReq := tokenizeRequest{
		ApplicationID: a.config.ApplicationID,
		LocationID:    a.config.LocationID,
		CardNumber:    card.Number,
		ExpMonth:      card.ExpMonth,
		ExpYear:       card.ExpYear,
		CVV:           card.CVV,
		HolderName:    card.HolderName,
		PostalCode:    card.PostalCode,
	}

	var resp tokenizeResponse
	if err := a.makeRequest(ctx, http.MethodPost, "/card-nonce", apiReq, &resp); err != nil {
		return nil, err
	}
	if len(resp.Errors) > 0 {
		return nil, pkgerrors.NewRequestError(http.StatusUnprocessableEntity, resp.Errors[0].Detail)
	}
	if resp.Nonce == "" {
		return nil, pkgerrors.NewRequestError(http.StatusBadGateway, "vendor returned no nonce")
	}

	a.logger.Info("card tokenized",
		zap.String("brand", resp.Card.Brand),
		zap.String("last_4", resp.Card.Last4),
	)

	return &domain.TokenizeResult{
		Nonce:     resp.Nonce,
		CardBrand: resp.Card.Brand,
		Last4:     resp.Card.Last4,
		ExpMonth:  resp.Card.ExpMonth,
		ExpYear:   resp.Card.ExpYear,
	}, nil
}

// VerifyBuyer implements svcports.BuyerVerifier
func (a *Adapter) VerifyBuyer(ctx context.Context, req svcports.VerifyRequest) (*domain.VerifyResult, error) {
	if req.Nonce == "" {
		return nil, pkgerrors.NewArgumentError("nonce", "a tokenized card nonce is required")
	}

	apiReq := verifyRequest{
		ApplicationID: a.config.ApplicationID,
		Nonce:         req.Nonce,
		Amount:        req.Amount,
		Currency:      req.Currency,
		Intent:        req.Intent,
	}

	var resp verifyResponse
	if err := a.makeRequest(ctx, http.MethodPost, "/verify-buyer", apiReq, &resp); err != nil {
		return nil, err
	}
	if len(resp.Errors) > 0 {
		return nil, pkgerrors.NewRequestError(http.StatusUnprocessableEntity, resp.Errors[0].Detail)
	}
	if resp.VerificationToken == "" {
		return nil, pkgerrors.NewRequestError(http.StatusBadGateway, "vendor returned no verification token")
	}

	a.logger.Info("buyer verification completed",
		zap.String("status", resp.Status),
	)

	return &domain.VerifyResult{Token: resp.VerificationToken}, nil
}

// makeRequest sends a JSON request to the vendor API and decodes the response
func (a *Adapter) makeRequest(ctx context.Context, method, endpoint string, request interface{}, response interface{}) error {
	payloadBytes, err := json.Marshal(request)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	url := a.config.BaseURL + endpoint
	httpReq, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(payloadBytes))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Application-Id", a.config.ApplicationID)

	// Log request (excluding card data)
	a.logger.Info("making request to card vault vendor",
		zap.String("method", method),
		zap.String("endpoint", endpoint),
	)

	httpResp, err := a.httpClient.Do(httpReq)
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

	if err := json.Unmarshal(body, response); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return nil
}
