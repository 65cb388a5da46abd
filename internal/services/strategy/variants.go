package strategy

import (
	"context"

	"github.com/embedpay/checkout-client/internal/domain"
	"github.com/embedpay/checkout-client/internal/services/ports"
)

// NewCardStrategy builds the plain card strategy: tokenize, optionally
// vault, submit. No buyer verification, no risk scoring.
func NewCardStrategy(integration ports.PaymentIntegration, tokenizer ports.CardTokenizer, logger ports.Logger) *Strategy {
	return newStrategy(integration, logger, capabilities{
		requireApplicationID: true,
		tokenize:             tokenizer.Tokenize,
	})
}

// NewVerifiedCardStrategy builds the card strategy with feature-flag gated
// 3-D-Secure buyer verification layered on top of tokenization
func NewVerifiedCardStrategy(integration ports.PaymentIntegration, tokenizer ports.CardTokenizer, verifier ports.BuyerVerifier, logger ports.Logger) *Strategy {
	return newStrategy(integration, logger, capabilities{
		requireApplicationID: true,
		tokenize:             tokenizer.Tokenize,
		verify: func(ctx context.Context, nonce string, order *domain.OrderRequest) (*domain.VerifyResult, error) {
			return verifier.VerifyBuyer(ctx, ports.VerifyRequest{
				Nonce:    nonce,
				Amount:   order.Order.Amount.StringFixed(2),
				Currency: order.Order.Currency,
				Intent:   "CHARGE",
			})
		},
	})
}

// NewRiskScoredStrategy builds the card strategy that merges a
// risk-scoring session token into the submission
func NewRiskScoredStrategy(integration ports.PaymentIntegration, tokenizer ports.CardTokenizer, risk ports.RiskCollector, logger ports.Logger) *Strategy {
	return newStrategy(integration, logger, capabilities{
		tokenize:    tokenizer.Tokenize,
		collectRisk: risk.SessionToken,
	})
}
