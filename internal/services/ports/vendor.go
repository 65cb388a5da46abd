package ports

import (
	"context"

	"github.com/embedpay/checkout-client/internal/domain"
)

// CardTokenizer exchanges raw card details for a single-use nonce
type CardTokenizer interface {
	Tokenize(ctx context.Context, card domain.CardInput) (*domain.TokenizeResult, error)
}

// VerifyRequest carries the inputs for buyer verification
type VerifyRequest struct {
	Nonce    string
	Amount   string
	Currency string
	Intent   string // "CHARGE" for immediate capture
}

// BuyerVerifier performs additional buyer authentication (3-D-Secure)
// on a tokenized card and returns a verification token
type BuyerVerifier interface {
	VerifyBuyer(ctx context.Context, req VerifyRequest) (*domain.VerifyResult, error)
}

// RiskCollector produces a risk-scoring session token to attach to a
// payment submission
type RiskCollector interface {
	SessionToken(ctx context.Context) (string, error)
}
