package ports

import (
	"context"

	"github.com/embedpay/checkout-client/internal/domain"
)

// PaymentIntegration is the shared collaborator every payment strategy
// executes against: it exposes checkout state and submits the final
// payment payload to the order service.
type PaymentIntegration interface {
	// State returns the currently loaded checkout state
	State() *domain.CheckoutState

	// PaymentMethod resolves payment-method metadata from checkout state
	PaymentMethod(id string) (*domain.PaymentMethod, error)

	// StoredCardID resolves the vendor card id for a vaulted instrument,
	// keyed by payment method and instrument id
	StoredCardID(ctx context.Context, methodID, instrumentID string) (string, error)

	// SubmitPayment submits the formatted payment payload to the order service
	SubmitPayment(ctx context.Context, submission *domain.PaymentSubmission) error
}

// OrderClient is the HTTP-facing port the default integration submits
// order payments through
type OrderClient interface {
	SubmitOrderPayment(ctx context.Context, checkoutID string, submission *domain.PaymentSubmission) error
}
