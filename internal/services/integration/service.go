package integration

import (
	"context"

	"github.com/embedpay/checkout-client/internal/domain"
	"github.com/embedpay/checkout-client/internal/services/ports"
	pkgerrors "github.com/embedpay/checkout-client/pkg/errors"
)

// Service is the default ports.PaymentIntegration: it serves strategies
// from a loaded checkout-state snapshot and submits payments through an
// order service client.
type Service struct {
	state  *domain.CheckoutState
	orders ports.OrderClient
	logger ports.Logger
}

// NewService creates a payment integration over a loaded checkout state
func NewService(state *domain.CheckoutState, orders ports.OrderClient, logger ports.Logger) *Service {
	return &Service{
		state:  state,
		orders: orders,
		logger: logger,
	}
}

// State returns the loaded checkout state
func (s *Service) State() *domain.CheckoutState {
	return s.state
}

// PaymentMethod resolves payment-method metadata from checkout state
func (s *Service) PaymentMethod(id string) (*domain.PaymentMethod, error) {
	method, ok := s.state.Method(id)
	if !ok {
		return nil, pkgerrors.NewPaymentMethodError(id, "method not found in checkout state")
	}
	return method, nil
}

// StoredCardID resolves the vendor card id for a vaulted instrument.
// The instrument must belong to the given payment method.
func (s *Service) StoredCardID(ctx context.Context, methodID, instrumentID string) (string, error) {
	instrument, ok := s.state.Instrument(instrumentID)
	if !ok {
		return "", pkgerrors.NewArgumentError("instrumentId", "instrument not found in checkout state")
	}
	if instrument.MethodID != methodID {
		return "", pkgerrors.NewArgumentError("instrumentId", "instrument does not belong to payment method")
	}
	return instrument.BigpayToken, nil
}

// SubmitPayment submits the formatted payment payload to the order service
func (s *Service) SubmitPayment(ctx context.Context, submission *domain.PaymentSubmission) error {
	if err := s.orders.SubmitOrderPayment(ctx, s.state.CheckoutID, submission); err != nil {
		s.logger.Error("order payment submission failed",
			ports.String("checkout_id", s.state.CheckoutID),
			ports.String("method_id", submission.MethodID),
			ports.Err(err))
		return err
	}

	s.logger.Info("order payment submitted",
		ports.String("checkout_id", s.state.CheckoutID),
		ports.String("method_id", submission.MethodID),
		ports.String("submission_id", submission.SubmissionID))
	return nil
}
