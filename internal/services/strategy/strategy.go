package strategy

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/embedpay/checkout-client/internal/domain"
	"github.com/embedpay/checkout-client/internal/services/ports"
	pkgerrors "github.com/embedpay/checkout-client/pkg/errors"
	"github.com/embedpay/checkout-client/pkg/observability"
)

// PaymentStrategy is the uniform contract every payment method implements
type PaymentStrategy interface {
	Initialize(ctx context.Context, opts InitializeOptions) error
	Execute(ctx context.Context, order *domain.OrderRequest) error
	Finalize(ctx context.Context) error
	Deinitialize(ctx context.Context) error
}

// InitializeOptions configures a strategy for one payment method
type InitializeOptions struct {
	MethodID string

	// Card holds the card details source used when tokenizing. Supplied by
	// the embedder; ignored on the vaulted-instrument path.
	Card func() domain.CardInput
}

// capabilities parameterizes the shared orchestration routine. Variants
// differ only in which hooks are set, not in control flow.
type capabilities struct {
	// requireApplicationID makes Initialize fail with a payment-method
	// error when the resolved method has no vendor application id.
	requireApplicationID bool

	// tokenize exchanges card details for a nonce. Skipped on the
	// vaulted-instrument path.
	tokenize func(ctx context.Context, card domain.CardInput) (*domain.TokenizeResult, error)

	// verify performs buyer verification on the nonce. Nil when the
	// method does not support it; gated by the 3DS feature flag.
	verify func(ctx context.Context, nonce string, order *domain.OrderRequest) (*domain.VerifyResult, error)

	// collectRisk produces a risk session token to merge into the
	// submission. Nil when the method has no risk-scoring vendor.
	collectRisk func(ctx context.Context) (string, error)

	// release tears down vendor resources on Deinitialize.
	release func(ctx context.Context) error
}

// Strategy is the shared orchestration over a PaymentIntegration,
// parameterized by a capability set
type Strategy struct {
	integration ports.PaymentIntegration
	logger      ports.Logger
	caps        capabilities

	method *domain.PaymentMethod
	card   func() domain.CardInput
}

func newStrategy(integration ports.PaymentIntegration, logger ports.Logger, caps capabilities) *Strategy {
	return &Strategy{
		integration: integration,
		logger:      logger,
		caps:        caps,
	}
}

// Initialize validates required configuration and resolves payment-method
// metadata from integration state
func (s *Strategy) Initialize(ctx context.Context, opts InitializeOptions) error {
	if opts.MethodID == "" {
		return pkgerrors.NewArgumentError("methodId", "a payment method id is required")
	}

	method, err := s.integration.PaymentMethod(opts.MethodID)
	if err != nil {
		return err
	}

	if s.caps.requireApplicationID && method.ApplicationID == "" {
		return pkgerrors.NewPaymentMethodError(opts.MethodID, "missing vendor application id")
	}

	s.method = method
	s.card = opts.Card

	s.logger.Info("payment strategy initialized",
		ports.String("method_id", method.ID),
		ports.String("gateway", method.Gateway))

	return nil
}

// Execute validates the order request, runs the vendor hooks, and submits
// the formatted payment payload to the order service
func (s *Strategy) Execute(ctx context.Context, order *domain.OrderRequest) error {
	if order == nil || order.Payment == nil {
		return pkgerrors.NewArgumentError("payment", "order request is missing payment data")
	}
	if s.method == nil {
		return pkgerrors.NewArgumentError("methodId", "strategy has not been initialized")
	}

	start := time.Now()
	defer func() {
		observability.RecordPaymentExecute(s.method.ID, time.Since(start))
	}()

	data, path, err := s.buildPaymentData(ctx, order)
	if err != nil {
		observability.RecordPaymentSubmission(s.method.ID, path, "failed")
		return err
	}

	if s.caps.collectRisk != nil {
		token, err := s.caps.collectRisk(ctx)
		if err != nil {
			observability.RecordPaymentSubmission(s.method.ID, path, "failed")
			return err
		}
		data.RiskToken = token
	}

	submission := &domain.PaymentSubmission{
		MethodID:     order.Payment.MethodID,
		GatewayID:    order.Payment.GatewayID,
		SubmissionID: uuid.New().String(),
		Amount:       order.Order.Amount,
		Currency:     order.Order.Currency,
		Data:         *data,
	}

	if err := s.integration.SubmitPayment(ctx, submission); err != nil {
		observability.RecordPaymentSubmission(s.method.ID, path, "failed")
		s.logger.Error("payment submission failed",
			ports.String("method_id", s.method.ID),
			ports.Err(err))
		return err
	}

	observability.RecordPaymentSubmission(s.method.ID, path, "submitted")
	s.logger.Info("payment submitted",
		ports.String("method_id", s.method.ID),
		ports.String("submission_id", submission.SubmissionID),
		ports.String("path", path))

	return nil
}

// buildPaymentData runs the tokenize/verify hooks or the vaulted lookup
// and returns the vendor-specific payload plus the path taken
func (s *Strategy) buildPaymentData(ctx context.Context, order *domain.OrderRequest) (*domain.PaymentData, string, error) {
	payment := order.Payment

	if payment.IsVaulted() {
		cardID, err := s.integration.StoredCardID(ctx, payment.MethodID, payment.InstrumentID)
		if err != nil {
			return nil, "vaulted", err
		}
		if cardID == "" {
			return nil, "vaulted", pkgerrors.NewArgumentError("instrumentId",
				"no stored card id resolved for instrument")
		}
		return &domain.PaymentData{
			BigpayToken:                  cardID,
			SetAsDefaultStoredInstrument: payment.ShouldSetAsDefault,
		}, "vaulted", nil
	}

	if s.caps.tokenize == nil {
		return nil, "tokenized", pkgerrors.NewPaymentMethodError(payment.MethodID,
			"method cannot tokenize card details")
	}
	if s.card == nil {
		return nil, "tokenized", pkgerrors.NewArgumentError("card", "no card details source provided")
	}

	result, err := s.caps.tokenize(ctx, s.card())
	if err != nil {
		return nil, "tokenized", err
	}

	data := &domain.PaymentData{
		CreditCardToken:              result.Nonce,
		VaultPaymentInstrument:       payment.ShouldSaveInstrument,
		SetAsDefaultStoredInstrument: payment.ShouldSetAsDefault,
	}

	if s.caps.verify != nil && s.method.Config.Is3DSExperimentEnabled {
		verified, err := s.caps.verify(ctx, result.Nonce, order)
		if err != nil {
			return nil, "tokenized", err
		}
		data.ThreeDSecure = &domain.ThreeDSecure{Token: verified.Token}
	}

	return data, "tokenized", nil
}

// Finalize always fails: order finalization is not required for these
// payment methods
func (s *Strategy) Finalize(ctx context.Context) error {
	return pkgerrors.ErrOrderFinalizationNotRequired
}

// Deinitialize releases vendor resources
func (s *Strategy) Deinitialize(ctx context.Context) error {
	s.method = nil
	s.card = nil
	if s.caps.release != nil {
		return s.caps.release(ctx)
	}
	return nil
}
