// checkout-demo wires the full SDK dependency graph against a simulated
// host environment: it attaches an embedded checkout, drives its lifecycle
// events, and runs one card payment through the strategy layer with stub
// vendors.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/embedpay/checkout-client/internal/adapters/memstore"
	"github.com/embedpay/checkout-client/internal/adapters/ports"
	"github.com/embedpay/checkout-client/internal/config"
	"github.com/embedpay/checkout-client/internal/domain"
	"github.com/embedpay/checkout-client/internal/embed"
	"github.com/embedpay/checkout-client/internal/services/integration"
	"github.com/embedpay/checkout-client/internal/services/strategy"
	"github.com/embedpay/checkout-client/pkg/logging"
)

func main() {
	if os.Getenv("CHECKOUT_ORIGIN") == "" {
		os.Setenv("CHECKOUT_ORIGIN", "https://checkout.example.com")
	}

	cfg, err := config.LoadFromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := config.NewLogger(cfg.Logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("demo failed", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	checkoutURL := cfg.Checkout.Origin + "/embedded-checkout/demo-cart"
	host := newDemoHost(cfg.Checkout.Origin, logger)
	storage := memstore.Namespaced(memstore.New(), cfg.Checkout.StorageNamespace)

	controller, err := embed.NewController(
		embed.Options{
			URL:         checkoutURL,
			ContainerID: "checkout-container",
			Timeout:     cfg.Checkout.FrameTimeout,
			Styles: &embed.StyleOptions{
				Button: &embed.InlineStyles{BackgroundColor: "#224466"},
			},
			OnComplete: func(embed.Message) {
				logger.Info("checkout completed")
			},
			OnSignOut: func(embed.Message) {
				logger.Info("shopper signed out")
			},
		},
		host,
		host, // the demo host also plays navigator
		storage,
		noopIndicator{},
		&stubHTTPClient{},
		logger,
	)
	if err != nil {
		return err
	}

	// First attach hits the cookie-consent redirect
	if _, err := controller.Attach(ctx); err != nil {
		logger.Info("attach ended with navigation", zap.Error(err))
	}

	// Second attach proceeds in-page now that consent is recorded
	if _, err := controller.Attach(ctx); err != nil {
		return err
	}
	defer controller.Detach()

	// Run one card payment through the strategy layer
	state := &domain.CheckoutState{
		CheckoutID: "demo-cart",
		Order: domain.OrderTotals{
			Amount:   decimal.RequireFromString("42.00"),
			Currency: "USD",
		},
		Methods: []domain.PaymentMethod{
			{ID: "cardpay", Gateway: "cardvault", ApplicationID: "demo-app"},
		},
	}

	svcLogger := logging.NewZapLogger(logger)
	paymentSvc := integration.NewService(state, stubOrderClient{logger: logger}, svcLogger)
	card := strategy.NewCardStrategy(paymentSvc, stubTokenizer{}, svcLogger)

	if err := card.Initialize(ctx, strategy.InitializeOptions{
		MethodID: "cardpay",
		Card: func() domain.CardInput {
			return domain.CardInput{Number: "4111111111111111", ExpMonth: 12, ExpYear: 2030, CVV: "123"}
		},
	}); err != nil {
		return err
	}

	if err := card.Execute(ctx, &domain.OrderRequest{
		Payment: &domain.PaymentSelection{MethodID: "cardpay"},
		Order:   state.Order,
	}); err != nil {
		return err
	}

	return card.Deinitialize(ctx)
}

// demoHost simulates the host environment: created frames immediately
// report loaded, and navigations just log
type demoHost struct {
	origin string
	logger *zap.Logger
	msgs   chan ports.RawMessage
}

func newDemoHost(origin string, logger *zap.Logger) *demoHost {
	return &demoHost{
		origin: origin,
		logger: logger,
		msgs:   make(chan ports.RawMessage, 16),
	}
}

func (h *demoHost) CreateFrame(containerID, url string) (ports.Frame, error) {
	h.logger.Info("frame created", zap.String("container_id", containerID), zap.String("url", url))
	go func() {
		data, _ := json.Marshal(embed.Message{Type: embed.EventFrameLoaded})
		h.msgs <- ports.RawMessage{Origin: h.origin, Data: data}
	}()
	return &demoFrame{logger: h.logger}, nil
}

func (h *demoHost) Messages() <-chan ports.RawMessage {
	return h.msgs
}

func (h *demoHost) Navigate(url string) error {
	h.logger.Info("host page navigating", zap.String("url", url))
	return nil
}

type demoFrame struct {
	logger *zap.Logger
}

func (f *demoFrame) SetHidden(hidden bool) {}

func (f *demoFrame) PostMessage(data []byte, targetOrigin string) error {
	f.logger.Info("message posted to frame",
		zap.String("target_origin", targetOrigin),
		zap.ByteString("data", data))
	return nil
}

func (f *demoFrame) Remove() {}

func (f *demoFrame) EnableAutoResize() ports.Resizer {
	return noopResizer{}
}

type noopResizer struct{}

func (noopResizer) Close() {}

type noopIndicator struct{}

func (noopIndicator) Show(string) {}
func (noopIndicator) Hide(string) {}

// stubHTTPClient is never reached in the demo (the URL has no login token)
type stubHTTPClient struct{}

func (stubHTTPClient) Do(req *http.Request) (*http.Response, error) {
	return nil, fmt.Errorf("no outbound requests expected in demo")
}

// stubTokenizer returns a fixed nonce instead of calling the card vault
type stubTokenizer struct{}

func (stubTokenizer) Tokenize(ctx context.Context, card domain.CardInput) (*domain.TokenizeResult, error) {
	return &domain.TokenizeResult{
		Nonce:     "demo-nonce",
		CardBrand: "VISA",
		Last4:     card.Number[len(card.Number)-4:],
		ExpMonth:  card.ExpMonth,
		ExpYear:   card.ExpYear,
	}, nil
}

// stubOrderClient logs the submission instead of posting it
type stubOrderClient struct {
	logger *zap.Logger
}

func (c stubOrderClient) SubmitOrderPayment(ctx context.Context, checkoutID string, submission *domain.PaymentSubmission) error {
	c.logger.Info("payment submitted",
		zap.String("checkout_id", checkoutID),
		zap.String("method_id", submission.MethodID),
		zap.String("submission_id", submission.SubmissionID),
		zap.String("amount", submission.Amount.String()),
		zap.String("currency", submission.Currency))
	return nil
}
