package integration

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/embedpay/checkout-client/internal/domain"
	"github.com/embedpay/checkout-client/internal/services/ports"
	pkgerrors "github.com/embedpay/checkout-client/pkg/errors"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...ports.Field)  {}
func (nopLogger) Error(string, ...ports.Field) {}
func (nopLogger) Warn(string, ...ports.Field)  {}
func (nopLogger) Debug(string, ...ports.Field) {}

type fakeOrderClient struct {
	err         error
	checkoutIDs []string
	submissions []*domain.PaymentSubmission
}

func (f *fakeOrderClient) SubmitOrderPayment(ctx context.Context, checkoutID string, submission *domain.PaymentSubmission) error {
	if f.err != nil {
		return f.err
	}
	f.checkoutIDs = append(f.checkoutIDs, checkoutID)
	f.submissions = append(f.submissions, submission)
	return nil
}

func testState() *domain.CheckoutState {
	return &domain.CheckoutState{
		CheckoutID: "checkout-9",
		Order: domain.OrderTotals{
			Amount:   decimal.RequireFromString("10.00"),
			Currency: "USD",
		},
		Methods: []domain.PaymentMethod{
			{ID: "cardpay", Gateway: "cardvault", ApplicationID: "app-1"},
		},
		Instruments: []domain.Instrument{
			{ID: "instrument-1", MethodID: "cardpay", BigpayToken: "bigpay-7", Last4: "1111"},
		},
	}
}

func TestPaymentMethod(t *testing.T) {
	svc := NewService(testState(), &fakeOrderClient{}, nopLogger{})

	method, err := svc.PaymentMethod("cardpay")
	require.NoError(t, err)
	assert.Equal(t, "cardvault", method.Gateway)

	_, err = svc.PaymentMethod("unknown")
	var methodErr *pkgerrors.PaymentMethodError
	require.ErrorAs(t, err, &methodErr)
}

func TestStoredCardID(t *testing.T) {
	svc := NewService(testState(), &fakeOrderClient{}, nopLogger{})

	cardID, err := svc.StoredCardID(context.Background(), "cardpay", "instrument-1")
	require.NoError(t, err)
	assert.Equal(t, "bigpay-7", cardID)
}

func TestStoredCardID_UnknownInstrument(t *testing.T) {
	svc := NewService(testState(), &fakeOrderClient{}, nopLogger{})

	_, err := svc.StoredCardID(context.Background(), "cardpay", "missing")
	var argErr *pkgerrors.ArgumentError
	require.ErrorAs(t, err, &argErr)
}

func TestStoredCardID_WrongMethod(t *testing.T) {
	svc := NewService(testState(), &fakeOrderClient{}, nopLogger{})

	_, err := svc.StoredCardID(context.Background(), "otherpay", "instrument-1")
	var argErr *pkgerrors.ArgumentError
	require.ErrorAs(t, err, &argErr)
}

func TestSubmitPayment(t *testing.T) {
	orders := &fakeOrderClient{}
	svc := NewService(testState(), orders, nopLogger{})

	submission := &domain.PaymentSubmission{
		MethodID:     "cardpay",
		SubmissionID: "sub-1",
		Amount:       decimal.RequireFromString("10.00"),
		Currency:     "USD",
		Data:         domain.PaymentData{CreditCardToken: "nonce-1"},
	}
	require.NoError(t, svc.SubmitPayment(context.Background(), submission))

	require.Len(t, orders.submissions, 1)
	assert.Equal(t, []string{"checkout-9"}, orders.checkoutIDs)
}

func TestSubmitPayment_ErrorPropagates(t *testing.T) {
	orders := &fakeOrderClient{err: pkgerrors.NewRequestError(500, "boom")}
	svc := NewService(testState(), orders, nopLogger{})

	err := svc.SubmitPayment(context.Background(), &domain.PaymentSubmission{MethodID: "cardpay"})

	var reqErr *pkgerrors.RequestError
	require.ErrorAs(t, err, &reqErr)
}
