package domain

import (
	"github.com/shopspring/decimal"
)

// PaymentMethod holds vendor metadata resolved from checkout state
type PaymentMethod struct {
	ID            string
	Gateway       string
	ClientToken   string
	ApplicationID string
	LocationID    string
	Config        MethodConfig
}

// MethodConfig holds feature flags and display settings for a payment method
type MethodConfig struct {
	Is3DSExperimentEnabled bool
	IsVaultingEnabled      bool
	TestMode               bool
}

// PaymentSelection identifies the payment the shopper chose for an order
type PaymentSelection struct {
	MethodID             string
	GatewayID            string
	InstrumentID         string // Set when paying with a vaulted instrument
	ShouldSaveInstrument bool
	ShouldSetAsDefault   bool
}

// OrderTotals carries the amounts being paid
type OrderTotals struct {
	Amount   decimal.Decimal
	Currency string
}

// OrderRequest is the input to a strategy's Execute
type OrderRequest struct {
	Payment        *PaymentSelection
	Order          OrderTotals
	UseStoreCredit bool
}

// CardInput holds raw card details to be tokenized
// Never persisted; handed straight to the tokenization vendor
type CardInput struct {
	Number     string
	ExpMonth   int
	ExpYear    int
	CVV        string
	HolderName string
	PostalCode string
}

// TokenizeResult is the outcome of tokenizing raw card details
type TokenizeResult struct {
	Nonce     string
	CardBrand string
	Last4     string
	ExpMonth  int
	ExpYear   int
}

// VerifyResult is the outcome of buyer verification (3-D-Secure)
type VerifyResult struct {
	Token string
}

// Instrument is a previously vaulted payment method
type Instrument struct {
	ID          string
	MethodID    string
	BigpayToken string
	Brand       string
	Last4       string
	IsDefault   bool
}

// ThreeDSecure carries the verification token proving additional
// authentication occurred
type ThreeDSecure struct {
	Token string `json:"token"`
}

// PaymentData is the vendor-specific portion of a payment submission.
// Exactly one of CreditCardToken or BigpayToken is set.
type PaymentData struct {
	CreditCardToken              string        `json:"credit_card_token,omitempty"`
	BigpayToken                  string        `json:"bigpay_token,omitempty"`
	VaultPaymentInstrument       bool          `json:"vault_payment_instrument,omitempty"`
	SetAsDefaultStoredInstrument bool          `json:"set_as_default_stored_instrument,omitempty"`
	ThreeDSecure                 *ThreeDSecure `json:"three_d_secure,omitempty"`
	RiskToken                    string        `json:"risk_token,omitempty"`
}

// PaymentSubmission is the generic order-payment submission body
type PaymentSubmission struct {
	MethodID     string          `json:"method_id"`
	GatewayID    string          `json:"gateway_id,omitempty"`
	SubmissionID string          `json:"submission_id"`
	Amount       decimal.Decimal `json:"amount"`
	Currency     string          `json:"currency"`
	Data         PaymentData     `json:"payment_data"`
}

// IsVaulted reports whether the selection pays with a stored instrument
func (p *PaymentSelection) IsVaulted() bool {
	return p.InstrumentID != ""
}
