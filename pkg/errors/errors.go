package errors

import (
	"errors"
	"fmt"
)

// ErrOrderFinalizationNotRequired is returned by every strategy's Finalize.
// The payment methods in this SDK complete during Execute; there is no
// separate finalization leg.
var ErrOrderFinalizationNotRequired = errors.New("order finalization is not required for this payment method")

// ErrNavigatingAway signals that the host page is being navigated away as
// part of the cookie-consent flow. The operation that returns it will never
// complete in the current page; callers must not treat it as a failure to
// retry.
var ErrNavigatingAway = errors.New("host page is navigating away")

// ArgumentError represents a missing or invalid required input
type ArgumentError struct {
	Field   string
	Message string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("invalid argument '%s': %s", e.Field, e.Message)
}

// NewArgumentError creates a new argument error
func NewArgumentError(field, message string) *ArgumentError {
	return &ArgumentError{
		Field:   field,
		Message: message,
	}
}

// PaymentMethodError represents missing or invalid vendor configuration on
// a payment method
type PaymentMethodError struct {
	MethodID string
	Message  string
}

func (e *PaymentMethodError) Error() string {
	return fmt.Sprintf("payment method '%s' is invalid: %s", e.MethodID, e.Message)
}

// NewPaymentMethodError creates a new payment method error
func NewPaymentMethodError(methodID, message string) *PaymentMethodError {
	return &PaymentMethodError{
		MethodID: methodID,
		Message:  message,
	}
}

// RequestError represents a failed HTTP call, carrying status and body
type RequestError struct {
	Status int
	Body   string
	Err    error
}

func (e *RequestError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("request failed: %v", e.Err)
	}
	return fmt.Sprintf("request failed with status %d: %s", e.Status, e.Body)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// NewRequestError creates a request error from an HTTP status and body
func NewRequestError(status int, body string) *RequestError {
	return &RequestError{
		Status: status,
		Body:   body,
	}
}

// EmbedFailureReason categorizes why a checkout frame could not be embedded
type EmbedFailureReason string

const (
	ReasonMissingContainer EmbedFailureReason = "missing_container"
	ReasonMissingContent   EmbedFailureReason = "missing_content"
	ReasonLoadTimeout      EmbedFailureReason = "load_timeout"
	ReasonUnknown          EmbedFailureReason = "unknown"
)

// NotEmbeddableError represents a failure to embed the checkout frame
type NotEmbeddableError struct {
	Reason  EmbedFailureReason
	Message string
}

func (e *NotEmbeddableError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("checkout could not be embedded (%s): %s", e.Reason, e.Message)
	}
	return fmt.Sprintf("checkout could not be embedded (%s)", e.Reason)
}

// NewNotEmbeddableError creates a new embedding failure
func NewNotEmbeddableError(reason EmbedFailureReason, message string) *NotEmbeddableError {
	return &NotEmbeddableError{
		Reason:  reason,
		Message: message,
	}
}

// InvalidLoginTokenError represents a failed login-token redirect lookup
type InvalidLoginTokenError struct {
	Status int
	Err    error
}

func (e *InvalidLoginTokenError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("unable to resolve login token redirect: %v", e.Err)
	}
	return fmt.Sprintf("unable to resolve login token redirect: status %d", e.Status)
}

func (e *InvalidLoginTokenError) Unwrap() error {
	return e.Err
}

// IsMissingContent reports whether err is an embedding failure caused by
// the frame content failing to load. The embedded-checkout controller uses
// this to decide whether the one-shot cookie-consent retry applies.
func IsMissingContent(err error) bool {
	var embedErr *NotEmbeddableError
	return errors.As(err, &embedErr) && embedErr.Reason == ReasonMissingContent
}
