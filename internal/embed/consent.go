package embed

import (
	"fmt"
	"net/url"

	"github.com/embedpay/checkout-client/internal/adapters/ports"
	pkgerrors "github.com/embedpay/checkout-client/pkg/errors"
	"github.com/embedpay/checkout-client/pkg/observability"
)

// Storage keys for the cookie-consent flags, scoped by the controller's
// namespace. Both flags are JSON-encoded booleans.
const (
	keyCookieAllowed  = "isCookieAllowed"
	keyCanRetryCookie = "canRetryAllowCookie"
)

// consentGate runs the one-time cookie-consent state machine over two
// persisted flags. The overlapping-flag behavior is kept exactly as
// observed: the retry flag is armed on every pass, navigation happens only
// while the allowed flag is unset.
type consentGate struct {
	storage   ports.Storage
	navigator ports.Navigator
}

// ensure checks the consent flags before an attach. When consent has not
// been granted yet it arms the retry flag, marks consent granted, and
// navigates the whole host page to the allow-cookie endpoint; the caller
// must stop with ErrNavigatingAway since the page is going away. When
// consent was already granted it only arms the retry flag.
func (g *consentGate) ensure(checkoutURL string) error {
	var allowed bool
	if _, err := g.storage.Get(keyCookieAllowed, &allowed); err != nil {
		return err
	}

	if err := g.storage.Set(keyCanRetryCookie, true); err != nil {
		return err
	}

	if allowed {
		return nil
	}

	if err := g.storage.Set(keyCookieAllowed, true); err != nil {
		return err
	}

	observability.RecordConsentRedirect()
	if err := g.navigator.Navigate(allowCookieURL(checkoutURL)); err != nil {
		return err
	}

	return pkgerrors.ErrNavigatingAway
}

// consumeRetry reports whether the retry flag is armed and clears it, so
// that at most one missing-content retry is taken per armed flag
func (g *consentGate) consumeRetry() bool {
	var armed bool
	if _, err := g.storage.Get(keyCanRetryCookie, &armed); err != nil {
		return false
	}
	if armed {
		g.storage.Remove(keyCanRetryCookie)
	}
	return armed
}

// allowCookieURL builds the allow-cookie endpoint URL with the checkout
// URL as the return destination
func allowCookieURL(checkoutURL string) string {
	parsed, err := url.Parse(checkoutURL)
	if err != nil {
		return checkoutURL
	}
	base := fmt.Sprintf("%s://%s/embedded-checkout/allow-cookie", parsed.Scheme, parsed.Host)
	return base + "?returnUrl=" + url.QueryEscape(checkoutURL)
}
