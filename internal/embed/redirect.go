package embed

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"regexp"

	"github.com/embedpay/checkout-client/internal/adapters/ports"
	pkgerrors "github.com/embedpay/checkout-client/pkg/errors"
)

// loginTokenPattern matches checkout URLs that embed a one-time login
// token in their path
var loginTokenPattern = regexp.MustCompile(`/login_token/[^/?#]+`)

type redirectResponse struct {
	RedirectURL string `json:"redirectUrl"`
}

// resolveCheckoutURL rewrites a login-token checkout URL into the redirect
// URL the backend issues for it. URLs without a login token pass through
// unchanged.
func resolveCheckoutURL(ctx context.Context, client ports.HTTPClient, url string) (string, error) {
	if !loginTokenPattern.MatchString(url) {
		return url, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, nil)
	if err != nil {
		return "", &pkgerrors.InvalidLoginTokenError{Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return "", &pkgerrors.InvalidLoginTokenError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", &pkgerrors.InvalidLoginTokenError{Status: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &pkgerrors.InvalidLoginTokenError{Err: err}
	}

	var redirect redirectResponse
	if err := json.Unmarshal(body, &redirect); err != nil {
		return "", &pkgerrors.InvalidLoginTokenError{Err: err}
	}
	if redirect.RedirectURL == "" {
		return "", &pkgerrors.InvalidLoginTokenError{Status: resp.StatusCode}
	}

	return redirect.RedirectURL, nil
}
