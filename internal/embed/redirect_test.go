package embed

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/embedpay/checkout-client/pkg/errors"
)

func TestResolveCheckoutURL_PassThrough(t *testing.T) {
	client := &fakeHTTPClient{}

	url, err := resolveCheckoutURL(context.Background(), client, checkoutURL)

	require.NoError(t, err)
	assert.Equal(t, checkoutURL, url)
	assert.Zero(t, client.callCount(), "plain URLs need no lookup")
}

func TestResolveCheckoutURL_LoginTokenRewritten(t *testing.T) {
	client := &fakeHTTPClient{
		DoFunc: func(req *http.Request) (*http.Response, error) {
			return &http.Response{
				StatusCode: 200,
				Body:       io.NopCloser(bytes.NewBufferString(`{"redirectUrl":"https://checkout.example.com/embedded-checkout/cart-9"}`)),
				Header:     make(http.Header),
			}, nil
		},
	}
	tokenURL := "https://checkout.example.com/login_token/abc123"

	url, err := resolveCheckoutURL(context.Background(), client, tokenURL)

	require.NoError(t, err)
	assert.Equal(t, "https://checkout.example.com/embedded-checkout/cart-9", url)
	require.Equal(t, 1, client.callCount())
	assert.Equal(t, http.MethodPost, client.calls[0].Method)
	assert.Equal(t, tokenURL, client.calls[0].URL.String())
}

func TestResolveCheckoutURL_ErrorStatus(t *testing.T) {
	client := &fakeHTTPClient{
		DoFunc: func(req *http.Request) (*http.Response, error) {
			return &http.Response{
				StatusCode: 401,
				Body:       io.NopCloser(bytes.NewBufferString(`{}`)),
				Header:     make(http.Header),
			}, nil
		},
	}

	_, err := resolveCheckoutURL(context.Background(), client, "https://checkout.example.com/login_token/expired")

	var tokenErr *pkgerrors.InvalidLoginTokenError
	require.ErrorAs(t, err, &tokenErr)
	assert.Equal(t, 401, tokenErr.Status)
}

func TestResolveCheckoutURL_MissingRedirectField(t *testing.T) {
	client := &fakeHTTPClient{
		DoFunc: func(req *http.Request) (*http.Response, error) {
			return &http.Response{
				StatusCode: 200,
				Body:       io.NopCloser(bytes.NewBufferString(`{}`)),
				Header:     make(http.Header),
			}, nil
		},
	}

	_, err := resolveCheckoutURL(context.Background(), client, "https://checkout.example.com/login_token/abc")

	var tokenErr *pkgerrors.InvalidLoginTokenError
	require.ErrorAs(t, err, &tokenErr)
}

func TestResolveCheckoutURL_TransportError(t *testing.T) {
	client := &fakeHTTPClient{
		DoFunc: func(req *http.Request) (*http.Response, error) {
			return nil, errors.New("connection refused")
		},
	}

	_, err := resolveCheckoutURL(context.Background(), client, "https://checkout.example.com/login_token/abc")

	var tokenErr *pkgerrors.InvalidLoginTokenError
	require.ErrorAs(t, err, &tokenErr)
}
