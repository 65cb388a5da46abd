package embed

import (
	"time"
)

// InlineStyles are CSS-like overrides applied to one element class inside
// the checkout frame
type InlineStyles struct {
	Color           string `json:"color,omitempty"`
	BackgroundColor string `json:"backgroundColor,omitempty"`
	BorderColor     string `json:"borderColor,omitempty"`
	FontFamily      string `json:"fontFamily,omitempty"`
	FontSize        string `json:"fontSize,omitempty"`
}

// StyleOptions is the style configuration posted to the frame after it
// loads
type StyleOptions struct {
	Body    *InlineStyles `json:"body,omitempty"`
	Button  *InlineStyles `json:"button,omitempty"`
	Input   *InlineStyles `json:"input,omitempty"`
	Heading *InlineStyles `json:"heading,omitempty"`
	Link    *InlineStyles `json:"link,omitempty"`
}

// Options configures one embedded checkout attach. Immutable for the life
// of the attach.
type Options struct {
	// URL of the embedded checkout page
	URL string

	// ContainerID names the host-page element the frame is created under
	ContainerID string

	// Styles, when set, are posted to the frame once it reports loaded
	Styles *StyleOptions

	// Timeout bounds the wait for the frame-loaded signal (default 60s)
	Timeout time.Duration

	// Lifecycle callbacks, all optional
	OnComplete   func(msg Message)
	OnError      func(msg Message)
	OnLoad       func(msg Message)
	OnFrameError func(msg Message)
	OnFrameLoad  func(msg Message)
	OnSignOut    func(msg Message)
}

const defaultFrameTimeout = 60 * time.Second

func (o *Options) frameTimeout() time.Duration {
	if o.Timeout > 0 {
		return o.Timeout
	}
	return defaultFrameTimeout
}
