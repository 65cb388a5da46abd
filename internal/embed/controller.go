package embed

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/embedpay/checkout-client/internal/adapters/ports"
	pkgerrors "github.com/embedpay/checkout-client/pkg/errors"
	"github.com/embedpay/checkout-client/pkg/observability"
)

type attachState int

const (
	stateDetached attachState = iota
	stateAttaching
	stateAttached
)

// Controller attaches a remote checkout UI into a host environment and
// relays its lifecycle events to registered listeners. At most one frame
// handle is live per controller.
type Controller struct {
	host      ports.FrameHost
	navigator ports.Navigator
	storage   ports.Storage
	indicator ports.LoadingIndicator
	http      ports.HTTPClient
	logger    *zap.Logger

	opts     Options
	registry *registry
	consent  *consentGate

	mu           sync.Mutex
	state        attachState
	expectOrigin string
	frame        ports.Frame
	resizer      ports.Resizer
	pumpStop     chan struct{}
	pumpDone     chan struct{}
}

// NewController creates an embedded checkout controller. The storage is
// expected to be namespaced by the caller so the consent flags do not
// collide with other embedders.
func NewController(
	opts Options,
	host ports.FrameHost,
	navigator ports.Navigator,
	storage ports.Storage,
	indicator ports.LoadingIndicator,
	httpClient ports.HTTPClient,
	logger *zap.Logger,
) (*Controller, error) {
	if opts.URL == "" {
		return nil, pkgerrors.NewArgumentError("url", "a checkout URL is required")
	}
	if opts.ContainerID == "" {
		return nil, pkgerrors.NewArgumentError("containerId", "a container id is required")
	}
	origin, err := originOf(opts.URL)
	if err != nil {
		return nil, pkgerrors.NewArgumentError("url", "checkout URL is not a valid absolute URL")
	}

	c := &Controller{
		host:         host,
		navigator:    navigator,
		storage:      storage,
		indicator:    indicator,
		http:         httpClient,
		logger:       logger,
		opts:         opts,
		registry:     newRegistry(),
		consent:      &consentGate{storage: storage, navigator: navigator},
		expectOrigin: origin,
	}

	// Bind the option callbacks once at construction
	bind := func(eventType EventType, fn func(Message)) {
		if fn != nil {
			c.registry.Subscribe(eventType, fn)
		}
	}
	bind(EventCheckoutComplete, opts.OnComplete)
	bind(EventCheckoutError, opts.OnError)
	bind(EventCheckoutLoaded, opts.OnLoad)
	bind(EventFrameError, opts.OnFrameError)
	bind(EventFrameLoaded, opts.OnFrameLoad)
	bind(EventSignedOut, opts.OnSignOut)

	// Style configuration is posted on every frame-loaded signal when
	// style overrides were supplied
	if opts.Styles != nil {
		c.registry.Subscribe(EventFrameLoaded, func(Message) {
			c.postStyles()
		})
	}

	return c, nil
}

// Subscribe registers a listener for a control-channel event type and
// returns its unsubscribe function
func (c *Controller) Subscribe(eventType EventType, listener Listener) func() {
	return c.registry.Subscribe(eventType, listener)
}

// Attach embeds the checkout frame. It is idempotent: attaching an
// already-attached controller returns the same instance without creating a
// second frame. A cookie-consent navigation surfaces as ErrNavigatingAway.
func (c *Controller) Attach(ctx context.Context) (*Controller, error) {
	c.mu.Lock()
	if c.state != stateDetached {
		c.mu.Unlock()
		return c, nil
	}
	c.state = stateAttaching
	c.mu.Unlock()

	c.startPump()
	c.indicator.Show(c.opts.ContainerID)

	err := c.attempt(ctx)
	if err != nil && pkgerrors.IsMissingContent(err) && c.consent.consumeRetry() {
		c.logger.Info("retrying embedded checkout after missing content",
			zap.String("container_id", c.opts.ContainerID))
		observability.RecordAttach("retry")
		err = c.attempt(ctx)
	}

	if err != nil {
		c.stopPump()
		c.mu.Lock()
		c.state = stateDetached
		c.mu.Unlock()

		if errors.Is(err, pkgerrors.ErrNavigatingAway) {
			// The host page is being navigated to the allow-cookie
			// endpoint; nothing further happens in this page.
			observability.RecordAttach("navigating_away")
			return nil, err
		}

		c.emitFrameError(err)
		c.indicator.Hide(c.opts.ContainerID)
		observability.RecordAttach("failed")
		c.logger.Error("embedded checkout attach failed", zap.Error(err))
		return nil, err
	}

	c.indicator.Hide(c.opts.ContainerID)
	c.mu.Lock()
	c.state = stateAttached
	c.mu.Unlock()
	observability.RecordAttach("attached")
	c.logger.Info("embedded checkout attached",
		zap.String("container_id", c.opts.ContainerID))

	return c, nil
}

// Detach removes the checkout frame and stops listening. Detaching a
// controller that never attached is a no-op.
func (c *Controller) Detach() {
	c.mu.Lock()
	if c.state != stateAttached {
		c.mu.Unlock()
		return
	}
	c.state = stateDetached
	frame, resizer := c.frame, c.resizer
	c.frame, c.resizer = nil, nil
	c.mu.Unlock()

	c.stopPump()
	if resizer != nil {
		resizer.Close()
	}
	if frame != nil {
		frame.Remove()
	}
	c.logger.Info("embedded checkout detached",
		zap.String("container_id", c.opts.ContainerID))
}

// attempt runs one full attach sequence: consent gate, URL resolution,
// frame creation, and the load wait
func (c *Controller) attempt(ctx context.Context) error {
	if err := c.consent.ensure(c.opts.URL); err != nil {
		return err
	}

	finalURL, err := resolveCheckoutURL(ctx, c.http, c.opts.URL)
	if err != nil {
		return err
	}
	origin, err := originOf(finalURL)
	if err != nil {
		return pkgerrors.NewArgumentError("url", "resolved checkout URL is not a valid absolute URL")
	}
	c.mu.Lock()
	c.expectOrigin = origin
	c.mu.Unlock()

	// Watch for frame events before creating the frame so a fast-loading
	// frame cannot signal ahead of the subscriptions
	watch := c.watchFrameEvents()
	defer watch.cancel()

	frame, err := c.host.CreateFrame(c.opts.ContainerID, finalURL)
	if err != nil {
		return err
	}

	// Hidden until the content reports loaded
	frame.SetHidden(true)
	c.mu.Lock()
	c.frame = frame
	c.mu.Unlock()

	if err := c.awaitFrameLoad(ctx, watch); err != nil {
		frame.Remove()
		c.mu.Lock()
		c.frame = nil
		c.mu.Unlock()
		return err
	}

	frame.SetHidden(false)
	resizer := frame.EnableAutoResize()
	c.mu.Lock()
	c.resizer = resizer
	c.mu.Unlock()

	return nil
}

// frameWatch holds the temporary subscriptions feeding one load wait
type frameWatch struct {
	loaded chan Message
	failed chan Message
	cancel func()
}

func (c *Controller) watchFrameEvents() *frameWatch {
	w := &frameWatch{
		loaded: make(chan Message, 1),
		failed: make(chan Message, 1),
	}
	unsubLoaded := c.registry.Subscribe(EventFrameLoaded, func(msg Message) {
		select {
		case w.loaded <- msg:
		default:
		}
	})
	unsubFailed := c.registry.Subscribe(EventFrameError, func(msg Message) {
		select {
		case w.failed <- msg:
		default:
		}
	})
	w.cancel = func() {
		unsubLoaded()
		unsubFailed()
	}
	return w
}

// awaitFrameLoad races the frame-loaded signal against a frame error and
// the configured timeout. Whichever fires first wins; the watch
// subscriptions and timer are torn down either way.
func (c *Controller) awaitFrameLoad(ctx context.Context, watch *frameWatch) error {
	start := time.Now()

	timer := time.NewTimer(c.opts.frameTimeout())
	defer timer.Stop()

	select {
	case <-watch.loaded:
		observability.RecordFrameLoad("loaded", time.Since(start))
		return nil
	case msg := <-watch.failed:
		observability.RecordFrameLoad("error", time.Since(start))
		return pkgerrors.NewNotEmbeddableError(pkgerrors.ReasonMissingContent, msg.ErrorMessage())
	case <-timer.C:
		observability.RecordFrameLoad("timeout", time.Since(start))
		return pkgerrors.NewNotEmbeddableError(pkgerrors.ReasonLoadTimeout,
			"the checkout content did not load within the allotted time")
	case <-ctx.Done():
		return ctx.Err()
	}
}

// startPump begins consuming host messages. One pump runs at a time per
// controller.
func (c *Controller) startPump() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pumpStop != nil {
		return
	}
	stop := make(chan struct{})
	done := make(chan struct{})
	c.pumpStop = stop
	c.pumpDone = done

	go func() {
		defer close(done)
		for {
			select {
			case raw, ok := <-c.host.Messages():
				if !ok {
					return
				}
				c.handleRaw(raw)
			case <-stop:
				return
			}
		}
	}()
}

func (c *Controller) stopPump() {
	c.mu.Lock()
	stop, done := c.pumpStop, c.pumpDone
	c.pumpStop, c.pumpDone = nil, nil
	c.mu.Unlock()
	if stop != nil {
		close(stop)
		<-done
	}
}

// handleRaw filters one inbound message by exact origin match and
// recognized type, then fans it out to listeners
func (c *Controller) handleRaw(raw ports.RawMessage) {
	c.mu.Lock()
	origin := c.expectOrigin
	c.mu.Unlock()

	if raw.Origin != origin {
		c.logger.Debug("dropping message from unexpected origin",
			zap.String("origin", raw.Origin))
		return
	}

	msg, ok := parseMessage(raw.Data)
	if !ok {
		return
	}

	c.registry.dispatch(*msg)
}

// emitFrameError notifies listeners that embedding failed before re-raising
// to the caller
func (c *Controller) emitFrameError(err error) {
	payload, marshalErr := json.Marshal(ErrorPayload{Message: err.Error()})
	if marshalErr != nil {
		return
	}
	c.registry.dispatch(Message{Type: EventFrameError, Payload: payload})
}

// postStyles sends the style configuration to the frame's content window
func (c *Controller) postStyles() {
	c.mu.Lock()
	frame := c.frame
	origin := c.expectOrigin
	c.mu.Unlock()
	if frame == nil {
		return
	}

	envelope := struct {
		Type    EventType     `json:"type"`
		Payload *StyleOptions `json:"payload"`
	}{EventStyleConfigured, c.opts.Styles}

	data, err := json.Marshal(envelope)
	if err != nil {
		return
	}
	if err := frame.PostMessage(data, origin); err != nil {
		c.logger.Warn("failed to post style configuration", zap.Error(err))
	}
}

// originOf extracts the scheme://host origin of an absolute URL
func originOf(rawURL string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return "", errors.New("url is not absolute")
	}
	return parsed.Scheme + "://" + parsed.Host, nil
}
