package embed

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"sync"

	"github.com/embedpay/checkout-client/internal/adapters/ports"
	pkgerrors "github.com/embedpay/checkout-client/pkg/errors"
)

// fakeResizer records whether it was closed
type fakeResizer struct {
	mu     sync.Mutex
	closed bool
}

func (r *fakeResizer) Close() {
	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()
}

func (r *fakeResizer) isClosed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closed
}

// postedMessage is one captured PostMessage call
type postedMessage struct {
	Data         []byte
	TargetOrigin string
}

// fakeFrame records visibility, removal and posted messages
type fakeFrame struct {
	mu      sync.Mutex
	url     string
	hidden  bool
	removed bool
	posted  []postedMessage
	resizer *fakeResizer
}

func (f *fakeFrame) SetHidden(hidden bool) {
	f.mu.Lock()
	f.hidden = hidden
	f.mu.Unlock()
}

func (f *fakeFrame) PostMessage(data []byte, targetOrigin string) error {
	f.mu.Lock()
	f.posted = append(f.posted, postedMessage{Data: data, TargetOrigin: targetOrigin})
	f.mu.Unlock()
	return nil
}

func (f *fakeFrame) Remove() {
	f.mu.Lock()
	f.removed = true
	f.mu.Unlock()
}

func (f *fakeFrame) EnableAutoResize() ports.Resizer {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resizer = &fakeResizer{}
	return f.resizer
}

func (f *fakeFrame) isRemoved() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.removed
}

func (f *fakeFrame) isHidden() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hidden
}

func (f *fakeFrame) postedMessages() []postedMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]postedMessage(nil), f.posted...)
}

// fakeHost serves frames under known containers and exposes an inbound
// message channel tests feed directly
type fakeHost struct {
	mu         sync.Mutex
	containers map[string]bool
	frames     []*fakeFrame
	msgs       chan ports.RawMessage
}

func newFakeHost(containers ...string) *fakeHost {
	known := make(map[string]bool, len(containers))
	for _, id := range containers {
		known[id] = true
	}
	return &fakeHost{
		containers: known,
		msgs:       make(chan ports.RawMessage, 16),
	}
}

func (h *fakeHost) CreateFrame(containerID, url string) (ports.Frame, error) {
	if !h.containers[containerID] {
		return nil, pkgerrors.NewNotEmbeddableError(pkgerrors.ReasonMissingContainer,
			"container "+containerID+" does not exist")
	}
	frame := &fakeFrame{url: url}
	h.mu.Lock()
	h.frames = append(h.frames, frame)
	h.mu.Unlock()
	return frame, nil
}

func (h *fakeHost) Messages() <-chan ports.RawMessage {
	return h.msgs
}

func (h *fakeHost) frameCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.frames)
}

func (h *fakeHost) frameAt(i int) *fakeFrame {
	h.mu.Lock()
	defer h.mu.Unlock()
	if i >= len(h.frames) {
		return nil
	}
	return h.frames[i]
}

// send delivers an envelope from the given origin
func (h *fakeHost) send(origin string, eventType EventType, payload any) {
	var raw json.RawMessage
	if payload != nil {
		raw, _ = json.Marshal(payload)
	}
	data, _ := json.Marshal(Message{Type: eventType, Payload: raw})
	h.msgs <- ports.RawMessage{Origin: origin, Data: data}
}

// fakeNavigator captures full-page navigations
type fakeNavigator struct {
	mu   sync.Mutex
	urls []string
}

func (n *fakeNavigator) Navigate(url string) error {
	n.mu.Lock()
	n.urls = append(n.urls, url)
	n.mu.Unlock()
	return nil
}

func (n *fakeNavigator) navigations() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.urls...)
}

// fakeIndicator counts show/hide calls
type fakeIndicator struct {
	mu    sync.Mutex
	shows int
	hides int
}

func (i *fakeIndicator) Show(string) {
	i.mu.Lock()
	i.shows++
	i.mu.Unlock()
}

func (i *fakeIndicator) Hide(string) {
	i.mu.Lock()
	i.hides++
	i.mu.Unlock()
}

func (i *fakeIndicator) counts() (int, int) {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.shows, i.hides
}

// fakeHTTPClient serves canned responses for the login-token rewrite
type fakeHTTPClient struct {
	mu     sync.Mutex
	DoFunc func(req *http.Request) (*http.Response, error)
	calls  []*http.Request
}

func (c *fakeHTTPClient) Do(req *http.Request) (*http.Response, error) {
	c.mu.Lock()
	c.calls = append(c.calls, req)
	c.mu.Unlock()
	if c.DoFunc != nil {
		return c.DoFunc(req)
	}
	return &http.Response{
		StatusCode: 200,
		Body:       io.NopCloser(bytes.NewBufferString(`{}`)),
		Header:     make(http.Header),
	}, nil
}

func (c *fakeHTTPClient) callCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.calls)
}
