package embed

import (
	"encoding/json"
)

// EventType identifies a control-channel message exchanged with the
// embedded checkout frame
type EventType string

const (
	// Inbound, frame to host
	EventCheckoutComplete EventType = "CHECKOUT_COMPLETE"
	EventCheckoutError    EventType = "CHECKOUT_ERROR"
	EventCheckoutLoaded   EventType = "CHECKOUT_LOADED"
	EventFrameError       EventType = "FRAME_ERROR"
	EventFrameLoaded      EventType = "FRAME_LOADED"
	EventSignedOut        EventType = "SIGNED_OUT"

	// Outbound, host to frame
	EventStyleConfigured EventType = "STYLE_CONFIGURED"
)

// Message is the tagged envelope carried over the control channel
type Message struct {
	Type    EventType       `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// ErrorPayload is the payload of CHECKOUT_ERROR and FRAME_ERROR messages
type ErrorPayload struct {
	Message string `json:"message"`
}

// ErrorMessage extracts the vendor-supplied message text from an error
// event, if any
func (m *Message) ErrorMessage() string {
	if len(m.Payload) == 0 {
		return ""
	}
	var payload ErrorPayload
	if err := json.Unmarshal(m.Payload, &payload); err != nil {
		return ""
	}
	return payload.Message
}

var inboundTypes = map[EventType]struct{}{
	EventCheckoutComplete: {},
	EventCheckoutError:    {},
	EventCheckoutLoaded:   {},
	EventFrameError:       {},
	EventFrameLoaded:      {},
	EventSignedOut:        {},
}

// parseMessage decodes a raw envelope, reporting whether it carries a
// recognized inbound event type. Unrecognized or malformed messages are
// dropped by the caller.
func parseMessage(data []byte) (*Message, bool) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, false
	}
	if _, ok := inboundTypes[msg.Type]; !ok {
		return nil, false
	}
	return &msg, true
}
