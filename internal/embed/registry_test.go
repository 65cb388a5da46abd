package embed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatchInRegistrationOrder(t *testing.T) {
	r := newRegistry()

	var order []string
	r.Subscribe(EventCheckoutLoaded, func(Message) { order = append(order, "first") })
	r.Subscribe(EventCheckoutLoaded, func(Message) { order = append(order, "second") })
	r.Subscribe(EventCheckoutLoaded, func(Message) { order = append(order, "third") })

	r.dispatch(Message{Type: EventCheckoutLoaded})

	assert.Equal(t, []string{"first", "second", "third"}, order)
}

func TestDispatchOnlyMatchingType(t *testing.T) {
	r := newRegistry()

	var calls int
	r.Subscribe(EventCheckoutComplete, func(Message) { calls++ })

	r.dispatch(Message{Type: EventCheckoutLoaded})
	assert.Zero(t, calls)

	r.dispatch(Message{Type: EventCheckoutComplete})
	assert.Equal(t, 1, calls)
}

func TestUnsubscribeRemovesExactlyOneRegistration(t *testing.T) {
	r := newRegistry()

	var a, b int
	unsubA := r.Subscribe(EventSignedOut, func(Message) { a++ })
	r.Subscribe(EventSignedOut, func(Message) { b++ })

	unsubA()
	unsubA() // second call is harmless

	r.dispatch(Message{Type: EventSignedOut})

	assert.Zero(t, a)
	assert.Equal(t, 1, b)
}

func TestUnsubscribeDuringDispatch(t *testing.T) {
	r := newRegistry()

	var calls int
	var unsubLater func()
	r.Subscribe(EventCheckoutError, func(Message) {
		unsubLater()
	})
	unsubLater = r.Subscribe(EventCheckoutError, func(Message) { calls++ })

	// The first listener removes the second mid-dispatch; the removed
	// listener must not run
	r.dispatch(Message{Type: EventCheckoutError})
	assert.Zero(t, calls)
}

func TestParseMessage(t *testing.T) {
	tests := []struct {
		name string
		data string
		ok   bool
		typ  EventType
	}{
		{"checkout complete", `{"type":"CHECKOUT_COMPLETE"}`, true, EventCheckoutComplete},
		{"frame error with payload", `{"type":"FRAME_ERROR","payload":{"message":"boom"}}`, true, EventFrameError},
		{"unknown type", `{"type":"SOMETHING_ELSE"}`, false, ""},
		{"outbound type not accepted inbound", `{"type":"STYLE_CONFIGURED"}`, false, ""},
		{"missing type", `{"payload":{}}`, false, ""},
		{"malformed json", `{nope`, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, ok := parseMessage([]byte(tt.data))
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				require.NotNil(t, msg)
				assert.Equal(t, tt.typ, msg.Type)
			}
		})
	}
}

func TestErrorMessageExtraction(t *testing.T) {
	msg, ok := parseMessage([]byte(`{"type":"FRAME_ERROR","payload":{"message":"missing content"}}`))
	require.True(t, ok)
	assert.Equal(t, "missing content", msg.ErrorMessage())

	msg, ok = parseMessage([]byte(`{"type":"FRAME_ERROR"}`))
	require.True(t, ok)
	assert.Empty(t, msg.ErrorMessage())
}
