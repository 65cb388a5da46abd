package embed

import (
	"sync"
)

// Listener handles one dispatched control-channel event
type Listener func(msg Message)

type registration struct {
	listener Listener
	removed  bool
}

// registry is a controller-owned subscription table keyed by event type.
// Listeners are invoked in registration order from a single dispatch
// entry point; there is no ambient global listener state.
type registry struct {
	mu        sync.Mutex
	listeners map[EventType][]*registration
}

func newRegistry() *registry {
	return &registry{
		listeners: make(map[EventType][]*registration),
	}
}

// Subscribe registers a listener for an event type and returns a function
// that removes exactly that registration
func (r *registry) Subscribe(eventType EventType, listener Listener) func() {
	r.mu.Lock()
	reg := &registration{listener: listener}
	r.listeners[eventType] = append(r.listeners[eventType], reg)
	r.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			r.mu.Lock()
			reg.removed = true
			regs := r.listeners[eventType]
			for i, candidate := range regs {
				if candidate == reg {
					r.listeners[eventType] = append(regs[:i:i], regs[i+1:]...)
					break
				}
			}
			r.mu.Unlock()
		})
	}
}

// dispatch fans the message out to the type's listeners in registration
// order. The listener slice is snapshotted so a listener may unsubscribe
// itself or others mid-dispatch.
func (r *registry) dispatch(msg Message) {
	r.mu.Lock()
	regs := make([]*registration, len(r.listeners[msg.Type]))
	copy(regs, r.listeners[msg.Type])
	r.mu.Unlock()

	for _, reg := range regs {
		r.mu.Lock()
		removed := reg.removed
		r.mu.Unlock()
		if !removed {
			reg.listener(msg)
		}
	}
}
