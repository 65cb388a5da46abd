package ports

// RawMessage is a message received from the host environment's control
// channel, tagged with the origin it arrived from
type RawMessage struct {
	Origin string
	Data   []byte
}

// Resizer keeps an embedded frame's height synchronized with its content
type Resizer interface {
	Close()
}

// Frame is a live embedded checkout frame
type Frame interface {
	// SetHidden toggles frame visibility. Frames start hidden until their
	// content signals loaded.
	SetHidden(hidden bool)

	// PostMessage sends data to the frame's content, restricted to the
	// given target origin
	PostMessage(data []byte, targetOrigin string) error

	// Remove detaches the frame from its container
	Remove()

	// EnableAutoResize installs auto-resizing behavior and returns its handle
	EnableAutoResize() Resizer
}

// FrameHost abstracts the host environment the checkout embeds into
type FrameHost interface {
	// CreateFrame creates a frame under the named container, loading the
	// given URL. Fails when the container does not exist.
	CreateFrame(containerID, url string) (Frame, error)

	// Messages is the stream of control-channel messages arriving from
	// embedded content
	Messages() <-chan RawMessage
}

// Navigator performs full-page navigation of the host environment
type Navigator interface {
	Navigate(url string) error
}

// Storage is a key-value store persisted by the host environment.
// Values are JSON-encoded.
type Storage interface {
	// Get decodes the value at key into v, reporting whether the key exists
	Get(key string, v any) (bool, error)

	// Set stores the JSON encoding of v at key
	Set(key string, v any) error

	// Remove deletes the key if present
	Remove(key string)
}

// LoadingIndicator shows progress feedback over a container while the
// checkout frame loads
type LoadingIndicator interface {
	Show(containerID string)
	Hide(containerID string)
}
