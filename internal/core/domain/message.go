package domain

import "time"

// MessageKind distinguishes transient notifications.
type MessageKind string

const (
	MessageKindError   MessageKind = "error"
	MessageKindSuccess MessageKind = "success"
)

// Default lifetimes of transient messages.
const (
	DefaultErrorMessageTTL   = 3 * time.Second
	DefaultSuccessMessageTTL = 5 * time.Second
)

// TransientMessage is a UI notification that expires on its own.
// Token increases monotonically per slot; an expiry only clears the slot when
// its token is still the one on display.
type TransientMessage struct {
	Token        uint64        `json:"token"`
	Kind         MessageKind   `json:"kind"`
	Text         string        `json:"text"`
	ExpiresAfter time.Duration `json:"expires_after"`
	ShownAt      time.Time     `json:"shown_at"`
}
