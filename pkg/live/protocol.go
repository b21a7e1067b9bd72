package live

import (
	"encoding/json"
	"fmt"
)

// Pusher protocol event names.
const (
	eventConnectionEstablished = "pusher:connection_established"
	eventError                 = "pusher:error"
	eventPing                  = "pusher:ping"
	eventPong                  = "pusher:pong"
	eventSubscribe             = "pusher:subscribe"
	eventSubscriptionError     = "pusher:subscription_error"
	eventSubscriptionSucceeded = "pusher_internal:subscription_succeeded"

	protocolVersion = 7
)

// frame is one message on the socket. Data is usually a JSON document encoded
// as a string, but some servers send it inline.
type frame struct {
	Event   string          `json:"event"`
	Channel string          `json:"channel,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// payload returns the decoded data: string-encoded documents are unquoted,
// inline documents are returned as is.
func (f frame) payload() ([]byte, error) {
	if len(f.Data) == 0 {
		return nil, nil
	}
	if f.Data[0] != '"' {
		return []byte(f.Data), nil
	}
	var s string
	if err := json.Unmarshal(f.Data, &s); err != nil {
		return nil, fmt.Errorf("live: decode %s data: %w", f.Event, err)
	}
	return []byte(s), nil
}

type connectionEstablished struct {
	SocketID        string `json:"socket_id"`
	ActivityTimeout int    `json:"activity_timeout"`
}

type protocolError struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
}

func (e protocolError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("live: pusher error %d: %s", e.Code, e.Message)
	}
	return "live: pusher error: " + e.Message
}

type subscribeData struct {
	Channel string `json:"channel"`
	Auth    string `json:"auth,omitempty"`
}
