// Package live subscribes to call updates pushed over the Pusher protocol.
//
// A Client is constructed explicitly, connected once, and disconnected by its
// owner; handlers registered with OnEvent receive every update event on the
// configured channel until then. There is no automatic reconnection.
package live

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	DefaultCluster = "eu"
	DefaultChannel = "private-aircall"
	DefaultEvent   = "update-call"

	handshakeTimeout       = 15 * time.Second
	defaultActivityTimeout = 120 * time.Second
	pongWait               = 30 * time.Second
	writeWait              = 10 * time.Second
	clientName             = "calllog"
	clientVersion          = "0.1.0"
)

// ErrConnected is returned by Connect on a client that is already connected.
var ErrConnected = errors.New("live: already connected")

// Event is one update delivered on the subscribed channel. Data is the decoded
// JSON payload, a partial or full call record.
type Event struct {
	Channel string
	Name    string
	Data    []byte
}

// Options configures a Client.
type Options struct {
	// Key is the Pusher application key.
	Key     string
	Cluster string
	// Host overrides the socket base URL, e.g. ws://127.0.0.1:8080. When empty
	// the cluster host wss://ws-{cluster}.pusher.com is used.
	Host string
	// AuthEndpoint signs private channel subscriptions.
	AuthEndpoint string
	// Token is sent as a bearer token to the auth endpoint.
	Token   string
	Channel string
	Event   string

	HTTPClient *http.Client
	Dialer     *websocket.Dialer
	Logger     *slog.Logger
}

// Client is a single-channel Pusher subscription.
type Client struct {
	opts   Options
	hc     *http.Client
	dialer *websocket.Dialer
	log    *slog.Logger

	mu       sync.Mutex
	handlers []func(Event)
	conn     *websocket.Conn
	done     chan struct{}
	closing  bool
	err      error

	writeMu sync.Mutex
}

// New validates the options and builds an unconnected Client.
func New(opts Options) (*Client, error) {
	opts.Key = strings.TrimSpace(opts.Key)
	if opts.Key == "" {
		return nil, errors.New("live: app key required")
	}
	if opts.Cluster == "" {
		opts.Cluster = DefaultCluster
	}
	if opts.Channel == "" {
		opts.Channel = DefaultChannel
	}
	if opts.Event == "" {
		opts.Event = DefaultEvent
	}
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: handshakeTimeout}
	}
	dialer := opts.Dialer
	if dialer == nil {
		dialer = &websocket.Dialer{
			Proxy:            http.ProxyFromEnvironment,
			HandshakeTimeout: handshakeTimeout,
		}
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Client{
		opts:   opts,
		hc:     hc,
		dialer: dialer,
		log:    log.With("component", "live", "channel", opts.Channel),
	}, nil
}

// Channel returns the subscribed channel name.
func (c *Client) Channel() string { return c.opts.Channel }

// OnEvent registers a handler for update events. Handlers run on the
// client's read goroutine and must not block for long.
func (c *Client) OnEvent(handler func(Event)) {
	if handler == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers = append(c.handlers, handler)
}

// URL returns the socket address the client dials.
func (c *Client) URL() string {
	host := strings.TrimRight(c.opts.Host, "/")
	if host == "" {
		host = fmt.Sprintf("wss://ws-%s.pusher.com", c.opts.Cluster)
	}
	q := url.Values{}
	q.Set("protocol", fmt.Sprint(protocolVersion))
	q.Set("client", clientName)
	q.Set("version", clientVersion)
	return fmt.Sprintf("%s/app/%s?%s", host, url.PathEscape(c.opts.Key), q.Encode())
}

// Connect dials the socket, authorizes and subscribes to the channel, then
// starts delivering events in the background. It returns once the
// subscription is confirmed or has failed.
func (c *Client) Connect(ctx context.Context) error {
	c.mu.Lock()
	if c.conn != nil {
		c.mu.Unlock()
		return ErrConnected
	}
	c.mu.Unlock()

	conn, _, err := c.dialer.DialContext(ctx, c.URL(), nil)
	if err != nil {
		return fmt.Errorf("live: dial: %w", err)
	}
	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	activity, err := c.handshake(ctx, conn)
	if !stop() && err == nil {
		err = ctx.Err()
	}
	if err != nil {
		_ = conn.Close()
		return err
	}

	done := make(chan struct{})
	c.mu.Lock()
	c.conn = conn
	c.done = done
	c.closing = false
	c.err = nil
	c.mu.Unlock()

	go c.keepalive(conn, done, activity)
	go c.run(conn, done, activity)
	c.log.Info("subscribed", "event", c.opts.Event)
	return nil
}

func (c *Client) handshake(ctx context.Context, conn *websocket.Conn) (time.Duration, error) {
	deadline := time.Now().Add(handshakeTimeout)
	if dl, ok := ctx.Deadline(); ok && dl.Before(deadline) {
		deadline = dl
	}
	_ = conn.SetReadDeadline(deadline)
	defer conn.SetReadDeadline(time.Time{})

	var est connectionEstablished
	if err := c.await(conn, eventConnectionEstablished, &est); err != nil {
		return 0, err
	}
	if est.SocketID == "" {
		return 0, errors.New("live: connection established without socket id")
	}

	sub := subscribeData{Channel: c.opts.Channel}
	if isPrivate(c.opts.Channel) {
		auth, err := c.authorize(ctx, est.SocketID)
		if err != nil {
			return 0, err
		}
		sub.Auth = auth
	}
	if err := c.send(conn, eventSubscribe, "", sub); err != nil {
		return 0, err
	}
	if err := c.await(conn, eventSubscriptionSucceeded, nil); err != nil {
		return 0, err
	}

	activity := defaultActivityTimeout
	if est.ActivityTimeout > 0 {
		activity = time.Duration(est.ActivityTimeout) * time.Second
	}
	return activity, nil
}

// await reads frames until one named want arrives, answering pings and
// failing on protocol errors along the way.
func (c *Client) await(conn *websocket.Conn, want string, into any) error {
	for {
		f, err := readFrame(conn)
		if err != nil {
			return fmt.Errorf("live: waiting for %s: %w", want, err)
		}
		switch f.Event {
		case want:
			if into == nil {
				return nil
			}
			data, err := f.payload()
			if err != nil {
				return err
			}
			if err := json.Unmarshal(data, into); err != nil {
				return fmt.Errorf("live: decode %s: %w", want, err)
			}
			return nil
		case eventPing:
			if err := c.send(conn, eventPong, "", struct{}{}); err != nil {
				return err
			}
		case eventError, eventSubscriptionError:
			return decodeProtocolError(f)
		}
	}
}

func (c *Client) run(conn *websocket.Conn, done chan struct{}, activity time.Duration) {
	defer close(done)
	for {
		_ = conn.SetReadDeadline(time.Now().Add(activity + pongWait))
		f, err := readFrame(conn)
		if err != nil {
			c.finish(err)
			return
		}
		switch f.Event {
		case eventPing:
			if err := c.send(conn, eventPong, "", struct{}{}); err != nil {
				c.finish(err)
				return
			}
		case eventPong:
		case eventError:
			c.log.Warn("protocol error", "err", decodeProtocolError(f))
		default:
			if f.Channel != c.opts.Channel || f.Event != c.opts.Event {
				continue
			}
			data, err := f.payload()
			if err != nil {
				c.log.Warn("dropping event", "event", f.Event, "err", err)
				continue
			}
			c.dispatch(Event{Channel: f.Channel, Name: f.Event, Data: data})
		}
	}
}

func (c *Client) keepalive(conn *websocket.Conn, done chan struct{}, activity time.Duration) {
	t := time.NewTicker(activity)
	defer t.Stop()
	for {
		select {
		case <-done:
			return
		case <-t.C:
			if err := c.send(conn, eventPing, "", struct{}{}); err != nil {
				c.log.Debug("ping failed", "err", err)
				return
			}
		}
	}
}

func (c *Client) dispatch(ev Event) {
	c.mu.Lock()
	handlers := append([]func(Event){}, c.handlers...)
	c.mu.Unlock()
	for _, h := range handlers {
		h(ev)
	}
}

func (c *Client) finish(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closing {
		return
	}
	c.err = fmt.Errorf("live: connection lost: %w", err)
	c.log.Warn("connection lost", "err", err)
}

// Done is closed when the background reader stops, either after Disconnect
// or because the connection dropped. It is nil before Connect.
func (c *Client) Done() <-chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.done
}

// Err reports why the connection ended, or nil after a clean Disconnect.
func (c *Client) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Disconnect closes the socket and waits for the reader to stop. Calling it
// on an unconnected client is a no-op.
func (c *Client) Disconnect() error {
	c.mu.Lock()
	conn, done := c.conn, c.done
	if conn == nil {
		c.mu.Unlock()
		return nil
	}
	c.closing = true
	c.conn = nil
	c.mu.Unlock()

	c.writeMu.Lock()
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(writeWait))
	c.writeMu.Unlock()
	err := conn.Close()
	<-done
	if err != nil && !errors.Is(err, websocket.ErrCloseSent) {
		return fmt.Errorf("live: close: %w", err)
	}
	return nil
}

func (c *Client) send(conn *websocket.Conn, event, channel string, data any) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("live: encode %s: %w", event, err)
	}
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteJSON(frame{Event: event, Channel: channel, Data: raw}); err != nil {
		return fmt.Errorf("live: send %s: %w", event, err)
	}
	return nil
}

func readFrame(conn *websocket.Conn) (frame, error) {
	_, data, err := conn.ReadMessage()
	if err != nil {
		return frame{}, err
	}
	var f frame
	if err := json.Unmarshal(data, &f); err != nil {
		return frame{}, fmt.Errorf("decode frame: %w", err)
	}
	return f, nil
}

func decodeProtocolError(f frame) error {
	data, err := f.payload()
	if err != nil {
		return err
	}
	var pe protocolError
	if err := json.Unmarshal(data, &pe); err != nil || pe.Message == "" {
		return fmt.Errorf("live: %s: %s", f.Event, strings.TrimSpace(string(data)))
	}
	return pe
}

func isPrivate(channel string) bool {
	return strings.HasPrefix(channel, "private-") || strings.HasPrefix(channel, "presence-")
}
