package healthsync

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"CycleSense/internal/domain/models"
	drepo "CycleSense/internal/domain/repository"
	xhttp "CycleSense/pkg/http"

	"github.com/gorilla/websocket"
)

// Client implements a SyncStream backed by the device sync gateway
// WebSocket. Companion apps push cycle and symptom entries to the
// gateway, which fans them out to subscribed backends.
type Client struct {
	apiKey         string
	websocketURL   string
	channels       []string
	reconnectDelay time.Duration
	pingInterval   time.Duration

	conn      *websocket.Conn
	connected bool
	httpc     *xhttp.Client
}

// New creates a new sync gateway SyncStream.
func New(apiKey, websocketURL string, channels []string, reconnectDelay, pingInterval time.Duration) drepo.SyncStream {
	return &Client{
		apiKey:         apiKey,
		websocketURL:   websocketURL,
		channels:       channels,
		reconnectDelay: reconnectDelay,
		pingInterval:   pingInterval,
		httpc:          xhttp.NewClient(xhttp.WithTimeout(30 * time.Second)),
	}
}

// Connect establishes the WebSocket connection.
func (c *Client) Connect(ctx context.Context) error {
	u := fmt.Sprintf("%s?token=%s", c.websocketURL, c.apiKey)
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u, nil)
	if err != nil {
		return fmt.Errorf("healthsync connect: %w", err)
	}
	c.conn = conn
	c.connected = true
	log.Printf("healthsync: connected")
	return nil
}

// Subscribe subscribes to configured gateway channels.
func (c *Client) Subscribe(ctx context.Context) error {
	if c.conn == nil || !c.connected {
		return fmt.Errorf("healthsync not connected")
	}
	for _, ch := range c.channels {
		msg := map[string]string{"type": "subscribe", "channel": ch}
		if err := c.conn.WriteJSON(msg); err != nil {
			return fmt.Errorf("subscribe %s: %w", ch, err)
		}
		log.Printf("healthsync: subscribed %s", ch)
	}
	return nil
}

type wireEntry struct {
	Kind     string                     `json:"kind"`
	UserID   string                     `json:"userId"`
	Cycle    *models.CycleRecord        `json:"cycle,omitempty"`
	Symptom  *models.SymptomObservation `json:"symptom,omitempty"`
	LoggedAt int64                      `json:"loggedAt"` // ms
}

type wireMessage struct {
	Type string      `json:"type"`
	Data []wireEntry `json:"data"`
}

// Read streams Entry events and errors.
func (c *Client) Read(ctx context.Context) (<-chan *models.Entry, <-chan error) {
	entries := make(chan *models.Entry, 1024)
	errs := make(chan error, 1)

	// ping loop
	go func() {
		ticker := time.NewTicker(c.pingInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if c.conn != nil {
					_ = c.conn.WriteMessage(websocket.PingMessage, nil)
				}
			}
		}
	}()

	// read loop
	go func() {
		defer close(entries)
		defer close(errs)
		for {
			select {
			case <-ctx.Done():
				return
			default:
				if c.conn == nil {
					errs <- fmt.Errorf("healthsync conn nil")
					return
				}
				_, b, err := c.conn.ReadMessage()
				if err != nil {
					errs <- fmt.Errorf("healthsync read: %w", err)
					return
				}
				var m wireMessage
				if err := json.Unmarshal(b, &m); err != nil {
					// ignore non-entry frames
					continue
				}
				if m.Type != "entry" {
					continue
				}
				for _, d := range m.Data {
					entry := &models.Entry{
						Kind:       models.EntryKind(d.Kind),
						UserID:     d.UserID,
						Cycle:      d.Cycle,
						Symptom:    d.Symptom,
						ReceivedAt: time.UnixMilli(d.LoggedAt),
					}
					select {
					case entries <- entry:
					default:
						// drop on backpressure
					}
				}
			}
		}
	}()

	return entries, errs
}

// Backfill fetches entries logged while disconnected, via the gateway's
// REST surface. The gateway keeps a bounded replay log per channel.
func (c *Client) Backfill(ctx context.Context, since time.Time) ([]*models.Entry, error) {
	var payload struct {
		Data []wireEntry `json:"data"`
	}
	err := c.httpc.SendAndParse(ctx, &xhttp.RequestOptions{
		Method:  xhttp.MethodGet,
		URL:     restURL(c.websocketURL) + "/v1/entries/replay",
		Headers: map[string]string{"Authorization": "Bearer " + c.apiKey},
		QueryParams: map[string][]string{
			"since":    {strconv.FormatInt(since.UnixMilli(), 10)},
			"channels": {strings.Join(c.channels, ",")},
		},
	}, &payload)
	if err != nil {
		return nil, fmt.Errorf("healthsync backfill: %w", err)
	}
	out := make([]*models.Entry, 0, len(payload.Data))
	for _, d := range payload.Data {
		out = append(out, &models.Entry{
			Kind:       models.EntryKind(d.Kind),
			UserID:     d.UserID,
			Cycle:      d.Cycle,
			Symptom:    d.Symptom,
			ReceivedAt: time.UnixMilli(d.LoggedAt),
		})
	}
	return out, nil
}

func restURL(wsURL string) string {
	if s, ok := strings.CutPrefix(wsURL, "wss://"); ok {
		return "https://" + s
	}
	if s, ok := strings.CutPrefix(wsURL, "ws://"); ok {
		return "http://" + s
	}
	return wsURL
}

// Reconnect closes and reconnects.
func (c *Client) Reconnect(ctx context.Context) error {
	_ = c.Close()
	time.Sleep(c.reconnectDelay)
	if err := c.Connect(ctx); err != nil {
		return err
	}
	return c.Subscribe(ctx)
}

// Close closes the WS connection.
func (c *Client) Close() error {
	c.connected = false
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// IsConnected indicates status.
func (c *Client) IsConnected() bool { return c.connected }
