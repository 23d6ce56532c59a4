// Package client implements the room session that a host shell embeds: the
// sync adapter folding remote events into the board store, the stroke
// publication path, and the fixed-cadence cursor broadcaster.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/coder/websocket"
	"github.com/rs/zerolog/log"

	"github.com/scrawlhq/scrawl/internal/domain"
)

// Transport is a bidirectional event channel scoped to one room. It gives no
// ordering or delivery guarantee stronger than at-most-once per send, and no
// duplicate suppression.
type Transport interface {
	// Emit sends one named event. Returns domain.ErrNotConnected once the
	// connection is down; nothing is queued or retried.
	Emit(ctx context.Context, event string, data any) error
	// Events yields inbound envelopes in arrival order. The channel closes
	// when the connection is torn down.
	Events() <-chan domain.Envelope
	// Connected reports whether the transport currently holds a live
	// connection.
	Connected() bool
	Close() error
}

type wsTransport struct {
	conn      *websocket.Conn
	events    chan domain.Envelope
	connected atomic.Bool
	cancel    context.CancelFunc

	writeMu sync.Mutex
}

// Dial connects to a relay websocket endpoint, e.g.
// ws://host/ws/rooms/{roomID}, and starts the read loop.
func Dial(ctx context.Context, url string) (Transport, error) {
	conn, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("client.Dial: %w", err)
	}

	readCtx, cancel := context.WithCancel(context.Background())
	t := &wsTransport{
		conn:   conn,
		events: make(chan domain.Envelope, 64),
		cancel: cancel,
	}
	t.connected.Store(true)

	go t.readLoop(readCtx)
	return t, nil
}

func (t *wsTransport) readLoop(ctx context.Context) {
	defer func() {
		t.connected.Store(false)
		close(t.events)
	}()

	for {
		_, data, err := t.conn.Read(ctx)
		if err != nil {
			log.Debug().Err(err).Msg("transport read closed")
			return
		}

		var env domain.Envelope
		if err := json.Unmarshal(data, &env); err != nil {
			log.Debug().Err(err).Msg("dropping malformed envelope")
			continue
		}

		select {
		case t.events <- env:
		case <-ctx.Done():
			return
		}
	}
}

func (t *wsTransport) Emit(ctx context.Context, event string, data any) error {
	if !t.connected.Load() {
		return domain.ErrNotConnected
	}

	env, err := domain.NewEnvelope(event, data)
	if err != nil {
		return fmt.Errorf("client.Transport.Emit: %w", err)
	}
	buf, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("client.Transport.Emit: %w", err)
	}

	t.writeMu.Lock()
	defer t.writeMu.Unlock()
	if err := t.conn.Write(ctx, websocket.MessageText, buf); err != nil {
		t.connected.Store(false)
		return fmt.Errorf("client.Transport.Emit: %w", err)
	}
	return nil
}

func (t *wsTransport) Events() <-chan domain.Envelope {
	return t.events
}

func (t *wsTransport) Connected() bool {
	return t.connected.Load()
}

func (t *wsTransport) Close() error {
	t.connected.Store(false)
	t.cancel()
	if err := t.conn.Close(websocket.StatusNormalClosure, "session closed"); err != nil {
		return fmt.Errorf("client.Transport.Close: %w", err)
	}
	return nil
}
