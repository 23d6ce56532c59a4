// Package relay implements the room-scoped event relay: every stroke and
// cursor event a participant sends is re-broadcast to the other participants
// of the same room with the sender's identity attached. Rooms are created
// implicitly on first join and dropped when the last participant leaves;
// nothing is persisted.
package relay

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"sync"

	"github.com/coder/websocket"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/scrawlhq/scrawl/internal/domain"
	redisbridge "github.com/scrawlhq/scrawl/internal/relay/redis"
)

// errExpectedJoin rejects connections whose first frame is not a join.
var errExpectedJoin = errors.New("relay: first frame must be a join event")

// Hub owns all live rooms on this relay node. With a bridge configured,
// re-broadcast frames are also published to the room's pub/sub channel so
// peers on other nodes see them.
type Hub struct {
	ctx    context.Context
	bridge *redisbridge.PubSub // nil when running standalone
	nodeID string

	mu    sync.Mutex
	rooms map[string]*room
}

// NewHub creates a hub. ctx bounds the lifetime of bridge subscriptions;
// bridge may be nil for a single-node deployment.
func NewHub(ctx context.Context, bridge *redisbridge.PubSub) *Hub {
	return &Hub{
		ctx:    ctx,
		bridge: bridge,
		nodeID: uuid.NewString(),
		rooms:  make(map[string]*room),
	}
}

// ServeRoom handles one participant's websocket connection for
// GET /ws/rooms/{roomID}. The first frame must be a join event; the relay
// answers with the assigned session identity, then re-broadcasts the
// participant's stroke and cursor events until the connection drops, at
// which point the room is told the user left.
func (h *Hub) ServeRoom(w http.ResponseWriter, r *http.Request) {
	roomID := chi.URLParam(r, "roomID")
	if roomID == "" {
		http.Error(w, "missing room id", http.StatusBadRequest)
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		log.Error().Err(err).Msg("websocket accept")
		return
	}
	defer conn.CloseNow()

	ctx := r.Context()

	join, err := readJoin(ctx, conn)
	if err != nil {
		log.Debug().Err(err).Str("room", roomID).Msg("rejecting connection without join")
		_ = conn.Close(websocket.StatusPolicyViolation, "expected join")
		return
	}

	p := &participant{
		userID:   uuid.NewString(),
		userName: join.UserName,
		send:     make(chan []byte, sendBuffer),
	}

	if err := writeEvent(ctx, conn, domain.EventJoined, domain.JoinedPayload{UserID: p.userID}); err != nil {
		log.Debug().Err(err).Msg("joined ack failed")
		return
	}

	rm := h.join(roomID, p)
	defer h.leave(rm, p)

	log.Info().Str("room", roomID).Str("user", p.userID).Str("name", p.userName).Msg("participant joined")

	go writePump(ctx, conn, p.send)

	for {
		_, data, readErr := conn.Read(ctx)
		if readErr != nil {
			log.Debug().Err(readErr).Str("user", p.userID).Msg("participant read closed")
			return
		}

		var env domain.Envelope
		if err := json.Unmarshal(data, &env); err != nil {
			log.Debug().Err(err).Str("user", p.userID).Msg("dropping malformed frame")
			continue
		}

		h.relay(ctx, rm, p, env)
	}
}

// relay turns one inbound participant event into its room-facing form and
// fans it out.
func (h *Hub) relay(ctx context.Context, rm *room, p *participant, env domain.Envelope) {
	switch env.Event {
	case domain.EventStroke:
		var out domain.StrokeOut
		if err := json.Unmarshal(env.Data, &out); err != nil {
			log.Debug().Err(err).Msg("dropping malformed stroke")
			return
		}
		h.fanOut(ctx, rm, p.userID, domain.EventStroke, domain.StrokeIn{
			UserID: p.userID,
			Stroke: out.Stroke,
		})

	case domain.EventCursorMove:
		var out domain.CursorOut
		if err := json.Unmarshal(env.Data, &out); err != nil {
			log.Debug().Err(err).Msg("dropping malformed cursor")
			return
		}
		h.fanOut(ctx, rm, p.userID, domain.EventCursorMove, domain.CursorIn{
			UserID: p.userID,
			X:      out.X,
			Y:      out.Y,
			Name:   p.userName,
		})

	default:
		log.Debug().Str("event", env.Event).Msg("ignoring unknown event")
	}
}

// fanOut broadcasts to local participants and, when bridged, to peer nodes.
func (h *Hub) fanOut(ctx context.Context, rm *room, senderID, event string, data any) {
	env, err := domain.NewEnvelope(event, data)
	if err != nil {
		log.Error().Err(err).Msg("encoding fan-out event")
		return
	}
	buf, err := json.Marshal(env)
	if err != nil {
		log.Error().Err(err).Msg("encoding fan-out frame")
		return
	}

	rm.broadcast(senderID, buf)

	if h.bridge != nil {
		if err := h.bridge.PublishFrame(ctx, rm.id, h.nodeID, buf); err != nil {
			log.Error().Err(err).Str("room", rm.id).Msg("bridge publish")
		}
	}
}

// join adds p to the room, creating it (and its bridge subscription) on
// first use.
func (h *Hub) join(roomID string, p *participant) *room {
	h.mu.Lock()
	rm, ok := h.rooms[roomID]
	if !ok {
		rm = newRoom(roomID)
		h.rooms[roomID] = rm
		h.subscribeBridge(rm)
	}
	h.mu.Unlock()

	rm.add(p)
	return rm
}

// leave announces the departure to the remaining participants and drops the
// room when it empties.
func (h *Hub) leave(rm *room, p *participant) {
	remaining := rm.remove(p.userID)
	// The request context is gone by now; the departure notice rides the
	// hub's lifetime instead.
	h.fanOut(h.ctx, rm, p.userID, domain.EventUserLeft, domain.UserLeftPayload{UserID: p.userID})

	if remaining == 0 {
		h.mu.Lock()
		// Re-check under the hub lock: someone may have joined meanwhile.
		if rm.size() == 0 {
			if rm.stopBridge != nil {
				rm.stopBridge()
			}
			delete(h.rooms, rm.id)
		}
		h.mu.Unlock()
	}

	log.Info().Str("room", rm.id).Str("user", p.userID).Msg("participant left")
}

// subscribeBridge replays frames published by peer nodes to this node's
// local participants. Caller holds the hub lock.
func (h *Hub) subscribeBridge(rm *room) {
	if h.bridge == nil {
		return
	}

	subCtx, cancel := context.WithCancel(h.ctx)
	rm.stopBridge = cancel

	frames, cleanup, err := h.bridge.Subscribe(subCtx, rm.id)
	if err != nil {
		cancel()
		rm.stopBridge = nil
		log.Error().Err(err).Str("room", rm.id).Msg("bridge subscribe; room is node-local only")
		return
	}

	go func() {
		defer cleanup()
		for f := range frames {
			if f.Node == h.nodeID {
				continue
			}
			rm.broadcast("", f.Payload)
		}
	}()
}

// Rooms returns a snapshot of live rooms, ordered by id.
func (h *Hub) Rooms() []domain.Room {
	h.mu.Lock()
	out := make([]domain.Room, 0, len(h.rooms))
	for _, rm := range h.rooms {
		out = append(out, rm.info())
	}
	h.mu.Unlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Room returns one live room by id.
func (h *Hub) Room(id string) (domain.Room, bool) {
	h.mu.Lock()
	rm, ok := h.rooms[id]
	h.mu.Unlock()
	if !ok {
		return domain.Room{}, false
	}
	return rm.info(), true
}

func readJoin(ctx context.Context, conn *websocket.Conn) (domain.JoinPayload, error) {
	_, data, err := conn.Read(ctx)
	if err != nil {
		return domain.JoinPayload{}, err
	}

	var env domain.Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return domain.JoinPayload{}, err
	}
	if env.Event != domain.EventJoin {
		return domain.JoinPayload{}, errExpectedJoin
	}

	var join domain.JoinPayload
	if err := json.Unmarshal(env.Data, &join); err != nil {
		return domain.JoinPayload{}, err
	}
	return join, nil
}

func writeEvent(ctx context.Context, conn *websocket.Conn, event string, data any) error {
	env, err := domain.NewEnvelope(event, data)
	if err != nil {
		return err
	}
	buf, err := json.Marshal(env)
	if err != nil {
		return err
	}
	return conn.Write(ctx, websocket.MessageText, buf)
}

// writePump drains a participant's queue onto their connection.
func writePump(ctx context.Context, conn *websocket.Conn, send <-chan []byte) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-send:
			if !ok {
				return
			}
			if err := conn.Write(ctx, websocket.MessageText, msg); err != nil {
				log.Debug().Err(err).Msg("websocket write")
				return
			}
		}
	}
}
