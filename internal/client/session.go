package client

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/scrawlhq/scrawl/internal/board"
	"github.com/scrawlhq/scrawl/internal/domain"
)

// DefaultCursorInterval is the cadence at which the local pointer position is
// republished to the room.
const DefaultCursorInterval = 50 * time.Millisecond

// Option configures a Session.
type Option func(*Session)

// WithCursorInterval overrides the cursor broadcast cadence.
func WithCursorInterval(d time.Duration) Option {
	return func(s *Session) { s.cursorInterval = d }
}

// Session is one live room membership. It owns the board store, the gesture
// recorder, and the transport for the lifetime of the room visit; no two
// rooms are live concurrently in one client.
//
// Inbound events are folded into the store in arrival order by a single
// goroutine. Local gesture calls come from the host's input thread. The
// store serializes the two.
type Session struct {
	roomID   string
	userName string
	userID   string

	store     *board.Store
	recorder  *board.Recorder
	transport Transport

	cursorInterval time.Duration

	mu      sync.Mutex
	pointer domain.Point

	cancel context.CancelFunc
	done   chan struct{}
}

// Join announces the local participant to the room and starts the sync and
// cursor-broadcast loops. It blocks until the relay assigns this session its
// user identity or ctx expires. Events arriving before the identity are
// folded, not dropped.
func Join(ctx context.Context, transport Transport, roomID, userName string, opts ...Option) (*Session, error) {
	if roomID == "" {
		roomID = domain.DefaultRoomID
	}

	s := &Session{
		roomID:         roomID,
		userName:       userName,
		store:          board.NewStore(),
		recorder:       board.NewRecorder(),
		transport:      transport,
		cursorInterval: DefaultCursorInterval,
		done:           make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := transport.Emit(ctx, domain.EventJoin, domain.JoinPayload{RoomID: roomID, UserName: userName}); err != nil {
		return nil, err
	}

	if err := s.awaitIdentity(ctx); err != nil {
		return nil, err
	}

	runCtx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	go s.run(runCtx)
	go s.broadcastCursor(runCtx)

	log.Info().Str("room", roomID).Str("user", s.userID).Msg("joined room")
	return s, nil
}

func (s *Session) awaitIdentity(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case env, ok := <-s.transport.Events():
			if !ok {
				return domain.ErrNotConnected
			}
			if env.Event != domain.EventJoined {
				s.fold(env)
				continue
			}
			var joined domain.JoinedPayload
			if err := json.Unmarshal(env.Data, &joined); err != nil {
				return err
			}
			s.userID = joined.UserID
			return nil
		}
	}
}

// run folds inbound room events into the store until the transport closes or
// the session is torn down.
func (s *Session) run(ctx context.Context) {
	defer close(s.done)

	for {
		select {
		case <-ctx.Done():
			return
		case env, ok := <-s.transport.Events():
			if !ok {
				log.Info().Str("room", s.roomID).Msg("room channel closed")
				return
			}
			s.fold(env)
		}
	}
}

// fold applies one remote event. Malformed payloads degrade to no-ops; no
// event is an error from the board's point of view.
func (s *Session) fold(env domain.Envelope) {
	switch env.Event {
	case domain.EventStroke:
		var in domain.StrokeIn
		if err := json.Unmarshal(env.Data, &in); err != nil {
			log.Debug().Err(err).Msg("dropping malformed stroke event")
			return
		}
		in.Stroke.UserID = in.UserID
		s.store.AddStroke(in.Stroke)

	case domain.EventCursorMove:
		var in domain.CursorIn
		if err := json.Unmarshal(env.Data, &in); err != nil {
			log.Debug().Err(err).Msg("dropping malformed cursor event")
			return
		}
		s.store.UpdateCursor(in.UserID, domain.Cursor{
			X:     in.X,
			Y:     in.Y,
			Color: domain.DeriveUserColor(in.UserID),
			Name:  in.Name,
		})

	case domain.EventUserLeft:
		var in domain.UserLeftPayload
		if err := json.Unmarshal(env.Data, &in); err != nil {
			log.Debug().Err(err).Msg("dropping malformed user-left event")
			return
		}
		// Leave is an overwrite with a zeroed cursor, not a removal.
		s.store.UpdateCursor(in.UserID, domain.Cursor{})

	default:
		log.Debug().Str("event", env.Event).Msg("ignoring unknown event")
	}
}

// broadcastCursor republishes the last sampled pointer position on a fixed
// interval, independent of draw state. Samples are silently dropped while
// the transport is down.
func (s *Session) broadcastCursor(ctx context.Context) {
	ticker := time.NewTicker(s.cursorInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !s.transport.Connected() {
				continue
			}
			s.mu.Lock()
			p := s.pointer
			s.mu.Unlock()

			err := s.transport.Emit(ctx, domain.EventCursorMove, domain.CursorOut{
				RoomID: s.roomID,
				X:      p.X,
				Y:      p.Y,
			})
			if err != nil {
				log.Debug().Err(err).Msg("cursor sample dropped")
			}
		}
	}
}

// PointerDown starts a draw gesture at the canvas-local point p.
func (s *Session) PointerDown(p domain.Point) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pointer = p
	s.recorder.Begin(p)
}

// PointerMove records a pointer sample and extends the in-progress gesture,
// if any.
func (s *Session) PointerMove(p domain.Point) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pointer = p
	s.recorder.Extend(p)
}

// PointerUp completes the gesture. The finished stroke enters the local
// store first and is then published to the room; if the transport is down
// the stroke stays local-only and is not retried.
func (s *Session) PointerUp() {
	color, width := s.store.Tool()

	s.mu.Lock()
	stroke, ok := s.recorder.End(s.userID, color, width)
	s.mu.Unlock()
	if !ok {
		return
	}

	s.store.AddStroke(stroke)

	err := s.transport.Emit(context.Background(), domain.EventStroke, domain.StrokeOut{
		RoomID: s.roomID,
		Stroke: stroke,
	})
	if err != nil {
		log.Debug().Err(err).Str("stroke", stroke.ID).Msg("stroke not delivered to room")
	}
}

// PointerLeave cancels the in-progress gesture; captured points are
// discarded, not partially committed.
func (s *Session) PointerLeave() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recorder.Cancel()
}

// Store exposes the session's board state for renderers and toolbars.
func (s *Session) Store() *board.Store {
	return s.store
}

// UserID returns the relay-assigned transport-session identity.
func (s *Session) UserID() string {
	return s.userID
}

// RoomID returns the joined room token.
func (s *Session) RoomID() string {
	return s.roomID
}

// Close tears the room down: stops the cursor broadcaster, the fold loop,
// and the transport connection.
func (s *Session) Close() error {
	s.cancel()
	err := s.transport.Close()
	<-s.done
	return err
}
