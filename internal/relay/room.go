package relay

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/scrawlhq/scrawl/internal/domain"
)

// sendBuffer is the per-participant outbound queue depth. A participant that
// cannot drain this many frames starts losing telemetry rather than stalling
// the room.
const sendBuffer = 64

type participant struct {
	userID   string
	userName string
	send     chan []byte
}

// room is the live fan-out group for one whiteboard session. The relay keeps
// no stroke history: a late joiner observes only events sent after they
// arrived.
type room struct {
	id        string
	createdAt time.Time

	mu           sync.Mutex
	participants map[string]*participant

	// cancels the bridge subscription when the room empties; nil standalone.
	stopBridge func()
}

func newRoom(id string) *room {
	return &room{
		id:           id,
		createdAt:    time.Now(),
		participants: make(map[string]*participant),
	}
}

func (r *room) add(p *participant) {
	r.mu.Lock()
	r.participants[p.userID] = p
	r.mu.Unlock()
}

// remove drops a participant and reports how many remain.
func (r *room) remove(userID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.participants[userID]; ok {
		delete(r.participants, userID)
		close(p.send)
	}
	return len(r.participants)
}

// broadcast queues payload for every participant except exclude. Queues that
// are full are skipped: a slow consumer loses frames, the room never blocks.
func (r *room) broadcast(exclude string, payload []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, p := range r.participants {
		if id == exclude {
			continue
		}
		select {
		case p.send <- payload:
		default:
			log.Debug().Str("room", r.id).Str("user", id).Msg("dropping frame for slow participant")
		}
	}
}

func (r *room) size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.participants)
}

func (r *room) info() domain.Room {
	return domain.Room{
		ID:           r.id,
		Participants: r.size(),
		CreatedAt:    r.createdAt,
	}
}
