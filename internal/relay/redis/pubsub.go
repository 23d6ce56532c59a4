// Package redis bridges room fan-out across relay nodes. Each node publishes
// the frames it re-broadcasts locally onto a per-room channel; peers replay
// them to their own participants. A single-node relay runs without it.
package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Frame is the cross-node message: the originating node tags its own frames
// so it can skip the echo when they come back around.
type Frame struct {
	Node    string          `json:"node"`
	Payload json.RawMessage `json:"payload"`
}

type PubSub struct {
	client *redis.Client
}

func New(ctx context.Context, addr, password string, db int) (*PubSub, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis.New: ping: %w", err)
	}

	return &PubSub{client: client}, nil
}

func (ps *PubSub) Close() error {
	if err := ps.client.Close(); err != nil {
		return fmt.Errorf("redis.PubSub.Close: %w", err)
	}
	return nil
}

// PublishFrame tags payload with the publishing node and sends it to the
// room's channel.
func (ps *PubSub) PublishFrame(ctx context.Context, roomID, node string, payload []byte) error {
	buf, err := json.Marshal(Frame{Node: node, Payload: payload})
	if err != nil {
		return fmt.Errorf("redis.PubSub.PublishFrame: %w", err)
	}
	if err := ps.client.Publish(ctx, RoomChannel(roomID), buf).Err(); err != nil {
		return fmt.Errorf("redis.PubSub.PublishFrame: %w", err)
	}
	return nil
}

// Subscribe streams frames for one room until ctx is cancelled. The returned
// cleanup must be called when the room empties.
func (ps *PubSub) Subscribe(ctx context.Context, roomID string) (<-chan Frame, func(), error) {
	sub := ps.client.Subscribe(ctx, RoomChannel(roomID))

	// Wait for subscription confirmation.
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, nil, fmt.Errorf("redis.PubSub.Subscribe: receive confirmation: %w", err)
	}

	out := make(chan Frame, sendBufferHint)
	redisCh := sub.Channel()

	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-redisCh:
				if !ok {
					return
				}
				var f Frame
				if err := json.Unmarshal([]byte(msg.Payload), &f); err != nil {
					continue
				}
				select {
				case out <- f:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	cleanup := func() {
		_ = sub.Close()
	}

	return out, cleanup, nil
}

const sendBufferHint = 64

// RoomChannel returns the pub/sub channel name for a room.
func RoomChannel(roomID string) string {
	return "scrawl:room:" + roomID
}
