// Package v1 exposes the relay's read-only REST surface: the live room
// directory that backs the room-list page. Rooms are never created here;
// joining a websocket is the only way a room comes to exist.
package v1

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/scrawlhq/scrawl/internal/domain"
)

// RoomDirectory is the hub's view of the live rooms on this node.
type RoomDirectory interface {
	Rooms() []domain.Room
	Room(id string) (domain.Room, bool)
}

type ListRoomsOutput struct {
	Body struct {
		Rooms []domain.Room `json:"rooms"`
	}
}

type GetRoomInput struct {
	RoomID string `path:"roomID" doc:"Room token"`
}

type GetRoomOutput struct {
	Body domain.Room
}

func RegisterRoomRoutes(api huma.API, dir RoomDirectory) {
	huma.Register(api, huma.Operation{
		OperationID: "list-rooms",
		Method:      http.MethodGet,
		Path:        "/rooms",
		Summary:     "List live rooms with participant counts",
		Tags:        []string{"Rooms"},
	}, func(_ context.Context, _ *struct{}) (*ListRoomsOutput, error) {
		out := &ListRoomsOutput{}
		out.Body.Rooms = dir.Rooms()
		if out.Body.Rooms == nil {
			out.Body.Rooms = []domain.Room{}
		}
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-room",
		Method:      http.MethodGet,
		Path:        "/rooms/{roomID}",
		Summary:     "Get one live room",
		Tags:        []string{"Rooms"},
	}, func(_ context.Context, input *GetRoomInput) (*GetRoomOutput, error) {
		room, ok := dir.Room(input.RoomID)
		if !ok {
			return nil, huma.Error404NotFound("room not found", domain.ErrRoomNotFound)
		}
		return &GetRoomOutput{Body: room}, nil
	})
}
