package housing

import (
	"context"
	"time"
)

// EventType identifies a house or room lifecycle event.
type EventType string

const (
	// EventRoomCreated is emitted after a room is attached to a house,
	// either by creation or by moving it from another house.
	EventRoomCreated EventType = "room.created"

	// EventRoomRemoved is emitted after a room is detached from a house,
	// either by deletion or by moving it to another house.
	EventRoomRemoved EventType = "room.removed"

	// EventRoomUpdated is emitted after a room changes without moving.
	EventRoomUpdated EventType = "room.updated"

	// EventHouseDeleted is emitted after a house and its rooms are deleted.
	EventHouseDeleted EventType = "house.deleted"
)

// EventTypes lists every event type in a stable order.
func EventTypes() []EventType {
	return []EventType{EventRoomCreated, EventRoomRemoved, EventRoomUpdated, EventHouseDeleted}
}

// Event describes a change to the house/room inventory.
type Event struct {
	Type       EventType     `json:"type"`
	HouseID    string        `json:"house_id"`
	RoomID     string        `json:"room_id,omitempty"`
	House      *HouseSummary `json:"house,omitempty"`
	OccurredAt time.Time     `json:"occurred_at"`
}

// EventSink consumes lifecycle events.
//
// HandleEvent is called synchronously from the Service before the
// triggering operation returns. Errors are logged by the Service and
// never reach the HTTP caller.
type EventSink interface {
	HandleEvent(ctx context.Context, event Event) error
}

// EventSinkFunc adapts a function to EventSink.
type EventSinkFunc func(ctx context.Context, event Event) error

// HandleEvent calls f(ctx, event).
func (f EventSinkFunc) HandleEvent(ctx context.Context, event Event) error {
	return f(ctx, event)
}
