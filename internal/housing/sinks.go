package housing

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// Publisher publishes raw payloads to a message bus topic.
// Satisfied by *mqtt.Client.
type Publisher interface {
	Publish(topic string, payload []byte, qos byte, retained bool) error
}

// Broadcaster delivers a payload to every subscriber of a channel.
// Satisfied by the WebSocket hub.
type Broadcaster interface {
	Broadcast(channel string, payload any)
}

// InventoryWriter records a house's room count and floor area.
// Satisfied by *influxdb.Client.
type InventoryWriter interface {
	WriteHouseInventory(houseID string, rooms, squareFeet int, at time.Time)
}

// NewPublishSink returns a sink that publishes each event as JSON to
// topicFor(event.Type). Events are not retained.
func NewPublishSink(pub Publisher, topicFor func(EventType) string, qos byte) EventSink {
	return EventSinkFunc(func(_ context.Context, event Event) error {
		payload, err := json.Marshal(event)
		if err != nil {
			return fmt.Errorf("marshalling %s event: %w", event.Type, err)
		}
		return pub.Publish(topicFor(event.Type), payload, qos, false)
	})
}

// NewBroadcastSink returns a sink that broadcasts each event on a channel
// named after its type.
func NewBroadcastSink(b Broadcaster) EventSink {
	return EventSinkFunc(func(_ context.Context, event Event) error {
		b.Broadcast(string(event.Type), event)
		return nil
	})
}

// NewInventorySink returns a sink that records the house snapshot of each
// event. A deleted house is recorded as empty.
func NewInventorySink(w InventoryWriter) EventSink {
	return EventSinkFunc(func(_ context.Context, event Event) error {
		if event.House == nil {
			return nil
		}
		rooms, sqft := event.House.RoomCount, event.House.SquareFeet
		if event.Type == EventHouseDeleted {
			rooms, sqft = 0, 0
		}
		w.WriteHouseInventory(event.HouseID, rooms, sqft, event.OccurredAt)
		return nil
	})
}
