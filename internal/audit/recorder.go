package audit

import (
	"context"
	"strings"

	"github.com/nerrad567/homestead/internal/housing"
)

// SourceAPI marks entries produced by HTTP-driven changes.
const SourceAPI = "api"

// Recorder is a housing.EventSink that writes one audit entry per event.
type Recorder struct {
	repo Repository
}

// NewRecorder creates a Recorder backed by repo.
func NewRecorder(repo Repository) *Recorder {
	return &Recorder{repo: repo}
}

// HandleEvent persists the event. Room events are logged against the room,
// house events against the house.
func (r *Recorder) HandleEvent(ctx context.Context, event housing.Event) error {
	entry := &AuditLog{
		Action:    string(event.Type),
		Source:    SourceAPI,
		CreatedAt: event.OccurredAt,
		Details:   map[string]any{"house_id": event.HouseID},
	}

	if strings.HasPrefix(string(event.Type), "room.") {
		entry.EntityType = "room"
		entry.EntityID = event.RoomID
	} else {
		entry.EntityType = "house"
		entry.EntityID = event.HouseID
	}

	if event.House != nil {
		entry.Details["house_name"] = event.House.Name
		entry.Details["rooms"] = event.House.RoomIDs
		entry.Details["room_count"] = event.House.RoomCount
		entry.Details["square_feet"] = event.House.SquareFeet
	}

	return r.repo.Create(ctx, entry)
}
