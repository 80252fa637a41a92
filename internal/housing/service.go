package housing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DefaultPageSize caps collection reads when no page size is configured.
const DefaultPageSize = 10

// Logger is the logging interface used by the Service.
// Compatible with logging.Logger and slog.Logger.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Service orchestrates house and room operations.
//
// It validates input, enforces name uniqueness, persists through the
// Repository and dispatches lifecycle events to every registered sink in
// registration order.
type Service struct {
	repo     Repository
	logger   Logger
	pageSize int
	sinks    []EventSink
	now      func() time.Time
}

// NewService creates a Service.
//
// Parameters:
//   - repo: persistence for houses and rooms
//   - logger: may be nil
//   - pageSize: collection cap; values < 1 use DefaultPageSize
//   - sinks: event consumers, called in order
func NewService(repo Repository, logger Logger, pageSize int, sinks ...EventSink) *Service {
	if logger == nil {
		logger = noopLogger{}
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return &Service{
		repo:     repo,
		logger:   logger,
		pageSize: pageSize,
		sinks:    sinks,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// AddSink registers an additional event sink. Not safe to call while
// requests are being served.
func (s *Service) AddSink(sink EventSink) {
	s.sinks = append(s.sinks, sink)
}

// PageSize returns the collection cap.
func (s *Service) PageSize() int {
	return s.pageSize
}

// CreateHouse validates and stores a new house with an empty room list.
// Names are stored without surrounding whitespace.
func (s *Service) CreateHouse(ctx context.Context, in HouseInput) (*House, error) {
	in = in.normalized()
	if err := ValidateNewHouse(in); err != nil {
		return nil, err
	}

	taken, err := s.repo.HouseNameTaken(ctx, *in.Name, "")
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("%w: %s", ErrHouseNameTaken, *in.Name)
	}

	house := &House{
		ID:        uuid.New().String(),
		Timestamp: s.now(),
		Rooms:     []string{},
	}
	in.applyTo(house)

	if err := s.repo.CreateHouse(ctx, house); err != nil {
		return nil, err
	}
	s.logger.Info("house created", "house_id", house.ID, "name", house.Name)
	return house, nil
}

// GetHouse returns a house by ID.
func (s *Service) GetHouse(ctx context.Context, id string) (*House, error) {
	return s.repo.GetHouse(ctx, id)
}

// ListHouses returns the most recent houses, capped at the page size.
func (s *Service) ListHouses(ctx context.Context) ([]House, error) {
	return s.repo.ListHouses(ctx, s.pageSize)
}

// UpdateHouse applies the supplied fields to an existing house.
// An empty input leaves the house unchanged.
func (s *Service) UpdateHouse(ctx context.Context, id string, in HouseInput) (*House, error) {
	in = in.normalized()
	house, err := s.repo.GetHouse(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.IsEmpty() {
		return house, nil
	}
	if err := ValidateHouseUpdate(in); err != nil {
		return nil, err
	}

	if in.Name != nil && *in.Name != house.Name {
		taken, err := s.repo.HouseNameTaken(ctx, *in.Name, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, fmt.Errorf("%w: %s", ErrHouseNameTaken, *in.Name)
		}
	}

	in.applyTo(house)
	if err := s.repo.UpdateHouse(ctx, house); err != nil {
		return nil, err
	}
	s.logger.Info("house updated", "house_id", house.ID)
	return house, nil
}

// DeleteHouse removes a house. Its rooms keep their house id; removing one
// later finds the house gone, which is logged and otherwise ignored.
func (s *Service) DeleteHouse(ctx context.Context, id string) error {
	summary, err := s.repo.HouseSummary(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteHouse(ctx, id); err != nil {
		return err
	}

	s.logger.Info("house deleted", "house_id", id, "rooms", summary.RoomCount)
	s.emit(ctx, Event{Type: EventHouseDeleted, HouseID: id, House: summary, OccurredAt: s.now()})
	return nil
}

// CreateRoom validates and stores a new room in an existing house.
//
// Checks run in order: required fields, name uniqueness, then house
// existence. A missing house returns ErrHouseNotFound and stores nothing.
func (s *Service) CreateRoom(ctx context.Context, in RoomInput) (*Room, error) {
	in = in.normalized()
	if err := ValidateNewRoom(in); err != nil {
		return nil, err
	}

	taken, err := s.repo.RoomNameTaken(ctx, *in.Name, "")
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("%w: %s", ErrRoomNameTaken, *in.Name)
	}

	room := &Room{
		ID:        uuid.New().String(),
		Timestamp: s.now(),
	}
	in.applyTo(room)

	if err := s.repo.CreateRoom(ctx, room); err != nil {
		return nil, err
	}
	s.logger.Info("room created", "room_id", room.ID, "house_id", room.HouseID)
	s.roomAttached(ctx, room)
	return room, nil
}

// GetRoom returns a room by ID.
func (s *Service) GetRoom(ctx context.Context, id string) (*Room, error) {
	return s.repo.GetRoom(ctx, id)
}

// ListRooms returns rooms in insertion order, capped at the page size.
func (s *Service) ListRooms(ctx context.Context) ([]Room, error) {
	return s.repo.ListRooms(ctx, s.pageSize)
}

// UpdateRoom applies the supplied fields to an existing room.
// Changing the house moves the room: the old house's room list loses it
// and the new house's room list gains it.
func (s *Service) UpdateRoom(ctx context.Context, id string, in RoomInput) (*Room, error) {
	in = in.normalized()
	room, err := s.repo.GetRoom(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.IsEmpty() {
		return room, nil
	}
	if err := ValidateRoomUpdate(in); err != nil {
		return nil, err
	}

	if in.Name != nil && *in.Name != room.Name {
		taken, err := s.repo.RoomNameTaken(ctx, *in.Name, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, fmt.Errorf("%w: %s", ErrRoomNameTaken, *in.Name)
		}
	}

	previous := *room
	in.applyTo(room)
	if err := s.repo.UpdateRoom(ctx, room); err != nil {
		return nil, err
	}
	s.logger.Info("room updated", "room_id", room.ID, "house_id", room.HouseID)

	if room.HouseID != previous.HouseID {
		s.roomDetached(ctx, &previous)
		s.roomAttached(ctx, room)
	} else {
		s.notifyHouse(ctx, EventRoomUpdated, room)
	}
	return room, nil
}

// DeleteRoom removes a room and detaches it from its house.
func (s *Service) DeleteRoom(ctx context.Context, id string) error {
	room, err := s.repo.GetRoom(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteRoom(ctx, id); err != nil {
		return err
	}
	s.logger.Info("room deleted", "room_id", id, "house_id", room.HouseID)
	s.roomDetached(ctx, room)
	return nil
}

// roomAttached runs after a room row referencing its house is committed.
func (s *Service) roomAttached(ctx context.Context, room *Room) {
	s.notifyHouse(ctx, EventRoomCreated, room)
}

// roomDetached runs after a room stops referencing a house. A house that
// has disappeared in the meantime is logged and otherwise ignored; the
// removal itself is never rolled back.
func (s *Service) roomDetached(ctx context.Context, room *Room) {
	s.notifyHouse(ctx, EventRoomRemoved, room)
}

func (s *Service) notifyHouse(ctx context.Context, typ EventType, room *Room) {
	summary, err := s.repo.HouseSummary(ctx, room.HouseID)
	if err != nil {
		if errors.Is(err, ErrHouseNotFound) {
			s.logger.Warn("house missing for room event",
				"event", string(typ), "room_id", room.ID, "house_id", room.HouseID)
			return
		}
		s.logger.Error("loading house for room event",
			"event", string(typ), "room_id", room.ID, "house_id", room.HouseID, "error", err)
		return
	}

	s.emit(ctx, Event{
		Type:       typ,
		HouseID:    room.HouseID,
		RoomID:     room.ID,
		House:      summary,
		OccurredAt: s.now(),
	})
}

func (s *Service) emit(ctx context.Context, event Event) {
	for _, sink := range s.sinks {
		if err := sink.HandleEvent(ctx, event); err != nil {
			s.logger.Error("event sink failed",
				"event", string(event.Type), "house_id", event.HouseID, "error", err)
		}
	}
}
