package housing

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// timestampLayout is fixed-width so lexical order in SQLite matches time order.
const timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Repository defines the interface for house and room persistence.
type Repository interface {
	CreateHouse(ctx context.Context, house *House) error
	GetHouse(ctx context.Context, id string) (*House, error)
	ListHouses(ctx context.Context, limit int) ([]House, error)
	UpdateHouse(ctx context.Context, house *House) error
	DeleteHouse(ctx context.Context, id string) error
	HouseNameTaken(ctx context.Context, name, excludeID string) (bool, error)
	HouseSummary(ctx context.Context, id string) (*HouseSummary, error)

	// CreateRoom stores a room after verifying, in the same transaction,
	// that its house exists. Returns ErrHouseNotFound otherwise.
	CreateRoom(ctx context.Context, room *Room) error
	GetRoom(ctx context.Context, id string) (*Room, error)
	ListRooms(ctx context.Context, limit int) ([]Room, error)
	UpdateRoom(ctx context.Context, room *Room) error
	DeleteRoom(ctx context.Context, id string) error
	RoomNameTaken(ctx context.Context, name, excludeID string) (bool, error)
}

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// SQLiteRepository implements Repository using SQLite.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a new SQLite-backed housing repository.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// CreateHouse inserts a new house.
func (r *SQLiteRepository) CreateHouse(ctx context.Context, house *House) error {
	const query = `INSERT INTO houses (id, name, stories, climate, timestamp)
		VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		house.ID, house.Name, house.Stories, house.Climate, formatTime(house.Timestamp))
	if err != nil {
		if isUniqueConstraintError(err) {
			return fmt.Errorf("%w: %s", ErrHouseNameTaken, house.Name)
		}
		return fmt.Errorf("inserting house %s: %w", house.ID, err)
	}
	return nil
}

// GetHouse returns a single house with its room ids.
func (r *SQLiteRepository) GetHouse(ctx context.Context, id string) (*House, error) {
	const query = `SELECT id, name, stories, climate, timestamp FROM houses WHERE id = ?`
	h, err := scanHouse(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, err
	}
	if h.Rooms, err = roomIDs(ctx, r.db, h.ID); err != nil {
		return nil, err
	}
	return h, nil
}

// ListHouses returns up to limit houses, newest first.
func (r *SQLiteRepository) ListHouses(ctx context.Context, limit int) ([]House, error) {
	const query = `SELECT id, name, stories, climate, timestamp FROM houses
		ORDER BY timestamp DESC, rowid DESC LIMIT ?`
	houses, err := r.queryHouses(ctx, query, limit)
	if err != nil {
		return nil, err
	}

	// Rows are closed before loading room ids: the pool has one connection.
	for i := range houses {
		if houses[i].Rooms, err = roomIDs(ctx, r.db, houses[i].ID); err != nil {
			return nil, err
		}
	}
	return houses, nil
}

// UpdateHouse writes name, stories and climate for an existing house.
func (r *SQLiteRepository) UpdateHouse(ctx context.Context, house *House) error {
	const query = `UPDATE houses SET name = ?, stories = ?, climate = ? WHERE id = ?`
	result, err := r.db.ExecContext(ctx, query, house.Name, house.Stories, house.Climate, house.ID)
	if err != nil {
		if isUniqueConstraintError(err) {
			return fmt.Errorf("%w: %s", ErrHouseNameTaken, house.Name)
		}
		return fmt.Errorf("updating house %s: %w", house.ID, err)
	}
	n, _ := result.RowsAffected() //nolint:errcheck // SQLite always supports RowsAffected
	if n == 0 {
		return ErrHouseNotFound
	}
	return nil
}

// DeleteHouse removes a house row. Rooms that reference it are left in place.
func (r *SQLiteRepository) DeleteHouse(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM houses WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting house %s: %w", id, err)
	}
	n, _ := result.RowsAffected() //nolint:errcheck // SQLite always supports RowsAffected
	if n == 0 {
		return ErrHouseNotFound
	}
	return nil
}

// HouseNameTaken reports whether a house other than excludeID uses name.
func (r *SQLiteRepository) HouseNameTaken(ctx context.Context, name, excludeID string) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM houses WHERE name = ? AND id != ?", name, excludeID,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking house name: %w", err)
	}
	return count > 0, nil
}

// HouseSummary returns the event snapshot of a house.
func (r *SQLiteRepository) HouseSummary(ctx context.Context, id string) (*HouseSummary, error) {
	s := HouseSummary{ID: id, RoomIDs: []string{}}
	err := r.db.QueryRowContext(ctx, "SELECT name FROM houses WHERE id = ?", id).Scan(&s.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrHouseNotFound
		}
		return nil, fmt.Errorf("loading house %s: %w", id, err)
	}

	rows, err := r.db.QueryContext(ctx,
		"SELECT id, square_feet FROM rooms WHERE house_id = ? ORDER BY position", id)
	if err != nil {
		return nil, fmt.Errorf("querying rooms for house %s: %w", id, err)
	}
	defer rows.Close()

	for rows.Next() {
		var roomID string
		var sqft int
		if err := rows.Scan(&roomID, &sqft); err != nil {
			return nil, fmt.Errorf("scanning room row: %w", err)
		}
		s.RoomIDs = append(s.RoomIDs, roomID)
		s.SquareFeet += sqft
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating room rows: %w", err)
	}
	s.RoomCount = len(s.RoomIDs)
	return &s, nil
}

// CreateRoom inserts a room. The house check and the insert share one
// transaction, so no room row is written for a missing house.
func (r *SQLiteRepository) CreateRoom(ctx context.Context, room *Room) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // Rollback is no-op after commit

	if err := houseExists(ctx, tx, room.HouseID); err != nil {
		return err
	}
	pos, err := nextPosition(ctx, tx, room.HouseID)
	if err != nil {
		return err
	}

	const query = `INSERT INTO rooms (id, name, square_feet, flooring, timestamp, house_id, position)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err = tx.ExecContext(ctx, query,
		room.ID, room.Name, room.SquareFeet, room.Flooring,
		formatTime(room.Timestamp), room.HouseID, pos)
	if err != nil {
		if isUniqueConstraintError(err) {
			return fmt.Errorf("%w: %s", ErrRoomNameTaken, room.Name)
		}
		return fmt.Errorf("inserting room %s: %w", room.ID, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing room %s: %w", room.ID, err)
	}
	return nil
}

// GetRoom returns a single room by ID.
func (r *SQLiteRepository) GetRoom(ctx context.Context, id string) (*Room, error) {
	const query = `SELECT id, name, square_feet, flooring, timestamp, house_id
		FROM rooms WHERE id = ?`
	return scanRoom(r.db.QueryRowContext(ctx, query, id))
}

// ListRooms returns up to limit rooms in insertion order.
func (r *SQLiteRepository) ListRooms(ctx context.Context, limit int) ([]Room, error) {
	const query = `SELECT id, name, square_feet, flooring, timestamp, house_id
		FROM rooms ORDER BY rowid LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("querying rooms: %w", err)
	}
	defer rows.Close()

	var rooms []Room
	for rows.Next() {
		var rm Room
		var ts string
		if err := rows.Scan(&rm.ID, &rm.Name, &rm.SquareFeet, &rm.Flooring, &ts, &rm.HouseID); err != nil {
			return nil, fmt.Errorf("scanning room row: %w", err)
		}
		rm.Timestamp = parseTime(ts)
		rooms = append(rooms, rm)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating room rows: %w", err)
	}
	return rooms, nil
}

// UpdateRoom writes the mutable room fields. When the house changes, the
// new house is checked in the same transaction and the room is appended to
// the end of its room list.
func (r *SQLiteRepository) UpdateRoom(ctx context.Context, room *Room) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // Rollback is no-op after commit

	var currentHouse string
	var pos int64
	err = tx.QueryRowContext(ctx,
		"SELECT house_id, position FROM rooms WHERE id = ?", room.ID,
	).Scan(&currentHouse, &pos)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrRoomNotFound
		}
		return fmt.Errorf("loading room %s: %w", room.ID, err)
	}

	if room.HouseID != currentHouse {
		if err := houseExists(ctx, tx, room.HouseID); err != nil {
			return err
		}
		if pos, err = nextPosition(ctx, tx, room.HouseID); err != nil {
			return err
		}
	}

	const query = `UPDATE rooms SET name = ?, square_feet = ?, flooring = ?,
		house_id = ?, position = ? WHERE id = ?`
	if _, err := tx.ExecContext(ctx, query,
		room.Name, room.SquareFeet, room.Flooring, room.HouseID, pos, room.ID,
	); err != nil {
		if isUniqueConstraintError(err) {
			return fmt.Errorf("%w: %s", ErrRoomNameTaken, room.Name)
		}
		return fmt.Errorf("updating room %s: %w", room.ID, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing room %s: %w", room.ID, err)
	}
	return nil
}

// DeleteRoom removes a single room by ID.
func (r *SQLiteRepository) DeleteRoom(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM rooms WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting room %s: %w", id, err)
	}
	n, _ := result.RowsAffected() //nolint:errcheck // SQLite always supports RowsAffected
	if n == 0 {
		return ErrRoomNotFound
	}
	return nil
}

// RoomNameTaken reports whether a room other than excludeID uses name.
func (r *SQLiteRepository) RoomNameTaken(ctx context.Context, name, excludeID string) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM rooms WHERE name = ? AND id != ?", name, excludeID,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking room name: %w", err)
	}
	return count > 0, nil
}

func (r *SQLiteRepository) queryHouses(ctx context.Context, query string, args ...any) ([]House, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying houses: %w", err)
	}
	defer rows.Close()

	var houses []House
	for rows.Next() {
		var h House
		var ts string
		if err := rows.Scan(&h.ID, &h.Name, &h.Stories, &h.Climate, &ts); err != nil {
			return nil, fmt.Errorf("scanning house row: %w", err)
		}
		h.Timestamp = parseTime(ts)
		houses = append(houses, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating house rows: %w", err)
	}
	return houses, nil
}

// roomIDs returns the ids of rooms referencing houseID in attach order.
func roomIDs(ctx context.Context, q queryer, houseID string) ([]string, error) {
	rows, err := q.QueryContext(ctx,
		"SELECT id FROM rooms WHERE house_id = ? ORDER BY position", houseID)
	if err != nil {
		return nil, fmt.Errorf("querying rooms for house %s: %w", houseID, err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning room id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating room ids: %w", err)
	}
	return ids, nil
}

func houseExists(ctx context.Context, q queryer, id string) error {
	var one int
	err := q.QueryRowContext(ctx, "SELECT 1 FROM houses WHERE id = ?", id).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: %s", ErrHouseNotFound, id)
		}
		return fmt.Errorf("checking house %s: %w", id, err)
	}
	return nil
}

func nextPosition(ctx context.Context, q queryer, houseID string) (int64, error) {
	var pos int64
	err := q.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(position), 0) + 1 FROM rooms WHERE house_id = ?", houseID,
	).Scan(&pos)
	if err != nil {
		return 0, fmt.Errorf("allocating room position: %w", err)
	}
	return pos, nil
}

func scanHouse(row *sql.Row) (*House, error) {
	var h House
	var ts string
	if err := row.Scan(&h.ID, &h.Name, &h.Stories, &h.Climate, &ts); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrHouseNotFound
		}
		return nil, fmt.Errorf("scanning house: %w", err)
	}
	h.Timestamp = parseTime(ts)
	return &h, nil
}

func scanRoom(row *sql.Row) (*Room, error) {
	var rm Room
	var ts string
	if err := row.Scan(&rm.ID, &rm.Name, &rm.SquareFeet, &rm.Flooring, &ts, &rm.HouseID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("scanning room: %w", err)
	}
	rm.Timestamp = parseTime(ts)
	return &rm, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

// parseTime parses a stored timestamp. Zero time is returned on failure.
func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func isUniqueConstraintError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
