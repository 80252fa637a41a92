package housing

import (
	"strings"
	"time"
)

// House is a dwelling with a fixed number of stories and a climate label.
type House struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Stories   int       `json:"stories"`
	Climate   string    `json:"climate"`
	Timestamp time.Time `json:"timestamp"`

	// Rooms holds the ids of rooms referencing this house, in the order
	// they were attached. Never nil once loaded from the repository.
	Rooms []string `json:"rooms"`
}

// Room is a space inside exactly one House.
type Room struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	SquareFeet int       `json:"squareFeet"`
	Flooring   string    `json:"flooring"`
	Timestamp  time.Time `json:"timestamp"`
	HouseID    string    `json:"house"`
}

// HouseInput carries client-supplied house fields.
// A nil pointer means the field was not sent.
type HouseInput struct {
	Name    *string `json:"name"`
	Stories *int    `json:"stories"`
	Climate *string `json:"climate"`
}

// IsEmpty reports whether no field was supplied.
func (in HouseInput) IsEmpty() bool {
	return in.Name == nil && in.Stories == nil && in.Climate == nil
}

// normalized returns a copy with surrounding whitespace removed from the
// name, so " den " and "den" are the same name.
func (in HouseInput) normalized() HouseInput {
	in.Name = trimmed(in.Name)
	return in
}

// applyTo copies the supplied fields onto h.
func (in HouseInput) applyTo(h *House) {
	if in.Name != nil {
		h.Name = *in.Name
	}
	if in.Stories != nil {
		h.Stories = *in.Stories
	}
	if in.Climate != nil {
		h.Climate = *in.Climate
	}
}

// RoomInput carries client-supplied room fields.
// A nil pointer means the field was not sent.
type RoomInput struct {
	Name       *string `json:"name"`
	SquareFeet *int    `json:"squareFeet"`
	Flooring   *string `json:"flooring"`
	House      *string `json:"house"`
}

// IsEmpty reports whether no field was supplied.
func (in RoomInput) IsEmpty() bool {
	return in.Name == nil && in.SquareFeet == nil && in.Flooring == nil && in.House == nil
}

func (in RoomInput) normalized() RoomInput {
	in.Name = trimmed(in.Name)
	return in
}

// applyTo copies the supplied fields onto r.
func (in RoomInput) applyTo(r *Room) {
	if in.Name != nil {
		r.Name = *in.Name
	}
	if in.SquareFeet != nil {
		r.SquareFeet = *in.SquareFeet
	}
	if in.Flooring != nil {
		r.Flooring = *in.Flooring
	}
	if in.House != nil {
		r.HouseID = *in.House
	}
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}

// HouseSummary is the snapshot of a house carried by lifecycle events.
type HouseSummary struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	RoomIDs    []string `json:"rooms"`
	RoomCount  int      `json:"room_count"`
	SquareFeet int      `json:"square_feet"`
}
