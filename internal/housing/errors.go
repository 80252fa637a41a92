package housing

import "errors"

var (
	// ErrHouseNotFound is returned when a house ID does not exist.
	ErrHouseNotFound = errors.New("house not found")

	// ErrRoomNotFound is returned when a room ID does not exist.
	ErrRoomNotFound = errors.New("room not found")

	// ErrHouseNameTaken is returned when another house already uses the name.
	ErrHouseNameTaken = errors.New("house name already exists")

	// ErrRoomNameTaken is returned when another room already uses the name.
	ErrRoomNameTaken = errors.New("room name already exists")

	// ErrMissingField is returned when a required field is absent.
	ErrMissingField = errors.New("missing required field")

	// ErrInvalidField is returned when a field is present but has an invalid value.
	ErrInvalidField = errors.New("invalid field value")
)
