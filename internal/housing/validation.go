package housing

import (
	"fmt"
	"strings"
)

const maxNameLength = 100

// ValidateNewHouse checks that every required house field is present and valid.
func ValidateNewHouse(in HouseInput) error {
	switch {
	case in.Name == nil || strings.TrimSpace(*in.Name) == "":
		return fmt.Errorf("%w: name", ErrMissingField)
	case in.Stories == nil:
		return fmt.Errorf("%w: stories", ErrMissingField)
	case in.Climate == nil || strings.TrimSpace(*in.Climate) == "":
		return fmt.Errorf("%w: climate", ErrMissingField)
	}
	return ValidateHouseUpdate(in)
}

// ValidateHouseUpdate checks the house fields that were supplied.
func ValidateHouseUpdate(in HouseInput) error {
	if in.Name != nil {
		if err := validateName(*in.Name); err != nil {
			return err
		}
	}
	if in.Stories != nil && *in.Stories < 0 {
		return fmt.Errorf("%w: stories cannot be negative", ErrInvalidField)
	}
	if in.Climate != nil && strings.TrimSpace(*in.Climate) == "" {
		return fmt.Errorf("%w: climate cannot be empty", ErrInvalidField)
	}
	return nil
}

// ValidateNewRoom checks that every required room field is present and valid.
func ValidateNewRoom(in RoomInput) error {
	switch {
	case in.Name == nil || strings.TrimSpace(*in.Name) == "":
		return fmt.Errorf("%w: name", ErrMissingField)
	case in.SquareFeet == nil:
		return fmt.Errorf("%w: squareFeet", ErrMissingField)
	case in.Flooring == nil || strings.TrimSpace(*in.Flooring) == "":
		return fmt.Errorf("%w: flooring", ErrMissingField)
	case in.House == nil || strings.TrimSpace(*in.House) == "":
		return fmt.Errorf("%w: house", ErrMissingField)
	}
	return ValidateRoomUpdate(in)
}

// ValidateRoomUpdate checks the room fields that were supplied.
func ValidateRoomUpdate(in RoomInput) error {
	if in.Name != nil {
		if err := validateName(*in.Name); err != nil {
			return err
		}
	}
	if in.SquareFeet != nil && *in.SquareFeet <= 0 {
		return fmt.Errorf("%w: squareFeet must be positive", ErrInvalidField)
	}
	if in.Flooring != nil && strings.TrimSpace(*in.Flooring) == "" {
		return fmt.Errorf("%w: flooring cannot be empty", ErrInvalidField)
	}
	if in.House != nil && strings.TrimSpace(*in.House) == "" {
		return fmt.Errorf("%w: house cannot be empty", ErrInvalidField)
	}
	return nil
}

func validateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidField)
	}
	if len(name) > maxNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidField, maxNameLength)
	}
	return nil
}
