package repository

import (
	"fmt"
	"strings"
)

// Direction is the sort order for entry listings.
type Direction string

const (
	// Ascending lists oldest (or lowest numbered) first.
	Ascending Direction = "asc"
	// Descending lists newest (or highest numbered) first.
	Descending Direction = "desc"
)

// ParseDirection converts user input ("asc", "ascending", "desc", "descending")
// into a Direction.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asc", "ascending":
		return Ascending, nil
	case "desc", "descending":
		return Descending, nil
	default:
		return "", fmt.Errorf("%w: direction %q must be asc or desc", ErrInvalidArgument, s)
	}
}

// Validate returns ErrInvalidArgument unless d is Ascending or Descending.
func (d Direction) Validate() error {
	if d != Ascending && d != Descending {
		return fmt.Errorf("%w: direction %q must be asc or desc", ErrInvalidArgument, string(d))
	}
	return nil
}

// less orders two keys according to the direction.
func (d Direction) less(a, b int64) bool {
	if d == Ascending {
		return a < b
	}
	return a > b
}
