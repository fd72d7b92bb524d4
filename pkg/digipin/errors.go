package digipin

import (
	"errors"
	"fmt"
)

// Sentinels matched by the typed errors below through errors.Is.
var (
	// ErrOutOfRange matches any *OutOfRangeError.
	ErrOutOfRange = errors.New("coordinate out of range")
	// ErrInvalidLength matches any *InvalidLengthError.
	ErrInvalidLength = errors.New("invalid digipin length")
	// ErrInvalidCharacter matches any *InvalidCharacterError.
	ErrInvalidCharacter = errors.New("invalid digipin character")
)

// Axis names the coordinate an OutOfRangeError refers to.
type Axis string

const (
	Latitude  Axis = "latitude"
	Longitude Axis = "longitude"
)

// OutOfRangeError is returned by Encode when a coordinate falls outside Bounds.
type OutOfRangeError struct {
	Axis  Axis
	Value float64
	Min   float64
	Max   float64
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("%s %v out of range (%v to %v)", e.Axis, e.Value, e.Min, e.Max)
}

func (e *OutOfRangeError) Is(target error) bool { return target == ErrOutOfRange }

// InvalidLengthError is returned by Decode when the code, separators removed,
// does not hold exactly Levels characters.
type InvalidLengthError struct {
	Length int
}

func (e *InvalidLengthError) Error() string {
	return fmt.Sprintf("invalid digipin: expected %d characters, got %d (after removing separators)", Levels, e.Length)
}

func (e *InvalidLengthError) Is(target error) bool { return target == ErrInvalidLength }

// InvalidCharacterError names the first character outside the alphabet.
// Position is 1-based and counts characters of the separator-free code.
type InvalidCharacterError struct {
	Char     rune
	Position int
}

func (e *InvalidCharacterError) Error() string {
	return fmt.Sprintf("invalid character %q in digipin at position %d", e.Char, e.Position)
}

func (e *InvalidCharacterError) Is(target error) bool { return target == ErrInvalidCharacter }
