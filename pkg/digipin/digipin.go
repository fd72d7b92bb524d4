// Package digipin encodes coordinates inside the Indian postal bounding box
// into 10-symbol DIGIPIN codes by recursive 4x4 subdivision, and decodes codes
// back to the center of the addressed cell.
//
// All package state is immutable; every function is safe for concurrent use.
package digipin

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// Location is a decoded cell center, each value rendered with 6 fractional digits.
type Location struct {
	Latitude  string `json:"latitude"`
	Longitude string `json:"longitude"`
}

// Encode returns the DIGIPIN of (lat, lon) formatted as XXX-XXX-XXXX.
func Encode(lat, lon float64) (string, error) {
	if !(bounds.MinLat <= lat && lat <= bounds.MaxLat) {
		return "", &OutOfRangeError{Axis: Latitude, Value: lat, Min: bounds.MinLat, Max: bounds.MaxLat}
	}
	if !(bounds.MinLon <= lon && lon <= bounds.MaxLon) {
		return "", &OutOfRangeError{Axis: Longitude, Value: lon, Min: bounds.MinLon, Max: bounds.MaxLon}
	}

	minLat, maxLat := bounds.MinLat, bounds.MaxLat
	minLon, maxLon := bounds.MinLon, bounds.MaxLon

	var b strings.Builder
	b.Grow(Levels + 2)
	for level := 1; level <= Levels; level++ {
		latDiv := (maxLat - minLat) / gridSize
		lonDiv := (maxLon - minLon) / gridSize

		// row 0 is the highest latitude band
		row := clampIndex(gridSize - 1 - int(math.Floor((lat-minLat)/latDiv)))
		col := clampIndex(int(math.Floor((lon - minLon) / lonDiv)))

		b.WriteByte(grid[row][col])
		if level == 3 || level == 6 {
			b.WriteByte(Separator)
		}

		// float64() around each product blocks FMA fusion so results match
		// across architectures.
		maxLat = minLat + float64(latDiv*float64(4-row))
		minLat = minLat + float64(latDiv*float64(3-row))

		minLon = minLon + float64(lonDiv*float64(col))
		maxLon = minLon + lonDiv
	}
	return b.String(), nil
}

// Decode returns the center of the cell addressed by code. Separators are
// ignored; any other character must belong to the alphabet.
func Decode(code string) (Location, error) {
	lat, lon, err := DecodePoint(code)
	if err != nil {
		return Location{}, err
	}
	return Location{
		Latitude:  strconv.FormatFloat(lat, 'f', 6, 64),
		Longitude: strconv.FormatFloat(lon, 'f', 6, 64),
	}, nil
}

// DecodePoint is Decode without rounding.
func DecodePoint(code string) (lat, lon float64, err error) {
	cell, err := CellBounds(code)
	if err != nil {
		return 0, 0, err
	}
	lat, lon = cell.Center()
	return lat, lon, nil
}

// CellBounds returns the level-10 cell addressed by code.
func CellBounds(code string) (Box, error) {
	path, err := parse(code)
	if err != nil {
		return Box{}, err
	}

	minLat, maxLat := bounds.MinLat, bounds.MaxLat
	minLon, maxLon := bounds.MinLon, bounds.MaxLon

	for _, idx := range path {
		latDiv := (maxLat - minLat) / gridSize
		lonDiv := (maxLon - minLon) / gridSize

		newMinLat := maxLat - float64(latDiv*float64(idx.row+1))
		newMaxLat := maxLat - float64(latDiv*float64(idx.row))

		newMinLon := minLon + float64(lonDiv*float64(idx.col))
		newMaxLon := minLon + float64(lonDiv*float64(idx.col+1))

		minLat, maxLat = newMinLat, newMaxLat
		minLon, maxLon = newMinLon, newMaxLon
	}
	return Box{MinLat: minLat, MaxLat: maxLat, MinLon: minLon, MaxLon: maxLon}, nil
}

// Format validates code and returns it in XXX-XXX-XXXX form.
func Format(code string) (string, error) {
	if _, err := parse(code); err != nil {
		return "", err
	}
	s := Strip(code)
	return s[:3] + string(Separator) + s[3:6] + string(Separator) + s[6:], nil
}

// Strip removes separators.
func Strip(code string) string {
	return strings.ReplaceAll(code, string(Separator), "")
}

// Normalize prepares user input for Decode: it drops separators and white
// space and upper-cases ASCII letters. Decode itself does none of this
// beyond removing separators.
func Normalize(code string) string {
	var b strings.Builder
	b.Grow(len(code))
	for _, r := range code {
		if r == Separator || unicode.IsSpace(r) {
			continue
		}
		if r >= 'a' && r <= 'z' {
			r -= 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}

func parse(code string) ([Levels]cellIndex, error) {
	var path [Levels]cellIndex
	cleaned := []rune(Strip(code))
	if len(cleaned) != Levels {
		return path, &InvalidLengthError{Length: len(cleaned)}
	}
	for i, r := range cleaned {
		idx, ok := inverse[r]
		if !ok {
			return path, &InvalidCharacterError{Char: r, Position: i + 1}
		}
		path[i] = idx
	}
	return path, nil
}

func clampIndex(i int) int {
	if i < 0 {
		return 0
	}
	if i > gridSize-1 {
		return gridSize - 1
	}
	return i
}
