package digipin

// Box is a latitude/longitude rectangle in degrees.
type Box struct {
	MinLat, MaxLat float64
	MinLon, MaxLon float64
}

// Center returns the midpoint of the box.
func (b Box) Center() (lat, lon float64) {
	return (b.MinLat + b.MaxLat) / 2, (b.MinLon + b.MaxLon) / 2
}

// Contains reports whether (lat, lon) lies inside b, edges included.
func (b Box) Contains(lat, lon float64) bool {
	return b.MinLat <= lat && lat <= b.MaxLat && b.MinLon <= lon && lon <= b.MaxLon
}

const (
	// Levels is the number of subdivision steps, one symbol each.
	Levels = 10
	// Separator splits the displayed code into 3-3-4 blocks.
	Separator = '-'

	gridSize = 4
)

var bounds = Box{MinLat: 2.5, MaxLat: 38.5, MinLon: 63.5, MaxLon: 99.5}

// row 0 is the northernmost band
var grid = [gridSize][gridSize]byte{
	{'F', 'C', '9', '8'},
	{'J', '3', '2', '7'},
	{'K', '4', '5', '6'},
	{'L', 'M', 'P', 'T'},
}

type cellIndex struct{ row, col int }

var inverse = buildInverse()

func buildInverse() map[rune]cellIndex {
	m := make(map[rune]cellIndex, gridSize*gridSize)
	for r := range gridSize {
		for c := range gridSize {
			sym := rune(grid[r][c])
			if _, dup := m[sym]; dup {
				panic("digipin: duplicate grid symbol " + string(sym))
			}
			m[sym] = cellIndex{row: r, col: c}
		}
	}
	return m
}

// Bounds returns the addressable region.
func Bounds() Box { return bounds }

// Alphabet returns the 16 symbols in grid order.
func Alphabet() string {
	b := make([]byte, 0, gridSize*gridSize)
	for r := range gridSize {
		b = append(b, grid[r][:]...)
	}
	return string(b)
}

// IsSymbol reports whether r belongs to the alphabet.
func IsSymbol(r rune) bool {
	_, ok := inverse[r]
	return ok
}
