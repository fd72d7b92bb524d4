// Package mapper converts between coordinates and grid cell identifiers.
package mapper

import (
	"github.com/mohammed-shakir/digipin/internal/core/model"
)

type Interface interface {
	Encode(p model.Point) (string, error)
	// Decode returns the cell center both rounded for display and as numbers.
	Decode(code string) (model.Location, model.Point, error)
	CellBBox(code string) (model.BBox, error)
}
