// Package digipinmapper adapts the DIGIPIN codec to the model types.
package digipinmapper

import (
	"strconv"

	"github.com/mohammed-shakir/digipin/internal/core/model"
	"github.com/mohammed-shakir/digipin/pkg/digipin"
)

const srid = "EPSG:4326"

type Mapper struct{}

func New() *Mapper { return &Mapper{} }

func (m *Mapper) Encode(p model.Point) (string, error) {
	return digipin.Encode(p.Lat, p.Lon)
}

func (m *Mapper) Decode(code string) (model.Location, model.Point, error) {
	lat, lon, err := digipin.DecodePoint(code)
	if err != nil {
		return model.Location{}, model.Point{}, err
	}
	loc := model.Location{
		Latitude:  strconv.FormatFloat(lat, 'f', 6, 64),
		Longitude: strconv.FormatFloat(lon, 'f', 6, 64),
	}
	return loc, model.Point{Lat: lat, Lon: lon}, nil
}

// CellBBox returns the cell as a bbox with X = longitude and Y = latitude.
func (m *Mapper) CellBBox(code string) (model.BBox, error) {
	b, err := digipin.CellBounds(code)
	if err != nil {
		return model.BBox{}, err
	}
	return model.BBox{X1: b.MinLon, Y1: b.MinLat, X2: b.MaxLon, Y2: b.MaxLat, SRID: srid}, nil
}
