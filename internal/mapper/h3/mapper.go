// Package h3mapper cross references DIGIPIN geometry with H3 cells.
package h3mapper

import (
	"errors"
	"fmt"
	"sort"

	h3 "github.com/uber/h3-go/v4"

	"github.com/mohammed-shakir/digipin/internal/core/model"
)

type Mapper struct{}

func New() *Mapper { return &Mapper{} }

// CellForPoint returns the H3 index containing p.
func (m *Mapper) CellForPoint(p model.Point, res int) (string, error) {
	if err := validateRes(res); err != nil {
		return "", err
	}
	c, err := h3.LatLngToCell(h3.LatLng{Lat: p.Lat, Lng: p.Lon}, res)
	if err != nil {
		return "", fmt.Errorf("h3 cell for %.6f,%.6f: %w", p.Lat, p.Lon, err)
	}
	return c.String(), nil
}

// CellsForBBox returns the sorted H3 cells whose centers fall in bb. A box
// smaller than one cell at res yields the cell containing its center.
func (m *Mapper) CellsForBBox(bb model.BBox, res int) (model.Cells, error) {
	if err := validateRes(res); err != nil {
		return nil, err
	}
	if bb.X2 <= bb.X1 || bb.Y2 <= bb.Y1 {
		return nil, errors.New("degenerate bbox")
	}
	// rectangular loop; h3 v4 wants degrees
	outer := h3.GeoLoop{
		{Lat: bb.Y1, Lng: bb.X1},
		{Lat: bb.Y1, Lng: bb.X2},
		{Lat: bb.Y2, Lng: bb.X2},
		{Lat: bb.Y2, Lng: bb.X1},
	}
	cells, err := polyfill(outer, res)
	if err != nil {
		return nil, err
	}
	if len(cells) == 0 {
		c, err := m.CellForPoint(model.Point{Lat: (bb.Y1 + bb.Y2) / 2, Lon: (bb.X1 + bb.X2) / 2}, res)
		if err != nil {
			return nil, err
		}
		cells = model.Cells{c}
	}
	return cells, nil
}

func validateRes(res int) error {
	if res < 0 || res > 15 {
		return fmt.Errorf("invalid H3 resolution %d (must be 0..15)", res)
	}
	return nil
}

// polyfill computes unique cells and returns them sorted for determinism.
func polyfill(outer h3.GeoLoop, res int) (model.Cells, error) {
	indexes, err := h3.PolygonToCells(h3.GeoPolygon{GeoLoop: outer}, res)
	if err != nil {
		return nil, fmt.Errorf("h3 polyfill: %w", err)
	}

	out := make([]string, 0, len(indexes))
	seen := make(map[string]struct{}, len(indexes))
	for _, idx := range indexes {
		s := idx.String()
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	sort.Strings(out)
	return out, nil
}
