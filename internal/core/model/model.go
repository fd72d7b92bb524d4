// Package model defines core domain types shared across the tool.
package model

import "fmt"

// Point is a WGS84 coordinate in degrees.
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type BBox struct {
	X1, Y1 float64
	X2, Y2 float64
	SRID   string
}

// String representation matching wfs/wms bbox format
func (b BBox) String() string {
	return fmt.Sprintf("%.6f,%.6f,%.6f,%.6f,%s", b.X1, b.Y1, b.X2, b.Y2, b.SRID)
}

// Location is a decoded cell center rendered with 6 fractional digits.
type Location struct {
	Latitude  string `json:"latitude"`
	Longitude string `json:"longitude"`
}

// Cells is a sorted list of H3 index strings.
type Cells []string

type Op string

const (
	OpEncode Op = "encode"
	OpDecode Op = "decode"
)

// Result is one processed record as shown to the user.
type Result struct {
	Line      int    `json:"line,omitempty"`
	Op        Op     `json:"op"`
	Input     string `json:"input"`
	Code      string `json:"digipin,omitempty"`
	Latitude  string `json:"latitude,omitempty"`
	Longitude string `json:"longitude,omitempty"`
	H3        string `json:"h3,omitempty"`
	H3Parent  string `json:"h3_parent,omitempty"`
	Error     string `json:"error,omitempty"`
}

func (r Result) OK() bool { return r.Error == "" }
