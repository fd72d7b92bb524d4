package digipinmapper

import (
	"errors"
	"testing"

	"github.com/mohammed-shakir/digipin/internal/core/model"
	"github.com/mohammed-shakir/digipin/internal/mapper"
	"github.com/mohammed-shakir/digipin/pkg/digipin"
)

var _ mapper.Interface = (*Mapper)(nil)

func TestEncodeDecode_MatchesCore(t *testing.T) {
	m := New()
	code, err := m.Encode(model.Point{Lat: 28.622788, Lon: 77.213033})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if code != "39J-49L-L8T4" {
		t.Fatalf("code=%q", code)
	}

	loc, p, err := m.Decode(code)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	want, _ := digipin.Decode(code)
	if loc.Latitude != want.Latitude || loc.Longitude != want.Longitude {
		t.Fatalf("loc=%+v want %+v", loc, want)
	}
	lat, lon, _ := digipin.DecodePoint(code)
	if p.Lat != lat || p.Lon != lon {
		t.Fatalf("point=%+v want %v,%v", p, lat, lon)
	}
}

func TestCellBBox_AxisOrderAndSRID(t *testing.T) {
	bb, err := New().CellBBox("39J49LL8T4")
	if err != nil {
		t.Fatalf("CellBBox: %v", err)
	}
	if bb.SRID != "EPSG:4326" {
		t.Fatalf("srid=%q", bb.SRID)
	}
	if !(bb.X1 < 77.213033 && 77.213033 < bb.X2) || !(bb.Y1 < 28.622788 && 28.622788 < bb.Y2) {
		t.Fatalf("bbox %s does not contain source point", bb)
	}
}

func TestErrorsPassThrough(t *testing.T) {
	m := New()
	if _, err := m.Encode(model.Point{Lat: -1, Lon: 77}); !errors.Is(err, digipin.ErrOutOfRange) {
		t.Fatalf("Encode err=%v", err)
	}
	if _, _, err := m.Decode("1234567"); !errors.Is(err, digipin.ErrInvalidLength) {
		t.Fatalf("Decode err=%v", err)
	}
	if _, err := m.CellBBox("39J49LL8T!"); !errors.Is(err, digipin.ErrInvalidCharacter) {
		t.Fatalf("CellBBox err=%v", err)
	}
}
