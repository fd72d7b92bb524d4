package memo

import (
	"errors"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/mohammed-shakir/digipin/internal/core/model"
	"github.com/mohammed-shakir/digipin/internal/core/observability"
	digipinmapper "github.com/mohammed-shakir/digipin/internal/mapper/digipin"
	"github.com/mohammed-shakir/digipin/pkg/digipin"
)

// counts calls reaching the wrapped mapper
type countingMapper struct {
	*digipinmapper.Mapper
	enc, dec int
}

func (c *countingMapper) Encode(p model.Point) (string, error) {
	c.enc++
	return c.Mapper.Encode(p)
}

func (c *countingMapper) Decode(code string) (model.Location, model.Point, error) {
	c.dec++
	return c.Mapper.Decode(code)
}

func newCounting() *countingMapper {
	return &countingMapper{Mapper: digipinmapper.New()}
}

func TestEncode_SecondCallIsCached(t *testing.T) {
	next := newCounting()
	m, err := New(next, 8)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	p := model.Point{Lat: 28.622788, Lon: 77.213033}
	for range 3 {
		code, err := m.Encode(p)
		if err != nil || code != "39J-49L-L8T4" {
			t.Fatalf("Encode=%q,%v", code, err)
		}
	}
	if next.enc != 1 {
		t.Fatalf("underlying encode calls=%d want 1", next.enc)
	}
}

func TestDecode_SeparatorVariantsShareEntry(t *testing.T) {
	next := newCounting()
	m, _ := New(next, 8)

	a, pa, err := m.Decode("39J-49L-L8T4")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	b, pb, err := m.Decode("39J49LL8T4")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if a != b || pa != pb {
		t.Fatalf("cached result differs: %+v/%+v vs %+v/%+v", a, pa, b, pb)
	}
	if next.dec != 1 {
		t.Fatalf("underlying decode calls=%d want 1", next.dec)
	}
	if enc, dec := m.Len(); enc != 0 || dec != 1 {
		t.Fatalf("len=%d,%d want 0,1", enc, dec)
	}
}

func TestErrors_AreNotCached(t *testing.T) {
	next := newCounting()
	m, _ := New(next, 8)

	for range 2 {
		if _, _, err := m.Decode("39J49LL8T!"); !errors.Is(err, digipin.ErrInvalidCharacter) {
			t.Fatalf("Decode err=%v", err)
		}
		if _, err := m.Encode(model.Point{Lat: -1, Lon: 77}); !errors.Is(err, digipin.ErrOutOfRange) {
			t.Fatalf("Encode err=%v", err)
		}
	}
	if next.dec != 2 || next.enc != 2 {
		t.Fatalf("errors must reach the mapper every time: enc=%d dec=%d", next.enc, next.dec)
	}
	if enc, dec := m.Len(); enc != 0 || dec != 0 {
		t.Fatalf("error results were cached: %d,%d", enc, dec)
	}
}

func TestZeroSize_PassThrough(t *testing.T) {
	next := newCounting()
	m, err := New(next, 0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	p := model.Point{Lat: 20.5, Lon: 81.5}
	_, _ = m.Encode(p)
	_, _ = m.Encode(p)
	if next.enc != 2 {
		t.Fatalf("pass-through must not cache: calls=%d", next.enc)
	}
}

func TestMetrics_HitsAndMisses(t *testing.T) {
	reg := prometheus.NewRegistry()
	observability.Init(reg, true)
	t.Cleanup(func() { observability.Init(nil, false) })

	m, _ := New(newCounting(), 8)
	_, _, _ = m.Decode("39J49LL8T4")
	_, _, _ = m.Decode("39J49LL8T4")
	_, _, _ = m.Decode("39J49LL8T4")

	want := `
# HELP cache_results_total Memo cache results by outcome.
# TYPE cache_results_total counter
cache_results_total{cache="decode",outcome="hit"} 2
cache_results_total{cache="decode",outcome="miss"} 1
`
	if err := testutil.GatherAndCompare(reg, strings.NewReader(want), "cache_results_total"); err != nil {
		t.Fatalf("metrics mismatch: %v", err)
	}
}
