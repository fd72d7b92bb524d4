// Package memo memoizes a mapper.Interface with bounded LRU caches. Errors
// are never cached.
package memo

import (
	"github.com/mohammed-shakir/digipin/internal/cache"
	"github.com/mohammed-shakir/digipin/internal/cache/keys"
	"github.com/mohammed-shakir/digipin/internal/cache/lrustore"
	"github.com/mohammed-shakir/digipin/internal/core/model"
	"github.com/mohammed-shakir/digipin/internal/core/observability"
	"github.com/mohammed-shakir/digipin/internal/mapper"
)

// entries keep the key text so a 64-bit hash collision reads as a miss
type encEntry struct {
	text string
	code string
}

type decEntry struct {
	text  string
	loc   model.Location
	point model.Point
}

type Mapper struct {
	next mapper.Interface
	enc  cache.Interface[encEntry]
	dec  cache.Interface[decEntry]
}

var _ mapper.Interface = (*Mapper)(nil)

// New wraps next. size is the capacity of each of the encode and decode
// caches; size <= 0 returns a pass-through wrapper.
func New(next mapper.Interface, size int) (*Mapper, error) {
	m := &Mapper{next: next}
	if size <= 0 {
		return m, nil
	}
	enc, err := lrustore.New[encEntry](size)
	if err != nil {
		return nil, err
	}
	dec, err := lrustore.New[decEntry](size)
	if err != nil {
		return nil, err
	}
	m.enc, m.dec = enc, dec
	return m, nil
}

func (m *Mapper) Encode(p model.Point) (string, error) {
	if m.enc == nil {
		return m.next.Encode(p)
	}
	text := keys.EncodeText(p)
	k := keys.Encode(p)
	if e, ok := m.enc.Get(k); ok && e.text == text {
		observability.IncCacheHit("encode")
		return e.code, nil
	}
	observability.IncCacheMiss("encode")

	code, err := m.next.Encode(p)
	if err != nil {
		return "", err
	}
	m.enc.Add(k, encEntry{text: text, code: code})
	return code, nil
}

func (m *Mapper) Decode(code string) (model.Location, model.Point, error) {
	if m.dec == nil {
		return m.next.Decode(code)
	}
	text := keys.DecodeText(code)
	k := keys.Decode(code)
	if e, ok := m.dec.Get(k); ok && e.text == text {
		observability.IncCacheHit("decode")
		return e.loc, e.point, nil
	}
	observability.IncCacheMiss("decode")

	loc, p, err := m.next.Decode(code)
	if err != nil {
		return model.Location{}, model.Point{}, err
	}
	m.dec.Add(k, decEntry{text: text, loc: loc, point: p})
	return loc, p, nil
}

func (m *Mapper) CellBBox(code string) (model.BBox, error) {
	return m.next.CellBBox(code)
}

// Len returns the number of cached encode and decode results.
func (m *Mapper) Len() (enc, dec int) {
	if m.enc != nil {
		enc = m.enc.Len()
	}
	if m.dec != nil {
		dec = m.dec.Len()
	}
	return enc, dec
}
