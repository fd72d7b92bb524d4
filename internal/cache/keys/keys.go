// Package keys derives memo cache keys from codec inputs.
package keys

import (
	"strconv"

	"github.com/cespare/xxhash/v2"

	"github.com/mohammed-shakir/digipin/internal/core/model"
	"github.com/mohammed-shakir/digipin/pkg/digipin"
)

// EncodeText is the canonical text of an encode input. Floats use the
// shortest exact representation, so distinct inputs never share a key text.
func EncodeText(p model.Point) string {
	b := make([]byte, 0, 48)
	b = append(b, "enc:"...)
	b = strconv.AppendFloat(b, p.Lat, 'g', -1, 64)
	b = append(b, ',')
	b = strconv.AppendFloat(b, p.Lon, 'g', -1, 64)
	return string(b)
}

// DecodeText is the canonical text of a decode input; separators are dropped
// because they do not change the result.
func DecodeText(code string) string {
	return "dec:" + digipin.Strip(code)
}

func Encode(p model.Point) uint64 { return xxhash.Sum64String(EncodeText(p)) }

func Decode(code string) uint64 { return xxhash.Sum64String(DecodeText(code)) }
