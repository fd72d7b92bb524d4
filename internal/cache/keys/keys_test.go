package keys

import (
	"math"
	"testing"

	"github.com/mohammed-shakir/digipin/internal/core/model"
)

func TestDeterminism_SameInputsSameKey(t *testing.T) {
	p := model.Point{Lat: 28.622788, Lon: 77.213033}
	if Encode(p) != Encode(p) {
		t.Fatalf("encode key not deterministic")
	}
	if Decode("39J49LL8T4") != Decode("39J49LL8T4") {
		t.Fatalf("decode key not deterministic")
	}
}

func TestDecode_SeparatorsIgnored(t *testing.T) {
	if Decode("39J-49L-L8T4") != Decode("39J49LL8T4") {
		t.Fatalf("separators must not change the key")
	}
	if DecodeText("39J-49L-L8T4") != "dec:39J49LL8T4" {
		t.Fatalf("text=%q", DecodeText("39J-49L-L8T4"))
	}
}

func TestEncode_AdjacentFloatsDiffer(t *testing.T) {
	a := model.Point{Lat: 20.5, Lon: 81.5}
	b := model.Point{Lat: math.Nextafter(20.5, 21), Lon: 81.5}
	if EncodeText(a) == EncodeText(b) {
		t.Fatalf("adjacent floats collapsed to %q", EncodeText(a))
	}
	if Encode(a) == Encode(b) {
		t.Fatalf("adjacent floats share a key")
	}
	if EncodeText(a) != "enc:20.5,81.5" {
		t.Fatalf("text=%q", EncodeText(a))
	}
}

func TestNamespaces_DoNotCollide(t *testing.T) {
	if Encode(model.Point{}) == Decode("0,0") {
		t.Fatalf("encode and decode keys share a namespace")
	}
}
