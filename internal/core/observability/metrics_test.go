package observability

import (
	"errors"
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/mohammed-shakir/digipin/pkg/digipin"
)

func TestObserveOp_CountsOutcomesAndKinds(t *testing.T) {
	reg := prometheus.NewRegistry()
	Init(reg, true)
	t.Cleanup(func() { Init(nil, false) })

	_, encErr := digipin.Encode(-1, 77)
	_, decErr := digipin.Decode("39J49LL8T!")

	ObserveOp("encode", nil, 0.0001)
	ObserveOp("encode", encErr, 0.0001)
	ObserveOp("decode", fmt.Errorf("line 3: %w", decErr), 0.0001)

	c := current.Load()
	if got := testutil.ToFloat64(c.ops.WithLabelValues("encode", "ok")); got != 1 {
		t.Fatalf("encode ok=%v want 1", got)
	}
	if got := testutil.ToFloat64(c.ops.WithLabelValues("encode", "error")); got != 1 {
		t.Fatalf("encode error=%v want 1", got)
	}
	if got := testutil.ToFloat64(c.errs.WithLabelValues("encode", "out_of_range")); got != 1 {
		t.Fatalf("out_of_range=%v want 1", got)
	}
	if got := testutil.ToFloat64(c.errs.WithLabelValues("decode", "invalid_character")); got != 1 {
		t.Fatalf("invalid_character=%v want 1", got)
	}
	if n := testutil.CollectAndCount(c.opDuration); n != 2 {
		t.Fatalf("histogram series=%d want 2", n)
	}
}

func TestCacheCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	Init(reg, true)
	t.Cleanup(func() { Init(nil, false) })

	IncCacheHit("decode")
	IncCacheHit("decode")
	IncCacheMiss("decode")

	c := current.Load()
	if got := testutil.ToFloat64(c.cacheResults.WithLabelValues("decode", "hit")); got != 2 {
		t.Fatalf("hits=%v want 2", got)
	}
	if got := testutil.ToFloat64(c.cacheResults.WithLabelValues("decode", "miss")); got != 1 {
		t.Fatalf("misses=%v want 1", got)
	}
}

func TestDisabled_IsNoop(t *testing.T) {
	Init(nil, false)
	ObserveOp("encode", errors.New("boom"), 1)
	IncCacheHit("encode")
	if current.Load() != nil {
		t.Fatalf("expected no collectors when disabled")
	}
}

func TestErrorKind(t *testing.T) {
	_, lenErr := digipin.Decode("123")
	cases := map[string]error{
		"":               nil,
		"invalid_length": lenErr,
		"other":          errors.New("x"),
	}
	for want, err := range cases {
		if got := ErrorKind(err); got != want {
			t.Fatalf("ErrorKind(%v)=%q want %q", err, got, want)
		}
	}
}
