// Package executor runs codec requests against a mapper and turns outcomes
// into printable results, recording logs and metrics on the way.
package executor

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/mohammed-shakir/digipin/internal/core/model"
	"github.com/mohammed-shakir/digipin/internal/core/observability"
	"github.com/mohammed-shakir/digipin/internal/logger"
	"github.com/mohammed-shakir/digipin/internal/mapper"
	h3mapper "github.com/mohammed-shakir/digipin/internal/mapper/h3"
	"github.com/mohammed-shakir/digipin/pkg/digipin"
)

type Options struct {
	// H3Res adds the H3 index of decoded centers when >= 0.
	H3Res int
	// H3ParentRes also adds the ancestor of that index when >= 0.
	H3ParentRes int
}

type Executor struct {
	logger   *slog.Logger
	mapper   mapper.Interface
	h3       *h3mapper.Mapper
	h3Res    int
	h3Parent int
	startNow func() time.Time // for tests
}

func New(logger *slog.Logger, m mapper.Interface, opts Options) *Executor {
	e := &Executor{
		logger:   logger,
		mapper:   m,
		h3Res:    opts.H3Res,
		h3Parent: opts.H3ParentRes,
		startNow: time.Now,
	}
	if opts.H3Res >= 0 {
		e.h3 = h3mapper.New()
	}
	return e
}

// Encode encodes p. input is echoed in the result; when empty it is derived
// from p.
func (e *Executor) Encode(ctx context.Context, p model.Point, input string) model.Result {
	if input == "" {
		input = formatPoint(p)
	}
	ctx = logger.WithOp(ctx, string(model.OpEncode))
	res := model.Result{Op: model.OpEncode, Input: input}

	start := e.startNow()
	code, err := e.mapper.Encode(p)
	observability.ObserveOp(string(model.OpEncode), err, e.startNow().Sub(start).Seconds())
	if err != nil {
		e.logger.WarnContext(ctx, "encode rejected", "lat", p.Lat, "lon", p.Lon, "err", err)
		res.Error = err.Error()
		return res
	}
	e.logger.DebugContext(ctx, "encoded", "lat", p.Lat, "lon", p.Lon, "digipin", code)
	res.Code = code
	return res
}

// Decode decodes user input. Blanks, separators and letter case are
// normalized before the strict core decode runs.
func (e *Executor) Decode(ctx context.Context, input string) model.Result {
	ctx = logger.WithOp(ctx, string(model.OpDecode))
	res := model.Result{Op: model.OpDecode, Input: input}
	code := digipin.Normalize(input)

	start := e.startNow()
	loc, p, err := e.mapper.Decode(code)
	observability.ObserveOp(string(model.OpDecode), err, e.startNow().Sub(start).Seconds())
	if err != nil {
		e.logger.WarnContext(ctx, "decode rejected", "input", input, "err", err)
		res.Error = err.Error()
		return res
	}
	// code is known valid here
	res.Code, _ = digipin.Format(code)
	res.Latitude, res.Longitude = loc.Latitude, loc.Longitude

	if e.h3 != nil {
		cell, err := e.h3.CellForPoint(p, e.h3Res)
		if err != nil {
			e.logger.WarnContext(ctx, "h3 lookup failed", "res", e.h3Res, "err", err)
		} else {
			res.H3 = cell
			res.H3Parent = e.parent(ctx, cell)
		}
	}
	e.logger.DebugContext(ctx, "decoded", "digipin", res.Code, "lat", loc.Latitude, "lon", loc.Longitude)
	return res
}

// Cell returns the rectangle addressed by input and, when H3 is enabled, the
// H3 cells covering it.
func (e *Executor) Cell(ctx context.Context, input string) (model.BBox, model.Cells, error) {
	ctx = logger.WithOp(ctx, "cell")
	bb, err := e.mapper.CellBBox(digipin.Normalize(input))
	if err != nil {
		e.logger.WarnContext(ctx, "cell rejected", "input", input, "err", err)
		return model.BBox{}, nil, fmt.Errorf("cell %q: %w", input, err)
	}
	if e.h3 == nil {
		return bb, nil, nil
	}
	cells, err := e.h3.CellsForBBox(bb, e.h3Res)
	if err != nil {
		return bb, nil, fmt.Errorf("h3 cover: %w", err)
	}
	return bb, cells, nil
}

func (e *Executor) parent(ctx context.Context, cell string) string {
	if e.h3Parent < 0 {
		return ""
	}
	p, err := e.h3.ToParent(cell, e.h3Parent)
	if err != nil {
		e.logger.WarnContext(ctx, "h3 parent lookup failed", "res", e.h3Parent, "err", err)
		return ""
	}
	return p
}

func formatPoint(p model.Point) string {
	return strconv.FormatFloat(p.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(p.Lon, 'f', -1, 64)
}
