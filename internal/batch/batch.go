// Package batch processes CSV streams of coordinates and codes. A record with
// two fields is encoded, a record with one field is decoded.
package batch

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mohammed-shakir/digipin/internal/core/model"
	"github.com/mohammed-shakir/digipin/internal/render"
)

// Runner executes single codec requests.
type Runner interface {
	Encode(ctx context.Context, p model.Point, input string) model.Result
	Decode(ctx context.Context, input string) model.Result
}

type Summary struct {
	Total  int `json:"total"`
	OK     int `json:"ok"`
	Failed int `json:"failed"`
}

var headerFields = map[string]struct{}{
	"lat": {}, "latitude": {}, "code": {}, "digipin": {},
}

// Run reads records from r until EOF. Record errors are written as failed
// results; only read, write and context errors abort the run.
func Run(ctx context.Context, r io.Reader, out render.Writer, runner Runner) (Summary, error) {
	var sum Summary

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.Comment = '#'
	cr.ReuseRecord = true

	first := true
	for {
		if err := ctx.Err(); err != nil {
			return sum, fmt.Errorf("batch canceled after %d records: %w", sum.Total, err)
		}

		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		var res model.Result
		var pe *csv.ParseError
		switch {
		case errors.As(err, &pe):
			first = false
			res = model.Result{Line: pe.Line, Error: pe.Err.Error()}
		case err != nil:
			return sum, fmt.Errorf("read batch input: %w", err)
		default:
			if isBlank(rec) {
				continue
			}
			line, _ := cr.FieldPos(0)
			if first {
				first = false
				if isHeader(rec) {
					continue
				}
			}
			res = process(ctx, runner, rec)
			res.Line = line
		}

		sum.Total++
		if res.OK() {
			sum.OK++
		} else {
			sum.Failed++
		}
		if err := out.Write(res); err != nil {
			return sum, err
		}
	}
	if err := out.Flush(); err != nil {
		return sum, err
	}
	return sum, nil
}

// isBlank reports a record made of whitespace only; the CSV reader skips
// empty lines but not lines of spaces.
func isBlank(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

func isHeader(rec []string) bool {
	_, ok := headerFields[strings.ToLower(strings.TrimSpace(rec[0]))]
	return ok
}

func process(ctx context.Context, runner Runner, rec []string) model.Result {
	switch len(rec) {
	case 1:
		return runner.Decode(ctx, strings.TrimSpace(rec[0]))
	case 2:
		input := strings.TrimSpace(rec[0]) + "," + strings.TrimSpace(rec[1])
		p, err := ParsePoint(rec[0], rec[1])
		if err != nil {
			return model.Result{Op: model.OpEncode, Input: input, Error: err.Error()}
		}
		return runner.Encode(ctx, p, input)
	default:
		return model.Result{
			Input: strings.Join(rec, ","),
			Error: fmt.Sprintf("expected 1 (digipin) or 2 (lat,lon) fields, got %d", len(rec)),
		}
	}
}

// ParsePoint parses textual latitude and longitude.
func ParsePoint(lat, lon string) (model.Point, error) {
	la, err := strconv.ParseFloat(strings.TrimSpace(lat), 64)
	if err != nil {
		return model.Point{}, fmt.Errorf("latitude: %w", err)
	}
	lo, err := strconv.ParseFloat(strings.TrimSpace(lon), 64)
	if err != nil {
		return model.Point{}, fmt.Errorf("longitude: %w", err)
	}
	return model.Point{Lat: la, Lon: lo}, nil
}
