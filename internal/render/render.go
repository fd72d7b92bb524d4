// Package render prints results as text, JSON lines or a table.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/mohammed-shakir/digipin/internal/core/model"
)

type Writer interface {
	Write(r model.Result) error
	// Flush emits buffered output; table output is only rendered here.
	Flush() error
}

type Options struct {
	// EchoInput prefixes text lines with the original input.
	EchoInput bool
}

func New(format string, w io.Writer, opts Options) (Writer, error) {
	switch format {
	case "", "text":
		return &textWriter{w: w, echo: opts.EchoInput}, nil
	case "json":
		return &jsonWriter{enc: json.NewEncoder(w)}, nil
	case "table":
		tw := table.NewWriter()
		tw.SetOutputMirror(w)
		tw.SetStyle(table.StyleLight)
		tw.AppendHeader(table.Row{"#", "OP", "INPUT", "DIGIPIN", "LATITUDE", "LONGITUDE", "H3", "H3 PARENT", "ERROR"})
		return &tableWriter{tw: tw}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}

// Text is the single-line text form of r.
func Text(r model.Result) string {
	if !r.OK() {
		return "error: " + r.Error
	}
	switch r.Op {
	case model.OpEncode:
		return r.Code
	default:
		s := r.Latitude + "," + r.Longitude
		if r.H3 != "" {
			s += " h3=" + r.H3
		}
		if r.H3Parent != "" {
			s += " h3_parent=" + r.H3Parent
		}
		return s
	}
}

type textWriter struct {
	w    io.Writer
	echo bool
}

func (t *textWriter) Write(r model.Result) error {
	line := Text(r)
	if t.echo {
		line = r.Input + "\t" + line
	}
	if _, err := fmt.Fprintln(t.w, line); err != nil {
		return fmt.Errorf("write text: %w", err)
	}
	return nil
}

func (t *textWriter) Flush() error { return nil }

type jsonWriter struct {
	enc *json.Encoder
}

func (j *jsonWriter) Write(r model.Result) error {
	if err := j.enc.Encode(r); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	return nil
}

func (j *jsonWriter) Flush() error { return nil }

type tableWriter struct {
	tw   table.Writer
	rows int
}

func (t *tableWriter) Write(r model.Result) error {
	t.rows++
	n := r.Line
	if n == 0 {
		n = t.rows
	}
	t.tw.AppendRow(table.Row{strconv.Itoa(n), string(r.Op), r.Input, r.Code, r.Latitude, r.Longitude, r.H3, r.H3Parent, r.Error})
	return nil
}

func (t *tableWriter) Flush() error {
	if t.rows == 0 {
		return nil
	}
	t.tw.Render()
	t.tw.ResetRows()
	t.rows = 0
	return nil
}
